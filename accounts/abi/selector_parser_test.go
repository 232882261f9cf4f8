// Copyright 2025 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package abi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-ethabi/common"
)

func TestParseSelector(t *testing.T) {
	t.Parallel()
	mkType := func(types ...interface{}) []ArgumentMarshaling {
		var result []ArgumentMarshaling
		for _, typeOrComponents := range types {
			if typeName, ok := typeOrComponents.(string); ok {
				result = append(result, ArgumentMarshaling{Type: typeName})
			} else if components, ok := typeOrComponents.([]ArgumentMarshaling); ok {
				result = append(result, ArgumentMarshaling{Type: "tuple", Components: components})
			} else {
				t.Fatalf("unexpected type %T", typeOrComponents)
			}
		}
		return result
	}
	var tests = []struct {
		input string
		name  string
		args  []ArgumentMarshaling
	}{
		{"noargs()", "noargs", []ArgumentMarshaling{}},
		{"simple(uint256,uint256,uint256)", "simple", mkType("uint256", "uint256", "uint256")},
		{"other(uint256,address)", "other", mkType("uint256", "address")},
		{"withArray(uint256[],address[2],uint8[4][][5])", "withArray", mkType("uint256[]", "address[2]", "uint8[4][][5]")},
		{"singleNest(bytes32,uint8,(uint256,uint256),address)", "singleNest", mkType("bytes32", "uint8", mkType("uint256", "uint256"), "address")},
		{"multiNest(address,(uint256[],uint256),((address,bytes32),uint256))", "multiNest",
			mkType("address", mkType("uint256[]", "uint256"), mkType(mkType("address", "bytes32"), "uint256"))},
		{"$_under(uint256)", "$_under", mkType("uint256")},
	}
	for i, tt := range tests {
		selector, err := ParseSelector(tt.input)
		if err != nil {
			t.Errorf("test %d: failed to parse selector '%v': %v", i, tt.input, err)
			continue
		}
		if selector.Name != tt.name {
			t.Errorf("test %d: unexpected function name: '%s' != '%s'", i, selector.Name, tt.name)
		}
		if selector.Type != "function" {
			t.Errorf("test %d: unexpected type: '%s' != '%s'", i, selector.Type, "function")
		}
		if !assert.Equal(t, tt.args, selector.Inputs, "test %d", i) {
			got, _ := json.Marshal(selector.Inputs)
			t.Logf("got %s", got)
		}
	}
}

func TestParseSelectorHumanReadable(t *testing.T) {
	t.Parallel()
	sel, err := ParseSelector("function swap((address token, uint256 amount)[] calldata legs, bytes memory data) external payable returns (uint256 out, bool)")
	require.NoError(t, err)
	assert.Equal(t, "swap", sel.Name)
	assert.Equal(t, "payable", sel.StateMutability)
	require.Len(t, sel.Inputs, 2)
	assert.Equal(t, "legs", sel.Inputs[0].Name)
	assert.Equal(t, "tuple[]", sel.Inputs[0].Type)
	assert.Equal(t, "token", sel.Inputs[0].Components[0].Name)
	assert.Equal(t, "data", sel.Inputs[1].Name)
	require.Len(t, sel.Outputs, 2)
	assert.Equal(t, "out", sel.Outputs[0].Name)
	assert.Equal(t, "bool", sel.Outputs[1].Type)

	method, err := ParseMethod("function swap((address token, uint256 amount)[] calldata legs, bytes memory data) external payable returns (uint256 out, bool)")
	require.NoError(t, err)
	assert.Equal(t, "swap((address,uint256)[],bytes)", method.Sig)
	assert.True(t, method.IsPayable())
	assert.Equal(t, []string{"token", "amount"}, method.Inputs[0].Type.Elem.TupleRawNames)
	assert.Len(t, method.Outputs, 2)
}

func TestParseSelectorErrors(t *testing.T) {
	t.Parallel()
	for _, input := range []string{
		"",
		"()",
		"1abc()",
		"noparen",
		"f(uint256",
		"f(uint256,)",
		"f(uint256[)",
		"f(uint256) trailing",
		"f(uint256 indexed a)",
		"event E(uint256) returns (bool)",
		"function f() anonymous",
	} {
		if _, err := ParseSelector(input); err == nil {
			t.Errorf("input %q: expected error", input)
		}
	}
	// Well formed selectors with invalid types only fail on type resolution.
	_, err := ParseMethod("f(uint7)")
	assert.ErrorIs(t, err, ErrTypeMalformed)
	_, err = ParseEvent("function f()")
	assert.Error(t, err)
}

func TestParseError(t *testing.T) {
	t.Parallel()
	e, err := ParseError("InsufficientBalance(uint256 available, uint256 required)")
	require.NoError(t, err)
	assert.Equal(t, "InsufficientBalance(uint256,uint256)", e.Sig)
	assert.Equal(t, "error InsufficientBalance(uint256 available, uint256 required)", e.String())

	e2, err := ParseError("error Unauthorized()")
	require.NoError(t, err)
	assert.Equal(t, "82b42900", common.Bytes2Hex(e2.ID[:4]))
}
