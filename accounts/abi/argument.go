// Copyright 2015 The go-ethereum Authors
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
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Argument is a single named parameter of a method, event or error.
type Argument struct {
	Name    string
	Type    Type
	Indexed bool // only meaningful for event parameters
}

// Arguments is an ordered list of parameters.
// Arguments 是有序的参数列表。
type Arguments []Argument

// ArgumentMarshaling is the JSON ABI description of a parameter.
type ArgumentMarshaling struct {
	Name         string               `json:"name"`
	Type         string               `json:"type"`
	InternalType string               `json:"internalType,omitempty"`
	Components   []ArgumentMarshaling `json:"components,omitempty"`
	Indexed      bool                 `json:"indexed,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler, resolving the type string and
// its components into a Type.
func (argument *Argument) UnmarshalJSON(data []byte) error {
	var m ArgumentMarshaling
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("argument json err: %v", err)
	}
	typ, err := NewType(m.Type, m.InternalType, m.Components)
	if err != nil {
		return err
	}
	*argument = Argument{Name: m.Name, Type: typ, Indexed: m.Indexed}
	return nil
}

// MarshalJSON implements json.Marshaler, producing the JSON ABI form with
// tuple members moved into components.
func (argument Argument) MarshalJSON() ([]byte, error) {
	m := argument.Type.marshaling(argument.Name)
	m.Indexed = argument.Indexed
	return json.Marshal(m)
}

// declaration renders the parameter the way Solidity declares it, e.g.
// "address indexed from".
func (argument Argument) declaration() string {
	s := argument.Type.String()
	if argument.Indexed {
		s += " indexed"
	}
	if argument.Name != "" {
		s += " " + argument.Name
	}
	return s
}

// NonIndexed returns the parameters carried in the data section.
func (arguments Arguments) NonIndexed() Arguments {
	return arguments.filter(false)
}

// Indexed returns the parameters carried in log topics.
func (arguments Arguments) Indexed() Arguments {
	return arguments.filter(true)
}

func (arguments Arguments) filter(indexed bool) Arguments {
	var out Arguments
	for _, arg := range arguments {
		if arg.Indexed == indexed {
			out = append(out, arg)
		}
	}
	return out
}

// Types returns the types of the arguments in order.
func (arguments Arguments) Types() []Type {
	types := make([]Type, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type
	}
	return types
}

// named returns a copy of the list in which every unnamed parameter is called
// argN after its position.
func (arguments Arguments) named() Arguments {
	out := make(Arguments, len(arguments))
	for i, arg := range arguments {
		if arg.Name == "" {
			arg.Name = fmt.Sprintf("arg%d", i)
		}
		out[i] = arg
	}
	return out
}

// signature returns the canonical form name(T1,T2,...) that selectors and
// event IDs are hashed from.
func (arguments Arguments) signature(name string) string {
	types := make([]string, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type.String()
	}
	return name + "(" + strings.Join(types, ",") + ")"
}

// declarations joins the Solidity style declarations of all parameters.
func (arguments Arguments) declarations() string {
	decls := make([]string, len(arguments))
	for i, arg := range arguments {
		decls[i] = arg.declaration()
	}
	return strings.Join(decls, ", ")
}

// Unpack decodes data into one value per non-indexed parameter.
func (arguments Arguments) Unpack(data []byte) ([]Value, error) {
	fields := arguments.NonIndexed()
	if len(data) == 0 {
		if len(fields) > 0 {
			return nil, fmt.Errorf("%w: empty data for %d parameters", ErrCouldNotDecodeType, len(fields))
		}
		return []Value{}, nil
	}
	return unpackSequence(fields.Types(), data)
}

// UnpackIntoMap decodes data and stores every non-indexed value in v under
// its parameter name.
func (arguments Arguments) UnpackIntoMap(v map[string]Value, data []byte) error {
	if v == nil {
		return errors.New("abi: cannot unpack into a nil map")
	}
	values, err := arguments.Unpack(data)
	if err != nil {
		return err
	}
	for i, arg := range arguments.NonIndexed() {
		v[arg.Name] = values[i]
	}
	return nil
}

// Copy scans values, as returned by Unpack, into the variable v points to.
// The value of a lone parameter is scanned directly. Otherwise the values fill
// a struct by the camel-cased parameter names, or a slice or array by position.
// Copy 将解码得到的值写入 v 指向的变量。
func (arguments Arguments) Copy(v interface{}, values []Value) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("abi: Unpack(non-pointer %T)", v)
	}
	fields := arguments.NonIndexed()
	if len(values) != len(fields) {
		return fmt.Errorf("%w: %d values for %d parameters", ErrAssociatedTypeNotFound, len(values), len(fields))
	}
	switch {
	case len(values) == 0:
		return nil
	case len(arguments) == 1:
		return values[0].Scan(v)
	}
	dst := rv.Elem()
	switch dst.Kind() {
	case reflect.Struct:
		for i, arg := range fields {
			field := dst.FieldByName(ToCamelCase(arg.Name))
			if !field.IsValid() {
				return fmt.Errorf("%w: %v has no field for %q", ErrAssociatedTypeNotFound, dst.Type(), arg.Name)
			}
			if err := values[i].assign(field); err != nil {
				return err
			}
		}
		return nil
	case reflect.Slice:
		if dst.Len() < len(values) {
			dst.Set(reflect.MakeSlice(dst.Type(), len(values), len(values)))
		}
	case reflect.Array:
		if dst.Len() < len(values) {
			return fmt.Errorf("%w: %v cannot hold %d values", ErrAssociatedTypeNotFound, dst.Type(), len(values))
		}
	default:
		return fmt.Errorf("%w: cannot unpack %d values into %v", ErrAssociatedTypeNotFound, len(values), dst.Type())
	}
	for i, val := range values {
		if err := val.assign(dst.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

// Pack encodes args, given in parameter order, with the head/tail encoding.
// Pack 将 Go 值按参数类型打包为 ABI 编码。
func (arguments Arguments) Pack(args ...interface{}) ([]byte, error) {
	if len(args) != len(arguments) {
		return nil, fmt.Errorf("argument count mismatch: got %d for %d", len(args), len(arguments))
	}
	encs := make([]Encodable, len(args))
	for i, a := range args {
		enc, err := AsEncodable(a)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", arguments[i].Name, err)
		}
		encs[i] = enc
	}
	return packSequence(arguments.Types(), encs)
}

// ToCamelCase converts a snake_case name into the exported Go field name
// used when scanning into structs, e.g. "token_id" becomes "TokenId".
func ToCamelCase(input string) string {
	var b strings.Builder
	for _, part := range strings.Split(input, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
