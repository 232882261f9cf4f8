// Copyright 2018 The go-ethereum Authors
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
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/crypto"
)

// MakeTopics turns the per-position rules of a log filter into topic hashes.
// Each rule may be a Hash, an Address, a Go integer or *big.Int, a bool, a
// string or []byte (hashed), a fixed size byte array or a WrappedValue.
// MakeTopics 将过滤查询参数列表转换为过滤主题集合。
func MakeTopics(query ...[]interface{}) ([][]common.Hash, error) {
	topics := make([][]common.Hash, len(query))
	for i, rules := range query {
		for _, rule := range rules {
			topic, err := makeTopic(rule)
			if err != nil {
				return nil, fmt.Errorf("topic %d: %w", i, err)
			}
			topics[i] = append(topics[i], topic)
		}
	}
	return topics, nil
}

func makeTopic(rule interface{}) (common.Hash, error) {
	switch rule := rule.(type) {
	case common.Hash:
		return rule, nil
	case common.Address:
		return common.BytesToHash(rule.Bytes()), nil
	case *big.Int:
		if rule == nil {
			return common.Hash{}, errors.New("nil *big.Int rule")
		}
		return intTopic(rule), nil
	case bool:
		if rule {
			return common.Hash{common.HashLength - 1: 1}, nil
		}
		return common.Hash{}, nil
	case int:
		return intTopic(big.NewInt(int64(rule))), nil
	case int8:
		return intTopic(big.NewInt(int64(rule))), nil
	case int16:
		return intTopic(big.NewInt(int64(rule))), nil
	case int32:
		return intTopic(big.NewInt(int64(rule))), nil
	case int64:
		return intTopic(big.NewInt(rule)), nil
	case uint8:
		return common.Hash(uint256.NewInt(uint64(rule)).Bytes32()), nil
	case uint16:
		return common.Hash(uint256.NewInt(uint64(rule)).Bytes32()), nil
	case uint32:
		return common.Hash(uint256.NewInt(uint64(rule)).Bytes32()), nil
	case uint64:
		return common.Hash(uint256.NewInt(rule).Bytes32()), nil
	case string:
		return crypto.Keccak256Hash([]byte(rule)), nil
	case []byte:
		return crypto.Keccak256Hash(rule), nil
	case WrappedValue:
		return wrappedTopic(rule)
	}
	// bytesN given as a Go array, left aligned like its ABI encoding.
	val := reflect.ValueOf(rule)
	if val.Kind() == reflect.Array && val.Type().Elem().Kind() == reflect.Uint8 && val.Len() <= common.HashLength {
		var topic common.Hash
		reflect.Copy(reflect.ValueOf(topic[:]), val)
		return topic, nil
	}
	return common.Hash{}, fmt.Errorf("unsupported indexed type: %T", rule)
}

// intTopic returns the two's complement word of n.
func intTopic(n *big.Int) common.Hash {
	var u uint256.Int
	u.SetFromBig(n)
	return common.Hash(u.Bytes32())
}

// wrappedTopic computes the topic of a typed value: value types are stored as
// their word, strings and bytes as the hash of their content and arrays and
// tuples as the hash of their members' in-place encoding, with no length
// prefixes or offsets.
func wrappedTopic(w WrappedValue) (common.Hash, error) {
	enc, err := packSequence([]Type{w.Type}, []Encodable{w})
	if err != nil {
		return common.Hash{}, err
	}
	switch w.Type.T {
	case StringTy, BytesTy, SliceTy, ArrayTy, TupleTy:
		values, err := unpackSequence([]Type{w.Type}, enc)
		if err != nil {
			return common.Hash{}, err
		}
		if w.Type.T == StringTy || w.Type.T == BytesTy {
			return crypto.Keccak256Hash(values[0].data), nil
		}
		return crypto.Keccak256Hash(topicPreimage(values[0])), nil
	}
	return common.BytesToHash(enc), nil
}

// topicPreimage is the encoding hashed into the topic of an indexed array or
// tuple. Nested strings and bytes are padded to whole words.
func topicPreimage(v Value) []byte {
	switch v.Type.T {
	case StringTy, BytesTy:
		return common.RightPadBytes(v.data, (len(v.data)+wordSize-1)/wordSize*wordSize)
	case SliceTy, ArrayTy, TupleTy:
		var out []byte
		for _, elem := range v.elems {
			out = append(out, topicPreimage(elem)...)
		}
		return out
	}
	enc, _ := v.EncodeABI(v.Type)
	return enc
}

// ParseTopics fills the fields of the struct out points to from the topics
// of the indexed parameters in fields.
func ParseTopics(out interface{}, fields Arguments, topics []common.Hash) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("abi: ParseTopics needs a struct pointer, got %T", out)
	}
	values, err := topicValues(fields, topics)
	if err != nil {
		return err
	}
	for i, arg := range fields {
		field := rv.Elem().FieldByName(ToCamelCase(arg.Name))
		if !field.IsValid() {
			return fmt.Errorf("%w: %v has no field for %q", ErrAssociatedTypeNotFound, rv.Elem().Type(), arg.Name)
		}
		if err := values[i].assign(field); err != nil {
			return err
		}
	}
	return nil
}

// ParseTopicsIntoMap stores the values of the indexed parameters in fields
// under their names.
func ParseTopicsIntoMap(out map[string]Value, fields Arguments, topics []common.Hash) error {
	values, err := topicValues(fields, topics)
	if err != nil {
		return err
	}
	for i, arg := range fields {
		out[arg.Name] = values[i]
	}
	return nil
}

// topicValues decodes one topic per indexed parameter. Strings, bytes, arrays
// and tuples are logged as the hash of their encoding and come back as hashed
// values.
func topicValues(fields Arguments, topics []common.Hash) ([]Value, error) {
	if len(fields) != len(topics) {
		return nil, fmt.Errorf("%w: %d topics for %d indexed parameters", ErrDoesNotMatchSignature, len(topics), len(fields))
	}
	values := make([]Value, len(fields))
	for i, arg := range fields {
		if !arg.Indexed {
			return nil, fmt.Errorf("parameter %q is not indexed", arg.Name)
		}
		switch arg.Type.T {
		case StringTy, BytesTy, SliceTy, ArrayTy, TupleTy:
			values[i] = hashedValue(arg.Type, topics[i])
		default:
			v, err := unpackStatic(arg.Type, topics[i].Bytes())
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
	}
	return values, nil
}
