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
	"fmt"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-ethabi/common"
)

// Encodable is implemented by values that can produce their own ABI encoding
// for a given type. Static types return their in-place words; dynamic types
// return their length-prefixed or head/tail body. Placement into the enclosing
// sequence is done by the encoder.
// Encodable 由能够针对给定类型生成自身 ABI 编码的值实现。
type Encodable interface {
	EncodeABI(t Type) ([]byte, error)
}

type (
	boolValue    bool
	intValue     struct{ v *big.Int }
	stringValue  string
	bytesValue   []byte
	addressValue common.Address
	listValue    []Encodable
	structValue  struct{ v reflect.Value }
)

// AsEncodable converts a native Go value into an Encodable. Supported are
// bool, all sized integers, *big.Int, *uint256.Int, string, []byte, byte
// arrays, common.Address, common.Hash, slices and arrays of supported values,
// structs (as tuples) and anything already implementing Encodable.
func AsEncodable(v interface{}) (Encodable, error) {
	switch v := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil value", ErrTypeMismatch)
	case Encodable:
		return v, nil
	case bool:
		return boolValue(v), nil
	case uint8:
		return intValue{new(big.Int).SetUint64(uint64(v))}, nil
	case uint16:
		return intValue{new(big.Int).SetUint64(uint64(v))}, nil
	case uint32:
		return intValue{new(big.Int).SetUint64(uint64(v))}, nil
	case uint64:
		return intValue{new(big.Int).SetUint64(v)}, nil
	case uint:
		return intValue{new(big.Int).SetUint64(uint64(v))}, nil
	case int8:
		return intValue{big.NewInt(int64(v))}, nil
	case int16:
		return intValue{big.NewInt(int64(v))}, nil
	case int32:
		return intValue{big.NewInt(int64(v))}, nil
	case int64:
		return intValue{big.NewInt(v)}, nil
	case int:
		return intValue{big.NewInt(int64(v))}, nil
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("%w: nil *big.Int", ErrTypeMismatch)
		}
		return intValue{v}, nil
	case *uint256.Int:
		if v == nil {
			return nil, fmt.Errorf("%w: nil *uint256.Int", ErrTypeMismatch)
		}
		return intValue{v.ToBig()}, nil
	case string:
		return stringValue(v), nil
	case []byte:
		return bytesValue(v), nil
	case common.Address:
		return addressValue(v), nil
	case common.Hash:
		return bytesValue(v[:]), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", ErrTypeMismatch, v)
		}
		return AsEncodable(rv.Elem().Interface())
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return bytesValue(b), nil
		}
		return reflectList(rv)
	case reflect.Slice:
		return reflectList(rv)
	case reflect.Struct:
		return structValue{rv}, nil
	case reflect.Bool:
		return boolValue(rv.Bool()), nil
	case reflect.String:
		return stringValue(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intValue{big.NewInt(rv.Int())}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return intValue{new(big.Int).SetUint64(rv.Uint())}, nil
	}
	return nil, fmt.Errorf("%w: unsupported Go type %T", ErrTypeMismatch, v)
}

func reflectList(rv reflect.Value) (Encodable, error) {
	list := make(listValue, rv.Len())
	for i := range list {
		elem, err := AsEncodable(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		list[i] = elem
	}
	return list, nil
}

func (b boolValue) EncodeABI(t Type) ([]byte, error) {
	if t.T != BoolTy {
		return nil, typeErr(t, "bool")
	}
	return packBool(bool(b)), nil
}

func (i intValue) EncodeABI(t Type) ([]byte, error) {
	switch t.T {
	case UintTy:
		return packUint(i.v, t.Size)
	case IntTy:
		return packInt(i.v, t.Size)
	case FixedPointTy:
		return nil, fmt.Errorf("%w: %v", ErrTypeNotSupported, t)
	}
	return nil, typeErr(t, "integer")
}

func (s stringValue) EncodeABI(t Type) ([]byte, error) {
	if t.T != StringTy {
		return nil, typeErr(t, "string")
	}
	return packBytesSlice([]byte(s), len(s)), nil
}

func (b bytesValue) EncodeABI(t Type) ([]byte, error) {
	switch t.T {
	case BytesTy:
		return packBytesSlice(b, len(b)), nil
	case FixedBytesTy:
		if t.Size <= 0 || t.Size > 32 {
			return nil, malformed(t.String(), "length must be between 1 and 32")
		}
		if len(b) > t.Size {
			return nil, fmt.Errorf("%w: %d bytes do not fit %v", ErrTypeMismatch, len(b), t)
		}
		return common.RightPadBytes(b, wordSize), nil
	}
	return nil, typeErr(t, "bytes")
}

func (a addressValue) EncodeABI(t Type) ([]byte, error) {
	if t.T != AddressTy {
		return nil, typeErr(t, "address")
	}
	return common.LeftPadBytes(a[:], wordSize), nil
}

func (l listValue) EncodeABI(t Type) ([]byte, error) {
	switch t.T {
	case SliceTy:
		body, err := packSequence(repeatType(*t.Elem, len(l)), l)
		if err != nil {
			return nil, err
		}
		return append(packNum(len(l)), body...), nil
	case ArrayTy:
		if len(l) != t.Size {
			return nil, fmt.Errorf("%w: %d elements for %v", ErrTypeMismatch, len(l), t)
		}
		return packSequence(repeatType(*t.Elem, len(l)), l)
	case TupleTy:
		if len(l) != len(t.TupleElems) {
			return nil, fmt.Errorf("%w: %d members for %v", ErrTypeMismatch, len(l), t)
		}
		return packSequence(t.tupleTypes(), l)
	}
	return nil, typeErr(t, "list")
}

// EncodeABI packs a struct as a tuple. Fields are matched by the camel-cased
// component name first and by position otherwise.
func (s structValue) EncodeABI(t Type) ([]byte, error) {
	if t.T != TupleTy {
		return nil, typeErr(t, s.v.Type())
	}
	members := make(listValue, len(t.TupleElems))
	for i := range t.TupleElems {
		var field reflect.Value
		if name := t.TupleRawNames[i]; name != "" {
			field = s.v.FieldByName(ToCamelCase(name))
		}
		if !field.IsValid() {
			if i >= s.v.NumField() {
				return nil, fmt.Errorf("%w: struct %v has no field for member %d of %v", ErrTypeMismatch, s.v.Type(), i, t)
			}
			field = s.v.Field(i)
		}
		if !field.CanInterface() {
			return nil, fmt.Errorf("%w: unexported field for member %d of %v", ErrTypeMismatch, i, t)
		}
		member, err := AsEncodable(field.Interface())
		if err != nil {
			return nil, err
		}
		members[i] = member
	}
	return members.EncodeABI(t)
}
