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
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/common/hexutil"
)

// Kind is the shape of a decoded value.
type Kind uint8

const (
	KindScalar Kind = iota // integers, bool, address, bytes, string and hashed topics
	KindList               // fixed and dynamic arrays
	KindStruct             // tuples
)

// Value is a decoded ABI value. Its shape mirrors the Type it was decoded
// against: scalars hold a number, boolean or byte payload, arrays and tuples
// hold their members in order.
//
// A Value is also Encodable, so decoded data can be packed again unchanged.
// Value 是解码得到的 ABI 值，其结构与解码时使用的 Type 一致。
type Value struct {
	Type Type

	num    *big.Int
	flag   bool
	data   []byte
	elems  []Value
	hashed bool
}

// hashedValue is the value of a dynamic indexed event parameter, for which
// only the Keccak256 hash is recoverable.
func hashedValue(t Type, topic common.Hash) Value {
	return Value{Type: t, data: topic.Bytes(), hashed: true}
}

// Kind returns whether v is a scalar, a list or a struct.
func (v Value) Kind() Kind {
	if v.hashed {
		return KindScalar
	}
	switch v.Type.T {
	case SliceTy, ArrayTy:
		return KindList
	case TupleTy:
		return KindStruct
	}
	return KindScalar
}

// Hashed reports whether v only holds the topic hash of an indexed parameter
// of dynamic type rather than the parameter itself.
func (v Value) Hashed() bool { return v.hashed }

// BigInt returns a copy of an integer value, or nil for other types.
func (v Value) BigInt() *big.Int {
	if v.num == nil {
		return nil
	}
	return new(big.Int).Set(v.num)
}

// Uint64 returns an integer value as uint64 if it fits.
func (v Value) Uint64() (uint64, bool) {
	if v.num == nil || !v.num.IsUint64() {
		return 0, false
	}
	return v.num.Uint64(), true
}

// Int64 returns an integer value as int64 if it fits.
func (v Value) Int64() (int64, bool) {
	if v.num == nil || !v.num.IsInt64() {
		return 0, false
	}
	return v.num.Int64(), true
}

// Bool returns the value of a bool.
func (v Value) Bool() bool { return v.flag }

// Bytes returns a copy of the payload of bytes, bytesN, string, address and
// hashed values.
func (v Value) Bytes() []byte { return common.CopyBytes(v.data) }

// Text returns the content of a string value.
func (v Value) Text() string { return string(v.data) }

// Address returns the value of an address.
func (v Value) Address() common.Address { return common.BytesToAddress(v.data) }

// Hash returns a bytes32 or hashed value as a hash. Shorter fixed bytes are
// right padded.
func (v Value) Hash() (h common.Hash) {
	copy(h[:], v.data)
	return h
}

// Len returns the number of members of a list or struct.
func (v Value) Len() int { return len(v.elems) }

// Index returns member i of a list or struct.
func (v Value) Index(i int) Value { return v.elems[i] }

// Elems returns the members of a list or struct.
func (v Value) Elems() []Value {
	elems := make([]Value, len(v.elems))
	copy(elems, v.elems)
	return elems
}

// Field looks up a struct member by its component name.
func (v Value) Field(name string) (Value, bool) {
	if v.Kind() != KindStruct {
		return Value{}, false
	}
	for i, n := range v.Type.TupleRawNames {
		if n == name {
			return v.elems[i], true
		}
	}
	return Value{}, false
}

// Map returns the members of a struct keyed by component name. Unnamed members
// are keyed by their position.
func (v Value) Map() map[string]Value {
	if v.Kind() != KindStruct {
		return nil
	}
	m := make(map[string]Value, len(v.elems))
	for i, elem := range v.elems {
		m[v.memberName(i)] = elem
	}
	return m
}

func (v Value) memberName(i int) string {
	if i < len(v.Type.TupleRawNames) && v.Type.TupleRawNames[i] != "" {
		return v.Type.TupleRawNames[i]
	}
	return strconv.Itoa(i)
}

// Native converts v into the narrowest plain Go representation: sized integers
// up to 64 bits and *big.Int beyond, bool, string, []byte, [N]byte for bytesN,
// common.Address, common.Hash for hashed topics, []interface{} for lists and
// map[string]interface{} for structs.
// Native 将解码值转换为最窄的 Go 原生类型。
func (v Value) Native() interface{} {
	if v.hashed {
		return v.Hash()
	}
	switch v.Type.T {
	case UintTy:
		switch {
		case v.Type.Size <= 8:
			return uint8(v.num.Uint64())
		case v.Type.Size <= 16:
			return uint16(v.num.Uint64())
		case v.Type.Size <= 32:
			return uint32(v.num.Uint64())
		case v.Type.Size <= 64:
			return v.num.Uint64()
		}
		return v.BigInt()
	case IntTy:
		switch {
		case v.Type.Size <= 8:
			return int8(v.num.Int64())
		case v.Type.Size <= 16:
			return int16(v.num.Int64())
		case v.Type.Size <= 32:
			return int32(v.num.Int64())
		case v.Type.Size <= 64:
			return v.num.Int64()
		}
		return v.BigInt()
	case BoolTy:
		return v.flag
	case StringTy:
		return v.Text()
	case BytesTy:
		return v.Bytes()
	case FixedBytesTy:
		arr := reflect.New(reflect.ArrayOf(len(v.data), reflect.TypeOf(byte(0)))).Elem()
		reflect.Copy(arr, reflect.ValueOf(v.data))
		return arr.Interface()
	case AddressTy:
		return v.Address()
	case SliceTy, ArrayTy:
		list := make([]interface{}, len(v.elems))
		for i, elem := range v.elems {
			list[i] = elem.Native()
		}
		return list
	case TupleTy:
		m := make(map[string]interface{}, len(v.elems))
		for i, elem := range v.elems {
			m[v.memberName(i)] = elem.Native()
		}
		return m
	}
	return nil
}

// String renders the value for humans: decimal integers, 0x-prefixed hex for
// byte payloads, checksummed addresses, [a, b] for lists and (a, b) for tuples.
func (v Value) String() string {
	if v.hashed {
		return hexutil.Encode(v.data)
	}
	switch v.Type.T {
	case UintTy, IntTy:
		if v.num == nil {
			return "<nil>"
		}
		return v.num.String()
	case BoolTy:
		return strconv.FormatBool(v.flag)
	case StringTy:
		return v.Text()
	case BytesTy, FixedBytesTy:
		return hexutil.Encode(v.data)
	case AddressTy:
		return v.Address().Hex()
	case SliceTy, ArrayTy, TupleTy:
		parts := make([]string, len(v.elems))
		for i, elem := range v.elems {
			parts[i] = elem.String()
			if elem.Type.T == StringTy && !elem.hashed {
				parts[i] = strconv.Quote(parts[i])
			}
		}
		if v.Type.T == TupleTy {
			return "(" + strings.Join(parts, ", ") + ")"
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprintf("<%v>", v.Type)
}

// Equal reports whether two values have the same type and content.
func (v Value) Equal(other Value) bool {
	if !v.Type.Equal(other.Type) || v.hashed != other.hashed || v.flag != other.flag {
		return false
	}
	if (v.num == nil) != (other.num == nil) || (v.num != nil && v.num.Cmp(other.num) != 0) {
		return false
	}
	if !bytes.Equal(v.data, other.data) || len(v.elems) != len(other.elems) {
		return false
	}
	for i := range v.elems {
		if !v.elems[i].Equal(other.elems[i]) {
			return false
		}
	}
	return true
}

// MarshalJSON renders integers as JSON numbers, byte payloads as hex strings,
// lists as arrays and structs as objects in member order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	if v.hashed {
		return writeJSONValue(buf, hexutil.Encode(v.data))
	}
	switch v.Type.T {
	case UintTy, IntTy:
		buf.WriteString(v.num.String())
		return nil
	case BoolTy:
		buf.WriteString(strconv.FormatBool(v.flag))
		return nil
	case SliceTy, ArrayTy:
		buf.WriteByte('[')
		for i, elem := range v.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := elem.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case TupleTy:
		buf.WriteByte('{')
		for i, elem := range v.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, v.memberName(i)); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := elem.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	}
	return writeJSONValue(buf, v.String())
}

func writeJSONValue(buf *bytes.Buffer, s string) error {
	enc, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(enc)
	return nil
}

// EncodeABI implements Encodable, packing the decoded content again. Hashed
// values cannot be encoded since their content is unknown.
func (v Value) EncodeABI(t Type) ([]byte, error) {
	if v.hashed {
		return nil, fmt.Errorf("%w: hashed %v has no recoverable content", ErrTypeMismatch, v.Type)
	}
	switch v.Type.T {
	case UintTy, IntTy:
		return intValue{v.num}.EncodeABI(t)
	case BoolTy:
		return boolValue(v.flag).EncodeABI(t)
	case AddressTy:
		return addressValue(v.Address()).EncodeABI(t)
	case StringTy:
		return stringValue(v.data).EncodeABI(t)
	case BytesTy, FixedBytesTy:
		return bytesValue(v.data).EncodeABI(t)
	case SliceTy, ArrayTy, TupleTy:
		list := make(listValue, len(v.elems))
		for i, elem := range v.elems {
			list[i] = elem
		}
		return list.EncodeABI(t)
	}
	return nil, fmt.Errorf("%w: %v", ErrAssociatedTypeNotFound, v.Type)
}
