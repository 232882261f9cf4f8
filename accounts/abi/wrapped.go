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
	"unsafe"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-ethabi/common"
	"golang.org/x/exp/constraints"
)

// WrappedValue bundles a value with its declared ABI type. It is needed
// whenever the Go representation does not determine the ABI type on its own,
// e.g. which integer width to use.
// WrappedValue 将一个值与其声明的 ABI 类型绑定在一起。
type WrappedValue struct {
	Value Encodable
	Type  Type
}

// NewWrappedValue pairs a native Go value with an explicit type.
func NewWrappedValue(v interface{}, t Type) (WrappedValue, error) {
	enc, err := AsEncodable(v)
	if err != nil {
		return WrappedValue{}, err
	}
	return WrappedValue{Value: enc, Type: t}, nil
}

// EncodeABI implements Encodable. The requested type must equal the declared one.
func (w WrappedValue) EncodeABI(t Type) ([]byte, error) {
	if !w.Type.Equal(t) {
		return nil, typeErr(t, w.Type)
	}
	if w.Value == nil {
		return nil, fmt.Errorf("%w: wrapped %v holds no value", ErrTypeMismatch, w.Type)
	}
	return w.Value.EncodeABI(w.Type)
}

// String implements fmt.Stringer.
func (w WrappedValue) String() string {
	return fmt.Sprintf("%v(%v)", w.Type, w.Value)
}

// Uint wraps an unsigned Go integer as the uintN matching its bit width.
func Uint[T constraints.Unsigned](v T) WrappedValue {
	bits := int(unsafe.Sizeof(v)) * 8
	return WrappedValue{
		Value: intValue{new(big.Int).SetUint64(uint64(v))},
		Type:  Type{T: UintTy, Size: bits, stringKind: fmt.Sprintf("uint%d", bits)},
	}
}

// Int wraps a signed Go integer as the intN matching its bit width.
func Int[T constraints.Signed](v T) WrappedValue {
	bits := int(unsafe.Sizeof(v)) * 8
	return WrappedValue{
		Value: intValue{big.NewInt(int64(v))},
		Type:  Type{T: IntTy, Size: bits, stringKind: fmt.Sprintf("int%d", bits)},
	}
}

// UintN wraps v as uint<bits>.
func UintN(bits int, v *big.Int) (WrappedValue, error) {
	t, err := NewUintType(bits)
	if err != nil {
		return WrappedValue{}, err
	}
	return NewWrappedValue(v, t)
}

// IntN wraps v as int<bits>.
func IntN(bits int, v *big.Int) (WrappedValue, error) {
	t, err := NewIntType(bits)
	if err != nil {
		return WrappedValue{}, err
	}
	return NewWrappedValue(v, t)
}

// BigUint wraps an arbitrary precision integer as uint256.
func BigUint(v *big.Int) WrappedValue {
	return WrappedValue{Value: intValue{v}, Type: Uint256Type}
}

// BigInt wraps an arbitrary precision integer as int256.
func BigInt(v *big.Int) WrappedValue {
	return WrappedValue{Value: intValue{v}, Type: Int256Type}
}

// Uint256 wraps a 256 bit word as uint256.
func Uint256(v *uint256.Int) WrappedValue {
	return WrappedValue{Value: intValue{v.ToBig()}, Type: Uint256Type}
}

// Bool wraps a boolean.
func Bool(b bool) WrappedValue {
	return WrappedValue{Value: boolValue(b), Type: BoolType}
}

// String wraps a string.
func String(s string) WrappedValue {
	return WrappedValue{Value: stringValue(s), Type: StringType}
}

// Bytes wraps a byte slice as dynamic bytes.
func Bytes(b []byte) WrappedValue {
	return WrappedValue{Value: bytesValue(b), Type: BytesType}
}

// FixedBytes wraps a byte slice as bytes<len(b)>. Slices longer than 32 bytes
// fail when encoded.
func FixedBytes(b []byte) WrappedValue {
	return WrappedValue{Value: bytesValue(b), Type: fixedBytesType(len(b))}
}

// Address wraps an account address.
func Address(a common.Address) WrappedValue {
	return WrappedValue{Value: addressValue(a), Type: AddressType}
}

// Hash wraps a 32 byte hash as bytes32.
func Hash(h common.Hash) WrappedValue {
	return WrappedValue{Value: bytesValue(h[:]), Type: fixedBytesType(common.HashLength)}
}

// Tuple wraps the given members into a tuple whose type is derived from theirs.
func Tuple(members ...WrappedValue) WrappedValue {
	types := make([]Type, len(members))
	for i, m := range members {
		types[i] = m.Type
	}
	return WrappedValue{Value: wrappedList(members), Type: NewTupleType(nil, types...)}
}

// Array wraps the elements into a dynamic array elem[].
func Array(elem Type, elems ...WrappedValue) WrappedValue {
	return WrappedValue{Value: wrappedList(elems), Type: NewSliceType(elem)}
}

// FixedArray wraps the elements into the fixed array elem[len(elems)].
func FixedArray(elem Type, elems ...WrappedValue) WrappedValue {
	return WrappedValue{Value: wrappedList(elems), Type: NewArrayType(elem, len(elems))}
}

type wrappedList []WrappedValue

func (l wrappedList) EncodeABI(t Type) ([]byte, error) {
	list := make(listValue, len(l))
	for i, w := range l {
		list[i] = w
	}
	return list.EncodeABI(t)
}
