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
	"fmt"
	"math"
	"strings"
)

// Type enumerator
const (
	IntTy byte = iota
	UintTy
	BoolTy
	StringTy
	SliceTy
	ArrayTy
	TupleTy
	AddressTy
	FixedBytesTy
	BytesTy
	FixedPointTy
)

// Type is the reflection of the supported argument type.
//
// Size is the bit width for integers and fixed point numbers, the byte length
// for bytesN and the element count for fixed arrays.
// Type 描述一个受支持的 ABI 参数类型。
type Type struct {
	Elem *Type
	Size int
	T    byte // Our own type checking

	// Frac and Unsigned only apply to FixedPointTy.
	Frac     int
	Unsigned bool

	stringKind string // holds the unparsed string for deriving signatures

	// Tuple relative fields
	TupleRawName  string   // Raw struct name defined in source code, may be empty.
	TupleElems    []*Type  // Type information of all tuple fields
	TupleRawNames []string // Raw field name of all tuple fields
}

var (
	// AddressType is the 20 byte account address type.
	AddressType = Type{T: AddressTy, Size: 20, stringKind: "address"}
	// BoolType is the boolean type.
	BoolType = Type{T: BoolTy, stringKind: "bool"}
	// StringType is the dynamic UTF-8 string type.
	StringType = Type{T: StringTy, stringKind: "string"}
	// BytesType is the dynamic byte sequence type.
	BytesType = Type{T: BytesTy, stringKind: "bytes"}
	// Uint256Type is the default unsigned integer type.
	Uint256Type = Type{T: UintTy, Size: 256, stringKind: "uint256"}
	// Int256Type is the default signed integer type.
	Int256Type = Type{T: IntTy, Size: 256, stringKind: "int256"}
)

// NewUintType returns the uintN type. bits must be a multiple of 8 in 8..256.
func NewUintType(bits int) (Type, error) {
	if !validIntSize(bits) {
		return Type{}, malformed(fmt.Sprintf("uint%d", bits), "invalid bit width")
	}
	return Type{T: UintTy, Size: bits, stringKind: fmt.Sprintf("uint%d", bits)}, nil
}

// NewIntType returns the intN type. bits must be a multiple of 8 in 8..256.
func NewIntType(bits int) (Type, error) {
	if !validIntSize(bits) {
		return Type{}, malformed(fmt.Sprintf("int%d", bits), "invalid bit width")
	}
	return Type{T: IntTy, Size: bits, stringKind: fmt.Sprintf("int%d", bits)}, nil
}

// NewFixedBytesType returns the bytesN type for 0 < size <= 32.
func NewFixedBytesType(size int) (Type, error) {
	if size <= 0 || size > 32 {
		return Type{}, malformed(fmt.Sprintf("bytes%d", size), "length must be between 1 and 32")
	}
	return fixedBytesType(size), nil
}

func fixedBytesType(size int) Type {
	return Type{T: FixedBytesTy, Size: size, stringKind: fmt.Sprintf("bytes%d", size)}
}

// NewFixedPointType returns the fixedMxN or ufixedMxN type. Such types can be
// described but have no runtime representation.
func NewFixedPointType(bits, frac int, unsigned bool) (Type, error) {
	name := "fixed"
	if unsigned {
		name = "ufixed"
	}
	name = fmt.Sprintf("%s%dx%d", name, bits, frac)
	if !validIntSize(bits) || frac < 0 || frac > 80 {
		return Type{}, malformed(name, "invalid fixed point dimensions")
	}
	return Type{T: FixedPointTy, Size: bits, Frac: frac, Unsigned: unsigned, stringKind: name}, nil
}

// NewSliceType returns the dynamic array type T[].
func NewSliceType(elem Type) Type {
	return Type{T: SliceTy, Elem: &elem, stringKind: elem.String() + "[]"}
}

// NewArrayType returns the fixed array type T[size].
func NewArrayType(elem Type, size int) Type {
	return Type{T: ArrayTy, Elem: &elem, Size: size, stringKind: fmt.Sprintf("%v[%d]", elem, size)}
}

// NewTupleType returns a tuple of the given member types. names may be nil or
// hold one (possibly empty) component name per member.
// NewTupleType 返回由给定成员类型组成的元组类型。
func NewTupleType(names []string, elems ...Type) Type {
	t := Type{T: TupleTy, TupleElems: make([]*Type, len(elems)), TupleRawNames: make([]string, len(elems))}
	kinds := make([]string, len(elems))
	for i := range elems {
		elem := elems[i]
		t.TupleElems[i] = &elem
		if i < len(names) {
			t.TupleRawNames[i] = names[i]
		}
		kinds[i] = elem.String()
	}
	t.stringKind = "(" + strings.Join(kinds, ",") + ")"
	return t
}

// NewType creates a new reflection type of abi type given in t. Tuples are
// described by "tuple" (optionally with array suffixes) plus the components
// list, exactly as in the JSON ABI.
func NewType(t string, internalType string, components []ArgumentMarshaling) (typ Type, err error) {
	p := typeParser{input: t, components: components, internalType: internalType}
	return p.parse()
}

// ParseType parses a canonical type signature such as "uint256[3][]" or
// "(string,uint256[4])[]".
func ParseType(t string) (Type, error) {
	return NewType(t, "", nil)
}

// MustParseType is like ParseType but panics on error. It is meant for
// package-level type declarations.
func MustParseType(t string) Type {
	typ, err := ParseType(t)
	if err != nil {
		panic(err)
	}
	return typ
}

// String implements Stringer, returning the canonical signature of the type.
func (t Type) String() (out string) {
	return t.stringKind
}

// Equal reports whether two types are structurally identical. Component names
// are metadata and do not take part in the comparison.
func (t Type) Equal(other Type) bool {
	return t.stringKind == other.stringKind
}

// IsDynamic reports whether the encoded size of the type depends on its value.
// string, bytes and T[] are dynamic, as is any array or tuple containing a
// dynamic type.
// IsDynamic 报告该类型的编码大小是否依赖于具体的值。
func (t Type) IsDynamic() bool {
	switch t.T {
	case StringTy, BytesTy, SliceTy:
		return true
	case ArrayTy:
		return t.Elem.IsDynamic()
	case TupleTy:
		for _, elem := range t.TupleElems {
			if elem.IsDynamic() {
				return true
			}
		}
	}
	return false
}

// StaticSize returns the number of bytes the type occupies in place when it is
// not dynamic, or 0 for dynamic types which only take an offset slot.
func (t Type) StaticSize() int {
	if t.IsDynamic() {
		return 0
	}
	switch t.T {
	case ArrayTy:
		return t.Size * t.Elem.StaticSize()
	case TupleTy:
		total := 0
		for _, elem := range t.TupleElems {
			total += elem.StaticSize()
		}
		return total
	}
	return 32
}

// maxStaticSize bounds the in-place size of a type and of a head region, so
// offsets and sizes computed by the codec never overflow int.
const maxStaticSize = math.MaxInt >> 2

// checkSize returns StaticSize after verifying that neither t nor any type
// nested in it occupies more than maxStaticSize bytes in place.
func (t Type) checkSize() (int, error) {
	switch t.T {
	case StringTy, BytesTy:
		return 0, nil
	case SliceTy:
		if _, err := t.Elem.checkSize(); err != nil {
			return 0, err
		}
		return 0, nil
	case ArrayTy:
		elem, err := t.Elem.checkSize()
		if err != nil {
			return 0, err
		}
		if t.Size < 0 {
			return 0, malformed(t.String(), "negative array length")
		}
		if t.Elem.IsDynamic() {
			return 0, nil
		}
		if elem > 0 && t.Size > maxStaticSize/elem {
			return 0, malformed(t.String(), "static size exceeds %d bytes", maxStaticSize)
		}
		return t.Size * elem, nil
	case TupleTy:
		total, dynamic := 0, false
		for _, elem := range t.TupleElems {
			size, err := elem.checkSize()
			if err != nil {
				return 0, err
			}
			if elem.IsDynamic() {
				dynamic = true
				continue
			}
			if size > maxStaticSize-total {
				return 0, malformed(t.String(), "static size exceeds %d bytes", maxStaticSize)
			}
			total += size
		}
		if dynamic {
			return 0, nil
		}
		return total, nil
	}
	return wordSize, nil
}

// checkHeads validates a sequence of types and returns the size of its head
// region.
func checkHeads(types []Type) (int, error) {
	total := 0
	for _, t := range types {
		size, err := t.checkSize()
		if err != nil {
			return 0, err
		}
		if t.IsDynamic() {
			size = wordSize
		}
		if size > maxStaticSize-total {
			return 0, fmt.Errorf("%w: head of %d types exceeds %d bytes", ErrTypeMalformed, len(types), maxStaticSize)
		}
		total += size
	}
	return total, nil
}

// headSize is the number of bytes the type takes in the head region of the
// enclosing sequence.
func (t Type) headSize() int {
	if t.IsDynamic() {
		return 32
	}
	return t.StaticSize()
}

// tupleTypes returns the member types of a tuple by value.
func (t Type) tupleTypes() []Type {
	types := make([]Type, len(t.TupleElems))
	for i, elem := range t.TupleElems {
		types[i] = *elem
	}
	return types
}

// MarshalText implements encoding.TextMarshaler. The textual form of a type is
// its canonical signature, which is also its JSON representation.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.stringKind), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(input []byte) error {
	typ, err := ParseType(string(input))
	if err != nil {
		return err
	}
	*t = typ
	return nil
}

// marshaling converts the type into its JSON ABI description, moving tuple
// members into components.
func (t Type) marshaling(name string) ArgumentMarshaling {
	suffix := ""
	base := &t
	for base.T == SliceTy || base.T == ArrayTy {
		if base.T == SliceTy {
			suffix = "[]" + suffix
		} else {
			suffix = fmt.Sprintf("[%d]", base.Size) + suffix
		}
		base = base.Elem
	}
	if base.T != TupleTy {
		return ArgumentMarshaling{Name: name, Type: t.String()}
	}
	components := make([]ArgumentMarshaling, len(base.TupleElems))
	for i, elem := range base.TupleElems {
		components[i] = elem.marshaling(base.TupleRawNames[i])
	}
	m := ArgumentMarshaling{Name: name, Type: "tuple" + suffix, Components: components}
	if base.TupleRawName != "" {
		m.InternalType = "struct " + base.TupleRawName + suffix
	}
	return m
}

func validIntSize(bits int) bool {
	return bits > 0 && bits <= 256 && bits%8 == 0
}

func repeatType(t Type, n int) []Type {
	types := make([]Type, n)
	for i := range types {
		types[i] = t
	}
	return types
}
