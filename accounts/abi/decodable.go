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

// Decodable is implemented by Go types that know how to populate themselves
// from a decoded ABI value.
// Decodable 由能够从解码后的 ABI 值中填充自身的 Go 类型实现。
type Decodable interface {
	DecodeABI(v Value) error
}

var (
	bigT     = reflect.TypeOf(&big.Int{})
	u256T    = reflect.TypeOf(&uint256.Int{})
	addressT = reflect.TypeOf(common.Address{})
	hashT    = reflect.TypeOf(common.Hash{})
	valueT   = reflect.TypeOf(Value{})
)

// Scan copies v into the variable pointed to by dst. Integers are range
// checked against the destination width; lists fill slices and arrays;
// structs are filled field by field using the camel-cased component names.
func (v Value) Scan(dst interface{}) error {
	if d, ok := dst.(Decodable); ok {
		return d.DecodeABI(v)
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("abi: Scan destination must be a non-nil pointer, got %T", dst)
	}
	return v.assign(rv.Elem())
}

func (v Value) assign(dst reflect.Value) error {
	if dst.CanAddr() {
		if d, ok := dst.Addr().Interface().(Decodable); ok {
			return d.DecodeABI(v)
		}
	}
	switch dst.Type() {
	case valueT:
		dst.Set(reflect.ValueOf(v))
		return nil
	case bigT:
		if v.num == nil {
			return v.assignErr(dst)
		}
		dst.Set(reflect.ValueOf(v.BigInt()))
		return nil
	case u256T:
		if v.num == nil || v.num.Sign() < 0 {
			return v.assignErr(dst)
		}
		u, overflow := uint256.FromBig(v.num)
		if overflow {
			return v.assignErr(dst)
		}
		dst.Set(reflect.ValueOf(u))
		return nil
	case addressT:
		if v.Type.T != AddressTy || v.hashed {
			return v.assignErr(dst)
		}
		dst.Set(reflect.ValueOf(v.Address()))
		return nil
	case hashT:
		if !v.hashed && (v.Type.T != FixedBytesTy || v.Type.Size != common.HashLength) {
			return v.assignErr(dst)
		}
		dst.Set(reflect.ValueOf(v.Hash()))
		return nil
	}
	switch dst.Kind() {
	case reflect.Interface:
		if dst.NumMethod() != 0 {
			return v.assignErr(dst)
		}
		dst.Set(reflect.ValueOf(v.Native()))
		return nil
	case reflect.Pointer:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return v.assign(dst.Elem())
	case reflect.Bool:
		if v.Type.T != BoolTy {
			return v.assignErr(dst)
		}
		dst.SetBool(v.flag)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.num == nil || v.num.Sign() < 0 || v.num.BitLen() > dst.Type().Bits() {
			return v.assignErr(dst)
		}
		dst.SetUint(v.num.Uint64())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.num == nil || !fitsInt(v.num, dst.Type().Bits()) {
			return v.assignErr(dst)
		}
		dst.SetInt(v.num.Int64())
		return nil
	case reflect.String:
		if v.Type.T != StringTy || v.hashed {
			return v.assignErr(dst)
		}
		dst.SetString(v.Text())
		return nil
	case reflect.Slice:
		if dst.Type().Elem().Kind() == reflect.Uint8 && v.Kind() == KindScalar {
			if v.data == nil && v.Type.T != BytesTy {
				return v.assignErr(dst)
			}
			dst.SetBytes(v.Bytes())
			return nil
		}
		if v.Kind() != KindList {
			return v.assignErr(dst)
		}
		slice := reflect.MakeSlice(dst.Type(), len(v.elems), len(v.elems))
		for i, elem := range v.elems {
			if err := elem.assign(slice.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(slice)
		return nil
	case reflect.Array:
		if dst.Type().Elem().Kind() == reflect.Uint8 && v.Kind() == KindScalar {
			if len(v.data) != dst.Len() {
				return v.assignErr(dst)
			}
			reflect.Copy(dst, reflect.ValueOf(v.data))
			return nil
		}
		if v.Kind() != KindList || len(v.elems) != dst.Len() {
			return v.assignErr(dst)
		}
		for i, elem := range v.elems {
			if err := elem.assign(dst.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		if v.Kind() != KindStruct {
			return v.assignErr(dst)
		}
		for i, elem := range v.elems {
			field := dst.FieldByName(ToCamelCase(v.memberName(i)))
			if !field.IsValid() {
				if i >= dst.NumField() {
					return fmt.Errorf("%w: %v has no field for member %q", ErrAssociatedTypeNotFound, dst.Type(), v.memberName(i))
				}
				field = dst.Field(i)
			}
			if !field.CanSet() {
				return fmt.Errorf("%w: field for member %q of %v is not settable", ErrAssociatedTypeNotFound, v.memberName(i), dst.Type())
			}
			if err := elem.assign(field); err != nil {
				return err
			}
		}
		return nil
	}
	return v.assignErr(dst)
}

func (v Value) assignErr(dst reflect.Value) error {
	return fmt.Errorf("%w: cannot assign %v value %v to %v", ErrAssociatedTypeNotFound, v.Type, v, dst.Type())
}
