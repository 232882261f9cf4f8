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

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-ethabi/common"
)

// wordSize is the alignment unit of the encoding.
const wordSize = 32

// packNum packs an unsigned length or offset into a word.
func packNum(n int) []byte {
	word := uint256.NewInt(uint64(n)).Bytes32()
	return word[:]
}

// packUint packs v as a uintN word, rejecting values that do not fit N bits.
func packUint(v *big.Int, bits int) ([]byte, error) {
	if v.Sign() < 0 || v.BitLen() > bits {
		return nil, fmt.Errorf("%w: %v overflows uint%d", ErrTypeMismatch, v, bits)
	}
	var u uint256.Int
	u.SetFromBig(v)
	word := u.Bytes32()
	return word[:], nil
}

// packInt packs v as an intN word in 256 bit two's complement.
// packInt 以 256 位二进制补码形式打包有符号整数。
func packInt(v *big.Int, bits int) ([]byte, error) {
	if !fitsInt(v, bits) {
		return nil, fmt.Errorf("%w: %v overflows int%d", ErrTypeMismatch, v, bits)
	}
	var u uint256.Int
	u.SetFromBig(v) // negative values wrap to their two's complement
	word := u.Bytes32()
	return word[:], nil
}

// fitsInt reports whether -2^(bits-1) <= v < 2^(bits-1).
func fitsInt(v *big.Int, bits int) bool {
	if v.Sign() >= 0 {
		return v.BitLen() < bits
	}
	// -x fits iff x-1 fits on the positive side.
	mag := new(big.Int).Neg(v)
	return mag.Sub(mag, common.Big1).BitLen() < bits
}

// packBool packs a boolean as a uint word holding 0 or 1.
func packBool(b bool) []byte {
	word := make([]byte, wordSize)
	if b {
		word[wordSize-1] = 1
	}
	return word
}

// packBytesSlice packs the given bytes as [L, V] as the canonical representation
// bytes slice.
func packBytesSlice(bytes []byte, l int) []byte {
	len := packNum(l)
	return append(len, common.RightPadBytes(bytes, (l+wordSize-1)/wordSize*wordSize)...)
}

// readInteger reads the integer of the given type out of a word, checking that
// the value stays within the declared width.
// readInteger 从一个字中读取整数，并检查数值是否超出声明的位宽。
func readInteger(typ Type, word []byte) (*big.Int, error) {
	var u uint256.Int
	u.SetBytes32(word)
	if typ.T == UintTy {
		if u.BitLen() > typ.Size {
			return nil, fmt.Errorf("%w: value %s overflows %v", ErrCouldNotDecodeType, u.Dec(), typ)
		}
		return u.ToBig(), nil
	}
	var v *big.Int
	if u.Sign() < 0 {
		// The top bit is set: the magnitude is the two's complement negation.
		mag := new(uint256.Int).Neg(&u)
		v = mag.ToBig()
		v.Neg(v)
	} else {
		v = u.ToBig()
	}
	if !fitsInt(v, typ.Size) {
		return nil, fmt.Errorf("%w: value %v overflows %v", ErrCouldNotDecodeType, v, typ)
	}
	return v, nil
}

// readBool reads a bool.
func readBool(word []byte) (bool, error) {
	for _, b := range word[:wordSize-1] {
		if b != 0 {
			return false, fmt.Errorf("%w: improperly encoded boolean value", ErrCouldNotDecodeType)
		}
	}
	switch word[wordSize-1] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: improperly encoded boolean value", ErrCouldNotDecodeType)
	}
}

// readOffset reads an offset word, rejecting anything beyond limit.
func readOffset(word []byte, limit int) (int, error) {
	var u uint256.Int
	u.SetBytes32(word)
	if !u.IsUint64() || u.Uint64() > uint64(limit) {
		return 0, fmt.Errorf("%w: offset %s exceeds %d byte buffer", ErrRealisticIndexOutOfBounds, u.Dec(), limit)
	}
	return int(u.Uint64()), nil
}

// readLength reads the length word at the start of a dynamic payload and
// checks that length elements of unit bytes each fit into the rest of it.
func readLength(payload []byte, unit int) (int, error) {
	if len(payload) < wordSize {
		return 0, fmt.Errorf("%w: missing length word", ErrCouldNotParseLength)
	}
	var u uint256.Int
	u.SetBytes32(payload[:wordSize])
	avail := len(payload) - wordSize
	if !u.IsUint64() || u.Uint64() > uint64(avail) {
		return 0, fmt.Errorf("%w: length %s exceeds remaining %d bytes", ErrCouldNotParseLength, u.Dec(), avail)
	}
	n := int(u.Uint64())
	if unit > 1 && n > avail/unit {
		return 0, fmt.Errorf("%w: %d elements of %d bytes exceed remaining %d bytes", ErrCouldNotParseLength, n, unit, avail)
	}
	return n, nil
}
