// Copyright 2014 The go-ethereum Authors
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

// Package crypto provides the Keccak hashing used for ABI selectors, event
// topics and address checksums.
package crypto

import (
	"hash"

	"github.com/sunyihoo/go-ethabi/common"
	"golang.org/x/crypto/sha3"
)

// SelectorLength is the byte length of a function selector.
// SelectorLength 表示函数选择器的字节长度。
const SelectorLength = 4

// KeccakState is a Keccak hasher that can also be read from. Read squeezes
// the digest out without the copy Sum makes, but changes the state.
// KeccakState 封装了 sha3.state，额外支持 Read 方法。
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// NewKeccakState returns a legacy Keccak-256 hasher. Ethereum predates the
// SHA3 standard and hashes with the original padding.
// 以太坊使用的是原始（legacy）Keccak-256，而不是标准化后的 SHA3-256。
func NewKeccakState() KeccakState {
	return sha3.NewLegacyKeccak256().(KeccakState)
}

// HashData resets kh and hashes data with it, so one state can serve many
// inputs.
func HashData(kh KeccakState, data []byte) (h common.Hash) {
	kh.Reset()
	kh.Write(data)
	kh.Read(h[:])
	return h
}

// Keccak256 hashes the concatenation of data.
// Keccak256 计算并返回输入数据的 Keccak256 哈希值。
func Keccak256(data ...[]byte) []byte {
	h := Keccak256Hash(data...)
	return h[:]
}

// Keccak256Hash is Keccak256 returning a common.Hash.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}

// Selector returns the first four bytes of the Keccak256 hash of a canonical
// function signature such as "transfer(address,uint256)".
// Selector 返回规范函数签名 Keccak256 哈希的前 4 个字节。
func Selector(signature string) []byte {
	return Keccak256([]byte(signature))[:SelectorLength]
}
