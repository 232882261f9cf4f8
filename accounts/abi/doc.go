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

// Package abi implements the Ethereum ABI (Application Binary
// Interface) codec.
//
// Values are described by a Type, parsed from the canonical signature
// strings used in Solidity ("uint256", "bytes10", "(string,uint256[4])[]").
// Native Go values become Encodable and are packed with the head/tail
// layout into 32-byte words. Decoding produces a tree of Value that
// mirrors the Type it was decoded against, and event logs are decoded
// by splitting indexed topics from the data blob.
//
// abi 包实现了以太坊 ABI（应用二进制接口）编解码器。
//
// 所有操作都是纯函数：不持有共享状态，可以被多个 goroutine 同时调用。
package abi
