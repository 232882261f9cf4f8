// Copyright 2016 The go-ethereum Authors
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

	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/crypto"
)

// Event describes a log a contract can emit. Unless the event is anonymous,
// the first topic of its logs is ID.
type Event struct {
	// Name is unique within the ABI. Overloads of RawName get a numeric
	// suffix, e.g. the second "Transfer" becomes "Transfer0".
	Name    string
	RawName string

	Anonymous bool
	Inputs    Arguments
	str       string

	Sig string      // canonical signature, e.g. "Transfer(address,address,uint256)"
	ID  common.Hash // Keccak256(Sig)
}

// NewEvent builds an Event from its parsed parts. Unnamed inputs are called
// argN after their position; the caller's slice is left untouched. The
// signature, topic ID and string form are computed once here.
// NewEvent 创建一个新事件，并预计算 ID、签名和字符串表示。
func NewEvent(name, rawName string, anonymous bool, inputs Arguments) Event {
	inputs = inputs.named()
	sig := inputs.signature(rawName)
	return Event{
		Name:      name,
		RawName:   rawName,
		Anonymous: anonymous,
		Inputs:    inputs,
		str:       fmt.Sprintf("event %s(%s)", rawName, inputs.declarations()),
		Sig:       sig,
		ID:        common.BytesToHash(crypto.Keccak256([]byte(sig))),
	}
}

func (e Event) String() string {
	return e.str
}

// DecodeLog decodes a log emitted by this event into a map keyed by parameter
// name. Unless the event is anonymous the first topic must be the event ID.
// Indexed parameters are read from the remaining topics, where dynamic types
// only yield their hash; all other parameters are decoded from data.
// DecodeLog 将该事件产生的日志解码为按参数名索引的映射。
func (e Event) DecodeLog(topics []common.Hash, data []byte) (map[string]Value, error) {
	if !e.Anonymous {
		if len(topics) == 0 {
			return nil, fmt.Errorf("%w: log has no topics, want %s", ErrDoesNotMatchSignature, e.Sig)
		}
		if topics[0] != e.ID {
			return nil, fmt.Errorf("%w: topic %s is not %s", ErrDoesNotMatchSignature, topics[0].Hex(), e.Sig)
		}
		topics = topics[1:]
	}
	indexed := e.Inputs.Indexed()
	if len(topics) != len(indexed) {
		return nil, fmt.Errorf("%w: %d topics for %d indexed parameters of %s", ErrDoesNotMatchSignature, len(topics), len(indexed), e.Sig)
	}
	out := make(map[string]Value, len(e.Inputs))
	if err := e.Inputs.UnpackIntoMap(out, data); err != nil {
		return nil, err
	}
	if err := ParseTopicsIntoMap(out, indexed, topics); err != nil {
		return nil, err
	}
	return out, nil
}
