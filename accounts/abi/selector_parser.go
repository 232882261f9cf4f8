// Copyright 2022 The go-ethereum Authors
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
	"strings"
)

// SelectorMarshaling is the JSON-serializable form of a human-readable
// function, event or error signature.
// SelectorMarshaling 是人类可读签名的可 JSON 序列化形式。
type SelectorMarshaling struct {
	Name            string               `json:"name"`
	Type            string               `json:"type"`
	Inputs          []ArgumentMarshaling `json:"inputs"`
	Outputs         []ArgumentMarshaling `json:"outputs,omitempty"`
	StateMutability string               `json:"stateMutability,omitempty"`
	Anonymous       bool                 `json:"anonymous,omitempty"`
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierSymbol(c byte) bool {
	return c == '$' || c == '_'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Words which may follow a parameter type without being its name.
var dataLocations = map[string]bool{"memory": true, "calldata": true, "storage": true}

// Words which may follow the parameter list of a function.
var modifiers = map[string]bool{
	"pure": true, "view": true, "payable": true, "nonpayable": true,
	"external": true, "public": true, "internal": true, "virtual": true,
}

// signatureParser scans signatures such as
//
//	transfer(address,uint256)
//	function balanceOf(address owner) view returns (uint256)
//	event Transfer(address indexed from, address indexed to, uint256 value)
//	Swap((address,uint256)[] legs, bytes data)
type signatureParser struct {
	input string
	pos   int
}

func (p *signatureParser) skipSpace() {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *signatureParser) peek() byte {
	p.skipSpace()
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

func (p *signatureParser) expect(c byte) error {
	if p.peek() != c {
		if p.pos >= len(p.input) {
			return fmt.Errorf("expected '%c', got end of input", c)
		}
		return fmt.Errorf("expected '%c', got '%c' at position %d", c, p.input[p.pos], p.pos)
	}
	p.pos++
	return nil
}

// word reads an identifier, which may be empty. Identifier symbols are only
// allowed when ident is set, since type names never contain them.
func (p *signatureParser) word(ident bool) string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if !(isAlpha(c) || (p.pos > start && isDigit(c)) || (ident && isIdentifierSymbol(c))) {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}

// peekWord returns the next identifier without consuming it.
func (p *signatureParser) peekWord() string {
	pos := p.pos
	w := p.word(true)
	p.pos = pos
	return w
}

// suffixes reads array suffixes verbatim, e.g. "[2][]".
func (p *signatureParser) suffixes() (string, error) {
	var b strings.Builder
	for p.peek() == '[' {
		b.WriteByte('[')
		p.pos++
		for p.pos < len(p.input) && isDigit(p.input[p.pos]) {
			b.WriteByte(p.input[p.pos])
			p.pos++
		}
		if err := p.expect(']'); err != nil {
			return "", fmt.Errorf("failed to parse array: %v", err)
		}
		b.WriteByte(']')
	}
	return b.String(), nil
}

// params parses a parenthesised parameter list.
func (p *signatureParser) params(allowIndexed bool) ([]ArgumentMarshaling, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	args := make([]ArgumentMarshaling, 0)
	if p.peek() == ')' {
		p.pos++
		return args, nil
	}
	for {
		arg, err := p.param(allowIndexed)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return args, nil
		default:
			return nil, fmt.Errorf("expected ',' or ')' at position %d", p.pos)
		}
	}
}

// param parses `type [indexed] [location] [name]`.
func (p *signatureParser) param(allowIndexed bool) (ArgumentMarshaling, error) {
	var arg ArgumentMarshaling
	if p.peek() == '(' || p.peekWord() == "tuple" {
		if p.peek() != '(' {
			p.word(false) // tuple
		}
		components, err := p.params(false)
		if err != nil {
			return arg, err
		}
		suffix, err := p.suffixes()
		if err != nil {
			return arg, err
		}
		arg.Type, arg.Components = "tuple"+suffix, components
	} else {
		name := p.word(false)
		if name == "" {
			return arg, fmt.Errorf("expected type at position %d", p.pos)
		}
		suffix, err := p.suffixes()
		if err != nil {
			return arg, err
		}
		arg.Type = name + suffix
	}
	for {
		w := p.peekWord()
		switch {
		case w == "indexed":
			if !allowIndexed {
				return arg, errors.New("indexed is only allowed on event parameters")
			}
			arg.Indexed = true
			p.word(true)
			continue
		case dataLocations[w]:
			p.word(true)
			continue
		}
		break
	}
	arg.Name = p.word(true)
	return arg, nil
}

// ParseSelector converts a human-readable signature into a struct that can be
// JSON encoded and consumed by other functions in this package. The leading
// function, event or error keyword is optional and defaults to function.
// Parameter names, `indexed` and data locations are accepted, as are state
// mutability modifiers and a `returns (...)` clause.
// Note, although uppercase letters are not part of the ABI spec, this function
// still accepts it as the general format is valid.
// ParseSelector 将人类可读的签名转换为可 JSON 编码的结构体。
func ParseSelector(unescapedSelector string) (SelectorMarshaling, error) {
	sel, err := parseSelector(unescapedSelector)
	if err != nil {
		return SelectorMarshaling{}, fmt.Errorf("failed to parse selector '%s': %v", unescapedSelector, err)
	}
	return sel, nil
}

func parseSelector(input string) (SelectorMarshaling, error) {
	p := &signatureParser{input: input}
	sel := SelectorMarshaling{Type: "function"}

	name := p.word(true)
	switch name {
	case "function", "event", "error":
		if p.peek() != '(' {
			sel.Type, name = name, p.word(true)
		}
	}
	if name == "" {
		return sel, errors.New("missing name")
	}
	sel.Name = name

	inputs, err := p.params(sel.Type == "event")
	if err != nil {
		return sel, err
	}
	sel.Inputs = inputs

	for p.peek() != 0 {
		w := p.word(true)
		switch {
		case w == "returns" && sel.Type == "function":
			if sel.Outputs, err = p.params(false); err != nil {
				return sel, err
			}
		case w == "anonymous" && sel.Type == "event":
			sel.Anonymous = true
		case modifiers[w] && sel.Type == "function":
			switch w {
			case "pure", "view", "payable", "nonpayable":
				sel.StateMutability = w
			}
		default:
			return sel, fmt.Errorf("unexpected string '%s'", p.input[p.pos-len(w):])
		}
	}
	return sel, nil
}

func argumentsFromMarshaling(ms []ArgumentMarshaling) (Arguments, error) {
	args := make(Arguments, len(ms))
	for i, m := range ms {
		typ, err := NewType(m.Type, m.InternalType, m.Components)
		if err != nil {
			return nil, err
		}
		args[i] = Argument{Name: m.Name, Type: typ, Indexed: m.Indexed}
	}
	return args, nil
}

// withKeyword prefixes sig with kw unless it already starts with it.
func withKeyword(sig, kw string) string {
	trimmed := strings.TrimSpace(sig)
	if rest, ok := strings.CutPrefix(trimmed, kw); ok && rest != "" && isSpace(rest[0]) {
		return trimmed
	}
	return kw + " " + trimmed
}

func parseSignature(sig, kind string) (SelectorMarshaling, Arguments, error) {
	sel, err := ParseSelector(sig)
	if err != nil {
		return sel, nil, err
	}
	if sel.Type != kind {
		return sel, nil, fmt.Errorf("failed to parse selector '%s': declares %s, want %s", sig, sel.Type, kind)
	}
	inputs, err := argumentsFromMarshaling(sel.Inputs)
	if err != nil {
		return sel, nil, err
	}
	return sel, inputs, nil
}

// ParseMethod parses a human-readable function signature into a Method.
func ParseMethod(sig string) (Method, error) {
	sel, inputs, err := parseSignature(sig, "function")
	if err != nil {
		return Method{}, err
	}
	outputs, err := argumentsFromMarshaling(sel.Outputs)
	if err != nil {
		return Method{}, err
	}
	return NewMethod(sel.Name, sel.Name, Function, sel.StateMutability, false, sel.StateMutability == "payable", inputs, outputs), nil
}

// ParseEvent parses a human-readable event signature into an Event.
func ParseEvent(sig string) (Event, error) {
	sel, inputs, err := parseSignature(withKeyword(sig, "event"), "event")
	if err != nil {
		return Event{}, err
	}
	return NewEvent(sel.Name, sel.Name, sel.Anonymous, inputs), nil
}

// ParseError parses a human-readable custom error signature into an Error.
func ParseError(sig string) (Error, error) {
	sel, inputs, err := parseSignature(withKeyword(sig, "error"), "error")
	if err != nil {
		return Error{}, err
	}
	return NewError(sel.Name, inputs), nil
}
