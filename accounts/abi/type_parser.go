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
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// typeParser is a recursive-descent scanner over the type grammar:
//
//	type     = base { "[" [ digits ] "]" }
//	base     = "(" [ type { "," type } ] ")" | elementary | "tuple"
//
// "tuple" is only accepted when the components are supplied alongside the
// string, as in the JSON ABI.
type typeParser struct {
	input        string
	pos          int
	components   []ArgumentMarshaling
	internalType string
}

func (p *typeParser) parse() (Type, error) {
	if p.input == "" {
		return Type{}, malformed(p.input, "empty type")
	}
	typ, err := p.parseType(true)
	if err != nil {
		return Type{}, err
	}
	if p.pos != len(p.input) {
		return Type{}, malformed(p.input, "unexpected %q at position %d", p.input[p.pos:], p.pos)
	}
	if _, err := typ.checkSize(); err != nil {
		return Type{}, err
	}
	return typ, nil
}

func (p *typeParser) peek() byte {
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

func (p *typeParser) parseType(top bool) (Type, error) {
	var (
		base Type
		err  error
	)
	if p.peek() == '(' {
		base, err = p.parseTupleBody()
	} else {
		start := p.pos
		for p.pos < len(p.input) && (isAlpha(p.input[p.pos]) || isDigit(p.input[p.pos])) {
			p.pos++
		}
		ident := p.input[start:p.pos]
		switch {
		case ident == "":
			return Type{}, malformed(p.input, "expected type at position %d", start)
		case ident == "tuple":
			if !top || p.components == nil {
				return Type{}, malformed(p.input, "tuple type requires components")
			}
			base, err = tupleFromComponents(p.components, p.internalType)
		default:
			base, err = parseElementary(ident)
		}
	}
	if err != nil {
		return Type{}, err
	}
	return p.parseSuffixes(base)
}

// parseSuffixes applies array suffixes left to right, so the last suffix in
// the text becomes the outermost array: T[3][] is a slice of T[3].
func (p *typeParser) parseSuffixes(base Type) (Type, error) {
	for p.peek() == '[' {
		p.pos++
		start := p.pos
		for isDigit(p.peek()) {
			p.pos++
		}
		digits := p.input[start:p.pos]
		if p.peek() != ']' {
			return Type{}, malformed(p.input, "expected ']' at position %d", p.pos)
		}
		p.pos++
		if digits == "" {
			base = NewSliceType(base)
			continue
		}
		size, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			return Type{}, malformed(p.input, "invalid array length %q", digits)
		}
		base = NewArrayType(base, int(size))
	}
	return base, nil
}

func (p *typeParser) parseTupleBody() (Type, error) {
	p.pos++ // '('
	var elems []Type
	if p.peek() == ')' {
		p.pos++
		return NewTupleType(nil), nil
	}
	for {
		elem, err := p.parseType(false)
		if err != nil {
			return Type{}, err
		}
		elems = append(elems, elem)
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return NewTupleType(nil, elems...), nil
		default:
			return Type{}, malformed(p.input, "expected ',' or ')' at position %d", p.pos)
		}
	}
}

// parseElementary resolves a type name without array suffixes.
func parseElementary(ident string) (Type, error) {
	switch ident {
	case "string":
		return StringType, nil
	case "address":
		return AddressType, nil
	case "bool":
		return BoolType, nil
	case "int":
		return Int256Type, nil
	case "uint":
		return Uint256Type, nil
	case "bytes":
		return BytesType, nil
	case "fixed":
		return NewFixedPointType(128, 18, false)
	case "ufixed":
		return NewFixedPointType(128, 18, true)
	case "function":
		return Type{}, malformed(ident, "function types are not supported")
	}
	switch {
	case strings.HasPrefix(ident, "uint"):
		bits, ok := parseSize(ident[len("uint"):])
		if !ok || !validIntSize(bits) {
			return Type{}, malformed(ident, "unsigned integer width must be a multiple of 8 between 8 and 256")
		}
		return NewUintType(bits)
	case strings.HasPrefix(ident, "int"):
		bits, ok := parseSize(ident[len("int"):])
		if !ok || !validIntSize(bits) {
			return Type{}, malformed(ident, "integer width must be a multiple of 8 between 8 and 256")
		}
		return NewIntType(bits)
	case strings.HasPrefix(ident, "bytes"):
		size, ok := parseSize(ident[len("bytes"):])
		if !ok {
			return Type{}, malformed(ident, "invalid fixed bytes length")
		}
		return NewFixedBytesType(size)
	case strings.HasPrefix(ident, "ufixed"):
		return parseFixedPoint(ident, ident[len("ufixed"):], true)
	case strings.HasPrefix(ident, "fixed"):
		return parseFixedPoint(ident, ident[len("fixed"):], false)
	}
	return Type{}, malformed(ident, "unsupported arg type")
}

func parseFixedPoint(ident, dims string, unsigned bool) (Type, error) {
	m, n, found := strings.Cut(dims, "x")
	if !found {
		return Type{}, malformed(ident, "fixed point type must be of the form fixedMxN")
	}
	bits, ok1 := parseSize(m)
	frac, ok2 := parseSize(n)
	if !ok1 || !ok2 {
		return Type{}, malformed(ident, "invalid fixed point dimensions")
	}
	return NewFixedPointType(bits, frac, unsigned)
}

// parseSize parses a decimal size without sign or leading zeros.
func parseSize(s string) (int, bool) {
	if s == "" || len(s) > 3 || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

// tupleFromComponents builds a tuple type out of JSON ABI components.
// Duplicate component names are disambiguated with a numeric suffix.
func tupleFromComponents(components []ArgumentMarshaling, internalType string) (Type, error) {
	var (
		elems = make([]Type, len(components))
		names = make([]string, len(components))
		used  = mapset.NewThreadUnsafeSet[string]()
	)
	for i, c := range components {
		elem, err := NewType(c.Type, c.InternalType, c.Components)
		if err != nil {
			return Type{}, fmt.Errorf("tuple component %d: %w", i, err)
		}
		elems[i] = elem
		if c.Name != "" {
			names[i] = ResolveNameConflict(c.Name, func(s string) bool { return used.Contains(s) })
			used.Add(names[i])
		}
	}
	typ := NewTupleType(names, elems...)
	if structName, ok := strings.CutPrefix(internalType, "struct "); ok {
		if i := strings.IndexByte(structName, '['); i >= 0 {
			structName = structName[:i]
		}
		typ.TupleRawName = strings.ReplaceAll(structName, ".", "")
	}
	return typ, nil
}
