package descriptor

import (
	"errors"
	"fmt"
)

// ErrMalformedDescriptor is returned when a descriptor string cannot be parsed.
var ErrMalformedDescriptor = errors.New("malformed descriptor")

// ParseFieldType parses a field descriptor such as "I" or "[Ljava/lang/String;".
func ParseFieldType(raw string) (FieldType, error) {
	p := parser{raw: raw}

	t, err := p.fieldType()
	if err != nil {
		return nil, err
	}

	if err := p.end(); err != nil {
		return nil, err
	}

	return t, nil
}

// ParseType parses a field descriptor or the void type "V".
func ParseType(raw string) (Type, error) {
	if raw == "V" {
		return Void, nil
	}

	return ParseFieldType(raw)
}

// ParseMethodDescriptor parses a method descriptor such as "(IJ)Ljava/lang/Object;".
func ParseMethodDescriptor(raw string) (*MethodDescriptor, error) {
	p := parser{raw: raw}

	if err := p.expect('('); err != nil {
		return nil, err
	}

	var params []FieldType

	for {
		c, ok := p.peek()
		if !ok {
			return nil, p.fail("missing ')'")
		}

		if c == ')' {
			p.pos++
			break
		}

		if c == 'V' {
			return nil, p.fail("void parameter")
		}

		t, err := p.fieldType()
		if err != nil {
			return nil, err
		}

		params = append(params, t)
	}

	var ret Type

	if c, ok := p.peek(); ok && c == 'V' {
		p.pos++
		ret = Void
	} else {
		t, err := p.fieldType()
		if err != nil {
			return nil, err
		}

		ret = t
	}

	if err := p.end(); err != nil {
		return nil, err
	}

	return &MethodDescriptor{Params: params, Return: ret}, nil
}

// MustParseFieldType is like ParseFieldType but panics on error.
func MustParseFieldType(raw string) FieldType {
	t, err := ParseFieldType(raw)
	if err != nil {
		panic(err)
	}

	return t
}

// MustParseMethodDescriptor is like ParseMethodDescriptor but panics on error.
func MustParseMethodDescriptor(raw string) *MethodDescriptor {
	d, err := ParseMethodDescriptor(raw)
	if err != nil {
		panic(err)
	}

	return d
}

type parser struct {
	raw string
	pos int
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.raw) {
		return 0, false
	}

	return p.raw[p.pos], true
}

func (p *parser) expect(c byte) error {
	got, ok := p.peek()
	if !ok || got != c {
		return p.fail(fmt.Sprintf("expected '%c'", c))
	}

	p.pos++

	return nil
}

func (p *parser) end() error {
	if p.pos != len(p.raw) {
		return p.fail("trailing data")
	}

	return nil
}

func (p *parser) fail(reason string) error {
	return fmt.Errorf("%w %q at offset %d: %s", ErrMalformedDescriptor, p.raw, p.pos, reason)
}

func (p *parser) fieldType() (FieldType, error) {
	dims := 0

	for {
		c, ok := p.peek()
		if !ok || c != '[' {
			break
		}

		dims++
		p.pos++
	}

	c, ok := p.peek()
	if !ok {
		return nil, p.fail("unexpected end")
	}

	var component FieldType

	switch {
	case c == 'L':
		start := p.pos + 1

		end := start
		for end < len(p.raw) && p.raw[end] != ';' {
			end++
		}

		if end >= len(p.raw) {
			return nil, p.fail("missing ';'")
		}

		if end == start {
			return nil, p.fail("empty class name")
		}

		component = &ObjectType{ClassName: p.raw[start:end]}
		p.pos = end + 1
	default:
		prim, isPrim := PrimitiveFromTag(c)
		if !isPrim {
			return nil, p.fail(fmt.Sprintf("unknown type tag '%c'", c))
		}

		component = prim
		p.pos++
	}

	if dims > 0 {
		return &ArrayType{Dims: dims, Component: component}, nil
	}

	return component, nil
}
