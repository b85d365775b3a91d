package model

import (
	"fmt"

	"github.com/CadixDev/Lorenz-sub001/descriptor"
)

// FieldSignature identifies a field within its class. Type is nil when the
// mapping source does not track field types.
type FieldSignature struct {
	Name string
	Type descriptor.FieldType
}

// NewFieldSignature returns a signature with the given name and optional type.
func NewFieldSignature(name string, typ descriptor.FieldType) FieldSignature {
	return FieldSignature{Name: name, Type: typ}
}

// ParseFieldSignature builds a signature from a name and a raw descriptor.
// An empty descriptor yields an untyped signature.
func ParseFieldSignature(name, desc string) (FieldSignature, error) {
	if desc == "" {
		return FieldSignature{Name: name}, nil
	}

	typ, err := descriptor.ParseFieldType(desc)
	if err != nil {
		return FieldSignature{}, fmt.Errorf("field %s: %w", name, err)
	}

	return FieldSignature{Name: name, Type: typ}, nil
}

// HasType reports whether the signature carries a type.
func (s FieldSignature) HasType() bool {
	return s.Type != nil
}

// Untyped returns the signature without its type.
func (s FieldSignature) Untyped() FieldSignature {
	return FieldSignature{Name: s.Name}
}

func (s FieldSignature) String() string {
	if s.Type == nil {
		return s.Name
	}

	return s.Name + ":" + s.Type.String()
}

type fieldKey struct {
	name string
	typ  string
}

func (s FieldSignature) key() fieldKey {
	if s.Type == nil {
		return fieldKey{name: s.Name}
	}

	return fieldKey{name: s.Name, typ: s.Type.String()}
}

// MethodSignature identifies a method by name and descriptor.
type MethodSignature struct {
	Name       string
	Descriptor *descriptor.MethodDescriptor
}

// NewMethodSignature returns a method signature.
func NewMethodSignature(name string, desc *descriptor.MethodDescriptor) MethodSignature {
	return MethodSignature{Name: name, Descriptor: desc}
}

// ParseMethodSignature builds a signature from a name and a raw method descriptor.
func ParseMethodSignature(name, desc string) (MethodSignature, error) {
	d, err := descriptor.ParseMethodDescriptor(desc)
	if err != nil {
		return MethodSignature{}, fmt.Errorf("method %s: %w", name, err)
	}

	return MethodSignature{Name: name, Descriptor: d}, nil
}

// MustParseMethodSignature is like ParseMethodSignature but panics on error.
func MustParseMethodSignature(name, desc string) MethodSignature {
	sig, err := ParseMethodSignature(name, desc)
	if err != nil {
		panic(err)
	}

	return sig
}

// Equal reports whether both signatures have the same name and descriptor.
func (s MethodSignature) Equal(other MethodSignature) bool {
	return s.key() == other.key()
}

func (s MethodSignature) String() string {
	return s.key()
}

func (s MethodSignature) key() string {
	if s.Descriptor == nil {
		return s.Name
	}

	return s.Name + s.Descriptor.String()
}
