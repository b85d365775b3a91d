package descriptor

import "strings"

// Type is any value that may appear as a method return type: a FieldType or Void.
type Type interface {
	// String renders the raw descriptor.
	String() string
	isType()
}

// FieldType is a type that can be held by a field or passed as a parameter.
// Implemented by PrimitiveType, *ObjectType and *ArrayType.
type FieldType interface {
	Type
	isFieldType()
}

// VoidType is the "V" return type.
type VoidType struct{}

// Void is the only VoidType value.
var Void = VoidType{}

func (VoidType) String() string { return "V" }
func (VoidType) isType()        {}

// ObjectType references a class by its binary name (slash separated).
type ObjectType struct {
	ClassName string
}

// NewObjectType returns an object type for the given binary class name.
func NewObjectType(className string) *ObjectType {
	return &ObjectType{ClassName: className}
}

func (o *ObjectType) String() string { return "L" + o.ClassName + ";" }
func (*ObjectType) isType()          {}
func (*ObjectType) isFieldType()     {}

// ArrayType is an array of Dims dimensions over a non-array component.
type ArrayType struct {
	Dims      int
	Component FieldType
}

// NewArrayType returns an array type. Nested arrays are flattened so that
// the component is never itself an array.
func NewArrayType(dims int, component FieldType) *ArrayType {
	if inner, ok := component.(*ArrayType); ok {
		return &ArrayType{Dims: dims + inner.Dims, Component: inner.Component}
	}

	return &ArrayType{Dims: dims, Component: component}
}

func (a *ArrayType) String() string {
	return strings.Repeat("[", a.Dims) + a.Component.String()
}

func (*ArrayType) isType()      {}
func (*ArrayType) isFieldType() {}

// MethodDescriptor holds the parameter types and the return type of a method.
type MethodDescriptor struct {
	Params []FieldType
	Return Type
}

// NewMethodDescriptor returns a descriptor for the given return and parameter types.
func NewMethodDescriptor(ret Type, params ...FieldType) *MethodDescriptor {
	return &MethodDescriptor{Params: params, Return: ret}
}

// Arity returns the number of declared parameters.
func (m *MethodDescriptor) Arity() int {
	if m == nil {
		return 0
	}

	return len(m.Params)
}

func (m *MethodDescriptor) String() string {
	var sb strings.Builder

	sb.WriteByte('(')

	for _, p := range m.Params {
		sb.WriteString(p.String())
	}

	sb.WriteByte(')')
	sb.WriteString(m.Return.String())

	return sb.String()
}

// Equal reports whether two types render to the same descriptor.
// A nil type only equals another nil type.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.String() == b.String()
}

// EqualMethods reports whether two method descriptors are the same.
func EqualMethods(a, b *MethodDescriptor) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.String() == b.String()
}
