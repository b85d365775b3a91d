package match

import (
	"github.com/CadixDev/Lorenz-sub001/descriptor"
)

// Compatibility levels of two method descriptors.
const (
	// Identical descriptors.
	Identical = 1.0
	// SameShape descriptors agree on arity and on which parameters are
	// primitive, arrays or objects, with any class names.
	SameShape = 0.75
	// SameArity descriptors only agree on the parameter count.
	SameArity = 0.4
	// Unrelated descriptors differ in parameter count.
	Unrelated = 0.0
)

// DescriptorCompatibility scores how alike a and b are. Missing descriptors
// score zero.
func DescriptorCompatibility(a, b *descriptor.MethodDescriptor) float64 {
	if a == nil || b == nil {
		return Unrelated
	}

	if descriptor.EqualMethods(a, b) {
		return Identical
	}

	if a.Arity() != b.Arity() {
		return Unrelated
	}

	if !sameShape(a.Return, b.Return) {
		return SameArity
	}

	for i := range a.Params {
		if !sameShape(a.Params[i], b.Params[i]) {
			return SameArity
		}
	}

	return SameShape
}

// sameShape compares two types ignoring class names.
func sameShape(a, b descriptor.Type) bool {
	switch at := a.(type) {
	case *descriptor.ObjectType:
		_, ok := b.(*descriptor.ObjectType)
		return ok
	case *descriptor.ArrayType:
		bt, ok := b.(*descriptor.ArrayType)
		return ok && at.Dims == bt.Dims && sameShape(at.Component, bt.Component)
	default:
		return descriptor.Equal(a, b)
	}
}
