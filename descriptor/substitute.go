package descriptor

// NameFunc maps a binary class name to its replacement.
type NameFunc func(className string) string

// SubstituteFieldType replaces every class name referenced by t.
// The same value is returned when nothing changes.
func SubstituteFieldType(t FieldType, fn NameFunc) FieldType {
	switch v := t.(type) {
	case *ObjectType:
		mapped := fn(v.ClassName)
		if mapped == v.ClassName {
			return v
		}

		return &ObjectType{ClassName: mapped}
	case *ArrayType:
		component := SubstituteFieldType(v.Component, fn)
		if component == v.Component {
			return v
		}

		return &ArrayType{Dims: v.Dims, Component: component}
	default:
		return t
	}
}

// SubstituteType is SubstituteFieldType extended to Void.
func SubstituteType(t Type, fn NameFunc) Type {
	if ft, ok := t.(FieldType); ok {
		return SubstituteFieldType(ft, fn)
	}

	return t
}

// SubstituteMethod replaces every class name in the parameters and return type of d.
// d itself is returned when no parameter and no return type changes.
func SubstituteMethod(d *MethodDescriptor, fn NameFunc) *MethodDescriptor {
	if d == nil {
		return nil
	}

	var params []FieldType

	for i, p := range d.Params {
		mapped := SubstituteFieldType(p, fn)
		if params == nil && mapped != p {
			params = make([]FieldType, len(d.Params))
			copy(params, d.Params[:i])
		}

		if params != nil {
			params[i] = mapped
		}
	}

	ret := SubstituteType(d.Return, fn)
	if params == nil && ret == d.Return {
		return d
	}

	if params == nil {
		params = d.Params
	}

	return &MethodDescriptor{Params: params, Return: ret}
}
