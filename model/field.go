package model

import "github.com/CadixDev/Lorenz-sub001/descriptor"

// FieldMapping maps one field of a class.
type FieldMapping struct {
	parent    *ClassMapping
	sig       FieldSignature
	deobfName string
}

// Parent returns the declaring class mapping.
func (f *FieldMapping) Parent() *ClassMapping { return f.parent }

// Signature returns the obfuscated signature the field is keyed by.
func (f *FieldMapping) Signature() FieldSignature { return f.sig }

// ObfuscatedName returns the obfuscated field name.
func (f *FieldMapping) ObfuscatedName() string { return f.sig.Name }

// DeobfuscatedName returns the de-obfuscated field name.
func (f *FieldMapping) DeobfuscatedName() string { return f.deobfName }

// SetDeobfuscatedName sets the de-obfuscated field name.
func (f *FieldMapping) SetDeobfuscatedName(name string) *FieldMapping {
	f.deobfName = name
	return f
}

// HasDeobfuscatedName reports whether the field is actually renamed.
func (f *FieldMapping) HasDeobfuscatedName() bool {
	return f.sig.Name != f.deobfName
}

// Type returns the obfuscated type of the field: the type from its signature
// when present, else the answer of the owning set's field type chain.
func (f *FieldMapping) Type() (descriptor.FieldType, bool) {
	if f.sig.Type != nil {
		return f.sig.Type, true
	}

	return f.parent.set.fieldTypes.ProvideFieldType(f)
}

// DeobfuscatedType returns the field type translated through the owning set.
func (f *FieldMapping) DeobfuscatedType() (descriptor.FieldType, bool) {
	t, ok := f.Type()
	if !ok {
		return nil, false
	}

	return f.parent.set.DeobfuscateFieldType(t), true
}

// DeobfuscatedSignature returns the de-obfuscated name paired with the
// de-obfuscated type, if the type is known.
func (f *FieldMapping) DeobfuscatedSignature() FieldSignature {
	t, _ := f.DeobfuscatedType()
	return FieldSignature{Name: f.deobfName, Type: t}
}

// FullObfuscatedName returns "Owner/name" in the obfuscated namespace.
func (f *FieldMapping) FullObfuscatedName() string {
	return f.parent.FullObfuscatedName() + "/" + f.sig.Name
}

// FullDeobfuscatedName returns "Owner/name" in the de-obfuscated namespace.
func (f *FieldMapping) FullDeobfuscatedName() string {
	return f.parent.FullDeobfuscatedName() + "/" + f.deobfName
}
