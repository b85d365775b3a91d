package model

import (
	"slices"
	"sync"

	"github.com/CadixDev/Lorenz-sub001/internal/common"
)

// ClassMapping maps one class. A top-level class has no parent and its names
// are full binary names ("foo/bar/A"); an inner class has a parent and its
// names are simple names ("1", "Entry").
type ClassMapping struct {
	set    *MappingSet
	parent *ClassMapping

	obfName   string
	deobfName string

	fields      []*FieldMapping
	fieldIndex  map[fieldKey]*FieldMapping
	methods     []*MethodMapping
	methodIndex map[string]*MethodMapping
	inners      []*ClassMapping
	innerIndex  map[string]*ClassMapping

	// completion state, see Complete
	inheritMu        sync.RWMutex
	completed        bool
	inheritedFields  map[fieldKey]*FieldMapping
	inheritedMethods map[string]*MethodMapping
}

func newClassMapping(set *MappingSet, parent *ClassMapping, obfName string) *ClassMapping {
	return &ClassMapping{
		set:         set,
		parent:      parent,
		obfName:     obfName,
		deobfName:   obfName,
		fieldIndex:  make(map[fieldKey]*FieldMapping),
		methodIndex: make(map[string]*MethodMapping),
		innerIndex:  make(map[string]*ClassMapping),
	}
}

// Set returns the owning mapping set.
func (c *ClassMapping) Set() *MappingSet { return c.set }

// Parent returns the enclosing class, or nil for a top-level class.
func (c *ClassMapping) Parent() *ClassMapping { return c.parent }

// IsTopLevel reports whether the class has no enclosing class.
func (c *ClassMapping) IsTopLevel() bool { return c.parent == nil }

// ObfuscatedName returns the name the class is keyed by in its container.
func (c *ClassMapping) ObfuscatedName() string { return c.obfName }

// DeobfuscatedName returns the de-obfuscated name in the same form as ObfuscatedName.
func (c *ClassMapping) DeobfuscatedName() string { return c.deobfName }

// SetDeobfuscatedName sets the de-obfuscated name. For inner classes a full
// name such as "foo/Bar$Baz" is reduced to its last segment.
func (c *ClassMapping) SetDeobfuscatedName(name string) *ClassMapping {
	if c.parent != nil {
		name = common.LastInner(name)
	}

	c.deobfName = name

	return c
}

// HasDeobfuscatedName reports whether the class is actually renamed.
func (c *ClassMapping) HasDeobfuscatedName() bool {
	return c.obfName != c.deobfName
}

// FullObfuscatedName returns the binary name including every enclosing class.
func (c *ClassMapping) FullObfuscatedName() string {
	if c.parent == nil {
		return c.obfName
	}

	return common.JoinInner(c.parent.FullObfuscatedName(), c.obfName)
}

// FullDeobfuscatedName returns the de-obfuscated binary name including every
// enclosing class.
func (c *ClassMapping) FullDeobfuscatedName() string {
	if c.parent == nil {
		return c.deobfName
	}

	return common.JoinInner(c.parent.FullDeobfuscatedName(), c.deobfName)
}

// SimpleObfuscatedName returns the name without package.
func (c *ClassMapping) SimpleObfuscatedName() string {
	_, simple := common.SplitPackage(c.obfName)
	return simple
}

// SimpleDeobfuscatedName returns the de-obfuscated name without package.
func (c *ClassMapping) SimpleDeobfuscatedName() string {
	_, simple := common.SplitPackage(c.deobfName)
	return simple
}

// ObfuscatedPackage returns the package of the outermost class.
func (c *ClassMapping) ObfuscatedPackage() string {
	if c.parent != nil {
		return c.parent.ObfuscatedPackage()
	}

	return common.PackageOf(c.obfName)
}

// DeobfuscatedPackage returns the de-obfuscated package of the outermost class.
func (c *ClassMapping) DeobfuscatedPackage() string {
	if c.parent != nil {
		return c.parent.DeobfuscatedPackage()
	}

	return common.PackageOf(c.deobfName)
}

// HasMappings reports whether the class or anything below it is renamed.
func (c *ClassMapping) HasMappings() bool {
	return c.HasDeobfuscatedName() ||
		slices.ContainsFunc(c.fields, (*FieldMapping).HasDeobfuscatedName) ||
		slices.ContainsFunc(c.methods, (*MethodMapping).HasMappings) ||
		slices.ContainsFunc(c.inners, (*ClassMapping).HasMappings)
}

// InnerClass returns the inner class with the given obfuscated simple name.
func (c *ClassMapping) InnerClass(obfName string) (*ClassMapping, bool) {
	inner, ok := c.innerIndex[obfName]
	return inner, ok
}

// GetOrCreateInnerClass returns the inner class for obfName, creating an
// identity mapping when none exists.
func (c *ClassMapping) GetOrCreateInnerClass(obfName string) *ClassMapping {
	if inner, ok := c.innerIndex[obfName]; ok {
		return inner
	}

	inner := newClassMapping(c.set, c, obfName)
	c.inners = append(c.inners, inner)
	c.innerIndex[obfName] = inner

	return inner
}

// CreateInnerClass returns the inner class for obfName renamed to deobfName.
func (c *ClassMapping) CreateInnerClass(obfName, deobfName string) *ClassMapping {
	return c.GetOrCreateInnerClass(obfName).SetDeobfuscatedName(deobfName)
}

// InnerClasses returns the inner classes in creation order.
func (c *ClassMapping) InnerClasses() []*ClassMapping {
	return slices.Clone(c.inners)
}

// ClearInnerClasses drops every inner class.
func (c *ClassMapping) ClearInnerClasses() {
	c.inners = nil
	c.innerIndex = make(map[string]*ClassMapping)
}

// Field returns the field with exactly the given signature.
func (c *ClassMapping) Field(sig FieldSignature) (*FieldMapping, bool) {
	f, ok := c.fieldIndex[sig.key()]
	return f, ok
}

// FieldByName returns the first declared field with the given obfuscated
// name, regardless of its type.
func (c *ClassMapping) FieldByName(name string) (*FieldMapping, bool) {
	return common.First(c.FieldsNamed(name))
}

// FieldsNamed returns every field with the given obfuscated name in creation order.
func (c *ClassMapping) FieldsNamed(name string) []*FieldMapping {
	return common.Filter(c.fields, func(f *FieldMapping) bool {
		return f.sig.Name == name
	})
}

// GetOrCreateField returns the field for sig, creating an identity mapping
// when none exists.
func (c *ClassMapping) GetOrCreateField(sig FieldSignature) *FieldMapping {
	key := sig.key()
	if f, ok := c.fieldIndex[key]; ok {
		return f
	}

	f := &FieldMapping{parent: c, sig: sig, deobfName: sig.Name}
	c.fields = append(c.fields, f)
	c.fieldIndex[key] = f

	return f
}

// CreateField returns the field for sig renamed to deobfName.
func (c *ClassMapping) CreateField(sig FieldSignature, deobfName string) *FieldMapping {
	return c.GetOrCreateField(sig).SetDeobfuscatedName(deobfName)
}

// ComputeField looks up a field by signature. A typed signature that has no
// exact match falls back to the untyped entry of the same name; the result
// is recorded under the typed signature.
func (c *ClassMapping) ComputeField(sig FieldSignature) (*FieldMapping, bool) {
	if f, ok := c.Field(sig); ok || !sig.HasType() {
		return f, ok
	}

	untyped, ok := c.Field(sig.Untyped())
	if !ok {
		return nil, false
	}

	return c.CreateField(sig, untyped.deobfName), true
}

// Fields returns the fields in creation order.
func (c *ClassMapping) Fields() []*FieldMapping {
	return slices.Clone(c.fields)
}

// RemoveField drops the field with the given signature.
func (c *ClassMapping) RemoveField(sig FieldSignature) bool {
	key := sig.key()

	f, ok := c.fieldIndex[key]
	if !ok {
		return false
	}

	delete(c.fieldIndex, key)
	c.fields = slices.DeleteFunc(c.fields, func(other *FieldMapping) bool { return other == f })

	return true
}

// ClearFields drops every field.
func (c *ClassMapping) ClearFields() {
	c.fields = nil
	c.fieldIndex = make(map[fieldKey]*FieldMapping)
}

// Method returns the method with the given signature.
func (c *ClassMapping) Method(sig MethodSignature) (*MethodMapping, bool) {
	m, ok := c.methodIndex[sig.key()]
	return m, ok
}

// MethodsNamed returns every overload with the given obfuscated name in creation order.
func (c *ClassMapping) MethodsNamed(name string) []*MethodMapping {
	return common.Filter(c.methods, func(m *MethodMapping) bool {
		return m.sig.Name == name
	})
}

// GetOrCreateMethod returns the method for sig, creating an identity mapping
// when none exists.
func (c *ClassMapping) GetOrCreateMethod(sig MethodSignature) *MethodMapping {
	key := sig.key()
	if m, ok := c.methodIndex[key]; ok {
		return m
	}

	m := &MethodMapping{parent: c, sig: sig, deobfName: sig.Name}
	c.methods = append(c.methods, m)
	c.methodIndex[key] = m

	return m
}

// CreateMethod returns the method for sig renamed to deobfName.
func (c *ClassMapping) CreateMethod(sig MethodSignature, deobfName string) *MethodMapping {
	return c.GetOrCreateMethod(sig).SetDeobfuscatedName(deobfName)
}

// Methods returns the methods in creation order.
func (c *ClassMapping) Methods() []*MethodMapping {
	return slices.Clone(c.methods)
}

// RemoveMethod drops the method with the given signature.
func (c *ClassMapping) RemoveMethod(sig MethodSignature) bool {
	key := sig.key()

	m, ok := c.methodIndex[key]
	if !ok {
		return false
	}

	delete(c.methodIndex, key)
	c.methods = slices.DeleteFunc(c.methods, func(other *MethodMapping) bool { return other == m })

	return true
}

// ClearMethods drops every method.
func (c *ClassMapping) ClearMethods() {
	c.methods = nil
	c.methodIndex = make(map[string]*MethodMapping)
}

func (c *ClassMapping) String() string {
	return c.FullObfuscatedName() + " -> " + c.FullDeobfuscatedName()
}
