package model

import (
	"slices"

	"github.com/CadixDev/Lorenz-sub001/descriptor"
	"github.com/CadixDev/Lorenz-sub001/internal/common"
)

// Complete records, on this class, the field and method mappings it inherits
// from its supertypes as reported by provider. The superclass is searched
// before the interfaces, depth first; members declared on the class itself
// always win and the first inherited answer for a signature is kept.
//
// Completion runs once per class and is serialised per class, so classes may
// be completed from several goroutines. Supertypes that have no mapping of
// their own are walked through without being added to the set. Complete
// reports whether this call did the work.
func (c *ClassMapping) Complete(provider InheritanceProvider) bool {
	return c.complete(provider, make(map[string]bool))
}

// IsComplete reports whether Complete has run for the class.
func (c *ClassMapping) IsComplete() bool {
	c.inheritMu.RLock()
	defer c.inheritMu.RUnlock()

	return c.completed
}

// ResolveField returns the field mapping for sig declared on the class or
// recorded by Complete. Typed lookups fall back to untyped entries.
func (c *ClassMapping) ResolveField(sig FieldSignature) (*FieldMapping, bool) {
	if f, ok := c.ownField(sig); ok {
		return f, true
	}

	c.inheritMu.RLock()
	defer c.inheritMu.RUnlock()

	if f, ok := c.inheritedFields[sig.key()]; ok {
		return f, true
	}

	if sig.HasType() {
		f, ok := c.inheritedFields[sig.Untyped().key()]
		return f, ok
	}

	return nil, false
}

// ResolveMethod returns the method mapping for sig declared on the class or
// recorded by Complete.
func (c *ClassMapping) ResolveMethod(sig MethodSignature) (*MethodMapping, bool) {
	if m, ok := c.Method(sig); ok {
		return m, true
	}

	c.inheritMu.RLock()
	defer c.inheritMu.RUnlock()

	m, ok := c.inheritedMethods[sig.key()]

	return m, ok
}

func (c *ClassMapping) ownField(sig FieldSignature) (*FieldMapping, bool) {
	if f, ok := c.Field(sig); ok || !sig.HasType() {
		return f, ok
	}

	return c.Field(sig.Untyped())
}

// complete walks the hierarchy of c. path holds the classes currently being
// walked and cuts cycles in malformed hierarchies.
func (c *ClassMapping) complete(provider InheritanceProvider, path map[string]bool) bool {
	name := c.FullObfuscatedName()
	if path[name] {
		return false
	}

	c.inheritMu.Lock()
	defer c.inheritMu.Unlock()

	if c.completed {
		return false
	}

	path[name] = true
	defer delete(path, name)

	if info, ok := provider.ProvideInheritance(name); ok {
		c.inheritFrom(provider, info, path)
		c.inheritOverrides(provider, info.Methods)
	}

	c.completed = true

	return true
}

func (c *ClassMapping) inheritFrom(provider InheritanceProvider, info ClassInfo, path map[string]bool) {
	for _, parent := range info.Parents() {
		if path[parent] {
			continue
		}

		if node, ok := c.set.ClassMapping(parent); ok {
			node.complete(provider, path)
			c.absorb(node)

			continue
		}

		parentInfo, ok := provider.ProvideInheritance(parent)
		if !ok {
			continue
		}

		path[parent] = true
		c.inheritFrom(provider, parentInfo, path)
		delete(path, parent)
	}
}

// absorb copies the members visible on parent into the inherited tables of c.
// Caller holds c.inheritMu.
func (c *ClassMapping) absorb(parent *ClassMapping) {
	if c.inheritedFields == nil {
		c.inheritedFields = make(map[fieldKey]*FieldMapping)
		c.inheritedMethods = make(map[string]*MethodMapping)
	}

	for _, f := range parent.fields {
		c.inheritField(f)
	}

	for _, m := range parent.methods {
		c.inheritMethod(m)
	}

	parent.inheritMu.RLock()
	defer parent.inheritMu.RUnlock()

	for _, f := range parent.inheritedFields {
		c.inheritField(f)
	}

	for _, m := range parent.inheritedMethods {
		c.inheritMethod(m)
	}
}

func (c *ClassMapping) inheritField(f *FieldMapping) {
	key := f.sig.key()
	if _, own := c.fieldIndex[key]; own {
		return
	}

	if _, seen := c.inheritedFields[key]; !seen {
		c.inheritedFields[key] = f
	}
}

func (c *ClassMapping) inheritMethod(m *MethodMapping) {
	key := m.sig.key()
	if _, own := c.methodIndex[key]; own {
		return
	}

	if _, seen := c.inheritedMethods[key]; !seen {
		c.inheritedMethods[key] = m
	}
}

// inheritOverrides maps each declared method that overrides an inherited one
// with the same parameters and a narrower return type to the inherited
// mapping. Caller holds c.inheritMu.
func (c *ClassMapping) inheritOverrides(provider InheritanceProvider, declared []MethodSignature) {
	if len(declared) == 0 || len(c.inheritedMethods) == 0 {
		return
	}

	keys := make([]string, 0, len(c.inheritedMethods))
	for key := range c.inheritedMethods {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, key := range keys {
		parent := c.inheritedMethods[key]

		for _, sig := range declared {
			if sig.Name != parent.ObfuscatedName() || sig.Descriptor == nil || parent.Descriptor() == nil {
				continue
			}

			if !sameParams(sig.Descriptor, parent.Descriptor()) {
				continue
			}

			if !isAssignable(parent.Descriptor().Return, sig.Descriptor.Return, provider) {
				continue
			}

			k := sig.key()
			if _, own := c.methodIndex[k]; own {
				continue
			}

			if _, seen := c.inheritedMethods[k]; !seen {
				c.inheritedMethods[k] = parent
			}
		}
	}
}

func sameParams(a, b *descriptor.MethodDescriptor) bool {
	return slices.EqualFunc(a.Params, b.Params, func(x, y descriptor.FieldType) bool {
		return descriptor.Equal(x, y)
	})
}

// isAssignable reports whether a value of type from can be returned where to
// is declared, walking the class hierarchy through provider.
func isAssignable(to, from descriptor.Type, provider InheritanceProvider) bool {
	if descriptor.Equal(to, from) {
		return true
	}

	switch t := to.(type) {
	case *descriptor.ObjectType:
		switch f := from.(type) {
		case *descriptor.ObjectType:
			return t.ClassName == common.ObjectClass || isSubclass(f.ClassName, t.ClassName, provider)
		case *descriptor.ArrayType:
			return t.ClassName == common.ObjectClass
		}
	case *descriptor.ArrayType:
		f, ok := from.(*descriptor.ArrayType)
		if !ok || f.Dims != t.Dims {
			return false
		}

		return isAssignable(t.Component, f.Component, provider)
	}

	return false
}

func isSubclass(name, ancestor string, provider InheritanceProvider) bool {
	seen := map[string]bool{name: true}
	queue := []string{name}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		info, ok := provider.ProvideInheritance(current)
		if !ok {
			continue
		}

		for _, parent := range info.Parents() {
			if parent == ancestor {
				return true
			}

			if !seen[parent] {
				seen[parent] = true
				queue = append(queue, parent)
			}
		}
	}

	return false
}
