package model

import (
	"slices"
	"strings"
	"sync"

	"github.com/CadixDev/Lorenz-sub001/descriptor"
	"github.com/CadixDev/Lorenz-sub001/internal/common"
)

// MappingSet is the root of a renaming model. It owns the top-level class
// mappings, keyed by obfuscated binary name, and the field type provider
// chain consulted for untyped fields.
type MappingSet struct {
	mu      sync.RWMutex
	classes map[string]*ClassMapping

	fieldTypes *CompositeFieldTypeProvider
}

// NewMappingSet returns an empty set.
func NewMappingSet() *MappingSet {
	return &MappingSet{
		classes:    make(map[string]*ClassMapping),
		fieldTypes: NewCompositeFieldTypeProvider(),
	}
}

// TopLevelClass returns the top-level class mapping with the given obfuscated name.
func (s *MappingSet) TopLevelClass(obfName string) (*ClassMapping, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.classes[obfName]

	return c, ok
}

// GetOrCreateTopLevelClass returns the mapping for obfName, creating an
// identity mapping when none exists.
func (s *MappingSet) GetOrCreateTopLevelClass(obfName string) *ClassMapping {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.classes[obfName]; ok {
		return c
	}

	c := newClassMapping(s, nil, obfName)
	s.classes[obfName] = c

	return c
}

// CreateTopLevelClass returns the mapping for obfName with its de-obfuscated
// name set to deobfName.
func (s *MappingSet) CreateTopLevelClass(obfName, deobfName string) *ClassMapping {
	c := s.GetOrCreateTopLevelClass(obfName)
	c.SetDeobfuscatedName(deobfName)

	return c
}

// TopLevelClasses returns the top-level class mappings ordered by obfuscated name.
func (s *MappingSet) TopLevelClasses() []*ClassMapping {
	s.mu.RLock()
	out := make([]*ClassMapping, 0, len(s.classes))

	for _, c := range s.classes {
		out = append(out, c)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *ClassMapping) int {
		return strings.Compare(a.obfName, b.obfName)
	})

	return out
}

// Len returns the number of top-level class mappings.
func (s *MappingSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.classes)
}

// Clear removes every class mapping.
func (s *MappingSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.classes = make(map[string]*ClassMapping)
}

// ClassMapping looks up a class by its full obfuscated name, following inner
// class segments ("a/B$C"). Nothing is created.
func (s *MappingSet) ClassMapping(fullObfName string) (*ClassMapping, bool) {
	parts := common.SplitInner(fullObfName)

	c, ok := s.TopLevelClass(parts[0])
	if !ok {
		return nil, false
	}

	for _, part := range parts[1:] {
		c, ok = c.InnerClass(part)
		if !ok {
			return nil, false
		}
	}

	return c, true
}

// GetOrCreateClassMapping resolves a full obfuscated name, creating identity
// mappings for every missing class along the way.
func (s *MappingSet) GetOrCreateClassMapping(fullObfName string) *ClassMapping {
	parts := common.SplitInner(fullObfName)

	c := s.GetOrCreateTopLevelClass(parts[0])
	for _, part := range parts[1:] {
		c = c.GetOrCreateInnerClass(part)
	}

	return c
}

// ComputeClassMapping resolves a full obfuscated name, creating only the
// innermost class when its outer class is already mapped. It reports false
// when any outer class is missing.
func (s *MappingSet) ComputeClassMapping(fullObfName string) (*ClassMapping, bool) {
	idx := strings.LastIndex(fullObfName, common.InnerSeparator)
	if idx < 0 {
		return s.TopLevelClass(fullObfName)
	}

	outer, ok := s.ClassMapping(fullObfName[:idx])
	if !ok {
		return nil, false
	}

	return outer.GetOrCreateInnerClass(fullObfName[idx+1:]), true
}

// DeobfuscateClassName translates a full obfuscated class name. Segments
// without a mapping keep their obfuscated text; an unmapped top-level class
// yields the input unchanged.
func (s *MappingSet) DeobfuscateClassName(fullObfName string) string {
	parts := common.SplitInner(fullObfName)

	c, ok := s.TopLevelClass(parts[0])
	if !ok {
		return fullObfName
	}

	var sb strings.Builder

	sb.WriteString(c.deobfName)

	for i, part := range parts[1:] {
		inner, found := c.InnerClass(part)
		if !found {
			for _, rest := range parts[i+1:] {
				sb.WriteString(common.InnerSeparator)
				sb.WriteString(rest)
			}

			break
		}

		sb.WriteString(common.InnerSeparator)
		sb.WriteString(inner.deobfName)
		c = inner
	}

	return sb.String()
}

// DeobfuscateFieldType translates every class name referenced by t.
func (s *MappingSet) DeobfuscateFieldType(t descriptor.FieldType) descriptor.FieldType {
	if t == nil {
		return nil
	}

	return descriptor.SubstituteFieldType(t, s.DeobfuscateClassName)
}

// DeobfuscateMethodDescriptor translates every class name referenced by d.
func (s *MappingSet) DeobfuscateMethodDescriptor(d *descriptor.MethodDescriptor) *descriptor.MethodDescriptor {
	return descriptor.SubstituteMethod(d, s.DeobfuscateClassName)
}

// FieldTypeProvider returns the chain consulted for fields without a declared type.
func (s *MappingSet) FieldTypeProvider() *CompositeFieldTypeProvider {
	return s.fieldTypes
}

// AddFieldTypeProvider appends p to the field type chain.
func (s *MappingSet) AddFieldTypeProvider(p FieldTypeProvider) *MappingSet {
	s.fieldTypes.Add(p)
	return s
}

// RemoveFieldTypeProvider removes p from the field type chain.
func (s *MappingSet) RemoveFieldTypeProvider(p FieldTypeProvider) bool {
	return s.fieldTypes.Remove(p)
}

// HasMappings reports whether any class in the set renames anything.
func (s *MappingSet) HasMappings() bool {
	return slices.ContainsFunc(s.TopLevelClasses(), (*ClassMapping).HasMappings)
}
