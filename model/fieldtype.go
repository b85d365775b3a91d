package model

import (
	"reflect"
	"slices"
	"sync"

	"github.com/CadixDev/Lorenz-sub001/descriptor"
)

// FieldTypeProvider answers the declared type of a field whose mapping does
// not carry one. It is only consulted when a caller asks for the type.
type FieldTypeProvider interface {
	ProvideFieldType(field *FieldMapping) (descriptor.FieldType, bool)
}

// FieldTypeProviderFunc adapts a function to FieldTypeProvider.
type FieldTypeProviderFunc func(field *FieldMapping) (descriptor.FieldType, bool)

// ProvideFieldType calls fn.
func (fn FieldTypeProviderFunc) ProvideFieldType(field *FieldMapping) (descriptor.FieldType, bool) {
	return fn(field)
}

// CompositeFieldTypeProvider asks its providers in order and returns the
// first answer.
type CompositeFieldTypeProvider struct {
	mu        sync.RWMutex
	providers []FieldTypeProvider
}

// NewCompositeFieldTypeProvider returns a chain of the given providers.
func NewCompositeFieldTypeProvider(providers ...FieldTypeProvider) *CompositeFieldTypeProvider {
	return &CompositeFieldTypeProvider{providers: providers}
}

// ProvideFieldType implements FieldTypeProvider.
func (c *CompositeFieldTypeProvider) ProvideFieldType(field *FieldMapping) (descriptor.FieldType, bool) {
	c.mu.RLock()
	providers := c.providers
	c.mu.RUnlock()

	for _, p := range providers {
		if t, ok := p.ProvideFieldType(field); ok {
			return t, true
		}
	}

	return nil, false
}

// Add appends p to the end of the chain.
func (c *CompositeFieldTypeProvider) Add(p FieldTypeProvider) *CompositeFieldTypeProvider {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.providers = append(slices.Clip(c.providers), p)

	return c
}

// Insert places p at position i, clamped to the chain bounds.
func (c *CompositeFieldTypeProvider) Insert(i int, p FieldTypeProvider) *CompositeFieldTypeProvider {
	c.mu.Lock()
	defer c.mu.Unlock()

	i = max(0, min(i, len(c.providers)))
	c.providers = slices.Insert(slices.Clone(c.providers), i, p)

	return c
}

// Remove drops the first occurrence of p. Providers of non-comparable types,
// such as plain FieldTypeProviderFunc values, cannot be removed.
func (c *CompositeFieldTypeProvider) Remove(p FieldTypeProvider) bool {
	if p == nil || !reflect.TypeOf(p).Comparable() {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.providers {
		if reflect.TypeOf(existing) == reflect.TypeOf(p) && existing == p {
			c.providers = slices.Delete(slices.Clone(c.providers), i, i+1)
			return true
		}
	}

	return false
}

// Len returns the number of providers in the chain.
func (c *CompositeFieldTypeProvider) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.providers)
}
