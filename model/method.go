package model

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/CadixDev/Lorenz-sub001/descriptor"
)

// ErrParameterIndex is returned when a parameter index is outside the
// method descriptor's parameter list.
var ErrParameterIndex = errors.New("parameter index out of range")

// MethodMapping maps one method of a class. The obfuscated descriptor is
// fixed at creation; the de-obfuscated descriptor is derived on every call.
type MethodMapping struct {
	parent    *ClassMapping
	sig       MethodSignature
	deobfName string
	params    map[int]*ParameterMapping
}

// Parent returns the declaring class mapping.
func (m *MethodMapping) Parent() *ClassMapping { return m.parent }

// Signature returns the obfuscated signature.
func (m *MethodMapping) Signature() MethodSignature { return m.sig }

// Descriptor returns the obfuscated descriptor.
func (m *MethodMapping) Descriptor() *descriptor.MethodDescriptor { return m.sig.Descriptor }

// ObfuscatedName returns the obfuscated method name.
func (m *MethodMapping) ObfuscatedName() string { return m.sig.Name }

// DeobfuscatedName returns the de-obfuscated method name.
func (m *MethodMapping) DeobfuscatedName() string { return m.deobfName }

// SetDeobfuscatedName sets the de-obfuscated method name.
func (m *MethodMapping) SetDeobfuscatedName(name string) *MethodMapping {
	m.deobfName = name
	return m
}

// HasDeobfuscatedName reports whether the method itself is renamed.
func (m *MethodMapping) HasDeobfuscatedName() bool {
	return m.sig.Name != m.deobfName
}

// HasMappings reports whether the method or any of its parameters is renamed.
func (m *MethodMapping) HasMappings() bool {
	if m.HasDeobfuscatedName() {
		return true
	}

	for _, p := range m.params {
		if p.HasDeobfuscatedName() {
			return true
		}
	}

	return false
}

// DeobfuscatedDescriptor returns the descriptor with every class name
// translated through the owning set's current mappings.
func (m *MethodMapping) DeobfuscatedDescriptor() *descriptor.MethodDescriptor {
	return m.parent.set.DeobfuscateMethodDescriptor(m.sig.Descriptor)
}

// DeobfuscatedSignature pairs the de-obfuscated name with the de-obfuscated descriptor.
func (m *MethodMapping) DeobfuscatedSignature() MethodSignature {
	return MethodSignature{Name: m.deobfName, Descriptor: m.DeobfuscatedDescriptor()}
}

// FullObfuscatedName returns "Owner/name" in the obfuscated namespace.
func (m *MethodMapping) FullObfuscatedName() string {
	return m.parent.FullObfuscatedName() + "/" + m.sig.Name
}

// FullDeobfuscatedName returns "Owner/name" in the de-obfuscated namespace.
func (m *MethodMapping) FullDeobfuscatedName() string {
	return m.parent.FullDeobfuscatedName() + "/" + m.deobfName
}

// Parameter returns the parameter mapping at index.
func (m *MethodMapping) Parameter(index int) (*ParameterMapping, bool) {
	p, ok := m.params[index]
	return p, ok
}

// GetOrCreateParameter returns the parameter mapping at index, creating it
// when the index is valid for the descriptor.
func (m *MethodMapping) GetOrCreateParameter(index int) (*ParameterMapping, error) {
	if p, ok := m.params[index]; ok {
		return p, nil
	}

	if index < 0 || index >= m.sig.Descriptor.Arity() {
		return nil, fmt.Errorf("%w: %d for %s", ErrParameterIndex, index, m.sig)
	}

	m.putParameter(index, strconv.Itoa(index))

	return m.params[index], nil
}

// CreateParameter returns the parameter mapping at index named deobfName.
func (m *MethodMapping) CreateParameter(index int, deobfName string) (*ParameterMapping, error) {
	p, err := m.GetOrCreateParameter(index)
	if err != nil {
		return nil, err
	}

	return p.SetDeobfuscatedName(deobfName), nil
}

// putParameter stores a parameter whose index was already validated.
func (m *MethodMapping) putParameter(index int, name string) {
	if m.params == nil {
		m.params = make(map[int]*ParameterMapping)
	}

	m.params[index] = &ParameterMapping{parent: m, index: index, deobfName: name}
}

// Parameters returns the parameter mappings ordered by index.
func (m *MethodMapping) Parameters() []*ParameterMapping {
	out := make([]*ParameterMapping, 0, len(m.params))
	for _, idx := range slices.Sorted(maps.Keys(m.params)) {
		out = append(out, m.params[idx])
	}

	return out
}

// ClearParameters drops every parameter mapping.
func (m *MethodMapping) ClearParameters() {
	m.params = nil
}

// ParameterMapping names one method parameter. Its obfuscated name is its index.
type ParameterMapping struct {
	parent    *MethodMapping
	index     int
	deobfName string
}

// Parent returns the owning method mapping.
func (p *ParameterMapping) Parent() *MethodMapping { return p.parent }

// Index returns the zero-based parameter index.
func (p *ParameterMapping) Index() int { return p.index }

// ObfuscatedName returns the index in decimal form.
func (p *ParameterMapping) ObfuscatedName() string { return strconv.Itoa(p.index) }

// DeobfuscatedName returns the parameter name.
func (p *ParameterMapping) DeobfuscatedName() string { return p.deobfName }

// SetDeobfuscatedName sets the parameter name.
func (p *ParameterMapping) SetDeobfuscatedName(name string) *ParameterMapping {
	p.deobfName = name
	return p
}

// HasDeobfuscatedName reports whether the parameter carries a name.
func (p *ParameterMapping) HasDeobfuscatedName() bool {
	return p.deobfName != p.ObfuscatedName()
}
