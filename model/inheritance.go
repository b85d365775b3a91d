package model

// ClassInfo describes the direct supertypes of a class.
type ClassInfo struct {
	// Name is the full obfuscated binary name of the class.
	Name string
	// SuperName is the direct superclass; empty when unknown or absent.
	SuperName string
	// Interfaces lists the directly implemented interfaces in declaration order.
	Interfaces []string
	// Methods optionally lists the methods the class declares. Completion
	// uses it to map covariant-return overrides to the overridden method.
	Methods []MethodSignature
}

// Parents returns the superclass followed by the interfaces.
func (i ClassInfo) Parents() []string {
	parents := make([]string, 0, len(i.Interfaces)+1)
	if i.SuperName != "" {
		parents = append(parents, i.SuperName)
	}

	return append(parents, i.Interfaces...)
}

// InheritanceProvider supplies hierarchy facts for classes the model does not
// describe itself. A false result means nothing is known about the class.
type InheritanceProvider interface {
	ProvideInheritance(className string) (ClassInfo, bool)
}

// InheritanceProviderFunc adapts a function to InheritanceProvider.
type InheritanceProviderFunc func(className string) (ClassInfo, bool)

// ProvideInheritance calls fn.
func (fn InheritanceProviderFunc) ProvideInheritance(className string) (ClassInfo, bool) {
	return fn(className)
}

// CompositeInheritanceProvider asks each provider in order and returns the first answer.
type CompositeInheritanceProvider []InheritanceProvider

// ProvideInheritance implements InheritanceProvider.
func (c CompositeInheritanceProvider) ProvideInheritance(className string) (ClassInfo, bool) {
	for _, p := range c {
		if info, ok := p.ProvideInheritance(className); ok {
			return info, true
		}
	}

	return ClassInfo{}, false
}

// StaticInheritanceProvider answers from a fixed table keyed by class name.
type StaticInheritanceProvider map[string]ClassInfo

// ProvideInheritance implements InheritanceProvider.
func (s StaticInheritanceProvider) ProvideInheritance(className string) (ClassInfo, bool) {
	info, ok := s[className]
	if ok && info.Name == "" {
		info.Name = className
	}

	return info, ok
}
