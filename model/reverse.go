package model

// Reverse returns a new set mapping the de-obfuscated namespace back to the
// obfuscated one. Field types and method descriptors are translated into the
// de-obfuscated namespace so that they key the reversed members correctly.
// Parameter names have no obfuscated counterpart and are not carried over.
func (s *MappingSet) Reverse() *MappingSet {
	out := NewMappingSet()

	for _, c := range s.TopLevelClasses() {
		reversed := out.CreateTopLevelClass(c.deobfName, c.obfName)
		c.reverseMembers(reversed)
	}

	return out
}

func (c *ClassMapping) reverseMembers(into *ClassMapping) {
	for _, f := range c.fields {
		into.CreateField(f.DeobfuscatedSignature(), f.sig.Name)
	}

	for _, m := range c.methods {
		into.CreateMethod(m.DeobfuscatedSignature(), m.sig.Name)
	}

	for _, inner := range c.inners {
		reversed := into.CreateInnerClass(inner.deobfName, inner.obfName)
		inner.reverseMembers(reversed)
	}
}

// Copy returns a deep copy of the set. The copy starts with the same field
// type providers but has its own chain.
func (s *MappingSet) Copy() *MappingSet {
	out := NewMappingSet()

	s.fieldTypes.mu.RLock()
	for _, p := range s.fieldTypes.providers {
		out.fieldTypes.Add(p)
	}
	s.fieldTypes.mu.RUnlock()

	for _, c := range s.TopLevelClasses() {
		c.copyInto(out.CreateTopLevelClass(c.obfName, c.deobfName))
	}

	return out
}

func (c *ClassMapping) copyInto(into *ClassMapping) {
	for _, f := range c.fields {
		into.CreateField(f.sig, f.deobfName)
	}

	for _, m := range c.methods {
		copied := into.CreateMethod(m.sig, m.deobfName)
		for _, p := range m.Parameters() {
			copied.putParameter(p.index, p.deobfName)
		}
	}

	for _, inner := range c.inners {
		inner.copyInto(into.CreateInnerClass(inner.obfName, inner.deobfName))
	}
}
