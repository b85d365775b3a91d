package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CadixDev/Lorenz-sub001/descriptor"
)

func TestReverse(t *testing.T) {
	set := NewMappingSet()
	set.CreateTopLevelClass("C", "bar/baz/D")
	a := set.CreateTopLevelClass("A", "foo/bar/B")
	a.CreateField(NewFieldSignature("f", descriptor.NewObjectType("C")), "field")
	m := a.CreateMethod(MustParseMethodSignature("m", "(LC;I)V"), "method")
	_, err := m.CreateParameter(0, "value")
	require.NoError(t, err)
	a.CreateInnerClass("1", "Inner").CreateField(NewFieldSignature("x", nil), "y")

	reversed := set.Reverse()

	b, ok := reversed.TopLevelClass("foo/bar/B")
	require.True(t, ok)
	assert.Equal(t, "A", b.DeobfuscatedName())

	f, ok := b.Field(NewFieldSignature("field", descriptor.NewObjectType("bar/baz/D")))
	require.True(t, ok)
	assert.Equal(t, "f", f.DeobfuscatedName())

	rm, ok := b.Method(MustParseMethodSignature("method", "(Lbar/baz/D;I)V"))
	require.True(t, ok)
	assert.Equal(t, "m", rm.DeobfuscatedName())
	assert.Equal(t, "(LC;I)V", rm.DeobfuscatedDescriptor().String())
	assert.Empty(t, rm.Parameters())

	assert.Equal(t, "A$1", reversed.DeobfuscateClassName("foo/bar/B$Inner"))
	assert.Equal(t, "C", reversed.DeobfuscateClassName("bar/baz/D"))

	inner, ok := reversed.ClassMapping("foo/bar/B$Inner")
	require.True(t, ok)

	x, ok := inner.FieldByName("y")
	require.True(t, ok)
	assert.Equal(t, "x", x.DeobfuscatedName())
}

func TestCopyIsIndependent(t *testing.T) {
	set := NewMappingSet()
	provider := &namedTypeProvider{name: "f", typ: descriptor.Int}
	set.AddFieldTypeProvider(provider)

	a := set.CreateTopLevelClass("A", "B")
	m := a.CreateMethod(MustParseMethodSignature("m", "(I)V"), "n")
	_, err := m.CreateParameter(0, "p")
	require.NoError(t, err)
	a.CreateField(NewFieldSignature("f", nil), "g")
	a.CreateInnerClass("1", "Inner")

	cp := set.Copy()
	set.CreateTopLevelClass("A", "Changed")

	ca, ok := cp.TopLevelClass("A")
	require.True(t, ok)
	assert.Equal(t, "B", ca.DeobfuscatedName())
	assert.NotSame(t, a, ca)

	cm, ok := ca.Method(MustParseMethodSignature("m", "(I)V"))
	require.True(t, ok)

	p, ok := cm.Parameter(0)
	require.True(t, ok)
	assert.Equal(t, "p", p.DeobfuscatedName())

	cf, ok := ca.FieldByName("f")
	require.True(t, ok)

	typ, ok := cf.Type()
	require.True(t, ok)
	assert.Equal(t, descriptor.Int, typ)

	assert.True(t, cp.RemoveFieldTypeProvider(provider))
	assert.Equal(t, 1, set.FieldTypeProvider().Len())

	_, ok = cp.ClassMapping("A$1")
	assert.True(t, ok)
}
