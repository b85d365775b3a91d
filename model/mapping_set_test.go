package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CadixDev/Lorenz-sub001/descriptor"
)

func TestGetOrCreateTopLevelClassDefaultsToIdentity(t *testing.T) {
	set := NewMappingSet()

	c := set.GetOrCreateTopLevelClass("foo/bar/A")
	assert.Equal(t, "foo/bar/A", c.DeobfuscatedName())
	assert.False(t, c.HasDeobfuscatedName())
	assert.True(t, c.IsTopLevel())
	assert.Nil(t, c.Parent())
	assert.Same(t, set, c.Set())

	assert.Same(t, c, set.GetOrCreateTopLevelClass("foo/bar/A"))

	got, ok := set.TopLevelClass("foo/bar/A")
	require.True(t, ok)
	assert.Same(t, c, got)

	_, ok = set.TopLevelClass("foo/bar/B")
	assert.False(t, ok)
}

func TestCreateTopLevelClassLastWriteWins(t *testing.T) {
	set := NewMappingSet()

	set.CreateTopLevelClass("a", "First")
	c := set.CreateTopLevelClass("a", "Second")
	c.SetDeobfuscatedName("Second")

	assert.Equal(t, "Second", c.DeobfuscatedName())
	assert.Equal(t, 1, set.Len())
}

func TestTopLevelClassesSorted(t *testing.T) {
	set := NewMappingSet()
	set.GetOrCreateTopLevelClass("c")
	set.GetOrCreateTopLevelClass("a")
	set.GetOrCreateTopLevelClass("b")

	var names []string
	for _, c := range set.TopLevelClasses() {
		names = append(names, c.ObfuscatedName())
	}

	assert.Equal(t, []string{"a", "b", "c"}, names)

	set.Clear()
	assert.Zero(t, set.Len())
}

func TestClassMappingByFullName(t *testing.T) {
	set := NewMappingSet()

	_, ok := set.ClassMapping("a$b$c")
	assert.False(t, ok)

	c := set.GetOrCreateClassMapping("a$b$c")
	assert.Equal(t, "c", c.ObfuscatedName())
	assert.Equal(t, "a$b$c", c.FullObfuscatedName())

	found, ok := set.ClassMapping("a$b$c")
	require.True(t, ok)
	assert.Same(t, c, found)

	computed, ok := set.ComputeClassMapping("a$b$d")
	require.True(t, ok)
	assert.Equal(t, "a$b$d", computed.FullObfuscatedName())

	_, ok = set.ComputeClassMapping("x$y")
	assert.False(t, ok)

	_, ok = set.ClassMapping("x$y")
	assert.False(t, ok, "ComputeClassMapping must not create outer classes")
}

func TestDeobfuscateClassName(t *testing.T) {
	set := NewMappingSet()
	top := set.CreateTopLevelClass("ght", "com/example/Demo")
	top.CreateInnerClass("hy", "Inner")

	assert.Equal(t, "com/example/Demo", set.DeobfuscateClassName("ght"))
	assert.Equal(t, "com/example/Demo$Inner", set.DeobfuscateClassName("ght$hy"))
	assert.Equal(t, "com/example/Demo$Inner$zz$1", set.DeobfuscateClassName("ght$hy$zz$1"))
	assert.Equal(t, "unknown/Type$1", set.DeobfuscateClassName("unknown/Type$1"))

	_, ok := set.ClassMapping("ght$hy$zz")
	assert.False(t, ok, "deobfuscation must not create mappings")
}

func TestDeobfuscateDescriptors(t *testing.T) {
	set := NewMappingSet()
	set.CreateTopLevelClass("C", "bar/baz/D")
	set.CreateTopLevelClass("E", "foo/bar/F")

	md := descriptor.MustParseMethodDescriptor("(ILC;[LE;J)LC;")
	assert.Equal(t, "(ILbar/baz/D;[Lfoo/bar/F;J)Lbar/baz/D;", set.DeobfuscateMethodDescriptor(md).String())

	unmapped := descriptor.MustParseMethodDescriptor("(ILjava/lang/String;)V")
	assert.Same(t, unmapped, set.DeobfuscateMethodDescriptor(unmapped))

	assert.Equal(t, "[Lfoo/bar/F;", set.DeobfuscateFieldType(descriptor.MustParseFieldType("[LE;")).String())
	assert.Nil(t, set.DeobfuscateFieldType(nil))
}

func TestHasMappings(t *testing.T) {
	set := NewMappingSet()
	set.GetOrCreateClassMapping("a$b")
	assert.False(t, set.HasMappings())

	c, _ := set.ClassMapping("a$b")
	c.CreateField(NewFieldSignature("x", nil), "y")
	assert.True(t, set.HasMappings())
}

func TestConcurrentTopLevelRegistration(t *testing.T) {
	set := NewMappingSet()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range 50 {
				set.CreateTopLevelClass(string(rune('a'+i))+string(rune('a'+j%26)), "x")
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 8*26, set.Len())
}
