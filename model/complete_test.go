package model

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteInheritsFromParent(t *testing.T) {
	set := NewMappingSet()
	parent := set.CreateTopLevelClass("Parent", "Parent")
	parent.CreateField(NewFieldSignature("a", nil), "parentField")

	child1 := set.GetOrCreateTopLevelClass("Child1")
	child1.CreateField(NewFieldSignature("a", nil), "childField")

	child2 := set.GetOrCreateTopLevelClass("Child2")

	provider := StaticInheritanceProvider{
		"Parent": {SuperName: "java/lang/Object"},
		"Child1": {SuperName: "Parent"},
		"Child2": {SuperName: "Parent"},
	}

	child1.Complete(provider)
	child2.Complete(provider)

	f, ok := child1.ResolveField(NewFieldSignature("a", nil))
	require.True(t, ok)
	assert.Equal(t, "childField", f.DeobfuscatedName())

	f, ok = child2.ResolveField(NewFieldSignature("a", nil))
	require.True(t, ok)
	assert.Equal(t, "parentField", f.DeobfuscatedName())

	assert.True(t, child2.IsComplete())
	assert.Empty(t, child2.Fields(), "inherited members are not declared members")
}

func TestCompleteWalksUnmappedIntermediate(t *testing.T) {
	set := NewMappingSet()
	base := set.GetOrCreateTopLevelClass("Base")
	base.CreateMethod(MustParseMethodSignature("helloWorld", "()V"), "bye")

	derived := set.GetOrCreateTopLevelClass("Derived")

	provider := StaticInheritanceProvider{
		"Derived": {SuperName: "Middle"},
		"Middle":  {SuperName: "Base"},
		"Base":    {},
	}

	derived.Complete(provider)

	m, ok := derived.ResolveMethod(MustParseMethodSignature("helloWorld", "()V"))
	require.True(t, ok)
	assert.Equal(t, "bye", m.DeobfuscatedName())

	_, ok = set.TopLevelClass("Middle")
	assert.False(t, ok, "intermediate classes are not added to the set")
}

func TestCompleteSuperBeforeInterfaces(t *testing.T) {
	set := NewMappingSet()
	sig := MustParseMethodSignature("run", "()V")
	set.GetOrCreateTopLevelClass("Super").CreateMethod(sig, "fromSuper")
	set.GetOrCreateTopLevelClass("Iface").CreateMethod(sig, "fromIface")
	set.GetOrCreateTopLevelClass("Other").CreateMethod(MustParseMethodSignature("x", "()V"), "fromOther")

	c := set.GetOrCreateTopLevelClass("Impl")
	c.Complete(StaticInheritanceProvider{
		"Impl": {SuperName: "Super", Interfaces: []string{"Iface", "Other"}},
	})

	m, ok := c.ResolveMethod(sig)
	require.True(t, ok)
	assert.Equal(t, "fromSuper", m.DeobfuscatedName())

	m, ok = c.ResolveMethod(MustParseMethodSignature("x", "()V"))
	require.True(t, ok)
	assert.Equal(t, "fromOther", m.DeobfuscatedName())
}

func TestCompleteDiamondKeepsSiblingCachesWhole(t *testing.T) {
	set := NewMappingSet()
	set.GetOrCreateTopLevelClass("X").CreateField(NewFieldSignature("f", nil), "shared")
	j := set.GetOrCreateTopLevelClass("J")
	k := set.GetOrCreateTopLevelClass("K")
	child := set.GetOrCreateTopLevelClass("Child")

	provider := StaticInheritanceProvider{
		"Child": {Interfaces: []string{"J", "K"}},
		"J":     {Interfaces: []string{"X"}},
		"K":     {Interfaces: []string{"X"}},
	}

	child.Complete(provider)

	for _, c := range []*ClassMapping{child, j, k} {
		f, ok := c.ResolveField(NewFieldSignature("f", nil))
		require.True(t, ok, c.ObfuscatedName())
		assert.Equal(t, "shared", f.DeobfuscatedName())
	}
}

func TestCompleteToleratesCycles(t *testing.T) {
	set := NewMappingSet()
	a := set.GetOrCreateTopLevelClass("A")
	b := set.GetOrCreateTopLevelClass("B")
	b.CreateMethod(MustParseMethodSignature("m", "()V"), "named")

	a.Complete(StaticInheritanceProvider{
		"A": {SuperName: "B"},
		"B": {SuperName: "A"},
	})

	m, ok := a.ResolveMethod(MustParseMethodSignature("m", "()V"))
	require.True(t, ok)
	assert.Equal(t, "named", m.DeobfuscatedName())
}

func TestCompleteUnknownClass(t *testing.T) {
	set := NewMappingSet()
	c := set.GetOrCreateTopLevelClass("Lonely")
	c.Complete(InheritanceProviderFunc(func(string) (ClassInfo, bool) { return ClassInfo{}, false }))

	assert.True(t, c.IsComplete())

	_, ok := c.ResolveMethod(MustParseMethodSignature("m", "()V"))
	assert.False(t, ok)
}

func TestCompleteRunsOnce(t *testing.T) {
	set := NewMappingSet()
	set.GetOrCreateTopLevelClass("Base").CreateMethod(MustParseMethodSignature("m", "()V"), "n")
	c := set.GetOrCreateTopLevelClass("Derived")

	var mu sync.Mutex
	calls := map[string]int{}

	provider := InheritanceProviderFunc(func(name string) (ClassInfo, bool) {
		mu.Lock()
		calls[name]++
		mu.Unlock()

		if name == "Derived" {
			return ClassInfo{Name: name, SuperName: "Base"}, true
		}

		return ClassInfo{Name: name}, true
	})

	var (
		wg   sync.WaitGroup
		done atomic.Int32
	)

	for range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if c.Complete(provider) {
				done.Add(1)
			}

			m, ok := c.ResolveMethod(MustParseMethodSignature("m", "()V"))
			assert.True(t, ok)
			assert.Equal(t, "n", m.DeobfuscatedName())
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, calls["Derived"])
	assert.Equal(t, 1, calls["Base"])
	assert.Equal(t, int32(1), done.Load(), "only one caller does the work")
	assert.False(t, c.Complete(provider))
}

func TestCompleteCovariantReturn(t *testing.T) {
	set := NewMappingSet()
	base := set.GetOrCreateTopLevelClass("Base")
	base.CreateMethod(MustParseMethodSignature("get", "()Ljava/lang/Number;"), "value")
	base.CreateMethod(MustParseMethodSignature("all", "()[Ljava/lang/Number;"), "values")

	derived := set.GetOrCreateTopLevelClass("Derived")

	provider := StaticInheritanceProvider{
		"Base": {SuperName: "java/lang/Object"},
		"Derived": {
			SuperName: "Base",
			Methods: []MethodSignature{
				MustParseMethodSignature("get", "()Ljava/lang/Integer;"),
				MustParseMethodSignature("get", "()Ljava/lang/String;"),
				MustParseMethodSignature("get", "(I)Ljava/lang/Integer;"),
				MustParseMethodSignature("all", "()[Ljava/lang/Integer;"),
			},
		},
		"java/lang/Integer": {SuperName: "java/lang/Number"},
		"java/lang/Number":  {SuperName: "java/lang/Object"},
		"java/lang/String":  {SuperName: "java/lang/Object"},
	}

	assert.True(t, derived.Complete(provider))

	m, ok := derived.ResolveMethod(MustParseMethodSignature("get", "()Ljava/lang/Integer;"))
	require.True(t, ok)
	assert.Equal(t, "value", m.DeobfuscatedName())

	m, ok = derived.ResolveMethod(MustParseMethodSignature("all", "()[Ljava/lang/Integer;"))
	require.True(t, ok)
	assert.Equal(t, "values", m.DeobfuscatedName())

	_, ok = derived.ResolveMethod(MustParseMethodSignature("get", "()Ljava/lang/String;"))
	assert.False(t, ok, "String is not a Number")

	_, ok = derived.ResolveMethod(MustParseMethodSignature("get", "(I)Ljava/lang/Integer;"))
	assert.False(t, ok, "parameters differ")
}

func TestCompleteCovariantReturnKeepsOwnMapping(t *testing.T) {
	set := NewMappingSet()
	set.GetOrCreateTopLevelClass("Base").
		CreateMethod(MustParseMethodSignature("get", "()Ljava/lang/Object;"), "value")

	derived := set.GetOrCreateTopLevelClass("Derived")
	derived.CreateMethod(MustParseMethodSignature("get", "()LDerived;"), "self")

	derived.Complete(StaticInheritanceProvider{
		"Derived": {
			SuperName: "Base",
			Methods:   []MethodSignature{MustParseMethodSignature("get", "()LDerived;")},
		},
	})

	m, ok := derived.ResolveMethod(MustParseMethodSignature("get", "()LDerived;"))
	require.True(t, ok)
	assert.Equal(t, "self", m.DeobfuscatedName())
}

func TestCompositeInheritanceProvider(t *testing.T) {
	provider := CompositeInheritanceProvider{
		StaticInheritanceProvider{"A": {SuperName: "First"}},
		StaticInheritanceProvider{"A": {SuperName: "Second"}, "B": {Interfaces: []string{"I"}}},
	}

	info, ok := provider.ProvideInheritance("A")
	require.True(t, ok)
	assert.Equal(t, "First", info.SuperName)
	assert.Equal(t, "A", info.Name)

	info, ok = provider.ProvideInheritance("B")
	require.True(t, ok)
	assert.Equal(t, []string{"I"}, info.Parents())

	_, ok = provider.ProvideInheritance("C")
	assert.False(t, ok)
}
