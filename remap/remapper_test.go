package remap_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CadixDev/Lorenz-sub001/model"
	"github.com/CadixDev/Lorenz-sub001/remap"
)

func demoSet() *model.MappingSet {
	set := model.NewMappingSet()

	demo := set.CreateTopLevelClass("ght", "Demo")
	demo.CreateField(model.FieldSignature{Name: "iu"}, "log")
	demo.CreateMethod(model.MustParseMethodSignature("trp", "()V"), "run")

	inner := demo.CreateInnerClass("hy", "Inner")
	inner.CreateField(model.FieldSignature{Name: "rt"}, "name")
	inner.CreateMethod(model.MustParseMethodSignature("kjl", "()Ljava/lang/String;"), "getName")

	return set
}

func TestRemapDirectMappings(t *testing.T) {
	r := remap.New(demoSet(), nil)

	assert.Equal(t, "Demo", r.MapClassName("ght"))
	assert.Equal(t, "Demo$Inner", r.MapClassName("ght$hy"))
	assert.Equal(t, "unknown/Type", r.MapClassName("unknown/Type"))

	assert.Equal(t, "log", r.MapFieldName("ght", "iu", ""))
	assert.Equal(t, "log", r.MapFieldName("ght", "iu", "Ljava/lang/String;"))
	assert.Equal(t, "run", r.MapMethodName("ght", "trp", "()V"))

	assert.Equal(t, "name", r.MapFieldName("ght$hy", "rt", "I"))
	assert.Equal(t, "getName", r.MapMethodName("ght$hy", "kjl", "()Ljava/lang/String;"))

	assert.Equal(t, "Inner", r.MapInnerClassName("ght$hy", "ght", "hy"))
	assert.Equal(t, "zz", r.MapInnerClassName("ght$zz", "ght", "zz"))
	assert.Empty(t, r.MapInnerClassName("ght$1", "ght", ""))
}

func TestRemapMisses(t *testing.T) {
	r := remap.New(demoSet(), nil)

	assert.Equal(t, "trp", r.MapMethodName("ght", "trp", "(I)V"))
	assert.Equal(t, "x", r.MapFieldName("ght", "x", ""))
	assert.Equal(t, "trp", r.MapMethodName("ght", "trp", "(I"), "malformed descriptors are misses")
	assert.Equal(t, "log", r.MapFieldName("ght", "iu", "Q"), "malformed field descriptors fall back to the name")

	stats := r.Stats()
	assert.Equal(t, int64(4), stats.Queries)
	assert.Equal(t, int64(3), stats.Misses)
	assert.Equal(t, int64(1), stats.DirectHits)
}

func hierarchy() model.StaticInheritanceProvider {
	return model.StaticInheritanceProvider{
		"Base":    {SuperName: "java/lang/Object"},
		"Derived": {SuperName: "Base"},
		"Parent":  {},
		"Child1":  {SuperName: "Parent"},
		"Child2":  {SuperName: "Child1"},
	}
}

func TestRemapInheritedMethod(t *testing.T) {
	set := model.NewMappingSet()
	set.GetOrCreateTopLevelClass("Base").
		CreateMethod(model.MustParseMethodSignature("helloWorld", "()V"), "bye")

	r := remap.New(set, hierarchy())

	assert.Equal(t, "bye", r.MapMethodName("Derived", "helloWorld", "()V"))
	assert.Equal(t, "bye", r.MapMethodName("Base", "helloWorld", "()V"))
	assert.Equal(t, "other", r.MapMethodName("Derived", "other", "()V"))

	stats := r.Stats()
	assert.Equal(t, int64(1), stats.InheritedHits)
	assert.Equal(t, int64(1), stats.DirectHits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Completions, "Base is completed while completing Derived")
}

func TestRemapInheritedFields(t *testing.T) {
	set := model.NewMappingSet()

	parent := set.GetOrCreateTopLevelClass("Parent")
	parent.CreateField(model.FieldSignature{Name: "a"}, "fromParent")
	parent.CreateField(model.FieldSignature{Name: "b"}, "shadowed")

	child1 := set.GetOrCreateTopLevelClass("Child1")
	child1.CreateField(model.FieldSignature{Name: "b"}, "fromChild1")

	r := remap.New(set, hierarchy())

	assert.Equal(t, "fromParent", r.MapFieldName("Child2", "a", "I"))
	assert.Equal(t, "fromChild1", r.MapFieldName("Child2", "b", ""))
	assert.Equal(t, "fromChild1", r.MapFieldName("Child1", "b", ""))
	assert.Equal(t, "c", r.MapFieldName("Child2", "c", ""))
}

func TestRemapDescriptors(t *testing.T) {
	r := remap.New(demoSet(), nil)

	assert.Equal(t, "[LDemo$Inner;", r.MapDescriptor("[Lght$hy;"))
	assert.Equal(t, "(LDemo;I)LDemo$Inner;", r.MapMethodDescriptor("(Lght;I)Lght$hy;"))
	assert.Equal(t, "(Lght;", r.MapMethodDescriptor("(Lght;"))
	assert.Equal(t, "Q", r.MapDescriptor("Q"))
}

func TestRemapConcurrent(t *testing.T) {
	set := model.NewMappingSet()
	set.GetOrCreateTopLevelClass("Base").
		CreateMethod(model.MustParseMethodSignature("helloWorld", "()V"), "bye")

	provider := model.StaticInheritanceProvider{"Base": {}}
	for i := range 16 {
		provider[fmt.Sprintf("Sub%d", i)] = model.ClassInfo{SuperName: "Base"}
	}

	r := remap.New(set, provider)

	var wg sync.WaitGroup

	results := make([]string, 64)
	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i] = r.MapMethodName(fmt.Sprintf("Sub%d", i%16), "helloWorld", "()V")
		}()
	}

	wg.Wait()

	for _, got := range results {
		require.Equal(t, "bye", got)
	}

	stats := r.Stats()
	assert.Equal(t, int64(64), stats.Queries)
	assert.Equal(t, int64(16), stats.Completions, "each subclass is completed once")
}
