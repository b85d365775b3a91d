package classindex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CadixDev/Lorenz-sub001/descriptor"
	"github.com/CadixDev/Lorenz-sub001/model"
)

const indexYAML = `
classes:
  - name: Base
    super: java/lang/Object
  - name: Derived
    super: Base
    interfaces: [Named, java/lang/Runnable]
    fields:
      count: I
      owner: LBase;
  - name: Outer$Inner
    fields:
      grid: "[[J"
`

func TestParse(t *testing.T) {
	idx, err := Parse([]byte(indexYAML))
	require.NoError(t, err)

	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, []string{"Base", "Derived", "Outer$Inner"}, idx.Names())

	info, ok := idx.ProvideInheritance("Derived")
	require.True(t, ok)
	assert.Equal(t, "Base", info.SuperName)
	assert.Equal(t, []string{"Base", "Named", "java/lang/Runnable"}, info.Parents())

	_, ok = idx.ProvideInheritance("Missing")
	assert.False(t, ok)
}

func TestProvideFieldType(t *testing.T) {
	idx, err := Parse([]byte(indexYAML))
	require.NoError(t, err)

	set := model.NewMappingSet().AddFieldTypeProvider(idx)

	derived := set.CreateTopLevelClass("Derived", "com/example/Derived")
	count := derived.CreateField(model.FieldSignature{Name: "count"}, "total")
	owner := derived.CreateField(model.FieldSignature{Name: "owner"}, "parent")
	unknown := derived.CreateField(model.FieldSignature{Name: "other"}, "x")

	typ, ok := count.Type()
	require.True(t, ok)
	assert.Equal(t, descriptor.Int, typ)

	typ, ok = owner.Type()
	require.True(t, ok)
	assert.Equal(t, "LBase;", typ.String())

	_, ok = unknown.Type()
	assert.False(t, ok)

	grid := set.GetOrCreateClassMapping("Outer$Inner").CreateField(model.FieldSignature{Name: "grid"}, "cells")
	typ, ok = grid.Type()
	require.True(t, ok)
	assert.Equal(t, "[[J", typ.String())
}

func TestCompletionThroughIndex(t *testing.T) {
	idx, err := Parse([]byte(indexYAML))
	require.NoError(t, err)

	set := model.NewMappingSet()
	base := set.CreateTopLevelClass("Base", "com/example/Base")
	base.CreateMethod(model.MustParseMethodSignature("a", "()V"), "start")

	derived := set.GetOrCreateTopLevelClass("Derived")
	derived.Complete(idx)

	m, ok := derived.ResolveMethod(model.MustParseMethodSignature("a", "()V"))
	require.True(t, ok)
	assert.Equal(t, "start", m.DeobfuscatedName())
}

func TestCovariantOverrideThroughIndex(t *testing.T) {
	idx, err := Parse([]byte(`
classes:
  - name: Base
  - name: Derived
    super: Base
    methods: ["copy()LDerived;"]
`))
	require.NoError(t, err)

	info, ok := idx.ProvideInheritance("Derived")
	require.True(t, ok)
	require.Len(t, info.Methods, 1)
	assert.Equal(t, "copy()LDerived;", info.Methods[0].String())

	set := model.NewMappingSet()
	set.CreateTopLevelClass("Base", "com/example/Base").
		CreateMethod(model.MustParseMethodSignature("copy", "()LBase;"), "duplicate")

	derived := set.GetOrCreateTopLevelClass("Derived")
	derived.Complete(idx)

	m, ok := derived.ResolveMethod(model.MustParseMethodSignature("copy", "()LDerived;"))
	require.True(t, ok)
	assert.Equal(t, "duplicate", m.DeobfuscatedName())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "duplicate", input: "classes:\n  - name: A\n  - name: A\n", want: ErrDuplicateClass},
		{name: "missing name", input: "classes:\n  - super: A\n", want: ErrMissingName},
		{name: "bad descriptor", input: "classes:\n  - name: A\n    fields:\n      f: Lnope\n", want: descriptor.ErrMalformedDescriptor},
		{name: "method without descriptor", input: "classes:\n  - name: A\n    methods: [get]\n", want: ErrMalformedMethod},
		{name: "bad method descriptor", input: "classes:\n  - name: A\n    methods: [\"get()Q\"]\n", want: descriptor.ErrMalformedDescriptor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse([]byte("classes: {"))
	require.Error(t, err)
}

func TestLoadAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.yaml")
	require.NoError(t, os.WriteFile(path, []byte(indexYAML), 0o600))

	idx, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())

	idx, err = Read(strings.NewReader(indexYAML))
	require.NoError(t, err)

	ce, ok := idx.Class("Outer$Inner")
	require.True(t, ok)
	assert.Len(t, ce.Fields, 1)
}
