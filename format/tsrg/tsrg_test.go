package tsrg_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CadixDev/Lorenz-sub001/descriptor"
	"github.com/CadixDev/Lorenz-sub001/format/tsrg"
	"github.com/CadixDev/Lorenz-sub001/model"
)

const sample = `# header comment
a/ com/example/
ght com/example/Demo
	iu log
	trp ()V run # trailing comment

ght$hy com/example/Demo$Inner
	rt name
	kjl ()Ljava/lang/String; getName
`

func TestReadSample(t *testing.T) {
	set, err := tsrg.ReadString(sample)
	require.NoError(t, err)

	demo, ok := set.TopLevelClass("ght")
	require.True(t, ok)
	assert.Equal(t, "com/example/Demo", demo.DeobfuscatedName())

	f, ok := demo.FieldByName("iu")
	require.True(t, ok)
	assert.Equal(t, "log", f.DeobfuscatedName())
	assert.False(t, f.Signature().HasType())

	m, ok := demo.Method(model.MustParseMethodSignature("trp", "()V"))
	require.True(t, ok)
	assert.Equal(t, "run", m.DeobfuscatedName())

	inner, ok := set.ClassMapping("ght$hy")
	require.True(t, ok)
	assert.Equal(t, "Inner", inner.DeobfuscatedName())
	assert.Equal(t, "com/example/Demo$Inner", inner.FullDeobfuscatedName())

	_, ok = set.TopLevelClass("a/")
	assert.False(t, ok, "package lines are skipped")
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		desc  bool
	}{
		{name: "member before class", input: "\ta b\n", line: 1},
		{name: "too many class tokens", input: "a b c\n", line: 1},
		{name: "too many member tokens", input: "a b\n\tx y z w\n", line: 2},
		{name: "bad descriptor", input: "a b\n\n\tm (Q)V n\n", line: 3, desc: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tsrg.ReadString(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tsrg.ErrMalformedLine)

			var lineErr *tsrg.LineError
			require.True(t, errors.As(err, &lineErr))
			assert.Equal(t, tt.line, lineErr.Line)

			if tt.desc {
				assert.ErrorIs(t, err, descriptor.ErrMalformedDescriptor)
			}
		})
	}
}

func TestWriteIsSortedAndSkipsIdentity(t *testing.T) {
	set := model.NewMappingSet()

	zed := set.CreateTopLevelClass("zed", "Zed")
	zed.CreateMethod(model.MustParseMethodSignature("b", "(I)V"), "second")
	zed.CreateMethod(model.MustParseMethodSignature("a", "()V"), "first")
	zed.CreateMethod(model.MustParseMethodSignature("c", "()V"), "c")
	zed.CreateField(model.FieldSignature{Name: "y"}, "why")
	zed.CreateField(model.NewFieldSignature("x", descriptor.Int), "ex")

	set.CreateTopLevelClass("ab", "Ab")
	set.GetOrCreateTopLevelClass("identity")

	out, err := tsrg.WriteString(set)
	require.NoError(t, err)

	want := strings.Join([]string{
		"ab Ab",
		"zed Zed",
		"\tx ex",
		"\ty why",
		"\ta ()V first",
		"\tb (I)V second",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestWriteInnerClassUnderUnrenamedOuter(t *testing.T) {
	set := model.NewMappingSet()
	set.GetOrCreateClassMapping("a$b").SetDeobfuscatedName("Named")

	out, err := tsrg.WriteString(set)
	require.NoError(t, err)
	assert.Equal(t, "a$b a$Named\n", out)
}

func TestRoundTrip(t *testing.T) {
	set, err := tsrg.ReadString(sample)
	require.NoError(t, err)

	first, err := tsrg.WriteString(set)
	require.NoError(t, err)

	again, err := tsrg.ReadString(first)
	require.NoError(t, err)

	second, err := tsrg.WriteString(again)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "ght$hy com/example/Demo$Inner\n")
}
