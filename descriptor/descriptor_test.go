package descriptor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldType(t *testing.T) {
	tests := []struct {
		raw  string
		want FieldType
	}{
		{"I", Int},
		{"Z", Boolean},
		{"Ljava/lang/String;", NewObjectType("java/lang/String")},
		{"[J", &ArrayType{Dims: 1, Component: Long}},
		{"[[Lfoo/Bar$Baz;", &ArrayType{Dims: 2, Component: NewObjectType("foo/Bar$Baz")}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseFieldType(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, spew.Sdump(got))
		})
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	d, err := ParseMethodDescriptor("(ILbar/baz/D;[Lfoo/bar/F;J)V")
	require.NoError(t, err)

	require.Len(t, d.Params, 4)
	assert.Equal(t, Int, d.Params[0])
	assert.Equal(t, NewObjectType("bar/baz/D"), d.Params[1])
	assert.Equal(t, &ArrayType{Dims: 1, Component: NewObjectType("foo/bar/F")}, d.Params[2])
	assert.Equal(t, Long, d.Params[3])
	assert.Equal(t, Void, d.Return)
	assert.Equal(t, 4, d.Arity())

	d, err = ParseMethodDescriptor("()Ljava/lang/Object;")
	require.NoError(t, err)
	assert.Empty(t, d.Params)
	assert.Equal(t, NewObjectType("java/lang/Object"), d.Return)
}

func TestRoundTrip(t *testing.T) {
	fields := []string{"B", "C", "D", "F", "I", "J", "S", "Z", "LA;", "[[[La/b/C$1;", "[D"}
	for _, raw := range fields {
		ft, err := ParseFieldType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, ft.String())
	}

	methods := []string{"()V", "(III)V", "(LA$1;)V", "()LA;", "(ILC;LE;J)V", "([[I[Ljava/lang/String;)[B"}
	for _, raw := range methods {
		md, err := ParseMethodDescriptor(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, md.String())
	}
}

func TestParseErrors(t *testing.T) {
	fieldCases := []string{"", "V", "Q", "L", "Ljava/lang/String", "L;", "[", "II", "[V"}
	for _, raw := range fieldCases {
		_, err := ParseFieldType(raw)
		require.Error(t, err, "expected error for %q", raw)
		assert.ErrorIs(t, err, ErrMalformedDescriptor)
	}

	methodCases := []string{"", "V", "(", "(I", "(I)", "(V)V", "()", "()VV", "I)V", "(X)V", "()Lfoo"}
	for _, raw := range methodCases {
		_, err := ParseMethodDescriptor(raw)
		require.Error(t, err, "expected error for %q", raw)
		assert.ErrorIs(t, err, ErrMalformedDescriptor)
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := ParseMethodDescriptor("(IQ)V")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), `"(IQ)V"`), err.Error())
	assert.Contains(t, err.Error(), "offset 2")
	assert.Contains(t, err.Error(), "unknown type tag 'Q'")
}

func TestParseType(t *testing.T) {
	v, err := ParseType("V")
	require.NoError(t, err)
	assert.Equal(t, Void, v)

	i, err := ParseType("I")
	require.NoError(t, err)
	assert.Equal(t, Int, i)
}

func TestSubstituteIdentityReturnsSameValue(t *testing.T) {
	identity := func(name string) string { return name }

	md := MustParseMethodDescriptor("(I[Lfoo/A;Lbar/B;)Lbaz/C;")
	assert.Same(t, md, SubstituteMethod(md, identity))

	arr := MustParseFieldType("[[Lfoo/A;").(*ArrayType)
	assert.Same(t, arr, SubstituteFieldType(arr, identity))

	obj := NewObjectType("foo/A")
	assert.Same(t, obj, SubstituteFieldType(obj, identity))

	assert.Equal(t, Int, SubstituteFieldType(Int, identity))
	assert.Equal(t, Void, SubstituteType(Void, identity))
}

func TestSubstitute(t *testing.T) {
	names := map[string]string{"C": "bar/baz/D", "E": "foo/bar/F"}
	fn := func(name string) string {
		if mapped, ok := names[name]; ok {
			return mapped
		}

		return name
	}

	md := MustParseMethodDescriptor("(ILC;LE;J)V")
	got := SubstituteMethod(md, fn)
	assert.Equal(t, "(ILbar/baz/D;Lfoo/bar/F;J)V", got.String())
	assert.Equal(t, "(ILC;LE;J)V", md.String(), "input must not be modified")

	md = MustParseMethodDescriptor("(IJ)[LC;")
	got = SubstituteMethod(md, fn)
	assert.Equal(t, "(IJ)[Lbar/baz/D;", got.String())

	arr := MustParseFieldType("[[LE;")
	assert.Equal(t, "[[Lfoo/bar/F;", SubstituteFieldType(arr, fn).String())
}

func TestNewArrayTypeFlattens(t *testing.T) {
	inner := NewArrayType(2, Int)
	outer := NewArrayType(1, inner)
	assert.Equal(t, 3, outer.Dims)
	assert.Equal(t, Int, outer.Component)
	assert.Equal(t, "[[[I", outer.String())
}

func TestPrimitiveType(t *testing.T) {
	p, ok := PrimitiveFromTag('J')
	require.True(t, ok)
	assert.Equal(t, Long, p)
	assert.Equal(t, "long", p.Keyword())
	assert.True(t, p.IsWide())
	assert.False(t, Int.IsWide())

	_, ok = PrimitiveFromTag('V')
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(NewObjectType("a/B"), MustParseFieldType("La/B;")))
	assert.False(t, Equal(Int, Long))
	assert.False(t, Equal(Int, nil))
	assert.True(t, Equal(nil, nil))
	assert.True(t, EqualMethods(MustParseMethodDescriptor("()V"), NewMethodDescriptor(Void)))
}

func ExampleSubstituteMethod() {
	d := MustParseMethodDescriptor("(La;I)Lb;")
	renamed := SubstituteMethod(d, func(name string) string {
		return "com/example/" + strings.ToUpper(name)
	})
	fmt.Println(renamed.String())
	// Output: (Lcom/example/A;I)Lcom/example/B;
}
