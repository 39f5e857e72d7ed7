package tyexpr

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ts "github.com/funvibe/tyfold/internal/typesystem"
)

func testEnv() *Env {
	env := NewEnv().
		DeclareParams("T", "U", "E").
		DeclareLifetimes("a", "'b").
		DeclareConsts("N")
	env.DeclareTrait("Into", "Target")
	return env
}

func TestParseTyRoundTrip(t *testing.T) {
	tests := []string{
		"i32",
		"T",
		"!",
		"_",
		"?0",
		"?i3",
		"?f12",
		"()",
		"(T,)",
		"(i32, bool, ?0)",
		"Result<?0, E>",
		"Vec<Vec<T>>",
		"std::collections::HashMap<str, u8>",
		"Ref<'a, T>",
		"Buf<u8, N>",
		"Buf<u8, 16>",
		"Buf<u8, ?c2>",
		"&T",
		"&mut T",
		"&'a T",
		"&'static mut [u8]",
		"*const T",
		"*mut (i32, i32)",
		"[T; N]",
		"[u8; _]",
		"[[u8; 4]; 2]",
		"fn()",
		"fn(T, U) -> E",
		"fn(u8) -> !",
		"<T as Iterator>::Item",
		"<T as Iterator<Item = u8>>::Item",
		"<Vec<T> as Into<U>>::Output",
		"dyn Display",
		"dyn Display + Send + 'a",
		"dyn Fn<(T,), Output = U>",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			ty, err := ParseTy(input, testEnv())
			require.NoError(t, err)
			assert.Equal(t, input, ty.String(), "%# v", pretty.Formatter(ty))
		})
	}
}

func TestParseTyNormalizesSpelling(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(T)", "T"},
		{"&'_ T", "&T"},
		{"fn(u8) -> ()", "fn(u8)"},
		{"Ref<T, 'a>", "Ref<'a, T>"},
		{"[u8; 1_000]", "[u8; 1000]"},
		{"  Vec < T >  ", "Vec<T>"},
	}

	for _, tt := range tests {
		ty, err := ParseTy(tt.input, testEnv())
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, ty.String(), tt.input)
	}
}

func TestParseTyStructure(t *testing.T) {
	env := testEnv()
	ty := MustParseTy("&'a mut Result<?0, E>", env)

	ref, ok := ty.(*ts.TyReference)
	require.True(t, ok, "expected *TyReference, got %T", ty)
	assert.True(t, ref.Mutable)
	assert.Equal(t, ts.ReEarlyBound{Name: "a"}, ref.Region)

	adt, ok := ref.Referenced.(*ts.TyAdt)
	require.True(t, ok)
	assert.Equal(t, "Result", adt.Item)
	assert.Equal(t, []ts.Ty{ts.NewTyVar(0), ts.TyTypeParameter{Name: "E"}}, adt.TypeArgs)

	assert.Equal(t, ts.HasTyInferMask|ts.HasTyTypeParameterMask|ts.HasReEarlyBoundMask, ty.Flags())
}

func TestParseTyTraitParameters(t *testing.T) {
	env := testEnv()
	ty := MustParseTy("<T as Into<u8>>::Output", env)
	proj := ty.(*ts.TyProjection)

	into, ok := env.Trait("Into")
	require.True(t, ok)
	assert.Same(t, into, proj.Trait.Item)
	target, ok := proj.Trait.Subst.Ty(ts.TyTypeParameter{Name: "Target"})
	require.True(t, ok)
	assert.Equal(t, ts.TyU8, target)

	// An undeclared trait gets positional parameters on first use and keeps
	// them afterwards.
	MustParseTy("dyn Add<u8, u16>", env)
	add, ok := env.Trait("Add")
	require.True(t, ok)
	assert.Equal(t, []ts.TyTypeParameter{{Name: "$0"}, {Name: "$1"}}, add.TypeParams)

	_, err := ParseTy("dyn Add<u8>", env)
	assert.Error(t, err)
}

func TestParseConstAndRegion(t *testing.T) {
	env := testEnv()

	ct, err := ParseConst("N", env)
	require.NoError(t, err)
	assert.Equal(t, ts.CtConstParameter{Name: "N"}, ct)

	ct, err = ParseConst("?c4", env)
	require.NoError(t, err)
	assert.Equal(t, ts.CtInfer{ID: 4}, ct)

	ct, err = ParseConst("true", env)
	require.NoError(t, err)
	assert.Equal(t, ts.CtValue{Value: "true"}, ct)

	r, err := ParseRegion("'b", env)
	require.NoError(t, err)
	assert.Equal(t, ts.ReEarlyBound{Name: "b"}, r)

	r, err = ParseRegion("'static", env)
	require.NoError(t, err)
	assert.Equal(t, ts.ReStatic{}, r)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		column int
	}{
		{"", 1},
		{"Vec<T", 6},
		{"Vec<T>>", 7},
		{"&'a", 4},
		{"*T", 2},
		{"[u8; ?0]", 6},
		{"fn(u8", 6},
		{"<T Iterator>::Item", 4},
		{"T<u8>", 1},
		{"Vec<Item = u8>", 14},
		{"?c0", 1},
		{"(T U)", 4},
	}

	for _, tt := range tests {
		_, err := ParseTy(tt.input, testEnv())
		require.Error(t, err, tt.input)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, tt.input)
		assert.Equal(t, tt.column, perr.Column, "%s: %v", tt.input, err)
	}
}

func TestParseUndeclared(t *testing.T) {
	tests := []struct {
		input string
		what  string
		name  string
	}{
		{"&'z T", "lifetime", "'z"},
		{"[u8; M]", "const parameter", "M"},
	}

	for _, tt := range tests {
		_, err := ParseTy(tt.input, testEnv())
		var uerr *UndeclaredError
		require.ErrorAs(t, err, &uerr, tt.input)
		assert.Equal(t, tt.what, uerr.What)
		assert.Equal(t, tt.name, uerr.Name)
	}
}

func TestMustParseTyPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseTy("Vec<", nil) })
}
