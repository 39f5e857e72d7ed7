package infer

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ts "github.com/funvibe/tyfold/internal/typesystem"
)

func TestFreshen(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Vec<(?3, ?7, ?3)>", "Vec<(?#0, ?#1, ?#0)>"},
		{"Vec<(?0, ?1, ?0)>", "Vec<(?#0, ?#1, ?#0)>"},
		{"(?i4, ?4, ?f4)", "(?#i0, ?#1, ?#f2)"},
		{"[?2; ?c9]", "[?#0; ?#c0]"},
		{"Vec<T>", "Vec<T>"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			fresh := Freshen(parse(t, tt.input))
			assert.Equal(t, tt.expected, fresh.String())
			assert.False(t, ts.NeedsInfer(fresh))
		})
	}
}

// countingNormalizer resolves `<X as IntoIterator>::Item` for X = Vec<E>
// to E and counts how often it is asked.
type countingNormalizer struct {
	calls int
}

func (n *countingNormalizer) NormalizeProjection(p *ts.TyProjection) (ts.Ty, bool) {
	n.calls++
	if p.Trait.Item.Name != "IntoIterator" || p.Target != "Item" {
		return nil, false
	}
	adt, ok := p.Self.(*ts.TyAdt)
	if !ok || adt.Item != "Vec" || len(adt.TypeArgs) != 1 {
		return nil, false
	}
	return adt.TypeArgs[0], true
}

func TestNormalizeAssociatedTypesIn(t *testing.T) {
	n := &countingNormalizer{}
	ctx := NewContext(WithNormalizer(n))

	ty := parse(t, "fn(<Vec<u8> as IntoIterator>::Item) -> <T as Iterator>::Item")
	normalized := NormalizeAssociatedTypesIn(ctx, ty)
	assert.Equal(t, "fn(u8) -> <T as Iterator>::Item", normalized.String())
	assert.True(t, ts.HasTyProjection(normalized))
	assert.Equal(t, 2, n.calls)

	nested := parse(t, "<Vec<<Vec<bool> as IntoIterator>::Item> as IntoIterator>::Item")
	assert.Equal(t, ts.TyBool, NormalizeAssociatedTypesIn(ctx, nested))
}

func TestNormalizeCachesByFreshenedProjection(t *testing.T) {
	n := &countingNormalizer{}
	ctx := NewContext(WithNormalizer(n))
	hits := testutil.ToFloat64(projectionCache.WithLabelValues("hit"))

	first := NormalizeAssociatedTypesIn(ctx, parse(t, "<Vec<?0> as IntoIterator>::Item"))
	assert.Equal(t, ts.NewTyVar(0), first)

	second := NormalizeAssociatedTypesIn(ctx, parse(t, "<Vec<?5> as IntoIterator>::Item"))
	assert.Equal(t, ts.NewTyVar(5), second)
	assert.Equal(t, 1, n.calls)
	assert.Equal(t, hits+1, testutil.ToFloat64(projectionCache.WithLabelValues("hit")))

	// Bound variables are resolved before the lookup.
	require.NoError(t, ctx.BindTy(ts.NewTyVar(1), ts.TyChar))
	third := NormalizeAssociatedTypesIn(ctx, parse(t, "<Vec<?1> as IntoIterator>::Item"))
	assert.Equal(t, ts.TyChar, third)
	assert.Equal(t, 2, n.calls)
}

func TestNormalizeWithoutNormalizer(t *testing.T) {
	ctx := NewContext()
	ty := parse(t, "<Vec<u8> as IntoIterator>::Item")
	assert.Same(t, ty, NormalizeAssociatedTypesIn(ctx, ty))
}

func TestStaticNormalizer(t *testing.T) {
	ctx := NewContext(WithNormalizer(StaticNormalizer{
		"<T as Deref>::Target": ts.TyStr,
	}))
	ty := parse(t, "&<T as Deref>::Target")
	assert.Equal(t, "&str", NormalizeAssociatedTypesIn(ctx, ty).String())
}

func TestNormalizeRenormalizesResults(t *testing.T) {
	calls := 0
	ctx := NewContext(WithNormalizer(NormalizerFunc(func(p *ts.TyProjection) (ts.Ty, bool) {
		calls++
		switch p.String() {
		case "<T as Deref>::Target":
			return parse(t, "Vec<<U as Deref>::Target>"), true
		case "<U as Deref>::Target":
			return ts.TyStr, true
		case "<E as Deref>::Target":
			return parse(t, "Box<<E as Deref>::Target>"), true
		}
		return nil, false
	})))

	assert.Equal(t, "Vec<str>", NormalizeAssociatedTypesIn(ctx, parse(t, "<T as Deref>::Target")).String())
	assert.Equal(t, 2, calls)

	// Cached in its fully normalized form.
	assert.Equal(t, "&Vec<str>", NormalizeAssociatedTypesIn(ctx, parse(t, "&<T as Deref>::Target")).String())
	assert.Equal(t, 2, calls)

	// A result that mentions its own projection is expanded once.
	assert.Equal(t, "Box<<E as Deref>::Target>", NormalizeAssociatedTypesIn(ctx, parse(t, "<E as Deref>::Target")).String())
}

func TestFreshenerCovers(t *testing.T) {
	fr := newFreshener()
	parse(t, "(?0, [u8; ?c1])").FoldWith(fr)

	assert.True(t, fr.covers(parse(t, "Vec<?0>")))
	assert.True(t, fr.covers(parse(t, "[?0; ?c1]")))
	assert.True(t, fr.covers(ts.TyU8))
	assert.False(t, fr.covers(parse(t, "Vec<?1>")))
	assert.False(t, fr.covers(parse(t, "[u8; ?c0]")))
}
