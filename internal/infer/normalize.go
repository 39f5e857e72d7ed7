package infer

import ts "github.com/funvibe/tyfold/internal/typesystem"

// Normalizer resolves a projection to the type it stands for, e.g.
// `<Vec<u8> as IntoIterator>::Item` to `u8`. It reports false when the
// projection cannot be resolved yet.
type Normalizer interface {
	NormalizeProjection(p *ts.TyProjection) (ts.Ty, bool)
}

// NormalizerFunc adapts a function to Normalizer.
type NormalizerFunc func(p *ts.TyProjection) (ts.Ty, bool)

func (fn NormalizerFunc) NormalizeProjection(p *ts.TyProjection) (ts.Ty, bool) {
	return fn(p)
}

// StaticNormalizer resolves projections by their printed form.
type StaticNormalizer map[string]ts.Ty

func (n StaticNormalizer) NormalizeProjection(p *ts.TyProjection) (ts.Ty, bool) {
	ty, ok := n[p.String()]
	return ty, ok
}

// NormalizeAssociatedTypesIn replaces every projection in t that the
// Normalizer can resolve, innermost first. Unresolved projections stay in
// place. Variables are resolved before lookup, and results are cached under
// the freshened projection, so `<Vec<?0> as Tr>::A` and `<Vec<?5> as Tr>::A`
// share an entry.
func NormalizeAssociatedTypesIn[T ts.TypeFoldable[T]](ctx *Context, t T) T {
	if ctx.normalizer == nil || !ts.HasTyProjection(t) {
		return t
	}
	return ts.FoldTyProjectionWith(t, func(p *ts.TyProjection) ts.Ty {
		return ctx.normalizeProjection(p)
	})
}

func (ctx *Context) normalizeProjection(p *ts.TyProjection) ts.Ty {
	if ts.HasTyProjection(p.Self) || ts.HasTyProjection(p.Trait) {
		self := NormalizeAssociatedTypesIn(ctx, p.Self)
		trait := NormalizeAssociatedTypesIn(ctx, p.Trait)
		p = ts.NewProjection(self, trait, p.Target)
	}
	p = ResolveTypeVarsIfPossible(ctx, ts.Ty(p)).(*ts.TyProjection)

	fr := newFreshener()
	key := p.FoldWith(fr).String()
	if cached, ok := ctx.projectionCache[key]; ok {
		projectionCache.WithLabelValues("hit").Inc()
		ctx.logger.Debug("projection cache hit", "projection", p.String(), "key", key)
		return cached.FoldWith(fr.thaw())
	}
	projectionCache.WithLabelValues("miss").Inc()
	if ctx.normalizing[key] {
		return p
	}

	normalized, ok := ctx.normalizer.NormalizeProjection(p)
	if !ok {
		projectionsNormalized.WithLabelValues("unresolved").Inc()
		return p
	}
	projectionsNormalized.WithLabelValues("resolved").Inc()
	ctx.logger.Debug("normalized projection", "projection", p.String(), "ty", normalized.String())

	// The result may itself mention projections the normalizer knows.
	ctx.normalizing[key] = true
	normalized = NormalizeAssociatedTypesIn(ctx, normalized)
	delete(ctx.normalizing, key)

	// A result that mentions variables the projection does not cannot be
	// expressed over the key's fresh variables.
	if fr.covers(normalized) {
		ctx.projectionCache[key] = normalized.FoldWith(fr)
	}
	return normalized
}
