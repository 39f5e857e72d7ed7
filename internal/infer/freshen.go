package infer

import ts "github.com/funvibe/tyfold/internal/typesystem"

// freshener replaces inference variables with fresh variables numbered by
// first occurrence, so terms that differ only in variable ids print the same.
type freshener struct {
	ts.IdentityFolder
	tys    map[ts.TyInfer]ts.FreshTyInfer
	consts map[ts.CtInfer]ts.FreshCtInfer
}

func newFreshener() *freshener {
	return &freshener{
		tys:    make(map[ts.TyInfer]ts.FreshTyInfer),
		consts: make(map[ts.CtInfer]ts.FreshCtInfer),
	}
}

func (f *freshener) FoldTy(ty ts.Ty) ts.Ty {
	if v, ok := ty.(ts.TyInfer); ok {
		fresh, ok := f.tys[v]
		if !ok {
			fresh = ts.FreshTyInfer{Kind: v.Kind, ID: len(f.tys)}
			f.tys[v] = fresh
		}
		return fresh
	}
	if ty.Flags()&ts.NeedsInferMask != 0 {
		return ty.SuperFoldWith(f)
	}
	return ty
}

func (f *freshener) FoldConst(ct ts.Const) ts.Const {
	if v, ok := ct.(ts.CtInfer); ok {
		fresh, ok := f.consts[v]
		if !ok {
			fresh = ts.FreshCtInfer{ID: len(f.consts)}
			f.consts[v] = fresh
		}
		return fresh
	}
	return ct
}

// covers reports whether every inference variable of t was seen by f.
func (f *freshener) covers(t ts.Ty) bool {
	missing := ts.VisitInferTys(t, func(v ts.TyInfer) bool {
		_, ok := f.tys[v]
		return !ok
	})
	if missing {
		return false
	}
	return !t.VisitWith(&unseenConstVisitor{seen: f.consts})
}

// unseenConstVisitor stops at the first const variable missing from seen.
type unseenConstVisitor struct {
	ts.NoopVisitor
	seen map[ts.CtInfer]ts.FreshCtInfer
}

func (v *unseenConstVisitor) VisitTy(ty ts.Ty) bool {
	if ty.Flags().Has(ts.HasCtInferMask) {
		return ty.SuperVisitWith(v)
	}
	return false
}

func (v *unseenConstVisitor) VisitConst(ct ts.Const) bool {
	if c, ok := ct.(ts.CtInfer); ok {
		_, seen := v.seen[c]
		return !seen
	}
	return false
}

// thawer inverts a freshener: fresh variables go back to the inference
// variables they stand for.
type thawer struct {
	ts.IdentityFolder
	tys    map[ts.FreshTyInfer]ts.TyInfer
	consts map[ts.FreshCtInfer]ts.CtInfer
}

func (f *freshener) thaw() *thawer {
	t := &thawer{
		tys:    make(map[ts.FreshTyInfer]ts.TyInfer, len(f.tys)),
		consts: make(map[ts.FreshCtInfer]ts.CtInfer, len(f.consts)),
	}
	for v, fresh := range f.tys {
		t.tys[fresh] = v
	}
	for v, fresh := range f.consts {
		t.consts[fresh] = v
	}
	return t
}

// Fresh variables carry no flags, so thawing walks the whole term.
func (t *thawer) FoldTy(ty ts.Ty) ts.Ty {
	if fresh, ok := ty.(ts.FreshTyInfer); ok {
		if v, ok := t.tys[fresh]; ok {
			return v
		}
		return ty
	}
	return ty.SuperFoldWith(t)
}

func (t *thawer) FoldConst(ct ts.Const) ts.Const {
	if fresh, ok := ct.(ts.FreshCtInfer); ok {
		if v, ok := t.consts[fresh]; ok {
			return v
		}
	}
	return ct
}

// Freshen replaces type and const inference variables by fresh variables
// numbered in order of first occurrence. The result is meant as a cache key:
// `Vec<(?3, ?7, ?3)>` and `Vec<(?0, ?1, ?0)>` both freshen to
// `Vec<(?#0, ?#1, ?#0)>`.
func Freshen[T ts.TypeFoldable[T]](t T) T {
	if !ts.NeedsInfer(t) {
		return t
	}
	return t.FoldWith(newFreshener())
}
