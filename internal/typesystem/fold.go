package typesystem

// TypeFolder rewrites the types, regions and consts of a term. Each hook sees
// a node before its children: returning a replacement without calling
// SuperFoldWith skips the subtree, calling SuperFoldWith rebuilds the node
// from folded children.
type TypeFolder interface {
	FoldTy(ty Ty) Ty
	FoldRegion(region Region) Region
	FoldConst(ct Const) Const
}

// TypeVisitor is the read-only dual of TypeFolder. A hook returning true stops
// the traversal.
type TypeVisitor interface {
	VisitTy(ty Ty) bool
	VisitRegion(region Region) bool
	VisitConst(ct Const) bool
}

// IdentityFolder leaves every node unchanged. Embed it and override the hooks
// you need.
type IdentityFolder struct{}

func (IdentityFolder) FoldTy(ty Ty) Ty                 { return ty }
func (IdentityFolder) FoldRegion(region Region) Region { return region }
func (IdentityFolder) FoldConst(ct Const) Const        { return ct }

// NoopVisitor never matches. Embed it and override the hooks you need.
type NoopVisitor struct{}

func (NoopVisitor) VisitTy(Ty) bool         { return false }
func (NoopVisitor) VisitRegion(Region) bool { return false }
func (NoopVisitor) VisitConst(Const) bool   { return false }

// TypeFoldable is implemented by every term that contains types, regions or
// consts.
//
// FoldWith is the shallow step: a Ty, Region or Const hands itself to the
// matching folder hook, an aggregate (predicate, substitution, list) folds its
// children directly. SuperFoldWith is the deep step and always rebuilds the
// node from its folded children. VisitWith and SuperVisitWith are the boolean
// duals; children are visited in field order and the first true wins.
type TypeFoldable[T any] interface {
	FoldWith(folder TypeFolder) T
	SuperFoldWith(folder TypeFolder) T
	VisitWith(visitor TypeVisitor) bool
	SuperVisitWith(visitor TypeVisitor) bool
}

// superFoldTy rebuilds ty from folded children. Leaves are returned as is, and
// so is any composite whose children all fold to themselves.
func superFoldTy(ty Ty, f TypeFolder) Ty {
	switch t := ty.(type) {
	case *TyAdt:
		tys, c1 := foldTys(t.TypeArgs, f)
		regions, c2 := foldRegions(t.RegionArgs, f)
		consts, c3 := foldConsts(t.ConstArgs, f)
		if !c1 && !c2 && !c3 {
			return t
		}
		return NewAdt(t.Item, tys, regions, consts)
	case *TyTuple:
		tys, changed := foldTys(t.Types, f)
		if !changed {
			return t
		}
		return NewTuple(tys...)
	case *TyReference:
		referenced := t.Referenced.FoldWith(f)
		region := t.Region.FoldWith(f)
		if referenced == t.Referenced && region == t.Region {
			return t
		}
		return NewReference(referenced, t.Mutable, region)
	case *TyPointer:
		referenced := t.Referenced.FoldWith(f)
		if referenced == t.Referenced {
			return t
		}
		return NewPointer(referenced, t.Mutable)
	case *TyArray:
		base := t.Base.FoldWith(f)
		size := t.Size.FoldWith(f)
		if base == t.Base && size == t.Size {
			return t
		}
		return NewArray(base, size)
	case *TySlice:
		elem := t.Elem.FoldWith(f)
		if elem == t.Elem {
			return t
		}
		return NewSlice(elem)
	case *TyFunction:
		params, changed := foldTys(t.Params, f)
		ret := t.Ret.FoldWith(f)
		if !changed && ret == t.Ret {
			return t
		}
		return NewFunction(params, ret)
	case *TyProjection:
		self := t.Self.FoldWith(f)
		trait := t.Trait.FoldWith(f)
		if self == t.Self && trait.same(t.Trait) {
			return t
		}
		return NewProjection(self, trait, t.Target)
	case *TyTraitObject:
		traits := make([]BoundElement, len(t.Traits))
		changed := false
		for i, tr := range t.Traits {
			traits[i] = tr.FoldWith(f)
			changed = changed || !traits[i].same(tr)
		}
		region := t.Region.FoldWith(f)
		if !changed && region == t.Region {
			return t
		}
		return NewTraitObject(traits, region)
	default:
		// TyPrimitive, TyUnknown, TyNever, TyInfer, FreshTyInfer, TyTypeParameter
		return ty
	}
}

// superVisitTy visits the children of ty in field order, stopping at the
// first child for which the visitor returns true.
func superVisitTy(ty Ty, v TypeVisitor) bool {
	switch t := ty.(type) {
	case *TyAdt:
		return visitTys(t.TypeArgs, v) || visitRegions(t.RegionArgs, v) || visitConsts(t.ConstArgs, v)
	case *TyTuple:
		return visitTys(t.Types, v)
	case *TyReference:
		return t.Referenced.VisitWith(v) || t.Region.VisitWith(v)
	case *TyPointer:
		return t.Referenced.VisitWith(v)
	case *TyArray:
		return t.Base.VisitWith(v) || t.Size.VisitWith(v)
	case *TySlice:
		return t.Elem.VisitWith(v)
	case *TyFunction:
		return visitTys(t.Params, v) || t.Ret.VisitWith(v)
	case *TyProjection:
		return t.Self.VisitWith(v) || t.Trait.VisitWith(v)
	case *TyTraitObject:
		for _, tr := range t.Traits {
			if tr.VisitWith(v) {
				return true
			}
		}
		return t.Region.VisitWith(v)
	default:
		return false
	}
}

func foldTys(tys []Ty, f TypeFolder) ([]Ty, bool) {
	if len(tys) == 0 {
		return tys, false
	}
	out := make([]Ty, len(tys))
	changed := false
	for i, ty := range tys {
		out[i] = ty.FoldWith(f)
		if out[i] != ty {
			changed = true
		}
	}
	if !changed {
		return tys, false
	}
	return out, true
}

func foldRegions(regions []Region, f TypeFolder) ([]Region, bool) {
	if len(regions) == 0 {
		return regions, false
	}
	out := make([]Region, len(regions))
	changed := false
	for i, r := range regions {
		out[i] = r.FoldWith(f)
		if out[i] != r {
			changed = true
		}
	}
	if !changed {
		return regions, false
	}
	return out, true
}

func foldConsts(consts []Const, f TypeFolder) ([]Const, bool) {
	if len(consts) == 0 {
		return consts, false
	}
	out := make([]Const, len(consts))
	changed := false
	for i, c := range consts {
		out[i] = c.FoldWith(f)
		if out[i] != c {
			changed = true
		}
	}
	if !changed {
		return consts, false
	}
	return out, true
}

func visitTys(tys []Ty, v TypeVisitor) bool {
	for _, ty := range tys {
		if ty.VisitWith(v) {
			return true
		}
	}
	return false
}

func visitRegions(regions []Region, v TypeVisitor) bool {
	for _, r := range regions {
		if r.VisitWith(v) {
			return true
		}
	}
	return false
}

func visitConsts(consts []Const, v TypeVisitor) bool {
	for _, c := range consts {
		if c.VisitWith(v) {
			return true
		}
	}
	return false
}
