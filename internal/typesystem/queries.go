package typesystem

// The queries below are small folders and visitors over TypeFoldable terms.
// Folders that look for a specific feature check the matching flag before
// descending, so subtrees without it are returned untouched in O(1).

type tyInferFolder struct {
	IdentityFolder
	fn func(TyInfer) Ty
}

func (f *tyInferFolder) FoldTy(ty Ty) Ty {
	folded := ty
	if v, ok := ty.(TyInfer); ok {
		folded = f.fn(v)
	}
	if folded.Flags().Has(HasTyInferMask) {
		return folded.SuperFoldWith(f)
	}
	return folded
}

// FoldTyInferWith deeply replaces every TyInfer with fn(v). A replacement that
// still contains inference variables is folded again.
func FoldTyInferWith[T TypeFoldable[T]](t T, fn func(TyInfer) Ty) T {
	return t.FoldWith(&tyInferFolder{fn: fn})
}

type tyTypeParameterFolder struct {
	IdentityFolder
	fn func(TyTypeParameter) Ty
}

func (f *tyTypeParameterFolder) FoldTy(ty Ty) Ty {
	if p, ok := ty.(TyTypeParameter); ok {
		return f.fn(p)
	}
	if ty.Flags().Has(HasTyTypeParameterMask) {
		return ty.SuperFoldWith(f)
	}
	return ty
}

// FoldTyTypeParameterWith deeply replaces every TyTypeParameter with fn(p).
func FoldTyTypeParameterWith[T TypeFoldable[T]](t T, fn func(TyTypeParameter) Ty) T {
	return t.FoldWith(&tyTypeParameterFolder{fn: fn})
}

type ctInferFolder struct {
	IdentityFolder
	fn func(CtInfer) Const
}

func (f *ctInferFolder) FoldTy(ty Ty) Ty {
	if ty.Flags().Has(HasCtInferMask) {
		return ty.SuperFoldWith(f)
	}
	return ty
}

func (f *ctInferFolder) FoldConst(ct Const) Const {
	if v, ok := ct.(CtInfer); ok {
		return f.fn(v)
	}
	return ct
}

// FoldCtInferWith deeply replaces every CtInfer with fn(v).
func FoldCtInferWith[T TypeFoldable[T]](t T, fn func(CtInfer) Const) T {
	return t.FoldWith(&ctInferFolder{fn: fn})
}

type ctConstParameterFolder struct {
	IdentityFolder
	fn func(CtConstParameter) Const
}

func (f *ctConstParameterFolder) FoldTy(ty Ty) Ty {
	if ty.Flags().Has(HasCtParameterMask) {
		return ty.SuperFoldWith(f)
	}
	return ty
}

func (f *ctConstParameterFolder) FoldConst(ct Const) Const {
	if p, ok := ct.(CtConstParameter); ok {
		return f.fn(p)
	}
	return ct
}

// FoldCtConstParameterWith deeply replaces every CtConstParameter with fn(p).
func FoldCtConstParameterWith[T TypeFoldable[T]](t T, fn func(CtConstParameter) Const) T {
	return t.FoldWith(&ctConstParameterFolder{fn: fn})
}

type tyProjectionFolder struct {
	IdentityFolder
	fn func(*TyProjection) Ty
}

func (f *tyProjectionFolder) FoldTy(ty Ty) Ty {
	if p, ok := ty.(*TyProjection); ok {
		return f.fn(p)
	}
	if ty.Flags().Has(HasTyProjectionMask) {
		return ty.SuperFoldWith(f)
	}
	return ty
}

// FoldTyProjectionWith deeply replaces every outermost TyProjection with
// fn(p). Projections nested inside a replaced projection are left to fn.
func FoldTyProjectionWith[T TypeFoldable[T]](t T, fn func(*TyProjection) Ty) T {
	return t.FoldWith(&tyProjectionFolder{fn: fn})
}

type substFolder struct {
	subst     Substitution
	orUnknown bool
}

func (f *substFolder) FoldTy(ty Ty) Ty {
	if p, ok := ty.(TyTypeParameter); ok {
		if r, ok := f.subst.Ty(p); ok {
			return r
		}
		if f.orUnknown {
			return TyUnknown{}
		}
		return ty
	}
	if ty.Flags().Has(NeedsSubstMask) {
		return ty.SuperFoldWith(f)
	}
	return ty
}

func (f *substFolder) FoldRegion(region Region) Region {
	if p, ok := region.(ReEarlyBound); ok {
		if r, ok := f.subst.Region(p); ok {
			return r
		}
		if f.orUnknown {
			return ReUnknown{}
		}
	}
	return region
}

func (f *substFolder) FoldConst(ct Const) Const {
	if p, ok := ct.(CtConstParameter); ok {
		if r, ok := f.subst.Const(p); ok {
			return r
		}
		if f.orUnknown {
			return CtUnknown{}
		}
	}
	return ct
}

// Substitute deeply replaces type parameters, early-bound regions and const
// parameters by their mapping in subst. Unmapped parameters stay as they are.
func Substitute[T TypeFoldable[T]](t T, subst Substitution) T {
	return t.FoldWith(&substFolder{subst: subst})
}

// SubstituteOrUnknown is Substitute, except that an unmapped parameter becomes
// the unknown sentinel of its category.
func SubstituteOrUnknown[T TypeFoldable[T]](t T, subst Substitution) T {
	return t.FoldWith(&substFolder{subst: subst, orUnknown: true})
}

type tyClassVisitor struct {
	NoopVisitor
	classes TyClass
}

func (v *tyClassVisitor) VisitTy(ty Ty) bool {
	if ClassOf(ty)&v.classes != 0 {
		return true
	}
	return ty.SuperVisitWith(v)
}

// ContainsTyOfClass reports whether any type in t belongs to classes. There
// is no flag for arbitrary class sets, so the whole term is scanned.
func ContainsTyOfClass[T TypeFoldable[T]](t T, classes TyClass) bool {
	return t.VisitWith(&tyClassVisitor{classes: classes})
}

type constClassVisitor struct {
	NoopVisitor
	classes ConstClass
}

func (v *constClassVisitor) VisitTy(ty Ty) bool { return ty.SuperVisitWith(v) }

func (v *constClassVisitor) VisitConst(ct Const) bool {
	return ConstClassOf(ct)&v.classes != 0
}

// ContainsConstOfClass reports whether any const in t belongs to classes.
func ContainsConstOfClass[T TypeFoldable[T]](t T, classes ConstClass) bool {
	return t.VisitWith(&constClassVisitor{classes: classes})
}

type inferTysVisitor struct {
	NoopVisitor
	fn func(TyInfer) bool
}

func (v *inferTysVisitor) VisitTy(ty Ty) bool {
	if i, ok := ty.(TyInfer); ok {
		return v.fn(i)
	}
	if ty.Flags().Has(HasTyInferMask) {
		return ty.SuperVisitWith(v)
	}
	return false
}

// VisitInferTys calls fn on every TyInfer in t, left to right, until fn
// returns true. It reports whether fn stopped the walk.
func VisitInferTys[T TypeFoldable[T]](t T, fn func(TyInfer) bool) bool {
	return t.VisitWith(&inferTysVisitor{fn: fn})
}

// CollectInferTys returns every TyInfer occurrence in t, left to right.
func CollectInferTys[T TypeFoldable[T]](t T) []TyInfer {
	vars := []TyInfer{}
	VisitInferTys(t, func(v TyInfer) bool {
		vars = append(vars, v)
		return false
	})
	return vars
}

// hasFlagVisitor answers from the precomputed flags of the first node it
// sees, so a Ty, Region or Const root costs O(1).
type hasFlagVisitor struct {
	flag TypeFlags
}

func (v hasFlagVisitor) VisitTy(ty Ty) bool             { return ty.Flags().Has(v.flag) }
func (v hasFlagVisitor) VisitRegion(region Region) bool { return region.Flags().Has(v.flag) }
func (v hasFlagVisitor) VisitConst(ct Const) bool       { return ct.Flags().Has(v.flag) }

var (
	hasTyInferVisitor          = hasFlagVisitor{flag: HasTyInferMask}
	hasTyTypeParameterVisitor  = hasFlagVisitor{flag: HasTyTypeParameterMask}
	hasTyProjectionVisitor     = hasFlagVisitor{flag: HasTyProjectionMask}
	hasReEarlyBoundVisitor     = hasFlagVisitor{flag: HasReEarlyBoundMask}
	hasCtInferVisitor          = hasFlagVisitor{flag: HasCtInferMask}
	hasCtConstParameterVisitor = hasFlagVisitor{flag: HasCtParameterMask}
)

func HasTyInfer[T TypeFoldable[T]](t T) bool { return t.VisitWith(hasTyInferVisitor) }

func HasTyTypeParameters[T TypeFoldable[T]](t T) bool {
	return t.VisitWith(hasTyTypeParameterVisitor)
}

func HasTyProjection[T TypeFoldable[T]](t T) bool { return t.VisitWith(hasTyProjectionVisitor) }

func HasReEarlyBounds[T TypeFoldable[T]](t T) bool { return t.VisitWith(hasReEarlyBoundVisitor) }

func HasCtInfer[T TypeFoldable[T]](t T) bool { return t.VisitWith(hasCtInferVisitor) }

func HasCtConstParameters[T TypeFoldable[T]](t T) bool {
	return t.VisitWith(hasCtConstParameterVisitor)
}

// NeedsInfer reports whether t contains a type or const inference variable.
func NeedsInfer[T TypeFoldable[T]](t T) bool {
	return HasTyInfer(t) || HasCtInfer(t)
}

// NeedsSubst reports whether t contains anything a Substitution replaces.
func NeedsSubst[T TypeFoldable[T]](t T) bool {
	return HasTyTypeParameters(t) || HasReEarlyBounds(t) || HasCtConstParameters(t)
}
