package typesystem

import "fmt"

// Predicate is a where-clause style obligation over types.
type Predicate interface {
	TypeFoldable[Predicate]
	fmt.Stringer
	isPredicate()
}

// TraitPredicate requires Self to implement Trait.
type TraitPredicate struct {
	Self  Ty
	Trait BoundElement
}

// EquatePredicate requires two types to be equal.
type EquatePredicate struct {
	A, B Ty
}

// ProjectionPredicate requires a projection to normalize to Ty.
type ProjectionPredicate struct {
	Projection *TyProjection
	Ty         Ty
}

func (TraitPredicate) isPredicate()      {}
func (EquatePredicate) isPredicate()     {}
func (ProjectionPredicate) isPredicate() {}

func (p TraitPredicate) String() string      { return fmt.Sprintf("%s: %s", p.Self, p.Trait) }
func (p EquatePredicate) String() string     { return fmt.Sprintf("%s == %s", p.A, p.B) }
func (p ProjectionPredicate) String() string { return fmt.Sprintf("%s == %s", p.Projection, p.Ty) }

// Predicates are aggregates, so the shallow fold goes straight to the deep
// one.

func (p TraitPredicate) FoldWith(f TypeFolder) Predicate { return p.SuperFoldWith(f) }

func (p TraitPredicate) SuperFoldWith(f TypeFolder) Predicate {
	return TraitPredicate{Self: p.Self.FoldWith(f), Trait: p.Trait.FoldWith(f)}
}

func (p TraitPredicate) VisitWith(v TypeVisitor) bool { return p.SuperVisitWith(v) }

func (p TraitPredicate) SuperVisitWith(v TypeVisitor) bool {
	return p.Self.VisitWith(v) || p.Trait.VisitWith(v)
}

func (p EquatePredicate) FoldWith(f TypeFolder) Predicate { return p.SuperFoldWith(f) }

func (p EquatePredicate) SuperFoldWith(f TypeFolder) Predicate {
	return EquatePredicate{A: p.A.FoldWith(f), B: p.B.FoldWith(f)}
}

func (p EquatePredicate) VisitWith(v TypeVisitor) bool { return p.SuperVisitWith(v) }

func (p EquatePredicate) SuperVisitWith(v TypeVisitor) bool {
	return p.A.VisitWith(v) || p.B.VisitWith(v)
}

func (p ProjectionPredicate) FoldWith(f TypeFolder) Predicate { return p.SuperFoldWith(f) }

// SuperFoldWith folds the projection's own children rather than handing the
// projection to FoldTy, so the predicate keeps a projection on its left side.
func (p ProjectionPredicate) SuperFoldWith(f TypeFolder) Predicate {
	proj := p.Projection.SuperFoldWith(f).(*TyProjection)
	return ProjectionPredicate{Projection: proj, Ty: p.Ty.FoldWith(f)}
}

func (p ProjectionPredicate) VisitWith(v TypeVisitor) bool { return p.SuperVisitWith(v) }

func (p ProjectionPredicate) SuperVisitWith(v TypeVisitor) bool {
	return p.Projection.SuperVisitWith(v) || p.Ty.VisitWith(v)
}

// TyList is a list of types folded element by element.
type TyList []Ty

func (l TyList) FoldWith(f TypeFolder) TyList { return l.SuperFoldWith(f) }

func (l TyList) SuperFoldWith(f TypeFolder) TyList {
	out, _ := foldTys(l, f)
	return out
}

func (l TyList) VisitWith(v TypeVisitor) bool      { return l.SuperVisitWith(v) }
func (l TyList) SuperVisitWith(v TypeVisitor) bool { return visitTys(l, v) }

func (l TyList) Flags() TypeFlags { return MergeFlags([]Ty(l)...) }
func (l TyList) String() string   { return "[" + joinKinds([]Ty(l)) + "]" }
