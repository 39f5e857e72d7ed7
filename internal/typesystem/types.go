package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/tyfold/internal/config"
)

// Ty is a type term. The set of implementations is closed; dispatch over it
// is a type switch (see superFoldTy, ClassOf).
//
// Leaf variants are plain values. Composite variants are pointers built with
// their New* constructor, which computes the flags from the children.
type Ty interface {
	Kind
	TypeFoldable[Ty]
	isTy()
}

// TyPrimitive is a built-in scalar type such as i32, bool or str.
type TyPrimitive struct {
	Name string
}

var (
	TyBool  = TyPrimitive{Name: "bool"}
	TyChar  = TyPrimitive{Name: "char"}
	TyStr   = TyPrimitive{Name: "str"}
	TyI8    = TyPrimitive{Name: "i8"}
	TyI16   = TyPrimitive{Name: "i16"}
	TyI32   = TyPrimitive{Name: "i32"}
	TyI64   = TyPrimitive{Name: "i64"}
	TyI128  = TyPrimitive{Name: "i128"}
	TyIsize = TyPrimitive{Name: "isize"}
	TyU8    = TyPrimitive{Name: "u8"}
	TyU16   = TyPrimitive{Name: "u16"}
	TyU32   = TyPrimitive{Name: "u32"}
	TyU64   = TyPrimitive{Name: "u64"}
	TyU128  = TyPrimitive{Name: "u128"}
	TyUsize = TyPrimitive{Name: "usize"}
	TyF32   = TyPrimitive{Name: "f32"}
	TyF64   = TyPrimitive{Name: "f64"}
)

var primitives = map[string]TyPrimitive{}

func init() {
	for _, p := range []TyPrimitive{
		TyBool, TyChar, TyStr,
		TyI8, TyI16, TyI32, TyI64, TyI128, TyIsize,
		TyU8, TyU16, TyU32, TyU64, TyU128, TyUsize,
		TyF32, TyF64,
	} {
		primitives[p.Name] = p
	}
}

// LookupPrimitive returns the primitive type with the given name.
func LookupPrimitive(name string) (TyPrimitive, bool) {
	p, ok := primitives[name]
	return p, ok
}

func (t TyPrimitive) IsInteger() bool {
	switch t {
	case TyI8, TyI16, TyI32, TyI64, TyI128, TyIsize, TyU8, TyU16, TyU32, TyU64, TyU128, TyUsize:
		return true
	}
	return false
}

func (t TyPrimitive) IsFloat() bool {
	return t == TyF32 || t == TyF64
}

func (t TyPrimitive) Flags() TypeFlags { return 0 }
func (t TyPrimitive) String() string   { return t.Name }

// TyUnknown stands for a type that could not be determined.
type TyUnknown struct{}

func (TyUnknown) Flags() TypeFlags { return 0 }
func (TyUnknown) String() string   { return config.UnknownTyName }

// TyNever is the type of diverging expressions.
type TyNever struct{}

func (TyNever) Flags() TypeFlags { return 0 }
func (TyNever) String() string   { return "!" }

// InferKind distinguishes general type variables from the integer and float
// literal variables.
type InferKind int

const (
	TyVarKind InferKind = iota
	IntVarKind
	FloatVarKind
)

func (k InferKind) prefix() string {
	switch k {
	case IntVarKind:
		return "i"
	case FloatVarKind:
		return "f"
	default:
		return ""
	}
}

func (k InferKind) String() string {
	switch k {
	case IntVarKind:
		return "int"
	case FloatVarKind:
		return "float"
	default:
		return "ty"
	}
}

// TyInfer is a type inference variable awaiting resolution by unification.
type TyInfer struct {
	Kind InferKind
	ID   int
}

func NewTyVar(id int) TyInfer    { return TyInfer{Kind: TyVarKind, ID: id} }
func NewIntVar(id int) TyInfer   { return TyInfer{Kind: IntVarKind, ID: id} }
func NewFloatVar(id int) TyInfer { return TyInfer{Kind: FloatVarKind, ID: id} }

func (t TyInfer) Flags() TypeFlags { return HasTyInferMask }
func (t TyInfer) String() string   { return fmt.Sprintf("?%s%d", t.Kind.prefix(), t.ID) }

// FreshTyInfer replaces a TyInfer inside cache keys. It carries no flags, so
// a freshened term never looks like it needs inference.
type FreshTyInfer struct {
	Kind InferKind
	ID   int
}

func (t FreshTyInfer) Flags() TypeFlags { return 0 }
func (t FreshTyInfer) String() string   { return fmt.Sprintf("?#%s%d", t.Kind.prefix(), t.ID) }

// TyTypeParameter is a generic type parameter, identified by name.
type TyTypeParameter struct {
	Name string
}

func (t TyTypeParameter) Flags() TypeFlags { return HasTyTypeParameterMask }
func (t TyTypeParameter) String() string   { return t.Name }

// TyAdt is a named struct, enum or union applied to generic arguments.
type TyAdt struct {
	Item       string
	TypeArgs   []Ty
	RegionArgs []Region
	ConstArgs  []Const
	flags      TypeFlags
}

func NewAdt(item string, typeArgs []Ty, regionArgs []Region, constArgs []Const) *TyAdt {
	return &TyAdt{
		Item:       item,
		TypeArgs:   typeArgs,
		RegionArgs: regionArgs,
		ConstArgs:  constArgs,
		flags:      MergeFlags(typeArgs...) | MergeFlags(regionArgs...) | MergeFlags(constArgs...),
	}
}

// Adt is shorthand for an ADT with type arguments only.
func Adt(item string, typeArgs ...Ty) *TyAdt {
	return NewAdt(item, typeArgs, nil, nil)
}

func (t *TyAdt) Flags() TypeFlags { return t.flags }

func (t *TyAdt) String() string {
	args := make([]string, 0, len(t.RegionArgs)+len(t.TypeArgs)+len(t.ConstArgs))
	for _, r := range t.RegionArgs {
		args = append(args, r.String())
	}
	for _, ty := range t.TypeArgs {
		args = append(args, ty.String())
	}
	for _, c := range t.ConstArgs {
		args = append(args, c.String())
	}
	if len(args) == 0 {
		return t.Item
	}
	return fmt.Sprintf("%s<%s>", t.Item, strings.Join(args, ", "))
}

// TyTuple is a tuple type; the empty tuple is the unit type.
type TyTuple struct {
	Types []Ty
	flags TypeFlags
}

func NewTuple(types ...Ty) *TyTuple {
	return &TyTuple{Types: types, flags: MergeFlags(types...)}
}

// Unit returns the empty tuple.
func Unit() *TyTuple { return NewTuple() }

func (t *TyTuple) IsUnit() bool     { return len(t.Types) == 0 }
func (t *TyTuple) Flags() TypeFlags { return t.flags }

func (t *TyTuple) String() string {
	if len(t.Types) == 1 {
		return fmt.Sprintf("(%s,)", t.Types[0])
	}
	return fmt.Sprintf("(%s)", joinKinds(t.Types))
}

// TyReference is a borrowed reference `&'a T` or `&'a mut T`.
type TyReference struct {
	Referenced Ty
	Mutable    bool
	Region     Region
	flags      TypeFlags
}

func NewReference(referenced Ty, mutable bool, region Region) *TyReference {
	if region == nil {
		region = ReUnknown{}
	}
	return &TyReference{
		Referenced: referenced,
		Mutable:    mutable,
		Region:     region,
		flags:      referenced.Flags() | region.Flags(),
	}
}

func (t *TyReference) Flags() TypeFlags { return t.flags }

func (t *TyReference) String() string {
	var sb strings.Builder
	sb.WriteString("&")
	switch t.Region.(type) {
	case ReUnknown, ReErased:
	default:
		sb.WriteString(t.Region.String())
		sb.WriteString(" ")
	}
	if t.Mutable {
		sb.WriteString("mut ")
	}
	sb.WriteString(t.Referenced.String())
	return sb.String()
}

// TyPointer is a raw pointer `*const T` or `*mut T`.
type TyPointer struct {
	Referenced Ty
	Mutable    bool
	flags      TypeFlags
}

func NewPointer(referenced Ty, mutable bool) *TyPointer {
	return &TyPointer{Referenced: referenced, Mutable: mutable, flags: referenced.Flags()}
}

func (t *TyPointer) Flags() TypeFlags { return t.flags }

func (t *TyPointer) String() string {
	if t.Mutable {
		return "*mut " + t.Referenced.String()
	}
	return "*const " + t.Referenced.String()
}

// TyArray is a fixed-size array `[T; N]`.
type TyArray struct {
	Base  Ty
	Size  Const
	flags TypeFlags
}

func NewArray(base Ty, size Const) *TyArray {
	if size == nil {
		size = CtUnknown{}
	}
	return &TyArray{Base: base, Size: size, flags: base.Flags() | size.Flags()}
}

func (t *TyArray) Flags() TypeFlags { return t.flags }
func (t *TyArray) String() string   { return fmt.Sprintf("[%s; %s]", t.Base, t.Size) }

// TySlice is a dynamically sized slice `[T]`.
type TySlice struct {
	Elem  Ty
	flags TypeFlags
}

func NewSlice(elem Ty) *TySlice {
	return &TySlice{Elem: elem, flags: elem.Flags()}
}

func (t *TySlice) Flags() TypeFlags { return t.flags }
func (t *TySlice) String() string   { return fmt.Sprintf("[%s]", t.Elem) }

// TyFunction is a function pointer type `fn(A, B) -> R`.
type TyFunction struct {
	Params []Ty
	Ret    Ty
	flags  TypeFlags
}

func NewFunction(params []Ty, ret Ty) *TyFunction {
	if ret == nil {
		ret = Unit()
	}
	return &TyFunction{Params: params, Ret: ret, flags: MergeFlags(params...) | ret.Flags()}
}

func (t *TyFunction) Flags() TypeFlags { return t.flags }

func (t *TyFunction) String() string {
	s := fmt.Sprintf("fn(%s)", joinKinds(t.Params))
	if tuple, ok := t.Ret.(*TyTuple); ok && tuple.IsUnit() {
		return s
	}
	return s + " -> " + t.Ret.String()
}

// TyProjection is an associated type of a trait implementation that has not
// been normalized yet: `<Self as Trait>::Target`.
type TyProjection struct {
	Self   Ty
	Trait  BoundElement
	Target string
	flags  TypeFlags
}

func NewProjection(self Ty, trait BoundElement, target string) *TyProjection {
	return &TyProjection{
		Self:   self,
		Trait:  trait,
		Target: target,
		flags:  HasTyProjectionMask | self.Flags() | MergeElementFlags(trait),
	}
}

func (t *TyProjection) Flags() TypeFlags { return t.flags }

func (t *TyProjection) String() string {
	return fmt.Sprintf("<%s as %s>::%s", t.Self, t.Trait, t.Target)
}

// TyTraitObject is a trait object `dyn A + B + 'r`.
type TyTraitObject struct {
	Traits []BoundElement
	Region Region
	flags  TypeFlags
}

func NewTraitObject(traits []BoundElement, region Region) *TyTraitObject {
	if region == nil {
		region = ReUnknown{}
	}
	flags := region.Flags()
	for _, tr := range traits {
		flags |= MergeElementFlags(tr)
	}
	return &TyTraitObject{Traits: traits, Region: region, flags: flags}
}

func (t *TyTraitObject) Flags() TypeFlags { return t.flags }

func (t *TyTraitObject) String() string {
	parts := make([]string, 0, len(t.Traits)+1)
	for _, tr := range t.Traits {
		parts = append(parts, tr.String())
	}
	switch t.Region.(type) {
	case ReUnknown, ReErased:
	default:
		parts = append(parts, t.Region.String())
	}
	return "dyn " + strings.Join(parts, " + ")
}

func joinKinds[K Kind](kinds []K) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}

func (TyPrimitive) isTy()     {}
func (TyUnknown) isTy()       {}
func (TyNever) isTy()         {}
func (TyInfer) isTy()         {}
func (FreshTyInfer) isTy()    {}
func (TyTypeParameter) isTy() {}
func (*TyAdt) isTy()          {}
func (*TyTuple) isTy()        {}
func (*TyReference) isTy()    {}
func (*TyPointer) isTy()      {}
func (*TyArray) isTy()        {}
func (*TySlice) isTy()        {}
func (*TyFunction) isTy()     {}
func (*TyProjection) isTy()   {}
func (*TyTraitObject) isTy()  {}

// Shallow dispatch: every type hands itself to the folder's FoldTy hook and
// the visitor's VisitTy hook. The deep step is the shared type switch.

func (t TyPrimitive) FoldWith(f TypeFolder) Ty              { return f.FoldTy(t) }
func (t TyPrimitive) SuperFoldWith(f TypeFolder) Ty         { return superFoldTy(t, f) }
func (t TyPrimitive) VisitWith(v TypeVisitor) bool          { return v.VisitTy(t) }
func (t TyPrimitive) SuperVisitWith(v TypeVisitor) bool     { return superVisitTy(t, v) }
func (t TyUnknown) FoldWith(f TypeFolder) Ty                { return f.FoldTy(t) }
func (t TyUnknown) SuperFoldWith(f TypeFolder) Ty           { return superFoldTy(t, f) }
func (t TyUnknown) VisitWith(v TypeVisitor) bool            { return v.VisitTy(t) }
func (t TyUnknown) SuperVisitWith(v TypeVisitor) bool       { return superVisitTy(t, v) }
func (t TyNever) FoldWith(f TypeFolder) Ty                  { return f.FoldTy(t) }
func (t TyNever) SuperFoldWith(f TypeFolder) Ty             { return superFoldTy(t, f) }
func (t TyNever) VisitWith(v TypeVisitor) bool              { return v.VisitTy(t) }
func (t TyNever) SuperVisitWith(v TypeVisitor) bool         { return superVisitTy(t, v) }
func (t TyInfer) FoldWith(f TypeFolder) Ty                  { return f.FoldTy(t) }
func (t TyInfer) SuperFoldWith(f TypeFolder) Ty             { return superFoldTy(t, f) }
func (t TyInfer) VisitWith(v TypeVisitor) bool              { return v.VisitTy(t) }
func (t TyInfer) SuperVisitWith(v TypeVisitor) bool         { return superVisitTy(t, v) }
func (t FreshTyInfer) FoldWith(f TypeFolder) Ty             { return f.FoldTy(t) }
func (t FreshTyInfer) SuperFoldWith(f TypeFolder) Ty        { return superFoldTy(t, f) }
func (t FreshTyInfer) VisitWith(v TypeVisitor) bool         { return v.VisitTy(t) }
func (t FreshTyInfer) SuperVisitWith(v TypeVisitor) bool    { return superVisitTy(t, v) }
func (t TyTypeParameter) FoldWith(f TypeFolder) Ty          { return f.FoldTy(t) }
func (t TyTypeParameter) SuperFoldWith(f TypeFolder) Ty     { return superFoldTy(t, f) }
func (t TyTypeParameter) VisitWith(v TypeVisitor) bool      { return v.VisitTy(t) }
func (t TyTypeParameter) SuperVisitWith(v TypeVisitor) bool { return superVisitTy(t, v) }
func (t *TyAdt) FoldWith(f TypeFolder) Ty                   { return f.FoldTy(t) }
func (t *TyAdt) SuperFoldWith(f TypeFolder) Ty              { return superFoldTy(t, f) }
func (t *TyAdt) VisitWith(v TypeVisitor) bool               { return v.VisitTy(t) }
func (t *TyAdt) SuperVisitWith(v TypeVisitor) bool          { return superVisitTy(t, v) }
func (t *TyTuple) FoldWith(f TypeFolder) Ty                 { return f.FoldTy(t) }
func (t *TyTuple) SuperFoldWith(f TypeFolder) Ty            { return superFoldTy(t, f) }
func (t *TyTuple) VisitWith(v TypeVisitor) bool             { return v.VisitTy(t) }
func (t *TyTuple) SuperVisitWith(v TypeVisitor) bool        { return superVisitTy(t, v) }
func (t *TyReference) FoldWith(f TypeFolder) Ty             { return f.FoldTy(t) }
func (t *TyReference) SuperFoldWith(f TypeFolder) Ty        { return superFoldTy(t, f) }
func (t *TyReference) VisitWith(v TypeVisitor) bool         { return v.VisitTy(t) }
func (t *TyReference) SuperVisitWith(v TypeVisitor) bool    { return superVisitTy(t, v) }
func (t *TyPointer) FoldWith(f TypeFolder) Ty               { return f.FoldTy(t) }
func (t *TyPointer) SuperFoldWith(f TypeFolder) Ty          { return superFoldTy(t, f) }
func (t *TyPointer) VisitWith(v TypeVisitor) bool           { return v.VisitTy(t) }
func (t *TyPointer) SuperVisitWith(v TypeVisitor) bool      { return superVisitTy(t, v) }
func (t *TyArray) FoldWith(f TypeFolder) Ty                 { return f.FoldTy(t) }
func (t *TyArray) SuperFoldWith(f TypeFolder) Ty            { return superFoldTy(t, f) }
func (t *TyArray) VisitWith(v TypeVisitor) bool             { return v.VisitTy(t) }
func (t *TyArray) SuperVisitWith(v TypeVisitor) bool        { return superVisitTy(t, v) }
func (t *TySlice) FoldWith(f TypeFolder) Ty                 { return f.FoldTy(t) }
func (t *TySlice) SuperFoldWith(f TypeFolder) Ty            { return superFoldTy(t, f) }
func (t *TySlice) VisitWith(v TypeVisitor) bool             { return v.VisitTy(t) }
func (t *TySlice) SuperVisitWith(v TypeVisitor) bool        { return superVisitTy(t, v) }
func (t *TyFunction) FoldWith(f TypeFolder) Ty              { return f.FoldTy(t) }
func (t *TyFunction) SuperFoldWith(f TypeFolder) Ty         { return superFoldTy(t, f) }
func (t *TyFunction) VisitWith(v TypeVisitor) bool          { return v.VisitTy(t) }
func (t *TyFunction) SuperVisitWith(v TypeVisitor) bool     { return superVisitTy(t, v) }
func (t *TyProjection) FoldWith(f TypeFolder) Ty            { return f.FoldTy(t) }
func (t *TyProjection) SuperFoldWith(f TypeFolder) Ty       { return superFoldTy(t, f) }
func (t *TyProjection) VisitWith(v TypeVisitor) bool        { return v.VisitTy(t) }
func (t *TyProjection) SuperVisitWith(v TypeVisitor) bool   { return superVisitTy(t, v) }
func (t *TyTraitObject) FoldWith(f TypeFolder) Ty           { return f.FoldTy(t) }
func (t *TyTraitObject) SuperFoldWith(f TypeFolder) Ty      { return superFoldTy(t, f) }
func (t *TyTraitObject) VisitWith(v TypeVisitor) bool       { return v.VisitTy(t) }
func (t *TyTraitObject) SuperVisitWith(v TypeVisitor) bool  { return superVisitTy(t, v) }
