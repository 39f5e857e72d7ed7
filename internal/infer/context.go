// Package infer holds the per-session state of type inference: inference
// variables, their bindings and the projection normalization cache. The
// traversal itself lives in typesystem; this package only supplies the
// callbacks.
package infer

import (
	"log/slog"

	"github.com/google/uuid"

	ts "github.com/funvibe/tyfold/internal/typesystem"
)

// Context holds the state for one inference session.
// It is not safe for concurrent use.
type Context struct {
	ID uuid.UUID

	logger     *slog.Logger
	normalizer Normalizer

	nextTy     int
	nextInt    int
	nextFloat  int
	nextConst  int
	nextRegion int

	tyBindings    map[ts.TyInfer]ts.Ty
	constBindings map[ts.CtInfer]ts.Const

	// projectionCache maps the freshened projection to its normal form,
	// itself expressed over fresh variables.
	projectionCache map[string]ts.Ty
	// normalizing holds the keys of projections being normalized, so a
	// result that mentions its own projection is not expanded forever.
	normalizing map[string]bool
}

type Option func(*Context)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ctx *Context) { ctx.logger = logger }
}

// WithNormalizer sets the collaborator used by NormalizeAssociatedTypesIn.
// Without one, every projection is left as is.
func WithNormalizer(n Normalizer) Option {
	return func(ctx *Context) { ctx.normalizer = n }
}

// NewContext creates a new inference context.
func NewContext(opts ...Option) *Context {
	ctx := &Context{
		ID:              uuid.New(),
		logger:          slog.Default(),
		tyBindings:      make(map[ts.TyInfer]ts.Ty),
		constBindings:   make(map[ts.CtInfer]ts.Const),
		projectionCache: make(map[string]ts.Ty),
		normalizing:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(ctx)
	}
	ctx.logger = ctx.logger.With("session", ctx.ID.String())
	return ctx
}

func (ctx *Context) NewTyVar() ts.TyInfer {
	v := ts.NewTyVar(ctx.nextTy)
	ctx.nextTy++
	varsCreated.WithLabelValues("ty").Inc()
	return v
}

func (ctx *Context) NewIntVar() ts.TyInfer {
	v := ts.NewIntVar(ctx.nextInt)
	ctx.nextInt++
	varsCreated.WithLabelValues("int").Inc()
	return v
}

func (ctx *Context) NewFloatVar() ts.TyInfer {
	v := ts.NewFloatVar(ctx.nextFloat)
	ctx.nextFloat++
	varsCreated.WithLabelValues("float").Inc()
	return v
}

func (ctx *Context) NewConstVar() ts.CtInfer {
	v := ts.CtInfer{ID: ctx.nextConst}
	ctx.nextConst++
	varsCreated.WithLabelValues("const").Inc()
	return v
}

func (ctx *Context) NewRegionVar() ts.ReVar {
	v := ts.ReVar{ID: ctx.nextRegion}
	ctx.nextRegion++
	varsCreated.WithLabelValues("region").Inc()
	return v
}

// InstantiateBounds maps every given parameter to a fresh variable of its
// category.
func (ctx *Context) InstantiateBounds(types []ts.TyTypeParameter, regions []ts.ReEarlyBound, consts []ts.CtConstParameter) ts.Substitution {
	tyMap := make(map[ts.TyTypeParameter]ts.Ty, len(types))
	for _, p := range types {
		tyMap[p] = ctx.NewTyVar()
	}
	regionMap := make(map[ts.ReEarlyBound]ts.Region, len(regions))
	for _, p := range regions {
		regionMap[p] = ctx.NewRegionVar()
	}
	constMap := make(map[ts.CtConstParameter]ts.Const, len(consts))
	for _, p := range consts {
		constMap[p] = ctx.NewConstVar()
	}
	return ts.NewSubstitution(tyMap, regionMap, constMap)
}

// InstantiateItem is InstantiateBounds over the parameters of item.
func (ctx *Context) InstantiateItem(item *ts.GenericItem) ts.Substitution {
	return ctx.InstantiateBounds(item.TypeParams, item.RegionParams, item.ConstParams)
}

// BindTy records v := ty. A variable is bound at most once; an integer or
// float variable only accepts a type of its family (or another variable of
// the same kind).
func (ctx *Context) BindTy(v ts.TyInfer, ty ts.Ty) error {
	if existing, ok := ctx.tyBindings[v]; ok {
		bindings.WithLabelValues(bindAlreadyBound).Inc()
		return NewAlreadyBoundError(v, existing)
	}

	resolved := ResolveTypeVarsIfPossible(ctx, ty)
	if resolved == ts.Ty(v) {
		return nil
	}
	if !kindAccepts(v.Kind, resolved) {
		bindings.WithLabelValues(bindKindMismatch).Inc()
		return NewKindMismatchError(v, resolved)
	}
	occurs := ts.VisitInferTys(resolved, func(other ts.TyInfer) bool { return other == v })
	if occurs {
		bindings.WithLabelValues(bindCyclic).Inc()
		return NewCyclicBindingError(v, resolved)
	}

	ctx.tyBindings[v] = ty
	bindings.WithLabelValues(bindOK).Inc()
	ctx.logger.Debug("bound type variable", "var", v.String(), "ty", ty.String())
	return nil
}

func kindAccepts(kind ts.InferKind, ty ts.Ty) bool {
	switch kind {
	case ts.IntVarKind:
		switch t := ty.(type) {
		case ts.TyPrimitive:
			return t.IsInteger()
		case ts.TyInfer:
			return t.Kind == ts.IntVarKind
		case ts.TyUnknown:
			return true
		}
		return false
	case ts.FloatVarKind:
		switch t := ty.(type) {
		case ts.TyPrimitive:
			return t.IsFloat()
		case ts.TyInfer:
			return t.Kind == ts.FloatVarKind
		case ts.TyUnknown:
			return true
		}
		return false
	default:
		return true
	}
}

// BindConst records v := ct, with the same once-only rule as BindTy.
func (ctx *Context) BindConst(v ts.CtInfer, ct ts.Const) error {
	if existing, ok := ctx.constBindings[v]; ok {
		bindings.WithLabelValues(bindAlreadyBound).Inc()
		return NewAlreadyBoundError(v, existing)
	}
	if ctx.resolveConst(ct) == ts.Const(v) {
		return nil
	}
	ctx.constBindings[v] = ct
	bindings.WithLabelValues(bindOK).Inc()
	ctx.logger.Debug("bound const variable", "var", v.String(), "const", ct.String())
	return nil
}

// ProbeTy returns the value v is directly bound to.
func (ctx *Context) ProbeTy(v ts.TyInfer) (ts.Ty, bool) {
	ty, ok := ctx.tyBindings[v]
	return ty, ok
}

// ProbeConst returns the value v is directly bound to.
func (ctx *Context) ProbeConst(v ts.CtInfer) (ts.Const, bool) {
	ct, ok := ctx.constBindings[v]
	return ct, ok
}

// ShallowResolve follows the bindings of ty while it is a variable. The
// children of the result are left unresolved. BindTy keeps the table acyclic,
// so the chain always ends.
func (ctx *Context) ShallowResolve(ty ts.Ty) ts.Ty {
	for {
		v, ok := ty.(ts.TyInfer)
		if !ok {
			return ty
		}
		bound, ok := ctx.tyBindings[v]
		if !ok {
			return ty
		}
		ty = bound
	}
}

// resolveConst follows const bindings. Consts have no children, so the end
// of the chain is fully resolved.
func (ctx *Context) resolveConst(ct ts.Const) ts.Const {
	for {
		v, ok := ct.(ts.CtInfer)
		if !ok {
			return ct
		}
		bound, ok := ctx.constBindings[v]
		if !ok {
			return ct
		}
		ct = bound
	}
}

// ResolveTypeVarsIfPossible replaces every bound variable in t by its value,
// transitively. Unbound variables are kept.
func ResolveTypeVarsIfPossible[T ts.TypeFoldable[T]](ctx *Context, t T) T {
	if !ts.NeedsInfer(t) {
		return t
	}
	t = ts.FoldTyInferWith(t, func(v ts.TyInfer) ts.Ty {
		return ctx.ShallowResolve(v)
	})
	return ts.FoldCtInferWith(t, func(v ts.CtInfer) ts.Const {
		return ctx.resolveConst(v)
	})
}

// FullyResolve is ResolveTypeVarsIfPossible followed by defaulting: an
// unbound type variable becomes the unknown type, integer variables default to
// i32, float variables to f64 and const variables to the unknown const.
func FullyResolve[T ts.TypeFoldable[T]](ctx *Context, t T) T {
	if !ts.NeedsInfer(t) {
		return t
	}
	t = ts.FoldTyInferWith(t, func(v ts.TyInfer) ts.Ty {
		resolved := ctx.ShallowResolve(v)
		last, ok := resolved.(ts.TyInfer)
		if !ok {
			return resolved
		}
		switch last.Kind {
		case ts.IntVarKind:
			return ts.TyI32
		case ts.FloatVarKind:
			return ts.TyF64
		default:
			return ts.TyUnknown{}
		}
	})
	return ts.FoldCtInferWith(t, func(v ts.CtInfer) ts.Const {
		resolved := ctx.resolveConst(v)
		if _, ok := resolved.(ts.CtInfer); ok {
			return ts.CtUnknown{}
		}
		return resolved
	})
}
