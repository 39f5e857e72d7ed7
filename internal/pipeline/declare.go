package pipeline

import (
	"fmt"
	"sort"

	"github.com/funvibe/tyfold/internal/config"
	"github.com/funvibe/tyfold/internal/infer"
	"github.com/funvibe/tyfold/internal/tyexpr"
	ts "github.com/funvibe/tyfold/internal/typesystem"
)

// DeclareProcessor turns the fixture's declarations into an Env, named
// substitutions, variable bindings and a normalizer.
type DeclareProcessor struct{}

func (dp *DeclareProcessor) Process(ctx *PipelineContext) *PipelineContext {
	cfg := ctx.Config
	ctx.Env = tyexpr.EnvFromConfig(cfg)

	normalizer, err := buildNormalizer(ctx.Env, cfg.Projections)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Infer = infer.NewContext(infer.WithLogger(ctx.logger()), infer.WithNormalizer(normalizer))

	ctx.Substs = make(map[string]ts.Substitution, len(cfg.Substs))
	for _, name := range sortedKeys(cfg.Substs) {
		subst, err := buildSubst(ctx.Env, cfg.Substs[name])
		if err != nil {
			ctx.Errors = append(ctx.Errors, fmt.Errorf("subst %s: %w", name, err))
			continue
		}
		ctx.Substs[name] = subst
	}

	for _, key := range sortedKeys(cfg.Bindings) {
		if err := bind(ctx.Infer, ctx.Env, key, cfg.Bindings[key]); err != nil {
			ctx.Errors = append(ctx.Errors, fmt.Errorf("bindings %s: %w", key, err))
		}
	}
	return ctx
}

func buildSubst(env *tyexpr.Env, entries map[string]string) (ts.Substitution, error) {
	subst := ts.EmptySubstitution
	for _, key := range sortedKeys(entries) {
		value := entries[key]
		switch {
		case config.IsRegionKey(key):
			p, ok := env.Lifetime(key)
			if !ok {
				return subst, tyexpr.NewUndeclaredError("lifetime", key)
			}
			r, err := tyexpr.ParseRegion(value, env)
			if err != nil {
				return subst, err
			}
			subst = subst.WithRegion(p, r)
		default:
			if p, ok := env.ConstParam(key); ok {
				c, err := tyexpr.ParseConst(value, env)
				if err != nil {
					return subst, err
				}
				subst = subst.WithConst(p, c)
				continue
			}
			p, ok := env.Param(key)
			if !ok {
				return subst, tyexpr.NewUndeclaredError("type parameter", key)
			}
			ty, err := tyexpr.ParseTy(value, env)
			if err != nil {
				return subst, err
			}
			subst = subst.WithTy(p, ty)
		}
	}
	return subst, nil
}

// bind parses a binding such as "?0": "Vec<?1>" or "?c0": "3".
func bind(ctx *infer.Context, env *tyexpr.Env, key, value string) error {
	if ct, err := tyexpr.ParseConst(key, env); err == nil {
		v, ok := ct.(ts.CtInfer)
		if !ok {
			return fmt.Errorf("%s is not an inference variable", key)
		}
		c, err := tyexpr.ParseConst(value, env)
		if err != nil {
			return err
		}
		return ctx.BindConst(v, c)
	}

	ty, err := tyexpr.ParseTy(key, env)
	if err != nil {
		return err
	}
	v, ok := ty.(ts.TyInfer)
	if !ok {
		return fmt.Errorf("%s is not an inference variable", key)
	}
	bound, err := tyexpr.ParseTy(value, env)
	if err != nil {
		return err
	}
	return ctx.BindTy(v, bound)
}

// buildNormalizer parses both sides of every projection entry, so that keys
// match the printed form of parsed projections regardless of spacing.
func buildNormalizer(env *tyexpr.Env, projections map[string]string) (infer.StaticNormalizer, error) {
	n := make(infer.StaticNormalizer, len(projections))
	for _, key := range sortedKeys(projections) {
		proj, err := tyexpr.ParseTy(key, env)
		if err != nil {
			return nil, fmt.Errorf("projections: %w", err)
		}
		if _, ok := proj.(*ts.TyProjection); !ok {
			return nil, fmt.Errorf("projections: %s is not a projection", key)
		}
		ty, err := tyexpr.ParseTy(projections[key], env)
		if err != nil {
			return nil, fmt.Errorf("projections: %w", err)
		}
		n[proj.String()] = ty
	}
	return n, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
