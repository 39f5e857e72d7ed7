package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/tyfold/internal/config"
	"github.com/funvibe/tyfold/internal/infer"
	"github.com/funvibe/tyfold/internal/tyexpr"
	ts "github.com/funvibe/tyfold/internal/typesystem"
)

// QueryProcessor runs every fixture query in order. A failing query is
// recorded in its result and does not stop the others.
type QueryProcessor struct{}

func (qp *QueryProcessor) Process(ctx *PipelineContext) *PipelineContext {
	for _, q := range ctx.Config.Queries {
		result := QueryResult{Name: q.Name, Op: q.Op, Term: q.Term, Expect: q.Expect}
		result.Output, result.Err = runQuery(ctx, q)
		if result.Expect != "" && result.Err == nil {
			result.Expect = canonicalExpect(ctx.Env, q.Op, result.Expect)
		}
		ctx.logger().Debug("ran query", "name", q.Name, "output", result.Output, "passed", result.Passed())
		ctx.Results = append(ctx.Results, result)
	}
	return ctx
}

func runQuery(ctx *PipelineContext, q config.Query) (string, error) {
	ty, err := tyexpr.ParseTy(q.Term, ctx.Env)
	if err != nil {
		return "", err
	}

	switch q.Op {
	case config.OpFlags:
		return ty.Flags().String(), nil
	case config.OpSubstitute:
		return ts.Substitute(ty, ctx.Substs[q.Subst]).String(), nil
	case config.OpSubstituteOrUnknown:
		return ts.SubstituteOrUnknown(ty, ctx.Substs[q.Subst]).String(), nil
	case config.OpCollectInfer:
		return ts.TyList(inferTys(ty)).String(), nil
	case config.OpResolveInfer:
		return infer.ResolveTypeVarsIfPossible(ctx.Infer, ty).String(), nil
	case config.OpContains:
		classes, err := ts.ParseTyClasses(q.Classes...)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(ts.ContainsTyOfClass(ty, classes)), nil
	case config.OpContainsConst:
		classes, err := ts.ParseConstClasses(q.Classes...)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(ts.ContainsConstOfClass(ty, classes)), nil
	case config.OpFreshen:
		return infer.Freshen(ty).String(), nil
	case config.OpNormalize:
		return infer.NormalizeAssociatedTypesIn(ctx.Infer, ty).String(), nil
	default:
		return "", fmt.Errorf("unknown op %q", q.Op)
	}
}

func inferTys(ty ts.Ty) []ts.Ty {
	vars := ts.CollectInferTys(ty)
	out := make([]ts.Ty, len(vars))
	for i, v := range vars {
		out[i] = v
	}
	return out
}

// canonicalExpect reprints an expected term so that spacing differences do
// not count as failures. Expectations that are not terms (flag sets,
// booleans, lists) are compared as written.
func canonicalExpect(env *tyexpr.Env, op, expect string) string {
	switch op {
	case config.OpFlags, config.OpContains, config.OpContainsConst, config.OpCollectInfer, config.OpFreshen:
		return strings.TrimSpace(expect)
	}
	ty, err := tyexpr.ParseTy(expect, env)
	if err != nil {
		return expect
	}
	return ty.String()
}
