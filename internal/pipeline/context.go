package pipeline

import (
	"log/slog"

	"github.com/funvibe/tyfold/internal/config"
	"github.com/funvibe/tyfold/internal/infer"
	"github.com/funvibe/tyfold/internal/tyexpr"
	ts "github.com/funvibe/tyfold/internal/typesystem"
)

// Processor is one stage of a Pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries a fixture through the stages.
type PipelineContext struct {
	// FilePath is the fixture to load. Ignored when Config is already set.
	FilePath string
	Logger   *slog.Logger

	Config *config.Config
	Env    *tyexpr.Env
	Infer  *infer.Context
	Substs map[string]ts.Substitution

	Results []QueryResult
	Errors  []error
}

func (ctx *PipelineContext) logger() *slog.Logger {
	if ctx.Logger == nil {
		return slog.Default()
	}
	return ctx.Logger
}

// QueryResult is the outcome of one fixture query.
type QueryResult struct {
	Name   string
	Op     string
	Term   string
	Output string
	Expect string
	Err    error
}

// Passed reports whether the query ran and matched its expectation, if any.
func (r QueryResult) Passed() bool {
	return r.Err == nil && (r.Expect == "" || r.Expect == r.Output)
}

// Failed counts the results that did not pass.
func (ctx *PipelineContext) Failed() int {
	n := 0
	for _, r := range ctx.Results {
		if !r.Passed() {
			n++
		}
	}
	return n
}
