package pipeline

import (
	"github.com/funvibe/tyfold/internal/config"
)

// LoadProcessor reads and validates the fixture file.
type LoadProcessor struct{}

func (lp *LoadProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Config != nil {
		return ctx
	}
	cfg, err := config.LoadConfig(ctx.FilePath)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Config = cfg
	ctx.logger().Debug("loaded fixture", "path", ctx.FilePath, "queries", len(cfg.Queries))
	return ctx
}
