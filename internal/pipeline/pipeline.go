package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// NewFixturePipeline returns the stages that run one fixture file: load,
// declare, query.
func NewFixturePipeline() *Pipeline {
	return New(&LoadProcessor{}, &DeclareProcessor{}, &QueryProcessor{})
}

// Run executes the pipeline. A stage that leaves errors in the context stops
// the run; later stages would only report follow-up errors.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if len(ctx.Errors) > 0 {
			break
		}
	}
	return ctx
}
