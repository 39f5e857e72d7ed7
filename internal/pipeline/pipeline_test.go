package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/tyfold/internal/config"
	"github.com/funvibe/tyfold/internal/tyexpr"
)

func TestFixturePipeline(t *testing.T) {
	ctx := NewFixturePipeline().Run(&PipelineContext{FilePath: "testdata/queries.yaml"})
	require.Empty(t, ctx.Errors)
	require.Len(t, ctx.Results, 11)

	for _, r := range ctx.Results[:10] {
		assert.NoError(t, r.Err, r.Name)
		assert.True(t, r.Passed(), "%s: got %q, want %q", r.Name, r.Output, r.Expect)
	}

	last := ctx.Results[10]
	assert.Equal(t, "deliberately wrong", last.Name)
	assert.Equal(t, "none", last.Output)
	assert.False(t, last.Passed())
	assert.Equal(t, 1, ctx.Failed())

	assert.Equal(t, "substitute Vec<T, U>", ctx.Results[0].Name)
}

func TestPipelineStopsOnLoadError(t *testing.T) {
	ctx := NewFixturePipeline().Run(&PipelineContext{FilePath: "testdata/missing.yaml"})
	require.Len(t, ctx.Errors, 1)
	assert.Nil(t, ctx.Config)
	assert.Empty(t, ctx.Results)
}

func runInline(t *testing.T, fixture string) *PipelineContext {
	t.Helper()
	cfg, err := config.ParseConfig([]byte(fixture), "inline.yaml")
	require.NoError(t, err)
	return NewFixturePipeline().Run(&PipelineContext{Config: cfg})
}

func TestDeclareErrors(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
	}{
		{"undeclared subst key", `
subst:
  s: { X: u8 }
queries:
  - { term: u8, op: flags }
`},
		{"undeclared lifetime key", `
subst:
  s: { "'b": "'static" }
queries:
  - { term: u8, op: flags }
`},
		{"binding a non-variable", `
bindings:
  "u8": "u16"
queries:
  - { term: u8, op: flags }
`},
		{"int var bound to bool", `
bindings:
  "?i0": "bool"
queries:
  - { term: u8, op: flags }
`},
		{"projection key is not a projection", `
projections:
  "Vec<u8>": u8
queries:
  - { term: u8, op: flags }
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := runInline(t, tt.fixture)
			assert.NotEmpty(t, ctx.Errors)
			assert.Empty(t, ctx.Results)
		})
	}
}

func TestQueryParseErrorIsPerQuery(t *testing.T) {
	ctx := runInline(t, `
queries:
  - { term: "Vec<", op: flags }
  - { term: "Vec<u8>", op: flags, expect: none }
`)
	require.Empty(t, ctx.Errors)
	require.Len(t, ctx.Results, 2)

	var perr *tyexpr.ParseError
	assert.ErrorAs(t, ctx.Results[0].Err, &perr)
	assert.False(t, ctx.Results[0].Passed())
	assert.True(t, ctx.Results[1].Passed())
}

func TestExpectIsCanonicalized(t *testing.T) {
	ctx := runInline(t, `
params: [T]
subst:
  s: { T: "( u8 ,bool )" }
queries:
  - { term: "Vec<T>", op: substitute, subst: s, expect: "Vec< (u8,bool) >" }
`)
	require.Empty(t, ctx.Errors)
	assert.True(t, ctx.Results[0].Passed(), ctx.Results[0].Expect)
}
