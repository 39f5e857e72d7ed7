package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/tyfold/internal/config"
	"github.com/funvibe/tyfold/internal/tyexpr"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		params, lifetimes, consts = nil, nil, nil
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "testdata/tyfold.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "PASS substitute HashMap<T, U>: HashMap<&'a str, [u8; N]>")
	assert.Contains(t, out, "PASS resolve_infer fn(?0) -> T: fn(Option<bool>) -> T")
	assert.Contains(t, out, "4 queries, 0 failed")
	assert.NotContains(t, out, "\x1b[", "fixture disables colour")
}

func TestRunCommandFailures(t *testing.T) {
	out, err := execute(t, "run", "../../internal/pipeline/testdata/queries.yaml")
	require.Error(t, err)
	assert.Equal(t, "1 failures", err.Error())
	assert.Contains(t, out, "FAIL deliberately wrong")
	assert.Contains(t, out, "want: ty_infer")
}

func TestRunCommandMissingFixture(t *testing.T) {
	_, err := execute(t, "run", "testdata/missing.yaml")
	assert.Error(t, err)
}

func TestFlagsCommand(t *testing.T) {
	out, err := execute(t, "flags", "--params", "T", "Vec<T, ?0>")
	require.NoError(t, err)
	assert.Equal(t, "Vec<T, ?0>: ty_infer|ty_param\n", out)
}

func TestFlagsCommandUndeclared(t *testing.T) {
	_, err := execute(t, "flags", "&'b u8")
	assert.Error(t, err)
}

func TestDumpCommand(t *testing.T) {
	out, err := execute(t, "dump", "--lifetimes", "a", "&'a u8")
	require.NoError(t, err)
	assert.Contains(t, out, "TyReference")
	assert.Contains(t, out, "ReEarlyBound")
	assert.Contains(t, out, `"a"`)
}

func TestMeasure(t *testing.T) {
	env := tyexpr.NewEnv().DeclareParams("T").DeclareLifetimes("a").DeclareConsts("N")
	tests := []struct {
		term                   string
		types, regions, consts int
		depth                  int
	}{
		{"u8", 1, 0, 0, 1},
		{"&'a T", 2, 1, 0, 2},
		{"[Vec<T>; N]", 3, 0, 1, 3},
		{"fn(u8, (bool, T)) -> !", 6, 0, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			s := measure(tyexpr.MustParseTy(tt.term, env))
			assert.Equal(t, tt.types, s.types, "types")
			assert.Equal(t, tt.regions, s.regions, "regions")
			assert.Equal(t, tt.consts, s.consts, "consts")
			assert.Equal(t, tt.depth, s.maxDepth, "depth")
		})
	}
}

func TestWriteCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "tyfold_test_total",
	}, []string{"result"})
	promauto.With(reg).NewCounter(prometheus.CounterOpts{Name: "other_total"}).Inc()
	c.WithLabelValues("hit").Add(1234)
	c.WithLabelValues("miss").Inc()

	var buf bytes.Buffer
	require.NoError(t, writeCounters(&buf, reg))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		`tyfold_test_total{result="hit"} 1,234`,
		`tyfold_test_total{result="miss"} 1`,
	}, lines)
}

func TestPalette(t *testing.T) {
	var buf bytes.Buffer

	p := newPalette(config.ColorAlways, nil, &buf)
	assert.Equal(t, "\x1b[32mPASS\x1b[0m", p.pass())

	p = newPalette(config.ColorNever, nil, &buf)
	assert.Equal(t, "FAIL", p.fail())

	p = newPalette(config.ColorAuto, nil, &buf)
	assert.False(t, p.enabled, "a buffer is not a terminal")

	p = newPalette(config.ColorAuto, &config.Config{Color: config.ColorAlways}, &buf)
	assert.True(t, p.enabled)
}
