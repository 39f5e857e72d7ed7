package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFixture = `
params: [T, U]
lifetimes: [a]
consts: [N]
traits:
  Into: [Target]
subst:
  s1: { T: i32, "'a": "'static", N: "3" }
queries:
  - term: "Vec<T, U>"
    op: substitute
    subst: s1
    expect: "Vec<i32, U>"
  - name: infer vars
    term: "Result<?0, U>"
    op: contains
    classes: [infer]
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(validFixture), "fixture.yaml")
	require.NoError(t, err)

	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, []string{"T", "U"}, cfg.Params)
	assert.Equal(t, []string{"a"}, cfg.Lifetimes)
	assert.Equal(t, map[string][]string{"Into": {"Target"}}, cfg.Traits)
	assert.Equal(t, "'static", cfg.Substs["s1"]["'a"])
	require.Len(t, cfg.Queries, 2)
	assert.Equal(t, "substitute Vec<T, U>", cfg.Queries[0].Name)
	assert.Equal(t, "infer vars", cfg.Queries[1].Name)
	assert.Equal(t, []string{"infer"}, cfg.Queries[1].Classes)
}

func TestParseConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
		field   string
	}{
		{"bad color", "color: sometimes\nqueries: [{term: u8, op: flags}]", "color"},
		{"duplicate param", "params: [T, T]\nqueries: [{term: u8, op: flags}]", "params[1]"},
		{"param and const clash", "params: [N]\nconsts: [N]\nqueries: [{term: u8, op: flags}]", "consts[0]"},
		{"quoted lifetime", "lifetimes: [\"'a\"]\nqueries: [{term: u8, op: flags}]", "lifetimes[0]"},
		{"no queries", "params: [T]", "queries"},
		{"missing term", "queries: [{op: flags}]", "queries[0]"},
		{"unknown op", "queries: [{term: u8, op: unify}]", "queries[0]"},
		{"substitute without subst", "queries: [{term: u8, op: substitute}]", "queries[0]"},
		{"unknown subst", "queries: [{term: u8, op: substitute, subst: nope}]", "queries[0]"},
		{"subst on flags", "subst: {s: {}}\nqueries: [{term: u8, op: flags, subst: s}]", "queries[0]"},
		{"contains without classes", "queries: [{term: u8, op: contains}]", "queries[0]"},
		{"classes on flags", "queries: [{term: u8, op: flags, classes: [infer]}]", "queries[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.fixture), "bad.yaml")
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, "bad.yaml", verr.Path)
		})
	}
}

func TestParseConfigSyntaxError(t *testing.T) {
	_, err := ParseConfig([]byte("queries: [unclosed"), "broken.yaml")
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestLoadAndFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindConfig(nested)
	require.NoError(t, err)
	assert.Empty(t, found)

	path := filepath.Join(root, "a", "tyfold.yml")
	require.NoError(t, os.WriteFile(path, []byte(validFixture), 0o644))

	found, err = FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	cfg, err := LoadConfig(found)
	require.NoError(t, err)
	assert.Len(t, cfg.Queries, 2)

	_, err = LoadConfig(filepath.Join(root, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFixtureExtensions(t *testing.T) {
	assert.True(t, HasFixtureExt("queries.yaml"))
	assert.True(t, HasFixtureExt("dir/queries.yml"))
	assert.False(t, HasFixtureExt("queries.json"))
	assert.Equal(t, "queries", TrimFixtureExt("queries.yml"))
	assert.Equal(t, "notes.txt", TrimFixtureExt("notes.txt"))
	assert.True(t, IsRegionKey("'a"))
	assert.False(t, IsRegionKey("T"))
}
