package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileNames are the fixture names FindConfig looks for.
var ConfigFileNames = []string{"tyfold.yaml", "tyfold.yml"}

// Config represents a query fixture file.
type Config struct {
	// Color selects terminal colouring: auto, always or never.
	// Defaults to auto.
	Color string `yaml:"color,omitempty"`

	// Params declares the type parameters that may appear in terms.
	// An identifier that is not declared here, not a primitive and not a
	// trait is read as an ADT name.
	Params []string `yaml:"params,omitempty"`

	// Lifetimes declares the early-bound lifetimes, without the quote
	// (e.g. "a" for 'a).
	Lifetimes []string `yaml:"lifetimes,omitempty"`

	// Consts declares the const generic parameters.
	Consts []string `yaml:"consts,omitempty"`

	// Traits declares traits and their type parameters in order, so that
	// `Into<U>` knows which parameter U instantiates:
	//
	//   traits:
	//     Into: [T]
	//     Iterator: []
	Traits map[string][]string `yaml:"traits,omitempty"`

	// Substs are named substitutions referenced by queries. Keys are
	// parameter names: a leading quote marks a lifetime, names listed in
	// Consts are const parameters, everything else is a type parameter.
	// Values are terms in the textual notation.
	//
	//   subst:
	//     s1: { T: i32, "'a": "'static", N: "3" }
	Substs map[string]map[string]string `yaml:"subst,omitempty"`

	// Bindings pre-binds inference variables for resolve_infer queries
	// (e.g. "?0": "Vec<?1>", "?1": "u8").
	Bindings map[string]string `yaml:"bindings,omitempty"`

	// Projections lists known normalizations for normalize queries
	// (e.g. "<Vec<u8> as IntoIterator>::Item": "u8").
	Projections map[string]string `yaml:"projections,omitempty"`

	// Queries are run in order.
	Queries []Query `yaml:"queries"`
}

// Query is a single operation on a term.
type Query struct {
	// Name labels the query in reports. Defaults to "<op> <term>".
	Name string `yaml:"name,omitempty"`

	// Term is the input term in the textual notation.
	Term string `yaml:"term"`

	// Op is one of KnownOps.
	Op string `yaml:"op"`

	// Subst names an entry of Config.Substs. Required by substitute and
	// substitute_or_unknown.
	Subst string `yaml:"subst,omitempty"`

	// Classes are the class names tested by contains and contains_const.
	Classes []string `yaml:"classes,omitempty"`

	// Expect is the expected printed result. When empty the result is only
	// reported.
	Expect string `yaml:"expect,omitempty"`
}

// ValidationError reports an invalid fixture field.
type ValidationError struct {
	Path  string
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Field, e.Msg)
}

func NewValidationError(path, field, msg string) *ValidationError {
	return &ValidationError{Path: path, Field: field, Msg: msg}
}

// LoadConfig reads and validates the fixture at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses fixture YAML. path is only used in error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig walks up from dir looking for a fixture file. It returns ""
// without error when none is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// IsRegionKey reports whether a substitution key names a lifetime.
func IsRegionKey(key string) bool {
	return strings.HasPrefix(key, "'")
}

func (c *Config) validate(path string) error {
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return NewValidationError(path, "color", fmt.Sprintf("unknown mode %q", c.Color))
	}

	declared := make(map[string]string)
	declare := func(field, name string) error {
		if name == "" {
			return NewValidationError(path, field, "empty name")
		}
		if prev, ok := declared[name]; ok {
			return NewValidationError(path, field, fmt.Sprintf("%q already declared in %s", name, prev))
		}
		declared[name] = field
		return nil
	}
	for i, p := range c.Params {
		if err := declare(fmt.Sprintf("params[%d]", i), p); err != nil {
			return err
		}
	}
	for i, p := range c.Consts {
		if err := declare(fmt.Sprintf("consts[%d]", i), p); err != nil {
			return err
		}
	}
	for name := range c.Traits {
		if err := declare("traits", name); err != nil {
			return err
		}
	}
	for i, l := range c.Lifetimes {
		if l == "" || IsRegionKey(l) {
			return NewValidationError(path, fmt.Sprintf("lifetimes[%d]", i), "lifetimes are declared without the quote")
		}
	}

	if len(c.Queries) == 0 {
		return NewValidationError(path, "queries", "no queries defined")
	}

	for i, q := range c.Queries {
		field := fmt.Sprintf("queries[%d]", i)
		if q.Term == "" {
			return NewValidationError(path, field, "term is required")
		}
		if !slices.Contains(KnownOps, q.Op) {
			return NewValidationError(path, field, fmt.Sprintf("unknown op %q", q.Op))
		}
		needsSubst := q.Op == OpSubstitute || q.Op == OpSubstituteOrUnknown
		if needsSubst && q.Subst == "" {
			return NewValidationError(path, field, fmt.Sprintf("%s requires subst", q.Op))
		}
		if q.Subst != "" {
			if !needsSubst {
				return NewValidationError(path, field, fmt.Sprintf("subst is only valid with %s and %s", OpSubstitute, OpSubstituteOrUnknown))
			}
			if _, ok := c.Substs[q.Subst]; !ok {
				return NewValidationError(path, field, fmt.Sprintf("unknown subst %q", q.Subst))
			}
		}
		isContains := q.Op == OpContains || q.Op == OpContainsConst
		if isContains && len(q.Classes) == 0 {
			return NewValidationError(path, field, fmt.Sprintf("%s requires classes", q.Op))
		}
		if !isContains && len(q.Classes) > 0 {
			return NewValidationError(path, field, "classes is only valid with contains and contains_const")
		}
	}

	return nil
}

func (c *Config) setDefaults() {
	if c.Color == "" {
		c.Color = ColorAuto
	}
	for i := range c.Queries {
		if c.Queries[i].Name == "" {
			c.Queries[i].Name = c.Queries[i].Op + " " + c.Queries[i].Term
		}
	}
}
