package config

import "strings"

// FixtureFileExtensions are all recognized fixture file extensions
var FixtureFileExtensions = []string{".yaml", ".yml"}

// HasFixtureExt reports whether path ends in a fixture extension.
func HasFixtureExt(path string) bool {
	for _, ext := range FixtureFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TrimFixtureExt removes a fixture extension from name, if present.
func TrimFixtureExt(name string) string {
	for _, ext := range FixtureFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// Display names of the unknown sentinels. The textual notation parses the
// same spellings back.
const (
	UnknownTyName     = "_"
	UnknownRegionName = "'_"
	UnknownConstName  = "_"
)

// Names of the query operations a fixture may request.
const (
	OpFlags               = "flags"
	OpSubstitute          = "substitute"
	OpSubstituteOrUnknown = "substitute_or_unknown"
	OpCollectInfer        = "collect_infer"
	OpResolveInfer        = "resolve_infer"
	OpContains            = "contains"
	OpContainsConst       = "contains_const"
	OpFreshen             = "freshen"
	OpNormalize           = "normalize"
)

// KnownOps lists every operation accepted in a fixture.
var KnownOps = []string{
	OpFlags,
	OpSubstitute,
	OpSubstituteOrUnknown,
	OpCollectInfer,
	OpResolveInfer,
	OpContains,
	OpContainsConst,
	OpFreshen,
	OpNormalize,
}

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
