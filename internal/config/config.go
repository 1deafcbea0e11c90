// Package config holds the small set of package-level constants shared
// across the JD pipeline, following the teacher's internal/config package:
// no config-file loader lives here, because the core has no persistent
// configuration (spec §5).
package config

// Version is the current jd runner version.
var Version = "0.1.0"

// SourceFileExt is the canonical extension for JD source files.
const SourceFileExt = ".jd"

// Well-known grammar keywords. The lexer and parser keep their own
// spellings (the token keyword table and literal strings) and do not
// read these constants.
const (
	KeywordLoad        = "load"
	KeywordImplements  = "implements"
	KeywordJustification = "justification"
	KeywordPattern     = "pattern"
	KeywordComposition = "composition"
	KeywordEvidence    = "evidence"
	KeywordStrategy    = "strategy"
	KeywordSubConclusion = "sub-conclusion"
	KeywordConclusion  = "conclusion"
	KeywordSupport     = "@support"
	KeywordSupports    = "supports"
)

// ManifestFileName is the optional CLI-boundary project manifest (see
// SPEC_FULL.md §1.3). Never read by the core packages.
const ManifestFileName = "jd.project.yaml"

// ProjectManifest bundles repeatable-run defaults for cmd/jd: a default
// source file, procedure library paths, and variable bindings. It is a
// convenience the distillation's CLI section never mentioned; nothing
// in internal/engine, internal/runtime or internal/evaluator knows it
// exists.
type ProjectManifest struct {
	Source    string   `yaml:"source"`
	Libraries []string `yaml:"libraries"`
	Variables []string `yaml:"variables"`
}
