package options

import (
	"fmt"

	"golang.org/x/text/cases"
)

// Finding describes an input that resolution accepts but silently degrades
// or ignores. Findings never change what Resolve returns.
type Finding struct {
	Path       string `json:"path" yaml:"path"`
	Value      string `json:"value,omitempty" yaml:"value,omitempty"`
	Message    string `json:"message" yaml:"message"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

func (f Finding) String() string {
	out := fmt.Sprintf("%s: %s", f.Path, f.Message)
	if f.Suggestion != "" {
		out += " (" + f.Suggestion + ")"
	}
	return out
}

var (
	sourceTypeTokens = []string{"script", "module", "unambiguous"}
	runtimeTokens    = []string{"classic", "automatic"}
	rewriteTokens    = []string{"rewrite", "remove"}
)

// Inspect reports enum tokens that fall back to a default and classic-only
// JSX options supplied under the automatic runtime.
func Inspect(external ExternalConfig) []Finding {
	var findings []Finding
	folder := cases.Fold()

	unknownToken := func(path, value string, tokens []string, message string) {
		for _, token := range tokens {
			if value == token {
				return
			}
		}
		finding := Finding{Path: path, Value: value, Message: message}
		folded := folder.String(value)
		for _, token := range tokens {
			if folded == token {
				finding.Suggestion = fmt.Sprintf("did you mean %q?", token)
				break
			}
		}
		findings = append(findings, finding)
	}

	if external.SourceType != nil {
		unknownToken("sourceType", *external.SourceType, sourceTypeTokens,
			"unrecognised source type; the engine infers it from the file name")
	}

	if ts := external.TypeScript; ts != nil {
		if mode, ok := ts.RewriteImportExtensions.safeB(); ok {
			unknownToken("typescript.rewriteImportExtensions", mode, rewriteTokens,
				"unrecognised mode; import extensions are left unchanged")
		}
	}

	if jsx := external.React; jsx != nil {
		if jsx.Runtime != nil {
			unknownToken("react.runtime", *jsx.Runtime, runtimeTokens,
				"unrecognised runtime; falls back to automatic")
		}
		if ParseJSXRuntime(optional(jsx.Runtime, "")) == JSXRuntimeAutomatic {
			classicOnly := []struct {
				path string
				set  bool
			}{
				{"react.pragma", jsx.Pragma != nil},
				{"react.pragmaFrag", jsx.PragmaFrag != nil},
				{"react.useBuiltIns", jsx.UseBuiltIns != nil},
				{"react.useSpread", jsx.UseSpread != nil},
			}
			for _, option := range classicOnly {
				if option.set {
					findings = append(findings, Finding{
						Path:    option.path,
						Message: "only used by the classic runtime; ignored under automatic",
					})
				}
			}
		}
	}

	return findings
}

// safeB is B on a possibly nil union.
func (e *Either[A, B]) safeB() (B, bool) {
	if e == nil {
		var zero B
		return zero, false
	}
	return e.B()
}
