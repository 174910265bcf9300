package options

// JSXRuntime selects how JSX factories are provided to compiled output.
type JSXRuntime uint8

const (
	// JSXRuntimeAutomatic auto-imports the JSX factory functions.
	JSXRuntimeAutomatic JSXRuntime = iota
	// JSXRuntimeClassic calls the configured pragma without importing it.
	JSXRuntimeClassic
)

// ParseJSXRuntime maps a runtime token to its variant. Only the exact token
// "classic" selects the classic runtime; every other value, including the
// empty string and differently cased tokens, yields JSXRuntimeAutomatic.
func ParseJSXRuntime(value string) JSXRuntime {
	if value == "classic" {
		return JSXRuntimeClassic
	}
	return JSXRuntimeAutomatic
}

func (r JSXRuntime) String() string {
	if r == JSXRuntimeClassic {
		return "classic"
	}
	return "automatic"
}

// MarshalText implements encoding.TextMarshaler.
func (r JSXRuntime) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with ParseJSXRuntime semantics.
func (r *JSXRuntime) UnmarshalText(text []byte) error {
	*r = ParseJSXRuntime(string(text))
	return nil
}

// RewriteExtensionsMode controls how TypeScript extensions in import and
// export specifiers are rewritten.
type RewriteExtensionsMode uint8

const (
	// RewriteExtensionsNone leaves specifiers untouched.
	RewriteExtensionsNone RewriteExtensionsMode = iota
	// RewriteExtensionsRewrite maps .ts, .mts and .cts to .js, .mjs and .cjs.
	RewriteExtensionsRewrite
	// RewriteExtensionsRemove strips .ts, .mts, .cts and .tsx entirely.
	RewriteExtensionsRemove
)

// ParseRewriteExtensionsMode maps "rewrite" and "remove" to their variants.
// Any other string means no rewriting.
func ParseRewriteExtensionsMode(value string) RewriteExtensionsMode {
	switch value {
	case "rewrite":
		return RewriteExtensionsRewrite
	case "remove":
		return RewriteExtensionsRemove
	default:
		return RewriteExtensionsNone
	}
}

func (m RewriteExtensionsMode) String() string {
	switch m {
	case RewriteExtensionsRewrite:
		return "rewrite"
	case RewriteExtensionsRemove:
		return "remove"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m RewriteExtensionsMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with ParseRewriteExtensionsMode semantics.
func (m *RewriteExtensionsMode) UnmarshalText(text []byte) error {
	*m = ParseRewriteExtensionsMode(string(text))
	return nil
}

// SourceType tells the engine how to parse the input. Resolve does not consume
// it; it is surfaced for inspection and summaries.
type SourceType uint8

const (
	// SourceTypeInferred leaves the decision to the engine, usually by file extension.
	SourceTypeInferred SourceType = iota
	SourceTypeScript
	SourceTypeModule
	SourceTypeUnambiguous
)

// ParseSourceType maps a source type token to its variant, falling back to
// SourceTypeInferred. The boolean reports whether the token was recognised.
func ParseSourceType(value string) (SourceType, bool) {
	switch value {
	case "script":
		return SourceTypeScript, true
	case "module":
		return SourceTypeModule, true
	case "unambiguous":
		return SourceTypeUnambiguous, true
	default:
		return SourceTypeInferred, false
	}
}

func (s SourceType) String() string {
	switch s {
	case SourceTypeScript:
		return "script"
	case SourceTypeModule:
		return "module"
	case SourceTypeUnambiguous:
		return "unambiguous"
	default:
		return "inferred"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s SourceType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
