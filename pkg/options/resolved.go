package options

// TransformOptions is the fully populated configuration handed to the
// transformation engine for a single transform call.
type TransformOptions struct {
	Cwd        string            `json:"cwd" yaml:"cwd"`
	TypeScript TypeScriptOptions `json:"typescript" yaml:"typescript"`
	JSX        JSXOptions        `json:"jsx" yaml:"jsx"`
	ES2015     ES2015Options     `json:"es2015" yaml:"es2015"`
	Sourcemap  bool              `json:"sourcemap" yaml:"sourcemap"`
}

// TypeScriptOptions is the resolved TypeScript subsection.
type TypeScriptOptions struct {
	JSXPragma             string `json:"jsxPragma" yaml:"jsxPragma"`
	JSXPragmaFrag         string `json:"jsxPragmaFrag" yaml:"jsxPragmaFrag"`
	OnlyRemoveTypeImports bool   `json:"onlyRemoveTypeImports" yaml:"onlyRemoveTypeImports"`
	AllowNamespaces       bool   `json:"allowNamespaces" yaml:"allowNamespaces"`
	AllowDeclareFields    bool   `json:"allowDeclareFields" yaml:"allowDeclareFields"`
	// OptimizeConstEnums is supported by the engine but never enabled through
	// the external surface.
	OptimizeConstEnums      bool                         `json:"optimizeConstEnums" yaml:"optimizeConstEnums"`
	Declaration             *IsolatedDeclarationsOptions `json:"declaration" yaml:"declaration"`
	RewriteImportExtensions RewriteExtensionsMode        `json:"rewriteImportExtensions" yaml:"rewriteImportExtensions"`
}

// IsolatedDeclarationsOptions configures .d.ts emission.
type IsolatedDeclarationsOptions struct {
	StripInternal bool `json:"stripInternal" yaml:"stripInternal"`
	Sourcemap     bool `json:"sourcemap" yaml:"sourcemap"`
}

// JSXOptions is the resolved JSX subsection.
type JSXOptions struct {
	// Plugin toggles are engine-only and always carry their defaults.
	JSXPlugin         bool `json:"jsxPlugin" yaml:"jsxPlugin"`
	DisplayNamePlugin bool `json:"displayNamePlugin" yaml:"displayNamePlugin"`
	JSXSelfPlugin     bool `json:"jsxSelfPlugin" yaml:"jsxSelfPlugin"`
	JSXSourcePlugin   bool `json:"jsxSourcePlugin" yaml:"jsxSourcePlugin"`

	Runtime          JSXRuntime `json:"runtime" yaml:"runtime"`
	Development      bool       `json:"development" yaml:"development"`
	ThrowIfNamespace bool       `json:"throwIfNamespace" yaml:"throwIfNamespace"`
	Pure             bool       `json:"pure" yaml:"pure"`

	ImportSource *string `json:"importSource" yaml:"importSource"`
	Pragma       *string `json:"pragma" yaml:"pragma"`
	PragmaFrag   *string `json:"pragmaFrag" yaml:"pragmaFrag"`
	UseBuiltIns  *bool   `json:"useBuiltIns" yaml:"useBuiltIns"`
	UseSpread    *bool   `json:"useSpread" yaml:"useSpread"`

	Refresh *ReactRefreshOptions `json:"refresh" yaml:"refresh"`
}

// ReactRefreshOptions names the identifiers used by Fast Refresh instrumentation.
type ReactRefreshOptions struct {
	RefreshReg         string `json:"refreshReg" yaml:"refreshReg"`
	RefreshSig         string `json:"refreshSig" yaml:"refreshSig"`
	EmitFullSignatures bool   `json:"emitFullSignatures" yaml:"emitFullSignatures"`
}

// ES2015Options is the resolved ES2015 subsection.
type ES2015Options struct {
	// ArrowFunction is nil when arrow function downleveling was not requested.
	ArrowFunction *ArrowFunctionsOptions `json:"arrowFunction" yaml:"arrowFunction"`
}

// ArrowFunctionsOptions configures arrow function downleveling.
type ArrowFunctionsOptions struct {
	Spec bool `json:"spec" yaml:"spec"`
}

// Engine default identifiers.
const (
	DefaultJSXPragma     = "React.createElement"
	DefaultJSXPragmaFrag = "React.Fragment"
	DefaultRefreshReg    = "$RefreshReg$"
	DefaultRefreshSig    = "$RefreshSig$"
)

// DefaultTransformOptions returns the engine defaults with an empty cwd.
func DefaultTransformOptions() TransformOptions {
	return TransformOptions{
		TypeScript: DefaultTypeScriptOptions(),
		JSX:        DefaultJSXOptions(),
		ES2015:     ES2015Options{},
	}
}

// DefaultTypeScriptOptions returns the engine's TypeScript defaults.
func DefaultTypeScriptOptions() TypeScriptOptions {
	return TypeScriptOptions{
		JSXPragma:       DefaultJSXPragma,
		JSXPragmaFrag:   DefaultJSXPragmaFrag,
		AllowNamespaces: true,
	}
}

// DefaultJSXOptions returns the engine's JSX defaults.
func DefaultJSXOptions() JSXOptions {
	return JSXOptions{
		JSXPlugin:         true,
		DisplayNamePlugin: true,
		Runtime:           JSXRuntimeAutomatic,
		ThrowIfNamespace:  true,
		Pure:              true,
	}
}

// DefaultReactRefreshOptions returns the default Fast Refresh identifiers.
func DefaultReactRefreshOptions() ReactRefreshOptions {
	return ReactRefreshOptions{
		RefreshReg: DefaultRefreshReg,
		RefreshSig: DefaultRefreshSig,
	}
}
