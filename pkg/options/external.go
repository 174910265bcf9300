package options

// ExternalConfig is the caller-facing transform configuration. Every field is
// optional; Resolve fills whatever is missing.
type ExternalConfig struct {
	// SourceType is one of "script", "module" or "unambiguous". It is accepted
	// here and forwarded to the engine separately; Resolve ignores it.
	SourceType *string `json:"sourceType,omitempty" yaml:"sourceType,omitempty"`

	// Cwd is used to resolve relative paths in other options.
	Cwd *string `json:"cwd,omitempty" yaml:"cwd,omitempty"`

	TypeScript *ExternalTypeScript `json:"typescript,omitempty" yaml:"typescript,omitempty"`
	React      *ExternalJSX        `json:"react,omitempty" yaml:"react,omitempty"`
	ES2015     *ExternalES2015     `json:"es2015,omitempty" yaml:"es2015,omitempty"`

	// Sourcemap enables source map generation. Defaults to false.
	Sourcemap *bool `json:"sourcemap,omitempty" yaml:"sourcemap,omitempty"`
}

// ExternalTypeScript configures how TypeScript is transformed.
type ExternalTypeScript struct {
	JSXPragma             *string `json:"jsxPragma,omitempty" yaml:"jsxPragma,omitempty"`
	JSXPragmaFrag         *string `json:"jsxPragmaFrag,omitempty" yaml:"jsxPragmaFrag,omitempty"`
	OnlyRemoveTypeImports *bool   `json:"onlyRemoveTypeImports,omitempty" yaml:"onlyRemoveTypeImports,omitempty"`
	AllowNamespaces       *bool   `json:"allowNamespaces,omitempty" yaml:"allowNamespaces,omitempty"`
	AllowDeclareFields    *bool   `json:"allowDeclareFields,omitempty" yaml:"allowDeclareFields,omitempty"`

	// Declaration also emits a .d.ts file. The source must satisfy the
	// isolatedDeclarations requirements.
	Declaration *ExternalIsolatedDeclarations `json:"declaration,omitempty" yaml:"declaration,omitempty"`

	// RewriteImportExtensions is true, false, "rewrite" or "remove".
	//   - "rewrite" (or true) changes .ts, .mts and .cts to .js, .mjs and .cjs.
	//   - "remove" drops .ts, .mts, .cts and .tsx entirely.
	//   - false, absent or any other string leaves specifiers unchanged.
	RewriteImportExtensions *Either[bool, string] `json:"rewriteImportExtensions,omitempty" yaml:"rewriteImportExtensions,omitempty"`
}

// ExternalIsolatedDeclarations configures .d.ts emission.
type ExternalIsolatedDeclarations struct {
	// StripInternal drops declarations carrying an @internal JSDoc tag.
	StripInternal *bool `json:"stripInternal,omitempty" yaml:"stripInternal,omitempty"`
	Sourcemap     *bool `json:"sourcemap,omitempty" yaml:"sourcemap,omitempty"`
}

// ExternalJSX configures how JSX and TSX are transformed.
type ExternalJSX struct {
	// Runtime is "classic" or "automatic". Anything else means automatic.
	Runtime *string `json:"runtime,omitempty" yaml:"runtime,omitempty"`

	// Development emits __source and __self. Defaults to false.
	Development *bool `json:"development,omitempty" yaml:"development,omitempty"`

	// ThrowIfNamespace rejects XML namespaced tag names. Defaults to true.
	ThrowIfNamespace *bool `json:"throwIfNamespace,omitempty" yaml:"throwIfNamespace,omitempty"`

	// Pure marks top-level React calls as pure for tree shaking. Defaults to true.
	Pure *bool `json:"pure,omitempty" yaml:"pure,omitempty"`

	ImportSource *string `json:"importSource,omitempty" yaml:"importSource,omitempty"`

	// The remaining fields only matter for the classic runtime.
	Pragma      *string `json:"pragma,omitempty" yaml:"pragma,omitempty"`
	PragmaFrag  *string `json:"pragmaFrag,omitempty" yaml:"pragmaFrag,omitempty"`
	UseBuiltIns *bool   `json:"useBuiltIns,omitempty" yaml:"useBuiltIns,omitempty"`
	UseSpread   *bool   `json:"useSpread,omitempty" yaml:"useSpread,omitempty"`

	// Refresh enables React Fast Refresh, either with defaults (true) or with
	// explicit options.
	Refresh *Either[bool, ExternalReactRefresh] `json:"refresh,omitempty" yaml:"refresh,omitempty"`
}

// ExternalReactRefresh configures React Fast Refresh instrumentation.
type ExternalReactRefresh struct {
	RefreshReg         *string `json:"refreshReg,omitempty" yaml:"refreshReg,omitempty"`
	RefreshSig         *string `json:"refreshSig,omitempty" yaml:"refreshSig,omitempty"`
	EmitFullSignatures *bool   `json:"emitFullSignatures,omitempty" yaml:"emitFullSignatures,omitempty"`
}

// ExternalES2015 enables ES2015 transformations.
type ExternalES2015 struct {
	// ArrowFunction transforms arrow functions into function expressions.
	// Absent means the transform is not requested at all.
	ArrowFunction *ExternalArrowFunctions `json:"arrowFunction,omitempty" yaml:"arrowFunction,omitempty"`
}

// ExternalArrowFunctions configures arrow function downleveling.
type ExternalArrowFunctions struct {
	// Spec binds this, guards against new and names the generated functions.
	Spec *bool `json:"spec,omitempty" yaml:"spec,omitempty"`
}

// ToExternal re-expresses resolved options as a fully specified external
// configuration. Resolving the result yields opts again.
func ToExternal(opts TransformOptions) ExternalConfig {
	ts := opts.TypeScript
	external := ExternalConfig{
		Cwd: ptr(opts.Cwd),
		TypeScript: &ExternalTypeScript{
			JSXPragma:               ptr(ts.JSXPragma),
			JSXPragmaFrag:           ptr(ts.JSXPragmaFrag),
			OnlyRemoveTypeImports:   ptr(ts.OnlyRemoveTypeImports),
			AllowNamespaces:         ptr(ts.AllowNamespaces),
			AllowDeclareFields:      ptr(ts.AllowDeclareFields),
			RewriteImportExtensions: rewriteToExternal(ts.RewriteImportExtensions),
		},
		React:     jsxToExternal(opts.JSX),
		ES2015:    &ExternalES2015{},
		Sourcemap: ptr(opts.Sourcemap),
	}
	if ts.Declaration != nil {
		external.TypeScript.Declaration = &ExternalIsolatedDeclarations{
			StripInternal: ptr(ts.Declaration.StripInternal),
			Sourcemap:     ptr(ts.Declaration.Sourcemap),
		}
	}
	if arrow := opts.ES2015.ArrowFunction; arrow != nil {
		external.ES2015.ArrowFunction = &ExternalArrowFunctions{Spec: ptr(arrow.Spec)}
	}
	return external
}

func rewriteToExternal(mode RewriteExtensionsMode) *Either[bool, string] {
	var value Either[bool, string]
	switch mode {
	case RewriteExtensionsRewrite, RewriteExtensionsRemove:
		value = EitherB[bool](mode.String())
	default:
		value = EitherA[bool, string](false)
	}
	return &value
}

func jsxToExternal(jsx JSXOptions) *ExternalJSX {
	external := &ExternalJSX{
		Runtime:          ptr(jsx.Runtime.String()),
		Development:      ptr(jsx.Development),
		ThrowIfNamespace: ptr(jsx.ThrowIfNamespace),
		Pure:             ptr(jsx.Pure),
		ImportSource:     clonePtr(jsx.ImportSource),
		Pragma:           clonePtr(jsx.Pragma),
		PragmaFrag:       clonePtr(jsx.PragmaFrag),
		UseBuiltIns:      clonePtr(jsx.UseBuiltIns),
		UseSpread:        clonePtr(jsx.UseSpread),
	}
	refresh := EitherA[bool, ExternalReactRefresh](false)
	if jsx.Refresh != nil {
		refresh = EitherB[bool](ExternalReactRefresh{
			RefreshReg:         ptr(jsx.Refresh.RefreshReg),
			RefreshSig:         ptr(jsx.Refresh.RefreshSig),
			EmitFullSignatures: ptr(jsx.Refresh.EmitFullSignatures),
		})
	}
	external.Refresh = &refresh
	return external
}

func ptr[T any](value T) *T {
	return &value
}

func clonePtr[T any](value *T) *T {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
