package options

import "os"

var getwd = os.Getwd

// Resolve fills every field of the external configuration with either the
// supplied value or the engine default. It never fails: unrecognised enum
// tokens degrade to their default variant.
func Resolve(external ExternalConfig) TransformOptions {
	return TransformOptions{
		Cwd:        resolveCwd(external.Cwd),
		TypeScript: ResolveTypeScript(external.TypeScript),
		JSX:        ResolveJSX(external.React),
		ES2015:     ResolveES2015(external.ES2015),
		Sourcemap:  optional(external.Sourcemap, false),
	}
}

func resolveCwd(cwd *string) string {
	if cwd != nil {
		return *cwd
	}
	wd, err := getwd()
	if err != nil {
		return "."
	}
	return wd
}

// ResolveTypeScript resolves the TypeScript subsection. OptimizeConstEnums is
// always false.
func ResolveTypeScript(ts *ExternalTypeScript) TypeScriptOptions {
	defaults := DefaultTypeScriptOptions()
	if ts == nil {
		return defaults
	}
	return TypeScriptOptions{
		JSXPragma:               optional(ts.JSXPragma, defaults.JSXPragma),
		JSXPragmaFrag:           optional(ts.JSXPragmaFrag, defaults.JSXPragmaFrag),
		OnlyRemoveTypeImports:   optional(ts.OnlyRemoveTypeImports, defaults.OnlyRemoveTypeImports),
		AllowNamespaces:         optional(ts.AllowNamespaces, defaults.AllowNamespaces),
		AllowDeclareFields:      optional(ts.AllowDeclareFields, defaults.AllowDeclareFields),
		OptimizeConstEnums:      false,
		Declaration:             ResolveIsolatedDeclarations(ts.Declaration),
		RewriteImportExtensions: resolveRewriteImportExtensions(ts.RewriteImportExtensions),
	}
}

func resolveRewriteImportExtensions(value *Either[bool, string]) RewriteExtensionsMode {
	return MatchEither(value,
		func() RewriteExtensionsMode { return RewriteExtensionsNone },
		func(enabled bool) RewriteExtensionsMode {
			if enabled {
				return RewriteExtensionsRewrite
			}
			return RewriteExtensionsNone
		},
		ParseRewriteExtensionsMode,
	)
}

// ResolveIsolatedDeclarations returns nil when declaration emission was not requested.
func ResolveIsolatedDeclarations(decl *ExternalIsolatedDeclarations) *IsolatedDeclarationsOptions {
	if decl == nil {
		return nil
	}
	return &IsolatedDeclarationsOptions{
		StripInternal: optional(decl.StripInternal, false),
		Sourcemap:     optional(decl.Sourcemap, false),
	}
}

// ResolveJSX resolves the JSX subsection. Classic-only fields pass through
// untouched regardless of the selected runtime.
func ResolveJSX(jsx *ExternalJSX) JSXOptions {
	resolved := DefaultJSXOptions()
	if jsx == nil {
		return resolved
	}
	resolved.Runtime = ParseJSXRuntime(optional(jsx.Runtime, ""))
	resolved.Development = optional(jsx.Development, resolved.Development)
	resolved.ThrowIfNamespace = optional(jsx.ThrowIfNamespace, resolved.ThrowIfNamespace)
	resolved.Pure = optional(jsx.Pure, resolved.Pure)
	resolved.ImportSource = clonePtr(jsx.ImportSource)
	resolved.Pragma = clonePtr(jsx.Pragma)
	resolved.PragmaFrag = clonePtr(jsx.PragmaFrag)
	resolved.UseBuiltIns = clonePtr(jsx.UseBuiltIns)
	resolved.UseSpread = clonePtr(jsx.UseSpread)
	resolved.Refresh = resolveRefresh(jsx.Refresh)
	return resolved
}

func resolveRefresh(value *Either[bool, ExternalReactRefresh]) *ReactRefreshOptions {
	return MatchEither(value,
		func() *ReactRefreshOptions { return nil },
		func(enabled bool) *ReactRefreshOptions {
			if !enabled {
				return nil
			}
			defaults := DefaultReactRefreshOptions()
			return &defaults
		},
		func(external ExternalReactRefresh) *ReactRefreshOptions {
			resolved := ResolveReactRefresh(&external)
			return &resolved
		},
	)
}

// ResolveReactRefresh defaults each Fast Refresh field independently.
func ResolveReactRefresh(refresh *ExternalReactRefresh) ReactRefreshOptions {
	defaults := DefaultReactRefreshOptions()
	if refresh == nil {
		return defaults
	}
	return ReactRefreshOptions{
		RefreshReg:         optional(refresh.RefreshReg, defaults.RefreshReg),
		RefreshSig:         optional(refresh.RefreshSig, defaults.RefreshSig),
		EmitFullSignatures: optional(refresh.EmitFullSignatures, defaults.EmitFullSignatures),
	}
}

// ResolveES2015 resolves the ES2015 subsection.
func ResolveES2015(es *ExternalES2015) ES2015Options {
	if es == nil {
		return ES2015Options{}
	}
	return ES2015Options{ArrowFunction: ResolveArrowFunctions(es.ArrowFunction)}
}

// ResolveArrowFunctions returns nil when the transform was not requested,
// which is distinct from a request with every option left at its default.
func ResolveArrowFunctions(arrow *ExternalArrowFunctions) *ArrowFunctionsOptions {
	if arrow == nil {
		return nil
	}
	return &ArrowFunctionsOptions{Spec: optional(arrow.Spec, false)}
}

func optional[T any](value *T, fallback T) T {
	if value == nil {
		return fallback
	}
	return *value
}
