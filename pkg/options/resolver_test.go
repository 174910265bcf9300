package options

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func withWorkingDir(t *testing.T, dir string, err error) {
	t.Helper()
	original := getwd
	getwd = func() (string, error) { return dir, err }
	t.Cleanup(func() { getwd = original })
}

func TestResolveEmptyConfigMatchesDefaults(t *testing.T) {
	withWorkingDir(t, "/work/project", nil)

	got := Resolve(ExternalConfig{})

	want := DefaultTransformOptions()
	want.Cwd = "/work/project"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected defaults (-want +got):\n%s", diff)
	}
	if got.JSX.Runtime != JSXRuntimeAutomatic {
		t.Fatalf("expected automatic runtime, got %s", got.JSX.Runtime)
	}
	if got.Sourcemap {
		t.Fatalf("expected sourcemap disabled by default")
	}
	if got.TypeScript.RewriteImportExtensions != RewriteExtensionsNone {
		t.Fatalf("expected no extension rewriting, got %s", got.TypeScript.RewriteImportExtensions)
	}
	if got.JSX.Refresh != nil {
		t.Fatalf("expected refresh disabled, got %+v", got.JSX.Refresh)
	}
}

func TestResolveCwd(t *testing.T) {
	withWorkingDir(t, "", errors.New("getwd failed"))

	if got := Resolve(ExternalConfig{}).Cwd; got != "." {
		t.Fatalf("expected fallback cwd '.', got %q", got)
	}
	if got := Resolve(ExternalConfig{Cwd: ptr("/explicit")}).Cwd; got != "/explicit" {
		t.Fatalf("expected explicit cwd, got %q", got)
	}
}

func TestResolveSourcemap(t *testing.T) {
	withWorkingDir(t, "/", nil)

	if Resolve(ExternalConfig{Sourcemap: ptr(false)}).Sourcemap {
		t.Fatalf("expected explicit false to stay false")
	}
	if !Resolve(ExternalConfig{Sourcemap: ptr(true)}).Sourcemap {
		t.Fatalf("expected explicit true to enable sourcemaps")
	}
}

func TestResolveRewriteImportExtensions(t *testing.T) {
	cases := []struct {
		name  string
		value *Either[bool, string]
		want  RewriteExtensionsMode
	}{
		{name: "absent", value: nil, want: RewriteExtensionsNone},
		{name: "unset union", value: &Either[bool, string]{}, want: RewriteExtensionsNone},
		{name: "true", value: ptr(EitherA[bool, string](true)), want: RewriteExtensionsRewrite},
		{name: "false", value: ptr(EitherA[bool, string](false)), want: RewriteExtensionsNone},
		{name: "rewrite", value: ptr(EitherB[bool]("rewrite")), want: RewriteExtensionsRewrite},
		{name: "remove", value: ptr(EitherB[bool]("remove")), want: RewriteExtensionsRemove},
		{name: "bogus", value: ptr(EitherB[bool]("bogus")), want: RewriteExtensionsNone},
		{name: "wrong case", value: ptr(EitherB[bool]("Rewrite")), want: RewriteExtensionsNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveTypeScript(&ExternalTypeScript{RewriteImportExtensions: tc.value})
			if got.RewriteImportExtensions != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got.RewriteImportExtensions)
			}
		})
	}
}

func TestResolveTypeScriptFillsDefaults(t *testing.T) {
	got := ResolveTypeScript(&ExternalTypeScript{
		JSXPragma:          ptr("h"),
		AllowDeclareFields: ptr(true),
	})

	want := DefaultTypeScriptOptions()
	want.JSXPragma = "h"
	want.AllowDeclareFields = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected typescript options (-want +got):\n%s", diff)
	}
}

func TestResolveTypeScriptNeverOptimizesConstEnums(t *testing.T) {
	inputs := []*ExternalTypeScript{
		nil,
		{},
		{OnlyRemoveTypeImports: ptr(true), AllowNamespaces: ptr(false), AllowDeclareFields: ptr(true)},
	}
	for _, input := range inputs {
		if ResolveTypeScript(input).OptimizeConstEnums {
			t.Fatalf("expected optimizeConstEnums to be false for %+v", input)
		}
	}
}

func TestResolveTypeScriptDeclaration(t *testing.T) {
	if got := ResolveTypeScript(&ExternalTypeScript{}).Declaration; got != nil {
		t.Fatalf("expected no declaration emission, got %+v", got)
	}

	got := ResolveTypeScript(&ExternalTypeScript{
		Declaration: &ExternalIsolatedDeclarations{StripInternal: ptr(true)},
	}).Declaration
	want := &IsolatedDeclarationsOptions{StripInternal: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected declaration options (-want +got):\n%s", diff)
	}
}

func TestResolveJSXRuntime(t *testing.T) {
	cases := map[string]JSXRuntime{
		"classic":   JSXRuntimeClassic,
		"automatic": JSXRuntimeAutomatic,
		"AUTOMATIC": JSXRuntimeAutomatic,
		"Classic":   JSXRuntimeAutomatic,
		"":          JSXRuntimeAutomatic,
		"preact":    JSXRuntimeAutomatic,
	}
	for input, want := range cases {
		got := ResolveJSX(&ExternalJSX{Runtime: ptr(input)}).Runtime
		if got != want {
			t.Fatalf("runtime %q: expected %s, got %s", input, want, got)
		}
	}
	if got := ResolveJSX(&ExternalJSX{}).Runtime; got != JSXRuntimeAutomatic {
		t.Fatalf("absent runtime: expected automatic, got %s", got)
	}
}

func TestResolveJSXPassesThroughClassicOptions(t *testing.T) {
	input := &ExternalJSX{
		Runtime:      ptr("automatic"),
		Development:  ptr(true),
		Pure:         ptr(false),
		ImportSource: ptr("preact"),
		Pragma:       ptr("h"),
		PragmaFrag:   ptr("Fragment"),
		UseBuiltIns:  ptr(true),
		UseSpread:    ptr(false),
	}

	got := ResolveJSX(input)

	want := DefaultJSXOptions()
	want.Development = true
	want.Pure = false
	want.ImportSource = ptr("preact")
	want.Pragma = ptr("h")
	want.PragmaFrag = ptr("Fragment")
	want.UseBuiltIns = ptr(true)
	want.UseSpread = ptr(false)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected jsx options (-want +got):\n%s", diff)
	}
	if got.Pragma == input.Pragma {
		t.Fatalf("expected resolved pragma to be a copy, not the caller's pointer")
	}
}

func TestResolveJSXRefresh(t *testing.T) {
	if got := ResolveJSX(&ExternalJSX{}).Refresh; got != nil {
		t.Fatalf("absent refresh: expected nil, got %+v", got)
	}
	if got := ResolveJSX(&ExternalJSX{Refresh: ptr(EitherA[bool, ExternalReactRefresh](false))}).Refresh; got != nil {
		t.Fatalf("refresh false: expected nil, got %+v", got)
	}

	got := ResolveJSX(&ExternalJSX{Refresh: ptr(EitherA[bool, ExternalReactRefresh](true))}).Refresh
	defaults := DefaultReactRefreshOptions()
	if diff := cmp.Diff(&defaults, got); diff != "" {
		t.Fatalf("refresh true (-want +got):\n%s", diff)
	}

	got = ResolveJSX(&ExternalJSX{Refresh: ptr(EitherB[bool](ExternalReactRefresh{RefreshReg: ptr("$Custom$")}))}).Refresh
	want := &ReactRefreshOptions{RefreshReg: "$Custom$", RefreshSig: DefaultRefreshSig}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("refresh object (-want +got):\n%s", diff)
	}
}

func TestResolveReactRefreshDefaultsEachField(t *testing.T) {
	got := ResolveReactRefresh(&ExternalReactRefresh{RefreshSig: ptr("sig"), EmitFullSignatures: ptr(true)})
	want := ReactRefreshOptions{RefreshReg: DefaultRefreshReg, RefreshSig: "sig", EmitFullSignatures: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected refresh options (-want +got):\n%s", diff)
	}
}

func TestResolveArrowFunctionPresenceIsDistinguishable(t *testing.T) {
	absent := ResolveES2015(&ExternalES2015{})
	if absent.ArrowFunction != nil {
		t.Fatalf("expected no arrow function transform, got %+v", absent.ArrowFunction)
	}

	requested := ResolveES2015(&ExternalES2015{ArrowFunction: &ExternalArrowFunctions{}})
	if requested.ArrowFunction == nil || requested.ArrowFunction.Spec {
		t.Fatalf("expected arrow function transform with spec=false, got %+v", requested.ArrowFunction)
	}

	spec := ResolveES2015(&ExternalES2015{ArrowFunction: &ExternalArrowFunctions{Spec: ptr(true)}})
	if spec.ArrowFunction == nil || !spec.ArrowFunction.Spec {
		t.Fatalf("expected spec mode, got %+v", spec.ArrowFunction)
	}
}

func TestResolveIgnoresSourceType(t *testing.T) {
	withWorkingDir(t, "/", nil)

	plain := Resolve(ExternalConfig{})
	withSourceType := Resolve(ExternalConfig{SourceType: ptr("module")})
	if diff := cmp.Diff(plain, withSourceType); diff != "" {
		t.Fatalf("sourceType must not affect resolution (-want +got):\n%s", diff)
	}
}

func TestResolveIsFixedPointOnExternalizedOptions(t *testing.T) {
	withWorkingDir(t, "/unused", nil)

	inputs := []ExternalConfig{
		{},
		{
			Cwd:       ptr("/src"),
			Sourcemap: ptr(true),
			TypeScript: &ExternalTypeScript{
				JSXPragma:               ptr("h"),
				OnlyRemoveTypeImports:   ptr(true),
				Declaration:             &ExternalIsolatedDeclarations{Sourcemap: ptr(true)},
				RewriteImportExtensions: ptr(EitherB[bool]("remove")),
			},
			React: &ExternalJSX{
				Runtime:     ptr("classic"),
				Pragma:      ptr("h"),
				UseBuiltIns: ptr(true),
				Refresh:     ptr(EitherA[bool, ExternalReactRefresh](true)),
			},
			ES2015: &ExternalES2015{ArrowFunction: &ExternalArrowFunctions{Spec: ptr(true)}},
		},
		{
			TypeScript: &ExternalTypeScript{RewriteImportExtensions: ptr(EitherA[bool, string](true))},
			ES2015:     &ExternalES2015{ArrowFunction: &ExternalArrowFunctions{}},
		},
	}

	for i, input := range inputs {
		first := Resolve(input)
		second := Resolve(ToExternal(first))
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("input %d: resolution is not a fixed point (-first +second):\n%s", i, diff)
		}
	}
}
