package options

import "fmt"

// ValueSource identifies which layer supplied a field.
type ValueSource string

const (
	// ValueSourceDefault marks engine defaults and the baseline layer.
	ValueSourceDefault ValueSource = "default"
	// ValueSourceFile marks values read from a configuration document.
	ValueSourceFile ValueSource = "file"
	// ValueSourceRuntime marks values supplied on the command line.
	ValueSourceRuntime ValueSource = "runtime"
)

// Layer is one external configuration in a precedence chain.
type Layer struct {
	Name   string
	Source ValueSource
	Config ExternalConfig
}

// Merged is the outcome of layering external configurations.
type Merged struct {
	Config ExternalConfig
	// Sources maps dotted external field paths to the layer source that set them last.
	Sources map[string]ValueSource
	// Overrides records every field a later layer replaced, in application order.
	Overrides []string
}

// MergeLayers applies layers in order; a field set by a later layer replaces
// the earlier value. Sections merge field by field, union fields are replaced
// wholesale. Layers are not modified.
func MergeLayers(layers ...Layer) Merged {
	merged := Merged{Sources: map[string]ValueSource{}}
	for _, layer := range layers {
		source := layer.Source
		if source == "" {
			source = ValueSource(layer.Name)
		}
		m := merger{out: &merged, layer: layer.Name, source: source}
		m.config(&merged.Config, layer.Config)
	}
	return merged
}

type merger struct {
	out    *Merged
	layer  string
	source ValueSource
}

func (m *merger) record(path string) {
	if previous, ok := m.out.Sources[path]; ok {
		m.out.Overrides = append(m.out.Overrides, fmt.Sprintf("%s overrides %s (was %s)", m.layer, path, previous))
	}
	m.out.Sources[path] = m.source
}

func mergeField[T any](m *merger, path string, dst **T, src *T) {
	if src == nil {
		return
	}
	m.record(path)
	*dst = clonePtr(src)
}

func mergeSection[T any](dst **T, src *T) (*T, bool) {
	if src == nil {
		return nil, false
	}
	if *dst == nil {
		*dst = new(T)
	}
	return *dst, true
}

func (m *merger) config(dst *ExternalConfig, src ExternalConfig) {
	mergeField(m, "sourceType", &dst.SourceType, src.SourceType)
	mergeField(m, "cwd", &dst.Cwd, src.Cwd)
	m.typescript(&dst.TypeScript, src.TypeScript)
	m.react(&dst.React, src.React)
	m.es2015(&dst.ES2015, src.ES2015)
	mergeField(m, "sourcemap", &dst.Sourcemap, src.Sourcemap)
}

func (m *merger) typescript(dst **ExternalTypeScript, src *ExternalTypeScript) {
	ts, ok := mergeSection(dst, src)
	if !ok {
		return
	}
	mergeField(m, "typescript.jsxPragma", &ts.JSXPragma, src.JSXPragma)
	mergeField(m, "typescript.jsxPragmaFrag", &ts.JSXPragmaFrag, src.JSXPragmaFrag)
	mergeField(m, "typescript.onlyRemoveTypeImports", &ts.OnlyRemoveTypeImports, src.OnlyRemoveTypeImports)
	mergeField(m, "typescript.allowNamespaces", &ts.AllowNamespaces, src.AllowNamespaces)
	mergeField(m, "typescript.allowDeclareFields", &ts.AllowDeclareFields, src.AllowDeclareFields)
	mergeField(m, "typescript.rewriteImportExtensions", &ts.RewriteImportExtensions, src.RewriteImportExtensions)

	if decl, ok := mergeSection(&ts.Declaration, src.Declaration); ok {
		m.record("typescript.declaration")
		mergeField(m, "typescript.declaration.stripInternal", &decl.StripInternal, src.Declaration.StripInternal)
		mergeField(m, "typescript.declaration.sourcemap", &decl.Sourcemap, src.Declaration.Sourcemap)
	}
}

func (m *merger) react(dst **ExternalJSX, src *ExternalJSX) {
	jsx, ok := mergeSection(dst, src)
	if !ok {
		return
	}
	mergeField(m, "react.runtime", &jsx.Runtime, src.Runtime)
	mergeField(m, "react.development", &jsx.Development, src.Development)
	mergeField(m, "react.throwIfNamespace", &jsx.ThrowIfNamespace, src.ThrowIfNamespace)
	mergeField(m, "react.pure", &jsx.Pure, src.Pure)
	mergeField(m, "react.importSource", &jsx.ImportSource, src.ImportSource)
	mergeField(m, "react.pragma", &jsx.Pragma, src.Pragma)
	mergeField(m, "react.pragmaFrag", &jsx.PragmaFrag, src.PragmaFrag)
	mergeField(m, "react.useBuiltIns", &jsx.UseBuiltIns, src.UseBuiltIns)
	mergeField(m, "react.useSpread", &jsx.UseSpread, src.UseSpread)

	if src.Refresh == nil {
		return
	}
	m.record("react.refresh")
	refresh := *src.Refresh
	if object, isObject := refresh.B(); isObject {
		refresh = EitherB[bool](ExternalReactRefresh{
			RefreshReg:         clonePtr(object.RefreshReg),
			RefreshSig:         clonePtr(object.RefreshSig),
			EmitFullSignatures: clonePtr(object.EmitFullSignatures),
		})
	}
	jsx.Refresh = &refresh
}

func (m *merger) es2015(dst **ExternalES2015, src *ExternalES2015) {
	es, ok := mergeSection(dst, src)
	if !ok {
		return
	}
	if arrow, ok := mergeSection(&es.ArrowFunction, src.ArrowFunction); ok {
		m.record("es2015.arrowFunction")
		mergeField(m, "es2015.arrowFunction.spec", &arrow.Spec, src.ArrowFunction.Spec)
	}
}
