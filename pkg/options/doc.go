// Package options resolves caller-supplied transform configuration into the
// fully populated options consumed by the transformation engine.
//
// The external shape (ExternalConfig) leaves every field optional and accepts
// loosely typed values: enum tokens as strings, and unions such as "boolean
// or string" (rewriteImportExtensions) or "boolean or object" (react.refresh).
// Resolve turns it into TransformOptions, where every field is present, enums
// are closed variant sets and unions have collapsed into a single branch.
//
// Resolution is total. Unrecognised enum tokens degrade to a default variant
// instead of failing; Inspect reports those cases for callers that want to
// surface them.
package options
