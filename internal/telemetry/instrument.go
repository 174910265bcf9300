package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/dobrovols/transformctl/pkg/options"
)

const instrumentationName = "github.com/dobrovols/transformctl"

// Instruments wraps option resolution with a span and counters.
type Instruments struct {
	tracer      trace.Tracer
	resolutions metric.Int64Counter
	fallbacks   metric.Int64Counter
}

// NewInstruments builds instruments from the given providers.
func NewInstruments(tp trace.TracerProvider, mp metric.MeterProvider) (*Instruments, error) {
	meter := mp.Meter(instrumentationName)

	resolutions, err := meter.Int64Counter("transformctl.resolutions",
		metric.WithDescription("Number of resolved transform configurations"))
	if err != nil {
		return nil, fmt.Errorf("create resolutions counter: %w", err)
	}
	fallbacks, err := meter.Int64Counter("transformctl.fallbacks",
		metric.WithDescription("Inputs accepted by falling back to a default"))
	if err != nil {
		return nil, fmt.Errorf("create fallbacks counter: %w", err)
	}

	return &Instruments{
		tracer:      tp.Tracer(instrumentationName),
		resolutions: resolutions,
		fallbacks:   fallbacks,
	}, nil
}

// Resolve runs options.Resolve inside an "options.resolve" span and records
// one fallback per inspection finding. The resolved value is not affected.
func (i *Instruments) Resolve(ctx context.Context, external options.ExternalConfig) (options.TransformOptions, []options.Finding) {
	findings := options.Inspect(external)
	if i == nil {
		return options.Resolve(external), findings
	}

	ctx, span := i.tracer.Start(ctx, "options.resolve")
	defer span.End()

	resolved := options.Resolve(external)

	span.SetAttributes(
		attribute.String("transform.jsx.runtime", resolved.JSX.Runtime.String()),
		attribute.String("transform.typescript.rewrite_import_extensions", resolved.TypeScript.RewriteImportExtensions.String()),
		attribute.Bool("transform.jsx.refresh", resolved.JSX.Refresh != nil),
		attribute.Bool("transform.es2015.arrow_function", resolved.ES2015.ArrowFunction != nil),
		attribute.Bool("transform.sourcemap", resolved.Sourcemap),
		attribute.Int("transform.findings", len(findings)),
	)

	i.resolutions.Add(ctx, 1)
	for _, finding := range findings {
		i.fallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("path", finding.Path)))
		span.AddEvent("fallback", trace.WithAttributes(
			attribute.String("path", finding.Path),
			attribute.String("message", finding.Message),
		))
	}

	return resolved, findings
}
