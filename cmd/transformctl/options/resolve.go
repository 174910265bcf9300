package options

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/dobrovols/transformctl/internal/config"
	instrument "github.com/dobrovols/transformctl/internal/telemetry"
	"github.com/dobrovols/transformctl/internal/validation"
	transform "github.com/dobrovols/transformctl/pkg/options"
	"github.com/dobrovols/transformctl/pkg/telemetry"
)

// ResolveOptions captures CLI flag values.
type ResolveOptions struct {
	ConfigPath              string
	Output                  string
	Cwd                     string
	Sourcemap               bool
	JSXRuntime              string
	RewriteImportExtensions string
	Refresh                 bool
	Strict                  bool
	Verbose                 bool
}

// Resolver runs option resolution, typically inside a span.
type Resolver interface {
	Resolve(context.Context, transform.ExternalConfig) (transform.TransformOptions, []transform.Finding)
}

// ResolveDeps configures dependencies for the resolve command.
type ResolveDeps struct {
	Locate           func(string) (config.LocationResult, error)
	Inspector        validation.Inspector
	Resolver         func() (Resolver, error)
	TelemetryEmitter func(io.Writer) (*telemetry.Emitter, error)
	WorkflowID       func() string
	IsTerminal       func(io.Writer) bool
}

var defaultResolveDeps = ResolveDeps{
	Locate:           config.LocateConfig,
	Inspector:        validation.DefaultInspector{},
	Resolver:         globalResolver,
	TelemetryEmitter: telemetry.NewEmitter,
	WorkflowID:       telemetry.NewWorkflowID,
	IsTerminal:       writerIsTerminal,
}

func globalResolver() (Resolver, error) {
	return instrument.NewInstruments(otel.GetTracerProvider(), otel.GetMeterProvider())
}

// NewResolveCommand constructs the `transformctl options resolve` command.
func NewResolveCommand() *cobra.Command {
	opts := ResolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a transform configuration into fully specified options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runResolve(cmd, opts, defaultResolveDeps)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, flagConfig, "", "Path to a transform configuration document")
	addOutputFlag(cmd, &opts.Output)
	cmd.Flags().StringVar(&opts.Cwd, flagCwd, "", "Working directory used to resolve relative paths")
	cmd.Flags().BoolVar(&opts.Sourcemap, flagSourcemap, false, "Enable source map generation")
	cmd.Flags().StringVar(&opts.JSXRuntime, flagJSXRuntime, "", "JSX runtime: classic or automatic")
	cmd.Flags().StringVar(&opts.RewriteImportExtensions, flagRewriteImportExtensions, "", "Import extension handling: true, false, rewrite or remove")
	cmd.Flags().BoolVar(&opts.Refresh, flagRefresh, false, "Enable React Fast Refresh with default options")
	cmd.Flags().BoolVar(&opts.Strict, flagStrict, false, "Fail on schema violations, fallback findings or a missing cwd")
	cmd.Flags().BoolVarP(&opts.Verbose, flagVerbose, "v", false, "Write structured logs and phase events to stderr")

	return cmd
}

// RunResolveForTest executes the resolve flow with explicit dependencies (used in tests).
func RunResolveForTest(cmd *cobra.Command, opts ResolveOptions, deps ResolveDeps) error {
	return runResolve(cmd, opts, deps)
}

func runResolve(cmd *cobra.Command, opts ResolveOptions, deps ResolveDeps) (err error) {
	deps = withResolveDefaults(deps)

	format, err := resolveOutputFormat(opts.Output, cmd.OutOrStdout(), deps.IsTerminal)
	if err != nil {
		return err
	}

	var (
		emitter *telemetry.Emitter
		logger  telemetry.StructuredLogger
	)
	if opts.Verbose {
		emitter, err = deps.TelemetryEmitter(cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("initialize phase events: %w", err)
		}
		structured, err := telemetry.NewLogger(cmd.ErrOrStderr(), deps.WorkflowID())
		if err != nil {
			return fmt.Errorf("initialize structured logging: %w", err)
		}
		logger = structured
	}

	metadata := map[string]string{
		"output": format,
		"strict": strconv.FormatBool(opts.Strict),
	}
	logWorkflowStart(logger, stepResolve, metadata)
	defer func() {
		if err != nil {
			logWorkflowFailure(logger, stepResolve, metadata, err)
		}
	}()

	var location config.LocationResult
	found := false
	err = emitter.EmitPhase(telemetry.PhaseLocate, nil, func() error {
		loc, locErr := deps.Locate(opts.ConfigPath)
		if errors.Is(locErr, config.ErrConfigNotFound) && strings.TrimSpace(opts.ConfigPath) == "" {
			return nil
		}
		if locErr != nil {
			return locErr
		}
		location, found = loc, true
		return nil
	})
	if err != nil {
		return err
	}
	if found {
		metadata["configPath"] = location.Path
		metadata["configSource"] = string(location.Source)
	}

	var doc *config.Document
	if found {
		loader := config.NewLoader()
		if opts.Strict {
			loader = config.NewLoader(config.WithKnownFields())
		}
		err = emitter.EmitPhase(telemetry.PhaseLoad, map[string]string{"path": location.Path}, func() error {
			loaded, loadErr := loader.Load(location.Path)
			doc = loaded
			return loadErr
		})
		if err != nil {
			return err
		}
	}

	var merged transform.Merged
	err = emitter.EmitPhase(telemetry.PhaseMerge, nil, func() error {
		runtime, flagErr := runtimeLayer(cmd.Flags())
		if flagErr != nil {
			return flagErr
		}
		layers := []transform.Layer{{Name: "defaults", Source: transform.ValueSourceDefault}}
		if doc != nil {
			layers = append(layers, transform.Layer{Name: "file", Source: transform.ValueSourceFile, Config: doc.Config})
		}
		layers = append(layers, transform.Layer{Name: "runtime", Source: transform.ValueSourceRuntime, Config: runtime})
		merged = transform.MergeLayers(layers...)
		return nil
	})
	if err != nil {
		return err
	}

	resolver, err := deps.Resolver()
	if err != nil {
		return fmt.Errorf("initialize instrumentation: %w", err)
	}

	var (
		resolved transform.TransformOptions
		findings []transform.Finding
	)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	err = emitter.EmitPhase(telemetry.PhaseResolve, nil, func() error {
		resolved, findings = resolver.Resolve(ctx, merged.Config)
		return nil
	})
	if err != nil {
		return err
	}
	logFindings(logger, stepResolve, findings)

	if opts.Strict {
		err = emitter.EmitPhase(telemetry.PhaseValidate, nil, func() error {
			result, validateErr := validation.ValidateStrict(validation.DefaultStrictConfig(), validation.Input{
				Document: doc,
				Merged:   merged.Config,
				Resolved: resolved,
			}, deps.Inspector)
			if validateErr != nil {
				return validateErr
			}
			return result.Err()
		})
		if err != nil {
			return err
		}
	}

	summary := transform.Summary{
		Options:    resolved,
		SourceType: sourceTypeOf(merged.Config),
		SourcePath: location.Path,
		Sources:    merged.Sources,
		Overrides:  merged.Overrides,
		Findings:   findings,
	}

	var rendered string
	err = emitter.EmitPhase(telemetry.PhaseRender, map[string]string{"format": format}, func() error {
		out, renderErr := transform.FormatSummary(summary, format)
		rendered = out
		return renderErr
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)

	metadata["findings"] = strconv.Itoa(len(findings))
	logWorkflowSuccess(logger, stepResolve, metadata)
	return nil
}

func withResolveDefaults(deps ResolveDeps) ResolveDeps {
	if deps.Locate == nil {
		deps.Locate = defaultResolveDeps.Locate
	}
	if deps.Inspector == nil {
		deps.Inspector = defaultResolveDeps.Inspector
	}
	if deps.Resolver == nil {
		deps.Resolver = defaultResolveDeps.Resolver
	}
	if deps.TelemetryEmitter == nil {
		deps.TelemetryEmitter = defaultResolveDeps.TelemetryEmitter
	}
	if deps.WorkflowID == nil {
		deps.WorkflowID = defaultResolveDeps.WorkflowID
	}
	if deps.IsTerminal == nil {
		deps.IsTerminal = defaultResolveDeps.IsTerminal
	}
	return deps
}

func sourceTypeOf(external transform.ExternalConfig) transform.SourceType {
	if external.SourceType == nil {
		return transform.SourceTypeInferred
	}
	sourceType, _ := transform.ParseSourceType(*external.SourceType)
	return sourceType
}
