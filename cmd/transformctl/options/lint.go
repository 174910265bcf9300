package options

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dobrovols/transformctl/internal/config"
	"github.com/dobrovols/transformctl/internal/validation"
	"github.com/dobrovols/transformctl/pkg/telemetry"
)

// LintOptions captures CLI flag values.
type LintOptions struct {
	ConfigPath string
	Verbose    bool
}

// LintDeps configures dependencies for the lint command.
type LintDeps struct {
	Locate     func(string) (config.LocationResult, error)
	Inspector  validation.Inspector
	WorkflowID func() string
}

var defaultLintDeps = LintDeps{
	Locate:     config.LocateConfig,
	Inspector:  validation.DefaultInspector{},
	WorkflowID: telemetry.NewWorkflowID,
}

// NewLintCommand constructs the `transformctl options lint` command.
func NewLintCommand() *cobra.Command {
	opts := LintOptions{}

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report schema violations and values that silently fall back to defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runLint(cmd, opts, defaultLintDeps)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, flagConfig, "", "Path to a transform configuration document")
	cmd.Flags().BoolVarP(&opts.Verbose, flagVerbose, "v", false, "Write structured logs to stderr")
	return cmd
}

// RunLintForTest executes the lint flow with explicit dependencies (used in tests).
func RunLintForTest(cmd *cobra.Command, opts LintOptions, deps LintDeps) error {
	return runLint(cmd, opts, deps)
}

func runLint(cmd *cobra.Command, opts LintOptions, deps LintDeps) (err error) {
	locate := deps.Locate
	if locate == nil {
		locate = config.LocateConfig
	}
	workflowID := deps.WorkflowID
	if workflowID == nil {
		workflowID = telemetry.NewWorkflowID
	}

	var logger telemetry.StructuredLogger
	if opts.Verbose {
		structured, logErr := telemetry.NewLogger(cmd.ErrOrStderr(), workflowID())
		if logErr != nil {
			return fmt.Errorf("initialize structured logging: %w", logErr)
		}
		logger = structured
	}

	metadata := map[string]string{}
	logWorkflowStart(logger, stepLint, metadata)
	defer func() {
		if err != nil {
			logWorkflowFailure(logger, stepLint, metadata, err)
		}
	}()

	location, err := locate(opts.ConfigPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && opts.ConfigPath == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "no configuration document found")
			logWorkflowSuccess(logger, stepLint, metadata)
			return nil
		}
		return err
	}
	metadata["configPath"] = location.Path

	doc, err := config.NewLoader().Load(location.Path)
	if err != nil {
		return err
	}

	result, err := validation.ValidateStrict(validation.StrictConfig{SchemaCheck: true, RejectFindings: true}, validation.Input{
		Document: doc,
		Merged:   doc.Config,
	}, deps.Inspector)
	if err != nil {
		return err
	}
	metadata["issues"] = strconv.Itoa(len(result.Issues))

	out := cmd.OutOrStdout()
	if result.Passed {
		fmt.Fprintf(out, "%s: ok\n", location.Path)
		logWorkflowSuccess(logger, stepLint, metadata)
		return nil
	}
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "%s: %s\n", location.Path, issue)
	}
	return fmt.Errorf("lint %s: %w", location.Path, result.Err())
}
