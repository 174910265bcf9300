package validation

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dobrovols/transformctl/internal/config"
	"github.com/dobrovols/transformctl/pkg/options"
)

// ErrStrictFindings is returned when strict validation reports issues.
var ErrStrictFindings = errors.New("strict validation failed")

// StrictConfig selects the checks applied before options are handed to the engine.
type StrictConfig struct {
	SchemaCheck     bool
	RejectFindings  bool
	RequireCwdExist bool
}

// DefaultStrictConfig enables every check.
func DefaultStrictConfig() StrictConfig {
	return StrictConfig{SchemaCheck: true, RejectFindings: true, RequireCwdExist: true}
}

// Input carries what the strict gate inspects.
type Input struct {
	// Document is nil when no configuration file was loaded.
	Document *config.Document
	Merged   options.ExternalConfig
	Resolved options.TransformOptions
}

// Result describes the outcome of the strict run.
type Result struct {
	Passed bool
	// Issues lists every problem in report order, schema issues first.
	Issues []string
	// Schema holds the schema violations behind the "schema" issues.
	Schema []config.SchemaIssue

	other []string
}

// Err folds a failed result into ErrStrictFindings. Schema violations are
// additionally wrapped as config.ErrSchemaViolation.
func (r Result) Err() error {
	if r.Passed {
		return nil
	}
	schemaErr := config.IssuesError(r.Schema)
	detail := strings.Join(r.other, "; ")
	switch {
	case schemaErr != nil && detail != "":
		return fmt.Errorf("%w: %w; %s", ErrStrictFindings, schemaErr, detail)
	case schemaErr != nil:
		return fmt.Errorf("%w: %w", ErrStrictFindings, schemaErr)
	case detail != "":
		return fmt.Errorf("%w: %s", ErrStrictFindings, detail)
	default:
		return fmt.Errorf("%w: %s", ErrStrictFindings, strings.Join(r.Issues, "; "))
	}
}

// Inspector models the individual checks, allowing tests to stub.
type Inspector interface {
	SchemaIssues(*config.Document) ([]config.SchemaIssue, error)
	Findings(options.ExternalConfig) []options.Finding
	IsDir(path string) bool
}

// DefaultInspector runs the real schema validation, option inspection and filesystem probe.
type DefaultInspector struct{}

// SchemaIssues validates the document against the embedded schema.
func (DefaultInspector) SchemaIssues(doc *config.Document) ([]config.SchemaIssue, error) {
	return config.ValidateDocument(doc)
}

// Findings reports permissive fallbacks in the merged configuration.
func (DefaultInspector) Findings(cfg options.ExternalConfig) []options.Finding {
	return options.Inspect(cfg)
}

// IsDir reports whether path names an existing directory.
func (DefaultInspector) IsDir(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.IsDir()
}

// ValidateStrict turns the permissive fallbacks of resolution into hard issues.
// Resolution itself is unaffected; callers decide whether to act on the result.
func ValidateStrict(cfg StrictConfig, in Input, insp Inspector) (Result, error) {
	if insp == nil {
		insp = DefaultInspector{}
	}

	result := Result{Issues: []string{}}

	if cfg.SchemaCheck && in.Document != nil {
		schemaIssues, err := insp.SchemaIssues(in.Document)
		if err != nil {
			return Result{}, fmt.Errorf("schema validation: %w", err)
		}
		result.Schema = schemaIssues
		for _, issue := range schemaIssues {
			result.Issues = append(result.Issues, fmt.Sprintf("schema %s", issue))
		}
	}

	if cfg.RejectFindings {
		for _, finding := range insp.Findings(in.Merged) {
			result.other = append(result.other, finding.String())
		}
	}

	if cfg.RequireCwdExist && !insp.IsDir(in.Resolved.Cwd) {
		result.other = append(result.other, fmt.Sprintf("cwd is not a directory: %s", in.Resolved.Cwd))
	}

	result.Issues = append(result.Issues, result.other...)
	result.Passed = len(result.Issues) == 0
	return result, nil
}
