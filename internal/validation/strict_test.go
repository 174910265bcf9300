package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dobrovols/transformctl/internal/config"
	"github.com/dobrovols/transformctl/internal/validation"
	"github.com/dobrovols/transformctl/pkg/options"
)

type fakeInspector struct {
	schemaIssues []config.SchemaIssue
	schemaErr    error
	findings     []options.Finding
	dirs         map[string]bool
}

func (f fakeInspector) SchemaIssues(*config.Document) ([]config.SchemaIssue, error) {
	return f.schemaIssues, f.schemaErr
}
func (f fakeInspector) Findings(options.ExternalConfig) []options.Finding { return f.findings }
func (f fakeInspector) IsDir(path string) bool                            { return f.dirs[path] }

func TestValidateStrictSuccess(t *testing.T) {
	inspector := fakeInspector{dirs: map[string]bool{"/src": true}}

	result, err := validation.ValidateStrict(validation.DefaultStrictConfig(), validation.Input{
		Document: &config.Document{},
		Resolved: options.TransformOptions{Cwd: "/src"},
	}, inspector)
	if err != nil {
		t.Fatalf("ValidateStrict returned error: %v", err)
	}
	if !result.Passed {
		t.Fatalf("expected validation to pass: %#v", result.Issues)
	}
	if result.Err() != nil {
		t.Fatalf("expected nil error for passing result")
	}
}

func TestValidateStrictCollectsIssues(t *testing.T) {
	inspector := fakeInspector{
		schemaIssues: []config.SchemaIssue{{Location: "/react", Message: "additional properties 'jsx' not allowed"}},
		findings:     []options.Finding{{Path: "react.runtime", Message: "unrecognised runtime; falls back to automatic"}},
	}

	result, err := validation.ValidateStrict(validation.DefaultStrictConfig(), validation.Input{
		Document: &config.Document{},
		Resolved: options.TransformOptions{Cwd: "/missing"},
	}, inspector)
	if err != nil {
		t.Fatalf("ValidateStrict returned error: %v", err)
	}
	if result.Passed {
		t.Fatalf("expected validation failure")
	}
	if len(result.Issues) != 3 {
		t.Fatalf("expected three issues, got %v", result.Issues)
	}
	if !strings.HasPrefix(result.Issues[0], "schema /react") {
		t.Fatalf("expected schema issue first, got %q", result.Issues[0])
	}
	if !errors.Is(result.Err(), validation.ErrStrictFindings) {
		t.Fatalf("expected ErrStrictFindings, got %v", result.Err())
	}
	if !errors.Is(result.Err(), config.ErrSchemaViolation) {
		t.Fatalf("expected schema issues wrapped as ErrSchemaViolation, got %v", result.Err())
	}
	if len(result.Schema) != 1 || result.Schema[0].Location != "/react" {
		t.Fatalf("expected schema issue recorded, got %v", result.Schema)
	}
}

func TestValidateStrictFindingsWithoutSchemaViolation(t *testing.T) {
	inspector := fakeInspector{
		findings: []options.Finding{{Path: "react.runtime", Message: "unrecognised runtime; falls back to automatic"}},
		dirs:     map[string]bool{"/src": true},
	}

	result, err := validation.ValidateStrict(validation.DefaultStrictConfig(), validation.Input{
		Document: &config.Document{},
		Resolved: options.TransformOptions{Cwd: "/src"},
	}, inspector)
	if err != nil {
		t.Fatalf("ValidateStrict returned error: %v", err)
	}
	if !errors.Is(result.Err(), validation.ErrStrictFindings) {
		t.Fatalf("expected ErrStrictFindings, got %v", result.Err())
	}
	if errors.Is(result.Err(), config.ErrSchemaViolation) {
		t.Fatalf("did not expect ErrSchemaViolation without schema issues: %v", result.Err())
	}
	if !strings.Contains(result.Err().Error(), "react.runtime") {
		t.Fatalf("expected finding in error, got %v", result.Err())
	}
}

func TestValidateStrictSkipsSchemaWithoutDocument(t *testing.T) {
	inspector := fakeInspector{
		schemaErr: errors.New("must not be called"),
		dirs:      map[string]bool{"/src": true},
	}

	result, err := validation.ValidateStrict(validation.DefaultStrictConfig(), validation.Input{
		Resolved: options.TransformOptions{Cwd: "/src"},
	}, inspector)
	if err != nil {
		t.Fatalf("ValidateStrict returned error: %v", err)
	}
	if !result.Passed {
		t.Fatalf("expected validation to pass: %#v", result.Issues)
	}
}

func TestValidateStrictPropagatesSchemaErrors(t *testing.T) {
	inspector := fakeInspector{schemaErr: errors.New("compile failed")}

	_, err := validation.ValidateStrict(validation.StrictConfig{SchemaCheck: true}, validation.Input{
		Document: &config.Document{},
	}, inspector)
	if err == nil || !strings.Contains(err.Error(), "compile failed") {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestValidateStrictDefaultInspector(t *testing.T) {
	doc, err := config.NewLoader().Decode([]byte("react:\n  runtime: Classic\n"), config.FormatYAML)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	result, err := validation.ValidateStrict(validation.StrictConfig{SchemaCheck: true, RejectFindings: true, RequireCwdExist: true}, validation.Input{
		Document: doc,
		Merged:   doc.Config,
		Resolved: options.TransformOptions{Cwd: t.TempDir()},
	}, nil)
	if err != nil {
		t.Fatalf("ValidateStrict returned error: %v", err)
	}
	if result.Passed || len(result.Issues) != 1 {
		t.Fatalf("expected a single runtime finding, got %v", result.Issues)
	}
	if !strings.Contains(result.Issues[0], `did you mean "classic"?`) {
		t.Fatalf("expected suggestion in issue, got %q", result.Issues[0])
	}
}
