package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaResource = "transform-options.schema.json"

//go:embed schema/transform-options.schema.json
var schemaJSON []byte

// ErrSchemaViolation indicates a document does not satisfy the configuration schema.
var ErrSchemaViolation = errors.New("configuration document violates schema")

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// SchemaJSON returns the embedded JSON schema describing configuration documents.
func SchemaJSON() []byte {
	return append([]byte(nil), schemaJSON...)
}

// SchemaIssue is a single schema violation.
type SchemaIssue struct {
	Location string
	Message  string
}

func (i SchemaIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Location, i.Message)
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("decode schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaResource, doc); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(schemaResource)
	})
	return compiledSchema, compileErr
}

// ValidateDocument checks the normalized document against the embedded schema.
// Violations are returned as issues; the error is reserved for failures to run
// the validation itself.
func ValidateDocument(doc *Document) ([]SchemaIssue, error) {
	if doc == nil {
		return nil, nil
	}
	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc.Normalized))
	if err != nil {
		return nil, fmt.Errorf("decode document %q: %w", doc.Path, err)
	}

	err = schema.Validate(instance)
	if err == nil {
		return nil, nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, fmt.Errorf("validate document %q: %w", doc.Path, err)
	}

	printer := message.NewPrinter(language.English)
	var issues []SchemaIssue
	collectIssues(verr, printer, &issues)
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Location == issues[j].Location {
			return issues[i].Message < issues[j].Message
		}
		return issues[i].Location < issues[j].Location
	})
	return issues, nil
}

// collectIssues keeps only the leaf causes, which carry the specific keyword failures.
func collectIssues(verr *jsonschema.ValidationError, printer *message.Printer, out *[]SchemaIssue) {
	if len(verr.Causes) == 0 {
		location := "/" + strings.Join(verr.InstanceLocation, "/")
		*out = append(*out, SchemaIssue{
			Location: location,
			Message:  verr.ErrorKind.LocalizedString(printer),
		})
		return
	}
	for _, cause := range verr.Causes {
		collectIssues(cause, printer, out)
	}
}

// IssuesError folds schema issues into a single ErrSchemaViolation error.
func IssuesError(issues []SchemaIssue) error {
	if len(issues) == 0 {
		return nil
	}
	parts := make([]string, len(issues))
	for i, issue := range issues {
		parts[i] = issue.String()
	}
	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(parts, "; "))
}
