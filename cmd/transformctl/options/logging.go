package options

import (
	"fmt"

	transform "github.com/dobrovols/transformctl/pkg/options"
	"github.com/dobrovols/transformctl/pkg/telemetry"
)

const (
	stepResolve = "resolve"
	stepLint    = "lint"
)

func logWorkflowEntry(logger telemetry.StructuredLogger, step, message string, severity telemetry.Severity, metadata map[string]string, err error) {
	if logger == nil {
		return
	}
	_ = logger.Emit(telemetry.Entry{
		Category: telemetry.CategoryWorkflow,
		Message:  message,
		Severity: severity,
		Step:     step,
		Metadata: cloneMetadata(metadata),
		Error:    err,
	})
}

func logWorkflowStart(logger telemetry.StructuredLogger, step string, metadata map[string]string) {
	logWorkflowEntry(logger, step, fmt.Sprintf("%s workflow started", step), telemetry.SeverityInfo, metadata, nil)
}

func logWorkflowSuccess(logger telemetry.StructuredLogger, step string, metadata map[string]string) {
	logWorkflowEntry(logger, step, fmt.Sprintf("%s workflow completed", step), telemetry.SeverityInfo, metadata, nil)
}

func logWorkflowFailure(logger telemetry.StructuredLogger, step string, metadata map[string]string, err error) {
	logWorkflowEntry(logger, step, fmt.Sprintf("%s workflow failed", step), telemetry.SeverityError, metadata, err)
}

func logFindings(logger telemetry.StructuredLogger, step string, findings []transform.Finding) {
	if logger == nil {
		return
	}
	for _, finding := range findings {
		metadata := map[string]string{"value": finding.Value}
		if finding.Suggestion != "" {
			metadata["suggestion"] = finding.Suggestion
		}
		_ = logger.Emit(telemetry.Entry{
			Category: telemetry.CategoryDiagnostic,
			Message:  finding.Message,
			Severity: telemetry.SeverityWarn,
			Step:     step,
			Path:     finding.Path,
			Metadata: metadata,
		})
	}
}

func cloneMetadata(src map[string]string) map[string]string {
	if len(src) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
