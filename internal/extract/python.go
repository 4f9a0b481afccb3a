package extract

import (
	"regexp"

	"github.com/archmine/archmine-go/internal/models"
)

// NewPythonExtractor builds the extractor for Python sources
func NewPythonExtractor(collab Collaborators) Extractor {
	rules := []Rule{
		{
			Pattern:     regexp.MustCompile(`(^|/)migrations?/`),
			Type:        models.SignalDataModelChange,
			Description: "database migration",
			Confidence:  0.7,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(models|orm|db)[^/]*\.py$`),
			Type:        models.SignalDataModelChange,
			Description: "data model changed",
			Confidence:  0.65,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(views|viewsets|serializers|urls)[^/]*\.py$`),
			Type:        models.SignalAPISurfaceChange,
			Description: "web API layer changed",
			Confidence:  0.65,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(settings|config)[^/]*\.py$`),
			Type:        models.SignalConfigChange,
			Description: "configuration changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(exceptions?|errors?)[^/]*\.py$`),
			Type:        models.SignalErrorHandlingChange,
			Description: "error handling changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(auth|permissions?|oauth)[^/]*\.py$`),
			Type:        models.SignalAuthChange,
			Description: "authentication changed",
			Confidence:  0.7,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(clients?|adapters?|integrations?)[^/]*\.py$`),
			Type:        models.SignalIntegrationChange,
			Description: "external integration changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(^|/)conftest\.py$`),
			Type:        models.SignalTestStrategyChange,
			Description: "test fixtures changed",
			Confidence:  0.7,
		},
		{
			Pattern:     regexp.MustCompile(`(^|/)setup\.py$`),
			Type:        models.SignalBuildChange,
			Description: "packaging changed",
			Confidence:  0.65,
		},
	}

	entryPoints := []string{
		`(?i)(controller|handler|route|endpoint)`,
		`(^|/)__main__\.py$`,
		`(^|/)(manage|app|main|cli)\.py$`,
		`(?i)(wsgi|asgi)\.py$`,
	}

	return newBaseExtractor([]string{"python"}, []string{".py", ".pyi"}, rules, entryPoints, collab)
}
