package extract

import (
	"regexp"

	"github.com/archmine/archmine-go/internal/models"
)

// NewCSharpExtractor builds the extractor for C# sources
func NewCSharpExtractor(collab Collaborators) Extractor {
	rules := []Rule{
		{
			Pattern:     regexp.MustCompile(`(Repository|DbContext|Dao)[^/]*\.cs$`),
			Type:        models.SignalDataModelChange,
			Description: "persistence layer changed",
			Confidence:  0.65,
		},
		{
			Pattern:     regexp.MustCompile(`(^|/)Migrations/`),
			Type:        models.SignalDataModelChange,
			Description: "database migration",
			Confidence:  0.7,
		},
		{
			Pattern:     regexp.MustCompile(`(Controller|Endpoint|Hub)[^/]*\.cs$`),
			Type:        models.SignalAPISurfaceChange,
			Description: "web API layer changed",
			Confidence:  0.65,
		},
		{
			Pattern:     regexp.MustCompile(`(Service|Handler)[^/]*\.cs$`),
			Type:        models.SignalLayerChange,
			Description: "service layer changed",
			Confidence:  0.55,
		},
		{
			Pattern:     regexp.MustCompile(`(^|/)(Startup|Program)\.cs$`),
			Type:        models.SignalConfigChange,
			Description: "application bootstrap changed",
			Confidence:  0.65,
		},
		{
			Pattern:     regexp.MustCompile(`(Options|Settings|Configuration)[^/]*\.cs$`),
			Type:        models.SignalConfigChange,
			Description: "configuration changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(Exception|ErrorHandler|Middleware)[^/]*\.cs$`),
			Type:        models.SignalErrorHandlingChange,
			Description: "error handling changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(auth|identity|jwt|oauth)[^/]*\.cs$`),
			Type:        models.SignalAuthChange,
			Description: "authentication changed",
			Confidence:  0.7,
		},
		{
			Pattern:     regexp.MustCompile(`(Client|Gateway|Adapter)[^/]*\.cs$`),
			Type:        models.SignalIntegrationChange,
			Description: "external integration changed",
			Confidence:  0.6,
		},
	}

	entryPoints := []string{
		`(?i)(controller|handler|route|endpoint)`,
		`(^|/)Program\.cs$`,
		`(^|/)Startup\.cs$`,
	}

	return newBaseExtractor([]string{"csharp"}, []string{".cs"}, rules, entryPoints, collab)
}
