package extract

import (
	"regexp"

	"github.com/archmine/archmine-go/internal/models"
)

// NewGoExtractor builds the extractor for Go sources
func NewGoExtractor(collab Collaborators) Extractor {
	rules := []Rule{
		{
			Pattern:     regexp.MustCompile(`(^|/)cmd/`),
			Type:        models.SignalLayerChange,
			Description: "command entry point changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(store|storage|repo|repository|dao)[^/]*\.go$`),
			Type:        models.SignalDataModelChange,
			Description: "storage layer changed",
			Confidence:  0.65,
		},
		{
			Pattern:     regexp.MustCompile(`(^|/)migrations?/`),
			Type:        models.SignalDataModelChange,
			Description: "database migration",
			Confidence:  0.7,
		},
		{
			Pattern:     regexp.MustCompile(`(\.pb\.go|_grpc\.go)$`),
			Type:        models.SignalAPISurfaceChange,
			Description: "generated RPC surface changed",
			Confidence:  0.7,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(middleware|server)[^/]*\.go$`),
			Type:        models.SignalAPISurfaceChange,
			Description: "server layer changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(config|settings|options)[^/]*\.go$`),
			Type:        models.SignalConfigChange,
			Description: "configuration changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)errors?[^/]*\.go$`),
			Type:        models.SignalErrorHandlingChange,
			Description: "error handling changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(auth|jwt|oauth|token|session)[^/]*\.go$`),
			Type:        models.SignalAuthChange,
			Description: "authentication changed",
			Confidence:  0.7,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(client|gateway|adapter|webhook)[^/]*\.go$`),
			Type:        models.SignalIntegrationChange,
			Description: "external integration changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(testutil|testhelpers|mocks?)(/|[^/]*\.go$)`),
			Type:        models.SignalTestStrategyChange,
			Description: "test tooling changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(^|/)(magefile\.go|build\.go)$`),
			Type:        models.SignalBuildChange,
			Description: "build tooling changed",
			Confidence:  0.6,
		},
	}

	entryPoints := []string{
		`(?i)(controller|handler|route|endpoint)`,
		`(^|/)main\.go$`,
		`(^|/)cmd/`,
		`(?i)(^|/)(app|server)\.go$`,
	}

	return newBaseExtractor([]string{"go"}, []string{".go"}, rules, entryPoints, collab)
}
