package extract

import (
	"regexp"

	"github.com/archmine/archmine-go/internal/models"
)

// NewJavaScriptExtractor builds the extractor for JavaScript and
// TypeScript sources. The two share one table; TypeScript adds the typed
// abstraction patterns.
func NewJavaScriptExtractor(collab Collaborators) Extractor {
	rules := []Rule{
		{
			Pattern:     regexp.MustCompile(`(?i)\.d\.ts$`),
			Type:        models.SignalNewAbstraction,
			Description: "type declarations changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(reducers?|stores?|slices?)[^/]*\.(jsx?|tsx?)$`),
			Type:        models.SignalLayerChange,
			Description: "state management layer changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(models?|schemas?|entities)[^/]*\.(jsx?|tsx?)$`),
			Type:        models.SignalDataModelChange,
			Description: "data model changed",
			Confidence:  0.65,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(middlewares?|servers?)[^/]*\.(jsx?|tsx?)$`),
			Type:        models.SignalAPISurfaceChange,
			Description: "server layer changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(webpack|rollup|vite|babel|tsconfig)[^/]*\.(js|ts|json)$`),
			Type:        models.SignalBuildChange,
			Description: "build tooling changed",
			Confidence:  0.65,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(config|env)[^/]*\.(jsx?|tsx?)$`),
			Type:        models.SignalConfigChange,
			Description: "configuration changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(auth|session|token)[^/]*\.(jsx?|tsx?)$`),
			Type:        models.SignalAuthChange,
			Description: "authentication changed",
			Confidence:  0.7,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(^|/)(clients?|adapters?|gateways?|sdk)[^/]*\.(jsx?|tsx?)$`),
			Type:        models.SignalIntegrationChange,
			Description: "external integration changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(jest|vitest|cypress|playwright)[^/]*\.(config\.)?(js|ts)$`),
			Type:        models.SignalTestStrategyChange,
			Description: "test tooling changed",
			Confidence:  0.65,
		},
	}

	entryPoints := []string{
		`(?i)(controller|handler|route|endpoint)`,
		`(?i)(^|/)(index|main|app|server)\.(jsx?|tsx?|mjs|cjs)$`,
	}

	return newBaseExtractor(
		[]string{"javascript", "typescript"},
		[]string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx"},
		rules, entryPoints, collab,
	)
}
