package extract

import (
	"regexp"

	"github.com/archmine/archmine-go/internal/models"
)

// NewJavaExtractor builds the extractor for Java sources
func NewJavaExtractor(collab Collaborators) Extractor {
	rules := []Rule{
		{
			Pattern:     regexp.MustCompile(`(Repository|DAO)[^/]*\.java$`),
			Type:        models.SignalDataModelChange,
			Description: "persistence layer changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(Entity|Record|Dto|DTO)[^/]*\.java$`),
			Type:        models.SignalDataModelChange,
			Description: "data model changed",
			Confidence:  0.65,
		},
		{
			Pattern:     regexp.MustCompile(`(^|/)(db|database)/(migration|changelog)/`),
			Type:        models.SignalDataModelChange,
			Description: "database migration",
			Confidence:  0.7,
		},
		{
			Pattern:     regexp.MustCompile(`(Controller|Resource|RestController)[^/]*\.java$`),
			Type:        models.SignalAPISurfaceChange,
			Description: "web API layer changed",
			Confidence:  0.65,
		},
		{
			Pattern:     regexp.MustCompile(`(Service|ServiceImpl)[^/]*\.java$`),
			Type:        models.SignalLayerChange,
			Description: "service layer changed",
			Confidence:  0.55,
		},
		{
			Pattern:     regexp.MustCompile(`(Config|Configuration|Properties)[^/]*\.java$`),
			Type:        models.SignalConfigChange,
			Description: "configuration changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(Exception|ErrorHandler|Advice)[^/]*\.java$`),
			Type:        models.SignalErrorHandlingChange,
			Description: "error handling changed",
			Confidence:  0.6,
		},
		{
			Pattern:     regexp.MustCompile(`(?i)(auth|security|jwt|oauth)[^/]*\.java$`),
			Type:        models.SignalAuthChange,
			Description: "authentication changed",
			Confidence:  0.7,
		},
		{
			Pattern:     regexp.MustCompile(`(Client|Gateway|Adapter|Feign)[^/]*\.java$`),
			Type:        models.SignalIntegrationChange,
			Description: "external integration changed",
			Confidence:  0.6,
		},
	}

	entryPoints := []string{
		`(?i)(controller|handler|route|endpoint)`,
		`Application\.java$`,
		`(^|/)Main\.java$`,
	}

	return newBaseExtractor([]string{"java"}, []string{".java"}, rules, entryPoints, collab)
}
