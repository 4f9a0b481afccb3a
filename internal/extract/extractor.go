package extract

import (
	"context"
	"regexp"

	"github.com/archmine/archmine-go/internal/models"
)

// Extractor classifies one commit's file changes into architectural
// signals and structural deltas for a single language.
type Extractor interface {
	// Languages returns the language names this extractor owns
	Languages() []string
	// CanHandle reports whether this extractor owns the file at path
	CanHandle(path string) bool
	// Extract produces the per-commit extraction
	Extract(ctx context.Context, commit models.Commit) (models.CommitExtraction, error)
}

// MessageParser supplies hints mined from commit subject and body
type MessageParser interface {
	ExtractSignals(subject, body string) []models.MessageSignal
}

// DependencyAnalyzer diffs dependency manifests changed by a commit
type DependencyAnalyzer interface {
	AnalyzeChanges(ctx context.Context, commit models.Commit) ([]models.DependencyDelta, error)
}

// Rule matches a file path against one architectural signal. Rule tables
// are the only thing that differs between language extractors.
type Rule struct {
	Pattern     *regexp.Regexp
	Type        models.SignalType
	Description string
	Confidence  float64
}

// Generic fallback rules applied by every extractor after its own table,
// skipped when the table already raised the same signal type for the file.
var genericRules = []Rule{
	{
		Pattern:     regexp.MustCompile(`(?i)(interface|abstract|base|contract)`),
		Type:        models.SignalNewAbstraction,
		Description: "new abstraction introduced",
		Confidence:  0.7,
	},
	{
		Pattern:     regexp.MustCompile(`(?i)(controller|route|endpoint|api|handler)`),
		Type:        models.SignalAPISurfaceChange,
		Description: "API surface changed",
		Confidence:  0.6,
	},
	{
		Pattern:     regexp.MustCompile(`(?i)(model|entity|schema|migration)`),
		Type:        models.SignalDataModelChange,
		Description: "data model changed",
		Confidence:  0.6,
	},
}

// The new-abstraction fallback only applies to newly added files; an
// edit to an existing interface file is not a new abstraction.
func genericRuleApplies(rule Rule, fc models.FileChange) bool {
	if rule.Type == models.SignalNewAbstraction && fc.Status != models.FileAdded {
		return false
	}
	return rule.Pattern.MatchString(fc.Path)
}
