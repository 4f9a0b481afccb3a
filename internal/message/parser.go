package message

import (
	"strings"

	"github.com/archmine/archmine-go/internal/models"
)

// keywordRule maps a commit-message keyword to a category hint
type keywordRule struct {
	keyword    string
	confidence float64
	hint       models.Category
}

// Ordered: more specific phrases first so "remove dependency" wins over
// "remove".
var keywordRules = []keywordRule{
	{"migrate to", 0.85, models.CategoryPatternMigration},
	{"switch to", 0.8, models.CategoryTechnologyAdoption},
	{"remove dependency", 0.85, models.CategoryTechnologyRemoval},
	{"add dependency", 0.85, models.CategoryTechnologyAdoption},
	{"upgrade", 0.6, models.CategoryTechnologyAdoption},
	{"adopt", 0.8, models.CategoryTechnologyAdoption},
	{"introduce", 0.75, models.CategoryPatternIntroduction},
	{"migrate", 0.75, models.CategoryPatternMigration},
	{"migration", 0.7, models.CategoryPatternMigration},
	{"restructure", 0.8, models.CategoryArchitectureChange},
	{"rearchitect", 0.85, models.CategoryArchitectureChange},
	{"architecture", 0.7, models.CategoryArchitectureChange},
	{"refactor", 0.75, models.CategoryRefactoring},
	{"cleanup", 0.5, models.CategoryRefactoring},
	{"clean up", 0.5, models.CategoryRefactoring},
	{"deprecate", 0.7, models.CategoryTechnologyRemoval},
	{"drop support", 0.75, models.CategoryTechnologyRemoval},
	{"endpoint", 0.6, models.CategoryAPIChange},
	{"api", 0.55, models.CategoryAPIChange},
	{"breaking change", 0.8, models.CategoryAPIChange},
	{"security", 0.75, models.CategorySecurityEnhancement},
	{"vulnerability", 0.8, models.CategorySecurityEnhancement},
	{"auth", 0.6, models.CategorySecurityEnhancement},
	{"performance", 0.7, models.CategoryPerformanceOptimization},
	{"optimize", 0.7, models.CategoryPerformanceOptimization},
	{"speed up", 0.65, models.CategoryPerformanceOptimization},
	{"cache", 0.55, models.CategoryPerformanceOptimization},
	{"test coverage", 0.7, models.CategoryTestingStrategy},
	{"testing", 0.6, models.CategoryTestingStrategy},
	{"ci", 0.5, models.CategoryInfrastructure},
	{"pipeline", 0.55, models.CategoryInfrastructure},
	{"docker", 0.6, models.CategoryInfrastructure},
	{"deploy", 0.55, models.CategoryInfrastructure},
	{"infrastructure", 0.7, models.CategoryInfrastructure},
}

// Parser extracts keyword signals from commit messages
type Parser struct{}

// NewParser creates a message parser
func NewParser() *Parser {
	return &Parser{}
}

// ExtractSignals scans subject and body for known keywords. Each keyword
// is reported at most once per commit, keeping the highest confidence.
func (p *Parser) ExtractSignals(subject, body string) []models.MessageSignal {
	text := strings.ToLower(subject + "\n" + body)

	var signals []models.MessageSignal
	seen := make(map[string]bool)

	for _, rule := range keywordRules {
		if !containsWord(text, rule.keyword) {
			continue
		}
		if seen[rule.keyword] {
			continue
		}
		seen[rule.keyword] = true

		confidence := rule.confidence
		// Keywords in the subject line carry more intent than body mentions
		if containsWord(strings.ToLower(subject), rule.keyword) {
			confidence += 0.1
			if confidence > 1.0 {
				confidence = 1.0
			}
		}

		signals = append(signals, models.MessageSignal{
			Kind:         "keyword",
			Value:        rule.keyword,
			Confidence:   confidence,
			CategoryHint: rule.hint,
		})
	}

	return signals
}

// containsWord matches a keyword on word boundaries so "api" does not
// match "rapid".
func containsWord(text, keyword string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], keyword)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(keyword)

		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
		if idx >= len(text) {
			return false
		}
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
