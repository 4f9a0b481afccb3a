package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/archmine/archmine-go/internal/git"
	"github.com/archmine/archmine-go/internal/models"
	"github.com/archmine/archmine-go/internal/patterns"
)

// Confidence adjustments applied to every raw signal match
const (
	addedFileBoost    = 0.1
	largeChangeBoost  = 0.1
	testFilePenalty   = 0.2
	largeChangeLines  = 50
	minConfidence     = 0.1
	baselineScore     = 0.1
	modifiedDeltaMin  = 10
	signatureLineBars = 5
)

// Collaborators bundles the external services every extractor consumes
type Collaborators struct {
	Parser  MessageParser
	Deps    DependencyAnalyzer
	Tracker patterns.Tracker
}

// baseExtractor implements the extraction algorithm shared by every
// language. Language-specific behavior is pure data: the rule table, the
// owned extensions, and the entry-point patterns.
type baseExtractor struct {
	languages   []string
	extensions  map[string]bool
	rules       []Rule
	entryPoints []*regexp.Regexp
	collab      Collaborators
}

func newBaseExtractor(languages []string, extensions []string, rules []Rule, entryPoints []string, collab Collaborators) *baseExtractor {
	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[ext] = true
	}

	compiled := make([]*regexp.Regexp, 0, len(entryPoints))
	for _, p := range entryPoints {
		compiled = append(compiled, regexp.MustCompile(p))
	}

	if collab.Tracker == nil {
		collab.Tracker = patterns.NewNopTracker()
	}

	return &baseExtractor{
		languages:   languages,
		extensions:  extSet,
		rules:       rules,
		entryPoints: compiled,
		collab:      collab,
	}
}

func (e *baseExtractor) Languages() []string {
	return e.languages
}

func (e *baseExtractor) CanHandle(path string) bool {
	return e.extensions[strings.ToLower(filepath.Ext(path))]
}

func (e *baseExtractor) ownsLanguage(lang string) bool {
	for _, l := range e.languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Extract runs the shared per-commit extraction algorithm
func (e *baseExtractor) Extract(ctx context.Context, commit models.Commit) (models.CommitExtraction, error) {
	extraction := models.CommitExtraction{
		Commit:          commit,
		PrimaryLanguage: e.languages[0],
		MessageSignals:  e.collab.Parser.ExtractSignals(commit.Subject, commit.Body),
		ExtractedAt:     time.Now().UTC(),
	}

	var owned []models.FileChange
	for _, fc := range commit.Files {
		if e.ownsLanguage(fc.Language) {
			owned = append(owned, fc)
		}
	}

	// A commit touching none of this language's files yields a floor-level
	// extraction; message signals are kept, everything else stays empty.
	if len(owned) == 0 {
		extraction.Significance = baselineScore
		return extraction, nil
	}

	extraction.LanguagesAffected = affectedLanguages(commit)
	extraction.ArchitecturalSignals = e.matchSignals(owned)
	extraction.FunctionsChanged = e.structuralDeltas(owned)

	depChanges, err := e.collab.Deps.AnalyzeChanges(ctx, commit)
	if err != nil {
		return models.CommitExtraction{}, fmt.Errorf("dependency analysis for %s: %w", commit.ShortHash, err)
	}
	extraction.DependencyChanges = depChanges
	extraction.PatternsAffected = e.collab.Tracker.PatternsIn(commit)

	extraction.Significance = significance(extraction)
	return extraction, nil
}

// matchSignals applies the language rule table plus the generic fallbacks
// to every owned file, then merges duplicates.
func (e *baseExtractor) matchSignals(owned []models.FileChange) []models.ArchitecturalSignal {
	type rawMatch struct {
		rule Rule
		file models.FileChange
	}
	var raw []rawMatch

	for _, fc := range owned {
		matchedTypes := make(map[models.SignalType]bool)

		for _, rule := range e.rules {
			if rule.Pattern.MatchString(fc.Path) {
				raw = append(raw, rawMatch{rule: rule, file: fc})
				matchedTypes[rule.Type] = true
			}
		}

		for _, rule := range genericRules {
			if matchedTypes[rule.Type] {
				continue
			}
			if genericRuleApplies(rule, fc) {
				raw = append(raw, rawMatch{rule: rule, file: fc})
			}
		}
	}

	// Dedup by (type, description): union files, keep max confidence
	type key struct {
		t    models.SignalType
		desc string
	}
	merged := make(map[key]*models.ArchitecturalSignal)
	var order []key

	for _, m := range raw {
		confidence := adjustConfidence(m.rule.Confidence, m.file)

		k := key{t: m.rule.Type, desc: m.rule.Description}
		sig, ok := merged[k]
		if !ok {
			merged[k] = &models.ArchitecturalSignal{
				Type:        m.rule.Type,
				Description: m.rule.Description,
				Files:       []string{m.file.Path},
				Confidence:  confidence,
			}
			order = append(order, k)
			continue
		}

		if !containsString(sig.Files, m.file.Path) {
			sig.Files = append(sig.Files, m.file.Path)
		}
		if confidence > sig.Confidence {
			sig.Confidence = confidence
		}
	}

	signals := make([]models.ArchitecturalSignal, 0, len(order))
	for _, k := range order {
		signals = append(signals, *merged[k])
	}
	return signals
}

func adjustConfidence(base float64, fc models.FileChange) float64 {
	confidence := base
	if fc.Status == models.FileAdded {
		confidence += addedFileBoost
	}
	if fc.Additions+fc.Deletions > largeChangeLines {
		confidence += largeChangeBoost
	}
	if fc.IsTest {
		confidence -= testFilePenalty
	}
	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// structuralDeltas derives coarse function-level deltas per owned file.
// This is a heuristic stand-in for an AST diff.
func (e *baseExtractor) structuralDeltas(owned []models.FileChange) []models.StructuralDelta {
	var deltas []models.StructuralDelta

	for _, fc := range owned {
		var delta models.StructuralDelta
		switch fc.Status {
		case models.FileAdded:
			delta = models.StructuralDelta{
				Name:       "[new file]",
				ChangeType: models.ChangeAdded,
			}
		case models.FileDeleted:
			delta = models.StructuralDelta{
				Name:       "[deleted file]",
				ChangeType: models.ChangeRemoved,
			}
		default:
			if fc.Additions+fc.Deletions <= modifiedDeltaMin {
				continue
			}
			delta = models.StructuralDelta{
				Name:             "[modified file]",
				ChangeType:       models.ChangeModified,
				SignatureChanged: fc.Additions > signatureLineBars && fc.Deletions > signatureLineBars,
			}
		}

		delta.ID = fc.Path + "#" + string(delta.ChangeType)
		delta.File = fc.Path
		delta.IsEntryPoint = e.isEntryPoint(fc.Path)
		deltas = append(deltas, delta)
	}

	return deltas
}

func (e *baseExtractor) isEntryPoint(path string) bool {
	for _, p := range e.entryPoints {
		if p.MatchString(path) {
			return true
		}
	}
	return false
}

// significance combines message signals, architectural signals, structural
// deltas, and dependency changes into one 0..1 score.
func significance(ext models.CommitExtraction) float64 {
	score := baselineScore

	score += 0.3 * maxMessageConfidence(ext.MessageSignals)
	score += 0.3 * maxSignalConfidence(ext.ArchitecturalSignals)

	entryPoints := 0
	for _, d := range ext.FunctionsChanged {
		if d.IsEntryPoint {
			entryPoints++
		}
	}
	score += capped(0.05*float64(entryPoints), 0.2)
	score += capped(0.05*float64(len(ext.PatternsAffected)), 0.2)
	score += capped(0.05*float64(len(ext.DependencyChanges)), 0.15)

	if score > 1 {
		score = 1
	}
	return score
}

func maxMessageConfidence(signals []models.MessageSignal) float64 {
	best := 0.0
	for _, s := range signals {
		if s.Confidence > best {
			best = s.Confidence
		}
	}
	return best
}

func maxSignalConfidence(signals []models.ArchitecturalSignal) float64 {
	best := 0.0
	for _, s := range signals {
		if s.Confidence > best {
			best = s.Confidence
		}
	}
	return best
}

func capped(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}

// affectedLanguages lists the analyzable languages a commit touches
func affectedLanguages(commit models.Commit) []string {
	var langs []string
	seen := make(map[string]bool)
	for _, fc := range commit.Files {
		if !git.IsAnalyzableLanguage(fc.Language) {
			continue
		}
		if !seen[fc.Language] {
			seen[fc.Language] = true
			langs = append(langs, fc.Language)
		}
	}
	sort.Strings(langs)
	return langs
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
