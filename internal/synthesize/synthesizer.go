package synthesize

import (
	"fmt"
	"strings"
	"time"

	"github.com/archmine/archmine-go/internal/models"
)

// Confidence score weights and synthesis limits
const (
	commitCountWeight   = 0.05
	commitCountCap      = 0.2
	significanceWeight  = 0.3
	archSignalBonus     = 0.2
	dependencyBonus     = 0.15
	patternBonus        = 0.15
	dependencyVoteBoost = 0.5
	maxEvidencePerKind  = 3
	maxTitleKeywords    = 3
	verbatimTitleLimit  = 60
)

// Synthesizer turns one accepted cluster into one decision record
type Synthesizer struct {
	MinConfidence float64
}

// NewSynthesizer returns a Synthesizer that discards decisions scoring
// below minConfidence.
func NewSynthesizer(minConfidence float64) *Synthesizer {
	return &Synthesizer{MinConfidence: minConfidence}
}

// Synthesize builds a draft decision from a cluster and its member
// extractions. Returns (nil, nil) when the decision's confidence falls
// below the threshold; that is a silent drop, not an error.
func (s *Synthesizer) Synthesize(cl models.CommitCluster, members []models.CommitExtraction) (*models.Decision, error) {
	if len(cl.Commits) == 0 {
		return nil, fmt.Errorf("cluster %s has no commits", cl.ID)
	}

	earliest := earliestCommit(cl.Commits)
	category := inferCategory(cl, members)

	score := confidenceScore(cl, members)
	if score < s.MinConfidence {
		return nil, nil
	}

	now := time.Now().UTC()
	decision := &models.Decision{
		ID:                  "DEC-" + strings.ToUpper(earliest.ShortHash),
		Title:               buildTitle(category, earliest, members),
		Status:              models.StatusDraft,
		Category:            category,
		Confidence:          models.LevelForScore(score),
		ConfidenceScore:     score,
		DateRange:           cl.DateRange,
		Duration:            cl.Duration,
		Cluster:             cl,
		PatternsChanged:     cl.PatternsAffected,
		DependenciesChanged: cl.DependencyChanges,
		Tags:                buildTags(category, cl),
		MinedAt:             now,
		LastUpdated:         now,
	}

	decision.ADR = models.ADR{
		Context:      buildContext(category, cl),
		Decision:     buildStatement(category, earliest, cl),
		Consequences: buildConsequences(cl),
		Evidence:     buildEvidence(cl),
	}

	return decision, nil
}

// inferCategory accumulates weighted votes from message hints,
// architectural signals, and dependency changes, then picks the highest
// scorer. Ties resolve by the fixed category priority list so the result
// never depends on map iteration order.
func inferCategory(cl models.CommitCluster, members []models.CommitExtraction) models.Category {
	votes := make(map[models.Category]float64)

	for _, m := range members {
		for _, sig := range m.MessageSignals {
			if sig.CategoryHint != "" {
				votes[sig.CategoryHint] += sig.Confidence
			}
		}
		for _, sig := range m.ArchitecturalSignals {
			votes[sig.Type.Category()] += sig.Confidence
		}
	}

	added, removed := dependencyDirections(cl.DependencyChanges)
	if added && !removed {
		votes[models.CategoryTechnologyAdoption] += dependencyVoteBoost
	}
	if removed && !added {
		votes[models.CategoryTechnologyRemoval] += dependencyVoteBoost
	}

	if len(votes) == 0 {
		return models.CategoryOther
	}

	best := models.CategoryOther
	bestScore := -1.0
	for _, category := range models.CategoryPriority {
		if score, ok := votes[category]; ok && score > bestScore {
			best = category
			bestScore = score
		}
	}
	return best
}

func dependencyDirections(deps []models.DependencyDelta) (added, removed bool) {
	for _, d := range deps {
		switch d.ChangeType {
		case models.DependencyAdded:
			added = true
		case models.DependencyRemoved:
			removed = true
		}
	}
	return added, removed
}

// confidenceScore combines cluster size, member significance, and the
// presence of corroborating signal kinds into one 0..1 score.
func confidenceScore(cl models.CommitCluster, members []models.CommitExtraction) float64 {
	score := commitCountWeight * float64(len(cl.Commits))
	if score > commitCountCap {
		score = commitCountCap
	}

	if len(members) > 0 {
		total := 0.0
		for _, m := range members {
			total += m.Significance
		}
		score += significanceWeight * (total / float64(len(members)))
	}

	for _, m := range members {
		if len(m.ArchitecturalSignals) > 0 {
			score += archSignalBonus
			break
		}
	}
	if len(cl.DependencyChanges) > 0 {
		score += dependencyBonus
	}
	if len(cl.PatternsAffected) > 0 {
		score += patternBonus
	}

	if score > 1 {
		score = 1
	}
	return score
}

// buildTitle prefers message keywords, then a short earliest subject, then
// a generic verb-plus-count form.
func buildTitle(category models.Category, earliest models.Commit, members []models.CommitExtraction) string {
	var unique []string
	seen := make(map[string]bool)
	for _, m := range members {
		for _, sig := range m.MessageSignals {
			if sig.Kind != "keyword" || seen[sig.Value] {
				continue
			}
			seen[sig.Value] = true
			unique = append(unique, sig.Value)
		}
	}

	if len(unique) > 0 {
		if len(unique) > maxTitleKeywords {
			unique = unique[:maxTitleKeywords]
		}
		return category.Verb() + " " + strings.Join(unique, ", ")
	}

	if len(earliest.Subject) < verbatimTitleLimit {
		return earliest.Subject
	}

	return fmt.Sprintf("%s (%d commits)", category.Verb(), len(members))
}

func buildTags(category models.Category, cl models.CommitCluster) []string {
	tags := []string{string(category)}
	tags = append(tags, cl.Languages...)
	if len(cl.Authors) == 1 {
		tags = append(tags, "author:"+cl.Authors[0])
	}
	return tags
}

// buildEvidence assembles up to three entries each from commit messages,
// dependency changes, and pattern changes.
func buildEvidence(cl models.CommitCluster) []models.Evidence {
	var evidence []models.Evidence

	for i, commit := range cl.Commits {
		if i >= maxEvidencePerKind {
			break
		}
		evidence = append(evidence, models.Evidence{
			Kind:        "commit-message",
			Description: commit.Subject,
			Source:      commit.Hash,
			Confidence:  0.7,
		})
	}

	for i, dep := range cl.DependencyChanges {
		if i >= maxEvidencePerKind {
			break
		}
		evidence = append(evidence, models.Evidence{
			Kind:        "dependency-change",
			Description: string(dep.ChangeType) + ": " + dep.Name,
			Source:      dep.Manifest,
			Confidence:  0.8,
		})
	}

	for i, pattern := range cl.PatternsAffected {
		if i >= maxEvidencePerKind {
			break
		}
		source := ""
		if len(pattern.Files) > 0 {
			source = pattern.Files[0]
		}
		evidence = append(evidence, models.Evidence{
			Kind:        "pattern-change",
			Description: string(pattern.ChangeType) + ": " + pattern.PatternName,
			Source:      source,
			Confidence:  0.6,
		})
	}

	return evidence
}

func earliestCommit(commits []models.Commit) models.Commit {
	earliest := commits[0]
	for _, c := range commits[1:] {
		if c.Timestamp.Before(earliest.Timestamp) {
			earliest = c
		}
	}
	return earliest
}

