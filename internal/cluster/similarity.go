package cluster

import (
	"github.com/archmine/archmine-go/internal/models"
)

// Similarity component weights. The final score is a weighted average over
// the components that apply to the pair, so partial information never
// drags the score toward zero.
const (
	weightFiles    = 0.4
	weightPatterns = 0.3
	weightKeywords = 0.2
	weightAuthor   = 0.1
)

// Similarity scores how related two extractions are, in [0, 1]. File
// overlap and author identity always participate; pattern and keyword
// overlap participate only when both sides carry that information.
func Similarity(a, b models.CommitExtraction) float64 {
	totalWeight := weightFiles + weightAuthor
	score := weightFiles * setOverlap(filePaths(a), filePaths(b))

	if pa, pb := patternIDs(a), patternIDs(b); len(pa) > 0 && len(pb) > 0 {
		totalWeight += weightPatterns
		score += weightPatterns * setOverlap(pa, pb)
	}

	if ka, kb := keywords(a), keywords(b); len(ka) > 0 && len(kb) > 0 {
		totalWeight += weightKeywords
		score += weightKeywords * setOverlap(ka, kb)
	}

	if a.Commit.AuthorEmail == b.Commit.AuthorEmail {
		score += weightAuthor
	}

	return score / totalWeight
}

// setOverlap is |a ∩ b| / max(|a|, |b|). Two empty sets are identical and
// score 1; an empty set against a non-empty one scores 0.
func setOverlap(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	overlap := 0
	for k := range a {
		if b[k] {
			overlap++
		}
	}

	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	return float64(overlap) / float64(larger)
}

func filePaths(e models.CommitExtraction) map[string]bool {
	set := make(map[string]bool, len(e.Commit.Files))
	for _, fc := range e.Commit.Files {
		set[fc.Path] = true
	}
	return set
}

func patternIDs(e models.CommitExtraction) map[string]bool {
	set := make(map[string]bool, len(e.PatternsAffected))
	for _, p := range e.PatternsAffected {
		set[p.PatternID] = true
	}
	return set
}

func keywords(e models.CommitExtraction) map[string]bool {
	set := make(map[string]bool)
	for _, s := range e.MessageSignals {
		if s.Kind == "keyword" {
			set[s.Value] = true
		}
	}
	return set
}
