package patterns

import (
	"github.com/archmine/archmine-go/internal/models"
)

// Tracker reports code-pattern usage changes for a commit. The pipeline
// treats it as optional: when tracking is disabled the NopTracker stands
// in, so extraction logic never null-checks.
type Tracker interface {
	PatternsIn(commit models.Commit) []models.PatternDelta
}

// NopTracker is the default Tracker used when pattern tracking is disabled
type NopTracker struct{}

// NewNopTracker returns a Tracker that always reports no pattern changes
func NewNopTracker() *NopTracker {
	return &NopTracker{}
}

// PatternsIn always returns nil
func (NopTracker) PatternsIn(models.Commit) []models.PatternDelta {
	return nil
}

// StaticTracker serves a fixed set of pattern deltas keyed by commit hash.
// Used by tests and by callers that precompute pattern usage externally.
type StaticTracker struct {
	byCommit map[string][]models.PatternDelta
}

// NewStaticTracker builds a tracker over a precomputed hash → deltas map
func NewStaticTracker(byCommit map[string][]models.PatternDelta) *StaticTracker {
	return &StaticTracker{byCommit: byCommit}
}

// PatternsIn returns the precomputed deltas for the commit, if any
func (t *StaticTracker) PatternsIn(commit models.Commit) []models.PatternDelta {
	return t.byCommit[commit.Hash]
}
