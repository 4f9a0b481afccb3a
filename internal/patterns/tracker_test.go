package patterns

import (
	"testing"

	"github.com/archmine/archmine-go/internal/models"
)

func TestNopTracker(t *testing.T) {
	tracker := NewNopTracker()
	if got := tracker.PatternsIn(models.Commit{Hash: "abc"}); got != nil {
		t.Errorf("NopTracker returned %+v, want nil", got)
	}
}

func TestStaticTracker(t *testing.T) {
	tracker := NewStaticTracker(map[string][]models.PatternDelta{
		"abc": {{PatternID: "repo", PatternName: "repository pattern", ChangeType: models.ChangeAdded}},
	})

	got := tracker.PatternsIn(models.Commit{Hash: "abc"})
	if len(got) != 1 || got[0].PatternID != "repo" {
		t.Errorf("PatternsIn(abc) = %+v", got)
	}
	if got := tracker.PatternsIn(models.Commit{Hash: "def"}); got != nil {
		t.Errorf("PatternsIn(def) = %+v, want nil", got)
	}
}
