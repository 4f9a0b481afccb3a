package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/archmine/archmine-go/internal/models"
)

type stubParser struct {
	signals []models.MessageSignal
}

func (s stubParser) ExtractSignals(subject, body string) []models.MessageSignal {
	return s.signals
}

type stubDeps struct {
	deltas []models.DependencyDelta
	err    error
}

func (s stubDeps) AnalyzeChanges(ctx context.Context, commit models.Commit) ([]models.DependencyDelta, error) {
	return s.deltas, s.err
}

func quietCollab() Collaborators {
	return Collaborators{Parser: stubParser{}, Deps: stubDeps{}}
}

func goFile(path string, status models.FileStatus, additions, deletions int) models.FileChange {
	return models.FileChange{
		Path:      path,
		Status:    status,
		Additions: additions,
		Deletions: deletions,
		Language:  "go",
	}
}

func TestExtractNoOwnedFiles(t *testing.T) {
	e := NewGoExtractor(Collaborators{
		Parser: stubParser{signals: []models.MessageSignal{
			{Kind: "keyword", Value: "refactor", Confidence: 0.75},
		}},
		Deps: stubDeps{},
	})

	commit := models.Commit{
		Hash:      "abc",
		ShortHash: "abc",
		Files: []models.FileChange{
			{Path: "src/app.py", Status: models.FileModified, Language: "python"},
		},
	}

	extraction, err := e.Extract(context.Background(), commit)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if extraction.Significance != 0.1 {
		t.Errorf("significance = %.2f, want floor 0.1", extraction.Significance)
	}
	if len(extraction.ArchitecturalSignals) != 0 {
		t.Errorf("got %d architectural signals, want 0", len(extraction.ArchitecturalSignals))
	}
	if len(extraction.LanguagesAffected) != 0 {
		t.Errorf("LanguagesAffected = %v, want empty on the floor path", extraction.LanguagesAffected)
	}
	if len(extraction.FunctionsChanged) != 0 || len(extraction.DependencyChanges) != 0 {
		t.Error("floor extraction carries structural or dependency data")
	}
	if len(extraction.MessageSignals) != 1 {
		t.Errorf("message signals lost on unowned commit: %+v", extraction.MessageSignals)
	}
}

func TestExtractJavaRepositoryFile(t *testing.T) {
	e := NewJavaExtractor(quietCollab())

	commit := models.Commit{
		Hash:      "def",
		ShortHash: "def",
		Files: []models.FileChange{
			{
				Path:      "src/main/java/com/acme/UserRepository.java",
				Status:    models.FileAdded,
				Additions: 120,
				Language:  "java",
			},
		},
	}

	extraction, err := e.Extract(context.Background(), commit)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if len(extraction.ArchitecturalSignals) != 1 {
		t.Fatalf("got %d signals, want exactly 1: %+v", len(extraction.ArchitecturalSignals), extraction.ArchitecturalSignals)
	}

	sig := extraction.ArchitecturalSignals[0]
	if sig.Type != models.SignalDataModelChange {
		t.Errorf("signal type = %q, want data-model-change", sig.Type)
	}
	for _, s := range extraction.ArchitecturalSignals {
		if s.Type == models.SignalNewAbstraction {
			t.Error("repository file wrongly raised new-abstraction")
		}
	}
}

func TestAdjustConfidence(t *testing.T) {
	tests := []struct {
		name string
		base float64
		fc   models.FileChange
		want float64
	}{
		{"plain modify", 0.6, goFile("a.go", models.FileModified, 5, 5), 0.6},
		{"added file boost", 0.6, goFile("a.go", models.FileAdded, 5, 5), 0.7},
		{"large change boost", 0.6, goFile("a.go", models.FileModified, 40, 20), 0.7},
		{"added and large", 0.6, goFile("a.go", models.FileAdded, 40, 20), 0.8},
		{"test file penalty", 0.6, models.FileChange{Path: "a_test.go", Status: models.FileModified, IsTest: true, Language: "go"}, 0.4},
		{"floor", 0.15, models.FileChange{Path: "a_test.go", IsTest: true, Language: "go"}, 0.1},
		{"ceiling", 0.95, goFile("a.go", models.FileAdded, 100, 0), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adjustConfidence(tt.base, tt.fc)
			if got < tt.want-0.001 || got > tt.want+0.001 {
				t.Errorf("adjustConfidence(%.2f, %+v) = %.2f, want %.2f", tt.base, tt.fc, got, tt.want)
			}
		})
	}
}

func TestMatchSignalsDeduplicates(t *testing.T) {
	e := NewGoExtractor(quietCollab()).(*baseExtractor)

	owned := []models.FileChange{
		goFile("internal/user/store.go", models.FileAdded, 80, 0),
		goFile("internal/user/storage.go", models.FileModified, 5, 2),
	}

	signals := e.matchSignals(owned)

	var storage *models.ArchitecturalSignal
	for i := range signals {
		if signals[i].Type == models.SignalDataModelChange {
			storage = &signals[i]
		}
	}
	if storage == nil {
		t.Fatalf("no data-model-change signal raised: %+v", signals)
	}
	if len(storage.Files) != 2 {
		t.Errorf("signal files = %v, want both store files", storage.Files)
	}
	// Added plus large: 0.65 + 0.1 + 0.1
	if storage.Confidence < 0.84 || storage.Confidence > 0.86 {
		t.Errorf("merged confidence = %.2f, want max of per-file values (0.85)", storage.Confidence)
	}
}

func TestGenericNewAbstractionOnlyOnAdd(t *testing.T) {
	e := NewGoExtractor(quietCollab()).(*baseExtractor)

	modified := e.matchSignals([]models.FileChange{
		goFile("internal/user/interfaces.go", models.FileModified, 20, 4),
	})
	for _, s := range modified {
		if s.Type == models.SignalNewAbstraction {
			t.Error("modified interface file raised new-abstraction")
		}
	}

	added := e.matchSignals([]models.FileChange{
		goFile("internal/user/interfaces.go", models.FileAdded, 20, 0),
	})
	found := false
	for _, s := range added {
		if s.Type == models.SignalNewAbstraction {
			found = true
		}
	}
	if !found {
		t.Error("added interface file did not raise new-abstraction")
	}
}

func TestStructuralDeltas(t *testing.T) {
	e := NewGoExtractor(quietCollab()).(*baseExtractor)

	owned := []models.FileChange{
		goFile("cmd/app/main.go", models.FileAdded, 50, 0),
		goFile("internal/user/service.go", models.FileDeleted, 0, 200),
		goFile("internal/user/repo.go", models.FileModified, 30, 12),
		goFile("internal/user/tiny.go", models.FileModified, 3, 2),
	}

	deltas := e.structuralDeltas(owned)
	if len(deltas) != 3 {
		t.Fatalf("got %d deltas, want 3 (small modify skipped): %+v", len(deltas), deltas)
	}

	if deltas[0].ChangeType != models.ChangeAdded || !deltas[0].IsEntryPoint {
		t.Errorf("cmd main delta = %+v, want added entry point", deltas[0])
	}
	if deltas[1].ChangeType != models.ChangeRemoved {
		t.Errorf("deleted delta = %+v", deltas[1])
	}
	if deltas[2].ChangeType != models.ChangeModified || !deltas[2].SignatureChanged {
		t.Errorf("modified delta = %+v, want signature change", deltas[2])
	}
	if deltas[0].ID != "cmd/app/main.go#added" {
		t.Errorf("delta ID = %q", deltas[0].ID)
	}
}

func TestExtractPropagatesDependencyError(t *testing.T) {
	e := NewGoExtractor(Collaborators{
		Parser: stubParser{},
		Deps:   stubDeps{err: errors.New("git show failed")},
	})

	commit := models.Commit{
		Hash:      "abc",
		ShortHash: "abc",
		Files:     []models.FileChange{goFile("internal/user/service.go", models.FileModified, 5, 5)},
	}

	if _, err := e.Extract(context.Background(), commit); err == nil {
		t.Fatal("Extract() swallowed the dependency analyzer error")
	}
}

func TestSignificanceScoring(t *testing.T) {
	base := models.CommitExtraction{
		Commit: models.Commit{Timestamp: time.Now()},
	}
	if got := significance(base); got != 0.1 {
		t.Errorf("empty extraction significance = %.2f, want 0.1", got)
	}

	full := models.CommitExtraction{
		MessageSignals: []models.MessageSignal{
			{Confidence: 0.5}, {Confidence: 0.9},
		},
		ArchitecturalSignals: []models.ArchitecturalSignal{
			{Confidence: 0.6}, {Confidence: 0.8},
		},
		FunctionsChanged: []models.StructuralDelta{
			{IsEntryPoint: true}, {IsEntryPoint: true}, {IsEntryPoint: false},
		},
		PatternsAffected: []models.PatternDelta{{PatternID: "p1"}},
		DependencyChanges: []models.DependencyDelta{
			{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"},
		},
	}

	// 0.1 + 0.3*0.9 + 0.3*0.8 + 2*0.05 + 1*0.05 + min(4*0.05, 0.15)
	want := 0.1 + 0.27 + 0.24 + 0.1 + 0.05 + 0.15
	got := significance(full)
	if got < want-0.001 || got > want+0.001 {
		t.Errorf("significance = %.3f, want %.3f", got, want)
	}
}

func TestSignificanceCapped(t *testing.T) {
	many := make([]models.StructuralDelta, 10)
	for i := range many {
		many[i].IsEntryPoint = true
	}

	ext := models.CommitExtraction{
		MessageSignals:       []models.MessageSignal{{Confidence: 1.0}},
		ArchitecturalSignals: []models.ArchitecturalSignal{{Confidence: 1.0}},
		FunctionsChanged:     many,
		PatternsAffected:     make([]models.PatternDelta, 10),
		DependencyChanges:    make([]models.DependencyDelta, 10),
	}

	if got := significance(ext); got != 1.0 {
		t.Errorf("significance = %.3f, want capped at 1.0", got)
	}
}
