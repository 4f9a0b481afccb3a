package extract

import (
	"context"
	"testing"

	"github.com/archmine/archmine-go/internal/git"
	"github.com/archmine/archmine-go/internal/models"
)

func commitWithLanguages(langs ...string) models.Commit {
	var files []models.FileChange
	for i, lang := range langs {
		files = append(files, models.FileChange{
			Path:     "file" + string(rune('a'+i)),
			Status:   models.FileModified,
			Language: lang,
		})
	}
	return models.Commit{Hash: "abc", ShortHash: "abc", Files: files}
}

func TestPrimaryLanguage(t *testing.T) {
	r := DefaultRegistry(quietCollab())

	tests := []struct {
		name  string
		langs []string
		want  string
	}{
		{"no analyzable files", []string{"config", "docs"}, git.LanguageOther},
		{"single language", []string{"go", "go"}, "go"},
		{"single language with noise", []string{"python", "config", "docs"}, "python"},
		{"dominant at 75 percent", []string{"go", "go", "go", "python"}, "go"},
		{"plurality below 70 percent", []string{"go", "go", "go", "python", "python"}, "mixed"},
		{"even split", []string{"go", "go", "python", "python"}, "mixed"},
		{"three way spread", []string{"go", "python", "java"}, "mixed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.PrimaryLanguage(commitWithLanguages(tt.langs...))
			if got != tt.want {
				t.Errorf("PrimaryLanguage(%v) = %q, want %q", tt.langs, got, tt.want)
			}
		})
	}
}

func TestExtractorForSelectsByLanguage(t *testing.T) {
	r := DefaultRegistry(quietCollab())

	e, primary := r.ExtractorFor(commitWithLanguages("python", "python"))
	if primary != "python" {
		t.Errorf("primary = %q, want python", primary)
	}
	if langs := e.Languages(); len(langs) == 0 || langs[0] != "python" {
		t.Errorf("selected extractor owns %v, want python", langs)
	}
}

func TestExtractorForMixedUsesFallback(t *testing.T) {
	r := DefaultRegistry(quietCollab())

	e, primary := r.ExtractorFor(commitWithLanguages("go", "python"))
	if primary != PrimaryLanguageMixed {
		t.Errorf("primary = %q, want mixed", primary)
	}
	if langs := e.Languages(); len(langs) == 0 || langs[0] != "go" {
		t.Errorf("fallback extractor owns %v, want go", langs)
	}
}

func TestExtractorForUnownedLanguageUsesFallback(t *testing.T) {
	r := DefaultRegistry(quietCollab())

	e, primary := r.ExtractorFor(commitWithLanguages("rust", "rust"))
	if primary != "rust" {
		t.Errorf("primary = %q, want rust", primary)
	}
	if langs := e.Languages(); len(langs) == 0 || langs[0] != "go" {
		t.Errorf("unowned language routed to %v, want the fallback", langs)
	}
}

func TestRegistryExtractTagsMixedCommits(t *testing.T) {
	r := DefaultRegistry(quietCollab())

	commit := models.Commit{
		Hash:      "abc",
		ShortHash: "abc",
		Files: []models.FileChange{
			{Path: "main.go", Status: models.FileModified, Language: "go"},
			{Path: "app.py", Status: models.FileModified, Language: "python"},
		},
	}

	extraction, err := r.Extract(context.Background(), commit)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if extraction.PrimaryLanguage != PrimaryLanguageMixed {
		t.Errorf("PrimaryLanguage = %q, want mixed", extraction.PrimaryLanguage)
	}
}
