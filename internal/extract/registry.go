package extract

import (
	"context"

	"github.com/archmine/archmine-go/internal/git"
	"github.com/archmine/archmine-go/internal/models"
)

// PrimaryLanguageMixed tags commits whose changed files are spread too
// evenly across languages for any single extractor to own them.
const PrimaryLanguageMixed = models.LanguageMixed

// A language must hold at least this share of a multi-language commit's
// analyzable files to count as primary. Heuristic; may need retuning per
// codebase.
const primaryLanguageShare = 0.7

// Registry selects the extractor for a commit by the dominant language of
// its changed files.
type Registry struct {
	extractors []Extractor
	fallback   Extractor
}

// NewRegistry builds a registry over the given extractors. The fallback
// handles mixed commits and languages no extractor owns.
func NewRegistry(fallback Extractor, extractors ...Extractor) *Registry {
	return &Registry{extractors: extractors, fallback: fallback}
}

// DefaultRegistry wires the full extractor set with the Go extractor as
// the mixed-commit fallback.
func DefaultRegistry(collab Collaborators) *Registry {
	goExtractor := NewGoExtractor(collab)
	return NewRegistry(
		goExtractor,
		goExtractor,
		NewPythonExtractor(collab),
		NewJavaScriptExtractor(collab),
		NewJavaExtractor(collab),
		NewCSharpExtractor(collab),
	)
}

// PrimaryLanguage determines the dominant language of a commit's changed
// files, ignoring config, docs, and unclassified files. A language wins
// only with a strict plurality that also covers at least 70% of the
// analyzable files; anything else is "mixed".
func (r *Registry) PrimaryLanguage(commit models.Commit) string {
	counts := make(map[string]int)
	total := 0
	for _, fc := range commit.Files {
		if !git.IsAnalyzableLanguage(fc.Language) {
			continue
		}
		counts[fc.Language]++
		total++
	}

	if total == 0 {
		return git.LanguageOther
	}
	if len(counts) == 1 {
		for lang := range counts {
			return lang
		}
	}

	best, bestCount, tied := "", 0, false
	for lang, count := range counts {
		switch {
		case count > bestCount:
			best, bestCount, tied = lang, count, false
		case count == bestCount:
			tied = true
		}
	}

	if tied || float64(bestCount) < primaryLanguageShare*float64(total) {
		return PrimaryLanguageMixed
	}
	return best
}

// ExtractorFor returns the extractor owning the commit's primary language,
// or the fallback for mixed and unowned-language commits.
func (r *Registry) ExtractorFor(commit models.Commit) (Extractor, string) {
	primary := r.PrimaryLanguage(commit)
	if primary == PrimaryLanguageMixed || primary == git.LanguageOther {
		return r.fallback, primary
	}

	for _, e := range r.extractors {
		for _, lang := range e.Languages() {
			if lang == primary {
				return e, primary
			}
		}
	}
	return r.fallback, primary
}

// Extract runs the selected extractor and tags the extraction with the
// registry's primary-language verdict, including "mixed".
func (r *Registry) Extract(ctx context.Context, commit models.Commit) (models.CommitExtraction, error) {
	extractor, primary := r.ExtractorFor(commit)

	extraction, err := extractor.Extract(ctx, commit)
	if err != nil {
		return models.CommitExtraction{}, err
	}

	extraction.PrimaryLanguage = primary
	return extraction, nil
}
