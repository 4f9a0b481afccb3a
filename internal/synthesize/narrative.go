package synthesize

import (
	"fmt"
	"strings"

	"github.com/archmine/archmine-go/internal/models"
)

// buildContext states the date span, commit count, and files-affected
// count, then adds a category-specific clause.
func buildContext(category models.Category, cl models.CommitCluster) string {
	base := fmt.Sprintf("Between %s and %s, %d commits changed %d files.",
		cl.DateRange.Start.Format("2006-01-02"),
		cl.DateRange.End.Format("2006-01-02"),
		len(cl.Commits),
		len(cl.FilesAffected),
	)

	switch category {
	case models.CategoryTechnologyAdoption:
		if names := dependencyNames(cl.DependencyChanges, models.DependencyAdded); len(names) > 0 {
			return base + " The work introduced new dependencies: " + strings.Join(names, ", ") + "."
		}
		return base + " The work introduced new technology into the codebase."
	case models.CategoryTechnologyRemoval:
		if names := dependencyNames(cl.DependencyChanges, models.DependencyRemoved); len(names) > 0 {
			return base + " The work removed dependencies: " + strings.Join(names, ", ") + "."
		}
		return base + " The work removed technology from the codebase."
	case models.CategoryArchitectureChange:
		if len(cl.Languages) > 0 {
			return base + " The changes touched " + strings.Join(cl.Languages, ", ") + " code."
		}
		return base + " The changes reorganized the code structure."
	default:
		return base + " The commits form a sustained burst of related work."
	}
}

// buildStatement produces the decision sentence. Single-commit clusters
// keep the commit subject verbatim; larger clusters get a canned
// per-category sentence, falling back to the earliest subject for
// categories with no mapping.
func buildStatement(category models.Category, earliest models.Commit, cl models.CommitCluster) string {
	if len(cl.Commits) == 1 {
		return earliest.Subject
	}

	files := len(cl.FilesAffected)
	switch category {
	case models.CategoryArchitectureChange:
		return fmt.Sprintf("Restructure code architecture affecting %d files.", files)
	case models.CategoryTechnologyAdoption:
		if names := dependencyNames(cl.DependencyChanges, models.DependencyAdded); len(names) > 0 {
			return fmt.Sprintf("Adopt %s across %d files.", strings.Join(names, ", "), files)
		}
		return fmt.Sprintf("Adopt new technology across %d files.", files)
	case models.CategoryTechnologyRemoval:
		if names := dependencyNames(cl.DependencyChanges, models.DependencyRemoved); len(names) > 0 {
			return fmt.Sprintf("Remove %s from the codebase.", strings.Join(names, ", "))
		}
		return fmt.Sprintf("Remove technology used across %d files.", files)
	case models.CategoryAPIChange:
		return fmt.Sprintf("Update the public API surface across %d files.", files)
	case models.CategoryPatternIntroduction:
		return fmt.Sprintf("Introduce a new implementation pattern across %d files.", files)
	case models.CategorySecurityEnhancement:
		return fmt.Sprintf("Enhance security handling across %d files.", files)
	case models.CategoryTestingStrategy:
		return fmt.Sprintf("Update the testing strategy across %d files.", files)
	case models.CategoryInfrastructure:
		return fmt.Sprintf("Update build and infrastructure configuration across %d files.", files)
	default:
		return earliest.Subject
	}
}

// buildConsequences is a factual bullet list of what the cluster changed
func buildConsequences(cl models.CommitCluster) []string {
	consequences := []string{
		fmt.Sprintf("%d files modified", len(cl.FilesAffected)),
		fmt.Sprintf("%d lines changed", cl.TotalLinesChanged),
	}
	if n := len(cl.DependencyChanges); n > 0 {
		consequences = append(consequences, fmt.Sprintf("%d dependency changes", n))
	}
	if n := len(cl.PatternsAffected); n > 0 {
		consequences = append(consequences, fmt.Sprintf("%d pattern changes", n))
	}
	return consequences
}

func dependencyNames(deps []models.DependencyDelta, ct models.DependencyChangeType) []string {
	var names []string
	for _, d := range deps {
		if d.ChangeType == ct {
			names = append(names, d.Name)
		}
	}
	return names
}
