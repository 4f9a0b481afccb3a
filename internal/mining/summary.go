package mining

import (
	"sort"
	"time"

	"github.com/archmine/archmine-go/internal/models"
)

const topListSize = 10

// buildSummary aggregates counts and top-N lists over a run's decisions.
// Derived data only; recomputed on every run.
func buildSummary(decisions []models.Decision, significantCommits int, elapsed time.Duration) models.Summary {
	summary := models.Summary{
		TotalDecisions:     len(decisions),
		ByStatus:           make(map[models.DecisionStatus]int),
		ByCategory:         make(map[models.Category]int),
		ByConfidence:       make(map[models.ConfidenceLevel]int),
		ByLanguage:         make(map[string]int),
		TopPatterns:        []models.NameCount{},
		TopDependencies:    []models.NameCount{},
		SignificantCommits: significantCommits,
		MiningDuration:     elapsed,
	}

	patternCounts := make(map[string]int)
	dependencyCounts := make(map[string]int)
	totalCommits := 0

	for _, d := range decisions {
		summary.ByStatus[d.Status]++
		summary.ByCategory[d.Category]++
		summary.ByConfidence[d.Confidence]++
		for _, lang := range d.Cluster.Languages {
			summary.ByLanguage[lang]++
		}
		for _, p := range d.PatternsChanged {
			patternCounts[p.PatternName]++
		}
		for _, dep := range d.DependenciesChanged {
			dependencyCounts[dep.Name]++
		}
		totalCommits += len(d.Cluster.Commits)
	}

	if len(decisions) > 0 {
		summary.AvgClusterSize = float64(totalCommits) / float64(len(decisions))
	}

	summary.TopPatterns = topN(patternCounts, topListSize)
	summary.TopDependencies = topN(dependencyCounts, topListSize)
	return summary
}

// topN returns the n highest-frequency entries, name-ordered within equal
// counts so output is stable across runs.
func topN(counts map[string]int, n int) []models.NameCount {
	entries := make([]models.NameCount, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, models.NameCount{Name: name, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
