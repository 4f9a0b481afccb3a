package cluster

import (
	"fmt"
	"sort"
	"time"

	"github.com/archmine/archmine-go/internal/models"
)

// Clustering constants. The window and similarity floor are heuristics
// tuned for typical team commit cadence.
const (
	DefaultWindow        = 14 * 24 * time.Hour
	DefaultMinSimilarity = 0.30
	DefaultMinSize       = 2
)

// Result pairs a built cluster with its member extractions so the
// synthesizer can reach per-commit signals without re-deriving them.
type Result struct {
	Cluster models.CommitCluster
	Members []models.CommitExtraction
}

// Clusterer groups significant extractions into temporally and
// semantically related clusters with a single greedy pass.
type Clusterer struct {
	Window        time.Duration
	MinSimilarity float64
	MinSize       int
}

// NewClusterer returns a Clusterer with the default window, similarity
// floor, and minimum size.
func NewClusterer() *Clusterer {
	return &Clusterer{
		Window:        DefaultWindow,
		MinSimilarity: DefaultMinSimilarity,
		MinSize:       DefaultMinSize,
	}
}

// Cluster partitions extractions into accepted and rejected clusters.
// Every input lands in exactly one cluster; clusters never share a
// commit. The pass is inherently sequential: each extension decision
// depends on the visited set built so far.
func (c *Clusterer) Cluster(extractions []models.CommitExtraction) (accepted, rejected []Result) {
	sorted := make([]models.CommitExtraction, len(extractions))
	copy(sorted, extractions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Commit.Timestamp.Before(sorted[j].Commit.Timestamp)
	})

	visited := make([]bool, len(sorted))

	for i := range sorted {
		if visited[i] {
			continue
		}

		seed := sorted[i]
		members := []models.CommitExtraction{seed}
		visited[i] = true

		for j := i + 1; j < len(sorted); j++ {
			if visited[j] {
				continue
			}
			candidate := sorted[j]

			// Window anchored at the seed: once a candidate falls outside,
			// every later one does too.
			if candidate.Commit.Timestamp.Sub(seed.Commit.Timestamp) > c.Window {
				break
			}

			if Similarity(seed, candidate) >= c.MinSimilarity {
				members = append(members, candidate)
				visited[j] = true
			}
		}

		result := Result{Cluster: c.build(members), Members: members}
		if len(members) >= c.MinSize {
			accepted = append(accepted, result)
		} else {
			rejected = append(rejected, result)
		}
	}

	return accepted, rejected
}

// build aggregates fixed cluster membership into a CommitCluster
func (c *Clusterer) build(members []models.CommitExtraction) models.CommitCluster {
	cluster := models.CommitCluster{
		ID:           "cluster-" + members[0].Commit.ShortHash,
		CommitHashes: make(map[string]bool, len(members)),
	}

	fileSeen := make(map[string]bool)
	langSeen := make(map[string]bool)
	authorSeen := make(map[string]bool)
	patternSeen := make(map[string]bool)
	depSeen := make(map[string]bool)
	primaryVotes := make(map[string]int)

	for _, m := range members {
		commit := m.Commit
		cluster.Commits = append(cluster.Commits, commit)
		cluster.CommitHashes[commit.Hash] = true

		if cluster.DateRange.Start.IsZero() || commit.Timestamp.Before(cluster.DateRange.Start) {
			cluster.DateRange.Start = commit.Timestamp
		}
		if commit.Timestamp.After(cluster.DateRange.End) {
			cluster.DateRange.End = commit.Timestamp
		}

		for _, fc := range commit.Files {
			if !fileSeen[fc.Path] {
				fileSeen[fc.Path] = true
				cluster.FilesAffected = append(cluster.FilesAffected, fc.Path)
			}
			cluster.TotalLinesChanged += fc.Additions + fc.Deletions
		}

		for _, lang := range m.LanguagesAffected {
			if !langSeen[lang] {
				langSeen[lang] = true
				cluster.Languages = append(cluster.Languages, lang)
			}
		}

		if !authorSeen[commit.Author] {
			authorSeen[commit.Author] = true
			cluster.Authors = append(cluster.Authors, commit.Author)
		}

		for _, p := range m.PatternsAffected {
			if !patternSeen[p.PatternID] {
				patternSeen[p.PatternID] = true
				cluster.PatternsAffected = append(cluster.PatternsAffected, p)
			}
		}

		for _, d := range m.DependencyChanges {
			if !depSeen[d.Name] {
				depSeen[d.Name] = true
				cluster.DependencyChanges = append(cluster.DependencyChanges, d)
			}
		}

		primaryVotes[m.PrimaryLanguage]++
	}

	cluster.PrimaryLanguage = dominantLanguage(primaryVotes)
	cluster.Duration = durationLabel(cluster.DateRange.End.Sub(cluster.DateRange.Start))

	cluster.ClusterReasons = append(cluster.ClusterReasons,
		fmt.Sprintf("%d commits within a %s span", len(members), cluster.Duration))
	if len(cluster.FilesAffected) < 3*len(cluster.Commits) {
		cluster.ClusterReasons = append(cluster.ClusterReasons,
			"commits repeatedly touch the same files")
	}

	return cluster
}

// dominantLanguage picks the most common primary language among members;
// ties resolve to mixed.
func dominantLanguage(votes map[string]int) string {
	best, bestCount, tied := "", 0, false
	for lang, count := range votes {
		switch {
		case count > bestCount:
			best, bestCount, tied = lang, count, false
		case count == bestCount:
			tied = true
		}
	}
	if tied {
		return models.LanguageMixed
	}
	return best
}

// durationLabel renders a cluster span as days, hours, or less than an
// hour.
func durationLabel(d time.Duration) string {
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%d days", int(d.Hours()/24))
	case d >= time.Hour:
		return fmt.Sprintf("%d hours", int(d.Hours()))
	default:
		return "less than an hour"
	}
}
