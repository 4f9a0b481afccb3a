package mining

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/archmine/archmine-go/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistory struct {
	commits []models.Commit
	err     error
}

func (f fakeHistory) Walk(ctx context.Context, opts models.MineOptions) ([]models.Commit, models.DateRange, error) {
	return f.commits, models.DateRange{}, f.err
}

// fakeExtractor assigns each commit a canned significance and fails on
// hashes listed in failOn.
type fakeExtractor struct {
	significance map[string]float64
	failOn       map[string]bool
}

func (f fakeExtractor) Extract(ctx context.Context, commit models.Commit) (models.CommitExtraction, error) {
	if f.failOn[commit.Hash] {
		return models.CommitExtraction{}, errors.New("extraction blew up")
	}
	return models.CommitExtraction{
		Commit:          commit,
		PrimaryLanguage: "go",
		Significance:    f.significance[commit.Hash],
	}, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func relatedCommits(n int, start time.Time) []models.Commit {
	commits := make([]models.Commit, n)
	for i := range commits {
		hash := string(rune('a' + i))
		commits[i] = models.Commit{
			Hash:        hash,
			ShortHash:   hash,
			Author:      "Alice",
			AuthorEmail: "alice@example.com",
			Subject:     "Restructure the user service",
			Timestamp:   start.Add(time.Duration(i) * 24 * time.Hour),
			Files: []models.FileChange{
				{Path: "internal/user/service.go", Status: models.FileModified, Language: "go", Additions: 40},
			},
		}
	}
	return commits
}

func TestMineGitErrorIsFatal(t *testing.T) {
	m := NewMiner(fakeHistory{err: errors.New("not a git repository")}, fakeExtractor{}, quietLogger())

	result := m.Mine(context.Background(), models.DefaultMineOptions("/tmp/nowhere"))

	require.Len(t, result.Errors, 1)
	assert.Equal(t, models.ErrorGit, result.Errors[0].Type)
	assert.Empty(t, result.Decisions)
	assert.NotEmpty(t, result.RunID)
	assert.NotNil(t, result.Warnings)
}

func TestMineEmptyHistoryWarns(t *testing.T) {
	m := NewMiner(fakeHistory{}, fakeExtractor{}, quietLogger())

	result := m.Mine(context.Background(), models.DefaultMineOptions("."))

	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no commits found")
	assert.Equal(t, 0, result.Summary.TotalDecisions)
}

func TestMineProducesDecisions(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	commits := relatedCommits(4, start)

	sig := make(map[string]float64)
	for _, c := range commits {
		sig[c.Hash] = 0.8
	}

	m := NewMiner(fakeHistory{commits: commits}, fakeExtractor{significance: sig}, quietLogger())

	opts := models.DefaultMineOptions(".")
	opts.MinConfidence = 0.3
	result := m.Mine(context.Background(), opts)

	assert.Empty(t, result.Errors)
	require.Len(t, result.Decisions, 1)

	decision := result.Decisions[0]
	assert.Equal(t, "DEC-A", decision.ID)
	assert.Equal(t, models.StatusDraft, decision.Status)
	assert.Len(t, decision.Cluster.Commits, 4)
	assert.Equal(t, 1, result.Summary.TotalDecisions)
	assert.Equal(t, 4, result.Summary.SignificantCommits)
	assert.InDelta(t, 4.0, result.Summary.AvgClusterSize, 0.001)
}

func TestMineExtractionFailureSkipsCommit(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	commits := relatedCommits(4, start)

	sig := make(map[string]float64)
	for _, c := range commits {
		sig[c.Hash] = 0.8
	}

	m := NewMiner(
		fakeHistory{commits: commits},
		fakeExtractor{significance: sig, failOn: map[string]bool{"b": true}},
		quietLogger(),
	)

	opts := models.DefaultMineOptions(".")
	opts.MinConfidence = 0.3
	result := m.Mine(context.Background(), opts)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, models.ErrorExtraction, result.Errors[0].Type)
	assert.Equal(t, "b", result.Errors[0].Commit)

	// The remaining three commits still form a decision
	require.Len(t, result.Decisions, 1)
	assert.Len(t, result.Decisions[0].Cluster.Commits, 3)
}

func TestMineInsignificantCommitsWarn(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	commits := relatedCommits(3, start)

	sig := map[string]float64{"a": 0.1, "b": 0.1, "c": 0.1}
	m := NewMiner(fakeHistory{commits: commits}, fakeExtractor{significance: sig}, quietLogger())

	result := m.Mine(context.Background(), models.DefaultMineOptions("."))

	assert.Empty(t, result.Decisions)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "significance threshold")
}

func TestMineIsDeterministic(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	// Two separate bursts far enough apart to form two clusters
	commits := relatedCommits(3, start)
	second := relatedCommits(3, start.Add(60*24*time.Hour))
	for i := range second {
		hash := string(rune('x' + i))
		second[i].Hash = hash
		second[i].ShortHash = hash
	}
	commits = append(commits, second...)

	sig := make(map[string]float64)
	for _, c := range commits {
		sig[c.Hash] = 0.8
	}

	m := NewMiner(fakeHistory{commits: commits}, fakeExtractor{significance: sig}, quietLogger())

	opts := models.DefaultMineOptions(".")
	opts.MinConfidence = 0.3

	first := m.Mine(context.Background(), opts)
	require.Len(t, first.Decisions, 2)

	for i := 0; i < 5; i++ {
		again := m.Mine(context.Background(), opts)
		require.Len(t, again.Decisions, 2)
		for j := range first.Decisions {
			assert.Equal(t, first.Decisions[j].ID, again.Decisions[j].ID)
			assert.Equal(t, first.Decisions[j].Category, again.Decisions[j].Category)
		}
	}
}

func TestMineCanceledContext(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	commits := relatedCommits(2, start)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMiner(fakeHistory{commits: commits}, fakeExtractor{significance: map[string]float64{"a": 0.8, "b": 0.8}}, quietLogger())
	result := m.Mine(ctx, models.DefaultMineOptions("."))

	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "canceled")
	assert.Empty(t, result.Decisions)
}

func TestWithDefaults(t *testing.T) {
	opts := withDefaults(models.MineOptions{RepoPath: "."})
	assert.Equal(t, 2, opts.MinClusterSize)
	assert.Equal(t, 0.5, opts.MinConfidence)

	custom := withDefaults(models.MineOptions{RepoPath: ".", MinClusterSize: 5, MinConfidence: 0.8})
	assert.Equal(t, 5, custom.MinClusterSize)
	assert.Equal(t, 0.8, custom.MinConfidence)
}

func TestBuildSummaryTopN(t *testing.T) {
	counts := map[string]int{"b": 3, "a": 3, "c": 1, "d": 7}

	top := topN(counts, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "d", top[0].Name)
	// Equal counts order by name
	assert.Equal(t, "a", top[1].Name)
	assert.Equal(t, "b", top[2].Name)
}
