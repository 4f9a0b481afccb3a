package mining

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/archmine/archmine-go/internal/cluster"
	"github.com/archmine/archmine-go/internal/models"
	"github.com/archmine/archmine-go/internal/synthesize"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// HistoryProvider supplies the raw commit log for a mining run
type HistoryProvider interface {
	Walk(ctx context.Context, opts models.MineOptions) ([]models.Commit, models.DateRange, error)
}

// CommitExtractor produces a per-commit extraction; satisfied by the
// extractor registry.
type CommitExtractor interface {
	Extract(ctx context.Context, commit models.Commit) (models.CommitExtraction, error)
}

// Miner drives the end-to-end decision-mining pipeline: extract, filter,
// cluster, synthesize, summarize.
type Miner struct {
	history   HistoryProvider
	extractor CommitExtractor
	logger    *logrus.Logger
}

// NewMiner creates a Miner over the given collaborators
func NewMiner(history HistoryProvider, extractor CommitExtractor, logger *logrus.Logger) *Miner {
	if logger == nil {
		logger = logrus.New()
	}
	return &Miner{
		history:   history,
		extractor: extractor,
		logger:    logger,
	}
}

// Mine runs one mining pass. It never returns a Go error: fatal failures
// short-circuit into the result's errors list, recoverable failures are
// collected alongside whatever decisions were produced. Callers must
// check result.Errors even on success.
func (m *Miner) Mine(ctx context.Context, opts models.MineOptions) *models.MiningResult {
	start := time.Now()
	opts = withDefaults(opts)

	result := &models.MiningResult{
		RunID:            uuid.NewString(),
		Decisions:        []models.Decision{},
		RejectedClusters: []models.CommitCluster{},
		Errors:           []models.MiningError{},
		Warnings:         []string{},
	}

	m.logger.WithFields(logrus.Fields{
		"repo":             opts.RepoPath,
		"min_confidence":   opts.MinConfidence,
		"min_cluster_size": opts.MinClusterSize,
	}).Info("Starting decision mining")

	// Phase 1: fetch history. A failure here is fatal: nothing downstream
	// is possible without commits.
	commits, _, err := m.history.Walk(ctx, opts)
	if err != nil {
		m.logger.WithError(err).Error("History fetch failed")
		result.Errors = append(result.Errors, models.MiningError{
			Type:    models.ErrorGit,
			Message: err.Error(),
		})
		result.Summary = buildSummary(nil, 0, time.Since(start))
		return result
	}

	// Phase 2: empty history is a warning, not an error
	if len(commits) == 0 {
		m.logger.Warn("No commits found in the requested range")
		result.Warnings = append(result.Warnings, "no commits found in the requested range")
		result.Summary = buildSummary(nil, 0, time.Since(start))
		return result
	}

	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Timestamp.Before(commits[j].Timestamp)
	})

	// Phase 3: per-commit extraction, fanned out across workers. Each
	// commit is independent; failures skip that commit only.
	extractions := m.extractAll(ctx, commits, result)

	if err := ctx.Err(); err != nil {
		result.Errors = append(result.Errors, models.MiningError{
			Type:    models.ErrorGit,
			Message: "mining canceled: " + err.Error(),
		})
		result.Summary = buildSummary(nil, 0, time.Since(start))
		return result
	}

	// Phase 4: keep only significant extractions
	var significant []models.CommitExtraction
	for _, e := range extractions {
		if e.Significance >= opts.MinConfidence {
			significant = append(significant, e)
		}
	}
	m.logger.WithFields(logrus.Fields{
		"total":       len(extractions),
		"significant": len(significant),
	}).Info("Extraction complete")

	if len(significant) == 0 {
		result.Warnings = append(result.Warnings, "no commits met the significance threshold")
		result.Summary = buildSummary(result.Decisions, 0, time.Since(start))
		return result
	}

	// Phase 5: greedy clustering. Sequential on purpose: each extension
	// decision depends on the visited set built so far.
	clusterer := cluster.NewClusterer()
	clusterer.MinSize = opts.MinClusterSize
	accepted, rejected := clusterer.Cluster(significant)

	for _, r := range rejected {
		result.RejectedClusters = append(result.RejectedClusters, r.Cluster)
	}
	m.logger.WithFields(logrus.Fields{
		"accepted": len(accepted),
		"rejected": len(rejected),
	}).Info("Clustering complete")

	// Phase 6: synthesize one decision per accepted cluster, fanned out.
	// Failures skip that cluster only; sub-threshold decisions are
	// silently dropped.
	result.Decisions = m.synthesizeAll(ctx, accepted, opts, result)

	sort.SliceStable(result.Decisions, func(i, j int) bool {
		a, b := result.Decisions[i], result.Decisions[j]
		if !a.DateRange.Start.Equal(b.DateRange.Start) {
			return a.DateRange.Start.Before(b.DateRange.Start)
		}
		return a.ID < b.ID
	})

	// Phase 7: summary
	result.Summary = buildSummary(result.Decisions, len(significant), time.Since(start))

	m.logger.WithFields(logrus.Fields{
		"decisions": len(result.Decisions),
		"errors":    len(result.Errors),
		"duration":  result.Summary.MiningDuration.String(),
	}).Info("Decision mining complete")

	return result
}

// extractAll fans per-commit extraction out across workers bounded by
// CPU count. Failed commits are recorded and skipped; successful results
// land in their input slot so output order stays deterministic.
func (m *Miner) extractAll(ctx context.Context, commits []models.Commit, result *models.MiningResult) []models.CommitExtraction {
	slots := make([]*models.CommitExtraction, len(commits))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, commit := range commits {
		i, commit := i, commit
		g.Go(func() error {
			extraction, err := m.extractor.Extract(gctx, commit)
			if err != nil {
				m.logger.WithError(err).WithField("commit", commit.ShortHash).Warn("Extraction failed, skipping commit")
				mu.Lock()
				result.Errors = append(result.Errors, models.MiningError{
					Type:    models.ErrorExtraction,
					Message: err.Error(),
					Commit:  commit.Hash,
				})
				mu.Unlock()
				return nil
			}
			slots[i] = &extraction
			return nil
		})
	}
	g.Wait() // workers never return errors; failures are data

	extractions := make([]models.CommitExtraction, 0, len(commits))
	for _, e := range slots {
		if e != nil {
			extractions = append(extractions, *e)
		}
	}

	// Accumulated errors must not depend on goroutine scheduling
	sortErrors(result.Errors)
	return extractions
}

// synthesizeAll fans per-cluster synthesis out across workers. Each
// cluster is independent of its siblings.
func (m *Miner) synthesizeAll(ctx context.Context, accepted []cluster.Result, opts models.MineOptions, result *models.MiningResult) []models.Decision {
	synthesizer := synthesize.NewSynthesizer(opts.MinConfidence)
	slots := make([]*models.Decision, len(accepted))

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, cr := range accepted {
		i, cr := i, cr
		g.Go(func() error {
			decision, err := synthesizer.Synthesize(cr.Cluster, cr.Members)
			if err != nil {
				m.logger.WithError(err).WithField("cluster", cr.Cluster.ID).Warn("Synthesis failed, skipping cluster")
				mu.Lock()
				result.Errors = append(result.Errors, models.MiningError{
					Type:    models.ErrorSynthesis,
					Message: err.Error(),
					Cluster: cr.Cluster.ID,
				})
				mu.Unlock()
				return nil
			}
			slots[i] = decision // nil when dropped below threshold
			return nil
		})
	}
	g.Wait()

	decisions := make([]models.Decision, 0, len(accepted))
	for _, d := range slots {
		if d != nil {
			decisions = append(decisions, *d)
		}
	}

	sortErrors(result.Errors)
	return decisions
}

func withDefaults(opts models.MineOptions) models.MineOptions {
	if opts.MinClusterSize <= 0 {
		opts.MinClusterSize = cluster.DefaultMinSize
	}
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = 0.5
	}
	return opts
}

func sortErrors(errs []models.MiningError) {
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Type != errs[j].Type {
			return errs[i].Type < errs[j].Type
		}
		if errs[i].Commit != errs[j].Commit {
			return errs[i].Commit < errs[j].Commit
		}
		return errs[i].Cluster < errs[j].Cluster
	})
}
