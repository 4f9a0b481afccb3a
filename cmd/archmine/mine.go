package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/archmine/archmine-go/internal/deps"
	"github.com/archmine/archmine-go/internal/extract"
	"github.com/archmine/archmine-go/internal/git"
	"github.com/archmine/archmine-go/internal/message"
	"github.com/archmine/archmine-go/internal/mining"
	"github.com/archmine/archmine-go/internal/models"
	"github.com/archmine/archmine-go/internal/output"
	"github.com/archmine/archmine-go/internal/patterns"
	"github.com/archmine/archmine-go/internal/store"
	"github.com/spf13/cobra"
)

var (
	mineSince          string
	mineUntil          string
	mineMaxCommits     int
	mineMinConfidence  float64
	mineMinClusterSize int
	mineIncludeMerges  bool
	mineExcludePaths   []string
	mineJSON           bool
	mineSave           bool
)

var mineCmd = &cobra.Command{
	Use:   "mine [path]",
	Short: "Mine architectural decisions from a repository's history",
	Long: `Mine walks the commit log of a git repository, extracts structural
and message signals from each commit, clusters related work, and
synthesizes one decision record per cluster.

Defaults to the current directory when no path is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMine,
}

func init() {
	mineCmd.Flags().StringVar(&mineSince, "since", "", "only mine commits after this date (YYYY-MM-DD)")
	mineCmd.Flags().StringVar(&mineUntil, "until", "", "only mine commits before this date (YYYY-MM-DD)")
	mineCmd.Flags().IntVar(&mineMaxCommits, "max-commits", 0, "limit the number of commits walked (0 = no limit)")
	mineCmd.Flags().Float64Var(&mineMinConfidence, "min-confidence", 0, "minimum decision confidence to keep (default from config)")
	mineCmd.Flags().IntVar(&mineMinClusterSize, "min-cluster-size", 0, "minimum commits per cluster (default from config)")
	mineCmd.Flags().BoolVar(&mineIncludeMerges, "include-merges", false, "include merge commits in the walk")
	mineCmd.Flags().StringSliceVar(&mineExcludePaths, "exclude", nil, "paths to exclude (repeatable)")
	mineCmd.Flags().BoolVar(&mineJSON, "json", false, "emit the full mining result as JSON")
	mineCmd.Flags().BoolVar(&mineSave, "save", false, "persist mined decisions to the decision store")
}

func runMine(cmd *cobra.Command, args []string) error {
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	opts, err := buildMineOptions(repoPath)
	if err != nil {
		return err
	}

	collab := extract.Collaborators{
		Parser:  message.NewParser(),
		Deps:    deps.NewAnalyzer(repoPath),
		Tracker: patterns.NewNopTracker(),
	}

	miner := mining.NewMiner(
		git.NewWalker(repoPath),
		extract.DefaultRegistry(collab),
		logger,
	)

	result := miner.Mine(cmd.Context(), opts)

	if mineSave {
		if err := saveResult(result); err != nil {
			return err
		}
	}

	if mineJSON || cfg.Output.Format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	output.WriteSummary(os.Stdout, result)

	for _, e := range result.Errors {
		if e.Type == models.ErrorGit {
			return fmt.Errorf("mining failed: %s", e.Message)
		}
	}
	return nil
}

func buildMineOptions(repoPath string) (models.MineOptions, error) {
	opts := models.DefaultMineOptions(repoPath)
	opts.MinConfidence = cfg.Mining.MinConfidence
	opts.MinClusterSize = cfg.Mining.MinClusterSize
	opts.MaxCommits = cfg.Mining.MaxCommits
	opts.IncludeMerges = cfg.Mining.IncludeMerges
	opts.ExcludePaths = cfg.Mining.ExcludePaths

	if mineMinConfidence > 0 {
		opts.MinConfidence = mineMinConfidence
	}
	if mineMinClusterSize > 0 {
		opts.MinClusterSize = mineMinClusterSize
	}
	if mineMaxCommits > 0 {
		opts.MaxCommits = mineMaxCommits
	}
	if mineIncludeMerges {
		opts.IncludeMerges = true
	}
	if len(mineExcludePaths) > 0 {
		opts.ExcludePaths = mineExcludePaths
	}

	if mineSince != "" {
		since, err := time.Parse("2006-01-02", mineSince)
		if err != nil {
			return opts, fmt.Errorf("invalid --since date %q: %w", mineSince, err)
		}
		opts.Since = &since
	}
	if mineUntil != "" {
		until, err := time.Parse("2006-01-02", mineUntil)
		if err != nil {
			return opts, fmt.Errorf("invalid --until date %q: %w", mineUntil, err)
		}
		opts.Until = &until
	}
	return opts, nil
}

func saveResult(result *models.MiningResult) error {
	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SaveResult(result); err != nil {
		return fmt.Errorf("saving decisions: %w", err)
	}
	fmt.Printf("Saved %d decisions to %s\n", len(result.Decisions), cfg.Store.Path)
	return nil
}
