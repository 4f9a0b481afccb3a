package models

import (
	"time"
)

// Commit represents one git commit as read from history.
// Read-only to the mining pipeline.
type Commit struct {
	Hash        string       `json:"hash"`
	ShortHash   string       `json:"short_hash"`
	Author      string       `json:"author"`
	AuthorEmail string       `json:"author_email"`
	Timestamp   time.Time    `json:"timestamp"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body,omitempty"`
	Files       []FileChange `json:"files"`
}

// FileChange represents one changed file within a commit
type FileChange struct {
	Path      string     `json:"path"`
	Status    FileStatus `json:"status"`
	Additions int        `json:"additions"`
	Deletions int        `json:"deletions"`
	Language  string     `json:"language"`
	IsTest    bool       `json:"is_test"`
}

// MessageSignal is a hint extracted from a commit subject/body
type MessageSignal struct {
	Kind         string   `json:"kind"`
	Value        string   `json:"value"`
	Confidence   float64  `json:"confidence"`
	CategoryHint Category `json:"category_hint,omitempty"`
}

// ArchitecturalSignal is a typed, confidence-weighted hint that a file
// change reflects a structural change rather than a content edit
type ArchitecturalSignal struct {
	Type        SignalType `json:"type"`
	Description string     `json:"description"`
	Files       []string   `json:"files"`
	Confidence  float64    `json:"confidence"`
}

// StructuralDelta is a coarse function-level approximation of code change
type StructuralDelta struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	File             string     `json:"file"`
	ChangeType       ChangeType `json:"change_type"`
	IsEntryPoint     bool       `json:"is_entry_point"`
	SignatureChanged bool       `json:"signature_changed"`
}

// PatternDelta describes changed code-pattern usage
type PatternDelta struct {
	PatternID   string     `json:"pattern_id"`
	PatternName string     `json:"pattern_name"`
	ChangeType  ChangeType `json:"change_type"`
	Files       []string   `json:"files"`
}

// DependencyDelta describes a changed manifest dependency
type DependencyDelta struct {
	Name       string               `json:"name"`
	ChangeType DependencyChangeType `json:"change_type"`
	Manifest   string               `json:"manifest"`
}

// CommitExtraction is the per-commit pipeline output.
// Created once during the extraction phase, never mutated afterward.
type CommitExtraction struct {
	Commit               Commit                `json:"commit"`
	PrimaryLanguage      string                `json:"primary_language"`
	LanguagesAffected    []string              `json:"languages_affected"`
	PatternsAffected     []PatternDelta        `json:"patterns_affected"`
	FunctionsChanged     []StructuralDelta     `json:"functions_changed"`
	DependencyChanges    []DependencyDelta     `json:"dependency_changes"`
	MessageSignals       []MessageSignal       `json:"message_signals"`
	ArchitecturalSignals []ArchitecturalSignal `json:"architectural_signals"`
	Significance         float64               `json:"significance"`
	ExtractedAt          time.Time             `json:"extracted_at"`
}

// DateRange spans the commits of a cluster or a whole mining run
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CommitCluster groups temporally and semantically related commits.
// Built once during the clustering phase; immutable afterward.
type CommitCluster struct {
	ID                string            `json:"id"`
	Commits           []Commit          `json:"commits"`
	CommitHashes      map[string]bool   `json:"commit_hashes"`
	ClusterReasons    []string          `json:"cluster_reasons"`
	DateRange         DateRange         `json:"date_range"`
	Duration          string            `json:"duration"`
	FilesAffected     []string          `json:"files_affected"`
	Languages         []string          `json:"languages"`
	PrimaryLanguage   string            `json:"primary_language"`
	TotalLinesChanged int               `json:"total_lines_changed"`
	Authors           []string          `json:"authors"`
	PatternsAffected  []PatternDelta    `json:"patterns_affected"`
	DependencyChanges []DependencyDelta `json:"dependency_changes"`
}

// Evidence backs a mined decision with a concrete observation
type Evidence struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Source      string  `json:"source"`
	Confidence  float64 `json:"confidence"`
}

// ADR is the narrative attached to a mined decision
type ADR struct {
	Context      string     `json:"context"`
	Decision     string     `json:"decision"`
	Consequences []string   `json:"consequences"`
	References   []string   `json:"references,omitempty"`
	Evidence     []Evidence `json:"evidence"`
}

// Decision is the terminal mining artifact
type Decision struct {
	ID                  string            `json:"id"`
	Title               string            `json:"title"`
	Status              DecisionStatus    `json:"status"`
	Category            Category          `json:"category"`
	Confidence          ConfidenceLevel   `json:"confidence"`
	ConfidenceScore     float64           `json:"confidence_score"`
	DateRange           DateRange         `json:"date_range"`
	Duration            string            `json:"duration"`
	Cluster             CommitCluster     `json:"cluster"`
	PatternsChanged     []PatternDelta    `json:"patterns_changed,omitempty"`
	DependenciesChanged []DependencyDelta `json:"dependencies_changed,omitempty"`
	ADR                 ADR               `json:"adr"`
	Tags                []string          `json:"tags"`
	MinedAt             time.Time         `json:"mined_at"`
	LastUpdated         time.Time         `json:"last_updated"`
}

// MiningError records a recoverable or fatal pipeline failure
type MiningError struct {
	Type    MiningErrorType `json:"type"`
	Message string          `json:"message"`
	Commit  string          `json:"commit,omitempty"`
	Cluster string          `json:"cluster,omitempty"`
}

// NameCount is a frequency entry in the mining summary
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary aggregates one mining run. Derived data, recomputed each run.
type Summary struct {
	TotalDecisions     int                     `json:"total_decisions"`
	ByStatus           map[DecisionStatus]int  `json:"by_status"`
	ByCategory         map[Category]int        `json:"by_category"`
	ByConfidence       map[ConfidenceLevel]int `json:"by_confidence"`
	ByLanguage         map[string]int          `json:"by_language"`
	TopPatterns        []NameCount             `json:"top_patterns"`
	TopDependencies    []NameCount             `json:"top_dependencies"`
	AvgClusterSize     float64                 `json:"avg_cluster_size"`
	SignificantCommits int                     `json:"significant_commits"`
	MiningDuration     time.Duration           `json:"mining_duration"`
}

// MiningResult is the single output of one mining run
type MiningResult struct {
	RunID            string          `json:"run_id"`
	Decisions        []Decision      `json:"decisions"`
	Summary          Summary         `json:"summary"`
	RejectedClusters []CommitCluster `json:"rejected_clusters"`
	Errors           []MiningError   `json:"errors"`
	Warnings         []string        `json:"warnings"`
}

// MineOptions configures one mining run
type MineOptions struct {
	RepoPath       string     `json:"repo_path"`
	Since          *time.Time `json:"since,omitempty"`
	Until          *time.Time `json:"until,omitempty"`
	MaxCommits     int        `json:"max_commits,omitempty"`
	MinClusterSize int        `json:"min_cluster_size"`
	MinConfidence  float64    `json:"min_confidence"`
	IncludeMerges  bool       `json:"include_merges"`
	ExcludePaths   []string   `json:"exclude_paths,omitempty"`
}

// DefaultMineOptions returns the documented defaults for a mining run
func DefaultMineOptions(repoPath string) MineOptions {
	return MineOptions{
		RepoPath:       repoPath,
		MinClusterSize: 2,
		MinConfidence:  0.5,
	}
}
