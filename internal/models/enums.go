package models

// FileStatus describes how a file changed within a commit
type FileStatus string

const (
	FileAdded    FileStatus = "added"
	FileModified FileStatus = "modified"
	FileDeleted  FileStatus = "deleted"
	FileRenamed  FileStatus = "renamed"
)

// SignalType is the fixed vocabulary of architectural signals
type SignalType string

const (
	SignalNewAbstraction      SignalType = "new-abstraction"
	SignalLayerChange         SignalType = "layer-change"
	SignalAPISurfaceChange    SignalType = "api-surface-change"
	SignalDataModelChange     SignalType = "data-model-change"
	SignalConfigChange        SignalType = "config-change"
	SignalBuildChange         SignalType = "build-change"
	SignalTestStrategyChange  SignalType = "test-strategy-change"
	SignalErrorHandlingChange SignalType = "error-handling-change"
	SignalAuthChange          SignalType = "auth-change"
	SignalIntegrationChange   SignalType = "integration-change"
)

// LanguageMixed tags commits and clusters whose changes are spread too
// evenly across languages for a single one to dominate
const LanguageMixed = "mixed"

// Category classifies a mined decision
type Category string

const (
	CategoryTechnologyAdoption      Category = "technology-adoption"
	CategoryTechnologyRemoval       Category = "technology-removal"
	CategoryPatternIntroduction     Category = "pattern-introduction"
	CategoryPatternMigration        Category = "pattern-migration"
	CategoryArchitectureChange      Category = "architecture-change"
	CategoryAPIChange               Category = "api-change"
	CategorySecurityEnhancement     Category = "security-enhancement"
	CategoryPerformanceOptimization Category = "performance-optimization"
	CategoryRefactoring             Category = "refactoring"
	CategoryTestingStrategy         Category = "testing-strategy"
	CategoryInfrastructure          Category = "infrastructure"
	CategoryOther                   Category = "other"
)

// CategoryPriority is the deterministic tie-break order when two categories
// accumulate equal vote scores during synthesis. Earlier wins.
var CategoryPriority = []Category{
	CategoryArchitectureChange,
	CategoryTechnologyAdoption,
	CategoryTechnologyRemoval,
	CategoryAPIChange,
	CategoryPatternIntroduction,
	CategoryPatternMigration,
	CategorySecurityEnhancement,
	CategoryPerformanceOptimization,
	CategoryTestingStrategy,
	CategoryInfrastructure,
	CategoryRefactoring,
	CategoryOther,
}

// Verb returns the title verb phrase for a category
func (c Category) Verb() string {
	switch c {
	case CategoryTechnologyAdoption:
		return "Adopt"
	case CategoryTechnologyRemoval:
		return "Remove"
	case CategoryPatternIntroduction:
		return "Introduce"
	case CategoryPatternMigration:
		return "Migrate"
	case CategoryArchitectureChange:
		return "Restructure"
	case CategoryAPIChange:
		return "Update API"
	case CategorySecurityEnhancement:
		return "Enhance security"
	case CategoryPerformanceOptimization:
		return "Optimize"
	case CategoryRefactoring:
		return "Refactor"
	case CategoryTestingStrategy:
		return "Update testing"
	case CategoryInfrastructure:
		return "Update infrastructure"
	case CategoryOther:
		return "Change"
	default:
		return "Change"
	}
}

// Category maps an architectural signal type onto a decision category
func (s SignalType) Category() Category {
	switch s {
	case SignalNewAbstraction:
		return CategoryPatternIntroduction
	case SignalLayerChange:
		return CategoryArchitectureChange
	case SignalAPISurfaceChange:
		return CategoryAPIChange
	case SignalDataModelChange:
		return CategoryArchitectureChange
	case SignalConfigChange:
		return CategoryInfrastructure
	case SignalBuildChange:
		return CategoryInfrastructure
	case SignalTestStrategyChange:
		return CategoryTestingStrategy
	case SignalErrorHandlingChange:
		return CategoryPatternIntroduction
	case SignalAuthChange:
		return CategorySecurityEnhancement
	case SignalIntegrationChange:
		return CategoryTechnologyAdoption
	default:
		return CategoryOther
	}
}

// ConfidenceLevel buckets a numeric confidence score
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// LevelForScore converts a 0..1 confidence score into a coarse level
func LevelForScore(score float64) ConfidenceLevel {
	switch {
	case score >= 0.7:
		return ConfidenceHigh
	case score >= 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// DecisionStatus tracks a decision through curation.
// The mining pipeline only ever creates drafts; transitions happen in the
// persistence layer.
type DecisionStatus string

const (
	StatusDraft      DecisionStatus = "draft"
	StatusConfirmed  DecisionStatus = "confirmed"
	StatusSuperseded DecisionStatus = "superseded"
	StatusRejected   DecisionStatus = "rejected"
)

// ChangeType describes a structural (function-level) delta
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeRemoved  ChangeType = "removed"
	ChangeModified ChangeType = "modified"
)

// DependencyChangeType describes a manifest dependency delta
type DependencyChangeType string

const (
	DependencyAdded   DependencyChangeType = "added"
	DependencyRemoved DependencyChangeType = "removed"
	DependencyUpdated DependencyChangeType = "updated"
)

// MiningErrorType categorizes pipeline failures
type MiningErrorType string

const (
	// ErrorGit is fatal: without commits nothing downstream is possible
	ErrorGit MiningErrorType = "git-error"
	// ErrorExtraction is recoverable: the one commit is skipped
	ErrorExtraction MiningErrorType = "extraction-error"
	// ErrorSynthesis is recoverable: the one cluster is skipped
	ErrorSynthesis MiningErrorType = "synthesis-error"
)
