package deps

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/archmine/archmine-go/internal/models"
)

// manifestKind identifies which parser applies to a manifest file
type manifestKind int

const (
	manifestNone manifestKind = iota
	manifestGoMod
	manifestPackageJSON
	manifestRequirements
	manifestPomXML
	manifestCargoToml
	manifestCsproj
	manifestGemfile
)

// Analyzer diffs dependency manifests changed by a commit. It shells out
// to git for the diff text; no network access.
type Analyzer struct {
	repoPath string
}

// NewAnalyzer creates an Analyzer rooted at the given repository path
func NewAnalyzer(repoPath string) *Analyzer {
	return &Analyzer{repoPath: repoPath}
}

// AnalyzeChanges returns the dependency deltas introduced by a commit.
// Commits touching no manifest file return nil without invoking git.
func (a *Analyzer) AnalyzeChanges(ctx context.Context, commit models.Commit) ([]models.DependencyDelta, error) {
	var manifests []string
	for _, fc := range commit.Files {
		if kindOf(fc.Path) != manifestNone {
			manifests = append(manifests, fc.Path)
		}
	}
	if len(manifests) == 0 {
		return nil, nil
	}

	args := []string{"show", "--format=", "--unified=0", commit.Hash, "--"}
	args = append(args, manifests...)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = a.repoPath

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("git show failed for commit %s: %w (stderr: %s)", commit.ShortHash, err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("git show failed for commit %s: %w", commit.ShortHash, err)
	}

	return ParseDiff(string(output)), nil
}

// ParseDiff extracts dependency deltas from unified diff text covering one
// or more manifest files. A name that is both removed and added collapses
// into a single "updated" delta.
func ParseDiff(diff string) []models.DependencyDelta {
	type change struct {
		added    bool
		removed  bool
		manifest string
	}
	changes := make(map[string]*change)
	var order []string

	currentFile := ""
	currentKind := manifestNone

	record := func(name string, added bool) {
		if name == "" {
			return
		}
		key := currentFile + "|" + name
		c, ok := changes[key]
		if !ok {
			c = &change{manifest: currentFile}
			changes[key] = c
			order = append(order, key)
		}
		if added {
			c.added = true
		} else {
			c.removed = true
		}
	}

	for _, line := range strings.Split(diff, "\n") {
		// Each file starts a fresh section; nothing carries across
		if strings.HasPrefix(line, "diff --git ") {
			currentFile = ""
			currentKind = manifestNone
			continue
		}
		// The old path covers deleted files (+++ /dev/null never fires)
		if strings.HasPrefix(line, "--- a/") {
			currentFile = strings.TrimPrefix(line, "--- a/")
			currentKind = kindOf(currentFile)
			continue
		}
		// The new path wins when both exist (modifies and renames)
		if strings.HasPrefix(line, "+++ b/") {
			currentFile = strings.TrimPrefix(line, "+++ b/")
			currentKind = kindOf(currentFile)
			continue
		}
		if currentKind == manifestNone || len(line) < 2 {
			continue
		}
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}

		switch line[0] {
		case '+':
			record(dependencyName(currentKind, line[1:]), true)
		case '-':
			record(dependencyName(currentKind, line[1:]), false)
		}
	}

	var deltas []models.DependencyDelta
	for _, key := range order {
		c := changes[key]
		name := key[strings.Index(key, "|")+1:]

		var ct models.DependencyChangeType
		switch {
		case c.added && c.removed:
			ct = models.DependencyUpdated
		case c.added:
			ct = models.DependencyAdded
		default:
			ct = models.DependencyRemoved
		}

		deltas = append(deltas, models.DependencyDelta{
			Name:       name,
			ChangeType: ct,
			Manifest:   c.manifest,
		})
	}

	sort.SliceStable(deltas, func(i, j int) bool {
		if deltas[i].Manifest != deltas[j].Manifest {
			return deltas[i].Manifest < deltas[j].Manifest
		}
		return deltas[i].Name < deltas[j].Name
	})
	return deltas
}

func kindOf(path string) manifestKind {
	base := strings.ToLower(filepath.Base(path))
	switch base {
	case "go.mod":
		return manifestGoMod
	case "package.json":
		return manifestPackageJSON
	case "requirements.txt", "requirements-dev.txt":
		return manifestRequirements
	case "pom.xml":
		return manifestPomXML
	case "cargo.toml":
		return manifestCargoToml
	case "gemfile":
		return manifestGemfile
	}
	if strings.HasSuffix(base, ".csproj") {
		return manifestCsproj
	}
	return manifestNone
}

var (
	goModLine       = regexp.MustCompile(`^\s*([\w.\-/]+\.[\w.\-/]+)\s+v[\w.\-+]+`)
	packageJSONLine = regexp.MustCompile(`^\s*"(@?[\w.\-/]+)"\s*:\s*"[\^~]?\d`)
	requirementLine = regexp.MustCompile(`^\s*([A-Za-z0-9][\w.\-]*)\s*(?:[=<>~!]|$|\s)`)
	artifactIDLine  = regexp.MustCompile(`<artifactId>([\w.\-]+)</artifactId>`)
	cargoLine       = regexp.MustCompile(`^\s*([\w\-]+)\s*=\s*["{]`)
	packageRefLine  = regexp.MustCompile(`<PackageReference\s+Include="([\w.\-]+)"`)
	gemLine         = regexp.MustCompile(`^\s*gem\s+['"]([\w\-]+)['"]`)
)

// dependencyName extracts the dependency named on one manifest line, or ""
// when the line is not a dependency declaration.
func dependencyName(kind manifestKind, line string) string {
	switch kind {
	case manifestGoMod:
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "module ") || strings.HasPrefix(trimmed, "go ") || strings.Contains(line, "// indirect") {
			return ""
		}
		trimmed = strings.TrimPrefix(trimmed, "require ")
		if m := goModLine.FindStringSubmatch(trimmed); m != nil {
			return m[1]
		}
	case manifestPackageJSON:
		if m := packageJSONLine.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	case manifestRequirements:
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") {
			return ""
		}
		if m := requirementLine.FindStringSubmatch(trimmed); m != nil {
			return m[1]
		}
	case manifestPomXML:
		if m := artifactIDLine.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	case manifestCargoToml:
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "name") || strings.HasPrefix(trimmed, "version") || strings.HasPrefix(trimmed, "edition") {
			return ""
		}
		if m := cargoLine.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	case manifestCsproj:
		if m := packageRefLine.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	case manifestGemfile:
		if m := gemLine.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}
