package git

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/archmine/archmine-go/internal/models"
)

// Record and field separators used in the git log pretty format. Commit
// bodies can contain pipes and newlines, so plain text separators are not
// safe here.
const (
	recordSep = "\x1e"
	fieldSep  = "\x1f"
)

const logFormat = "--pretty=format:%x1e%H%x1f%h%x1f%an%x1f%ae%x1f%aI%x1f%s%x1f%b%x1f"

// Walker reads commit history from a local repository by shelling out to
// the git binary.
type Walker struct {
	repoPath string
}

// NewWalker creates a Walker rooted at the given repository path
func NewWalker(repoPath string) *Walker {
	return &Walker{repoPath: repoPath}
}

// Walk returns the commits selected by opts together with the date range
// they span. Commit order follows git log output; callers re-sort by date
// as needed.
func (w *Walker) Walk(ctx context.Context, opts models.MineOptions) ([]models.Commit, models.DateRange, error) {
	args := []string{"log", "--numstat", "--name-status", logFormat}

	if !opts.IncludeMerges {
		args = append(args, "--no-merges")
	}
	if opts.MaxCommits > 0 {
		args = append(args, fmt.Sprintf("--max-count=%d", opts.MaxCommits))
	}
	if opts.Since != nil {
		args = append(args, "--since="+opts.Since.Format(time.RFC3339))
	}
	if opts.Until != nil {
		args = append(args, "--until="+opts.Until.Format(time.RFC3339))
	}

	args = append(args, "--", ".")
	for _, p := range opts.ExcludePaths {
		args = append(args, ":(exclude)"+p)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = w.repoPath

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, models.DateRange{}, fmt.Errorf("git log failed in %s: %w (stderr: %s)", w.repoPath, err, string(exitErr.Stderr))
		}
		return nil, models.DateRange{}, fmt.Errorf("git log failed in %s: %w", w.repoPath, err)
	}

	commits, err := ParseLog(string(output))
	if err != nil {
		return nil, models.DateRange{}, err
	}

	return commits, dateRangeOf(commits), nil
}

// ParseLog parses raw git log output produced with the Walker's format
// into commits. Exposed separately so parsing is testable without a
// repository.
func ParseLog(output string) ([]models.Commit, error) {
	var commits []models.Commit

	for _, record := range strings.Split(output, recordSep) {
		record = strings.TrimLeft(record, "\n")
		if record == "" {
			continue
		}

		fields := strings.SplitN(record, fieldSep, 8)
		if len(fields) < 7 {
			continue // malformed record, skip
		}

		timestamp, err := time.Parse(time.RFC3339, fields[4])
		if err != nil {
			return nil, fmt.Errorf("parsing commit %s date %q: %w", fields[0], fields[4], err)
		}

		commit := models.Commit{
			Hash:        fields[0],
			ShortHash:   fields[1],
			Author:      fields[2],
			AuthorEmail: fields[3],
			Timestamp:   timestamp,
			Subject:     fields[5],
			Body:        strings.TrimSpace(fields[6]),
		}

		if len(fields) == 8 {
			commit.Files = parseStatLines(fields[7])
		}

		commits = append(commits, commit)
	}

	return commits, nil
}

// parseStatLines merges --name-status and --numstat lines for one commit.
// The two blocks describe the same files; name-status supplies the change
// status, numstat the line counts.
func parseStatLines(block string) []models.FileChange {
	byPath := make(map[string]*models.FileChange)
	var order []string

	upsert := func(path string) *models.FileChange {
		if fc, ok := byPath[path]; ok {
			return fc
		}
		fc := &models.FileChange{Path: path, Status: models.FileModified}
		byPath[path] = fc
		order = append(order, path)
		return fc
	}

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}

		first := parts[0]

		// numstat line: additions and deletions, "-" for binary files
		if isNumstatField(first) && len(parts) >= 3 && isNumstatField(parts[1]) {
			if first == "-" || parts[1] == "-" {
				continue // binary file
			}
			path := resolveRenamePath(strings.Join(parts[2:], "\t"))
			fc := upsert(path)
			fc.Additions, _ = strconv.Atoi(first)
			fc.Deletions, _ = strconv.Atoi(parts[1])
			continue
		}

		// name-status line: status letter (R/C carry a similarity score)
		status, ok := parseStatusCode(first)
		if !ok {
			continue
		}
		path := parts[len(parts)-1] // for renames the new path is last
		fc := upsert(path)
		fc.Status = status
	}

	files := make([]models.FileChange, 0, len(order))
	for _, path := range order {
		fc := byPath[path]
		fc.Language = DetectLanguage(fc.Path)
		fc.IsTest = IsTestFile(fc.Path)
		files = append(files, *fc)
	}
	return files
}

func isNumstatField(s string) bool {
	if s == "-" {
		return true
	}
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func parseStatusCode(code string) (models.FileStatus, bool) {
	if code == "" {
		return "", false
	}
	switch code[0] {
	case 'A':
		return models.FileAdded, true
	case 'M':
		return models.FileModified, true
	case 'D':
		return models.FileDeleted, true
	case 'R', 'C':
		return models.FileRenamed, true
	}
	return "", false
}

// resolveRenamePath collapses git's rename notation ("old => new" or
// "dir/{old => new}/file") to the post-rename path.
func resolveRenamePath(path string) string {
	if !strings.Contains(path, " => ") {
		return path
	}
	if open := strings.Index(path, "{"); open >= 0 {
		if end := strings.Index(path, "}"); end > open {
			inner := path[open+1 : end]
			if arrow := strings.Index(inner, " => "); arrow >= 0 {
				resolved := path[:open] + inner[arrow+4:] + path[end+1:]
				return strings.ReplaceAll(resolved, "//", "/")
			}
		}
	}
	if arrow := strings.Index(path, " => "); arrow >= 0 {
		return path[arrow+4:]
	}
	return path
}

func dateRangeOf(commits []models.Commit) models.DateRange {
	var dr models.DateRange
	for _, c := range commits {
		if dr.Start.IsZero() || c.Timestamp.Before(dr.Start) {
			dr.Start = c.Timestamp
		}
		if dr.End.IsZero() || c.Timestamp.After(dr.End) {
			dr.End = c.Timestamp
		}
	}
	return dr
}
