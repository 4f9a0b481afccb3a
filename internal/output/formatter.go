package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/archmine/archmine-go/internal/models"
	"gopkg.in/yaml.v3"
)

// WriteSummary renders a human-readable report of one mining run
func WriteSummary(w io.Writer, result *models.MiningResult) {
	summary := result.Summary

	fmt.Fprintf(w, "Mined %d decisions from %d significant commits in %s\n",
		summary.TotalDecisions, summary.SignificantCommits, summary.MiningDuration.Round(time.Millisecond))

	if len(result.Warnings) > 0 {
		fmt.Fprintln(w)
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "warning: %s\n", warning)
		}
	}
	if len(result.Errors) > 0 {
		fmt.Fprintln(w)
		for _, e := range result.Errors {
			fmt.Fprintf(w, "error [%s]: %s\n", e.Type, e.Message)
		}
	}

	if summary.TotalDecisions == 0 {
		return
	}

	fmt.Fprintln(w)
	for _, decision := range result.Decisions {
		fmt.Fprintf(w, "%-14s %-8s %-24s %s\n",
			decision.ID,
			decision.Confidence,
			decision.Category,
			decision.Title,
		)
	}

	if len(summary.TopDependencies) > 0 {
		fmt.Fprintln(w)
		fmt.Fprint(w, "Top dependencies: ")
		names := make([]string, 0, len(summary.TopDependencies))
		for _, nc := range summary.TopDependencies {
			names = append(names, fmt.Sprintf("%s (%d)", nc.Name, nc.Count))
		}
		fmt.Fprintln(w, strings.Join(names, ", "))
	}
}

// WriteList renders stored decisions as a table
func WriteList(w io.Writer, decisions []models.Decision) {
	if len(decisions) == 0 {
		fmt.Fprintln(w, "no decisions stored")
		return
	}

	fmt.Fprintf(w, "%-14s %-11s %-8s %-24s %s\n", "ID", "STATUS", "CONF", "CATEGORY", "TITLE")
	for _, d := range decisions {
		fmt.Fprintf(w, "%-14s %-11s %-8s %-24s %s\n", d.ID, d.Status, d.Confidence, d.Category, d.Title)
	}
}

// adrFrontMatter is the YAML header of a rendered ADR document
type adrFrontMatter struct {
	ID         string   `yaml:"id"`
	Status     string   `yaml:"status"`
	Category   string   `yaml:"category"`
	Confidence string   `yaml:"confidence"`
	Date       string   `yaml:"date"`
	Tags       []string `yaml:"tags"`
}

// WriteADR renders one decision as a markdown ADR document with YAML
// front matter.
func WriteADR(w io.Writer, decision *models.Decision) error {
	front := adrFrontMatter{
		ID:         decision.ID,
		Status:     string(decision.Status),
		Category:   string(decision.Category),
		Confidence: string(decision.Confidence),
		Date:       decision.DateRange.Start.Format("2006-01-02"),
		Tags:       decision.Tags,
	}

	header, err := yaml.Marshal(front)
	if err != nil {
		return fmt.Errorf("marshaling ADR front matter: %w", err)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprint(w, string(header))
	fmt.Fprintln(w, "---")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "# %s\n\n", decision.Title)

	fmt.Fprintln(w, "## Context")
	fmt.Fprintln(w)
	fmt.Fprintln(w, decision.ADR.Context)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Decision")
	fmt.Fprintln(w)
	fmt.Fprintln(w, decision.ADR.Decision)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Consequences")
	fmt.Fprintln(w)
	for _, c := range decision.ADR.Consequences {
		fmt.Fprintf(w, "- %s\n", c)
	}
	fmt.Fprintln(w)

	if len(decision.ADR.Evidence) > 0 {
		fmt.Fprintln(w, "## Evidence")
		fmt.Fprintln(w)
		for _, e := range decision.ADR.Evidence {
			fmt.Fprintf(w, "- %s: %s (%s)\n", e.Kind, e.Description, shortSource(e.Source))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Mined from %d commits spanning %s.\n", len(decision.Cluster.Commits), decision.Duration)
	return nil
}

// shortSource trims full commit hashes down to a readable prefix
func shortSource(source string) string {
	if len(source) == 40 && !strings.ContainsAny(source, "./ ") {
		return source[:8]
	}
	return source
}
