// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/muzamilsyed/aynstyn/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAssessment outputs a human-readable summary of an assembled result.
func (p *Printer) PrintAssessment(result *types.AssessmentResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Subject:   %s\n", result.Subject))
	sb.WriteString(fmt.Sprintf("Language:  %s\n", result.Language))
	sb.WriteString(fmt.Sprintf("Score:     %d/100\n", result.Score))
	sb.WriteString("\n")

	if len(result.CoveredTopics) > 0 {
		sb.WriteString("Covered:\n")
		count := min(len(result.CoveredTopics), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.CoveredTopics[i].Name))
		}
		if len(result.CoveredTopics) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.CoveredTopics)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(result.MissingTopics) > 0 {
		sb.WriteString("Missing:\n")
		count := min(len(result.MissingTopics), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.MissingTopics[i].Name))
		}
		if len(result.MissingTopics) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MissingTopics)-maxItemsToShow))
		}
	}

	p.printBox("ASSESSMENT RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCoverage outputs the per-topic coverage percentages.
func (p *Printer) PrintCoverage(coverage []types.TopicCoverage) {
	if len(coverage) == 0 {
		return
	}

	var sb strings.Builder
	for _, entry := range coverage {
		name := entry.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		sb.WriteString(fmt.Sprintf("%-32s %3d%%\n", name, entry.Percentage))
	}

	p.printBox("TOPIC COVERAGE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTimeline outputs a six-event timeline.
func (p *Printer) PrintTimeline(events []types.TimelineEvent) {
	if len(events) == 0 {
		return
	}

	var sb strings.Builder
	for i, event := range events {
		sb.WriteString(fmt.Sprintf("%s — %s\n", event.Year, event.Title))
		if i < len(events)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("TIMELINE", strings.TrimSuffix(sb.String(), "\n"))
}
