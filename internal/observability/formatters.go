// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/harmya/grifter-or-pro/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	innerWidth     = boxWidth - 4
)

// Printer handles formatted output for the CLI
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
	fmt.Fprintf(p.out, "│ %-*s │\n", innerWidth, truncate(title, innerWidth))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", innerWidth, truncate(line, innerWidth))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintParsedResume outputs the projects extracted from a resume.
func (p *Printer) PrintParsedResume(resume *types.ParsedResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	username := resume.GitHubUsername
	if username == "" {
		username = "(none)"
	}
	sb.WriteString(fmt.Sprintf("GitHub:     %s\n", username))
	sb.WriteString(fmt.Sprintf("All links:  %s\n", yesNo(resume.FoundAllLinks)))
	sb.WriteString(fmt.Sprintf("Projects:   %d\n", len(resume.Projects)))

	for _, project := range resume.Projects {
		sb.WriteString(fmt.Sprintf("\n• %s\n", project.Name))
		url := project.URL
		if url == "" {
			url = "(no link)"
		}
		sb.WriteString(fmt.Sprintf("  %s\n", url))
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs a summary box followed by one box per project.
func (p *Printer) PrintReport(report *types.Report) {
	if report == nil {
		return
	}

	if report.Message != "" && len(report.Projects) == 0 {
		p.printBox("GRIFTER OR PRO", "⚠ "+report.Message)
		return
	}

	counts := report.Counts()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Projects analyzed: %d\n", len(report.Projects)))
	sb.WriteString(fmt.Sprintf("  ✓ verified:     %d\n", counts[types.StatusVerified]))
	sb.WriteString(fmt.Sprintf("  ? unverifiable: %d\n", counts[types.StatusUnverifiable]))
	sb.WriteString(fmt.Sprintf("  ✗ failed:       %d", counts[types.StatusFailed]))
	if avg, n := averageRating(report.Projects); n > 0 {
		sb.WriteString(fmt.Sprintf("\n\nAverage grift rating: %.1f/10 (%d rated)", avg, n))
	}
	if report.Message != "" {
		sb.WriteString("\n\n" + report.Message)
	}
	p.printBox("GRIFTER OR PRO", sb.String())

	for i := range report.Projects {
		p.PrintProjectAnalysis(&report.Projects[i])
	}
}

// PrintProjectAnalysis outputs one project's status, sampled files and critique.
func (p *Printer) PrintProjectAnalysis(entry *types.ProjectAnalysis) {
	if entry == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status: %s %s\n", statusIcon(entry.Status), entry.Status))
	if entry.Reason != "" {
		sb.WriteString(fmt.Sprintf("Reason: %s\n", entry.Reason))
	}
	if entry.Error != "" {
		sb.WriteString(fmt.Sprintf("Error:  %s\n", entry.Error))
	}

	text := strings.Join(entry.Analysis, "\n\n")
	if rating, ok := types.ParseGriftRating(text); ok {
		sb.WriteString(fmt.Sprintf("Grift rating: %s %g/10\n", ratingBar(rating), rating))
	}

	if len(entry.CodeSamples) > 0 {
		sb.WriteString("\nSampled files:\n")
		count := min(len(entry.CodeSamples), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", entry.CodeSamples[i].FilePath))
		}
		if len(entry.CodeSamples) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(entry.CodeSamples)-maxItemsToShow))
		}
	}

	if text != "" {
		sb.WriteString("\n")
		sb.WriteString(wrap(text, innerWidth))
	}

	p.printBox(strings.ToUpper(entry.Name), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProgress writes a one-line progress update.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintProgress(done, total int, entry types.ProjectAnalysis) {
	fmt.Fprintf(p.out, "[%d/%d] %s %s\n", done, total, statusIcon(entry.Status), entry.Name)
}

func statusIcon(status types.Status) string {
	switch status {
	case types.StatusVerified:
		return "✓"
	case types.StatusUnverifiable:
		return "?"
	default:
		return "✗"
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// ratingBar renders a 0-10 rating as a 10-cell bar.
func ratingBar(rating float64) string {
	filled := int(rating + 0.5)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", 10-filled) + "]"
}

func averageRating(projects []types.ProjectAnalysis) (float64, int) {
	var sum float64
	n := 0
	for _, p := range projects {
		if rating, ok := types.ParseGriftRating(strings.Join(p.Analysis, "\n")); ok {
			sum += rating
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// wrap word-wraps text to width, keeping existing line breaks.
func wrap(text string, width int) string {
	var sb strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteString("\n")
		}
		col := 0
		for j, word := range strings.Fields(line) {
			n := len([]rune(word))
			if j > 0 && col+1+n > width {
				sb.WriteString("\n")
				col = 0
			} else if j > 0 {
				sb.WriteString(" ")
				col++
			}
			sb.WriteString(word)
			col += n
		}
	}
	return sb.String()
}
