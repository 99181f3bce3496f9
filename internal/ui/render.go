// Package ui renders engine result maps as styled, non-interactive terminal
// output.
package ui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dotforge/dotforge/internal/model"
)

var (
	successColor = lipgloss.Color("42")  // Green
	warningColor = lipgloss.Color("226") // Yellow
	errorColor   = lipgloss.Color("196") // Red
	mutedColor   = lipgloss.Color("245") // Gray
	accentColor  = lipgloss.Color("99")  // Purple

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	moduleStyle = lipgloss.NewStyle().
			Bold(true)

	okStyle     = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	changeStyle = lipgloss.NewStyle().PaddingLeft(4)
)

// Width returns the terminal width, or a conservative default when stdout is
// not a terminal.
func Width() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// fit truncates s to max visible runes, marking the cut with an ellipsis.
func fit(s string, max int) string {
	runes := []rune(s)
	if max <= 3 || len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// orderedIDs returns result map keys in a stable order.
func orderedIDs[T any](results map[string]T) []string {
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RenderPlan formats a plan result map, one section per module, wrapped to
// the terminal width.
func RenderPlan(results map[string]model.PlanResult) string {
	return renderPlan(results, Width())
}

func renderPlan(results map[string]model.PlanResult, width int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Plan"))
	b.WriteString("\n")

	wrapped := changeStyle.Width(width)

	pending := 0
	for _, id := range orderedIDs(results) {
		result := results[id]
		switch {
		case result.Err != nil:
			msg := fit(result.Err.Error(), width-len(id)-3)
			fmt.Fprintf(&b, "%s %s %s\n", failStyle.Render("✗"), moduleStyle.Render(id), mutedStyle.Render(msg))
		case !result.HasChanges():
			fmt.Fprintf(&b, "%s %s %s\n", okStyle.Render("✓"), moduleStyle.Render(id), mutedStyle.Render("no changes"))
		default:
			pending += len(result.Changes)
			fmt.Fprintf(&b, "%s %s\n", warnStyle.Render("~"), moduleStyle.Render(id))
			for _, change := range result.Changes {
				b.WriteString(wrapped.Render(change.Summary))
				b.WriteString("\n")
			}
		}
	}

	if pending == 0 {
		b.WriteString(mutedStyle.Render("Nothing to do."))
	} else {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d pending change(s).", pending)))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderApply formats an apply result map.
func RenderApply(results map[string]model.ApplyResult) string {
	return renderApply(results, Width())
}

func renderApply(results map[string]model.ApplyResult, width int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Apply"))
	b.WriteString("\n")

	failed := 0
	for _, id := range orderedIDs(results) {
		result := results[id]
		msg := fit(result.Message, width-len(id)-3)
		switch {
		case !result.Success:
			failed++
			fmt.Fprintf(&b, "%s %s %s\n", failStyle.Render("✗"), moduleStyle.Render(id), mutedStyle.Render(msg))
		case result.Changed:
			fmt.Fprintf(&b, "%s %s %s\n", warnStyle.Render("~"), moduleStyle.Render(id), mutedStyle.Render(msg))
		default:
			fmt.Fprintf(&b, "%s %s %s\n", okStyle.Render("✓"), moduleStyle.Render(id), mutedStyle.Render(msg))
		}
	}

	if failed > 0 {
		b.WriteString(failStyle.Render(fmt.Sprintf("%d module(s) failed.", failed)))
	} else {
		b.WriteString(mutedStyle.Render("All modules applied."))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderStatuses formats a status result map.
func RenderStatuses(results map[string]model.StatusResult) string {
	return renderStatuses(results, Width())
}

func renderStatuses(results map[string]model.StatusResult, width int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Status"))
	b.WriteString("\n")

	for _, id := range orderedIDs(results) {
		result := results[id]
		msg := fit(result.Message, width-len(id)-len(result.Status)-5)
		fmt.Fprintf(&b, "%s %s %s\n", statusGlyph(result.Status), moduleStyle.Render(id), mutedStyle.Render(msg))
	}
	return b.String()
}

// RenderDetails formats per-module diagnostic lines, wrapped to the terminal
// width.
func RenderDetails(details map[string][]string) string {
	return renderDetails(details, Width())
}

func renderDetails(details map[string][]string, width int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Details"))
	b.WriteString("\n")

	wrapped := changeStyle.Width(width)

	for _, id := range orderedIDs(details) {
		lines := details[id]
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s\n", moduleStyle.Render(id))
		for _, line := range lines {
			b.WriteString(wrapped.Render(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func statusGlyph(status string) string {
	switch status {
	case model.StatusApplied:
		return okStyle.Render("✓ " + status)
	case model.StatusPending, model.StatusStale:
		return warnStyle.Render("~ " + status)
	case model.StatusFailed:
		return failStyle.Render("✗ " + status)
	case model.StatusSkipped:
		return mutedStyle.Render("- " + status)
	}
	return mutedStyle.Render("· " + status)
}
