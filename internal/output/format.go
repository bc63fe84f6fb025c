// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"todo/internal/service"
)

const (
	markDone    = "[x]"
	markPending = "[ ]"
)

var (
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	targetStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Formatter renders tasks. The zero value prints plain text.
type Formatter struct {
	// Styled enables terminal colors.
	Styled bool

	// Now decides which pending tasks are overdue when Styled is set.
	Now time.Time
}

// Task formats a single task line.
// Format: "{ID:>4}  {MARK} {DESCRIPTION}  (due {YYYY-MM-DD})\n"
func (f Formatter) Task(w io.Writer, task service.Task) {
	mark := markPending
	if task.Completed {
		mark = markDone
	}
	desc := normalizeDescription(task.Description)
	due := "(due " + task.Due() + ")"

	if f.Styled {
		switch {
		case task.Completed:
			desc = doneStyle.Render(desc)
		case task.Overdue(f.Now):
			due = overdueStyle.Render(due)
		}
	}
	fmt.Fprintf(w, "%4d  %s %s  %s\n", task.ID, mark, desc, due)
}

// Tasks formats each task on its own line.
func (f Formatter) Tasks(w io.Writer, tasks []service.Task) {
	for _, t := range tasks {
		f.Task(w, t)
	}
}

// ListName formats a remote list name for the lists command.
func (f Formatter) ListName(w io.Writer, list service.TaskList, target bool) {
	title := normalizeListTitle(list.Title)
	if list.IsDefault {
		title += " [default]"
	}
	if target {
		suffix := " [push target]"
		if f.Styled {
			suffix = targetStyle.Render(suffix)
		}
		title += suffix
	}
	fmt.Fprintln(w, title)
}

// normalizeDescription normalizes a description for display.
// - Empty or whitespace-only descriptions become "(untitled)"
// - Newlines are replaced with spaces
func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r", " ")
	desc = strings.ReplaceAll(desc, "\n", " ")

	if strings.TrimSpace(desc) == "" {
		return "(untitled)"
	}
	return desc
}

// normalizeListTitle normalizes a list title for display.
// Empty or whitespace-only titles become "(untitled)".
func normalizeListTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
