// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todos/internal/service"
)

const (
	// SectionSeparator is the separator line around section headers.
	SectionSeparator = "------------"

	doneMarker = "[x]"
	openMarker = "[ ]"
)

// Printer writes styled task output. Styles degrade to plain text when w is
// not a terminal.
type Printer struct {
	w     io.Writer
	title lipgloss.Style
	done  lipgloss.Style
}

// NewPrinter creates a Printer for w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:     w,
		title: r.NewStyle().Bold(true),
		done:  r.NewStyle().Faint(true).Strikethrough(true),
	}
}

// Task formats a task line of the current mode.
// Format: "{N:>4}  {MARK} {TEXT}\n"
func (p *Printer) Task(num int, task service.Task) {
	fmt.Fprintf(p.w, "%4d  %s\n", num, p.taskBody(task))
}

// TaskWithLetter formats a task line inside a mode section.
// Format: "{LN:>6}  {MARK} {TEXT}\n" where L is the mode letter.
func (p *Printer) TaskWithLetter(letter rune, num int, task service.Task) {
	ref := fmt.Sprintf("%c%d", letter, num)
	fmt.Fprintf(p.w, "%6s  %s\n", ref, p.taskBody(task))
}

// SectionHeader formats a mode section header.
func (p *Printer) SectionHeader(m service.Mode, current bool) {
	title := m.String()
	if current {
		title += " [current]"
	}
	fmt.Fprintln(p.w, SectionSeparator)
	fmt.Fprintln(p.w, p.title.Render(title))
	fmt.Fprintln(p.w, SectionSeparator)
}

// Mode formats the current mode line.
func (p *Printer) Mode(m service.Mode) {
	fmt.Fprintln(p.w, p.title.Render(m.String()))
}

func (p *Printer) taskBody(task service.Task) string {
	text := NormalizeText(task.Text)
	if task.Completed {
		return doneMarker + " " + p.done.Render(text)
	}
	return openMarker + " " + text
}

// NormalizeText normalizes task text for single-line display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
