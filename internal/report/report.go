// Package report renders user-facing status messages.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Reporter receives user-facing messages from command handlers
type Reporter interface {
	Info(msg string)
	Success(msg string)
	Warn(msg string)
	Error(msg string)
}

// Console prints styled messages. Info and Success go to out; Warn and
// Error go to errOut.
type Console struct {
	out    io.Writer
	errOut io.Writer

	infoStyle    lipgloss.Style
	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewConsole creates a console reporter. Nil writers default to stdout and
// stderr.
func NewConsole(out, errOut io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	r := lipgloss.NewRenderer(out)
	re := lipgloss.NewRenderer(errOut)
	return &Console{
		out:          out,
		errOut:       errOut,
		infoStyle:    r.NewStyle().Foreground(lipgloss.Color("12")),
		successStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		warningStyle: re.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		errorStyle:   re.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// Info implements Reporter
func (c *Console) Info(msg string) {
	_, _ = fmt.Fprintln(c.out, c.infoStyle.Render(msg))
}

// Success implements Reporter
func (c *Console) Success(msg string) {
	_, _ = fmt.Fprintln(c.out, c.successStyle.Render(msg))
}

// Warn implements Reporter
func (c *Console) Warn(msg string) {
	_, _ = fmt.Fprintln(c.errOut, c.warningStyle.Render(msg))
}

// Error implements Reporter
func (c *Console) Error(msg string) {
	_, _ = fmt.Fprintln(c.errOut, c.errorStyle.Render(msg))
}
