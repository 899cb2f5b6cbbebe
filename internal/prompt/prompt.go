// Package prompt provides the interactive questions ppm asks the user.
//
// Command handlers depend only on the Prompter interface. Terminal talks to a
// real terminal; Scripted replays canned answers in tests.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the input ends before an answer was given
var ErrAborted = errors.New("prompt aborted")

// Style selects how a confirmation is presented
type Style int

const (
	// Plain is an ordinary yes/no question
	Plain Style = iota
	// Danger marks a question guarding a destructive action
	Danger
)

// Prompter asks the user questions
type Prompter interface {
	// Text asks for a free-form line of input, trimmed of surrounding space
	Text(question string) (string, error)
	// Confirm asks a yes/no question; anything but an explicit yes is no
	Confirm(question string, style Style) (bool, error)
	// Select asks the user to pick one of choices
	Select(question string, choices []string) (string, error)
}

// Terminal is a line-oriented Prompter over an input and an output stream
type Terminal struct {
	in  *bufio.Reader
	out io.Writer

	questionStyle lipgloss.Style
	dangerStyle   lipgloss.Style
	markStyle     lipgloss.Style
	hintStyle     lipgloss.Style
	errorStyle    lipgloss.Style
}

// NewTerminal creates a terminal prompter. Colours are enabled only when out
// is a colour-capable terminal.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	r := lipgloss.NewRenderer(out)
	return &Terminal{
		in:            bufio.NewReader(in),
		out:           out,
		questionStyle: r.NewStyle().Bold(true),
		dangerStyle:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		markStyle:     r.NewStyle().Foreground(lipgloss.Color("14")),
		hintStyle:     r.NewStyle().Foreground(lipgloss.Color("241")),
		errorStyle:    r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (t *Terminal) ask(question, hint string, style lipgloss.Style) (string, error) {
	line := t.markStyle.Render("?") + " " + style.Render(question)
	if hint != "" {
		line += " " + t.hintStyle.Render(hint)
	}
	_, _ = fmt.Fprint(t.out, line+" ")

	answer, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		_, _ = fmt.Fprintln(t.out)
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Text implements Prompter
func (t *Terminal) Text(question string) (string, error) {
	return t.ask(question, "", t.questionStyle)
}

// Confirm implements Prompter. The default answer is no.
func (t *Terminal) Confirm(question string, style Style) (bool, error) {
	qs := t.questionStyle
	if style == Danger {
		qs = t.dangerStyle
	}
	answer, err := t.ask(question, "(y/N)", qs)
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

// Select implements Prompter. The user may answer with the choice number or
// its name; invalid answers are asked again.
func (t *Terminal) Select(question string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("no choices for %q", question)
	}

	_, _ = fmt.Fprintln(t.out, t.markStyle.Render("?")+" "+t.questionStyle.Render(question))
	for i, c := range choices {
		_, _ = fmt.Fprintf(t.out, "  %s %s\n", t.hintStyle.Render(strconv.Itoa(i+1)+")"), c)
	}

	for {
		answer, err := t.ask("Choice", fmt.Sprintf("[1-%d]", len(choices)), t.questionStyle)
		if err != nil {
			return "", err
		}
		if choice, ok := MatchChoice(answer, choices); ok {
			return choice, nil
		}
		_, _ = fmt.Fprintln(t.out, t.errorStyle.Render(fmt.Sprintf("%q is not one of the choices", answer)))
	}
}

// IsYes reports whether answer is an affirmative reply
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// MatchChoice resolves answer, either a 1-based index or a choice name, to
// one of choices
func MatchChoice(answer string, choices []string) (string, bool) {
	answer = strings.TrimSpace(answer)
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(choices) {
			return choices[n-1], true
		}
		return "", false
	}
	for _, c := range choices {
		if c == answer {
			return c, true
		}
	}
	return "", false
}
