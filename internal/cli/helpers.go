package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/NikitaCOEUR/ppm/internal/config"
	"github.com/NikitaCOEUR/ppm/internal/logger"
	"github.com/NikitaCOEUR/ppm/internal/prompt"
	"github.com/NikitaCOEUR/ppm/internal/registry"
	"github.com/NikitaCOEUR/ppm/internal/report"
	"github.com/NikitaCOEUR/ppm/internal/runner"
	"github.com/NikitaCOEUR/ppm/internal/vcs"
)

// Deps holds everything a command handler talks to. Handlers never reach for
// the terminal, the registry file or child processes directly.
type Deps struct {
	Settings *config.Settings
	Store    *registry.Store
	Prompter prompt.Prompter
	Reporter report.Reporter
	Runner   runner.Runner
	VCS      *vcs.Initializer
	Out      io.Writer
	Log      *logger.Logger
}

// NewDeps wires the handlers to the filesystem and PATH. Questions are read
// from in and written to errOut so that out only carries command output.
// Child processes always inherit the process's own terminal.
func NewDeps(settings *config.Settings, registryPath string, log *logger.Logger, in io.Reader, out, errOut io.Writer) *Deps {
	r := runner.New(log)
	return &Deps{
		Settings: settings,
		Store:    registry.NewStore(registryPath, log),
		Prompter: prompt.NewTerminal(in, errOut),
		Reporter: report.NewConsole(out, errOut),
		Runner:   r,
		VCS:      vcs.New(r, settings.VCS, log),
		Out:      out,
		Log:      log,
	}
}

// askRequired repeats a text question until the answer is not blank
func askRequired(p prompt.Prompter, question string) (string, error) {
	for {
		answer, err := p.Text(question)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
	}
}

// confirm asks question unless preset already carries the answer
func confirm(p prompt.Prompter, preset *bool, question string) (bool, error) {
	if preset != nil {
		return *preset, nil
	}
	return p.Confirm(question, prompt.Plain)
}

// validateName rejects names that cannot be used as a single directory name
func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("project name must not be blank")
	case name == ".", name == "..":
		return fmt.Errorf("invalid project name %q", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("invalid project name %q: must not contain path separators", name)
	}
	return nil
}

// displayName turns a command name into a label, poetry -> Poetry
func displayName(command string) string {
	if command == "" {
		return command
	}
	return strings.ToUpper(command[:1]) + command[1:]
}

func isAborted(err error) bool {
	return errors.Is(err, prompt.ErrAborted)
}

// ProjectNames returns registered names for shell completion. Errors yield
// no suggestions.
func ProjectNames(store *registry.Store) []string {
	reg, err := store.Load()
	if err != nil {
		return nil
	}
	return reg.Names()
}
