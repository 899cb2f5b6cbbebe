package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/ppm/internal/config"
	"github.com/NikitaCOEUR/ppm/internal/perrors"
	"github.com/NikitaCOEUR/ppm/internal/timing"
	"github.com/NikitaCOEUR/ppm/internal/vcs"
)

// NewParams contains parameters for the New command. Empty or nil fields are
// asked interactively.
type NewParams struct {
	Name string
	Path string
	Git  *bool
	Deps *bool
}

// New creates a project directory, registers it and optionally initialises
// version control and the dependency manager inside it
func New(ctx context.Context, d *Deps, params NewParams) error {
	reg, err := d.Store.Load()
	if err != nil {
		return err
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		if name, err = askRequired(d.Prompter, "Enter project name:"); err != nil {
			return cancelled(d, err, "Cancelled.")
		}
	}
	if err := validateName(name); err != nil {
		return err
	}

	parent := strings.TrimSpace(params.Path)
	if parent == "" {
		if parent, err = askRequired(d.Prompter, "Enter project path:"); err != nil {
			return cancelled(d, err, "Cancelled.")
		}
	}
	if parent, err = config.ExpandHome(parent); err != nil {
		return err
	}

	projectDir, err := filepath.Abs(filepath.Join(parent, name))
	if err != nil {
		return fmt.Errorf("failed to resolve project path: %w", err)
	}

	timer := timing.NewTimer()
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return perrors.NewFilesystemError("create", projectDir, err)
	}

	previous, existed := reg.Get(name)
	reg.Set(name, projectDir)
	if err := d.Store.Save(reg); err != nil {
		return err
	}
	if existed && previous != projectDir {
		d.Log.Info().Str("project", name).Str("previous", previous).Msg("Replaced existing registration")
	}
	d.Reporter.Success(fmt.Sprintf("Added %s.", name))
	timer.Step("register")

	initGit, err := confirm(d.Prompter, params.Git, "Initialize Git repository?")
	if err != nil {
		return cancelled(d, err, "Skipped project setup.")
	}
	switch {
	case initGit && vcs.IsRepository(projectDir):
		d.Reporter.Info(fmt.Sprintf("Git repository already exists in %s.", projectDir))
	case initGit:
		if method, err := d.VCS.Init(ctx, projectDir); err != nil {
			d.Log.Warn().Err(err).Str("dir", projectDir).Msg("Git initialization failed")
			d.Reporter.Warn(fmt.Sprintf("Git initialization failed: %v", err))
		} else {
			d.Log.Debug().Str("method", string(method)).Msg("Repository initialized")
			d.Reporter.Success(fmt.Sprintf("Initialized Git repository in %s.", projectDir))
		}
		timer.Step("git")
	}

	tool := displayName(d.Settings.Deps.Command)
	initDeps, err := confirm(d.Prompter, params.Deps, fmt.Sprintf("Initialize %s for the project?", tool))
	if err != nil {
		return cancelled(d, err, "Skipped project setup.")
	}
	if initDeps {
		if err := d.Runner.Run(ctx, projectDir, d.Settings.Deps.Command, d.Settings.Deps.Args...); err != nil {
			d.Log.Warn().Err(err).Str("command", d.Settings.Deps.Command).Strs("args", d.Settings.Deps.Args).Msg("Dependency manager initialization failed")
			d.Reporter.Warn(fmt.Sprintf("%s initialization failed: %v", tool, err))
		} else {
			d.Reporter.Success(fmt.Sprintf("Initialized %s for the project in %s.", tool, projectDir))
		}
		timer.Step(d.Settings.Deps.Command)
	}

	d.Log.Debug().Str("project", name).Str("timing", timer.String()).Msg("Project created")

	return nil
}

// cancelled turns an aborted prompt into a clean exit and passes any other
// error through
func cancelled(d *Deps, err error, msg string) error {
	if isAborted(err) {
		d.Reporter.Warn(msg)
		return nil
	}
	return err
}
