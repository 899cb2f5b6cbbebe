// Package vcs initialises version control in new project directories.
package vcs

import (
	"context"
	"errors"

	"github.com/NikitaCOEUR/ppm/internal/config"
	"github.com/NikitaCOEUR/ppm/internal/logger"
	"github.com/NikitaCOEUR/ppm/internal/runner"
	"github.com/go-git/go-git/v5"
)

// Method describes how a repository was initialised
type Method string

const (
	// MethodCommand means the configured binary was run
	MethodCommand Method = "command"
	// MethodBuiltin means the repository was created in-process with go-git
	MethodBuiltin Method = "builtin"
)

// Initializer creates repositories
type Initializer struct {
	runner   runner.Runner
	settings config.VCSSettings
	log      *logger.Logger
}

// New creates an Initializer
func New(r runner.Runner, settings config.VCSSettings, log *logger.Logger) *Initializer {
	if log == nil {
		log = logger.Discard()
	}
	return &Initializer{runner: r, settings: settings, log: log}
}

// Init initialises a repository in dir. The configured command is run with
// dir as its working directory; when it is not on PATH and the builtin
// fallback is enabled, a plain git repository is created with go-git
// instead. An existing repository is left untouched by the fallback.
func (i *Initializer) Init(ctx context.Context, dir string) (Method, error) {
	_, lookErr := i.runner.LookPath(i.settings.Command)
	i.log.Debug().Str("command", i.settings.Command).Bool("on_path", lookErr == nil).Bool("builtin_fallback", i.settings.BuiltinFallback).Msg("Initializing repository")
	if lookErr != nil && i.settings.BuiltinFallback {
		i.log.Debug().Str("command", i.settings.Command).Str("dir", dir).Msg("VCS binary not found, using built-in git")
		if _, err := git.PlainInit(dir, false); err != nil && !errors.Is(err, git.ErrRepositoryAlreadyExists) {
			return MethodBuiltin, err
		}
		return MethodBuiltin, nil
	}

	return MethodCommand, i.runner.Run(ctx, dir, i.settings.Command, i.settings.Args...)
}

// IsRepository reports whether dir already holds a git repository
func IsRepository(dir string) bool {
	_, err := git.PlainOpen(dir)
	return err == nil
}
