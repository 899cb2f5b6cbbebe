// Package main is the entry point for the ppm CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	ppmcli "github.com/NikitaCOEUR/ppm/internal/cli"
	"github.com/NikitaCOEUR/ppm/internal/config"
	"github.com/NikitaCOEUR/ppm/internal/logger"
	"github.com/NikitaCOEUR/ppm/internal/registry"
	"github.com/NikitaCOEUR/ppm/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.Command {
	deps := func(cmd *cli.Command) (*ppmcli.Deps, error) {
		return loadDeps(cmd, in, out, errOut)
	}

	return &cli.Command{
		Name:                  "ppm",
		Usage:                 "Personal project manager",
		Version:               version.String(),
		EnableShellCompletion: true,
		Reader:                in,
		Writer:                out,
		ErrWriter:             errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("PPM_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "registry",
				Usage:   "Path of the project registry file (default ~/.ppm.json)",
				Sources: cli.EnvVars("PPM_REGISTRY"),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path of the settings file (default $XDG_CONFIG_HOME/ppm/config.yml)",
				Sources: cli.EnvVars("PPM_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "new",
				Usage: "Create a new project",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Project name"},
					&cli.StringFlag{Name: "path", Usage: "Directory the project is created in"},
					&cli.BoolFlag{Name: "git", Usage: "Initialize a Git repository without asking"},
					&cli.BoolFlag{Name: "no-git", Usage: "Skip Git initialization without asking"},
					&cli.BoolFlag{Name: "deps", Usage: "Initialize the dependency manager without asking"},
					&cli.BoolFlag{Name: "no-deps", Usage: "Skip dependency manager initialization without asking"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					d, err := deps(cmd)
					if err != nil {
						return err
					}
					initGit, err := presetBool(cmd, "git", "no-git")
					if err != nil {
						return err
					}
					initDeps, err := presetBool(cmd, "deps", "no-deps")
					if err != nil {
						return err
					}
					return ppmcli.New(ctx, d, ppmcli.NewParams{
						Name: cmd.String("name"),
						Path: cmd.String("path"),
						Git:  initGit,
						Deps: initDeps,
					})
				},
			},
			{
				Name:          "rm",
				Usage:         "Delete a project directory and unregister it",
				ArgsUsage:     "<project_name>",
				ShellComplete: completeProjects(deps),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					name, err := projectArg(cmd)
					if err != nil {
						return err
					}
					d, err := deps(cmd)
					if err != nil {
						return err
					}
					return ppmcli.Remove(ctx, d, name)
				},
			},
			{
				Name:  "ls",
				Usage: "List registered projects",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Value: ppmcli.OutputText,
						Usage: "Output format (text, json, yaml)",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Go template rendered per project ({{.Name}}, {{.Path}}, {{.Exists}})",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					d, err := deps(cmd)
					if err != nil {
						return err
					}
					return ppmcli.List(d, ppmcli.ListParams{
						Output: cmd.String("output"),
						Format: cmd.String("format"),
					})
				},
			},
			{
				Name:          "open",
				Usage:         "Open a project in an editor",
				ArgsUsage:     "<project_name>",
				ShellComplete: completeProjects(deps),
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "editor", Usage: "Editor to use without asking"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					name, err := projectArg(cmd)
					if err != nil {
						return err
					}
					d, err := deps(cmd)
					if err != nil {
						return err
					}
					return ppmcli.Open(ctx, d, ppmcli.OpenParams{
						Name:   name,
						Editor: cmd.String("editor"),
					})
				},
			},
		},
	}
}

// loadDeps resolves settings, the registry location and the log level, in
// that order, for one command invocation
func loadDeps(cmd *cli.Command, in io.Reader, out, errOut io.Writer) (*ppmcli.Deps, error) {
	settings, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	level := settings.LogLevel
	if cmd.IsSet("log-level") || level == "" {
		level = cmd.String("log-level")
	}
	log := logger.New(level, errOut)

	registryPath, err := resolveRegistryPath(cmd, settings)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("registry", registryPath).Str("settings", settings.Source).Str("log_level", log.Level().String()).Msg("Resolved paths")

	return ppmcli.NewDeps(settings, registryPath, log, in, out, errOut), nil
}

// resolveRegistryPath prefers --registry, then the settings file, then
// ~/.ppm.json
func resolveRegistryPath(cmd *cli.Command, settings *config.Settings) (string, error) {
	if p := cmd.String("registry"); p != "" {
		return config.ExpandHome(p)
	}
	p, err := settings.RegistryPath()
	if err != nil || p != "" {
		return p, err
	}
	return registry.DefaultPath()
}

func projectArg(cmd *cli.Command) (string, error) {
	switch cmd.Args().Len() {
	case 0:
		return "", fmt.Errorf("missing project name (usage: ppm %s <project_name>)", cmd.Name)
	case 1:
		return cmd.Args().First(), nil
	default:
		return "", fmt.Errorf("%s takes exactly one project name", cmd.Name)
	}
}

// presetBool turns a --x/--no-x flag pair into a pre-answered confirmation,
// nil meaning ask
func presetBool(cmd *cli.Command, on, off string) (*bool, error) {
	setOn := cmd.IsSet(on) && cmd.Bool(on)
	setOff := cmd.IsSet(off) && cmd.Bool(off)
	switch {
	case setOn && setOff:
		return nil, fmt.Errorf("--%s and --%s are mutually exclusive", on, off)
	case setOn:
		v := true
		return &v, nil
	case setOff:
		v := false
		return &v, nil
	}
	return nil, nil
}

// completeProjects suggests registered project names for the first argument
func completeProjects(deps func(*cli.Command) (*ppmcli.Deps, error)) cli.ShellCompleteFunc {
	return func(_ context.Context, cmd *cli.Command) {
		if cmd.NArg() > 0 {
			return
		}
		d, err := deps(cmd)
		if err != nil {
			return
		}
		for _, name := range ppmcli.ProjectNames(d.Store) {
			_, _ = fmt.Fprintln(cmd.Root().Writer, name)
		}
	}
}
