package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/NikitaCOEUR/ppm/internal/perrors"
)

// OpenParams contains parameters for the Open command
type OpenParams struct {
	Name string
	// Editor skips the editor prompt; it must be one of the configured editors
	Editor string
}

// Open launches an editor on a registered project. The registry is only
// read. An editor that exits non-zero is reported as a warning; an editor
// that cannot be started is an error.
func Open(ctx context.Context, d *Deps, params OpenParams) error {
	reg, err := d.Store.Load()
	if err != nil {
		return err
	}

	path, ok := reg.Get(params.Name)
	if !ok {
		return perrors.NewNotFoundError(params.Name)
	}

	editor := params.Editor
	if editor == "" {
		editor, err = d.Prompter.Select("Choose an editor to open the project in:", d.Settings.Editors)
		if err != nil {
			return cancelled(d, err, fmt.Sprintf("Cancelled opening %s.", params.Name))
		}
	} else if !slices.Contains(d.Settings.Editors, editor) {
		return fmt.Errorf("unknown editor %q (choose from %v)", editor, d.Settings.Editors)
	}

	d.Log.Debug().Str("project", params.Name).Str("editor", editor).Str("path", path).Msg("Opening project")

	if err := d.Runner.Run(ctx, "", editor, path); err != nil {
		var subErr *perrors.SubprocessError
		if errors.As(err, &subErr) && !subErr.NotStarted() {
			d.Log.Warn().Err(err).Str("editor", editor).Int("exit_code", subErr.ExitCode).Msg("Editor exited with an error")
			d.Reporter.Warn(fmt.Sprintf("%s exited with status %d", editor, subErr.ExitCode))
			return nil
		}
		return err
	}
	return nil
}
