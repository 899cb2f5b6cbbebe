package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/ppm/internal/perrors"
	"github.com/NikitaCOEUR/ppm/internal/prompt"
)

// Remove deletes a project directory and unregisters it after two
// confirmations. An unknown name is reported and otherwise ignored.
//
// The directory is deleted before the registry entry, so a failed delete
// leaves the project registered and the command can simply be re-run.
func Remove(_ context.Context, d *Deps, name string) error {
	reg, err := d.Store.Load()
	if err != nil {
		return err
	}

	path, ok := reg.Get(name)
	if !ok {
		d.Reporter.Error(fmt.Sprintf("Project %s not found.", name))
		return nil
	}

	sure, err := d.Prompter.Confirm(fmt.Sprintf("Are you sure you want to remove %s?", name), prompt.Plain)
	if err != nil && !isAborted(err) {
		return err
	}
	if sure {
		sure, err = d.Prompter.Confirm(fmt.Sprintf("WARNING: This permanently removes %s!! Continue?", name), prompt.Danger)
		if err != nil && !isAborted(err) {
			return err
		}
	}
	if !sure {
		d.Reporter.Success(fmt.Sprintf("Cancelled removal of %s.", name))
		return nil
	}

	if err := removeProjectDir(path); err != nil {
		d.Log.Error().Err(err).Str("project", name).Str("path", path).Msg("Failed to remove project directory")
		return err
	}
	d.Log.Debug().Str("project", name).Str("path", path).Msg("Project directory removed")

	reg.Delete(name)
	if err := d.Store.Save(reg); err != nil {
		return err
	}

	d.Reporter.Success(fmt.Sprintf("Removed %s.", name))
	return nil
}

// removeProjectDir deletes path recursively. A missing directory is not an
// error; the filesystem root and the home directory are never deleted.
func removeProjectDir(path string) error {
	if path == "" {
		return nil
	}
	cleaned := filepath.Clean(path)
	if cleaned == string(filepath.Separator) {
		return perrors.NewFilesystemError("remove", cleaned, fmt.Errorf("refusing to delete the filesystem root"))
	}
	if home, err := os.UserHomeDir(); err == nil && cleaned == filepath.Clean(home) {
		return perrors.NewFilesystemError("remove", cleaned, fmt.Errorf("refusing to delete the home directory"))
	}

	if err := os.RemoveAll(cleaned); err != nil {
		return perrors.NewFilesystemError("remove", cleaned, err)
	}
	return nil
}
