package vcs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/NikitaCOEUR/ppm/internal/config"
	"github.com/NikitaCOEUR/ppm/internal/perrors"
	"github.com/NikitaCOEUR/ppm/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gitSettings(fallback bool) config.VCSSettings {
	return config.VCSSettings{Command: "git", Args: []string{"init"}, BuiltinFallback: fallback}
}

func TestInit_RunsCommand(t *testing.T) {
	fake := runner.NewFake()
	dir := t.TempDir()

	method, err := New(fake, gitSettings(true), nil).Init(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, MethodCommand, method)
	assert.Equal(t, []runner.Call{{Dir: dir, Name: "git", Args: []string{"init"}}}, fake.Calls)
}

func TestInit_CommandFailure(t *testing.T) {
	fake := runner.NewFake()
	fake.ExitCodes["git"] = 128

	_, err := New(fake, gitSettings(true), nil).Init(context.Background(), t.TempDir())
	var subErr *perrors.SubprocessError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, 128, subErr.ExitCode)
}

func TestInit_BuiltinFallback(t *testing.T) {
	fake := runner.NewFake()
	fake.Missing["git"] = true
	dir := t.TempDir()

	assert.False(t, IsRepository(dir))

	method, err := New(fake, gitSettings(true), nil).Init(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, MethodBuiltin, method)
	assert.Empty(t, fake.Calls)

	_, err = os.Stat(filepath.Join(dir, ".git", "HEAD"))
	require.NoError(t, err)
	assert.True(t, IsRepository(dir))

	// second run on an existing repository is not an error
	_, err = New(fake, gitSettings(true), nil).Init(context.Background(), dir)
	require.NoError(t, err)
}

func TestInit_MissingWithoutFallback(t *testing.T) {
	fake := runner.NewFake()
	fake.Missing["git"] = true
	dir := t.TempDir()

	method, err := New(fake, gitSettings(false), nil).Init(context.Background(), dir)
	assert.Equal(t, MethodCommand, method)

	var subErr *perrors.SubprocessError
	require.True(t, errors.As(err, &subErr))
	assert.True(t, subErr.NotStarted())
	assert.False(t, IsRepository(dir))
}
