package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/NikitaCOEUR/ppm/internal/perrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExec(stdout *bytes.Buffer) *Exec {
	e := New(nil)
	e.Stdin = strings.NewReader("")
	e.Stdout = stdout
	e.Stderr = stdout
	return e
}

func TestExec_RunInDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses pwd")
	}
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	out := &bytes.Buffer{}
	err = newTestExec(out).Run(context.Background(), dir, "pwd")
	require.NoError(t, err)
	assert.Equal(t, dir, strings.TrimSpace(out.String()))
}

func TestExec_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	err := newTestExec(&bytes.Buffer{}).Run(context.Background(), "", "sh", "-c", "exit 3")
	require.Error(t, err)

	var subErr *perrors.SubprocessError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, "sh", subErr.Command)
	assert.Equal(t, 3, subErr.ExitCode)
	assert.False(t, subErr.NotStarted())
	assert.Contains(t, err.Error(), "exited with status 3")
}

func TestExec_MissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	err := newTestExec(&bytes.Buffer{}).Run(context.Background(), "", "definitely-not-installed-ppm")
	require.Error(t, err)

	var subErr *perrors.SubprocessError
	require.True(t, errors.As(err, &subErr))
	assert.True(t, subErr.NotStarted())
	assert.Contains(t, err.Error(), "command not found")
}

func TestExec_LookPath(t *testing.T) {
	bin := t.TempDir()
	tool := filepath.Join(bin, "mytool")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0755))
	t.Setenv("PATH", bin)

	path, err := New(nil).LookPath("mytool")
	require.NoError(t, err)
	assert.Equal(t, tool, path)

	_, err = New(nil).LookPath("othertool")
	assert.Error(t, err)
}

func TestFake(t *testing.T) {
	f := NewFake()
	f.ExitCodes["poetry"] = 1
	f.Missing["subl"] = true

	require.NoError(t, f.Run(context.Background(), "/p", "git", "init"))

	err := f.Run(context.Background(), "/p", "poetry", "init")
	var subErr *perrors.SubprocessError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, 1, subErr.ExitCode)

	err = f.Run(context.Background(), "", "subl", "/p")
	require.True(t, errors.As(err, &subErr))
	assert.True(t, subErr.NotStarted())

	assert.Equal(t, []Call{
		{Dir: "/p", Name: "git", Args: []string{"init"}},
		{Dir: "/p", Name: "poetry", Args: []string{"init"}},
	}, f.Calls)
}
