package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/NikitaCOEUR/ppm/internal/logger"
	"github.com/NikitaCOEUR/ppm/internal/perrors"
	"github.com/NikitaCOEUR/ppm/internal/report"
	"github.com/NikitaCOEUR/ppm/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SelectEditor(t *testing.T) {
	tests := []struct {
		answer string
		want   string
	}{
		{"vim", "vim"},
		{"1", "code"},
		{"4", "nano"},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			env := newTestEnv(t, tt.answer)
			env.seed(t, "foo", "/srv/foo")
			before := env.registryBytes(t)

			require.NoError(t, Open(context.Background(), env.deps, OpenParams{Name: "foo"}))

			assert.Equal(t, []runner.Call{{Name: tt.want, Args: []string{"/srv/foo"}}}, env.runner.Calls)
			assert.Equal(t, []string{"Choose an editor to open the project in:"}, env.prompter.Asked)
			assert.Equal(t, before, env.registryBytes(t))
		})
	}
}

func TestOpen_EditorFlag(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "foo", "/srv/foo")

	require.NoError(t, Open(context.Background(), env.deps, OpenParams{Name: "foo", Editor: "subl"}))

	assert.Empty(t, env.prompter.Asked)
	assert.Equal(t, []runner.Call{{Name: "subl", Args: []string{"/srv/foo"}}}, env.runner.Calls)
}

func TestOpen_UnknownEditorFlag(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "foo", "/srv/foo")

	assert.Error(t, Open(context.Background(), env.deps, OpenParams{Name: "foo", Editor: "emacs"}))
	assert.Empty(t, env.runner.Calls)
}

func TestOpen_NotFound(t *testing.T) {
	env := newTestEnv(t, "vim")

	err := Open(context.Background(), env.deps, OpenParams{Name: "missing"})

	var notFound *perrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Project)
	assert.Empty(t, env.runner.Calls)
	assert.Empty(t, env.prompter.Asked)
}

func TestOpen_EditorMissing(t *testing.T) {
	env := newTestEnv(t, "code")
	env.seed(t, "foo", "/srv/foo")
	env.runner.Missing["code"] = true

	err := Open(context.Background(), env.deps, OpenParams{Name: "foo"})

	var subErr *perrors.SubprocessError
	require.ErrorAs(t, err, &subErr)
	assert.True(t, subErr.NotStarted())
}

func TestOpen_EditorFails(t *testing.T) {
	env := newTestEnv(t, "vim")
	env.seed(t, "foo", "/srv/foo")
	env.runner.ExitCodes["vim"] = 1
	var logs bytes.Buffer
	env.deps.Log = logger.New("warn", &logs)

	require.NoError(t, Open(context.Background(), env.deps, OpenParams{Name: "foo"}))

	assert.Equal(t, []string{"vim exited with status 1"}, env.recorder.Texts(report.LevelWarn))
	assert.Contains(t, logs.String(), "Editor exited with an error")
	assert.Contains(t, logs.String(), "exit_code=1")
}

func TestOpen_Aborted(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "foo", "/srv/foo")

	require.NoError(t, Open(context.Background(), env.deps, OpenParams{Name: "foo"}))

	assert.Empty(t, env.runner.Calls)
	assert.Equal(t, []string{"Cancelled opening foo."}, env.recorder.Texts(report.LevelWarn))
}
