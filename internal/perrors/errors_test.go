package perrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigCorruptError(t *testing.T) {
	cause := fmt.Errorf("unexpected end of JSON input")
	err := NewConfigCorruptError("/home/me/.ppm.json", "registry is not valid JSON", cause)

	assert.Equal(t, "CONFIG_CORRUPT", err.Code())
	assert.Equal(t, "/home/me/.ppm.json", err.Path)
	assert.Contains(t, err.Error(), "registry is not valid JSON")
	assert.Contains(t, err.Error(), "unexpected end of JSON input")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestConfigurationError(t *testing.T) {
	cause := fmt.Errorf("invalid YAML")
	err := NewConfigurationError("/path/to/config.yml", "failed to parse settings", cause)

	assert.Equal(t, "CONFIG_ERROR", err.Code())
	assert.Equal(t, "/path/to/config.yml", err.Path)
	assert.Contains(t, err.Error(), "invalid YAML")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("webapp")

	assert.Equal(t, "NOT_FOUND", err.Code())
	assert.Equal(t, "webapp", err.Project)
	assert.Equal(t, "project webapp not found", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestSubprocessError(t *testing.T) {
	tests := []struct {
		name       string
		exitCode   int
		notStarted bool
	}{
		{name: "binary missing", exitCode: -1, notStarted: true},
		{name: "non-zero exit", exitCode: 2, notStarted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cause := fmt.Errorf("boom")
			err := NewSubprocessError("vim", tt.exitCode, "editor failed", cause)

			assert.Equal(t, "SUBPROCESS_ERROR", err.Code())
			assert.Equal(t, "vim", err.Command)
			assert.Equal(t, tt.exitCode, err.ExitCode)
			assert.Equal(t, tt.notStarted, err.NotStarted())
			assert.Equal(t, cause, errors.Unwrap(err))
		})
	}
}

func TestFilesystemError(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := NewFilesystemError("remove", "/srv/proj", cause)

	assert.Equal(t, "FS_ERROR", err.Code())
	assert.Equal(t, "remove", err.Op)
	assert.Equal(t, "/srv/proj", err.Path)
	assert.Equal(t, "failed to remove /srv/proj: permission denied", err.Error())
}

func TestErrorWithoutCause(t *testing.T) {
	err := NewConfigurationError("/cfg", "simple error message", nil)

	assert.Equal(t, "simple error message", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("open: %w", NewNotFoundError("api"))

	var nf *NotFoundError
	assert.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, "api", nf.Project)

	var code PPMError
	assert.True(t, errors.As(wrapped, &code))
	assert.Equal(t, "NOT_FOUND", code.Code())
}
