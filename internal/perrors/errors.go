// Package perrors provides the error taxonomy for ppm.
// Every error carries a stable code so callers (and the CLI exit path) can
// tell a corrupt registry from a missing project or a failed subprocess.
package perrors

import (
	"fmt"
)

// PPMError is implemented by every ppm error
type PPMError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ConfigCorruptError is returned when the registry file is not a flat JSON
// object of strings. It is never repaired automatically.
type ConfigCorruptError struct {
	baseError
	Path string
}

// NewConfigCorruptError creates a new corrupt registry error
func NewConfigCorruptError(path string, message string, cause error) *ConfigCorruptError {
	return &ConfigCorruptError{
		baseError: baseError{
			code:    "CONFIG_CORRUPT",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ConfigurationError represents errors in the user settings file
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// NotFoundError is returned when a project name is not in the registry
type NotFoundError struct {
	baseError
	Project string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(project string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: fmt.Sprintf("project %s not found", project),
		},
		Project: project,
	}
}

// SubprocessError represents an external tool that could not be started or
// exited with a non-zero status
type SubprocessError struct {
	baseError
	Command string
	// ExitCode is -1 when the process never started
	ExitCode int
}

// NewSubprocessError creates a new subprocess error
func NewSubprocessError(command string, exitCode int, message string, cause error) *SubprocessError {
	return &SubprocessError{
		baseError: baseError{
			code:    "SUBPROCESS_ERROR",
			message: message,
			cause:   cause,
		},
		Command:  command,
		ExitCode: exitCode,
	}
}

// NotStarted reports whether the process failed before it could run,
// typically because the binary is not on PATH
func (e *SubprocessError) NotStarted() bool {
	return e.ExitCode < 0
}

// FilesystemError represents a failed directory create or delete
type FilesystemError struct {
	baseError
	Path string
	Op   string
}

// NewFilesystemError creates a new filesystem error
func NewFilesystemError(op, path string, cause error) *FilesystemError {
	return &FilesystemError{
		baseError: baseError{
			code:    "FS_ERROR",
			message: fmt.Sprintf("failed to %s %s", op, path),
			cause:   cause,
		},
		Path: path,
		Op:   op,
	}
}
