package runner

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/NikitaCOEUR/ppm/internal/perrors"
)

// Call is one command recorded by Fake
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Fake records commands instead of running them
type Fake struct {
	Calls []Call
	// ExitCodes makes the named command fail with the given status
	ExitCodes map[string]int
	// Missing lists commands that are not on PATH
	Missing map[string]bool
}

// NewFake creates a Fake where every command exists and succeeds
func NewFake() *Fake {
	return &Fake{
		ExitCodes: make(map[string]int),
		Missing:   make(map[string]bool),
	}
}

// LookPath implements Runner
func (f *Fake) LookPath(name string) (string, error) {
	if f.Missing[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/usr/bin/" + name, nil
}

// Run implements Runner
func (f *Fake) Run(_ context.Context, dir, name string, args ...string) error {
	if _, err := f.LookPath(name); err != nil {
		return perrors.NewSubprocessError(name, -1, fmt.Sprintf("%s: command not found", name), err)
	}
	f.Calls = append(f.Calls, Call{Dir: dir, Name: name, Args: args})
	if code, ok := f.ExitCodes[name]; ok && code != 0 {
		return perrors.NewSubprocessError(name, code, fmt.Sprintf("%s exited with status %d", name, code), nil)
	}
	return nil
}
