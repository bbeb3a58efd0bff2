package binding

import (
	"os"
	"os/exec"
)

// Executor runs a bound action when its gesture matches.
type Executor interface {
	Run(action string) error
}

// ShellExecutor passes the action string to /bin/sh unmodified, exactly as
// configured. No escaping or sandboxing is applied: whoever can edit the
// bindings can run arbitrary commands.
type ShellExecutor struct{}

// Run executes the action and waits for it to finish, with its output wired
// to the tool's own stdout and stderr.
func (ShellExecutor) Run(action string) error {
	cmd := exec.Command("/bin/sh", "-c", action)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Recorder is an Executor that only records the actions it was asked to run.
// Used by tests in place of ShellExecutor.
type Recorder struct {
	Actions []string
}

func (r *Recorder) Run(action string) error {
	r.Actions = append(r.Actions, action)
	return nil
}
