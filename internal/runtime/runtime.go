package runtime

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Cmd describes a program invocation.
type Cmd struct {
	Name string
	Args []string
	Dir  string
	// Env entries are added to the current process environment.
	Env    map[string]string
	Stdout io.Writer
	Stderr io.Writer
}

func (c Cmd) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Output captures the result of a finished program.
type Output struct {
	ExitCode int
}

// Runner executes programs.
type Runner interface {
	// Run executes c and waits for it. A non-zero exit status is an error.
	Run(ctx context.Context, c Cmd) (*Output, error)
	// Start launches c in the background and returns its process id.
	Start(ctx context.Context, c Cmd) (int, error)
	// Alive reports whether the process pid still exists.
	Alive(pid int) bool
	// Terminate asks the process pid, and any children it leads, to stop.
	Terminate(pid int) error
}

// ExitError reports a program that exited with a non-zero status.
type ExitError struct {
	Cmd      string
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Cmd, e.ExitCode)
}

// OS runs programs as real child processes.
type OS struct {
	// Stdout and Stderr are used when a Cmd leaves its writers nil.
	Stdout io.Writer
	Stderr io.Writer
}

// NewOS returns a Runner streaming to the process's stdout and stderr.
func NewOS() *OS {
	return &OS{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (o *OS) command(ctx context.Context, c Cmd) (*exec.Cmd, error) {
	bin, err := exec.LookPath(c.Name)
	if err != nil {
		return nil, fmt.Errorf("%s is required: %w", c.Name, err)
	}
	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = os.Environ()
	for k, v := range c.Env {
		cmd.Env = setEnv(cmd.Env, k, v)
	}
	cmd.Stdout = firstWriter(c.Stdout, o.Stdout)
	cmd.Stderr = firstWriter(c.Stderr, o.Stderr)
	return cmd, nil
}

// Run implements Runner.
func (o *OS) Run(ctx context.Context, c Cmd) (*Output, error) {
	cmd, err := o.command(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &Output{ExitCode: exitErr.ExitCode()}, &ExitError{Cmd: c.String(), ExitCode: exitErr.ExitCode()}
		}
		return nil, fmt.Errorf("running %s: %w", c.String(), err)
	}
	return &Output{}, nil
}

// Start implements Runner. The child is released so it outlives arcli.
func (o *OS) Start(_ context.Context, c Cmd) (int, error) {
	// The child must not be killed when the command's context ends.
	cmd, err := o.command(context.Background(), c)
	if err != nil {
		return 0, err
	}
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("starting %s: %w", c.String(), err)
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("releasing %s: %w", c.String(), err)
	}
	return pid, nil
}

func firstWriter(ws ...io.Writer) io.Writer {
	for _, w := range ws {
		if w != nil {
			return w
		}
	}
	return io.Discard
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// Alive implements Runner.
func (o *OS) Alive(pid int) bool { return Alive(pid) }

// Terminate implements Runner.
func (o *OS) Terminate(pid int) error { return Terminate(pid) }
