package runtime

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"
)

func TestOS_Run(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var stdout bytes.Buffer
	o := &OS{}
	_, err := o.Run(context.Background(), Cmd{
		Name:   "sh",
		Args:   []string{"-c", "printf %s \"$ARCLI_TEST_VALUE\""},
		Env:    map[string]string{"ARCLI_TEST_VALUE": "hello"},
		Stdout: &stdout,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stdout.String() != "hello" {
		t.Errorf("stdout = %q, want hello", stdout.String())
	}
}

func TestOS_RunExitCode(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	out, err := (&OS{}).Run(context.Background(), Cmd{Name: "sh", Args: []string{"-c", "exit 3"}})
	var ee *ExitError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if ee.ExitCode != 3 || out.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", ee.ExitCode)
	}
}

func TestOS_MissingProgram(t *testing.T) {
	_, err := (&OS{}).Run(context.Background(), Cmd{Name: "arcli-definitely-missing"})
	if err == nil {
		t.Fatal("expected error for missing program")
	}
}

func TestAlive(t *testing.T) {
	if !Alive(os.Getpid()) {
		t.Error("current process should be alive")
	}
	if Alive(0) || Alive(-1) {
		t.Error("non-positive pids are never alive")
	}
}

func TestRecorder(t *testing.T) {
	boom := errors.New("npm failed")
	r := &Recorder{Fail: map[string]error{"npm": boom}}

	if _, err := r.Run(context.Background(), Cmd{Name: "node", Args: []string{"-v"}}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := r.Run(context.Background(), Cmd{Name: "npm", Args: []string{"install"}}); !errors.Is(err, boom) {
		t.Fatalf("expected configured failure, got %v", err)
	}
	pid, err := r.Start(context.Background(), Cmd{Name: "node"})
	if err != nil || pid != 1001 {
		t.Fatalf("Start = %d, %v", pid, err)
	}

	if !r.Alive(pid) {
		t.Errorf("started pid %d should be alive", pid)
	}
	if err := r.Terminate(pid); err != nil {
		t.Fatalf("Terminate: %v", err)
	}
	if r.Alive(pid) {
		t.Errorf("terminated pid %d should not be alive", pid)
	}
	if err := r.Terminate(pid); err == nil {
		t.Error("terminating a stopped pid should fail")
	}

	got := r.Commands()
	want := []string{"node -v", "npm install", "node"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Commands[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSetEnv(t *testing.T) {
	env := setEnv([]string{"A=1", "B=2"}, "A", "3")
	env = setEnv(env, "C", "4")
	want := []string{"A=3", "B=2", "C=4"}
	for i := range want {
		if env[i] != want[i] {
			t.Errorf("env[%d] = %q, want %q", i, env[i], want[i])
		}
	}
}
