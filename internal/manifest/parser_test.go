package manifest

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func TestReadCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/p/.cli/commands/hello/command.yaml", []byte(validCommand), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := ReadCommand(fs, "/p/.cli/commands/hello/command.yaml")
	if err != nil {
		t.Fatalf("ReadCommand: %v", err)
	}
	if c.Name != "hello" || len(c.Steps) != 4 {
		t.Fatalf("unexpected manifest %+v", c)
	}
	if got := c.Steps[2].Kind(); got != "template" {
		t.Errorf("Kind = %q, want template", got)
	}
	if c.Flags[0].Short != "w" {
		t.Errorf("Short = %q, want w", c.Flags[0].Short)
	}
}

func TestParseCommand_NameFromDirectory(t *testing.T) {
	c, err := ParseCommand([]byte("steps: [{name: a, message: hi}]\n"), "/x/commands/greet/command.yaml")
	if err != nil {
		t.Fatalf("ParseCommand: %v", err)
	}
	if c.Name != "greet" {
		t.Errorf("Name = %q, want greet", c.Name)
	}
}

func TestParseCommand_Invalid(t *testing.T) {
	_, err := ParseCommand([]byte("name: x\nsteps: []\n"), "bad.yaml")
	var ie *InvalidError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InvalidError, got %v", err)
	}
	if ie.Path != "bad.yaml" || len(ie.Issues) == 0 {
		t.Errorf("unexpected error %+v", ie)
	}
}

func TestParseInstall(t *testing.T) {
	m, err := ParseInstall([]byte("steps:\n  - name: note\n    message: installed\n"), "arcli-install.yaml")
	if err != nil {
		t.Fatalf("ParseInstall: %v", err)
	}
	if len(m.Steps) != 1 || m.Steps[0].Kind() != "message" {
		t.Errorf("unexpected manifest %+v", m)
	}
}

func TestFind(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, p := range []string{
		"/c/b/command.yaml",
		"/c/a/command.yaml",
		"/c/a/node_modules/x/command.yaml",
		"/c/a/other.yaml",
	} {
		if err := afero.WriteFile(fs, p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	found, err := Find(fs, "/c", CommandFile)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	want := []string{"/c/a/command.yaml", "/c/b/command.yaml"}
	if len(found) != len(want) || found[0] != want[0] || found[1] != want[1] {
		t.Errorf("Find = %v, want %v", found, want)
	}

	none, err := Find(fs, "/missing", CommandFile)
	if err != nil || len(none) != 0 {
		t.Errorf("Find on missing dir = %v, %v", none, err)
	}
}
