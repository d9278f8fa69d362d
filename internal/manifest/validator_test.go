package manifest

import (
	"strings"
	"testing"
)

const validCommand = `
name: hello
description: Say hello
flags:
  - name: who
    short: w
    description: Who to greet
prompts:
  - name: who
    description: Who?
    required: true
steps:
  - name: greet
    message: "Hello {{ .params.who }}"
  - name: dir
    mkdir: "{{ .cwd }}/hello"
  - name: file
    template: hello.txt.tmpl
    dest: "{{ .cwd }}/hello/hello.txt"
  - name: run
    run: echo
    args: ["done"]
`

func TestValidate_Valid(t *testing.T) {
	result, err := Validate([]byte(validCommand))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
		}
		t.Fatal("expected valid manifest")
	}
}

func TestValidate_Invalid(t *testing.T) {
	cases := []struct {
		desc string
		yaml string
		path string
	}{
		{"missing steps", "name: x\n", ""},
		{"empty steps", "name: x\nsteps: []\n", "/steps"},
		{"bad name", "name: Bad Name\nsteps: [{name: a, message: hi}]\n", "/name"},
		{"unknown field", "name: x\nbogus: 1\nsteps: [{name: a, message: hi}]\n", ""},
		{"step without operation", "name: x\nsteps: [{name: a}]\n", "/steps/0"},
		{"template without dest", "name: x\nsteps: [{name: a, template: t}]\n", "/steps/0"},
		{"two operations", "name: x\nsteps: [{name: a, run: ls, message: hi}]\n", "/steps/0"},
		{"bad regex", "name: x\nprompts: [{name: a, pattern: '('}]\nsteps: [{name: a, message: hi}]\n", "/prompts/0/pattern"},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			result, err := Validate([]byte(tc.yaml))
			if err != nil {
				t.Fatalf("Validate error: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid manifest")
			}
			if tc.path == "" {
				return
			}
			found := false
			for _, issue := range result.Issues {
				if strings.HasPrefix(issue.Path, tc.path) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an issue under %s, got %+v", tc.path, result.Issues)
			}
		})
	}
}

func TestValidate_BadYAML(t *testing.T) {
	if _, err := Validate([]byte("name: [")); err == nil {
		t.Fatal("expected parse error")
	}
}
