package userdata

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
)

func TestEnsure_FirstRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	var out bytes.Buffer

	created, err := Ensure(fs, &out, "/home/u/.arcli", []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if !created {
		t.Fatal("expected config to be created on first run")
	}

	for _, dir := range []string{"/home/u/.arcli/logs", "/home/u/.arcli/commands", "/home/u/.arcli/tmp"} {
		if ok, _ := afero.DirExists(fs, dir); !ok {
			t.Errorf("expected directory %s", dir)
		}
	}
	data, err := afero.ReadFile(fs, "/home/u/.arcli/config.json")
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("unexpected config %s", data)
	}
	if !bytes.Contains(out.Bytes(), []byte("[ OK ] Created /home/u/.arcli/config.json")) {
		t.Errorf("missing progress output: %s", out.String())
	}
}

func TestEnsure_KeepsExistingConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/h/config.json", []byte(`{"mine":true}`), 0600); err != nil {
		t.Fatal(err)
	}

	created, err := Ensure(fs, nil, "/h", []byte(`{}`))
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if created {
		t.Error("existing config must not be rewritten")
	}
	data, _ := afero.ReadFile(fs, "/h/config.json")
	if string(data) != `{"mine":true}` {
		t.Errorf("config overwritten: %s", data)
	}
}

func TestEnsure_RootIsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/h", []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Ensure(fs, nil, "/h", nil); err == nil {
		t.Fatal("expected error when root is a file")
	}
}
