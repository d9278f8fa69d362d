package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// StateFile records the processes started by project:start, relative to
// the project directory.
const StateFile = ".cli/dev-state.json"

// Process is one app started by project:start.
type Process struct {
	Name    string            `json:"name"`
	Dir     string            `json:"dir"`
	Port    int               `json:"port"`
	PID     int               `json:"pid"`
	Command string            `json:"command"`
	Env     map[string]string `json:"env,omitempty"`
}

// State is the content of StateFile.
type State struct {
	Namespace string    `json:"namespace"`
	Started   time.Time `json:"started"`
	Processes []Process `json:"processes"`
}

// ReadState loads the state of the project at dir. A missing file yields
// nil.
func ReadState(afs afero.Fs, dir string) (*State, error) {
	path := filepath.Join(dir, StateFile)
	data, err := afero.ReadFile(afs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// WriteState stores s for the project at dir.
func WriteState(afs afero.Fs, dir string, s *State) error {
	path := filepath.Join(dir, StateFile)
	if err := afs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := afero.WriteFile(afs, path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// RemoveState deletes the state file of the project at dir.
func RemoveState(afs afero.Fs, dir string) error {
	err := afs.Remove(filepath.Join(dir, StateFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing state: %w", err)
	}
	return nil
}
