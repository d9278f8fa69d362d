package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/cast"
)

// Package is a decoded package.json. Unknown keys round-trip untouched.
type Package map[string]any

// ReadPackage reads the package.json at path. A missing file yields nil.
func ReadPackage(afs afero.Fs, path string) (Package, error) {
	data, err := afero.ReadFile(afs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var p Package
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if p == nil {
		p = Package{}
	}
	return p, nil
}

// Write stores p at path, indented with two spaces.
func (p Package) Write(afs afero.Fs, path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := afero.WriteFile(afs, path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Dependencies returns the name to version map under key.
func (p Package) Dependencies(key string) map[string]string {
	return cast.ToStringMapString(p[key])
}

// SetDependency records name at version under key.
func (p Package) SetDependency(key, name, version string) {
	deps := cast.ToStringMap(p[key])
	if deps == nil {
		deps = map[string]any{}
	}
	deps[name] = version
	p[key] = deps
}

// Specs returns the dependencies under key as sorted "name@version" strings.
func (p Package) Specs(key string) []string {
	var out []string
	for name, version := range p.Dependencies(key) {
		out = append(out, name+"@"+version)
	}
	sort.Strings(out)
	return out
}

// MergeDependencies overlays the dependency sections of src onto p. Keys
// from src win; entries only p has are kept.
func (p Package) MergeDependencies(src Package) {
	for _, key := range []string{"dependencies", "devDependencies", "peerDependencies"} {
		incoming := src.Dependencies(key)
		if len(incoming) == 0 {
			continue
		}
		for name, version := range incoming {
			p.SetDependency(key, name, version)
		}
	}
}
