package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// ParseCommand validates and decodes a command manifest. A manifest without
// a name takes the name of its directory.
func ParseCommand(data []byte, path string) (*Command, error) {
	if err := validate(data, path); err != nil {
		return nil, err
	}
	var c Command
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = filepath.Base(filepath.Dir(path))
	}
	c.Path = path
	return &c, nil
}

// ParseInstall validates and decodes a plugin install manifest.
func ParseInstall(data []byte, path string) (*Install, error) {
	if err := validate(data, path); err != nil {
		return nil, err
	}
	var m Install
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	m.Path = path
	return &m, nil
}

// ReadCommand reads and parses a command manifest from fs.
func ReadCommand(fs afero.Fs, path string) (*Command, error) {
	data, err := readFile(fs, path)
	if err != nil {
		return nil, err
	}
	return ParseCommand(data, path)
}

// ReadInstall reads and parses an install manifest from fs.
func ReadInstall(fs afero.Fs, path string) (*Install, error) {
	data, err := readFile(fs, path)
	if err != nil {
		return nil, err
	}
	return ParseInstall(data, path)
}

// Find returns every file named name below dir, sorted. A missing dir
// yields no results.
func Find(fs afero.Fs, dir, name string) ([]string, error) {
	if ok, _ := afero.DirExists(fs, dir); !ok {
		return nil, nil
	}
	var found []string
	err := afero.Walk(fs, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && info.Name() == "node_modules" {
			return filepath.SkipDir
		}
		if !info.IsDir() && info.Name() == name {
			found = append(found, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", dir, err)
	}
	sort.Strings(found)
	return found, nil
}

func validate(data []byte, path string) error {
	res, err := Validate(data)
	if err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	if !res.Valid {
		return &InvalidError{Path: path, Issues: res.Issues}
	}
	return nil
}

func readFile(fs afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
