package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/atomic-reactor/arcli/internal/branding"
)

// Settings reads and writes individual keys of the home config file.
// ARCLI_* environment variables override file values on read.
type Settings struct {
	fs   afero.Fs
	path string
	v    *viper.Viper
}

// NewSettings loads the JSON config at path. A missing file is not an error.
func NewSettings(fs afero.Fs, path string) (*Settings, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if exists, _ := afero.Exists(fs, path); exists {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return &Settings{fs: fs, path: path, v: v}, nil
}

// Path returns the backing file.
func (s *Settings) Path() string { return s.path }

// Get returns a value by dotted key, or nil.
func (s *Settings) Get(key string) any {
	return s.v.Get(key)
}

// GetString returns a value by dotted key as a string.
func (s *Settings) GetString(key string) string {
	return s.v.GetString(key)
}

// Set stores value under key and writes the file. Values that parse as
// JSON (numbers, booleans, arrays, objects) are stored decoded.
func (s *Settings) Set(key, value string) error {
	var decoded any
	if err := json.Unmarshal([]byte(value), &decoded); err != nil {
		decoded = value
	}
	s.v.Set(key, decoded)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
