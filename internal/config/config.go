package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
)

//go:embed defaults.json
var defaultsJSON []byte

// Config is a decoded JSON configuration document.
type Config map[string]any

// Layer file locations relative to the working directory.
const (
	CoreFile    = ".core/.cli/config.json"
	ProjectFile = ".cli/config.json"
)

// DefaultsJSON returns the embedded default configuration document.
func DefaultsJSON() []byte {
	return append([]byte(nil), defaultsJSON...)
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() Config {
	var c Config
	if err := json.Unmarshal(defaultsJSON, &c); err != nil {
		panic(fmt.Sprintf("parsing embedded defaults: %v", err))
	}
	return c
}

// Overlay returns base with each layer applied left to right. Top-level
// keys replace; nested objects are replaced wholesale, never merged.
func Overlay(base Config, layers ...Config) Config {
	out := make(Config, len(base))
	for k, v := range base {
		out[k] = v
	}
	for _, l := range layers {
		for k, v := range l {
			out[k] = v
		}
	}
	return out
}

// Load builds the effective configuration for cwd with the home config at
// homeFile. Missing layer files are skipped; unreadable or malformed ones
// are errors.
func Load(fsys afero.Fs, cwd, homeFile string) (Config, error) {
	c := Defaults()
	for _, path := range []string{
		filepath.Join(cwd, CoreFile),
		homeFile,
		filepath.Join(cwd, ProjectFile),
	} {
		layer, err := ReadFile(fsys, path)
		if err != nil {
			return nil, err
		}
		c = Overlay(c, layer)
	}
	return c, nil
}

// ReadFile reads one JSON layer. A missing file yields a nil Config.
func ReadFile(fsys afero.Fs, path string) (Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return c, nil
}

// Get returns the value at a dotted path.
func (c Config) Get(path string) any {
	var cur any = map[string]any(c)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			if cm, ok2 := cur.(Config); ok2 {
				m = cm
			} else {
				return nil
			}
		}
		cur = m[part]
	}
	return cur
}

// String returns the value at path as a string.
func (c Config) String(path string) string {
	return cast.ToString(c.Get(path))
}

// Strings returns the value at path as a string slice.
func (c Config) Strings(path string) []string {
	return cast.ToStringSlice(c.Get(path))
}

// Set stores v at a dotted path, creating intermediate objects. Existing
// intermediate objects are copied so that layers sharing them are not
// modified.
func (c Config) Set(path string, v any) {
	parts := strings.Split(path, ".")
	cur := map[string]any(c)
	for _, part := range parts[:len(parts)-1] {
		next := map[string]any{}
		if existing, ok := cur[part].(map[string]any); ok {
			for k, vv := range existing {
				next[k] = vv
			}
		}
		cur[part] = next
		cur = next
	}
	cur[parts[len(parts)-1]] = v
}

// Decode decodes the section at key (the whole document when key is empty)
// into out, matching on json tags.
func (c Config) Decode(key string, out any) error {
	var in any = map[string]any(c)
	if key != "" {
		in = c.Get(key)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("decoding config %q: %w", key, err)
	}
	return nil
}
