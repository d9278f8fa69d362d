package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlayShallow(t *testing.T) {
	got := Overlay(
		Config{"x": 1, "y": 2},
		Config{"y": 3},
		Config{"y": 4, "z": 5},
	)
	assert.Equal(t, Config{"x": 1, "y": 4, "z": 5}, got)
}

func TestOverlayReplacesNestedObjects(t *testing.T) {
	base := Config{"registry": map[string]any{"server": "a", "app": "b"}}
	got := Overlay(base, Config{"registry": map[string]any{"server": "c"}})
	assert.Equal(t, map[string]any{"server": "c"}, got["registry"])
	assert.Equal(t, "b", base.String("registry.app"))
}

func TestLoadLayers(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/.core/.cli/config.json", []byte(`{"x":1,"y":2}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/h/config.json", []byte(`{"y":3}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/p/.cli/config.json", []byte(`{"y":4,"z":5}`), 0o644))

	c, err := Load(fs, "/p", "/h/config.json")
	require.NoError(t, err)
	assert.EqualValues(t, 1, c.Get("x"))
	assert.EqualValues(t, 4, c.Get("y"))
	assert.EqualValues(t, 5, c.Get("z"))
	assert.Equal(t, "ReactiumRegistry", c.String("registry.app"))
}

func TestLoadMissingLayers(t *testing.T) {
	c, err := Load(afero.NewMemMapFs(), "/p", "/h/config.json")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
}

func TestLoadMalformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/.cli/config.json", []byte(`{`), 0o644))
	_, err := Load(fs, "/p", "/h/config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config /p/.cli/config.json")
}

func TestSections(t *testing.T) {
	c := Defaults()

	r, err := c.Registry()
	require.NoError(t, err)
	assert.Equal(t, "https://v1.reactium.io/api", r.Server)

	h, err := c.HTTP()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, h.Timeout)

	p, err := c.Project()
	require.NoError(t, err)
	require.Len(t, p.Apps, 3)
	assert.Equal(t, "API", p.Apps[0].Dir)
	assert.Equal(t, 9000, p.Apps[0].PortMin)
	assert.Equal(t, []string{"run", "local"}, p.Args)

	f, err := c.Framework("reactium")
	require.NoError(t, err)
	assert.Contains(t, f.Repo, "Reactium")
}

func TestCommandDirs(t *testing.T) {
	dirs := Defaults().CommandDirs("/h", "/p", "/opt/arcli")
	assert.Equal(t, []string{"/h/commands", "/p/.core/.cli/commands", "/p/.cli/commands"}, dirs)
}

func TestSetDoesNotLeakIntoLayers(t *testing.T) {
	base := Defaults()
	c := Overlay(base)
	c.Set("registry.session_token", "abc")
	assert.Equal(t, "abc", c.String("registry.session_token"))
	assert.Equal(t, "", base.String("registry.session_token"))
}
