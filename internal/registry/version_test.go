package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec(t *testing.T) {
	cases := []struct{ in, name, version string }{
		{"@atomic-reactor/admin@1.2.3", "@atomic-reactor/admin", "1.2.3"},
		{"@atomic-reactor/admin", "@atomic-reactor/admin", Latest},
		{"plain@^2.0.0", "plain", "^2.0.0"},
		{"plain", "plain", Latest},
		{"plain@", "plain", Latest},
	}
	for _, c := range cases {
		name, version := ParseSpec(c.in)
		assert.Equal(t, c.name, name, c.in)
		assert.Equal(t, c.version, version, c.in)
	}
}

func TestResolve(t *testing.T) {
	p := &Plugin{Name: "x", Versions: map[string]Version{
		"1.0.0":  {File: File{Name: "a"}},
		"1.10.0": {File: File{Name: "c"}},
		"1.2.0":  {File: File{Name: "b"}},
		"beta":   {File: File{Name: "d"}},
	}}

	v, err := p.Resolve(Latest)
	require.NoError(t, err)
	assert.Equal(t, "1.10.0", v.Version)

	v, err = p.Resolve("1.2.0")
	require.NoError(t, err)
	assert.Equal(t, "b", v.File.Name)

	v, err = p.Resolve("beta")
	require.NoError(t, err)
	assert.Equal(t, "d", v.File.Name)

	v, err = p.Resolve("~1.2")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", v.Version)

	_, err = p.Resolve("^2.0.0")
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{"1.0.0", "1.2.0", "1.10.0"}, p.VersionList())
}

func TestBump(t *testing.T) {
	got, err := Bump("1.2.3", "minor")
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", got)

	got, err = Bump("", "")
	require.NoError(t, err)
	assert.Equal(t, "0.0.1", got)

	_, err = Bump("1.0.0", "huge")
	require.Error(t, err)
}

func TestSatisfies(t *testing.T) {
	ok, err := Satisfies("3.1.0", ">=3.0.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Satisfies("2.9.0", "")
	require.NoError(t, err)
	assert.True(t, ok)
}
