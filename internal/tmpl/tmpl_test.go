package tmpl

import (
	"testing"
	"testing/fstest"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNaming(t *testing.T) {
	cases := []struct {
		in, slug, pascal, camel, snake string
	}{
		{"my component", "my-component", "MyComponent", "myComponent", "my_component"},
		{"MyComponent", "my-component", "MyComponent", "myComponent", "my_component"},
		{"plugin:install", "plugin-install", "PluginInstall", "pluginInstall", "plugin_install"},
		{"", "", "", "", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.slug, Slug(c.in), c.in)
		assert.Equal(t, c.pascal, Pascal(c.in), c.in)
		assert.Equal(t, c.camel, Camel(c.in), c.in)
		assert.Equal(t, c.snake, Snake(c.in), c.in)
	}
}

func TestRender(t *testing.T) {
	r := New()
	out, err := r.Render("x", `{{ pascal .name }}|{{ default "none" .missing }}|{{ json .list }}`, map[string]any{
		"name": "hello world",
		"list": []int{1},
	})
	require.NoError(t, err)
	assert.Equal(t, "HelloWorld|none|[\n  1\n]", out)
}

func TestRenderParseError(t *testing.T) {
	_, err := New().Render("bad", "{{ .x ", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing template bad")
}

func TestRenderDir(t *testing.T) {
	src := fstest.MapFS{
		"tpl/index.js.tmpl":       {Data: []byte(`export { default } from './{{ .Name }}';`)},
		"tpl/{{ .Name }}.js.tmpl": {Data: []byte(`const {{ .Name }} = () => null;`)},
		"tpl/styles/_style.scss":  {Data: []byte(`.{{ slug .Name }} {}`)},
	}
	afs := afero.NewMemMapFs()

	written, err := New().RenderDir(src, "tpl", afs, "/out", map[string]any{"Name": "Button"})
	require.NoError(t, err)
	assert.Len(t, written, 3)

	b, err := afero.ReadFile(afs, "/out/Button.js")
	require.NoError(t, err)
	assert.Equal(t, "const Button = () => null;", string(b))

	b, err = afero.ReadFile(afs, "/out/styles/_style.scss")
	require.NoError(t, err)
	assert.Equal(t, ".button {}", string(b))
}

func TestFuncsCopy(t *testing.T) {
	r := New()
	r2 := r.Funcs(map[string]any{"shout": func(s string) string { return s + "!" }})
	out, err := r2.Render("x", `{{ shout "hi" }}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "hi!", out)

	_, err = r.Render("x", `{{ shout "hi" }}`, nil)
	require.Error(t, err)
}
