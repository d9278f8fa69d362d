package generate

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/config"
	"github.com/atomic-reactor/arcli/internal/hook"
	"github.com/atomic-reactor/arcli/internal/logging"
	"github.com/atomic-reactor/arcli/internal/manifest"
	"github.com/atomic-reactor/arcli/internal/prompt"
	"github.com/atomic-reactor/arcli/internal/props"
	"github.com/atomic-reactor/arcli/internal/spinner"
	"github.com/atomic-reactor/arcli/internal/tmpl"
)

type fixture struct {
	fs      afero.Fs
	props   *props.Props
	prompt  *prompt.Scripted
	spinner *spinner.Recorder
	out     *bytes.Buffer
}

func newFixture(t *testing.T, answers map[string]any) *fixture {
	t.Helper()
	f := &fixture{
		fs:      afero.NewMemMapFs(),
		prompt:  prompt.NewScripted(answers),
		spinner: &spinner.Recorder{},
		out:     &bytes.Buffer{},
	}
	require.NoError(t, f.fs.MkdirAll("/work", 0o755))
	f.props = &props.Props{
		Cwd:       "/work",
		Home:      "/home/.arcli",
		Config:    config.Defaults(),
		Fs:        f.fs,
		Prompt:    f.prompt,
		Spinner:   f.spinner,
		Templates: tmpl.New(),
		Hooks:     hook.NewRegistry(),
		Log:       logging.Discard(),
		Out:       f.out,
		Err:       f.out,
	}
	return f
}

func (f *fixture) read(t *testing.T, path string) string {
	t.Helper()
	b, err := afero.ReadFile(f.fs, path)
	require.NoError(t, err)
	return string(b)
}

func (f *fixture) exists(path string) bool {
	ok, _ := afero.Exists(f.fs, path)
	return ok
}

func TestComponentFunction(t *testing.T) {
	f := newFixture(t, nil)
	params := action.Params{"name": "MyWidget", "type": Function, "route": "/widget, /w", "styles": true}

	require.NoError(t, Component(context.Background(), f.props, params))

	dir := "/work/src/app/components/MyWidget"
	index := f.read(t, dir+"/index.js")
	assert.Contains(t, index, "export const MyWidget = ")
	assert.Contains(t, index, "className: 'my-widget'")
	assert.Contains(t, f.read(t, dir+"/route.js"), "path: ['/widget', '/w'],")
	assert.Contains(t, f.read(t, dir+"/_my-widget.scss"), ".my-widget {")
	assert.Equal(t, "succeed:Component created!", f.spinner.Last())
}

func TestComponentClassMinimal(t *testing.T) {
	f := newFixture(t, nil)
	params := action.Params{"name": "Header", "type": Class, "destination": "src/ui"}

	require.NoError(t, Component(context.Background(), f.props, params))

	assert.Contains(t, f.read(t, "/work/src/ui/Header/index.js"), "export class Header extends Component")
	assert.False(t, f.exists("/work/src/ui/Header/route.js"))
	assert.False(t, f.exists("/work/src/ui/Header/_header.scss"))
}

func TestComponentUnknownType(t *testing.T) {
	f := newFixture(t, nil)
	err := Component(context.Background(), f.props, action.Params{"name": "X", "type": "hook"})
	require.Error(t, err)
	assert.True(t, action.IsFatal(err))
}

func TestComponentSchema(t *testing.T) {
	t.Run("new component skips overwrite", func(t *testing.T) {
		f := newFixture(t, map[string]any{"name": "my widget"})
		answers, err := f.prompt.Get(ComponentSchema(f.props))
		require.NoError(t, err)
		assert.Equal(t, "MyWidget", answers["name"])
		assert.Equal(t, Function, answers["type"])
		assert.Equal(t, false, answers["styles"])
		assert.NotContains(t, f.prompt.Asked, "overwrite")
	})

	t.Run("existing component asks and cancels", func(t *testing.T) {
		f := newFixture(t, map[string]any{"name": "my widget", "overwrite": "n"})
		require.NoError(t, f.fs.MkdirAll("/work/src/app/components/MyWidget", 0o755))

		answers, err := f.prompt.Get(ComponentSchema(f.props))
		require.NoError(t, err)
		assert.Contains(t, f.prompt.Asked, "overwrite")
		assert.Equal(t, false, answers["overwrite"])

		require.NoError(t, Component(context.Background(), f.props, answers))
		assert.Contains(t, f.out.String(), "Component creation canceled!")
		assert.False(t, f.exists("/work/src/app/components/MyWidget/index.js"))
	})

	t.Run("invalid name", func(t *testing.T) {
		f := newFixture(t, map[string]any{"name": "1up"})
		_, err := f.prompt.Get(ComponentSchema(f.props))
		require.Error(t, err)
	})
}

func TestDestination(t *testing.T) {
	f := newFixture(t, nil)
	cases := map[string]string{
		"cwd/fubar":  "/work/.cli/commands/fubar",
		"~/fubar":    "/work/.cli/commands/fubar",
		"app/fubar":  "/work/.core/.cli/commands/fubar",
		"CORE/fubar": "/work/.core/.cli/commands/fubar",
		"root/fubar": "/home/.arcli/commands/fubar",
		"tools/x":    "/work/tools/x",
		"/abs/x":     "/abs/x",
	}
	for in, want := range cases {
		assert.Equal(t, want, Destination(f.props, in), in)
	}
}

func TestCommander(t *testing.T) {
	f := newFixture(t, map[string]any{"confirmed": "y"})
	params := action.Params{"command": "fubar", "destination": "cwd/fubar"}

	require.NoError(t, Commander(context.Background(), f.props, params))

	assert.Contains(t, f.out.String(), `"destination": "/work/.cli/commands/fubar"`)
	c, err := manifest.ReadCommand(f.fs, "/work/.cli/commands/fubar/command.yaml")
	require.NoError(t, err)
	assert.Equal(t, "fubar", c.Name)
	require.Len(t, c.Steps, 1)
	assert.Equal(t, "fubar {{ .params.name }}", c.Steps[0].Message)
	assert.Equal(t, "succeed:Command creation complete!", f.spinner.Last())
}

func TestCommanderDeclined(t *testing.T) {
	f := newFixture(t, map[string]any{"confirmed": "n"})
	params := action.Params{"command": "fubar", "destination": "root/fubar"}

	require.NoError(t, Commander(context.Background(), f.props, params))

	assert.Contains(t, f.out.String(), "Command creation canceled!")
	assert.False(t, f.exists("/home/.arcli/commands/fubar/command.yaml"))
}

func TestCommanderSchemaOverwrite(t *testing.T) {
	f := newFixture(t, map[string]any{"command": "fubar", "destination": "app/fubar", "overwrite": "n"})
	require.NoError(t, afero.WriteFile(f.fs, "/work/.core/.cli/commands/fubar/command.yaml", []byte("steps: []"), 0o644))

	answers, err := f.prompt.Get(CommanderSchema(f.props))
	require.NoError(t, err)
	assert.Equal(t, false, answers["overwrite"])

	require.NoError(t, Commander(context.Background(), f.props, answers))
	assert.Contains(t, f.out.String(), "Command creation canceled!")
	assert.Equal(t, "steps: []", f.read(t, "/work/.core/.cli/commands/fubar/command.yaml"))
}
