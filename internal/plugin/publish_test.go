package plugin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/project"
	"github.com/atomic-reactor/arcli/internal/prompt"
)

func TestAuthStoresSessionToken(t *testing.T) {
	stub := newRegistryStub(t, "")
	f := newFixture(t, stub, map[string]any{"username": "ann", "password": "secret"})

	require.NoError(t, Auth(context.Background(), f.props, action.Params{}))

	assert.Equal(t, "r:abc", f.props.Settings.GetString(sessionKey))
	assert.Equal(t, "succeed:Authenticated!", f.spinner.Last())
}

func TestAuthBadPassword(t *testing.T) {
	stub := newRegistryStub(t, "")
	f := newFixture(t, stub, map[string]any{"username": "ann", "password": "wrong"})

	err := Auth(context.Background(), f.props, action.Params{})
	require.Error(t, err)
	assert.Empty(t, f.props.Settings.GetString(sessionKey))
}

func TestAuthCanceled(t *testing.T) {
	stub := newRegistryStub(t, "")
	f := newFixture(t, stub, nil)
	f.props.Prompt = &cancelingPrompter{Scripted: prompt.NewScripted(nil)}

	require.NoError(t, Auth(context.Background(), f.props, action.Params{}))
	assert.Contains(t, f.out.String(), "Authentication canceled!")
}

func TestPublish(t *testing.T) {
	stub := newRegistryStub(t, "")
	f := newFixture(t, stub, nil)
	require.NoError(t, f.props.Settings.Set(sessionKey, "r:abc"))
	f.write(t, "/work/plugin/package.json", `{"name":"my-plugin","version":"0.1.0","description":"demo"}`)
	f.write(t, "/work/plugin/index.js", "export default {}")
	f.write(t, "/work/plugin/node_modules/dep/index.js", "ignored")

	err := Publish(context.Background(), f.props, action.Params{"path": "plugin", "bump": "patch"})
	require.NoError(t, err)

	require.NotNil(t, stub.published)
	assert.Equal(t, "my-plugin", stub.published["name"])
	assert.Equal(t, "0.1.1", stub.published["version"])
	assert.Equal(t, "demo", stub.published["description"])
	assert.Len(t, stub.published["checksum"], 64)
	assert.Equal(t, 1, stub.uploads)

	pkg, err := project.ReadPackage(f.fs, "/work/plugin/package.json")
	require.NoError(t, err)
	assert.Equal(t, "0.1.1", pkg["version"])

	assert.False(t, f.exists("/home/.arcli/tmp/publish/my-plugin-0.1.1.tgz"))
	assert.Equal(t, "succeed:Published!", f.spinner.Last())
}

func TestPublishRejectsPublishedVersion(t *testing.T) {
	stub := newRegistryStub(t, "")
	f := newFixture(t, stub, nil)
	require.NoError(t, f.props.Settings.Set(sessionKey, "r:abc"))
	f.write(t, "/work/package.json", `{"name":"@atomic/ui","version":"1.0.0"}`)

	err := Publish(context.Background(), f.props, action.Params{})
	require.True(t, action.IsFatal(err))
	assert.Contains(t, err.Error(), "already published")
	assert.Zero(t, stub.uploads)
}

func TestPublishBumpToPublishedVersionKeepsPackage(t *testing.T) {
	stub := newRegistryStub(t, "")
	f := newFixture(t, stub, nil)
	require.NoError(t, f.props.Settings.Set(sessionKey, "r:abc"))
	f.write(t, "/work/package.json", `{"name":"@atomic/ui","version":"0.4.2"}`)

	err := Publish(context.Background(), f.props, action.Params{"bump": "major"})
	require.True(t, action.IsFatal(err))
	assert.Contains(t, err.Error(), "@atomic/ui@1.0.0 is already published")

	pkg, err := project.ReadPackage(f.fs, "/work/package.json")
	require.NoError(t, err)
	assert.Equal(t, "0.4.2", pkg["version"])
	assert.Zero(t, stub.uploads)
}

func TestPublishStaleSession(t *testing.T) {
	stub := newRegistryStub(t, "")
	f := newFixture(t, stub, nil)
	require.NoError(t, f.props.Settings.Set(sessionKey, "r:expired"))
	f.write(t, "/work/package.json", `{"name":"my-plugin","version":"0.1.0"}`)

	err := Publish(context.Background(), f.props, action.Params{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth")
	assert.Nil(t, stub.published)
}

// cancelingPrompter behaves like a user pressing Ctrl-C at the first
// question.
type cancelingPrompter struct {
	*prompt.Scripted
}

func (c *cancelingPrompter) Get(prompt.Schema) (map[string]any, error) {
	return nil, prompt.ErrCanceled
}
