package action

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomic-reactor/arcli/internal/props"
	"github.com/atomic-reactor/arcli/internal/spinner"
)

func TestRunOrder(t *testing.T) {
	var trace []string
	rec := func(name string) Step {
		return func(_ context.Context, opts *Options) (any, error) {
			trace = append(trace, "start:"+opts.Action)
			trace = append(trace, "end:"+name)
			return nil, nil
		}
	}

	m := NewMap(Entry{"a", rec("a")}, Entry{"b", rec("b")}, Entry{"c", rec("c")})
	_, err := Run(context.Background(), m, &Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"start:a", "end:a",
		"start:b", "end:b",
		"start:c", "end:c",
	}, trace)
}

func TestRunFailFast(t *testing.T) {
	boom := errors.New("boom")
	cRan := false

	m := NewMap(
		Entry{"a", value(1)},
		Entry{"b", func(context.Context, *Options) (any, error) { return nil, boom }},
		Entry{"c", func(context.Context, *Options) (any, error) {
			cRan = true
			return nil, nil
		}},
	)

	res, err := Run(context.Background(), m, nil)
	assert.True(t, err == boom, "error must be the step's own value")
	assert.False(t, cRan)
	assert.Equal(t, []string{"a"}, res.Names())
}

func TestRunFatalPropagates(t *testing.T) {
	m := NewMap(Entry{"check", func(context.Context, *Options) (any, error) {
		return nil, Fatal("input plugin name")
	}})

	_, err := Run(context.Background(), m, nil)
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.Equal(t, "input plugin name", err.Error())
}

func TestRunAccumulatesResults(t *testing.T) {
	m := NewMap(Entry{"a", value(1)}, Entry{"b", value(2)})

	res, err := Run(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, res.Values())
	assert.Equal(t, 2, res.Len())
}

func TestRunSharesParams(t *testing.T) {
	m := NewMap(
		Entry{"set", func(_ context.Context, opts *Options) (any, error) {
			opts.Params.Set("plugin.name", "@scope/x")
			return nil, nil
		}},
		Entry{"read", func(_ context.Context, opts *Options) (any, error) {
			return opts.Params.String("plugin.name"), nil
		}},
	)

	opts := &Options{}
	res, err := Run(context.Background(), m, opts)
	require.NoError(t, err)
	v, _ := res.Get("read")
	assert.Equal(t, "@scope/x", v)
	assert.Equal(t, "", opts.Action)
}

func TestRunNilStep(t *testing.T) {
	m := NewMap(Entry{"noop", nil}, Entry{"a", value(1)})
	res, err := Run(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"noop", "a"}, res.Names())
}

func TestFatalfKeepsCause(t *testing.T) {
	cause := errors.New("missing")
	err := Fatalf("reading package.json: %w", cause)
	assert.Equal(t, "reading package.json: missing", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := errors.Join(errors.New("other"), err)
	assert.True(t, IsFatal(wrapped))
	assert.False(t, IsFatal(cause))
}

func TestOptionsMessage(t *testing.T) {
	sp := &spinner.Recorder{}
	opts := &Options{Props: &props.Props{Spinner: sp}}
	opts.Message("downloading")
	assert.Equal(t, []string{"text:downloading"}, sp.Events)

	(&Options{}).Message("no props")
}
