package hook

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	calls []string
}

func TestRunOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("build", 10, func(_ context.Context, p any) error {
		p.(*payload).calls = append(p.(*payload).calls, "late")
		return nil
	})
	On(r, "build", func(_ context.Context, p *payload) error {
		p.calls = append(p.calls, "early")
		return nil
	})

	p := &payload{}
	require.NoError(t, Run(context.Background(), r, "build", p))
	assert.Equal(t, []string{"early", "late"}, p.calls)
}

func TestRunStopsOnError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	called := false
	On(r, "x", func(context.Context, *payload) error { return boom })
	r.Register("x", 1, func(context.Context, any) error {
		called = true
		return nil
	})

	err := Run(context.Background(), r, "x", &payload{})
	require.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestUnregisterAndNil(t *testing.T) {
	r := NewRegistry()
	id := On(r, "x", func(context.Context, *payload) error { return errors.New("should not run") })
	r.Unregister(id)
	require.NoError(t, Run(context.Background(), r, "x", &payload{}))

	var nilReg *Registry
	require.NoError(t, nilReg.RunAny(context.Background(), "x", nil))
}

func TestOnIgnoresOtherPayloadTypes(t *testing.T) {
	r := NewRegistry()
	On(r, "x", func(context.Context, *payload) error { return errors.New("wrong type") })
	require.NoError(t, r.RunAny(context.Background(), "x", "a string"))
}
