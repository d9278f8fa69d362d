package prompt

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverridesSkipQuestions(t *testing.T) {
	s := NewScripted(map[string]any{"name": "asked"})
	s.SetOverride(map[string]any{"name": "flag"})

	got, err := s.Get(Schema{Properties: []Property{{Name: "name", Required: true}}})
	require.NoError(t, err)
	assert.Equal(t, "flag", got["name"])
	assert.Empty(t, s.Asked)
}

func TestEmptyOverrideIsAsked(t *testing.T) {
	s := NewScripted(map[string]any{"name": "asked"})
	s.SetOverride(map[string]any{"name": ""})

	got, err := s.Get(Schema{Properties: []Property{{Name: "name"}}})
	require.NoError(t, err)
	assert.Equal(t, "asked", got["name"])
	assert.Equal(t, []string{"name"}, s.Asked)
}

func TestAskAndBefore(t *testing.T) {
	s := NewScripted(map[string]any{"type": "class", "route": "/x", "name": "my thing"})
	schema := Schema{Properties: []Property{
		{Name: "name", Before: func(v any) any { return strings.ToUpper(v.(string)) }},
		{Name: "type"},
		{Name: "route", Ask: func(a map[string]any) bool { return a["type"] == "function" }},
	}}

	got, err := s.Get(schema)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "MY THING", "type": "class"}, got)
}

func TestPatternAndRequired(t *testing.T) {
	p := Property{Name: "version", Pattern: regexp.MustCompile(`^\d+\.\d+\.\d+$`), Message: "use x.y.z"}

	s := NewScripted(nil)
	s.SetOverride(map[string]any{"version": "abc"})
	_, err := s.Get(Schema{Properties: []Property{p}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use x.y.z")

	_, err = NewScripted(nil).Get(Schema{Properties: []Property{{Name: "x", Required: true}}})
	require.ErrorIs(t, err, ErrInteractiveDisabled)
}

func TestDefaults(t *testing.T) {
	got, err := NewScripted(nil).Get(Schema{Properties: []Property{{Name: "port", Default: 3030}}})
	require.NoError(t, err)
	assert.Equal(t, 3030, got["port"])
}

func TestConfirmOrCancel(t *testing.T) {
	require.NoError(t, ConfirmOrCancel(NewScripted(map[string]any{"confirmed": "Y"}), "confirmed", "Proceed?"))
	require.ErrorIs(t, ConfirmOrCancel(NewScripted(map[string]any{"confirmed": "n"}), "confirmed", "Proceed?"), ErrCanceled)

	s := NewScripted(nil)
	s.SetOverride(map[string]any{"confirmed": true})
	require.NoError(t, ConfirmOrCancel(s, "confirmed", "Proceed?"))
}

func TestStopCancelsQuestions(t *testing.T) {
	s := NewScripted(map[string]any{"x": "1"})
	s.Stop()
	_, err := s.Get(Schema{Properties: []Property{{Name: "x"}}})
	require.ErrorIs(t, err, ErrCanceled)

	s.Start()
	got, err := s.Get(Schema{Properties: []Property{{Name: "x"}}})
	require.NoError(t, err)
	assert.Equal(t, "1", got["x"])
}

func TestOverrideIsCopied(t *testing.T) {
	s := NewScripted(nil)
	in := map[string]any{"a": 1}
	s.SetOverride(in)
	in["a"] = 2
	assert.Equal(t, map[string]any{"a": 1}, s.Override())
}

func TestSurveyDisabled(t *testing.T) {
	t.Setenv("ARCLI_NO_INTERACTIVE", "1")
	_, err := NewSurvey().Get(Schema{Properties: []Property{{Name: "x"}}})
	require.ErrorIs(t, err, ErrInteractiveDisabled)
}
