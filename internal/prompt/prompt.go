// Package prompt collects command parameters interactively.
//
// A Schema lists the properties a command needs. Values supplied up front
// with SetOverride (usually from command-line flags) are taken as-is and
// never asked for; everything else is asked, in order.
package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

var (
	// ErrCanceled is returned when the user interrupts a prompt or declines
	// a confirmation.
	ErrCanceled = errors.New("canceled")

	// ErrInteractiveDisabled is returned when a value must be asked for but
	// prompting is not possible.
	ErrInteractiveDisabled = errors.New("interactive prompts are disabled")
)

// Kind selects how a property is asked.
type Kind int

const (
	Input Kind = iota
	Password
	Confirm
	Select
)

// Property describes one value to collect.
type Property struct {
	Name        string
	Description string
	Kind        Kind
	Default     any
	Required    bool
	Pattern     *regexp.Regexp
	// Message is shown when Pattern does not match.
	Message string
	Choices []string
	// Ask reports whether the property applies given earlier answers.
	Ask func(answers map[string]any) bool
	// Before transforms the collected value.
	Before func(v any) any
}

// Schema is an ordered list of properties.
type Schema struct {
	Properties []Property
}

// Prompter is the prompt handle shared through Props.
type Prompter interface {
	Start()
	Stop()
	SetOverride(values map[string]any)
	Override() map[string]any
	Get(schema Schema) (map[string]any, error)
}

// asker asks for a single property.
type asker func(p Property) (any, error)

// base holds the state every Prompter shares.
type base struct {
	stopped   bool
	overrides map[string]any
}

func (b *base) Start() { b.stopped = false }

func (b *base) Stop() { b.stopped = true }

func (b *base) SetOverride(values map[string]any) {
	b.overrides = make(map[string]any, len(values))
	for k, v := range values {
		b.overrides[k] = v
	}
}

func (b *base) Override() map[string]any {
	out := make(map[string]any, len(b.overrides))
	for k, v := range b.overrides {
		out[k] = v
	}
	return out
}

func (b *base) resolve(schema Schema, ask asker) (map[string]any, error) {
	answers := make(map[string]any)
	for _, p := range schema.Properties {
		if p.Ask != nil && !p.Ask(answers) {
			continue
		}

		v, ok := b.overrides[p.Name]
		if ok && !empty(v) {
			if err := p.validate(v); err != nil {
				return nil, err
			}
		} else {
			if b.stopped {
				return nil, ErrCanceled
			}
			var err error
			if v, err = ask(p); err != nil {
				return nil, err
			}
		}

		if p.Before != nil {
			v = p.Before(v)
		}
		answers[p.Name] = v
	}
	return answers, nil
}

func (p Property) validate(v any) error {
	if p.Required && empty(v) {
		return fmt.Errorf("%s is required", p.label())
	}
	if p.Pattern != nil && !empty(v) && !p.Pattern.MatchString(cast.ToString(v)) {
		if p.Message != "" {
			return fmt.Errorf("%s: %s", p.label(), p.Message)
		}
		return fmt.Errorf("%s: invalid value %q", p.label(), cast.ToString(v))
	}
	return nil
}

func (p Property) label() string {
	if p.Description != "" {
		return strings.TrimSuffix(strings.TrimSpace(p.Description), ":")
	}
	return p.Name
}

func empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

// Ask asks a single property and returns its value.
func Ask(pr Prompter, p Property) (any, error) {
	answers, err := pr.Get(Schema{Properties: []Property{p}})
	if err != nil {
		return nil, err
	}
	return answers[p.Name], nil
}

// ConfirmOrCancel asks a yes/no question and returns ErrCanceled on "no".
// An override under name skips the question.
func ConfirmOrCancel(pr Prompter, name, message string) error {
	v, err := Ask(pr, Property{
		Name:        name,
		Description: message,
		Kind:        Confirm,
		Default:     false,
		Before:      func(v any) any { return truthy(v) },
	})
	if err != nil {
		return err
	}
	if v != true {
		return ErrCanceled
	}
	return nil
}

func truthy(v any) bool {
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "y", "yes":
			return true
		}
	}
	return cast.ToBool(v)
}
