package prompt

import (
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cast"

	"github.com/atomic-reactor/arcli/internal/branding"
)

// Survey asks questions on the terminal.
type Survey struct {
	base
	opts []survey.AskOpt
}

// NewSurvey returns a terminal prompter. Extra options are passed to every
// question (for example survey.WithStdio).
func NewSurvey(opts ...survey.AskOpt) *Survey {
	return &Survey{opts: opts}
}

// Get resolves every property in schema.
func (s *Survey) Get(schema Schema) (map[string]any, error) {
	return s.resolve(schema, s.ask)
}

func interactiveAllowed() error {
	if os.Getenv(branding.EnvVar("NO_INTERACTIVE")) != "" {
		return ErrInteractiveDisabled
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return ErrInteractiveDisabled
	}
	return nil
}

func (s *Survey) ask(p Property) (any, error) {
	if len(s.opts) == 0 {
		if err := interactiveAllowed(); err != nil {
			return nil, err
		}
	}

	opts := append([]survey.AskOpt{
		survey.WithValidator(func(ans any) error {
			if c, ok := ans.(survey.OptionAnswer); ok {
				ans = c.Value
			}
			return p.validate(ans)
		}),
	}, s.opts...)

	var (
		v   any
		err error
	)
	msg := branding.PromptPrefix() + p.label() + ":"
	switch p.Kind {
	case Confirm:
		var b bool
		err = survey.AskOne(&survey.Confirm{Message: msg, Default: truthy(p.Default)}, &b, s.opts...)
		v = b
	case Password:
		var str string
		err = survey.AskOne(&survey.Password{Message: msg}, &str, opts...)
		v = str
	case Select:
		var str string
		q := &survey.Select{Message: msg, Options: p.Choices}
		if p.Default != nil {
			q.Default = cast.ToString(p.Default)
		}
		err = survey.AskOne(q, &str, s.opts...)
		v = str
	default:
		var str string
		err = survey.AskOne(&survey.Input{Message: msg, Default: cast.ToString(p.Default)}, &str, opts...)
		v = str
	}

	if errors.Is(err, terminal.InterruptErr) {
		return nil, ErrCanceled
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
