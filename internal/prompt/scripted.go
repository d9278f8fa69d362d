package prompt

import "fmt"

// Scripted answers from a fixed map. It never touches the terminal and is
// used for unattended runs and tests.
type Scripted struct {
	base
	Answers map[string]any
	// Asked lists every property name that had to be answered from
	// Answers or a default, in order.
	Asked []string
}

// NewScripted returns a prompter answering from answers.
func NewScripted(answers map[string]any) *Scripted {
	return &Scripted{Answers: answers}
}

// Get resolves every property in schema.
func (s *Scripted) Get(schema Schema) (map[string]any, error) {
	return s.resolve(schema, s.ask)
}

func (s *Scripted) ask(p Property) (any, error) {
	s.Asked = append(s.Asked, p.Name)
	v, ok := s.Answers[p.Name]
	if !ok {
		if p.Default == nil && p.Required {
			return nil, fmt.Errorf("%s: %w", p.Name, ErrInteractiveDisabled)
		}
		v = p.Default
	}
	if err := p.validate(v); err != nil {
		return nil, err
	}
	return v, nil
}
