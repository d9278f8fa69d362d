// Package spinner shows progress while an action sequence runs. A bubbletea
// spinner is used on terminals; plain lines are written everywhere else.
package spinner

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Spinner is the progress handle shared through Props.
type Spinner interface {
	Start(text string)
	SetText(text string)
	Succeed(text string)
	Fail(text string)
	// Persist stops the spinner and leaves symbol and text on screen.
	Persist(symbol, text string)
	Stop()
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	spinStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

const (
	successSymbol = "✔"
	failSymbol    = "✖"
)

// New returns a terminal spinner when w is a TTY and a Plain spinner
// otherwise.
func New(w io.Writer) Spinner {
	if f, ok := w.(*os.File); ok && isTerminal(f) && os.Getenv("CI") == "" {
		return NewTerminal(f)
	}
	return NewPlain(w)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type nop struct{}

// Nop returns a spinner that does nothing.
func Nop() Spinner { return nop{} }

func (nop) Start(string)           {}
func (nop) SetText(string)         {}
func (nop) Succeed(string)         {}
func (nop) Fail(string)            {}
func (nop) Persist(string, string) {}
func (nop) Stop()                  {}
