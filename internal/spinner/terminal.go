package spinner

import (
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Terminal animates a bubbletea spinner on its own goroutine. It only
// renders; callers keep doing their work on the calling goroutine.
type Terminal struct {
	mu      sync.Mutex
	w       io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTerminal returns a Terminal spinner rendering to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

type textMsg string

type finishMsg struct{ line string }

type model struct {
	spinner spinner.Model
	text    string
	final   string
	done    bool
}

func newModel(text string) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinStyle
	return &model{spinner: s, text: text}
}

func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case textMsg:
		m.text = string(msg)
		return m, nil
	case finishMsg:
		m.final = msg.line
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) View() string {
	if m.done {
		if m.final == "" {
			return ""
		}
		return m.final + "\n"
	}
	return m.spinner.View() + " " + m.text
}

func (t *Terminal) Start(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.program != nil {
		t.program.Send(textMsg(text))
		return
	}
	t.program = tea.NewProgram(newModel(text), tea.WithInput(nil), tea.WithOutput(t.w))
	t.done = make(chan struct{})
	go func(p *tea.Program, done chan struct{}) {
		defer close(done)
		_, _ = p.Run()
	}(t.program, t.done)
}

func (t *Terminal) SetText(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.program != nil {
		t.program.Send(textMsg(text))
	}
}

func (t *Terminal) Succeed(text string) {
	t.Persist(successStyle.Render(successSymbol), text)
}

func (t *Terminal) Fail(text string) {
	t.Persist(failStyle.Render(failSymbol), text)
}

func (t *Terminal) Persist(symbol, text string) {
	t.finish(symbol + " " + text)
}

func (t *Terminal) Stop() {
	t.finish("")
}

func (t *Terminal) finish(line string) {
	t.mu.Lock()
	p, done := t.program, t.done
	t.program, t.done = nil, nil
	t.mu.Unlock()

	if p == nil {
		if line != "" {
			_, _ = io.WriteString(t.w, line+"\n")
		}
		return
	}
	p.Send(finishMsg{line: line})
	<-done
}
