package spinner

import (
	"fmt"
	"io"
	"sync"
)

// Plain writes one line per state change. It is used when output is not a
// terminal.
type Plain struct {
	mu   sync.Mutex
	w    io.Writer
	text string
}

// NewPlain returns a Plain spinner writing to w.
func NewPlain(w io.Writer) *Plain {
	return &Plain{w: w}
}

func (p *Plain) Start(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.text = text
	if text != "" {
		fmt.Fprintf(p.w, "- %s\n", text)
	}
}

func (p *Plain) SetText(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if text == p.text || text == "" {
		return
	}
	p.text = text
	fmt.Fprintf(p.w, "- %s\n", text)
}

func (p *Plain) Succeed(text string) { p.Persist(successSymbol, text) }

func (p *Plain) Fail(text string) { p.Persist(failSymbol, text) }

func (p *Plain) Persist(symbol, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if text == "" {
		text = p.text
	}
	p.text = ""
	fmt.Fprintf(p.w, "%s %s\n", symbol, text)
}

func (p *Plain) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.text = ""
}
