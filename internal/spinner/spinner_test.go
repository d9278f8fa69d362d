package spinner

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlain(t *testing.T) {
	var buf bytes.Buffer
	s := NewPlain(&buf)

	s.Start("Downloading")
	s.SetText("Downloading")
	s.SetText("Extracting")
	s.Succeed("Installed")
	s.Start("Again")
	s.Fail("")

	assert.Equal(t, "- Downloading\n- Extracting\n✔ Installed\n- Again\n✖ Again\n", buf.String())
}

func TestNewUsesPlainForBuffers(t *testing.T) {
	var buf bytes.Buffer
	_, ok := New(&buf).(*Plain)
	assert.True(t, ok)
}

func TestTerminalWithoutStartWritesLine(t *testing.T) {
	var buf bytes.Buffer
	s := NewTerminal(&buf)
	s.Persist("*", "done")
	s.Stop()
	assert.Equal(t, "* done\n", buf.String())
}

func TestModelView(t *testing.T) {
	m := newModel("working")
	m.Update(textMsg("still working"))
	assert.Contains(t, m.View(), "still working")

	_, cmd := m.Update(finishMsg{line: "✔ ok"})
	assert.NotNil(t, cmd)
	assert.Equal(t, "✔ ok\n", m.View())
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Start("a")
	r.Fail("b")
	assert.Equal(t, []string{"start:a", "fail:b"}, r.Events)
	assert.Equal(t, "fail:b", r.Last())
}
