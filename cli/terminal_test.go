package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostMirrorsVerbatim(t *testing.T) {
	var out bytes.Buffer
	h := New(Options{Output: &out, AltScreen: true})
	require.NoError(t, h.Start())

	frame := []byte("\x1b[H\x1b[2JHello\x1b[7m--More--\x1b[m")
	n, err := h.Write(frame)
	require.NoError(t, err)
	assert.Equal(t, len(frame), n)

	// Not a terminal, so no alternate screen
	assert.Equal(t, frame, out.Bytes())
}

func TestHostStopRestores(t *testing.T) {
	var out bytes.Buffer
	h := New(Options{Output: &out})
	require.NoError(t, h.Start())
	require.NoError(t, h.Stop())
	assert.Equal(t, resetAttrs+showCursor, out.String())

	// Second stop writes nothing
	require.NoError(t, h.Stop())
	assert.Equal(t, resetAttrs+showCursor, out.String())
}

func TestHostStopWithoutStart(t *testing.T) {
	var out bytes.Buffer
	h := New(Options{Output: &out})
	require.NoError(t, h.Close())
	assert.Empty(t, out.String())
}

func TestNonTerminalCapabilities(t *testing.T) {
	h := New(Options{Output: &bytes.Buffer{}})
	caps := h.Capabilities()
	assert.False(t, caps.IsTerminal)
	assert.Equal(t, 80, caps.Width)
	assert.Equal(t, 24, caps.Height)
	assert.NoError(t, h.CheckSize(50, 200))
}
