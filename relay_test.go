package shrieker

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// scriptedChild plays back frames: each frame's chunks become readable
// after the previous command is written. Once the frames run out the
// child exits.
type scriptedChild struct {
	frames   [][]string
	frame    int
	pending  []string
	exited   bool
	maxWrite int
	pollErr  error

	polls  int
	reads  int
	writes []string
}

func newScriptedChild(frames ...[]string) *scriptedChild {
	c := &scriptedChild{frames: frames}
	if len(frames) > 0 {
		c.pending = append([]string{}, frames[0]...)
	} else {
		c.exited = true
	}
	return c
}

func (c *scriptedChild) WaitReadable(time.Duration) (bool, error) {
	c.polls++
	if c.pollErr != nil {
		return false, c.pollErr
	}
	return len(c.pending) > 0 || c.exited, nil
}

func (c *scriptedChild) Read(b []byte) (int, error) {
	c.reads++
	if len(c.pending) == 0 {
		return 0, ErrChildExited
	}
	n := copy(b, c.pending[0])
	if n < len(c.pending[0]) {
		c.pending[0] = c.pending[0][n:]
	} else {
		c.pending = c.pending[1:]
	}
	return n, nil
}

func (c *scriptedChild) Write(b []byte) (int, error) {
	if c.maxWrite > 0 && len(b) > c.maxWrite {
		b = b[:c.maxWrite]
	}
	if len(c.writes) > 0 && c.partial() {
		c.writes[len(c.writes)-1] += string(b)
	} else {
		c.writes = append(c.writes, string(b))
	}
	if !c.partial() {
		c.frame++
		if c.frame < len(c.frames) {
			c.pending = append([]string{}, c.frames[c.frame]...)
		} else {
			c.exited = true
		}
	}
	return len(b), nil
}

// partial reports whether the last write is an unfinished command. Test
// commands all end in a recognizable byte.
func (c *scriptedChild) partial() bool {
	if len(c.writes) == 0 {
		return false
	}
	last := c.writes[len(c.writes)-1]
	return len(last) == 0 || (last[0] == '#' && last[len(last)-1] != '\r')
}

// recordingPlayer returns commands in order and remembers frames
type recordingPlayer struct {
	commands []Command
	frames   []string
	acts     int
	dead     bool
	deadOn   Command
}

func (p *recordingPlayer) Observe(frame []byte) {
	p.frames = append(p.frames, string(frame))
}

func (p *recordingPlayer) Act() Command {
	cmd := p.commands[p.acts%len(p.commands)]
	p.acts++
	p.dead = p.deadOn != "" && cmd == p.deadOn
	return cmd
}

func (p *recordingPlayer) Dead() bool {
	return p.dead
}

func testRelayConfig() RelayConfig {
	cfg := DefaultRelayConfig()
	cfg.IdleTimeout = time.Millisecond
	return cfg
}

func TestRelayDrainCollectsChunks(t *testing.T) {
	defer goleak.VerifyNone(t)

	child := newScriptedChild([]string{"hello ", "wor", "ld"})
	cfg := testRelayConfig()
	cfg.ReadSize = 4
	r := NewRelay(child, &recordingPlayer{commands: []Command{Wait}}, cfg)

	frame, err := r.Drain()
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(frame))

	// Quiet child: nothing, no error
	frame, err = r.Drain()
	require.NoError(t, err)
	assert.Empty(t, frame)
}

func TestRelayEmptyBatchIsNotObserved(t *testing.T) {
	defer goleak.VerifyNone(t)

	child := newScriptedChild([]string{"first"}, nil, nil, []string{"second"})
	player := &recordingPlayer{commands: []Command{Search}}
	r := NewRelay(child, player, testRelayConfig())

	err := r.Run()
	assert.ErrorIs(t, err, ErrChildExited)

	assert.Equal(t, []string{"first", "second"}, player.frames)
	assert.Equal(t, 2, r.Frames())
	// Every iteration still sends a command
	assert.Equal(t, 4, player.acts)
	assert.Equal(t, []string{"s", "s", "s", "s"}, child.writes)
}

func TestRelayQuitEndsCleanly(t *testing.T) {
	defer goleak.VerifyNone(t)

	child := newScriptedChild([]string{"You die..."})
	player := &recordingPlayer{commands: []Command{Quit}, deadOn: Quit}
	r := NewRelay(child, player, testRelayConfig())

	require.NoError(t, r.Run())
	assert.Equal(t, []string{"q"}, child.writes)
}

func TestRelayMirror(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mirror bytes.Buffer
	child := newScriptedChild([]string{"\x1b[H", "map"}, []string{"\x1b[7m--More--"})
	cfg := testRelayConfig()
	cfg.Mirror = &mirror
	r := NewRelay(child, &recordingPlayer{commands: []Command{More}}, cfg)

	assert.ErrorIs(t, r.Run(), ErrChildExited)
	assert.Equal(t, "\x1b[Hmap\x1b[7m--More--", mirror.String())
}

func TestRelayWritesWholeCommand(t *testing.T) {
	defer goleak.VerifyNone(t)

	child := newScriptedChild([]string{"altar"}, []string{"You begin praying"})
	child.maxWrite = 2
	player := &recordingPlayer{commands: []Command{Pray, Wait}}
	r := NewRelay(child, player, testRelayConfig())

	require.NoError(t, r.Step())
	assert.Equal(t, []string{"#pray\r"}, child.writes)
	require.NoError(t, r.Step())
	assert.Equal(t, []string{"#pray\r", "."}, child.writes)
}

func TestRelayTransportFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("poll exploded")
	child := newScriptedChild([]string{"x"})
	child.pollErr = boom
	r := NewRelay(child, &recordingPlayer{commands: []Command{Wait}}, testRelayConfig())

	err := r.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrChildExited)
}

func TestNewRelayDefaults(t *testing.T) {
	r := NewRelay(newScriptedChild(), &recordingPlayer{}, RelayConfig{})
	assert.Equal(t, DefaultIdleTimeout, r.cfg.IdleTimeout)
	assert.Equal(t, DefaultReadSize, r.cfg.ReadSize)
	assert.NotNil(t, r.logger)
}

func TestRelayQuitThenTombstoneEndsCleanly(t *testing.T) {
	defer goleak.VerifyNone(t)

	child := newScriptedChild(
		[]string{"\x1b[H\x1b[2JYou die...\x1b[K"},
		[]string{"\x1b[H\x1b[2JRest in peace --More--"},
	)
	c := newTestController(&scriptedStrategy{action: West})
	r := NewRelay(child, c, testRelayConfig())

	require.NoError(t, r.Run())
	assert.Equal(t, []string{"q", "\r"}, child.writes)
	assert.True(t, c.Dead())
}
