package shrieker

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// ErrChildExited is returned when the game process goes away
var ErrChildExited = errors.New("child process exited")

// Default relay settings
const (
	DefaultIdleTimeout = 300 * time.Millisecond
	DefaultReadSize    = 1024
)

// Child is the relay's side of the game process
type Child interface {
	io.Reader
	io.Writer
	// WaitReadable blocks until output is available or the timeout elapses
	WaitReadable(timeout time.Duration) (bool, error)
}

// Player consumes frames and produces commands. Controller is a Player.
type Player interface {
	Observe(frame []byte)
	Act() Command
	// Dead reports whether the final quit has been sent
	Dead() bool
}

// RelayConfig configures a Relay
type RelayConfig struct {
	// IdleTimeout is how long the child must stay quiet for a frame to
	// count as complete
	IdleTimeout time.Duration
	// ReadSize is the chunk size for each read
	ReadSize int
	// Mirror receives every frame verbatim; nil disables mirroring
	Mirror io.Writer
	Logger *zap.Logger
}

// DefaultRelayConfig returns the default relay settings
func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		IdleTimeout: DefaultIdleTimeout,
		ReadSize:    DefaultReadSize,
	}
}

// Relay runs the frame-by-frame exchange between a child and a player:
// drain a frame, show it to the player, send the player's command, repeat.
type Relay struct {
	child  Child
	player Player
	cfg    RelayConfig
	logger *zap.Logger

	frames   int
	quitSent bool
}

// NewRelay creates a relay between child and player
func NewRelay(child Child, player Player, cfg RelayConfig) *Relay {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.ReadSize <= 0 {
		cfg.ReadSize = DefaultReadSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relay{
		child:  child,
		player: player,
		cfg:    cfg,
		logger: logger,
	}
}

// Drain reads everything the child writes until it has been quiet for a
// full idle timeout. An empty result means nothing arrived at all. On a
// read error the bytes gathered so far are returned with the error.
func (r *Relay) Drain() ([]byte, error) {
	var frame []byte
	chunk := make([]byte, r.cfg.ReadSize)
	for {
		ready, err := r.child.WaitReadable(r.cfg.IdleTimeout)
		if err != nil {
			return frame, err
		}
		if !ready {
			return frame, nil
		}
		n, err := r.child.Read(chunk)
		frame = append(frame, chunk[:n]...)
		if err != nil {
			return frame, err
		}
	}
}

// Step runs one iteration of the loop. It returns io.EOF once the game
// has ended after the player's final command.
func (r *Relay) Step() error {
	frame, readErr := r.Drain()
	if len(frame) > 0 {
		r.frames++
		r.player.Observe(frame)
		if r.cfg.Mirror != nil {
			if _, err := r.cfg.Mirror.Write(frame); err != nil {
				r.logger.Warn("mirror write failed", zap.Error(err))
			}
		}
	}
	if readErr != nil {
		return r.exitError("read", readErr)
	}

	cmd := r.player.Act()
	if err := writeFull(r.child, cmd.Bytes()); err != nil {
		return r.exitError("write", err)
	}
	r.quitSent = r.quitSent || r.player.Dead()
	return nil
}

// Run loops until the child exits. It returns nil when the child exits
// after the player's final command, ErrChildExited when it exits on its
// own, and a wrapped error when the transport fails.
func (r *Relay) Run() error {
	r.logger.Info("relay started", zap.Duration("idle_timeout", r.cfg.IdleTimeout))
	for {
		if err := r.Step(); err != nil {
			if errors.Is(err, io.EOF) {
				r.logger.Info("game over", zap.Int("frames", r.frames))
				return nil
			}
			r.logger.Error("relay stopped", zap.Int("frames", r.frames), zap.Error(err))
			return err
		}
	}
}

// Frames returns how many non-empty frames have been observed
func (r *Relay) Frames() int {
	return r.frames
}

func (r *Relay) exitError(op string, err error) error {
	if errors.Is(err, ErrChildExited) || errors.Is(err, io.EOF) {
		if r.quitSent {
			return io.EOF
		}
		return ErrChildExited
	}
	return fmt.Errorf("relay %s: %w", op, err)
}

// writeFull writes all of p, retrying short writes
func writeFull(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		p = p[n:]
	}
	return nil
}
