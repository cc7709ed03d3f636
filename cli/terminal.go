package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// ErrTooSmall is returned when the host terminal cannot show the whole game
var ErrTooSmall = errors.New("host terminal too small")

const (
	enterAltScreen = "\033[?1049h"
	leaveAltScreen = "\033[?1049l"
	clearScreen    = "\033[2J\033[H"
	showCursor     = "\033[?25h"
	resetAttrs     = "\033[0m"
)

// Capabilities describes the host terminal
type Capabilities struct {
	IsTerminal bool
	Width      int
	Height     int
}

// Options configures a Host
type Options struct {
	Output io.Writer // where frames go (default: os.Stdout)

	// If true, the mirror runs on the alternate screen buffer so the
	// host's scrollback survives the run
	AltScreen bool
}

// Host copies game output to the host terminal
type Host struct {
	mu      sync.Mutex
	out     io.Writer
	fd      int
	isTerm  bool
	options Options
	started bool
}

// New creates a host mirror
func New(opts Options) *Host {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	h := &Host{
		out:     opts.Output,
		fd:      -1,
		options: opts,
	}
	if f, ok := opts.Output.(*os.File); ok {
		h.fd = int(f.Fd())
		h.isTerm = term.IsTerminal(h.fd)
	}
	return h
}

// Capabilities reports whether the output is a terminal and its size.
// Unknown sizes come back as 80x24.
func (h *Host) Capabilities() Capabilities {
	caps := Capabilities{IsTerminal: h.isTerm, Width: 80, Height: 24}
	if !h.isTerm {
		return caps
	}
	if cols, rows, err := term.GetSize(h.fd); err == nil {
		caps.Width, caps.Height = cols, rows
	}
	return caps
}

// CheckSize returns ErrTooSmall if the host terminal is smaller than the
// game screen. Non-terminal outputs always fit.
func (h *Host) CheckSize(rows, cols int) error {
	caps := h.Capabilities()
	if !caps.IsTerminal {
		return nil
	}
	if caps.Width < cols || caps.Height < rows {
		return fmt.Errorf("%w: have %dx%d, game needs %dx%d",
			ErrTooSmall, caps.Width, caps.Height, cols, rows)
	}
	return nil
}

// Start prepares the host screen
func (h *Host) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started {
		return nil
	}
	if h.isTerm && h.options.AltScreen {
		if _, err := io.WriteString(h.out, enterAltScreen+clearScreen); err != nil {
			return fmt.Errorf("failed to prepare host screen: %w", err)
		}
	}
	h.started = true
	return nil
}

// Write mirrors one frame verbatim
func (h *Host) Write(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.out.Write(p)
}

// Stop restores the host terminal. Safe to call more than once.
func (h *Host) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.started {
		return nil
	}
	h.started = false

	restore := resetAttrs + showCursor
	if h.isTerm && h.options.AltScreen {
		restore += leaveAltScreen
	}
	_, err := io.WriteString(h.out, restore)
	return err
}

// Close is an alias for Stop
func (h *Host) Close() error {
	return h.Stop()
}
