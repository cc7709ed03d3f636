package shrieker

import (
	"errors"
	"os/exec"
	"time"
)

// ErrUnsupported is returned where no pseudo-terminal implementation exists
var ErrUnsupported = errors.New("pty: not supported on this platform")

// PTY is the interface for platform-specific pseudo-terminal implementations
type PTY interface {
	// Start starts the command attached to the PTY at the given size
	Start(cmd *exec.Cmd, rows, cols int) error

	// Read reads the child's output
	Read(p []byte) (n int, err error)

	// Write writes to the child's input
	Write(p []byte) (n int, err error)

	// WaitReadable blocks until output is available or the timeout
	// elapses. It reports false on timeout.
	WaitReadable(timeout time.Duration) (bool, error)

	// Wait waits for the child to exit
	Wait() error

	// Close closes the PTY
	Close() error
}
