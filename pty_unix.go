//go:build !windows

package shrieker

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// UnixPTY implements PTY for Unix systems (Linux, macOS, BSD)
type UnixPTY struct {
	master *os.File
	fd     int
	cmd    *exec.Cmd
	closed atomic.Bool
}

// NewPTY creates a new PTY
func NewPTY() (PTY, error) {
	return &UnixPTY{}, nil
}

// Start starts cmd on a fresh pseudo-terminal of the given size
func (p *UnixPTY) Start(cmd *exec.Cmd, rows, cols int) error {
	master, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	p.master = master
	p.fd = int(master.Fd())
	p.cmd = cmd
	return nil
}

// Read reads from the PTY. Linux reports EIO once the child side is gone;
// that comes back as ErrChildExited.
func (p *UnixPTY) Read(b []byte) (int, error) {
	n, err := p.master.Read(b)
	return n, childErr(err)
}

// Write writes to the PTY
func (p *UnixPTY) Write(b []byte) (int, error) {
	n, err := p.master.Write(b)
	return n, childErr(err)
}

func childErr(err error) error {
	if err != nil && errors.Is(err, syscall.EIO) {
		return ErrChildExited
	}
	return err
}

// WaitReadable polls the master side for input
func (p *UnixPTY) WaitReadable(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(p.fd), Events: unix.POLLIN}}
	for {
		// A closed master is readable so the next Read reports it
		if p.closed.Load() {
			return true, nil
		}
		n, err := unix.Poll(fds, int(timeout/time.Millisecond))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("poll pty: %w", err)
		}
		if n == 0 {
			return false, nil
		}
		// POLLHUP counts as readable: the next Read reports the exit
		return fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0, nil
	}
}

// Wait waits for the child to exit
func (p *UnixPTY) Wait() error {
	if p.cmd == nil {
		return nil
	}
	return p.cmd.Wait()
}

// Close closes the PTY. The child sees a hangup.
func (p *UnixPTY) Close() error {
	if p.master == nil || p.closed.Swap(true) {
		return nil
	}
	return p.master.Close()
}
