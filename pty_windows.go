//go:build windows

package shrieker

// NewPTY reports ErrUnsupported: the relay's poll-with-timeout read has no
// Windows implementation.
func NewPTY() (PTY, error) {
	return nil, ErrUnsupported
}
