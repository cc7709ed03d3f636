package shrieker

import (
	"strings"
	"unicode"
)

// MessageLogCapacity is how many messages a MessageLog keeps
const MessageLogCapacity = 1000

// MessageLog is a bounded FIFO of top-line messages
type MessageLog struct {
	buf   []string
	start int
	n     int
}

// NewMessageLog creates an empty log holding up to capacity messages
func NewMessageLog(capacity int) *MessageLog {
	if capacity < 1 {
		capacity = 1
	}
	return &MessageLog{buf: make([]string, capacity)}
}

// Append adds msg, evicting the oldest message when full
func (l *MessageLog) Append(msg string) {
	if l.n < len(l.buf) {
		l.buf[(l.start+l.n)%len(l.buf)] = msg
		l.n++
		return
	}
	l.buf[l.start] = msg
	l.start = (l.start + 1) % len(l.buf)
}

// Observe appends the top screen line when it carries a message: it must
// be non-blank and start with a non-space character. It reports whether
// a message was recorded.
func (l *MessageLog) Observe(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	for _, r := range line {
		if unicode.IsSpace(r) {
			return false
		}
		break
	}
	l.Append(line)
	return true
}

// Len returns the number of stored messages
func (l *MessageLog) Len() int {
	return l.n
}

// At returns the i-th stored message, oldest first
func (l *MessageLog) At(i int) string {
	if i < 0 || i >= l.n {
		return ""
	}
	return l.buf[(l.start+i)%len(l.buf)]
}

// Last returns the most recent message, or "" when empty
func (l *MessageLog) Last() string {
	if l.n == 0 {
		return ""
	}
	return l.At(l.n - 1)
}

// All returns the stored messages, oldest first
func (l *MessageLog) All() []string {
	out := make([]string, l.n)
	for i := range out {
		out[i] = l.At(i)
	}
	return out
}
