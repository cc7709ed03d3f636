package shrieker

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageLogObserve(t *testing.T) {
	l := NewMessageLog(10)
	assert.Equal(t, "", l.Last())

	assert.False(t, l.Observe(""))
	assert.False(t, l.Observe("        "))
	assert.False(t, l.Observe("  indented map row"))
	assert.True(t, l.Observe("You see here a dagger.   "))

	require.Equal(t, 1, l.Len())
	assert.Equal(t, "You see here a dagger.   ", l.Last())
}

func TestMessageLogEvictsOldest(t *testing.T) {
	l := NewMessageLog(3)
	for i := 1; i <= 5; i++ {
		l.Append(fmt.Sprintf("m%d", i))
	}
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"m3", "m4", "m5"}, l.All())
	assert.Equal(t, "m3", l.At(0))
	assert.Equal(t, "", l.At(3))
	assert.Equal(t, "m5", l.Last())
}

func TestMessageLogDefaultCapacity(t *testing.T) {
	l := NewMessageLog(MessageLogCapacity)
	for i := 0; i < MessageLogCapacity+10; i++ {
		l.Append(fmt.Sprint(i))
	}
	assert.Equal(t, MessageLogCapacity, l.Len())
	assert.Equal(t, "10", l.At(0))

	assert.Equal(t, 1, cap(NewMessageLog(0).buf))
}
