package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "journal", "games.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLifeRoundTrip(t *testing.T) {
	s := newTestStore(t)
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.StartLife(Life{
		ID: "life-1", Character: "val", Gender: "fem", Race: "hum", Align: "neu",
		StartedAt: start,
	}))

	l, err := s.GetLife("life-1")
	require.NoError(t, err)
	assert.Equal(t, "val", l.Character)
	assert.True(t, l.StartedAt.Equal(start))
	assert.True(t, l.EndedAt.IsZero())
	assert.False(t, l.Died)

	require.NoError(t, s.EndLife(Life{
		ID: "life-1", EndedAt: start.Add(time.Minute), Turns: 42, Died: true,
		Message: "You die...", Dlvl: "3", HP: 0, HPMax: 16, Exp: 2, Money: 17,
	}))

	l, err = s.GetLife("life-1")
	require.NoError(t, err)
	assert.True(t, l.Died)
	assert.Equal(t, 42, l.Turns)
	assert.Equal(t, "You die...", l.Message)
	assert.Equal(t, "3", l.Dlvl)
	assert.Equal(t, 16, l.HPMax)
	assert.Equal(t, 17, l.Money)
	assert.True(t, l.EndedAt.Equal(start.Add(time.Minute)))
}

func TestEndUnknownLife(t *testing.T) {
	s := newTestStore(t)
	err := s.EndLife(Life{ID: "nope", EndedAt: time.Now()})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTurnsInOrder(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	require.NoError(t, s.StartLife(Life{ID: "life-2", Character: "wiz", Gender: "mal", Race: "elf", Align: "cha", StartedAt: now}))

	for _, i := range []int{2, 1, 3} {
		require.NoError(t, s.RecordTurn(Turn{
			LifeID: "life-2", Index: i, Kind: "free", Command: "h",
			Dlvl: "1", HP: 12, HPMax: 12, At: now,
		}))
	}

	turns, err := s.Turns("life-2")
	require.NoError(t, err)
	require.Len(t, turns, 3)
	for i, turn := range turns {
		assert.Equal(t, i+1, turn.Index)
		assert.Equal(t, "h", turn.Command)
	}

	// Duplicate index is rejected
	assert.Error(t, s.RecordTurn(Turn{LifeID: "life-2", Index: 1, Kind: "free", Command: "j", At: now}))
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")
	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.StartLife(Life{ID: "x", Character: "pri", Gender: "mal", Race: "hum", Align: "neu", StartedAt: time.Now()}))
	require.NoError(t, s.Close())

	s, err = NewStore(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())
	_, err = s.GetLife("x")
	assert.NoError(t, err)
}
