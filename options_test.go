package shrieker

import (
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomOptionsPicksFromChoices(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		o := RandomOptions(rng, GameOptions{})
		assert.Contains(t, Characters, o.Character)
		assert.Contains(t, Genders, o.Gender)
		assert.Contains(t, Races, o.Race)
		assert.Contains(t, Alignments, o.Align)
		assert.Equal(t, DefaultPickupTypes, o.PickupTypes)
	}
}

func TestRandomOptionsKeepsOverrides(t *testing.T) {
	o := RandomOptions(rand.New(rand.NewSource(1)), GameOptions{Character: "sam", Align: "law", PickupTypes: "$"})
	assert.Equal(t, "sam", o.Character)
	assert.Equal(t, "law", o.Align)
	assert.Equal(t, "$", o.PickupTypes)
	assert.NotEmpty(t, o.Gender)
	assert.NotEmpty(t, o.Race)
}

func TestGameOptionsRender(t *testing.T) {
	o := GameOptions{Character: "val", Gender: "fem", Race: "hum", Align: "neu", PickupTypes: "$?+!=/"}
	assert.Equal(t,
		"CHARACTER=val\nOPTIONS=hilite_pet,pickup_types:$?+!=/,gender:fem,race:hum,align:neu",
		o.Render())
}

func TestOptionsFile(t *testing.T) {
	o := GameOptions{Character: "wiz", Gender: "mal", Race: "elf", Align: "cha", PickupTypes: "$"}
	f, err := WriteOptionsFile(t.TempDir(), o)
	require.NoError(t, err)

	data, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, o.Render(), string(data))

	env := f.Env()
	assert.True(t, strings.HasPrefix(env, "NETHACKOPTIONS=@"))
	assert.Equal(t, f.Path(), strings.TrimPrefix(env, "NETHACKOPTIONS=@"))

	require.NoError(t, f.Remove())
	_, err = os.Stat(f.Path())
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, f.Remove())
}
