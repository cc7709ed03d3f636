package shrieker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// scriptedStrategy returns fixed commands and records what it was asked
type scriptedStrategy struct {
	action, answer Command
	actions        int
	answers        int
	lastState      State
}

func (s *scriptedStrategy) ChooseAction(st State) Command {
	s.actions++
	s.lastState = st
	return s.action
}

func (s *scriptedStrategy) ChooseAnswer(st State) Command {
	s.answers++
	s.lastState = st
	return s.answer
}

func newTestController(strategy Strategy) *Controller {
	return NewController(NewScreen(24, 80, NewEmulator(24, 80)), strategy, nil)
}

const mapFrame = "\x1b[H\x1b[2J" +
	"\x1b[5;10H-----\x1b[6;10H|.@.|\x1b[7;10H-----" +
	"\x1b[23;1HAgent the Stripling   St:18/02 Dx:12 Co:14 In:10 Wi:9 Ch:8 Lawful" +
	"\x1b[24;1HDlvl:1 $:0 HP:16(16) Pw:2(2) AC:6 Exp:1" +
	"\x1b[6;12H"

func TestControllerInitialState(t *testing.T) {
	c := newTestController(&scriptedStrategy{action: West})
	assert.True(t, c.NeedInventory())
	assert.False(t, c.HasMore())
	assert.Equal(t, InputNone, c.Kind())
	assert.Equal(t, 0, c.Turns())
	assert.Equal(t, 0, c.Inventory().Len())
}

func TestControllerObserveExtracts(t *testing.T) {
	c := newTestController(&scriptedStrategy{action: West})
	c.Observe([]byte(mapFrame))

	assert.Equal(t, "18/02", c.Attributes().St)
	assert.Equal(t, "Lawful", c.Attributes().Align)
	assert.Equal(t, "1", c.Status().Dlvl)
	assert.Equal(t, 16, c.Status().HPMax)
	// The top row is empty, so no message
	assert.Equal(t, 0, c.Messages().Len())

	c.Observe([]byte("\x1b[HYou hear some noises.\x1b[K"))
	require.Equal(t, 1, c.Messages().Len())
	assert.Contains(t, c.Messages().Last(), "You hear some noises.")

	// Status survives a frame that only touched the top line
	assert.Equal(t, "1", c.Status().Dlvl)
}

func TestControllerAnswerBeforeInventory(t *testing.T) {
	strategy := &scriptedStrategy{action: West, answer: Yes}
	c := newTestController(strategy)

	c.Observe([]byte("\x1b[H\x1b[2JReally attack the guard? [yn] (n) "))
	require.True(t, c.NeedInventory())

	assert.Equal(t, InputAnswer, c.Decide())
	assert.Equal(t, Yes, c.Act())
	assert.Equal(t, InputAnswer, c.Kind())
	assert.Equal(t, 1, strategy.answers)
	assert.Equal(t, 0, strategy.actions)
	assert.Contains(t, strategy.lastState.LastMessage(), "Really attack the guard?")
}

func TestControllerWrittenIsNotAPrompt(t *testing.T) {
	c := newTestController(&scriptedStrategy{action: West})
	c.Observe([]byte("\x1b[H\x1b[2JYou read: \"Who's written this? \""))
	assert.Equal(t, InputInventory, c.Decide())
}

func TestControllerPriority(t *testing.T) {
	c := newTestController(&scriptedStrategy{action: West, answer: No})

	// Continuation beats death and questions
	c.Observe([]byte("\x1b[H\x1b[2JYou die... Really? --More--"))
	assert.Equal(t, InputContinuation, c.Decide())
	assert.Equal(t, More, c.Act())

	// Death beats questions
	c.Observe([]byte("\x1b[H\x1b[2JYou die... Do you want your possessions identified? [ynq] (n) "))
	assert.Equal(t, InputDead, c.Decide())
	assert.Equal(t, Quit, c.Act())
	assert.True(t, c.Dead())
}

func TestControllerFreeAction(t *testing.T) {
	strategy := &scriptedStrategy{action: Search}
	c := newTestController(strategy)
	c.needInventory = false

	c.Observe([]byte(mapFrame))
	assert.Equal(t, InputFree, c.Decide())
	assert.Equal(t, Search, c.Act())
	assert.Equal(t, 1, strategy.actions)
	assert.Equal(t, 1, c.Turns())
	assert.NotNil(t, strategy.lastState.Screen)
	assert.Equal(t, "1", strategy.lastState.Status.Dlvl)
}

func TestControllerInvalidCommandFallsBack(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	strategy := &scriptedStrategy{action: "xyzzy", answer: "maybe"}
	c := NewController(NewScreen(24, 80, NewEmulator(24, 80)), strategy, zap.New(core))
	c.needInventory = false

	c.Observe([]byte(mapFrame))
	assert.Equal(t, Wait, c.Act())

	c.Observe([]byte("\x1b[HReally quit? [yn] (n) "))
	assert.Equal(t, No, c.Act())
	assert.Equal(t, 2, logs.Len())
}

func TestControllerInventoryMoreDoesNotClear(t *testing.T) {
	c := newTestController(&scriptedStrategy{action: West})
	c.Inventory()[Rings]['r'] = NewItem(Rings, "a ring of levitation")

	require.Equal(t, ShowInventory, c.Act())
	c.Observe([]byte(listingPage1))

	assert.True(t, c.HasMore())
	_, ok := c.Inventory().Find('r')
	assert.True(t, ok, "inventory cleared while the listing is still paging")
}

func TestControllerInventoryWithoutMoreClears(t *testing.T) {
	c := newTestController(&scriptedStrategy{action: West})
	c.Inventory()[Rings]['r'] = NewItem(Rings, "a ring of levitation")

	require.Equal(t, ShowInventory, c.Act())
	c.Observe([]byte("\x1b[H\x1b[2J\x1b[7mWeapons\x1b[0m\x1b[K\r\n a - a +1 long sword (weapon in hand)\x1b[K\r\n"))

	assert.False(t, c.HasMore())
	_, ok := c.Inventory().Find('r')
	assert.False(t, ok, "old inventory kept")
	_, ok = c.Inventory().Find('a')
	assert.True(t, ok)
	assert.False(t, c.NeedInventory())
}

func TestControllerMultiPageInventory(t *testing.T) {
	strategy := &scriptedStrategy{action: West}
	c := newTestController(strategy)
	c.Inventory()[Rings]['r'] = NewItem(Rings, "a ring of levitation")

	require.Equal(t, ShowInventory, c.Act())
	c.Observe([]byte(listingPage1))
	require.Equal(t, More, c.Act())
	c.Observe([]byte(listingPage2))
	require.Equal(t, More, c.Act())
	c.Observe([]byte(mapFrame))

	inv := c.Inventory()
	assert.Equal(t, 5, inv.Len())
	_, ok := inv.Find('r')
	assert.False(t, ok)
	assert.False(t, c.NeedInventory())

	assert.Equal(t, West, c.Act())
	assert.Equal(t, InputFree, c.Kind())
	assert.Equal(t, 4, c.Turns())
}

func TestControllerEmptyListingRequestsAgain(t *testing.T) {
	c := newTestController(&scriptedStrategy{action: West})

	require.Equal(t, ShowInventory, c.Act())
	c.Observe([]byte("\x1b[H\x1b[2JNot carrying anything."))
	assert.True(t, c.NeedInventory())
	assert.Equal(t, InputInventory, c.Decide())
}

func TestControllerTurnHook(t *testing.T) {
	c := newTestController(NewRandomMover(rand.New(rand.NewSource(1))))
	var turns []Turn
	c.SetTurnHook(func(t Turn) { turns = append(turns, t) })

	c.Observe([]byte(mapFrame))
	c.Act()
	c.Observe([]byte(listingPage2))
	c.Act()

	require.Len(t, turns, 2)
	assert.Equal(t, 1, turns[0].Index)
	assert.Equal(t, InputInventory, turns[0].Kind)
	assert.Equal(t, ShowInventory, turns[0].Command)
	assert.Equal(t, "1", turns[0].Status.Dlvl)
	assert.Equal(t, InputContinuation, turns[1].Kind)
	assert.Equal(t, More, turns[1].Command)
}

func TestInputKindString(t *testing.T) {
	assert.Equal(t, "none", InputNone.String())
	assert.Equal(t, "continuation", InputContinuation.String())
	assert.Equal(t, "dead", InputDead.String())
	assert.Equal(t, "answer", InputAnswer.String())
	assert.Equal(t, "inventory", InputInventory.String())
	assert.Equal(t, "free", InputFree.String())
}

func TestControllerDeadSurvivesClosingScreens(t *testing.T) {
	c := newTestController(&scriptedStrategy{action: West})
	assert.False(t, c.Dead())

	c.Observe([]byte("\x1b[H\x1b[2JYou die...\x1b[K"))
	require.Equal(t, Quit, c.Act())
	assert.True(t, c.Dead())

	c.Observe([]byte("\x1b[H\x1b[2JRest in peace --More--"))
	require.Equal(t, More, c.Act())
	assert.Equal(t, InputContinuation, c.Kind())
	assert.True(t, c.Dead())
}
