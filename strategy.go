package shrieker

import (
	"math/rand"
	"time"
)

// State is what a Strategy gets to look at when deciding
type State struct {
	Screen     *Screen
	Messages   *MessageLog
	Attributes Attributes
	Status     Status
	Inventory  Inventory
}

// LastMessage returns the most recent top-line message
func (s State) LastMessage() string {
	if s.Messages == nil {
		return ""
	}
	return s.Messages.Last()
}

// Strategy chooses commands when the game is waiting on the player.
// ChooseAction is asked when the game wants a free action, ChooseAnswer
// when it is asking a question. Both should return a command from the
// Vocabulary.
type Strategy interface {
	ChooseAction(s State) Command
	ChooseAnswer(s State) Command
}

// RandomMover declines every question and wanders in random directions
type RandomMover struct {
	rng *rand.Rand
}

// NewRandomMover creates a RandomMover. A nil rng seeds one from the clock.
func NewRandomMover(rng *rand.Rand) *RandomMover {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomMover{rng: rng}
}

// ChooseAnswer always answers no
func (m *RandomMover) ChooseAnswer(State) Command {
	return No
}

// ChooseAction picks one of the eight compass directions uniformly
func (m *RandomMover) ChooseAction(State) Command {
	return Directions[m.rng.Intn(len(Directions))]
}
