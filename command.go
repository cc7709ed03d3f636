package shrieker

import "strings"

// Command is one input sent to the game: a key, a control character, or
// an extended "#" command.
type Command string

// Movement
const (
	North     Command = "k"
	NorthEast Command = "u"
	East      Command = "l"
	SouthEast Command = "n"
	South     Command = "j"
	SouthWest Command = "b"
	West      Command = "h"
	NorthWest Command = "y"

	Up   Command = "<"
	Down Command = ">"
)

// Directions are the eight compass moves
var Directions = []Command{
	North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest,
}

// Single-key actions
const (
	Pickup Command = ","
	Wait   Command = "."

	Apply         Command = "a"
	Close         Command = "c"
	Drop          Command = "d"
	Eat           Command = "e"
	Engrave       Command = "E"
	Fire          Command = "f"
	ShowInventory Command = "i"
	Open          Command = "o"
	Pay           Command = "p"
	PutOn         Command = "P"
	Quaff         Command = "q"
	Quiver        Command = "Q"
	Read          Command = "r"
	Remove        Command = "R"
	Search        Command = "s"
	Throw         Command = "t"
	TakeOff       Command = "T"
	Wield         Command = "w"
	Wear          Command = "W"
	Exchange      Command = "x"
	Zap           Command = "z"
	Cast          Command = "Z"
)

// Control characters
const (
	More     Command = "\r"   // acknowledge --More-- / (end)
	Kick     Command = "\x04" // ^D
	Teleport Command = "\x14" // ^T
)

// Extended commands
const (
	Chat       Command = "#chat"
	Dip        Command = "#dip"
	Force      Command = "#force"
	Invoke     Command = "#invoke"
	Jump       Command = "#jump"
	Loot       Command = "#loot"
	Monster    Command = "#monster"
	Offer      Command = "#offer"
	Pray       Command = "#pray"
	Ride       Command = "#ride"
	Rub        Command = "#rub"
	Sit        Command = "#sit"
	TurnUndead Command = "#turn"
	Wipe       Command = "#wipe"
)

// Answers to prompts. They share keys with movement and quaff.
const (
	Yes  Command = "y"
	No   Command = "n"
	Quit Command = "q"
)

var vocabulary = map[Command]bool{}

func init() {
	for _, c := range Vocabulary() {
		vocabulary[c] = true
	}
}

// Vocabulary returns every command the game is ever sent
func Vocabulary() []Command {
	cmds := append([]Command{}, Directions...)
	return append(cmds,
		Up, Down, Pickup, Wait,
		Apply, Close, Drop, Eat, Engrave, Fire, ShowInventory, Open, Pay, PutOn,
		Quaff, Quiver, Read, Remove, Search, Throw, TakeOff, Wield, Wear,
		Exchange, Zap, Cast,
		More, Kick, Teleport,
		Chat, Dip, Force, Invoke, Jump, Loot, Monster, Offer, Pray, Ride,
		Rub, Sit, TurnUndead, Wipe,
		Yes, No, Quit,
	)
}

// Valid reports whether c belongs to the vocabulary
func (c Command) Valid() bool {
	return vocabulary[c]
}

// Extended reports whether c is a "#" command
func (c Command) Extended() bool {
	return strings.HasPrefix(string(c), "#")
}

// Bytes encodes c for the game's input. Extended commands are terminated
// with a carriage return so the game runs them.
func (c Command) Bytes() []byte {
	if c.Extended() {
		return []byte(string(c) + "\r")
	}
	return []byte(c)
}

func (c Command) String() string {
	switch c {
	case More:
		return "<more>"
	case Kick:
		return "<kick>"
	case Teleport:
		return "<teleport>"
	}
	return string(c)
}
