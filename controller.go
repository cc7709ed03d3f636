package shrieker

import (
	"bytes"
	"strings"

	"go.uber.org/zap"
)

// InputKind is what the game is waiting for, as decided on the latest frame
type InputKind int

const (
	InputNone         InputKind = iota // nothing decided yet
	InputContinuation                  // --More-- or (end) on screen
	InputDead                          // the character died
	InputAnswer                        // a question is on the message line
	InputInventory                     // inventory not captured yet
	InputFree                          // the game wants an action
)

func (k InputKind) String() string {
	switch k {
	case InputContinuation:
		return "continuation"
	case InputDead:
		return "dead"
	case InputAnswer:
		return "answer"
	case InputInventory:
		return "inventory"
	case InputFree:
		return "free"
	default:
		return "none"
	}
}

var continuationMarkers = [][]byte{[]byte("--More--"), []byte("(end)")}

const (
	deathMessage   = "You die"
	promptMarker   = "? "
	notPromptToken = " written "
)

// Turn describes one decision, handed to the turn hook after Act
type Turn struct {
	Index   int
	Kind    InputKind
	Command Command
	Message string
	Status  Status
}

// Controller runs the observe/decide cycle for one game life. It owns the
// screen model and everything extracted from it.
type Controller struct {
	screen     *Screen
	messages   *MessageLog
	attributes Attributes
	status     Status
	inventory  Inventory
	strategy   Strategy
	logger     *zap.Logger

	needInventory bool
	hasMore       bool

	// sentInventory is set when the last command was the inventory listing
	// command; listing stays set while that listing's pages are acknowledged
	// and pending collects them.
	sentInventory bool
	listing       bool
	listingFound  bool
	pending       Inventory

	kind  InputKind
	died  bool
	turns int

	onTurn func(Turn)
}

// NewController creates a controller reading frames into screen and
// delegating free decisions to strategy. A nil logger disables logging.
func NewController(screen *Screen, strategy Strategy, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		screen:        screen,
		messages:      NewMessageLog(MessageLogCapacity),
		inventory:     NewInventory(),
		strategy:      strategy,
		logger:        logger,
		needInventory: true,
	}
}

// SetTurnHook sets a callback invoked after every decision
func (c *Controller) SetTurnHook(fn func(Turn)) {
	c.onTurn = fn
}

// --- Observation ---

// Observe folds one frame of raw game output into the controller's state
func (c *Controller) Observe(frame []byte) {
	c.logger.Debug("observed frame", zap.Int("bytes", len(frame)))

	c.screen.Feed(frame)
	if c.logger.Core().Enabled(zap.DebugLevel) {
		c.logger.Debug("current map", zap.String("grid", c.screen.String()))
		c.logger.Debug("current neighborhood", zap.String("grid", gridString(c.screen.Neighborhood(3))))
	}

	if c.messages.Observe(c.screen.Row(0)) {
		c.logger.Info("message", zap.String("text", strings.TrimRight(c.messages.Last(), " ")))
	}
	// The status lines are the last two rows; AttributeRow and StatusRow
	// on a 24-row screen
	rows, _ := c.screen.Size()
	if c.attributes.Merge(c.screen.Row(rows - 2)) {
		c.logger.Debug("parsed attributes", zap.Any("attributes", c.attributes))
	} else {
		c.logger.Debug("attribute row unchanged")
	}
	if c.status.Merge(c.screen.Row(rows - 1)) {
		c.logger.Debug("parsed status", zap.Any("status", c.status))
	} else {
		c.logger.Debug("status row unchanged")
	}

	more := hasContinuation(frame)

	if c.sentInventory {
		c.listing = true
		c.listingFound = false
		c.pending = NewInventory()
	}
	if c.listing {
		if ParseInventory(c.pending, frame) {
			c.listingFound = true
		}
		// The captured inventory is only replaced once the listing has
		// been paged through to the end
		if !more {
			c.inventory.Replace(c.pending)
			c.pending = nil
			c.listing = false
			c.needInventory = !c.listingFound
			for _, category := range Categories {
				if n := len(c.inventory[category]); n > 0 {
					c.logger.Debug("inventory", zap.String("category", string(category)), zap.Int("items", n))
				}
			}
		}
	}

	c.sentInventory = false
	c.hasMore = more
}

func hasContinuation(frame []byte) bool {
	for _, marker := range continuationMarkers {
		if bytes.Contains(frame, marker) {
			return true
		}
	}
	return false
}

// --- Decision ---

// Decide works out what kind of input the game wants, in priority order:
// continuation, death, a question, a missing inventory, a free action.
func (c *Controller) Decide() InputKind {
	msg := c.messages.Last()
	switch {
	case c.hasMore:
		return InputContinuation
	case strings.Contains(msg, deathMessage):
		return InputDead
	case isAnswerPrompt(msg):
		return InputAnswer
	case c.needInventory:
		return InputInventory
	default:
		return InputFree
	}
}

func isAnswerPrompt(msg string) bool {
	return strings.Contains(msg, promptMarker) && !strings.Contains(msg, notPromptToken)
}

// Act decides and returns the next command to send
func (c *Controller) Act() Command {
	c.kind = c.Decide()

	var cmd Command
	switch c.kind {
	case InputContinuation:
		cmd = More
	case InputDead:
		cmd = Quit
		c.died = true
	case InputAnswer:
		cmd = c.strategy.ChooseAnswer(c.State())
		if !cmd.Valid() {
			c.logger.Warn("strategy answered outside the vocabulary", zap.String("command", cmd.String()))
			cmd = No
		}
	case InputInventory:
		cmd = ShowInventory
	default:
		cmd = c.strategy.ChooseAction(c.State())
		if !cmd.Valid() {
			c.logger.Warn("strategy chose outside the vocabulary", zap.String("command", cmd.String()))
			cmd = Wait
		}
	}

	c.sentInventory = c.kind == InputInventory
	c.turns++
	c.logger.Debug("sending command",
		zap.String("command", cmd.String()),
		zap.Stringer("kind", c.kind),
		zap.Int("turn", c.turns))

	if c.onTurn != nil {
		c.onTurn(Turn{
			Index:   c.turns,
			Kind:    c.kind,
			Command: cmd,
			Message: strings.TrimRight(c.messages.Last(), " "),
			Status:  c.status,
		})
	}
	return cmd
}

// --- Accessors ---

// State returns the view handed to the strategy
func (c *Controller) State() State {
	return State{
		Screen:     c.screen,
		Messages:   c.messages,
		Attributes: c.attributes,
		Status:     c.status,
		Inventory:  c.inventory,
	}
}

// Kind returns the input kind chosen by the latest Act
func (c *Controller) Kind() InputKind {
	return c.kind
}

// Messages returns the message log
func (c *Controller) Messages() *MessageLog {
	return c.messages
}

// Attributes returns the last parsed attributes
func (c *Controller) Attributes() Attributes {
	return c.attributes
}

// Status returns the last parsed status
func (c *Controller) Status() Status {
	return c.status
}

// Inventory returns the captured inventory
func (c *Controller) Inventory() Inventory {
	return c.inventory
}

// NeedInventory reports whether the inventory still has to be requested
func (c *Controller) NeedInventory() bool {
	return c.needInventory
}

// HasMore reports whether the latest frame is waiting on a continuation
func (c *Controller) HasMore() bool {
	return c.hasMore
}

// Dead reports whether the death quit has been sent. It stays set while
// the closing screens are acknowledged.
func (c *Controller) Dead() bool {
	return c.died
}

// Turns returns how many commands have been decided
func (c *Controller) Turns() int {
	return c.turns
}
