package vt

import "sync"

// Buffer manages a fixed-size terminal screen
type Buffer struct {
	mu sync.RWMutex

	cols int
	rows int

	cursorX       int
	cursorY       int
	cursorVisible bool

	// pendingWrap is set when a character lands in the last column; the
	// wrap happens on the next printable character (DEC deferred wrap).
	pendingWrap  bool
	autoWrapMode bool

	currentFg        Color
	currentBg        Color
	currentBold      bool
	currentUnderline bool
	currentReverse   bool
	currentBlink     bool

	screen [][]Cell

	// Scroll region (DECSTBM), inclusive rows
	scrollTop    int
	scrollBottom int

	savedCursorX int
	savedCursorY int
}

// NewBuffer creates a new terminal buffer
func NewBuffer(cols, rows int) *Buffer {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	b := &Buffer{
		cols:          cols,
		rows:          rows,
		cursorVisible: true,
		autoWrapMode:  true,
		currentFg:     DefaultForeground,
		currentBg:     DefaultBackground,
		scrollBottom:  rows - 1,
	}
	b.initScreen()
	return b
}

func (b *Buffer) initScreen() {
	b.screen = make([][]Cell, b.rows)
	for i := range b.screen {
		b.screen[i] = b.makeBlankLine()
	}
}

func (b *Buffer) makeBlankLine() []Cell {
	line := make([]Cell, b.cols)
	fill := b.blankCell()
	for i := range line {
		line[i] = fill
	}
	return line
}

// blankCell is what erase operations leave behind: a space in the current
// background color with no other attributes.
func (b *Buffer) blankCell() Cell {
	return EmptyCellWithColors(DefaultForeground, b.currentBg)
}

// GetSize returns the screen dimensions
func (b *Buffer) GetSize() (cols, rows int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cols, b.rows
}

// Reset returns the buffer to its power-on state (RIS)
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetAttributesInternal()
	b.cursorX, b.cursorY = 0, 0
	b.savedCursorX, b.savedCursorY = 0, 0
	b.pendingWrap = false
	b.autoWrapMode = true
	b.cursorVisible = true
	b.scrollTop, b.scrollBottom = 0, b.rows-1
	b.initScreen()
}

// --- Cell Access Methods ---

// GetCell returns the cell at the given screen position.
// Out-of-range positions return an empty cell.
func (b *Buffer) GetCell(x, y int) Cell {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if y < 0 || y >= b.rows || x < 0 || x >= b.cols {
		return EmptyCell()
	}
	return b.screen[y][x]
}

// Cells returns a copy of the cells in the row-major linear range
// [start, end). The range is clipped to the screen.
func (b *Buffer) Cells(start, end int) []Cell {
	b.mu.RLock()
	defer b.mu.RUnlock()
	total := b.cols * b.rows
	if start < 0 {
		start = 0
	}
	if end > total {
		end = total
	}
	if end <= start {
		return nil
	}
	out := make([]Cell, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, b.screen[i/b.cols][i%b.cols])
	}
	return out
}

// LineText returns row y as a plain string
func (b *Buffer) LineText(y int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if y < 0 || y >= b.rows {
		return ""
	}
	buf := make([]rune, b.cols)
	for x, c := range b.screen[y] {
		if c.Char == 0 {
			buf[x] = ' '
		} else {
			buf[x] = c.Char
		}
	}
	return string(buf)
}

// --- Attributes ---

// ResetAttributes restores default rendition (SGR 0)
func (b *Buffer) ResetAttributes() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetAttributesInternal()
}

func (b *Buffer) resetAttributesInternal() {
	b.currentFg = DefaultForeground
	b.currentBg = DefaultBackground
	b.currentBold = false
	b.currentUnderline = false
	b.currentReverse = false
	b.currentBlink = false
}

// SetBold sets the bold attribute for subsequent characters
func (b *Buffer) SetBold(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.currentBold = on
}

// SetUnderline sets the underline attribute
func (b *Buffer) SetUnderline(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.currentUnderline = on
}

// SetReverse sets the reverse-video attribute
func (b *Buffer) SetReverse(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.currentReverse = on
}

// SetBlink sets the blink attribute
func (b *Buffer) SetBlink(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.currentBlink = on
}

// SetForeground sets the foreground color
func (b *Buffer) SetForeground(c Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.currentFg = c
}

// SetBackground sets the background color
func (b *Buffer) SetBackground(c Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.currentBg = c
}

// --- Modes ---

// SetAutoWrap enables or disables DECAWM
func (b *Buffer) SetAutoWrap(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.autoWrapMode = on
	if !on {
		b.pendingWrap = false
	}
}

// SetScrollRegion sets the top and bottom margins (DECSTBM), 0-indexed and
// inclusive. Invalid regions reset to the full screen. The cursor homes.
func (b *Buffer) SetScrollRegion(top, bottom int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if top < 0 || bottom >= b.rows || top >= bottom {
		top, bottom = 0, b.rows-1
	}
	b.scrollTop, b.scrollBottom = top, bottom
	b.cursorX, b.cursorY = 0, 0
	b.pendingWrap = false
}
