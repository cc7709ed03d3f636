package vt

// --- Character Output ---

// WriteChar writes a character at the cursor with the current attributes
// and advances the cursor
func (b *Buffer) WriteChar(ch rune) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pendingWrap && b.autoWrapMode {
		b.cursorX = 0
		b.lineFeedInternal()
	}
	b.pendingWrap = false

	b.screen[b.cursorY][b.cursorX] = Cell{
		Char:       ch,
		Foreground: b.currentFg,
		Background: b.currentBg,
		Bold:       b.currentBold,
		Underline:  b.currentUnderline,
		Reverse:    b.currentReverse,
		Blink:      b.currentBlink,
	}

	if b.cursorX == b.cols-1 {
		b.pendingWrap = true
		return
	}
	b.cursorX++
}

// --- Line Navigation ---

// CarriageReturn moves cursor to the beginning of the current line
func (b *Buffer) CarriageReturn() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX = 0
	b.pendingWrap = false
}

// LineFeed moves cursor down one line, scrolling at the bottom margin
func (b *Buffer) LineFeed() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineFeedInternal()
}

func (b *Buffer) lineFeedInternal() {
	b.pendingWrap = false
	if b.cursorY == b.scrollBottom {
		b.scrollUpInternal(1)
		return
	}
	if b.cursorY < b.rows-1 {
		b.cursorY++
	}
}

// ReverseIndex moves cursor up one line, scrolling at the top margin (ESC M)
func (b *Buffer) ReverseIndex() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pendingWrap = false
	if b.cursorY == b.scrollTop {
		b.scrollDownInternal(1)
		return
	}
	if b.cursorY > 0 {
		b.cursorY--
	}
}

// Tab moves cursor to the next tab stop
func (b *Buffer) Tab() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX = ((b.cursorX / 8) + 1) * 8
	if b.cursorX >= b.cols {
		b.cursorX = b.cols - 1
	}
	b.pendingWrap = false
}

// Backspace moves cursor left one position
func (b *Buffer) Backspace() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cursorX > 0 {
		b.cursorX--
	}
	b.pendingWrap = false
}

// --- Screen Scrolling ---

func (b *Buffer) scrollUpInternal(n int) {
	for i := 0; i < n; i++ {
		copy(b.screen[b.scrollTop:b.scrollBottom], b.screen[b.scrollTop+1:b.scrollBottom+1])
		b.screen[b.scrollBottom] = b.makeBlankLine()
	}
}

func (b *Buffer) scrollDownInternal(n int) {
	for i := 0; i < n; i++ {
		copy(b.screen[b.scrollTop+1:b.scrollBottom+1], b.screen[b.scrollTop:b.scrollBottom])
		b.screen[b.scrollTop] = b.makeBlankLine()
	}
}

// ScrollUp scrolls the scroll region up by n lines
func (b *Buffer) ScrollUp(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scrollUpInternal(n)
}

// ScrollDown scrolls the scroll region down by n lines
func (b *Buffer) ScrollDown(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scrollDownInternal(n)
}

// --- Screen Clearing ---

// ClearScreen clears the entire screen; the cursor does not move
func (b *Buffer) ClearScreen() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initScreen()
	b.pendingWrap = false
}

// ClearToEndOfLine clears from cursor to end of line
func (b *Buffer) ClearToEndOfLine() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearRange(b.cursorY, b.cursorX, b.cols)
}

// ClearToStartOfLine clears from start of line to cursor, inclusive
func (b *Buffer) ClearToStartOfLine() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearRange(b.cursorY, 0, b.cursorX+1)
}

// ClearLine clears the entire current line
func (b *Buffer) ClearLine() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearRange(b.cursorY, 0, b.cols)
}

// ClearToEndOfScreen clears from cursor to end of screen
func (b *Buffer) ClearToEndOfScreen() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearRange(b.cursorY, b.cursorX, b.cols)
	for y := b.cursorY + 1; y < b.rows; y++ {
		b.screen[y] = b.makeBlankLine()
	}
}

// ClearToStartOfScreen clears from start of screen to cursor, inclusive
func (b *Buffer) ClearToStartOfScreen() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := 0; y < b.cursorY; y++ {
		b.screen[y] = b.makeBlankLine()
	}
	b.clearRange(b.cursorY, 0, b.cursorX+1)
}

// clearRange blanks cells [from, to) of row y. Must be called with the lock held.
func (b *Buffer) clearRange(y, from, to int) {
	if to > b.cols {
		to = b.cols
	}
	fill := b.blankCell()
	for x := from; x < to; x++ {
		b.screen[y][x] = fill
	}
	b.pendingWrap = false
}
