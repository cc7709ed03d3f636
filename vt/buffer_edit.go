package vt

// --- Line Insert/Delete ---

// InsertLines inserts n blank lines at the cursor, inside the scroll region
func (b *Buffer) InsertLines(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cursorY < b.scrollTop || b.cursorY > b.scrollBottom {
		return
	}
	for i := 0; i < n; i++ {
		copy(b.screen[b.cursorY+1:b.scrollBottom+1], b.screen[b.cursorY:b.scrollBottom])
		b.screen[b.cursorY] = b.makeBlankLine()
	}
	b.cursorX = 0
	b.pendingWrap = false
}

// DeleteLines deletes n lines at the cursor, inside the scroll region
func (b *Buffer) DeleteLines(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cursorY < b.scrollTop || b.cursorY > b.scrollBottom {
		return
	}
	for i := 0; i < n; i++ {
		copy(b.screen[b.cursorY:b.scrollBottom], b.screen[b.cursorY+1:b.scrollBottom+1])
		b.screen[b.scrollBottom] = b.makeBlankLine()
	}
	b.cursorX = 0
	b.pendingWrap = false
}

// --- Character Insert/Delete ---

// DeleteChars deletes n characters at cursor, shifting the rest left
func (b *Buffer) DeleteChars(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	line := b.screen[b.cursorY]
	if n > b.cols-b.cursorX {
		n = b.cols - b.cursorX
	}
	copy(line[b.cursorX:], line[b.cursorX+n:])
	fill := b.blankCell()
	for x := b.cols - n; x < b.cols; x++ {
		line[x] = fill
	}
	b.pendingWrap = false
}

// InsertChars inserts n blank characters at cursor, shifting the rest right
func (b *Buffer) InsertChars(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	line := b.screen[b.cursorY]
	if n > b.cols-b.cursorX {
		n = b.cols - b.cursorX
	}
	copy(line[b.cursorX+n:], line[b.cursorX:b.cols-n])
	fill := b.blankCell()
	for x := b.cursorX; x < b.cursorX+n; x++ {
		line[x] = fill
	}
	b.pendingWrap = false
}

// EraseChars erases n characters at cursor (replaces with blanks)
func (b *Buffer) EraseChars(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearRange(b.cursorY, b.cursorX, b.cursorX+n)
}
