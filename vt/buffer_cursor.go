package vt

// --- Cursor Position Methods ---

// GetCursor returns the current cursor position
func (b *Buffer) GetCursor() (x, y int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cursorX, b.cursorY
}

// SetCursor sets the cursor position (clamped to valid range)
func (b *Buffer) SetCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setCursorInternal(x, y)
}

func (b *Buffer) setCursorInternal(x, y int) {
	if x < 0 {
		x = 0
	}
	if x >= b.cols {
		x = b.cols - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= b.rows {
		y = b.rows - 1
	}
	b.cursorX = x
	b.cursorY = y
	b.pendingWrap = false
}

// MoveCursorUp moves cursor up n rows, stopping at the top margin
func (b *Buffer) MoveCursorUp(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	top := 0
	if b.cursorY >= b.scrollTop {
		top = b.scrollTop
	}
	newY := b.cursorY - n
	if newY < top {
		newY = top
	}
	b.cursorY = newY
	b.pendingWrap = false
}

// MoveCursorDown moves cursor down n rows, stopping at the bottom margin
func (b *Buffer) MoveCursorDown(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bottom := b.rows - 1
	if b.cursorY <= b.scrollBottom {
		bottom = b.scrollBottom
	}
	newY := b.cursorY + n
	if newY > bottom {
		newY = bottom
	}
	b.cursorY = newY
	b.pendingWrap = false
}

// MoveCursorForward moves cursor right n columns (CSI C)
func (b *Buffer) MoveCursorForward(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX += n
	if b.cursorX >= b.cols {
		b.cursorX = b.cols - 1
	}
	b.pendingWrap = false
}

// MoveCursorBackward moves cursor left n columns (CSI D)
func (b *Buffer) MoveCursorBackward(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX -= n
	if b.cursorX < 0 {
		b.cursorX = 0
	}
	b.pendingWrap = false
}

// --- Cursor Visibility ---

// SetCursorVisible sets cursor visibility
func (b *Buffer) SetCursorVisible(visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = visible
}

// IsCursorVisible returns cursor visibility
func (b *Buffer) IsCursorVisible() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cursorVisible
}

// --- Cursor Save/Restore ---

// SaveCursor saves the current cursor position
func (b *Buffer) SaveCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.savedCursorX = b.cursorX
	b.savedCursorY = b.cursorY
}

// RestoreCursor restores the saved cursor position
func (b *Buffer) RestoreCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setCursorInternal(b.savedCursorX, b.savedCursorY)
}
