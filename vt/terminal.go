package vt

// Terminal pairs a Buffer with the Parser that feeds it
type Terminal struct {
	buffer *Buffer
	parser *Parser
}

// New creates a terminal of the given size
func New(rows, cols int) *Terminal {
	buffer := NewBuffer(cols, rows)
	return &Terminal{
		buffer: buffer,
		parser: NewParser(buffer),
	}
}

// Feed parses raw output from the application
func (t *Terminal) Feed(data []byte) {
	t.parser.Parse(data)
}

// Buffer returns the underlying screen buffer
func (t *Terminal) Buffer() *Buffer {
	return t.buffer
}

// Cells returns the cells in the row-major linear range [start, end)
func (t *Terminal) Cells(start, end int) []Cell {
	return t.buffer.Cells(start, end)
}

// Cursor returns the cursor position as (row, col)
func (t *Terminal) Cursor() (row, col int) {
	x, y := t.buffer.GetCursor()
	return y, x
}

// Size returns the terminal size as (rows, cols)
func (t *Terminal) Size() (rows, cols int) {
	cols, rows = t.buffer.GetSize()
	return rows, cols
}
