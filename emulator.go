package shrieker

import "github.com/phroun/shrieker/vt"

// Tile is one screen cell as the screen model sees it
type Tile struct {
	Glyph   rune // 0 when the cell has no glyph
	Bold    bool
	Reverse bool
}

// Emulator turns raw escape-coded output into a grid of tiles.
// Tiles are addressed by row-major linear offset.
type Emulator interface {
	Feed(data []byte)
	Tiles(start, end int) []Tile
	Cursor() (row, col int)
}

// vtEmulator adapts a vt.Terminal to the Emulator contract
type vtEmulator struct {
	term *vt.Terminal
}

// NewEmulator returns the default Emulator for a rows x cols screen
func NewEmulator(rows, cols int) Emulator {
	return &vtEmulator{term: vt.New(rows, cols)}
}

func (e *vtEmulator) Feed(data []byte) {
	e.term.Feed(data)
}

func (e *vtEmulator) Tiles(start, end int) []Tile {
	cells := e.term.Cells(start, end)
	tiles := make([]Tile, len(cells))
	for i, c := range cells {
		tiles[i] = Tile{Glyph: c.Char, Bold: c.Bold, Reverse: c.Reverse}
	}
	return tiles
}

func (e *vtEmulator) Cursor() (row, col int) {
	return e.term.Cursor()
}
