package shrieker

import "strings"

// Rows at the bottom of the screen given over to the status lines.
// Neighborhood never reads them as map content.
const statusRows = 2

// Screen holds the glyph grid and style planes of the latest frame
type Screen struct {
	rows, cols int
	emu        Emulator

	glyphs  [][]int
	bold    [][]bool
	reverse [][]bool

	cursorRow int
	cursorCol int
}

// NewScreen creates a rows x cols screen model reading from emu
func NewScreen(rows, cols int, emu Emulator) *Screen {
	s := &Screen{
		rows:    rows,
		cols:    cols,
		emu:     emu,
		glyphs:  make([][]int, rows),
		bold:    make([][]bool, rows),
		reverse: make([][]bool, rows),
	}
	for y := 0; y < rows; y++ {
		s.glyphs[y] = make([]int, cols)
		s.bold[y] = make([]bool, cols)
		s.reverse[y] = make([]bool, cols)
	}
	return s
}

// Feed passes raw output to the emulator and re-reads the whole grid
func (s *Screen) Feed(raw []byte) {
	s.emu.Feed(raw)

	for y := 0; y < s.rows; y++ {
		tiles := s.emu.Tiles(s.cols*y, s.cols*(y+1))
		glyphs, bold, reverse := s.glyphs[y], s.bold[y], s.reverse[y]
		for x := 0; x < s.cols; x++ {
			if x >= len(tiles) {
				glyphs[x], bold[x], reverse[x] = 0, false, false
				continue
			}
			t := tiles[x]
			glyphs[x] = int(t.Glyph)
			bold[x] = t.Bold
			reverse[x] = t.Reverse
		}
	}

	row, col := s.emu.Cursor()
	s.cursorRow = clamp(row, 0, s.rows-1)
	s.cursorCol = clamp(col, 0, s.cols-1)
}

// Size returns the grid shape
func (s *Screen) Size() (rows, cols int) {
	return s.rows, s.cols
}

// Cursor returns the cursor position
func (s *Screen) Cursor() (row, col int) {
	return s.cursorRow, s.cursorCol
}

// Glyph returns the glyph code at (row, col), or 0 outside the grid
func (s *Screen) Glyph(row, col int) int {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return 0
	}
	return s.glyphs[row][col]
}

// Bold reports whether the cell at (row, col) is bold
func (s *Screen) Bold(row, col int) bool {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return false
	}
	return s.bold[row][col]
}

// Reverse reports whether the cell at (row, col) is in reverse video
func (s *Screen) Reverse(row, col int) bool {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return false
	}
	return s.reverse[row][col]
}

// Row returns row y as text. Cells without a glyph read as spaces.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.rows {
		return ""
	}
	return glyphsToString(s.glyphs[y])
}

// String renders the whole grid, one line per row
func (s *Screen) String() string {
	return gridString(s.glyphs)
}

// Neighborhood returns the (2r+1) x (2r+1) glyph window centred on the
// cursor. Cells that fall outside the playfield are zero. The playfield is
// the whole grid minus the status rows at the bottom.
func (s *Screen) Neighborhood(radius int) [][]int {
	if radius < 0 {
		radius = 0
	}
	size := 2*radius + 1
	hood := make([][]int, size)
	for i := range hood {
		hood[i] = make([]int, size)
	}

	y, x := s.cursorRow, s.cursorCol
	playRows := s.rows - statusRows

	// Source window [ylo, yhi) x [xlo, xhi) and its offset (ulo, vlo) in the
	// output; each edge is clamped on its own.
	ylo, yhi := y-radius, y+radius+1
	xlo, xhi := x-radius, x+radius+1
	ulo, vlo := 0, 0
	if ylo < 0 {
		ulo = -ylo
		ylo = 0
	}
	if xlo < 0 {
		vlo = -xlo
		xlo = 0
	}
	if yhi > playRows {
		yhi = playRows
	}
	if xhi > s.cols {
		xhi = s.cols
	}

	for sy := ylo; sy < yhi; sy++ {
		copy(hood[ulo+sy-ylo][vlo:], s.glyphs[sy][xlo:xhi])
	}
	return hood
}

func glyphsToString(glyphs []int) string {
	var sb strings.Builder
	sb.Grow(len(glyphs))
	for _, g := range glyphs {
		if g == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteRune(rune(g))
		}
	}
	return sb.String()
}

func gridString(grid [][]int) string {
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = glyphsToString(row)
	}
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
