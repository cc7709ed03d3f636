package vt

// Cell represents a single character cell in the terminal
type Cell struct {
	Char       rune // blank cells hold a space
	Foreground Color
	Background Color
	Bold       bool
	Underline  bool
	Reverse    bool
	Blink      bool
}

// String returns the cell's character, or a space for an empty cell
func (c Cell) String() string {
	if c.Char == 0 {
		return " "
	}
	return string(c.Char)
}

// EmptyCell returns an empty cell with default attributes
func EmptyCell() Cell {
	return Cell{
		Char:       ' ',
		Foreground: DefaultForeground,
		Background: DefaultBackground,
	}
}

// EmptyCellWithColors returns an empty cell with specified colors
func EmptyCellWithColors(fg, bg Color) Cell {
	return Cell{
		Char:       ' ',
		Foreground: fg,
		Background: bg,
	}
}
