// Package vt provides the terminal emulation used to turn the game's escape
// coded output into a fixed grid of cells.
//
// This package contains:
//   - Color and Cell types
//   - A fixed-size screen buffer with cursor and attribute state
//   - An ANSI escape sequence parser feeding the buffer
//   - Terminal, which pairs a buffer with a parser
//
// Only the subset of VT100/ANSI that curses-style games emit is interpreted.
// There is no scrollback: lines scrolled off the top are discarded.
package vt

// ColorType indicates how a color was specified
type ColorType uint8

const (
	ColorTypeDefault  ColorType = iota // Terminal default fg/bg (SGR 39/49)
	ColorTypeStandard                  // Standard 16 ANSI colors (0-15)
	ColorTypePalette                   // 256-color palette (0-255)
)

// Color represents a terminal color as the application specified it.
type Color struct {
	Type  ColorType
	Index uint8
}

// Predefined colors
var (
	DefaultForeground = Color{Type: ColorTypeDefault, Index: 7}
	DefaultBackground = Color{Type: ColorTypeDefault, Index: 0}
)

// Standard color indexes
const (
	Black = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// StandardColor creates a standard 16-color ANSI color (index 0-15)
func StandardColor(index int) Color {
	if index < 0 || index > 15 {
		index = White
	}
	return Color{Type: ColorTypeStandard, Index: uint8(index)}
}

// PaletteColor creates a 256-color palette color (index 0-255)
func PaletteColor(index int) Color {
	if index < 0 || index > 255 {
		index = White
	}
	return Color{Type: ColorTypePalette, Index: uint8(index)}
}
