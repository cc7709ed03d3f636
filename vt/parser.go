package vt

import (
	"strconv"
	"unicode/utf8"
)

// Parser states
type parserState int

const (
	stateGround    parserState = iota
	stateEscape                // After ESC
	stateCSI                   // After ESC [
	stateCSIParam              // Reading CSI parameters
	stateOSC                   // After ESC ], until BEL or ST
	stateOSCEscape             // ESC seen inside OSC (possible ST)
	stateCharset               // After ESC ( or ESC )
	stateSkipOne               // After ESC #, ESC %: consume one byte
)

// Parser parses ANSI escape sequences and updates a Buffer
type Parser struct {
	buffer *Buffer
	state  parserState

	// CSI sequence accumulator
	csiParams       []int
	csiPrivate      byte // For private sequences like ?25h
	csiIntermediate byte
	csiBuf          []byte

	// UTF-8 multi-byte handling
	utf8Buf  []byte
	utf8Need int
}

// NewParser creates a new ANSI parser for the given buffer
func NewParser(buffer *Buffer) *Parser {
	return &Parser{
		buffer:    buffer,
		state:     stateGround,
		csiParams: make([]int, 0, 16),
	}
}

// Parse processes input data and updates the terminal buffer.
// Sequences split across calls are carried over in the parser state.
func (p *Parser) Parse(data []byte) {
	for _, b := range data {
		p.processByte(b)
	}
}

// ParseString processes a string and updates the terminal buffer
func (p *Parser) ParseString(data string) {
	p.Parse([]byte(data))
}

func (p *Parser) processByte(b byte) {
	if p.utf8Need > 0 {
		if b&0xC0 == 0x80 {
			p.utf8Buf = append(p.utf8Buf, b)
			p.utf8Need--
			if p.utf8Need == 0 {
				r, _ := utf8.DecodeRune(p.utf8Buf)
				p.buffer.WriteChar(r)
				p.utf8Buf = p.utf8Buf[:0]
			}
			return
		}
		// Invalid UTF-8, drop what we had and process b normally
		p.utf8Buf = p.utf8Buf[:0]
		p.utf8Need = 0
	}

	if p.state == stateGround {
		need := 0
		switch {
		case b&0xE0 == 0xC0:
			need = 1
		case b&0xF0 == 0xE0:
			need = 2
		case b&0xF8 == 0xF0:
			need = 3
		}
		if need > 0 {
			p.utf8Buf = append(p.utf8Buf[:0], b)
			p.utf8Need = need
			return
		}
	}

	switch p.state {
	case stateGround:
		p.handleGround(b)
	case stateEscape:
		p.handleEscape(b)
	case stateCSI, stateCSIParam:
		p.handleCSI(b)
	case stateOSC:
		p.handleOSC(b)
	case stateOSCEscape:
		// ESC \ ends the string; anything else is treated the same way
		p.state = stateGround
	case stateCharset, stateSkipOne:
		p.state = stateGround
	}
}

func (p *Parser) handleGround(b byte) {
	switch b {
	case 0x00: // NUL - ignore
	case 0x07: // BEL - ignore
	case 0x08: // BS
		p.buffer.Backspace()
	case 0x09: // HT
		p.buffer.Tab()
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		p.buffer.LineFeed()
	case 0x0D: // CR
		p.buffer.CarriageReturn()
	case 0x0E, 0x0F: // SO, SI - charset shifts, ignored
	case 0x1B: // ESC
		p.state = stateEscape
	default:
		if b >= 0x20 && b < 0x7F {
			p.buffer.WriteChar(rune(b))
		}
	}
}

func (p *Parser) handleEscape(b byte) {
	p.state = stateGround
	switch b {
	case '[': // CSI
		p.state = stateCSI
		p.csiParams = p.csiParams[:0]
		p.csiPrivate = 0
		p.csiIntermediate = 0
		p.csiBuf = p.csiBuf[:0]
	case ']': // OSC
		p.state = stateOSC
	case '(', ')', '*', '+': // Character set designation
		p.state = stateCharset
	case '#', '%':
		p.state = stateSkipOne
	case '7': // DECSC
		p.buffer.SaveCursor()
	case '8': // DECRC
		p.buffer.RestoreCursor()
	case 'c': // RIS
		p.buffer.Reset()
	case 'D': // IND
		p.buffer.LineFeed()
	case 'E': // NEL
		p.buffer.CarriageReturn()
		p.buffer.LineFeed()
	case 'M': // RI
		p.buffer.ReverseIndex()
	case '=', '>': // DECKPAM / DECKPNM
	}
}

func (p *Parser) handleOSC(b byte) {
	switch b {
	case 0x07:
		p.state = stateGround
	case 0x1B:
		p.state = stateOSCEscape
	}
}

func (p *Parser) handleCSI(b byte) {
	if p.state == stateCSI {
		p.state = stateCSIParam
		if b == '?' || b == '>' || b == '!' || b == '<' || b == '=' {
			p.csiPrivate = b
			return
		}
	}

	switch {
	case b >= '0' && b <= '9':
		p.csiBuf = append(p.csiBuf, b)
		return
	case b == ';':
		p.parseCSIParam()
		return
	case b == ':':
		// Sub-parameters are not interpreted; keep only the base value
		p.csiBuf = append(p.csiBuf, b)
		return
	case b >= 0x20 && b <= 0x2F:
		p.csiIntermediate = b
		return
	case b == 0x1B:
		// Aborted sequence
		p.state = stateEscape
		return
	case b < 0x20:
		// C0 controls execute in the middle of a sequence
		p.handleGround(b)
		return
	}

	p.parseCSIParam()
	p.executeCSI(b)
	p.state = stateGround
}

func (p *Parser) parseCSIParam() {
	s := p.csiBuf
	for i, c := range s {
		if c == ':' {
			s = s[:i]
			break
		}
	}
	n := 0
	if len(s) > 0 {
		n, _ = strconv.Atoi(string(s))
	}
	p.csiParams = append(p.csiParams, n)
	p.csiBuf = p.csiBuf[:0]
}

func (p *Parser) getParam(idx, defaultVal int) int {
	if idx < len(p.csiParams) && p.csiParams[idx] > 0 {
		return p.csiParams[idx]
	}
	return defaultVal
}

func (p *Parser) executeCSI(finalByte byte) {
	if p.csiIntermediate != 0 {
		// DECSCUSR, DECSTR and friends carry no screen content
		return
	}
	switch finalByte {
	case 'A': // CUU
		p.buffer.MoveCursorUp(p.getParam(0, 1))
	case 'B', 'e': // CUD, VPR
		p.buffer.MoveCursorDown(p.getParam(0, 1))
	case 'C', 'a': // CUF, HPR
		p.buffer.MoveCursorForward(p.getParam(0, 1))
	case 'D': // CUB
		p.buffer.MoveCursorBackward(p.getParam(0, 1))
	case 'E': // CNL
		p.buffer.MoveCursorDown(p.getParam(0, 1))
		p.buffer.CarriageReturn()
	case 'F': // CPL
		p.buffer.MoveCursorUp(p.getParam(0, 1))
		p.buffer.CarriageReturn()
	case 'G', '`': // CHA, HPA
		_, y := p.buffer.GetCursor()
		p.buffer.SetCursor(p.getParam(0, 1)-1, y)
	case 'H', 'f': // CUP/HVP
		p.buffer.SetCursor(p.getParam(1, 1)-1, p.getParam(0, 1)-1)
	case 'd': // VPA
		x, _ := p.buffer.GetCursor()
		p.buffer.SetCursor(x, p.getParam(0, 1)-1)
	case 'J': // ED
		switch p.getParam(0, 0) {
		case 0:
			p.buffer.ClearToEndOfScreen()
		case 1:
			p.buffer.ClearToStartOfScreen()
		case 2, 3:
			p.buffer.ClearScreen()
		}
	case 'K': // EL
		switch p.getParam(0, 0) {
		case 0:
			p.buffer.ClearToEndOfLine()
		case 1:
			p.buffer.ClearToStartOfLine()
		case 2:
			p.buffer.ClearLine()
		}
	case 'L': // IL
		p.buffer.InsertLines(p.getParam(0, 1))
	case 'M': // DL
		p.buffer.DeleteLines(p.getParam(0, 1))
	case 'P': // DCH
		p.buffer.DeleteChars(p.getParam(0, 1))
	case '@': // ICH
		p.buffer.InsertChars(p.getParam(0, 1))
	case 'X': // ECH
		p.buffer.EraseChars(p.getParam(0, 1))
	case 'S': // SU
		p.buffer.ScrollUp(p.getParam(0, 1))
	case 'T': // SD
		if p.csiPrivate == 0 {
			p.buffer.ScrollDown(p.getParam(0, 1))
		}
	case 'm': // SGR
		if p.csiPrivate == 0 {
			p.executeSGR()
		}
	case 'h': // SM
		if p.csiPrivate == '?' {
			p.executePrivateModeSet(true)
		}
	case 'l': // RM
		if p.csiPrivate == '?' {
			p.executePrivateModeSet(false)
		}
	case 'r': // DECSTBM
		if p.csiPrivate == 0 {
			_, rows := p.buffer.GetSize()
			p.buffer.SetScrollRegion(p.getParam(0, 1)-1, p.getParam(1, rows)-1)
		}
	case 's': // SCP
		p.buffer.SaveCursor()
	case 'u': // RCP
		p.buffer.RestoreCursor()
	case 'n', 'c', 't': // DSR, DA, window ops: need a reply channel, ignored
	}
}

func (p *Parser) executePrivateModeSet(set bool) {
	for _, mode := range p.csiParams {
		switch mode {
		case 7: // DECAWM
			p.buffer.SetAutoWrap(set)
		case 25: // DECTCEM
			p.buffer.SetCursorVisible(set)
		case 47, 1047, 1049: // Alternate screen: one screen here, just clear on entry/exit
			p.buffer.ClearScreen()
		}
	}
}

func (p *Parser) executeSGR() {
	if len(p.csiParams) == 0 {
		p.buffer.ResetAttributes()
		return
	}

	for i := 0; i < len(p.csiParams); i++ {
		param := p.csiParams[i]
		switch {
		case param == 0:
			p.buffer.ResetAttributes()
		case param == 1:
			p.buffer.SetBold(true)
		case param == 2, param == 21, param == 22:
			p.buffer.SetBold(false)
		case param == 4:
			p.buffer.SetUnderline(true)
		case param == 5, param == 6:
			p.buffer.SetBlink(true)
		case param == 7:
			p.buffer.SetReverse(true)
		case param == 24:
			p.buffer.SetUnderline(false)
		case param == 25:
			p.buffer.SetBlink(false)
		case param == 27:
			p.buffer.SetReverse(false)
		case param >= 30 && param <= 37:
			p.buffer.SetForeground(StandardColor(param - 30))
		case param >= 90 && param <= 97:
			p.buffer.SetForeground(StandardColor(param - 90 + 8))
		case param >= 40 && param <= 47:
			p.buffer.SetBackground(StandardColor(param - 40))
		case param >= 100 && param <= 107:
			p.buffer.SetBackground(StandardColor(param - 100 + 8))
		case param == 39:
			p.buffer.SetForeground(DefaultForeground)
		case param == 49:
			p.buffer.SetBackground(DefaultBackground)
		case param == 38, param == 48:
			// 38;5;N and 48;5;N; truecolor is skipped over
			if i+2 < len(p.csiParams) && p.csiParams[i+1] == 5 {
				c := PaletteColor(p.csiParams[i+2])
				if param == 38 {
					p.buffer.SetForeground(c)
				} else {
					p.buffer.SetBackground(c)
				}
				i += 2
			} else if i+4 < len(p.csiParams) && p.csiParams[i+1] == 2 {
				i += 4
			}
		}
	}
}
