// Package emu maintains the in-memory model of a terminal screen. It
// applies decoded actions to a grid, cursor, scrollback and mode
// state. All geometry arithmetic clamps; no input can push the cursor
// out of bounds or panic the state machine.
package emu

import (
	"github.com/mattn/go-runewidth"

	"pkt.systems/phosphor/internal/terminal"
	"pkt.systems/phosphor/internal/terminal/vt"
)

// Emulator is the terminal state machine. It is not safe for
// concurrent use; the engine loop owns it exclusively.
type Emulator struct {
	cols int
	rows int

	main screen
	alt  screen
	scr  *screen

	mode        terminal.ModeSet
	cursorStyle terminal.CursorStyle
	cursorBlink bool
	title       string

	wrapPending bool

	attr cellAttr

	dec     *vt.Decoder
	history *scrollback
	palette [256]uint32

	tabStops []bool

	g0LineDrawing bool
	g1LineDrawing bool
	useG1         bool
}

type cellAttr struct {
	attrs int16
	fg    uint32
	bg    uint32
	link  string
}

// New constructs an emulator with the default scrollback capacity.
func New(cols, rows int) *Emulator {
	return NewWithScrollback(cols, rows, DefaultScrollbackLines)
}

// NewWithScrollback constructs an emulator with an explicit scrollback
// line capacity.
func NewWithScrollback(cols, rows, scrollbackLines int) *Emulator {
	size := terminal.Size{Cols: cols, Rows: rows}.Clamped()
	e := &Emulator{
		cols:        size.Cols,
		rows:        size.Rows,
		mode:        terminal.ModeLineWrap | terminal.ModeCursorVisible,
		cursorStyle: terminal.CursorBlock,
		cursorBlink: true,
		dec:         vt.NewDecoder(),
		history:     newScrollback(scrollbackLines),
	}
	e.main = newScreen(e.cols, e.rows)
	e.alt = newScreen(e.cols, e.rows)
	e.scr = &e.main
	e.tabStops = defaultTabs(e.cols)
	e.palette = defaultPalette()
	e.resetAttributes()
	return e
}

// Write feeds terminal output through the decoder into the state
// machine. It never fails; malformed sequences are absorbed.
func (e *Emulator) Write(p []byte) error {
	for _, a := range e.dec.Feed(p) {
		e.Apply(a)
	}
	return nil
}

// Apply performs a single decoded action.
func (e *Emulator) Apply(a vt.Action) {
	switch a.Kind {
	case vt.Print:
		e.printRune(a.Rune)
	case vt.Control:
		e.handleControl(a.Byte)
	case vt.ESC:
		e.handleESC(a)
	case vt.CSI:
		e.handleCSI(a)
	case vt.OSC:
		e.handleOSC(a)
	}
}

// Resize changes the emulator geometry, clamped to at least 1x1.
func (e *Emulator) Resize(cols, rows int) {
	size := terminal.Size{Cols: cols, Rows: rows}.Clamped()
	e.cols = size.Cols
	e.rows = size.Rows
	e.main = e.main.resize(e.cols, e.rows)
	e.alt = e.alt.resize(e.cols, e.rows)
	e.tabStops = defaultTabs(e.cols)
	e.wrapPending = false
}

// Size returns the current geometry.
func (e *Emulator) Size() terminal.Size {
	return terminal.Size{Cols: e.cols, Rows: e.rows}
}

// Snapshot captures the active screen and mode state.
func (e *Emulator) Snapshot() (terminal.Snapshot, error) {
	cells := make([]terminal.Cell, len(e.scr.cells))
	copy(cells, e.scr.cells)
	palette := make([]uint32, len(e.palette))
	copy(palette, e.palette[:])
	return terminal.Snapshot{
		Cols:        e.cols,
		Rows:        e.rows,
		Cursor:      e.scr.cursor,
		CursorStyle: e.cursorStyle,
		CursorBlink: e.cursorBlink,
		Mode:        e.mode,
		Title:       e.title,
		Cells:       cells,
		Palette:     palette,
	}, nil
}

// ScrollbackLen reports how many rows scrollback currently holds.
func (e *Emulator) ScrollbackLen() int {
	return e.history.len()
}

// ScrollbackRow returns the i-th scrollback row, oldest first, or nil
// when out of range.
func (e *Emulator) ScrollbackRow(i int) []terminal.Cell {
	return e.history.at(i)
}

// ClearScrollback drops all scrollback rows.
func (e *Emulator) ClearScrollback() {
	e.history.clear()
}

func (e *Emulator) handleControl(b byte) {
	switch b {
	case 0x07: // BEL
	case 0x08: // BS
		e.moveCursor(-1, 0)
	case 0x09: // TAB
		e.tab()
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		e.newLine(true)
	case 0x0d: // CR
		e.scr.cursor.X = 0
		e.wrapPending = false
	case 0x0e: // SO
		e.useG1 = true
	case 0x0f: // SI
		e.useG1 = false
	}
}

func (e *Emulator) handleESC(a vt.Action) {
	switch a.Inter {
	case '(':
		e.g0LineDrawing = a.Byte == '0'
		return
	case ')':
		e.g1LineDrawing = a.Byte == '0'
		return
	case 0:
	default:
		return
	}
	switch a.Byte {
	case '7':
		e.saveCursor()
	case '8':
		e.restoreCursor()
	case 'D':
		e.index()
	case 'M':
		e.reverseIndex()
	case 'E':
		e.newLine(true)
	case 'H':
		e.setTabStop()
	case 'c':
		e.reset()
	case '=':
		e.mode |= terminal.ModeAppKeypad
	case '>':
		e.mode &^= terminal.ModeAppKeypad
	default:
		// Unknown escapes are absorbed.
	}
}

func (e *Emulator) handleCSI(a vt.Action) {
	params := a.Params
	switch a.Final {
	case 'A':
		e.cursorUp(vt.Param(params, 0, 1))
	case 'B':
		e.cursorDown(vt.Param(params, 0, 1))
	case 'C':
		e.cursorForward(vt.Param(params, 0, 1))
	case 'D':
		e.cursorBackward(vt.Param(params, 0, 1))
	case 'E':
		e.cursorDown(vt.Param(params, 0, 1))
		e.scr.cursor.X = 0
	case 'F':
		e.cursorUp(vt.Param(params, 0, 1))
		e.scr.cursor.X = 0
	case 'G':
		e.cursorHorizontal(vt.Param(params, 0, 1))
	case 'H', 'f':
		e.cursorPosition(vt.Param(params, 0, 1), vt.Param(params, 1, 1))
	case 'd':
		e.cursorPosition(vt.Param(params, 0, 1), e.scr.cursor.X+1)
	case 'e':
		e.cursorDown(vt.Param(params, 0, 1))
	case 'J':
		e.eraseDisplay(vt.ParamAllowZero(params, 0, 0))
	case 'K':
		e.eraseLine(vt.ParamAllowZero(params, 0, 0))
	case 'L':
		e.scr.insertLines(e.scr.cursor.Y, vt.Param(params, 0, 1), e.blankCell())
	case 'M':
		e.scr.deleteLines(e.scr.cursor.Y, vt.Param(params, 0, 1), e.blankCell())
	case '@':
		e.scr.insertChars(e.scr.cursor.Y, e.scr.cursor.X, vt.Param(params, 0, 1), e.blankCell())
	case 'P':
		e.scr.deleteChars(e.scr.cursor.Y, e.scr.cursor.X, vt.Param(params, 0, 1), e.blankCell())
	case 'X':
		n := vt.Param(params, 0, 1)
		e.scr.clearLine(e.scr.cursor.Y, e.scr.cursor.X, e.scr.cursor.X+n-1, e.blankCell())
	case 'S':
		e.scrollUp(vt.Param(params, 0, 1))
	case 'T':
		e.scrollDown(vt.Param(params, 0, 1))
	case 'm':
		e.selectGraphicRendition(params)
	case 'r':
		e.setScrollRegion(params)
	case 's':
		e.saveCursor()
	case 'u':
		e.restoreCursor()
	case 'g':
		e.clearTabStops(vt.ParamAllowZero(params, 0, 0))
	case 'h':
		e.setMode(params, a.Private, true)
	case 'l':
		e.setMode(params, a.Private, false)
	case 'q':
		if a.Inter == ' ' {
			e.setCursorStyle(vt.ParamAllowZero(params, 0, 0))
		}
	default:
		// Unknown finals are absorbed.
	}
}

func (e *Emulator) handleOSC(a vt.Action) {
	switch a.Code {
	case 0, 2:
		e.title = a.Payload
	case 4:
		e.setPalette(a.Payload)
	case 8:
		_, uri := vt.SplitHyperlink(a.Payload)
		e.attr.link = uri
	}
}

func (e *Emulator) printRune(r rune) {
	r = e.translateRune(r)
	if e.wrapPending {
		e.wrapPending = false
		if e.mode.Has(terminal.ModeLineWrap) {
			e.newLine(true)
		}
	}

	width := runewidth.RuneWidth(r)
	if width <= 0 {
		width = 1
	}
	if width > e.cols {
		width = 1
	}

	if width == 2 && e.scr.cursor.X == e.cols-1 && e.mode.Has(terminal.ModeLineWrap) {
		e.newLine(true)
	}

	if e.mode.Has(terminal.ModeInsert) {
		e.scr.insertChars(e.scr.cursor.Y, e.scr.cursor.X, width, e.blankCell())
	}

	e.setCell(e.scr.cursor.X, e.scr.cursor.Y, r, width)

	e.scr.cursor.X += width
	if e.scr.cursor.X >= e.cols {
		e.scr.cursor.X = e.cols - 1
		if e.mode.Has(terminal.ModeLineWrap) {
			e.wrapPending = true
		}
	}
}

func (e *Emulator) translateRune(r rune) rune {
	if r < 0x20 || r > 0x7e {
		return r
	}
	lineDrawing := e.g0LineDrawing
	if e.useG1 {
		lineDrawing = e.g1LineDrawing
	}
	if !lineDrawing {
		return r
	}
	return mapLineDrawing(r)
}

func (e *Emulator) setCell(x, y int, r rune, width int) {
	if !e.scr.inBounds(x, y) {
		return
	}
	cell := terminal.Cell{
		Rune:  r,
		Attrs: e.attr.attrs,
		FG:    e.attr.fg,
		BG:    e.attr.bg,
		Link:  e.attr.link,
	}
	e.scr.cells[e.scr.index(x, y)] = cell
	if width == 2 && x+1 < e.cols {
		cont := cell
		cont.Rune = ' '
		e.scr.cells[e.scr.index(x+1, y)] = cont
	}
}

func (e *Emulator) setTabStop() {
	if e.scr.cursor.X >= 0 && e.scr.cursor.X < len(e.tabStops) {
		e.tabStops[e.scr.cursor.X] = true
	}
}

func (e *Emulator) clearTabStops(mode int) {
	switch mode {
	case 0:
		if e.scr.cursor.X >= 0 && e.scr.cursor.X < len(e.tabStops) {
			e.tabStops[e.scr.cursor.X] = false
		}
	case 3:
		e.tabStops = make([]bool, e.cols)
	}
}

func (e *Emulator) tab() {
	next := e.cols - 1
	for i := e.scr.cursor.X + 1; i < len(e.tabStops); i++ {
		if e.tabStops[i] {
			next = i
			break
		}
	}
	e.scr.cursor.X = next
	e.wrapPending = false
}

func (e *Emulator) cursorPosition(row, col int) {
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	}
	y := row - 1
	if e.mode.Has(terminal.ModeOrigin) {
		y += e.scr.scrollTop
		if y > e.scr.scrollBottom {
			y = e.scr.scrollBottom
		}
	}
	e.scr.cursor.X = clamp(col-1, 0, e.cols-1)
	e.scr.cursor.Y = clamp(y, 0, e.rows-1)
	e.wrapPending = false
}

func (e *Emulator) cursorHorizontal(col int) {
	e.scr.cursor.X = clamp(col-1, 0, e.cols-1)
	e.wrapPending = false
}

func (e *Emulator) cursorUp(n int) {
	minY := 0
	if e.mode.Has(terminal.ModeOrigin) {
		minY = e.scr.scrollTop
	}
	e.scr.cursor.Y = clamp(e.scr.cursor.Y-n, minY, e.rows-1)
	e.wrapPending = false
}

func (e *Emulator) cursorDown(n int) {
	maxY := e.rows - 1
	if e.mode.Has(terminal.ModeOrigin) {
		maxY = e.scr.scrollBottom
	}
	e.scr.cursor.Y = clamp(e.scr.cursor.Y+n, 0, maxY)
	e.wrapPending = false
}

func (e *Emulator) cursorForward(n int) {
	e.scr.cursor.X = clamp(e.scr.cursor.X+n, 0, e.cols-1)
	e.wrapPending = false
}

func (e *Emulator) cursorBackward(n int) {
	e.scr.cursor.X = clamp(e.scr.cursor.X-n, 0, e.cols-1)
	e.wrapPending = false
}

func (e *Emulator) moveCursor(dx, dy int) {
	e.scr.cursor.X = clamp(e.scr.cursor.X+dx, 0, e.cols-1)
	e.scr.cursor.Y = clamp(e.scr.cursor.Y+dy, 0, e.rows-1)
	e.wrapPending = false
}

func (e *Emulator) newLine(withCR bool) {
	if withCR {
		e.scr.cursor.X = 0
	}
	e.scr.cursor.Y++
	if e.scr.cursor.Y > e.scr.scrollBottom {
		e.scr.cursor.Y = e.scr.scrollBottom
		e.scrollUp(1)
	}
	e.wrapPending = false
}

func (e *Emulator) index() {
	e.newLine(false)
}

func (e *Emulator) reverseIndex() {
	if e.scr.cursor.Y == e.scr.scrollTop {
		e.scrollDown(1)
		return
	}
	e.scr.cursor.Y--
}

// scrollUp shifts the region up. Rows leaving the top of the main
// screen enter scrollback; the alternate screen never feeds it.
func (e *Emulator) scrollUp(n int) {
	var evict func([]terminal.Cell)
	if e.scr == &e.main && e.scr.scrollTop == 0 {
		evict = e.history.push
	}
	e.scr.scrollUp(n, e.blankCell(), evict)
}

func (e *Emulator) scrollDown(n int) {
	e.scr.scrollDown(n, e.blankCell())
}

func (e *Emulator) eraseDisplay(mode int) {
	switch mode {
	case 0:
		e.eraseLine(0)
		for y := e.scr.cursor.Y + 1; y < e.rows; y++ {
			e.scr.clearLine(y, 0, e.cols-1, e.blankCell())
		}
	case 1:
		for y := 0; y < e.scr.cursor.Y; y++ {
			e.scr.clearLine(y, 0, e.cols-1, e.blankCell())
		}
		e.eraseLine(1)
	case 2:
		e.scr.clearAll(e.blankCell())
	case 3:
		e.history.clear()
	}
}

func (e *Emulator) eraseLine(mode int) {
	switch mode {
	case 0:
		e.scr.clearLine(e.scr.cursor.Y, e.scr.cursor.X, e.cols-1, e.blankCell())
	case 1:
		e.scr.clearLine(e.scr.cursor.Y, 0, e.scr.cursor.X, e.blankCell())
	case 2:
		e.scr.clearLine(e.scr.cursor.Y, 0, e.cols-1, e.blankCell())
	}
}

func (e *Emulator) setScrollRegion(params []int) {
	top := vt.Param(params, 0, 1) - 1
	bottom := vt.Param(params, 1, e.rows) - 1
	if top < 0 {
		top = 0
	}
	if bottom >= e.rows {
		bottom = e.rows - 1
	}
	if top >= bottom {
		e.scr.scrollTop = 0
		e.scr.scrollBottom = e.rows - 1
	} else {
		e.scr.scrollTop = top
		e.scr.scrollBottom = bottom
	}
	e.cursorPosition(1, 1)
}

func (e *Emulator) setMode(params []int, private, enable bool) {
	if private {
		for _, p := range params {
			switch p {
			case 1:
				e.setFlag(terminal.ModeAppCursor, enable)
			case 6:
				e.setFlag(terminal.ModeOrigin, enable)
				e.cursorPosition(1, 1)
			case 7:
				e.setFlag(terminal.ModeLineWrap, enable)
			case 25:
				e.setFlag(terminal.ModeCursorVisible, enable)
			case 47, 1047, 1049:
				e.setAltScreen(enable, p)
			case 1000, 1002, 1003, 1006:
				e.setFlag(terminal.ModeMouseReporting, enable)
			case 1004:
				e.setFlag(terminal.ModeFocusReporting, enable)
			case 2004:
				e.setFlag(terminal.ModeBracketedPaste, enable)
			}
		}
		return
	}
	for _, p := range params {
		if p == 4 {
			e.setFlag(terminal.ModeInsert, enable)
		}
	}
}

func (e *Emulator) setFlag(m terminal.ModeSet, on bool) {
	if on {
		e.mode |= m
	} else {
		e.mode &^= m
	}
}

// setAltScreen swaps the active grid reference; the main buffer's
// contents are preserved untouched. mode is the DEC private number
// requesting the switch: 1047 and 1049 clear the alternate screen on
// entry, plain 47 keeps it, and only 1049 saves and restores the
// cursor around the swap.
func (e *Emulator) setAltScreen(enable bool, mode int) {
	if enable {
		if e.scr == &e.alt {
			return
		}
		if mode == 1049 {
			e.main.saved = savedState{
				cursor: e.main.cursor,
				attrs:  e.attr.attrs,
				fg:     e.attr.fg,
				bg:     e.attr.bg,
				origin: e.mode.Has(terminal.ModeOrigin),
				valid:  true,
			}
		}
		if mode == 1047 || mode == 1049 {
			e.alt.clearAll(e.blankCell())
		}
		e.scr = &e.alt
		e.scr.cursor = terminal.Cursor{}
		e.mode |= terminal.ModeAltScreen
	} else {
		if e.scr == &e.main {
			return
		}
		e.scr = &e.main
		if mode == 1049 {
			e.restoreCursor()
		}
		e.mode &^= terminal.ModeAltScreen
	}
	e.wrapPending = false
}

// saveCursor captures the DECSC slot on the active screen.
func (e *Emulator) saveCursor() {
	e.scr.saved = savedState{
		cursor: e.scr.cursor,
		attrs:  e.attr.attrs,
		fg:     e.attr.fg,
		bg:     e.attr.bg,
		origin: e.mode.Has(terminal.ModeOrigin),
		valid:  true,
	}
}

// restoreCursor restores the DECSC slot. With no prior save the slot's
// zero value applies: home position, default attributes.
func (e *Emulator) restoreCursor() {
	saved := e.scr.saved
	e.scr.cursor = clampCursor(saved.cursor, e.cols, e.rows)
	e.attr.attrs = saved.attrs
	e.attr.fg = saved.fg
	e.attr.bg = saved.bg
	e.setFlag(terminal.ModeOrigin, saved.origin)
	e.wrapPending = false
}

func (e *Emulator) setCursorStyle(n int) {
	switch n {
	case 0, 1:
		e.cursorStyle = terminal.CursorBlock
		e.cursorBlink = true
	case 2:
		e.cursorStyle = terminal.CursorBlock
		e.cursorBlink = false
	case 3:
		e.cursorStyle = terminal.CursorUnderline
		e.cursorBlink = true
	case 4:
		e.cursorStyle = terminal.CursorUnderline
		e.cursorBlink = false
	case 5:
		e.cursorStyle = terminal.CursorBar
		e.cursorBlink = true
	case 6:
		e.cursorStyle = terminal.CursorBar
		e.cursorBlink = false
	}
}

func (e *Emulator) selectGraphicRendition(params []int) {
	if len(params) == 0 {
		params = []int{0}
	} else {
		for i := range params {
			if params[i] == -1 {
				params[i] = 0
			}
		}
	}
	for i := 0; i < len(params); i++ {
		switch p := params[i]; p {
		case 0:
			e.resetAttributes()
		case 1:
			e.attr.attrs |= terminal.AttrBold
		case 2:
			e.attr.attrs |= terminal.AttrFaint
		case 3:
			e.attr.attrs |= terminal.AttrItalic
		case 4, 21:
			e.attr.attrs |= terminal.AttrUnderline
		case 5:
			e.attr.attrs |= terminal.AttrBlink
		case 7:
			e.attr.attrs |= terminal.AttrInverse
		case 8:
			e.attr.attrs |= terminal.AttrHidden
		case 9:
			e.attr.attrs |= terminal.AttrStrike
		case 22:
			e.attr.attrs &^= terminal.AttrBold | terminal.AttrFaint
		case 23:
			e.attr.attrs &^= terminal.AttrItalic
		case 24:
			e.attr.attrs &^= terminal.AttrUnderline
		case 25:
			e.attr.attrs &^= terminal.AttrBlink
		case 27:
			e.attr.attrs &^= terminal.AttrInverse
		case 28:
			e.attr.attrs &^= terminal.AttrHidden
		case 29:
			e.attr.attrs &^= terminal.AttrStrike
		case 39:
			e.attr.fg = terminal.ColorDefault
		case 49:
			e.attr.bg = terminal.ColorDefault
		case 38, 48:
			color, consumed, ok := extendedColor(params[i+1:])
			i += consumed
			if !ok {
				continue
			}
			if p == 38 {
				e.attr.fg = color
			} else {
				e.attr.bg = color
			}
		default:
			switch {
			case p >= 30 && p <= 37:
				e.attr.fg = terminal.ColorIndexed | uint32(p-30)
			case p >= 40 && p <= 47:
				e.attr.bg = terminal.ColorIndexed | uint32(p-40)
			case p >= 90 && p <= 97:
				e.attr.fg = terminal.ColorIndexed | uint32(p-90+8)
			case p >= 100 && p <= 107:
				e.attr.bg = terminal.ColorIndexed | uint32(p-100+8)
			}
		}
	}
}

// extendedColor parses the tail of a 38/48 compound parameter
// (5;n or 2;r;g;b) as one atomic color change. It reports how many
// parameters it consumed even on malformed input, so a bad color
// cannot shift later parameters.
func extendedColor(rest []int) (color uint32, consumed int, ok bool) {
	if len(rest) == 0 {
		return 0, 0, false
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return 0, len(rest), false
		}
		n := rest[1]
		if n < 0 || n > 255 {
			return 0, 2, false
		}
		return terminal.ColorIndexed256 | uint32(n), 2, true
	case 2:
		if len(rest) < 4 {
			return 0, len(rest), false
		}
		r := clamp(rest[1], 0, 255)
		g := clamp(rest[2], 0, 255)
		b := clamp(rest[3], 0, 255)
		return terminal.ColorTrue | uint32(r)<<16 | uint32(g)<<8 | uint32(b), 4, true
	default:
		return 0, 0, false
	}
}

func (e *Emulator) setPalette(payload string) {
	for idx, rgb := range parsePaletteSpec(payload) {
		e.palette[idx] = rgb
	}
}

// blankCell is the fill for erase and scroll operations: a space
// carrying the current background, not the full attribute set.
func (e *Emulator) blankCell() terminal.Cell {
	return terminal.Cell{
		Rune: ' ',
		BG:   e.attr.bg,
	}
}

func (e *Emulator) resetAttributes() {
	e.attr = cellAttr{
		fg:   terminal.ColorDefault,
		bg:   terminal.ColorDefault,
		link: e.attr.link,
	}
}

func (e *Emulator) reset() {
	e.attr = cellAttr{}
	e.mode = terminal.ModeLineWrap | terminal.ModeCursorVisible
	e.wrapPending = false
	e.cursorStyle = terminal.CursorBlock
	e.cursorBlink = true
	e.title = ""
	e.palette = defaultPalette()
	e.main.clearAll(e.blankCell())
	e.alt.clearAll(e.blankCell())
	e.main.saved = savedState{}
	e.alt.saved = savedState{}
	e.scr = &e.main
	e.scr.cursor = terminal.Cursor{}
	e.main.scrollTop = 0
	e.main.scrollBottom = e.rows - 1
	e.alt.scrollTop = 0
	e.alt.scrollBottom = e.rows - 1
	e.tabStops = defaultTabs(e.cols)
	e.g0LineDrawing = false
	e.g1LineDrawing = false
	e.useG1 = false
}

func defaultTabs(cols int) []bool {
	stops := make([]bool, cols)
	for i := 0; i < cols; i += 8 {
		stops[i] = true
	}
	return stops
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func mapLineDrawing(r rune) rune {
	switch r {
	case '`':
		return '◆'
	case 'a':
		return '▒'
	case 'f':
		return '°'
	case 'g':
		return '±'
	case 'j':
		return '┘'
	case 'k':
		return '┐'
	case 'l':
		return '┌'
	case 'm':
		return '└'
	case 'n':
		return '┼'
	case 'q':
		return '─'
	case 't':
		return '├'
	case 'u':
		return '┤'
	case 'v':
		return '┴'
	case 'w':
		return '┬'
	case 'x':
		return '│'
	case '~':
		return '·'
	default:
		return r
	}
}
