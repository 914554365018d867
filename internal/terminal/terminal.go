package terminal

import "fmt"

// Size is the terminal geometry in character cells.
type Size struct {
	Cols int
	Rows int
}

// Clamped returns the size clamped to at least 1x1.
func (s Size) Clamped() Size {
	if s.Cols < 1 {
		s.Cols = 1
	}
	if s.Rows < 1 {
		s.Rows = 1
	}
	return s
}

// Cursor is a 0-indexed cell position.
type Cursor struct {
	X int
	Y int
}

// Cell holds a terminal cell's content and attributes.
type Cell struct {
	Rune  rune
	Attrs int16
	FG    uint32
	BG    uint32
	Link  string
}

// Cell attribute flags.
const (
	AttrBold      int16 = 1 << 0
	AttrFaint     int16 = 1 << 1
	AttrItalic    int16 = 1 << 2
	AttrUnderline int16 = 1 << 3
	AttrBlink     int16 = 1 << 4
	AttrInverse   int16 = 1 << 5
	AttrHidden    int16 = 1 << 6
	AttrStrike    int16 = 1 << 7
)

// Color encoding for Cell.FG and Cell.BG. The top byte tags the
// variant, the low 24 bits carry the index or RGB value.
const (
	ColorDefault    uint32 = 0
	ColorIndexed    uint32 = 1 << 24
	ColorIndexed256 uint32 = 2 << 24
	ColorTrue       uint32 = 3 << 24
	ColorFlagMask   uint32 = 0xff000000
	ColorValueMask  uint32 = 0x00ffffff
)

// ModeSet is a bit-set of terminal mode flags.
type ModeSet uint32

const (
	ModeLineWrap ModeSet = 1 << iota
	ModeCursorVisible
	ModeAltScreen
	ModeBracketedPaste
	ModeFocusReporting
	ModeMouseReporting
	ModeAppCursor
	ModeAppKeypad
	ModeOrigin
	ModeInsert
)

// Has reports whether all flags in m are set.
func (s ModeSet) Has(m ModeSet) bool { return s&m == m }

// CursorStyle selects the cursor shape.
type CursorStyle int8

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
)

// Snapshot captures terminal state for consumers.
type Snapshot struct {
	Cols        int
	Rows        int
	Cursor      Cursor
	CursorStyle CursorStyle
	CursorBlink bool
	Mode        ModeSet
	Title       string
	Cells       []Cell
	Palette     []uint32
}

// CursorVisible reports whether the cursor should be drawn.
func (s Snapshot) CursorVisible() bool {
	return s.Mode.Has(ModeCursorVisible)
}

// CellAt returns the cell at (x, y).
func (s Snapshot) CellAt(x, y int) (Cell, error) {
	if x < 0 || y < 0 || x >= s.Cols || y >= s.Rows {
		return Cell{}, fmt.Errorf("cell out of range")
	}
	idx := y*s.Cols + x
	return s.Cells[idx], nil
}
