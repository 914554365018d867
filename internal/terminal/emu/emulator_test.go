package emu

import (
	"fmt"
	"strings"
	"testing"

	"pkt.systems/phosphor/internal/terminal"
)

func TestBasicWriteSnapshot(t *testing.T) {
	e := New(4, 2)
	if err := e.Write([]byte("ab")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	snap, err := e.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got := cellRune(snap, 0, 0); got != 'a' {
		t.Fatalf("cell(0,0) = %q", got)
	}
	if got := cellRune(snap, 1, 0); got != 'b' {
		t.Fatalf("cell(1,0) = %q", got)
	}
}

func TestEchoScenario(t *testing.T) {
	e := New(80, 24)
	_ = e.Write([]byte("echo hi\n"))
	snap, _ := e.Snapshot()
	if snap.Cursor != (terminal.Cursor{X: 0, Y: 1}) {
		t.Fatalf("cursor = %+v", snap.Cursor)
	}
	if row := strings.TrimRight(rowString(snap, 0), " "); row != "echo hi" {
		t.Fatalf("row0 = %q", row)
	}
}

func TestPendingWrapAvoidsBlankRow(t *testing.T) {
	e := New(3, 2)
	_ = e.Write([]byte("abc"))
	snap, _ := e.Snapshot()
	// Cursor parks at the last column; the wrap is deferred until the
	// next printable.
	if snap.Cursor != (terminal.Cursor{X: 2, Y: 0}) {
		t.Fatalf("cursor = %+v", snap.Cursor)
	}
	_ = e.Write([]byte("d"))
	snap, _ = e.Snapshot()
	if snap.Cursor != (terminal.Cursor{X: 1, Y: 1}) {
		t.Fatalf("cursor after wrap = %+v", snap.Cursor)
	}
	if got := cellRune(snap, 0, 1); got != 'd' {
		t.Fatalf("cell(0,1) = %q", got)
	}
}

func TestWrapAndScroll(t *testing.T) {
	e := New(3, 2)
	_ = e.Write([]byte("abcdefg"))
	snap, _ := e.Snapshot()
	if row := rowString(snap, 0); row != "def" {
		t.Fatalf("row0 = %q", row)
	}
	if row := rowString(snap, 1); row != "g  " {
		t.Fatalf("row1 = %q", row)
	}
	if e.ScrollbackLen() != 1 {
		t.Fatalf("scrollback = %d", e.ScrollbackLen())
	}
	if got := scrollbackString(e, 0); got != "abc" {
		t.Fatalf("evicted row = %q", got)
	}
}

func TestScrollbackFIFO(t *testing.T) {
	e := NewWithScrollback(4, 3, 2)
	for i := 0; i < 6; i++ {
		_ = e.Write([]byte(fmt.Sprintf("r%d\n", i)))
	}
	// Rows r0..r3 were evicted; capacity 2 keeps only the newest two.
	if e.ScrollbackLen() != 2 {
		t.Fatalf("scrollback = %d", e.ScrollbackLen())
	}
	if got := scrollbackString(e, 0); !strings.HasPrefix(got, "r2") {
		t.Fatalf("oldest = %q", got)
	}
	if got := scrollbackString(e, 1); !strings.HasPrefix(got, "r3") {
		t.Fatalf("newest = %q", got)
	}
}

func TestNewlineOverflowEvictsOnePerLine(t *testing.T) {
	e := New(4, 3)
	for i := 0; i < 4; i++ {
		_ = e.Write([]byte("\n"))
	}
	// 4 newlines in a 3-row grid: two overflows past the bottom.
	if e.ScrollbackLen() != 2 {
		t.Fatalf("scrollback = %d", e.ScrollbackLen())
	}
}

func TestAltScreenDoesNotFeedScrollback(t *testing.T) {
	e := New(4, 2)
	_ = e.Write([]byte("\x1b[?1049h"))
	for i := 0; i < 5; i++ {
		_ = e.Write([]byte("\n"))
	}
	if e.ScrollbackLen() != 0 {
		t.Fatalf("alt screen leaked %d rows into scrollback", e.ScrollbackLen())
	}
}

func TestClearScrollback(t *testing.T) {
	e := New(3, 2)
	_ = e.Write([]byte("abcdefg"))
	if e.ScrollbackLen() == 0 {
		t.Fatalf("expected scrollback rows")
	}
	_ = e.Write([]byte("\x1b[3J"))
	if e.ScrollbackLen() != 0 {
		t.Fatalf("scrollback = %d after 3J", e.ScrollbackLen())
	}
}

func TestCursorMovementClamped(t *testing.T) {
	e := New(5, 3)
	for _, seq := range []string{
		"\x1b[99A", "\x1b[99B", "\x1b[99C", "\x1b[99D",
		"\x1b[99;99H", "\x1b[99G", "\x1b[99E", "\x1b[99F", "\x1b[99d",
	} {
		_ = e.Write([]byte(seq))
		snap, _ := e.Snapshot()
		c := snap.Cursor
		if c.X < 0 || c.X >= 5 || c.Y < 0 || c.Y >= 3 {
			t.Fatalf("%q: cursor %+v out of bounds", seq, c)
		}
	}
}

func TestCursorDefaultsToOne(t *testing.T) {
	e := New(10, 5)
	_ = e.Write([]byte("\x1b[2;3H\x1b[A"))
	snap, _ := e.Snapshot()
	if snap.Cursor != (terminal.Cursor{X: 2, Y: 0}) {
		t.Fatalf("cursor = %+v", snap.Cursor)
	}
	_ = e.Write([]byte("\x1b[0B"))
	snap, _ = e.Snapshot()
	if snap.Cursor.Y != 1 {
		t.Fatalf("zero param did not default to 1: %+v", snap.Cursor)
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	e := New(10, 5)
	_ = e.Write([]byte("\x1b[3;4H\x1b7"))
	_ = e.Write([]byte("\x1b[H\x1b[5C\x1b[2B"))
	_ = e.Write([]byte("\x1b8"))
	snap, _ := e.Snapshot()
	if snap.Cursor != (terminal.Cursor{X: 3, Y: 2}) {
		t.Fatalf("cursor = %+v", snap.Cursor)
	}
}

func TestRestoreWithoutSaveIsHome(t *testing.T) {
	e := New(10, 5)
	_ = e.Write([]byte("\x1b[3;4H\x1b8"))
	snap, _ := e.Snapshot()
	if snap.Cursor != (terminal.Cursor{}) {
		t.Fatalf("cursor = %+v", snap.Cursor)
	}
}

func TestEraseDisplayUsesCurrentBackground(t *testing.T) {
	e := New(4, 2)
	_ = e.Write([]byte("hi\x1b[41m\x1b[2J\x1b[H"))
	snap, _ := e.Snapshot()
	if snap.Cursor != (terminal.Cursor{}) {
		t.Fatalf("cursor = %+v", snap.Cursor)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			cell := cellAt(snap, x, y)
			if cell.Rune != ' ' {
				t.Fatalf("cell(%d,%d) = %q", x, y, cell.Rune)
			}
			if cell.BG != terminal.ColorIndexed|1 {
				t.Fatalf("cell(%d,%d) bg = %#x", x, y, cell.BG)
			}
		}
	}
}

func TestSGRRedScenario(t *testing.T) {
	e := New(10, 2)
	_ = e.Write([]byte("\x1b[31mRED\x1b[0mx"))
	snap, _ := e.Snapshot()
	red := terminal.ColorIndexed | 1
	for x := 0; x < 3; x++ {
		if got := cellAt(snap, x, 0).FG; got != red {
			t.Fatalf("cell %d fg = %#x", x, got)
		}
	}
	after := cellAt(snap, 3, 0)
	if after.FG != terminal.ColorDefault || after.Attrs != 0 {
		t.Fatalf("post-reset cell = %+v", after)
	}
}

func TestSGRResetIdempotent(t *testing.T) {
	e := New(4, 1)
	_ = e.Write([]byte("\x1b[1;4;31m\x1b[0m"))
	once := e.attr
	_ = e.Write([]byte("\x1b[0m"))
	if e.attr != once {
		t.Fatalf("attr after double reset: %+v vs %+v", e.attr, once)
	}
}

func TestSGRExtendedColors(t *testing.T) {
	e := New(4, 1)
	_ = e.Write([]byte("\x1b[38;5;123mA"))
	snap, _ := e.Snapshot()
	if got := cellAt(snap, 0, 0).FG; got != terminal.ColorIndexed256|123 {
		t.Fatalf("256 fg = %#x", got)
	}
	_ = e.Write([]byte("\x1b[48;2;255;128;0mB"))
	snap, _ = e.Snapshot()
	if got := cellAt(snap, 1, 0).BG; got != terminal.ColorTrue|0xff8000 {
		t.Fatalf("rgb bg = %#x", got)
	}
}

func TestSGRCompoundAtomicWithTrailingParams(t *testing.T) {
	e := New(4, 1)
	_ = e.Write([]byte("\x1b[38;5;123;1mA"))
	snap, _ := e.Snapshot()
	cell := cellAt(snap, 0, 0)
	if cell.FG != terminal.ColorIndexed256|123 {
		t.Fatalf("fg = %#x", cell.FG)
	}
	if cell.Attrs&terminal.AttrBold == 0 {
		t.Fatalf("trailing bold swallowed by compound color")
	}
}

func TestAltScreenPreservesMain(t *testing.T) {
	e := New(5, 2)
	_ = e.Write([]byte("main"))
	_ = e.Write([]byte("\x1b[?1049h"))
	snap, _ := e.Snapshot()
	if !snap.Mode.Has(terminal.ModeAltScreen) {
		t.Fatalf("alt mode flag not set")
	}
	_ = e.Write([]byte("alt"))
	snap, _ = e.Snapshot()
	if got := rowString(snap, 0); got[:3] != "alt" {
		t.Fatalf("alt row = %q", got)
	}
	_ = e.Write([]byte("\x1b[?1049l"))
	snap, _ = e.Snapshot()
	if got := rowString(snap, 0); got[:4] != "main" {
		t.Fatalf("main row = %q", got)
	}
	if snap.Mode.Has(terminal.ModeAltScreen) {
		t.Fatalf("alt mode flag still set")
	}
}

func TestAltScreenMode47KeepsContents(t *testing.T) {
	e := New(5, 2)
	_ = e.Write([]byte("\x1b[?47hkeep\x1b[?47l"))
	_ = e.Write([]byte("\x1b[?47h"))
	snap, _ := e.Snapshot()
	if got := rowString(snap, 0); got[:4] != "keep" {
		t.Fatalf("alt row = %q after re-entry via 47", got)
	}
}

func TestAltScreenMode1049ClearsOnEntry(t *testing.T) {
	e := New(5, 2)
	_ = e.Write([]byte("\x1b[?1049hgone\x1b[?1049l"))
	_ = e.Write([]byte("\x1b[?1049h"))
	snap, _ := e.Snapshot()
	if got := rowString(snap, 0); got != "     " {
		t.Fatalf("alt row = %q after re-entry via 1049", got)
	}
}

func TestResizeOneByOneAndBack(t *testing.T) {
	e := New(80, 24)
	_ = e.Write([]byte("hello\nworld"))
	e.Resize(1, 1)
	snap, _ := e.Snapshot()
	if snap.Cols != 1 || snap.Rows != 1 {
		t.Fatalf("size = %dx%d", snap.Cols, snap.Rows)
	}
	if snap.Cursor != (terminal.Cursor{}) {
		t.Fatalf("cursor = %+v", snap.Cursor)
	}
	_ = e.Write([]byte("x\n\n\nmore"))
	e.Resize(80, 24)
	snap, _ = e.Snapshot()
	if snap.Cols != 80 || snap.Rows != 24 {
		t.Fatalf("size = %dx%d", snap.Cols, snap.Rows)
	}
	_ = e.Write([]byte("ok"))
}

func TestResizeRejectsZero(t *testing.T) {
	e := New(4, 2)
	e.Resize(0, -3)
	snap, _ := e.Snapshot()
	if snap.Cols != 1 || snap.Rows != 1 {
		t.Fatalf("size = %dx%d", snap.Cols, snap.Rows)
	}
}

func TestCursorVisibility(t *testing.T) {
	e := New(4, 2)
	snap, _ := e.Snapshot()
	if !snap.CursorVisible() {
		t.Fatalf("cursor hidden by default")
	}
	_ = e.Write([]byte("\x1b[?25l"))
	snap, _ = e.Snapshot()
	if snap.CursorVisible() {
		t.Fatalf("cursor still visible after ?25l")
	}
	_ = e.Write([]byte("\x1b[?25h"))
	snap, _ = e.Snapshot()
	if !snap.CursorVisible() {
		t.Fatalf("cursor still hidden after ?25h")
	}
}

func TestCursorStyle(t *testing.T) {
	e := New(4, 2)
	_ = e.Write([]byte("\x1b[4 q"))
	snap, _ := e.Snapshot()
	if snap.CursorStyle != terminal.CursorUnderline || snap.CursorBlink {
		t.Fatalf("style = %v blink = %v", snap.CursorStyle, snap.CursorBlink)
	}
	_ = e.Write([]byte("\x1b[5 q"))
	snap, _ = e.Snapshot()
	if snap.CursorStyle != terminal.CursorBar || !snap.CursorBlink {
		t.Fatalf("style = %v blink = %v", snap.CursorStyle, snap.CursorBlink)
	}
}

func TestModeFlags(t *testing.T) {
	e := New(4, 2)
	_ = e.Write([]byte("\x1b[?2004h\x1b[?1004h\x1b[?1000h\x1b[?1h\x1b[4h\x1b="))
	snap, _ := e.Snapshot()
	want := terminal.ModeBracketedPaste | terminal.ModeFocusReporting |
		terminal.ModeMouseReporting | terminal.ModeAppCursor |
		terminal.ModeInsert | terminal.ModeAppKeypad
	if !snap.Mode.Has(want) {
		t.Fatalf("mode = %#x", snap.Mode)
	}
	_ = e.Write([]byte("\x1b[?2004l\x1b>"))
	snap, _ = e.Snapshot()
	if snap.Mode.Has(terminal.ModeBracketedPaste) || snap.Mode.Has(terminal.ModeAppKeypad) {
		t.Fatalf("mode not cleared: %#x", snap.Mode)
	}
}

func TestTitle(t *testing.T) {
	e := New(4, 2)
	_ = e.Write([]byte("\x1b]0;my session\x07"))
	snap, _ := e.Snapshot()
	if snap.Title != "my session" {
		t.Fatalf("title = %q", snap.Title)
	}
}

func TestHyperlinkCells(t *testing.T) {
	e := New(10, 2)
	_ = e.Write([]byte("\x1b]8;;https://example.com\x1b\\go\x1b]8;;\x1b\\on"))
	snap, _ := e.Snapshot()
	if got := cellAt(snap, 0, 0).Link; got != "https://example.com" {
		t.Fatalf("link = %q", got)
	}
	if got := cellAt(snap, 2, 0).Link; got != "" {
		t.Fatalf("post-link cell carries %q", got)
	}
}

func TestPaletteOSC4(t *testing.T) {
	e := New(4, 2)
	_ = e.Write([]byte("\x1b]4;1;#336699\x07"))
	snap, _ := e.Snapshot()
	if got := snap.Palette[1]; got != 0x336699 {
		t.Fatalf("palette[1] = %#x", got)
	}
	if got := snap.Palette[2]; got != base16[2] {
		t.Fatalf("palette[2] = %#x", got)
	}
}

func TestDefaultPaletteShape(t *testing.T) {
	p := defaultPalette()
	if p[16] != 0x000000 {
		t.Fatalf("cube start = %#x", p[16])
	}
	if p[231] != 0xffffff {
		t.Fatalf("cube end = %#x", p[231])
	}
	if p[232] != 0x080808 {
		t.Fatalf("gray start = %#x", p[232])
	}
	if p[255] != 0xeeeeee {
		t.Fatalf("gray end = %#x", p[255])
	}
}

func TestWideRuneOccupiesTwoCells(t *testing.T) {
	e := New(6, 2)
	_ = e.Write([]byte("漢x"))
	snap, _ := e.Snapshot()
	if got := cellRune(snap, 0, 0); got != '漢' {
		t.Fatalf("cell0 = %q", got)
	}
	if got := cellRune(snap, 1, 0); got != ' ' {
		t.Fatalf("continuation cell = %q", got)
	}
	if got := cellRune(snap, 2, 0); got != 'x' {
		t.Fatalf("cell2 = %q", got)
	}
}

func TestWideRuneAtLastColumnWrapsFirst(t *testing.T) {
	e := New(3, 2)
	_ = e.Write([]byte("ab漢"))
	snap, _ := e.Snapshot()
	if got := cellRune(snap, 0, 1); got != '漢' {
		t.Fatalf("cell(0,1) = %q", got)
	}
}

func TestUnknownSequencesIgnored(t *testing.T) {
	e := New(4, 2)
	inputs := [][]byte{
		[]byte("\x1b[999Z"),
		[]byte("\x1b]777;whatever\x07"),
		[]byte("\x1b#8"),
		[]byte("\x1b[?9999h"),
		{0x1b, '[', ';', ';', ';', 'Q'},
	}
	for _, in := range inputs {
		if err := e.Write(in); err != nil {
			t.Fatalf("%q: %v", in, err)
		}
	}
	_ = e.Write([]byte("ok"))
	snap, _ := e.Snapshot()
	if got := rowString(snap, 0); got[:2] != "ok" {
		t.Fatalf("row = %q", got)
	}
}

func TestScrollRegion(t *testing.T) {
	e := New(4, 4)
	_ = e.Write([]byte("a\nb\nc\nd"))
	_ = e.Write([]byte("\x1b[2;3r\x1b[2;1H\x1b[S"))
	snap, _ := e.Snapshot()
	if got := cellRune(snap, 0, 0); got != 'a' {
		t.Fatalf("row0 = %q", got)
	}
	if got := cellRune(snap, 0, 1); got != 'c' {
		t.Fatalf("row1 = %q", got)
	}
	if got := cellRune(snap, 0, 3); got != 'd' {
		t.Fatalf("row3 = %q", got)
	}
	// Region-bound scrolling must not leak rows into scrollback.
	if e.ScrollbackLen() != 0 {
		t.Fatalf("scrollback = %d", e.ScrollbackLen())
	}
}

func TestTabStops(t *testing.T) {
	e := New(20, 1)
	_ = e.Write([]byte("a\tb"))
	snap, _ := e.Snapshot()
	if got := cellRune(snap, 8, 0); got != 'b' {
		t.Fatalf("cell8 = %q", got)
	}
	_ = e.Write([]byte("\r\x1b[3g\x1b[5G\x1bH\r\tc"))
	snap, _ = e.Snapshot()
	if got := cellRune(snap, 4, 0); got != 'c' {
		t.Fatalf("custom stop: cell4 = %q", got)
	}
}

func TestLineDrawingCharset(t *testing.T) {
	e := New(2, 1)
	_ = e.Write([]byte("\x1b)0\x0eq\x0f"))
	snap, _ := e.Snapshot()
	if got := cellRune(snap, 0, 0); got != '─' {
		t.Fatalf("cell0 = %q", got)
	}
}

func TestFullReset(t *testing.T) {
	e := New(4, 2)
	_ = e.Write([]byte("\x1b[31;44mxy\x1b]0;t\x07\x1b[?25l\x1bc"))
	snap, _ := e.Snapshot()
	if snap.Title != "" {
		t.Fatalf("title = %q", snap.Title)
	}
	if !snap.CursorVisible() {
		t.Fatalf("cursor hidden after RIS")
	}
	if got := cellRune(snap, 0, 0); got != ' ' {
		t.Fatalf("cell0 = %q", got)
	}
	if e.attr.fg != terminal.ColorDefault || e.attr.bg != terminal.ColorDefault {
		t.Fatalf("attrs survived RIS: %+v", e.attr)
	}
}

func TestInsertDeleteChars(t *testing.T) {
	e := New(6, 1)
	_ = e.Write([]byte("abcdef\x1b[1G\x1b[2@"))
	snap, _ := e.Snapshot()
	if got := rowString(snap, 0); got != "  abcd" {
		t.Fatalf("after ICH: %q", got)
	}
	_ = e.Write([]byte("\x1b[2P"))
	snap, _ = e.Snapshot()
	if got := rowString(snap, 0); got != "abcd  " {
		t.Fatalf("after DCH: %q", got)
	}
}

func cellRune(s terminal.Snapshot, x, y int) rune {
	return cellAt(s, x, y).Rune
}

func cellAt(s terminal.Snapshot, x, y int) terminal.Cell {
	cell, err := s.CellAt(x, y)
	if err != nil {
		return terminal.Cell{Rune: ' '}
	}
	return cell
}

func rowString(s terminal.Snapshot, y int) string {
	row := make([]rune, 0, 32)
	for x := 0; ; x++ {
		cell, err := s.CellAt(x, y)
		if err != nil {
			break
		}
		row = append(row, cell.Rune)
	}
	return string(row)
}

func scrollbackString(e *Emulator, i int) string {
	row := e.ScrollbackRow(i)
	out := make([]rune, 0, len(row))
	for _, cell := range row {
		out = append(out, cell.Rune)
	}
	return strings.TrimRight(string(out), " ")
}
