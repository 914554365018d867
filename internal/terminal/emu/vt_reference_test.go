package emu

import (
	"fmt"
	"strings"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/vt"

	"pkt.systems/phosphor/internal/terminal"
)

// Feeds identical byte streams to this emulator and to the x/vt
// reference emulator and compares the resulting grids cell by cell.
func TestGridMatchesReferenceVT(t *testing.T) {
	const cols = 40
	const rows = 10

	streams := []struct {
		name  string
		input string
	}{
		{"plain", "hello, world"},
		{"crlf lines", "first\r\nsecond\r\nthird"},
		{"cup and text", "\x1b[3;5Hplaced\x1b[1;1Htop"},
		{"sgr text", "\x1b[1;31mbold red\x1b[0m plain \x1b[4munder\x1b[24m"},
		{"erase line", "abcdef\x1b[1;3H\x1b[K"},
		{"erase display", "one\r\ntwo\r\nthree\x1b[2J\x1b[Hfresh"},
		{"long line wraps", strings.Repeat("x", cols+7)},
		{"insert chars", "abcdef\x1b[1;1H\x1b[3@"},
		{"delete chars", "abcdef\x1b[1;1H\x1b[2P"},
		{"insert lines", "a\r\nb\r\nc\x1b[1;1H\x1b[L"},
		{"delete lines", "a\r\nb\r\nc\x1b[1;1H\x1b[M"},
		{"scroll region", "\x1b[2;5ra\r\nb\r\nc\r\nd"},
		{"wide runes", "漢字 mixed"},
		{"erase with bg", "\x1b[44m\x1b[2J\x1b[Htext"},
		{"reverse index", "\x1b[5;1Hdown\x1bMup"},
		{"tabs", "a\tb\tc"},
	}

	for _, tc := range streams {
		t.Run(tc.name, func(t *testing.T) {
			ref := vt.NewEmulator(cols, rows)
			if _, err := ref.Write([]byte(tc.input)); err != nil {
				t.Fatalf("reference write: %v", err)
			}
			e := New(cols, rows)
			if err := e.Write([]byte(tc.input)); err != nil {
				t.Fatalf("write: %v", err)
			}
			snap, err := e.Snapshot()
			if err != nil {
				t.Fatalf("snapshot: %v", err)
			}
			for y := 0; y < rows; y++ {
				for x := 0; x < cols; x++ {
					want := refContent(ref, x, y)
					cell, err := snap.CellAt(x, y)
					if err != nil {
						t.Fatalf("cell(%d,%d): %v", x, y, err)
					}
					got := string(cell.Rune)
					if got != want {
						t.Fatalf("cell(%d,%d) = %q, reference has %q\nref:\n%s",
							x, y, got, want, refGrid(ref, cols, rows))
					}
				}
			}
		})
	}
}

func TestBoldMatchesReferenceVT(t *testing.T) {
	const cols = 20
	const rows = 4
	input := "no \x1b[1myes\x1b[22m no"

	ref := vt.NewEmulator(cols, rows)
	if _, err := ref.Write([]byte(input)); err != nil {
		t.Fatalf("reference write: %v", err)
	}
	e := New(cols, rows)
	_ = e.Write([]byte(input))
	snap, _ := e.Snapshot()

	for x := 0; x < cols; x++ {
		refBold := false
		if cell := ref.CellAt(x, 0); cell != nil {
			refBold = cell.Style.Attrs&uv.AttrBold != 0
		}
		c, _ := snap.CellAt(x, 0)
		gotBold := c.Attrs&terminal.AttrBold != 0
		if gotBold != refBold {
			t.Fatalf("cell %d bold = %v, reference %v", x, gotBold, refBold)
		}
	}
}

// refContent normalizes the reference cell: empty content (wide rune
// continuation) and nil cells compare as a space.
func refContent(ref *vt.Emulator, x, y int) string {
	cell := ref.CellAt(x, y)
	if cell == nil || cell.Content == "" {
		return " "
	}
	return cell.Content
}

func refGrid(ref *vt.Emulator, cols, rows int) string {
	var b strings.Builder
	for y := 0; y < rows; y++ {
		fmt.Fprintf(&b, "%2d|", y)
		for x := 0; x < cols; x++ {
			b.WriteString(refContent(ref, x, y))
		}
		b.WriteString("|\n")
	}
	return b.String()
}
