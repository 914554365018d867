package emu

import "pkt.systems/phosphor/internal/terminal"

// savedState is the DECSC save slot: cursor position plus the
// attribute and origin-mode subset that ESC 7/8 round-trips. The zero
// value is the defined restore default.
type savedState struct {
	cursor terminal.Cursor
	attrs  int16
	fg     uint32
	bg     uint32
	origin bool
	valid  bool
}

type screen struct {
	cols int
	rows int

	cells        []terminal.Cell
	cursor       terminal.Cursor
	saved        savedState
	scrollTop    int
	scrollBottom int
}

func newScreen(cols, rows int) screen {
	s := screen{
		cols:         cols,
		rows:         rows,
		cells:        make([]terminal.Cell, cols*rows),
		scrollTop:    0,
		scrollBottom: rows - 1,
	}
	s.clearAll(terminal.Cell{Rune: ' '})
	return s
}

func (s screen) resize(cols, rows int) screen {
	next := newScreen(cols, rows)
	minCols := cols
	if s.cols < minCols {
		minCols = s.cols
	}
	minRows := rows
	if s.rows < minRows {
		minRows = s.rows
	}
	for y := 0; y < minRows; y++ {
		for x := 0; x < minCols; x++ {
			next.cells[y*cols+x] = s.cells[y*s.cols+x]
		}
	}
	next.cursor = clampCursor(s.cursor, cols, rows)
	next.saved = s.saved
	next.saved.cursor = clampCursor(s.saved.cursor, cols, rows)
	return next
}

func clampCursor(c terminal.Cursor, cols, rows int) terminal.Cursor {
	if c.X < 0 {
		c.X = 0
	}
	if c.X >= cols {
		c.X = cols - 1
	}
	if c.Y < 0 {
		c.Y = 0
	}
	if c.Y >= rows {
		c.Y = rows - 1
	}
	return c
}

func (s *screen) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.cols && y < s.rows
}

func (s *screen) index(x, y int) int {
	return y*s.cols + x
}

// row returns a copy of row y.
func (s *screen) row(y int) []terminal.Cell {
	out := make([]terminal.Cell, s.cols)
	copy(out, s.cells[y*s.cols:(y+1)*s.cols])
	return out
}

func (s *screen) clearAll(fill terminal.Cell) {
	if fill.Rune == 0 {
		fill.Rune = ' '
	}
	for i := range s.cells {
		s.cells[i] = fill
	}
}

func (s *screen) clearLine(y, x0, x1 int, fill terminal.Cell) {
	if y < 0 || y >= s.rows {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 >= s.cols {
		x1 = s.cols - 1
	}
	if x0 > x1 {
		return
	}
	if fill.Rune == 0 {
		fill.Rune = ' '
	}
	for x := x0; x <= x1; x++ {
		s.cells[s.index(x, y)] = fill
	}
}

func (s *screen) region() (top, bottom int) {
	top = s.scrollTop
	bottom = s.scrollBottom
	if top < 0 {
		top = 0
	}
	if bottom >= s.rows {
		bottom = s.rows - 1
	}
	return top, bottom
}

// scrollUp shifts the scroll region up by n rows. When evict is
// non-nil it receives a copy of each row leaving through the top,
// oldest first.
func (s *screen) scrollUp(n int, fill terminal.Cell, evict func([]terminal.Cell)) {
	if n < 1 {
		return
	}
	if fill.Rune == 0 {
		fill.Rune = ' '
	}
	top, bottom := s.region()
	height := bottom - top + 1
	if n > height {
		n = height
	}
	if evict != nil {
		for y := top; y < top+n; y++ {
			evict(s.row(y))
		}
	}
	cols := s.cols
	copy(s.cells[top*cols:], s.cells[(top+n)*cols:(bottom+1)*cols])
	for y := bottom - n + 1; y <= bottom; y++ {
		for x := 0; x < cols; x++ {
			s.cells[s.index(x, y)] = fill
		}
	}
}

func (s *screen) scrollDown(n int, fill terminal.Cell) {
	if n < 1 {
		return
	}
	if fill.Rune == 0 {
		fill.Rune = ' '
	}
	top, bottom := s.region()
	height := bottom - top + 1
	if n > height {
		n = height
	}
	cols := s.cols
	for y := bottom; y >= top+n; y-- {
		copy(s.cells[y*cols:(y+1)*cols], s.cells[(y-n)*cols:(y-n+1)*cols])
	}
	for y := top; y < top+n; y++ {
		for x := 0; x < cols; x++ {
			s.cells[s.index(x, y)] = fill
		}
	}
}

func (s *screen) insertLines(row, n int, fill terminal.Cell) {
	if row < s.scrollTop || row > s.scrollBottom {
		return
	}
	if n < 1 {
		return
	}
	if fill.Rune == 0 {
		fill.Rune = ' '
	}
	if n > s.scrollBottom-row+1 {
		n = s.scrollBottom - row + 1
	}
	cols := s.cols
	for y := s.scrollBottom; y >= row+n; y-- {
		copy(s.cells[y*cols:(y+1)*cols], s.cells[(y-n)*cols:(y-n+1)*cols])
	}
	for y := row; y < row+n; y++ {
		for x := 0; x < cols; x++ {
			s.cells[s.index(x, y)] = fill
		}
	}
}

func (s *screen) deleteLines(row, n int, fill terminal.Cell) {
	if row < s.scrollTop || row > s.scrollBottom {
		return
	}
	if n < 1 {
		return
	}
	if fill.Rune == 0 {
		fill.Rune = ' '
	}
	if n > s.scrollBottom-row+1 {
		n = s.scrollBottom - row + 1
	}
	cols := s.cols
	for y := row; y <= s.scrollBottom-n; y++ {
		copy(s.cells[y*cols:(y+1)*cols], s.cells[(y+n)*cols:(y+n+1)*cols])
	}
	for y := s.scrollBottom - n + 1; y <= s.scrollBottom; y++ {
		for x := 0; x < cols; x++ {
			s.cells[s.index(x, y)] = fill
		}
	}
}

func (s *screen) insertChars(row, col, n int, fill terminal.Cell) {
	if row < 0 || row >= s.rows {
		return
	}
	if n < 1 {
		return
	}
	if fill.Rune == 0 {
		fill.Rune = ' '
	}
	if col < 0 {
		col = 0
	}
	if col >= s.cols {
		return
	}
	if n > s.cols-col {
		n = s.cols - col
	}
	start := s.index(col, row)
	end := s.index(s.cols-1, row) + 1
	copy(s.cells[start+n:end], s.cells[start:end-n])
	for x := col; x < col+n; x++ {
		s.cells[s.index(x, row)] = fill
	}
}

func (s *screen) deleteChars(row, col, n int, fill terminal.Cell) {
	if row < 0 || row >= s.rows {
		return
	}
	if n < 1 {
		return
	}
	if fill.Rune == 0 {
		fill.Rune = ' '
	}
	if col < 0 {
		col = 0
	}
	if col >= s.cols {
		return
	}
	if n > s.cols-col {
		n = s.cols - col
	}
	start := s.index(col, row)
	end := s.index(s.cols-1, row) + 1
	copy(s.cells[start:end-n], s.cells[start+n:end])
	for x := s.cols - n; x < s.cols; x++ {
		s.cells[s.index(x, row)] = fill
	}
}
