package emu

import "pkt.systems/phosphor/internal/terminal"

// DefaultScrollbackLines bounds the scrollback buffer unless
// configured otherwise.
const DefaultScrollbackLines = 10000

// scrollback is a bounded FIFO of rows evicted off the top of the
// main screen. Once full, pushing drops the oldest row.
type scrollback struct {
	rows  [][]terminal.Cell
	start int
	count int
}

func newScrollback(capacity int) *scrollback {
	if capacity < 0 {
		capacity = 0
	}
	return &scrollback{rows: make([][]terminal.Cell, capacity)}
}

func (s *scrollback) push(row []terminal.Cell) {
	if len(s.rows) == 0 {
		return
	}
	idx := (s.start + s.count) % len(s.rows)
	s.rows[idx] = row
	if s.count < len(s.rows) {
		s.count++
		return
	}
	s.start = (s.start + 1) % len(s.rows)
}

func (s *scrollback) len() int {
	return s.count
}

// at returns the i-th stored row, oldest first.
func (s *scrollback) at(i int) []terminal.Cell {
	if i < 0 || i >= s.count {
		return nil
	}
	return s.rows[(s.start+i)%len(s.rows)]
}

func (s *scrollback) clear() {
	for i := range s.rows {
		s.rows[i] = nil
	}
	s.start = 0
	s.count = 0
}
