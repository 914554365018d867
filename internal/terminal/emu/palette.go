package emu

import (
	"strconv"
	"strings"

	"pkt.systems/phosphor/internal/terminal/vt"
)

// base16 holds the xterm defaults for the first 16 palette slots.
var base16 = [16]uint32{
	0x000000, 0xcd0000, 0x00cd00, 0xcdcd00,
	0x0000ee, 0xcd00cd, 0x00cdcd, 0xe5e5e5,
	0x7f7f7f, 0xff0000, 0x00ff00, 0xffff00,
	0x5c5cff, 0xff00ff, 0x00ffff, 0xffffff,
}

// defaultPalette builds the standard 256-color table: 16 base colors,
// the 6x6x6 color cube, and the grayscale ramp.
func defaultPalette() [256]uint32 {
	var p [256]uint32
	copy(p[:16], base16[:])
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = uint32(cubeLevel(r))<<16 | uint32(cubeLevel(g))<<8 | uint32(cubeLevel(b))
				i++
			}
		}
	}
	for n := 0; n < 24; n++ {
		gray := uint32(8 + n*10)
		p[i] = gray<<16 | gray<<8 | gray
		i++
	}
	return p
}

func cubeLevel(n int) int {
	if n == 0 {
		return 0
	}
	return 55 + n*40
}

// parsePaletteSpec parses an OSC 4 payload of "index;color" pairs into
// slot updates. Malformed pairs are skipped.
func parsePaletteSpec(payload string) map[int]uint32 {
	parts := strings.Split(payload, ";")
	out := make(map[int]uint32)
	for i := 0; i+1 < len(parts); i += 2 {
		idx, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		rgb, ok := vt.ParseColorSpec(parts[i+1])
		if !ok {
			continue
		}
		out[idx] = rgb
	}
	return out
}
