package vt

import (
	"strconv"
	"strings"
)

func parseOSC(buf []byte) (int, string, bool) {
	if len(buf) == 0 {
		return 0, "", false
	}
	parts := strings.SplitN(string(buf), ";", 2)
	code, err := strconv.Atoi(parts[0])
	if err != nil || code < 0 {
		return 0, "", false
	}
	if len(parts) == 1 {
		return code, "", true
	}
	return code, parts[1], true
}

// SplitHyperlink splits an OSC 8 payload ("params;uri") into the id
// parameter (if any) and the target URI. An empty URI ends the link.
func SplitHyperlink(payload string) (id, uri string) {
	params, uri, ok := strings.Cut(payload, ";")
	if !ok {
		return "", payload
	}
	for _, p := range strings.Split(params, ":") {
		if v, found := strings.CutPrefix(p, "id="); found {
			id = v
		}
	}
	return id, uri
}

// ParseColorSpec parses an OSC 4 color value in "#rrggbb" or
// "rgb:RR/GG/BB" form into a packed 0xRRGGBB value.
func ParseColorSpec(spec string) (uint32, bool) {
	spec = strings.TrimSpace(spec)
	if hex, found := strings.CutPrefix(spec, "#"); found {
		if len(hex) != 6 {
			return 0, false
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, false
		}
		return uint32(v), true
	}
	if body, found := strings.CutPrefix(spec, "rgb:"); found {
		parts := strings.Split(body, "/")
		if len(parts) != 3 {
			return 0, false
		}
		var out uint32
		for _, p := range parts {
			if len(p) < 1 || len(p) > 4 {
				return 0, false
			}
			v, err := strconv.ParseUint(p, 16, 32)
			if err != nil {
				return 0, false
			}
			// Scale to 8 bits: X11 color specs repeat to the
			// component width, so "f" means 0xff, "ffff" 0xff.
			switch len(p) {
			case 1:
				v *= 0x11
			case 3:
				v >>= 4
			case 4:
				v >>= 8
			}
			out = out<<8 | uint32(v&0xff)
		}
		return out, true
	}
	return 0, false
}
