// Package vt decodes a terminal byte stream into semantic actions.
// The decoder knows nothing about grids or cursors; it only tracks
// escape-sequence structure. Malformed input returns it to ground
// without an action, and decoding is invariant under chunk boundaries:
// partial UTF-8 runes and partial sequences are carried between calls.
package vt

import "unicode/utf8"

const (
	stateGround = iota
	stateEscape
	stateCSI
	stateOSC
	stateString
)

// maxParams bounds CSI parameter lists; excess parameters are
// dropped, not errors.
const maxParams = 16

// maxOSCBytes bounds the OSC payload buffer so an unterminated string
// cannot grow without limit; overflow bytes are discarded.
const maxOSCBytes = 4096

// Kind discriminates Action variants.
type Kind uint8

const (
	// Print is a single decoded rune for the grid.
	Print Kind = iota
	// Control is a C0 control byte (BEL, BS, TAB, LF, VT, FF, CR, SO, SI).
	Control
	// ESC is a plain escape sequence: ESC [intermediate] final.
	ESC
	// CSI is a control sequence: parameters, optional private marker
	// and intermediate, and a final byte.
	CSI
	// OSC is an operating system command with a numeric code and
	// string payload.
	OSC
)

// Action is one decoded terminal action.
type Action struct {
	Kind    Kind
	Rune    rune
	Byte    byte
	Final   byte
	Inter   byte
	Private bool
	Params  []int
	Code    int
	Payload string
}

// Decoder is the escape-sequence state machine. The zero value is not
// ready; use NewDecoder.
type Decoder struct {
	state int

	private   bool
	inter     byte
	params    []int
	paramSeen bool
	current   int
	hasParam  bool

	oscBuf    []byte
	stringEsc bool

	utf8Buf []byte

	actions []Action
}

// NewDecoder returns a decoder in ground state.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed consumes p and returns the actions it completes. Bytes that end
// mid-sequence (including split UTF-8 runes) are retained for the next
// call; every input byte is consumed exactly once.
func (d *Decoder) Feed(p []byte) []Action {
	d.actions = d.actions[:0]
	for _, b := range p {
		d.consume(b)
	}
	out := make([]Action, len(d.actions))
	copy(out, d.actions)
	return out
}

func (d *Decoder) consume(b byte) {
	switch d.state {
	case stateGround:
		d.ground(b)
	case stateEscape:
		d.escape(b)
	case stateCSI:
		d.csi(b)
	case stateOSC:
		d.osc(b)
	case stateString:
		d.str(b)
	default:
		d.state = stateGround
	}
}

func (d *Decoder) ground(b byte) {
	if len(d.utf8Buf) > 0 {
		d.utf8Byte(b)
		return
	}
	switch {
	case b == 0x1b:
		d.state = stateEscape
	case b == 0x9b: // C1 CSI
		d.resetCSI()
		d.state = stateCSI
	case b == 0x9d: // C1 OSC
		d.resetOSC()
		d.state = stateOSC
	case b < 0x20 || b == 0x7f:
		d.control(b)
	case b < utf8.RuneSelf:
		d.emit(Action{Kind: Print, Rune: rune(b)})
	default:
		d.utf8Byte(b)
	}
}

func (d *Decoder) utf8Byte(b byte) {
	d.utf8Buf = append(d.utf8Buf, b)
	if !utf8.FullRune(d.utf8Buf) {
		if len(d.utf8Buf) >= utf8.UTFMax {
			d.utf8Buf = d.utf8Buf[:0]
		}
		return
	}
	r, size := utf8.DecodeRune(d.utf8Buf)
	if r == utf8.RuneError && size == 1 {
		// Malformed encoding: drop the bad prefix and reprocess the
		// byte that broke it in ground state, as if the partial rune
		// never arrived. An ESC here must still open its sequence.
		d.utf8Buf = d.utf8Buf[:0]
		d.consume(b)
		return
	}
	d.utf8Buf = d.utf8Buf[:0]
	d.emit(Action{Kind: Print, Rune: r})
}

func (d *Decoder) control(b byte) {
	switch b {
	case 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f:
		d.emit(Action{Kind: Control, Byte: b})
	default:
		// NUL and the rest are absorbed.
	}
}

func (d *Decoder) escape(b byte) {
	switch {
	case b == '[':
		d.resetCSI()
		d.state = stateCSI
	case b == ']':
		d.resetOSC()
		d.state = stateOSC
	case b == 'P' || b == 'X' || b == '^' || b == '_': // DCS, SOS, PM, APC
		d.stringEsc = false
		d.state = stateString
	case b >= 0x20 && b <= 0x2f:
		d.inter = b
	case b >= 0x30 && b <= 0x7e:
		d.state = stateGround
		d.emit(Action{Kind: ESC, Byte: b, Inter: d.inter})
		d.inter = 0
	case b == 0x18 || b == 0x1a: // CAN, SUB
		d.inter = 0
		d.state = stateGround
	default:
		d.inter = 0
		d.state = stateGround
	}
}

func (d *Decoder) csi(b byte) {
	switch {
	case b >= 0x40 && b <= 0x7e:
		private := d.private
		inter := d.inter
		params := d.finalizeParams()
		d.state = stateGround
		d.emit(Action{Kind: CSI, Final: b, Inter: inter, Private: private, Params: params})
	case b >= '0' && b <= '9':
		d.addDigit(int(b - '0'))
	case b == ';' || b == ':':
		d.nextParam()
	case b == '?' || b == '<' || b == '=' || b == '>':
		if !d.paramSeen {
			d.private = true
		}
	case b >= 0x20 && b <= 0x2f:
		d.inter = b
	case b == 0x1b:
		d.state = stateEscape
	case b == 0x18 || b == 0x1a:
		d.state = stateGround
	default:
		// Stray C0 bytes inside a sequence are absorbed.
	}
}

func (d *Decoder) osc(b byte) {
	if d.stringEsc {
		d.stringEsc = false
		if b == '\\' { // ST
			d.state = stateGround
			d.dispatchOSC()
			return
		}
		if len(d.oscBuf) < maxOSCBytes {
			d.oscBuf = append(d.oscBuf, 0x1b, b)
		}
		return
	}
	switch b {
	case 0x1b:
		d.stringEsc = true
	case 0x07: // BEL
		d.state = stateGround
		d.dispatchOSC()
	default:
		if len(d.oscBuf) < maxOSCBytes {
			d.oscBuf = append(d.oscBuf, b)
		}
	}
}

func (d *Decoder) str(b byte) {
	if d.stringEsc {
		d.stringEsc = false
		if b == '\\' {
			d.state = stateGround
		}
		return
	}
	switch b {
	case 0x1b:
		d.stringEsc = true
	case 0x07:
		d.state = stateGround
	}
}

func (d *Decoder) dispatchOSC() {
	code, payload, ok := parseOSC(d.oscBuf)
	d.resetOSC()
	if !ok {
		return
	}
	d.emit(Action{Kind: OSC, Code: code, Payload: payload})
}

func (d *Decoder) emit(a Action) {
	d.actions = append(d.actions, a)
}

func (d *Decoder) resetCSI() {
	d.private = false
	d.inter = 0
	d.params = d.params[:0]
	d.paramSeen = false
	d.current = 0
	d.hasParam = false
}

func (d *Decoder) resetOSC() {
	d.oscBuf = d.oscBuf[:0]
	d.stringEsc = false
}

func (d *Decoder) addDigit(n int) {
	d.paramSeen = true
	if !d.hasParam {
		d.current = 0
		d.hasParam = true
	}
	if d.current < 1<<24 {
		d.current = d.current*10 + n
	}
}

func (d *Decoder) nextParam() {
	if len(d.params) >= maxParams {
		d.hasParam = false
		d.current = 0
		return
	}
	if d.hasParam {
		d.params = append(d.params, d.current)
	} else {
		d.params = append(d.params, -1)
	}
	d.hasParam = false
	d.current = 0
}

func (d *Decoder) finalizeParams() []int {
	if d.hasParam && len(d.params) < maxParams {
		d.params = append(d.params, d.current)
	} else if len(d.params) == 0 {
		d.params = append(d.params, -1)
	}
	out := make([]int, len(d.params))
	copy(out, d.params)
	d.resetCSI()
	return out
}

// Param returns params[idx], or def when the parameter is missing,
// negative, or zero.
func Param(params []int, idx, def int) int {
	if idx >= len(params) {
		return def
	}
	if params[idx] <= 0 {
		return def
	}
	return params[idx]
}

// ParamAllowZero returns params[idx] accepting zero, or def when the
// parameter is missing or negative.
func ParamAllowZero(params []int, idx, def int) int {
	if idx >= len(params) {
		return def
	}
	if params[idx] < 0 {
		return def
	}
	return params[idx]
}
