package terminal

import (
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/ansi/parser"
)

// SGR mouse report button bits.
const (
	mouseButtonBits = 0b11
	mouseMotion     = 32
	mouseWheel      = 64
	mouseExtra      = 128
)

// decoder splits raw terminal input into events. It reuses one sequence
// parser and is not safe for concurrent use.
type decoder struct {
	p *ansi.Parser
}

func newDecoder() *decoder {
	return &decoder{p: ansi.NewParser()}
}

// decode reads one event from the front of b and reports how many bytes it
// used. The count is zero while b holds only the start of an escape
// sequence or a UTF-8 rune. With flush set no more input is expected, so a
// partial sequence decodes as whatever its bytes spell and never returns
// zero for non-empty b. Unrecognised input decodes to Tick so it is
// consumed without effect.
func (d *decoder) decode(b []byte, flush bool) (Event, int) {
	if len(b) == 0 {
		return nil, 0
	}
	if !flush && !utf8.FullRune(b) {
		return nil, 0
	}
	if ansi.HasCsiPrefix(b) {
		if n, ok := overlongCSI(b); ok {
			if n == len(b) && !flush {
				return nil, 0
			}
			return Tick{}, n
		}
	}

	seq, _, n, state := ansi.DecodeSequence(b, ansi.NormalState, d.p)
	if state != ansi.NormalState {
		if !flush {
			return nil, 0
		}
		return d.flushPartial(b)
	}

	switch {
	case ansi.HasCsiPrefix(seq):
		return d.csi(), n
	case seq[0] == ansi.ESC:
		return d.escape(b, n, flush)
	case n == 1 && seq[0] < utf8.RuneSelf:
		return byteKey(seq[0]), 1
	}

	// One rune at a time, even inside a longer grapheme cluster
	r, size := utf8.DecodeRune(seq)
	if r == utf8.RuneError && size <= 1 {
		return Tick{}, 1
	}
	return KeyPress{Key: Key{Code: KeyRune, Rune: r}}, size
}

func key(code KeyCode) KeyPress {
	return KeyPress{Key: Key{Code: code}}
}

func byteKey(c byte) Event {
	switch {
	case c == '\r' || c == '\n':
		return key(KeyEnter)
	case c == '\t':
		return key(KeyTab)
	case c == ansi.DEL || c == ansi.BS:
		return key(KeyBackspace)
	case c == ' ':
		return key(KeySpace)
	case c == ansi.NUL:
		return KeyPress{Key: Key{Code: KeyCtrl, Rune: '@'}}
	case c >= 0x01 && c <= 0x1a:
		return KeyPress{Key: Key{Code: KeyCtrl, Rune: rune('a' + c - 1)}}
	case c < ' ':
		return Tick{}
	}
	return KeyPress{Key: Key{Code: KeyRune, Rune: rune(c)}}
}

// escape handles a complete sequence of n bytes that starts with ESC but is
// not a CSI.
func (d *decoder) escape(b []byte, n int, flush bool) (Event, int) {
	switch {
	case n == 1:
		// ESC followed by a byte that cannot continue a sequence
		if b[1] == ansi.ESC {
			return key(KeyEscape), 1
		}
		return d.alt(b, flush)
	case n == 2 && b[1] == 'O':
		if len(b) < 3 {
			if !flush {
				return nil, 0
			}
			return d.alt(b, flush)
		}
		if code, ok := ss3Keys[b[2]]; ok {
			return key(code), 3
		}
		return Tick{}, 3
	case n == 2:
		return d.alt(b, flush)
	}
	return Tick{}, n
}

// alt decodes the key after a leading ESC and marks it as held with Alt.
func (d *decoder) alt(b []byte, flush bool) (Event, int) {
	ev, n := d.decode(b[1:], flush)
	if n == 0 {
		return nil, 0
	}
	if kp, ok := ev.(KeyPress); ok && !kp.Key.Alt {
		kp.Key.Alt = true
		return kp, n + 1
	}
	return key(KeyEscape), 1
}

// flushPartial decodes the start of a sequence that will never complete.
func (d *decoder) flushPartial(b []byte) (Event, int) {
	switch {
	case len(b) == 1 && b[0] == ansi.ESC:
		return key(KeyEscape), 1
	case len(b) == 2 && b[0] == ansi.ESC:
		return d.alt(b, true)
	}
	return Tick{}, len(b)
}

var ss3Keys = map[byte]KeyCode{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

var csiFinalKeys = map[byte]KeyCode{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'Z': KeyBackTab,
}

var csiTildeKeys = map[int]KeyCode{
	1: KeyHome,
	2: KeyInsert,
	3: KeyDelete,
	4: KeyEnd,
	5: KeyPgUp,
	6: KeyPgDown,
	7: KeyHome,
	8: KeyEnd,
}

// csi maps the sequence the parser just read. Modifier parameters such as
// the 5 in "1;5A" are ignored.
func (d *decoder) csi() Event {
	cmd := ansi.Cmd(d.p.Command())
	final := cmd.Final()

	switch {
	case cmd.Prefix() == '<' && (final == 'M' || final == 'm'):
		return d.mouse(final == 'm')
	case cmd.Prefix() != 0 || cmd.Intermediate() != 0:
		return Tick{}
	case final == '~':
		num, _ := d.p.Param(0, 0)
		if code, ok := csiTildeKeys[num]; ok {
			return key(code)
		}
		return Tick{}
	}

	if code, ok := csiFinalKeys[final]; ok {
		return key(code)
	}
	return Tick{}
}

// mouse reads an SGR report: button code, column and row, one-based.
func (d *decoder) mouse(release bool) Event {
	params := d.p.Params()
	if len(params) != 3 {
		return Tick{}
	}
	code, _, _ := params.Param(0, 0)
	x, _, _ := params.Param(1, 1)
	y, _, _ := params.Param(2, 1)

	return Pointer{
		X:       x - 1,
		Y:       y - 1,
		Button:  mouseButton(code),
		Release: release,
		Motion:  code&mouseMotion != 0,
	}
}

func mouseButton(code int) ansi.MouseButton {
	base := ansi.MouseLeft
	switch {
	case code&mouseExtra != 0:
		base = ansi.MouseBackward
	case code&mouseWheel != 0:
		base = ansi.MouseWheelUp
	case code&mouseButtonBits == 3:
		return ansi.MouseNone
	}
	return base + ansi.MouseButton(code&mouseButtonBits)
}

// overlongCSI reports whether the CSI at the front of b carries more
// parameters than the parser can hold, and where that sequence ends.
func overlongCSI(b []byte) (int, bool) {
	start := 1
	if b[0] == ansi.ESC {
		start = 2
	}
	seps := 0
	for i := start; i < len(b); i++ {
		switch c := b[i]; {
		case c == ';' || c == ':':
			seps++
		case c >= '@' && c <= '~':
			return i + 1, seps >= parser.MaxParamsSize
		case c < ' ' || c > '?':
			return i, seps >= parser.MaxParamsSize
		}
	}
	return len(b), seps >= parser.MaxParamsSize
}
