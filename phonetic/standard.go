package phonetic

import (
	"github.com/npillmayer/zhuyin"
	"github.com/npillmayer/zhuyin/keymap"
)

// standard is the editor for all direct, one key per symbol layouts. The
// selection table decides which symbol sits on which key; everything else
// is shared.
type standard struct {
	layout KeyboardLayout
	table  *[49]zhuyin.Bopomofo
	syl    zhuyin.Syllable
}

func newStandard(layout KeyboardLayout, table *[49]zhuyin.Bopomofo) *standard {
	return &standard{layout: layout, table: table}
}

func (ed *standard) KeyPress(key keymap.KeyEvent) KeyBehavior {
	bopo := ed.table[key.Index]
	if bopo == 0 {
		return KeyError
	}
	if bopo.Kind() == zhuyin.ToneKind {
		if !ed.syl.IsEmpty() {
			ed.syl = ed.syl.Update(bopo)
			tracer().Debugf("standard editor sealed %s", ed.syl)
			return Commit
		}
		// The first tone alone carries no phonetic information.
		if bopo == zhuyin.Tone1 {
			return KeyError
		}
	} else {
		// A non-tone key invalidates a stale tone left by Pop.
		ed.syl = ed.syl &^ 0x7
	}
	ed.syl = ed.syl.Update(bopo)
	return Absorb
}

func (ed *standard) IsEntering() bool { return !ed.syl.IsEmpty() }

func (ed *standard) Pop() (zhuyin.Bopomofo, bool) {
	var popped zhuyin.Bopomofo
	ed.syl, popped = ed.syl.Pop()
	return popped, popped != 0
}

func (ed *standard) Clear() { ed.syl = 0 }
func (ed *standard) Observe() zhuyin.Syllable { return ed.syl }

func (ed *standard) AltSyllable() (zhuyin.Syllable, bool) { return 0, false }
func (ed *standard) KeySeq() (string, bool) { return "", false }
func (ed *standard) Layout() KeyboardLayout { return ed.layout }

// defaultTable is the Dai Chien (大千) arrangement printed on almost all
// keyboards; the default on every platform.
var defaultTable = &[49]zhuyin.Bopomofo{
	keymap.K1:  zhuyin.B,
	keymap.K2:  zhuyin.D,
	keymap.K3:  zhuyin.Tone3,
	keymap.K4:  zhuyin.Tone4,
	keymap.K5:  zhuyin.ZH,
	keymap.K6:  zhuyin.Tone2,
	keymap.K7:  zhuyin.Tone5,
	keymap.K8:  zhuyin.A,
	keymap.K9:  zhuyin.AI,
	keymap.K10: zhuyin.AN,
	keymap.K11: zhuyin.ER,
	keymap.K15: zhuyin.P,
	keymap.K16: zhuyin.T,
	keymap.K17: zhuyin.G,
	keymap.K18: zhuyin.J,
	keymap.K19: zhuyin.CH,
	keymap.K20: zhuyin.Z,
	keymap.K21: zhuyin.I,
	keymap.K22: zhuyin.O,
	keymap.K23: zhuyin.EI,
	keymap.K24: zhuyin.EN,
	keymap.K27: zhuyin.M,
	keymap.K28: zhuyin.N,
	keymap.K29: zhuyin.K,
	keymap.K30: zhuyin.Q,
	keymap.K31: zhuyin.SH,
	keymap.K32: zhuyin.C,
	keymap.K33: zhuyin.U,
	keymap.K34: zhuyin.E,
	keymap.K35: zhuyin.AU,
	keymap.K36: zhuyin.ANG,
	keymap.K38: zhuyin.F,
	keymap.K39: zhuyin.L,
	keymap.K40: zhuyin.H,
	keymap.K41: zhuyin.X,
	keymap.K42: zhuyin.R,
	keymap.K43: zhuyin.S,
	keymap.K44: zhuyin.IU,
	keymap.K45: zhuyin.EH,
	keymap.K46: zhuyin.OU,
	keymap.K47: zhuyin.ENG,
	keymap.K48: zhuyin.Tone1,
}

// ibmTable is the IBM arrangement: the 37 letters in canonical order along
// the rows, followed by the tone marks ˙ˊˇˋ, first tone on space.
var ibmTable = &[49]zhuyin.Bopomofo{
	keymap.K1:  zhuyin.B,
	keymap.K2:  zhuyin.P,
	keymap.K3:  zhuyin.M,
	keymap.K4:  zhuyin.F,
	keymap.K5:  zhuyin.D,
	keymap.K6:  zhuyin.T,
	keymap.K7:  zhuyin.N,
	keymap.K8:  zhuyin.L,
	keymap.K9:  zhuyin.G,
	keymap.K10: zhuyin.K,
	keymap.K11: zhuyin.H,
	keymap.K15: zhuyin.J,
	keymap.K16: zhuyin.Q,
	keymap.K17: zhuyin.X,
	keymap.K18: zhuyin.ZH,
	keymap.K19: zhuyin.CH,
	keymap.K20: zhuyin.SH,
	keymap.K21: zhuyin.R,
	keymap.K22: zhuyin.Z,
	keymap.K23: zhuyin.C,
	keymap.K24: zhuyin.S,
	keymap.K27: zhuyin.I,
	keymap.K28: zhuyin.U,
	keymap.K29: zhuyin.IU,
	keymap.K30: zhuyin.A,
	keymap.K31: zhuyin.O,
	keymap.K32: zhuyin.E,
	keymap.K33: zhuyin.EH,
	keymap.K34: zhuyin.AI,
	keymap.K35: zhuyin.EI,
	keymap.K36: zhuyin.AU,
	keymap.K38: zhuyin.OU,
	keymap.K39: zhuyin.AN,
	keymap.K40: zhuyin.EN,
	keymap.K41: zhuyin.ANG,
	keymap.K42: zhuyin.ENG,
	keymap.K43: zhuyin.ER,
	keymap.K44: zhuyin.Tone5,
	keymap.K45: zhuyin.Tone2,
	keymap.K46: zhuyin.Tone3,
	keymap.K47: zhuyin.Tone4,
	keymap.K48: zhuyin.Tone1,
}

// ginYiehTable is the Gin Yieh (精業) arrangement, organized in columns
// from the top right of the keyboard.
var ginYiehTable = &[49]zhuyin.Bopomofo{
	keymap.K2:  zhuyin.B,
	keymap.K16: zhuyin.P,
	keymap.K28: zhuyin.M,
	keymap.K39: zhuyin.F,
	keymap.K3:  zhuyin.D,
	keymap.K17: zhuyin.T,
	keymap.K29: zhuyin.N,
	keymap.K40: zhuyin.L,
	keymap.K4:  zhuyin.G,
	keymap.K18: zhuyin.K,
	keymap.K30: zhuyin.H,
	keymap.K41: zhuyin.J,
	keymap.K5:  zhuyin.Q,
	keymap.K19: zhuyin.X,
	keymap.K31: zhuyin.ZH,
	keymap.K42: zhuyin.CH,
	keymap.K6:  zhuyin.SH,
	keymap.K20: zhuyin.R,
	keymap.K32: zhuyin.Z,
	keymap.K43: zhuyin.C,
	keymap.K7:  zhuyin.S,
	keymap.K21: zhuyin.I,
	keymap.K33: zhuyin.U,
	keymap.K44: zhuyin.IU,
	keymap.K8:  zhuyin.A,
	keymap.K22: zhuyin.O,
	keymap.K34: zhuyin.E,
	keymap.K45: zhuyin.EH,
	keymap.K9:  zhuyin.AI,
	keymap.K23: zhuyin.EI,
	keymap.K35: zhuyin.AU,
	keymap.K46: zhuyin.OU,
	keymap.K10: zhuyin.AN,
	keymap.K24: zhuyin.EN,
	keymap.K36: zhuyin.ANG,
	keymap.K47: zhuyin.ENG,
	keymap.K11: zhuyin.ER,
	keymap.K25: zhuyin.Tone5,
	keymap.K37: zhuyin.Tone2,
	keymap.K26: zhuyin.Tone3,
	keymap.K12: zhuyin.Tone4,
	keymap.K48: zhuyin.Tone1,
}
