package phonetic

import (
	"github.com/npillmayer/zhuyin"
	"github.com/npillmayer/zhuyin/keymap"
)

// daiChien26 is the editor for the Dai Chien CP26 layout: the standard
// arrangement folded onto the letter keys, with two symbols per key.
// Pressing a key a second time toggles to its alternative symbol.
type daiChien26 struct {
	layout KeyboardLayout
	syl    zhuyin.Syllable
}

func newDaiChien26(layout KeyboardLayout) *daiChien26 {
	return &daiChien26{layout: layout}
}

func (ed *daiChien26) isEndKey(key keymap.KeyEvent) bool {
	switch key.Index {
	case keymap.K17, keymap.K18, keymap.K29, keymap.K20, keymap.K48:
		return !ed.syl.IsEmpty()
	}
	return false
}

func (ed *daiChien26) hasInitialOrMedial() bool {
	return ed.syl.Initial() != 0 || ed.syl.Medial() != 0
}

// defaultOrAlt toggles between the two symbols printed on one key.
func defaultOrAlt(current, deflt, alt zhuyin.Bopomofo) zhuyin.Bopomofo {
	if current == deflt {
		return alt
	}
	return deflt
}

func (ed *daiChien26) KeyPress(key keymap.KeyEvent) KeyBehavior {
	if ed.isEndKey(key) {
		var tone zhuyin.Bopomofo
		switch key.Index {
		case keymap.K48:
			tone = zhuyin.Tone1
		case keymap.K17:
			tone = zhuyin.Tone2
		case keymap.K18:
			tone = zhuyin.Tone3
		case keymap.K29:
			tone = zhuyin.Tone4
		case keymap.K20:
			tone = zhuyin.Tone5
		}
		ed.syl = ed.syl.Update(tone)
		tracer().Debugf("cp26 editor sealed %s", ed.syl)
		return Commit
	}

	var bopo zhuyin.Bopomofo
	switch key.Index {
	case keymap.K15:
		bopo = defaultOrAlt(ed.syl.Initial(), zhuyin.B, zhuyin.P)
	case keymap.K27:
		bopo = zhuyin.M
	case keymap.K38:
		bopo = zhuyin.F
	case keymap.K16:
		bopo = defaultOrAlt(ed.syl.Initial(), zhuyin.D, zhuyin.T)
	case keymap.K28:
		bopo = zhuyin.N
	case keymap.K39:
		bopo = zhuyin.L
	case keymap.K17:
		bopo = zhuyin.G
	case keymap.K29:
		bopo = zhuyin.K
	case keymap.K40:
		bopo = zhuyin.H
	case keymap.K18:
		bopo = zhuyin.J
	case keymap.K30:
		bopo = zhuyin.Q
	case keymap.K41:
		bopo = zhuyin.X
	case keymap.K19:
		bopo = defaultOrAlt(ed.syl.Initial(), zhuyin.ZH, zhuyin.CH)
	case keymap.K31:
		bopo = zhuyin.SH
	case keymap.K42:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.EH, zhuyin.R)
	case keymap.K20:
		bopo = zhuyin.Z
	case keymap.K32:
		bopo = zhuyin.C
	case keymap.K43:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.ENG, zhuyin.S)
	case keymap.K21:
		return ed.pressI()
	case keymap.K33:
		bopo = zhuyin.U
	case keymap.K44:
		return ed.pressIU()
	case keymap.K22:
		bopo = defaultOrAlt(ed.syl.Final(), zhuyin.O, zhuyin.AI)
	case keymap.K34:
		bopo = zhuyin.E
	case keymap.K23:
		bopo = defaultOrAlt(ed.syl.Final(), zhuyin.EI, zhuyin.AN)
	case keymap.K35:
		bopo = defaultOrAlt(ed.syl.Final(), zhuyin.AU, zhuyin.ANG)
	case keymap.K24:
		bopo = defaultOrAlt(ed.syl.Final(), zhuyin.EN, zhuyin.ER)
	default:
		return KeyError
	}

	ed.syl = ed.syl.Update(bopo)
	return Absorb
}

// pressI handles the key carrying both ㄧ and ㄚ. Repeated presses cycle
// through ㄧ, ㄚ, ㄧㄚ and back to empty.
func (ed *daiChien26) pressI() KeyBehavior {
	medial, final := ed.syl.Medial(), ed.syl.Final()
	switch {
	case medial == zhuyin.I && final == zhuyin.A:
		ed.syl = dropMedial(dropFinal(ed.syl))
	case final == zhuyin.A:
		ed.syl = ed.syl.Update(zhuyin.I)
	case medial == zhuyin.I:
		ed.syl = dropMedial(ed.syl).Update(zhuyin.A)
	case medial != 0:
		ed.syl = ed.syl.Update(zhuyin.A)
	default:
		ed.syl = ed.syl.Update(zhuyin.I)
	}
	return Absorb
}

// pressIU handles the key carrying both ㄩ and ㄡ.
func (ed *daiChien26) pressIU() KeyBehavior {
	medial, final := ed.syl.Medial(), ed.syl.Final()
	switch {
	case medial == zhuyin.IU && final != zhuyin.OU:
		ed.syl = dropMedial(ed.syl).Update(zhuyin.OU)
	case medial != zhuyin.IU && final == zhuyin.OU:
		ed.syl = dropFinal(ed.syl).Update(zhuyin.IU)
	case medial != 0:
		ed.syl = ed.syl.Update(zhuyin.OU)
	default:
		ed.syl = ed.syl.Update(zhuyin.IU)
	}
	return Absorb
}

func (ed *daiChien26) IsEntering() bool { return !ed.syl.IsEmpty() }

func (ed *daiChien26) Pop() (zhuyin.Bopomofo, bool) {
	var popped zhuyin.Bopomofo
	ed.syl, popped = ed.syl.Pop()
	return popped, popped != 0
}

func (ed *daiChien26) Clear() { ed.syl = 0 }
func (ed *daiChien26) Observe() zhuyin.Syllable { return ed.syl }

func (ed *daiChien26) AltSyllable() (zhuyin.Syllable, bool) { return 0, false }
func (ed *daiChien26) KeySeq() (string, bool) { return "", false }
func (ed *daiChien26) Layout() KeyboardLayout { return ed.layout }

func dropMedial(syl zhuyin.Syllable) zhuyin.Syllable {
	return syl &^ (0x3 << 7)
}

func dropFinal(syl zhuyin.Syllable) zhuyin.Syllable {
	return syl &^ (0xf << 3)
}
