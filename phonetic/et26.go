package phonetic

import (
	"github.com/npillmayer/zhuyin"
	"github.com/npillmayer/zhuyin/keymap"
)

// et26 is the editor for the ET (倚天) layout family. Like Hsu's layout
// it folds the symbol set onto the letter keys and resolves the
// ambiguous keys from context.
type et26 struct {
	layout KeyboardLayout
	syl    zhuyin.Syllable
	alt    zhuyin.Syllable
}

func newEt26(layout KeyboardLayout) *et26 {
	return &et26{layout: layout}
}

func (ed *et26) isEndKey(key keymap.KeyEvent) bool {
	switch key.Code {
	case keymap.CodeD, keymap.CodeF, keymap.CodeJ, keymap.CodeK, keymap.Space:
		return !ed.syl.IsEmpty()
	}
	return false
}

func (ed *et26) hasInitialOrMedial() bool {
	return ed.syl.Initial() != 0 || ed.syl.Medial() != 0
}

func (ed *et26) KeyPress(key keymap.KeyEvent) KeyBehavior {
	if ed.isEndKey(key) {
		before := ed.syl
		if ed.syl.Medial() == 0 && ed.syl.Final() == 0 {
			switch ed.syl.Initial() {
			case zhuyin.J:
				ed.syl = ed.syl.Update(zhuyin.ZH)
			case zhuyin.X:
				ed.syl = ed.syl.Update(zhuyin.SH)
			case zhuyin.P:
				ed.syl = dropInitial(ed.syl).Update(zhuyin.OU)
			case zhuyin.M:
				ed.syl = dropInitial(ed.syl).Update(zhuyin.AN)
			case zhuyin.N:
				ed.syl = dropInitial(ed.syl).Update(zhuyin.EN)
			case zhuyin.T:
				ed.syl = dropInitial(ed.syl).Update(zhuyin.ANG)
			case zhuyin.L:
				ed.syl = dropInitial(ed.syl).Update(zhuyin.ENG)
			case zhuyin.H:
				ed.syl = dropInitial(ed.syl).Update(zhuyin.ER)
			}
		}
		var tone zhuyin.Bopomofo
		switch key.Code {
		case keymap.Space:
			tone = zhuyin.Tone1
		case keymap.CodeF:
			tone = zhuyin.Tone2
		case keymap.CodeJ:
			tone = zhuyin.Tone3
		case keymap.CodeK:
			tone = zhuyin.Tone4
		case keymap.CodeD:
			tone = zhuyin.Tone5
		}
		ed.syl = ed.syl.Update(tone)
		if before != dropTone(ed.syl) {
			ed.alt = before.Update(tone)
		} else {
			ed.alt = 0
		}
		tracer().Debugf("et editor sealed %s (alt %s)", ed.syl, ed.alt)
		return Commit
	}

	var bopo zhuyin.Bopomofo
	switch key.Code {
	case keymap.CodeA:
		bopo = zhuyin.A
	case keymap.CodeB:
		bopo = zhuyin.B
	case keymap.CodeC:
		bopo = zhuyin.X
	case keymap.CodeD:
		bopo = zhuyin.D
	case keymap.CodeE:
		bopo = zhuyin.I
	case keymap.CodeF:
		bopo = zhuyin.F
	case keymap.CodeG:
		bopo = zhuyin.J
	case keymap.CodeH:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.ER, zhuyin.H)
	case keymap.CodeI:
		bopo = zhuyin.AI
	case keymap.CodeJ:
		bopo = zhuyin.R
	case keymap.CodeK:
		bopo = zhuyin.K
	case keymap.CodeL:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.ENG, zhuyin.L)
	case keymap.CodeM:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.AN, zhuyin.M)
	case keymap.CodeN:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.EN, zhuyin.N)
	case keymap.CodeO:
		bopo = zhuyin.O
	case keymap.CodeP:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.OU, zhuyin.P)
	case keymap.CodeQ:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.EI, zhuyin.Z)
	case keymap.CodeR:
		bopo = zhuyin.E
	case keymap.CodeS:
		bopo = zhuyin.S
	case keymap.CodeT:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.ANG, zhuyin.T)
	case keymap.CodeU:
		bopo = zhuyin.IU
	case keymap.CodeV:
		bopo = zhuyin.G
	case keymap.CodeW:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.EH, zhuyin.C)
	case keymap.CodeX:
		bopo = zhuyin.U
	case keymap.CodeY:
		bopo = zhuyin.CH
	case keymap.CodeZ:
		bopo = zhuyin.AU
	default:
		return KeyError
	}

	switch bopo.Kind() {
	case zhuyin.MedialKind:
		if bopo == zhuyin.U {
			switch ed.syl.Initial() {
			case zhuyin.J:
				ed.syl = ed.syl.Update(zhuyin.ZH)
			case zhuyin.X:
				ed.syl = ed.syl.Update(zhuyin.SH)
			}
		} else if ed.syl.Initial() == zhuyin.G {
			ed.syl = ed.syl.Update(zhuyin.Q)
		}
	case zhuyin.FinalKind:
		if ed.syl.Medial() == 0 {
			switch ed.syl.Initial() {
			case zhuyin.J:
				ed.syl = ed.syl.Update(zhuyin.ZH)
			case zhuyin.X:
				ed.syl = ed.syl.Update(zhuyin.SH)
			}
		}
	}

	ed.syl = ed.syl.Update(bopo)
	return Absorb
}

func (ed *et26) IsEntering() bool { return !ed.syl.IsEmpty() }

func (ed *et26) Pop() (zhuyin.Bopomofo, bool) {
	var popped zhuyin.Bopomofo
	ed.syl, popped = ed.syl.Pop()
	return popped, popped != 0
}

func (ed *et26) Clear() {
	ed.syl = 0
	ed.alt = 0
}

func (ed *et26) Observe() zhuyin.Syllable { return ed.syl }

func (ed *et26) AltSyllable() (zhuyin.Syllable, bool) {
	return ed.alt, ed.alt != 0
}

func (ed *et26) KeySeq() (string, bool) { return "", false }
func (ed *et26) Layout() KeyboardLayout { return ed.layout }
