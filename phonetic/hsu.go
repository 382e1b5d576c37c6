package phonetic

import (
	"github.com/npillmayer/zhuyin"
	"github.com/npillmayer/zhuyin/keymap"
)

// hsu is the editor for Hsu's layout. Keys are contextual: the same key
// yields an initial at the start of a syllable and a final later on, and
// the tone keys double as initials while the syllable is still empty.
type hsu struct {
	layout KeyboardLayout
	syl    zhuyin.Syllable
	alt    zhuyin.Syllable
}

func newHsu(layout KeyboardLayout) *hsu {
	return &hsu{layout: layout}
}

func (ed *hsu) isEndKey(key keymap.KeyEvent) bool {
	// TODO allow customized end key mappings
	switch key.Code {
	case keymap.CodeS, keymap.CodeD, keymap.CodeF, keymap.CodeJ, keymap.Space:
		return !ed.syl.IsEmpty()
	}
	return false
}

func (ed *hsu) hasInitialOrMedial() bool {
	return ed.syl.Initial() != 0 || ed.syl.Medial() != 0
}

func (ed *hsu) KeyPress(key keymap.KeyEvent) KeyBehavior {
	if ed.isEndKey(key) {
		before := ed.syl
		if ed.syl.Medial() == 0 && ed.syl.Final() == 0 {
			// A lone initial in front of an end key re-reads as the
			// symbol's alternative meaning.
			switch ed.syl.Initial() {
			case zhuyin.J:
				ed.syl = ed.syl.Update(zhuyin.ZH)
			case zhuyin.Q:
				ed.syl = ed.syl.Update(zhuyin.CH)
			case zhuyin.X:
				ed.syl = ed.syl.Update(zhuyin.SH)
			case zhuyin.H:
				ed.syl = dropInitial(ed.syl).Update(zhuyin.O)
			case zhuyin.G:
				ed.syl = dropInitial(ed.syl).Update(zhuyin.E)
			case zhuyin.M:
				ed.syl = dropInitial(ed.syl).Update(zhuyin.AN)
			case zhuyin.N:
				ed.syl = dropInitial(ed.syl).Update(zhuyin.EN)
			case zhuyin.K:
				ed.syl = dropInitial(ed.syl).Update(zhuyin.ANG)
			case zhuyin.L:
				ed.syl = dropInitial(ed.syl).Update(zhuyin.ER)
			}
		}
		ed.fuzzGI()

		var tone zhuyin.Bopomofo
		switch key.Code {
		case keymap.Space:
			tone = zhuyin.Tone1
		case keymap.CodeD:
			tone = zhuyin.Tone2
		case keymap.CodeF:
			tone = zhuyin.Tone3
		case keymap.CodeJ:
			tone = zhuyin.Tone4
		case keymap.CodeS:
			tone = zhuyin.Tone5
		}
		ed.syl = ed.syl.Update(tone)
		if before != dropTone(ed.syl) {
			// Both readings are plausible; keep the literal one so the
			// dictionary can be consulted for either.
			ed.alt = before.Update(tone)
		} else {
			ed.alt = 0
		}
		tracer().Debugf("hsu editor sealed %s (alt %s)", ed.syl, ed.alt)
		return Commit
	}

	var bopo zhuyin.Bopomofo
	switch key.Code {
	case keymap.CodeA:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.EI, zhuyin.C)
	case keymap.CodeB:
		bopo = zhuyin.B
	case keymap.CodeC:
		bopo = zhuyin.SH
	case keymap.CodeD:
		bopo = zhuyin.D
	case keymap.CodeE:
		bopo = zhuyin.I
	case keymap.CodeF:
		bopo = zhuyin.F
	case keymap.CodeG:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.E, zhuyin.G)
	case keymap.CodeH:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.O, zhuyin.H)
	case keymap.CodeI:
		bopo = zhuyin.AI
	case keymap.CodeJ:
		bopo = zhuyin.ZH
	case keymap.CodeK:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.ANG, zhuyin.K)
	case keymap.CodeL:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.ENG, zhuyin.L)
	case keymap.CodeM:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.AN, zhuyin.M)
	case keymap.CodeN:
		bopo = contextual(ed.hasInitialOrMedial(), zhuyin.EN, zhuyin.N)
	case keymap.CodeO:
		bopo = zhuyin.OU
	case keymap.CodeP:
		bopo = zhuyin.P
	case keymap.CodeR:
		bopo = zhuyin.R
	case keymap.CodeS:
		bopo = zhuyin.S
	case keymap.CodeT:
		bopo = zhuyin.T
	case keymap.CodeU:
		bopo = zhuyin.IU
	case keymap.CodeV:
		bopo = zhuyin.CH
	case keymap.CodeW:
		bopo = zhuyin.AU
	case keymap.CodeX:
		bopo = zhuyin.U
	case keymap.CodeY:
		bopo = zhuyin.A
	case keymap.CodeZ:
		bopo = zhuyin.Z
	default:
		return KeyError
	}

	ed.fuzzGI()

	// ㄐㄑㄒ must be followed by ㄧ or ㄩ; otherwise they read ㄓㄔㄕ.
	kind := bopo.Kind()
	if (kind == zhuyin.MedialKind && bopo == zhuyin.U) ||
		(kind == zhuyin.FinalKind && ed.syl.Medial() == 0) {
		switch ed.syl.Initial() {
		case zhuyin.J:
			ed.syl = ed.syl.Update(zhuyin.ZH)
		case zhuyin.Q:
			ed.syl = ed.syl.Update(zhuyin.CH)
		case zhuyin.X:
			ed.syl = ed.syl.Update(zhuyin.SH)
		}
	}

	// Likewise, ㄓㄔㄕ followed by ㄧ or ㄩ read ㄐㄑㄒ.
	if bopo == zhuyin.I || bopo == zhuyin.IU {
		switch ed.syl.Initial() {
		case zhuyin.ZH:
			ed.syl = ed.syl.Update(zhuyin.J)
		case zhuyin.CH:
			ed.syl = ed.syl.Update(zhuyin.Q)
		case zhuyin.SH:
			ed.syl = ed.syl.Update(zhuyin.X)
		}
	}

	ed.syl = ed.syl.Update(bopo)
	return Absorb
}

// fuzzGI rereads ㄍㄧ as ㄐㄧ and ㄍㄩ as ㄐㄩ.
func (ed *hsu) fuzzGI() {
	if m := ed.syl.Medial(); m != zhuyin.I && m != zhuyin.IU {
		return
	}
	switch ed.syl.Initial() {
	case zhuyin.G, zhuyin.J:
		ed.syl = ed.syl.Update(zhuyin.J)
	}
}

func (ed *hsu) IsEntering() bool { return !ed.syl.IsEmpty() }

func (ed *hsu) Pop() (zhuyin.Bopomofo, bool) {
	var popped zhuyin.Bopomofo
	ed.syl, popped = ed.syl.Pop()
	return popped, popped != 0
}

func (ed *hsu) Clear() {
	ed.syl = 0
	ed.alt = 0
}

func (ed *hsu) Observe() zhuyin.Syllable { return ed.syl }

func (ed *hsu) AltSyllable() (zhuyin.Syllable, bool) {
	return ed.alt, ed.alt != 0
}

func (ed *hsu) KeySeq() (string, bool) { return "", false }
func (ed *hsu) Layout() KeyboardLayout { return ed.layout }

// --- Helpers ----------------------------------------------------------

func contextual(filled bool, then, otherwise zhuyin.Bopomofo) zhuyin.Bopomofo {
	if filled {
		return then
	}
	return otherwise
}

func dropInitial(syl zhuyin.Syllable) zhuyin.Syllable {
	return syl &^ (0x1f << 9)
}

func dropTone(syl zhuyin.Syllable) zhuyin.Syllable {
	return syl &^ 0x7
}
