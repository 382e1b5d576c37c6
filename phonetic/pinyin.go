package phonetic

import (
	"github.com/npillmayer/zhuyin"
	"github.com/npillmayer/zhuyin/keymap"
)

// maxPinyinLen bounds the romanisation buffer; no romanised Mandarin
// syllable is longer.
const maxPinyinLen = 10

// pinyin is the editor for the romanised layouts. It accumulates Latin
// letters and translates the buffer to Zhuyin when a tone key arrives.
// Romanisations are ambiguous; the translation tables carry an
// alternative reading for the ambiguous ones.
type pinyin struct {
	layout KeyboardLayout
	keySeq []byte
	syl    zhuyin.Syllable
	alt    zhuyin.Syllable
}

func newPinyin(layout KeyboardLayout) *pinyin {
	return &pinyin{layout: layout, keySeq: make([]byte, 0, maxPinyinLen)}
}

func (ed *pinyin) variantTable() []ambiguousEntry {
	switch ed.layout {
	case LayoutThlPinyin:
		return thlPinyinMapping
	case LayoutMps2Pinyin:
		return mps2PinyinMapping
	}
	return hanyuPinyinMapping
}

func (ed *pinyin) KeyPress(key keymap.KeyEvent) KeyBehavior {
	switch key.Code {
	case keymap.Space, keymap.N1, keymap.N2, keymap.N3, keymap.N4, keymap.N5:
		// tone keys, handled below
	default:
		if len(ed.keySeq) == maxPinyinLen {
			// buffer is full, ignore this key stroke
			return KeyError
		}
		ch := key.Code.Ascii()
		if ch < 'a' || ch > 'z' {
			return KeyError
		}
		ed.keySeq = append(ed.keySeq, ch)
		return Absorb
	}

	if len(ed.keySeq) == 0 {
		return KeyError
	}
	var tone zhuyin.Bopomofo
	switch key.Code {
	case keymap.Space, keymap.N1:
		tone = zhuyin.Tone1
	case keymap.N2:
		tone = zhuyin.Tone2
	case keymap.N3:
		tone = zhuyin.Tone3
	case keymap.N4:
		tone = zhuyin.Tone4
	case keymap.N5:
		tone = zhuyin.Tone5
	}

	seq := string(ed.keySeq)
	for _, table := range [][]ambiguousEntry{ed.variantTable(), commonMapping} {
		for _, entry := range table {
			if entry.pinyin == seq {
				ed.keySeq = ed.keySeq[:0]
				ed.syl = entry.primary.Update(tone)
				ed.alt = entry.alt.Update(tone)
				tracer().Debugf("pinyin %q sealed %s (alt %s)", seq, ed.syl, ed.alt)
				return Commit
			}
		}
	}

	var initial, medial, final zhuyin.Bopomofo
	rest := seq
	for _, entry := range initialMapping {
		if len(seq) >= len(entry.pinyin) && seq[:len(entry.pinyin)] == entry.pinyin {
			initial = entry.initial
			rest = seq[len(entry.pinyin):]
			break
		}
	}
	foundFinal := false
	for _, entry := range finalMapping {
		if rest == entry.pinyin {
			medial, final = entry.medial, entry.final
			foundFinal = true
			break
		}
	}
	if initial == 0 && !foundFinal {
		tracer().Debugf("pinyin editor cannot read %q, dropping it", seq)
		ed.keySeq = ed.keySeq[:0]
		return Absorb
	}

	// ㄓㄔㄕㄖㄗㄘㄙ carry the hummed vowel themselves.
	if final == zhuyin.I {
		switch initial {
		case zhuyin.ZH, zhuyin.CH, zhuyin.SH, zhuyin.R, zhuyin.Z, zhuyin.C, zhuyin.S:
			medial, final = 0, 0
		}
	}
	// ㄐㄑㄒ cannot precede ㄨ; the u must have meant ㄩ.
	switch initial {
	case zhuyin.J, zhuyin.Q, zhuyin.X:
		if medial == zhuyin.U && (final == zhuyin.AN || final == zhuyin.EN || final == 0) {
			medial = zhuyin.IU
		}
	}
	switch medial {
	case zhuyin.I, zhuyin.IU:
		switch initial {
		case zhuyin.S, zhuyin.SH:
			initial = zhuyin.X
		case zhuyin.C, zhuyin.CH:
			initial = zhuyin.Q
		}
	default:
		if initial == zhuyin.J {
			initial = zhuyin.ZH
		}
	}
	// ㄅㄆㄇㄈ swallow the glide of uo/ueng.
	switch initial {
	case zhuyin.B, zhuyin.P, zhuyin.M, zhuyin.F:
		if medial == zhuyin.U && (final == zhuyin.ENG || final == zhuyin.O) {
			medial = 0
		}
	}

	ed.keySeq = ed.keySeq[:0]
	var sealed zhuyin.Syllable
	sealed = sealed.Update(initial).Update(medial).Update(final).Update(tone)
	ed.syl = sealed
	ed.alt = sealed
	tracer().Debugf("pinyin %q sealed %s", seq, ed.syl)
	return Commit
}

func (ed *pinyin) IsEntering() bool { return len(ed.keySeq) > 0 }

// Pop removes the last letter of the romanisation buffer. The removed
// key does not correspond to a single phonetic symbol, so the zero
// symbol is returned.
func (ed *pinyin) Pop() (zhuyin.Bopomofo, bool) {
	if len(ed.keySeq) == 0 {
		return 0, false
	}
	ed.keySeq = ed.keySeq[:len(ed.keySeq)-1]
	return 0, true
}

func (ed *pinyin) Clear() {
	ed.keySeq = ed.keySeq[:0]
	ed.syl = 0
	ed.alt = 0
}

func (ed *pinyin) Observe() zhuyin.Syllable { return ed.syl }

func (ed *pinyin) AltSyllable() (zhuyin.Syllable, bool) {
	if ed.alt == 0 || ed.alt == ed.syl {
		return 0, false
	}
	return ed.alt, true
}

func (ed *pinyin) KeySeq() (string, bool) { return string(ed.keySeq), true }
func (ed *pinyin) Layout() KeyboardLayout { return ed.layout }
