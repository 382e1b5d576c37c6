package phonetic

import (
	"testing"

	"github.com/npillmayer/zhuyin"
	"github.com/npillmayer/zhuyin/keymap"
)

func TestHsuCen(t *testing.T) {
	ed := NewEditor(LayoutHsu)
	behavior := typeKeys(t, ed, keymap.Qwerty, "cen ")
	if behavior != Commit {
		t.Fatalf("the space key should seal the syllable, behavior is %s", behavior)
	}
	syl := ed.Observe()
	// ㄕ followed by ㄧ is repaired to ㄒ.
	if syl.Initial() != zhuyin.X || syl.Medial() != zhuyin.I || syl.Final() != zhuyin.EN {
		t.Errorf("keys cen should give ㄒㄧㄣ, give %s", syl)
	}
	if syl.Tone() != zhuyin.Tone1 {
		t.Errorf("space should set the first tone, tone is %v", syl.Tone())
	}
}

func TestHsuLoneInitialRereadAsFinal(t *testing.T) {
	ed := NewEditor(LayoutHsu)
	behavior := typeKeys(t, ed, keymap.Qwerty, "nf")
	if behavior != Commit {
		t.Fatalf("the F key should seal the syllable, behavior is %s", behavior)
	}
	syl := ed.Observe()
	if syl.Final() != zhuyin.EN || syl.Initial() != 0 {
		t.Errorf("a lone ㄋ before an end key should reread as ㄣ, buffer is %s", syl)
	}
	if syl.Tone() != zhuyin.Tone3 {
		t.Errorf("the F key should set the third tone, tone is %v", syl.Tone())
	}
	alt, ok := ed.AltSyllable()
	if !ok {
		t.Fatal("the reread should leave the literal syllable as alternative")
	}
	if alt.Initial() != zhuyin.N || alt.Tone() != zhuyin.Tone3 {
		t.Errorf("alternative should keep ㄋ with the tone, is %s", alt)
	}
}

func TestHsuContextualVowelKeys(t *testing.T) {
	ed := NewEditor(LayoutHsu)
	typeKeys(t, ed, keymap.Qwerty, "a") // no initial yet: ㄘ
	if syl := ed.Observe(); syl.Initial() != zhuyin.C {
		t.Fatalf("lone 'a' should enter ㄘ, buffer is %s", syl)
	}
	typeKeys(t, ed, keymap.Qwerty, "a") // now contextual: ㄟ
	if syl := ed.Observe(); syl.Final() != zhuyin.EI {
		t.Errorf("'a' after an initial should enter ㄟ, buffer is %s", syl)
	}
}

func TestHsuToneKeysDoubleAsInitials(t *testing.T) {
	ed := NewEditor(LayoutHsu)
	behavior := ed.KeyPress(keymap.Qwerty.Map('d'))
	if behavior != Absorb {
		t.Fatalf("'d' with an empty buffer should absorb as ㄉ, is %s", behavior)
	}
	if syl := ed.Observe(); syl.Initial() != zhuyin.D {
		t.Errorf("'d' should enter ㄉ, buffer is %s", syl)
	}
	behavior = ed.KeyPress(keymap.Qwerty.Map('d'))
	if behavior != Commit {
		t.Errorf("'d' with content should seal with the second tone, is %s", behavior)
	}
	if tone := ed.Observe().Tone(); tone != zhuyin.Tone2 {
		t.Errorf("tone should be ˊ, is %v", tone)
	}
}

func TestHsuNoAltWithoutReread(t *testing.T) {
	ed := NewEditor(LayoutHsu)
	typeKeys(t, ed, keymap.Qwerty, "bey ") // ㄅㄧㄚ plus tone
	if _, ok := ed.AltSyllable(); ok {
		t.Error("an unambiguous composition should have no alternative")
	}
}

func TestHsuClearDropsAlt(t *testing.T) {
	ed := NewEditor(LayoutHsu)
	typeKeys(t, ed, keymap.Qwerty, "nf")
	ed.Clear()
	if _, ok := ed.AltSyllable(); ok {
		t.Error("Clear should drop the alternative syllable")
	}
	if ed.IsEntering() {
		t.Error("Clear should empty the buffer")
	}
}
