package conversion

import (
	"testing"

	"github.com/npillmayer/zhuyin"
	"github.com/npillmayer/zhuyin/dict"
)

type mapDict map[string][]dict.Phrase

func seqKey(seq []zhuyin.Syllable) string {
	k := ""
	for _, syl := range seq {
		k += syl.String()
	}
	return k
}

func (d mapDict) LookupPhrases(seq []zhuyin.Syllable) []dict.Phrase {
	return d[seqKey(seq)]
}

func syllables(t *testing.T, words ...string) []zhuyin.Syllable {
	t.Helper()
	seq := make([]zhuyin.Syllable, len(words))
	for i, w := range words {
		syl, err := zhuyin.ParseSyllable(w)
		if err != nil {
			t.Fatal(err)
		}
		seq[i] = syl
	}
	return seq
}

// testDictionary mirrors the syllables of 國民大會代表 plus 新酷音.
func testDictionary(t *testing.T) mapDict {
	return mapDict{
		"ㄍㄨㄛˊ":     {{Text: "國", Freq: 1}},
		"ㄇㄧㄣˊ":     {{Text: "民", Freq: 1}},
		"ㄉㄚˋ":      {{Text: "大", Freq: 1}},
		"ㄏㄨㄟˋ":     {{Text: "會", Freq: 1}},
		"ㄉㄞˋ":      {{Text: "代", Freq: 1}},
		"ㄅㄧㄠˇ":     {{Text: "表", Freq: 1}},
		"ㄍㄨㄛˊㄇㄧㄣˊ": {{Text: "國民", Freq: 200}},
		"ㄉㄚˋㄏㄨㄟˋ":  {{Text: "大會", Freq: 200}},
		"ㄉㄞˋㄅㄧㄠˇ":  {{Text: "代表", Freq: 200}, {Text: "戴錶", Freq: 100}},
		"ㄒㄧㄣˉ":     {{Text: "心", Freq: 1}},
		"ㄎㄨˋㄧㄣˉ":   {{Text: "庫音", Freq: 300}},
		"ㄒㄧㄣˉㄎㄨˋ":  {{Text: "辛苦", Freq: 10}},
		"ㄒㄧㄣˉㄎㄨˋㄧㄣˉ": {
			{Text: "新酷音", Freq: 200},
		},
	}
}

func TestConvertSimpleChain(t *testing.T) {
	engine := NewChewingEngine(testDictionary(t))
	seq := &Sequence{
		Syllables: syllables(t, "ㄍㄨㄛˊ", "ㄇㄧㄣˊ", "ㄉㄚˋ", "ㄏㄨㄟˋ"),
	}
	intervals := engine.Convert(seq)
	if Render(intervals) != "國民大會" {
		t.Errorf("segmentation should read 國民大會, reads %q", Render(intervals))
	}
	if len(intervals) != 2 {
		t.Errorf("two two-character phrases expected, got %v", intervals)
	}
}

func TestConvertPrefersLongerPhrase(t *testing.T) {
	engine := NewChewingEngine(testDictionary(t))
	seq := &Sequence{
		Syllables: syllables(t, "ㄒㄧㄣˉ", "ㄎㄨˋ", "ㄧㄣˉ"),
	}
	intervals := engine.Convert(seq)
	if Render(intervals) != "新酷音" {
		t.Errorf("the three-character phrase should win, got %q", Render(intervals))
	}
}

func TestConvertHonoursSelection(t *testing.T) {
	engine := NewChewingEngine(testDictionary(t))
	seq := &Sequence{
		Syllables: syllables(t, "ㄉㄞˋ", "ㄅㄧㄠˇ"),
		Selections: []Interval{
			{Start: 0, End: 2, Phrase: "戴錶"},
		},
	}
	intervals := engine.Convert(seq)
	if Render(intervals) != "戴錶" {
		t.Errorf("the pinned phrase should win, got %q", Render(intervals))
	}
}

func TestConvertHonoursBreak(t *testing.T) {
	engine := NewChewingEngine(testDictionary(t))
	seq := &Sequence{
		Syllables: syllables(t, "ㄉㄞˋ", "ㄅㄧㄠˇ"),
		Breaks:    []Break{1},
	}
	intervals := engine.Convert(seq)
	if len(intervals) != 2 {
		t.Errorf("a break at 1 should force two intervals, got %v", intervals)
	}
	if Render(intervals) != "代表" {
		t.Errorf("the singles should be chosen, got %q", Render(intervals))
	}
}

func TestConvertSyllableWithoutWord(t *testing.T) {
	engine := NewChewingEngine(testDictionary(t))
	seq := &Sequence{
		Syllables: syllables(t, "ㄇㄚˉ"),
	}
	intervals := engine.Convert(seq)
	if len(intervals) != 1 || intervals[0].Phrase != "ㄇㄚˉ" {
		t.Errorf("a wordless syllable should stay visible as Zhuyin, got %v", intervals)
	}
}

func TestConvertDeterminism(t *testing.T) {
	engine := NewChewingEngine(testDictionary(t))
	seq := &Sequence{
		Syllables: syllables(t, "ㄍㄨㄛˊ", "ㄇㄧㄣˊ", "ㄉㄚˋ", "ㄏㄨㄟˋ", "ㄉㄞˋ", "ㄅㄧㄠˇ"),
	}
	first := engine.Convert(seq)
	for i := 0; i < 5; i++ {
		again := engine.Convert(seq)
		if len(again) != len(first) {
			t.Fatal("conversion is not deterministic")
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("conversion differs at interval #%d", j)
			}
		}
	}
}

func TestConvertNextCycles(t *testing.T) {
	engine := NewChewingEngine(testDictionary(t))
	seq := &Sequence{
		Syllables: syllables(t, "ㄒㄧㄣˉ", "ㄎㄨˋ", "ㄧㄣˉ"),
	}
	best := engine.ConvertNext(seq, 0)
	if Render(best) != "新酷音" {
		t.Fatalf("alternative 0 should be the best segmentation, is %q", Render(best))
	}
	alt := engine.ConvertNext(seq, 1)
	if Render(alt) == Render(best) {
		t.Error("alternative 1 should differ from the best segmentation")
	}
	if alt[0].End == best[0].End {
		t.Error("alternatives should differ in the leading phrase length")
	}
	// cycling wraps around
	count := 1
	for i := 1; ; i++ {
		next := engine.ConvertNext(seq, i)
		if Render(next) == Render(best) && next[0].End == best[0].End {
			break
		}
		count++
		if i > 10 {
			t.Fatal("alternatives should cycle back to the best segmentation")
		}
	}
	if count < 2 {
		t.Error("there should be at least two alternatives")
	}
}

func TestCandidatesAtPosition(t *testing.T) {
	engine := NewChewingEngine(testDictionary(t))
	seq := &Sequence{
		Syllables: syllables(t, "ㄉㄞˋ", "ㄅㄧㄠˇ"),
	}
	candidates := engine.Candidates(seq, 0, false)
	if len(candidates) != 3 {
		t.Fatalf("代,代表,戴錶 expected, got %v", candidates)
	}
	if candidates[0].Phrase.Text != "代表" {
		t.Errorf("the most frequent candidate should rank first, first is %v", candidates[0])
	}
	// rearward enumeration at the last position finds the same phrases
	rear := engine.Candidates(seq, 1, true)
	found := false
	for _, cand := range rear {
		if cand.Phrase.Text == "代表" && cand.Start == 0 && cand.End == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("rearward candidates at 1 should include 代表 over [0,2), got %v", rear)
	}
}

func TestWordCandidatesUnion(t *testing.T) {
	d := testDictionary(t)
	d["ㄋㄚˉ"] = []dict.Phrase{{Text: "那", Freq: 60}}
	d["ㄋㄧˇ"] = []dict.Phrase{{Text: "你", Freq: 90}}
	engine := NewChewingEngine(d)
	na := syllables(t, "ㄋㄚˉ")[0]
	ni := syllables(t, "ㄋㄧˇ")[0]
	words := engine.WordCandidates(na, ni)
	if len(words) != 2 {
		t.Fatalf("union should contain both readings' words, got %v", words)
	}
	if words[0].Text != "那" {
		t.Errorf("the primary reading's word should come first, got %v", words)
	}
}
