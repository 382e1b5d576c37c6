package dict

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/zhuyin"
)

func mustParse(t *testing.T, s string) zhuyin.Syllable {
	t.Helper()
	syl, err := zhuyin.ParseSyllable(s)
	if err != nil {
		t.Fatal(err)
	}
	return syl
}

func buildTestTree(t *testing.T) *Tree {
	t.Helper()
	builder := NewBuilder()
	ce4 := mustParse(t, "ㄘㄜˋ")
	ni3 := mustParse(t, "ㄋㄧˇ")
	hau3 := mustParse(t, "ㄏㄠˇ")
	shi4 := mustParse(t, "ㄕˋ")
	entries := []struct {
		seq  []zhuyin.Syllable
		text string
		freq uint32
	}{
		{[]zhuyin.Syllable{ce4}, "冊", 100},
		{[]zhuyin.Syllable{ce4}, "測", 500},
		{[]zhuyin.Syllable{ce4}, "側", 500},
		{[]zhuyin.Syllable{ni3}, "你", 4000},
		{[]zhuyin.Syllable{hau3}, "好", 3000},
		{[]zhuyin.Syllable{shi4}, "是", 9000},
		{[]zhuyin.Syllable{ni3, hau3}, "你好", 5284},
		{[]zhuyin.Syllable{ce4, shi4}, "測試", 9318},
	}
	for _, e := range entries {
		if err := builder.Insert(e.seq, e.text, e.freq); err != nil {
			t.Fatal(err)
		}
	}
	dir := t.TempDir()
	treePath := filepath.Join(dir, "fonetree.dat")
	dictPath := filepath.Join(dir, "dict.dat")
	if err := builder.WriteFiles(treePath, dictPath); err != nil {
		t.Fatal(err)
	}
	tree, err := Load(treePath, dictPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { tree.Close() })
	return tree
}

func TestTreeRoundtrip(t *testing.T) {
	tree := buildTestTree(t)
	if n := tree.PhraseCount(); n != 8 {
		t.Errorf("phrase count should be 8, is %d", n)
	}
	phrases := tree.LookupPhrases([]zhuyin.Syllable{mustParse(t, "ㄋㄧˇ"), mustParse(t, "ㄏㄠˇ")})
	if len(phrases) != 1 || phrases[0].Text != "你好" || phrases[0].Freq != 5284 {
		t.Errorf("ㄋㄧˇ ㄏㄠˇ should find 你好/5284, finds %v", phrases)
	}
}

func TestTreeOrdering(t *testing.T) {
	tree := buildTestTree(t)
	words := tree.WordsFor(mustParse(t, "ㄘㄜˋ"))
	if len(words) != 3 {
		t.Fatalf("ㄘㄜˋ should have 3 words, has %d", len(words))
	}
	// descending frequency; the tie between 測 and 側 resolved by
	// arena order, i.e. insertion order
	want := []string{"測", "側", "冊"}
	for i, text := range want {
		if words[i].Text != text {
			t.Errorf("word #%d should be %s, is %s", i, text, words[i].Text)
		}
	}
}

func TestTreePrefixMiss(t *testing.T) {
	tree := buildTestTree(t)
	missing := mustParse(t, "ㄇㄚˉ")
	if phrases := tree.LookupPhrases([]zhuyin.Syllable{missing}); phrases != nil {
		t.Errorf("unknown syllable should find nothing, finds %v", phrases)
	}
	if _, ok := tree.Descend([]zhuyin.Syllable{missing}); ok {
		t.Error("unknown syllable should have no subtree")
	}
	// a known prefix without a phrase of that exact length
	ce4 := mustParse(t, "ㄘㄜˋ")
	if _, ok := tree.Descend([]zhuyin.Syllable{ce4}); !ok {
		t.Error("ㄘㄜˋ should have a subtree")
	}
}

func TestTreeDeterminism(t *testing.T) {
	tree := buildTestTree(t)
	seq := []zhuyin.Syllable{mustParse(t, "ㄘㄜˋ")}
	first := tree.LookupPhrases(seq)
	second := tree.LookupPhrases(seq)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("lookup is not deterministic at #%d", i)
		}
	}
}

func TestTreeChildren(t *testing.T) {
	tree := buildTestTree(t)
	node, ok := tree.Descend([]zhuyin.Syllable{mustParse(t, "ㄘㄜˋ")})
	if !ok {
		t.Fatal("ㄘㄜˋ should have a subtree")
	}
	leaves, internals := 0, 0
	for it := tree.Children(node); it.Next(); {
		if it.IsLeaf() {
			if internals > 0 {
				t.Error("leaves must sort in front of internal children")
			}
			leaves++
		} else {
			if !it.Key().HasTone() {
				t.Errorf("internal child carries a toneless key %s", it.Key())
			}
			internals++
		}
	}
	// three words under ㄘㄜˋ plus the subtree towards 測試
	if leaves != 3 || internals != 1 {
		t.Errorf("ㄘㄜˋ should have 3 leaves and 1 internal child, has %d/%d", leaves, internals)
	}
}

func TestTreeWalk(t *testing.T) {
	tree := buildTestTree(t)
	walker := tree.Walk()
	if phrases := walker.Phrases(); phrases != nil {
		t.Errorf("the empty prefix matches no phrase, got %v", phrases)
	}
	if !walker.Extend(mustParse(t, "ㄘㄜˋ")) {
		t.Fatal("ㄘㄜˋ is a prefix and should extend")
	}
	if phrases := walker.Phrases(); len(phrases) != 3 || phrases[0].Text != "測" {
		t.Errorf("one-syllable walk should see the 3 words, sees %v", phrases)
	}
	if !walker.Extend(mustParse(t, "ㄕˋ")) {
		t.Fatal("ㄘㄜˋ ㄕˋ is a prefix and should extend")
	}
	if phrases := walker.Phrases(); len(phrases) != 1 || phrases[0].Text != "測試" {
		t.Errorf("two-syllable walk should see 測試, sees %v", phrases)
	}
	if walker.Extend(mustParse(t, "ㄕˋ")) {
		t.Error("a dead prefix must not extend")
	}
	if phrases := walker.Phrases(); phrases != nil {
		t.Errorf("a dead walk matches nothing, got %v", phrases)
	}
}

func TestLayeredWalk(t *testing.T) {
	tree := buildTestTree(t)
	ce4 := mustParse(t, "ㄘㄜˋ")
	user := mapDict{"ㄘㄜˋ": {{"冊", 700}}}
	layered := &Layered{System: tree, User: user}
	walker := layered.Walk()
	if !walker.Extend(ce4) {
		t.Fatal("ㄘㄜˋ should extend in the layered walk")
	}
	phrases := walker.Phrases()
	if len(phrases) != 3 {
		t.Fatalf("merged walk should see 3 words, sees %v", phrases)
	}
	if phrases[0].Text != "冊" || phrases[0].Freq != 700 {
		t.Errorf("the user entry should win and rank first, first is %v", phrases[0])
	}
}

func TestLoadRejectsTruncatedTree(t *testing.T) {
	dir := t.TempDir()
	treePath := filepath.Join(dir, "fonetree.dat")
	dictPath := filepath.Join(dir, "dict.dat")
	if err := os.WriteFile(treePath, []byte{1, 2, 3}, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dictPath, []byte("x\x00"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(treePath, dictPath); err == nil {
		t.Error("a truncated tree file should not load")
	}
}

func TestBuilderRejections(t *testing.T) {
	builder := NewBuilder()
	ce4 := mustParse(t, "ㄘㄜˋ")
	if err := builder.Insert([]zhuyin.Syllable{ce4}, "冊冊", 1); err == nil {
		t.Error("length mismatch should be rejected")
	}
	if err := builder.Insert([]zhuyin.Syllable{ce4}, "冊", 1<<24); err == nil {
		t.Error("frequencies beyond 24 bits should be rejected")
	}
	toneless, _ := zhuyin.ParseSyllable("ㄘㄜ")
	if err := builder.Insert([]zhuyin.Syllable{toneless}, "冊", 1); err == nil {
		t.Error("toneless syllables should be rejected")
	}
	if err := builder.Insert([]zhuyin.Syllable{ce4}, "冊", 1); err != nil {
		t.Fatal(err)
	}
	if err := builder.Insert([]zhuyin.Syllable{ce4}, "冊", 2); err == nil {
		t.Error("duplicate entries should be rejected")
	}
}

type mapDict map[string][]Phrase

func key(seq []zhuyin.Syllable) string {
	k := ""
	for _, s := range seq {
		k += s.String()
	}
	return k
}

func (d mapDict) LookupPhrases(seq []zhuyin.Syllable) []Phrase {
	return d[key(seq)]
}

func TestLayeredUserWins(t *testing.T) {
	ce4 := mustParse(t, "ㄘㄜˋ")
	system := mapDict{"ㄘㄜˋ": {{"測", 500}, {"冊", 100}}}
	user := mapDict{"ㄘㄜˋ": {{"冊", 700}}}
	layered := &Layered{System: system, User: user}
	phrases := layered.LookupPhrases([]zhuyin.Syllable{ce4})
	if len(phrases) != 2 {
		t.Fatalf("merge should yield 2 phrases, yields %d", len(phrases))
	}
	if phrases[0].Text != "冊" || phrases[0].Freq != 700 {
		t.Errorf("the user entry should win and rank first, first is %v", phrases[0])
	}
	if phrases[1].Text != "測" {
		t.Errorf("the remaining system entry should follow, second is %v", phrases[1])
	}
}

func TestLayeredWithoutUserStore(t *testing.T) {
	ce4 := mustParse(t, "ㄘㄜˋ")
	system := mapDict{"ㄘㄜˋ": {{"測", 500}}}
	layered := &Layered{System: system}
	if phrases := layered.LookupPhrases([]zhuyin.Syllable{ce4}); len(phrases) != 1 {
		t.Errorf("a missing user layer should fall through to the system, got %v", phrases)
	}
}
