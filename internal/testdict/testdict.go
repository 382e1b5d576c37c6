// Package testdict builds a miniature system dictionary for tests.
package testdict

import (
	"path/filepath"
	"testing"

	"github.com/npillmayer/zhuyin"
	"github.com/npillmayer/zhuyin/dict"
)

// An Entry is one phrase of the test dictionary.
type Entry struct {
	Zhuyin []string
	Text   string
	Freq   uint32
}

// Entries returns the canned phrase set: a handful of words and phrases
// around 你好 and 測試.
func Entries() []Entry {
	return []Entry{
		{[]string{"ㄘㄜˋ"}, "冊", 100},
		{[]string{"ㄘㄜˋ"}, "測", 500},
		{[]string{"ㄘㄜˋ"}, "側", 400},
		{[]string{"ㄕˋ"}, "是", 9000},
		{[]string{"ㄕˋ"}, "試", 500},
		{[]string{"ㄕˋ"}, "世", 300},
		{[]string{"ㄋㄧˇ"}, "你", 4000},
		{[]string{"ㄏㄠˇ"}, "好", 3000},
		{[]string{"ㄋㄚˋ"}, "那", 600},
		{[]string{"ㄋㄚˋ"}, "納", 200},
		{[]string{"ㄋㄧˇ", "ㄏㄠˇ"}, "你好", 5284},
		{[]string{"ㄘㄜˋ", "ㄕˋ"}, "測試", 9318},
		{[]string{"ㄕˋ", "ㄕˋ"}, "試試", 200},
	}
}

// Build compiles the canned entries into mapped dictionary files under
// a test temp dir and loads them. The tree is closed on test cleanup.
func Build(t testing.TB) *dict.Tree {
	t.Helper()
	builder := dict.NewBuilder()
	for _, entry := range Entries() {
		seq := make([]zhuyin.Syllable, len(entry.Zhuyin))
		for i, z := range entry.Zhuyin {
			syl, err := zhuyin.ParseSyllable(z)
			if err != nil {
				t.Fatal(err)
			}
			seq[i] = syl
		}
		if err := builder.Insert(seq, entry.Text, entry.Freq); err != nil {
			t.Fatal(err)
		}
	}
	dir := t.TempDir()
	treePath := filepath.Join(dir, "fonetree.dat")
	dictPath := filepath.Join(dir, "dict.dat")
	if err := builder.WriteFiles(treePath, dictPath); err != nil {
		t.Fatal(err)
	}
	tree, err := dict.Load(treePath, dictPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { tree.Close() })
	return tree
}
