package preedit

import (
	"testing"

	"github.com/npillmayer/zhuyin"
)

func sylOf(t *testing.T, s string) zhuyin.Syllable {
	t.Helper()
	syl, err := zhuyin.ParseSyllable(s)
	if err != nil {
		t.Fatal(err)
	}
	return syl
}

func TestInsertAtCursor(t *testing.T) {
	b := New(10)
	b.Insert(Phone(sylOf(t, "ㄋㄧˇ")))
	b.Insert(Phone(sylOf(t, "ㄏㄠˇ")))
	if b.Len() != 2 || b.Cursor() != 2 {
		t.Fatalf("two inserts should leave len=2 cursor=2, have %d/%d", b.Len(), b.Cursor())
	}
	b.SetCursor(1)
	b.Insert(Char("，", OriginDirect))
	if b.String() != "ㄋㄧˇ，ㄏㄠˇ" {
		t.Errorf("insert should happen at the cursor, buffer is %s", b)
	}
	if b.Cursor() != 2 {
		t.Errorf("cursor should advance past the inserted symbol, is %d", b.Cursor())
	}
}

func TestCapacity(t *testing.T) {
	b := New(2)
	if !b.Insert(Phone(sylOf(t, "ㄕˋ"))) || !b.Insert(Phone(sylOf(t, "ㄕˋ"))) {
		t.Fatal("inserts below capacity should succeed")
	}
	if b.Insert(Phone(sylOf(t, "ㄕˋ"))) {
		t.Error("insert beyond capacity should be rejected")
	}
	if b.Len() != 2 {
		t.Errorf("rejected insert must not grow the buffer, len is %d", b.Len())
	}
}

func TestCapacityClamping(t *testing.T) {
	if c := New(0).Capacity(); c != DefaultCapacity {
		t.Errorf("capacity 0 should fall back to the default, is %d", c)
	}
	if c := New(100).Capacity(); c != MaxCapacity {
		t.Errorf("capacity 100 should clamp to the ceiling, is %d", c)
	}
}

func TestDeleteBeforeAndAfter(t *testing.T) {
	b := New(10)
	b.Insert(Phone(sylOf(t, "ㄋㄧˇ")))
	b.Insert(Phone(sylOf(t, "ㄏㄠˇ")))
	b.SetCursor(1)
	if !b.DeleteAfter() {
		t.Fatal("delete after cursor 1 should remove the second symbol")
	}
	if b.Len() != 1 || b.At(0).Syl != sylOf(t, "ㄋㄧˇ") {
		t.Errorf("wrong symbol removed, buffer is %s", b)
	}
	if !b.DeleteBefore() {
		t.Fatal("delete before cursor 1 should remove the first symbol")
	}
	if b.Len() != 0 || b.Cursor() != 0 {
		t.Errorf("buffer should be empty with cursor 0, is %d/%d", b.Len(), b.Cursor())
	}
	if b.DeleteBefore() || b.DeleteAfter() {
		t.Error("deletes on an empty buffer should report false")
	}
}

func TestSplitAt(t *testing.T) {
	b := New(10)
	b.Insert(Phone(sylOf(t, "ㄘㄜˋ")))
	b.Insert(Phone(sylOf(t, "ㄕˋ")))
	b.Insert(Phone(sylOf(t, "ㄋㄧˇ")))
	head := b.SplitAt(2)
	if len(head) != 2 || head[0].Syl != sylOf(t, "ㄘㄜˋ") {
		t.Fatalf("split should drain the first two symbols, drained %v", head)
	}
	if b.Len() != 1 || b.Cursor() != 1 {
		t.Errorf("remainder should be 1 symbol with cursor 1, is %d/%d", b.Len(), b.Cursor())
	}
}

func TestSyllableExtraction(t *testing.T) {
	b := New(10)
	b.Insert(Phone(sylOf(t, "ㄋㄧˇ")))
	b.Insert(Char("！", OriginFullwidth))
	b.Insert(Phone(sylOf(t, "ㄏㄠˇ")))
	syls, positions := b.Syllables()
	if len(syls) != 2 || positions[0] != 0 || positions[1] != 2 {
		t.Errorf("extraction should find syllables at 0 and 2, finds %v at %v", syls, positions)
	}
}
