package userphrase

import (
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

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uhash.dat")
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	return store, path
}

func TestAddAndLookup(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Close()
	seq := []zhuyin.Syllable{mustParse(t, "ㄘㄜˋ"), mustParse(t, "ㄕˋ")}
	if err := store.Add(seq, "測試", 9000); err != nil {
		t.Fatal(err)
	}
	phrases := store.LookupPhrases(seq)
	if len(phrases) != 1 || phrases[0].Text != "測試" {
		t.Fatalf("lookup should find 測試, finds %v", phrases)
	}
	if phrases[0].Freq != 9000 {
		t.Errorf("a fresh phrase should carry its original frequency, carries %d", phrases[0].Freq)
	}
}

func TestBumpRaisesFrequency(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Close()
	clock := int64(1000000)
	store.now = func() int64 { return clock }
	seq := []zhuyin.Syllable{mustParse(t, "ㄋㄧˇ")}
	if err := store.Add(seq, "你", 400); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		clock++
		if err := store.BumpFrequency(seq, "你", 400); err != nil {
			t.Fatal(err)
		}
	}
	phrases := store.LookupPhrases(seq)
	if phrases[0].Freq != 403 {
		t.Errorf("three bumps should raise 400 to 403, is %d", phrases[0].Freq)
	}
}

func TestAgingBounds(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Close()
	clock := int64(1000000)
	store.now = func() int64 { return clock }
	seq := []zhuyin.Syllable{mustParse(t, "ㄏㄠˇ")}
	store.Add(seq, "好", 100)
	for i := 0; i < 50; i++ {
		clock++
		store.BumpFrequency(seq, "好", 100)
	}
	rec := store.get(seq, "好")
	if f := effectiveFreq(rec, clock); f > rec.MaxFreq {
		t.Errorf("effective frequency %d must not exceed the maximum %d", f, rec.MaxFreq)
	}
	// after more than a half-life of silence the phrase is back at its
	// original frequency
	clock += HalfLifeSecs + 1
	if f := effectiveFreq(rec, clock); f != rec.OrigFreq {
		t.Errorf("an abandoned phrase should decay to %d, is at %d", rec.OrigFreq, f)
	}
	// halfway through, the surplus is halved
	mid := rec.Time + HalfLifeSecs/2
	want := rec.OrigFreq + (rec.MaxFreq-rec.OrigFreq)/2
	if f := effectiveFreq(rec, mid); f != want {
		t.Errorf("half-decayed frequency should be %d, is %d", want, f)
	}
}

func TestRemove(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Close()
	seq := []zhuyin.Syllable{mustParse(t, "ㄕˋ")}
	store.Add(seq, "是", 10)
	if err := store.Remove(seq, "是"); err != nil {
		t.Fatal(err)
	}
	if phrases := store.LookupPhrases(seq); len(phrases) != 0 {
		t.Errorf("a removed phrase must not be found, got %v", phrases)
	}
	// removing twice is a no-op
	if err := store.Remove(seq, "是"); err != nil {
		t.Error(err)
	}
}

func TestPersistence(t *testing.T) {
	store, path := openTestStore(t)
	seq := []zhuyin.Syllable{mustParse(t, "ㄋㄧˇ"), mustParse(t, "ㄏㄠˇ")}
	store.Add(seq, "你好", 5000)
	store.BumpFrequency(seq, "你好", 5000)
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	store2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store2.Close()
	rec := store2.get(seq, "你好")
	if rec == nil {
		t.Fatal("the phrase should survive a reopen")
	}
	if rec.OrigFreq != 5000 || rec.MaxFreq != 5001 {
		t.Errorf("frequency bookkeeping lost: orig %d max %d", rec.OrigFreq, rec.MaxFreq)
	}
}

func TestHasPrefix(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Close()
	ni := mustParse(t, "ㄋㄧˇ")
	hau := mustParse(t, "ㄏㄠˇ")
	store.Add([]zhuyin.Syllable{ni, hau}, "你好", 5000)
	if !store.HasPrefix([]zhuyin.Syllable{ni}) {
		t.Error("ㄋㄧˇ is a prefix of a stored phrase")
	}
	if store.HasPrefix([]zhuyin.Syllable{hau}) {
		t.Error("ㄏㄠˇ alone is not a prefix of any stored phrase")
	}
}

func TestWalk(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Close()
	ni := mustParse(t, "ㄋㄧˇ")
	hau := mustParse(t, "ㄏㄠˇ")
	store.Add([]zhuyin.Syllable{ni, hau}, "你好", 5000)
	walker := store.Walk()
	if !walker.Extend(ni) {
		t.Fatal("ㄋㄧˇ is a prefix of a stored phrase and should extend")
	}
	if phrases := walker.Phrases(); len(phrases) != 0 {
		t.Errorf("no phrase matches ㄋㄧˇ exactly, got %v", phrases)
	}
	if !walker.Extend(hau) {
		t.Fatal("ㄋㄧˇ ㄏㄠˇ should extend")
	}
	if phrases := walker.Phrases(); len(phrases) != 1 || phrases[0].Text != "你好" {
		t.Errorf("the walk should see 你好, sees %v", phrases)
	}
	if walker.Extend(ni) {
		t.Error("no stored phrase continues past 你好")
	}
}

func TestExclusiveLock(t *testing.T) {
	store, path := openTestStore(t)
	defer store.Close()
	if _, err := Open(path); err != ErrStoreBusy {
		t.Errorf("a second writer should be rejected with ErrStoreBusy, got %v", err)
	}
	if _, err := OpenReadOnly(path); err != ErrStoreBusy {
		t.Errorf("a reader should be blocked while a writer is active, got %v", err)
	}
}

func TestSharedReaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uhash.dat")
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	store.Add([]zhuyin.Syllable{mustParse(t, "ㄕˋ")}, "是", 10)
	store.Close()

	r1, err := OpenReadOnly(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r1.Close()
	r2, err := OpenReadOnly(path)
	if err != nil {
		t.Fatalf("two readers should share the store, second got %v", err)
	}
	defer r2.Close()
	if err := r1.Add([]zhuyin.Syllable{mustParse(t, "ㄕˋ")}, "市", 10); err != ErrStoreReadOnly {
		t.Errorf("writes on a read-only store should fail with ErrStoreReadOnly, got %v", err)
	}
}

func TestCompaction(t *testing.T) {
	store, path := openTestStore(t)
	seq := []zhuyin.Syllable{mustParse(t, "ㄏㄠˇ")}
	store.Add(seq, "好", 100)
	for i := 0; i < 20; i++ {
		store.BumpFrequency(seq, "好", 100)
	}
	if store.logged <= 2*store.live {
		t.Fatal("test setup should exceed the compaction threshold")
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	store2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store2.Close()
	if store2.logged > 2 {
		t.Errorf("the compacted log should hold at most 2 records per phrase, holds %d", store2.logged)
	}
	if rec := store2.get(seq, "好"); rec == nil || rec.OrigFreq != 100 {
		t.Error("compaction must preserve the record")
	}
}
