package phonetic

import "github.com/npillmayer/zhuyin"

// The translation tables for the romanised layouts. Ambiguous
// romanisations map to a primary and an alternative reading; the
// variant tables override the shared one per romanisation system.

type ambiguousEntry struct {
	pinyin  string
	primary zhuyin.Syllable
	alt     zhuyin.Syllable
}

type initialEntry struct {
	pinyin  string
	initial zhuyin.Bopomofo
}

type finalEntry struct {
	pinyin string
	medial zhuyin.Bopomofo
	final  zhuyin.Bopomofo
}

// syl packs a sequence of symbols into a (toneless) syllable.
func syl(parts ...zhuyin.Bopomofo) zhuyin.Syllable {
	var s zhuyin.Syllable
	for _, part := range parts {
		s = s.Update(part)
	}
	return s
}

var commonMapping = []ambiguousEntry{
	// Special cases for Wade-Giles
	{"tzu", syl(zhuyin.Z), syl(zhuyin.Z, zhuyin.U)},
	{"ssu", syl(zhuyin.S), syl(zhuyin.S, zhuyin.U)},
	{"szu", syl(zhuyin.S), syl(zhuyin.S, zhuyin.U)},
	// Common multiple mappings
	{"e", syl(zhuyin.E), syl(zhuyin.EH)},
	{"ch", syl(zhuyin.CH), syl(zhuyin.Q)},
	{"sh", syl(zhuyin.SH), syl(zhuyin.X)},
	{"c", syl(zhuyin.C), syl(zhuyin.Q)},
	{"s", syl(zhuyin.S), syl(zhuyin.X)},
	{"nu", syl(zhuyin.N, zhuyin.U), syl(zhuyin.N, zhuyin.IU)},
	{"lu", syl(zhuyin.L, zhuyin.U), syl(zhuyin.L, zhuyin.IU)},
	{"luan", syl(zhuyin.L, zhuyin.U, zhuyin.AN), syl(zhuyin.L, zhuyin.IU, zhuyin.AN)},
	{"niu", syl(zhuyin.N, zhuyin.I, zhuyin.OU), syl(zhuyin.N, zhuyin.IU)},
	{"liu", syl(zhuyin.L, zhuyin.I, zhuyin.OU), syl(zhuyin.L, zhuyin.IU)},
	{"jiu", syl(zhuyin.J, zhuyin.I, zhuyin.OU), syl(zhuyin.J, zhuyin.IU)},
	{"chiu", syl(zhuyin.Q, zhuyin.I, zhuyin.OU), syl(zhuyin.Q, zhuyin.IU)},
	{"shiu", syl(zhuyin.X, zhuyin.I, zhuyin.OU), syl(zhuyin.X, zhuyin.IU)},
	{"ju", syl(zhuyin.J, zhuyin.IU), syl(zhuyin.ZH, zhuyin.U)},
	{"juan", syl(zhuyin.J, zhuyin.IU, zhuyin.AN), syl(zhuyin.ZH, zhuyin.U, zhuyin.AN)},
}

var hanyuPinyinMapping = []ambiguousEntry{
	{"chi", syl(zhuyin.CH), syl(zhuyin.Q, zhuyin.I)},
	{"shi", syl(zhuyin.SH), syl(zhuyin.X, zhuyin.I)},
	{"ci", syl(zhuyin.C), syl(zhuyin.Q, zhuyin.I)},
	{"si", syl(zhuyin.S), syl(zhuyin.X, zhuyin.I)},
}

var thlPinyinMapping = []ambiguousEntry{
	{"chi", syl(zhuyin.Q, zhuyin.I), syl(zhuyin.CH)},
	{"shi", syl(zhuyin.X, zhuyin.I), syl(zhuyin.SH)},
	{"ci", syl(zhuyin.Q, zhuyin.I), syl(zhuyin.C)},
	{"si", syl(zhuyin.X, zhuyin.I), syl(zhuyin.S)},
}

var mps2PinyinMapping = []ambiguousEntry{
	{"chi", syl(zhuyin.Q, zhuyin.I), syl(zhuyin.CH)},
	{"shi", syl(zhuyin.X, zhuyin.I), syl(zhuyin.SH)},
	{"ci", syl(zhuyin.Q, zhuyin.I), syl(zhuyin.C)},
	{"si", syl(zhuyin.X, zhuyin.I), syl(zhuyin.S)},
	{"niu", syl(zhuyin.N, zhuyin.IU), syl(zhuyin.N, zhuyin.I, zhuyin.OU)},
	{"liu", syl(zhuyin.L, zhuyin.IU), syl(zhuyin.L, zhuyin.I, zhuyin.OU)},
	{"jiu", syl(zhuyin.J, zhuyin.IU), syl(zhuyin.J, zhuyin.I, zhuyin.OU)},
	{"chiu", syl(zhuyin.Q, zhuyin.IU), syl(zhuyin.Q, zhuyin.I, zhuyin.OU)},
	{"shiu", syl(zhuyin.X, zhuyin.IU), syl(zhuyin.X, zhuyin.I, zhuyin.OU)},
	{"ju", syl(zhuyin.ZH, zhuyin.U), syl(zhuyin.J, zhuyin.IU)},
	{"juan", syl(zhuyin.ZH, zhuyin.U, zhuyin.AN), syl(zhuyin.J, zhuyin.IU, zhuyin.AN)},
	{"juen", syl(zhuyin.ZH, zhuyin.U, zhuyin.EN), syl(zhuyin.J, zhuyin.IU, zhuyin.EN)},
	{"tzu", syl(zhuyin.Z, zhuyin.U), syl(zhuyin.Z)},
}

// initialMapping is consulted front to back; digraphs precede their
// single letter prefixes.
var initialMapping = []initialEntry{
	{"tz", zhuyin.Z},
	{"b", zhuyin.B},
	{"p", zhuyin.P},
	{"m", zhuyin.M},
	{"f", zhuyin.F},
	{"d", zhuyin.D},
	{"ts", zhuyin.C},
	{"t", zhuyin.T},
	{"n", zhuyin.N},
	{"l", zhuyin.L},
	{"g", zhuyin.G},
	{"k", zhuyin.K},
	{"hs", zhuyin.X},
	{"h", zhuyin.H},
	{"jh", zhuyin.ZH},
	{"j", zhuyin.J},
	{"q", zhuyin.Q},
	{"x", zhuyin.X},
	{"zh", zhuyin.ZH},
	{"ch", zhuyin.CH},
	{"sh", zhuyin.SH},
	{"r", zhuyin.R},
	{"z", zhuyin.Z},
	{"c", zhuyin.C},
	{"s", zhuyin.S},
}

// finalMapping is searched for the entry equal to the whole remainder of
// the romanisation.
var finalMapping = []finalEntry{
	{"uang", zhuyin.U, zhuyin.ANG},
	{"wang", zhuyin.U, zhuyin.ANG},
	{"weng", zhuyin.U, zhuyin.ENG},
	{"wong", zhuyin.U, zhuyin.ENG},
	{"ying", zhuyin.I, zhuyin.ENG},
	{"yung", zhuyin.IU, zhuyin.ENG},
	{"yong", zhuyin.IU, zhuyin.ENG},
	{"iung", zhuyin.IU, zhuyin.ENG},
	{"iong", zhuyin.IU, zhuyin.ENG},
	{"iang", zhuyin.I, zhuyin.ANG},
	{"yang", zhuyin.I, zhuyin.ANG},
	{"yuan", zhuyin.IU, zhuyin.AN},
	{"iuan", zhuyin.IU, zhuyin.AN},
	{"ing", zhuyin.I, zhuyin.ENG},
	{"iao", zhuyin.I, zhuyin.AU},
	{"iau", zhuyin.I, zhuyin.AU},
	{"yao", zhuyin.I, zhuyin.AU},
	{"yau", zhuyin.I, zhuyin.AU},
	{"yun", zhuyin.IU, zhuyin.EN},
	{"iun", zhuyin.IU, zhuyin.EN},
	{"vn", zhuyin.IU, zhuyin.EN},
	{"iou", zhuyin.I, zhuyin.OU},
	{"iu", zhuyin.I, zhuyin.OU},
	{"you", zhuyin.I, zhuyin.OU},
	{"io", zhuyin.I, zhuyin.O},
	{"yo", zhuyin.I, zhuyin.O},
	{"ian", zhuyin.I, zhuyin.AN},
	{"ien", zhuyin.I, zhuyin.AN},
	{"yan", zhuyin.I, zhuyin.AN},
	{"yen", zhuyin.I, zhuyin.AN},
	{"yin", zhuyin.I, zhuyin.EN},
	{"ang", 0, zhuyin.ANG},
	{"eng", 0, zhuyin.ENG},
	{"uei", zhuyin.U, zhuyin.EI},
	{"ui", zhuyin.U, zhuyin.EI},
	{"wei", zhuyin.U, zhuyin.EI},
	{"uen", zhuyin.U, zhuyin.EN},
	{"yueh", zhuyin.IU, zhuyin.EH},
	{"yue", zhuyin.IU, zhuyin.EH},
	{"iue", zhuyin.IU, zhuyin.EH},
	{"ueh", zhuyin.IU, zhuyin.EH},
	{"ue", zhuyin.IU, zhuyin.EH},
	{"ve", zhuyin.IU, zhuyin.EH},
	{"uai", zhuyin.U, zhuyin.AI},
	{"wai", zhuyin.U, zhuyin.AI},
	{"uan", zhuyin.U, zhuyin.AN},
	{"wan", zhuyin.U, zhuyin.AN},
	{"un", zhuyin.U, zhuyin.EN},
	{"wen", zhuyin.U, zhuyin.EN},
	{"wun", zhuyin.U, zhuyin.EN},
	{"ung", zhuyin.U, zhuyin.ENG},
	{"ong", zhuyin.U, zhuyin.ENG},
	{"van", zhuyin.IU, zhuyin.AN},
	{"er", 0, zhuyin.ER},
	{"ai", 0, zhuyin.AI},
	{"ei", 0, zhuyin.EI},
	{"ao", 0, zhuyin.AU},
	{"au", 0, zhuyin.AU},
	{"ou", 0, zhuyin.OU},
	{"an", 0, zhuyin.AN},
	{"en", 0, zhuyin.EN},
	{"yi", 0, zhuyin.I},
	{"ia", zhuyin.I, zhuyin.A},
	{"ya", zhuyin.I, zhuyin.A},
	{"ieh", zhuyin.I, zhuyin.EH},
	{"ie", zhuyin.I, zhuyin.EH},
	{"yeh", zhuyin.I, zhuyin.EH},
	{"ye", zhuyin.I, zhuyin.EH},
	{"in", zhuyin.I, zhuyin.EN},
	{"wu", zhuyin.U, 0},
	{"ua", zhuyin.U, zhuyin.A},
	{"wa", zhuyin.U, zhuyin.A},
	{"uo", zhuyin.U, zhuyin.O},
	{"wo", zhuyin.U, zhuyin.O},
	{"yu", zhuyin.IU, 0},
	{"ih", 0, 0},
	{"a", 0, zhuyin.A},
	{"o", 0, zhuyin.O},
	{"eh", 0, zhuyin.EH},
	{"e", 0, zhuyin.E},
	{"v", zhuyin.IU, 0},
	{"i", zhuyin.I, 0},
	{"u", zhuyin.U, 0},
	{"n", 0, zhuyin.EN},
	{"ng", 0, zhuyin.ENG},
	{"r", 0, 0},
	{"z", 0, 0},
}
