package editor

import (
	jj "github.com/cloudfoundry/jibber_jabber"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// easySymbols maps ASCII punctuation to the CJK symbol entered in easy
// symbol mode.
var easySymbols = map[byte]string{
	'[':  "「",
	']':  "」",
	'{':  "『",
	'}':  "』",
	'(':  "（",
	')':  "）",
	'<':  "《",
	'>':  "》",
	',':  "，",
	'.':  "。",
	';':  "；",
	':':  "：",
	'?':  "？",
	'!':  "！",
	'\'': "、",
	'"':  "”",
	'-':  "—",
	'_':  "—",
	'\\': "＼",
	'/':  "／",
	'$':  "￥",
	'&':  "＆",
	'*':  "＊",
	'#':  "＃",
	'@':  "＠",
	'~':  "～",
	'^':  "︿",
}

// easySymbol returns the CJK symbol for an ASCII key, if one exists.
func easySymbol(ascii byte) (string, bool) {
	sym, ok := easySymbols[ascii]
	return sym, ok
}

// fullshape converts one ASCII character to its fullwidth form.
func fullshape(ascii byte) string {
	return width.Widen.String(string(rune(ascii)))
}

// eaMatch matches locales whose users expect fullwidth symbol input.
var eaMatch = language.NewMatcher([]language.Tag{
	language.Chinese, // the first language doubles as fallback
	language.Japanese,
	language.Korean,
})

// eastAsianLocale reports whether the process runs in an East Asian
// user locale. Detection failures default to false.
func eastAsianLocale() bool {
	userLocale, err := jj.DetectIETF()
	if err != nil {
		tracer().Infof("locale detection failed, assuming non-CJK: %v", err)
		return false
	}
	tracer().Debugf("detected user locale %v", userLocale)
	_, _, confidence := eaMatch.Match(language.Make(userLocale))
	return confidence != language.No
}
