package dict

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/gorgo/lr/scanner"
	"github.com/npillmayer/zhuyin"
)

// Token classes produced by the source scanner.
const (
	TokenPhrase int = iota + 1 // a run of Chinese characters
	TokenNumber                // a decimal frequency
	TokenZhuyin                // one Zhuyin syllable, tone included
	TokenNewline               // end of a source line
)

// SourceScanner tokenizes the textual dictionary source format: one
// phrase per line, as in
//
//	你好 5284 ㄋㄧˇ ㄏㄠˇ
//
// It implements the scanner.Tokenizer interface, reading runs of input
// as a unit as long as all runes therein belong to the same class.
type SourceScanner struct {
	runeScanner *bufio.Scanner
	lookahead   []byte
	pos         uint64
	ahead       uint64
	done        bool
}

// NewSourceScanner creates a scanner for dictionary source text.
func NewSourceScanner(input io.Reader) *SourceScanner {
	sc := &SourceScanner{}
	sc.runeScanner = bufio.NewScanner(input)
	sc.runeScanner.Split(bufio.ScanRunes)
	return sc
}

func classOf(r rune) int {
	switch {
	case r == '\n':
		return TokenNewline
	case r >= '0' && r <= '9':
		return TokenNumber
	case isZhuyinRune(r):
		return TokenZhuyin
	case unicode.Is(unicode.Han, r):
		return TokenPhrase
	}
	return 0 // whitespace and anything else separates tokens
}

func isZhuyinRune(r rune) bool {
	_, ok := zhuyin.FromRune(r)
	return ok
}

// NextToken reads the next run of input runes with identical class,
// returning its token class and lexeme. At the end of input it returns
// scanner.EOF.
//
// Interface scanner.Tokenizer.
func (sc *SourceScanner) NextToken(expected []int) (int, interface{}, uint64, uint64) {
	var lexeme []byte
	clz := 0
	for {
		atom := sc.lookahead
		if atom == nil {
			if !sc.runeScanner.Scan() {
				sc.done = true
				break
			}
			atom = append([]byte{}, sc.runeScanner.Bytes()...)
		}
		sc.lookahead = nil
		r, _ := utf8.DecodeRune(atom)
		c := classOf(r)
		if c == 0 { // separator
			if len(lexeme) > 0 {
				sc.lookahead = atom
				break
			}
			sc.pos += uint64(len(atom))
			continue
		}
		if len(lexeme) > 0 && c != clz {
			sc.lookahead = atom
			break
		}
		clz = c
		lexeme = append(lexeme, atom...)
		sc.ahead = sc.pos + uint64(len(lexeme))
		if c == TokenNewline {
			break
		}
	}
	if len(lexeme) == 0 {
		return scanner.EOF, "", sc.pos, 0
	}
	start := sc.pos
	sc.pos += uint64(len(lexeme))
	return clz, string(lexeme), start, uint64(len(lexeme))
}

// ParseSource reads dictionary source text and feeds every line into a
// builder. Malformed lines abort with an error naming the offending
// lexeme.
func ParseSource(input io.Reader, builder *Builder) error {
	sc := NewSourceScanner(input)
	var text string
	var freq uint64
	var haveFreq bool
	var seq []zhuyin.Syllable

	flush := func() error {
		if text == "" && !haveFreq && len(seq) == 0 {
			return nil
		}
		if text == "" || !haveFreq || len(seq) == 0 {
			return fmt.Errorf("incomplete dictionary source line for %q", text)
		}
		if err := builder.Insert(seq, text, uint32(freq)); err != nil {
			return err
		}
		text, haveFreq, seq = "", false, nil
		return nil
	}

	for {
		clz, token, _, _ := sc.NextToken(nil)
		if clz == scanner.EOF {
			return flush()
		}
		lexeme := token.(string)
		switch clz {
		case TokenPhrase:
			if text != "" {
				return fmt.Errorf("two phrases on one source line: %q and %q", text, lexeme)
			}
			text = lexeme
		case TokenNumber:
			n, err := strconv.ParseUint(lexeme, 10, 32)
			if err != nil || n > slot24Max {
				return fmt.Errorf("bad frequency %q", lexeme)
			}
			freq, haveFreq = n, true
		case TokenZhuyin:
			syl, err := zhuyin.ParseSyllable(lexeme)
			if err != nil {
				return fmt.Errorf("bad syllable %q: %w", lexeme, err)
			}
			seq = append(seq, syl)
		case TokenNewline:
			if err := flush(); err != nil {
				return err
			}
		}
	}
}
