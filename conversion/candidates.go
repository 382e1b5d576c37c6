package conversion

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/zhuyin"
	"github.com/npillmayer/zhuyin/dict"
)

// A Candidate is one phrase the user may pin over a span of the
// sequence.
type Candidate struct {
	Phrase dict.Phrase
	Start  int
	End    int
}

// candidateOrder sorts candidates for display: highest frequency first,
// longer phrases before shorter ones, then text, then position.
// Distinct candidates never compare equal.
func candidateOrder(a, b interface{}) int {
	ca, cb := a.(Candidate), b.(Candidate)
	if ca.Phrase.Freq != cb.Phrase.Freq {
		if ca.Phrase.Freq > cb.Phrase.Freq {
			return -1
		}
		return 1
	}
	la, lb := ca.End-ca.Start, cb.End-cb.Start
	if la != lb {
		return lb - la
	}
	if ca.Phrase.Text != cb.Phrase.Text {
		if ca.Phrase.Text < cb.Phrase.Text {
			return -1
		}
		return 1
	}
	return ca.Start - cb.Start
}

// Candidates enumerates the phrases available at a position,
// independent of the current segmentation. With rearward unset, spans
// start at pos; with rearward set, spans end just after pos. The result
// is ordered for display.
func (engine *ChewingEngine) Candidates(seq *Sequence, pos int, rearward bool) []Candidate {
	n := len(seq.Syllables)
	if pos < 0 || pos >= n {
		return nil
	}
	set := treeset.NewWith(candidateOrder)
	for length := 1; length <= dict.MaxPhraseLen; length++ {
		start, end := pos, pos+length
		if rearward {
			start, end = pos+1-length, pos+1
		}
		if start < 0 || end > n {
			break
		}
		span := seq.Syllables[start:end]
		for _, phrase := range engine.dict.LookupPhrases(span) {
			set.Add(Candidate{Phrase: phrase, Start: start, End: end})
		}
	}
	candidates := make([]Candidate, 0, set.Size())
	for _, item := range set.Values() {
		candidates = append(candidates, item.(Candidate))
	}
	tracer().Debugf("%d candidates at position %d", len(candidates), pos)
	return candidates
}

// WordCandidates lists the single-character phrases for one syllable,
// ordered by descending frequency. It widens the lookup with an
// alternative syllable reading when one is given.
func (engine *ChewingEngine) WordCandidates(syl, alt zhuyin.Syllable) []dict.Phrase {
	phrases := engine.dict.LookupPhrases([]zhuyin.Syllable{syl})
	if alt == 0 || alt == syl {
		return phrases
	}
	seen := make(map[string]bool, len(phrases))
	for _, phrase := range phrases {
		seen[phrase.Text] = true
	}
	for _, phrase := range engine.dict.LookupPhrases([]zhuyin.Syllable{alt}) {
		if !seen[phrase.Text] {
			phrases = append(phrases, phrase)
		}
	}
	return phrases
}
