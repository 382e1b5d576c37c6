package conversion

import (
	"sort"
	"strings"

	"github.com/npillmayer/zhuyin"
	"github.com/npillmayer/zhuyin/dict"
)

// ChewingEngine is the dictionary-driven phrase chooser.
type ChewingEngine struct {
	dict dict.Dictionary
}

// NewChewingEngine creates a chooser over a dictionary, typically a
// dict.Layered merging the system dictionary with the user store.
func NewChewingEngine(d dict.Dictionary) *ChewingEngine {
	return &ChewingEngine{dict: d}
}

// possibleInterval is a candidate span with the phrase chosen for it.
type possibleInterval struct {
	start, end int
	phrase     dict.Phrase
}

// chainRecord is one cell of the DP table: the best interval chain
// known to end at this position.
type chainRecord struct {
	intervals []int // indexes into the candidate interval list
	score     int
	valid     bool
}

// crossesBreak is true when a break point falls strictly inside the
// span, forbidding the run.
func crossesBreak(start, end int, breaks []Break) bool {
	for _, br := range breaks {
		if int(br) > start && int(br) < end {
			return true
		}
	}
	return false
}

// choosePhrase picks the highest-frequency candidate for the span
// [start, end), honouring user selections. It returns ok = false when
// no phrase satisfies the constraints.
func choosePhrase(start, end int, phrases []dict.Phrase,
	selections []Interval) (dict.Phrase, bool) {
	//
	var best dict.Phrase
	found := false
nextPhrase:
	for _, phrase := range phrases {
		// If a user selection is a sub-interval of this span but the
		// phrase text disagrees there, the phrase is unusable.
		for _, sel := range selections {
			if start <= sel.Start && end >= sel.End {
				runes := []rune(phrase.Text)
				offset := sel.Start - start
				length := sel.End - sel.Start
				if offset+length > len(runes) {
					continue nextPhrase
				}
				if string(runes[offset:offset+length]) != sel.Phrase {
					continue nextPhrase
				}
			}
		}
		if !found || phrase.Freq > best.Freq {
			best = phrase
			found = true
		}
	}
	return best, found
}

// bestPhrase picks the highest-frequency phrase for the span
// [start, start+len(syls)), honouring selections and breaks.
func (engine *ChewingEngine) bestPhrase(start int, syls []zhuyin.Syllable,
	selections []Interval, breaks []Break) (dict.Phrase, bool) {
	//
	end := start + len(syls)
	if crossesBreak(start, end, breaks) {
		return dict.Phrase{}, false
	}
	return choosePhrase(start, end, engine.dict.LookupPhrases(syls), selections)
}

// findIntervals enumerates every span with a usable phrase. One
// incremental dictionary walk per span start keeps the enumeration at
// one descent per position rather than one per span length. Spans whose
// single syllable has no dictionary word get a synthetic interval
// showing the syllable itself, so that a segmentation always covers the
// whole sequence.
func (engine *ChewingEngine) findIntervals(seq *Sequence) []possibleInterval {
	n := len(seq.Syllables)
	var intervals []possibleInterval
	for begin := 0; begin < n; begin++ {
		covered := false
		maxEnd := begin + dict.MaxPhraseLen
		if maxEnd > n {
			maxEnd = n
		}
		walker := dict.NewWalker(engine.dict)
		for end := begin + 1; end <= maxEnd; end++ {
			if crossesBreak(begin, end, seq.Breaks) {
				break // every longer span crosses the break too
			}
			if !walker.Extend(seq.Syllables[end-1]) {
				break
			}
			if phrase, ok := choosePhrase(begin, end, walker.Phrases(), seq.Selections); ok {
				intervals = append(intervals, possibleInterval{begin, end, phrase})
				if end == begin+1 {
					covered = true
				}
			}
		}
		if !covered {
			// no word for this syllable: keep it visible as Zhuyin
			intervals = append(intervals, possibleInterval{
				begin, begin + 1,
				dict.Phrase{Text: seq.Syllables[begin].String()},
			})
		}
	}
	return intervals
}

// dpPhrasing picks the highest-scoring interval chain covering the
// sequence.
//
// Assume P(0,y) is the best phrasing of the prefix ending at y. Then
//
//	P(0,y) = MAX over intervals [x,y) of score(P(0,x) + [x,y))
//
// Scores combine four rules with fixed weights; see the rule functions.
func (engine *ChewingEngine) dpPhrasing(n int, intervals []possibleInterval) []Interval {
	// the chain extension step relies on intervals ordered by end
	sort.SliceStable(intervals, func(i, j int) bool {
		if intervals[i].end != intervals[j].end {
			return intervals[i].end < intervals[j].end
		}
		return intervals[i].start < intervals[j].start
	})

	scratch := borrowScratch(n)
	defer releaseScratch(scratch)
	chains := scratch.records
	chains[0].valid = true

	for inx, interval := range intervals {
		if !chains[interval.start].valid {
			continue
		}
		record := chainRecord{
			intervals: append(append([]int{}, chains[interval.start].intervals...), inx),
			valid:     true,
		}
		record.score = engine.score(record.intervals, intervals)
		if !chains[interval.end].valid || chains[interval.end].score < record.score {
			chains[interval.end] = record
		}
	}

	best := chains[n]
	result := make([]Interval, 0, len(best.intervals))
	for _, inx := range best.intervals {
		result = append(result, Interval{
			Start:  intervals[inx].start,
			End:    intervals[inx].end,
			Phrase: intervals[inx].phrase.Text,
		})
	}
	tracer().Debugf("phrasing %d syllables into %d intervals, score %d",
		n, len(result), best.score)
	return result
}

func (engine *ChewingEngine) score(chain []int, intervals []possibleInterval) int {
	score := 0
	score += 1000 * ruleLargestSum(chain, intervals)
	score += 1000 * ruleLargestAvgWordLen(chain, intervals)
	score += 100 * ruleSmallestLenVariance(chain, intervals)
	score += ruleLargestFreqSum(chain, intervals)
	return score
}

// ruleLargestSum prefers chains covering more syllables.
func ruleLargestSum(chain []int, intervals []possibleInterval) int {
	sum := 0
	for _, inx := range chain {
		sum += intervals[inx].end - intervals[inx].start
	}
	return sum
}

// ruleLargestAvgWordLen prefers longer phrases. The constant factor
// 6 = 1·2·3 keeps the value an integer.
func ruleLargestAvgWordLen(chain []int, intervals []possibleInterval) int {
	if len(chain) == 0 {
		return 0
	}
	return 6 * ruleLargestSum(chain, intervals) / len(chain)
}

// ruleSmallestLenVariance prefers evenly sized phrases.
func ruleSmallestLenVariance(chain []int, intervals []possibleInterval) int {
	score := 0
	for i := 0; i < len(chain); i++ {
		for j := i + 1; j < len(chain); j++ {
			a := intervals[chain[i]].end - intervals[chain[i]].start
			b := intervals[chain[j]].end - intervals[chain[j]].start
			if a > b {
				score += a - b
			} else {
				score += b - a
			}
		}
	}
	return -score
}

// ruleLargestFreqSum prefers frequent phrases. Single characters weigh
// far less, so that a two-character phrase beats two frequent singles.
func ruleLargestFreqSum(chain []int, intervals []possibleInterval) int {
	score := 0
	for _, inx := range chain {
		interval := intervals[inx]
		freq := int(interval.phrase.Freq)
		if interval.end-interval.start == 1 {
			freq /= 512
		}
		score += freq
	}
	return score
}

// Convert returns the highest-scoring segmentation of the sequence.
//
// Interface Engine.
func (engine *ChewingEngine) Convert(seq *Sequence) []Interval {
	if len(seq.Syllables) == 0 {
		return nil
	}
	intervals := engine.findIntervals(seq)
	return engine.dpPhrasing(len(seq.Syllables), intervals)
}

// ConvertNext returns the n-th alternative segmentation. Alternatives
// differ in the length of the leading phrase; they are ordered best
// first and cycle.
//
// Interface Engine.
func (engine *ChewingEngine) ConvertNext(seq *Sequence, n int) []Interval {
	if len(seq.Syllables) == 0 {
		return nil
	}
	if n <= 0 {
		return engine.Convert(seq)
	}
	best := engine.Convert(seq)
	if len(best) == 0 {
		return best
	}
	alternatives := [][]Interval{best}
	head := best[0]
	for length := dict.MaxPhraseLen; length >= 1; length-- {
		if length > len(seq.Syllables) || length == head.Len() {
			continue
		}
		forced := engine.convertWithHeadLen(seq, length)
		if forced != nil {
			alternatives = append(alternatives, forced)
		}
	}
	return alternatives[n%len(alternatives)]
}

// convertWithHeadLen segments with the first interval forced to a given
// length. Returns nil when no phrase of that length starts the
// sequence.
func (engine *ChewingEngine) convertWithHeadLen(seq *Sequence, length int) []Interval {
	head := seq.Syllables[:length]
	phrase, ok := engine.bestPhrase(0, head, seq.Selections, seq.Breaks)
	if !ok {
		return nil
	}
	rest := &Sequence{
		Syllables:  seq.Syllables[length:],
		Selections: shiftSelections(seq.Selections, length),
		Breaks:     shiftBreaks(seq.Breaks, length),
	}
	tail := engine.Convert(rest)
	result := make([]Interval, 0, len(tail)+1)
	result = append(result, Interval{Start: 0, End: length, Phrase: phrase.Text})
	for _, iv := range tail {
		result = append(result, Interval{iv.Start + length, iv.End + length, iv.Phrase})
	}
	return result
}

func shiftSelections(selections []Interval, offset int) []Interval {
	var shifted []Interval
	for _, sel := range selections {
		if sel.Start >= offset {
			shifted = append(shifted, Interval{sel.Start - offset, sel.End - offset, sel.Phrase})
		}
	}
	return shifted
}

func shiftBreaks(breaks []Break, offset int) []Break {
	var shifted []Break
	for _, br := range breaks {
		if int(br) > offset {
			shifted = append(shifted, Break(int(br)-offset))
		}
	}
	return shifted
}

// Render joins a segmentation into the output text.
func Render(intervals []Interval) string {
	var sb strings.Builder
	for _, iv := range intervals {
		sb.WriteString(iv.Phrase)
	}
	return sb.String()
}
