/*
Package editor implements the session façade of the engine.

Under active development; use at your own risk

BSD License

Copyright (c) 2017–21, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.


Contents

A session ties the pieces together: key strokes feed the phonetic key
editor; sealed syllables enter the preedit buffer; the conversion engine
re-segments the buffer after every change; Enter drains the buffer into
the commit stream and teaches the user phrase store.

A session is single-threaded and owns all of its mutable state. The
system dictionary handle it references is immutable and may be shared
between sessions; the user phrase store is exclusive to the session.

Typical Usage

  tree, _ := dict.Load("fonetree.dat", "dict.dat")
  store, _ := userphrase.Open(userDataPath)
  session := editor.NewSession(tree, store)
  defer session.Close()
  for _, key := range []byte("su3cl3") {
     session.HandleKey(key)
  }
  session.HandleSpecial(editor.KeyEnter)
  text, _ := session.PopCommit()      // 你好
*/
package editor

import (
	"errors"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/zhuyin"
	"github.com/npillmayer/zhuyin/conversion"
	"github.com/npillmayer/zhuyin/dict"
	"github.com/npillmayer/zhuyin/keymap"
	"github.com/npillmayer/zhuyin/phonetic"
	"github.com/npillmayer/zhuyin/preedit"
	"github.com/npillmayer/zhuyin/userphrase"
)

// tracer writes to trace with key 'zhuyin.editor'
func tracer() tracing.Trace {
	return tracing.Select("zhuyin.editor")
}

// State is the session's input state.
type State int8

// Session states.
const (
	Entering  State = iota // composing phonetic input
	Selecting              // the candidate window is open
	Bypass                 // English mode; keys commit directly
)

// Key names the non-printable keys a session reacts to.
type Key int8

// Special keys.
const (
	KeyEnter Key = iota
	KeyEsc
	KeyTab
	KeyDown
	KeyLeft
	KeyRight
	KeyBackspace
	KeyDelete
)

// ErrNoCandidate is returned when a selection index is out of range or
// the candidate window is closed.
var ErrNoCandidate = errors.New("no such candidate")

// A Session is one input conversation. Sessions are not safe for
// concurrent use.
type Session struct {
	opts       Options
	state      State
	keymap     keymap.Keymap
	phone      phonetic.Editor
	buf        *preedit.Buffer
	dictionary *dict.Layered
	store      *userphrase.Store
	engine     *conversion.ChewingEngine
	intervals  []conversion.Interval
	selections []conversion.Interval
	altInx     int
	candidates []conversion.Candidate
	page       int
	commits    []string
}

// NewSession creates a session over a system dictionary and an optional
// user phrase store. The session takes no ownership of the dictionary;
// it owns the store and closes it with Close.
func NewSession(system dict.Dictionary, store *userphrase.Store, options ...Option) *Session {
	opts := DefaultOptions()
	for _, option := range options {
		option(&opts)
	}
	layered := &dict.Layered{System: system}
	if store != nil {
		layered.User = store
	}
	session := &Session{
		opts:       opts,
		dictionary: layered,
		store:      store,
		engine:     conversion.NewChewingEngine(layered),
	}
	session.applyOptions()
	tracer().Infof("new session with layout %s", opts.KeyboardLayout)
	return session
}

func (session *Session) applyOptions() {
	session.keymap = phonetic.LayoutKeymap(session.opts.KeyboardLayout)
	if session.phone == nil || session.phone.Layout() != session.opts.KeyboardLayout {
		session.phone = phonetic.NewEditor(session.opts.KeyboardLayout)
	}
	if session.buf == nil || session.buf.Capacity() != session.opts.MaxChiSymbolLen {
		newBuf := preedit.New(session.opts.MaxChiSymbolLen)
		if session.buf != nil {
			for _, sym := range session.buf.Symbols() {
				newBuf.Insert(sym)
			}
		}
		session.buf = newBuf
	}
}

// Configure applies options to a running session.
func (session *Session) Configure(options ...Option) {
	for _, option := range options {
		option(&session.opts)
	}
	session.applyOptions()
	session.reconvert()
}

// Options returns the session's current configuration.
func (session *Session) Options() Options {
	return session.opts
}

// ToggleEnglishMode switches between phonetic input and Bypass.
func (session *Session) ToggleEnglishMode() {
	if session.state == Bypass {
		session.state = Entering
	} else {
		session.phone.Clear()
		session.candidates = nil
		session.state = Bypass
	}
}

// InputState returns the session's current state.
func (session *Session) InputState() State {
	return session.state
}

// --- Key handling -----------------------------------------------------

// HandleKey processes one printable ASCII key stroke.
func (session *Session) HandleKey(key byte) phonetic.KeyBehavior {
	switch session.state {
	case Bypass:
		text := string(rune(key))
		if session.opts.FullshapeMode {
			text = fullshape(key)
		}
		session.commits = append(session.commits, text)
		return phonetic.Commit
	case Selecting:
		if key >= '1' && key <= '9' {
			if err := session.SelectCandidate(int(key - '1')); err != nil {
				return phonetic.KeyError
			}
			return phonetic.Absorb
		}
		if key == ' ' {
			session.nextPage()
			return phonetic.Absorb
		}
		return phonetic.Ignore
	}

	if key == ' ' && session.opts.SpaceAsSelection &&
		!session.phone.IsEntering() && session.buf.Len() > 0 {
		return session.openCandidates()
	}

	behavior := session.phone.KeyPress(session.keymap.Map(key))
	switch behavior {
	case phonetic.Commit:
		return session.sealSyllable()
	case phonetic.Absorb:
		return phonetic.Absorb
	case phonetic.KeyError, phonetic.NoWord:
		// not phonetic input: try the symbol paths
		if session.opts.EasySymbolMode && !session.phone.IsEntering() {
			if sym, ok := easySymbol(key); ok {
				return session.insertChar(sym, preedit.OriginDirect)
			}
		}
		if session.opts.FullshapeMode && !session.phone.IsEntering() && !isLayoutKey(key) {
			return session.insertChar(fullshape(key), preedit.OriginFullwidth)
		}
	}
	return behavior
}

// isLayoutKey is true for characters phonetic layouts may consume;
// those never fall through to the symbol paths.
func isLayoutKey(key byte) bool {
	return key >= 'a' && key <= 'z' || key >= '0' && key <= '9' || key == ' '
}

// sealSyllable drains the sealed syllable from the phonetic editor into
// the preedit buffer.
func (session *Session) sealSyllable() phonetic.KeyBehavior {
	syl := session.phone.Observe()
	if !syl.HasTone() || !syl.Valid() {
		session.phone.Clear()
		return phonetic.Error
	}
	behavior := phonetic.Commit
	if len(session.wordsFor(syl)) == 0 {
		// the syllable stays; it may combine with neighbours later
		behavior = phonetic.NoWord
	}
	if !session.buf.Insert(preedit.Phone(syl)) {
		session.phone.Clear()
		return phonetic.Ignore
	}
	session.shiftSelections(session.cursorSyllableInx()-1, +1)
	session.phone.Clear()
	session.altInx = 0
	session.reconvert()
	return behavior
}

func (session *Session) wordsFor(syl zhuyin.Syllable) []dict.Phrase {
	alt, _ := session.phone.AltSyllable()
	return session.engine.WordCandidates(syl, alt)
}

// insertChar places a fixed character into the preedit buffer, or
// commits it directly when nothing is being composed.
func (session *Session) insertChar(text string, origin preedit.Origin) phonetic.KeyBehavior {
	if session.buf.Len() == 0 {
		session.commits = append(session.commits, text)
		return phonetic.Commit
	}
	if !session.buf.Insert(preedit.Char(text, origin)) {
		return phonetic.Ignore
	}
	session.reconvert()
	return phonetic.Absorb
}

// HandleSpecial processes one non-printable key.
func (session *Session) HandleSpecial(key Key) phonetic.KeyBehavior {
	if session.state == Bypass {
		return phonetic.Ignore
	}
	if session.state == Selecting {
		switch key {
		case KeyEsc:
			session.closeCandidates()
			return phonetic.Absorb
		case KeyDown:
			session.nextPage()
			return phonetic.Absorb
		}
		return phonetic.Ignore
	}
	switch key {
	case KeyEsc:
		session.phone.Clear()
		return phonetic.Absorb
	case KeyEnter:
		return session.commit()
	case KeyTab:
		session.altInx++
		session.reconvert()
		return phonetic.Absorb
	case KeyDown:
		return session.openCandidates()
	case KeyLeft:
		session.buf.SetCursor(session.buf.Cursor() - 1)
		return phonetic.Absorb
	case KeyRight:
		session.buf.SetCursor(session.buf.Cursor() + 1)
		return phonetic.Absorb
	case KeyBackspace:
		if session.phone.IsEntering() {
			session.phone.Pop()
			return phonetic.Absorb
		}
		inx := session.cursorSyllableInx()
		if session.buf.DeleteBefore() {
			session.shiftSelections(inx-1, -1)
			session.altInx = 0
			session.reconvert()
		}
		return phonetic.Absorb
	case KeyDelete:
		inx := session.cursorSyllableInx()
		if session.buf.DeleteAfter() {
			session.shiftSelections(inx, -1)
			session.altInx = 0
			session.reconvert()
		}
		return phonetic.Absorb
	}
	return phonetic.Ignore
}

// --- Conversion -------------------------------------------------------

// sequence assembles the conversion input from the preedit buffer.
// Fixed characters interrupt phrase runs, expressed as breaks.
func (session *Session) sequence() *conversion.Sequence {
	syls, positions := session.buf.Syllables()
	seq := &conversion.Sequence{
		Syllables:  syls,
		Selections: session.selections,
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] != positions[i-1]+1 {
			seq.Breaks = append(seq.Breaks, conversion.Break(i))
		}
	}
	return seq
}

func (session *Session) reconvert() {
	seq := session.sequence()
	if len(seq.Syllables) == 0 {
		session.intervals = nil
		return
	}
	session.intervals = session.engine.ConvertNext(seq, session.altInx)
}

// cursorSyllableInx translates the buffer cursor into a position in the
// syllable run.
func (session *Session) cursorSyllableInx() int {
	inx := 0
	for i := 0; i < session.buf.Cursor() && i < session.buf.Len(); i++ {
		if session.buf.At(i).IsPhonetic() {
			inx++
		}
	}
	return inx
}

// shiftSelections adjusts pinned spans after an insertion (+1) or
// removal (-1) at a syllable index. Pins crossing the edit are dropped.
func (session *Session) shiftSelections(at int, delta int) {
	if len(session.selections) == 0 {
		return
	}
	var kept []conversion.Interval
	for _, sel := range session.selections {
		switch {
		case sel.End <= at:
			kept = append(kept, sel)
		case sel.Start >= at:
			if delta < 0 && sel.Start == at && sel.End == at+1 {
				continue // the pinned syllable itself was removed
			}
			kept = append(kept, conversion.Interval{
				Start: sel.Start + delta, End: sel.End + delta, Phrase: sel.Phrase,
			})
		default:
			// the edit happened inside the pin; the pin is void
		}
	}
	session.selections = kept
}

// --- Candidate window -------------------------------------------------

func (session *Session) openCandidates() phonetic.KeyBehavior {
	seq := session.sequence()
	if len(seq.Syllables) == 0 {
		return phonetic.Ignore
	}
	pos := session.cursorSyllableInx()
	if session.opts.PhraseChoiceRearward {
		if pos > 0 {
			pos--
		}
	} else if pos >= len(seq.Syllables) {
		pos = len(seq.Syllables) - 1
	}
	session.candidates = session.engine.Candidates(seq, pos, session.opts.PhraseChoiceRearward)
	if len(session.candidates) == 0 {
		return phonetic.Ignore
	}
	session.page = 0
	session.state = Selecting
	return phonetic.Absorb
}

func (session *Session) closeCandidates() {
	session.candidates = nil
	session.page = 0
	session.state = Entering
}

func (session *Session) nextPage() {
	pages := (len(session.candidates) + session.opts.CandidatesPerPage - 1) /
		session.opts.CandidatesPerPage
	if pages == 0 {
		return
	}
	session.page = (session.page + 1) % pages
}

// Candidates returns the current page of the candidate window, or nil
// when it is closed.
func (session *Session) Candidates() []string {
	if session.state != Selecting {
		return nil
	}
	per := session.opts.CandidatesPerPage
	start := session.page * per
	if start >= len(session.candidates) {
		return nil
	}
	end := start + per
	if end > len(session.candidates) {
		end = len(session.candidates)
	}
	texts := make([]string, 0, end-start)
	for _, cand := range session.candidates[start:end] {
		texts = append(texts, cand.Phrase.Text)
	}
	return texts
}

// SelectCandidate pins the candidate with the given index on the
// current page and re-segments.
func (session *Session) SelectCandidate(inx int) error {
	if session.state != Selecting {
		return ErrNoCandidate
	}
	inx += session.page * session.opts.CandidatesPerPage
	if inx < 0 || inx >= len(session.candidates) {
		return ErrNoCandidate
	}
	chosen := session.candidates[inx]
	var kept []conversion.Interval
	for _, sel := range session.selections {
		if sel.End <= chosen.Start || sel.Start >= chosen.End {
			kept = append(kept, sel)
		}
	}
	session.selections = append(kept, conversion.Interval{
		Start:  chosen.Start,
		End:    chosen.End,
		Phrase: chosen.Phrase.Text,
	})
	session.closeCandidates()
	session.altInx = 0
	session.reconvert()
	if session.opts.AutoShiftCursor {
		session.setCursorAfterSyllable(chosen.End)
	}
	tracer().Debugf("pinned %q over [%d,%d)", chosen.Phrase.Text, chosen.Start, chosen.End)
	return nil
}

// setCursorAfterSyllable puts the buffer cursor right behind the
// syllable with run index end-1.
func (session *Session) setCursorAfterSyllable(end int) {
	_, positions := session.buf.Syllables()
	if end-1 < 0 || end-1 >= len(positions) {
		return
	}
	session.buf.SetCursor(positions[end-1] + 1)
}

// --- Output -----------------------------------------------------------

// Preedit returns the text the host should display while composing:
// converted phrases, fixed characters and, at the cursor, the syllable
// being typed.
func (session *Session) Preedit() string {
	var sb strings.Builder
	inProgress := ""
	if session.phone.IsEntering() {
		inProgress = session.phone.Observe().String()
	}
	sylInx := 0
	intervalInx := 0
	for i := 0; i < session.buf.Len(); i++ {
		if i == session.buf.Cursor() && inProgress != "" {
			sb.WriteString(inProgress)
			inProgress = ""
		}
		sym := session.buf.At(i)
		if !sym.IsPhonetic() {
			sb.WriteString(sym.Char)
			continue
		}
		for intervalInx < len(session.intervals) && session.intervals[intervalInx].End <= sylInx {
			intervalInx++
		}
		if intervalInx < len(session.intervals) && session.intervals[intervalInx].Start == sylInx {
			sb.WriteString(session.intervals[intervalInx].Phrase)
		}
		sylInx++
	}
	if inProgress != "" {
		sb.WriteString(inProgress)
	}
	return sb.String()
}

// Cursor returns the preedit cursor position.
func (session *Session) Cursor() int {
	return session.buf.Cursor()
}

// commit drains the whole preedit buffer to the commit stream and
// teaches the user phrase store the phrases that were used.
func (session *Session) commit() phonetic.KeyBehavior {
	if session.buf.Len() == 0 && !session.phone.IsEntering() {
		return phonetic.Ignore
	}
	session.phone.Clear()
	text := session.Preedit()
	if text == "" {
		return phonetic.Ignore
	}
	session.learnUsedPhrases()
	session.commits = append(session.commits, text)
	session.buf.Clear()
	session.selections = nil
	session.intervals = nil
	session.altInx = 0
	tracer().Debugf("committed %q", text)
	return phonetic.Commit
}

// learnUsedPhrases bumps the user store frequency of every phrase the
// chooser picked for this commit.
func (session *Session) learnUsedPhrases() {
	if session.store == nil {
		return
	}
	syls, _ := session.buf.Syllables()
	for _, interval := range session.intervals {
		span := syls[interval.Start:interval.End]
		sysFreq := uint32(0)
		for _, phrase := range session.dictionary.System.LookupPhrases(span) {
			if phrase.Text == interval.Phrase {
				sysFreq = phrase.Freq
				break
			}
		}
		if sysFreq == 0 && len(span) == 1 {
			continue // an unconverted syllable, nothing to learn
		}
		if err := session.store.BumpFrequency(span, interval.Phrase, sysFreq); err != nil {
			tracer().Infof("cannot learn %q: %v", interval.Phrase, err)
		}
	}
}

// AddUserPhrase learns the phrase of n syllables adjacent to the
// cursor, in the configured direction.
func (session *Session) AddUserPhrase(n int) error {
	syls, _ := session.buf.Syllables()
	pos := session.cursorSyllableInx()
	var start, end int
	if session.opts.AddPhraseDirection == AddHead {
		start, end = pos-n, pos
	} else {
		start, end = pos, pos+n
	}
	if start < 0 || end > len(syls) || start >= end {
		return errors.New("no syllables to learn at the cursor")
	}
	if session.store == nil {
		return userphrase.ErrStoreReadOnly
	}
	span := syls[start:end]
	text := ""
	for _, interval := range session.intervals {
		if interval.Start <= start && interval.End >= end {
			runes := []rune(interval.Phrase)
			if end-interval.Start <= len(runes) {
				text = string(runes[start-interval.Start : end-interval.Start])
			}
		}
	}
	if text == "" {
		return errors.New("the selected span is not covered by a phrase")
	}
	return session.store.Add(span, text, 0)
}

// PopCommit removes and returns the oldest entry of the commit stream.
func (session *Session) PopCommit() (string, bool) {
	if len(session.commits) == 0 {
		return "", false
	}
	text := session.commits[0]
	session.commits = session.commits[1:]
	return text, true
}

// Sync flushes the user phrase store.
func (session *Session) Sync() error {
	if session.store == nil {
		return nil
	}
	return session.store.Sync()
}

// Close flushes and releases the session's resources. The system
// dictionary is left untouched; closing it is its owner's business.
func (session *Session) Close() error {
	if session.store == nil {
		return nil
	}
	err := session.store.Close()
	session.store = nil
	return err
}
