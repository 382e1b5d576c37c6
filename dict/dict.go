/*
Package dict implements the system dictionary of the engine: a phrase
arena paired with a phrase tree keyed by syllable sequences.

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

The dictionary consists of two memory-mapped, read-only files. The phrase
arena (dict.dat) is a blob of concatenated NUL-terminated UTF-8 phrases.
The phrase tree (fonetree.dat) is an array of fixed-width nodes forming a
prefix tree over syllable sequences; leaves reference arena offsets. Both
files are produced by a Builder, either ahead of time by the dictionary
compiler or on the fly by tests.

Lookup descends the tree one syllable at a time, binary searching the
sorted children of each node, and finally collects the leaves below the
reached node. The tree admits prefix lookup naturally, which the
conversion engine uses to cut short the enumeration of phrase spans. */
package dict

import (
	"sort"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/zhuyin"
)

// tracer writes to trace with key 'zhuyin.dict'
func tracer() tracing.Trace {
	return tracing.Select("zhuyin.dict")
}

// MaxPhraseLen is the maximum phrase length in characters, and therefore
// the maximum depth of the phrase tree.
const MaxPhraseLen = 11

// A Phrase is one or more Chinese characters together with a usage
// frequency. Frequencies are 24-bit unsigned on disk.
type Phrase struct {
	Text string
	Freq uint32
}

// A Dictionary returns the phrases matching a syllable sequence exactly,
// ordered by descending frequency. Implementations must be deterministic:
// equal frequencies are ordered by their position in the backing store.
type Dictionary interface {
	LookupPhrases(seq []zhuyin.Syllable) []Phrase
}

// A PrefixDictionary can additionally tell whether any entry's syllable
// sequence starts with a prefix, allowing span enumeration to stop
// early.
type PrefixDictionary interface {
	Dictionary
	HasPrefix(seq []zhuyin.Syllable) bool
}

// A Walker is an incremental prefix walk through a dictionary. Starting
// from the empty prefix, every Extend narrows the walk by one syllable;
// once Extend reports false, no entry starts with the extended prefix
// and the walk is dead. Phrases returns the entries matching the
// current prefix exactly.
//
// The conversion engine holds one walker per span start, so that
// enumerating all spans from that position costs a single descent.
type Walker interface {
	Extend(syl zhuyin.Syllable) bool
	Phrases() []Phrase
}

// A WalkableDictionary hands out incremental prefix walks.
type WalkableDictionary interface {
	Dictionary
	Walk() Walker
}

// NewWalker returns a walker for any dictionary. Dictionaries without
// native walks get a generic one that looks the growing prefix up from
// scratch on every step.
func NewWalker(d Dictionary) Walker {
	if walkable, ok := d.(WalkableDictionary); ok {
		return walkable.Walk()
	}
	return &lookupWalker{dict: d}
}

type lookupWalker struct {
	dict Dictionary
	seq  []zhuyin.Syllable
}

func (w *lookupWalker) Extend(syl zhuyin.Syllable) bool {
	w.seq = append(w.seq, syl)
	return len(w.seq) <= MaxPhraseLen
}

func (w *lookupWalker) Phrases() []Phrase {
	return w.dict.LookupPhrases(w.seq)
}

// Layered merges the immutable system dictionary with the mutable user
// phrase store. On duplicate phrase text the user entry wins.
type Layered struct {
	System Dictionary
	User   Dictionary // may be nil
}

// LookupPhrases merges the layers' results at the same key. Ordering is
// by descending frequency; on equal frequency user entries come first,
// then store order decides.
func (layered *Layered) LookupPhrases(seq []zhuyin.Syllable) []Phrase {
	var user []Phrase
	if layered.User != nil {
		user = layered.User.LookupPhrases(seq)
	}
	return mergePhrases(user, layered.System.LookupPhrases(seq))
}

// mergePhrases folds the user layer's entries over the system layer's,
// user wins on duplicate text.
func mergePhrases(user, system []Phrase) []Phrase {
	if len(user) == 0 {
		return system
	}
	seen := make(map[string]bool, len(user))
	for _, phrase := range user {
		seen[phrase.Text] = true
	}
	type ranked struct {
		phrase Phrase
		user   bool
		pos    int
	}
	merged := make([]ranked, 0, len(user)+len(system))
	for i, phrase := range user {
		merged = append(merged, ranked{phrase, true, i})
	}
	for i, phrase := range system {
		if seen[phrase.Text] {
			continue
		}
		merged = append(merged, ranked{phrase, false, i})
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].phrase.Freq != merged[j].phrase.Freq {
			return merged[i].phrase.Freq > merged[j].phrase.Freq
		}
		if merged[i].user != merged[j].user {
			return merged[i].user
		}
		return merged[i].pos < merged[j].pos
	})
	result := make([]Phrase, len(merged))
	for i, r := range merged {
		result[i] = r.phrase
	}
	return result
}

// layeredWalker extends both layers' walks in lock step; the walk stays
// alive as long as either layer does.
type layeredWalker struct {
	system Walker
	user   Walker // nil without a user store
	alive  bool
}

// Walk starts an incremental prefix walk over both layers.
//
// Interface WalkableDictionary.
func (layered *Layered) Walk() Walker {
	w := &layeredWalker{system: NewWalker(layered.System), alive: true}
	if layered.User != nil {
		w.user = NewWalker(layered.User)
	}
	return w
}

func (w *layeredWalker) Extend(syl zhuyin.Syllable) bool {
	if !w.alive {
		return false
	}
	systemAlive := w.system.Extend(syl)
	userAlive := w.user != nil && w.user.Extend(syl)
	w.alive = systemAlive || userAlive
	return w.alive
}

func (w *layeredWalker) Phrases() []Phrase {
	if !w.alive {
		return nil
	}
	var user []Phrase
	if w.user != nil {
		user = w.user.Phrases()
	}
	return mergePhrases(user, w.system.Phrases())
}

// HasPrefix reports whether any layer holds an entry starting with seq.
// Layers that cannot answer prefix queries are conservatively assumed
// to.
//
// Interface PrefixDictionary.
func (layered *Layered) HasPrefix(seq []zhuyin.Syllable) bool {
	for _, layer := range []Dictionary{layered.System, layered.User} {
		if layer == nil {
			continue
		}
		prefixer, ok := layer.(PrefixDictionary)
		if !ok {
			return true
		}
		if prefixer.HasPrefix(seq) {
			return true
		}
	}
	return false
}
