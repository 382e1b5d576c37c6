/*
Package conversion implements the phrase chooser: the dynamic-programming
segmentation of syllable sequences into phrases.

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

Given the syllables of the preedit buffer, the chooser partitions them
into contiguous runs and assigns each run a phrase from the dictionary,
maximising a score that prefers fewer and longer phrases, even phrase
lengths and frequent phrases. The user may pin a phrase over a span
(a selection) or forbid runs across a position (a break); both constrain
the segmentation. Re-running the chooser on identical input yields a
byte-identical result. */
package conversion

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/zhuyin"
)

// tracer writes to trace with key 'zhuyin.conversion'
func tracer() tracing.Trace {
	return tracing.Select("zhuyin.conversion")
}

// An Interval states that the syllables in [Start, End) convert to
// Phrase. Intervals of a segmentation never overlap.
type Interval struct {
	Start  int
	End    int
	Phrase string
}

// Contains is true when other lies within the receiver.
func (iv Interval) Contains(other Interval) bool {
	return iv.Start <= other.Start && iv.End >= other.End
}

// Len returns the covered syllable count.
func (iv Interval) Len() int { return iv.End - iv.Start }

// A Break forbids any phrase run across the position it names.
type Break int

// A Sequence is the conversion input: the syllables of the preedit
// buffer plus the user's constraints.
type Sequence struct {
	Syllables  []zhuyin.Syllable
	Selections []Interval
	Breaks     []Break
}

// An Engine segments syllable sequences into phrase intervals.
type Engine interface {
	// Convert returns the highest-scoring segmentation.
	Convert(seq *Sequence) []Interval
	// ConvertNext returns the n-th alternative segmentation; n = 0 is
	// the best one. Alternatives cycle.
	ConvertNext(seq *Sequence, n int) []Interval
}
