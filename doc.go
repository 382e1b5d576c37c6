/*
Package zhuyin provides the phonetic ground types for a Zhuyin (Bopomofo)
input method engine.

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

Zhuyin Fuhao, commonly called Bopomofo, is the phonetic notation used to
type Mandarin on keyboards sold in Taiwan. A Mandarin syllable is composed
of up to four components: an initial sound, a medial glide, a final (rime)
and a tonal mark.

This package defines the 42 phonetic symbols, their categories, and a
compact 16-bit encoding of syllables. The encoding is the key type
throughout the engine: the phrase tree on disk, the user phrase store and
the conversion engine all identify syllables by it.

Typical Usage

Syllables are built up component by component while the user types, and
sealed with a tone:

  var syl zhuyin.Syllable
  syl = syl.Update(zhuyin.C)
  syl = syl.Update(zhuyin.E)
  syl = syl.Update(zhuyin.Tone4)
  fmt.Println(syl)     // ㄘㄜˋ

Sub-packages implement the keyboard layouts, the phonetic key editors, the
system dictionary, the user phrase store and the conversion engine. */
package zhuyin

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'zhuyin'
func tracer() tracing.Trace {
	return tracing.Select("zhuyin")
}
