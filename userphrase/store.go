/*
Package userphrase implements the persistent, mutable store for phrases
the user taught the engine.

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

The store is an append-only log of add/remove/bump records, replayed
into an in-memory index at open time. The index is a trie keyed by the
encoded syllable sequence, which gives both exact lookup for conversion
and prefix enumeration for the candidate window. Phrase frequencies age:
a phrase that has not been used for a while gradually falls back to the
frequency the system dictionary gave it.

Concurrent sessions on the same store path coordinate through an
advisory file lock. A writer excludes both writers and readers; read
only openers may share. I/O errors never take a session down: the store
degrades to read-only for the remainder of the session. */
package userphrase

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/derekparker/trie"
	"github.com/gofrs/flock"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/zhuyin"
	"github.com/npillmayer/zhuyin/dict"
)

// tracer writes to trace with key 'zhuyin.userphrase'
func tracer() tracing.Trace {
	return tracing.Select("zhuyin.userphrase")
}

// Errors reported by the store.
var (
	ErrStoreBusy     = errors.New("user phrase store is locked by another session")
	ErrStoreReadOnly = errors.New("user phrase store is read-only")
	ErrCorruptLog    = errors.New("corrupt user phrase log")
)

const logVersion = 1

// Log record operations.
const (
	opAdd uint8 = iota + 1
	opRemove
	opBump
)

// maxSeqLen bounds syllable sequences in the log; it matches the
// dictionary's maximum phrase length.
const maxSeqLen = dict.MaxPhraseLen

// A Record is one user phrase with its frequency bookkeeping.
type Record struct {
	Seq      []zhuyin.Syllable
	Text     string
	UserFreq uint32 // frequency at the last access
	OrigFreq uint32 // the system dictionary's frequency when learned
	MaxFreq  uint32 // highest frequency ever reached
	Time     int64  // Unix seconds of the last access
}

// Store is an open user phrase store. It is owned by a single session
// and not safe for concurrent use.
type Store struct {
	path     string
	file     *os.File
	lock     *flock.Flock
	index    *trie.Trie // key: encoded syllables; meta: map[string]*Record
	live     int
	logged   int
	readOnly bool
	now      func() int64
}

// Open opens (or creates) a store for exclusive read/write access.
// It fails with ErrStoreBusy when another session holds the store.
func Open(path string) (*Store, error) {
	return open(path, false)
}

// OpenReadOnly opens a store for shared read access.
func OpenReadOnly(path string) (*Store, error) {
	return open(path, true)
}

func open(path string, readOnly bool) (*Store, error) {
	lock := flock.New(path + ".lock")
	var locked bool
	var err error
	if readOnly {
		locked, err = lock.TryRLock()
	} else {
		locked, err = lock.TryLock()
	}
	if err != nil {
		return nil, fmt.Errorf("lock user phrase store: %w", err)
	}
	if !locked {
		return nil, ErrStoreBusy
	}
	store := &Store{
		path:     path,
		lock:     lock,
		index:    trie.New(),
		readOnly: readOnly,
		now:      unixNow,
	}
	flags := os.O_RDWR | os.O_CREATE
	if readOnly {
		flags = os.O_RDONLY
	}
	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if readOnly && os.IsNotExist(err) {
			// nothing learned yet; an empty store
			return store, nil
		}
		lock.Unlock()
		return nil, fmt.Errorf("open user phrase log: %w", err)
	}
	store.file = file
	if err := store.replay(); err != nil {
		store.closeFiles()
		return nil, err
	}
	tracer().Infof("user phrase store %q: %d live entries, %d log records",
		path, store.live, store.logged)
	return store, nil
}

func unixNow() int64 {
	return timeNow().Unix()
}

// replay reads the log from the start and rebuilds the index.
func (store *Store) replay() error {
	if _, err := store.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	for {
		rec, op, err := readRecord(store.file)
		if err == io.EOF {
			break
		}
		if err != nil {
			// keep what replayed so far, but stop writing to a log we
			// no longer understand
			tracer().Errorf("user phrase log %q: %v", store.path, err)
			store.readOnly = true
			break
		}
		store.logged++
		store.apply(op, rec)
	}
	if !store.readOnly {
		if _, err := store.file.Seek(0, io.SeekEnd); err != nil {
			return err
		}
	}
	return nil
}

func (store *Store) apply(op uint8, rec *Record) {
	switch op {
	case opAdd:
		rec.OrigFreq = rec.UserFreq
		store.put(rec)
	case opRemove:
		store.drop(rec.Seq, rec.Text)
	case opBump:
		existing := store.get(rec.Seq, rec.Text)
		if existing == nil {
			// a bump for an unknown phrase seeds it
			rec.OrigFreq = rec.UserFreq
			store.put(rec)
			return
		}
		// last writer wins, ties broken by timestamp
		if rec.Time >= existing.Time {
			existing.UserFreq = rec.UserFreq
			existing.MaxFreq = rec.MaxFreq
			existing.Time = rec.Time
		}
	}
}

// encodeKey turns a syllable sequence into a trie key: the raw 16-bit
// encodings rendered as four lower-case hex digits each, which keeps
// the key printable and prefix-clean.
func encodeKey(seq []zhuyin.Syllable) string {
	buf := make([]byte, 0, 4*len(seq))
	for _, raw := range zhuyin.EncodeSyllables(seq) {
		buf = append(buf, fmt.Sprintf("%04x", raw)...)
	}
	return string(buf)
}

func (store *Store) bucket(seq []zhuyin.Syllable) map[string]*Record {
	node, ok := store.index.Find(encodeKey(seq))
	if !ok {
		return nil
	}
	return node.Meta().(map[string]*Record)
}

func (store *Store) get(seq []zhuyin.Syllable, text string) *Record {
	bucket := store.bucket(seq)
	if bucket == nil {
		return nil
	}
	return bucket[text]
}

func (store *Store) put(rec *Record) {
	key := encodeKey(rec.Seq)
	node, ok := store.index.Find(key)
	var bucket map[string]*Record
	if ok {
		bucket = node.Meta().(map[string]*Record)
	} else {
		bucket = make(map[string]*Record)
		store.index.Add(key, bucket)
	}
	if _, exists := bucket[rec.Text]; !exists {
		store.live++
	}
	bucket[rec.Text] = rec
}

func (store *Store) drop(seq []zhuyin.Syllable, text string) {
	key := encodeKey(seq)
	node, ok := store.index.Find(key)
	if !ok {
		return
	}
	bucket := node.Meta().(map[string]*Record)
	if _, exists := bucket[text]; !exists {
		return
	}
	delete(bucket, text)
	store.live--
	if len(bucket) == 0 {
		store.index.Remove(key)
	}
}

// LookupPhrases returns the user phrases under a syllable sequence with
// their current effective frequencies, ordered by descending frequency,
// ties by text.
//
// Interface dict.Dictionary.
func (store *Store) LookupPhrases(seq []zhuyin.Syllable) []dict.Phrase {
	bucket := store.bucket(seq)
	if len(bucket) == 0 {
		return nil
	}
	now := store.now()
	phrases := make([]dict.Phrase, 0, len(bucket))
	for text, rec := range bucket {
		phrases = append(phrases, dict.Phrase{Text: text, Freq: effectiveFreq(rec, now)})
	}
	sort.Slice(phrases, func(i, j int) bool {
		if phrases[i].Freq != phrases[j].Freq {
			return phrases[i].Freq > phrases[j].Freq
		}
		return phrases[i].Text < phrases[j].Text
	})
	return phrases
}

// HasPrefix reports whether any user phrase's syllable sequence starts
// with seq. The conversion engine uses this to stop extending a span
// early.
func (store *Store) HasPrefix(seq []zhuyin.Syllable) bool {
	return store.index.HasKeysWithPrefix(encodeKey(seq))
}

// storeWalker extends a prefix over the trie index one syllable at a
// time.
type storeWalker struct {
	store *Store
	seq   []zhuyin.Syllable
	alive bool
}

// Walk starts an incremental prefix walk over the store.
//
// Interface dict.WalkableDictionary.
func (store *Store) Walk() dict.Walker {
	return &storeWalker{store: store, alive: true}
}

func (w *storeWalker) Extend(syl zhuyin.Syllable) bool {
	if !w.alive || len(w.seq) >= maxSeqLen {
		w.alive = false
		return false
	}
	w.seq = append(w.seq, syl)
	w.alive = w.store.HasPrefix(w.seq)
	return w.alive
}

func (w *storeWalker) Phrases() []dict.Phrase {
	if !w.alive {
		return nil
	}
	return w.store.LookupPhrases(w.seq)
}

// Add inserts a user phrase, or bumps it when it already exists.
// origFreq is the frequency the system dictionary assigns the phrase;
// pass 0 for phrases the system does not know.
func (store *Store) Add(seq []zhuyin.Syllable, text string, origFreq uint32) error {
	if len(seq) == 0 || len(seq) > maxSeqLen {
		return fmt.Errorf("user phrase %q: sequence length %d out of range", text, len(seq))
	}
	if rec := store.get(seq, text); rec != nil {
		return store.BumpFrequency(seq, text, origFreq)
	}
	if origFreq == 0 {
		origFreq = 1
	}
	rec := &Record{
		Seq:      append([]zhuyin.Syllable{}, seq...),
		Text:     text,
		UserFreq: origFreq,
		OrigFreq: origFreq,
		MaxFreq:  origFreq,
		Time:     store.now(),
	}
	if err := store.journal(opAdd, rec); err != nil {
		return err
	}
	store.put(rec)
	tracer().Debugf("learned user phrase %q", text)
	return nil
}

// Remove deletes a user phrase.
func (store *Store) Remove(seq []zhuyin.Syllable, text string) error {
	rec := store.get(seq, text)
	if rec == nil {
		return nil
	}
	if err := store.journal(opRemove, rec); err != nil {
		return err
	}
	store.drop(seq, text)
	return nil
}

// BumpFrequency records one use of a phrase, applying the aging curve.
// Unknown phrases are seeded first, with origFreq as their baseline.
func (store *Store) BumpFrequency(seq []zhuyin.Syllable, text string, origFreq uint32) error {
	rec := store.get(seq, text)
	if rec == nil {
		return store.Add(seq, text, origFreq)
	}
	now := store.now()
	freq := effectiveFreq(rec, now) + 1
	rec.UserFreq = freq
	if freq > rec.MaxFreq {
		rec.MaxFreq = freq
	}
	rec.Time = now
	return store.journal(opBump, rec)
}

// journal appends one record to the log. A failing append degrades the
// store to read-only; the in-memory state stays usable.
func (store *Store) journal(op uint8, rec *Record) error {
	if store.readOnly {
		return ErrStoreReadOnly
	}
	if err := writeRecord(store.file, op, rec); err != nil {
		tracer().Errorf("user phrase log write failed, store degrades to read-only: %v", err)
		store.readOnly = true
		return ErrStoreReadOnly
	}
	store.logged++
	return nil
}

// Sync flushes the log to stable storage.
func (store *Store) Sync() error {
	if store.file == nil || store.readOnly {
		return nil
	}
	return store.file.Sync()
}

// Close flushes and releases the store. When the log has grown past
// twice the live set it is compacted first.
func (store *Store) Close() error {
	var err error
	if !store.readOnly && store.logged > 2*store.live {
		err = store.compact()
	}
	if e := store.Sync(); err == nil {
		err = e
	}
	store.closeFiles()
	return err
}

func (store *Store) closeFiles() {
	if store.file != nil {
		store.file.Close()
		store.file = nil
	}
	if store.lock != nil {
		store.lock.Unlock()
		store.lock = nil
	}
}

// compact rewrites the log with only the live records.
func (store *Store) compact() error {
	tmp := store.path + ".compact"
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	count := 0
	werr := func() error {
		for _, key := range store.index.Keys() {
			node, ok := store.index.Find(key)
			if !ok {
				continue
			}
			bucket := node.Meta().(map[string]*Record)
			texts := make([]string, 0, len(bucket))
			for text := range bucket {
				texts = append(texts, text)
			}
			sort.Strings(texts)
			for _, text := range texts {
				rec := bucket[text]
				base := *rec
				base.UserFreq = rec.OrigFreq
				if err := writeRecord(out, opAdd, &base); err != nil {
					return err
				}
				count++
				if rec.UserFreq != rec.OrigFreq || rec.MaxFreq != rec.OrigFreq {
					if err := writeRecord(out, opBump, rec); err != nil {
						return err
					}
					count++
				}
			}
		}
		return out.Sync()
	}()
	out.Close()
	if werr != nil {
		os.Remove(tmp)
		return werr
	}
	store.file.Close()
	if err := os.Rename(tmp, store.path); err != nil {
		return err
	}
	file, err := os.OpenFile(store.path, os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	store.file = file
	store.logged = count
	tracer().Infof("compacted user phrase log to %d records", count)
	return nil
}

// --- Log encoding -----------------------------------------------------

func writeRecord(w io.Writer, op uint8, rec *Record) error {
	textBytes := []byte(rec.Text)
	buf := make([]byte, 0, 3+2*len(rec.Seq)+2+len(textBytes)+16)
	buf = append(buf, logVersion, op, uint8(len(rec.Seq)))
	for _, raw := range zhuyin.EncodeSyllables(rec.Seq) {
		buf = binary.LittleEndian.AppendUint16(buf, raw)
	}
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(textBytes)))
	buf = append(buf, textBytes...)
	buf = binary.LittleEndian.AppendUint32(buf, rec.UserFreq)
	buf = binary.LittleEndian.AppendUint32(buf, rec.MaxFreq)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(rec.Time))
	_, err := w.Write(buf)
	return err
}

func readRecord(r io.Reader) (*Record, uint8, error) {
	var head [3]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, 0, fmt.Errorf("%w: truncated record", ErrCorruptLog)
		}
		return nil, 0, err
	}
	if head[0] != logVersion {
		return nil, 0, fmt.Errorf("%w: unknown version %d", ErrCorruptLog, head[0])
	}
	op := head[1]
	if op < opAdd || op > opBump {
		return nil, 0, fmt.Errorf("%w: unknown op %d", ErrCorruptLog, op)
	}
	seqLen := int(head[2])
	if seqLen == 0 || seqLen > maxSeqLen {
		return nil, 0, fmt.Errorf("%w: sequence length %d", ErrCorruptLog, seqLen)
	}
	body := make([]byte, 2*seqLen+2)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, 0, fmt.Errorf("%w: truncated record", ErrCorruptLog)
	}
	raw := make([]uint16, seqLen)
	for i := range raw {
		raw[i] = binary.LittleEndian.Uint16(body[2*i:])
	}
	seq, err := zhuyin.DecodeSyllables(raw)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorruptLog, err)
	}
	rec := &Record{Seq: seq}
	textLen := int(binary.LittleEndian.Uint16(body[2*seqLen:]))
	tail := make([]byte, textLen+16)
	if _, err := io.ReadFull(r, tail); err != nil {
		return nil, 0, fmt.Errorf("%w: truncated record", ErrCorruptLog)
	}
	rec.Text = string(tail[:textLen])
	rec.UserFreq = binary.LittleEndian.Uint32(tail[textLen:])
	rec.MaxFreq = binary.LittleEndian.Uint32(tail[textLen+4:])
	rec.Time = int64(binary.LittleEndian.Uint64(tail[textLen+8:]))
	return rec, op, nil
}
