package dict

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/npillmayer/zhuyin"
)

// On-disk node layout: a little-endian 16-bit key followed by two 32-bit
// slots each holding a 24-bit value (high byte zero). Internal nodes store
// the half-open child index range; leaves (key 0) store the arena offset
// and the frequency. The root node at index 0 is a sentinel whose key
// holds the total phrase count.
const nodeSize = 2 + 4 + 4

const slot24Max = 0xffffff

// ErrCorruptDictionary is returned when a data file fails validation.
var ErrCorruptDictionary = errors.New("corrupt dictionary data")

// A NodeRef identifies a tree node by index. Handing out indexes rather
// than pointers into the mapping keeps callers decoupled from the
// lifetime of the memory map.
type NodeRef uint32

// Tree is a loaded system dictionary: the phrase tree plus the phrase
// arena, both memory-mapped read-only. A Tree is immutable and may be
// shared by any number of sessions without locking. Views handed out by
// lookup methods copy the bytes; no return value aliases the mapping.
type Tree struct {
	treeMap  mmap.MMap
	dictMap  mmap.MMap
	treeFile *os.File
	dictFile *os.File
	nodes    uint32
	utf8ok   map[uint32]bool // arena offsets validated so far
}

// Load maps a phrase tree file and its phrase arena. The returned Tree
// stays valid until Close.
func Load(treePath, dictPath string) (*Tree, error) {
	treeFile, err := os.Open(treePath)
	if err != nil {
		return nil, fmt.Errorf("open phrase tree: %w", err)
	}
	dictFile, err := os.Open(dictPath)
	if err != nil {
		treeFile.Close()
		return nil, fmt.Errorf("open phrase arena: %w", err)
	}
	treeMap, err := mmap.Map(treeFile, mmap.RDONLY, 0)
	if err != nil {
		treeFile.Close()
		dictFile.Close()
		return nil, fmt.Errorf("map phrase tree: %w", err)
	}
	dictMap, err := mmap.Map(dictFile, mmap.RDONLY, 0)
	if err != nil {
		treeMap.Unmap()
		treeFile.Close()
		dictFile.Close()
		return nil, fmt.Errorf("map phrase arena: %w", err)
	}
	tree := &Tree{
		treeMap:  treeMap,
		dictMap:  dictMap,
		treeFile: treeFile,
		dictFile: dictFile,
		nodes:    uint32(len(treeMap) / nodeSize),
		utf8ok:   make(map[uint32]bool),
	}
	if err := tree.validate(); err != nil {
		tree.Close()
		return nil, err
	}
	tracer().Infof("loaded phrase tree with %d nodes, %d phrases", tree.nodes, tree.PhraseCount())
	return tree, nil
}

func (tree *Tree) validate() error {
	if len(tree.treeMap)%nodeSize != 0 || tree.nodes == 0 {
		return fmt.Errorf("%w: tree size %d is not a whole number of nodes",
			ErrCorruptDictionary, len(tree.treeMap))
	}
	begin, end := tree.childRange(0)
	if begin > end || uint32(end) > tree.nodes {
		return fmt.Errorf("%w: root child range [%d,%d) out of bounds",
			ErrCorruptDictionary, begin, end)
	}
	return nil
}

// Close unmaps the data files. Lookup results remain valid, node
// references do not.
func (tree *Tree) Close() error {
	var err error
	if tree.treeMap != nil {
		err = tree.treeMap.Unmap()
		tree.treeMap = nil
	}
	if tree.dictMap != nil {
		if e := tree.dictMap.Unmap(); err == nil {
			err = e
		}
		tree.dictMap = nil
	}
	if tree.treeFile != nil {
		tree.treeFile.Close()
		tree.treeFile = nil
	}
	if tree.dictFile != nil {
		tree.dictFile.Close()
		tree.dictFile = nil
	}
	return err
}

// PhraseCount returns the total phrase count recorded in the root
// sentinel. Counts beyond 65535 saturate the 16-bit field; callers must
// not use this as an exact size, only as a sanity indicator.
func (tree *Tree) PhraseCount() int {
	return int(tree.key(0))
}

// Root returns the root node reference.
func (tree *Tree) Root() NodeRef { return 0 }

func (tree *Tree) key(n NodeRef) uint16 {
	off := uint32(n) * nodeSize
	return binary.LittleEndian.Uint16(tree.treeMap[off : off+2])
}

func (tree *Tree) slots(n NodeRef) (uint32, uint32) {
	off := uint32(n) * nodeSize
	a := binary.LittleEndian.Uint32(tree.treeMap[off+2:off+6]) & slot24Max
	b := binary.LittleEndian.Uint32(tree.treeMap[off+6:off+10]) & slot24Max
	return a, b
}

func (tree *Tree) childRange(n NodeRef) (NodeRef, NodeRef) {
	begin, end := tree.slots(n)
	return NodeRef(begin), NodeRef(end)
}

// FindChild descends from an internal node along one syllable. Children
// of a node are sorted ascending by key, with leaves (key 0) in front,
// so a binary search finds the matching subtree.
func (tree *Tree) FindChild(n NodeRef, syl zhuyin.Syllable) (NodeRef, bool) {
	begin, end := tree.childRange(n)
	if begin > end || uint32(end) > tree.nodes {
		tracer().Errorf("phrase tree node %d has out-of-bounds children", n)
		return 0, false
	}
	lo, hi := uint32(begin), uint32(end)
	target := uint16(syl)
	inx := uint32(sort.Search(int(hi-lo), func(i int) bool {
		return tree.key(NodeRef(lo+uint32(i))) >= target
	}))
	if lo+inx >= hi || tree.key(NodeRef(lo+inx)) != target {
		return 0, false
	}
	return NodeRef(lo + inx), true
}

// A NodeIterator steps through the children of an internal node, in
// store order: leaves (key 0) first, then internal children ascending
// by key.
type NodeIterator struct {
	tree *Tree
	cur  NodeRef
	end  NodeRef
}

// Children returns an iterator over the children of a node.
func (tree *Tree) Children(n NodeRef) NodeIterator {
	begin, end := tree.childRange(n)
	if begin > end || uint32(end) > tree.nodes {
		tracer().Errorf("phrase tree node %d has out-of-bounds children", n)
		return NodeIterator{tree: tree}
	}
	return NodeIterator{tree: tree, cur: begin, end: end}
}

// Next advances to the next child. It returns false when the children
// are exhausted.
func (it *NodeIterator) Next() bool {
	if it.tree == nil || it.cur >= it.end {
		return false
	}
	it.cur++
	return true
}

// Node returns the child the iterator currently sits on. Valid only
// after a successful Next.
func (it *NodeIterator) Node() NodeRef { return it.cur - 1 }

// IsLeaf reports whether the current child is a phrase leaf.
func (it *NodeIterator) IsLeaf() bool {
	return it.tree.key(it.Node()) == 0
}

// Key returns the syllable of the current child; 0 for leaves.
func (it *NodeIterator) Key() zhuyin.Syllable {
	return zhuyin.Syllable(it.tree.key(it.Node()))
}

// leavesOf collects the phrases stored directly below a node, in store
// order. The builder emits leaves sorted by descending frequency and
// ascending arena offset, so store order is presentation order.
func (tree *Tree) leavesOf(n NodeRef) []Phrase {
	var phrases []Phrase
	for it := tree.Children(n); it.Next(); {
		if !it.IsLeaf() {
			break // leaves sort in front of internal children
		}
		pos, freq := tree.slots(it.Node())
		text, err := tree.phraseAt(pos)
		if err != nil {
			tracer().Errorf("phrase tree leaf %d: %v", it.Node(), err)
			continue
		}
		phrases = append(phrases, Phrase{Text: text, Freq: freq})
	}
	return phrases
}

// phraseAt reads the NUL-terminated UTF-8 phrase at an arena offset.
// Validation of a given offset happens on first touch and is memoized.
func (tree *Tree) phraseAt(pos uint32) (string, error) {
	if pos >= uint32(len(tree.dictMap)) {
		return "", fmt.Errorf("%w: arena offset %d out of bounds", ErrCorruptDictionary, pos)
	}
	end := pos
	for end < uint32(len(tree.dictMap)) && tree.dictMap[end] != 0 {
		end++
	}
	if end == uint32(len(tree.dictMap)) {
		return "", fmt.Errorf("%w: unterminated phrase at offset %d", ErrCorruptDictionary, pos)
	}
	raw := tree.dictMap[pos:end]
	if !tree.utf8ok[pos] {
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("%w: invalid UTF-8 at offset %d", ErrCorruptDictionary, pos)
		}
		tree.utf8ok[pos] = true
	}
	return string(raw), nil
}

// Descend walks the tree along a syllable sequence and returns the
// reached node. ok is false when the prefix has no subtree, in which
// case no longer sequence starting with it can match either.
func (tree *Tree) Descend(seq []zhuyin.Syllable) (NodeRef, bool) {
	node := tree.Root()
	for _, syl := range seq {
		next, ok := tree.FindChild(node, syl)
		if !ok {
			return 0, false
		}
		node = next
	}
	return node, true
}

// LookupPhrases returns the phrases matching the syllable sequence
// exactly, ordered by descending frequency, ties by arena offset.
func (tree *Tree) LookupPhrases(seq []zhuyin.Syllable) []Phrase {
	if len(seq) == 0 || len(seq) > MaxPhraseLen {
		return nil
	}
	node, ok := tree.Descend(seq)
	if !ok {
		return nil
	}
	return tree.leavesOf(node)
}

// HasPrefix reports whether the tree holds any phrase whose syllable
// sequence starts with seq.
//
// Interface PrefixDictionary.
func (tree *Tree) HasPrefix(seq []zhuyin.Syllable) bool {
	_, ok := tree.Descend(seq)
	return ok
}

// WordsFor returns all single-character phrases whose syllable equals
// syl, ordered by descending frequency.
func (tree *Tree) WordsFor(syl zhuyin.Syllable) []Phrase {
	return tree.LookupPhrases([]zhuyin.Syllable{syl})
}

// treeWalker extends a single descent from the root one syllable at a
// time, so that enumerating all spans starting at one position costs
// one tree walk instead of one per span length.
type treeWalker struct {
	tree  *Tree
	node  NodeRef
	depth int
	alive bool
}

// Walk starts an incremental prefix walk at the root.
//
// Interface WalkableDictionary.
func (tree *Tree) Walk() Walker {
	return &treeWalker{tree: tree, node: tree.Root(), alive: true}
}

func (w *treeWalker) Extend(syl zhuyin.Syllable) bool {
	if !w.alive || w.depth >= MaxPhraseLen {
		w.alive = false
		return false
	}
	next, ok := w.tree.FindChild(w.node, syl)
	if !ok {
		w.alive = false
		return false
	}
	w.node = next
	w.depth++
	return true
}

func (w *treeWalker) Phrases() []Phrase {
	if !w.alive || w.depth == 0 {
		return nil
	}
	return w.tree.leavesOf(w.node)
}
