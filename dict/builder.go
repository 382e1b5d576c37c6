package dict

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/npillmayer/zhuyin"
)

// A Builder collects phrase entries and serializes them into the two
// dictionary files. It is used by the dictionary compiler and by tests.
type Builder struct {
	root  *builderNode
	count int
}

type builderNode struct {
	children map[zhuyin.Syllable]*builderNode
	phrases  []Phrase
}

func newBuilderNode() *builderNode {
	return &builderNode{children: make(map[zhuyin.Syllable]*builderNode)}
}

// NewBuilder creates an empty dictionary builder.
func NewBuilder() *Builder {
	return &Builder{root: newBuilderNode()}
}

// Insert adds a phrase under a syllable sequence. The sequence length
// must equal the phrase length in characters; every syllable must carry
// a tone; the frequency must fit 24 bits.
func (b *Builder) Insert(seq []zhuyin.Syllable, text string, freq uint32) error {
	if len(seq) == 0 || len(seq) > MaxPhraseLen {
		return fmt.Errorf("phrase %q: sequence length %d out of range", text, len(seq))
	}
	if utf8.RuneCountInString(text) != len(seq) {
		return fmt.Errorf("phrase %q: %d characters under %d syllables",
			text, utf8.RuneCountInString(text), len(seq))
	}
	if freq > slot24Max {
		return fmt.Errorf("phrase %q: frequency %d exceeds 24 bits", text, freq)
	}
	for _, syl := range seq {
		if !syl.Valid() || !syl.HasTone() {
			return fmt.Errorf("phrase %q: %s is not a sealed syllable", text, syl)
		}
	}
	node := b.root
	for _, syl := range seq {
		child, ok := node.children[syl]
		if !ok {
			child = newBuilderNode()
			node.children[syl] = child
		}
		node = child
	}
	for _, phrase := range node.phrases {
		if phrase.Text == text {
			return fmt.Errorf("phrase %q: duplicate entry", text)
		}
	}
	node.phrases = append(node.phrases, Phrase{Text: text, Freq: freq})
	b.count++
	return nil
}

// Build serializes the collected entries into the phrase tree and phrase
// arena blobs.
//
// Nodes are laid out in breadth-first order so that the children of any
// node occupy one contiguous index range: leaves first (sorted by
// descending frequency, which also orders their arena offsets
// ascending), then internal children sorted ascending by key.
func (b *Builder) Build() (treeData, dictData []byte, err error) {
	var arena bytes.Buffer
	type pending struct {
		node *builderNode
		inx  uint32
	}
	type record struct {
		key          uint16
		slotA, slotB uint32
	}
	// records are appended node by node; slots are patched when the
	// child range of a node is allocated
	records := make([]record, 1)
	rootCount := b.count
	if rootCount > 0xffff {
		tracer().Infof("phrase count %d saturates the root sentinel", rootCount)
		rootCount = 0xffff
	}
	records[0].key = uint16(rootCount)

	queue := []pending{{b.root, 0}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		node := item.node

		begin := uint32(len(records))

		phrases := append([]Phrase{}, node.phrases...)
		sort.SliceStable(phrases, func(i, j int) bool {
			return phrases[i].Freq > phrases[j].Freq
		})
		for _, phrase := range phrases {
			pos := uint32(arena.Len())
			if pos > slot24Max {
				return nil, nil, fmt.Errorf("phrase arena exceeds 24-bit offsets")
			}
			arena.WriteString(phrase.Text)
			arena.WriteByte(0)
			records = append(records, record{0, pos, phrase.Freq})
		}

		keys := make([]zhuyin.Syllable, 0, len(node.children))
		for syl := range node.children {
			keys = append(keys, syl)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, syl := range keys {
			childInx := uint32(len(records))
			records = append(records, record{uint16(syl), 0, 0})
			queue = append(queue, pending{node.children[syl], childInx})
		}

		end := uint32(len(records))
		if end > slot24Max {
			return nil, nil, fmt.Errorf("phrase tree exceeds 24-bit node indexes")
		}
		records[item.inx].slotA = begin
		records[item.inx].slotB = end
	}

	var tree bytes.Buffer
	for _, rec := range records {
		var buf [nodeSize]byte
		binary.LittleEndian.PutUint16(buf[0:2], rec.key)
		binary.LittleEndian.PutUint32(buf[2:6], rec.slotA)
		binary.LittleEndian.PutUint32(buf[6:10], rec.slotB)
		tree.Write(buf[:])
	}
	tracer().Debugf("built phrase tree: %d nodes, %d phrases, arena %d bytes",
		len(records), b.count, arena.Len())
	return tree.Bytes(), arena.Bytes(), nil
}

// WriteFiles serializes the collected entries to a phrase tree file and
// a phrase arena file.
func (b *Builder) WriteFiles(treePath, dictPath string) error {
	treeData, dictData, err := b.Build()
	if err != nil {
		return err
	}
	if err := os.WriteFile(treePath, treeData, 0644); err != nil {
		return fmt.Errorf("write phrase tree: %w", err)
	}
	if err := os.WriteFile(dictPath, dictData, 0644); err != nil {
		return fmt.Errorf("write phrase arena: %w", err)
	}
	return nil
}
