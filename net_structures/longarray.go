package net_structures

import (
	"encoding/binary"
	"errors"
)

// LongArray is a bit-packed array of fixed-width unsigned entries, used for
// chunk section block/biome palette indices and heightmaps. Entries are
// packed LSB-first into 64-bit words; a new word starts whenever the
// remaining bits in the current word are fewer than BitsPerEntry (entries
// never straddle a word boundary). Encoded as a VarInt word count followed
// by that many big-endian 64-bit words.
//
// https://minecraft.wiki/w/Chunk_format#Block_states
type LongArray struct {
	BitsPerEntry int
	Entries      []uint64
}

// NewLongArray packs the given entries at bitsPerEntry bits each.
func NewLongArray(bitsPerEntry int, entries []uint64) LongArray {
	return LongArray{BitsPerEntry: bitsPerEntry, Entries: entries}
}

func (l LongArray) perWord() int {
	if l.BitsPerEntry <= 0 {
		return 0
	}
	return 64 / l.BitsPerEntry
}

// Words packs l.Entries into 64-bit words per the rule above.
func (l LongArray) Words() []uint64 {
	perWord := l.perWord()
	if perWord == 0 {
		return nil
	}
	mask := uint64(1)<<uint(l.BitsPerEntry) - 1
	words := make([]uint64, 0, (len(l.Entries)+perWord-1)/perWord)

	var word uint64
	var used int
	for _, e := range l.Entries {
		word |= (e & mask) << uint(used*l.BitsPerEntry)
		used++
		if used == perWord {
			words = append(words, word)
			word = 0
			used = 0
		}
	}
	if used > 0 {
		words = append(words, word)
	}
	return words
}

func (l LongArray) ToBytes() (ByteArray, error) {
	if l.BitsPerEntry <= 0 || l.BitsPerEntry > 64 {
		return nil, errors.New("bits per entry out of range")
	}
	words := l.Words()

	result, err := VarInt(len(words)).ToBytes()
	if err != nil {
		return nil, err
	}
	for _, w := range words {
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, w)
		result = append(result, buf...)
	}
	return result, nil
}

// FromBytes decodes the wire form. BitsPerEntry must already be set on the
// receiver (it is not carried on the wire) together with the number of
// entries the caller expects to extract via Unpack.
func (l *LongArray) FromBytes(data ByteArray) (int, error) {
	var count VarInt
	read, err := count.FromBytes(data)
	if err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, errors.New("negative LongArray word count")
	}

	need := read + int(count)*8
	if len(data) < need {
		return 0, errors.New("insufficient data for LongArray")
	}

	words := make([]uint64, count)
	offset := read
	for i := range words {
		words[i] = binary.BigEndian.Uint64(data[offset : offset+8])
		offset += 8
	}

	if l.BitsPerEntry > 0 {
		l.Entries = unpackWords(words, l.BitsPerEntry)
	}
	return offset, nil
}

// Unpack extracts the packed entries given the number of entries expected
// and the receiver's BitsPerEntry; useful after FromBytes when the entry
// count is known out of band (e.g. 4096 block positions in a section).
func (l LongArray) Unpack(count int) []uint64 {
	words := l.Words()
	entries := unpackWords(words, l.BitsPerEntry)
	if len(entries) > count {
		entries = entries[:count]
	}
	return entries
}

func unpackWords(words []uint64, bitsPerEntry int) []uint64 {
	if bitsPerEntry <= 0 {
		return nil
	}
	perWord := 64 / bitsPerEntry
	mask := uint64(1)<<uint(bitsPerEntry) - 1

	entries := make([]uint64, 0, len(words)*perWord)
	for _, w := range words {
		for i := 0; i < perWord; i++ {
			entries = append(entries, (w>>uint(i*bitsPerEntry))&mask)
		}
	}
	return entries
}
