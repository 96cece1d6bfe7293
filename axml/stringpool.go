// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package axml

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// String pool flags.
const (
	StringPoolSorted = 0x1
	StringPoolUTF8   = 0x100
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// StringPool is a string pool chunk.
// Strings are decoded on first access.
type StringPool struct {
	flags   uint32
	offsets []uint32
	data    []byte
	styles  []uint32

	decoded []string
	done    []bool
}

// ReadStringPool reads a string pool chunk from buf.
func ReadStringPool(buf []byte) (*StringPool, error) {
	r := &reader{buf: buf}
	h := readChunkHeader(r)
	if r.err != nil {
		return nil, r.err
	}
	if h.Type != ChunkStringPool {
		return nil, fmt.Errorf("not a string pool chunk: %s", h)
	}
	return readStringPool(r, h)
}

func readStringPool(r *reader, h ChunkHeader) (*StringPool, error) {
	stringCount := r.Uint32("stringCount")
	styleCount := r.Uint32("styleCount")
	flags := r.Uint32("flags")
	stringsStart := r.Uint32("stringsStart")
	stylesStart := r.Uint32("stylesStart")
	if r.err != nil {
		return nil, fmt.Errorf("string pool header: %w", r.err)
	}
	if uint64(stringCount)*4 > uint64(h.Size) || uint64(styleCount)*4 > uint64(h.Size) {
		return nil, fmt.Errorf("string pool: too many entries strings=%d styles=%d size=%d", stringCount, styleCount, h.Size)
	}
	r.Seek(h.body(), "string offsets")
	p := &StringPool{flags: flags}
	p.offsets = r.Uint32s(int(stringCount), "string offsets")
	if styleCount != 0 {
		// style offsets are not needed for text; skip them.
		r.Skip(int(styleCount)*4, "style offsets")
	}
	if r.err != nil {
		return nil, fmt.Errorf("string pool: %w", r.err)
	}
	if stringCount > 0 {
		end := h.Size
		if stylesStart != 0 {
			end = stylesStart
		}
		if stringsStart > end || end > h.Size {
			return nil, fmt.Errorf("string pool: bad strings range [%d,%d) size=%d", stringsStart, end, h.Size)
		}
		size := end - stringsStart
		if size%4 != 0 {
			return nil, fmt.Errorf("string data size is not multiple of 4 (%d)", size)
		}
		r.Seek(h.Offset+int(stringsStart), "strings")
		p.data = r.Bytes(int(size), "strings")
	}
	if stylesStart != 0 {
		if stylesStart > h.Size {
			return nil, fmt.Errorf("string pool: bad styles start %d size=%d", stylesStart, h.Size)
		}
		size := h.Size - stylesStart
		if size%4 != 0 {
			return nil, fmt.Errorf("style data size is not multiple of 4 (%d)", size)
		}
		r.Seek(h.Offset+int(stylesStart), "styles")
		p.styles = r.Uint32s(int(size/4), "styles")
	}
	if r.err != nil {
		return nil, fmt.Errorf("string pool: %w", r.err)
	}
	r.Seek(h.end(), "string pool end")
	p.decoded = make([]string, len(p.offsets))
	p.done = make([]bool, len(p.offsets))
	return p, nil
}

// Len returns the number of strings in the pool.
func (p *StringPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.offsets)
}

// IsUTF8 reports whether strings are encoded in UTF-8 rather than UTF-16.
func (p *StringPool) IsUTF8() bool {
	return p != nil && p.flags&StringPoolUTF8 != 0
}

// Get returns i-th string.
// It returns false if i is out of range or the string is malformed.
func (p *StringPool) Get(i uint32) (string, bool) {
	if p == nil || uint64(i) >= uint64(len(p.offsets)) {
		return "", false
	}
	if p.done[i] {
		return p.decoded[i], true
	}
	s, err := p.decode(p.offsets[i])
	if err != nil {
		return "", false
	}
	p.decoded[i] = s
	p.done[i] = true
	return s, true
}

// String returns i-th string, or "" if it is not available.
func (p *StringPool) String(i uint32) string {
	s, _ := p.Get(i)
	return s
}

// Strings returns all strings in the pool.
func (p *StringPool) Strings() []string {
	ss := make([]string, p.Len())
	for i := range ss {
		ss[i] = p.String(uint32(i))
	}
	return ss
}

func (p *StringPool) decode(off uint32) (string, error) {
	if uint64(off) >= uint64(len(p.data)) {
		return "", fmt.Errorf("string offset %d out of range %d", off, len(p.data))
	}
	b := p.data[off:]
	if p.IsUTF8() {
		// utf16 length, then utf8 length.
		_, n := utf8Length(b)
		if n == 0 {
			return "", fmt.Errorf("bad utf16 length at %d", off)
		}
		b = b[n:]
		length, n := utf8Length(b)
		if n == 0 || n+length > len(b) {
			return "", fmt.Errorf("bad utf8 length at %d", off)
		}
		s := b[n : n+length]
		if !utf8.Valid(s) {
			return "", fmt.Errorf("invalid utf8 at %d", off)
		}
		return string(s), nil
	}
	length, n := utf16Length(b)
	if n == 0 || n+2*length > len(b) {
		return "", fmt.Errorf("bad utf16 length at %d", off)
	}
	s, err := utf16le.NewDecoder().Bytes(b[n : n+2*length])
	if err != nil {
		return "", err
	}
	return string(s), nil
}

// utf8Length decodes a length encoded in one or two bytes.
// It returns decoded length and number of bytes used, or 0 if b is too short.
func utf8Length(b []byte) (int, int) {
	if len(b) < 1 {
		return 0, 0
	}
	if b[0]&0x80 == 0 {
		return int(b[0]), 1
	}
	if len(b) < 2 {
		return 0, 0
	}
	return int(b[0]&0x7F)<<8 | int(b[1]), 2
}

// utf16Length decodes a length encoded in one or two uint16.
func utf16Length(b []byte) (int, int) {
	if len(b) < 2 {
		return 0, 0
	}
	v := binary.LittleEndian.Uint16(b)
	if v&0x8000 == 0 {
		return int(v), 2
	}
	if len(b) < 4 {
		return 0, 0
	}
	return int(v&0x7FFF)<<16 | int(binary.LittleEndian.Uint16(b[2:])), 4
}
