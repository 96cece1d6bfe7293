// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package axml

import (
	"encoding/binary"
	"fmt"
)

// reader reads little-endian fields from buf.
// Once an error happens, all subsequent reads return zero values
// and err keeps the first error.
type reader struct {
	buf []byte
	pos int
	err error
}

func (r *reader) fail(format string, args ...any) {
	if r.err != nil {
		return
	}
	r.err = fmt.Errorf(format, args...)
}

func (r *reader) need(n int, fieldName string) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || r.pos+n > len(r.buf) {
		r.fail("not enough data for %s at %d: need %d, have %d", fieldName, r.pos, n, len(r.buf)-r.pos)
		return false
	}
	return true
}

func (r *reader) Uint8(fieldName string) uint8 {
	if !r.need(1, fieldName) {
		return 0
	}
	v := r.buf[r.pos]
	r.pos++
	return v
}

func (r *reader) Uint16(fieldName string) uint16 {
	if !r.need(2, fieldName) {
		return 0
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v
}

func (r *reader) Uint32(fieldName string) uint32 {
	if !r.need(4, fieldName) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v
}

func (r *reader) Uint32s(n int, fieldName string) []uint32 {
	if !r.need(4*n, fieldName) {
		return nil
	}
	v := make([]uint32, n)
	for i := range v {
		v[i] = binary.LittleEndian.Uint32(r.buf[r.pos:])
		r.pos += 4
	}
	return v
}

func (r *reader) Bytes(n int, fieldName string) []byte {
	if !r.need(n, fieldName) {
		return nil
	}
	v := r.buf[r.pos : r.pos+n]
	r.pos += n
	return v
}

func (r *reader) Skip(n int, fieldName string) {
	if !r.need(n, fieldName) {
		return
	}
	r.pos += n
}

// Seek moves to absolute position pos.
func (r *reader) Seek(pos int, fieldName string) {
	if r.err != nil {
		return
	}
	if pos < 0 || pos > len(r.buf) {
		r.fail("out of range %s=%d (size=%d)", fieldName, pos, len(r.buf))
		return
	}
	r.pos = pos
}
