// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package axml

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStringPoolUTF8(t *testing.T) {
	long := strings.Repeat("x", 300)
	want := []string{"", "manifest", "日本語", long}
	p, err := ReadStringPool(testUTF8Pool(want...))
	if err != nil {
		t.Fatalf("ReadStringPool=_, %v; want nil error", err)
	}
	if !p.IsUTF8() {
		t.Errorf("p.IsUTF8()=false; want true")
	}
	if diff := cmp.Diff(want, p.Strings()); diff != "" {
		t.Errorf("p.Strings() mismatch (-want +got):\n%s", diff)
	}
	// cached.
	if got := p.String(2); got != "日本語" {
		t.Errorf("p.String(2)=%q; want %q", got, "日本語")
	}
}

func TestStringPoolUTF16(t *testing.T) {
	long := strings.Repeat("y", 0x8100)
	want := []string{"android", "", "ünïcödé", "😀", long}
	buf, err := encodeStringPool(want)
	if err != nil {
		t.Fatalf("encodeStringPool=_, %v; want nil error", err)
	}
	p, err := ReadStringPool(buf)
	if err != nil {
		t.Fatalf("ReadStringPool=_, %v; want nil error", err)
	}
	if p.IsUTF8() {
		t.Errorf("p.IsUTF8()=true; want false")
	}
	if p.Len() != len(want) {
		t.Fatalf("p.Len()=%d; want %d", p.Len(), len(want))
	}
	for i, w := range want {
		got, ok := p.Get(uint32(i))
		if !ok || got != w {
			t.Errorf("p.Get(%d)=%.20q, %t; want %.20q, true", i, got, ok, w)
		}
	}
}

func TestStringPoolOutOfRange(t *testing.T) {
	p, err := ReadStringPool(testUTF8Pool("a", "b"))
	if err != nil {
		t.Fatalf("ReadStringPool=_, %v; want nil error", err)
	}
	for _, i := range []uint32{2, 100, noIndex} {
		got, ok := p.Get(i)
		if ok || got != "" {
			t.Errorf("p.Get(%d)=%q, %t; want \"\", false", i, got, ok)
		}
	}
	var nilPool *StringPool
	if got := nilPool.String(0); got != "" {
		t.Errorf("nil.String(0)=%q; want \"\"", got)
	}
}

func TestStringPoolBroken(t *testing.T) {
	for _, tc := range []struct {
		name string
		buf  []byte
	}{
		{
			name: "not a string pool",
			buf:  testChunk(ChunkResourceMap, chunkHeaderSize, le32(1)),
		},
		{
			name: "string data not aligned",
			buf: testChunk(ChunkStringPool, stringPoolHdrSize,
				le32(1, 0, StringPoolUTF8, stringPoolHdrSize+4, 0),
				le32(0),
				[]byte{1, 1, 'a'}),
		},
		{
			name: "too many strings",
			buf: testChunk(ChunkStringPool, stringPoolHdrSize,
				le32(1000, 0, StringPoolUTF8, stringPoolHdrSize+4000, 0)),
		},
		{
			name: "strings start past end",
			buf: testChunk(ChunkStringPool, stringPoolHdrSize,
				le32(1, 0, 0, 1000, 0),
				le32(0)),
		},
		{
			name: "style data not aligned",
			buf: testChunk(ChunkStringPool, stringPoolHdrSize,
				le32(1, 1, StringPoolUTF8, stringPoolHdrSize+8, stringPoolHdrSize+12),
				le32(0, 0),
				[]byte{1, 1, 'a', 0},
				[]byte{0, 0}),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadStringPool(tc.buf)
			if err == nil {
				t.Errorf("ReadStringPool=_, nil; want error")
			}
		})
	}
}

func TestStringPoolMalformedString(t *testing.T) {
	// utf8 length larger than the data.
	buf := testChunk(ChunkStringPool, stringPoolHdrSize,
		le32(1, 0, StringPoolUTF8, stringPoolHdrSize+4, 0),
		le32(0),
		[]byte{5, 5, 'a', 0})
	p, err := ReadStringPool(buf)
	if err != nil {
		t.Fatalf("ReadStringPool=_, %v; want nil error", err)
	}
	got, ok := p.Get(0)
	if ok {
		t.Errorf("p.Get(0)=%q, true; want false", got)
	}
}
