// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package axml reads and writes Android binary XML (AXML), the compiled
// form of AndroidManifest.xml and layout files found in APKs.
//
// Format:
// https://android.googlesource.com/platform/frameworks/base/+/refs/heads/main/libs/androidfw/include/androidfw/ResourceTypes.h
package axml

import (
	"errors"
	"fmt"
)

// ChunkType is the type of a resource chunk.
type ChunkType uint16

// Chunk types used in binary XML.
const (
	ChunkStringPool     ChunkType = 0x0001
	ChunkXML            ChunkType = 0x0003
	ChunkStartNamespace ChunkType = 0x0100
	ChunkEndNamespace   ChunkType = 0x0101
	ChunkStartElement   ChunkType = 0x0102
	ChunkEndElement     ChunkType = 0x0103
	ChunkCData          ChunkType = 0x0104
	ChunkResourceMap    ChunkType = 0x0180
)

func (t ChunkType) String() string {
	switch t {
	case ChunkStringPool:
		return "StringPool"
	case ChunkXML:
		return "XML"
	case ChunkStartNamespace:
		return "StartNamespace"
	case ChunkEndNamespace:
		return "EndNamespace"
	case ChunkStartElement:
		return "StartElement"
	case ChunkEndElement:
		return "EndElement"
	case ChunkCData:
		return "CData"
	case ChunkResourceMap:
		return "ResourceMap"
	}
	return fmt.Sprintf("ChunkType(0x%04x)", uint16(t))
}

const (
	chunkHeaderSize   = 8
	nodeHeaderSize    = 16
	stringPoolHdrSize = 28
	attributeSize     = 20
	attrExtSize       = 20

	// noIndex marks an absent string reference.
	noIndex = 0xFFFFFFFF
)

// ErrInvalidFile is returned when the input doesn't start with
// an XML chunk.
var ErrInvalidFile = errors.New("invalid AXML file")

// ChunkHeader is the header common to all chunks.
type ChunkHeader struct {
	// Offset is the position of the chunk in the file.
	Offset int

	Type       ChunkType
	HeaderSize uint16
	Size       uint32
}

// Word returns type and header size combined in a single 32-bit word,
// as they are laid out in the file.
func (h ChunkHeader) Word() uint32 {
	return uint32(h.HeaderSize)<<16 | uint32(h.Type)
}

func (h ChunkHeader) String() string {
	return fmt.Sprintf("%s@%d header=%d size=%d", h.Type, h.Offset, h.HeaderSize, h.Size)
}

func readChunkHeader(r *reader) ChunkHeader {
	h := ChunkHeader{Offset: r.pos}
	h.Type = ChunkType(r.Uint16("chunk.type"))
	h.HeaderSize = r.Uint16("chunk.headerSize")
	h.Size = r.Uint32("chunk.size")
	if r.err != nil {
		return h
	}
	if h.HeaderSize < chunkHeaderSize {
		r.fail("chunk %s: header size %d too small", h, h.HeaderSize)
	} else if h.Size < uint32(h.HeaderSize) {
		r.fail("chunk %s: size smaller than header", h)
	} else if uint64(h.Offset)+uint64(h.Size) > uint64(len(r.buf)) {
		r.fail("chunk %s: exceeds file size %d", h, len(r.buf))
	}
	return h
}

// end returns the position just after the chunk.
func (h ChunkHeader) end() int {
	return h.Offset + int(h.Size)
}

// body returns the position just after the chunk header.
func (h ChunkHeader) body() int {
	return h.Offset + int(h.HeaderSize)
}
