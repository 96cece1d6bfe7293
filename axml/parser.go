// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package axml

import (
	"fmt"
	"io"
)

// Node holds information common to all XML tree nodes.
type Node struct {
	Chunk   ChunkHeader
	Line    uint32
	Comment string
}

// Position returns the node information.
func (n Node) Position() Node { return n }

// Event is a parse event returned by Parser.Next.
// It is one of *StartNamespace, *EndNamespace, *StartElement,
// *EndElement or *CharData.
type Event interface {
	Position() Node
}

// StartNamespace starts a namespace mapping.
type StartNamespace struct {
	Node
	Prefix string
	URI    string
}

// EndNamespace ends a namespace mapping.
type EndNamespace struct {
	Node
	Prefix string
	URI    string
}

// StartElement is a start tag.
type StartElement struct {
	Node
	Namespace string
	Name      string
	Attrs     []Attr

	// 1-based indices of the id, class and style attributes. 0 means none.
	IDIndex    uint16
	ClassIndex uint16
	StyleIndex uint16
}

// EndElement is an end tag.
type EndElement struct {
	Node
	Namespace string
	Name      string
}

// CharData is a text node.
type CharData struct {
	Node
	Text  string
	Value Value
}

// Attr is an attribute of an element.
type Attr struct {
	Namespace string
	Name      string

	// ResourceID is the resource id of the attribute name,
	// or 0 if the name is not in the resource map.
	ResourceID uint32

	// Raw is the original string value, valid if HasRaw.
	Raw    string
	HasRaw bool

	Value Value
}

// String returns textual value of the attribute.
func (a Attr) String() string {
	if a.HasRaw {
		return a.Raw
	}
	return a.Value.String()
}

// Parser is a pull parser of binary XML.
type Parser struct {
	r      *reader
	size   int
	pool   *StringPool
	resIDs []uint32
	err    error

	// Trace is called for each chunk read, if set.
	Trace func(ChunkHeader)
}

// NewParser creates a parser for binary XML in buf.
func NewParser(buf []byte) (*Parser, error) {
	r := &reader{buf: buf}
	typ := ChunkType(r.Uint16("xml.type"))
	headerSize := r.Uint16("xml.headerSize")
	size := r.Uint32("xml.size")
	if r.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, r.err)
	}
	if typ != ChunkXML {
		return nil, fmt.Errorf("%w: file type 0x%08x", ErrInvalidFile, uint32(headerSize)<<16|uint32(typ))
	}
	if headerSize < chunkHeaderSize || size < uint32(headerSize) {
		return nil, fmt.Errorf("%w: header=%d size=%d", ErrInvalidFile, headerSize, size)
	}
	n := len(buf)
	if uint64(size) < uint64(n) {
		n = int(size)
	}
	if int(headerSize) > n {
		return nil, fmt.Errorf("%w: header size %d exceeds file size %d", ErrInvalidFile, headerSize, n)
	}
	r.buf = buf[:n]
	r.pos = int(headerSize)
	return &Parser{
		r:    r,
		size: int(size),
	}, nil
}

// Size returns the document size declared in the file header.
func (p *Parser) Size() int {
	return p.size
}

// StringPool returns the string pool read so far.
func (p *Parser) StringPool() *StringPool {
	return p.pool
}

// ResourceIDs returns the resource map read so far.
func (p *Parser) ResourceIDs() []uint32 {
	return p.resIDs
}

// Next returns next event. It returns io.EOF at the end of document.
func (p *Parser) Next() (Event, error) {
	for {
		if p.err != nil {
			return nil, p.err
		}
		if p.r.pos >= len(p.r.buf) {
			return nil, io.EOF
		}
		h := readChunkHeader(p.r)
		if p.r.err != nil {
			p.err = fmt.Errorf("chunk at %d: %w", h.Offset, p.r.err)
			return nil, p.err
		}
		if p.Trace != nil {
			p.Trace(h)
		}
		switch h.Type {
		case ChunkStringPool:
			pool, err := readStringPool(p.r, h)
			if err != nil {
				p.err = fmt.Errorf("chunk at %d: %w", h.Offset, err)
				return nil, p.err
			}
			p.pool = pool
		case ChunkResourceMap:
			p.r.Seek(h.body(), "resource map")
			p.resIDs = append(p.resIDs, p.r.Uint32s(int(h.Size-uint32(h.HeaderSize))/4, "resource ids")...)
		case ChunkStartNamespace, ChunkEndNamespace, ChunkStartElement, ChunkEndElement, ChunkCData:
			ev := p.readNode(h)
			p.r.Seek(h.end(), "chunk end")
			if p.r.err != nil {
				p.err = fmt.Errorf("%s: %w", h, p.r.err)
				return nil, p.err
			}
			return ev, nil
		default:
			// unknown chunk.
		}
		p.r.Seek(h.end(), "chunk end")
	}
}

func (p *Parser) str(i uint32) string {
	if i == noIndex {
		return ""
	}
	return p.pool.String(i)
}

func (p *Parser) readNode(h ChunkHeader) Event {
	r := p.r
	if h.HeaderSize < nodeHeaderSize {
		r.fail("node header size %d too small", h.HeaderSize)
		return nil
	}
	n := Node{Chunk: h}
	n.Line = r.Uint32("node.lineNumber")
	n.Comment = p.str(r.Uint32("node.comment"))
	r.Seek(h.body(), "node ext")
	switch h.Type {
	case ChunkStartNamespace:
		ev := &StartNamespace{Node: n}
		ev.Prefix = p.str(r.Uint32("namespace.prefix"))
		ev.URI = p.str(r.Uint32("namespace.uri"))
		return ev
	case ChunkEndNamespace:
		ev := &EndNamespace{Node: n}
		ev.Prefix = p.str(r.Uint32("namespace.prefix"))
		ev.URI = p.str(r.Uint32("namespace.uri"))
		return ev
	case ChunkStartElement:
		return p.readStartElement(n)
	case ChunkEndElement:
		ev := &EndElement{Node: n}
		ev.Namespace = p.str(r.Uint32("element.ns"))
		ev.Name = p.str(r.Uint32("element.name"))
		return ev
	case ChunkCData:
		ev := &CharData{Node: n}
		ev.Text = p.str(r.Uint32("cdata.data"))
		ev.Value = readValue(r)
		return ev
	}
	return nil
}

func (p *Parser) readStartElement(n Node) *StartElement {
	r := p.r
	ext := r.pos
	ev := &StartElement{Node: n}
	ev.Namespace = p.str(r.Uint32("element.ns"))
	ev.Name = p.str(r.Uint32("element.name"))
	attrStart := r.Uint16("element.attributeStart")
	attrSize := r.Uint16("element.attributeSize")
	attrCount := r.Uint16("element.attributeCount")
	ev.IDIndex = r.Uint16("element.idIndex")
	ev.ClassIndex = r.Uint16("element.classIndex")
	ev.StyleIndex = r.Uint16("element.styleIndex")
	if r.err != nil {
		return nil
	}
	if attrCount > 0 && attrSize < attributeSize {
		r.fail("element %s: attribute size %d too small", ev.Name, attrSize)
		return nil
	}
	if end := ext + int(attrStart) + int(attrCount)*int(attrSize); end > n.Chunk.end() {
		r.fail("element %s: %d attributes exceed chunk end %d", ev.Name, attrCount, n.Chunk.end())
		return nil
	}
	ev.Attrs = make([]Attr, 0, attrCount)
	for i := 0; i < int(attrCount); i++ {
		r.Seek(ext+int(attrStart)+i*int(attrSize), "attribute")
		var a Attr
		a.Namespace = p.str(r.Uint32("attr.ns"))
		nameIdx := r.Uint32("attr.name")
		a.Name = p.str(nameIdx)
		if uint64(nameIdx) < uint64(len(p.resIDs)) {
			a.ResourceID = p.resIDs[nameIdx]
		}
		if a.Name == "" && a.ResourceID != 0 {
			a.Name, _ = AttrName(a.ResourceID)
		}
		raw := r.Uint32("attr.rawValue")
		if raw != noIndex {
			a.Raw = p.str(raw)
			a.HasRaw = true
		}
		a.Value = readValue(r)
		if a.Value.Type == TypeString {
			a.Value.Str = p.str(a.Value.Data)
		}
		if r.err != nil {
			return nil
		}
		ev.Attrs = append(ev.Attrs, a)
	}
	return ev
}
