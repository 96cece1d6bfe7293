// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package axml

import (
	"encoding/binary"
	"fmt"
)

// stringTable builds a string pool.
// Attribute names with resource ids come first, in the same order
// as the resource map.
type stringTable struct {
	strs   []string
	resIDs []uint32

	mapped map[Attr]uint32
	index  map[string]uint32
}

func newStringTable() *stringTable {
	return &stringTable{
		mapped: make(map[Attr]uint32),
		index:  make(map[string]uint32),
	}
}

func mappedKey(a Attr) Attr {
	return Attr{Name: a.Name, ResourceID: a.ResourceID}
}

func (t *stringTable) addMapped(a Attr) {
	k := mappedKey(a)
	if _, ok := t.mapped[k]; ok {
		return
	}
	t.mapped[k] = uint32(len(t.strs))
	t.strs = append(t.strs, a.Name)
	t.resIDs = append(t.resIDs, a.ResourceID)
}

func (t *stringTable) add(s string) {
	if _, ok := t.index[s]; ok {
		return
	}
	t.index[s] = uint32(len(t.strs))
	t.strs = append(t.strs, s)
}

// ref returns index of s, or noIndex for "".
func (t *stringTable) ref(s string) uint32 {
	if s == "" {
		return noIndex
	}
	return t.index[s]
}

func (t *stringTable) attrName(a Attr) uint32 {
	if a.ResourceID != 0 {
		return t.mapped[mappedKey(a)]
	}
	return t.index[a.Name]
}

func (t *stringTable) collectMapped(e *Element) {
	for _, a := range e.Attrs {
		if a.ResourceID != 0 {
			t.addMapped(a)
		}
	}
	for _, c := range e.Children {
		t.collectMapped(c)
	}
}

func (t *stringTable) collect(e *Element) {
	for _, ns := range e.NSDecls {
		t.add(ns.Prefix)
		t.add(ns.URI)
	}
	if e.Comment != "" {
		t.add(e.Comment)
	}
	if e.Namespace != "" {
		t.add(e.Namespace)
	}
	t.add(e.Name)
	for _, a := range e.Attrs {
		if a.Namespace != "" {
			t.add(a.Namespace)
		}
		if a.ResourceID == 0 {
			t.add(a.Name)
		}
		if a.HasRaw {
			t.add(a.Raw)
		}
		if a.Value.Type == TypeString {
			t.add(a.Value.Str)
		}
	}
	if e.Text != "" {
		t.add(e.Text)
	}
	for _, c := range e.Children {
		t.collect(c)
	}
}

type chunkWriter struct {
	buf []byte
}

func (w *chunkWriter) u8(v uint8)   { w.buf = append(w.buf, v) }
func (w *chunkWriter) u16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }
func (w *chunkWriter) u32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }

func (w *chunkWriter) header(t ChunkType, headerSize uint16, size int) {
	w.u16(uint16(t))
	w.u16(headerSize)
	w.u32(uint32(size))
}

func (w *chunkWriter) value(v Value) {
	w.u16(8)
	w.u8(0)
	w.u8(uint8(v.Type))
	w.u32(v.Data)
}

// Encode serializes the document to binary XML.
func Encode(doc *Document) ([]byte, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("no root element")
	}
	t := newStringTable()
	t.collectMapped(doc.Root)
	t.collect(doc.Root)

	pool, err := encodeStringPool(t.strs)
	if err != nil {
		return nil, err
	}
	w := &chunkWriter{}
	// header is fixed up at the end.
	w.header(ChunkXML, chunkHeaderSize, 0)
	w.buf = append(w.buf, pool...)
	if len(t.resIDs) > 0 {
		w.header(ChunkResourceMap, chunkHeaderSize, chunkHeaderSize+4*len(t.resIDs))
		for _, id := range t.resIDs {
			w.u32(id)
		}
	}
	encodeElement(w, t, doc.Root)
	binary.LittleEndian.PutUint32(w.buf[4:], uint32(len(w.buf)))
	return w.buf, nil
}

func encodeElement(w *chunkWriter, t *stringTable, e *Element) {
	for _, ns := range e.NSDecls {
		w.header(ChunkStartNamespace, nodeHeaderSize, nodeHeaderSize+8)
		w.u32(e.Line)
		w.u32(noIndex)
		w.u32(t.index[ns.Prefix])
		w.u32(t.index[ns.URI])
	}

	w.header(ChunkStartElement, nodeHeaderSize, nodeHeaderSize+attrExtSize+attributeSize*len(e.Attrs))
	w.u32(e.Line)
	w.u32(t.ref(e.Comment))
	w.u32(t.ref(e.Namespace))
	w.u32(t.index[e.Name])
	w.u16(attrExtSize)
	w.u16(attributeSize)
	w.u16(uint16(len(e.Attrs)))
	var idIndex uint16
	for i, a := range e.Attrs {
		if a.Namespace == AndroidNS && a.Name == "id" {
			idIndex = uint16(i + 1)
		}
	}
	w.u16(idIndex)
	w.u16(0) // class
	w.u16(0) // style
	for _, a := range e.Attrs {
		w.u32(t.ref(a.Namespace))
		w.u32(t.attrName(a))
		if a.HasRaw {
			w.u32(t.index[a.Raw])
		} else {
			w.u32(noIndex)
		}
		v := a.Value
		if v.Type == TypeString {
			v.Data = t.index[v.Str]
		}
		w.value(v)
	}

	if e.Text != "" {
		w.header(ChunkCData, nodeHeaderSize, nodeHeaderSize+4+8)
		w.u32(e.Line)
		w.u32(noIndex)
		w.u32(t.index[e.Text])
		w.value(Value{Type: TypeNull})
	}
	for _, c := range e.Children {
		encodeElement(w, t, c)
	}

	w.header(ChunkEndElement, nodeHeaderSize, nodeHeaderSize+8)
	w.u32(e.Line)
	w.u32(noIndex)
	w.u32(t.ref(e.Namespace))
	w.u32(t.index[e.Name])

	for i := len(e.NSDecls) - 1; i >= 0; i-- {
		ns := e.NSDecls[i]
		w.header(ChunkEndNamespace, nodeHeaderSize, nodeHeaderSize+8)
		w.u32(e.Line)
		w.u32(noIndex)
		w.u32(t.index[ns.Prefix])
		w.u32(t.index[ns.URI])
	}
}

// encodeStringPool encodes strs as a UTF-16 string pool chunk.
func encodeStringPool(strs []string) ([]byte, error) {
	var data []byte
	offsets := make([]uint32, len(strs))
	enc := utf16le.NewEncoder()
	for i, s := range strs {
		offsets[i] = uint32(len(data))
		b, err := enc.Bytes([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("encode string %q: %w", s, err)
		}
		n := len(b) / 2
		if n > 0x7FFF {
			data = binary.LittleEndian.AppendUint16(data, uint16(n>>16)|0x8000)
		}
		data = binary.LittleEndian.AppendUint16(data, uint16(n))
		data = append(data, b...)
		data = append(data, 0, 0)
	}
	for len(data)%4 != 0 {
		data = append(data, 0)
	}
	stringsStart := stringPoolHdrSize + 4*len(strs)
	w := &chunkWriter{}
	w.header(ChunkStringPool, stringPoolHdrSize, stringsStart+len(data))
	w.u32(uint32(len(strs)))
	w.u32(0) // styleCount
	w.u32(0) // flags
	w.u32(uint32(stringsStart))
	w.u32(0) // stylesStart
	for _, off := range offsets {
		w.u32(off)
	}
	w.buf = append(w.buf, data...)
	return w.buf, nil
}
