// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package axml

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// Namespace is a namespace declaration.
type Namespace struct {
	Prefix string
	URI    string
}

// Document is a parsed binary XML document.
type Document struct {
	// Namespaces are all namespace declarations in document order.
	Namespaces []Namespace
	Root       *Element
}

// Element is an element in the document tree.
type Element struct {
	Line    uint32
	Comment string

	Namespace string
	Name      string
	Attrs     []Attr

	// NSDecls are namespaces declared on this element.
	NSDecls []Namespace

	// Text is concatenated character data in this element.
	Text     string
	Children []*Element
}

// Parse parses binary XML in buf into a document tree.
func Parse(buf []byte) (*Document, error) {
	p, err := NewParser(buf)
	if err != nil {
		return nil, err
	}
	return ParseFrom(p)
}

// ParseFrom builds a document tree from the parser's remaining events.
func ParseFrom(p *Parser) (*Document, error) {
	doc := &Document{}
	var pending []Namespace
	var stack []*Element
	for {
		ev, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch ev := ev.(type) {
		case *StartNamespace:
			ns := Namespace{Prefix: ev.Prefix, URI: ev.URI}
			pending = append(pending, ns)
			doc.Namespaces = append(doc.Namespaces, ns)
		case *EndNamespace:
		case *StartElement:
			e := &Element{
				Line:      ev.Line,
				Comment:   ev.Comment,
				Namespace: ev.Namespace,
				Name:      ev.Name,
				Attrs:     ev.Attrs,
				NSDecls:   pending,
			}
			pending = nil
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, fmt.Errorf("line %d: multiple root elements <%s> and <%s>", ev.Line, doc.Root.Name, ev.Name)
				}
				doc.Root = e
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, e)
			}
			stack = append(stack, e)
		case *EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("line %d: unexpected end tag </%s>", ev.Line, ev.Name)
			}
			top := stack[len(stack)-1]
			if top.Name != ev.Name || top.Namespace != ev.Namespace {
				return nil, fmt.Errorf("line %d: end tag </%s> doesn't match <%s> at line %d", ev.Line, ev.Name, top.Name, top.Line)
			}
			stack = stack[:len(stack)-1]
		case *CharData:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			top.Text += ev.Text
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, fmt.Errorf("unclosed element <%s> at line %d", top.Name, top.Line)
	}
	if doc.Root == nil {
		return nil, errors.New("no root element")
	}
	return doc, nil
}

// Attr returns the attribute of the element.
func (e *Element) Attr(ns, name string) (*Attr, bool) {
	for i := range e.Attrs {
		a := &e.Attrs[i]
		if a.Namespace == ns && a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// AttrValue returns textual value of the attribute, or "" if not found.
func (e *Element) AttrValue(ns, name string) string {
	a, ok := e.Attr(ns, name)
	if !ok {
		return ""
	}
	return a.String()
}

// SetAttr sets the attribute value, adding the attribute if needed.
func (e *Element) SetAttr(ns, name string, raw string, hasRaw bool, v Value) {
	a, ok := e.Attr(ns, name)
	if !ok {
		e.Attrs = append(e.Attrs, Attr{Namespace: ns, Name: name})
		a = &e.Attrs[len(e.Attrs)-1]
		if ns == AndroidNS {
			a.ResourceID, _ = AttrID(name)
		}
	}
	a.Raw = raw
	a.HasRaw = hasRaw
	a.Value = v
	sortAttrs(e.Attrs)
}

// SetAttrString sets a string attribute.
func (e *Element) SetAttrString(ns, name, s string) {
	e.SetAttr(ns, name, s, true, Value{Type: TypeString, Str: s})
}

// SetAttrInt sets an integer attribute.
func (e *Element) SetAttrInt(ns, name string, n int32) {
	e.SetAttr(ns, name, "", false, Value{Type: TypeIntDec, Data: uint32(n)})
}

// RemoveAttr removes the attribute, and reports whether it existed.
func (e *Element) RemoveAttr(ns, name string) bool {
	for i, a := range e.Attrs {
		if a.Namespace == ns && a.Name == name {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns child elements with the name.
func (e *Element) Find(name string) []*Element {
	var es []*Element
	for _, c := range e.Children {
		if c.Name == name {
			es = append(es, c)
		}
	}
	return es
}

// sortAttrs sorts attributes by resource id, as the framework
// looks up attributes by id in order. Attributes without id come last.
func sortAttrs(attrs []Attr) {
	sort.SliceStable(attrs, func(i, j int) bool {
		ri, rj := attrs[i].ResourceID, attrs[j].ResourceID
		if ri == 0 || rj == 0 {
			return ri != 0 && rj == 0
		}
		return ri < rj
	})
}
