// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package axml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// WriteXML writes the document as textual XML.
// Each nesting level is indented by indent.
func (d *Document) WriteXML(w io.Writer, indent string) error {
	prefixes := make(map[string]string)
	for _, ns := range d.Namespaces {
		if _, ok := prefixes[ns.URI]; !ok {
			prefixes[ns.URI] = ns.Prefix
		}
	}
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	if d.Root != nil {
		decls := undeclaredNamespaces(d.Root, prefixes)
		writeElement(&buf, d.Root, prefixes, decls, indent, 0)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// XML returns the document as textual XML indented with 2 spaces.
func (d *Document) XML() string {
	var sb strings.Builder
	d.WriteXML(&sb, "  ")
	return sb.String()
}

func qualify(prefixes map[string]string, ns, name string) string {
	if ns == "" {
		return name
	}
	prefix, ok := prefixes[ns]
	if !ok || prefix == "" {
		return name
	}
	return prefix + ":" + name
}

// undeclaredNamespaces assigns prefixes to namespace URIs used in the tree
// without a namespace declaration, e.g. in stripped manifests.
// AndroidNS gets "android", others get "ns0", "ns1" and so on.
// The returned declarations should be written on the root element.
func undeclaredNamespaces(root *Element, prefixes map[string]string) []Namespace {
	used := make(map[string]bool)
	for _, p := range prefixes {
		used[p] = true
	}
	var decls []Namespace
	add := func(uri string) {
		if uri == "" {
			return
		}
		if _, ok := prefixes[uri]; ok {
			return
		}
		prefix := ""
		if uri == AndroidNS && !used["android"] {
			prefix = "android"
		}
		for i := 0; prefix == ""; i++ {
			if p := fmt.Sprintf("ns%d", i); !used[p] {
				prefix = p
			}
		}
		used[prefix] = true
		prefixes[uri] = prefix
		decls = append(decls, Namespace{Prefix: prefix, URI: uri})
	}
	var walk func(e *Element)
	walk = func(e *Element) {
		add(e.Namespace)
		for _, a := range e.Attrs {
			add(a.Namespace)
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(root)
	return decls
}

func escape(buf *bytes.Buffer, s string) {
	xml.EscapeText(buf, []byte(s))
}

func writeElement(buf *bytes.Buffer, e *Element, prefixes map[string]string, extraDecls []Namespace, indent string, depth int) {
	pad := strings.Repeat(indent, depth)
	if e.Comment != "" {
		buf.WriteString(pad + "<!--")
		buf.WriteString(strings.ReplaceAll(e.Comment, "--", "- -"))
		buf.WriteString("-->\n")
	}
	name := qualify(prefixes, e.Namespace, e.Name)
	buf.WriteString(pad + "<" + name)
	for _, ns := range append(e.NSDecls[:len(e.NSDecls):len(e.NSDecls)], extraDecls...) {
		if ns.Prefix == "" {
			buf.WriteString(` xmlns="`)
		} else {
			buf.WriteString(" xmlns:" + ns.Prefix + `="`)
		}
		escape(buf, ns.URI)
		buf.WriteString(`"`)
	}
	for _, a := range e.Attrs {
		buf.WriteString(" " + qualify(prefixes, a.Namespace, a.Name) + `="`)
		escape(buf, a.String())
		buf.WriteString(`"`)
	}
	if len(e.Children) == 0 && e.Text == "" {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString(">")
	if len(e.Children) == 0 {
		escape(buf, e.Text)
		buf.WriteString("</" + name + ">\n")
		return
	}
	buf.WriteString("\n")
	if text := strings.TrimSpace(e.Text); text != "" {
		buf.WriteString(pad + indent)
		escape(buf, text)
		buf.WriteString("\n")
	}
	for _, c := range e.Children {
		writeElement(buf, c, prefixes, nil, indent, depth+1)
	}
	buf.WriteString(pad + "</" + name + ">\n")
}
