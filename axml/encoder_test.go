// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package axml

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeRoundTrip(t *testing.T) {
	orig, err := Parse(testManifest())
	if err != nil {
		t.Fatalf("Parse=_, %v; want nil error", err)
	}
	buf, err := Encode(orig)
	if err != nil {
		t.Fatalf("Encode=_, %v; want nil error", err)
	}
	got, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse(Encode(doc))=_, %v; want nil error", err)
	}
	if diff := cmp.Diff(orig.XML(), got.XML()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	a, ok := got.Root.Attr(AndroidNS, "versionCode")
	if !ok {
		t.Fatalf("versionCode not found in %s", got.XML())
	}
	if a.ResourceID != 0x0101021b {
		t.Errorf("versionCode resource id=0x%08x; want 0x0101021b", a.ResourceID)
	}
}

func TestEncodeSharedNames(t *testing.T) {
	// "name" is used as mapped android attribute, plain attribute
	// and element name.
	doc := &Document{
		Namespaces: []Namespace{{Prefix: "android", URI: AndroidNS}},
		Root: &Element{
			Name:    "manifest",
			NSDecls: []Namespace{{Prefix: "android", URI: AndroidNS}},
			Children: []*Element{
				{
					Name: "name",
					Attrs: []Attr{
						{Namespace: AndroidNS, Name: "name", ResourceID: 0x01010003, Raw: "x", HasRaw: true, Value: Value{Type: TypeString, Str: "x"}},
						{Name: "name", Raw: "y", HasRaw: true, Value: Value{Type: TypeString, Str: "y"}},
					},
				},
			},
		},
	}
	buf, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode=_, %v; want nil error", err)
	}
	p, err := NewParser(buf)
	if err != nil {
		t.Fatalf("NewParser=_, %v; want nil error", err)
	}
	got, err := ParseFrom(p)
	if err != nil {
		t.Fatalf("ParseFrom=_, %v; want nil error", err)
	}
	if diff := cmp.Diff([]uint32{0x01010003}, p.ResourceIDs()); diff != "" {
		t.Errorf("resource ids mismatch (-want +got):\n%s", diff)
	}
	e := got.Root.Children[0]
	for _, tc := range []struct {
		ns     string
		want   string
		wantID uint32
	}{
		{ns: AndroidNS, want: "x", wantID: 0x01010003},
		{ns: "", want: "y"},
	} {
		a, ok := e.Attr(tc.ns, "name")
		if !ok {
			t.Errorf("Attr(%q, name) not found", tc.ns)
			continue
		}
		if a.String() != tc.want || a.ResourceID != tc.wantID {
			t.Errorf("Attr(%q, name)=%q id=0x%x; want %q id=0x%x", tc.ns, a.String(), a.ResourceID, tc.want, tc.wantID)
		}
	}
}

func TestSetAttr(t *testing.T) {
	doc, err := Parse(testManifest())
	if err != nil {
		t.Fatalf("Parse=_, %v; want nil error", err)
	}
	root := doc.Root
	root.SetAttrInt(AndroidNS, "versionCode", 43)
	root.SetAttrString(AndroidNS, "versionName", "1.1")
	root.SetAttrString("", "package", "com.example.other")
	if !root.RemoveAttr("", "package") {
		t.Errorf("RemoveAttr(package)=false; want true")
	}
	root.SetAttrString("", "package", "com.example.new")

	buf, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode=_, %v; want nil error", err)
	}
	got, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse=_, %v; want nil error", err)
	}
	var names []string
	for _, a := range got.Root.Attrs {
		names = append(names, a.Name+"="+a.String())
	}
	// sorted by resource id; attributes without id last.
	want := []string{"versionCode=43", "versionName=1.1", "package=com.example.new"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeNoRoot(t *testing.T) {
	_, err := Encode(&Document{})
	if err == nil {
		t.Errorf("Encode(empty)=_, nil; want error")
	}
}
