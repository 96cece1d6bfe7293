// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package dump

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/axml/axml"
	"go.chromium.org/infra/build/axml/manifest/manifesttest"
)

func testBinary(t *testing.T) []byte {
	t.Helper()
	ns := axml.Namespace{Prefix: "android", URI: axml.AndroidNS}
	root := manifesttest.Elem("manifest", []axml.Attr{
		manifesttest.Int("versionCode", 7),
		{Name: "package", Raw: "com.example", HasRaw: true, Value: axml.Value{Type: axml.TypeString, Str: "com.example"}},
	}, manifesttest.Elem("uses-sdk", []axml.Attr{manifesttest.Int("minSdkVersion", 24)}))
	root.NSDecls = []axml.Namespace{ns}
	buf, err := axml.Encode(&axml.Document{Namespaces: []axml.Namespace{ns}, Root: root})
	if err != nil {
		t.Fatalf("axml.Encode=_, %v", err)
	}
	return buf
}

func TestDump(t *testing.T) {
	ctx := context.Background()
	buf := testBinary(t)
	var out bytes.Buffer
	err := Dump(ctx, &out, buf)
	if err != nil {
		t.Fatalf("Dump=%v; want nil error", err)
	}
	var events, chunks []string
	for _, line := range strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n") {
		if strings.HasPrefix(line, "Chunk type: ") {
			typ, _, _ := strings.Cut(strings.TrimPrefix(line, "Chunk type: "), ",")
			chunks = append(chunks, typ)
			continue
		}
		events = append(events, line)
	}
	wantEvents := []string{
		"File size: " + strconv.Itoa(len(buf)),
		"Start Namespace: android = " + axml.AndroidNS,
		"Start Tag: manifest",
		"  Attribute: versionCode = 7",
		"  Attribute: package = com.example",
		"Start Tag: uses-sdk",
		"  Attribute: minSdkVersion = 24",
		"End Tag: uses-sdk",
		"End Tag: manifest",
		"End Namespace: android",
	}
	if diff := cmp.Diff(wantEvents, events); diff != "" {
		t.Errorf("Dump events mismatch (-want +got):\n%s", diff)
	}
	wantChunks := []string{
		"0x1c0001",
		"0x80180",
		"0x100100",
		"0x100102",
		"0x100102",
		"0x100103",
		"0x100103",
		"0x100101",
	}
	if diff := cmp.Diff(wantChunks, chunks); diff != "" {
		t.Errorf("Dump chunks mismatch (-want +got):\n%s", diff)
	}
}

func TestRunMultipleFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	buf := testBinary(t)
	var fnames []string
	for _, name := range []string{"a.xml", "b.xml", "c.xml"} {
		fname := filepath.Join(dir, name)
		err := os.WriteFile(fname, buf, 0644)
		if err != nil {
			t.Fatal(err)
		}
		fnames = append(fnames, fname)
	}
	c := &run{jobs: 2}
	var out bytes.Buffer
	err := c.run(ctx, &out, fnames)
	if err != nil {
		t.Fatalf("run=%v; want nil error", err)
	}
	var headers []string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "== ") {
			headers = append(headers, line)
		}
	}
	var want []string
	for _, fname := range fnames {
		want = append(want, "== "+fname+" ==")
	}
	if diff := cmp.Diff(want, headers); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
}

func TestRunError(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fname := filepath.Join(dir, "AndroidManifest.xml")
	err := os.WriteFile(fname, []byte(`<?xml version="1.0"?><manifest/>`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	c := &run{jobs: 1}
	var out bytes.Buffer
	err = c.run(ctx, &out, []string{fname})
	if !errors.Is(err, axml.ErrInvalidFile) {
		t.Errorf("run(%q)=%v; want %v", fname, err, axml.ErrInvalidFile)
	}
}
