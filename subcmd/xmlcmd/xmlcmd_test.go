// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package xmlcmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/axml/axml"
	"go.chromium.org/infra/build/axml/manifest/manifesttest"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fname := filepath.Join(dir, "AndroidManifest.xml")
	err := os.WriteFile(fname, manifesttest.Binary(), 0644)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := axml.Parse(manifesttest.Binary())
	if err != nil {
		t.Fatal(err)
	}
	want := doc.XML()
	if !strings.Contains(want, `<manifest xmlns:android="http://schemas.android.com/apk/res/android"`) {
		t.Fatalf("unexpected xml:\n%s", want)
	}

	t.Run("stdout", func(t *testing.T) {
		c := &run{indent: "  "}
		var out bytes.Buffer
		err := c.run(ctx, &out, []string{fname})
		if err != nil {
			t.Fatalf("run=%v; want nil error", err)
		}
		if diff := cmp.Diff(want, out.String()); diff != "" {
			t.Errorf("xml mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("output", func(t *testing.T) {
		output := filepath.Join(dir, "out.xml")
		c := &run{output: output, indent: "  "}
		var out bytes.Buffer
		err := c.run(ctx, &out, []string{fname})
		if err != nil {
			t.Fatalf("run=%v; want nil error", err)
		}
		if out.Len() != 0 {
			t.Errorf("stdout=%q; want empty", out.String())
		}
		got, err := os.ReadFile(output)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, string(got)); diff != "" {
			t.Errorf("xml mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestRunBadArgs(t *testing.T) {
	ctx := context.Background()
	c := &run{}
	var out bytes.Buffer
	err := c.run(ctx, &out, nil)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("run(nil)=%v; want flag.ErrHelp", err)
	}
}
