// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package stringscmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/axml/axml"
	"go.chromium.org/infra/build/axml/manifest/manifesttest"
)

func TestStrings(t *testing.T) {
	ctx := context.Background()
	root := manifesttest.Elem("manifest", []axml.Attr{
		manifesttest.Int("versionCode", 1),
		{Name: "package", Raw: "a\tb", HasRaw: true, Value: axml.Value{Type: axml.TypeString, Str: "a\tb"}},
	})
	buf, err := axml.Encode(&axml.Document{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	fname := filepath.Join(t.TempDir(), "AndroidManifest.xml")
	err = os.WriteFile(fname, buf, 0644)
	if err != nil {
		t.Fatal(err)
	}

	c := &run{resources: true, quote: true}
	var out bytes.Buffer
	err = c.run(ctx, &out, []string{fname})
	if err != nil {
		t.Fatalf("run=%v; want nil error", err)
	}
	want := []string{
		`0: "versionCode" [0x0101021b android:versionCode]`,
		`1: "manifest"`,
		`2: "` + axml.AndroidNS + `"`,
		`3: "package"`,
		`4: "a\tb"`,
	}
	got := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("strings mismatch (-want +got):\n%s", diff)
	}
}
