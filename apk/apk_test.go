// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package apk

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"

	"go.chromium.org/infra/build/axml/manifest/manifesttest"
)

func writeZip(t *testing.T, fname string, files map[string][]byte, method uint16) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
		if err != nil {
			t.Fatal(err)
		}
		_, err = w.Write(content)
		if err != nil {
			t.Fatal(err)
		}
	}
	err := zw.Close()
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(fname, buf.Bytes(), 0644)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadManifest(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	want := manifesttest.Binary()

	for _, tc := range []struct {
		name   string
		method uint16
	}{
		{name: "stored.apk", method: zip.Store},
		{name: "deflated.apk", method: zip.Deflate},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fname := filepath.Join(dir, tc.name)
			writeZip(t, fname, map[string][]byte{
				"classes.dex":   []byte("dex\n035\x00"),
				ManifestName:    want,
				"res/layout/a":  {1, 2, 3},
				"META-INF/CERT": nil,
			}, tc.method)
			got, err := ReadManifest(ctx, fname)
			if err != nil {
				t.Fatalf("ReadManifest(ctx, %q)=_, %v; want nil error", fname, err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("ReadManifest(ctx, %q)=%d bytes; want %d bytes", fname, len(got), len(want))
			}
		})
	}

	t.Run("plain", func(t *testing.T) {
		fname := filepath.Join(dir, ManifestName)
		err := os.WriteFile(fname, want, 0644)
		if err != nil {
			t.Fatal(err)
		}
		got, err := ReadManifest(ctx, fname)
		if err != nil {
			t.Fatalf("ReadManifest(ctx, %q)=_, %v; want nil error", fname, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("ReadManifest(ctx, %q)=%d bytes; want %d bytes", fname, len(got), len(want))
		}
	})
}

func TestReadManifestMissing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fname := filepath.Join(dir, "nomanifest.apk")
	writeZip(t, fname, map[string][]byte{
		"classes.dex": []byte("dex\n035\x00"),
	}, zip.Deflate)
	_, err := ReadManifest(ctx, fname)
	if !errors.Is(err, ErrNoManifest) {
		t.Errorf("ReadManifest(ctx, %q)=_, %v; want ErrNoManifest", fname, err)
	}

	_, err = ReadManifest(ctx, filepath.Join(dir, "notexist.apk"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadManifest(ctx, notexist)=_, %v; want ErrNotExist", err)
	}
}
