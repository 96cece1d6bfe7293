// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package apk reads AndroidManifest.xml from APK (zip) files.
package apk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"

	"go.chromium.org/infra/build/axml/o11y/clog"
)

// ManifestName is the name of the manifest entry in an APK.
const ManifestName = "AndroidManifest.xml"

// ErrNoManifest is returned when an APK doesn't contain AndroidManifest.xml.
var ErrNoManifest = errors.New("no " + ManifestName + " in apk")

var zipMagic = []byte("PK\x03\x04")

// maxManifestSize limits the size of manifest read from an archive.
const maxManifestSize = 64 << 20

// IsZip reports whether buf looks like a zip archive.
func IsZip(buf []byte) bool {
	return bytes.HasPrefix(buf, zipMagic)
}

// ReadManifest returns binary manifest in fname.
// fname may be an APK, or a binary AndroidManifest.xml itself.
func ReadManifest(ctx context.Context, fname string) ([]byte, error) {
	buf, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	if !IsZip(buf) {
		clog.Debugf(ctx, "%s: not a zip, use as manifest", fname)
		return buf, nil
	}
	buf, err = ManifestFromZip(ctx, buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return buf, nil
}

// ManifestFromZip extracts the manifest from zip data.
func ManifestFromZip(ctx context.Context, buf []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if f.Name != ManifestName {
			continue
		}
		clog.Debugf(ctx, "%s: method=%d size=%d compressed=%d", f.Name, f.Method, f.UncompressedSize64, f.CompressedSize64)
		if f.UncompressedSize64 > maxManifestSize {
			return nil, fmt.Errorf("%s too large: %d", f.Name, f.UncompressedSize64)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(io.LimitReader(rc, maxManifestSize))
	}
	return nil, ErrNoManifest
}
