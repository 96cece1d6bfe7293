// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestApplicationCommands(t *testing.T) {
	app := getApplication(context.Background())
	var got []string
	for _, c := range app.Commands {
		got = append(got, c.Name())
	}
	want := []string{"dump", "xml", "manifest", "query", "edit", "strings", "help", "version"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestModuleInfo(t *testing.T) {
	m := &debug.Module{
		Path:    "go.chromium.org/infra/build/axml",
		Version: "v1.0.0",
		Sum:     "h1:xxx",
	}
	got := moduleInfo(m)
	want := "path:go.chromium.org/infra/build/axml version:v1.0.0 sum:h1:xxx replace:<nil>"
	if got != want {
		t.Errorf("moduleInfo(%v)=%q; want %q", m, got, want)
	}
}

func TestVCSInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "GOOS", Value: "linux"},
		},
	}
	got := vcsInfo(bi)
	want := "vcs[revision=abc time= modified=true]"
	if got != want {
		t.Errorf("vcsInfo=%q; want %q", got, want)
	}
}

func TestAxmlMainBadLogLevel(t *testing.T) {
	orig := *logLevel
	defer func() { *logLevel = orig }()
	*logLevel = "verbose"
	var stderr bytes.Buffer
	if got := axmlMain(&stderr); got != 2 {
		t.Errorf("axmlMain()=%d; want 2", got)
	}
	if !strings.Contains(stderr.String(), "bad -log_level") {
		t.Errorf("stderr=%q; want bad -log_level", stderr.String())
	}
}
