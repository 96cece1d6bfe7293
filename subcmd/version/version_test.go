// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package version

import (
	"bytes"
	"runtime/debug"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrintVersion(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.24.2",
		Settings: []debug.BuildSetting{
			{Key: "-compiler", Value: "gc"},
			{Key: "vcs.revision", Value: "abcdef"},
		},
		Deps: []*debug.Module{
			{Path: "github.com/maruel/subcommands", Version: "v1.1.1"},
		},
	}
	for _, tc := range []struct {
		name string
		bi   *debug.BuildInfo
		deps bool
		want string
	}{
		{
			name: "no buildinfo",
			want: "axml v1\n",
		},
		{
			name: "buildinfo",
			bi:   bi,
			want: "axml v1\ngo\tgo1.24.2\nbuild\tvcs.revision=abcdef\n",
		},
		{
			name: "deps",
			bi:   bi,
			deps: true,
			want: "axml v1\ngo\tgo1.24.2\nbuild\tvcs.revision=abcdef\ndep\tgithub.com/maruel/subcommands\tv1.1.1\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			printVersion(&buf, "axml v1", tc.bi, tc.deps)
			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Errorf("printVersion mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
