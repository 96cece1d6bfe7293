// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runtimex

import "testing"

func TestNumCPU(t *testing.T) {
	if got := NumCPU(); got < 1 {
		t.Errorf("NumCPU()=%d; want >= 1", got)
	}
}

func TestJobs(t *testing.T) {
	for _, tc := range []struct {
		limit, n int
		want     int
	}{
		{limit: 4, n: 10, want: 4},
		{limit: 4, n: 2, want: 2},
		{limit: 4, n: 0, want: 1},
		{limit: 0, n: 1, want: 1},
		{limit: -1, n: NumCPU() + 1, want: NumCPU()},
	} {
		if got := Jobs(tc.limit, tc.n); got != tc.want {
			t.Errorf("Jobs(%d, %d)=%d; want %d", tc.limit, tc.n, got, tc.want)
		}
	}
}
