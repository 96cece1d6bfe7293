// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package runtimex provides process level parallelism helpers.
package runtimex

import "runtime"

var ncpu int

func init() {
	ncpu = getproccount()
	if ncpu == 0 {
		ncpu = runtime.NumCPU()
	}
}

// NumCPU returns the number of logical CPUs usable by the current process.
// On Windows, it counts CPUs in all processor groups, while
// runtime.NumCPU() only counts a single group (up to 64).
func NumCPU() int {
	return ncpu
}

// Jobs returns the number of workers to process n items when
// at most limit workers are requested.
// limit <= 0 means NumCPU().
func Jobs(limit, n int) int {
	if limit <= 0 {
		limit = NumCPU()
	}
	if n < limit {
		limit = n
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}
