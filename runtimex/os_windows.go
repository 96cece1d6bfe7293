// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build windows

package runtimex

import (
	"syscall"

	"golang.org/x/sys/windows"
)

const allProcessorGroups = 0xFFFF

func getproccount() int {
	proc := windows.NewLazySystemDLL("kernel32.dll").NewProc("GetActiveProcessorCount")
	if proc.Find() != nil {
		return 0
	}
	r0, _, _ := syscall.SyscallN(proc.Addr(), allProcessorGroups)
	return int(r0)
}
