// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// axml is a tool to inspect and edit Android binary XML.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/infra/build/axml/o11y/clog"
	"go.chromium.org/infra/build/axml/subcmd/dump"
	"go.chromium.org/infra/build/axml/subcmd/edit"
	"go.chromium.org/infra/build/axml/subcmd/help"
	"go.chromium.org/infra/build/axml/subcmd/manifestcmd"
	"go.chromium.org/infra/build/axml/subcmd/query"
	"go.chromium.org/infra/build/axml/subcmd/stringscmd"
	"go.chromium.org/infra/build/axml/subcmd/version"
	"go.chromium.org/infra/build/axml/subcmd/xmlcmd"
)

const versionID = "v1.0.0"

var logLevel = flag.String("log_level", "warn", "log level. debug, info, warn or error")

func main() {
	os.Exit(axmlMain(os.Stderr))
}

func axmlMain(stderr io.Writer) int {
	flag.Parse()
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "bad -log_level: %v\n", err)
		return 2
	}
	logger := clog.New(stderr, level)

	ctx, cancel := context.WithCancel(context.Background())
	defer signals.HandleInterrupt(cancel)()
	ctx = clog.NewContext(ctx, logger)

	// Print a stack trace when a panic occurs.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			logger.Fatalf("panic: %v\n%s", r, buf)
		}
	}()

	buildinfo, ok := debug.ReadBuildInfo()
	if ok {
		clog.Debugf(ctx, "main module: %s %s", moduleInfo(&buildinfo.Main), vcsInfo(buildinfo))
	}
	return subcommands.Run(getApplication(ctx), flag.Args())
}

func getApplication(ctx context.Context) *cli.Application {
	return &cli.Application{
		Name:  "axml",
		Title: "axml is a tool to inspect and edit Android binary XML (AndroidManifest.xml).",
		Context: func(context.Context) context.Context {
			return ctx
		},
		Commands: []*subcommands.Command{
			dump.Cmd(),
			xmlcmd.Cmd(),
			manifestcmd.Cmd(),
			query.Cmd(),
			edit.Cmd(),
			stringscmd.Cmd(),

			help.Cmd(),
			version.Cmd(versionID),
		},
	}
}

func moduleInfo(m *debug.Module) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("path:%s version:%s sum:%s replace:%s", m.Path, m.Version, m.Sum, moduleInfo(m.Replace))
}

func vcsInfo(buildinfo *debug.BuildInfo) string {
	m := make(map[string]string)
	for _, bs := range buildinfo.Settings {
		if strings.HasPrefix(bs.Key, "vcs.") {
			m[bs.Key] = bs.Value
		}
	}
	return fmt.Sprintf("vcs[revision=%s time=%s modified=%s]", m["vcs.revision"], m["vcs.time"], m["vcs.modified"])
}
