// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package manifestcmd is manifest subcommand to summarize AndroidManifest.xml.
package manifestcmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/axml/apk"
	"go.chromium.org/infra/build/axml/manifest"
)

const usage = `summarize AndroidManifest.xml

 $ axml manifest [-format json|text] <file>

<file> is a binary AndroidManifest.xml or an apk.
`

// Cmd returns the Command for the `manifest` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "manifest [-format json|text] <file>",
		ShortDesc: "summarize AndroidManifest.xml",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	format string
}

func (c *run) init() {
	c.Flags.StringVar(&c.format, "format", "text", `output format. "text" or "json"`)
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, a.GetOut(), args)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
			return 2
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, w io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("need one input file: %w", flag.ErrHelp)
	}
	switch c.format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown format %q: %w", c.format, flag.ErrHelp)
	}
	buf, err := apk.ReadManifest(ctx, args[0])
	if err != nil {
		return err
	}
	m, err := manifest.Parse(buf)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if c.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}
	return writeText(w, m)
}

func writeText(w io.Writer, m *manifest.Manifest) error {
	var err error
	p := func(key, value string) {
		if err != nil || value == "" {
			return
		}
		_, err = fmt.Fprintf(w, "%s: %s\n", key, value)
	}
	p("package", m.Package)
	if m.VersionCode != 0 {
		p("versionCode", fmt.Sprint(m.VersionCode))
	}
	p("versionName", m.VersionName)
	p("compileSdkVersion", m.CompileSdkVersion)
	p("sharedUserId", m.SharedUserID)
	p("minSdkVersion", m.UsesSdk.Min)
	p("targetSdkVersion", m.UsesSdk.Target)
	p("maxSdkVersion", m.UsesSdk.Max)
	for _, perm := range m.UsesPermissions {
		p("uses-permission", perm)
	}
	for _, perm := range m.Permissions {
		p("permission", perm.Name)
	}
	for _, f := range m.Features {
		name := f.Name
		if name == "" {
			name = "glEsVersion=" + f.GlEsVersion
		}
		if !f.Required {
			name += " (not required)"
		}
		p("uses-feature", name)
	}
	if app := m.Application; app != nil {
		p("application", app.Name)
		p("application-label", app.Label)
		p("application-icon", app.Icon)
		if app.Debuggable {
			p("application-debuggable", "true")
		}
		for _, name := range m.LaunchableActivities() {
			p("launchable-activity", name)
		}
		for _, cs := range []struct {
			key   string
			comps []manifest.Component
		}{
			{"activity", app.Activities},
			{"activity-alias", app.ActivityAliases},
			{"service", app.Services},
			{"receiver", app.Receivers},
			{"provider", app.Providers},
		} {
			for _, comp := range cs.comps {
				v := comp.Name
				if comp.Exported != nil && *comp.Exported {
					v += " (exported)"
				}
				p(cs.key, v)
			}
		}
	}
	return err
}
