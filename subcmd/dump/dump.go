// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package dump is dump subcommand to print parse events of binary XML.
package dump

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"
	"golang.org/x/sync/errgroup"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/axml/apk"
	"go.chromium.org/infra/build/axml/axml"
	"go.chromium.org/infra/build/axml/o11y/clog"
	"go.chromium.org/infra/build/axml/runtimex"
)

const usage = `print parse events of binary xml

 $ axml dump [-j N] [<file>...]

<file> is a binary AndroidManifest.xml or an apk.
If no file is given, AndroidManifest.xml in the current directory is used.
`

// Cmd returns the Command for the `dump` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "dump [<file>...]",
		ShortDesc: "print parse events of binary xml",
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

	jobs int
}

func (c *run) init() {
	c.Flags.IntVar(&c.jobs, "j", 0, "number of files to decode in parallel. 0 means the number of CPUs")
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
	if len(args) == 0 {
		args = []string{apk.ManifestName}
	}
	if c.jobs < 0 {
		return fmt.Errorf("bad -j %d: %w", c.jobs, flag.ErrHelp)
	}
	if len(args) == 1 {
		return dumpFile(ctx, w, args[0])
	}
	outs := make([]bytes.Buffer, len(args))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtimex.Jobs(c.jobs, len(args)))
	for i, fname := range args {
		eg.Go(func() error {
			err := ctx.Err()
			if err != nil {
				return err
			}
			fmt.Fprintf(&outs[i], "== %s ==\n", fname)
			return dumpFile(clog.NewSpan(ctx, "file", fname), &outs[i], fname)
		})
	}
	err := eg.Wait()
	for i := range outs {
		_, werr := w.Write(outs[i].Bytes())
		if err == nil {
			err = werr
		}
	}
	return err
}

func dumpFile(ctx context.Context, w io.Writer, fname string) error {
	buf, err := apk.ReadManifest(ctx, fname)
	if err != nil {
		return err
	}
	err = Dump(ctx, w, buf)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	return nil
}

// Dump writes parse events of binary xml in buf to w.
func Dump(ctx context.Context, w io.Writer, buf []byte) error {
	p, err := axml.NewParser(buf)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "File size: %d\n", p.Size())
	p.Trace = func(h axml.ChunkHeader) {
		clog.Debugf(ctx, "chunk %s", h)
		fmt.Fprintf(w, "Chunk type: 0x%x, size: %d\n", h.Word(), h.Size)
	}
	for {
		ev, err := p.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch ev := ev.(type) {
		case *axml.StartNamespace:
			fmt.Fprintf(w, "Start Namespace: %s = %s\n", ev.Prefix, ev.URI)
		case *axml.EndNamespace:
			fmt.Fprintf(w, "End Namespace: %s\n", ev.Prefix)
		case *axml.StartElement:
			fmt.Fprintf(w, "Start Tag: %s\n", ev.Name)
			for _, a := range ev.Attrs {
				fmt.Fprintf(w, "  Attribute: %s = %s\n", a.Name, a.String())
			}
		case *axml.EndElement:
			fmt.Fprintf(w, "End Tag: %s\n", ev.Name)
		case *axml.CharData:
			fmt.Fprintf(w, "Text: %s\n", ev.Text)
		}
	}
}
