// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package edit is edit subcommand to modify attributes of
// AndroidManifest.xml.
package edit

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/axml/apk"
	"go.chromium.org/infra/build/axml/axml"
	"go.chromium.org/infra/build/axml/manifest"
	"go.chromium.org/infra/build/axml/o11y/clog"
)

const usage = `edit attributes of AndroidManifest.xml

 $ axml edit -o <output> [-package <pkg>] [-version_code <n>] \
     [-version_name <name>] [-attr <name>=<value>]... <file>

<file> is a binary AndroidManifest.xml or an apk.
<output> is written as binary AndroidManifest.xml.
-package makes relative class names in <application> fully qualified
under the old package before renaming it.
-attr sets android:<name> string attribute on <manifest>.
An empty <value> removes the attribute.
`

// Cmd returns the Command for the `edit` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "edit -o <output> [flags] <file>",
		ShortDesc: "edit attributes of AndroidManifest.xml",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

// attrFlags is a repeated name=value flag.
type attrFlags []string

func (f *attrFlags) String() string {
	return strings.Join(*f, ",")
}

func (f *attrFlags) Set(v string) error {
	if _, _, ok := strings.Cut(v, "="); !ok {
		return fmt.Errorf("want <name>=<value>, got %q", v)
	}
	*f = append(*f, v)
	return nil
}

type run struct {
	subcommands.CommandRunBase

	output      string
	pkg         string
	versionCode string
	versionName string
	attrs       attrFlags
}

func (c *run) init() {
	c.Flags.StringVar(&c.output, "o", "", "output filename")
	c.Flags.StringVar(&c.pkg, "package", "", "new package name")
	c.Flags.StringVar(&c.versionCode, "version_code", "", "new android:versionCode")
	c.Flags.StringVar(&c.versionName, "version_name", "", "new android:versionName")
	c.Flags.Var(&c.attrs, "attr", "android:<name>=<value> to set on <manifest>. can be repeated")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
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

func (c *run) run(ctx context.Context, args []string) error {
	if c.output == "" {
		return fmt.Errorf("missing -o: %w", flag.ErrHelp)
	}
	if len(args) != 1 {
		return fmt.Errorf("need one input file: %w", flag.ErrHelp)
	}
	buf, err := apk.ReadManifest(ctx, args[0])
	if err != nil {
		return err
	}
	doc, err := axml.Parse(buf)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	err = c.edit(ctx, doc)
	if err != nil {
		return err
	}
	buf, err = axml.Encode(doc)
	if err != nil {
		return err
	}
	err = os.WriteFile(c.output, buf, 0644)
	if err != nil {
		return err
	}
	clog.Infof(ctx, "wrote %s (%d bytes)", c.output, len(buf))
	return nil
}

func (c *run) edit(ctx context.Context, doc *axml.Document) error {
	root := doc.Root
	if root.Name != "manifest" {
		return fmt.Errorf("root element is <%s>, not <manifest>", root.Name)
	}
	ensureAndroidNS(doc)
	if c.pkg != "" {
		old := root.AttrValue("", "package")
		clog.Infof(ctx, "package: %q -> %q", old, c.pkg)
		qualifyClassNames(ctx, root, old)
		root.SetAttrString("", "package", c.pkg)
	}
	if c.versionCode != "" {
		n, err := manifest.ParseVersionCode(c.versionCode)
		if err != nil || n < 0 || n > math.MaxInt32 {
			return fmt.Errorf("bad -version_code %q: %w", c.versionCode, flag.ErrHelp)
		}
		clog.Infof(ctx, "versionCode: %q -> %d", root.AttrValue(axml.AndroidNS, "versionCode"), n)
		root.SetAttrInt(axml.AndroidNS, "versionCode", int32(n))
	}
	if c.versionName != "" {
		clog.Infof(ctx, "versionName: %q -> %q", root.AttrValue(axml.AndroidNS, "versionName"), c.versionName)
		root.SetAttrString(axml.AndroidNS, "versionName", c.versionName)
	}
	for _, attr := range c.attrs {
		name, value, _ := strings.Cut(attr, "=")
		if value == "" {
			if !root.RemoveAttr(axml.AndroidNS, name) {
				clog.Warningf(ctx, "android:%s not found", name)
			}
			continue
		}
		root.SetAttrString(axml.AndroidNS, name, value)
	}
	return nil
}

// class name attributes relative to the package, per element.
var classNameAttrs = map[string][]string{
	"application":    {"name", "backupAgent", "manageSpaceActivity"},
	"activity":       {"name", "parentActivityName"},
	"activity-alias": {"name", "targetActivity", "parentActivityName"},
	"service":        {"name"},
	"receiver":       {"name"},
	"provider":       {"name"},
}

// qualifyClassNames rewrites relative class names in <application>
// to fully qualified names under pkg, so they keep pointing to
// the same classes when the package is renamed.
func qualifyClassNames(ctx context.Context, root *axml.Element, pkg string) {
	for _, app := range root.Find("application") {
		qualifyElement(ctx, app, pkg)
		for _, c := range app.Children {
			qualifyElement(ctx, c, pkg)
		}
	}
}

func qualifyElement(ctx context.Context, e *axml.Element, pkg string) {
	for _, name := range classNameAttrs[e.Name] {
		a, ok := e.Attr(axml.AndroidNS, name)
		if !ok || (!a.HasRaw && a.Value.Type != axml.TypeString) {
			continue
		}
		v := a.String()
		q := manifest.QualifyClassName(pkg, v)
		if q == v {
			continue
		}
		clog.Debugf(ctx, "<%s> android:%s: %q -> %q", e.Name, name, v, q)
		e.SetAttrString(axml.AndroidNS, name, q)
	}
}

// ensureAndroidNS declares android namespace on the root element
// if it is not declared.
func ensureAndroidNS(doc *axml.Document) {
	for _, ns := range doc.Namespaces {
		if ns.URI == axml.AndroidNS {
			return
		}
	}
	ns := axml.Namespace{Prefix: "android", URI: axml.AndroidNS}
	doc.Namespaces = append(doc.Namespaces, ns)
	doc.Root.NSDecls = append(doc.Root.NSDecls, ns)
}
