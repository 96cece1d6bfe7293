// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package starquery evaluates Starlark expressions against a manifest.
package starquery

import (
	"context"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"go.chromium.org/infra/build/axml/manifest"
	"go.chromium.org/infra/build/axml/o11y/clog"
)

// Eval evaluates expr with `manifest` predeclared.
//
//	manifest.package
//	[a.name for a in manifest.application.activities if a.exported]
//	manifest.has_permission("android.permission.INTERNET")
func Eval(ctx context.Context, m *manifest.Manifest, expr string) (starlark.Value, error) {
	thread := &starlark.Thread{
		Name: "query",
		Print: func(thread *starlark.Thread, msg string) {
			clog.Infof(ctx, "thread:%s %s", thread.Name, msg)
		},
	}
	predeclared := starlark.StringDict{
		"manifest": packManifest(m),
	}
	v, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, "<query>", expr, predeclared)
	if err != nil {
		if evalErr, ok := err.(*starlark.EvalError); ok {
			return nil, fmt.Errorf("query %q: %s", expr, evalErr.Backtrace())
		}
		return nil, fmt.Errorf("query %q: %w", expr, err)
	}
	return v, nil
}

// Format formats the query result for output.
// Strings are printed without quotes.
func Format(v starlark.Value) string {
	if s, ok := v.(starlark.String); ok {
		return string(s)
	}
	return v.String()
}

func packList(list []string) *starlark.List {
	values := make([]starlark.Value, 0, len(list))
	for _, elem := range list {
		values = append(values, starlark.String(elem))
	}
	return starlark.NewList(values)
}

func packOptBool(b *bool) starlark.Value {
	if b == nil {
		return starlark.None
	}
	return starlark.Bool(*b)
}

func packManifest(m *manifest.Manifest) *starlarkstruct.Struct {
	var perms, features []starlark.Value
	for _, p := range m.Permissions {
		perms = append(perms, starlarkstruct.FromStringDict(starlark.String("permission"), starlark.StringDict{
			"name":             starlark.String(p.Name),
			"protection_level": starlark.String(p.ProtectionLevel),
		}))
	}
	for _, f := range m.Features {
		features = append(features, starlarkstruct.FromStringDict(starlark.String("feature"), starlark.StringDict{
			"name":          starlark.String(f.Name),
			"gl_es_version": starlark.String(f.GlEsVersion),
			"required":      starlark.Bool(f.Required),
		}))
	}
	var app starlark.Value = starlark.None
	if m.Application != nil {
		app = packApplication(m.Application)
	}
	return starlarkstruct.FromStringDict(starlark.String("manifest"), starlark.StringDict{
		"package":             starlark.String(m.Package),
		"version_code":        starlark.MakeInt64(m.VersionCode),
		"version_name":        starlark.String(m.VersionName),
		"compile_sdk_version": starlark.String(m.CompileSdkVersion),
		"shared_user_id":      starlark.String(m.SharedUserID),
		"min_sdk":             starlark.String(m.UsesSdk.Min),
		"target_sdk":          starlark.String(m.UsesSdk.Target),
		"max_sdk":             starlark.String(m.UsesSdk.Max),
		"uses_permissions":    packList(m.UsesPermissions),
		"permissions":         starlark.NewList(perms),
		"features":            starlark.NewList(features),
		"application":         app,
		"launchable":          packList(m.LaunchableActivities()),
		"has_permission": starlark.NewBuiltin("has_permission", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name)
			if err != nil {
				return nil, err
			}
			for _, p := range m.UsesPermissions {
				if p == name {
					return starlark.True, nil
				}
			}
			return starlark.False, nil
		}),
	})
}

func packApplication(app *manifest.Application) *starlarkstruct.Struct {
	return starlarkstruct.FromStringDict(starlark.String("application"), starlark.StringDict{
		"name":             starlark.String(app.Name),
		"label":            starlark.String(app.Label),
		"icon":             starlark.String(app.Icon),
		"theme":            starlark.String(app.Theme),
		"debuggable":       starlark.Bool(app.Debuggable),
		"allow_backup":     packOptBool(app.AllowBackup),
		"activities":       packComponents(app.Activities),
		"activity_aliases": packComponents(app.ActivityAliases),
		"services":         packComponents(app.Services),
		"receivers":        packComponents(app.Receivers),
		"providers":        packComponents(app.Providers),
	})
}

func packComponents(cs []manifest.Component) *starlark.List {
	values := make([]starlark.Value, 0, len(cs))
	for _, c := range cs {
		var filters []starlark.Value
		for _, f := range c.IntentFilters {
			var data []starlark.Value
			for _, d := range f.Data {
				data = append(data, starlarkstruct.FromStringDict(starlark.String("data"), starlark.StringDict{
					"scheme":    starlark.String(d.Scheme),
					"host":      starlark.String(d.Host),
					"port":      starlark.String(d.Port),
					"path":      starlark.String(d.Path),
					"mime_type": starlark.String(d.MimeType),
				}))
			}
			filters = append(filters, starlarkstruct.FromStringDict(starlark.String("intent_filter"), starlark.StringDict{
				"actions":    packList(f.Actions),
				"categories": packList(f.Categories),
				"data":       starlark.NewList(data),
			}))
		}
		values = append(values, starlarkstruct.FromStringDict(starlark.String("component"), starlark.StringDict{
			"name":            starlark.String(c.Name),
			"target_activity": starlark.String(c.TargetActivity),
			"exported":        packOptBool(c.Exported),
			"enabled":         packOptBool(c.Enabled),
			"permission":      starlark.String(c.Permission),
			"authorities":     packList(c.Authorities),
			"intent_filters":  starlark.NewList(filters),
		}))
	}
	return starlark.NewList(values)
}
