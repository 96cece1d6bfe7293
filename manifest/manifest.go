// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package manifest extracts a typed summary from AndroidManifest.xml.
package manifest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.chromium.org/infra/build/axml/axml"
)

// ErrNotManifest is returned when the root element is not <manifest>.
var ErrNotManifest = errors.New("not an android manifest")

const (
	actionMain       = "android.intent.action.MAIN"
	categoryLauncher = "android.intent.category.LAUNCHER"
)

// Manifest is a summary of AndroidManifest.xml.
type Manifest struct {
	Package           string `json:"package"`
	VersionCode       int64  `json:"versionCode,omitempty"`
	VersionName       string `json:"versionName,omitempty"`
	CompileSdkVersion string `json:"compileSdkVersion,omitempty"`
	SharedUserID      string `json:"sharedUserId,omitempty"`

	UsesSdk UsesSdk `json:"usesSdk"`

	UsesPermissions []string     `json:"usesPermissions,omitempty"`
	Permissions     []Permission `json:"permissions,omitempty"`
	Features        []Feature    `json:"features,omitempty"`

	Application *Application `json:"application,omitempty"`
}

// UsesSdk is <uses-sdk>.
type UsesSdk struct {
	Min    string `json:"min,omitempty"`
	Target string `json:"target,omitempty"`
	Max    string `json:"max,omitempty"`
}

// Permission is a permission declared with <permission>.
type Permission struct {
	Name            string `json:"name"`
	ProtectionLevel string `json:"protectionLevel,omitempty"`
}

// Feature is <uses-feature>.
type Feature struct {
	Name        string `json:"name,omitempty"`
	GlEsVersion string `json:"glEsVersion,omitempty"`
	Required    bool   `json:"required"`
}

// Application is <application>.
type Application struct {
	Name        string `json:"name,omitempty"`
	Label       string `json:"label,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Theme       string `json:"theme,omitempty"`
	Debuggable  bool   `json:"debuggable,omitempty"`
	AllowBackup *bool  `json:"allowBackup,omitempty"`

	Activities      []Component `json:"activities,omitempty"`
	ActivityAliases []Component `json:"activityAliases,omitempty"`
	Services        []Component `json:"services,omitempty"`
	Receivers       []Component `json:"receivers,omitempty"`
	Providers       []Component `json:"providers,omitempty"`
}

// Component is an application component (activity, service, etc).
type Component struct {
	Name           string         `json:"name"`
	TargetActivity string         `json:"targetActivity,omitempty"`
	Exported       *bool          `json:"exported,omitempty"`
	Enabled        *bool          `json:"enabled,omitempty"`
	Permission     string         `json:"permission,omitempty"`
	Authorities    []string       `json:"authorities,omitempty"`
	IntentFilters  []IntentFilter `json:"intentFilters,omitempty"`
}

// IntentFilter is <intent-filter>.
type IntentFilter struct {
	Actions    []string     `json:"actions,omitempty"`
	Categories []string     `json:"categories,omitempty"`
	Data       []IntentData `json:"data,omitempty"`
}

// IntentData is <data> in <intent-filter>.
type IntentData struct {
	Scheme   string `json:"scheme,omitempty"`
	Host     string `json:"host,omitempty"`
	Port     string `json:"port,omitempty"`
	Path     string `json:"path,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// Parse parses binary AndroidManifest.xml.
func Parse(buf []byte) (*Manifest, error) {
	doc, err := axml.Parse(buf)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// FromDocument extracts manifest from a parsed document.
func FromDocument(doc *axml.Document) (*Manifest, error) {
	root := doc.Root
	if root == nil || root.Name != "manifest" {
		name := ""
		if root != nil {
			name = root.Name
		}
		return nil, fmt.Errorf("%w: root element <%s>", ErrNotManifest, name)
	}
	m := &Manifest{
		Package:           root.AttrValue("", "package"),
		VersionName:       android(root, "versionName"),
		CompileSdkVersion: android(root, "compileSdkVersion"),
		SharedUserID:      android(root, "sharedUserId"),
	}
	if v := android(root, "versionCode"); v != "" {
		n, err := ParseVersionCode(v)
		if err != nil {
			return nil, err
		}
		m.VersionCode = n
	}
	for _, e := range root.Children {
		switch e.Name {
		case "uses-sdk":
			m.UsesSdk = UsesSdk{
				Min:    android(e, "minSdkVersion"),
				Target: android(e, "targetSdkVersion"),
				Max:    android(e, "maxSdkVersion"),
			}
		case "uses-permission", "uses-permission-sdk-23":
			if name := android(e, "name"); name != "" {
				m.UsesPermissions = append(m.UsesPermissions, name)
			}
		case "permission":
			m.Permissions = append(m.Permissions, Permission{
				Name:            android(e, "name"),
				ProtectionLevel: android(e, "protectionLevel"),
			})
		case "uses-feature":
			m.Features = append(m.Features, Feature{
				Name:        android(e, "name"),
				GlEsVersion: android(e, "glEsVersion"),
				Required:    boolAttr(e, "required", true),
			})
		case "application":
			m.Application = m.application(e)
		}
	}
	return m, nil
}

func (m *Manifest) application(e *axml.Element) *Application {
	app := &Application{
		Name:       m.className(android(e, "name")),
		Label:      android(e, "label"),
		Icon:       android(e, "icon"),
		Theme:      android(e, "theme"),
		Debuggable: boolAttr(e, "debuggable", false),
	}
	if _, ok := e.Attr(axml.AndroidNS, "allowBackup"); ok {
		v := boolAttr(e, "allowBackup", true)
		app.AllowBackup = &v
	}
	for _, c := range e.Children {
		switch c.Name {
		case "activity":
			app.Activities = append(app.Activities, m.component(c))
		case "activity-alias":
			app.ActivityAliases = append(app.ActivityAliases, m.component(c))
		case "service":
			app.Services = append(app.Services, m.component(c))
		case "receiver":
			app.Receivers = append(app.Receivers, m.component(c))
		case "provider":
			app.Providers = append(app.Providers, m.component(c))
		}
	}
	return app
}

func (m *Manifest) component(e *axml.Element) Component {
	c := Component{
		Name:           m.className(android(e, "name")),
		TargetActivity: m.className(android(e, "targetActivity")),
		Permission:     android(e, "permission"),
	}
	if _, ok := e.Attr(axml.AndroidNS, "exported"); ok {
		v := boolAttr(e, "exported", false)
		c.Exported = &v
	}
	if _, ok := e.Attr(axml.AndroidNS, "enabled"); ok {
		v := boolAttr(e, "enabled", true)
		c.Enabled = &v
	}
	if auth := android(e, "authorities"); auth != "" {
		c.Authorities = strings.Split(auth, ";")
	}
	for _, f := range e.Find("intent-filter") {
		var filter IntentFilter
		for _, fe := range f.Children {
			switch fe.Name {
			case "action":
				filter.Actions = append(filter.Actions, android(fe, "name"))
			case "category":
				filter.Categories = append(filter.Categories, android(fe, "name"))
			case "data":
				path := android(fe, "path")
				if path == "" {
					path = android(fe, "pathPrefix")
				}
				if path == "" {
					path = android(fe, "pathPattern")
				}
				filter.Data = append(filter.Data, IntentData{
					Scheme:   android(fe, "scheme"),
					Host:     android(fe, "host"),
					Port:     android(fe, "port"),
					Path:     path,
					MimeType: android(fe, "mimeType"),
				})
			}
		}
		c.IntentFilters = append(c.IntentFilters, filter)
	}
	return c
}

func (m *Manifest) className(name string) string {
	return QualifyClassName(m.Package, name)
}

// QualifyClassName expands a class name relative to pkg.
// ".Foo" and "Foo" are pkg.Foo. A name with a dot elsewhere is
// already fully qualified.
func QualifyClassName(pkg, name string) string {
	switch {
	case name == "":
		return ""
	case strings.HasPrefix(name, "."):
		return pkg + name
	case !strings.Contains(name, "."):
		return pkg + "." + name
	}
	return name
}

// ParseVersionCode parses a versionCode string.
// It is decimal, or hex with a "0x" prefix. A leading 0 is not octal.
func ParseVersionCode(s string) (int64, error) {
	var n int64
	var err error
	if hex, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		n, err = strconv.ParseInt(hex, 16, 64)
	} else {
		n, err = strconv.ParseInt(s, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("bad versionCode %q: %w", s, err)
	}
	return n, nil
}

// LaunchableActivities returns activities (and aliases) having
// MAIN action and LAUNCHER category.
func (m *Manifest) LaunchableActivities() []string {
	if m.Application == nil {
		return nil
	}
	var names []string
	for _, cs := range [][]Component{m.Application.Activities, m.Application.ActivityAliases} {
		for _, c := range cs {
			if c.Enabled != nil && !*c.Enabled {
				continue
			}
			if c.launchable() {
				names = append(names, c.Name)
			}
		}
	}
	return names
}

func (c Component) launchable() bool {
	for _, f := range c.IntentFilters {
		if contains(f.Actions, actionMain) && contains(f.Categories, categoryLauncher) {
			return true
		}
	}
	return false
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func android(e *axml.Element, name string) string {
	return e.AttrValue(axml.AndroidNS, name)
}

func boolAttr(e *axml.Element, name string, def bool) bool {
	a, ok := e.Attr(axml.AndroidNS, name)
	if !ok {
		return def
	}
	switch a.Value.Type {
	case axml.TypeIntBoolean, axml.TypeIntDec, axml.TypeIntHex:
		if !a.HasRaw {
			return a.Value.Bool()
		}
	}
	b, err := strconv.ParseBool(a.String())
	if err != nil {
		return def
	}
	return b
}
