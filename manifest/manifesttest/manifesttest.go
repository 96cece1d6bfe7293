// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package manifesttest provides binary manifests for tests.
package manifesttest

import (
	"go.chromium.org/infra/build/axml/axml"
)

// Str returns android string attribute.
func Str(name, s string) axml.Attr {
	id, _ := axml.AttrID(name)
	return axml.Attr{
		Namespace:  axml.AndroidNS,
		Name:       name,
		ResourceID: id,
		Raw:        s,
		HasRaw:     true,
		Value:      axml.Value{Type: axml.TypeString, Str: s},
	}
}

// Int returns android integer attribute.
func Int(name string, n int32) axml.Attr {
	id, _ := axml.AttrID(name)
	return axml.Attr{
		Namespace:  axml.AndroidNS,
		Name:       name,
		ResourceID: id,
		Value:      axml.Value{Type: axml.TypeIntDec, Data: uint32(n)},
	}
}

// Bool returns android boolean attribute.
func Bool(name string, b bool) axml.Attr {
	id, _ := axml.AttrID(name)
	var data uint32
	if b {
		data = 0xFFFFFFFF
	}
	return axml.Attr{
		Namespace:  axml.AndroidNS,
		Name:       name,
		ResourceID: id,
		Value:      axml.Value{Type: axml.TypeIntBoolean, Data: data},
	}
}

// Ref returns android reference attribute.
func Ref(name string, id uint32) axml.Attr {
	rid, _ := axml.AttrID(name)
	return axml.Attr{
		Namespace:  axml.AndroidNS,
		Name:       name,
		ResourceID: rid,
		Value:      axml.Value{Type: axml.TypeReference, Data: id},
	}
}

// Elem returns an element.
func Elem(name string, attrs []axml.Attr, children ...*axml.Element) *axml.Element {
	return &axml.Element{Name: name, Attrs: attrs, Children: children}
}

func named(tag, name string, children ...*axml.Element) *axml.Element {
	return Elem(tag, []axml.Attr{Str("name", name)}, children...)
}

func launcher() *axml.Element {
	return Elem("intent-filter", nil,
		named("action", "android.intent.action.MAIN"),
		named("category", "android.intent.category.LAUNCHER"))
}

// Document returns a sample manifest document for package
// "com.example.app".
func Document() *axml.Document {
	ns := axml.Namespace{Prefix: "android", URI: axml.AndroidNS}
	pkg := axml.Attr{
		Name:   "package",
		Raw:    "com.example.app",
		HasRaw: true,
		Value:  axml.Value{Type: axml.TypeString, Str: "com.example.app"},
	}
	root := Elem("manifest", []axml.Attr{
		Int("versionCode", 42),
		Str("versionName", "1.2.3"),
		Int("compileSdkVersion", 34),
		pkg,
	},
		Elem("uses-sdk", []axml.Attr{Int("minSdkVersion", 21), Int("targetSdkVersion", 34)}),
		named("uses-permission", "android.permission.INTERNET"),
		named("uses-permission", "android.permission.CAMERA"),
		Elem("permission", []axml.Attr{Str("name", "com.example.app.permission.C2D"), Int("protectionLevel", 2)}),
		Elem("uses-feature", []axml.Attr{Str("name", "android.hardware.camera"), Bool("required", false)}),
		Elem("application", []axml.Attr{
			Ref("label", 0x7f0b0001),
			Ref("icon", 0x7f080000),
			Bool("debuggable", true),
			Bool("allowBackup", false),
			Str("name", ".App"),
		},
			Elem("activity", []axml.Attr{Bool("exported", true), Str("name", ".MainActivity")},
				launcher(),
				Elem("intent-filter", nil,
					named("action", "android.intent.action.VIEW"),
					named("category", "android.intent.category.BROWSABLE"),
					Elem("data", []axml.Attr{Str("scheme", "https"), Str("host", "example.com"), Str("pathPrefix", "/app")}))),
			named("activity", "com.example.lib.Settings"),
			Elem("activity-alias", []axml.Attr{Bool("enabled", false), Str("name", ".Alias"), Str("targetActivity", ".MainActivity")},
				launcher()),
			Elem("service", []axml.Attr{Str("permission", "android.permission.BIND_JOB_SERVICE"), Str("name", "SyncService")}),
			named("receiver", ".BootReceiver",
				Elem("intent-filter", nil, named("action", "android.intent.action.BOOT_COMPLETED"))),
			Elem("provider", []axml.Attr{Str("authorities", "com.example.app.files;com.example.app.cache"), Bool("exported", false), Str("name", "androidx.core.content.FileProvider")}),
		),
	)
	root.NSDecls = []axml.Namespace{ns}
	return &axml.Document{
		Namespaces: []axml.Namespace{ns},
		Root:       root,
	}
}

// Binary returns the sample manifest in binary XML.
func Binary() []byte {
	buf, err := axml.Encode(Document())
	if err != nil {
		panic(err)
	}
	return buf
}
