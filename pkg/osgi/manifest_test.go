package osgi

import (
	"reflect"
	"strings"
	"testing"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
)

const testManifest = `Manifest-Version: 1.0
Bundle-SymbolicName: org.acme.core;singleton:=true
Bundle-Version: 1.2.3.v2024
Require-Bundle: org.eclipse.core.runtime;bundle-version="[3.0.0,4.0.0)",
 org.acme.util;resolution:=optional
Import-Package: javax.xml.parsers;version="1.0",org.w3c.dom
Bundle-ClassPath: .,lib/commons-io-2.6.jar,bin/

Name: org/acme/Foo.class
SHA-256-Digest: abc
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest(strings.NewReader(testManifest))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}

	want := `org.eclipse.core.runtime;bundle-version="[3.0.0,4.0.0)",org.acme.util;resolution:=optional`
	if got := m[HeaderRequire]; got != want {
		t.Errorf("Require-Bundle = %q, want %q", got, want)
	}
	if _, ok := m["Name"]; ok {
		t.Error("per-entry section should not be read")
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []string{
		" continuation first\n",
		"NoColonHere\n",
	}
	for _, in := range tests {
		_, err := ParseManifest(strings.NewReader(in))
		if !errors.Is(err, errors.ErrCodeInvalidManifest) {
			t.Errorf("ParseManifest(%q) error = %v, want INVALID_MANIFEST", in, err)
		}
	}
}

func TestParseClauses(t *testing.T) {
	got := ParseClauses(`a.b;c.d;version="[1,2)";resolution:=optional, e.f`)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !reflect.DeepEqual(got[0].Names, []string{"a.b", "c.d"}) {
		t.Errorf("Names = %v", got[0].Names)
	}
	if got[0].Attributes["version"] != "[1,2)" {
		t.Errorf("version = %q", got[0].Attributes["version"])
	}
	if got[0].Directives["resolution"] != "optional" {
		t.Errorf("resolution = %q", got[0].Directives["resolution"])
	}
	if !reflect.DeepEqual(got[1].Names, []string{"e.f"}) {
		t.Errorf("Names = %v", got[1].Names)
	}
}

func TestBundleFromManifest(t *testing.T) {
	m, err := ParseManifest(strings.NewReader(testManifest))
	if err != nil {
		t.Fatal(err)
	}
	b, err := BundleFromManifest(m)
	if err != nil {
		t.Fatalf("BundleFromManifest: %v", err)
	}

	if b.SymbolicName != "org.acme.core" {
		t.Errorf("SymbolicName = %q", b.SymbolicName)
	}
	if b.Version != "1.2.3.v2024" {
		t.Errorf("Version = %q", b.Version)
	}

	wantReqs := []Requirement{
		{Kind: KindBundle, Name: "org.eclipse.core.runtime", Range: "[3.0.0,4.0.0)"},
		{Kind: KindBundle, Name: "org.acme.util", Optional: true},
		{Kind: KindPackage, Name: "javax.xml.parsers", Range: "1.0"},
		{Kind: KindPackage, Name: "org.w3c.dom"},
	}
	if !reflect.DeepEqual(b.Requirements, wantReqs) {
		t.Errorf("Requirements = %+v, want %+v", b.Requirements, wantReqs)
	}

	wantLibs := []EmbeddedLibrary{{Path: "lib/commons-io-2.6.jar"}}
	if !reflect.DeepEqual(b.Embedded, wantLibs) {
		t.Errorf("Embedded = %+v, want %+v", b.Embedded, wantLibs)
	}
}

func TestBundleFromManifestDefaults(t *testing.T) {
	b, err := BundleFromManifest(Manifest{HeaderSymbolicName: "solo"})
	if err != nil {
		t.Fatal(err)
	}
	if b.Version != "0.0.0" {
		t.Errorf("Version = %q, want 0.0.0", b.Version)
	}

	if _, err := BundleFromManifest(Manifest{}); !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("missing symbolic name error = %v, want INVALID_MANIFEST", err)
	}
}

func TestSourceHost(t *testing.T) {
	b := Bundle{
		SymbolicName: "org.acme.core.source",
		Version:      "1.0.0",
		Headers:      map[string]string{HeaderSourceBundle: `org.acme.core;version="1.0.0.v1";roots:="."`},
	}
	name, version, ok := b.SourceHost()
	if !ok || name != "org.acme.core" || version != "1.0.0.v1" {
		t.Errorf("SourceHost() = %q, %q, %v", name, version, ok)
	}

	plain := Bundle{SymbolicName: "x"}
	if _, _, ok := plain.SourceHost(); ok {
		t.Error("SourceHost() ok = true for a regular bundle")
	}
}
