package embedded

import (
	"reflect"
	"strings"
	"testing"
)

const testOverrides = `# generated template, edited
org.acme.core/lib/junit.jar = IGNORE
org.acme.core_1.2.0/lib/commons-io.jar = REPLACE commons-io:commons-io:jar:2.6
org.acme.core[_1.2.0]/lib/asm.jar = KEEP
org.acme.core_1.2.0/lib/junit.jar = KEEP
org.acme.other/lib/gone.jar = IGNORE
`

func TestParseOverrides(t *testing.T) {
	o, err := ParseOverrides(strings.NewReader(testOverrides))
	if err != nil {
		t.Fatalf("ParseOverrides: %v", err)
	}
	if o.Len() != 5 {
		t.Errorf("Len() = %d, want 5", o.Len())
	}

	tests := []struct {
		name    string
		version string
		path    string
		want    Directive
		found   bool
	}{
		{"org.acme.core", "1.2.0", "lib/commons-io.jar", Replace, true},
		{"org.acme.core", "1.2.0", "lib/asm.jar", Keep, true},
		{"org.acme.core", "1.2.0", "lib/junit.jar", Keep, true},
		{"org.acme.core", "1.3.0", "lib/junit.jar", Ignore, true},
		{"org.acme.core", "1.3.0", "lib/asm.jar", "", false},
		{"org.acme.unknown", "1.0.0", "lib/junit.jar", "", false},
	}
	for _, tt := range tests {
		a, ok := o.Lookup(tt.name, tt.version, tt.path)
		if ok != tt.found || a.Directive != tt.want {
			t.Errorf("Lookup(%s, %s, %s) = %v, %v; want %v, %v", tt.name, tt.version, tt.path, a.Directive, ok, tt.want, tt.found)
		}
	}

	paths := o.Paths("org.acme.core", "1.2.0")
	want := []string{"lib/asm.jar", "lib/commons-io.jar", "lib/junit.jar"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Paths() = %v, want %v", paths, want)
	}
}

func TestParseOverridesErrors(t *testing.T) {
	tests := []string{
		"no-slash = IGNORE",
		"org.acme/ = IGNORE",
		"org.acme/../x.jar = IGNORE",
		"org.acme/lib/a.jar = REPLACE nope",
		"org.acme/lib/a.jar = REPLACE <groupId>:<artifactId>:<type>[:<classifier>]:<version> | IGNORE | KEEP",
	}
	for _, in := range tests {
		if _, err := ParseOverrides(strings.NewReader(in)); err == nil {
			t.Errorf("ParseOverrides(%q): expected error", in)
		}
	}
}

func TestNilOverrides(t *testing.T) {
	var o *Overrides
	if _, ok := o.Lookup("a", "1", "x.jar"); ok {
		t.Error("nil table returned an override")
	}
	if o.Paths("a", "1") != nil || o.Len() != 0 {
		t.Error("nil table not empty")
	}
}

func TestNewOverrides(t *testing.T) {
	o, err := NewOverrides(map[string]string{"org.acme/lib/a.jar": "KEEP"})
	if err != nil {
		t.Fatal(err)
	}
	if a, ok := o.Lookup("org.acme", "9.9.9", "lib/a.jar"); !ok || a.Directive != Keep {
		t.Errorf("Lookup = %v, %v", a, ok)
	}
}
