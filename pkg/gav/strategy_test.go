package gav

import (
	"testing"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
	"github.com/eddi-weiss/mavenizor/pkg/maven"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

func mustStrategy(t *testing.T, r Rules) *Strategy {
	t.Helper()
	s, err := NewStrategy(r)
	if err != nil {
		t.Fatalf("NewStrategy: %v", err)
	}
	return s
}

func TestDeriveGroupID(t *testing.T) {
	s := mustStrategy(t, Rules{
		Mappings:       map[string]string{"org.apache.log4j": "log4j"},
		Group3Prefixes: []string{"org.eclipse.jdt"},
	})
	prefixed := mustStrategy(t, Rules{Prefix: "com.acme", Group3Prefixes: []string{"org.eclipse.jdt"}})

	tests := []struct {
		name     string
		strategy *Strategy
		input    string
		want     string
	}{
		{"explicit mapping", s, "org.apache.log4j", "log4j"},
		{"group3", s, "org.eclipse.jdt.core", "org.eclipse.jdt"},
		{"group3 deep", s, "org.eclipse.jdt.core.manipulation", "org.eclipse.jdt"},
		{"group3 exact", s, "org.eclipse.jdt", "org.eclipse.jdt"},
		{"fallback", s, "org.eclipse.core.runtime", "org.eclipse.core"},
		{"fallback two segments", s, "org.junit", "org"},
		{"single segment", s, "junit", "junit"},
		{"prefix fallback", prefixed, "org.eclipse.core.runtime", "com.acme.org.eclipse.core"},
		{"prefix not on group3", prefixed, "org.eclipse.jdt.ui", "org.eclipse.jdt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.strategy.DeriveGroupID(tt.input); got != tt.want {
				t.Errorf("DeriveGroupID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDeriveCoordinate(t *testing.T) {
	s := mustStrategy(t, Rules{Group3Prefixes: []string{"org.eclipse.jdt"}})
	b := &osgi.Bundle{SymbolicName: "org.eclipse.jdt.core", Version: "3.19.0.v20240101"}

	got, err := s.DeriveCoordinate(b)
	if err != nil {
		t.Fatal(err)
	}
	want := maven.Coordinate{
		GroupID:    "org.eclipse.jdt",
		ArtifactID: "org.eclipse.jdt.core",
		Version:    "3.19.0-v20240101",
		Type:       "jar",
	}
	if got != want {
		t.Errorf("DeriveCoordinate = %+v, want %+v", got, want)
	}

	again, _ := s.DeriveCoordinate(b)
	if again != got {
		t.Errorf("DeriveCoordinate not deterministic: %+v vs %+v", again, got)
	}

	trim := mustStrategy(t, Rules{TrimQualifier: true})
	got, err = trim.DeriveCoordinate(b)
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != "3.19.0" {
		t.Errorf("trimmed Version = %q, want 3.19.0", got.Version)
	}
}

func TestDeriveCoordinateSourceBundle(t *testing.T) {
	s := mustStrategy(t, Rules{})
	b := &osgi.Bundle{
		SymbolicName: "org.acme.core.source",
		Version:      "1.0.0.v1",
		Headers:      map[string]string{osgi.HeaderSourceBundle: `org.acme.core;version="1.0.0.v1"`},
	}
	got, err := s.DeriveCoordinate(b)
	if err != nil {
		t.Fatal(err)
	}
	want := maven.Coordinate{GroupID: "org.acme", ArtifactID: "org.acme.core", Version: "1.0.0-v1", Type: "jar", Classifier: "sources"}
	if got != want {
		t.Errorf("DeriveCoordinate = %+v, want %+v", got, want)
	}
}

func TestDeriveCoordinateMalformedVersion(t *testing.T) {
	s := mustStrategy(t, Rules{})
	_, err := s.DeriveCoordinate(&osgi.Bundle{SymbolicName: "org.acme.bad", Version: "1.x.0"})
	if !errors.Is(err, errors.ErrCodeMalformedVersion) {
		t.Fatalf("error = %v, want MALFORMED_VERSION", err)
	}
	var be *errors.BundleError
	if !asBundleError(err, &be) || be.SymbolicName != "org.acme.bad" {
		t.Errorf("error %v does not identify the bundle", err)
	}
}

func asBundleError(err error, target **errors.BundleError) bool {
	be, ok := err.(*errors.BundleError)
	if ok {
		*target = be
	}
	return ok
}

func TestDeriveVersionRange(t *testing.T) {
	s := mustStrategy(t, Rules{})
	b := &osgi.Bundle{SymbolicName: "org.acme.core", Version: "1.0.0"}

	tests := []struct {
		input string
		want  string
	}{
		{"[1.0.0,2.0.0)", "[1.0.0,2.0.0)"},
		{"1.0.0", "1.0.0"},
		{"[1.0.0,1.0.0]", "[1.0.0,1.0.0]"},
		{"", "0.0.0"},
	}
	for _, tt := range tests {
		got, err := s.DeriveVersionRange(b, tt.input)
		if err != nil {
			t.Fatalf("DeriveVersionRange(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("DeriveVersionRange(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := s.DeriveVersionRange(b, "[1.x,2)"); !errors.Is(err, errors.ErrCodeMalformedVersion) {
		t.Errorf("malformed range error = %v", err)
	}
}

func TestDependencyCoordinate(t *testing.T) {
	s := mustStrategy(t, Rules{Mappings: map[string]string{"org.junit": "junit"}})
	got := s.DependencyCoordinate("org.junit")
	if got.GroupID != "junit" || got.ArtifactID != "org.junit" || got.Version != "" {
		t.Errorf("DependencyCoordinate = %+v", got)
	}
}

func TestStrategyID(t *testing.T) {
	a := mustStrategy(t, Rules{Prefix: "x", Group3Prefixes: []string{"a.b.c", "d.e.f"}})
	b := mustStrategy(t, Rules{Prefix: "x", Group3Prefixes: []string{"d.e.f", "a.b.c"}})
	c := mustStrategy(t, Rules{Prefix: "y"})
	if a.ID() != b.ID() {
		t.Error("equal rules produced different IDs")
	}
	if a.ID() == c.ID() {
		t.Error("different rules produced equal IDs")
	}
}
