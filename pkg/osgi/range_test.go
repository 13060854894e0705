package osgi

import (
	"testing"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
)

func TestParseVersionRange(t *testing.T) {
	tests := []struct {
		input     string
		want      string
		unbounded bool
		pinned    bool
	}{
		{"[1.0.0,2.0.0)", "[1.0.0,2.0.0)", false, false},
		{"(1.0,2.0]", "(1.0.0,2.0.0]", false, false},
		{"[1.0.0, 2.0.0)", "[1.0.0,2.0.0)", false, false},
		{"[1.0.0,1.0.0]", "[1.0.0,1.0.0]", false, true},
		{"1.0", "1.0.0", true, false},
		{"", "0.0.0", true, false},
		{"0.0.0", "0.0.0", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := ParseVersionRange(tt.input)
			if err != nil {
				t.Fatalf("ParseVersionRange(%q) error: %v", tt.input, err)
			}
			if got := r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if r.Unbounded() != tt.unbounded {
				t.Errorf("Unbounded() = %v, want %v", r.Unbounded(), tt.unbounded)
			}
			if r.Pinned() != tt.pinned {
				t.Errorf("Pinned() = %v, want %v", r.Pinned(), tt.pinned)
			}
		})
	}
}

func TestParseVersionRangeErrors(t *testing.T) {
	tests := []struct {
		input string
		code  errors.Code
	}{
		{"[1.0", errors.ErrCodeMalformedRange},
		{"[1.0,2.0,3.0]", errors.ErrCodeMalformedRange},
		{"[1.0,)", errors.ErrCodeMalformedRange},
		{"[2.0,1.0]", errors.ErrCodeMalformedRange},
		{"(1.0,1.0)", errors.ErrCodeMalformedRange},
		{"[1.0,x)", errors.ErrCodeMalformedVersion},
		{"1.x", errors.ErrCodeMalformedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseVersionRange(tt.input)
			if err == nil {
				t.Fatalf("ParseVersionRange(%q) expected error", tt.input)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("ParseVersionRange(%q) code = %v, want %v", tt.input, errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestVersionRangeIncludes(t *testing.T) {
	r, err := ParseVersionRange("[1.0.0,2.0.0)")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		v    string
		want bool
	}{
		{"0.9.9", false},
		{"1.0.0", true},
		{"1.5.0.qualifier", true},
		{"2.0.0", false},
	}
	for _, tt := range tests {
		if got := r.Includes(MustParseVersion(tt.v)); got != tt.want {
			t.Errorf("Includes(%s) = %v, want %v", tt.v, got, tt.want)
		}
	}

	open := AtLeast(MustParseVersion("3.0"))
	if !open.Includes(MustParseVersion("99.0")) {
		t.Error("AtLeast(3.0).Includes(99.0) = false, want true")
	}
}
