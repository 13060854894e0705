package gav

import (
	"testing"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
)

func TestParseGroupIDMappings(t *testing.T) {
	got, err := ParseGroupIDMappings([]string{"org.apache.log4j=log4j", " org.junit = junit "})
	if err != nil {
		t.Fatal(err)
	}
	if got["org.apache.log4j"] != "log4j" || got["org.junit"] != "junit" {
		t.Errorf("ParseGroupIDMappings = %v", got)
	}

	bad := []string{"noequals", "a=b=c", "=b", "a=", "a"}
	for _, e := range bad {
		_, err := ParseGroupIDMappings([]string{e})
		if !errors.Is(err, errors.ErrCodeStrategyConfiguration) {
			t.Errorf("ParseGroupIDMappings(%q) error = %v, want STRATEGY_CONFIGURATION", e, err)
		}
	}

	if _, err := ParseGroupIDMappings([]string{"a=b", "a=c"}); err == nil {
		t.Error("conflicting mappings: expected error")
	}
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name    string
		rules   Rules
		wantErr bool
	}{
		{"empty", Rules{}, false},
		{"full", Rules{Mappings: map[string]string{"a.b": "g"}, Prefix: "com.acme", Group3Prefixes: []string{"org.eclipse.jdt"}}, false},
		{"group3 two segments", Rules{Group3Prefixes: []string{"org.eclipse"}}, true},
		{"group3 four segments", Rules{Group3Prefixes: []string{"org.eclipse.jdt.core"}}, true},
		{"group3 empty segment", Rules{Group3Prefixes: []string{"org..jdt"}}, true},
		{"prefix trailing dot", Rules{Prefix: "com.acme."}, true},
		{"prefix invalid", Rules{Prefix: "com acme"}, true},
		{"bad mapping value", Rules{Mappings: map[string]string{"a.b": "g h"}}, true},
		{"bad mapping key", Rules{Mappings: map[string]string{"a..b": "g"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStrategy(tt.rules)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewStrategy error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeStrategyConfiguration) {
				t.Errorf("code = %v, want STRATEGY_CONFIGURATION", errors.GetCode(err))
			}
		})
	}
}
