package convert

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eddi-weiss/mavenizor/pkg/embedded"
	"github.com/eddi-weiss/mavenizor/pkg/gav"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

func TestWriteTemplate(t *testing.T) {
	g := &osgi.Graph{Bundles: []osgi.Bundle{{
		SymbolicName: "org.acme.core",
		Version:      "1.0.0",
		Embedded: []osgi.EmbeddedLibrary{
			{Path: "lib/private.jar"},
			{Path: "lib/junit.jar"},
		},
	}}}
	o := mustOverrides(t, map[string]string{"org.acme.core/lib/gone.jar": "KEEP"})
	res := mustConvert(t, g, mustStrategy(t, gav.Rules{}), o, Options{})

	var buf bytes.Buffer
	if err := WriteTemplate(&buf, res); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"org.acme.core[_1.0.0]/lib/private.jar = " + TemplatePlaceholder + "\n",
		"# low-confidence candidate: junit:junit:jar:<version>\n",
		"org.acme.core[_1.0.0]/lib/junit.jar = REPLACE junit:junit:jar:<version> | IGNORE | KEEP\n",
		"org.acme.core[_1.0.0]/lib/gone.jar = IGNORE\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("template missing %q\ngot:\n%s", want, out)
		}
	}
	if strings.Index(out, "lib/junit.jar") > strings.Index(out, "lib/private.jar") {
		t.Error("template lines should be sorted by path")
	}

	if _, err := embedded.ParseOverrides(strings.NewReader(out)); err == nil {
		t.Error("an unedited template must not parse as an override table")
	}
}

func TestWriteTemplateEditedRoundTrip(t *testing.T) {
	g := &osgi.Graph{Bundles: []osgi.Bundle{{
		SymbolicName: "org.acme.core",
		Version:      "1.0.0",
		Embedded:     []osgi.EmbeddedLibrary{{Path: "lib/private.jar"}},
	}}}
	s := mustStrategy(t, gav.Rules{})
	res := mustConvert(t, g, s, nil, Options{})

	var buf bytes.Buffer
	if err := WriteTemplate(&buf, res); err != nil {
		t.Fatal(err)
	}
	edited := strings.Replace(buf.String(), TemplatePlaceholder, "REPLACE com.acme:private:jar:2.0", 1)

	o, err := embedded.ParseOverrides(strings.NewReader(edited))
	if err != nil {
		t.Fatalf("ParseOverrides: %v", err)
	}
	res = mustConvert(t, g, s, o, Options{})
	if res.Incomplete {
		t.Fatal("edited template should resolve every library")
	}
	lib := res.Bundles[0].Libraries[0]
	if lib.Directive != embedded.Replace || lib.Target.String() != "com.acme:private:2.0" {
		t.Errorf("library = %+v", lib)
	}
}

func TestWriteTemplateEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplate(&buf, &Result{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected empty template, got %q", buf.String())
	}
}
