package osgi

import (
	"bufio"
	"io"
	"strings"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
)

// Manifest holds the main-section headers of a MANIFEST.MF.
type Manifest map[string]string

// ParseManifest reads the main section of a jar manifest. Continuation lines
// (starting with a single space) are joined to the previous header.
func ParseManifest(r io.Reader) (Manifest, error) {
	m := Manifest{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var name string
	var value strings.Builder
	flush := func() {
		if name != "" {
			m[name] = value.String()
		}
		name = ""
		value.Reset()
	}

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, " ") {
			if name == "" {
				return nil, errors.New(errors.ErrCodeInvalidManifest, "line %d: continuation without header", lineNo)
			}
			value.WriteString(line[1:])
			continue
		}
		flush()
		i := strings.Index(line, ":")
		if i <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "line %d: missing ':' in %q", lineNo, line)
		}
		name = strings.TrimSpace(line[:i])
		value.WriteString(strings.TrimSpace(line[i+1:]))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read manifest")
	}
	flush()
	return m, nil
}

// Clause is one comma-separated element of a manifest header such as
// Require-Bundle: the names, "k=v" attributes and "k:=v" directives.
type Clause struct {
	Names      []string
	Attributes map[string]string
	Directives map[string]string
}

// ParseClauses splits a header value into clauses. Separators inside double
// quotes are ignored and quotes are removed from values.
func ParseClauses(h string) []Clause {
	var out []Clause
	for _, raw := range splitQuoted(h, ',') {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		c := Clause{Attributes: map[string]string{}, Directives: map[string]string{}}
		for _, part := range splitQuoted(raw, ';') {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if i := strings.Index(part, ":="); i > 0 {
				c.Directives[strings.TrimSpace(part[:i])] = unquote(part[i+2:])
				continue
			}
			if i := strings.Index(part, "="); i > 0 {
				c.Attributes[strings.TrimSpace(part[:i])] = unquote(part[i+1:])
				continue
			}
			c.Names = append(c.Names, part)
		}
		out = append(out, c)
	}
	return out
}

func splitQuoted(s string, sep byte) []string {
	var parts []string
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case sep:
			if !inQuote {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// BundleFromManifest builds a Bundle from manifest headers. Embedded
// libraries are the .jar entries of Bundle-ClassPath.
func BundleFromManifest(m Manifest) (Bundle, error) {
	name := cleanSymbolicName(m[HeaderSymbolicName])
	if name == "" {
		return Bundle{}, errors.New(errors.ErrCodeInvalidManifest, "missing %s header", HeaderSymbolicName)
	}
	if err := errors.ValidateSymbolicName(name); err != nil {
		return Bundle{}, err
	}

	version := strings.TrimSpace(m[HeaderVersion])
	if version == "" {
		version = Empty.String()
	}

	headers := make(map[string]string, len(m))
	for k, v := range m {
		headers[k] = v
	}

	b := Bundle{SymbolicName: name, Version: version, Headers: headers}

	for _, c := range ParseClauses(m[HeaderRequire]) {
		for _, n := range c.Names {
			b.Requirements = append(b.Requirements, Requirement{
				Kind:     KindBundle,
				Name:     n,
				Range:    c.Attributes["bundle-version"],
				Optional: c.Directives["resolution"] == "optional",
			})
		}
	}
	for _, c := range ParseClauses(m[HeaderImport]) {
		for _, n := range c.Names {
			b.Requirements = append(b.Requirements, Requirement{
				Kind:     KindPackage,
				Name:     n,
				Range:    c.Attributes["version"],
				Optional: c.Directives["resolution"] == "optional",
			})
		}
	}
	for _, c := range ParseClauses(m[HeaderClassPath]) {
		for _, p := range c.Names {
			if p == "." || !strings.HasSuffix(strings.ToLower(p), ".jar") {
				continue
			}
			b.Embedded = append(b.Embedded, EmbeddedLibrary{Path: strings.TrimPrefix(p, "/")})
		}
	}
	return b, nil
}
