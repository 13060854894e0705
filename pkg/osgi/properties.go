package osgi

import (
	"bufio"
	"io"
	"strings"
)

// Property is one key/value line of a .properties file.
type Property struct {
	Key   string
	Value string
	Line  int
}

// ReadProperties parses a Java-style properties file. Lines starting with
// '#' or '!' are comments, the key ends at the first '=' or ':', and a
// trailing backslash continues the value on the next line.
func ReadProperties(r io.Reader) ([]Property, error) {
	var props []Property
	sc := bufio.NewScanner(r)

	var pending strings.Builder
	startLine := 0
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if pending.Len() == 0 {
			if line == "" || line[0] == '#' || line[0] == '!' {
				continue
			}
			startLine = lineNo
		}
		if strings.HasSuffix(line, `\`) {
			pending.WriteString(strings.TrimSuffix(line, `\`))
			continue
		}
		pending.WriteString(line)
		props = append(props, splitProperty(pending.String(), startLine))
		pending.Reset()
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if pending.Len() > 0 {
		props = append(props, splitProperty(pending.String(), startLine))
	}
	return props, nil
}

func splitProperty(s string, line int) Property {
	i := strings.IndexAny(s, "=:")
	if i < 0 {
		return Property{Key: strings.TrimSpace(s), Line: line}
	}
	return Property{
		Key:   strings.TrimSpace(s[:i]),
		Value: strings.TrimSpace(s[i+1:]),
		Line:  line,
	}
}

// PropertyMap flattens properties into a map; later keys win.
func PropertyMap(props []Property) map[string]string {
	m := make(map[string]string, len(props))
	for _, p := range props {
		m[p.Key] = p.Value
	}
	return m
}
