package osgi

import (
	"strings"
	"testing"
)

func TestReadProperties(t *testing.T) {
	in := `# comment
! also a comment

a.b = 1
key:value
long = first \
  second
empty=
`
	props, err := ReadProperties(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []Property{
		{Key: "a.b", Value: "1", Line: 4},
		{Key: "key", Value: "value", Line: 5},
		{Key: "long", Value: "first second", Line: 6},
		{Key: "empty", Value: "", Line: 8},
	}
	if len(props) != len(want) {
		t.Fatalf("got %d properties, want %d: %+v", len(props), len(want), props)
	}
	for i := range want {
		if props[i] != want[i] {
			t.Errorf("props[%d] = %+v, want %+v", i, props[i], want[i])
		}
	}
}
