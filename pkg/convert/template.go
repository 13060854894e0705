package convert

import (
	"bufio"
	"fmt"
	"io"
)

// TemplatePlaceholder is the value written for an UNHANDLED library without
// a detection candidate.
const TemplatePlaceholder = "REPLACE <groupId>:<artifactId>:<type>[:<classifier>]:<version> | IGNORE | KEEP"

// WriteTemplate writes one property line per UNHANDLED or MISSING library of
// r. Operators edit the lines into an override table for the next run.
//
// UNHANDLED lines offer the detection candidate when there is one; MISSING
// lines default to IGNORE. Both sections follow graph order, then path.
func WriteTemplate(w io.Writer, r *Result) error {
	bw := bufio.NewWriter(w)

	if len(r.Unhandled) > 0 {
		fmt.Fprintln(bw, "# Embedded libraries without a directive.")
		fmt.Fprintln(bw, "# Keep exactly one of REPLACE, IGNORE or KEEP per line.")
		for _, ref := range r.Unhandled {
			value := TemplatePlaceholder
			if ref.Candidate != nil {
				c := *ref.Candidate
				if c.Version == "" {
					c.Version = "<version>"
				}
				fmt.Fprintf(bw, "# low-confidence candidate: %s\n", c.ArtifactString())
				value = "REPLACE " + c.ArtifactString() + " | IGNORE | KEEP"
			}
			fmt.Fprintf(bw, "%s = %s\n", ref.TemplateKey(), value)
		}
	}

	if len(r.Missing) > 0 {
		if len(r.Unhandled) > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw, "# Overridden libraries no longer present in their bundle.")
		for _, ref := range r.Missing {
			fmt.Fprintf(bw, "%s = IGNORE\n", ref.TemplateKey())
		}
	}
	return bw.Flush()
}
