package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	pkgio "github.com/eddi-weiss/mavenizor/pkg/io"
)

// scanOpts holds the flags of the scan command.
type scanOpts struct {
	output string // output file; stdout if empty
	format string // json or yaml; defaults to the output extension
}

// scanCommand reads a directory of bundle jars into a graph file.
func (c *CLI) scanCommand() *cobra.Command {
	var opts scanOpts

	cmd := &cobra.Command{
		Use:   "scan <jar-dir>",
		Short: "Read bundle jars into a bundle graph",
		Long: `Read every *.jar in a directory and write the bundle graph found in
their manifests. Embedded libraries carry the Maven metadata of their
pom.properties when a nested jar has exactly one.

Examples:
  mavenizor scan target/repository/plugins -o graph.yaml
  mavenizor scan plugins > graph.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			g, err := pkgio.ImportGraph(args[0])
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Read %d bundles", g.Len()))

			format := pkgio.Format(opts.format)
			if format == "" {
				format = pkgio.FormatFromPath(opts.output)
			}

			out, err := openOutput(cmd.OutOrStdout(), opts.output)
			if err != nil {
				return err
			}
			defer out.Close()
			if err := pkgio.WriteGraph(g, out, format); err != nil {
				return err
			}
			if opts.output != "" {
				logger.Infof("Wrote graph to %s", opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: json or yaml (default from output extension)")
	return cmd
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns stdout for an empty path, otherwise it creates the file.
func openOutput(stdout io.Writer, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	return os.Create(path)
}
