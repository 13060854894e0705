package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/eddi-weiss/mavenizor/pkg/io"
	"github.com/eddi-weiss/mavenizor/pkg/render"
)

// graphOpts holds the flags of the graph command.
type graphOpts struct {
	format       string
	output       string
	detailed     bool
	hideExcluded bool
}

// graphCommand draws the dependency graph of a conversion result.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <result.json>",
		Short: "Draw the Maven dependency graph of a conversion result",
		Long: `Draw the Maven dependency graph of a conversion result as Graphviz DOT
or SVG. Failed bundles are red, bundles with UNHANDLED libraries are
orange and excluded bundles are dashed.

Examples:
  mavenizor graph result.json > deps.dot
  mavenizor graph result.json --format svg -o deps.svg --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := pkgio.ImportResult(args[0])
			if err != nil {
				return err
			}
			dot := render.ToDOT(res, render.Options{
				Detailed:     opts.detailed,
				HideExcluded: opts.hideExcluded,
			})

			var data []byte
			switch opts.format {
			case "dot":
				data = []byte(dot)
			case "svg":
				if data, err = render.RenderSVG(cmd.Context(), dot); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want dot or svg)", opts.format)
			}

			out, err := openOutput(cmd.OutOrStdout(), opts.output)
			if err != nil {
				return err
			}
			if _, err := out.Write(data); err != nil {
				out.Close()
				return err
			}
			return out.Close()
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "dot", "output format: dot or svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with bundle identity and library directives")
	cmd.Flags().BoolVar(&opts.hideExcluded, "hide-excluded", false, "omit bundles outside the input filter")
	return cmd
}
