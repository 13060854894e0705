package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eddi-weiss/mavenizor/pkg/maven"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

// coordinateCommand prints the coordinate of a single bundle.
func (c *CLI) coordinateCommand() *cobra.Command {
	var (
		configPath string
		source     string
	)

	cmd := &cobra.Command{
		Use:   "coordinate <symbolic-name> <version>",
		Short: "Print the Maven coordinate derived for a bundle",
		Long: `Print the Maven coordinate the configured rules derive for a bundle.

Examples:
  mavenizor coordinate org.eclipse.jdt.core 3.19.0.v20240101
  mavenizor coordinate org.eclipse.jdt.core.source 3.19.0 --source 'org.eclipse.jdt.core;version="3.19.0"'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(loggerFromContext(cmd.Context()), configPath)
			if err != nil {
				return err
			}
			s, err := cfg.Strategy()
			if err != nil {
				return err
			}

			b := &osgi.Bundle{SymbolicName: args[0], Version: args[1]}
			if source != "" {
				b.Headers = map[string]string{osgi.HeaderSourceBundle: source}
			}
			coord, err := s.DeriveCoordinate(b)
			if err != nil {
				return err
			}

			p := printer{cmd.OutOrStdout()}
			p.keyValue("groupId", coord.GroupID)
			p.keyValue("artifactId", coord.ArtifactID)
			p.keyValue("version", coord.Version)
			if coord.Classifier != "" {
				p.keyValue("classifier", coord.Classifier)
			}
			p.keyValue("artifact", coord.ArtifactString())
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "configuration file (default ./mavenizor.toml)")
	cmd.Flags().StringVar(&source, "source", "", "Eclipse-SourceBundle header value")
	return cmd
}

// rangeCommand translates version ranges in either direction.
func (c *CLI) rangeCommand() *cobra.Command {
	var (
		trim    bool
		reverse bool
	)

	cmd := &cobra.Command{
		Use:   "range <range>",
		Short: "Translate an OSGi version range into Maven syntax",
		Long: `Translate an OSGi version range into a Maven dependency version.
With --reverse, translate a Maven range into OSGi syntax.

Examples:
  mavenizor range '[1.0.0,2.0.0)'     # [1.0.0,2.0.0)
  mavenizor range 1.2                 # 1.2.0
  mavenizor range --reverse '(,2.0]'  # [0.0.0,2.0.0]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if reverse {
				r, err := maven.FromMavenRange(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), r.String())
				return nil
			}
			r, err := osgi.ParseVersionRange(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), maven.ToMavenRange(r, trim))
			return nil
		},
	}

	cmd.Flags().BoolVar(&trim, "trim-qualifier", false, "drop version qualifiers")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "translate a Maven range into OSGi syntax")
	return cmd
}
