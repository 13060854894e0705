package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eddi-weiss/mavenizor/pkg/config"
	"github.com/eddi-weiss/mavenizor/pkg/convert"
	"github.com/eddi-weiss/mavenizor/pkg/gav"
	pkgio "github.com/eddi-weiss/mavenizor/pkg/io"
	"github.com/eddi-weiss/mavenizor/pkg/observability"
)

// convertOpts holds the flags of the convert command.
type convertOpts struct {
	config     string
	output     string
	template   string
	overrides  string
	pomDir     string
	metricsOut string
	input      []string
	workers    int
	dryRun     bool
	noCache    bool
	refresh    bool
}

// convertCommand converts a bundle graph into Maven coordinates.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <graph|jar-dir>",
		Short: "Convert a bundle graph into Maven coordinates",
		Long: `Convert a resolved bundle graph into Maven coordinates.

The input is a graph file (JSON or YAML) or a directory of bundle jars.
The result is written as JSON. Embedded libraries that need a decision are
listed in a template file that can be edited and passed back with
--overrides. Unless --dry-run is set, a POM is written for every converted
bundle and the command fails on failed bundles, UNHANDLED libraries and
coordinate collisions.

Examples:
  mavenizor convert graph.yaml --dry-run
  mavenizor convert plugins/ --overrides lib.properties --pom-dir repo
  mavenizor convert graph.json -o result.json --metrics-out mavenizor.prom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(loggerFromContext(cmd.Context()), opts.config)
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}
			return c.runConvert(cmd, args[0], cfg, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.config, "config", "", "configuration file (default ./mavenizor.toml)")
	f.StringVarP(&opts.output, "output", "o", "result.json", "result file")
	f.StringVar(&opts.template, "template", "lib.properties", "template file for libraries that need a decision")
	f.StringVar(&opts.overrides, "overrides", "", "library override file (replaces the configured one)")
	f.StringVar(&opts.pomDir, "pom-dir", "poms", "directory for generated POMs")
	f.StringVar(&opts.metricsOut, "metrics-out", "", "write Prometheus metrics in textfile format")
	f.StringSliceVar(&opts.input, "input", nil, "symbolic-name patterns of bundles to convert (replaces input_bundles)")
	f.IntVar(&opts.workers, "workers", 0, "concurrent bundle conversions (default GOMAXPROCS)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "report problems as warnings and skip POM output")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	f.BoolVar(&opts.refresh, "refresh", false, "ignore cached results but store the new one")
	return cmd
}

// apply lets explicitly set flags win over the configuration file.
func (o *convertOpts) apply(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("dry-run") {
		cfg.DryRun = o.dryRun
	}
	if f.Changed("workers") {
		cfg.Workers = o.workers
	}
	if f.Changed("input") {
		cfg.InputBundles = o.input
	}
	if f.Changed("overrides") {
		abs, err := filepath.Abs(o.overrides)
		if err != nil {
			return err
		}
		cfg.Overrides = abs
	}
	return cfg.Validate()
}

func (c *CLI) runConvert(cmd *cobra.Command, input string, cfg *config.Config, opts *convertOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := printer{cmd.OutOrStdout()}

	var metrics *observability.PrometheusHooks
	if opts.metricsOut != "" {
		metrics = observability.NewPrometheusHooks()
		observability.SetCacheHooks(metrics)
		defer observability.Reset()
	}

	strategy, err := cfg.Strategy()
	if err != nil {
		return err
	}
	classifier, err := cfg.Classifier()
	if err != nil {
		return err
	}
	overrides, err := cfg.LoadOverrides()
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	g, err := pkgio.ImportGraph(input)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d bundles from %s", g.Len(), input))

	configHash, err := cfg.Fingerprint()
	if err != nil {
		return err
	}

	convOpts, err := conversionOptions(cfg)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Converting bundles")
	hooks := &spinnerHooks{next: observability.Conversion(), spinner: spinner}
	if metrics != nil {
		hooks.next = metrics
	}
	observability.SetConversionHooks(hooks)
	defer observability.Reset()

	spinner.Start()
	prog = newProgress(logger)
	res, cached, err := runner.Convert(ctx, g, strategy, classifier, overrides, convOpts, convert.RunOptions{
		ConfigHash: configHash,
		Refresh:    opts.refresh,
	})
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Converted %d bundles", len(res.Bundles)))

	if err := pkgio.ExportResult(res, opts.output); err != nil {
		return err
	}
	out.success("Wrote result")
	out.file(opts.output)

	if len(res.Unhandled) > 0 || len(res.Missing) > 0 {
		if err := writeTemplateFile(res, opts.template); err != nil {
			return err
		}
		out.info("Wrote decision template")
		out.file(opts.template)
	}

	out.stats(res, cached)
	out.problems(res, !cfg.DryRun)

	if metrics != nil {
		if err := metrics.WriteTextfile(opts.metricsOut); err != nil {
			return err
		}
		logger.Debug("wrote metrics", "path", opts.metricsOut)
	}

	if cfg.DryRun {
		return nil
	}
	if err := res.Err(); err != nil {
		return err
	}

	paths, err := pkgio.ExportPOMs(convert.Projects(res), opts.pomDir)
	if err != nil {
		return err
	}
	out.success("Wrote %d POMs to %s", len(paths), opts.pomDir)
	return nil
}

// conversionOptions returns the options of cfg with a fresh coordinate cache
// for the run.
func conversionOptions(cfg *config.Config) (convert.Options, error) {
	opts := cfg.ConvertOptions()
	gc, err := gav.NewCache(gav.DefaultCacheSize)
	if err != nil {
		return convert.Options{}, err
	}
	opts.Cache = gc
	return opts, nil
}

func writeTemplateFile(res *convert.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := convert.WriteTemplate(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
