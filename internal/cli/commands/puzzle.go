package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/logpuzzle/pkg/config"
	"github.com/ccollicutt/logpuzzle/pkg/extractor"
	"github.com/ccollicutt/logpuzzle/pkg/fetcher"
	"github.com/ccollicutt/logpuzzle/pkg/gallery"
	"github.com/ccollicutt/logpuzzle/pkg/output"
	"github.com/ccollicutt/logpuzzle/pkg/parser"
	"github.com/ccollicutt/logpuzzle/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// PuzzleOptions holds command-line options for the puzzle command.
type PuzzleOptions struct {
	Log LogOptions

	ToDir       string
	ConfigFile  string
	Host        string
	Output      string
	Quiet       bool
	MetricsFile string

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string

	// transport replaces the download transport in tests.
	transport http.RoundTripper
}

// NewPuzzleCommand creates the top-level command that extracts puzzle URLs
// and optionally builds the gallery.
func NewPuzzleCommand() *cobra.Command {
	return newPuzzleCommand(&PuzzleOptions{})
}

func newPuzzleCommand(opts *PuzzleOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logpuzzle [flags] LOGFILE...",
		Short: "Reassemble image puzzles from Apache access logs",
		Long: `logpuzzle finds the puzzle image requests in Apache access logs,
removes duplicates and orders them by the last characters of the file name.

Without --todir the ordered URLs are printed one per line. With --todir each
image is downloaded as img0.jpg, img1.jpg, ... and an index.html showing them
side by side is written into the directory.

Several log files (or glob patterns) are merged by request time.

The host is taken from --host, the config file, LOGPUZZLE_HOST, or the part of
the log file name after the first underscore (animal_code.google.com), in that
order.

Exit codes:
  0 - Success
  1 - Usage error
  2 - Configuration or runtime error`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Log.Configure(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPuzzle(cmd, args, opts)
		},
	}

	opts.Log.AddFlags(cmd)

	cmd.Flags().StringVarP(&opts.ToDir, "todir", "d", "", "Download images into `DIR` and write index.html")
	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "YAML configuration file")
	cmd.Flags().StringVar(&opts.Host, "host", "", "Host to prefix puzzle paths with")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write download metrics in Prometheus text format to `FILE`")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerOnFailures), "When to fire webhook (on_failures|always|never)")

	return cmd
}

func runPuzzle(cmd *cobra.Command, args []string, opts *PuzzleOptions) error {
	if len(args) == 0 {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		ExitCode = 1
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	cfg, err := config.Load(ctx, opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	hooks, err := collectWebhooks(cfg, opts)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Log.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding log files: %w", err)
	}

	host := resolveHost(opts.Host, cfg.Host, files)
	if err := config.ValidateHost(host); err != nil {
		return fmt.Errorf("host: %w", err)
	}

	ex := extractor.New(
		extractor.WithHost(host),
		extractor.WithPathMarker(cfg.PathMarker),
		extractor.WithExtension(cfg.Extension),
		extractor.WithKeyLength(cfg.KeyLength),
	)
	logrus.WithFields(logrus.Fields{
		"files": len(files),
		"host":  ex.Host(),
	}).Debug("reading logs")

	source := parser.OpenSources(files, parser.NewTimestampExtractor(
		cfg.TimestampFormat.CompiledPattern(),
		cfg.TimestampFormat.Layout,
	))
	defer source.Close()

	result, err := ex.Collect(ctx, source)
	if err != nil {
		return fmt.Errorf("extracting urls: %w", err)
	}

	metrics := fetcher.NewMetrics()
	var galleryResult *gallery.Result
	if opts.ToDir != "" {
		galleryResult, err = buildGallery(ctx, cfg, opts, metrics, result.URLs())
		if err != nil {
			return err
		}
	}

	report := output.NewReport(result, galleryResult, output.Metadata{
		Sources:   files,
		Host:      ex.Host(),
		StartedAt: start,
		Duration:  time.Since(start),
	})

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Webhook failures are logged but don't fail the run
	if len(hooks) > 0 {
		webhook.NewClient().Notify(ctx, report, hooks)
	}

	if opts.MetricsFile != "" {
		if err := metrics.WriteTextfile(opts.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	return nil
}

func buildGallery(ctx context.Context, cfg *config.Config, opts *PuzzleOptions, metrics *fetcher.Metrics, urls []string) (*gallery.Result, error) {
	fetchOpts := []fetcher.Option{
		fetcher.WithUserAgent(userAgent(cfg.Fetch.UserAgent)),
		fetcher.WithTimeout(cfg.Fetch.Timeout),
		fetcher.WithMaxBodySize(cfg.Fetch.MaxBodySize),
		fetcher.WithMetrics(metrics),
		fetcher.WithLogger(logrus.StandardLogger()),
	}
	if opts.transport != nil {
		fetchOpts = append(fetchOpts, fetcher.WithTransport(opts.transport))
	}

	g := gallery.New(fetcher.New(fetchOpts...),
		gallery.WithTitle(cfg.Gallery.Title),
		gallery.WithExtension(cfg.Extension),
		gallery.WithLogger(logrus.StandardLogger()),
	)

	result, err := g.Materialize(ctx, urls, opts.ToDir)
	if err != nil {
		return nil, fmt.Errorf("building gallery: %w", err)
	}
	return result, nil
}

// resolveHost picks the host in order: flag, config (including the
// environment), first log file name, default.
func resolveHost(flagHost, cfgHost string, files []string) string {
	if flagHost != "" {
		return flagHost
	}
	if cfgHost != "" {
		return cfgHost
	}
	if len(files) > 0 {
		if host := extractor.HostFromFilename(files[0]); host != "" {
			logrus.WithFields(logrus.Fields{
				"file": files[0],
				"host": host,
			}).Info("using host from log file name")
			return host
		}
	}
	return extractor.DefaultHost
}

// userAgent appends the build version to the default client identity.
func userAgent(configured string) string {
	if configured == config.DefaultUserAgent {
		return configured + "/" + Version
	}
	return configured
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *PuzzleOptions) ([]config.WebhookConfig, error) {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnFailures
		}
		if !trigger.Valid() {
			return nil, fmt.Errorf("invalid webhook trigger %q (use on_failures, always or never)", opts.WebhookTrigger)
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks, nil
}
