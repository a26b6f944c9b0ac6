package commands

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// LogOptions controls operator logging on stderr.
type LogOptions struct {
	Format  string
	Verbose bool
}

// AddFlags registers the logging flags as persistent flags of cmd.
func (o *LogOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.Format, "log-format", "text", "Log format (text|json)")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false, "Show request statistics and debug logs")
}

// Configure sets up the standard logrus logger.
func (o *LogOptions) Configure(w io.Writer) error {
	logger := logrus.StandardLogger()
	logger.SetOutput(w)

	switch o.Format {
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q (use text or json)", o.Format)
	}

	logger.SetLevel(logrus.InfoLevel)
	if o.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return nil
}
