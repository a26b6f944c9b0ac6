package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logpuzzle/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a logpuzzle configuration file without reading any logs.

Checks:
  - YAML syntax
  - Host, path marker, extension and key length
  - Timestamp pattern validity
  - Fetch limits
  - Webhook URLs and triggers`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	host := cfg.Host
	if host == "" {
		host = "(from log file name)"
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Host:        %s\n", host)
	fmt.Fprintf(w, "  Path marker: %s\n", cfg.PathMarker)
	fmt.Fprintf(w, "  Extension:   %s\n", cfg.Extension)
	fmt.Fprintf(w, "  Key length:  %d\n", cfg.KeyLength)
	fmt.Fprintf(w, "  Timeout:     %s\n", cfg.Fetch.Timeout)
	fmt.Fprintf(w, "  Webhooks:    %d\n", len(cfg.Webhooks))

	for i, wh := range cfg.Webhooks {
		name := wh.Name
		if name == "" {
			name = wh.URL
		}
		fmt.Fprintf(w, "    %d. [%s] %s\n", i+1, wh.Trigger, name)
	}

	return nil
}
