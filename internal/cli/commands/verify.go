package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logpuzzle/pkg/gallery"
)

// VerifyOptions holds command-line options for the verify command.
type VerifyOptions struct {
	Output string
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand() *cobra.Command {
	opts := &VerifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify <dir>",
		Short: "Check that a gallery directory is complete",
		Long: `Read DIR/index.html and check that every image it references exists
in DIR.

Exit codes:
  0 - All images present
  1 - One or more images missing
  2 - No index or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")

	return cmd
}

func runVerify(cmd *cobra.Command, args []string, opts *VerifyOptions) error {
	in, err := gallery.Inspect(args[0])
	if err != nil {
		return fmt.Errorf("verifying gallery: %w", err)
	}

	w := cmd.OutOrStdout()
	switch opts.Output {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(in)
	case "text", "":
		err = writeInspection(w, in)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if !in.Complete() {
		ExitCode = 1
	}
	return nil
}

func writeInspection(w io.Writer, in *gallery.Inspection) error {
	if _, err := fmt.Fprintf(w, "Gallery: %s\n  Images:  %d\n  Missing: %d\n", in.IndexPath, len(in.Images), len(in.Missing)); err != nil {
		return err
	}
	for _, name := range in.Missing {
		if _, err := fmt.Fprintf(w, "  - %s\n", name); err != nil {
			return err
		}
	}
	if len(in.Remote) > 0 {
		if _, err := fmt.Fprintf(w, "  Remote (not checked): %d\n", len(in.Remote)); err != nil {
			return err
		}
	}
	return nil
}
