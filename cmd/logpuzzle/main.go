// logpuzzle - Image Puzzle Reassembly Tool
//
// logpuzzle recovers the image fragments requested in Apache access logs,
// orders them, and optionally downloads them into an HTML gallery.
package main

import (
	"os"

	"github.com/ccollicutt/logpuzzle/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
