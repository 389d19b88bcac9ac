// Command termcore exposes the key encoder and cell rebuilder as a CLI,
// mirroring the way the teacher's own vibetunnel binary wraps its terminal
// core for manual inspection: encode a single key event against a fixture,
// rebuild a screen snapshot into GPU cell records, or run the debug bridge
// standalone against a running config file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "termcore",
		Short: "Key encoder and cell rebuilder inspection CLI",
	}

	root.AddCommand(newEncodeCmd())
	root.AddCommand(newRebuildCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "termcore:", err)
		os.Exit(1)
	}
}
