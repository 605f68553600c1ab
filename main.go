package main

import (
	"fmt"
	"os"

	configcmd "github.com/jonix/swedbank-ynab-csv-converter/cmd/config"
	"github.com/jonix/swedbank-ynab-csv-converter/cmd/root"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/config"
)

func init() {
	// Load .env before any configuration is read. Nothing is logged here:
	// the logger is configured later from the merged configuration.
	if _, err := config.LoadEnv(nil); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	root.Cmd.AddCommand(configcmd.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
