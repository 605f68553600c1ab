// Package config implements the config command, which prints the effective
// configuration.
package config

import (
	"fmt"

	"github.com/jonix/swedbank-ynab-csv-converter/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the config command
var Cmd = NewCmd()

// NewCmd builds the config command.
func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration that a conversion would use, after merging
defaults, the config file, SWEDBANK2YNAB_* environment variables and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.LoadConfig(cmd)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}
