// Package root contains the root command for the application
package root

import (
	"github.com/jonix/swedbank-ynab-csv-converter/cmd/common"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/config"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/container"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/logging"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/models"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cmd is the root command
var Cmd = NewCmd()

// NewCmd builds the root command. It converts the export named by its single
// argument and carries the persistent flags shared with subcommands.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swedbank2ynab [flags] <input>",
		Short: "Convert a Swedbank CSV export to a YNAB import CSV",
		Long: `swedbank2ynab converts a Swedbank transaction export (CSV) to the
Date,Payee,Memo,Amount format accepted by YNAB file import.

Summary lines before the header, ',' or ';' delimiters, decimal commas and
UTF-8, Windows-1252 or ISO-8859-1 input are handled automatically. Rows that
cannot be converted are skipped with a warning on stderr.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConvert,
	}
	AddFlags(cmd.PersistentFlags())
	return cmd
}

// AddFlags registers the configuration flags on flags.
func AddFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default swedbank2ynab.yaml in $HOME/.swedbank2ynab, ./.swedbank2ynab or .)")
	flags.StringP("output", "o", "-", "output file, '-' or 'stdout' for standard output")
	flags.String("date-field", models.ColumnBookingDate, "date column: Bokföringsdag, Transaktionsdag or Valutadag")
	flags.String("payee-field", models.ColumnDescription, "payee column: Beskrivning or Referens")
	flags.Bool("product-in-memo", false, "append [Produkt] to the memo")
	flags.String("encoding", "", "force the input encoding, e.g. cp1252, utf-8, iso-8859-1")
	flags.Bool("crlf", true, "end output lines with CRLF, --crlf=false for LF")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")
}

// LoadConfig loads the configuration, honoring --config and every flag set
// on the command line.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.InitializeConfig(configFile, cmd.Flags())
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}

	log := logging.NewLogrusAdapterWithOutput(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	c, err := container.NewContainerWith(cfg, log, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	p, err := c.GetParser(container.Swedbank)
	if err != nil {
		return err
	}
	return common.ProcessFile(p, args[0], cfg.Output.Path, c.GetLogger())
}
