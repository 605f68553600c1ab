// Package container provides dependency injection for swedbank2ynab.
// It builds the logger and the parsers from the loaded configuration.
package container

import (
	"fmt"
	"io"
	"os"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/config"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/logging"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/parser"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/swedbankparser"
)

// ParserType defines the types of parsers available.
type ParserType string

const (
	Swedbank ParserType = swedbankparser.Name
)

// Container holds the application dependencies. It is immutable after
// creation; dependencies are reached through getters.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	swedbank *swedbankparser.Parser
	parsers  map[ParserType]parser.FullParser
}

// NewContainer wires the dependencies for cfg, logging to stderr and
// writing "-" output to os.Stdout.
func NewContainer(cfg *config.Config) (*Container, error) {
	return NewContainerWith(cfg, nil, os.Stdout)
}

// NewContainerWith is NewContainer with an explicit logger and standard
// output. A nil logger is built from cfg.
func NewContainerWith(cfg *config.Config, logger logging.Logger, stdout io.Writer) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	if logger == nil {
		logger = config.ConfigureLoggingFromConfig(cfg)
	}

	swedbank := swedbankparser.NewParser(logger, ParserOptions(cfg, stdout))

	logger.Debug("Container initialized",
		logging.Field{Key: logging.FieldParser, Value: swedbankparser.Name})

	return &Container{
		logger:   logger,
		config:   cfg,
		swedbank: swedbank,
		parsers: map[ParserType]parser.FullParser{
			Swedbank: swedbank,
		},
	}, nil
}

// ParserOptions translates the conversion and output settings of cfg.
func ParserOptions(cfg *config.Config, stdout io.Writer) swedbankparser.Options {
	return swedbankparser.Options{
		Mapping: swedbankparser.MapOptions{
			DateField:     cfg.Conversion.DateField,
			PayeeField:    cfg.Conversion.PayeeField,
			ProductInMemo: cfg.Conversion.ProductInMemo,
		},
		Encoding: cfg.Conversion.Encoding,
		UseCRLF:  cfg.Output.CRLF,
		Stdout:   stdout,
	}
}

// GetParser returns the parser registered for pt.
func (c *Container) GetParser(pt ParserType) (parser.FullParser, error) {
	p, ok := c.parsers[pt]
	if !ok {
		return nil, fmt.Errorf("unknown parser type: %s", pt)
	}
	return p, nil
}

// GetSwedbankParser returns the Swedbank parser with its concrete type,
// which also exposes conversion statistics.
func (c *Container) GetSwedbankParser() *swedbankparser.Parser {
	return c.swedbank
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}
