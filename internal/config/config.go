// Package config manages application configuration.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roboco-io/tablekit/internal/ir"
	"github.com/roboco-io/tablekit/internal/render"
	"github.com/roboco-io/tablekit/internal/table"
)

// Config represents the application configuration.
type Config struct {
	Table   TableConfig   `yaml:"table"`
	History HistoryConfig `yaml:"history"`
	Output  OutputConfig  `yaml:"output"`
}

// TableConfig contains defaults for newly created tables and cells.
type TableConfig struct {
	DefaultRows    int    `yaml:"default_rows"`
	DefaultColumns int    `yaml:"default_columns"`
	DefaultAlign   string `yaml:"default_align"`
	ColumnFill     string `yaml:"column_fill"` // text of cells added by insert-column
}

// HistoryConfig contains undo history options.
type HistoryConfig struct {
	Limit int `yaml:"limit"`
}

// OutputConfig contains rendering options.
type OutputConfig struct {
	Format string `yaml:"format"` // markdown, text, html
}

// Keys lists the settable configuration keys.
var Keys = []string{
	"table.default_rows",
	"table.default_columns",
	"table.default_align",
	"table.column_fill",
	"history.limit",
	"output.format",
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Table: TableConfig{
			DefaultRows:    1,
			DefaultColumns: 2,
			DefaultAlign:   string(table.AlignLeft),
			ColumnFill:     " ",
		},
		History: HistoryConfig{
			Limit: ir.DefaultHistoryLimit,
		},
		Output: OutputConfig{
			Format: string(render.FormatMarkdown),
		},
	}
}

// Set parses and assigns value to the dotted configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "table.default_rows", "table.default_columns", "history.limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid value for %s: %s (positive integer required)", key, value)
		}
		switch key {
		case "table.default_rows":
			c.Table.DefaultRows = n
		case "table.default_columns":
			c.Table.DefaultColumns = n
		default:
			c.History.Limit = n
		}

	case "table.default_align":
		a, err := table.ParseAlign(value)
		if err != nil {
			return err
		}
		c.Table.DefaultAlign = string(a)

	case "table.column_fill":
		c.Table.ColumnFill = value

	case "output.format":
		f, err := render.ParseFormat(value)
		if err != nil {
			return err
		}
		c.Output.Format = string(f)

	default:
		return fmt.Errorf("unknown config key: %s (supported: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// EditorOptions returns table editor options for the configuration.
// Invalid or missing values fall back to the editor defaults.
func (c *Config) EditorOptions() table.Options {
	opts := table.DefaultOptions()
	if c.Table.DefaultRows > 0 {
		opts.DefaultRows = c.Table.DefaultRows
	}
	if c.Table.DefaultColumns > 0 {
		opts.DefaultColumns = c.Table.DefaultColumns
	}
	if a, err := table.ParseAlign(c.Table.DefaultAlign); err == nil {
		opts.DefaultAlign = a
	}
	opts.ColumnFill = c.Table.ColumnFill
	return opts
}

// OutputFormat returns the configured output format, defaulting to Markdown.
func (c *Config) OutputFormat() render.Format {
	f, err := render.ParseFormat(c.Output.Format)
	if err != nil {
		return render.FormatMarkdown
	}
	return f
}
