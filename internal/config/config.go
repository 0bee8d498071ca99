// =============================================================================
// Excel to vCard Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the optional YAML configuration file.
// Every setting has a built-in default, so the converter runs without any
// configuration file at all.
//
// PRECEDENCE:
//   1. Command-line flags (--sheet, --output)
//   2. Configuration file (--config)
//   3. Built-in defaults
//
// EXAMPLE FILE:
//   sheet: Workers
//   output: Exported.vcf
//   missing_markers: [nan, "n/a"]
//   raw_cell_values: true
//   columns:
//     phone: Mobile
//     mail: E-mail
//   csv:
//     delimiter: ";"
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/types"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultSheet is the sheet processed when none is given.
	DefaultSheet = "Workers"

	// DefaultOutput is the destination file written when none is given.
	DefaultOutput = "Exported.vcf"

	// DefaultDelimiter is the CSV field separator.
	DefaultDelimiter = ","
)

// DefaultMissingMarkers are the textual values treated as an empty cell.
// "nan" is what spreadsheet exports commonly leave behind for blank cells.
var DefaultMissingMarkers = []string{"nan"}

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// Sheet is the name of the sheet to convert.
	// Default: "Workers"
	Sheet string `yaml:"sheet"`

	// Output is the destination .vcf path.
	// Default: "Exported.vcf"
	Output string `yaml:"output"`

	// MissingMarkers are cell values that mean "no value".
	// Compared case-insensitively after trimming.
	// Default: ["nan"]
	MissingMarkers []string `yaml:"missing_markers"`

	// RawCellValues reads spreadsheet cells without applying number formats,
	// so a phone stored as a number is not rendered as e.g. "7.91E+10".
	// Default: true
	RawCellValues *bool `yaml:"raw_cell_values"`

	// Columns maps each recognized field to the header used in the sheet.
	Columns Columns `yaml:"columns"`

	// CSV contains settings for .csv inputs.
	CSV CSVSettings `yaml:"csv"`
}

// Columns holds the sheet header for each recognized field.
// Empty entries fall back to the field's default header.
type Columns struct {
	Phone        string `yaml:"phone"`
	Name         string `yaml:"name"`
	Surname      string `yaml:"surname"`
	MiddleName   string `yaml:"middle_name"`
	Prefix       string `yaml:"prefix"`
	Suffix       string `yaml:"suffix"`
	Mail         string `yaml:"mail"`
	Organization string `yaml:"organization"`
	Title        string `yaml:"title"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields.
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Comment, if set, marks lines to be ignored.
	Comment string `yaml:"comment"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration file at configPath. An empty path returns the
// defaults. A path that does not exist is an error.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration data, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills in default values for any missing configuration.
func applyDefaults(cfg *Config) {
	if cfg.Sheet == "" {
		cfg.Sheet = DefaultSheet
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.MissingMarkers == nil {
		cfg.MissingMarkers = append([]string(nil), DefaultMissingMarkers...)
	}
	if cfg.RawCellValues == nil {
		raw := true
		cfg.RawCellValues = &raw
	}
	if cfg.CSV.Delimiter == "" {
		cfg.CSV.Delimiter = DefaultDelimiter
	}

	c := &cfg.Columns
	for _, slot := range []struct {
		value *string
		field types.Field
	}{
		{&c.Phone, types.FieldPhone},
		{&c.Name, types.FieldName},
		{&c.Surname, types.FieldSurname},
		{&c.MiddleName, types.FieldMiddleName},
		{&c.Prefix, types.FieldPrefix},
		{&c.Suffix, types.FieldSuffix},
		{&c.Mail, types.FieldMail},
		{&c.Organization, types.FieldOrganization},
		{&c.Title, types.FieldTitle},
	} {
		// Sheet headers are trimmed when read, so configured ones are too.
		*slot.value = strings.TrimSpace(*slot.value)
		if *slot.value == "" {
			*slot.value = slot.field.String()
		}
	}
}

// validate checks the configuration for settings the converter cannot use.
func validate(cfg *Config) error {
	seen := make(map[string]types.Field)
	for _, f := range types.Fields {
		header := cfg.Columns.Header(f)
		if other, dup := seen[header]; dup {
			return fmt.Errorf("columns %s and %s both use header %q", other, f, header)
		}
		seen[header] = f
	}

	if utf8.RuneCountInString(cfg.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got %q", cfg.CSV.Delimiter)
	}
	if cfg.CSV.Comment != "" && utf8.RuneCountInString(cfg.CSV.Comment) != 1 {
		return fmt.Errorf("csv comment must be a single character, got %q", cfg.CSV.Comment)
	}
	if cfg.CSV.Comment == cfg.CSV.Delimiter {
		return errors.New("csv comment and delimiter must differ")
	}

	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Header returns the sheet header configured for a field.
func (c Columns) Header(f types.Field) string {
	switch f {
	case types.FieldPhone:
		return c.Phone
	case types.FieldName:
		return c.Name
	case types.FieldSurname:
		return c.Surname
	case types.FieldMiddleName:
		return c.MiddleName
	case types.FieldPrefix:
		return c.Prefix
	case types.FieldSuffix:
		return c.Suffix
	case types.FieldMail:
		return c.Mail
	case types.FieldOrganization:
		return c.Organization
	case types.FieldTitle:
		return c.Title
	}
	return ""
}

// UseRawCellValues reports whether spreadsheet number formats are bypassed.
func (c *Config) UseRawCellValues() bool {
	return c.RawCellValues == nil || *c.RawCellValues
}
