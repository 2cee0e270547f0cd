package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "-"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// YAML formatting.
	defaultYAMLIndent = 2
)

// StandardJSONRenderer encodes data as indented JSON to stdout.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer encodes data as YAML to stdout.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(defaultYAMLIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// humanize turns SHOUTY_SNAKE enum values like "RUN_COMPLETED" into
// "Run Completed" for table output.
func humanize(value string) string {
	if value == "" {
		return NotAvailable
	}

	lowered := strings.ToLower(strings.ReplaceAll(value, "_", " "))

	return cases.Title(language.English).String(lowered)
}

// derefOr returns the pointed-to string or a fallback for nil.
func derefOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}

	return *value
}

// verboseLogger writes structured debug output to stderr. It backs the
// --verbose flag.
type verboseLogger struct{}

func (verboseLogger) log(level, msg string, fields map[string]interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "[%s] %s", level, msg)

	for key, value := range fields {
		_, _ = fmt.Fprintf(os.Stderr, " %s=%v", key, value)
	}

	_, _ = fmt.Fprintln(os.Stderr)
}

func (l verboseLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l verboseLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l verboseLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l verboseLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }
