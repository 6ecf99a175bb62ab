// Package output renders quillctl results as aligned tables, JSON, or
// YAML, selected by the global -o flag.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format selects how command results are rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat maps the -o flag value to a Format. The empty string means
// table; "yml" is accepted as an alias for yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format %q (valid: table, json, yaml)", s)
	}
}

func (f Format) String() string {
	return string(f)
}

const (
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

// Successln writes a status line, green when color is enabled.
func Successln(w io.Writer, msg string, color bool) {
	statusln(w, msg, ansiGreen, color)
}

// Errorln writes a status line, red when color is enabled.
func Errorln(w io.Writer, msg string, color bool) {
	statusln(w, msg, ansiRed, color)
}

func statusln(w io.Writer, msg, code string, color bool) {
	if color {
		_, _ = fmt.Fprintf(w, "%s%s%s\n", code, msg, ansiReset)
		return
	}
	_, _ = fmt.Fprintln(w, msg)
}
