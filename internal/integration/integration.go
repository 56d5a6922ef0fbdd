// Package integration provides embedded shell integration snippets.
package integration

import (
	"bytes"
	_ "embed"
	"runtime"
	"text/template"
)

// OpenReport contains the shell integration script that generates a
// report for a directory and opens the resulting workbook.
//
//go:embed open-report.sh
var OpenReport string

// opener returns the platform command used to open the workbook.
func opener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "start"
	default:
		return "xdg-open"
	}
}

// Render renders the integration script with the platform opener.
func Render() (string, error) {
	tmpl, err := template.New("open-report").Parse(OpenReport)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{
		"OPEN": opener(),
	}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
