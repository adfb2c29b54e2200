// Package tmpl provides template rendering utilities for vault documents.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

var funcs = template.FuncMap{
	"join":  strings.Join,
	"title": titleCase,
	"add1":  func(i int) int { return i + 1 },
	"stamp": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	"day":   func(t time.Time) string { return t.Format("2006-01-02") },
	"yesno": func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	},
}

// titleCase converts snake_case identifiers into display form,
// e.g. "email_send" -> "Email Send".
func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - join: Join string slice with separator (e.g., join .Steps "\n")
//   - add1: Increment an int, for 1-based numbering in range blocks
//   - title: Display form of a snake_case identifier
//   - stamp: Format a time.Time as "2006-01-02 15:04"
//   - day: Format a time.Time as "2006-01-02"
//   - yesno: "Yes" or "No" for a bool
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
