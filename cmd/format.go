package cmd

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/arthik/session"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	formatTerm     = "term"
	formatMarkdown = "markdown"
	formatHTML     = "html"
)

var html = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))

// render converts a markdown view to the output format.
func render(md, format string, dark bool) (string, error) {
	switch format {
	case formatTerm:
		style := session.ThemeLight
		if dark {
			style = session.ThemeDark
		}
		return glamour.Render(md, style)
	case formatMarkdown:
		return md, nil
	case formatHTML:
		var buf bytes.Buffer
		if err := html.Convert([]byte(md), &buf); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	return "", fmt.Errorf("unknown format %q, want %s, %s or %s", format, formatTerm, formatMarkdown, formatHTML)
}
