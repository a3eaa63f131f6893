package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"
)

// Login renders the login view, with msg as a notice if not empty.
func Login(msg string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("arthik")
	doc.PlainText("")
	if msg != "" {
		doc.Blockquote(inline(msg))
		doc.PlainText("")
	}
	doc.PlainText("Enter your password to continue.")
	doc.PlainText("")
	return doc.String()
}
