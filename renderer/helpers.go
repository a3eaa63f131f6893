package renderer

import (
	"strings"
)

// cells makes values safe as the cells of one table row: the builder writes
// cells as is, so line breaks are folded and pipes escaped.
func cells(values ...string) []string {
	row := make([]string, len(values))
	for i, v := range values {
		v = strings.ReplaceAll(v, "\n", " ")
		row[i] = strings.ReplaceAll(v, "|", `\|`)
	}
	return row
}

// inline makes s safe as a single line of text.
func inline(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// punctuation is the set of characters markdown lets a backslash escape.
const punctuation = "\\`*_{}[]()<>#+-.!|~&"

// literal escapes every line of s so that it renders as text and never as
// markdown structure. Leading indentation is dropped for the same reason.
func literal(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		var b strings.Builder
		for _, r := range strings.TrimLeft(line, " \t") {
			if strings.ContainsRune(punctuation, r) {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
