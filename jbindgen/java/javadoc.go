package java

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/broady/jbind/jbindgen/ir"
)

// DocComment translates documentation into a Javadoc comment, each line
// prefixed with indent and the whole ending in a newline. It returns the
// empty string for empty documentation.
func DocComment(doc ir.Documentation, indent string) string {
	if doc.IsZero() {
		return ""
	}

	lines := doc.Lines()
	if len(lines) == 0 && doc.Summary != "" {
		lines = []string{doc.Summary}
	}

	var b strings.Builder
	if len(lines) == 1 && doc.Deprecated == nil {
		b.WriteString(indent)
		b.WriteString("/** ")
		b.WriteString(docText(lines[0]))
		b.WriteString(" */\n")
		return b.String()
	}

	b.WriteString(indent)
	b.WriteString("/**\n")
	for _, line := range lines {
		b.WriteString(indent)
		b.WriteString(" *")
		if text := docText(line); text != "" {
			b.WriteString(" ")
			b.WriteString(text)
		}
		b.WriteString("\n")
	}
	if doc.Deprecated != nil {
		b.WriteString(indent)
		b.WriteString(" * @deprecated")
		if msg := docText(*doc.Deprecated); msg != "" {
			b.WriteString(" ")
			b.WriteString(msg)
		}
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString(" */\n")
	return b.String()
}

// docText normalizes one line of documentation so it cannot end the comment early.
func docText(line string) string {
	line = norm.NFC.String(strings.TrimSpace(line))
	return strings.ReplaceAll(line, "*/", "*&#47;")
}
