package render

import (
	"regexp"
	"strings"

	"github.com/forPelevin/gomoji"
)

var boldMarkup = regexp.MustCompile(`\*\*(.*?)\*\*`)

// CleanContent normalizes a turn's content for document output. Applied in
// order: bold-markup markers collapse to plain text, emoji code points are
// stripped, literal '#' characters are removed, and line breaks split the
// content into paragraphs.
func CleanContent(content string) []string {
	content = boldMarkup.ReplaceAllString(content, "$1")
	content = gomoji.RemoveEmojis(content)
	content = strings.ReplaceAll(content, "#", "")

	lines := strings.Split(content, "\n")
	paragraphs := make([]string, 0, len(lines))
	for _, line := range lines {
		paragraphs = append(paragraphs, strings.TrimRight(line, " \t"))
	}
	return paragraphs
}
