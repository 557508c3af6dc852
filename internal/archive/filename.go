package archive

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)

// foldMarks decomposes accented letters and drops the combining marks, so
// "García" sanitizes to GARCIA instead of losing the letter entirely.
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// DeriveFilename computes the stable filename under which an archived
// conversation is stored: {yyyyMMddHHmm}_{LASTNAME}_{FIRSTNAME}.pdf with
// accents folded and every non-alphanumeric character stripped from the
// names before upper-casing. The retrieval utility depends on this being
// bit-exact.
func DeriveFilename(t time.Time, firstName, lastName string) string {
	return t.Format("200601021504") + "_" + sanitizeNamePart(lastName) + "_" + sanitizeNamePart(firstName) + ".pdf"
}

func sanitizeNamePart(name string) string {
	if folded, _, err := transform.String(foldMarks, name); err == nil {
		name = folded
	}
	return strings.ToUpper(nonAlphanumeric.ReplaceAllString(name, ""))
}
