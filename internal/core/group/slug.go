package group

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9_-]+$`)
	slugSeparate = regexp.MustCompile(`[^a-z0-9_]+`)
)

// ValidSlug reports whether s can be used as a group URL key.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Slugify derives a URL key from a title: accents are folded to their base
// letters and every other run of unsupported characters becomes one hyphen.
// Titles without any Latin letters or digits yield "".
func Slugify(title string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}
	s := slugSeparate.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(s, "-")
}
