package localdump

import (
	"fmt"
	"regexp"
	"strings"
)

const maxTitleLength = 120

var unsafeChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// SanitizeTitle turns a page title into a filesystem-safe fragment: each
// unsafe character becomes '-', outer whitespace is trimmed, and the result
// is capped at 120 runes.  Already-safe short titles come back unchanged.
func SanitizeTitle(title string) string {
	safe := unsafeChars.ReplaceAllString(title, "-")
	safe = strings.TrimSpace(safe)

	if runes := []rune(safe); len(runes) > maxTitleLength {
		safe = string(runes[:maxTitleLength])
	}

	return safe
}

// PageFileName builds the collision-resistant record name for one page:
// {pageId}-{sanitizedTitle}.{ext}.  The leading ID keeps two pages with the
// same title from clobbering each other.
func PageFileName(id ContentID, title string, format BodyFormat) string {
	return fmt.Sprintf("%s-%s.%s", id, SanitizeTitle(title), format.Extension())
}

func errUnknownFormat(s string) error {
	return fmt.Errorf("localdump: unknown body format '%s' (want '%s' or '%s')", s, FormatStorage, FormatExportView)
}
