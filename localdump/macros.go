package localdump

import "strings"

// The three embedded-macro markers we tally.  Counted in the raw
// (un-normalized) body; storage format is not well-formed HTML, so a literal
// prefix match beats any tolerant parse.
const (
	markerStructuredMacro = "<ac:structured-macro"
	markerImage           = "<ac:image"
	markerLink            = "<ac:link"
)

// CountMacros counts occurrences of the macro markers in a raw body.
func CountMacros(rawBody string) MacroCounts {
	return MacroCounts{
		StructuredMacro: strings.Count(rawBody, markerStructuredMacro),
		Image:           strings.Count(rawBody, markerImage),
		Link:            strings.Count(rawBody, markerLink),
	}
}
