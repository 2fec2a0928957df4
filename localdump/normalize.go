package localdump

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// NormalizeBody unifies line endings to \n and trims outer whitespace, so
// that transport-introduced formatting differences don't register as content
// changes.  Idempotent: normalizing twice equals normalizing once.
func NormalizeBody(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")
	return strings.TrimSpace(body)
}

// ContentHash digests the normalized body for change detection.  xxhash is
// plenty: collisions here cost a redundant download, not a security hole.
func ContentHash(body string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(NormalizeBody(body)))
}
