package localdump

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBodyIsIdempotent(t *testing.T) {
	bodies := []string{
		"",
		"plain",
		"  padded \n",
		"a\r\nb\rc\nd",
		"\r\n\r\n<p>x</p>\r\n",
	}

	for _, b := range bodies {
		once := NormalizeBody(b)
		assert.Equal(t, once, NormalizeBody(once), "normalize(normalize(s)) == normalize(s) for %q", b)
	}
}

func TestNormalizeBodyUnifiesLineEndings(t *testing.T) {
	assert.Equal(t, "a\nb\nc", NormalizeBody("a\r\nb\rc"))
	assert.Equal(t, "x", NormalizeBody("  x  \n"))
}

func TestContentHashIgnoresTransportFormatting(t *testing.T) {
	assert.Equal(t,
		ContentHash("<p>hello</p>\r\n"),
		ContentHash("<p>hello</p>\n"),
		"semantically identical bodies must hash equal")

	assert.NotEqual(t,
		ContentHash("<p>hello</p>"),
		ContentHash("<p>goodbye</p>"),
		"different bodies must hash differently")
}

func TestContentHashShape(t *testing.T) {
	h := ContentHash("anything")
	assert.Len(t, h, 16)
	assert.Regexp(t, "^[0-9a-f]{16}$", h)

	// the empty body still hashes to something stable
	assert.Equal(t, ContentHash(""), ContentHash("  \r\n "))
}
