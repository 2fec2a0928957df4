package localdump

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountMacros(t *testing.T) {
	body := `<p>intro</p>
<ac:structured-macro ac:name="toc"/>
<ac:image><ri:attachment ri:filename="a.png"/></ac:image>
<ac:link><ri:page ri:content-title="Other"/></ac:link>
<ac:structured-macro ac:name="code">text</ac:structured-macro>`

	counts := CountMacros(body)
	assert.Equal(t, MacroCounts{StructuredMacro: 2, Image: 1, Link: 1}, counts)
}

func TestCountMacrosEmptyBody(t *testing.T) {
	assert.Equal(t, MacroCounts{}, CountMacros(""))
}

func TestCountMacrosUsesRawBody(t *testing.T) {
	// markers split across normalized whitespace must still count on the raw text
	raw := "<ac:image\r\n  ri:width=\"300\"/>"
	assert.Equal(t, 1, CountMacros(raw).Image)
}
