// Not-at-all novel terminal style copypasta, originally from
// https://raw.githubusercontent.com/shabbyrobe/golib/master/termfmt/termfmt.go
// Provided under an MIT license.  Trimmed to the handful of escapes the
// end-of-run summary actually uses.
package termfmt

import "fmt"

type Escape interface {
	Wrap(out string) string
}

func With(escs ...Escape) Style { return (Style{}).With(escs...) }
func Bold() Style               { return (Style{}).Bold() }
func Fg(c C16Name) Style        { return (Style{}).Fg(c) }

type Style struct {
	escapes []Escape
	v       any
}

var _ fmt.Formatter = Style{}

func (c Style) With(escs ...Escape) Style {
	c.escapes = append(c.escapes, escs...)
	return c
}

func (c Style) Bold() Style        { return c.With(BoldEscape{}) }
func (c Style) Fg(name C16Name) Style { return c.With(C16Color{Name: name}) }

func (c Style) V(v any) Style {
	c.v = v
	return c
}

func (c Style) Format(f fmt.State, verb rune) {
	v := fmt.Sprintf(fmt.Sprintf("%%%s", string(verb)), c.v)
	for i := len(c.escapes) - 1; i >= 0; i-- {
		v = c.escapes[i].Wrap(v)
	}
	f.Write([]byte(v))
}

type BoldEscape struct{}

func (b BoldEscape) Wrap(v string) string { return fmt.Sprintf("\x1b[1m%s\x1b[0m", v) }

// https://github.com/termstandard/colors
type C16Name uint8

const (
	Black C16Name = iota + 30
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

type C16Color struct {
	Name C16Name
	Bg   bool
}

func (c C16Color) Wrap(out string) string {
	esc := uint8(c.Name)
	if c.Bg {
		esc += 10
	}
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", esc, out)
}
