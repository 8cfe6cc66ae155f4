package style

import "github.com/fatih/color"

// Style names a semantic output decoration.
type Style int

const (
	Success Style = iota
	Failure
	Error
	Skip
	ExpectedFailure
	UnexpectedSuccess
)

// Palette resolves semantic styles to text decoration. When the colour
// capability is unavailable every style resolves to plain text; that is
// a degraded mode, never an error.
type Palette struct {
	sprints map[Style]func(a ...interface{}) string
}

// NewPalette resolves the colour capability once, at construction.
// Success is black on green, failure yellow on red, error bright white
// on red, skip yellow, expected failure and unexpected success red.
func NewPalette() *Palette {
	if color.NoColor {
		return &Palette{}
	}
	return &Palette{sprints: map[Style]func(a ...interface{}) string{
		Success:           color.New(color.FgBlack, color.BgGreen).SprintFunc(),
		Failure:           color.New(color.FgYellow, color.BgRed).SprintFunc(),
		Error:             color.New(color.FgWhite, color.BgRed, color.Bold).SprintFunc(),
		Skip:              color.New(color.FgYellow).SprintFunc(),
		ExpectedFailure:   color.New(color.FgRed).SprintFunc(),
		UnexpectedSuccess: color.New(color.FgRed).SprintFunc(),
	}}
}

// Plain returns a palette with every style resolved to plain text.
func Plain() *Palette {
	return &Palette{}
}

// Wrap applies the decoration for s to text, or returns text unchanged
// when the capability is absent.
func (p *Palette) Wrap(s Style, text string) string {
	if p == nil || p.sprints == nil {
		return text
	}
	if fn, ok := p.sprints[s]; ok {
		return fn(text)
	}
	return text
}
