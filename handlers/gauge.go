package handlers

import (
	"fmt"

	"i4.energy/across/athost/parser"
)

// Gauge holds a bounded integer setting, in the style of the handsfree
// volume commands AT+VGM and AT+VGS.
//
// Read reports "<name>: <value>", Set accepts exactly one integer argument
// within [min, max], and Test reports the legal range. A Gauge is driven by
// a single Parser and inherits its serialization; it does no locking of
// its own.
type Gauge struct {
	parser.BaseHandler

	name     string
	min, max int
	value    int
}

// NewGauge creates a Gauge for the extended command name (including the
// leading '+', e.g. "+VGM") with the given bounds and initial value.
func NewGauge(name string, min, max, initial int) *Gauge {
	return &Gauge{
		name:  name,
		min:   min,
		max:   max,
		value: initial,
	}
}

// Value returns the current setting.
func (g *Gauge) Value() int {
	return g.value
}

func (g *Gauge) HandleRead() *parser.Result {
	return parser.NewResult(parser.CodeOK, fmt.Sprintf("%s: %d", g.name, g.value))
}

func (g *Gauge) HandleSet(args []any) *parser.Result {
	if len(args) != 1 {
		return parser.NewResult(parser.CodeError)
	}
	n, ok := args[0].(int)
	if !ok || n < g.min || n > g.max {
		return parser.NewResult(parser.CodeError)
	}
	g.value = n
	return parser.NewResult(parser.CodeOK)
}

func (g *Gauge) HandleTest() *parser.Result {
	return parser.NewResult(parser.CodeOK, fmt.Sprintf("%s: (%d-%d)", g.name, g.min, g.max))
}
