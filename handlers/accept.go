package handlers

import (
	"i4.energy/across/athost/parser"
)

// Accept answers a basic command with OK regardless of its argument, the
// stock behavior for ATA or ATH on a device without call control.
type Accept struct {
	parser.BaseHandler
}

func (Accept) HandleBasic(arg string) *parser.Result {
	return parser.NewResult(parser.CodeOK)
}
