// Package handlers provides ready-made CommandHandler implementations for
// the commands most AT responders carry: identification, bounded integer
// settings, and basic commands that simply acknowledge.
package handlers

import (
	"i4.energy/across/athost/parser"
)

// Info answers an extended identification command (AT+GMI, AT+GMM, AT+GMR
// style) with a fixed text line. Both the action and read shapes report
// the text.
type Info struct {
	parser.BaseHandler

	// Text is the identification line sent to the terminal.
	Text string
}

func (h Info) HandleAction() *parser.Result {
	return parser.NewResult(parser.CodeOK, h.Text)
}

func (h Info) HandleRead() *parser.Result {
	return parser.NewResult(parser.CodeOK, h.Text)
}
