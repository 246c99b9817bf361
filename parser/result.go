package parser

import (
	"i4.energy/across/athost/at"
)

// ResultCode identifies the outcome of a processed command line.
type ResultCode int

const (
	// CodeOK indicates every command in the line succeeded.
	CodeOK ResultCode = iota
	// CodeError indicates a command failed or was not recognized.
	CodeError
	// CodeUnsolicited indicates no command was present. Unsolicited results
	// render their response body without a final result string.
	CodeUnsolicited
)

// String returns a human-readable name for the result code.
func (c ResultCode) String() string {
	switch c {
	case CodeOK:
		return "OK"
	case CodeError:
		return "ERROR"
	case CodeUnsolicited:
		return "UNSOLICITED"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome of one command or of a whole command line: a result
// code plus an ordered multi-line response body. Results from chained
// commands are combined with AddResult into a single aggregate.
type Result struct {
	code     ResultCode
	response string
}

// NewResult creates a Result with the given code and optional response lines.
func NewResult(code ResultCode, lines ...string) *Result {
	r := &Result{code: code}
	for _, line := range lines {
		r.AddResponse(line)
	}
	return r
}

// Code returns the result code.
func (r *Result) Code() ResultCode {
	return r.code
}

// AddResponse appends another line to the response body.
func (r *Result) AddResponse(response string) {
	r.response = appendBlock(r.response, response)
}

// AddResult folds other into r: other's response is appended to the body and
// other's code replaces r's code. The overwrite means "most recent code
// wins", which equals "first failure wins" only because Process stops the
// chain at the first non-OK result. Callers combining results outside that
// loop must keep the same stop-on-first-failure discipline.
func (r *Result) AddResult(other *Result) {
	if other == nil {
		return
	}
	r.response = appendBlock(r.response, other.response)
	r.code = other.code
}

// String renders the reply ready to send back to the terminal: the response
// body followed by the final result string for CodeOK and CodeError.
// CodeUnsolicited renders the body alone.
func (r *Result) String() string {
	switch r.code {
	case CodeOK:
		return appendBlock(r.response, at.OK)
	case CodeError:
		return appendBlock(r.response, at.ERROR)
	default:
		return r.response
	}
}

// appendBlock joins two response blocks with a blank line, the V.250 framing
// for multi-line replies. Empty blocks join without a separator.
func appendBlock(a, b string) string {
	if len(a) > 0 && len(b) > 0 {
		a += at.CRLF + at.CRLF
	}
	return a + b
}
