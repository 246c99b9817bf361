// Package parser implements a Hayes (V.250) AT command parser for the
// subset required by the Bluetooth Headset and Handsfree Profiles, plus a
// few V.250 features those profiles do not require, such as chained
// extended commands.
//
// A Parser breaks each command line into one or more commands. Each command
// is parsed for name, type and optional arguments, and dispatched to the
// CommandHandler registered for its name. The handler results are folded
// into a single aggregate Result for the whole line.
//
// The parser owns no transport: it consumes one already-delimited line
// (no <CR> terminator) per Process call and returns the aggregate Result,
// which the caller renders and writes back.
package parser

import (
	"strconv"
	"strings"
)

// commandType classifies an extended command by the syntax after its name.
type commandType int

const (
	typeAction commandType = iota // AT+FOO
	typeRead                      // AT+FOO?
	typeSet                       // AT+FOO=
	typeTest                      // AT+FOO=?
)

// Parser parses AT command lines and dispatches them to registered
// CommandHandlers.
//
// Basic commands are registered by their single letter ('A'..'Z'), extended
// commands by their full name including the leading '+'. Registering twice
// for the same name replaces the earlier handler.
//
// Basic commands cannot be chained: everything after the command letter is
// its argument. Extended commands chain with ';':
//
//	AT+VGM?;+VGM=14;+CIMI
//
// is equivalent to the three lines AT+VGM?, AT+VGM=14 and AT+CIMI, except
// that a single final result is returned and the rest of the chain is
// abandoned as soon as one command fails.
//
// A Parser keeps unsynchronized state (the registries and the repeat-line
// memory); concurrent use of one instance requires external serialization.
type Parser struct {
	basic    map[byte]CommandHandler
	extended map[string]CommandHandler

	// lastInput is the most recently processed cleaned line, replayed by
	// the "A/" repeat shorthand.
	lastInput string
}

// New creates a Parser with empty registries.
func New() *Parser {
	return &Parser{
		basic:    make(map[byte]CommandHandler),
		extended: make(map[string]CommandHandler),
	}
}

// RegisterBasic registers a handler for the basic command letter cmd, such
// as 'A' or 'D'. The handler is invoked via HandleBasic.
func (p *Parser) RegisterBasic(cmd byte, handler CommandHandler) {
	p.basic[cmd] = handler
}

// RegisterExtended registers a handler for the extended command name,
// including its leading '+' (for example "+CIMI"). The handler is invoked
// via HandleAction, HandleRead, HandleSet or HandleTest depending on the
// command syntax.
func (p *Parser) RegisterExtended(name string, handler CommandHandler) {
	p.extended[name] = handler
}

// Process parses one AT command line and invokes at most one handler method
// per command in the line. The input carries no end-of-line terminator.
//
// Process never returns nil. Lines that do not start with "AT" after
// cleaning, unregistered command names and handler failures all surface as
// a Result with CodeError; an empty line yields CodeUnsolicited with an
// empty body.
func (p *Parser) Process(line string) *Result {
	input := clean(line)

	// "A/" repeats the previous line. Anything else becomes the new
	// previous line, even when it fails the checks below.
	if strings.HasPrefix(input, "A/") {
		input = p.lastInput
	} else {
		p.lastInput = input
	}

	// Empty line - no response necessary.
	if input == "" {
		return NewResult(CodeUnsolicited)
	}

	// Anything not starting with AT deserves an error.
	if !strings.HasPrefix(input, "AT") {
		return NewResult(CodeError)
	}

	index := 2
	result := NewResult(CodeUnsolicited)

	for index < len(input) {
		c := input[index]

		if isAtoZ(c) {
			// Basic command. The rest of the line is the argument and is
			// never reinterpreted; basic commands do not chain.
			handler, ok := p.basic[c]
			if !ok {
				result.AddResult(NewResult(CodeError))
				return result
			}
			result.AddResult(handler.HandleBasic(input[index+1:]))
			return result
		}

		if c == '+' {
			// Extended command. Scan the name and short-circuit if it is
			// not registered.
			i := endOfName(input, index+1)
			name := input[index:i]

			handler, ok := p.extended[name]
			if !ok {
				result.AddResult(NewResult(CodeError))
				return result
			}

			// This command's segment ends at the next unquoted ';', or at
			// the end of the line.
			end := findUnquoted(input, ';', index)

			switch classify(input, i, end) {
			case typeAction:
				result.AddResult(handler.HandleAction())
			case typeRead:
				result.AddResult(handler.HandleRead())
			case typeTest:
				result.AddResult(handler.HandleTest())
			case typeSet:
				result.AddResult(handler.HandleSet(splitArgs(input[i+1 : end])))
			}

			// Abandon the rest of the chain as soon as a command fails.
			if result.Code() != CodeOK {
				return result
			}

			index = end
			continue
		}

		// Can't tell if this is a basic or extended command. Push forward
		// and hope we hit something.
		index++
	}

	// Finished the whole chain and every result was OK.
	return result
}

// clean strips spaces and upper-cases the line, except inside double-quoted
// sections, which are copied verbatim. An unmatched quote is fixed by
// appending one; double quotes are the only quotes V.250 allows.
func clean(data string) string {
	var out strings.Builder
	out.Grow(len(data) + 1)

	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case c == '"':
			j := strings.IndexByte(data[i+1:], '"')
			if j < 0 {
				// Unmatched quote, insert one.
				out.WriteString(data[i:])
				out.WriteByte('"')
				return out.String()
			}
			j += i + 1
			out.WriteString(data[i : j+1])
			i = j
		case c != ' ':
			out.WriteByte(toUpper(c))
		}
	}

	return out.String()
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func isAtoZ(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// findUnquoted returns the index of the first occurrence of ch at or after
// from, ignoring quoted sections, or len(data) if there is none. An
// unterminated quoted section runs to the end of the line.
func findUnquoted(data string, ch byte, from int) int {
	for i := from; i < len(data); i++ {
		switch data[i] {
		case '"':
			j := strings.IndexByte(data[i+1:], '"')
			if j < 0 {
				return len(data)
			}
			i += j + 1
		case ch:
			return i
		}
	}
	return len(data)
}

// endOfName returns the index just past the last character of the extended
// command name starting at from, using the character set V.250 allows in
// extended command names.
func endOfName(data string, from int) int {
	for i := from; i < len(data); i++ {
		c := data[i]
		if isAtoZ(c) || (c >= '0' && c <= '9') {
			continue
		}
		switch c {
		case '!', '%', '-', '.', '/', ':', '_':
			continue
		}
		return i
	}
	return len(data)
}

// classify determines the extended command type from the character that
// follows the name, defaulting to Action when nothing else is obvious.
// nameEnd is the index just past the command name, segEnd the end of the
// command's segment within the chain.
func classify(data string, nameEnd, segEnd int) commandType {
	switch {
	case nameEnd >= segEnd:
		return typeAction
	case data[nameEnd] == '?':
		return typeRead
	case data[nameEnd] == '=':
		if nameEnd+1 < segEnd && data[nameEnd+1] == '?' {
			return typeTest
		}
		return typeSet
	default:
		return typeAction
	}
}

// splitArgs breaks a Set command argument string into individual arguments.
// Arguments are comma delimited; commas inside quoted sections do not
// split. Fields that parse as signed integers become ints, everything else
// stays a string with quotes intact. Missing fields ",," become empty
// strings, and even an empty argument string yields one empty-string
// argument.
func splitArgs(data string) []any {
	var out []any

	for i := 0; i <= len(data); {
		j := findUnquoted(data, ',', i)
		arg := data[i:j]

		if n, err := strconv.Atoi(arg); err == nil {
			out = append(out, n)
		} else {
			out = append(out, arg)
		}

		i = j + 1 // move past the comma
	}

	return out
}
