package parser

// CommandHandler answers the five AT command shapes. The Parser invokes at
// most one method per command processed:
//
//   - HandleBasic for basic commands ("ATD...")
//   - HandleAction for extended action commands ("AT+FOO")
//   - HandleRead for extended read commands ("AT+FOO?")
//   - HandleSet for extended set commands ("AT+FOO=...")
//   - HandleTest for extended test commands ("AT+FOO=?")
//
// Handlers never return Go errors; failures are Results with CodeError.
// Concrete handlers embed BaseHandler and override only the shapes they
// support.
type CommandHandler interface {
	// HandleBasic handles a basic command such as "ATA". Everything
	// following the single command letter is passed as arg; "ATDT1234"
	// calls HandleBasic("T1234") on the handler registered for 'D'.
	HandleBasic(arg string) *Result

	// HandleAction handles "AT+FOO", typically signalling an action on FOO.
	HandleAction() *Result

	// HandleRead handles "AT+FOO?", typically reading the value of FOO.
	HandleRead() *Result

	// HandleSet handles "AT+FOO=[<arg1>[,<arg2>[,...]]]". Each element of
	// args is an int (if the field parses as a signed integer) or a string.
	// Missing fields ",," arrive as empty strings, and there is always at
	// least one element.
	HandleSet(args []any) *Result

	// HandleTest handles "AT+FOO=?", typically reporting the legal values
	// of FOO.
	HandleTest() *Result
}

// BaseHandler provides the default behavior for all five command shapes:
// Error for everything except Test, which answers OK to indicate the
// command is at least recognized.
type BaseHandler struct{}

func (BaseHandler) HandleBasic(arg string) *Result {
	return NewResult(CodeError)
}

func (BaseHandler) HandleAction() *Result {
	return NewResult(CodeError)
}

func (BaseHandler) HandleRead() *Result {
	return NewResult(CodeError)
}

func (BaseHandler) HandleSet(args []any) *Result {
	return NewResult(CodeError)
}

func (BaseHandler) HandleTest() *Result {
	return NewResult(CodeOK)
}

var _ CommandHandler = BaseHandler{}
