package at

const (
	// Terminal Control
	CR   = "\r"
	CRLF = "\r\n"

	// Final Result Strings
	OK    = "OK"
	ERROR = "ERROR"
)
