package at

import (
	"bufio"
	"bytes"
)

// Splitter is used for tokenizing AT command lines arriving from the
// terminal equipment. It uses the signature of bufio.SplitFunc so it can be
// directly used with bufio.Scanner.
//
// V.250 command lines are terminated by <CR>; many terminal programs send
// <CR><LF>. The splitter accepts either and strips the terminator, so each
// token is one bare command line ready for the parser.
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining data is returned as the final token.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, '\r'); i >= 0 {
		if i == len(data)-1 && !atEOF {
			// Cannot tell yet whether a <LF> follows the <CR>.
			return 0, nil, nil
		}
		advance = i + 1
		if advance < len(data) && data[advance] == '\n' {
			advance++
		}
		return advance, data[0:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter
