package at_test

import (
	"bufio"
	"strings"
	"testing"

	"i4.energy/across/athost/at"
)

func TestSplitter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "CRLF terminated lines",
			input:    "ATD123\r\nAT+CSQ\r\n",
			expected: []string{"ATD123", "AT+CSQ"},
		},
		{
			name:     "CR only terminated lines",
			input:    "AT\rAT+CIMI\r",
			expected: []string{"AT", "AT+CIMI"},
		},
		{
			name:     "mixed terminators",
			input:    "ATA\rAT+VGM=14\r\nATH\r",
			expected: []string{"ATA", "AT+VGM=14", "ATH"},
		},
		{
			name:     "empty lines preserved",
			input:    "\r\n\r\nAT\r\n",
			expected: []string{"", "", "AT"},
		},
		{
			name:     "quoted content passes through",
			input:    "AT+CSCS=\"GSM\"\r\n",
			expected: []string{"AT+CSCS=\"GSM\""},
		},
		{
			name:     "chained command line",
			input:    "AT+VGM?;+VGM=14;+CIMI\r",
			expected: []string{"AT+VGM?;+VGM=14;+CIMI"},
		},
		// EOF scenarios - testing atEOF functionality
		{
			name:     "line without terminator at EOF",
			input:    "AT+CPIN",
			expected: []string{"AT+CPIN"},
		},
		{
			name:     "trailing partial line at EOF",
			input:    "ATA\r\nAT+CS",
			expected: []string{"ATA", "AT+CS"},
		},
		{
			name:     "CR as final byte at EOF",
			input:    "ATA\r",
			expected: []string{"ATA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tokens []string
			scanner := bufio.NewScanner(strings.NewReader(tt.input))
			scanner.Split(at.Splitter)

			for scanner.Scan() {
				tokens = append(tokens, scanner.Text())
			}

			if err := scanner.Err(); err != nil {
				t.Fatalf("Scanner error: %v", err)
			}

			if len(tokens) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d.\nExpected: %v\nGot: %v",
					len(tt.expected), len(tokens), tt.expected, tokens)
			}

			for i, expected := range tt.expected {
				if tokens[i] != expected {
					t.Errorf("Token %d: expected %q, got %q", i, expected, tokens[i])
				}
			}
		})
	}
}
