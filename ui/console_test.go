package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValidatedInput(t *testing.T) {
	var tests = []struct {
		name         string
		input        string
		want         string
		wantErr      error
		wantInvalids int
	}{
		{"valid first try", "abc\n", "abc", nil, 0},
		{"reprompt until valid", "1\nab\nTable123\n", "Table123", nil, 2},
		{"windows line ending", "abc\r\n", "abc", nil, 0},
		{"valid last line without newline", "x\nabc", "abc", nil, 1},
		{"eof", "", "", ErrInputClosed, 0},
		{"eof after invalid", "x\n", "", ErrInputClosed, 1},
		{"invalid last line without newline", "x", "", ErrInputClosed, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			console := NewConsole(strings.NewReader(test.input), out)

			got, err := console.GetValidatedInput("Enter Table Name:", func(s string) bool {
				return len(s) >= 3
			})

			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, test.want, got)
			assert.Equal(t, test.wantInvalids, strings.Count(out.String(), "Invalid input. Please try again."))
			assert.True(t, strings.HasPrefix(out.String(), "Enter Table Name: "))
		})
	}
}

func TestDisplay(t *testing.T) {
	out := &bytes.Buffer{}
	console := NewConsole(strings.NewReader(""), out)

	console.DisplayInfo("info message")
	console.DisplayWarning("warning message")
	console.DisplayError("error message")
	console.DisplaySuccess("success message")

	for _, want := range []string{"info message", "warning message", "error message", "success message"} {
		assert.Contains(t, out.String(), want)
	}
	assert.Equal(t, 4, strings.Count(out.String(), "\n"))
}

func TestDisplayHeader(t *testing.T) {
	out := &bytes.Buffer{}
	console := NewConsole(strings.NewReader(""), out)

	console.DisplayHeader("Azure Table Storage Cleaner")

	assert.Contains(t, out.String(), "AZURE TABLE STORAGE CLEANER")
	assert.Equal(t, 2, strings.Count(out.String(), strings.Repeat("=", DEFAULT_WIDTH-1)))
}
