package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const DEFAULT_WIDTH = 80

var ErrInputClosed = errors.New("input closed")

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

type Console struct {
	reader *bufio.Reader
	out    io.Writer
	width  int
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	width := DEFAULT_WIDTH
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 1 {
			width = w
		}
	}

	return &Console{
		reader: bufio.NewReader(in),
		out:    out,
		width:  width,
	}
}

// GetValidatedInput prompts until validator accepts the entered line.
// ErrInputClosed is returned once the input reaches EOF without a valid line.
func (c *Console) GetValidatedInput(prompt string, validator func(string) bool) (string, error) {
	for {
		fmt.Fprintf(c.out, "%s ", prompt)

		line, err := c.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", errors.Wrap(err, "read input")
		}

		input := strings.TrimRight(line, "\r\n")
		if err == io.EOF && input == "" {
			fmt.Fprintln(c.out)

			return "", ErrInputClosed
		}

		if validator(input) {
			return input, nil
		}

		c.DisplayError("Invalid input. Please try again.")
		if err == io.EOF {
			return "", ErrInputClosed
		}
	}
}

func (c *Console) DisplayInfo(message string) {
	fmt.Fprintln(c.out, message)
}

func (c *Console) DisplayWarning(message string) {
	fmt.Fprintln(c.out, warningStyle.Render(message))
}

func (c *Console) DisplayError(message string) {
	fmt.Fprintln(c.out, errorStyle.Render(message))
}

func (c *Console) DisplaySuccess(message string) {
	fmt.Fprintln(c.out, successStyle.Render(message))
}

func (c *Console) DisplayHeader(text string) {
	rule := strings.Repeat("=", c.width-1)

	fmt.Fprintln(c.out, headerStyle.Render(rule))
	fmt.Fprintln(c.out, headerStyle.Render(strings.ToUpper(text)))
	fmt.Fprintln(c.out, headerStyle.Render(rule))
}
