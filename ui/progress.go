package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Progress renders a Model on out while a delete is running. Input is not
// read so the console prompts keep owning stdin.
type Progress struct {
	program *tea.Program
	done    chan struct{}
}

func NewProgress(out io.Writer) *Progress {
	return &Progress{
		program: tea.NewProgram(InitModel(),
			tea.WithOutput(out),
			tea.WithInput(nil),
			tea.WithoutSignalHandler()),
		done: make(chan struct{}),
	}
}

func (p *Progress) Start() {
	go func() {
		defer close(p.done)
		_, _ = p.program.Run()
	}()
}

func (p *Progress) Send(msg BatchMsg) {
	p.program.Send(msg)
}

func (p *Progress) Stop() {
	p.program.Send(doneMsg{})
	<-p.done
}
