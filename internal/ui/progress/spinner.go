// Package progress provides progress indication for blocking operations
// that run before an interactive form opens.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-isatty"
)

// Spinner shows an animated message on stderr until Stop is called.
type Spinner struct {
	message string
	out     io.Writer
	enabled bool

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

type spinnerModel struct {
	spinner spinner.Model
	message string
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		// Keys are ignored; the caller decides when the wait is over.
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() tea.View {
	return tea.NewView(fmt.Sprintf("%s %s", m.spinner.View(), m.message))
}

// NewSpinner creates a spinner writing to stderr. It stays silent when
// stderr is not a terminal.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		out:     os.Stderr,
		enabled: isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// Start begins the animation. Calling Start twice has no effect.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.program != nil {
		return
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	s.program = tea.NewProgram(spinnerModel{spinner: sp, message: s.message},
		tea.WithoutSignalHandler(),
		tea.WithOutput(s.out),
	)
	s.done = make(chan struct{})

	go func(p *tea.Program, done chan struct{}) {
		_, _ = p.Run()
		close(done)
	}(s.program, s.done)
}

// Stop ends the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	p, done := s.program, s.done
	s.program = nil
	s.mu.Unlock()

	if p == nil {
		return
	}
	p.Quit()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
	}

	fmt.Fprint(s.out, "\r\033[K")
}

// While runs fn with the spinner shown.
func While[T any](message string, fn func() T) T {
	s := NewSpinner(message)
	s.Start()
	defer s.Stop()
	return fn()
}
