package prompt

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/lakshaymaurya-felt/cleaninstall/internal/ui"
)

// TeaConfirmer renders each question as a short-lived bubbletea program
// with a single text input. Programs run strictly one at a time.
type TeaConfirmer struct {
	mu     sync.Mutex
	in     *os.File
	out    io.Writer
	closed bool
}

// NewTeaConfirmer prompts on the terminal in, rendering to out.
func NewTeaConfirmer(in *os.File, out io.Writer) *TeaConfirmer {
	return &TeaConfirmer{in: in, out: out}
}

// Ask shows question and waits for Enter. Esc and Ctrl+C abort with ErrAborted.
func (c *TeaConfirmer) Ask(question string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return "", ErrClosed
	}

	p := tea.NewProgram(newAskModel(question), tea.WithInput(c.in), tea.WithOutput(c.out))
	final, err := p.Run()
	if err != nil {
		return "", errors.Wrap(err, "run prompt")
	}
	m, ok := final.(askModel)
	if !ok {
		return "", errors.Errorf("unexpected prompt model %T", final)
	}
	if m.aborted {
		return "", ErrAborted
	}
	return m.answer, nil
}

// Close releases the confirmer. The terminal itself is owned by the caller.
func (c *TeaConfirmer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// ─── Model ───────────────────────────────────────────────────────────────────

type askModel struct {
	question string
	input    textinput.Model
	answer   string
	done     bool
	aborted  bool
}

func newAskModel(question string) askModel {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "y/N"
	in.CharLimit = 16
	in.Focus()
	return askModel{question: question, input: in}
}

func (m askModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m askModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.answer = m.input.Value()
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.aborted = true
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m askModel) View() string {
	q := ui.PromptStyle.Render(strings.TrimRight(m.question, " "))
	if m.done {
		answer := m.answer
		if m.aborted {
			answer = ui.MutedStyle.Render("aborted")
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, q, " ", answer) + "\n"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, q, " ", m.input.View())
}
