// Package prompt provides the yes/no question channel used in interactive
// runs. One Confirmer is opened per run and closed when the run ends.
package prompt

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

var (
	ErrClosed  = errors.New("confirmer closed")
	ErrAborted = errors.New("prompt aborted")
)

// Confirmer asks a question and returns the raw answer.
type Confirmer interface {
	Ask(question string) (string, error)
	Close() error
}

// Open returns a terminal prompt when in is an interactive terminal and a
// plain line reader otherwise (pipes, files, tests).
func Open(in io.Reader, out io.Writer) Confirmer {
	if f, ok := in.(*os.File); ok && IsTerminal(f) {
		return NewTeaConfirmer(f, out)
	}
	return NewLineConfirmer(in, out)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ─── Line reader ─────────────────────────────────────────────────────────────

// LineConfirmer writes the question and reads one line per answer.
type LineConfirmer struct {
	mu     sync.Mutex
	in     *bufio.Reader
	out    io.Writer
	closed bool
}

// NewLineConfirmer reads answers from in and writes questions to out.
func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: bufio.NewReader(in), out: out}
}

// Ask writes question and returns the next input line without its line
// terminator. End of input with no pending text is reported as io.EOF.
func (c *LineConfirmer) Ask(question string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return "", ErrClosed
	}

	if _, err := io.WriteString(c.out, question); err != nil {
		return "", errors.Wrap(err, "write prompt")
	}
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close releases the confirmer. It is safe to call more than once.
func (c *LineConfirmer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
