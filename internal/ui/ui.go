package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"listo/internal/session"
	"listo/internal/todolist"
)

const (
	boxChecked   = "[X]"
	boxUnchecked = "[ ]"
)

type Options struct {
	// Color enables styling when out is a terminal. Pipes and files always
	// get plain text.
	Color bool
	// Prompt is written before each line is read when non-empty.
	Prompt string
}

// Styles decorates the parts of the output that may be coloured. Entry
// names and descriptions are always written verbatim.
type Styles struct {
	Checked   func(string) string
	Unchecked func(string) string
	Error     func(string) string
}

func plain(s string) string { return s }

func PlainStyles() Styles {
	return Styles{Checked: plain, Unchecked: plain, Error: plain}
}

// NewStyles returns lipgloss styles bound to w, so colour is only emitted
// when w is a terminal that supports it.
func NewStyles(w io.Writer, color bool) Styles {
	if !color {
		return PlainStyles()
	}
	r := lipgloss.NewRenderer(w)
	checked := r.NewStyle().Foreground(lipgloss.Color("42"))
	unchecked := r.NewStyle().Faint(true)
	errStyle := r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	return Styles{
		Checked:   func(s string) string { return checked.Render(s) },
		Unchecked: func(s string) string { return unchecked.Render(s) },
		Error: func(msg string) string {
			text := strings.TrimRight(msg, " ")
			return errStyle.Render(text) + msg[len(text):]
		},
	}
}

// Run reads commands from in until end of input or "quit", redrawing the
// list on out after every other line. End of input is a normal exit.
func Run(ctx context.Context, in io.Reader, out io.Writer, sess *session.Session, opts Options) error {
	styles := NewStyles(out, opts.Color)
	r := bufio.NewReader(in)
	w := bufio.NewWriter(out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.Prompt != "" {
			if _, err := io.WriteString(w, opts.Prompt); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
		line, readErr := readLine(r)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("read input: %w", readErr)
		}
		if readErr != nil && line == "" {
			break
		}

		err := sess.ExecLine(ctx, line)
		if sess.Done() {
			return w.Flush()
		}
		if err := renderTurn(w, err, sess.Entries(), styles); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if readErr != nil {
			break
		}
	}
	return w.Flush()
}

// readLine returns the next line without its "\n" or "\r\n" ending. Lines
// have no length limit. A final line without a newline comes back together
// with io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, err
}

func renderTurn(w io.Writer, cmdErr error, entries iter.Seq[todolist.Entry], st Styles) error {
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	if cmdErr != nil {
		msg := cmdErr.Error()
		if !session.IsUsageError(cmdErr) {
			msg = "ERROR: " + msg
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", st.Error(msg)); err != nil {
			return err
		}
	}
	return RenderList(w, entries, st)
}

// RenderList writes one "[X] name description" or "[ ] name description"
// line per entry.
func RenderList(w io.Writer, entries iter.Seq[todolist.Entry], st Styles) error {
	for e := range entries {
		box := st.Unchecked(boxUnchecked)
		if e.Completed {
			box = st.Checked(boxChecked)
		}
		if _, err := fmt.Fprintf(w, "%s %s %s\n", box, e.Name, e.Description); err != nil {
			return err
		}
	}
	return nil
}
