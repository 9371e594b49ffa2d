package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"listo/internal/session"
	"listo/internal/todolist"
)

func runScript(t *testing.T, input string, opts Options) string {
	t.Helper()
	var out bytes.Buffer
	sess := session.New(nil, nil)
	if err := Run(context.Background(), strings.NewReader(input), &out, sess, opts); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestRunTranscript(t *testing.T) {
	input := strings.Join([]string{
		"add apple buy fruit",
		"add zebra walk dog",
		"check apple",
		"quit extra",
		"bogus",
		"remove banana",
		"add",
		"quit",
		"add never seen",
	}, "\n") + "\n"

	both := "[X] apple buy fruit\n[ ] zebra walk dog\n"
	want := "\n[ ] apple buy fruit\n" +
		"\n[ ] apple buy fruit\n[ ] zebra walk dog\n" +
		"\n" + both +
		"\nERROR: Too many arguments.\n\n" + both +
		"\nERROR: No such command. \n\n" + both +
		"\n" + both +
		"\nERROR: No name given. \n\n" + both

	if got := runScript(t, input, Options{}); got != want {
		t.Errorf("output mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single add",
			input: "add zebra walk the dog\n",
			want:  "\n[ ] zebra walk the dog\n",
		},
		{
			name:  "three tokens",
			input: "add a b c\n",
			want:  "\n[ ] a b c\n",
		},
		{
			name:  "name only",
			input: "add lone\n",
			want:  "\n[ ] lone  \n",
		},
		{
			name:  "update unchecks",
			input: "add x a\ncheck x\nadd x b\n",
			want:  "\n[ ] x a\n\n[X] x a\n\n[ ] x b\n",
		},
		{
			name:  "blank line",
			input: "\n",
			want:  "\nERROR: No such command. \n\n",
		},
		{
			name:  "quit ends without output",
			input: "quit\n",
			want:  "",
		},
		{
			name:  "no trailing newline",
			input: "add a 1",
			want:  "\n[ ] a 1\n",
		},
		{
			name:  "crlf without final newline",
			input: "add a 1\r\ncheck a\r",
			want:  "\n[ ] a 1\n\n[X] a 1\n",
		},
		{
			name:  "crlf input",
			input: "add a 1\r\ncheck a\r\n",
			want:  "\n[ ] a 1\n\n[X] a 1\n",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "save empty keeps snapshot",
			input: "add a 1\nsave\nremove a\nsave\nload\n",
			want:  "\n[ ] a 1\n\n[ ] a 1\n\n\n\n[ ] a 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runScript(t, tt.input, Options{}); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunHandlesVeryLongLines(t *testing.T) {
	desc := strings.Repeat("x", 2<<20)
	input := "add big " + desc + "\nadd a 1\n"

	got := runScript(t, input, Options{})
	want := "\n[ ] big " + desc + "\n" +
		"\n[ ] a 1\n[ ] big " + desc + "\n"
	if got != want {
		t.Errorf("output length %d, want %d", len(got), len(want))
	}
}

func TestNewStylesKeepText(t *testing.T) {
	st := NewStyles(&bytes.Buffer{}, true)
	for _, f := range []func(string) string{st.Checked, st.Unchecked, st.Error} {
		if got := f("[X]"); !strings.Contains(got, "[X]") {
			t.Errorf("styled text lost content: %q", got)
		}
	}
	if got := st.Error("ERROR: No name given. "); !strings.HasSuffix(got, " ") {
		t.Errorf("error style dropped trailing space: %q", got)
	}
}

func TestRunPrompt(t *testing.T) {
	got := runScript(t, "add a 1\nquit\n", Options{Prompt: "> "})
	want := "> \n[ ] a 1\n> "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunColorOnPipeIsPlain(t *testing.T) {
	got := runScript(t, "add a 1\ncheck a\n", Options{Color: true})
	if !strings.Contains(got, "a 1") || strings.Contains(got, "\x1b[") {
		t.Errorf("unexpected styled output for non-terminal writer: %q", got)
	}
}

type snapshotFunc func() error

func (f snapshotFunc) Save(context.Context, *todolist.List) error    { return f() }
func (f snapshotFunc) Restore(context.Context, *todolist.List) error { return f() }

func TestRunReportsStoreErrors(t *testing.T) {
	var out bytes.Buffer
	sess := session.New(snapshotFunc(func() error { return errors.New("disk on fire") }), nil)
	if err := Run(context.Background(), strings.NewReader("add a 1\nsave\n"), &out, sess, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "\n[ ] a 1\n\nERROR: save: disk on fire\n\n[ ] a 1\n"
	if got := out.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRunReturnsWriteErrors(t *testing.T) {
	sess := session.New(nil, nil)
	err := Run(context.Background(), strings.NewReader("add a 1\n"), failingWriter{}, sess, Options{})
	if err == nil {
		t.Fatal("expected write error")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := Run(ctx, strings.NewReader("add a 1\n"), &out, session.New(nil, nil), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRenderList(t *testing.T) {
	l := todolist.New()
	l.Add("b", "second\titem")
	l.Add("a", "")
	l.Check("b")

	var buf bytes.Buffer
	if err := RenderList(&buf, l.Entries(), PlainStyles()); err != nil {
		t.Fatal(err)
	}
	want := "[ ] a \n[X] b second\titem\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
