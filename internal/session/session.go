// Package session interprets to-do commands against an active list and a
// saved snapshot of it.
package session

import (
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/charmbracelet/log"

	"listo/internal/todolist"
)

const (
	CmdQuit    = "quit"
	CmdAdd     = "add"
	CmdRemove  = "remove"
	CmdCheck   = "check"
	CmdUncheck = "uncheck"
	CmdSave    = "save"
	CmdLoad    = "load"
)

// defaultDescription is stored when "add" is given a name and nothing else.
const defaultDescription = " "

type Session struct {
	active *todolist.List
	saved  Snapshotter
	logger *log.Logger
	done   bool
}

// New starts a session with an empty active list. A nil saved uses a
// MemorySnapshot; a nil logger discards output.
func New(saved Snapshotter, logger *log.Logger) *Session {
	if saved == nil {
		saved = NewMemorySnapshot()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		active: todolist.New(),
		saved:  saved,
		logger: logger,
	}
}

// Entries yields the active list in name order.
func (s *Session) Entries() iter.Seq[todolist.Entry] {
	return s.active.Entries()
}

func (s *Session) Len() int {
	return s.active.Len()
}

// Done reports whether "quit" has been accepted.
func (s *Session) Done() bool {
	return s.done
}

// ExecLine parses and runs one input line.
func (s *Session) ExecLine(ctx context.Context, line string) error {
	return s.Exec(ctx, Parse(line))
}

// Exec runs a parsed command. Usage errors leave the session unchanged;
// other errors come from the snapshot store.
func (s *Session) Exec(ctx context.Context, c Command) error {
	if s.done {
		return nil
	}
	s.logger.Debug("exec", "command", c.Name, "target", c.Target, "rest", c.HasRest)

	switch c.Name {
	case CmdQuit, CmdSave, CmdLoad:
		if c.Target != "" {
			return ErrTooManyArguments
		}
		return s.execBare(ctx, c.Name)

	case CmdAdd:
		if c.Target == "" {
			return ErrNoName
		}
		desc := c.Rest
		if desc == "" {
			desc = defaultDescription
		}
		s.active.Add(c.Target, desc)
		return nil

	case CmdRemove, CmdCheck, CmdUncheck:
		if c.Target == "" {
			return ErrNoName
		}
		if c.Extra {
			return ErrTooManyArguments
		}
		switch c.Name {
		case CmdRemove:
			s.active.Remove(c.Target)
		case CmdCheck:
			s.active.Check(c.Target)
		case CmdUncheck:
			s.active.Uncheck(c.Target)
		}
		return nil
	}

	return ErrNoSuchCommand
}

func (s *Session) execBare(ctx context.Context, name string) error {
	switch name {
	case CmdQuit:
		s.done = true
	case CmdSave:
		if err := s.saved.Save(ctx, s.active); err != nil {
			s.logger.Error("save failed", "err", err)
			return fmt.Errorf("save: %w", err)
		}
		s.logger.Info("saved", "entries", s.active.Len())
	case CmdLoad:
		if err := s.saved.Restore(ctx, s.active); err != nil {
			s.logger.Error("load failed", "err", err)
			return fmt.Errorf("load: %w", err)
		}
		s.logger.Info("loaded", "entries", s.active.Len())
	}
	return nil
}

// Close releases the active list and, when it implements io.Closer, the
// snapshot store.
func (s *Session) Close() error {
	s.active.Clear()
	if c, ok := s.saved.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
