package session

import (
	"context"

	"listo/internal/todolist"
)

// Snapshotter holds the copy taken by "save" and handed back by "load".
// Implementations follow todolist.List.CopyFrom: an empty source never
// overwrites the destination.
type Snapshotter interface {
	Save(ctx context.Context, active *todolist.List) error
	Restore(ctx context.Context, active *todolist.List) error
}

// MemorySnapshot keeps the saved copy as a second list.
type MemorySnapshot struct {
	saved *todolist.List
}

func NewMemorySnapshot() *MemorySnapshot {
	return &MemorySnapshot{saved: todolist.New()}
}

func (m *MemorySnapshot) Save(_ context.Context, active *todolist.List) error {
	m.saved.CopyFrom(active)
	return nil
}

func (m *MemorySnapshot) Restore(_ context.Context, active *todolist.List) error {
	active.CopyFrom(m.saved)
	return nil
}

func (m *MemorySnapshot) Len() int {
	return m.saved.Len()
}

func (m *MemorySnapshot) Close() error {
	m.saved.Clear()
	return nil
}
