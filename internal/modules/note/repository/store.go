package repository

import (
	"context"
	"strconv"

	"github.com/reshetovitsme/groupguard/internal/modules/note/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/oops"
)

const kind = "notes"

// Storage implements Repository on top of a store backend
type Storage struct {
	notes *store.Collection[domain.Note]
}

// NewStorage creates a store-backed note repository
func NewStorage(backend store.Backend) Repository {
	return &Storage{notes: store.NewCollection[domain.Note](backend, kind)}
}

func (s *Storage) SaveNote(ctx context.Context, note *domain.Note) error {
	return s.notes.Put(ctx, strconv.FormatInt(note.ChatID, 10), note.Name, note)
}

func (s *Storage) GetNote(ctx context.Context, chatID int64, name string) (*domain.Note, error) {
	note, err := s.notes.Get(ctx, strconv.FormatInt(chatID, 10), name)
	if err != nil {
		return nil, oops.With("chat_id", chatID, "note", name).Wrap(err)
	}
	return note, nil
}

func (s *Storage) GetNotes(ctx context.Context, chatID int64) ([]*domain.Note, error) {
	return s.notes.List(ctx, strconv.FormatInt(chatID, 10))
}

func (s *Storage) DeleteNote(ctx context.Context, chatID int64, name string) error {
	if err := s.notes.Delete(ctx, strconv.FormatInt(chatID, 10), name); err != nil {
		return oops.With("chat_id", chatID, "note", name).Wrap(err)
	}
	return nil
}
