package repository

import (
	"context"

	"github.com/reshetovitsme/groupguard/internal/modules/note/domain"
)

// Repository defines the interface for note persistence
type Repository interface {
	SaveNote(ctx context.Context, note *domain.Note) error
	GetNote(ctx context.Context, chatID int64, name string) (*domain.Note, error)
	GetNotes(ctx context.Context, chatID int64) ([]*domain.Note, error)
	DeleteNote(ctx context.Context, chatID int64, name string) error
}
