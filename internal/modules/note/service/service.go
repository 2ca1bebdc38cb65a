package service

import (
	"context"
	"sort"
	"strings"
	"time"

	chatRepo "github.com/reshetovitsme/groupguard/internal/modules/chat/repository"
	"github.com/reshetovitsme/groupguard/internal/modules/note/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/note/repository"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/samber/oops"
)

// Service manages saved notes
type Service struct {
	repo     repository.Repository
	chatRepo chatRepo.Repository
	now      func() time.Time
}

// New creates a new note service
func New(repo repository.Repository, chatRepo chatRepo.Repository) *Service {
	return &Service{
		repo:     repo,
		chatRepo: chatRepo,
		now:      time.Now,
	}
}

// SaveNote creates or overwrites a note
func (s *Service) SaveNote(ctx context.Context, chatID int64, name, content string, createdBy int64) (*domain.Note, error) {
	name = normalize(name)
	if name == "" || strings.TrimSpace(content) == "" {
		return nil, oops.With("chat_id", chatID).Wrap(errors.ErrInvalidArgument)
	}
	if _, err := s.chatRepo.GetChat(ctx, chatID); err != nil {
		return nil, err
	}

	note := &domain.Note{
		ChatID:    chatID,
		Name:      name,
		Content:   content,
		CreatedBy: createdBy,
		CreatedAt: s.now(),
	}
	if err := s.repo.SaveNote(ctx, note); err != nil {
		return nil, oops.With("chat_id", chatID, "note", name, "context", "failed to save note").Wrap(err)
	}
	return note, nil
}

// GetNote looks a note up by exact, case-insensitive name
func (s *Service) GetNote(ctx context.Context, chatID int64, name string) (*domain.Note, error) {
	if _, err := s.chatRepo.GetChat(ctx, chatID); err != nil {
		return nil, err
	}
	return s.repo.GetNote(ctx, chatID, normalize(name))
}

// ClearNote deletes a note
func (s *Service) ClearNote(ctx context.Context, chatID int64, name string) error {
	return s.repo.DeleteNote(ctx, chatID, normalize(name))
}

// ListNotes returns the chat's notes sorted by name
func (s *Service) ListNotes(ctx context.Context, chatID int64) ([]*domain.Note, error) {
	if _, err := s.chatRepo.GetChat(ctx, chatID); err != nil {
		return nil, err
	}

	notes, err := s.repo.GetNotes(ctx, chatID)
	if err != nil {
		return nil, err
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Name < notes[j].Name
	})
	return notes, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "#"))
}
