package service

import (
	"context"
	"testing"

	chatDomain "github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	chatRepo "github.com/reshetovitsme/groupguard/internal/modules/chat/repository"
	"github.com/reshetovitsme/groupguard/internal/modules/note/repository"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotes(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	chats := chatRepo.NewStorage(backend)
	require.NoError(t, chats.SaveChat(ctx, &chatDomain.Chat{ID: -100}))
	svc := New(repository.NewStorage(backend), chats)

	_, err := svc.SaveNote(ctx, -100, "Rules", "No spam", 1)
	require.NoError(t, err)
	_, err = svc.SaveNote(ctx, -100, "about", "A test group", 1)
	require.NoError(t, err)

	note, err := svc.GetNote(ctx, -100, "#RULES")
	require.NoError(t, err)
	assert.Equal(t, "No spam", note.Content)

	// Exact match only
	_, err = svc.GetNote(ctx, -100, "rule")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	notes, err := svc.ListNotes(ctx, -100)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "about", notes[0].Name)

	require.NoError(t, svc.ClearNote(ctx, -100, "rules"))
	_, err = svc.GetNote(ctx, -100, "rules")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = svc.GetNote(ctx, -555, "rules")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
