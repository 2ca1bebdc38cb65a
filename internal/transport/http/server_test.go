package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	chatDomain "github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	chatRepo "github.com/reshetovitsme/groupguard/internal/modules/chat/repository"
	chatService "github.com/reshetovitsme/groupguard/internal/modules/chat/service"
	fedRepo "github.com/reshetovitsme/groupguard/internal/modules/federation/repository"
	fedService "github.com/reshetovitsme/groupguard/internal/modules/federation/service"
	feedService "github.com/reshetovitsme/groupguard/internal/modules/feed/service"
	modlogDomain "github.com/reshetovitsme/groupguard/internal/modules/modlog/domain"
	modlogRepo "github.com/reshetovitsme/groupguard/internal/modules/modlog/repository"
	modlogService "github.com/reshetovitsme/groupguard/internal/modules/modlog/service"
	"github.com/reshetovitsme/groupguard/internal/shared/config"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	handler http.Handler
	chats   *chatService.Service
	feds    *fedService.Service
	modlog  *modlogService.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	backend := store.NewMemoryBackend()
	chats := chatService.New(chatRepo.NewStorage(backend))
	feds := fedService.New(fedRepo.NewStorage(backend), chats)
	modlog := modlogService.New(modlogRepo.NewStorage(backend))

	server := New(&config.Config{HTTPPort: "0"}, feedService.New(modlog), feds, chats)
	return fixture{handler: server.Handler(), chats: chats, feds: feds, modlog: modlog}
}

func get(t *testing.T, h http.Handler, path string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	res := rec.Result()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	res, body := get(t, f.handler, "/health")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestGlobalBanFeed(t *testing.T) {
	f := newFixture(t)
	_, err := f.modlog.Record(context.Background(), modlogDomain.GlobalScope, modlogDomain.ActionGban, 1, 7, "spam <bot>")
	require.NoError(t, err)

	res, body := get(t, f.handler, "/feeds/gbans")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "application/rss+xml")
	assert.Contains(t, body, "<rss")
	assert.Contains(t, body, "Global bans")
	assert.Contains(t, body, "gban")
}

func TestChatFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.chats.Observe(ctx, -100, "Test Group", chatDomain.ChatTypeSupergroup)
	require.NoError(t, err)
	_, err = f.modlog.Record(ctx, modlogDomain.ChatScope(-100), modlogDomain.ActionBan, 1, 7, "flood")
	require.NoError(t, err)

	res, body := get(t, f.handler, "/feeds/chat/-100")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Test Group")
	assert.Contains(t, body, "flood")

	res, _ = get(t, f.handler, "/feeds/chat/-200")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = get(t, f.handler, "/feeds/chat/abc")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestFederationFeed(t *testing.T) {
	f := newFixture(t)
	fed, err := f.feds.Create(context.Background(), "Anti Spam", 1)
	require.NoError(t, err)

	res, body := get(t, f.handler, "/feeds/fed/"+fed.ID)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Anti Spam")

	res, _ = get(t, f.handler, "/feeds/fed/missing")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestMetricsAndRoot(t *testing.T) {
	f := newFixture(t)

	res, _ := get(t, f.handler, "/metrics")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body := get(t, f.handler, "/")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "/feeds/gbans")

	res, _ = get(t, f.handler, "/nope")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
