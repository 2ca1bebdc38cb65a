package http

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	chatService "github.com/reshetovitsme/groupguard/internal/modules/chat/service"
	fedService "github.com/reshetovitsme/groupguard/internal/modules/federation/service"
	feedService "github.com/reshetovitsme/groupguard/internal/modules/feed/service"
	modlogDomain "github.com/reshetovitsme/groupguard/internal/modules/modlog/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/config"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	sloghttp "github.com/samber/slog-http"
)

// Server exposes health, metrics and moderation log feeds
type Server struct {
	cfg         *config.Config
	feedService *feedService.Service
	feds        *fedService.Service
	chats       *chatService.Service
	logger      *slog.Logger
	server      *http.Server
}

// New creates a new HTTP server
func New(cfg *config.Config, feedService *feedService.Service, feds *fedService.Service, chats *chatService.Service) *Server {
	return &Server{
		cfg:         cfg,
		feedService: feedService,
		feds:        feds,
		chats:       chats,
		logger:      slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Handler returns the routes wrapped in logging and recovery middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /feeds/gbans", s.handleGlobalBanFeed)
	mux.HandleFunc("GET /feeds/fed/{fedID}", s.handleFederationFeed)
	mux.HandleFunc("GET /feeds/chat/{chatID}", s.handleChatFeed)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	handler := sloghttp.Recovery(mux)
	return sloghttp.New(s.logger)(handler)
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("HTTP server starting", "addr", addr)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := s.server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleGlobalBanFeed(w http.ResponseWriter, r *http.Request) {
	s.writeFeed(w, r, modlogDomain.GlobalScope, "Global bans")
}

func (s *Server) handleFederationFeed(w http.ResponseWriter, r *http.Request) {
	fedID := r.PathValue("fedID")
	fed, err := s.feds.Get(r.Context(), fedID)
	if err != nil {
		s.lookupError(w, err, "fed_id", fedID)
		return
	}
	s.writeFeed(w, r, modlogDomain.FedScope(fed.ID), fmt.Sprintf("Federation %s", fed.Name))
}

func (s *Server) handleChatFeed(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(r.PathValue("chatID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	chat, err := s.chats.GetChat(r.Context(), chatID)
	if err != nil {
		s.lookupError(w, err, "chat_id", chatID)
		return
	}
	s.writeFeed(w, r, modlogDomain.ChatScope(chat.ID), fmt.Sprintf("Moderation in %s", chat.Title))
}

func (s *Server) lookupError(w http.ResponseWriter, err error, key string, value any) {
	if stderrors.Is(err, errors.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	s.logger.Error("Error loading feed owner", key, value, "error", err)
	http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
}

func (s *Server) writeFeed(w http.ResponseWriter, r *http.Request, scope, title string) {
	link := fmt.Sprintf("%s://%s%s", getScheme(r), r.Host, r.URL.Path)

	feed, err := s.feedService.GenerateFeed(r.Context(), scope, title, link)
	if err != nil {
		s.logger.Error("Error generating feed", "scope", scope, "error", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	rss, err := feed.ToRss()
	if err != nil {
		s.logger.Error("Error converting feed to RSS", "scope", scope, "error", err)
		http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rss))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	html := `<!DOCTYPE html>
<html>
<head>
    <title>GroupGuard</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; }
        h1 { color: #333; }
        .info { background: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0; }
        code { background: #e8e8e8; padding: 2px 6px; border-radius: 3px; }
    </style>
</head>
<body>
    <h1>GroupGuard</h1>
    <div class="info">
        <p>Moderation log feeds:</p>
        <p>Global bans: <code>/feeds/gbans</code></p>
        <p>Federation: <code>/feeds/fed/{fedID}</code></p>
        <p>Chat: <code>/feeds/chat/{chatID}</code></p>
    </div>
    <p><a href="/health">Health Check</a> · <a href="/metrics">Metrics</a></p>
</body>
</html>`
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
