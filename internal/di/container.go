package di

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-telegram/bot"
	authDomain "github.com/reshetovitsme/groupguard/internal/modules/auth/domain"
	authService "github.com/reshetovitsme/groupguard/internal/modules/auth/service"
	chatRepo "github.com/reshetovitsme/groupguard/internal/modules/chat/repository"
	chatService "github.com/reshetovitsme/groupguard/internal/modules/chat/service"
	commandService "github.com/reshetovitsme/groupguard/internal/modules/command/service"
	connectionRepo "github.com/reshetovitsme/groupguard/internal/modules/connection/repository"
	connectionService "github.com/reshetovitsme/groupguard/internal/modules/connection/service"
	fedRepo "github.com/reshetovitsme/groupguard/internal/modules/federation/repository"
	fedService "github.com/reshetovitsme/groupguard/internal/modules/federation/service"
	feedService "github.com/reshetovitsme/groupguard/internal/modules/feed/service"
	filterRepo "github.com/reshetovitsme/groupguard/internal/modules/filter/repository"
	filterService "github.com/reshetovitsme/groupguard/internal/modules/filter/service"
	gbanRepo "github.com/reshetovitsme/groupguard/internal/modules/gban/repository"
	gbanService "github.com/reshetovitsme/groupguard/internal/modules/gban/service"
	moderationService "github.com/reshetovitsme/groupguard/internal/modules/moderation/service"
	modlogRepo "github.com/reshetovitsme/groupguard/internal/modules/modlog/repository"
	modlogService "github.com/reshetovitsme/groupguard/internal/modules/modlog/service"
	noteRepo "github.com/reshetovitsme/groupguard/internal/modules/note/repository"
	noteService "github.com/reshetovitsme/groupguard/internal/modules/note/service"
	userRepo "github.com/reshetovitsme/groupguard/internal/modules/user/repository"
	userService "github.com/reshetovitsme/groupguard/internal/modules/user/service"
	warnRepo "github.com/reshetovitsme/groupguard/internal/modules/warn/repository"
	warnService "github.com/reshetovitsme/groupguard/internal/modules/warn/service"
	"github.com/reshetovitsme/groupguard/internal/shared/config"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	httpServer "github.com/reshetovitsme/groupguard/internal/transport/http"
	"github.com/reshetovitsme/groupguard/internal/transport/telegram"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register State Store
	do.Provide(injector, func(i do.Injector) (store.Backend, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return openBackend(cfg)
	})

	// Register Repositories
	do.Provide(injector, func(i do.Injector) (userRepo.Repository, error) {
		return userRepo.NewStorage(do.MustInvoke[store.Backend](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (chatRepo.Repository, error) {
		return chatRepo.NewStorage(do.MustInvoke[store.Backend](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (warnRepo.Repository, error) {
		return warnRepo.NewStorage(do.MustInvoke[store.Backend](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (gbanRepo.Repository, error) {
		return gbanRepo.NewStorage(do.MustInvoke[store.Backend](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (fedRepo.Repository, error) {
		return fedRepo.NewStorage(do.MustInvoke[store.Backend](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (filterRepo.Repository, error) {
		return filterRepo.NewStorage(do.MustInvoke[store.Backend](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (noteRepo.Repository, error) {
		return noteRepo.NewStorage(do.MustInvoke[store.Backend](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (connectionRepo.Repository, error) {
		return connectionRepo.NewStorage(do.MustInvoke[store.Backend](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (modlogRepo.Repository, error) {
		return modlogRepo.NewStorage(do.MustInvoke[store.Backend](i)), nil
	})

	// Register Domain Services
	do.Provide(injector, func(i do.Injector) (*userService.Service, error) {
		return userService.New(do.MustInvoke[userRepo.Repository](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*chatService.Service, error) {
		return chatService.New(do.MustInvoke[chatRepo.Repository](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*modlogService.Service, error) {
		return modlogService.New(do.MustInvoke[modlogRepo.Repository](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*warnService.Service, error) {
		return warnService.New(do.MustInvoke[warnRepo.Repository](i), do.MustInvoke[chatRepo.Repository](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*gbanService.Service, error) {
		return gbanService.New(do.MustInvoke[gbanRepo.Repository](i), do.MustInvoke[*userService.Service](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*fedService.Service, error) {
		return fedService.New(do.MustInvoke[fedRepo.Repository](i), do.MustInvoke[*chatService.Service](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*filterService.Service, error) {
		return filterService.New(do.MustInvoke[filterRepo.Repository](i), do.MustInvoke[chatRepo.Repository](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*noteService.Service, error) {
		return noteService.New(do.MustInvoke[noteRepo.Repository](i), do.MustInvoke[chatRepo.Repository](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*connectionService.Service, error) {
		return connectionService.New(do.MustInvoke[connectionRepo.Repository](i), do.MustInvoke[chatRepo.Repository](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*moderationService.Service, error) {
		return moderationService.New(
			do.MustInvoke[*userService.Service](i),
			do.MustInvoke[*warnService.Service](i),
			do.MustInvoke[*gbanService.Service](i),
			do.MustInvoke[*fedService.Service](i),
			do.MustInvoke[*modlogService.Service](i),
		), nil
	})
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		return feedService.New(do.MustInvoke[*modlogService.Service](i)), nil
	})

	// Register Platform Adapter (the bot client is attached once the bot exists)
	do.Provide(injector, func(i do.Injector) (*telegram.Platform, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return telegram.NewPlatform(nil, cfg.ActionTimeoutDuration()), nil
	})

	// Register Authorization Resolver
	do.Provide(injector, func(i do.Injector) (*authService.Resolver, error) {
		cfg := do.MustInvoke[*config.Config](i)
		platform := do.MustInvoke[*telegram.Platform](i)
		return authService.NewResolver(
			authDomain.NewAuthority(cfg.OwnerID, cfg.SudoUsers),
			do.MustInvoke[userRepo.Repository](i),
			authService.WithCache(platform, cfg.AdminCacheTTLDuration()),
			cfg.AdminLookupTimeoutDuration(),
		), nil
	})

	// Register Command Dispatcher
	do.Provide(injector, func(i do.Injector) (*commandService.Dispatcher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return commandService.New(cfg, commandService.Dependencies{
			Resolver:    do.MustInvoke[*authService.Resolver](i),
			Users:       do.MustInvoke[*userService.Service](i),
			Chats:       do.MustInvoke[*chatService.Service](i),
			Filters:     do.MustInvoke[*filterService.Service](i),
			Notes:       do.MustInvoke[*noteService.Service](i),
			Moderation:  do.MustInvoke[*moderationService.Service](i),
			Federations: do.MustInvoke[*fedService.Service](i),
			GlobalBans:  do.MustInvoke[*gbanService.Service](i),
			Connections: do.MustInvoke[*connectionService.Service](i),
			Modlog:      do.MustInvoke[*modlogService.Service](i),
		}), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegram.Handler, error) {
		dispatcher := do.MustInvoke[*commandService.Dispatcher](i)
		platform := do.MustInvoke[*telegram.Platform](i)
		return telegram.New(dispatcher, platform), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		server := httpServer.New(
			cfg,
			do.MustInvoke[*feedService.Service](i),
			do.MustInvoke[*fedService.Service](i),
			do.MustInvoke[*chatService.Service](i),
		)
		server.SetLogger(slog.Default())
		return server, nil
	})

	// Register Bot (needs to be initialized after handlers are ready)
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		telegramHandler := do.MustInvoke[*telegram.Handler](i)

		opts := []bot.Option{
			bot.WithDefaultHandler(telegramHandler.HandleUpdate),
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		// Register bot commands
		telegramHandler.RegisterCommands(b)

		// Let the adapter and dispatcher act as this bot
		do.MustInvoke[*telegram.Platform](i).SetClient(b)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		me, err := b.GetMe(ctx)
		if err != nil {
			return nil, oops.With("context", "failed to get bot identity").Wrap(err)
		}
		do.MustInvoke[*commandService.Dispatcher](i).SetBotID(me.ID)
		telegramHandler.SetBotUsername(me.Username)
		slog.Info("Bot identity resolved", "bot_id", me.ID, "username", me.Username)

		return b, nil
	})

	return injector, nil
}

func openBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		slog.Warn("Using in-memory storage, state is lost on restart")
		return store.NewMemoryBackend(), nil
	case config.StorageDriverSqlite:
		if err := os.MkdirAll(cfg.StoragePath, 0o755); err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to create storage directory").Wrap(err)
		}
		return store.OpenSQLite(filepath.Join(cfg.StoragePath, "groupguard.db"), slog.Default())
	case config.StorageDriverPostgres:
		return store.OpenPostgres(cfg.DatabaseDSN, slog.Default())
	default:
		backend, err := store.NewFileBackend(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize file storage").Wrap(err)
		}
		return backend, nil
	}
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if server, err := do.Invoke[*httpServer.Server](injector); err == nil && server != nil {
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Failed to stop HTTP server", "error", err)
		}
	}

	if backend, err := do.Invoke[store.Backend](injector); err == nil && backend != nil {
		if err := backend.Close(); err != nil {
			return oops.With("context", "failed to close storage").Wrap(err)
		}
	}

	return nil
}
