package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Jay-Patell/AuctionBotLeague/internal/archive"
	"github.com/Jay-Patell/AuctionBotLeague/internal/auction"
	"github.com/Jay-Patell/AuctionBotLeague/internal/authz"
	"github.com/Jay-Patell/AuctionBotLeague/internal/catalog"
	"github.com/Jay-Patell/AuctionBotLeague/internal/config"
	"github.com/Jay-Patell/AuctionBotLeague/internal/gateway"
	"github.com/Jay-Patell/AuctionBotLeague/internal/ledger"
	"github.com/Jay-Patell/AuctionBotLeague/internal/store"
	"github.com/Jay-Patell/AuctionBotLeague/internal/stream"
	"github.com/Jay-Patell/AuctionBotLeague/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/auctioneer.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting auctioneer",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"addr", cfg.Server.Addr,
		"state_file", cfg.Store.Path,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Restore durable state. Missing or corrupt data starts empty, not fatal.
	st := store.New(cfg.Store.Path, logger)
	state, err := st.Load()
	if err != nil {
		logger.Warn("state file unusable, starting empty", "error", err)
	}
	logger.Info("state restored",
		"pending", len(state.Pending),
		"unsold", len(state.Unsold),
		"teams", len(state.Teams),
		"participants", len(state.Participants),
	)

	book := ledger.FromState(state, logger)
	pool := catalog.FromState(state, logger)
	allowList := authz.New(cfg.Auction.AuthorizedActors)
	if len(cfg.Auction.AuthorizedActors) == 0 {
		logger.Warn("no authorized actors configured, privileged operations will fail")
	}

	hub := stream.NewHub(cfg.Stream.SendBuffer, logger)
	if err := hub.Start(ctx); err != nil {
		logger.Error("failed to start stream hub", "error", err)
		os.Exit(1)
	}

	opts := []auction.Option{
		auction.WithStore(st),
		auction.WithAuthorizer(allowList),
		auction.WithNotifier(hub),
		auction.WithLogger(logger),
	}

	// Optional event archive
	var archiver *archive.Writer
	if cfg.Database.Enabled() {
		dbPool, err := archive.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Error("failed to connect to archive database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		archiver = archive.NewWriter(cfg.Archive, dbPool, logger)
		if err := archiver.Start(ctx); err != nil {
			logger.Error("failed to start archive writer", "error", err)
			os.Exit(1)
		}
		opts = append(opts, auction.WithRecorder(archiver))
		logger.Info("event archive enabled", "host", cfg.Database.Host, "database", cfg.Database.Name)
	}

	session := auction.New(book, pool, opts...)

	handler := gateway.New(session, book, pool, allowList, hub.ServeWS, logger)
	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handler.SetupRoutes(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", "error", err)
		}
		if err := hub.Stop(shutdownCtx); err != nil {
			logger.Warn("hub shutdown", "error", err)
		}
		if archiver != nil {
			if err := archiver.Stop(shutdownCtx); err != nil {
				logger.Warn("archiver shutdown", "error", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("auctioneer stopped")
}
