package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sKeLeTr0n/OBSRemote/config"
	"github.com/sKeLeTr0n/OBSRemote/internal/api"
	"github.com/sKeLeTr0n/OBSRemote/internal/dispatch"
	"github.com/sKeLeTr0n/OBSRemote/internal/logging"
	"github.com/sKeLeTr0n/OBSRemote/internal/repo"
	"github.com/sKeLeTr0n/OBSRemote/internal/studio"
	"github.com/sKeLeTr0n/OBSRemote/internal/transport/ws"
	"github.com/sKeLeTr0n/OBSRemote/internal/updates"
	"github.com/sKeLeTr0n/OBSRemote/internal/version"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the WebSocket control server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cmd)
	},
}

func init() {
	f := serveCmd.Flags()
	f.StringVarP(&serveConfigPath, "config", "c", "", "YAML config file (watched for log level changes)")
	f.String("addr", config.DefaultAddr, "listen address")
	f.String("db", config.DefaultStorePath, "SQLite file for the scene collection (empty keeps state in memory)")
	f.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	f.String("log-format", config.DefaultLogFormat, "log format: text or json")
}

func runServe(ctx context.Context, cmd *cobra.Command) error {
	// 1. Config
	loader, err := config.NewLoader(serveConfigPath, cmd.Flags())
	if err != nil {
		return err
	}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	// 2. Logging
	logger, level, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	logger.Info("obsremote starting", "version", version.String(), "protocol", version.Protocol)

	// 3. Repository
	var store repo.Repository
	if cfg.Store.Path != "" {
		logger.Info("opening scene store", "path", cfg.Store.Path)
		r, err := repo.NewSQLiteRepo(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer r.Close()
		store = r
	}

	// 4. Studio and update queue
	st, err := studio.New(studio.Config{
		StatusInterval: cfg.Studio.StatusInterval,
		FPS:            cfg.Studio.FPS,
		BitrateKbps:    cfg.Studio.BitrateKbps,
		Scenes:         cfg.Studio.Scenes,
	}, store, nil, logger)
	if err != nil {
		return fmt.Errorf("init studio: %w", err)
	}
	q := updates.NewQueue()
	st.SetListener(updates.NewNotifier(q, st))

	loader.Watch(onReload(level, st, logger), func(err error) {
		logger.Warn("ignoring invalid config change", "error", err)
	})

	// 5. Dispatcher
	d := dispatch.New(api.NewTable(st), logger)

	// 6. WebSocket server
	srv := ws.NewServer(ws.Options{
		Addr:            cfg.Server.Addr,
		ReadBufferSize:  cfg.Server.ReadBufferSize,
		WriteBufferSize: cfg.Server.WriteBufferSize,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		PingInterval:    cfg.WebSocket.PingInterval,
		WriteTimeout:    cfg.WebSocket.WriteTimeout,
		ReadLimit:       cfg.WebSocket.ReadLimit,
		FlushInterval:   cfg.WebSocket.FlushInterval,
	}, d, q, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error { return st.Run(ctx) })

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("obsremote stopped")
	return nil
}

// onReload applies a changed config file: the log level, and the scene
// collection when the file lists scenes.
func onReload(level *slog.LevelVar, st *studio.Studio, logger *slog.Logger) func(*config.Config) {
	return func(next *config.Config) {
		if err := logging.SetLevel(level, next.Log.Level); err != nil {
			logger.Warn("ignoring log level change", "error", err)
		}
		if err := st.SyncScenes(next.Studio.Scenes); err != nil {
			logger.Warn("failed to sync scenes", "error", err)
		}
		logger.Info("config reloaded", "log_level", next.Log.Level, "scenes", len(next.Studio.Scenes))
	}
}
