package commands

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SEA6153/tableview/internal/config"
	"github.com/SEA6153/tableview/internal/events"
	"github.com/SEA6153/tableview/internal/printer"
	"github.com/SEA6153/tableview/internal/server"
	"github.com/SEA6153/tableview/internal/session"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server.

Every client gets its own session, keyed by a cookie. When a redis section is
configured, every committed change is published as an event that
'tableview watch' can follow.

Examples:
  # Serve with tableview.yml from the current directory
  tableview serve

  # Override the listen address
  tableview serve --addr 127.0.0.1:9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	publisher, pinger, err := connectEvents(ctx, cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	registry := session.NewRegistry(session.Options{
		Dataset:       cfg.Dataset(),
		CascadeRemove: cfg.Catalog.CascadeRemove,
		IdleTimeout:   cfg.Session.IdleTimeout,
		SweepInterval: cfg.Session.SweepInterval,
		Publisher:     publisher,
	})

	srv := server.New(registry, pinger, server.Options{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		CookieName:   cfg.Session.CookieName,
	})
	if err := srv.Start(); err != nil {
		return printer.Error("failed to start server", err.Error(), []string{"Choose a free address with --addr"})
	}

	log.Printf("[Server] Instance '%s' serving %d seed table(s)", cfg.Instance, len(cfg.Dataset()))
	printer.Success("Listening on %s (Ctrl+C to stop)\n", srv.Addr())

	go registry.Run(ctx)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// connectEvents returns the Redis publisher when redis is configured, or a
// NopPublisher and nil pinger otherwise.
func connectEvents(ctx context.Context, cfg *config.Config) (events.Publisher, server.Pinger, error) {
	if cfg.Redis == nil {
		printer.Warning("No redis section configured, session events will not be published\n")
		return events.NopPublisher{}, nil, nil
	}

	client, err := events.NewClient(cfg.Redis.Options(), cfg.Instance)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create event client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		client.Close()
		return nil, nil, printer.ErrorWithContext(
			"redis is not reachable",
			err.Error(),
			map[string]string{"Address": cfg.Redis.Addr},
			[]string{"Start Redis", "Remove the redis section from the configuration"},
		)
	}

	log.Printf("[Server] Publishing session events to redis at %s", cfg.Redis.Addr)
	return client, client, nil
}
