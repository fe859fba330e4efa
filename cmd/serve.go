package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/codedash/internal/api"
	"github.com/ziadkadry99/codedash/internal/cache"
	"github.com/ziadkadry99/codedash/internal/config"
	"github.com/ziadkadry99/codedash/internal/db"
	"github.com/ziadkadry99/codedash/internal/gateway"
	"github.com/ziadkadry99/codedash/internal/loader"
	"github.com/ziadkadry99/codedash/internal/notify"
	"github.com/ziadkadry99/codedash/internal/search"
	"github.com/ziadkadry99/codedash/internal/sections"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard synchronization gateway",
	Long:  `Starts the local gateway the dashboard UI talks to. It synchronizes resource collections from the remote analysis API and streams notifications over WebSocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if servePort > 0 {
			cfg.Gateway.Port = servePort
		}

		// Open the local state database.
		dbPath := filepath.Join(cfg.DataDir, "codedash.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		// Wire the synchronization components.
		client := api.New(cfg.API.BaseURL, cfg.API.Limit, cfg.APITimeout())
		notices := notify.NewChannel()
		ldr := loader.New(client, cache.New(cfg.FreshnessWindows()), notices)

		analytics := sections.NewAnalytics()
		controller := sections.NewController(ldr, analytics, sections.NewStore(database))

		recent := search.NewStore(database, cfg.Search.RecentLimit)
		coordinator := search.NewCoordinator(client, recent, notices, cfg.DebounceWindow(), cfg.Search.MinQueryLen)

		srv := gateway.New(gateway.Config{
			Port:     cfg.Gateway.Port,
			AllowAll: cfg.Gateway.AllowAllCORS,
		}, ldr, controller, coordinator, recent, client, notices)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down gateway...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "codedash gateway v%s starting on port %d\n", Version, cfg.Gateway.Port)
		fmt.Fprintf(os.Stderr, "  Backend: %s\n", cfg.API.BaseURL)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  Starting section: %s\n", controller.Current())

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "override the configured gateway port")
	rootCmd.AddCommand(serveCmd)
}
