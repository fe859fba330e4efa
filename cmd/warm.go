package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/codedash/internal/api"
	"github.com/ziadkadry99/codedash/internal/cache"
	"github.com/ziadkadry99/codedash/internal/config"
	"github.com/ziadkadry99/codedash/internal/loader"
	"github.com/ziadkadry99/codedash/internal/notify"
	"github.com/ziadkadry99/codedash/internal/resource"
)

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Preload all resource collections from the analysis API",
	Long:  `Fetches all four resource collections once and reports what the backend returned. Useful as a connectivity check and to measure backend latency before opening the dashboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		client := api.New(cfg.API.BaseURL, cfg.API.Limit, cfg.APITimeout())

		// Surface error notices as they happen.
		notices := notify.NewChannel()
		ch, cancel := notices.Subscribe()
		defer cancel()
		go func() {
			for n := range ch {
				if n.Severity == notify.SeverityError {
					fmt.Fprintf(os.Stderr, "\n%s\n", n.Message)
				}
			}
		}()

		ldr := loader.New(client, cache.New(cfg.FreshnessWindows()), notices)

		bar := progressbar.NewOptions(len(resource.Kinds),
			progressbar.OptionSetDescription("Warming cache"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		// Loads for different kinds are independent; run them concurrently.
		g, ctx := errgroup.WithContext(cmd.Context())
		for _, kind := range resource.Kinds {
			kind := kind
			g.Go(func() error {
				ldr.Load(ctx, kind)
				_ = bar.Add(1)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		_ = bar.Finish()

		var failed int
		for _, kind := range resource.Kinds {
			if _, ok := ldr.GetCached(kind); !ok {
				failed++
				fmt.Printf("  %-10s FAILED\n", kind)
				continue
			}
			fmt.Printf("  %-10s %d records\n", kind, len(ldr.Collection(kind)))
		}

		if failed > 0 {
			return fmt.Errorf("%d collection(s) failed to load", failed)
		}
		fmt.Println("All collections loaded.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(warmCmd)
}
