package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tankstander/fuelprices/internal/api"
	"github.com/tankstander/fuelprices/internal/config"
	"github.com/tankstander/fuelprices/internal/cron"
	"github.com/tankstander/fuelprices/internal/fuel"
	"github.com/tankstander/fuelprices/internal/migrate"
	"github.com/tankstander/fuelprices/internal/ocr"
	"github.com/tankstander/fuelprices/internal/storage"
)

func main() {
	root := &cobra.Command{
		Use:   "fuelprices",
		Short: "Danish retail fuel price manager",
	}

	root.AddCommand(serveCmd(), workerCmd(), refreshCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadRegistry builds the registry from the configured subscriptions.
func loadRegistry(cfg config.Config) *fuel.Registry {
	reg := fuel.NewRegistry(fuel.Options{
		Client:  fuel.NewHTTPClient(cfg.HTTPTimeout),
		OCR:     ocr.NewSSOCR(cfg.SSOCRBinary),
		DataDir: cfg.DataDir,
	})
	reg.LoadCompanies(cfg.Companies, cfg.Products)
	return reg
}

func openStorage(ctx context.Context, cfg config.Config) storage.Storage {
	st, err := storage.Open(ctx, storage.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		log.Printf("storage open failed (driver=%s): %v; continuing without snapshots", cfg.DBDriver, err)
		return nil
	}
	return st
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the price API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			ctx := cmd.Context()

			reg := loadRegistry(cfg)
			st := openStorage(ctx, cfg)
			if st != nil {
				defer st.Close()
			}

			mux := api.NewMux(reg, st)
			log.Printf("fuelprices listening on %s", cfg.ListenAddr)
			return http.ListenAndServe(cfg.ListenAddr, mux)
		},
	}
}

func workerCmd() *cobra.Command {
	var immediate bool
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the periodic refresh worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reg := loadRegistry(cfg)
			st := openStorage(ctx, cfg)
			if st != nil {
				defer st.Close()
			}

			err := cron.Run(ctx, reg, st, cron.Options{
				Interval:  cfg.UpdateInterval,
				Pacing:    cfg.PacingDelay,
				Immediate: immediate,
			})
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&immediate, "immediate", true, "refresh once immediately on start")
	return cmd
}

// refreshCmd is the one-shot demo: load, refresh everything once and print
// the resulting price table.
func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh all configured companies once and print the prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			reg := loadRegistry(cfg)
			reg.Refresh(cmd.Context())

			for _, c := range reg.Companies() {
				fmt.Printf("%s (%s) [%s]\n", c.Name(), c.Key(), c.PriceType())
				for _, rec := range c.Records() {
					if rec.Price != nil {
						fmt.Printf("  %-12s %-24s %8s kr.  %s\n",
							rec.ProductKey, rec.ProductName, fuel.FormatPrice(*rec.Price), rec.LastUpdate)
					} else {
						fmt.Printf("  %-12s %-24s %8s\n", rec.ProductKey, rec.ProductName, "-")
					}
				}
			}
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run snapshot database migrations",
	}

	run := func(fn func(context.Context, string, string) error) func(*cobra.Command, []string) error {
		return func(c *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			return fn(c.Context(), cfg.DBDriver, cfg.DBDSN)
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply pending migrations", RunE: run(migrate.Up)},
		&cobra.Command{Use: "down", Short: "Roll back the last migration", RunE: run(migrate.Down)},
		&cobra.Command{Use: "status", Short: "Show migration status", RunE: run(migrate.Status)},
	)
	return cmd
}
