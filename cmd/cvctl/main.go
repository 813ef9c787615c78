// Command cvctl is the player CV maintenance CLI.
//
// Usage:
//
//	cvctl migrate up
//	cvctl migrate down
//	cvctl render <profile-id> --format pdf --out CV.pdf
//	cvctl logos
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/playercv/platform/internal/app"
	"github.com/playercv/platform/internal/cv/render"
	"github.com/playercv/platform/internal/infra"
	"github.com/playercv/platform/internal/media"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	root := &cobra.Command{
		Use:          "cvctl",
		Short:        "Player CV maintenance CLI",
		SilenceUsage: true,
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(renderCmd())
	root.AddCommand(logosCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert database migrations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := infra.LoadConfig()
			if err != nil {
				return err
			}
			return infra.RunMigrations(cfg.DSN(), logger)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert the latest migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := infra.LoadConfig()
			if err != nil {
				return err
			}
			return infra.RollbackMigration(cfg.DSN(), logger)
		},
	})
	return cmd
}

func renderCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "render <profile-id>",
		Short: "Render a profile's CV to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid profile id %q: %w", args[0], err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			cfg, err := infra.LoadConfig()
			if err != nil {
				return err
			}
			pool, err := infra.NewPostgresPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			store, err := media.Open(cfg.MediaDir, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			_, docs, err := app.Services(pool, store, clockwork.NewRealClock(), logger)
			if err != nil {
				return err
			}
			doc, err := docs.Render(ctx, id, render.Format(format))
			if err != nil {
				return err
			}

			if out == "" {
				out = doc.FileName
			}
			if err := os.WriteFile(out, doc.Body, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			abs, _ := filepath.Abs(out)
			logger.Info("document written", "path", abs, "bytes", len(doc.Body))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(render.FormatPDF), "Output format (pdf or html)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default CV_<first>_<last>.<format>)")
	return cmd
}

func logosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logos",
		Short: "List the logos available to the wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := infra.LoadConfig()
			if err != nil {
				return err
			}
			store, err := media.Open(cfg.MediaDir, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			logos, err := store.Logos()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(logos)
		},
	}
}
