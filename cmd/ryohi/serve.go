package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sawara-dev/ryohi/internal/api"
	"github.com/sawara-dev/ryohi/internal/gdocs"
	"github.com/sawara-dev/ryohi/internal/report"
	"github.com/sawara-dev/ryohi/internal/service"
	"github.com/sawara-dev/ryohi/internal/sheets"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the submission intake HTTP server",
		Long: `Start an HTTP server that accepts submission JSON from the form
frontend, writes the expense ledger, and renders the report document.`,
		RunE: runServe,
	}

	// Flags
	cmd.Flags().String("addr", ":8787", "Listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	addr := viper.GetString("server.addr")

	sheetConfig, err := loadSheetConfig()
	if err != nil {
		return err
	}
	sink, err := sheets.NewWriter(ctx, sheetConfig, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to connect to Sheets: %w", err)
	}

	var docs service.DocumentStore
	var templateID string
	docConfig, err := loadDocConfig()
	if err != nil {
		slog.Warn("document generation disabled", "reason", err)
	} else {
		store, err := gdocs.NewStore(ctx, docConfig, slog.Default())
		if err != nil {
			return fmt.Errorf("failed to connect to Docs: %w", err)
		}
		docs = store
		templateID = docConfig.TemplateDocID
	}

	registry, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = registry.Close() }()

	svc := report.NewService(sink, docs, registry, loadRates(), templateID, slog.Default())
	server := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(svc, registry, slog.Default()).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("🧳 Submission intake listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("Server stopped")

	return nil
}
