package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sawara-dev/ryohi/internal/cli"
	"github.com/sawara-dev/ryohi/internal/gdocs"
	"github.com/sawara-dev/ryohi/internal/model"
	"github.com/sawara-dev/ryohi/internal/report"
	"github.com/sawara-dev/ryohi/internal/service"
	"github.com/sawara-dev/ryohi/internal/sheets"
	"github.com/sawara-dev/ryohi/internal/xlsx"
)

func submitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <submission.json>",
		Short: "Process one trip-expense submission",
		Long: `Read a submission JSON file, write its expense ledger to the
configured spreadsheet (or a local workbook with --xlsx), and render the
travel-expense report document from the configured template.`,
		Args: cobra.ExactArgs(1),
		RunE: runSubmit,
	}

	// Flags
	cmd.Flags().String("xlsx", "", "Write the ledger to a local .xlsx workbook instead of Google Sheets")
	cmd.Flags().Bool("no-doc", false, "Skip document generation")
	cmd.Flags().Bool("no-record", false, "Skip recording the submission in the local registry")
	cmd.Flags().Bool("dry-run", false, "Compute and print totals without writing anything")

	return cmd
}

func runSubmit(cmd *cobra.Command, args []string) error {
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	noDoc, _ := cmd.Flags().GetBool("no-doc")
	noRecord, _ := cmd.Flags().GetBool("no-record")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	sub, err := readSubmission(args[0])
	if err != nil {
		return err
	}
	if sub.IsDraft {
		return fmt.Errorf("%s is a draft submission; submit the finalized form", args[0])
	}

	table := loadRates()
	ctx := cmd.Context()

	if dryRun {
		res := report.Generate(sub, table)
		printSummary(res)
		return nil
	}

	// Sheet sink
	var sink service.SheetSink
	var closeSink func() error
	if xlsxPath != "" {
		w, err := xlsx.NewWriter(xlsxPath, slog.Default())
		if err != nil {
			return fmt.Errorf("failed to open workbook: %w", err)
		}
		sink = w
		closeSink = w.Close
	} else {
		config, err := loadSheetConfig()
		if err != nil {
			return err
		}
		w, err := sheets.NewWriter(ctx, config, slog.Default())
		if err != nil {
			return fmt.Errorf("failed to connect to Sheets: %w", err)
		}
		sink = w
	}

	// Document store
	var docs service.DocumentStore
	var templateID string
	if !noDoc && xlsxPath == "" {
		config, err := loadDocConfig()
		if err != nil {
			fmt.Println(cli.FormatWarning("Document generation disabled: " + err.Error()))
		} else {
			store, err := gdocs.NewStore(ctx, config, slog.Default())
			if err != nil {
				return fmt.Errorf("failed to connect to Docs: %w", err)
			}
			docs = store
			templateID = config.TemplateDocID
		}
	}

	// Registry
	var registry service.Storage
	if !noRecord {
		store, err := openRegistry(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		registry = store
	}

	svc := report.NewService(sink, docs, registry, table, templateID, slog.Default())
	out, err := svc.Submit(ctx, sub)
	if err != nil {
		return err
	}
	if closeSink != nil {
		if err := closeSink(); err != nil {
			return fmt.Errorf("failed to save workbook: %w", err)
		}
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Sheet written: %s", out.SheetName)))
	if out.DocumentURL != "" {
		fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("%s Document: %s", cli.DocIcon, out.DocumentURL)))
	}
	fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("Grand total: ￥%d", out.GrandTotal)))

	return nil
}

func readSubmission(path string) (*model.Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read submission: %w", err)
	}
	var sub model.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("failed to parse submission: %w", err)
	}
	return &sub, nil
}

func printSummary(res *report.Result) {
	led := res.Ledger
	content := strings.Join([]string{
		cli.SubtleStyle.Render(fmt.Sprintf("Sheet name: %s", res.SheetName)),
		fmt.Sprintf("Destination:  %s", led.Destination),
		fmt.Sprintf("Trip days:    %d (%d nights)", led.TripDays, led.LodgingNights),
		fmt.Sprintf("Transport:    ￥%d (%d rows)", led.TransportTotal, len(led.Rows)),
		fmt.Sprintf("Per diem:     ￥%d", led.PerDiemTotal),
		fmt.Sprintf("Lodging:      ￥%d", led.LodgingTotal),
		cli.BoldStyle.Render(fmt.Sprintf("Grand total:  ￥%d", led.GrandTotal)),
	}, "\n")
	fmt.Println(cli.RenderBox(cli.SheetIcon+" Submission summary", content))
}
