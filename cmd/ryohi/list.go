package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sawara-dev/ryohi/internal/cli"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded submissions",
		Long:  `Show the submissions recorded in the local registry, newest first.`,
		RunE:  runList,
	}

	// Flags
	cmd.Flags().Int("limit", 20, "Maximum number of submissions to show")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openRegistry(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	recs, err := store.ListSubmissions(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}
	if len(recs) == 0 {
		fmt.Println(cli.FormatInfo("No submissions recorded yet"))
		return nil
	}
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}

	fmt.Println(cli.FormatTitle("Recorded submissions"))
	fmt.Println(cli.SubtitleStyle.Render(fmt.Sprintf("%d recorded", len(recs))))
	header := fmt.Sprintf("%-19s  %-24s  %12s  %s", "Submitted", "Sheet", "Total", "Document")
	fmt.Println(cli.TableHeaderStyle.Render(header))
	for _, rec := range recs {
		doc := cli.SubtleStyle.Render("(none)")
		if rec.DocumentURL != "" {
			doc = cli.LinkIcon + " " + rec.DocumentURL
		}
		fmt.Printf("%-19s  %s%s  %s\n",
			rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			cli.TableCellStyle.Render(fmt.Sprintf("%-24s", rec.SheetName)),
			cli.AmountStyle.Width(12).Render(fmt.Sprintf("￥%d", rec.GrandTotal)),
			doc,
		)
	}

	return nil
}
