package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/cmdowser/internal/config"
	"github.com/nao1215/cmdowser/internal/database"
	"github.com/nao1215/cmdowser/internal/export"
	"github.com/spf13/cobra"
)

// defaultVisitLimit is the number of visits listed without --limit.
const defaultVisitLimit = 20

// NewVisitsCmd creates the visits command.
func NewVisitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visits",
		Short: "List pages recorded in the visit log",
		Long: `Visits lists the pages recorded while browsing with --record, newest first.

Examples:
  # Show the last 20 visits
  cmdowser visits

  # Show every visit as a Markdown table
  cmdowser visits --limit 0 --markdown > visits.md

  # Delete the visit log contents
  cmdowser visits --clear`,
		Args: cobra.NoArgs,
		RunE: runVisitsCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultVisitLimit,
		"Maximum number of visits to show (0 shows all)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output a Markdown table")
	cmd.Flags().Bool("clear", false,
		"Delete every recorded visit")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory holding the visit log")

	return cmd
}

// runVisitsCmd executes the visits command.
func runVisitsCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	clearLog, err := cmd.Flags().GetBool("clear")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	// The log is only created by a recording session.
	db, err := database.Open(dbDir, database.ReadOnlyOptions())
	if errors.Is(err, database.ErrNotFound) {
		fmt.Fprintln(out, "No visits recorded.")
		fmt.Fprintln(out, "\nUse 'cmdowser --record' to keep a log of visited pages.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open visit log: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if clearLog {
		n, err := db.ClearVisits(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear visit log: %w", err)
		}
		fmt.Fprintf(out, "Deleted %d visits.\n", n)
		return nil
	}

	visits, err := db.RecentVisits(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list visits: %w", err)
	}

	if markdownOutput {
		return export.WriteVisits(out, visits)
	}
	return printVisits(out, visits)
}

// printVisits writes visits as an aligned plain text list.
func printVisits(w io.Writer, visits []database.Visit) error {
	if len(visits) == 0 {
		_, err := fmt.Fprintln(w, "No visits recorded.")
		return err
	}

	fmt.Fprintf(w, "Visits (%d):\n\n", len(visits))
	fmt.Fprintf(w, "  %-19s  %-6s  %-4s  %s\n", "Date", "Status", "Lang", "Page")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 60))

	for _, v := range visits {
		page := v.FinalURL
		if v.Title != "" {
			page = v.Title + " <" + v.FinalURL + ">"
		}
		fmt.Fprintf(w, "  %-19s  %-6d  %-4s  %s\n",
			v.VisitedAt.Local().Format("2006-01-02 15:04:05"),
			v.StatusCode,
			v.Locale,
			page,
		)
	}
	_, err := fmt.Fprintln(w)
	return err
}
