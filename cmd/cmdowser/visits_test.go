package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/cmdowser/internal/database"
)

// seedVisits creates a visit log in a temporary directory.
func seedVisits(t *testing.T, visits ...database.Visit) string {
	t.Helper()

	dir := t.TempDir()
	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	for i := range visits {
		if _, err := db.RecordVisit(context.Background(), &visits[i]); err != nil {
			t.Fatalf("failed to record visit: %v", err)
		}
	}
	return dir
}

func executeVisits(t *testing.T, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	cmd := NewVisitsCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return buf.String()
}

// TestRunVisitsCmd tests listing and clearing the visit log.
func TestRunVisitsCmd(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sample := []database.Visit{
		{URL: "https://a.test/", Title: "First", StatusCode: 200, Locale: "en", VisitedAt: at},
		{URL: "https://b.test/", FinalURL: "https://b.test/home", StatusCode: 200, Locale: "ru", VisitedAt: at.Add(time.Minute)},
	}

	t.Run("missing log is not an error", func(t *testing.T) {
		t.Parallel()

		out := executeVisits(t, "--db-dir", t.TempDir())
		if !strings.Contains(out, "No visits recorded.") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("lists visits newest first", func(t *testing.T) {
		t.Parallel()

		out := executeVisits(t, "--db-dir", seedVisits(t, sample...))
		if !strings.Contains(out, "Visits (2):") {
			t.Errorf("expected count header:\n%s", out)
		}
		first := strings.Index(out, "https://b.test/home")
		second := strings.Index(out, "First <https://a.test/>")
		if first < 0 || second < 0 || first > second {
			t.Errorf("expected newest first:\n%s", out)
		}
	})

	t.Run("limit", func(t *testing.T) {
		t.Parallel()

		out := executeVisits(t, "--db-dir", seedVisits(t, sample...), "-n", "1")
		if !strings.Contains(out, "Visits (1):") || strings.Contains(out, "a.test") {
			t.Errorf("expected only the newest visit:\n%s", out)
		}
	})

	t.Run("markdown", func(t *testing.T) {
		t.Parallel()

		out := executeVisits(t, "--db-dir", seedVisits(t, sample...), "--markdown")
		if !strings.Contains(out, "# Visit Log") || !strings.Contains(out, "First") {
			t.Errorf("unexpected markdown:\n%s", out)
		}
	})

	t.Run("clear", func(t *testing.T) {
		t.Parallel()

		dir := seedVisits(t, sample...)
		out := executeVisits(t, "--db-dir", dir, "--clear")
		if !strings.Contains(out, "Deleted 2 visits.") {
			t.Errorf("unexpected output %q", out)
		}

		out = executeVisits(t, "--db-dir", dir)
		if !strings.Contains(out, "No visits recorded.") {
			t.Errorf("expected empty log after clear:\n%s", out)
		}
	})
}
