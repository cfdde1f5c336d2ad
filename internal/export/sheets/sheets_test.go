package sheets

import (
	"os"
	"path/filepath"
	"testing"

	"financas/internal/report"
)

func TestMonthLabel(t *testing.T) {
	tests := []struct {
		year, month int
		want        string
	}{
		{2025, 6, "2025-06"},
		{2025, 12, "2025-12"},
		{999, 1, "0999-01"},
	}
	for _, tt := range tests {
		if got := monthLabel(tt.year, tt.month); got != tt.want {
			t.Errorf("monthLabel(%d, %d) = %q, want %q", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestMatchRow(t *testing.T) {
	values := [][]any{
		{"Mês"},
		{"2025-05"},
		{},
		{" 2025-06 "},
	}

	if got := matchRow(values, "2025-06"); got != 4 {
		t.Errorf("matchRow(2025-06) = %d, want 4 (whitespace trimmed)", got)
	}
	if got := matchRow(values, "2025-05"); got != 2 {
		t.Errorf("matchRow(2025-05) = %d, want 2", got)
	}
	if got := matchRow(values, "2024-01"); got != 0 {
		t.Errorf("matchRow(missing) = %d, want 0", got)
	}
	if got := matchRow(nil, "2025-06"); got != 0 {
		t.Errorf("matchRow(empty sheet) = %d, want 0", got)
	}
}

func TestSummaryRow(t *testing.T) {
	rep := report.MonthReport{
		Year:  2025,
		Month: 6,
		Summary: report.DashboardSummary{
			TotalIncome:  500,
			TotalExpense: 300,
			TotalBalance: 1200,
			SavingsRate:  40,
		},
	}
	rep.Budgets.Summary.TotalBudgetedExpense = 350
	rep.Budgets.Summary.TotalSpentExpense = 300

	row := summaryRow(rep)
	want := []any{"2025-06", 500.0, 300.0, 1200.0, 40.0, 350.0, 300.0}
	if len(row) != len(want) {
		t.Fatalf("row has %d columns, want %d", len(row), len(want))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %v, want %v", i, row[i], want[i])
		}
	}
}

func TestReadCredential(t *testing.T) {
	t.Run("prefers inline", func(t *testing.T) {
		got, err := readCredential(`{"a":1}`, "/does/not/exist")
		if err != nil {
			t.Fatalf("readCredential: %v", err)
		}
		if string(got) != `{"a":1}` {
			t.Errorf("got %s, want inline JSON", got)
		}
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cred.json")
		if err := os.WriteFile(path, []byte(`{"b":2}`), 0o600); err != nil {
			t.Fatal(err)
		}
		got, err := readCredential("", path)
		if err != nil {
			t.Fatalf("readCredential: %v", err)
		}
		if string(got) != `{"b":2}` {
			t.Errorf("got %s, want file contents", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := readCredential("", "/does/not/exist"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("nothing configured", func(t *testing.T) {
		if _, err := readCredential("", ""); err == nil {
			t.Error("expected error when no credential is configured")
		}
	})
}
