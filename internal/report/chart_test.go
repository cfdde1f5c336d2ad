package report

import (
	"math"
	"testing"

	"financas/internal/core"
)

func TestBuildDailySeriesLength(t *testing.T) {
	cases := []struct {
		year, month int
		want        int
	}{
		{2025, 1, 31},
		{2025, 2, 28},
		{2024, 2, 29},
		{2025, 4, 30},
	}
	for _, tc := range cases {
		p := core.Period{Year: tc.year, Month: tc.month}
		series := BuildDailySeries(p, nil, nil)
		if len(series) != tc.want {
			t.Errorf("%d-%02d: series length = %d, want %d", tc.year, tc.month, len(series), tc.want)
		}
		for i, pt := range series {
			if pt.Day != i+1 {
				t.Fatalf("series[%d].Day = %d, want %d", i, pt.Day, i+1)
			}
			if pt.Income != 0 || pt.Expense != 0 || pt.Balance != 0 {
				t.Fatalf("day %d expected zero-filled point, got %+v", pt.Day, pt)
			}
		}
	}
}

func TestBuildDailySeriesSumsPerDay(t *testing.T) {
	p := core.Period{Year: 2025, Month: 6}
	txs := []core.Transaction{
		tx("t1", "acc", core.Income, 10000, 2025, 6, 5),
		tx("t2", "acc", core.Expense, 3000, 2025, 6, 5),
		tx("t3", "acc", core.Expense, 2000, 2025, 6, 20),
	}
	contribs := []core.Contribution{
		{ID: "c1", GoalID: "g", AccountID: "acc", Amount: core.Money{Cents: 1000}, Date: core.NewDate(2025, 6, 5)},
	}

	series := BuildDailySeries(p, txs, contribs)

	day5 := series[4]
	if day5.Income != 100 || day5.Expense != 40 || day5.Balance != 60 {
		t.Errorf("day 5 = %+v, want income 100, expense 40, balance 60", day5)
	}
	day20 := series[19]
	if day20.Expense != 20 || day20.Income != 0 || day20.Balance != -20 {
		t.Errorf("day 20 = %+v, want expense 20, balance -20", day20)
	}
	day1 := series[0]
	if day1.Income != 0 || day1.Expense != 0 {
		t.Errorf("day 1 should be zero-filled, got %+v", day1)
	}
}

func breakdownFixture() (Totals, []core.Category) {
	cats := []core.Category{
		{ID: "c1", Name: "Moradia", Color: "#ef4444"},
		{ID: "c2", Name: "Alimentação", Color: "#f97316"},
		{ID: "c3", Name: "Transporte", Color: "#eab308"},
		{ID: "c4", Name: "Saúde", Color: "#22c55e"},
		{ID: "c5", Name: "Lazer", Color: "#3b82f6"},
	}
	var txs []core.Transaction
	values := map[string]int64{"c1": 50000, "c2": 40000, "c3": 30000, "c4": 20000, "c5": 10000}
	day := 1
	for _, id := range []string{"c1", "c2", "c3", "c4", "c5"} {
		txs = append(txs, catTxOn(id, values[id], day))
		day++
	}
	return Aggregate(txs, nil), cats
}

func catTxOn(category string, cents int64, day int) core.Transaction {
	t := tx("t-"+category, "acc", core.Expense, cents, 2025, 6, day)
	t.CategoryID = category
	return t
}

func TestBuildCategoryBreakdownCollapsesTail(t *testing.T) {
	totals, cats := breakdownFixture()

	got := BuildCategoryBreakdown(totals, cats)

	if len(got) != 5 {
		t.Fatalf("breakdown length = %d, want 5 (top 4 + collapsed)", len(got))
	}
	wantNames := []string{"Moradia", "Alimentação", "Transporte", "Saúde", CollapsedCategoryName}
	for i, name := range wantNames {
		if got[i].Name != name {
			t.Errorf("breakdown[%d].Name = %s, want %s", i, got[i].Name, name)
		}
	}
	if got[4].Value != 100 {
		t.Errorf("collapsed value = %v, want 100", got[4].Value)
	}
	if got[4].Color != FallbackColor {
		t.Errorf("collapsed color = %s, want %s", got[4].Color, FallbackColor)
	}

	var sum float64
	for _, s := range got {
		sum += s.Value
	}
	if math.Abs(sum-1500) > 1e-9 {
		t.Errorf("breakdown sum = %v, want 1500", sum)
	}
}

func TestBuildCategoryBreakdownPercentages(t *testing.T) {
	totals, cats := breakdownFixture()

	got := BuildCategoryBreakdown(totals, cats)

	var pctSum float64
	for _, s := range got {
		pctSum += s.Percentage
	}
	if math.Abs(pctSum-100) > 1e-9 {
		t.Errorf("percentages sum to %v, want 100", pctSum)
	}
	// 500 of 1500
	if math.Abs(got[0].Percentage-100.0/3.0) > 1e-9 {
		t.Errorf("top percentage = %v, want %v", got[0].Percentage, 100.0/3.0)
	}
}

func TestBuildCategoryBreakdownMergesFallbackBuckets(t *testing.T) {
	cats := []core.Category{{ID: "c1", Name: "Moradia", Color: "#ef4444"}}
	txs := []core.Transaction{
		catTxOn("c1", 10000, 1),
		catTxOn("", 3000, 2),        // uncategorized
		catTxOn("missing", 2000, 3), // unresolvable reference
	}
	contribs := []core.Contribution{
		{ID: "c", GoalID: "g", AccountID: "acc", Amount: core.Money{Cents: 5000}, Date: core.NewDate(2025, 6, 4)},
	}
	totals := Aggregate(txs, contribs)

	got := BuildCategoryBreakdown(totals, cats)

	byName := map[string]CategorySlice{}
	for _, s := range got {
		byName[s.Name] = s
	}
	if s, ok := byName[ChartFallbackName]; !ok || s.Value != 50 {
		t.Errorf("%q bucket = %+v, want merged value 50", ChartFallbackName, s)
	}
	if s, ok := byName[GoalsCategoryName]; !ok || s.Value != 50 {
		t.Errorf("%q bucket = %+v, want value 50", GoalsCategoryName, s)
	}

	var sum float64
	for _, s := range got {
		sum += s.Value
	}
	if want := totals.TotalExpense.Float(); math.Abs(sum-want) > 1e-9 {
		t.Errorf("breakdown sum = %v, want total expense %v", sum, want)
	}
}

func TestBuildCategoryBreakdownTieBreakIsFirstSeen(t *testing.T) {
	cats := []core.Category{
		{ID: "c1", Name: "Primeira", Color: "#111111"},
		{ID: "c2", Name: "Segunda", Color: "#222222"},
	}
	txs := []core.Transaction{
		catTxOn("c1", 1000, 1),
		catTxOn("c2", 1000, 2),
	}
	totals := Aggregate(txs, nil)

	got := BuildCategoryBreakdown(totals, cats)
	if got[0].Name != "Primeira" || got[1].Name != "Segunda" {
		t.Errorf("equal values must keep first-seen order, got %s then %s", got[0].Name, got[1].Name)
	}
}

func TestBuildCategoryBreakdownEmpty(t *testing.T) {
	got := BuildCategoryBreakdown(Aggregate(nil, nil), nil)
	if len(got) != 0 {
		t.Fatalf("expected empty breakdown, got %d entries", len(got))
	}
}
