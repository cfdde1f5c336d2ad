package report

import (
	"sort"

	"financas/internal/core"
)

// BuildDailySeries emits one point per calendar day of the month, zero-filled
// for days without activity. The series is always exactly p.Days() entries
// long. Contributions count as expenses on their day.
func BuildDailySeries(p core.Period, txs []core.Transaction, contribs []core.Contribution) []DailyPoint {
	days := p.Days()
	income := make([]int64, days+1)
	expense := make([]int64, days+1)

	for _, tx := range txs {
		if !p.Contains(tx.Date) {
			continue
		}
		day := tx.Date.Day()
		switch tx.Type {
		case core.Income:
			income[day] += tx.Amount.Abs().Cents
		case core.Expense:
			expense[day] += tx.Amount.Abs().Cents
		}
	}
	for _, c := range contribs {
		if !p.Contains(c.Date) {
			continue
		}
		expense[c.Date.Day()] += c.Amount.Abs().Cents
	}

	series := make([]DailyPoint, 0, days)
	for day := 1; day <= days; day++ {
		series = append(series, DailyPoint{
			Day:     day,
			Income:  core.Money{Cents: income[day]}.Float(),
			Expense: core.Money{Cents: expense[day]}.Float(),
			Balance: core.Money{Cents: income[day] - expense[day]}.Float(),
		})
	}
	return series
}

// BuildCategoryBreakdown turns the period's expense totals into the top-N
// category list. Entries are grouped by display name ("Outros" absorbs
// uncategorized and unresolved spending, "Metas" holds goal contributions),
// sorted descending by value with first-seen order as the tie-break, and
// everything past the top 4 collapses into a single "Outras" entry. Each
// percentage is value-of-total-expense; the values always sum back to the
// period's total expense.
func BuildCategoryBreakdown(t Totals, categories []core.Category) []CategorySlice {
	ix := newCategoryIndex(categories)

	type bucket struct {
		name  string
		color string
		cents int64
	}
	var buckets []bucket
	pos := make(map[string]int)

	add := func(name, color string, cents int64) {
		if cents == 0 {
			return
		}
		if i, ok := pos[name]; ok {
			buckets[i].cents += cents
			return
		}
		pos[name] = len(buckets)
		buckets = append(buckets, bucket{name: name, color: color, cents: cents})
	}

	for _, ref := range t.expenseOrder {
		name, color := ix.display(ref, ChartFallbackName)
		add(name, color, t.expense[ref])
	}
	add(ChartFallbackName, FallbackColor, t.UncategorizedExpense.Cents)
	add(GoalsCategoryName, GoalsColor, t.Contributions.Cents)

	// Stable sort keeps first-seen order for equal values.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].cents > buckets[j].cents
	})

	if len(buckets) > topCategories {
		var rest int64
		for _, b := range buckets[topCategories:] {
			rest += b.cents
		}
		buckets = append(buckets[:topCategories], bucket{
			name:  CollapsedCategoryName,
			color: FallbackColor,
			cents: rest,
		})
	}

	total := t.TotalExpense.Float()
	out := make([]CategorySlice, 0, len(buckets))
	for _, b := range buckets {
		value := core.Money{Cents: b.cents}.Float()
		out = append(out, CategorySlice{
			Name:       b.name,
			Value:      value,
			Color:      b.color,
			Percentage: ratio(value, total),
		})
	}
	return out
}
