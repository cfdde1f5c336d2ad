package report

import (
	"sort"

	"financas/internal/core"
)

// Heuristic targets applied when no budget of the matching type exists for
// the period. They keep the dashboard's progress denominators non-zero even
// before any budget is configured.
const (
	defaultIncomeTargetFactor = 1.10
	defaultBudgetLimitFactor  = 1.20
)

// ComposeDashboard builds the dashboard summary for the selected month.
// The balance uses the full transaction history; income and expense totals
// are scoped to the period, with contributions folded into expenses.
func ComposeDashboard(snap core.Snapshot, p core.Period) DashboardSummary {
	txs := FilterTransactions(snap.Transactions, p)
	contribs := FilterContributions(snap.Contributions, p)
	t := Aggregate(txs, contribs)

	balances := ProjectBalances(snap.Accounts, snap.Transactions)
	net := NetWorth(snap.Accounts, balances)

	var budgetedIncome, budgetedExpense int64
	for _, b := range snap.Budgets {
		switch b.Type {
		case core.BudgetIncome:
			budgetedIncome += b.Amount.Cents
		case core.BudgetExpense:
			budgetedExpense += b.Amount.Cents
		}
	}

	totalIncome := t.TotalIncome.Float()
	totalExpense := t.TotalExpense.Float()

	incomeTarget := totalIncome * defaultIncomeTargetFactor
	if budgetedIncome > 0 {
		incomeTarget = core.Money{Cents: budgetedIncome}.Float()
	}
	budgetLimit := totalExpense * defaultBudgetLimitFactor
	if budgetedExpense > 0 {
		budgetLimit = core.Money{Cents: budgetedExpense}.Float()
	}

	var savingsRate float64
	if totalIncome > 0 {
		savingsRate = (totalIncome - totalExpense) / totalIncome * 100
		if savingsRate < 0 {
			savingsRate = 0
		}
	}

	return DashboardSummary{
		TotalBalance:    net.Float(),
		TotalIncome:     totalIncome,
		TotalExpense:    totalExpense,
		IncomeTarget:    incomeTarget,
		BudgetLimit:     budgetLimit,
		IncomeProgress:  ratio(totalIncome, incomeTarget),
		ExpenseProgress: ratio(totalExpense, budgetLimit),
		SavingsRate:     savingsRate,
	}
}

// ComposeBudgetPage classifies every expense and income budget against the
// period's actuals. Goal-type budgets are a distinct entity class and are
// excluded here.
func ComposeBudgetPage(snap core.Snapshot, p core.Period) BudgetPage {
	txs := FilterTransactions(snap.Transactions, p)
	contribs := FilterContributions(snap.Contributions, p)
	t := Aggregate(txs, contribs)
	ix := newCategoryIndex(snap.Categories)

	var page BudgetPage
	var budgetedExpense, spentExpense, budgetedIncome, receivedIncome int64

	for _, b := range snap.Budgets {
		if b.Type == core.BudgetGoal {
			continue
		}

		var actual core.Money
		switch b.Type {
		case core.BudgetExpense:
			actual = t.ExpenseFor(b.CategoryID)
			budgetedExpense += b.Amount.Cents
			spentExpense += actual.Cents
			if actual.Cents > b.Amount.Cents {
				page.Summary.CategoriesOverBudget++
			}
		case core.BudgetIncome:
			actual = t.IncomeFor(b.CategoryID)
			budgetedIncome += b.Amount.Cents
			receivedIncome += actual.Cents
			if actual.Cents < b.Amount.Cents {
				page.Summary.CategoriesUnderBudget++
			}
		}

		name, color := ix.display(b.CategoryID, UnknownCategoryName)
		a := Classify(b, actual)
		page.Budgets = append(page.Budgets, ProcessedBudget{
			ID:            b.ID,
			CategoryID:    b.CategoryID,
			CategoryName:  name,
			CategoryColor: color,
			Type:          string(b.Type),
			Amount:        b.Amount.Float(),
			Actual:        actual.Float(),
			Percentage:    a.Percentage,
			Remaining:     a.Remaining.Float(),
			Status:        a.Status,
			Description:   b.Description,
		})
	}

	// Expense budgets first, then income; within a type group, descending by
	// percentage used.
	sort.SliceStable(page.Budgets, func(i, j int) bool {
		a, b := page.Budgets[i], page.Budgets[j]
		if a.Type != b.Type {
			return a.Type == string(core.BudgetExpense)
		}
		return a.Percentage > b.Percentage
	})

	page.Summary.TotalBudgetedExpense = core.Money{Cents: budgetedExpense}.Float()
	page.Summary.TotalSpentExpense = core.Money{Cents: spentExpense}.Float()
	page.Summary.TotalBudgetedIncome = core.Money{Cents: budgetedIncome}.Float()
	page.Summary.TotalReceivedIncome = core.Money{Cents: receivedIncome}.Float()
	page.Summary.PercentageUsedExpense = ratio(page.Summary.TotalSpentExpense, page.Summary.TotalBudgetedExpense)
	page.Summary.PercentageReceivedIncome = ratio(page.Summary.TotalReceivedIncome, page.Summary.TotalBudgetedIncome)
	page.Summary.CategoriesWithBudget = len(page.Budgets)

	return page
}

// ComposeCharts builds both chart outputs for the selected month.
func ComposeCharts(snap core.Snapshot, p core.Period) ChartData {
	txs := FilterTransactions(snap.Transactions, p)
	contribs := FilterContributions(snap.Contributions, p)
	t := Aggregate(txs, contribs)

	return ChartData{
		DailySeries:       BuildDailySeries(p, txs, contribs),
		CategoryBreakdown: BuildCategoryBreakdown(t, snap.Categories),
	}
}

// Balances projects every account's current balance from the full history.
func Balances(snap core.Snapshot) AccountBalances {
	balances := ProjectBalances(snap.Accounts, snap.Transactions)
	out := make(AccountBalances, len(balances))
	for id, b := range balances {
		out[id] = b.Float()
	}
	return out
}

// ComposeMonthReport bundles every derived view for one month; the report
// worker archives the result.
func ComposeMonthReport(snap core.Snapshot, p core.Period) MonthReport {
	return MonthReport{
		Year:    p.Year,
		Month:   p.Month,
		Summary: ComposeDashboard(snap, p),
		Budgets: ComposeBudgetPage(snap, p),
		Charts:  ComposeCharts(snap, p),
	}
}
