package report

import "financas/internal/core"

// Assessment is the outcome of comparing one budget to its period actual.
// Remaining is signed: negative means the budget is overshot (expense) or the
// target is missed (income).
type Assessment struct {
	Percentage float64
	Status     BudgetStatus
	Remaining  core.Money
}

// Classify computes the percentage-of-budget and status for one budget. The
// threshold rules are deliberately asymmetric: overshooting is bad for
// expenses but good for income.
//
// Expense: exceeded when actual > budgeted, warning above 90% of budget,
// good otherwise; remaining = budgeted - actual.
//
// Income: warning below 90% of target, good at or above target, under in
// the [90%, 100%) band; remaining = actual - budgeted.
func Classify(b core.Budget, actual core.Money) Assessment {
	budgeted := b.Amount.Cents
	spent := actual.Cents

	var pct float64
	if budgeted > 0 {
		pct = float64(spent) / float64(budgeted) * 100
	}

	if b.Type == core.BudgetIncome {
		status := StatusUnder
		switch {
		case spent*10 < budgeted*9:
			status = StatusWarning
		case spent >= budgeted:
			status = StatusGood
		}
		return Assessment{
			Percentage: pct,
			Status:     status,
			Remaining:  core.Money{Cents: spent - budgeted},
		}
	}

	status := StatusGood
	switch {
	case spent > budgeted:
		status = StatusExceeded
	case spent*10 > budgeted*9:
		status = StatusWarning
	}
	return Assessment{
		Percentage: pct,
		Status:     status,
		Remaining:  core.Money{Cents: budgeted - spent},
	}
}
