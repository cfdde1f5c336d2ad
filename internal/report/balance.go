package report

import "financas/internal/core"

// ProjectBalances derives each account's current balance from its seed
// balance plus the complete signed transaction history. The projection is
// recomputed wholesale on every call; it never looks at the selected period.
func ProjectBalances(accounts []core.Account, txs []core.Transaction) map[string]core.Money {
	balances := make(map[string]core.Money, len(accounts))
	for _, a := range accounts {
		balances[a.ID] = a.Balance
	}

	for _, tx := range txs {
		b, ok := balances[tx.AccountID]
		if !ok {
			// Transactions on unknown accounts cannot move any balance.
			continue
		}
		cents := tx.Amount.Abs().Cents
		switch tx.Type {
		case core.Income:
			b.Cents += cents
		case core.Expense:
			b.Cents -= cents
		}
		balances[tx.AccountID] = b
	}

	return balances
}

// NetWorth sums projected balances across accounts. A credit account's
// balance is a liability regardless of its stored sign, so it contributes
// -abs(balance).
func NetWorth(accounts []core.Account, balances map[string]core.Money) core.Money {
	var net core.Money
	for _, a := range accounts {
		b := balances[a.ID]
		if a.Type == core.AccountCredit {
			net.Cents -= b.Abs().Cents
			continue
		}
		net.Cents += b.Cents
	}
	return net
}
