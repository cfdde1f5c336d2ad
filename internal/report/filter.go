package report

import "financas/internal/core"

// FilterTransactions returns the transactions whose date falls inside the
// selected month. Records with a zero (malformed) date never match.
func FilterTransactions(txs []core.Transaction, p core.Period) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if p.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// FilterContributions returns the goal contributions dated inside the
// selected month.
func FilterContributions(cs []core.Contribution, p core.Period) []core.Contribution {
	out := make([]core.Contribution, 0, len(cs))
	for _, c := range cs {
		if p.Contains(c.Date) {
			out = append(out, c)
		}
	}
	return out
}
