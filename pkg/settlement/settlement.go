package settlement

import (
	"github.com/lovetrip/lovetrip/pkg/expense"
)

// Summary is one participant's net position. A positive NetAmount means the
// participant should be reimbursed; a negative one means they owe money.
type Summary struct {
	UserID    string
	TotalPaid float64
	TotalOwed float64
	NetAmount float64
}

// Settle reduces expenses and their splits into one Summary per participant,
// in the participant order given. Payers and split users outside the
// participant set are silently skipped. Expenses without splits are divided
// evenly across all participants using the largest-remainder rule, so the
// net amounts of a fully attributed ledger sum to zero.
func Settle(expenses []expense.WithSplits, participantIds []string) []Summary {
	index := make(map[string]int, len(participantIds))
	summaries := make([]Summary, 0, len(participantIds))
	for _, userId := range participantIds {
		if _, ok := index[userId]; ok {
			continue
		}
		index[userId] = len(summaries)
		summaries = append(summaries, Summary{UserID: userId})
	}

	for _, exp := range expenses {
		if i, ok := index[exp.PaidByUserID]; ok {
			summaries[i].TotalPaid += exp.Amount
		}

		if len(exp.Splits) > 0 {
			for _, split := range exp.Splits {
				if i, ok := index[split.UserID]; ok {
					summaries[i].TotalOwed += split.Amount
				}
			}
			continue
		}

		shares := expense.EvenShares(exp.Amount, len(summaries))
		for i := range summaries {
			summaries[i].TotalOwed += shares[i]
		}
	}

	for i := range summaries {
		summaries[i].NetAmount = summaries[i].TotalPaid - summaries[i].TotalOwed
	}
	return summaries
}
