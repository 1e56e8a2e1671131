package classify

// MergeExpenses folds AI debit-account choices into unclassified expense
// partials. The rule-derived credit account and amount are kept; the debit
// account, memo and confidence come from the AI result. Partials without a
// matching AI result pass through unchanged and will fail the confidence
// floor at posting time.
//
// Only the first AI entry per transaction is used; any additional entries
// are dropped.
func MergeExpenses(partials []Classified, aiResults []AIResult) []Classified {
	return merge(partials, aiResults, func(orig DraftLine, ai AIEntry) DraftLine {
		merged := DraftLine{
			DebitAccount:  ai.Account,
			CreditAccount: orig.CreditAccount,
			Amount:        orig.Amount,
			Memo:          ai.Memo,
			Confidence:    ai.Confidence,
		}
		if merged.Memo == "" {
			merged.Memo = orig.Memo
		}
		return merged
	})
}

// MergeRevenues folds AI credit-account choices into unclassified revenue
// partials, keeping the rule-derived debit account and amount.
func MergeRevenues(partials []Classified, aiResults []AIResult) []Classified {
	return merge(partials, aiResults, func(orig DraftLine, ai AIEntry) DraftLine {
		merged := DraftLine{
			DebitAccount:  orig.DebitAccount,
			CreditAccount: ai.Account,
			Amount:        orig.Amount,
			Memo:          ai.Memo,
			Confidence:    ai.Confidence,
		}
		if merged.Memo == "" {
			merged.Memo = orig.Memo
		}
		return merged
	})
}

func merge(partials []Classified, aiResults []AIResult, apply func(DraftLine, AIEntry) DraftLine) []Classified {
	lookup := make(map[string]AIResult, len(aiResults))
	for _, r := range aiResults {
		if _, exists := lookup[r.Name]; !exists {
			lookup[r.Name] = r
		}
	}

	merged := make([]Classified, 0, len(partials))
	for _, p := range partials {
		r, ok := lookup[p.Transaction.Name]
		if !ok || len(r.Entries) == 0 || len(p.Lines) == 0 {
			merged = append(merged, p)
			continue
		}
		merged = append(merged, Classified{
			Transaction: p.Transaction,
			Lines:       []DraftLine{apply(p.Lines[0], r.Entries[0])},
		})
	}
	return merged
}
