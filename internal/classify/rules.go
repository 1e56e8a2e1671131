package classify

import (
	"fmt"

	"github.com/midwestsb/autobooks/internal/bank"
)

// RuleClassifier deterministically classifies transactions on the five
// internal bank accounts. One parameterized rule path serves all five
// accounts, driven by the internal account table.
type RuleClassifier struct{}

// NewRuleClassifier creates a new RuleClassifier
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// ClassifyBatch classifies every transaction owned by the given account,
// partitioning the output into resolved drafts and the two unclassified
// buckets. Deterministic entries always carry confidence 1.0; placeholder
// partials carry confidence 0 so they can never pass the posting floor
// unmerged.
func (c *RuleClassifier) ClassifyBatch(account InternalAccount, txs []*bank.Transaction) Result {
	var res Result
	for _, tx := range txs {
		classified := Classified{Transaction: tx, Lines: c.classify(account, tx)}
		switch {
		case classified.Lines[0].Confidence >= 1.0:
			res.Resolved = append(res.Resolved, classified)
		case tx.IsInflow():
			res.UnclassifiedRevenues = append(res.UnclassifiedRevenues, classified)
		default:
			res.UnclassifiedExpenses = append(res.UnclassifiedExpenses, classified)
		}
	}
	return res
}

// classify produces draft lines for one transaction. The sign convention:
// a positive amount debits the owning account (money in), a negative amount
// credits it (money out). Posted amounts are always absolute.
func (c *RuleClassifier) classify(account InternalAccount, tx *bank.Transaction) []DraftLine {
	if tx.Kind == bank.KindInternalTransfer {
		if cp, ok := LookupInternal(tx.Counterparty); ok {
			return c.classifyInternalTransfer(account, cp, tx)
		}
		// Unknown counterparty on an internal transfer: fall through to
		// the external rules rather than guessing at an account.
	}
	return c.classifyExternal(account, tx)
}

// classifyInternalTransfer resolves transfers between two known internal
// accounts without AI, appending the fee recognition or reversal entry when
// the movement crosses the trust boundary.
func (c *RuleClassifier) classifyInternalTransfer(account, cp InternalAccount, tx *bank.Transaction) []DraftLine {
	amount := tx.Amount.Abs()

	var lines []DraftLine
	source, dest := cp, account
	if !tx.IsInflow() {
		source, dest = account, cp
	}

	lines = append(lines, DraftLine{
		DebitAccount:  dest.LedgerAccount,
		CreditAccount: source.LedgerAccount,
		Amount:        amount,
		Memo:          fmt.Sprintf("Internal transfer from %s to %s", source.LedgerAccount, dest.LedgerAccount),
		Confidence:    1.0,
	})

	if applies, recognition := feeApplies(source, dest); applies {
		if recognition {
			lines = append(lines, DraftLine{
				DebitAccount:  AccountClientFundsPayable,
				CreditAccount: AccountCollectionFeeRevenue,
				Amount:        amount,
				Memo:          fmt.Sprintf("Collection fee recognized on transfer from %s to %s", source.LedgerAccount, dest.LedgerAccount),
				Confidence:    1.0,
			})
		} else {
			lines = append(lines, DraftLine{
				DebitAccount:  AccountCollectionFeeRevenue,
				CreditAccount: AccountClientFundsPayable,
				Amount:        amount,
				Memo:          fmt.Sprintf("Reversing fee revenue, funds returned from %s to %s", source.LedgerAccount, dest.LedgerAccount),
				Confidence:    1.0,
			})
		}
	}

	return lines
}

// classifyExternal handles flows whose counterparty is not one of the five
// internal accounts. Trust-like accounts settle against Client Funds Payable
// deterministically; fee partners produce placeholder partials routed to the
// AI classifier.
func (c *RuleClassifier) classifyExternal(account InternalAccount, tx *bank.Transaction) []DraftLine {
	amount := tx.Amount.Abs()

	if account.TrustLike {
		if tx.IsInflow() {
			return []DraftLine{{
				DebitAccount:  account.LedgerAccount,
				CreditAccount: AccountClientFundsPayable,
				Amount:        amount,
				Memo:          fmt.Sprintf("Funds received from debtor into %s", account.LedgerAccount),
				Confidence:    1.0,
			}}
		}
		return []DraftLine{{
			DebitAccount:  AccountClientFundsPayable,
			CreditAccount: account.LedgerAccount,
			Amount:        amount,
			Memo:          fmt.Sprintf("Client payout from %s", account.LedgerAccount),
			Confidence:    1.0,
		}}
	}

	if tx.IsInflow() {
		return []DraftLine{{
			DebitAccount:  account.LedgerAccount,
			CreditAccount: AccountUnclassifiedRevenue,
			Amount:        amount,
			Memo:          fmt.Sprintf("Unclassified deposit into %s from %s", account.LedgerAccount, tx.Counterparty),
			Confidence:    0,
		}}
	}
	return []DraftLine{{
		DebitAccount:  AccountUnclassifiedExpense,
		CreditAccount: account.LedgerAccount,
		Amount:        amount,
		Memo:          fmt.Sprintf("Unclassified payment from %s to %s", account.LedgerAccount, tx.Counterparty),
		Confidence:    0,
	}}
}
