// Package classify contains the deterministic rule classifier for the
// company's five linked bank accounts and the merge layer that folds
// AI-resolved account choices back into rule-derived partial entries.
package classify

// Shared ledger account names used by the rule classifier.
const (
	// AccountClientFundsPayable is the liability tracking funds held in
	// trust on behalf of clients.
	AccountClientFundsPayable = "Client Funds Payable"
	// AccountCollectionFeeRevenue is the income account for collection
	// fees earned when client funds move into Operating or Payroll.
	AccountCollectionFeeRevenue = "Revenue - Collection Fee"
	// AccountUnclassifiedExpense is the placeholder debit side for
	// external outflows that need AI resolution.
	AccountUnclassifiedExpense = "Unclassified Expense"
	// AccountUnclassifiedRevenue is the placeholder credit side for
	// external inflows that need AI resolution.
	AccountUnclassifiedRevenue = "Unclassified Revenue"
)

// InternalAccount describes one of the company's own bank accounts.
//
// TrustLike accounts (Trust, ARS, Workers' Compensation) hold client funds:
// their external flows always settle against Client Funds Payable, and moving
// money between them and a fee partner (Operating or Payroll) recognizes or
// reverses collection-fee revenue. Fee partners send their unmatched external
// flows to the AI classifier instead.
type InternalAccount struct {
	// Nickname is the identifier used by the banking feed, both as the
	// owning account nickname and as a counterparty name.
	Nickname string
	// LedgerAccount is the matching chart-of-accounts name.
	LedgerAccount string
	TrustLike     bool
}

var internalAccounts = []InternalAccount{
	{Nickname: "MSB_TRUST", LedgerAccount: "MSB Trust", TrustLike: true},
	{Nickname: "MSB_OPERATING", LedgerAccount: "MSB Operating", TrustLike: false},
	{Nickname: "MSB_PAYROLL", LedgerAccount: "MSB Payroll", TrustLike: false},
	{Nickname: "MSB_ARS", LedgerAccount: "MSB ARS", TrustLike: true},
	{Nickname: "MSB_WORKERS_COMP", LedgerAccount: "MSB Workers Compensation", TrustLike: true},
}

var internalByNickname = func() map[string]InternalAccount {
	m := make(map[string]InternalAccount, len(internalAccounts))
	for _, a := range internalAccounts {
		m[a.Nickname] = a
	}
	return m
}()

// InternalAccounts returns the five known company bank accounts in their
// fixed processing order.
func InternalAccounts() []InternalAccount {
	out := make([]InternalAccount, len(internalAccounts))
	copy(out, internalAccounts)
	return out
}

// LookupInternal resolves a bank-feed nickname to its internal account.
func LookupInternal(nickname string) (InternalAccount, bool) {
	a, ok := internalByNickname[nickname]
	return a, ok
}

// feeApplies reports whether a movement from source to dest recognizes or
// reverses collection-fee revenue. A fee event occurs only between a
// trust-like account and a fee partner; recognition happens when client funds
// leave trust for Operating/Payroll, reversal on the opposite flow.
func feeApplies(source, dest InternalAccount) (applies, recognition bool) {
	if source.TrustLike && !dest.TrustLike {
		return true, true
	}
	if !source.TrustLike && dest.TrustLike {
		return true, false
	}
	return false, false
}
