package ledger

import "fintrack/internal/core"

// MigrateLegacy applies the one-time correction for ledgers written by
// the old format, where expenses were stored with positive amounts and
// no category. The trigger is exact: the collection is non-empty and
// every amount is strictly positive. Mixed signs, zero amounts, or an
// empty collection leave the input untouched. A migrated ledger is
// all-negative and can never trigger again, so the migration is
// idempotent.
//
// The returned slice is a fresh copy when changed is true; otherwise it
// is the input slice itself.
func MigrateLegacy(txs []core.Transaction) (out []core.Transaction, changed bool) {
	if len(txs) == 0 {
		return txs, false
	}
	for _, t := range txs {
		if t.Amount.Sign() <= 0 {
			return txs, false
		}
	}

	out = make([]core.Transaction, len(txs))
	for i, t := range txs {
		t.Amount = t.Amount.Abs().Neg()
		if t.Category == "" {
			t.Category = core.DefaultCategory
		}
		out[i] = t
	}
	return out, true
}
