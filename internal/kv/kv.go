// Package kv defines the persistent key-value port the ledger and
// settings layers are written against. The host store is synchronous,
// string-keyed and string-valued, with no transactions and no expiry;
// adapters live in the subpackages.
package kv

import "context"

// Store is the outbound port for persistent state.
type Store interface {
	// Get returns the value for key and whether the key was present.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set writes value under key, replacing any prior value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Well-known keys of the persisted state.
const (
	KeyExpenses        = "expenses"
	KeyAccounts        = "accounts"
	KeySelectedAccount = "selectedAccount"
	KeySelectedMonth   = "selectedMonth"
	KeySelectedYear    = "selectedYear"
	KeyCurrency        = "currency"
	KeyDefaultCurrency = "defaultCurrency"
	KeyReminders       = "reminders"
	KeyTheme           = "theme"
	KeyLanguage        = "language"
	KeyDateFormat      = "dateFormat"
	KeyStartOfWeek     = "startOfWeek"
	KeyMultiCurrency   = "multiCurrency"
	KeyNotifyReminders = "notifyReminders"
	KeyNotifyBudgets   = "notifyBudgets"
)
