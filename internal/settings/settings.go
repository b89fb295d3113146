// Package settings manages the non-ledger persisted state: accounts,
// filter selections, the active currency, reminders, and presentation
// preferences. Like the ledger, every mutation is a full read-
// transform-write of the backing key.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/kv"
	"fintrack/internal/log"
)

const (
	AccountAll     = "all"
	AccountDefault = "default"
)

// Service reads and writes collaborator state through the kv port.
type Service struct {
	store  kv.Store
	logger *log.Logger
}

func NewService(store kv.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Service{
		store:  store,
		logger: logger.WithComponent(log.ComponentSettings),
	}
}

// Accounts returns the account list, seeding the two built-in entries
// on first access.
func (s *Service) Accounts(ctx context.Context) ([]core.Account, error) {
	var accounts []core.Account
	if err := s.loadJSON(ctx, kv.KeyAccounts, &accounts); err != nil {
		return nil, err
	}
	if len(accounts) > 0 {
		return accounts, nil
	}

	accounts = []core.Account{
		{ID: AccountAll, Name: "All Accounts"},
		{ID: AccountDefault, Name: "Default Account"},
	}
	if err := s.saveJSON(ctx, kv.KeyAccounts, accounts); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Seeded default accounts")
	return accounts, nil
}

// AddAccount appends a named account with a generated id.
func (s *Service) AddAccount(ctx context.Context, name string) (core.Account, error) {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return core.Account{}, err
	}
	account := core.Account{ID: uuid.NewString(), Name: name}
	accounts = append(accounts, account)
	if err := s.saveJSON(ctx, kv.KeyAccounts, accounts); err != nil {
		return core.Account{}, err
	}
	s.logger.InfoContext(ctx, "Account added", log.FieldAccountID, account.ID)
	return account, nil
}

// SelectedAccount returns the active account selection, defaulting to
// "all".
func (s *Service) SelectedAccount(ctx context.Context) (string, error) {
	v, ok, err := s.store.Get(ctx, kv.KeySelectedAccount)
	if err != nil {
		return "", fmt.Errorf("get selected account: %w", err)
	}
	if !ok || v == "" {
		return AccountAll, nil
	}
	return v, nil
}

func (s *Service) SetSelectedAccount(ctx context.Context, id string) error {
	return s.store.Set(ctx, kv.KeySelectedAccount, id)
}

// SelectedMonth returns the persisted 0-indexed month selection; ok is
// false when no month is selected (all months).
func (s *Service) SelectedMonth(ctx context.Context) (month int, ok bool, err error) {
	return s.selectedInt(ctx, kv.KeySelectedMonth)
}

// SetSelectedMonth persists a month selection; a nil value clears it.
func (s *Service) SetSelectedMonth(ctx context.Context, month *int) error {
	return s.setSelectedInt(ctx, kv.KeySelectedMonth, month)
}

// SelectedYear returns the persisted year selection; ok is false when
// no year is selected.
func (s *Service) SelectedYear(ctx context.Context) (year int, ok bool, err error) {
	return s.selectedInt(ctx, kv.KeySelectedYear)
}

// SetSelectedYear persists a year selection; a nil value clears it.
func (s *Service) SetSelectedYear(ctx context.Context, year *int) error {
	return s.setSelectedInt(ctx, kv.KeySelectedYear, year)
}

func (s *Service) selectedInt(ctx context.Context, key string) (int, bool, error) {
	v, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return 0, false, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok || v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// A corrupt selection behaves like no selection.
		return 0, false, nil
	}
	return n, true, nil
}

func (s *Service) setSelectedInt(ctx context.Context, key string, value *int) error {
	if value == nil {
		return s.store.Remove(ctx, key)
	}
	return s.store.Set(ctx, key, strconv.Itoa(*value))
}

// Currency returns the active currency, falling back to USD when the
// stored code is absent or not in the currency table.
func (s *Service) Currency(ctx context.Context) (core.Currency, error) {
	return s.currencyAt(ctx, kv.KeyCurrency)
}

// DefaultCurrency returns the settings-page default currency with the
// same fallback.
func (s *Service) DefaultCurrency(ctx context.Context) (core.Currency, error) {
	return s.currencyAt(ctx, kv.KeyDefaultCurrency)
}

func (s *Service) currencyAt(ctx context.Context, key string) (core.Currency, error) {
	code, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return core.Currency{}, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok || !core.ValidCurrency(code) {
		return core.LookupCurrency(core.DefaultCurrencyCode), nil
	}
	return core.LookupCurrency(code), nil
}

// SetCurrency persists the active currency code. Unknown codes are
// rejected rather than stored.
func (s *Service) SetCurrency(ctx context.Context, code string) error {
	if !core.ValidCurrency(code) {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return s.store.Set(ctx, kv.KeyCurrency, code)
}

// Reminders returns the reminder list; absent or malformed data yields
// an empty list.
func (s *Service) Reminders(ctx context.Context) ([]core.Reminder, error) {
	var reminders []core.Reminder
	if err := s.loadJSON(ctx, kv.KeyReminders, &reminders); err != nil {
		return nil, err
	}
	if reminders == nil {
		reminders = []core.Reminder{}
	}
	return reminders, nil
}

// AddReminder appends a reminder dated today.
func (s *Service) AddReminder(ctx context.Context, text string, today core.Day) (core.Reminder, error) {
	reminders, err := s.Reminders(ctx)
	if err != nil {
		return core.Reminder{}, err
	}
	reminder := core.Reminder{
		ID:   core.NextID(today.Time),
		Text: text,
		Date: today,
	}
	reminders = append(reminders, reminder)
	if err := s.saveJSON(ctx, kv.KeyReminders, reminders); err != nil {
		return core.Reminder{}, err
	}
	s.logger.InfoContext(ctx, "Reminder added", log.FieldReminderID, reminder.ID)
	return reminder, nil
}

// ToggleReminder flips a reminder's completed flag. Unknown ids are a
// silent no-op.
func (s *Service) ToggleReminder(ctx context.Context, id int64) error {
	reminders, err := s.Reminders(ctx)
	if err != nil {
		return err
	}
	for i := range reminders {
		if reminders[i].ID == id {
			reminders[i].Completed = !reminders[i].Completed
			return s.saveJSON(ctx, kv.KeyReminders, reminders)
		}
	}
	return nil
}

// Preference returns a raw presentation preference value; ok is false
// when unset.
func (s *Service) Preference(ctx context.Context, key string) (string, bool, error) {
	return s.store.Get(ctx, key)
}

// SetPreference stores a raw presentation preference value.
func (s *Service) SetPreference(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, key, value)
}

// BoolPreference reads a JSON-encoded boolean preference, defaulting to
// false when unset or malformed.
func (s *Service) BoolPreference(ctx context.Context, key string) (bool, error) {
	v, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	return v == "true", nil
}

// SetBoolPreference stores a JSON-encoded boolean preference.
func (s *Service) SetBoolPreference(ctx context.Context, key string, value bool) error {
	return s.store.Set(ctx, key, strconv.FormatBool(value))
}

func (s *Service) loadJSON(ctx context.Context, key string, dst any) error {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.WarnContext(ctx, "Stored value is malformed, treating as empty",
			log.FieldKey, key, log.FieldError, err)
	}
	return nil
}

func (s *Service) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
