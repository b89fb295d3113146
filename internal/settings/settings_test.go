package settings

import (
	"context"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/kv"
	"fintrack/internal/kv/memory"
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewService(store, nil), store
}

func TestAccountsSeedsDefaults(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	accounts, err := svc.Accounts(ctx)
	if err != nil {
		t.Fatalf("Accounts: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("got %d accounts, want 2", len(accounts))
	}
	if accounts[0].ID != AccountAll || accounts[1].ID != AccountDefault {
		t.Fatalf("seeded ids = %q, %q", accounts[0].ID, accounts[1].ID)
	}

	// Seeding persists, so a second read comes from storage.
	if _, ok, _ := store.Get(ctx, kv.KeyAccounts); !ok {
		t.Fatal("seeded accounts were not persisted")
	}
	again, err := svc.Accounts(ctx)
	if err != nil {
		t.Fatalf("Accounts (second read): %v", err)
	}
	if len(again) != 2 {
		t.Fatalf("second read returned %d accounts", len(again))
	}
}

func TestAddAccount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	added, err := svc.AddAccount(ctx, "Savings")
	if err != nil {
		t.Fatalf("AddAccount: %v", err)
	}
	if added.ID == "" || added.Name != "Savings" {
		t.Fatalf("unexpected account %+v", added)
	}

	accounts, err := svc.Accounts(ctx)
	if err != nil {
		t.Fatalf("Accounts: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("got %d accounts, want 3", len(accounts))
	}
	if accounts[2].ID != added.ID {
		t.Fatalf("persisted id %q != returned id %q", accounts[2].ID, added.ID)
	}
}

func TestSelectedAccountDefaultsToAll(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	id, err := svc.SelectedAccount(ctx)
	if err != nil {
		t.Fatalf("SelectedAccount: %v", err)
	}
	if id != AccountAll {
		t.Fatalf("default selection = %q, want %q", id, AccountAll)
	}

	if err := svc.SetSelectedAccount(ctx, "default"); err != nil {
		t.Fatalf("SetSelectedAccount: %v", err)
	}
	id, err = svc.SelectedAccount(ctx)
	if err != nil {
		t.Fatalf("SelectedAccount: %v", err)
	}
	if id != "default" {
		t.Fatalf("selection = %q, want default", id)
	}
}

func TestSelectedMonthLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	if _, ok, err := svc.SelectedMonth(ctx); err != nil || ok {
		t.Fatalf("fresh store: month=%v err=%v, want unset", ok, err)
	}

	jan := 0
	if err := svc.SetSelectedMonth(ctx, &jan); err != nil {
		t.Fatalf("SetSelectedMonth: %v", err)
	}
	month, ok, err := svc.SelectedMonth(ctx)
	if err != nil || !ok || month != 0 {
		t.Fatalf("got month=%d ok=%v err=%v, want 0 true nil", month, ok, err)
	}

	if err := svc.SetSelectedMonth(ctx, nil); err != nil {
		t.Fatalf("clear month: %v", err)
	}
	if _, ok, _ := svc.SelectedMonth(ctx); ok {
		t.Fatal("month still set after clearing")
	}

	// Corrupt selections behave like no selection.
	if err := store.Set(ctx, kv.KeySelectedMonth, "not a number"); err != nil {
		t.Fatalf("seed corrupt month: %v", err)
	}
	if _, ok, err := svc.SelectedMonth(ctx); err != nil || ok {
		t.Fatalf("corrupt month: ok=%v err=%v, want unset", ok, err)
	}
}

func TestCurrencyFallback(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	c, err := svc.Currency(ctx)
	if err != nil {
		t.Fatalf("Currency: %v", err)
	}
	if c.Code != "USD" {
		t.Fatalf("fresh store currency = %q, want USD", c.Code)
	}

	if err := store.Set(ctx, kv.KeyCurrency, "XXX"); err != nil {
		t.Fatalf("seed unknown code: %v", err)
	}
	c, err = svc.Currency(ctx)
	if err != nil {
		t.Fatalf("Currency: %v", err)
	}
	if c.Code != "USD" {
		t.Fatalf("unknown code currency = %q, want USD fallback", c.Code)
	}

	if err := svc.SetCurrency(ctx, "EUR"); err != nil {
		t.Fatalf("SetCurrency: %v", err)
	}
	c, err = svc.Currency(ctx)
	if err != nil {
		t.Fatalf("Currency: %v", err)
	}
	if c.Code != "EUR" {
		t.Fatalf("currency = %q, want EUR", c.Code)
	}
}

func TestSetCurrencyRejectsUnknownCode(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	if err := svc.SetCurrency(ctx, "XXX"); err == nil {
		t.Fatal("expected error for unknown currency code")
	}
	if _, ok, _ := store.Get(ctx, kv.KeyCurrency); ok {
		t.Fatal("rejected code must not be stored")
	}
}

func TestReminders(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	reminders, err := svc.Reminders(ctx)
	if err != nil {
		t.Fatalf("Reminders: %v", err)
	}
	if len(reminders) != 0 {
		t.Fatalf("fresh store has %d reminders", len(reminders))
	}

	today := core.NewDay(2024, 6, 1)
	added, err := svc.AddReminder(ctx, "pay rent", today)
	if err != nil {
		t.Fatalf("AddReminder: %v", err)
	}
	if added.ID == 0 || added.Text != "pay rent" || added.Completed {
		t.Fatalf("unexpected reminder %+v", added)
	}

	if err := svc.ToggleReminder(ctx, added.ID); err != nil {
		t.Fatalf("ToggleReminder: %v", err)
	}
	reminders, err = svc.Reminders(ctx)
	if err != nil {
		t.Fatalf("Reminders: %v", err)
	}
	if len(reminders) != 1 || !reminders[0].Completed {
		t.Fatalf("reminder not toggled: %+v", reminders)
	}

	// Unknown ids are a silent no-op.
	if err := svc.ToggleReminder(ctx, 999); err != nil {
		t.Fatalf("ToggleReminder unknown id: %v", err)
	}
	reminders, _ = svc.Reminders(ctx)
	if !reminders[0].Completed {
		t.Fatal("no-op toggle changed state")
	}
}

func TestRemindersMalformedPayload(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	if err := store.Set(ctx, kv.KeyReminders, "{not json"); err != nil {
		t.Fatalf("seed malformed payload: %v", err)
	}
	reminders, err := svc.Reminders(ctx)
	if err != nil {
		t.Fatalf("Reminders: %v", err)
	}
	if len(reminders) != 0 {
		t.Fatalf("malformed payload yielded %d reminders", len(reminders))
	}
}

func TestBoolPreference(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	v, err := svc.BoolPreference(ctx, kv.KeyNotifyReminders)
	if err != nil || v {
		t.Fatalf("unset preference = %v err=%v, want false nil", v, err)
	}

	if err := svc.SetBoolPreference(ctx, kv.KeyNotifyReminders, true); err != nil {
		t.Fatalf("SetBoolPreference: %v", err)
	}
	v, err = svc.BoolPreference(ctx, kv.KeyNotifyReminders)
	if err != nil || !v {
		t.Fatalf("preference = %v err=%v, want true nil", v, err)
	}

	// Anything but the literal "true" reads as false.
	if err := store.Set(ctx, kv.KeyNotifyBudgets, "yes"); err != nil {
		t.Fatalf("seed malformed preference: %v", err)
	}
	v, err = svc.BoolPreference(ctx, kv.KeyNotifyBudgets)
	if err != nil || v {
		t.Fatalf("malformed preference = %v err=%v, want false nil", v, err)
	}
}

func TestPreferenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	if _, ok, err := svc.Preference(ctx, kv.KeyTheme); err != nil || ok {
		t.Fatalf("unset theme: ok=%v err=%v", ok, err)
	}
	if err := svc.SetPreference(ctx, kv.KeyTheme, "dark"); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}
	v, ok, err := svc.Preference(ctx, kv.KeyTheme)
	if err != nil || !ok || v != "dark" {
		t.Fatalf("theme = %q ok=%v err=%v, want dark true nil", v, ok, err)
	}
}
