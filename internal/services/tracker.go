// Package services orchestrates the ledger repository, the settings
// store, and the derivation engines behind a single tracker facade.
package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/filter"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/settings"
	"fintrack/internal/stats"
	"fintrack/internal/view"
)

// Tracker is the application service the presentation layer calls into.
type Tracker struct {
	repo     *ledger.Repository
	settings *settings.Service
	logger   *log.Logger
}

// Dashboard bundles every derived view the dashboard renders from one
// load of the ledger.
type Dashboard struct {
	Summary   stats.Summary
	Breakdown []stats.CategoryShare
	Weekly    stats.Weekly
	Groups    []view.Group
	Currency  core.Currency
	Filtered  bool
}

func NewTracker(repo *ledger.Repository, settings *settings.Service, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Tracker{
		repo:     repo,
		settings: settings,
		logger:   logger.WithComponent(log.ComponentTracker),
	}
}

// AddTransaction validates form input, signs the amount per kind, and
// appends the record to the ledger.
func (t *Tracker) AddTransaction(ctx context.Context, kind core.Kind, magnitude decimal.Decimal, description string, date core.Day, category string) (core.Transaction, error) {
	tx, err := core.NewTransaction(kind, magnitude, description, date, category)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := t.repo.Append(ctx, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("append transaction: %w", err)
	}
	return tx, nil
}

// DeleteTransaction removes a transaction by id; unknown ids are a
// silent no-op.
func (t *Tracker) DeleteTransaction(ctx context.Context, id int64) error {
	return t.repo.Remove(ctx, id)
}

// Transactions loads the ledger and applies the filter. An inactive
// filter returns the full collection via the same path the show-all
// display uses.
func (t *Tracker) Transactions(ctx context.Context, f filter.Filter) ([]core.Transaction, error) {
	txs, err := t.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(txs), nil
}

// Search narrows the ledger by a case-insensitive substring match on
// description or category.
func (t *Tracker) Search(ctx context.Context, term string) ([]core.Transaction, error) {
	return t.Transactions(ctx, filter.Filter{Search: term})
}

// Dashboard computes the summary cards, category breakdown, weekly
// series, and grouped transaction list in one pass over the (possibly
// filtered) ledger. now anchors the weekly series and the relative date
// labels.
func (t *Tracker) Dashboard(ctx context.Context, f filter.Filter, now core.Day) (Dashboard, error) {
	txs, err := t.Transactions(ctx, f)
	if err != nil {
		return Dashboard{}, err
	}

	currency, err := t.settings.Currency(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Summary:   stats.Summarize(txs),
		Breakdown: stats.CategoryBreakdown(txs),
		Weekly:    stats.WeeklySeries(txs, now),
		Groups:    view.GroupByDate(txs, now),
		Currency:  currency,
		Filtered:  f.Active(),
	}

	t.logger.Debug("Dashboard computed",
		log.FieldTxCount, d.Summary.TransactionCount,
		log.FieldCurrency, currency.Code)

	return d, nil
}

// StoredFilter assembles a filter from the persisted month and year
// selections, composed with an optional search term.
func (t *Tracker) StoredFilter(ctx context.Context, search string) (filter.Filter, error) {
	var f filter.Filter
	if month, ok, err := t.settings.SelectedMonth(ctx); err != nil {
		return f, err
	} else if ok {
		f.Month = &month
	}
	if year, ok, err := t.settings.SelectedYear(ctx); err != nil {
		return f, err
	} else if ok {
		f.Year = &year
	}
	f.Search = search
	return f, nil
}
