// Package view prepares transaction collections for presentation:
// display ordering, date grouping, and per-row classification. It
// produces data, not markup; rendering stays with the caller.
package view

import (
	"sort"

	"fintrack/internal/core"
)

type (
	// Row is one transaction prepared for display.
	Row struct {
		Transaction core.Transaction
		// Negative marks the row's display class: amount <= 0.
		Negative bool
		// Sign is "+" for income rows and empty for expense rows; the
		// formatted magnitude is appended after it.
		Sign string
		// Icon is the money icon for income rows, otherwise the
		// category's icon.
		Icon string
		// Meta is "Income" for income rows and "#category" otherwise.
		Meta string
	}

	// Group is one date bucket of rows.
	Group struct {
		Date  core.Day
		Label string
		Rows  []Row
	}
)

// SortForDisplay orders transactions most recent first: date
// descending, then id descending as the creation-order tie-break. The
// input is sorted in place.
func SortForDisplay(txs []core.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date.Time) {
			return txs[i].Date.After(txs[j].Date.Time)
		}
		return txs[i].ID > txs[j].ID
	})
}

// GroupByDate sorts for display and buckets the result by date,
// labeling each bucket relative to today.
func GroupByDate(txs []core.Transaction, today core.Day) []Group {
	sorted := append([]core.Transaction(nil), txs...)
	SortForDisplay(sorted)

	var groups []Group
	for _, t := range sorted {
		if len(groups) == 0 || !groups[len(groups)-1].Date.Equal(t.Date.Time) {
			groups = append(groups, Group{
				Date:  t.Date,
				Label: DateLabel(t.Date, today),
			})
		}
		last := &groups[len(groups)-1]
		last.Rows = append(last.Rows, NewRow(t))
	}
	return groups
}

// NewRow classifies a transaction for display. Zero-amount legacy rows
// classify as expenses and render with no explicit sign.
func NewRow(t core.Transaction) Row {
	row := Row{Transaction: t, Negative: t.IsExpense()}
	if t.IsIncome() {
		row.Sign = "+"
		row.Icon = "💰"
		row.Meta = "Income"
		return row
	}
	info := core.LookupCategory(t.CategoryKey())
	row.Icon = info.Icon
	row.Meta = "#" + t.CategoryKey()
	return row
}

// DateLabel renders a date bucket heading: "Today, January 2",
// "Yesterday, January 1", or "Monday, December 29".
func DateLabel(d, today core.Day) string {
	suffix := d.Format("January 2")
	switch {
	case d.Equal(today.Time):
		return "Today, " + suffix
	case d.Equal(today.AddDays(-1).Time):
		return "Yesterday, " + suffix
	default:
		return d.Format("Monday") + ", " + suffix
	}
}
