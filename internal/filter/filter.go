// Package filter narrows a transaction collection by the dashboard's
// month, year, and search selections.
package filter

import (
	"strings"

	"fintrack/internal/core"
)

// Filter holds the active selections. Nil month and year mean "all";
// an empty search term is inactive. Month is 0-indexed (January = 0),
// matching the persisted selection values.
type Filter struct {
	Month  *int
	Year   *int
	Search string
}

// Active reports whether any selection narrows the collection. Callers
// route to the plain show-all display path when no filter is active
// rather than running a degenerate pass.
func (f Filter) Active() bool {
	return f.Month != nil || f.Year != nil || f.Search != ""
}

// Apply narrows txs by the active selections, composing them by logical
// AND. The result never exceeds the input in length; an inactive filter
// returns the input slice unchanged.
func (f Filter) Apply(txs []core.Transaction) []core.Transaction {
	if !f.Active() {
		return txs
	}

	out := txs
	if f.Month != nil {
		out = keep(out, func(t core.Transaction) bool {
			return int(t.Date.Month())-1 == *f.Month
		})
	}
	if f.Year != nil {
		out = keep(out, func(t core.Transaction) bool {
			return t.Date.Year() == *f.Year
		})
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		out = keep(out, func(t core.Transaction) bool {
			return strings.Contains(strings.ToLower(t.Description), term) ||
				strings.Contains(strings.ToLower(t.Category), term)
		})
	}
	return out
}

func keep(txs []core.Transaction, pred func(core.Transaction) bool) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
