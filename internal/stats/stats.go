// Package stats derives the dashboard aggregates from a transaction
// collection. All functions are pure: they never touch storage and take
// "today" as an argument where a reference date is needed.
package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// BreakdownLimit is how many categories appear individually before the
// remainder collapses into the synthetic Others bucket.
const BreakdownLimit = 8

// WeeklyDays is the length of the trailing daily series.
const WeeklyDays = 7

type (
	// Summary is the balance card trio with their progress percentages.
	Summary struct {
		TotalIncome  decimal.Decimal
		TotalExpense decimal.Decimal
		Balance      decimal.Decimal

		// Row counts per the display classification (zero-amount rows
		// count as expenses here, but on the income side of the totals).
		TransactionCount int
		ExpenseCount     int
		IncomeCount      int

		BalancePercent int
		ExpensePercent int
		IncomePercent  int
	}

	// CategoryShare is one slice of the expense breakdown.
	CategoryShare struct {
		Category core.CategoryInfo
		Amount   decimal.Decimal
		Percent  int
	}

	// Weekly holds aligned per-day expense and income series for the
	// seven days ending at the reference date, oldest first.
	Weekly struct {
		Days    []core.Day
		Labels  []string
		Expense []decimal.Decimal
		Income  []decimal.Decimal
	}
)

var hundred = decimal.NewFromInt(100)

// percentOf computes round(part/whole*100) with half-away-from-zero
// rounding, returning 0 when whole is not positive.
func percentOf(part, whole decimal.Decimal) int {
	if whole.Sign() <= 0 {
		return 0
	}
	return int(part.Mul(hundred).Div(whole).Round(0).IntPart())
}

// Summarize computes the totals and card percentages.
//
// The sign boundary is deliberately asymmetric: a zero amount counts on
// the income side of the totals (amount >= 0) but as an expense row in
// the counts (amount <= 0), matching the reference behavior for legacy
// zero-amount records.
func Summarize(txs []core.Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero
	expenseRows := 0
	incomeRows := 0

	for _, t := range txs {
		if t.Amount.Sign() >= 0 {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount.Abs())
		}
		if t.IsExpense() {
			expenseRows++
		} else {
			incomeRows++
		}
	}

	balance := income.Sub(expense)

	return Summary{
		TotalIncome:      income,
		TotalExpense:     expense,
		Balance:          balance,
		TransactionCount: len(txs),
		ExpenseCount:     expenseRows,
		IncomeCount:      incomeRows,
		BalancePercent:   percentOf(balance, income),
		ExpensePercent:   percentOf(expense, income),
		// Fixed display convention, not a ratio.
		IncomePercent: 100,
	}
}

// CategoryBreakdown groups expense rows (amount <= 0) by category,
// summing magnitudes, and returns the shares sorted descending by
// amount. Ties keep first-encountered order. At most BreakdownLimit
// categories are emitted individually; any remainder becomes a single
// Others share whose percentage is computed from the remainder's summed
// amount rather than from the individual rounded percentages.
func CategoryBreakdown(txs []core.Transaction) []CategoryShare {
	sums := make(map[string]decimal.Decimal)
	var order []string
	total := decimal.Zero

	for _, t := range txs {
		if !t.IsExpense() {
			continue
		}
		key := t.CategoryKey()
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		magnitude := t.Amount.Abs()
		sums[key] = sums[key].Add(magnitude)
		total = total.Add(magnitude)
	}

	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		return sums[order[i]].GreaterThan(sums[order[j]])
	})

	limit := len(order)
	if limit > BreakdownLimit {
		limit = BreakdownLimit
	}

	shares := make([]CategoryShare, 0, limit+1)
	for _, key := range order[:limit] {
		shares = append(shares, CategoryShare{
			Category: core.LookupCategory(key),
			Amount:   sums[key],
			Percent:  percentOf(sums[key], total),
		})
	}

	if len(order) > BreakdownLimit {
		rest := decimal.Zero
		for _, key := range order[BreakdownLimit:] {
			rest = rest.Add(sums[key])
		}
		shares = append(shares, CategoryShare{
			Category: core.OthersCategory,
			Amount:   rest,
			Percent:  percentOf(rest, total),
		})
	}

	return shares
}

// WeeklySeries builds the seven-day daily series ending at today,
// oldest first. A transaction belongs to a day only when its stored
// date string matches that day exactly; there is no range or timezone
// normalization.
func WeeklySeries(txs []core.Transaction, today core.Day) Weekly {
	w := Weekly{
		Days:    make([]core.Day, 0, WeeklyDays),
		Labels:  make([]string, 0, WeeklyDays),
		Expense: make([]decimal.Decimal, 0, WeeklyDays),
		Income:  make([]decimal.Decimal, 0, WeeklyDays),
	}

	for i := WeeklyDays - 1; i >= 0; i-- {
		day := today.AddDays(-i)
		expense := decimal.Zero
		income := decimal.Zero
		for _, t := range txs {
			if t.Date.String() != day.String() {
				continue
			}
			if t.IsExpense() {
				expense = expense.Add(t.Amount.Abs())
			} else {
				income = income.Add(t.Amount)
			}
		}
		w.Days = append(w.Days, day)
		w.Labels = append(w.Labels, day.Format("Mon 01/02"))
		w.Expense = append(w.Expense, expense)
		w.Income = append(w.Income, income)
	}

	return w
}
