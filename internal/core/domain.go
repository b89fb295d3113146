package core

import (
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

type (
	// Kind selects the sign applied to a transaction amount at creation.
	Kind string

	// Day is a calendar date with no time component. It marshals to the
	// ISO "YYYY-MM-DD" form used by the persisted ledger.
	Day struct {
		time.Time
	}

	// Transaction is the sole persisted ledger entity. Amount is signed:
	// negative for expenses, positive for income. Legacy records read
	// from storage may carry a zero amount or an empty category.
	Transaction struct {
		ID          int64           `json:"id"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Date        Day             `json:"date"`
		Category    string          `json:"category,omitempty"`
	}

	// Account is a loosely-linked grouping used by the filter bar.
	Account struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	// Reminder is a dated note on the dashboard.
	Reminder struct {
		ID        int64  `json:"id"`
		Text      string `json:"text"`
		Date      Day    `json:"date"`
		Completed bool   `json:"completed"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidKind      = errors.New("invalid transaction kind")
)

func init() {
	// Ledger records store amounts as bare JSON numbers, matching the
	// legacy on-disk format.
	decimal.MarshalJSONWithoutQuotes = true
}

const dayLayout = "2006-01-02"

// NewDay builds a Day from calendar components, anchored at midnight UTC.
func NewDay(year, month, day int) Day {
	return Day{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates an instant to its calendar date.
func DayOf(t time.Time) Day {
	return NewDay(t.Year(), int(t.Month()), t.Day())
}

// ParseDay parses the ISO "YYYY-MM-DD" form.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, ErrInvalidDate
	}
	return Day{Time: t}, nil
}

func (d Day) String() string {
	return d.Format(dayLayout)
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AddDays returns the day shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	return Day{Time: d.AddDate(0, 0, n)}
}

func (d Day) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (k Kind) Validate() error {
	switch k {
	case Expense, Income:
		return nil
	default:
		return ErrInvalidKind
	}
}

// NewTransaction validates form input and applies the sign convention:
// expenses are stored negative, income positive. The magnitude must be
// strictly positive and the description non-blank. A blank category
// defaults to "other"; unrecognized keys are kept as entered and fall
// back only at read sites.
func NewTransaction(kind Kind, magnitude decimal.Decimal, description string, date Day, category string) (Transaction, error) {
	if err := kind.Validate(); err != nil {
		return Transaction{}, err
	}
	if magnitude.Sign() <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	if strings.TrimSpace(description) == "" {
		return Transaction{}, ErrEmptyDescription
	}
	if err := date.Validate(); err != nil {
		return Transaction{}, err
	}
	if category == "" {
		category = DefaultCategory
	}
	amount := magnitude.Abs()
	if kind == Expense {
		amount = amount.Neg()
	}
	return Transaction{
		ID:          NextID(time.Now()),
		Amount:      amount,
		Description: strings.TrimSpace(description),
		Date:        date,
		Category:    category,
	}, nil
}

// IsExpense reports the display classification: zero-amount legacy
// records render as expense rows even though totals count them on the
// income side.
func (t Transaction) IsExpense() bool {
	return t.Amount.Sign() <= 0
}

// IsIncome reports whether the row renders as income.
func (t Transaction) IsIncome() bool {
	return t.Amount.Sign() > 0
}

// CategoryKey returns the record's category with the read-site fallback
// applied for absent keys.
func (t Transaction) CategoryKey() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

var lastID atomic.Int64

// NextID derives a unique id from the current wall clock in
// milliseconds, bumped when two creations land on the same tick so ids
// stay strictly increasing within a process. The id doubles as the
// creation-order tie-break when sorting.
func NextID(now time.Time) int64 {
	ms := now.UnixMilli()
	for {
		last := lastID.Load()
		candidate := ms
		if candidate <= last {
			candidate = last + 1
		}
		if lastID.CompareAndSwap(last, candidate) {
			return candidate
		}
	}
}
