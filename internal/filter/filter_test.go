package filter

import (
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

func intPtr(v int) *int { return &v }

func sample() []core.Transaction {
	return []core.Transaction{
		{ID: 1, Amount: decimal.NewFromInt(-50), Description: "Weekly groceries", Date: core.NewDay(2024, 1, 15), Category: "grocery"},
		{ID: 2, Amount: decimal.NewFromInt(-20), Description: "Cinema", Date: core.NewDay(2024, 2, 3), Category: "entertainment"},
		{ID: 3, Amount: decimal.NewFromInt(300), Description: "Salary", Date: core.NewDay(2023, 12, 28), Category: "other"},
		{ID: 4, Amount: decimal.NewFromInt(-15), Description: "groceries again", Date: core.NewDay(2024, 1, 20), Category: "grocery"},
	}
}

func TestActive(t *testing.T) {
	cases := []struct {
		name string
		f    Filter
		want bool
	}{
		{"empty", Filter{}, false},
		{"month only", Filter{Month: intPtr(0)}, true},
		{"year only", Filter{Year: intPtr(2024)}, true},
		{"search only", Filter{Search: "x"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.f.Active(); got != tc.want {
				t.Fatalf("Active() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestApplyInactiveReturnsInput(t *testing.T) {
	txs := sample()
	got := Filter{}.Apply(txs)
	if len(got) != len(txs) {
		t.Fatalf("inactive filter changed length: %d -> %d", len(txs), len(got))
	}
	if &got[0] != &txs[0] {
		t.Fatal("inactive filter should return the input slice unchanged")
	}
}

func TestApply(t *testing.T) {
	cases := []struct {
		name    string
		f       Filter
		wantIDs []int64
	}{
		{"january (month 0)", Filter{Month: intPtr(0)}, []int64{1, 4}},
		{"february (month 1)", Filter{Month: intPtr(1)}, []int64{2}},
		{"year 2023", Filter{Year: intPtr(2023)}, []int64{3}},
		{"month and year", Filter{Month: intPtr(0), Year: intPtr(2024)}, []int64{1, 4}},
		{"month and year mismatch", Filter{Month: intPtr(11), Year: intPtr(2024)}, nil},
		{"search description case-insensitive", Filter{Search: "GROCERIES"}, []int64{1, 4}},
		{"search category", Filter{Search: "entertain"}, []int64{2}},
		{"search and month", Filter{Search: "groceries", Month: intPtr(0)}, []int64{1, 4}},
		{"search no match", Filter{Search: "utilities"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.f.Apply(sample())
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("got %d transactions, want %d", len(got), len(tc.wantIDs))
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Fatalf("result[%d].ID = %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestApplyNeverGrows(t *testing.T) {
	txs := sample()
	filters := []Filter{
		{Month: intPtr(0)},
		{Year: intPtr(2024)},
		{Search: "a"},
		{Month: intPtr(0), Year: intPtr(2024), Search: "groceries"},
	}
	for _, f := range filters {
		if got := f.Apply(txs); len(got) > len(txs) {
			t.Fatalf("filter %+v grew the collection: %d -> %d", f, len(txs), len(got))
		}
	}
}
