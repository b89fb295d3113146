// Package charts renders the two dashboard charts as PNGs: the weekly
// expense/income bars and the balance donut.
package charts

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"fintrack/internal/stats"
)

var (
	expenseColor = drawing.Color{R: 0xef, G: 0x44, B: 0x44, A: 255} // red
	incomeColor  = drawing.Color{R: 0x10, G: 0xb9, B: 0x81, A: 255} // green
	balanceColor = drawing.Color{R: 0x3b, G: 0x82, B: 0xf6, A: 255} // blue
)

// Renderer draws dashboard charts from precomputed aggregates.
type Renderer struct {
	width  int
	height int
}

func NewRenderer() *Renderer {
	return &Renderer{width: 800, height: 400}
}

// WeeklyBars renders paired expense/income bars for the seven-day
// series, oldest day on the left.
func (r *Renderer) WeeklyBars(w io.Writer, weekly stats.Weekly) error {
	if len(weekly.Days) == 0 {
		return fmt.Errorf("empty weekly series")
	}

	bars := make([]chart.Value, 0, len(weekly.Days)*2)
	for i := range weekly.Days {
		expense, _ := weekly.Expense[i].Float64()
		income, _ := weekly.Income[i].Float64()
		bars = append(bars,
			chart.Value{
				Label: weekly.Labels[i],
				Value: expense,
				Style: chart.Style{FillColor: expenseColor, StrokeColor: expenseColor},
			},
			chart.Value{
				Label: "",
				Value: income,
				Style: chart.Style{FillColor: incomeColor, StrokeColor: incomeColor},
			},
		)
	}

	graph := chart.BarChart{
		Title:    "Statistics",
		Width:    r.width,
		Height:   r.height,
		BarWidth: 28,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Bars: bars,
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 10},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render weekly chart: %w", err)
	}
	return nil
}

// BalanceDonut renders the balance/expense/income percentage donut.
// The values are the card percentages, not raw amounts, matching the
// reference dashboard.
func (r *Renderer) BalanceDonut(w io.Writer, summary stats.Summary) error {
	values := []chart.Value{
		{
			Label: fmt.Sprintf("Balance %d%%", summary.BalancePercent),
			Value: nonZero(float64(summary.BalancePercent)),
			Style: chart.Style{FillColor: balanceColor, StrokeColor: balanceColor},
		},
		{
			Label: fmt.Sprintf("Expense %d%%", summary.ExpensePercent),
			Value: nonZero(float64(summary.ExpensePercent)),
			Style: chart.Style{FillColor: expenseColor, StrokeColor: expenseColor},
		},
		{
			Label: fmt.Sprintf("Income %d%%", summary.IncomePercent),
			Value: nonZero(float64(summary.IncomePercent)),
			Style: chart.Style{FillColor: incomeColor, StrokeColor: incomeColor},
		},
	}

	graph := chart.DonutChart{
		Title:  "Balance",
		Width:  r.height,
		Height: r.height,
		Values: values,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render balance chart: %w", err)
	}
	return nil
}

// nonZero keeps donut slices drawable when a percentage is zero.
func nonZero(v float64) float64 {
	if v <= 0 {
		return 0.0001
	}
	return v
}
