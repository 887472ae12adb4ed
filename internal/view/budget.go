// Package view builds display models from portal data. All functions are
// pure: they take loaded rows and return ready-to-render values.
package view

import (
	"fmt"
	"strings"

	"github.com/brgysanantonio/portal/internal/models"
)

// BudgetRow is a budget allocation prepared for display.
type BudgetRow struct {
	models.BudgetAllocation
	Remaining        float64
	PercentSpent     float64
	StatusClass      string
	AllocatedDisplay string
	SpentDisplay     string
	RemainingDisplay string
	PercentDisplay   string
}

// SummaryCard is one of the three aggregate cards above the budget table.
type SummaryCard struct {
	Title  string
	Value  string
	Accent string
}

// BudgetView is the data passed to the budget dashboard template.
type BudgetView struct {
	Rows           []BudgetRow
	TotalAllocated float64
	TotalSpent     float64
	TotalRemaining float64
	Cards          []SummaryCard
}

// PercentSpent returns spent as a percentage of allocated, clamped to
// [0, 100]. A zero allocation yields 0 rather than dividing by zero, and
// the clamp holds even if spent exceeds allocated.
func PercentSpent(allocated, spent float64) float64 {
	if allocated == 0 {
		return 0
	}
	pct := spent / allocated * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// BuildBudgetView computes per-row and aggregate figures for the dashboard.
func BuildBudgetView(items []models.BudgetAllocation) BudgetView {
	v := BudgetView{Rows: make([]BudgetRow, 0, len(items))}

	for _, item := range items {
		v.TotalAllocated += item.Allocated
		v.TotalSpent += item.Spent

		remaining := item.Remaining()
		pct := PercentSpent(item.Allocated, item.Spent)
		v.Rows = append(v.Rows, BudgetRow{
			BudgetAllocation: item,
			Remaining:        remaining,
			PercentSpent:     pct,
			StatusClass:      "status-" + strings.ToLower(item.Status),
			AllocatedDisplay: FormatCurrency(item.Allocated),
			SpentDisplay:     FormatCurrency(item.Spent),
			RemainingDisplay: FormatCurrency(remaining),
			PercentDisplay:   fmt.Sprintf("%.1f%% spent", pct),
		})
	}

	v.TotalRemaining = v.TotalAllocated - v.TotalSpent
	v.Cards = []SummaryCard{
		{Title: "Total Annual Budget", Value: FormatCurrency(v.TotalAllocated), Accent: "accent-blue"},
		{Title: "Total Funds Spent", Value: FormatCurrency(v.TotalSpent), Accent: "accent-rose"},
		{Title: "Remaining Balance", Value: FormatCurrency(v.TotalRemaining), Accent: "accent-emerald"},
	}
	return v
}

// FormatCurrency renders an amount as Philippine pesos with comma grouping
// and two decimal places, e.g. ₱3,200,000.00.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return sign + "₱" + b.String() + "." + frac
}
