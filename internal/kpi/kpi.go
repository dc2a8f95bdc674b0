// Package kpi derives the dashboard headline figures from summary rows.
package kpi

import "github.com/Shivarajkushals/Dashboard/internal/domain"

// Summary holds full-precision totals. Rounding belongs to presentation.
type Summary struct {
	TotalRevenue     float64
	TotalBills       float64
	TotalQty         float64
	LastYearRevenue  float64
	AvgGrowth        float64
	OnlineSales      float64
	OfflineSales     float64
	OnlinePercentage float64
	RowCount         int
}

// Compute folds rows into a Summary. It never divides by zero.
func Compute(rows []domain.SummaryRow) Summary {
	var s Summary
	for _, r := range rows {
		s.TotalRevenue += r.CurrentSales
		s.TotalBills += r.TotalBills
		s.TotalQty += r.TotalQty
		s.LastYearRevenue += r.LastYearSales
		s.OnlineSales += r.OnlineSalesAmount
		s.OfflineSales += r.OfflineSalesAmount
	}
	s.RowCount = len(rows)
	s.AvgGrowth = domain.GrowthPercent(s.TotalRevenue, s.LastYearRevenue)
	if s.TotalRevenue > 0 {
		s.OnlinePercentage = s.OnlineSales / s.TotalRevenue * 100
	}
	return s
}

// Channel is the online/offline split of a single row.
type Channel struct {
	Label         string
	Online        float64
	Offline       float64
	Total         float64
	OnlinePercent float64
}

// ChannelSplit computes the channel mix of a row over online+offline.
func ChannelSplit(r domain.SummaryRow) Channel {
	c := Channel{
		Label:   r.Label(),
		Online:  r.OnlineSalesAmount,
		Offline: r.OfflineSalesAmount,
		Total:   r.OnlineSalesAmount + r.OfflineSalesAmount,
	}
	if c.Total > 0 {
		c.OnlinePercent = c.Online / c.Total * 100
	}
	return c
}
