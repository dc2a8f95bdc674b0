package domain

import (
	"net/url"
	"strings"
	"time"
)

// FilterSet is the applied (or pending) filter combination driving every
// summary request. Empty strings mean "all values".
type FilterSet struct {
	Store    string `json:"store,omitempty"`
	ShopType string `json:"shop_type,omitempty"`
	TranType string `json:"tran_type,omitempty"`
	FromDate Date   `json:"from_date"`
	ToDate   Date   `json:"to_date"`
}

// Yesterday is the latest reportable day relative to now.
func Yesterday(now time.Time) Date {
	return DateOf(now).AddDays(-1)
}

// DefaultFilterSet covers the first day of the current month up to yesterday.
// On the first of a month the range falls back to yesterday's month so it
// never inverts.
func DefaultFilterSet(now time.Time) FilterSet {
	to := Yesterday(now)
	from := DateOf(now).FirstOfMonth()
	if from.After(to) {
		from = to.FirstOfMonth()
	}
	if from.Before(MinReportDate) {
		from = MinReportDate
	}
	if to.Before(MinReportDate) {
		to = MinReportDate
	}
	return FilterSet{FromDate: from, ToDate: to}
}

// Key is a canonical string of all five fields, used to decide whether a
// refetch is needed and to derive cache keys.
func (f FilterSet) Key() string {
	return strings.Join([]string{
		"from_date=" + f.FromDate.String(),
		"shop_type=" + f.ShopType,
		"store=" + f.Store,
		"to_date=" + f.ToDate.String(),
		"tran_type=" + f.TranType,
	}, "|")
}

// Query encodes the set as request parameters, omitting empty filters.
func (f FilterSet) Query() url.Values {
	q := url.Values{}
	if !f.FromDate.IsZero() {
		q.Set("from_date", f.FromDate.String())
	}
	if !f.ToDate.IsZero() {
		q.Set("to_date", f.ToDate.String())
	}
	if f.Store != "" {
		q.Set("store", f.Store)
	}
	if f.ShopType != "" {
		q.Set("shop_type", f.ShopType)
	}
	if f.TranType != "" {
		q.Set("tran_type", f.TranType)
	}
	return q
}

// LastYear shifts the date range back 365 days, keeping the other filters.
func (f FilterSet) LastYear() FilterSet {
	ly := f
	ly.FromDate = f.FromDate.AddDays(-365)
	ly.ToDate = f.ToDate.AddDays(-365)
	return ly
}
