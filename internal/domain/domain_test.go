package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseDate("2024-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("29/02/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateJSON(t *testing.T) {
	var f FilterSet
	require.NoError(t, json.Unmarshal([]byte(`{"from_date":"2024-01-01","to_date":"2024-01-31","store":"A"}`), &f))
	assert.Equal(t, NewDate(2024, time.January, 1), f.FromDate)
	assert.Equal(t, NewDate(2024, time.January, 31), f.ToDate)
	assert.Equal(t, "A", f.Store)

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"store":"A","from_date":"2024-01-01","to_date":"2024-01-31"}`, string(out))
}

func TestDefaultFilterSet(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		wantFrom string
		wantTo   string
	}{
		{"mid month", time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC), "2025-03-01", "2025-03-14"},
		{"second of month", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), "2025-03-01", "2025-03-01"},
		{"first of month", time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), "2025-02-01", "2025-02-28"},
		{"first of year", time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC), "2024-12-01", "2024-12-31"},
		{"before reporting start", time.Date(2022, 4, 1, 8, 0, 0, 0, time.UTC), "2022-04-01", "2022-04-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilterSet(tt.now)
			assert.Equal(t, tt.wantFrom, f.FromDate.String())
			assert.Equal(t, tt.wantTo, f.ToDate.String())
			assert.False(t, f.FromDate.After(f.ToDate))
			assert.Empty(t, f.Store)
			assert.Empty(t, f.ShopType)
			assert.Empty(t, f.TranType)
		})
	}
}

func TestFilterSetQueryOmitsEmpty(t *testing.T) {
	f := FilterSet{
		ShopType: "Online",
		FromDate: NewDate(2025, 1, 1),
		ToDate:   NewDate(2025, 1, 31),
	}
	q := f.Query()
	assert.Equal(t, "2025-01-01", q.Get("from_date"))
	assert.Equal(t, "2025-01-31", q.Get("to_date"))
	assert.Equal(t, "Online", q.Get("shop_type"))
	_, hasStore := q["store"]
	assert.False(t, hasStore)
	_, hasTran := q["tran_type"]
	assert.False(t, hasTran)
}

func TestFilterSetKey(t *testing.T) {
	a := FilterSet{Store: "A", FromDate: NewDate(2025, 1, 1), ToDate: NewDate(2025, 1, 2)}
	b := a
	assert.Equal(t, a.Key(), b.Key())
	b.TranType = "Sale"
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestFilterSetLastYear(t *testing.T) {
	f := FilterSet{Store: "A", FromDate: NewDate(2025, 3, 1), ToDate: NewDate(2025, 3, 31)}
	ly := f.LastYear()
	assert.Equal(t, "2024-03-01", ly.FromDate.String())
	assert.Equal(t, "2024-03-31", ly.ToDate.String())
	assert.Equal(t, "A", ly.Store)
}

func TestGrowthPercent(t *testing.T) {
	assert.InDelta(t, 50.0, GrowthPercent(150, 100), 1e-9)
	assert.InDelta(t, -25.0, GrowthPercent(75, 100), 1e-9)
	assert.Equal(t, 0.0, GrowthPercent(100, 0))
}

func TestMonthOnMonthValidate(t *testing.T) {
	valid := &MonthOnMonthReport{
		Months: []string{"2025-01", "2025-02"},
		Stores: []StoreMonths{{Store: "A", Data: []MonthValue{{Sales: 1}, {Sales: 2}}}},
	}
	assert.NoError(t, valid.Validate())

	empty := &MonthOnMonthReport{Months: []string{}, Stores: []StoreMonths{}}
	assert.NoError(t, empty.Validate())

	var missing MonthOnMonthReport
	require.NoError(t, json.Unmarshal([]byte(`{"stores":[]}`), &missing))
	assert.ErrorIs(t, missing.Validate(), ErrInvalidReportShape)

	ragged := &MonthOnMonthReport{
		Months: []string{"2025-01", "2025-02"},
		Stores: []StoreMonths{{Store: "A", Data: []MonthValue{{Sales: 1}}}},
	}
	assert.ErrorIs(t, ragged.Validate(), ErrInvalidReportShape)
}

func TestNewMonthOnMonthReport(t *testing.T) {
	report := NewMonthOnMonthReport([]MonthCell{
		{Store: "B", Month: "2025-02", Sales: 20, Qty: 2},
		{Store: "A", Month: "2025-01", Sales: 10, Qty: 1},
		{Store: "A", Month: "2025-02", Sales: 5, Qty: 1},
	})

	require.NoError(t, report.Validate())
	assert.Equal(t, []string{"2025-01", "2025-02"}, report.Months)
	require.Len(t, report.Stores, 2)
	assert.Equal(t, "A", report.Stores[0].Store)
	assert.Equal(t, []MonthValue{{Sales: 10, Qty: 1}, {Sales: 5, Qty: 1}}, report.Stores[0].Data)
	assert.Equal(t, "B", report.Stores[1].Store)
	assert.Equal(t, []MonthValue{{}, {Sales: 20, Qty: 2}}, report.Stores[1].Data)

	none := NewMonthOnMonthReport(nil)
	assert.NoError(t, none.Validate())
	assert.Empty(t, none.Stores)
}
