package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/Shivarajkushals/Dashboard/internal/momview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var rows = []domain.SummaryRow{
	{Store: "Store 01", CurrentSales: 1250, LastYearSales: 1000, GrowthPercent: 25, TotalBills: 4, TotalQty: 10,
		AvgSellingPrice: 125, UnitsPerTransaction: 2.5, OnlineSalesAmount: 250, OfflineSalesAmount: 1000},
	{Store: "Store 02", CurrentSales: 750, TotalBills: 1, TotalQty: 10, AvgSellingPrice: 75, UnitsPerTransaction: 10,
		OfflineSalesAmount: 750},
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

func TestStoreSummaryXLSX(t *testing.T) {
	data, err := StoreSummaryXLSX(rows)
	require.NoError(t, err)

	wb := open(t, data)
	assert.Equal(t, []string{StoresSheet}, wb.GetSheetList())

	got, err := wb.GetRows(StoresSheet)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, storeHeader, got[0])
	assert.Equal(t, "Store 01", got[1][0])
	assert.Equal(t, "1250", got[1][1])
	assert.Equal(t, "Total", got[3][0])
	assert.Equal(t, "2000", got[3][1])
	assert.Equal(t, "100", got[3][3])
	assert.Equal(t, "5", got[3][4])
}

func TestMonthOnMonthXLSX(t *testing.T) {
	report := &domain.MonthOnMonthReport{
		Months: []string{"2025-01", "2025-02"},
		Stores: []domain.StoreMonths{
			{Store: "A", Data: []domain.MonthValue{{Sales: 10, Qty: 1}, {Sales: 20, Qty: 2}}},
			{Store: "B", Data: []domain.MonthValue{{Sales: 5, Qty: 3}, {}}},
		},
	}

	data, err := MonthOnMonthXLSX(momview.Build(report, momview.ModeQty))
	require.NoError(t, err)

	got, err := open(t, data).GetRows(MonthOnMonthSheet)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"Store", "Jan 2025", "Feb 2025", "Total"}, got[0])
	assert.Equal(t, []string{"A", "1", "2", "3"}, got[1])
	assert.Equal(t, []string{"B", "3", "0", "3"}, got[2])
	assert.Equal(t, []string{"Total", "4", "2", "6"}, got[3])
}

func TestMonthOnMonthXLSXNotReady(t *testing.T) {
	_, err := MonthOnMonthXLSX(momview.Build(nil, momview.ModeSales))
	assert.Error(t, err)

	_, err = MonthOnMonthXLSX(momview.Build(&domain.MonthOnMonthReport{Months: []string{}, Stores: []domain.StoreMonths{}}, momview.ModeSales))
	assert.Error(t, err)
}

func TestStoreSummaryCSV(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, StoreSummaryCSV(&buf, rows[:1]))
	assert.Equal(t,
		"Store,Current Sales,Last Year Sales,Growth %,Bills,Qty,ASP,UPT,Online Sales,Offline Sales\n"+
			"Store 01,1250,1000,25,4,10,125,2.5,250,1000\n",
		buf.String())
}

func TestFileName(t *testing.T) {
	f := domain.FilterSet{FromDate: domain.NewDate(2025, 3, 1), ToDate: domain.NewDate(2025, 3, 31)}
	assert.Equal(t, "store-summary_2025-03-01_2025-03-31.xlsx", FileName("store-summary", f, "xlsx"))
}
