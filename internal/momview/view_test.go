package momview

import (
	"testing"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/Shivarajkushals/Dashboard/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *domain.MonthOnMonthReport {
	return &domain.MonthOnMonthReport{
		Months: []string{"2025-01", "2025-02"},
		Stores: []domain.StoreMonths{
			{Store: "A", Data: []domain.MonthValue{{Sales: 100, Qty: 1}, {Sales: 200, Qty: 2}}},
			{Store: "B", Data: []domain.MonthValue{{Sales: 10, Qty: 3}, {Sales: 0, Qty: 0}}},
			{Store: "C", Data: []domain.MonthValue{{Sales: 5, Qty: 4}, {Sales: 5, Qty: 5}}},
		},
	}
}

func TestBuildStatuses(t *testing.T) {
	assert.Equal(t, StatusLoading, Build(nil, ModeSales).Status())

	invalid := Build(&domain.MonthOnMonthReport{Months: []string{"2025-01"}}, ModeSales)
	assert.Equal(t, StatusInvalid, invalid.Status())
	assert.ErrorIs(t, invalid.Err(), domain.ErrInvalidReportShape)
	assert.Equal(t, InvalidMessage, invalid.Message())

	ragged := sampleReport()
	ragged.Stores[1].Data = ragged.Stores[1].Data[:1]
	assert.Equal(t, StatusInvalid, Build(ragged, ModeSales).Status())

	empty := Build(&domain.MonthOnMonthReport{Months: []string{}, Stores: []domain.StoreMonths{}}, ModeSales)
	assert.Equal(t, StatusEmpty, empty.Status())
	assert.Equal(t, EmptyMessage, empty.Message())

	ready := Build(sampleReport(), ModeSales)
	assert.Equal(t, StatusReady, ready.Status())
	assert.NoError(t, ready.Err())
	assert.Empty(t, ready.Message())
}

func TestTotalsSales(t *testing.T) {
	v := Build(sampleReport(), ModeSales)
	assert.Equal(t, 300.0, v.RowTotal(0))
	assert.Equal(t, 115.0, v.ColumnTotal(0))
	assert.Equal(t, 205.0, v.ColumnTotal(1))
	assert.Equal(t, 320.0, v.GrandTotal())
	assert.Equal(t, v.ColumnTotal(0)+v.ColumnTotal(1), v.GrandTotal())
}

func TestTotalsQty(t *testing.T) {
	v := Build(sampleReport(), ModeSales.Toggle())
	assert.Equal(t, ModeQty, v.Mode())
	assert.Equal(t, 3.0, v.RowTotal(0))
	assert.Equal(t, 8.0, v.ColumnTotal(0))
	assert.Equal(t, 15.0, v.GrandTotal())
	assert.Equal(t, "15", v.Format(v.GrandTotal()))
}

func TestCellOutOfRange(t *testing.T) {
	v := Build(sampleReport(), ModeSales)
	assert.Equal(t, 0.0, v.Cell(9, 0))
	assert.Equal(t, 0.0, v.Cell(0, 9))
	assert.Equal(t, 0.0, Build(nil, ModeSales).GrandTotal())
}

func TestRowsFollowPage(t *testing.T) {
	v := Build(sampleReport(), ModeSales)
	page := pagination.Paginate(v.StoreCount(), 2, 2)

	rows := v.Rows(page)
	require.Len(t, rows, 1)
	assert.Equal(t, "C", rows[0].Store)
	assert.Equal(t, 2, rows[0].Index)
	assert.Equal(t, []float64{5, 5}, rows[0].Cells)
	assert.Equal(t, 10.0, rows[0].Total)
}

func TestMonthLabels(t *testing.T) {
	v := Build(sampleReport(), ModeSales)
	assert.Equal(t, []string{"Jan 2025", "Feb 2025"}, v.MonthLabels())
	assert.Equal(t, "₹0.00 Cr", v.Format(1000))
}

func TestModeToggleRoundTrip(t *testing.T) {
	assert.Equal(t, ModeSales, ModeSales.Toggle().Toggle())
	assert.Equal(t, "qty", ModeQty.String())
}
