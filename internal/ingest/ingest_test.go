package ingest

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Bill Date,Store,Shop Type,Tran Type,Bill No,Net Amount,Qty
2025-03-01,Store 01,Offline,Sale,B-1,"1,250.50",2
2025-03-01,Store 01,,Sale,B-2,100,1

not-a-date,Store 02,Online,Sale,B-3,10,1
2025-03-02,Store 02,Online,Return,B-4,-40,-1
`

func TestReadCSV(t *testing.T) {
	records, rejected, err := readCSV("sample.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Len(t, rejected, 1)

	assert.Equal(t, Record{
		BillDate:   domain.NewDate(2025, 3, 1),
		Store:      "Store 01",
		ShopType:   "Offline",
		TranType:   "Sale",
		BillNumber: "B-1",
		NetAmount:  1250.5,
		Qty:        2,
	}, records[0])
	assert.Empty(t, records[1].ShopType)
	assert.Equal(t, -40.0, records[2].NetAmount)

	assert.Equal(t, 5, rejected[0].Line)
	assert.True(t, errors.Is(rejected[0], domain.ErrInvalidDate))
	assert.Contains(t, rejected[0].Error(), "sample.csv:5")
}

func TestReadCSVMissingColumn(t *testing.T) {
	_, _, err := readCSV("bad.csv", strings.NewReader("store,qty\nA,1\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, _, err = readCSV("empty.csv", strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadFileXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"bill_date", "store_full_name", "shop_type", "tran_type", "bill_number", "item_net_amount", "sold_qty"},
		{"2025-03-05", "Store 03", "Online", "Sale", "X-9", 75.25, 3},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	records, rejected, err := ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, records, 1)
	assert.Equal(t, "Store 03", records[0].Store)
	assert.Equal(t, 75.25, records[0].NetAmount)
	assert.Equal(t, 3.0, records[0].Qty)
}

func TestReadFileUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	_, _, err := ReadFile(path)
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestBatches(t *testing.T) {
	records := make([]Record, 7)
	batches := Batches(records, 3)
	require.Len(t, batches, 3)
	assert.Len(t, batches[2], 1)
	assert.Nil(t, Batches(nil, 3))
}

func TestInsertStatement(t *testing.T) {
	batch := []Record{
		{BillDate: domain.NewDate(2025, 3, 1), Store: "A", BillNumber: "1", NetAmount: 10, Qty: 1},
		{BillDate: domain.NewDate(2025, 3, 2), Store: "B", ShopType: "Online", BillNumber: "2", NetAmount: 5, Qty: 2},
	}
	query, args := insertStatement(batch)
	assert.Equal(t, "INSERT INTO tbl_sales_daily_summary (bill_date, store_full_name, shop_type, tran_type, bill_number, item_net_amount, sold_qty) VALUES ($1, $2, $3, $4, $5, $6, $7), ($8, $9, $10, $11, $12, $13, $14)", query)
	require.Len(t, args, 14)
	assert.Equal(t, "2025-03-01", args[0])
	assert.Equal(t, sql.NullString{}, args[2])
	assert.Equal(t, sql.NullString{String: "Online", Valid: true}, args[9])
}

func TestNewLoaderCapsBatchSize(t *testing.T) {
	assert.Equal(t, 9362, MaxBatchSize)
	assert.Equal(t, MaxBatchSize, NewLoader(nil, 20000, 1).batchSize)
	assert.Equal(t, DefaultBatchSize, NewLoader(nil, 0, 1).batchSize)
	assert.Equal(t, 750, NewLoader(nil, 750, 1).batchSize)

	query, args := insertStatement(make([]Record, MaxBatchSize))
	assert.LessOrEqual(t, len(args), 65535)
	assert.Contains(t, query, "$65534")
}
