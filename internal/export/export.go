// Package export renders dashboard tables as spreadsheet files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/Shivarajkushals/Dashboard/internal/momview"
	"github.com/xuri/excelize/v2"
)

const (
	StoresSheet       = "Stores"
	MonthOnMonthSheet = "Month on Month"
)

var storeHeader = []string{
	"Store", "Current Sales", "Last Year Sales", "Growth %", "Bills", "Qty",
	"ASP", "UPT", "Online Sales", "Offline Sales",
}

// FileName builds "<kind>_<from>_<to>.<ext>".
func FileName(kind string, f domain.FilterSet, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", kind, f.FromDate, f.ToDate, ext)
}

// StoreSummaryXLSX writes the store summary to a single sheet workbook with
// a totals line at the bottom.
func StoreSummaryXLSX(rows []domain.SummaryRow) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName(wb.GetSheetName(0), StoresSheet); err != nil {
		return nil, err
	}
	header := make([]interface{}, len(storeHeader))
	for i, h := range storeHeader {
		header[i] = h
	}
	if err := writeRow(wb, StoresSheet, 1, header); err != nil {
		return nil, err
	}

	var cur, ly, bills, qty, online, offline float64
	for i, r := range rows {
		line := []interface{}{
			r.Label(), r.CurrentSales, r.LastYearSales, r.GrowthPercent, r.TotalBills, r.TotalQty,
			r.AvgSellingPrice, r.UnitsPerTransaction, r.OnlineSalesAmount, r.OfflineSalesAmount,
		}
		if err := writeRow(wb, StoresSheet, i+2, line); err != nil {
			return nil, err
		}
		cur += r.CurrentSales
		ly += r.LastYearSales
		bills += r.TotalBills
		qty += r.TotalQty
		online += r.OnlineSalesAmount
		offline += r.OfflineSalesAmount
	}
	total := []interface{}{
		"Total", cur, ly, domain.GrowthPercent(cur, ly), bills, qty, ratio(cur, qty), ratio(qty, bills), online, offline,
	}
	if err := writeRow(wb, StoresSheet, len(rows)+2, total); err != nil {
		return nil, err
	}

	if err := styleHeader(wb, StoresSheet, len(storeHeader)); err != nil {
		return nil, err
	}
	return finish(wb)
}

// MonthOnMonthXLSX writes the matrix in the view's current measure, with a
// total column and a total line.
func MonthOnMonthXLSX(v *momview.View) ([]byte, error) {
	if v.Status() != momview.StatusReady {
		return nil, fmt.Errorf("month-on-month report not ready: %s", v.Status())
	}

	wb := excelize.NewFile()
	defer wb.Close()
	if err := wb.SetSheetName(wb.GetSheetName(0), MonthOnMonthSheet); err != nil {
		return nil, err
	}

	labels := v.MonthLabels()
	header := []interface{}{"Store"}
	for _, l := range labels {
		header = append(header, l)
	}
	header = append(header, "Total")
	if err := writeRow(wb, MonthOnMonthSheet, 1, header); err != nil {
		return nil, err
	}

	rows := v.AllRows()
	for i, r := range rows {
		line := []interface{}{r.Store}
		for _, c := range r.Cells {
			line = append(line, c)
		}
		line = append(line, r.Total)
		if err := writeRow(wb, MonthOnMonthSheet, i+2, line); err != nil {
			return nil, err
		}
	}

	total := []interface{}{"Total"}
	for m := range labels {
		total = append(total, v.ColumnTotal(m))
	}
	total = append(total, v.GrandTotal())
	if err := writeRow(wb, MonthOnMonthSheet, len(rows)+2, total); err != nil {
		return nil, err
	}

	if err := styleHeader(wb, MonthOnMonthSheet, len(header)); err != nil {
		return nil, err
	}
	return finish(wb)
}

// StoreSummaryCSV writes rows with the same columns as the workbook.
func StoreSummaryCSV(w io.Writer, rows []domain.SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(storeHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Label(),
			num(r.CurrentSales), num(r.LastYearSales), num(r.GrowthPercent),
			num(r.TotalBills), num(r.TotalQty),
			num(r.AvgSellingPrice), num(r.UnitsPerTransaction),
			num(r.OnlineSalesAmount), num(r.OfflineSalesAmount),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeRow(wb *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := wb.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func styleHeader(wb *excelize.File, sheet string, cols int) error {
	style, err := wb.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	if err := wb.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	return wb.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func finish(wb *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := wb.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
