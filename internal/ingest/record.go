// Package ingest loads raw sales lines from CSV or XLSX exports into the
// daily summary table.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrMissingColumn   = errors.New("missing required column")
)

// Record is one line of tbl_sales_daily_summary.
type Record struct {
	BillDate   domain.Date
	Store      string
	ShopType   string
	TranType   string
	BillNumber string
	NetAmount  float64
	Qty        float64
}

// Column names of the target table, in insert order.
var columns = []string{
	"bill_date", "store_full_name", "shop_type", "tran_type", "bill_number", "item_net_amount", "sold_qty",
}

// aliases maps normalized header spellings onto table columns.
var aliases = map[string]string{
	"bill_date":       "bill_date",
	"billdate":        "bill_date",
	"date":            "bill_date",
	"store_full_name": "store_full_name",
	"store":           "store_full_name",
	"store_name":      "store_full_name",
	"shop_type":       "shop_type",
	"shoptype":        "shop_type",
	"tran_type":       "tran_type",
	"trantype":        "tran_type",
	"bill_number":     "bill_number",
	"bill_no":         "bill_number",
	"billno":          "bill_number",
	"item_net_amount": "item_net_amount",
	"net_amount":      "item_net_amount",
	"amount":          "item_net_amount",
	"sold_qty":        "sold_qty",
	"qty":             "sold_qty",
	"quantity":        "sold_qty",
}

var required = []string{"bill_date", "store_full_name", "bill_number", "item_net_amount", "sold_qty"}

// RowError reports a line that could not be parsed.
type RowError struct {
	File string
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ReadFile parses a .csv or .xlsx file. Only the first sheet of a workbook
// is read. Lines that fail to parse are returned as RowErrors alongside the
// good records; a structural problem fails the whole file.
func ReadFile(path string) ([]Record, []*RowError, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open csv file %s: %w", path, err)
		}
		defer f.Close()
		return readCSV(path, f)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
}

func readCSV(name string, r io.Reader) ([]Record, []*RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	p := &parser{file: name}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row from %s: %w", name, err)
		}
		line, _ := reader.FieldPos(0)
		if err := p.feed(line, record); err != nil {
			return nil, nil, err
		}
	}
	return p.finish()
}

func readXLSX(path string) ([]Record, []*RowError, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("xlsx file %s has no sheets", path)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheets[0], err)
	}
	defer rows.Close()

	p := &parser{file: path}
	line := 0
	for rows.Next() {
		line++
		record, err := rows.Columns()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row from %s: %w", path, err)
		}
		if err := p.feed(line, record); err != nil {
			return nil, nil, err
		}
	}
	if err := rows.Error(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rows in %s: %w", path, err)
	}
	return p.finish()
}

type parser struct {
	file    string
	index   map[string]int
	records []Record
	errs    []*RowError
}

func (p *parser) feed(line int, cells []string) error {
	if p.index == nil {
		if isBlank(cells) {
			return nil
		}
		index, err := headerIndex(cells)
		if err != nil {
			return fmt.Errorf("%s: %w", p.file, err)
		}
		p.index = index
		return nil
	}
	if isBlank(cells) {
		return nil
	}

	rec, err := p.parse(cells)
	if err != nil {
		p.errs = append(p.errs, &RowError{File: p.file, Line: line, Err: err})
		return nil
	}
	p.records = append(p.records, rec)
	return nil
}

func (p *parser) finish() ([]Record, []*RowError, error) {
	if p.index == nil {
		return nil, nil, fmt.Errorf("%s: empty file", p.file)
	}
	return p.records, p.errs, nil
}

func (p *parser) cell(cells []string, column string) string {
	i, ok := p.index[column]
	if !ok || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func (p *parser) parse(cells []string) (Record, error) {
	date, err := domain.ParseDate(p.cell(cells, "bill_date"))
	if err != nil {
		return Record{}, err
	}
	store := p.cell(cells, "store_full_name")
	if store == "" {
		return Record{}, errors.New("store is empty")
	}
	bill := p.cell(cells, "bill_number")
	if bill == "" {
		return Record{}, errors.New("bill number is empty")
	}
	amount, err := parseNumber(p.cell(cells, "item_net_amount"))
	if err != nil {
		return Record{}, fmt.Errorf("item_net_amount: %w", err)
	}
	qty, err := parseNumber(p.cell(cells, "sold_qty"))
	if err != nil {
		return Record{}, fmt.Errorf("sold_qty: %w", err)
	}

	return Record{
		BillDate:   date,
		Store:      store,
		ShopType:   p.cell(cells, "shop_type"),
		TranType:   p.cell(cells, "tran_type"),
		BillNumber: bill,
		NetAmount:  amount,
		Qty:        qty,
	}, nil
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
		if column, ok := aliases[key]; ok {
			if _, dup := index[column]; !dup {
				index[column] = i
			}
		}
	}
	for _, column := range required {
		if _, ok := index[column]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, column)
		}
	}
	return index, nil
}

// parseNumber accepts plain and comma grouped numbers. Empty is zero.
func parseNumber(v string) (float64, error) {
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
