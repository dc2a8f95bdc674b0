package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/Shivarajkushals/Dashboard/internal/export"
	"github.com/Shivarajkushals/Dashboard/internal/momview"
	"github.com/Shivarajkushals/Dashboard/internal/storage"
)

// ErrNothingToExport is returned when no section has data.
var ErrNothingToExport = errors.New("nothing to export")

// ExportJob is a snapshot of the exportable sections. Running it touches
// only the snapshot, so it may run off the event loop.
type ExportJob struct {
	filters domain.FilterSet
	stores  []domain.SummaryRow
	view    *momview.View
}

// ExportJob captures the store summary and the month-on-month matrix in its
// current measure.
func (d *Dashboard) ExportJob() ExportJob {
	st := d.State()
	return ExportJob{
		filters: st.Filters,
		stores:  st.Stores,
		view:    momview.Build(st.MonthOnMonth, d.momMode),
	}
}

// Run writes the store summary (xlsx and csv) and, when ready, the
// month-on-month workbook. It returns the locations written.
func (j ExportJob) Run(ctx context.Context, store storage.ObjectStorage) ([]string, error) {
	f := j.filters
	var written []string

	put := func(key string, data []byte) error {
		if err := store.UploadObject(ctx, key, data); err != nil {
			return err
		}
		written = append(written, store.Location(key))
		return nil
	}

	if len(j.stores) > 0 {
		data, err := export.StoreSummaryXLSX(j.stores)
		if err != nil {
			return written, fmt.Errorf("store summary workbook: %w", err)
		}
		if err := put(export.FileName("store-summary", f, "xlsx"), data); err != nil {
			return written, err
		}

		var buf bytes.Buffer
		if err := export.StoreSummaryCSV(&buf, j.stores); err != nil {
			return written, fmt.Errorf("store summary csv: %w", err)
		}
		if err := put(export.FileName("store-summary", f, "csv"), buf.Bytes()); err != nil {
			return written, err
		}
	}

	if j.view.Status() == momview.StatusReady {
		data, err := export.MonthOnMonthXLSX(j.view)
		if err != nil {
			return written, fmt.Errorf("month-on-month workbook: %w", err)
		}
		if err := put(export.FileName("month-on-month-"+j.view.Mode().String(), f, "xlsx"), data); err != nil {
			return written, err
		}
	}

	if len(written) == 0 {
		return nil, ErrNothingToExport
	}
	return written, nil
}
