package dashboard

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Shivarajkushals/Dashboard/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportWritesWorkbooks(t *testing.T) {
	d := newTestDashboard(t, newStub(2))
	d.ToggleMonthOnMonthMode()

	root := t.TempDir()
	store, err := storage.NewLocalStorage(root)
	require.NoError(t, err)

	written, err := d.ExportJob().Run(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "store-summary_2025-03-01_2025-03-14.xlsx"),
		filepath.Join(root, "store-summary_2025-03-01_2025-03-14.csv"),
		filepath.Join(root, "month-on-month-qty_2025-03-01_2025-03-14.xlsx"),
	}, written)

	objs, err := store.ListObjects(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, objs, 3)
}

func TestExportWithoutData(t *testing.T) {
	api := newStub(0)
	api.report = nil
	d := newTestDashboard(t, api)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = d.ExportJob().Run(context.Background(), store)
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestExportJobKeepsModeAtCapture(t *testing.T) {
	d := newTestDashboard(t, newStub(2))
	job := d.ExportJob()
	d.ToggleMonthOnMonthMode()

	root := t.TempDir()
	store, err := storage.NewLocalStorage(root)
	require.NoError(t, err)

	written, err := job.Run(context.Background(), store)
	require.NoError(t, err)
	assert.Contains(t, written, filepath.Join(root, "month-on-month-sales_2025-03-01_2025-03-14.xlsx"))
}
