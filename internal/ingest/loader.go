package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	Table            = "tbl_sales_daily_summary"
	DefaultBatchSize = 500
	DefaultWorkers   = 4

	// Postgres binds at most 65535 parameters per statement.
	maxBindParams = 65535
)

// MaxBatchSize is the largest batch a single INSERT can carry.
var MaxBatchSize = maxBindParams / len(columns)

// Loader inserts sales files into the daily summary table.
type Loader struct {
	db        *sql.DB
	batchSize int
	workers   int
}

// Result summarizes a load.
type Result struct {
	Files    int
	Rows     int64
	Rejected []*RowError
}

func NewLoader(db *sql.DB, batchSize, workers int) *Loader {
	switch {
	case batchSize <= 0:
		batchSize = DefaultBatchSize
	case batchSize > MaxBatchSize:
		log.Warn().Int("requested", batchSize).Int("max", MaxBatchSize).Msg("batch size capped")
		batchSize = MaxBatchSize
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Loader{db: db, batchSize: batchSize, workers: workers}
}

// LoadFiles reads and inserts files using a bounded worker pool. Each file is
// inserted in its own transaction; the first failure is returned after all
// workers stop.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) (Result, error) {
	var (
		res      Result
		rows     atomic.Int64
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)
	jobs := make(chan string)

	for i := 0; i < l.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for path := range jobs {
				n, rejected, err := l.loadFile(ctx, path)
				mu.Lock()
				res.Rejected = append(res.Rejected, rejected...)
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Str("file", path).Msg("failed to load file")
					if firstErr == nil {
						firstErr = err
					}
				} else {
					res.Files++
				}
				mu.Unlock()
				rows.Add(n)
			}
		}(i)
	}

enqueue:
	for _, path := range paths {
		select {
		case <-ctx.Done():
			break enqueue
		case jobs <- path:
		}
	}
	close(jobs)
	wg.Wait()

	res.Rows = rows.Load()
	if firstErr == nil {
		firstErr = ctx.Err()
	}
	return res, firstErr
}

func (l *Loader) loadFile(ctx context.Context, path string) (int64, []*RowError, error) {
	start := time.Now()
	records, rejected, err := ReadFile(path)
	if err != nil {
		return 0, nil, err
	}
	for _, r := range rejected {
		log.Warn().Err(r.Err).Str("file", r.File).Int("line", r.Line).Msg("skipping row")
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, rejected, fmt.Errorf("could not begin transaction: %w", err)
	}
	for _, batch := range Batches(records, l.batchSize) {
		query, args := insertStatement(batch)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			_ = tx.Rollback()
			return 0, rejected, fmt.Errorf("insert into %s from %s: %w", Table, path, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, rejected, fmt.Errorf("could not commit transaction: %w", err)
	}

	log.Info().
		Str("file", path).
		Int("rows", len(records)).
		Int("rejected", len(rejected)).
		Dur("elapsed", time.Since(start)).
		Msg("file loaded")
	return int64(len(records)), rejected, nil
}

// Batches splits records into consecutive chunks of at most size.
func Batches(records []Record, size int) [][]Record {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var out [][]Record
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		out = append(out, records[start:end])
	}
	return out
}

func insertStatement(batch []Record) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(Table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(") VALUES ")

	args := make([]interface{}, 0, len(batch)*len(columns))
	for i, r := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * len(columns)
		sb.WriteString("(")
		for j := range columns {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", base+j+1)
		}
		sb.WriteString(")")
		args = append(args, r.BillDate.String(), r.Store, nullIfEmpty(r.ShopType), nullIfEmpty(r.TranType),
			r.BillNumber, r.NetAmount, r.Qty)
	}
	return sb.String(), args
}

// nullIfEmpty returns NULL if the string is empty, otherwise returns the string
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
