package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/Shivarajkushals/Dashboard/internal/repository"
	"github.com/rs/zerolog/log"
)

const salesTable = "tbl_sales_daily_summary"

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) repository.SalesRepository {
	return &salesRepository{db: db}
}

type dailyRow struct {
	Store        string    `db:"store"`
	ShopType     string    `db:"shop_type"`
	BillDate     time.Time `db:"bill_date"`
	Sales        float64   `db:"sales"`
	Qty          float64   `db:"qty"`
	Bills        int64     `db:"bills"`
	OnlineSales  float64   `db:"online_sales"`
	OfflineSales float64   `db:"offline_sales"`
}

func (r dailyRow) toDomain() domain.DailySales {
	return domain.DailySales{
		Store:        r.Store,
		ShopType:     r.ShopType,
		BillDate:     domain.DateOf(r.BillDate),
		Sales:        r.Sales,
		Qty:          r.Qty,
		Bills:        r.Bills,
		OnlineSales:  r.OnlineSales,
		OfflineSales: r.OfflineSales,
	}
}

func (r *salesRepository) StoreDailySales(ctx context.Context, f domain.FilterSet) ([]domain.DailySales, error) {
	period, args := buildPeriodClause(f, true)
	filterClause, filterArgs := buildSalesFilterClause(f, len(args)+1)
	args = append(args, filterArgs...)

	query := fmt.Sprintf(`
		SELECT
			store_full_name AS store,
			'' AS shop_type,
			bill_date,
			COALESCE(SUM(item_net_amount), 0) AS sales,
			COALESCE(SUM(sold_qty), 0) AS qty,
			COUNT(DISTINCT bill_number) AS bills,
			COALESCE(SUM(CASE WHEN shop_type <> 'Offline' AND shop_type IS NOT NULL THEN item_net_amount ELSE 0 END), 0) AS online_sales,
			COALESCE(SUM(CASE WHEN shop_type = 'Offline' THEN item_net_amount ELSE 0 END), 0) AS offline_sales
		FROM %s
		WHERE %s%s
		GROUP BY store_full_name, bill_date`, salesTable, period, filterClause)

	return r.selectDaily(ctx, "store_summary", query, args)
}

func (r *salesRepository) ShopTypeDailySales(ctx context.Context, f domain.FilterSet) ([]domain.DailySales, error) {
	period, args := buildPeriodClause(f, true)
	filterClause, filterArgs := buildSalesFilterClause(f, len(args)+1)
	args = append(args, filterArgs...)

	query := fmt.Sprintf(`
		SELECT
			store_full_name AS store,
			COALESCE(shop_type, 'Unknown') AS shop_type,
			bill_date,
			COALESCE(SUM(item_net_amount), 0) AS sales,
			COALESCE(SUM(sold_qty), 0) AS qty,
			COUNT(DISTINCT bill_number) AS bills,
			0::float8 AS online_sales,
			0::float8 AS offline_sales
		FROM %s
		WHERE %s%s
		GROUP BY shop_type, bill_date, store_full_name`, salesTable, period, filterClause)

	return r.selectDaily(ctx, "shop_type_summary", query, args)
}

func (r *salesRepository) selectDaily(ctx context.Context, kind, query string, args []interface{}) ([]domain.DailySales, error) {
	start := time.Now()
	var rows []dailyRow
	if err := r.db.selectLimited(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s query: %w", kind, err)
	}
	log.Debug().
		Str("kind", kind).
		Int("rows", len(rows)).
		Dur("query_time", time.Since(start)).
		Msg("sales query finished")

	out := make([]domain.DailySales, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *salesRepository) MonthlyStoreSales(ctx context.Context, f domain.FilterSet) ([]domain.MonthCell, error) {
	period, args := buildPeriodClause(f, false)
	filterClause, filterArgs := buildSalesFilterClause(f, len(args)+1)
	args = append(args, filterArgs...)

	query := fmt.Sprintf(`
		SELECT
			store_full_name AS store,
			to_char(bill_date, 'YYYY-MM') AS month,
			COALESCE(SUM(item_net_amount), 0) AS total_sales,
			COALESCE(SUM(sold_qty), 0) AS total_qty
		FROM %s
		WHERE %s%s
		GROUP BY store_full_name, to_char(bill_date, 'YYYY-MM')
		ORDER BY store_full_name, month`, salesTable, period, filterClause)

	start := time.Now()
	var cells []domain.MonthCell
	if err := r.db.selectLimited(ctx, &cells, query, args...); err != nil {
		return nil, fmt.Errorf("month_on_month query: %w", err)
	}
	log.Debug().
		Int("rows", len(cells)).
		Dur("query_time", time.Since(start)).
		Msg("month-on-month query finished")
	return cells, nil
}

func (r *salesRepository) ListStores(ctx context.Context) ([]domain.StoreOption, error) {
	var out []domain.StoreOption
	query := fmt.Sprintf(`SELECT DISTINCT store_full_name AS store FROM %s WHERE store_full_name IS NOT NULL ORDER BY store`, salesTable)
	if err := r.db.selectLimited(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("store list query: %w", err)
	}
	return out, nil
}

func (r *salesRepository) ListShopTypes(ctx context.Context) ([]domain.ShopTypeOption, error) {
	var out []domain.ShopTypeOption
	query := fmt.Sprintf(`SELECT DISTINCT shop_type FROM %s WHERE shop_type IS NOT NULL ORDER BY shop_type`, salesTable)
	if err := r.db.selectLimited(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("shop type list query: %w", err)
	}
	return out, nil
}

func (r *salesRepository) ListTranTypes(ctx context.Context) ([]domain.TranTypeOption, error) {
	var out []domain.TranTypeOption
	query := fmt.Sprintf(`SELECT DISTINCT tran_type FROM %s WHERE tran_type IS NOT NULL ORDER BY tran_type`, salesTable)
	if err := r.db.selectLimited(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("tran type list query: %w", err)
	}
	return out, nil
}
