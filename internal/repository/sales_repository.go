package repository

import (
	"context"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
)

// SalesRepository reads aggregates from the daily sales summary table.
type SalesRepository interface {
	// StoreDailySales returns per store and day aggregates covering both the
	// filter range and the same range one year earlier.
	StoreDailySales(ctx context.Context, f domain.FilterSet) ([]domain.DailySales, error)
	// ShopTypeDailySales returns per shop type, store and day aggregates
	// covering both periods. NULL shop types are reported as "Unknown".
	ShopTypeDailySales(ctx context.Context, f domain.FilterSet) ([]domain.DailySales, error)
	// MonthlyStoreSales returns sparse store x month totals for the filter
	// range only.
	MonthlyStoreSales(ctx context.Context, f domain.FilterSet) ([]domain.MonthCell, error)

	ListStores(ctx context.Context) ([]domain.StoreOption, error)
	ListShopTypes(ctx context.Context) ([]domain.ShopTypeOption, error)
	ListTranTypes(ctx context.Context) ([]domain.TranTypeOption, error)
}
