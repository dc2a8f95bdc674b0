package service

import (
	"context"
	"time"

	"github.com/Shivarajkushals/Dashboard/internal/cache"
	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/Shivarajkushals/Dashboard/internal/metrics"
	"github.com/Shivarajkushals/Dashboard/internal/repository"
	"github.com/rs/zerolog/log"
)

type SalesService struct {
	repo    repository.SalesRepository
	cache   cache.SalesCache
	metrics *metrics.Recorder
}

func NewSalesService(repo repository.SalesRepository, cacheImpl cache.SalesCache, rec *metrics.Recorder) *SalesService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSalesCache()
	}
	return &SalesService{repo: repo, cache: cacheImpl, metrics: rec}
}

func (s *SalesService) StoreSummary(ctx context.Context, f domain.FilterSet) ([]domain.SummaryRow, error) {
	return cached(ctx, s, cache.KindStoreSummary, cache.SummaryKey(cache.KindStoreSummary, f), s.cache.SummaryTTL(),
		func(ctx context.Context) ([]domain.SummaryRow, error) {
			rows, err := s.repo.StoreDailySales(ctx, f)
			if err != nil {
				return nil, err
			}
			return AggregateStores(rows, f), nil
		})
}

func (s *SalesService) ShopTypeSummary(ctx context.Context, f domain.FilterSet) ([]domain.SummaryRow, error) {
	return cached(ctx, s, cache.KindShopTypeSummary, cache.SummaryKey(cache.KindShopTypeSummary, f), s.cache.SummaryTTL(),
		func(ctx context.Context) ([]domain.SummaryRow, error) {
			rows, err := s.repo.ShopTypeDailySales(ctx, f)
			if err != nil {
				return nil, err
			}
			return AggregateShopTypes(rows, f), nil
		})
}

func (s *SalesService) MonthOnMonth(ctx context.Context, f domain.FilterSet) (*domain.MonthOnMonthReport, error) {
	return cached(ctx, s, cache.KindMonthOnMonth, cache.SummaryKey(cache.KindMonthOnMonth, f), s.cache.SummaryTTL(),
		func(ctx context.Context) (*domain.MonthOnMonthReport, error) {
			cells, err := s.repo.MonthlyStoreSales(ctx, f)
			if err != nil {
				return nil, err
			}
			return domain.NewMonthOnMonthReport(cells), nil
		})
}

func (s *SalesService) Stores(ctx context.Context) ([]domain.StoreOption, error) {
	return cached(ctx, s, cache.KindStoreList, cache.ListKey(cache.KindStoreList), s.cache.ListTTL(), s.repo.ListStores)
}

func (s *SalesService) ShopTypes(ctx context.Context) ([]domain.ShopTypeOption, error) {
	return cached(ctx, s, cache.KindShopTypeList, cache.ListKey(cache.KindShopTypeList), s.cache.ListTTL(), s.repo.ListShopTypes)
}

func (s *SalesService) TranTypes(ctx context.Context) ([]domain.TranTypeOption, error) {
	return cached(ctx, s, cache.KindTranTypeList, cache.ListKey(cache.KindTranTypeList), s.cache.ListTTL(), s.repo.ListTranTypes)
}

// cached serves kind from the cache when possible and falls back to load.
// Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, s *SalesService, kind, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var hit T
	if ok, err := s.cache.Get(ctx, key, &hit); err == nil && ok {
		s.metrics.CacheHit(kind)
		return hit, nil
	} else if err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("sales: cache get failed")
	}
	s.metrics.CacheMiss(kind)

	start := time.Now()
	value, err := load(ctx)
	s.metrics.ObserveQuery(kind, time.Since(start))
	if err != nil {
		var zero T
		return zero, err
	}

	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("sales: cache set failed")
	}
	return value, nil
}
