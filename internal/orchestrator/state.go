package orchestrator

import (
	"time"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
)

// Section scopes a fetch error to the part of the screen it affects.
type Section string

const (
	SectionStores       Section = "stores"
	SectionShopTypes    Section = "shop_types"
	SectionMonthOnMonth Section = "month_on_month"
	SectionStoreList    Section = "store_list"
	SectionShopTypeList Section = "shop_type_list"
	SectionTranTypeList Section = "tran_type_list"
)

// State is a point-in-time copy of everything fetched so far. Version grows
// with every change so consumers can drop out-of-order notifications.
type State struct {
	Version    uint64
	Generation uint64
	Filters    domain.FilterSet
	Loading    bool

	Stores       []domain.SummaryRow
	ShopTypes    []domain.SummaryRow
	MonthOnMonth *domain.MonthOnMonthReport

	StoreOptions     []domain.StoreOption
	ShopTypeOptions  []domain.ShopTypeOption
	TranTypeOptions  []domain.TranTypeOption
	ReferencesLoaded bool

	Errors    map[Section]error
	UpdatedAt time.Time
}

// Err returns the last error of a section, nil when it is healthy.
func (s State) Err(section Section) error {
	return s.Errors[section]
}

// HasData reports whether a section has ever been populated.
func (s State) HasData(section Section) bool {
	switch section {
	case SectionStores:
		return s.Stores != nil
	case SectionShopTypes:
		return s.ShopTypes != nil
	case SectionMonthOnMonth:
		return s.MonthOnMonth != nil
	case SectionStoreList:
		return s.StoreOptions != nil
	case SectionShopTypeList:
		return s.ShopTypeOptions != nil
	case SectionTranTypeList:
		return s.TranTypeOptions != nil
	}
	return false
}

// clone copies the error map; row slices are replaced wholesale on every
// publish and never mutated, so sharing them is safe.
func (s State) clone() State {
	out := s
	out.Errors = make(map[Section]error, len(s.Errors))
	for k, v := range s.Errors {
		out.Errors[k] = v
	}
	return out
}
