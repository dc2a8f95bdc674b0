package postgres

import (
	"testing"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildSalesFilterClause(t *testing.T) {
	clause, args := buildSalesFilterClause(domain.FilterSet{}, 3)
	assert.Empty(t, clause)
	assert.Nil(t, args)

	clause, args = buildSalesFilterClause(domain.FilterSet{Store: "A", TranType: "Sale"}, 5)
	assert.Equal(t, " AND store_full_name = $5 AND tran_type = $6", clause)
	assert.Equal(t, []interface{}{"A", "Sale"}, args)

	clause, args = buildSalesFilterClause(domain.FilterSet{Store: "A", ShopType: "Online", TranType: "Sale"}, 1)
	assert.Equal(t, " AND store_full_name = $1 AND shop_type = $2 AND tran_type = $3", clause)
	assert.Len(t, args, 3)
}

func TestBuildPeriodClause(t *testing.T) {
	f := domain.FilterSet{FromDate: domain.NewDate(2025, 3, 1), ToDate: domain.NewDate(2025, 3, 31)}

	clause, args := buildPeriodClause(f, false)
	assert.Equal(t, "bill_date BETWEEN $1 AND $2", clause)
	assert.Equal(t, []interface{}{"2025-03-01", "2025-03-31"}, args)

	clause, args = buildPeriodClause(f, true)
	assert.Equal(t, "(bill_date BETWEEN $1 AND $2 OR bill_date BETWEEN $3 AND $4)", clause)
	assert.Equal(t, []interface{}{"2025-03-01", "2025-03-31", "2024-03-01", "2024-03-31"}, args)
}
