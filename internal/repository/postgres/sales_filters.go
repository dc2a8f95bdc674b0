package postgres

import (
	"fmt"
	"strings"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
)

// buildSalesFilterClause constructs the optional store, shop type and
// transaction type predicates, numbering placeholders from startIndex.
func buildSalesFilterClause(f domain.FilterSet, startIndex int) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)
	idx := startIndex

	add := func(column, value string) {
		if value == "" {
			return
		}
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}
	add("store_full_name", f.Store)
	add("shop_type", f.ShopType)
	add("tran_type", f.TranType)

	if len(clauses) == 0 {
		return "", nil
	}

	return " AND " + strings.Join(clauses, " AND "), args
}

// buildPeriodClause matches the filter range and, when withLastYear is set,
// the same range shifted back 365 days.
func buildPeriodClause(f domain.FilterSet, withLastYear bool) (string, []interface{}) {
	if !withLastYear {
		return "bill_date BETWEEN $1 AND $2", []interface{}{f.FromDate.String(), f.ToDate.String()}
	}
	ly := f.LastYear()
	return "(bill_date BETWEEN $1 AND $2 OR bill_date BETWEEN $3 AND $4)", []interface{}{
		f.FromDate.String(), f.ToDate.String(), ly.FromDate.String(), ly.ToDate.String(),
	}
}
