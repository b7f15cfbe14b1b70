package db

import (
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"aircon-admin/pkg/types"
)

// ApplyListParams adds filter, sort and pagination clauses. Only keys present in allowedMap
// (JSON name -> column) are honoured. Comma separated filter values become IN lists.
func ApplyListParams(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	builder = ApplyFilters(builder, filter, allowedMap)

	if len(filter.Sort) > 0 {
		// map order is random; sort keys so the generated SQL is stable
		fields := make([]string, 0, len(filter.Sort))
		for f := range filter.Sort {
			fields = append(fields, f)
		}
		sort.Strings(fields)

		for _, jsonField := range fields {
			dbCol, ok := allowedMap[jsonField]
			if !ok {
				continue
			}
			sqlDir := "ASC"
			if strings.ToLower(filter.Sort[jsonField]) == "desc" {
				sqlDir = "DESC"
			}
			builder = builder.OrderBy(fmt.Sprintf("%s %s", dbCol, sqlDir))
		}
	}

	if filter.WithPagination {
		if filter.Limit > 0 {
			builder = builder.Limit(uint64(filter.Limit))
		}
		if filter.Offset > 0 {
			builder = builder.Offset(uint64(filter.Offset))
		}
	}

	return builder
}

// ApplyFilters adds only the filter[...] conditions, for COUNT queries.
func ApplyFilters(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	fields := make([]string, 0, len(filter.Filter))
	for f := range filter.Filter {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, jsonField := range fields {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}
		val := filter.Filter[jsonField]
		if s, ok := val.(string); ok && strings.Contains(s, ",") {
			builder = builder.Where(sq.Eq{dbCol: strings.Split(s, ",")})
		} else {
			builder = builder.Where(sq.Eq{dbCol: val})
		}
	}
	return builder
}

// ApplySearch matches search case-insensitively against any of columns.
func ApplySearch(builder sq.SelectBuilder, search string, columns ...string) sq.SelectBuilder {
	if search == "" || len(columns) == 0 {
		return builder
	}
	pattern := "%" + search + "%"
	conditions := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		conditions = append(conditions, sq.ILike{col: pattern})
	}
	return builder.Where(conditions)
}
