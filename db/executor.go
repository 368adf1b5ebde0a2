package db

import (
	"context"
	"time"

	e "github.com/eximware/erp-data-api/errors"
	"github.com/eximware/erp-data-api/types"
)

// maxSampleNames is the largest result set for which Count attaches the
// matching record identifiers.
const maxSampleNames = 5

// Search executes an assembled plan and returns the matching rows together
// with the filter that produced them.
func (db *Db) Search(ctx context.Context, plan *types.QueryPlan, filter types.FilterSpec) (*types.SearchResult, error) {
	rows, err := db.queryRows(ctx, plan.Statement, plan.Args)
	if err != nil {
		return nil, err
	}

	db.logger.Debug("search executed", "entity", plan.Entity, "rows", len(rows))

	return &types.SearchResult{
		Rows:           rows,
		Count:          len(rows),
		AppliedFilters: filter,
	}, nil
}

// Count executes a plan assembled at the store's maximum limit and reports
// how many records matched. With includeSamples set, small result sets
// (up to maxSampleNames) carry the record identifiers, and a single match
// carries the full record.
func (db *Db) Count(ctx context.Context, plan *types.QueryPlan, includeSamples bool) (*types.CountResult, error) {
	rows, err := db.queryRows(ctx, plan.Statement, plan.Args)
	if err != nil {
		return nil, err
	}

	result := &types.CountResult{TotalCount: len(rows)}
	if !includeSamples {
		return result, nil
	}

	if len(rows) > 0 && len(rows) <= maxSampleNames {
		for _, row := range rows {
			if name, ok := row["name"].(string); ok {
				result.SampleNames = append(result.SampleNames, name)
			}
		}
	}
	if len(rows) == 1 {
		result.FirstRecord = rows[0]
	}

	return result, nil
}

func (db *Db) queryRows(ctx context.Context, statement string, args []interface{}) ([]map[string]interface{}, error) {
	rows, err := db.conn.QueryContext(ctx, statement, args...)
	if err != nil {
		db.logger.Error("record store query failed", "error", err)
		return nil, e.NewStoreExecutionError("record store query failed", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, e.NewStoreExecutionError("failed to read result columns", err)
	}

	items := make([]map[string]interface{}, 0)

	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, e.NewStoreExecutionError("failed to scan result row", err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, column := range columns {
			row[column] = normalizeValue(values[i])
		}
		items = append(items, row)
	}

	if err := rows.Err(); err != nil {
		return nil, e.NewStoreExecutionError("result iteration failed", err)
	}

	return items, nil
}

// normalizeValue makes driver values JSON-friendly: the MySQL driver hands
// text columns back as []byte, and timestamps as time.Time when parseTime
// is on.
func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	}
	return value
}
