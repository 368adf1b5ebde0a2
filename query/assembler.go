package query

import (
	"fmt"
	"regexp"
	"strings"

	e "github.com/eximware/erp-data-api/errors"
	"github.com/eximware/erp-data-api/schema"
	"github.com/eximware/erp-data-api/types"
)

const defaultOrderBy = "`modified` DESC"

var paramTokenExpr = regexp.MustCompile(`:[A-Za-z0-9_]+`)

// Assemble joins compiled conditions into the final parameterized statement.
// Column names reaching the statement text come exclusively from the entity
// catalog: the projection is the declared column list, order-by is checked
// against it, and predicates were built from resolved descriptors. Values
// travel only as bound parameters; the limit is bound too, clamped to
// [1, maxLimit].
func Assemble(entity *schema.Entity, conditions []types.CompiledCondition, orderBy string, limit int, defaultLimit int, maxLimit int) (*types.QueryPlan, error) {
	orderClause, err := buildOrderBy(entity, orderBy)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	whereClause := "1=1"
	if len(conditions) > 0 {
		fragments := make([]string, 0, len(conditions))
		for _, condition := range conditions {
			fragments = append(fragments, condition.Fragment)
		}
		whereClause = strings.Join(fragments, " AND ")
	}

	rendered, args, err := renderParams(whereClause, conditions)
	if err != nil {
		return nil, err
	}

	columns := make([]string, 0, len(entity.Columns))
	for _, column := range entity.Columns {
		columns = append(columns, "`"+column+"`")
	}

	statement := fmt.Sprintf("SELECT %s FROM `%s` WHERE %s ORDER BY %s LIMIT ?",
		strings.Join(columns, ", "), entity.Table, rendered, orderClause)
	args = append(args, limit)

	return &types.QueryPlan{
		Entity:     entity.Name,
		Table:      entity.Table,
		Columns:    entity.Columns,
		Conditions: conditions,
		OrderBy:    orderClause,
		Limit:      limit,
		Statement:  statement,
		Args:       args,
	}, nil
}

// renderParams rewrites ":name" tokens to positional placeholders and
// produces the argument list in token order. Every token must map to
// exactly one bound parameter and every parameter must be referenced once;
// a mismatch means a compiler bug, not caller error.
func renderParams(clause string, conditions []types.CompiledCondition) (string, []interface{}, error) {
	values := make(map[string]interface{})
	for _, condition := range conditions {
		for _, param := range condition.Params {
			if _, duplicate := values[param.Name]; duplicate {
				return "", nil, e.NewInternalError(fmt.Sprintf("duplicate bound parameter '%s'", param.Name))
			}
			values[param.Name] = param.Value
		}
	}

	var args []interface{}
	used := make(map[string]bool, len(values))
	var renderErr error

	rendered := paramTokenExpr.ReplaceAllStringFunc(clause, func(token string) string {
		name := token[1:]
		value, found := values[name]
		if !found {
			renderErr = e.NewInternalError(fmt.Sprintf("fragment references unbound parameter '%s'", name))
			return token
		}
		if used[name] {
			renderErr = e.NewInternalError(fmt.Sprintf("parameter '%s' referenced more than once", name))
			return token
		}
		used[name] = true
		args = append(args, value)
		return "?"
	})

	if renderErr != nil {
		return "", nil, renderErr
	}
	if len(used) != len(values) {
		return "", nil, e.NewInternalError("condition binds parameters missing from its fragment")
	}

	return rendered, args, nil
}

func buildOrderBy(entity *schema.Entity, orderBy string) (string, error) {
	if strings.TrimSpace(orderBy) == "" {
		return defaultOrderBy, nil
	}

	parts := strings.Fields(orderBy)
	if len(parts) > 2 {
		return "", e.NewInvalidOrderByError(orderBy)
	}

	column := strings.TrimSpace(parts[0])
	if !entity.HasColumn(column) {
		return "", e.NewInvalidOrderByError(orderBy)
	}

	direction := "ASC"
	if len(parts) == 2 {
		switch strings.ToUpper(parts[1]) {
		case "ASC":
			direction = "ASC"
		case "DESC":
			direction = "DESC"
		default:
			return "", e.NewInvalidOrderByError(orderBy)
		}
	}

	return "`" + column + "` " + direction, nil
}
