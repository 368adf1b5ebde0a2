package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	e "github.com/eximware/erp-data-api/errors"
	"github.com/eximware/erp-data-api/schema"
	"github.com/eximware/erp-data-api/types"
)

// Operator is the closed set of filter operator symbols. Dispatch is by
// exhaustive match; anything outside the set is rejected up front.
type Operator string

const (
	OpLike      Operator = "$like"
	OpIsNull    Operator = "$is_null"
	OpIsNotNull Operator = "$is_not_null"
	OpGte       Operator = "$gte"
	OpLte       Operator = "$lte"
	OpIn        Operator = "$in"
)

func ParseOperator(symbol string) (Operator, error) {
	switch op := Operator(symbol); op {
	case OpLike, OpIsNull, OpIsNotNull, OpGte, OpLte, OpIn:
		return op, nil
	}
	return "", e.NewUnknownOperatorError(symbol)
}

// Compiler turns one (field, value-or-operator-map) pair into predicate
// fragments with bound parameters. The clock is injectable so date
// normalization is testable against a fixed instant.
type Compiler struct {
	now func() time.Time
}

func NewCompiler() *Compiler {
	return &Compiler{now: time.Now}
}

func (c *Compiler) WithClock(now func() time.Time) *Compiler {
	c.now = now
	return c
}

// Compile emits the conditions for a single resolved field. A bare scalar
// means equality; a map selects operators. Parameter names derive from the
// field name plus an operator suffix, which keeps them unique within a plan
// because a field key appears at most once in a FilterSpec.
func (c *Compiler) Compile(field schema.FieldDescriptor, value interface{}) ([]types.CompiledCondition, error) {
	if operators, ok := value.(map[string]interface{}); ok {
		return c.compileOperators(field, operators)
	}
	return c.compileEquality(field, value)
}

func (c *Compiler) compileEquality(field schema.FieldDescriptor, value interface{}) ([]types.CompiledCondition, error) {
	// A nil or empty equality value expresses no constraint; use $is_null
	// to match unset fields.
	if value == nil || value == "" {
		return nil, nil
	}

	column := quoteColumn(field.Name)

	switch field.Kind {
	case schema.FieldDateOnly:
		span, err := ResolveDateSpan(value, c.now())
		if err != nil {
			return nil, err
		}
		if span.SingleDay() {
			return []types.CompiledCondition{{
				Fragment: fmt.Sprintf("DATE(%s) = DATE(:%s)", column, field.Name),
				Params:   []types.BoundParam{{Name: field.Name, Value: span.StartDate()}},
			}}, nil
		}
		return []types.CompiledCondition{{
			Fragment: fmt.Sprintf("DATE(%s) >= DATE(:%s_from) AND DATE(%s) <= DATE(:%s_to)",
				column, field.Name, column, field.Name),
			Params: []types.BoundParam{
				{Name: field.Name + "_from", Value: span.StartDate()},
				{Name: field.Name + "_to", Value: span.LastDate()},
			},
		}}, nil

	case schema.FieldDateTime:
		// A timestamp column holds time-of-day, so a point equality against
		// a day-granular value would spuriously match nothing. Expand to the
		// half-open range [start, nextStart).
		span, err := ResolveDateSpan(value, c.now())
		if err != nil {
			return nil, err
		}
		return []types.CompiledCondition{{
			Fragment: fmt.Sprintf("%s >= :%s_from AND %s < :%s_to", column, field.Name, column, field.Name),
			Params: []types.BoundParam{
				{Name: field.Name + "_from", Value: span.StartTimestamp()},
				{Name: field.Name + "_to", Value: span.EndTimestamp()},
			},
		}}, nil
	}

	return []types.CompiledCondition{{
		Fragment: fmt.Sprintf("%s = :%s", column, field.Name),
		Params:   []types.BoundParam{{Name: field.Name, Value: value}},
	}}, nil
}

func (c *Compiler) compileOperators(field schema.FieldDescriptor, operators map[string]interface{}) ([]types.CompiledCondition, error) {
	// Sorted for a deterministic fragment order regardless of map iteration.
	symbols := make([]string, 0, len(operators))
	for symbol := range operators {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	conditions := make([]types.CompiledCondition, 0, len(symbols))
	for _, symbol := range symbols {
		op, err := ParseOperator(symbol)
		if err != nil {
			return nil, err
		}
		condition, err := c.compileOperator(field, op, operators[symbol])
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, condition)
	}
	return conditions, nil
}

func (c *Compiler) compileOperator(field schema.FieldDescriptor, op Operator, operand interface{}) (types.CompiledCondition, error) {
	column := quoteColumn(field.Name)

	switch op {
	case OpLike:
		// The operand arrives pre-wildcarded by the caller, e.g. "%text%".
		return types.CompiledCondition{
			Fragment: fmt.Sprintf("%s LIKE :%s_like", column, field.Name),
			Params:   []types.BoundParam{{Name: field.Name + "_like", Value: operand}},
		}, nil

	case OpIsNull:
		// NULL, empty string and the literal 'Not Set' are all "unset" by
		// domain convention.
		return types.CompiledCondition{
			Fragment: fmt.Sprintf("(%s IS NULL OR %s = '' OR %s = 'Not Set')", column, column, column),
		}, nil

	case OpIsNotNull:
		return types.CompiledCondition{
			Fragment: fmt.Sprintf("(%s IS NOT NULL AND %s != '' AND %s != 'Not Set')", column, column, column),
		}, nil

	case OpGte:
		return c.compileBound(field, operand, field.Name+"_gte", ">=", false)

	case OpLte:
		return c.compileBound(field, operand, field.Name+"_lte", "<=", true)

	case OpIn:
		return c.compileIn(field, operand)
	}

	return types.CompiledCondition{}, e.NewUnknownOperatorError(string(op))
}

// compileBound emits a range bound. Date-only columns are compared with
// both sides truncated; timestamp columns compare the full value. For the
// upper bound of a timestamp column the comparison is half-open against the
// span end, so "$lte: yesterday" covers the whole of yesterday.
func (c *Compiler) compileBound(field schema.FieldDescriptor, operand interface{}, paramName string, cmp string, upper bool) (types.CompiledCondition, error) {
	column := quoteColumn(field.Name)

	switch field.Kind {
	case schema.FieldDateOnly:
		span, err := ResolveDateSpan(operand, c.now())
		if err != nil {
			return types.CompiledCondition{}, err
		}
		value := span.StartDate()
		if upper {
			value = span.LastDate()
		}
		return types.CompiledCondition{
			Fragment: fmt.Sprintf("DATE(%s) %s DATE(:%s)", column, cmp, paramName),
			Params:   []types.BoundParam{{Name: paramName, Value: value}},
		}, nil

	case schema.FieldDateTime:
		span, err := ResolveDateSpan(operand, c.now())
		if err != nil {
			return types.CompiledCondition{}, err
		}
		if upper {
			return types.CompiledCondition{
				Fragment: fmt.Sprintf("%s < :%s", column, paramName),
				Params:   []types.BoundParam{{Name: paramName, Value: span.EndTimestamp()}},
			}, nil
		}
		return types.CompiledCondition{
			Fragment: fmt.Sprintf("%s >= :%s", column, paramName),
			Params:   []types.BoundParam{{Name: paramName, Value: span.StartTimestamp()}},
		}, nil
	}

	return types.CompiledCondition{
		Fragment: fmt.Sprintf("%s %s :%s", column, cmp, paramName),
		Params:   []types.BoundParam{{Name: paramName, Value: operand}},
	}, nil
}

func (c *Compiler) compileIn(field schema.FieldDescriptor, operand interface{}) (types.CompiledCondition, error) {
	elements, ok := operand.([]interface{})
	if !ok {
		return types.CompiledCondition{}, e.NewInvalidOperandError(string(OpIn), field.Name, "a list is required")
	}
	if len(elements) == 0 {
		return types.CompiledCondition{}, e.NewInvalidOperandError(string(OpIn), field.Name, "the list must not be empty")
	}

	column := quoteColumn(field.Name)
	dateField := field.Kind != schema.FieldPlain

	params := make([]types.BoundParam, 0, len(elements))
	placeholders := make([]string, 0, len(elements))

	for i, element := range elements {
		name := fmt.Sprintf("%s_in_%d", field.Name, i)
		value := element
		if dateField {
			span, err := ResolveDateSpan(element, c.now())
			if err != nil {
				return types.CompiledCondition{}, err
			}
			value = span.StartDate()
		}
		params = append(params, types.BoundParam{Name: name, Value: value})
		if dateField {
			placeholders = append(placeholders, fmt.Sprintf("DATE(:%s)", name))
		} else {
			placeholders = append(placeholders, ":"+name)
		}
	}

	fragment := fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", "))
	if dateField {
		fragment = fmt.Sprintf("DATE(%s) IN (%s)", column, strings.Join(placeholders, ", "))
	}

	return types.CompiledCondition{Fragment: fragment, Params: params}, nil
}

func quoteColumn(name string) string {
	return "`" + name + "`"
}
