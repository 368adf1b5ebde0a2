package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	e "github.com/eximware/erp-data-api/errors"
	"github.com/eximware/erp-data-api/schema"
	"github.com/eximware/erp-data-api/types"
)

func customerEntity(t *testing.T) *schema.Entity {
	entity, err := schema.DefaultRegistry().Entity("Customer")
	assert.NoError(t, err)
	return entity
}

func TestAssembleEmptyFilter(t *testing.T) {
	plan, err := Assemble(customerEntity(t), nil, "", 0, 20, 10000)
	assert.NoError(t, err)
	assert.Contains(t, plan.Statement, "FROM `tabCustomer` WHERE 1=1 ORDER BY `modified` DESC LIMIT ?")
	assert.Equal(t, []interface{}{20}, plan.Args)
	assert.Equal(t, 20, plan.Limit)
}

func TestAssembleRendersPositionalArgs(t *testing.T) {
	conditions := []types.CompiledCondition{
		{
			Fragment: "`territory` = :territory",
			Params:   []types.BoundParam{{Name: "territory", Value: "India"}},
		},
		{
			Fragment: "`creation` >= :creation_from AND `creation` < :creation_to",
			Params: []types.BoundParam{
				{Name: "creation_from", Value: "2025-08-25 00:00:00"},
				{Name: "creation_to", Value: "2025-08-26 00:00:00"},
			},
		},
	}

	plan, err := Assemble(customerEntity(t), conditions, "", 5, 20, 10000)
	assert.NoError(t, err)
	assert.Contains(t, plan.Statement,
		"WHERE `territory` = ? AND `creation` >= ? AND `creation` < ? ORDER BY `modified` DESC LIMIT ?")
	assert.Equal(t, []interface{}{"India", "2025-08-25 00:00:00", "2025-08-26 00:00:00", 5}, plan.Args)
}

func TestAssembleStatementHoldsNoLiterals(t *testing.T) {
	conditions := []types.CompiledCondition{
		{
			Fragment: "`customer_name` LIKE :customer_name_like",
			Params:   []types.BoundParam{{Name: "customer_name_like", Value: "%'; DROP TABLE tabCustomer;--%"}},
		},
	}

	plan, err := Assemble(customerEntity(t), conditions, "", 0, 20, 10000)
	assert.NoError(t, err)
	assert.NotContains(t, plan.Statement, "DROP TABLE")
	assert.NotContains(t, plan.Statement, ":customer_name_like")
	assert.Equal(t, "%'; DROP TABLE tabCustomer;--%", plan.Args[0])
}

func TestAssembleOrderByValidation(t *testing.T) {
	entity := customerEntity(t)

	items := []struct {
		orderBy  string
		expected string
	}{
		{"", "`modified` DESC"},
		{"customer_name", "`customer_name` ASC"},
		{"customer_name asc", "`customer_name` ASC"},
		{"creation DESC", "`creation` DESC"},
	}

	for _, item := range items {
		plan, err := Assemble(entity, nil, item.orderBy, 0, 20, 10000)
		assert.NoError(t, err, "orderBy %q", item.orderBy)
		assert.Equal(t, item.expected, plan.OrderBy, "orderBy %q", item.orderBy)
	}
}

func TestAssembleRejectsBadOrderBy(t *testing.T) {
	entity := customerEntity(t)

	for _, orderBy := range []string{
		"no_such_column",
		"customer_name SIDEWAYS",
		"customer_name; DROP TABLE tabCustomer",
		"customer_name DESC extra",
	} {
		_, err := Assemble(entity, nil, orderBy, 0, 20, 10000)
		assert.Error(t, err, "orderBy %q", orderBy)
		assert.IsType(t, &e.InvalidOrderByError{}, err, "orderBy %q", orderBy)
	}
}

func TestAssembleClampsLimit(t *testing.T) {
	entity := customerEntity(t)

	items := []struct {
		limit    int
		expected int
	}{
		{0, 20},
		{-3, 20},
		{7, 7},
		{10000, 10000},
		{250000, 10000},
	}

	for _, item := range items {
		plan, err := Assemble(entity, nil, "", item.limit, 20, 10000)
		assert.NoError(t, err, "limit %d", item.limit)
		assert.Equal(t, item.expected, plan.Limit, "limit %d", item.limit)
		assert.Equal(t, item.expected, plan.Args[len(plan.Args)-1], "limit %d", item.limit)
	}
}

func TestAssembleProjectsDeclaredColumns(t *testing.T) {
	entity := customerEntity(t)

	plan, err := Assemble(entity, nil, "", 0, 20, 10000)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(plan.Statement, "SELECT `name`, `customer_name`"))
	assert.NotContains(t, plan.Statement, "SELECT *")
}

func TestAssembleRejectsCompilerMismatches(t *testing.T) {
	entity := customerEntity(t)

	// Unbound token in the fragment
	_, err := Assemble(entity, []types.CompiledCondition{
		{Fragment: "`territory` = :territory"},
	}, "", 0, 20, 10000)
	assert.Error(t, err)
	assert.IsType(t, &e.InternalError{}, err)

	// Parameter never referenced by any fragment
	_, err = Assemble(entity, []types.CompiledCondition{
		{
			Fragment: "`territory` IS NULL",
			Params:   []types.BoundParam{{Name: "territory", Value: "India"}},
		},
	}, "", 0, 20, 10000)
	assert.Error(t, err)
	assert.IsType(t, &e.InternalError{}, err)

	// Same parameter bound twice
	_, err = Assemble(entity, []types.CompiledCondition{
		{
			Fragment: "`territory` = :territory",
			Params:   []types.BoundParam{{Name: "territory", Value: "India"}},
		},
		{
			Fragment: "`customer_group` = :territory",
			Params:   []types.BoundParam{{Name: "territory", Value: "Commercial"}},
		},
	}, "", 0, 20, 10000)
	assert.Error(t, err)
	assert.IsType(t, &e.InternalError{}, err)
}
