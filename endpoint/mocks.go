package endpoint

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/eximware/erp-data-api/query"
	"github.com/eximware/erp-data-api/types"
)

type RecordStoreMock struct {
	mock.Mock
}

func NewRecordStoreMock() *RecordStoreMock {
	return &RecordStoreMock{}
}

func (o *RecordStoreMock) Search(ctx context.Context, plan *types.QueryPlan, filter types.FilterSpec) (*types.SearchResult, error) {
	args := o.Called(plan, filter)
	return args.Get(0).(*types.SearchResult), args.Error(1)
}

func (o *RecordStoreMock) Count(ctx context.Context, plan *types.QueryPlan, includeSamples bool) (*types.CountResult, error) {
	args := o.Called(plan, includeSamples)
	return args.Get(0).(*types.CountResult), args.Error(1)
}

func (o *RecordStoreMock) TopCustomersByOrderValue(ctx context.Context, window query.DateSpan, minValue float64, limit int) ([]map[string]interface{}, error) {
	args := o.Called(window, minValue, limit)
	return args.Get(0).([]map[string]interface{}), args.Error(1)
}

func (o *RecordStoreMock) MostSoldItems(ctx context.Context, window query.DateSpan, limit int) ([]map[string]interface{}, error) {
	args := o.Called(window, limit)
	return args.Get(0).([]map[string]interface{}), args.Error(1)
}

func (o *RecordStoreMock) OrdersByTerritory(ctx context.Context, window query.DateSpan) ([]map[string]interface{}, error) {
	args := o.Called(window)
	return args.Get(0).([]map[string]interface{}), args.Error(1)
}

func (o *RecordStoreMock) TopCustomersByOrderCount(ctx context.Context, window query.DateSpan, limit int) ([]map[string]interface{}, error) {
	args := o.Called(window, limit)
	return args.Get(0).([]map[string]interface{}), args.Error(1)
}

func (o *RecordStoreMock) OrdersByItem(ctx context.Context, itemCode string, limit int) ([]map[string]interface{}, error) {
	args := o.Called(itemCode, limit)
	return args.Get(0).([]map[string]interface{}), args.Error(1)
}

func (o *RecordStoreMock) DuplicateCustomers(ctx context.Context) ([]map[string]interface{}, error) {
	args := o.Called()
	return args.Get(0).([]map[string]interface{}), args.Error(1)
}

func (o *RecordStoreMock) Close() error {
	args := o.Called()
	return args.Error(0)
}
