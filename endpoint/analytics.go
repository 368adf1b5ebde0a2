package endpoint

import (
	"context"
	"time"

	e "github.com/eximware/erp-data-api/errors"
	"github.com/eximware/erp-data-api/query"
)

const defaultAnalyticsWindow = "this month"
const defaultAnalyticsLimit = 10
const defaultOrdersByItemLimit = 100

// AnalyticsOptions selects the reporting window and, where it applies, the
// number of ranked rows. From and To accept the same date vocabulary the
// filter engine does ("this month", "30 days ago", "01-08-2025").
type AnalyticsOptions struct {
	From  string `json:"from" mapstructure:"from"`
	To    string `json:"to" mapstructure:"to"`
	Limit int    `json:"limit" mapstructure:"limit"`

	// MinValue only applies to value-ranked reports
	MinValue float64 `json:"minValue" mapstructure:"minValue"`
}

// window resolves the options into a single span: the start of the From
// span through the end of the To span. An empty pair defaults to the
// current month.
func (o AnalyticsOptions) window(now time.Time) (query.DateSpan, error) {
	from := o.From
	to := o.To
	if from == "" && to == "" {
		from = defaultAnalyticsWindow
	}
	if to == "" {
		to = from
	}
	if from == "" {
		from = to
	}

	fromSpan, err := query.ResolveDateSpan(from, now)
	if err != nil {
		return query.DateSpan{}, err
	}
	toSpan, err := query.ResolveDateSpan(to, now)
	if err != nil {
		return query.DateSpan{}, err
	}

	window := query.DateSpan{Start: fromSpan.Start, End: toSpan.End}
	if window.End.Before(window.Start) {
		return query.DateSpan{}, e.NewInvalidDateRangeError(from, to)
	}
	return window, nil
}

func (o AnalyticsOptions) limit() int {
	if o.Limit <= 0 {
		return defaultAnalyticsLimit
	}
	return o.Limit
}

// TopCustomers ranks customers by summed order value in the window.
func (e *DataEndpoint) TopCustomers(ctx context.Context, options AnalyticsOptions) ([]map[string]interface{}, error) {
	window, err := options.window(time.Now())
	if err != nil {
		return nil, err
	}
	return e.store.TopCustomersByOrderValue(ctx, window, options.MinValue, options.limit())
}

// MostSoldItems ranks items by quantity sold in the window.
func (e *DataEndpoint) MostSoldItems(ctx context.Context, options AnalyticsOptions) ([]map[string]interface{}, error) {
	window, err := options.window(time.Now())
	if err != nil {
		return nil, err
	}
	return e.store.MostSoldItems(ctx, window, options.limit())
}

// OrdersByTerritory breaks order volume down by territory in the window.
func (e *DataEndpoint) OrdersByTerritory(ctx context.Context, options AnalyticsOptions) ([]map[string]interface{}, error) {
	window, err := options.window(time.Now())
	if err != nil {
		return nil, err
	}
	return e.store.OrdersByTerritory(ctx, window)
}

// TopCustomersByOrderCount ranks customers by number of orders placed in
// the window.
func (e *DataEndpoint) TopCustomersByOrderCount(ctx context.Context, options AnalyticsOptions) ([]map[string]interface{}, error) {
	window, err := options.window(time.Now())
	if err != nil {
		return nil, err
	}
	return e.store.TopCustomersByOrderCount(ctx, window, options.limit())
}

// OrdersByItem lists the most recent orders containing the given item.
func (e *DataEndpoint) OrdersByItem(ctx context.Context, itemCode string, limit int) ([]map[string]interface{}, error) {
	if limit <= 0 {
		limit = defaultOrdersByItemLimit
	}
	return e.store.OrdersByItem(ctx, itemCode, limit)
}

// DuplicateCustomers finds customer names registered more than once.
func (e *DataEndpoint) DuplicateCustomers(ctx context.Context) ([]map[string]interface{}, error) {
	return e.store.DuplicateCustomers(ctx)
}
