package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/eximware/erp-data-api/endpoint"
	"github.com/eximware/erp-data-api/log"
	m "github.com/eximware/erp-data-api/rest/models"
	"github.com/eximware/erp-data-api/types"
)

func newTestServer(store endpoint.RecordStore) http.Handler {
	logger := log.NewZapLogger(zap.NewNop())
	cfg := endpoint.NewEndpointConfigWithLogger(logger, "127.0.0.1")
	dataEndpoint := cfg.NewEndpointWithStore(store)
	return NewRouter(Routes(dataEndpoint, logger))
}

func doRequest(t *testing.T, server http.Handler, method string, target string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		assert.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	request := httptest.NewRequest(method, target, &body)
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)
	return recorder
}

func TestSearchRoute(t *testing.T) {
	store := endpoint.NewRecordStoreMock()
	server := newTestServer(store)

	expected := &types.SearchResult{
		Rows:           []map[string]interface{}{{"name": "CUST-0001", "territory": "India"}},
		Count:          1,
		AppliedFilters: types.FilterSpec{"territory": "India"},
	}
	store.On("Search", mock.Anything, mock.Anything).Return(expected, nil)

	response := doRequest(t, server, http.MethodPost, "/v1/search/Customer", m.SearchRequest{
		Filters: types.FilterSpec{"territory": "India"},
		Options: map[string]interface{}{"limit": 5, "orderBy": "customer_name ASC"},
	})

	assert.Equal(t, http.StatusOK, response.Code)

	var result types.SearchResult
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "CUST-0001", result.Rows[0]["name"])

	plan := store.Calls[0].Arguments.Get(0).(*types.QueryPlan)
	assert.Equal(t, 5, plan.Limit)
	assert.Equal(t, "`customer_name` ASC", plan.OrderBy)
}

func TestSearchRouteUnknownField(t *testing.T) {
	store := endpoint.NewRecordStoreMock()
	server := newTestServer(store)

	response := doRequest(t, server, http.MethodPost, "/v1/search/Customer", m.SearchRequest{
		Filters: types.FilterSpec{"no_such_field": "x"},
	})

	assert.Equal(t, http.StatusBadRequest, response.Code)

	var modelError m.ModelError
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &modelError))
	assert.Contains(t, modelError.Description, "no_such_field")
	store.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearchRouteUnknownEntity(t *testing.T) {
	server := newTestServer(endpoint.NewRecordStoreMock())

	response := doRequest(t, server, http.MethodPost, "/v1/search/Warehouse", m.SearchRequest{})
	assert.Equal(t, http.StatusNotFound, response.Code)
}

func TestSearchRouteStoreFailure(t *testing.T) {
	store := endpoint.NewRecordStoreMock()
	server := newTestServer(store)

	store.On("Search", mock.Anything, mock.Anything).
		Return((*types.SearchResult)(nil), assert.AnError)

	response := doRequest(t, server, http.MethodPost, "/v1/search/Customer", m.SearchRequest{
		Filters: types.FilterSpec{"territory": "India"},
	})

	// Unclassified failures still come back as client errors, never as raw
	// driver text
	assert.NotEqual(t, http.StatusOK, response.Code)
	assert.NotContains(t, response.Body.String(), "sql")
}

func TestSearchRouteMalformedPayload(t *testing.T) {
	server := newTestServer(endpoint.NewRecordStoreMock())

	request := httptest.NewRequest(http.MethodPost, "/v1/search/Customer",
		bytes.NewBufferString("{not json"))
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCountRoute(t *testing.T) {
	store := endpoint.NewRecordStoreMock()
	server := newTestServer(store)

	store.On("Count", mock.Anything, true).Return(&types.CountResult{
		TotalCount:  3,
		SampleNames: []string{"SO-0001", "SO-0002", "SO-0003"},
	}, nil)

	response := doRequest(t, server, http.MethodPost, "/v1/count/sales-order", m.CountRequest{
		Filters: types.FilterSpec{"status": "To Deliver"},
	})

	assert.Equal(t, http.StatusOK, response.Code)

	var result types.CountResult
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &result))
	assert.Equal(t, 3, result.TotalCount)
	assert.Len(t, result.SampleNames, 3)
}

func TestEntitiesRoute(t *testing.T) {
	server := newTestServer(endpoint.NewRecordStoreMock())

	response := doRequest(t, server, http.MethodGet, "/v1/entities", nil)
	assert.Equal(t, http.StatusOK, response.Code)

	var names []string
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &names))
	assert.Contains(t, names, "Customer")
	assert.Contains(t, names, "Sales Order")
}

func TestEntityFieldsRoute(t *testing.T) {
	server := newTestServer(endpoint.NewRecordStoreMock())

	response := doRequest(t, server, http.MethodGet, "/v1/entities/sales-order/fields", nil)
	assert.Equal(t, http.StatusOK, response.Code)

	var fields []m.Field
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &fields))

	kinds := make(map[string]string, len(fields))
	for _, field := range fields {
		kinds[field.Name] = field.Kind
	}
	assert.Equal(t, "date", kinds["transaction_date"])
	assert.Equal(t, "datetime", kinds["creation"])
	assert.Equal(t, "plain", kinds["customer_name"])
}

func TestEntityFieldsRouteUnknownEntity(t *testing.T) {
	server := newTestServer(endpoint.NewRecordStoreMock())

	response := doRequest(t, server, http.MethodGet, "/v1/entities/warehouse/fields", nil)
	assert.Equal(t, http.StatusNotFound, response.Code)
}

func TestTopCustomersRoute(t *testing.T) {
	store := endpoint.NewRecordStoreMock()
	server := newTestServer(store)

	rows := []map[string]interface{}{{"customer_name": "Rajkumar Traders", "total_value": 450000.0}}
	store.On("TopCustomersByOrderValue", mock.Anything, 0.0, 5).Return(rows, nil)

	response := doRequest(t, server, http.MethodPost, "/v1/analytics/top-customers", m.AnalyticsRequest{
		From:  "01-08-2025",
		To:    "31-08-2025",
		Limit: 5,
	})

	assert.Equal(t, http.StatusOK, response.Code)

	var result []map[string]interface{}
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &result))
	assert.Equal(t, "Rajkumar Traders", result[0]["customer_name"])
}

func TestAnalyticsRouteRejectsNegativeLimit(t *testing.T) {
	server := newTestServer(endpoint.NewRecordStoreMock())

	response := doRequest(t, server, http.MethodPost, "/v1/analytics/top-customers", m.AnalyticsRequest{
		Limit: -1,
	})
	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func TestAnalyticsRouteRejectsBadWindow(t *testing.T) {
	server := newTestServer(endpoint.NewRecordStoreMock())

	response := doRequest(t, server, http.MethodPost, "/v1/analytics/orders-by-territory", m.AnalyticsRequest{
		From: "whenever",
	})
	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func TestAnalyticsRouteRejectsInvertedWindow(t *testing.T) {
	store := endpoint.NewRecordStoreMock()
	server := newTestServer(store)

	response := doRequest(t, server, http.MethodPost, "/v1/analytics/top-customers", m.AnalyticsRequest{
		From: "31-08-2025",
		To:   "01-08-2025",
	})
	assert.Equal(t, http.StatusBadRequest, response.Code)

	var modelError m.ModelError
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &modelError))
	assert.Contains(t, modelError.Description, "invalid date range")
	store.AssertNotCalled(t, "TopCustomersByOrderValue", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchRouteRejectsScalarIn(t *testing.T) {
	store := endpoint.NewRecordStoreMock()
	server := newTestServer(store)

	response := doRequest(t, server, http.MethodPost, "/v1/search/Customer", m.SearchRequest{
		Filters: types.FilterSpec{"territory": map[string]interface{}{"$in": "India"}},
	})

	assert.Equal(t, http.StatusBadRequest, response.Code)

	var modelError m.ModelError
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &modelError))
	assert.Contains(t, modelError.Description, "$in")
	store.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestTopCustomersByCountRoute(t *testing.T) {
	store := endpoint.NewRecordStoreMock()
	server := newTestServer(store)

	rows := []map[string]interface{}{{"customer_name": "Asha Exports", "order_count": 15.0}}
	store.On("TopCustomersByOrderCount", mock.Anything, 5).Return(rows, nil)

	response := doRequest(t, server, http.MethodPost, "/v1/analytics/top-customers-by-count", m.AnalyticsRequest{
		From:  "01-08-2025",
		To:    "31-08-2025",
		Limit: 5,
	})

	assert.Equal(t, http.StatusOK, response.Code)

	var result []map[string]interface{}
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &result))
	assert.Equal(t, "Asha Exports", result[0]["customer_name"])
}

func TestOrdersByItemRoute(t *testing.T) {
	store := endpoint.NewRecordStoreMock()
	server := newTestServer(store)

	rows := []map[string]interface{}{{"name": "SO-0042", "item_code": "ITM-001"}}
	store.On("OrdersByItem", "ITM-001", 20).Return(rows, nil)

	response := doRequest(t, server, http.MethodPost, "/v1/analytics/orders-by-item", m.OrdersByItemRequest{
		ItemCode: "ITM-001",
		Limit:    20,
	})

	assert.Equal(t, http.StatusOK, response.Code)

	var result []map[string]interface{}
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &result))
	assert.Equal(t, "SO-0042", result[0]["name"])
}

func TestOrdersByItemRouteRequiresItemCode(t *testing.T) {
	store := endpoint.NewRecordStoreMock()
	server := newTestServer(store)

	response := doRequest(t, server, http.MethodPost, "/v1/analytics/orders-by-item", m.OrdersByItemRequest{})
	assert.Equal(t, http.StatusBadRequest, response.Code)
	store.AssertNotCalled(t, "OrdersByItem", mock.Anything, mock.Anything)
}

func TestDuplicateCustomersRoute(t *testing.T) {
	store := endpoint.NewRecordStoreMock()
	server := newTestServer(store)

	rows := []map[string]interface{}{{"customer_name": "Rajkumar Traders", "count": 2.0, "customer_ids": "CUST-0001, CUST-0031"}}
	store.On("DuplicateCustomers").Return(rows, nil)

	response := doRequest(t, server, http.MethodGet, "/v1/analytics/duplicate-customers", nil)
	assert.Equal(t, http.StatusOK, response.Code)

	var result []map[string]interface{}
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &result))
	assert.Equal(t, "CUST-0001, CUST-0031", result[0]["customer_ids"])
}
