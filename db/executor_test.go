package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	e "github.com/eximware/erp-data-api/errors"
	"github.com/eximware/erp-data-api/log"
	"github.com/eximware/erp-data-api/types"
)

func newMockDb(t *testing.T) (*Db, sqlmock.Sqlmock) {
	conn, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewDbWithConnection(conn, log.NewZapLogger(zap.NewNop())), mock
}

func searchPlan() *types.QueryPlan {
	return &types.QueryPlan{
		Entity:    "Customer",
		Table:     "tabCustomer",
		Statement: "SELECT `name`, `customer_name`, `territory` FROM `tabCustomer` WHERE `territory` = ? ORDER BY `modified` DESC LIMIT ?",
		Args:      []interface{}{"India", 20},
		Limit:     20,
	}
}

func TestSearchReturnsRows(t *testing.T) {
	store, mock := newMockDb(t)

	mock.ExpectQuery("SELECT (.+) FROM `tabCustomer`").
		WithArgs("India", 20).
		WillReturnRows(sqlmock.NewRows([]string{"name", "customer_name", "territory"}).
			AddRow([]byte("CUST-0001"), []byte("Rajkumar Traders"), []byte("India")).
			AddRow([]byte("CUST-0002"), []byte("Asha Exports"), []byte("India")))

	filter := types.FilterSpec{"territory": "India"}
	result, err := store.Search(context.Background(), searchPlan(), filter)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, filter, result.AppliedFilters)

	// Driver []byte values come back as plain strings
	assert.Equal(t, "Rajkumar Traders", result.Rows[0]["customer_name"])
	assert.Equal(t, "CUST-0002", result.Rows[1]["name"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchEmptyResult(t *testing.T) {
	store, mock := newMockDb(t)

	mock.ExpectQuery("SELECT (.+) FROM `tabCustomer`").
		WithArgs("India", 20).
		WillReturnRows(sqlmock.NewRows([]string{"name", "customer_name", "territory"}))

	result, err := store.Search(context.Background(), searchPlan(), types.FilterSpec{"territory": "India"})
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Rows)
	assert.Empty(t, result.Rows)
}

func TestSearchWrapsDriverErrors(t *testing.T) {
	store, mock := newMockDb(t)

	mock.ExpectQuery("SELECT (.+) FROM `tabCustomer`").
		WillReturnError(assert.AnError)

	_, err := store.Search(context.Background(), searchPlan(), nil)
	assert.Error(t, err)
	assert.IsType(t, &e.StoreExecutionError{}, err)
	// The bound value never leaks through the error message
	assert.NotContains(t, err.Error(), "India")
}

func TestCountLargeResult(t *testing.T) {
	store, mock := newMockDb(t)

	rows := sqlmock.NewRows([]string{"name"})
	for i := 0; i < 12; i++ {
		rows.AddRow([]byte(fmt.Sprintf("SO-%04d", i+1)))
	}
	mock.ExpectQuery("SELECT (.+) FROM `tabCustomer`").WillReturnRows(rows)

	result, err := store.Count(context.Background(), searchPlan(), true)
	assert.NoError(t, err)
	assert.Equal(t, 12, result.TotalCount)
	assert.Empty(t, result.SampleNames)
	assert.Nil(t, result.FirstRecord)
}

func TestCountSmallResultCarriesSamples(t *testing.T) {
	store, mock := newMockDb(t)

	mock.ExpectQuery("SELECT (.+) FROM `tabCustomer`").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow([]byte("CUST-0001")).
			AddRow([]byte("CUST-0002")).
			AddRow([]byte("CUST-0003")))

	result, err := store.Count(context.Background(), searchPlan(), true)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, []string{"CUST-0001", "CUST-0002", "CUST-0003"}, result.SampleNames)
	assert.Nil(t, result.FirstRecord)
}

func TestCountSingleMatchCarriesRecord(t *testing.T) {
	store, mock := newMockDb(t)

	mock.ExpectQuery("SELECT (.+) FROM `tabCustomer`").
		WillReturnRows(sqlmock.NewRows([]string{"name", "customer_name"}).
			AddRow([]byte("CUST-0001"), []byte("Rajkumar Traders")))

	result, err := store.Count(context.Background(), searchPlan(), true)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)
	assert.Equal(t, []string{"CUST-0001"}, result.SampleNames)
	assert.Equal(t, "Rajkumar Traders", result.FirstRecord["customer_name"])
}

func TestCountZeroMatches(t *testing.T) {
	store, mock := newMockDb(t)

	mock.ExpectQuery("SELECT (.+) FROM `tabCustomer`").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	result, err := store.Count(context.Background(), searchPlan(), true)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.TotalCount)
	assert.Empty(t, result.SampleNames)
	assert.Nil(t, result.FirstRecord)
}

func TestCountWithoutSamples(t *testing.T) {
	store, mock := newMockDb(t)

	mock.ExpectQuery("SELECT (.+) FROM `tabCustomer`").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow([]byte("CUST-0001")))

	result, err := store.Count(context.Background(), searchPlan(), false)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)
	assert.Empty(t, result.SampleNames)
	assert.Nil(t, result.FirstRecord)
}
