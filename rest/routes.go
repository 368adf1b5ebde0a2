package rest

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/eximware/erp-data-api/endpoint"
	"github.com/eximware/erp-data-api/log"
	"github.com/eximware/erp-data-api/types"
)

// Routes returns the full route table for the search API.
func Routes(dataEndpoint *endpoint.DataEndpoint, logger log.Logger) []types.Route {
	rl := routeList{
		endpoint: dataEndpoint,
		logger:   logger,
		params:   routerParam,
	}

	return []types.Route{
		{
			Method:  http.MethodPost,
			Pattern: "/v1/search/:entity",
			Handler: http.HandlerFunc(rl.Search),
		},
		{
			Method:  http.MethodPost,
			Pattern: "/v1/count/:entity",
			Handler: http.HandlerFunc(rl.Count),
		},
		{
			Method:  http.MethodGet,
			Pattern: "/v1/entities",
			Handler: http.HandlerFunc(rl.GetEntities),
		},
		{
			Method:  http.MethodGet,
			Pattern: "/v1/entities/:entity/fields",
			Handler: http.HandlerFunc(rl.GetEntityFields),
		},
		{
			Method:  http.MethodPost,
			Pattern: "/v1/analytics/top-customers",
			Handler: http.HandlerFunc(rl.TopCustomers),
		},
		{
			Method:  http.MethodPost,
			Pattern: "/v1/analytics/most-sold-items",
			Handler: http.HandlerFunc(rl.MostSoldItems),
		},
		{
			Method:  http.MethodPost,
			Pattern: "/v1/analytics/orders-by-territory",
			Handler: http.HandlerFunc(rl.OrdersByTerritory),
		},
		{
			Method:  http.MethodPost,
			Pattern: "/v1/analytics/top-customers-by-count",
			Handler: http.HandlerFunc(rl.TopCustomersByCount),
		},
		{
			Method:  http.MethodPost,
			Pattern: "/v1/analytics/orders-by-item",
			Handler: http.HandlerFunc(rl.OrdersByItem),
		},
		{
			Method:  http.MethodGet,
			Pattern: "/v1/analytics/duplicate-customers",
			Handler: http.HandlerFunc(rl.DuplicateCustomers),
		},
	}
}

// NewRouter mounts the route table on an httprouter instance.
func NewRouter(routes []types.Route) http.Handler {
	router := httprouter.New()
	for _, route := range routes {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}
	return router
}

// routerParam reads a path parameter stored by httprouter in the request
// context.
func routerParam(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}
