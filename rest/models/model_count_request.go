package models

import "github.com/eximware/erp-data-api/types"

// CountRequest is the payload of a count call. Limit and ordering do not
// apply; the count always reflects the full matching set.
type CountRequest struct {
	Filters types.FilterSpec `json:"filters"`
}
