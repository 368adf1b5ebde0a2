package models

import "github.com/eximware/erp-data-api/types"

// SearchRequest is the payload of a search call: the filter mapping plus
// free-form options that decode into types.SearchOptions.
type SearchRequest struct {
	Filters types.FilterSpec       `json:"filters"`
	Options map[string]interface{} `json:"options"`
}
