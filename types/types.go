// types package contains the public API types
// that are shared between the engine, the record store and the REST surface.
package types

import "net/http"

// FilterSpec is a caller-supplied (often LLM-generated) mapping from field
// name to either a literal scalar (equality) or an operator map such as
// {"$like": "%text%"} or {"$gte": "01-08-2025", "$lte": "31-08-2025"}.
type FilterSpec map[string]interface{}

// BoundParam is a single named parameter referenced by a predicate fragment.
// Names are unique within a QueryPlan so the same field can appear with
// multiple operators without collisions.
type BoundParam struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// CompiledCondition is one predicate fragment plus the parameters it binds.
// Fragments reference parameters as ":name" tokens; field or value content
// is never concatenated into the fragment itself.
type CompiledCondition struct {
	Fragment string       `json:"fragment"`
	Params   []BoundParam `json:"params"`
}

// QueryPlan is the fully assembled, ready-to-execute statement. It is built
// fresh per request and discarded after execution.
type QueryPlan struct {
	Entity     string
	Table      string
	Columns    []string
	Conditions []CompiledCondition
	OrderBy    string
	Limit      int

	// Statement and Args are the rendered positional form accepted by the
	// record store. Args always carries the limit as its final element.
	Statement string
	Args      []interface{}
}

type SearchResult struct {
	Rows           []map[string]interface{} `json:"rows"`
	Count          int                      `json:"count"`
	AppliedFilters FilterSpec               `json:"appliedFilters"`
}

// CountResult is the aggregation/count contract. When the result set is
// small (0 < count <= 5) the matching record identifiers are attached so a
// calling conversational agent can keep referring to them without a second
// round trip; the full first record is included when exactly one matches.
type CountResult struct {
	TotalCount  int                    `json:"totalCount"`
	SampleNames []string               `json:"sampleNames,omitempty"`
	FirstRecord map[string]interface{} `json:"firstRecord,omitempty"`
}

type SearchOptions struct {
	Limit   int    `json:"limit" mapstructure:"limit"`
	OrderBy string `json:"orderBy" mapstructure:"orderBy"`
}

// Route represents a request route to be served
type Route struct {
	Method  string
	Pattern string
	Handler http.Handler
}
