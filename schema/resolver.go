package schema

import (
	"strings"

	"github.com/eximware/erp-data-api/config"
	e "github.com/eximware/erp-data-api/errors"
)

// fieldAliases maps the logical names callers tend to use to canonical
// column names. Unmapped keys pass through unchanged; whether the result is
// a real column is decided by the entity lookup afterwards.
var fieldAliases = map[string]string{
	"created":       "creation",
	"created_date":  "creation",
	"modified_date": "modified",
	"date":          "transaction_date",
	"order_date":    "transaction_date",
	"delivery":      "delivery_date",
}

// Resolve maps a raw filter key to a classified FieldDescriptor. Keys are
// snake-cased first (LLM callers emit camelCase at times), then run through
// the alias table and checked against the entity column set. An
// unresolvable key is an error; the engine never builds a predicate around
// an unverified identifier.
func (entity *Entity) Resolve(fieldKey string, naming config.NamingConvention) (FieldDescriptor, error) {
	name := naming.ToColumn(strings.TrimSpace(fieldKey))
	if alias, found := fieldAliases[name]; found {
		name = alias
	}
	if !entity.HasColumn(name) {
		return FieldDescriptor{}, e.NewUnknownFieldError(entity.Name, fieldKey)
	}
	return FieldDescriptor{Name: name, Kind: entity.Kind(name)}, nil
}
