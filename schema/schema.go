// schema package declares the entity catalog the engine is allowed to
// query: canonical column lists, table names and the explicit subset of
// date/datetime fields. Field types are never inferred from sampled data.
package schema

import (
	"strings"

	e "github.com/eximware/erp-data-api/errors"
)

type FieldKind int

const (
	FieldPlain FieldKind = iota
	// FieldDateOnly holds a calendar date; comparisons truncate both sides.
	FieldDateOnly
	// FieldDateTime holds a timestamp with time-of-day; equality against a
	// day-granular value must expand to a half-open range.
	FieldDateTime
)

func (k FieldKind) String() string {
	switch k {
	case FieldDateOnly:
		return "date"
	case FieldDateTime:
		return "datetime"
	}
	return "plain"
}

// FieldDescriptor is the resolved, classified form of a filter key.
type FieldDescriptor struct {
	Name string
	Kind FieldKind
}

type Entity struct {
	Name    string
	Table   string
	Columns []string

	dateOnly  map[string]bool
	dateTime  map[string]bool
	columnSet map[string]bool
}

func newEntity(name string, table string, columns []string, dateOnly []string, dateTime []string) *Entity {
	entity := &Entity{
		Name:      name,
		Table:     table,
		Columns:   columns,
		dateOnly:  make(map[string]bool, len(dateOnly)),
		dateTime:  make(map[string]bool, len(dateTime)),
		columnSet: make(map[string]bool, len(columns)),
	}
	for _, c := range columns {
		entity.columnSet[c] = true
	}
	for _, c := range dateOnly {
		entity.dateOnly[c] = true
	}
	for _, c := range dateTime {
		entity.dateTime[c] = true
	}
	return entity
}

func (e *Entity) HasColumn(name string) bool {
	return e.columnSet[name]
}

// Fields lists the declared columns with their classification, in catalog
// order.
func (e *Entity) Fields() []FieldDescriptor {
	fields := make([]FieldDescriptor, 0, len(e.Columns))
	for _, column := range e.Columns {
		fields = append(fields, FieldDescriptor{Name: column, Kind: e.Kind(column)})
	}
	return fields
}

// Kind classifies a canonical column name.
func (e *Entity) Kind(name string) FieldKind {
	if e.dateOnly[name] {
		return FieldDateOnly
	}
	if e.dateTime[name] {
		return FieldDateTime
	}
	return FieldPlain
}

// Provider exposes the entity catalog to the engine and the REST surface.
type Provider interface {
	Entity(name string) (*Entity, error)
	EntityNames() []string
}

// Registry is the built-in Provider with the statically declared entities.
type Registry struct {
	entities map[string]*Entity
	names    []string
}

func NewRegistry(entities ...*Entity) *Registry {
	r := &Registry{entities: make(map[string]*Entity, len(entities))}
	for _, entity := range entities {
		r.entities[normalizeEntityName(entity.Name)] = entity
		r.names = append(r.names, entity.Name)
	}
	return r
}

// DefaultRegistry returns the catalog of entities the system serves. Table
// names follow the record store's "tab<Entity>" convention.
func DefaultRegistry() *Registry {
	return NewRegistry(
		newEntity("Customer", "tabCustomer",
			[]string{
				"name", "customer_name", "customer_type", "mobile_no", "email_id",
				"customer_primary_contact", "territory", "customer_group",
				"default_currency", "default_price_list", "payment_terms",
				"creation", "modified",
			},
			nil,
			[]string{"creation", "modified"}),
		newEntity("Item", "tabItem",
			[]string{
				"name", "item_code", "item_name", "item_group", "stock_uom",
				"is_stock_item", "has_variants", "has_batch_no", "has_serial_no",
				"brand", "description", "standard_rate", "creation", "modified",
			},
			nil,
			[]string{"creation", "modified"}),
		newEntity("Sales Order", "tabSales Order",
			[]string{
				"name", "customer", "customer_name", "transaction_date",
				"delivery_date", "po_no", "po_date", "status", "order_type",
				"grand_total", "currency", "company", "territory",
				"creation", "modified",
			},
			[]string{"transaction_date", "delivery_date", "po_date"},
			[]string{"creation", "modified"}),
		newEntity("Sales Person", "tabSales Person",
			[]string{
				"name", "sales_person_name", "parent_sales_person", "employee",
				"department", "is_group", "enabled", "commission_rate",
				"creation", "modified",
			},
			nil,
			[]string{"creation", "modified"}),
	)
}

func (r *Registry) Entity(name string) (*Entity, error) {
	entity, found := r.entities[normalizeEntityName(name)]
	if !found {
		return nil, e.NewUnknownEntityError(name)
	}
	return entity, nil
}

func (r *Registry) EntityNames() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// normalizeEntityName makes lookups tolerant of the spellings callers use:
// "Sales Order", "sales-order", "sales_order" and "SalesOrder" all match.
func normalizeEntityName(name string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "_", "")
	return strings.ToLower(replacer.Replace(name))
}
