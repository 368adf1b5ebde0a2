package models

// Field describes one searchable column of an entity.
type Field struct {
	Name string `json:"name"`

	// Kind is "plain", "date" or "datetime"
	Kind string `json:"kind"`
}
