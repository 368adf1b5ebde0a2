package config

import "github.com/iancoleman/strcase"

// NamingConvention translates between the wire representation of names
// (JSON fields, often camelCase when produced by an LLM) and the canonical
// snake_case column names of the record store.
type NamingConvention interface {
	ToColumn(name string) string
	ToJSONField(name string) string
	ToEntityName(name string) string
}

type defaultNaming struct {
}

func NewDefaultNaming() NamingConvention {
	return &defaultNaming{}
}

func (n *defaultNaming) ToColumn(name string) string {
	return strcase.ToSnake(name)
}

func (n *defaultNaming) ToJSONField(name string) string {
	return strcase.ToLowerCamel(name)
}

func (n *defaultNaming) ToEntityName(name string) string {
	return strcase.ToCamel(name)
}
