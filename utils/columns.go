package utils

import "reflect"

// ColumnList returns the list of "db" tags of a row struct, in declaration
// order, for use in select clauses.
func ColumnList[T any](prefixes ...string) []string {
	var value T
	var columns []string

	prefix := ""
	if len(prefixes) > 0 {
		prefix = prefixes[0] + "."
	}

	t := reflect.TypeOf(value)
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		columns = append(columns, prefix+tag)
	}
	return columns
}
