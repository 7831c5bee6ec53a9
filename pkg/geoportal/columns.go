package geoportal

import "strings"

// ColumnSelection says which attribute columns a query returns: every
// column the dataset has, or an explicit set. Construct it with
// AllColumns or SelectColumns rather than inspecting strings at runtime.
type ColumnSelection struct {
	all   bool
	names []string
}

// AllColumns selects every attribute field of the resolved dataset.
func AllColumns() ColumnSelection {
	return ColumnSelection{all: true}
}

// SelectColumns selects an explicit set of attribute fields. Names are
// matched case-insensitively against the dataset's field list.
func SelectColumns(names ...string) ColumnSelection {
	return ColumnSelection{names: names}
}

// ParseColumns interprets a user-supplied columns string: empty, "all"
// (any case) or "*" select everything, otherwise the value is read as a
// comma-separated list of field names.
func ParseColumns(raw string) ColumnSelection {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" || strings.EqualFold(raw, "all") {
		return AllColumns()
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return SelectColumns(names...)
}
