package repositories

import (
	"fmt"
	"strings"
)

// OrderBy is an ordered list of field names; a leading '-' marks a field
// as descending. An empty list leaves result order unspecified.
type OrderBy []string

// Clauses translates an OrderBy into SQL ORDER BY fragments, rejecting any
// field not present in the allowed set.
func (o OrderBy) Clauses(allowed map[string]string) ([]string, error) {
	clauses := make([]string, 0, len(o))
	for _, field := range o {
		desc := strings.HasPrefix(field, "-")
		name := strings.TrimPrefix(field, "-")
		column, ok := allowed[name]
		if !ok {
			return nil, fmt.Errorf("cannot order by unknown field %q", name)
		}
		if desc {
			clauses = append(clauses, column+" DESC")
		} else {
			clauses = append(clauses, column+" ASC")
		}
	}
	return clauses, nil
}

// lowerPattern normalizes a substring-match fragment for a LOWER(...) LIKE
// comparison.
func lowerPattern(s string) string {
	return strings.ToLower(s)
}
