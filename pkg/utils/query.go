package utils

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// SortQuery is a validated sort field/direction pair.
type SortQuery struct {
	Field     string
	Direction string
}

// ParseSort validates the requested field against the allow-list and
// falls back to the default field/direction otherwise. Direction is
// normalized to ASC/DESC, defaulting to the fallback direction.
func ParseSort(field, direction string, allowed []string, defaultField, defaultDirection string) SortQuery {
	out := SortQuery{Field: defaultField, Direction: strings.ToUpper(defaultDirection)}
	if out.Direction != "ASC" && out.Direction != "DESC" {
		out.Direction = "DESC"
	}

	for _, a := range allowed {
		if field == a {
			out.Field = field
			break
		}
	}

	switch strings.ToUpper(direction) {
	case "ASC":
		out.Direction = "ASC"
	case "DESC":
		out.Direction = "DESC"
	}

	return out
}

// OrderClause renders the pair for gorm's Order().
func (s SortQuery) OrderClause() string {
	return fmt.Sprintf("%s %s", s.Field, s.Direction)
}

// SearchScope builds an OR-combined substring filter over the allowed
// fields. An empty term or empty field list is a no-op.
func SearchScope(term string, fields []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(fields) == 0 {
			return db
		}

		like := "%" + term + "%"
		var conds []string
		var args []interface{}
		for _, f := range fields {
			conds = append(conds, f+" LIKE ?")
			args = append(args, like)
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}
