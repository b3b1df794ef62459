package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSort(t *testing.T) {
	allowed := []string{"id", "name", "created_at"}

	t.Run("valid field and direction", func(t *testing.T) {
		s := ParseSort("name", "desc", allowed, "id", "ASC")
		assert.Equal(t, "name DESC", s.OrderClause())
	})

	t.Run("unknown field falls back", func(t *testing.T) {
		s := ParseSort("password; DROP TABLE users", "asc", allowed, "id", "ASC")
		assert.Equal(t, "id ASC", s.OrderClause())
	})

	t.Run("unknown direction keeps default", func(t *testing.T) {
		s := ParseSort("name", "upward", allowed, "id", "DESC")
		assert.Equal(t, "name DESC", s.OrderClause())
	})

	t.Run("empty input", func(t *testing.T) {
		s := ParseSort("", "", allowed, "created_at", "desc")
		assert.Equal(t, "created_at DESC", s.OrderClause())
	})
}
