package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		pq := ParsePagination("", "", 10, 100)
		assert.Equal(t, 1, pq.Page)
		assert.Equal(t, 10, pq.Limit)
		assert.Equal(t, 0, pq.Offset)
	})

	t.Run("normal", func(t *testing.T) {
		pq := ParsePagination("3", "20", 10, 100)
		assert.Equal(t, 3, pq.Page)
		assert.Equal(t, 20, pq.Limit)
		assert.Equal(t, 40, pq.Offset)
	})

	t.Run("clamps", func(t *testing.T) {
		pq := ParsePagination("-5", "9999", 10, 100)
		assert.Equal(t, 1, pq.Page)
		assert.Equal(t, 100, pq.Limit)
	})

	t.Run("garbage input", func(t *testing.T) {
		pq := ParsePagination("abc", "xyz", 10, 100)
		assert.Equal(t, 1, pq.Page)
		assert.Equal(t, 10, pq.Limit)
	})
}

func TestNewPagination(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		p := NewPagination(2, 5, 12)
		assert.Equal(t, 3, p.TotalPages)
		assert.True(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("last page", func(t *testing.T) {
		p := NewPagination(3, 5, 12)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("empty result", func(t *testing.T) {
		p := NewPagination(1, 10, 0)
		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})

	t.Run("exact fit", func(t *testing.T) {
		p := NewPagination(1, 10, 10)
		assert.Equal(t, 1, p.TotalPages)
		assert.False(t, p.HasNext)
	})
}
