package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	p := Pagination{Page: 1, Limit: 10}

	assert.Equal(t, int64(0), p.TotalPages(0))
	assert.Equal(t, int64(1), p.TotalPages(1))
	assert.Equal(t, int64(1), p.TotalPages(10))
	assert.Equal(t, int64(2), p.TotalPages(11))
	assert.Equal(t, int64(5), p.TotalPages(43))
}

func TestHasMore(t *testing.T) {
	first := Pagination{Page: 1, Limit: 10, Skip: 0}
	assert.True(t, first.HasMore(10, 25))

	last := Pagination{Page: 3, Limit: 10, Skip: 20}
	assert.False(t, last.HasMore(5, 25))
}
