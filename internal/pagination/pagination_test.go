package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		page     int
		expected int
	}{
		{name: "First page", limit: 9, page: 1, expected: 0},
		{name: "Second page", limit: 9, page: 2, expected: 9},
		{name: "Custom limit", limit: 5, page: 4, expected: 15},
		{name: "Page below one clamps to first", limit: 9, page: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Offset(tt.limit, tt.page))
		})
	}
}

func TestNew(t *testing.T) {
	p := New(9, 2, 30)

	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 4, p.TotalPages)
	assert.Equal(t, 1, p.Prev)
	assert.Equal(t, 3, p.Next)
	assert.Equal(t, []int{1, 2, 3, 4}, p.Pages)
}

func TestNewClampsCurrentPage(t *testing.T) {
	p := New(9, 99, 30)

	assert.Equal(t, 4, p.CurrentPage)
	assert.Equal(t, 4, p.Next)
	assert.Equal(t, 3, p.Prev)
}

func TestNewEmptyTotal(t *testing.T) {
	p := New(9, 1, 0)

	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 1, p.Prev)
	assert.Equal(t, 1, p.Next)
	assert.Equal(t, []int{1}, p.Pages)
}
