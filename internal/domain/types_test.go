package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestPageRequestWindow(t *testing.T) {
	assert.Nil(t, PageRequest{}.Window())
	assert.Nil(t, PageRequest{PageID: intPtr(2)}.Window())
	assert.Nil(t, PageRequest{PageSize: intPtr(10)}.Window())

	w := PageRequest{PageID: intPtr(3), PageSize: intPtr(10)}.Window()
	if assert.NotNil(t, w) {
		assert.Equal(t, 10, w.Limit)
		assert.Equal(t, 20, w.Offset)
	}

	w = PageRequest{PageID: intPtr(math.MaxInt/2 + 2), PageSize: intPtr(4)}.Window()
	if assert.NotNil(t, w) {
		assert.Equal(t, 4, w.Limit)
		assert.Equal(t, math.MaxInt, w.Offset)
	}

	limit, offset := LimitOffset(w)
	assert.Equal(t, 4, limit)
	assert.Equal(t, math.MaxInt, offset)
}

func TestLimitOffset(t *testing.T) {
	limit, offset := LimitOffset(nil)
	assert.Equal(t, DefaultQueryLimit, limit)
	assert.Equal(t, 0, offset)

	limit, offset = LimitOffset(&Pagination{Limit: 5, Offset: 15})
	assert.Equal(t, 5, limit)
	assert.Equal(t, 15, offset)
}
