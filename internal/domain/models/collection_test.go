package model_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "notes-blog-service/internal/domain/models"
)

func TestCollection_KeepsInsertionOrder(t *testing.T) {
	c := model.NewCollection[string]()
	c.Put("3", "c")
	c.Put("1", "a")
	c.Put("2", "b")
	c.Put("1", "a2")

	assert.Equal(t, []string{"3", "1", "2"}, c.Keys())
	assert.Equal(t, []string{"c", "a2", "b"}, c.Values())

	assert.True(t, c.Delete("1"))
	assert.False(t, c.Delete("1"))
	assert.Equal(t, []string{"3", "2"}, c.Keys())
	assert.Equal(t, 2, c.Len())
}

func TestCollection_JSONRoundTripPreservesOrder(t *testing.T) {
	c := model.NewCollection[*model.Post]()
	c.Put("10", &model.Post{ID: 10, Title: "ten"})
	c.Put("2", &model.Post{ID: 2, Title: "two"})

	data, err := json.Marshal(c)
	require.NoError(t, err)

	loaded := model.NewCollection[*model.Post]()
	require.NoError(t, json.Unmarshal(data, loaded))
	assert.Equal(t, []string{"10", "2"}, loaded.Keys())

	p, ok := loaded.Get("2")
	require.True(t, ok)
	assert.Equal(t, "two", p.Title)
}

func TestCollection_RejectsDuplicateKeys(t *testing.T) {
	loaded := model.NewCollection[int]()
	err := json.Unmarshal([]byte(`[{"key":"a","record":1},{"key":"a","record":2}]`), loaded)
	assert.Error(t, err)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		size      int
		wantPages int
	}{
		{name: "empty", count: 0, size: 10, wantPages: 1},
		{name: "one", count: 1, size: 10, wantPages: 1},
		{name: "exact", count: 20, size: 10, wantPages: 2},
		{name: "partial", count: 21, size: 10, wantPages: 3},
		{name: "default size", count: 11, size: 0, wantPages: 2},
		{name: "huge size", count: 2, size: math.MaxInt, wantPages: 1},
		{name: "huge count", count: math.MaxInt, size: 1, wantPages: math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPages, model.TotalPages(tt.count, tt.size))
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, model.PageOffset(0, 10))
	assert.Equal(t, 0, model.PageOffset(1, 10))
	assert.Equal(t, 20, model.PageOffset(3, 10))
	assert.Equal(t, math.MaxInt, model.PageOffset(3, math.MaxInt))
}

func TestSliceBounds(t *testing.T) {
	tests := []struct {
		name                 string
		offset, limit, count int
		wantStart, wantEnd   int
	}{
		{name: "first page", offset: 0, limit: 10, count: 25, wantStart: 0, wantEnd: 10},
		{name: "last partial page", offset: 20, limit: 10, count: 25, wantStart: 20, wantEnd: 25},
		{name: "past the end", offset: 40, limit: 10, count: 25, wantStart: 25, wantEnd: 25},
		{name: "no limit", offset: 5, limit: 0, count: 25, wantStart: 5, wantEnd: 25},
		{name: "negative offset", offset: -3, limit: 2, count: 25, wantStart: 0, wantEnd: 2},
		{name: "huge window", offset: math.MaxInt, limit: math.MaxInt, count: 2, wantStart: 2, wantEnd: 2},
		{name: "huge limit", offset: 1, limit: math.MaxInt, count: 2, wantStart: 1, wantEnd: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := model.SliceBounds(tt.offset, tt.limit, tt.count)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
