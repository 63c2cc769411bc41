package model

import "math"

const DefaultPageSize = 10

type Page struct {
	Items      []*Post `json:"items"`
	Number     int     `json:"number"`
	Size       int     `json:"size"`
	TotalPages int     `json:"total_pages"`
	TotalItems int     `json:"total_items"`
	OutOfRange bool    `json:"out_of_range"`
}

// TotalPages returns ceil(count/size), never less than one.
func TotalPages(count, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if count <= 0 {
		return 1
	}
	return (count-1)/size + 1
}

// PageOffset returns the index of the first record of page, saturating instead of overflowing.
func PageOffset(page, size int) int {
	if page <= 1 || size <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (page - 1) * size
}

// SliceBounds clamps an offset/limit window to [0, count). A non-positive limit means no limit.
func SliceBounds(offset, limit, count int) (int, int) {
	start := min(max(offset, 0), count)
	end := count
	if limit > 0 && limit < count-start {
		end = start + limit
	}
	return start, end
}
