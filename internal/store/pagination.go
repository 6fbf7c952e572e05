package store

// TotalPages is ceil(total/size); zero when there is nothing to show.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// SliceBounds returns the half-open range [start, end) of a 1-based page
// inside a list of total items. The range never leaves [0, total).
func SliceBounds(page, size, total int) (start, end int) {
	if page < 1 || size <= 0 || total <= 0 {
		return 0, 0
	}
	start = (page - 1) * size
	if start > total {
		start = total
	}
	end = min(start+size, total)
	return start, end
}

// ClampPage limits n to [1, totalPages]. ok is false when there are no pages.
func ClampPage(n, totalPages int) (page int, ok bool) {
	if totalPages <= 0 {
		return 0, false
	}
	return min(max(n, 1), totalPages), true
}
