// Package pagination slices full result sets into pages. All three list
// endpoints paginate locally over the complete filtered set, so the total
// always reflects the pre-pagination count.
package pagination

// Params holds normalized page parameters
type Params struct {
	PageNum int
	PerPage int
}

// Normalize clamps the parameters into valid bounds: page_num to >= 1,
// per_page to [1, maxPerPage]. Out-of-range values clamp silently, they
// are not an error. Substituting a default for an absent per_page is the
// caller's job, Normalize cannot tell absent from explicit zero.
func (p Params) Normalize(maxPerPage int) Params {
	if p.PageNum < 1 {
		p.PageNum = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 1
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	return p
}

// Paginate returns the page of items selected by params and the total
// count of the full set. The input is never mutated and its order is
// preserved. Requesting a page past the end yields an empty page, not
// an error. Params are expected to be normalized already.
func Paginate[T any](items []T, params Params) ([]T, int) {
	total := len(items)

	// Compare against the last page before multiplying: a huge page_num
	// would overflow the start computation into a negative slice bound
	if params.PageNum > (total-1)/params.PerPage+1 {
		return []T{}, total
	}

	start := (params.PageNum - 1) * params.PerPage
	if start >= total {
		return []T{}, total
	}

	end := start + params.PerPage
	if end > total {
		end = total
	}

	return items[start:end], total
}
