package mono

import "fmt"

// Filter is the per-scanline transform applied before compression. Its value
// is written as the first byte of every row.
type Filter int

// Supported filters. Anything greater than FilterLast is treated as
// FilterNone.
const (
	FilterNone Filter = iota
	FilterSub
	FilterUp

	FilterLast = FilterUp
)

var filterNames = [...]string{
	FilterNone: "none",
	FilterSub:  "sub",
	FilterUp:   "up",
}

func (f Filter) String() string {
	if f < FilterNone || f > FilterLast {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filterNames[f]
}

// ParseFilter returns the Filter with the given name.
func ParseFilter(s string) (Filter, error) {
	for i, name := range filterNames {
		if name == s {
			return Filter(i), nil
		}
	}
	return FilterNone, fmt.Errorf("mono: unknown filter %q", s)
}

func normalizeFilter(f Filter) Filter {
	if f < FilterNone || f > FilterLast {
		return FilterNone
	}
	return f
}

// apply writes the filtered form of cur to dst. prev is the previous
// unfiltered row, all zeroes for the first row. Every supported bit depth
// filters with a stride of one byte.
func (f Filter) apply(dst, cur, prev []byte) {
	switch f {
	case FilterSub:
		var left byte
		for i, c := range cur {
			dst[i] = c - left
			left = c
		}
	case FilterUp:
		for i, c := range cur {
			dst[i] = c - prev[i]
		}
	default:
		copy(dst, cur)
	}
}

// reverse undoes apply in place, given the previous reconstructed row.
func (f Filter) reverse(row, prev []byte) error {
	switch f {
	case FilterNone:
	case FilterSub:
		for i := 1; i < len(row); i++ {
			row[i] += row[i-1]
		}
	case FilterUp:
		for i := range row {
			row[i] += prev[i]
		}
	default:
		return fmt.Errorf("mono: unsupported filter type %d", int(f))
	}
	return nil
}
