package huff

// Histogram counts occurrences of every byte value in a buffer.
// Index i holds the count of symbol byte(i).
type Histogram [256]uint64

// CountSymbols builds the histogram of data.
func CountSymbols(data []byte) Histogram {
	var h Histogram
	for _, b := range data {
		h[b]++
	}
	return h
}

// Count returns the number of occurrences of sym.
func (h *Histogram) Count(sym byte) uint64 {
	return h[sym]
}

// Symbols returns the symbols with a nonzero count in ascending order.
func (h *Histogram) Symbols() []byte {
	syms := make([]byte, 0, h.Distinct())
	for i, n := range h {
		if n > 0 {
			syms = append(syms, byte(i))
		}
	}
	return syms
}

// Distinct returns the number of symbols with a nonzero count.
func (h *Histogram) Distinct() int {
	n := 0
	for _, c := range h {
		if c > 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all counts.
func (h *Histogram) Total() uint64 {
	var total uint64
	for _, c := range h {
		total += c
	}
	return total
}
