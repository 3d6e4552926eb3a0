package dbtime

// ValidRange reports whether start < end. Ranges never cross midnight.
func ValidRange(start, end Tod) bool {
	return start.Before(end)
}

// Overlaps uses half-open semantics: [aStart,aEnd) and [bStart,bEnd) overlap
// iff aStart < bEnd && bStart < aEnd. Empty or inverted ranges overlap nothing.
func Overlaps(aStart, aEnd, bStart, bEnd Tod) bool {
	if !ValidRange(aStart, aEnd) || !ValidRange(bStart, bEnd) {
		return false
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
