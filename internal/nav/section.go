package nav

// Bounds is the vertical extent of a tracked section, in document pixels.
type Bounds struct {
	ID     string
	Top    float64
	Height float64
}

// Bottom is the first pixel below the section.
func (b Bounds) Bottom() float64 {
	return b.Top + b.Height
}

// DetectSection returns the id of the section under scrollOffset+Lookahead.
// Sections are given in document order; when more than one qualifies the last
// one wins. The result is empty when the position is outside every section.
func DetectSection(scrollOffset float64, sections []Bounds) string {
	pos := scrollOffset + Lookahead
	current := ""
	for _, s := range sections {
		if s.Top <= pos && pos < s.Bottom() {
			current = s.ID
		}
	}
	return current
}
