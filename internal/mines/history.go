package mines

// History is the ordered list of positions revealed during play. The same
// position may appear more than once.
type History []Position

func (h *History) add(p Position) {
	if h != nil {
		*h = append(*h, p)
	}
}
