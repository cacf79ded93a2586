package domain

// SpousePair is an unordered marriage pair normalized with the lower ID
// first, regardless of role.
type SpousePair struct {
	A PersonID
	B PersonID
}

// NewSpousePair normalizes two IDs into canonical order.
func NewSpousePair(x, y PersonID) SpousePair {
	if y < x {
		x, y = y, x
	}
	return SpousePair{A: x, B: y}
}

// Other returns the pair member that is not id.
func (p SpousePair) Other(id PersonID) PersonID {
	if p.A == id {
		return p.B
	}
	return p.A
}

// Marriage carries the metadata recorded for one marriage pair.
type Marriage struct {
	Pair      SpousePair
	HusbandID PersonID
	WifeID    PersonID
	Type      string
	Date      string
	EndDate   string
	EndReason string
}
