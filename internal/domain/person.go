package domain

// PersonID is the opaque survey identifier for an individual. IDs are
// positive and never reused; 0 means "unknown".
type PersonID int

// Person aggregates the identity-file record for one individual.
type Person struct {
	ID         PersonID
	Name       string
	OtherNames []string
	Sex        string
	BirthYear  string
	BestDOB    string
	BestDOD    string
	FatherID   PersonID
	MotherID   PersonID
	Legitimacy string
}

// HasFather reports whether a father ID was recorded.
func (p Person) HasFather() bool { return p.FatherID != 0 }

// HasMother reports whether a mother ID was recorded.
func (p Person) HasMother() bool { return p.MotherID != 0 }
