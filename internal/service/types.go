package service

import (
	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/kinship"
)

// PersonRef is an identity-decorated reference to a person in the network.
// Decoration comes from the loaded identity records; persons known only
// through the graph (referenced as a parent or spouse but never recorded)
// carry their ID and nothing else.
type PersonRef struct {
	ID        domain.PersonID `json:"id"`
	Name      string          `json:"name,omitempty"`
	Sex       string          `json:"sex,omitempty"`
	BirthYear string          `json:"birthYear,omitempty"`
}

// RelationshipResult is a named relationship between two people.
type RelationshipResult struct {
	From    PersonRef `json:"from"`
	To      PersonRef `json:"to"`
	Name    string    `json:"name,omitempty"`
	Links   int       `json:"links"`
	Related bool      `json:"related"`
}

// PathHop is one person on a shortest kinship path, annotated with the
// relation leading to them from the previous hop. The first hop has no
// inbound relation.
type PathHop struct {
	Person PersonRef   `json:"person"`
	Rel    kinship.Rel `json:"rel,omitempty"`
}

// PathResult is a reconstructed shortest path between two people.
type PathResult struct {
	From     PersonRef `json:"from"`
	To       PersonRef `json:"to"`
	Distance int       `json:"distance"`
	Related  bool      `json:"related"`
	Hops     []PathHop `json:"hops,omitempty"`
}

// Relative is a first-order connection of a person.
type Relative struct {
	Person PersonRef   `json:"person"`
	Rel    kinship.Rel `json:"rel"`
}

// NetworkSummary describes the kinship network as a whole.
type NetworkSummary struct {
	People         int     `json:"people"`
	Edges          int     `json:"edges"`
	AverageDegree  float64 `json:"averageDegree"`
	Components     int     `json:"components"`
	ComponentSizes []int   `json:"componentSizes"`
}

// Pair identifies one pairwise relationship query.
type Pair struct {
	A domain.PersonID
	B domain.PersonID
}
