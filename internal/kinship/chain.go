// Package kinship builds the typed kinship network from genealogical
// records and answers relationship queries over it: pairwise shortest
// kinship paths translated into English relationship terms, and the
// all-pairs shortest-distance table for the whole population.
package kinship

import (
	"strings"

	"github.com/mwhitby/kinship/internal/domain"
)

// Rel is the kind of a single kinship link.
type Rel string

const (
	RelSelf   Rel = "self"
	RelParent Rel = "parent"
	RelChild  Rel = "child"
	RelSpouse Rel = "spouse"
)

// Inverse returns the relation kind seen from the other end of the link.
func (r Rel) Inverse() Rel {
	switch r {
	case RelParent:
		return RelChild
	case RelChild:
		return RelParent
	default:
		return r
	}
}

// Step is one hop of a walk through the kinship network: the relation kind
// of the hop and the person it arrives at.
type Step struct {
	Rel Rel
	ID  domain.PersonID
}

// Chain is an ordered walk from one person to another. It starts with a
// synthetic self step naming the origin; a second self step may appear in
// the middle as an artifact of merging two half-chains discovered from
// opposite search directions.
type Chain []Step

// Links returns the number of non-self steps, i.e. the consanguinity degree.
func (c Chain) Links() int {
	n := 0
	for _, s := range c {
		if s.Rel != RelSelf {
			n++
		}
	}
	return n
}

// Invert turns a chain describing A's relationship to B into the chain
// describing B's relationship to A: step order reverses and each step takes
// the inverse of its predecessor's relation kind.
func (c Chain) Invert() Chain {
	result := make(Chain, 0, len(c))
	next := RelSelf
	for i := len(c) - 1; i >= 0; i-- {
		result = append(result, Step{Rel: next.Inverse(), ID: c[i].ID})
		next = c[i].Rel
	}
	return result
}

// nameReductions rewrites raw possessive chains into conventional English
// terms. Order matters: longer patterns must be reduced before the shorter
// patterns they contain, or "parent's parent's child's child" would collapse
// into "grandparent's grandchild" instead of "first cousin".
var nameReductions = []struct{ find, replace string }{
	{"parent's parent's parent's parent's child's child's child's child", "third cousin"},
	{"parent's parent's parent's child's child's child", "second cousin"},
	{"parent's parent's child's child", "first cousin"},
	{"parent's child", "sibling"},
	{"parent's parent's parent's parent", "great-great-grandparent"},
	{"parent's parent's parent", "great-grandparent"},
	{"parent's parent", "grandparent"},
	{"child's child's child's child", "great-great-grandchild"},
	{"child's child's child", "great-grandchild"},
	{"child's child", "grandchild"},
}

// Name renders the chain as the English term for "B is A's ___", where A is
// the chain's origin and B its final person. Self steps are skipped, the
// remaining relation tokens are joined possessively, and the reduction table
// is applied in order. Chains with no conventional term (very distant or
// unusual kinship shapes) come back as the raw possessive phrase.
func (c Chain) Name() string {
	tokens := make([]string, 0, len(c))
	for _, s := range c {
		if s.Rel == RelSelf {
			continue
		}
		tokens = append(tokens, string(s.Rel))
	}
	if len(tokens) == 0 {
		return string(RelSelf)
	}
	name := strings.Join(tokens, "'s ")
	for _, r := range nameReductions {
		name = strings.ReplaceAll(name, r.find, r.replace)
	}
	return name
}
