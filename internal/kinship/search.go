package kinship

import (
	"fmt"

	"github.com/mwhitby/kinship/internal/domain"
)

// Relationship is the outcome of a pairwise kinship query. Related is false
// when the two individuals are genuinely unconnected, or connected only
// beyond the requested link ceiling; that outcome is not an error.
type Relationship struct {
	Name    string
	Chain   Chain
	Links   int
	Related bool
}

// FindRelationship returns the single shortest kinship relation between a
// and b, named from a's perspective ("b is a's ___").
//
// The search runs breadth-first from both endpoints at once, expanding the
// two frontiers in round-robin order, which keeps the explored space small
// and orders discoveries by kinship distance. When a person discovered from
// one side is already known to the other side the two half-chains connect;
// the search keeps going until no shorter meeting can still surface, since
// later rounds may find a closer common relative than the first one seen.
// Among equal-length paths (double cousins and the like) the first one found
// under the sorted neighbor expansion order wins, deterministically.
//
// maxLinks, when positive, bounds the acceptable chain length; a
// relationship further away than that is reported as not related.
// ErrPersonNotFound is returned when either ID is not in the graph at all.
func FindRelationship(g *Graph, a, b domain.PersonID, maxLinks int) (Relationship, error) {
	if a == b {
		chain := Chain{{Rel: RelSelf, ID: a}}
		return Relationship{Name: string(RelSelf), Chain: chain, Related: true}, nil
	}
	if !g.Has(a) {
		return Relationship{}, fmt.Errorf("%w: %d", ErrPersonNotFound, a)
	}
	if !g.Has(b) {
		return Relationship{}, fmt.Errorf("%w: %d", ErrPersonNotFound, b)
	}

	// Shortest chain found so far from each root to every discovered person.
	fromA := map[domain.PersonID]Chain{a: {{Rel: RelSelf, ID: a}}}
	fromB := map[domain.PersonID]Chain{b: {{Rel: RelSelf, ID: b}}}

	queue := []domain.PersonID{a, b}
	enqueued := map[domain.PersonID]bool{a: true, b: true}

	var best Chain
	bestTotal := 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		// A person discovered by both sides expands as the A side.
		mine := fromA
		if _, ok := fromA[cur]; !ok {
			mine = fromB
		}
		chain := mine[cur]

		// A chain of n links has n+1 steps counting the self root.
		if maxLinks > 0 && len(chain) > maxLinks {
			continue
		}

		for _, nb := range g.Neighbors(cur) {
			rel, _ := g.Relation(cur, nb)
			path := make(Chain, len(chain), len(chain)+1)
			copy(path, chain)
			path = append(path, Step{Rel: rel, ID: nb})

			if old, ok := mine[nb]; !ok || len(path) < len(old) {
				mine[nb] = path
			}

			// Known to both sides: the half-chains meet at nb.
			if _, okA := fromA[nb]; okA {
				if _, okB := fromB[nb]; okB {
					total := len(fromA[nb]) + len(fromB[nb])
					if best == nil || total < bestTotal {
						best = append(append(Chain{}, fromA[nb]...), fromB[nb].Invert()...)
						bestTotal = total
					}
				}
			}

			if !enqueued[nb] {
				enqueued[nb] = true
				queue = append(queue, nb)
			}
		}
	}

	if best != nil {
		links := best.Links()
		if maxLinks <= 0 || links <= maxLinks {
			return Relationship{
				Name:    best.Name(),
				Chain:   best,
				Links:   links,
				Related: true,
			}, nil
		}
	}
	return Relationship{}, nil
}
