package kinship

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mwhitby/kinship/internal/domain"
)

// ErrDataIntegrity signals corrupt source data or an internal algorithmic
// inconsistency: the same ordered person pair asserted with two conflicting
// relation kinds, or an asymmetric all-pairs distance table. Never repaired
// silently.
var ErrDataIntegrity = errors.New("kinship: data integrity violation")

// ErrPersonNotFound signals a queried ID that does not exist in the graph at
// all. Distinct from a "no relationship" result, which is not an error.
var ErrPersonNotFound = errors.New("kinship: person not found")

// Parentage holds the recorded parents of one individual. A zero ID means
// the parent is unknown.
type Parentage struct {
	Father domain.PersonID
	Mother domain.PersonID
}

// Graph is the kinship network: each person maps to their first-order
// relatives, each tagged with a relation kind. Relations appear in inverse
// pairs (parent/child, spouse/spouse) and at most one kind exists per
// ordered pair. Built once from immutable records, read-only thereafter.
type Graph struct {
	adj map[domain.PersonID]map[domain.PersonID]Rel
}

// BuildGraph assembles the kinship network from parent records and spouse
// sets. Both directions of every link are established from the single source
// fact: one parent entry yields a parent edge and its inverse child edge,
// one marriage yields spouse edges both ways. Persons referenced only as
// someone's relative still become nodes, as do persons with no relations at
// all. A conflicting relation kind for an already-assigned ordered pair
// aborts the build with ErrDataIntegrity; no partial graph is returned.
func BuildGraph(parents map[domain.PersonID]Parentage, spouses map[domain.PersonID][]domain.PersonID) (*Graph, error) {
	g := &Graph{adj: make(map[domain.PersonID]map[domain.PersonID]Rel, len(parents))}

	for _, id := range sortedKeys(parents) {
		g.ensure(id)
		rec := parents[id]
		if rec.Father != 0 {
			if err := g.link(id, rec.Father, RelParent); err != nil {
				return nil, err
			}
		}
		if rec.Mother != 0 {
			if err := g.link(id, rec.Mother, RelParent); err != nil {
				return nil, err
			}
		}
	}

	for _, id := range sortedKeys(spouses) {
		g.ensure(id)
		ids := append([]domain.PersonID(nil), spouses[id]...)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, sid := range ids {
			if err := g.link(id, sid, RelSpouse); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// link records rel from a to b and its inverse from b to a.
func (g *Graph) link(a, b domain.PersonID, rel Rel) error {
	if err := g.set(a, b, rel); err != nil {
		return err
	}
	return g.set(b, a, rel.Inverse())
}

func (g *Graph) set(from, to domain.PersonID, rel Rel) error {
	g.ensure(from)
	g.ensure(to)
	if existing, ok := g.adj[from][to]; ok && existing != rel {
		return fmt.Errorf("%w: %d→%d asserted as both %q and %q",
			ErrDataIntegrity, from, to, existing, rel)
	}
	g.adj[from][to] = rel
	return nil
}

func (g *Graph) ensure(id domain.PersonID) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = make(map[domain.PersonID]Rel)
	}
}

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id domain.PersonID) bool {
	_, ok := g.adj[id]
	return ok
}

// Relation returns the relation kind from a to b, if any.
func (g *Graph) Relation(a, b domain.PersonID) (Rel, bool) {
	rel, ok := g.adj[a][b]
	return rel, ok
}

// Neighbors returns a's first-order relatives in ascending ID order. The
// stable ordering is what makes tie-breaking between equal-length kinship
// paths deterministic.
func (g *Graph) Neighbors(a domain.PersonID) []domain.PersonID {
	return sortedKeys(g.adj[a])
}

// Degree returns the number of first-order relatives of id.
func (g *Graph) Degree(id domain.PersonID) int {
	return len(g.adj[id])
}

// IDs returns every person in the graph in ascending order.
func (g *Graph) IDs() []domain.PersonID {
	return sortedKeys(g.adj)
}

// Order returns the number of persons in the graph.
func (g *Graph) Order() int {
	return len(g.adj)
}

// EdgeCount returns the number of undirected kinship links. Every link is
// stored as two directed entries.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, nbrs := range g.adj {
		n += len(nbrs)
	}
	return n / 2
}

// Components returns the connected components of the graph, each sorted by
// ID, ordered by their smallest member.
func (g *Graph) Components() [][]domain.PersonID {
	var components [][]domain.PersonID
	visited := make(map[domain.PersonID]bool, len(g.adj))

	for _, start := range g.IDs() {
		if visited[start] {
			continue
		}
		var member []domain.PersonID
		queue := []domain.PersonID{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			member = append(member, cur)
			for _, nb := range g.Neighbors(cur) {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		sort.Slice(member, func(i, j int) bool { return member[i] < member[j] })
		components = append(components, member)
	}
	return components
}

func sortedKeys[V any](m map[domain.PersonID]V) []domain.PersonID {
	ids := make([]domain.PersonID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
