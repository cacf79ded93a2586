package service

import (
	"fmt"
	"sync"

	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/kinship"
)

// KinshipService owns the loaded survey records and the built kinship graph,
// and answers relationship queries for transports and reports. The graph is
// immutable after construction, so the service is safe for concurrent use;
// the all-pairs table is computed on first demand and cached.
type KinshipService struct {
	people   map[domain.PersonID]domain.Person
	graph    *kinship.Graph
	maxLinks int

	mu        sync.Mutex
	distances kinship.DistanceTable
	tree      kinship.PathTree
}

// NewKinshipService constructs a KinshipService. maxLinks caps pairwise
// searches; zero or negative means unbounded.
func NewKinshipService(people map[domain.PersonID]domain.Person, graph *kinship.Graph, maxLinks int) *KinshipService {
	return &KinshipService{
		people:   people,
		graph:    graph,
		maxLinks: maxLinks,
	}
}

// Graph exposes the underlying kinship graph for reports.
func (s *KinshipService) Graph() *kinship.Graph {
	return s.graph
}

// Person returns the identity record for an ID, if one was loaded.
func (s *KinshipService) Person(id domain.PersonID) (domain.Person, bool) {
	p, ok := s.people[id]
	return p, ok
}

func (s *KinshipService) ref(id domain.PersonID) PersonRef {
	p, ok := s.people[id]
	if !ok {
		return PersonRef{ID: id}
	}
	return PersonRef{
		ID:        id,
		Name:      p.Name,
		Sex:       p.Sex,
		BirthYear: p.BirthYear,
	}
}

// Relationship names the relationship between two people, decorated with
// identity details for both endpoints. The service-wide link ceiling applies.
func (s *KinshipService) Relationship(a, b domain.PersonID) (RelationshipResult, error) {
	return s.RelationshipWithin(a, b, s.maxLinks)
}

// RelationshipWithin is Relationship with an explicit link ceiling; zero or
// negative means unbounded.
func (s *KinshipService) RelationshipWithin(a, b domain.PersonID, maxLinks int) (RelationshipResult, error) {
	rel, err := kinship.FindRelationship(s.graph, a, b, maxLinks)
	if err != nil {
		return RelationshipResult{}, err
	}
	return RelationshipResult{
		From:    s.ref(a),
		To:      s.ref(b),
		Name:    rel.Name,
		Links:   rel.Links,
		Related: rel.Related,
	}, nil
}

// Distances returns the all-pairs shortest-distance table and its next-hop
// tree, computing them on first call and caching the result.
func (s *KinshipService) Distances() (kinship.DistanceTable, kinship.PathTree, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.distances != nil {
		return s.distances, s.tree, nil
	}
	dist, tree, err := kinship.AllPairsShortestPaths(s.graph)
	if err != nil {
		return nil, nil, err
	}
	s.distances = dist
	s.tree = tree
	return dist, tree, nil
}

// PathBetween reconstructs a shortest path between two people from the
// cached next-hop tree, annotating each hop with the relation taken.
func (s *KinshipService) PathBetween(a, b domain.PersonID) (PathResult, error) {
	for _, id := range []domain.PersonID{a, b} {
		if !s.graph.Has(id) {
			return PathResult{}, fmt.Errorf("%w: %d", kinship.ErrPersonNotFound, id)
		}
	}

	_, tree, err := s.Distances()
	if err != nil {
		return PathResult{}, err
	}

	ids := kinship.ReconstructPath(tree, a, b)
	result := PathResult{From: s.ref(a), To: s.ref(b)}
	if ids == nil {
		return result, nil
	}
	result.Related = true
	result.Distance = len(ids) - 1
	result.Hops = make([]PathHop, 0, len(ids))
	for i, id := range ids {
		hop := PathHop{Person: s.ref(id)}
		if i > 0 {
			rel, _ := s.graph.Relation(ids[i-1], id)
			hop.Rel = rel
		}
		result.Hops = append(result.Hops, hop)
	}
	return result, nil
}

// Relatives lists a person's first-order connections with the relation kind.
func (s *KinshipService) Relatives(id domain.PersonID) ([]Relative, error) {
	if !s.graph.Has(id) {
		return nil, fmt.Errorf("%w: %d", kinship.ErrPersonNotFound, id)
	}
	neighbors := s.graph.Neighbors(id)
	relatives := make([]Relative, 0, len(neighbors))
	for _, nb := range neighbors {
		rel, _ := s.graph.Relation(id, nb)
		relatives = append(relatives, Relative{Person: s.ref(nb), Rel: rel})
	}
	return relatives, nil
}

// Summary reports whole-network figures.
func (s *KinshipService) Summary() NetworkSummary {
	components := s.graph.Components()
	sizes := make([]int, 0, len(components))
	for _, c := range components {
		sizes = append(sizes, len(c))
	}

	order := s.graph.Order()
	edges := s.graph.EdgeCount()
	avg := 0.0
	if order > 0 {
		avg = float64(2*edges) / float64(order)
	}
	return NetworkSummary{
		People:         order,
		Edges:          edges,
		AverageDegree:  avg,
		Components:     len(components),
		ComponentSizes: sizes,
	}
}
