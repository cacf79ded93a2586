package kinship_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/kinship"
)

// buildVillage assembles the shared fixture: three generations around
// grandparent couple 10/11, a marriage into the family (5), a disjoint
// couple 100/101 and an isolated person 200.
//
//	10 ═ 11         (founders)
//	 ├─ 12 ═ 22      ├─ 13 ═ 23
//	 │   ├─ 1 ═ 5    │   └─ 3
//	 │   │   └─ 6
//	 │   └─ 2
//	100 ═ 101        200
func buildVillage(t *testing.T) *kinship.Graph {
	t.Helper()

	parents := map[domain.PersonID]kinship.Parentage{
		1:   {Father: 12, Mother: 22},
		2:   {Father: 12, Mother: 22},
		3:   {Father: 13, Mother: 23},
		6:   {Father: 1, Mother: 5},
		12:  {Father: 10, Mother: 11},
		13:  {Father: 10, Mother: 11},
		200: {},
	}
	spouses := map[domain.PersonID][]domain.PersonID{
		1: {5}, 5: {1},
		10: {11}, 11: {10},
		12: {22}, 22: {12},
		13: {23}, 23: {13},
		100: {101}, 101: {100},
	}

	g, err := kinship.BuildGraph(parents, spouses)
	require.NoError(t, err)
	return g
}

// TestBuildGraph_InversePairs verifies that a single source fact always
// yields both edge directions with inverse kinds.
func TestBuildGraph_InversePairs(t *testing.T) {
	g := buildVillage(t)

	rel, ok := g.Relation(1, 12)
	require.True(t, ok)
	require.Equal(t, kinship.RelParent, rel)

	rel, ok = g.Relation(12, 1)
	require.True(t, ok)
	require.Equal(t, kinship.RelChild, rel)

	rel, ok = g.Relation(1, 5)
	require.True(t, ok)
	require.Equal(t, kinship.RelSpouse, rel)

	rel, ok = g.Relation(5, 1)
	require.True(t, ok)
	require.Equal(t, kinship.RelSpouse, rel)

	_, ok = g.Relation(1, 10)
	require.False(t, ok, "grandparent is not a first-order relation")
}

// TestBuildGraph_ReferencedOnlyPersons checks that persons appearing only as
// someone's relative still become nodes with the implied edges.
func TestBuildGraph_ReferencedOnlyPersons(t *testing.T) {
	parents := map[domain.PersonID]kinship.Parentage{
		7: {Father: 8},
	}
	g, err := kinship.BuildGraph(parents, nil)
	require.NoError(t, err)

	require.True(t, g.Has(8))
	rel, ok := g.Relation(8, 7)
	require.True(t, ok)
	require.Equal(t, kinship.RelChild, rel)
}

// TestBuildGraph_IsolatedPerson checks that a person with no relations at
// all is still a node of the graph.
func TestBuildGraph_IsolatedPerson(t *testing.T) {
	g := buildVillage(t)
	require.True(t, g.Has(200))
	require.Equal(t, 0, g.Degree(200))
}

// TestBuildGraph_ConflictingRelation asserts that contradictory source data
// aborts the build rather than being silently resolved.
func TestBuildGraph_ConflictingRelation(t *testing.T) {
	parents := map[domain.PersonID]kinship.Parentage{
		1: {Father: 2},
	}
	spouses := map[domain.PersonID][]domain.PersonID{
		1: {2},
	}
	g, err := kinship.BuildGraph(parents, spouses)
	require.ErrorIs(t, err, kinship.ErrDataIntegrity)
	require.Nil(t, g, "no partial graph on integrity failure")
}

func TestBuildGraph_SelfParentIsIntegrityError(t *testing.T) {
	parents := map[domain.PersonID]kinship.Parentage{
		1: {Father: 1},
	}
	_, err := kinship.BuildGraph(parents, nil)
	require.ErrorIs(t, err, kinship.ErrDataIntegrity)
}

func TestGraph_CountsAndNeighbors(t *testing.T) {
	g := buildVillage(t)

	require.Equal(t, 14, g.Order())
	// Six persons with two recorded parents each, plus five marriages.
	require.Equal(t, 17, g.EdgeCount())

	require.Equal(t, []domain.PersonID{5, 6, 12, 22}, g.Neighbors(1))
	require.Equal(t, 5, g.Degree(12))
}

// TestGraph_Components verifies deterministic component discovery: the main
// family, the disjoint couple, and the isolated person.
func TestGraph_Components(t *testing.T) {
	g := buildVillage(t)

	comps := g.Components()
	require.Len(t, comps, 3)
	require.Equal(t, []domain.PersonID{1, 2, 3, 5, 6, 10, 11, 12, 13, 22, 23}, comps[0])
	require.Equal(t, []domain.PersonID{100, 101}, comps[1])
	require.Equal(t, []domain.PersonID{200}, comps[2])
}
