package kinship_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/kinship"
)

func TestFindRelationship_Self(t *testing.T) {
	g := buildVillage(t)
	rel, err := kinship.FindRelationship(g, 1, 1, 0)
	require.NoError(t, err)
	require.True(t, rel.Related)
	require.Equal(t, "self", rel.Name)
	require.Equal(t, 0, rel.Links)
}

func TestFindRelationship_UnknownID(t *testing.T) {
	g := buildVillage(t)

	_, err := kinship.FindRelationship(g, 1, 999, 0)
	require.ErrorIs(t, err, kinship.ErrPersonNotFound)

	_, err = kinship.FindRelationship(g, 999, 1, 0)
	require.ErrorIs(t, err, kinship.ErrPersonNotFound)
}

// TestFindRelationship_Names walks the fixture family and checks that the
// shortest chain is found and named from the first person's perspective.
func TestFindRelationship_Names(t *testing.T) {
	g := buildVillage(t)

	cases := []struct {
		label string
		a, b  domain.PersonID
		name  string
		links int
	}{
		{"parent", 1, 12, "parent", 1},
		{"child", 12, 1, "child", 1},
		{"spouse", 1, 5, "spouse", 1},
		{"sibling", 1, 2, "sibling", 2},
		{"grandparent", 1, 10, "grandparent", 2},
		{"grandchild", 10, 1, "grandchild", 2},
		{"great-grandchild", 10, 6, "great-grandchild", 3},
		{"first cousin", 1, 3, "first cousin", 4},
		{"sibling-in-law", 5, 2, "spouse's sibling", 3},
		{"uncle-side", 6, 2, "parent's sibling", 3},
	}

	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			rel, err := kinship.FindRelationship(g, tc.a, tc.b, 0)
			require.NoError(t, err)
			require.True(t, rel.Related)
			require.Equal(t, tc.name, rel.Name)
			require.Equal(t, tc.links, rel.Links)
		})
	}
}

// TestFindRelationship_Siblings is the canonical two-children-one-father
// scenario: both children linked through inverse parent/child edges.
func TestFindRelationship_Siblings(t *testing.T) {
	parents := map[domain.PersonID]kinship.Parentage{
		2: {Father: 1},
		3: {Father: 1},
	}
	g, err := kinship.BuildGraph(parents, nil)
	require.NoError(t, err)

	rel, err := kinship.FindRelationship(g, 2, 3, 0)
	require.NoError(t, err)
	require.True(t, rel.Related)
	require.Equal(t, "sibling", rel.Name)
}

// TestFindRelationship_Disjoint verifies that unconnected components give a
// not-related result, not an error.
func TestFindRelationship_Disjoint(t *testing.T) {
	g := buildVillage(t)

	rel, err := kinship.FindRelationship(g, 1, 100, 0)
	require.NoError(t, err)
	require.False(t, rel.Related)

	rel, err = kinship.FindRelationship(g, 200, 2, 0)
	require.NoError(t, err)
	require.False(t, rel.Related)
}

// TestFindRelationship_MaxLinks checks the hop ceiling: the relationship is
// withheld when it sits beyond the ceiling and reported once it fits.
func TestFindRelationship_MaxLinks(t *testing.T) {
	g := buildVillage(t)

	rel, err := kinship.FindRelationship(g, 1, 10, 1)
	require.NoError(t, err)
	require.False(t, rel.Related, "grandparent is two links away")

	rel, err = kinship.FindRelationship(g, 1, 10, 2)
	require.NoError(t, err)
	require.True(t, rel.Related)
	require.Equal(t, "grandparent", rel.Name)
}

// TestFindRelationship_ChainIsValidWalk verifies that the returned chain
// really walks the graph edge by edge from a to b.
func TestFindRelationship_ChainIsValidWalk(t *testing.T) {
	g := buildVillage(t)

	rel, err := kinship.FindRelationship(g, 1, 3, 0)
	require.NoError(t, err)
	require.True(t, rel.Related)

	prev := rel.Chain[0].ID
	require.Equal(t, domain.PersonID(1), prev)
	for _, step := range rel.Chain[1:] {
		if step.Rel == kinship.RelSelf {
			require.Equal(t, prev, step.ID, "merged self step names the meeting point")
			continue
		}
		got, ok := g.Relation(prev, step.ID)
		require.True(t, ok, "chain step %d→%d is not an edge", prev, step.ID)
		require.Equal(t, step.Rel, got)
		prev = step.ID
	}
	require.Equal(t, domain.PersonID(3), prev)
}

// TestFindRelationship_Deterministic repeats a query with several
// equal-length kinship paths and expects an identical chain every time.
func TestFindRelationship_Deterministic(t *testing.T) {
	g := buildVillage(t)

	first, err := kinship.FindRelationship(g, 1, 3, 0)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := kinship.FindRelationship(g, 1, 3, 0)
		require.NoError(t, err)
		require.Equal(t, first.Chain, again.Chain)
	}
}

// TestFindRelationship_AgreesWithAllPairs cross-checks the two algorithm
// tiers: for every connected pair the BFS chain length must equal the
// Floyd–Warshall distance.
func TestFindRelationship_AgreesWithAllPairs(t *testing.T) {
	g := buildVillage(t)

	dist, _, err := kinship.AllPairsShortestPaths(g)
	require.NoError(t, err)

	ids := g.IDs()
	for _, a := range ids {
		for _, b := range ids {
			rel, err := kinship.FindRelationship(g, a, b, 0)
			require.NoError(t, err)
			d, connected := dist.Distance(a, b)
			require.Equal(t, connected, rel.Related, "pair %d,%d", a, b)
			if connected {
				require.Equal(t, d, rel.Links, "pair %d,%d", a, b)
			}
		}
	}
}
