package kinship_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/kinship"
)

func TestAllPairsShortestPaths_Distances(t *testing.T) {
	g := buildVillage(t)

	dist, _, err := kinship.AllPairsShortestPaths(g)
	require.NoError(t, err)

	cases := []struct {
		a, b domain.PersonID
		want int
	}{
		{1, 1, 0},
		{1, 12, 1},
		{1, 5, 1},
		{1, 2, 2},
		{1, 10, 2},
		{1, 3, 4},
		{5, 2, 3},
		{10, 6, 3},
		{100, 101, 1},
	}
	for _, tc := range cases {
		d, ok := dist.Distance(tc.a, tc.b)
		require.True(t, ok, "pair %d,%d should be connected", tc.a, tc.b)
		require.Equal(t, tc.want, d, "pair %d,%d", tc.a, tc.b)
	}

	_, ok := dist.Distance(1, 100)
	require.False(t, ok, "disjoint components stay unconnected")
	_, ok = dist.Distance(200, 1)
	require.False(t, ok, "isolated person stays unconnected")
}

// TestAllPairsShortestPaths_Symmetry checks the invariant the engine audits
// itself: dist(a,b) == dist(b,a) for every finite pair.
func TestAllPairsShortestPaths_Symmetry(t *testing.T) {
	g := buildVillage(t)

	dist, _, err := kinship.AllPairsShortestPaths(g)
	require.NoError(t, err)

	for a, row := range dist {
		for b, d := range row {
			back, ok := dist.Distance(b, a)
			require.True(t, ok)
			require.Equal(t, d, back, "pair %d,%d", a, b)
		}
	}
}

// TestAllPairsShortestPaths_Idempotent runs the engine twice on the same
// graph and expects identical tables.
func TestAllPairsShortestPaths_Idempotent(t *testing.T) {
	g := buildVillage(t)

	dist1, tree1, err := kinship.AllPairsShortestPaths(g)
	require.NoError(t, err)
	dist2, tree2, err := kinship.AllPairsShortestPaths(g)
	require.NoError(t, err)

	require.Equal(t, dist1, dist2)
	require.Equal(t, tree1, tree2)
}

// TestReconstructPath verifies the round-trip property: the reconstructed
// path has exactly distance+1 entries and walks real edges.
func TestReconstructPath(t *testing.T) {
	g := buildVillage(t)

	dist, tree, err := kinship.AllPairsShortestPaths(g)
	require.NoError(t, err)

	for _, a := range g.IDs() {
		for _, b := range g.IDs() {
			path := kinship.ReconstructPath(tree, a, b)
			d, connected := dist.Distance(a, b)
			if !connected {
				require.Empty(t, path, "pair %d,%d", a, b)
				continue
			}
			require.Len(t, path, d+1, "pair %d,%d", a, b)
			require.Equal(t, a, path[0])
			require.Equal(t, b, path[len(path)-1])
			for i := 1; i < len(path); i++ {
				_, ok := g.Relation(path[i-1], path[i])
				require.True(t, ok, "hop %d→%d is not an edge", path[i-1], path[i])
			}
		}
	}
}

func TestReconstructPath_Unrelated(t *testing.T) {
	g := buildVillage(t)

	_, tree, err := kinship.AllPairsShortestPaths(g)
	require.NoError(t, err)

	require.Empty(t, kinship.ReconstructPath(tree, 1, 100))
	require.Empty(t, kinship.ReconstructPath(tree, 999, 1))
	require.Equal(t, []domain.PersonID{1}, kinship.ReconstructPath(tree, 1, 1))
}
