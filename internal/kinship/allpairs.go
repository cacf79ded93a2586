package kinship

import (
	"fmt"

	"github.com/mwhitby/kinship/internal/domain"
)

// DistanceTable maps ordered person pairs to the minimum number of kinship
// links between them. Only finite pairs are present; the table is symmetric
// by construction and includes a zero entry for every person with itself.
type DistanceTable map[domain.PersonID]map[domain.PersonID]int

// Distance returns the link count between a and b, if they are connected.
func (t DistanceTable) Distance(a, b domain.PersonID) (int, bool) {
	d, ok := t[a][b]
	return d, ok
}

// PathTree maps ordered person pairs to the next hop along one shortest
// path: tree[a][b] is a first-order relative of a that is the best next
// link toward b. Paired with ReconstructPath it regenerates any shortest
// path without re-running search.
type PathTree map[domain.PersonID]map[domain.PersonID]domain.PersonID

// AllPairsShortestPaths computes the distance table and shortest-path tree
// for every connected pair in the population using Floyd–Warshall: direct
// edges seed distance 1, every person is at distance 0 from themselves, and
// each candidate intermediate that strictly shortens a pair updates both the
// distance and the pair's next hop. O(n³) in population size, which is
// acceptable for a few thousand individuals; single-pair queries on large
// graphs should use FindRelationship instead.
//
// The result must be symmetric; an asymmetric table means corrupt input or
// an algorithmic bug and is reported as ErrDataIntegrity.
func AllPairsShortestPaths(g *Graph) (DistanceTable, PathTree, error) {
	ids := g.IDs()

	dist := make(DistanceTable, len(ids))
	tree := make(PathTree, len(ids))
	for _, i := range ids {
		dist[i] = map[domain.PersonID]int{i: 0}
		tree[i] = map[domain.PersonID]domain.PersonID{i: i}
		for _, j := range g.Neighbors(i) {
			dist[i][j] = 1
			tree[i][j] = j
		}
	}

	for _, k := range ids {
		for _, i := range ids {
			dik, ok := dist[i][k]
			if !ok {
				continue
			}
			for _, j := range ids {
				dkj, ok := dist[k][j]
				if !ok {
					continue
				}
				if dij, ok := dist[i][j]; !ok || dik+dkj < dij {
					dist[i][j] = dik + dkj
					tree[i][j] = tree[i][k]
				}
			}
		}
	}

	for _, i := range ids {
		for j, dij := range dist[i] {
			dji, ok := dist[j][i]
			if !ok {
				return nil, nil, fmt.Errorf(
					"%w: distance %d→%d is %d but %d→%d is unset",
					ErrDataIntegrity, i, j, dij, j, i)
			}
			if dji != dij {
				return nil, nil, fmt.Errorf(
					"%w: distance %d→%d is %d but %d→%d is %d",
					ErrDataIntegrity, i, j, dij, j, i, dji)
			}
		}
	}

	return dist, tree, nil
}

// ReconstructPath follows next hops from a toward b and returns the full
// shortest path including both endpoints, or an empty slice when the tree
// has no entry for the pair (the two are unrelated or unknown).
func ReconstructPath(tree PathTree, a, b domain.PersonID) []domain.PersonID {
	row, ok := tree[a]
	if !ok {
		return nil
	}
	if _, ok := row[b]; !ok {
		return nil
	}
	path := []domain.PersonID{a}
	link := a
	for link != b {
		link = tree[link][b]
		path = append(path, link)
	}
	return path
}
