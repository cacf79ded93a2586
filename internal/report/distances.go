// Package report produces the analysis outputs derived from the kinship
// network and the survey records: the all-pairs distance dump, household
// statistics, degree and cohesion reports, migration flows, and household
// change summaries. All writers emit to an io.Writer supplied by the caller.
package report

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/kinship"
)

// WriteDistances dumps the all-pairs distance table as CSV, one row per
// unordered pair in ascending ID order. Unrelated pairs get an empty
// distance field.
func WriteDistances(w io.Writer, dist kinship.DistanceTable) error {
	ids := make([]domain.PersonID, 0, len(dist))
	for id := range dist {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"A's ID", "B's ID", "Distance from A to B"}); err != nil {
		return err
	}
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			field := ""
			if d, ok := dist.Distance(a, b); ok {
				field = strconv.Itoa(d)
			}
			row := []string{strconv.Itoa(int(a)), strconv.Itoa(int(b)), field}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
