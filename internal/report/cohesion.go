package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/genealogy"
	"github.com/mwhitby/kinship/internal/kinship"
)

// CohesionRow reports how tightly knit a household was in one survey year:
// the member count, the largest finite kinship distance between any two
// members, and any members unrelated to everyone else in the household.
type CohesionRow struct {
	Household     string
	Year          int
	NodeCount     int
	MaxFiniteDist int
	Unrelated     []domain.PersonID
}

// HouseholdCohesion computes a cohesion row for every household-year with
// members, ordered by year then household.
func HouseholdCohesion(
	dist kinship.DistanceTable,
	membership map[domain.PersonID]domain.HouseholdMembership,
) []CohesionRow {
	var rows []CohesionRow
	households := genealogy.Households(membership)

	for _, year := range domain.SurveyYears {
		for _, hh := range households {
			members := genealogy.Members(membership, hh, year)
			if len(members) == 0 {
				continue
			}

			row := CohesionRow{Household: hh, Year: year, NodeCount: len(members)}
			for _, a := range members {
				related := false
				for _, b := range members {
					if a == b {
						continue
					}
					d, ok := dist.Distance(a, b)
					if !ok {
						continue
					}
					related = true
					if d > row.MaxFiniteDist {
						row.MaxFiniteDist = d
					}
				}
				if !related && len(members) > 1 {
					row.Unrelated = append(row.Unrelated, a)
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteHouseholdCohesion emits cohesion rows as CSV.
func WriteHouseholdCohesion(w io.Writer, rows []CohesionRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Household", "Year", "Node Count", "Max Finite Kinship Dist"}); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			r.Household,
			strconv.Itoa(r.Year),
			strconv.Itoa(r.NodeCount),
			strconv.Itoa(r.MaxFiniteDist),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
