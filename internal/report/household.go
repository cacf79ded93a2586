package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/genealogy"
	"github.com/mwhitby/kinship/internal/kinship"
)

// HouseholdStat summarizes one household in one survey year: member count,
// median pairwise kinship distance among the members, and the household's
// wealth quartile.
type HouseholdStat struct {
	Household  string
	Year       int
	Size       int
	MedianDist float64
	Wealth     string
}

// HouseholdStats computes per-household-year statistics from the all-pairs
// distance table. Household-years with a single member, or whose members are
// all mutually unrelated, produce no row; those and members absent from the
// network are reported as warnings.
func HouseholdStats(
	dist kinship.DistanceTable,
	membership map[domain.PersonID]domain.HouseholdMembership,
	wealth map[string]map[int]domain.WealthEstimate,
) ([]HouseholdStat, []string) {
	var stats []HouseholdStat
	var warnings []string

	for _, hh := range genealogy.Households(membership) {
		for _, year := range domain.SurveyYears {
			members := genealogy.Members(membership, hh, year)
			if len(members) == 0 {
				continue
			}

			var dists []int
			for i, a := range members {
				if _, ok := dist[a]; !ok {
					warnings = append(warnings, fmt.Sprintf(
						"unknown ID %d [household %s, %d]", a, hh, year))
					continue
				}
				for _, b := range members[i+1:] {
					if d, ok := dist.Distance(a, b); ok {
						dists = append(dists, d)
					}
				}
			}
			if len(dists) == 0 {
				warnings = append(warnings, fmt.Sprintf(
					"no median distance for household %s in %d", hh, year))
				continue
			}

			stat := HouseholdStat{
				Household:  hh,
				Year:       year,
				Size:       len(members),
				MedianDist: median(dists),
			}
			if est, ok := wealth[hh][year]; ok {
				stat.Wealth = est.Mode
			}
			stats = append(stats, stat)
		}
	}
	return stats, warnings
}

func median(dists []int) float64 {
	sort.Ints(dists)
	mid := len(dists) / 2
	if len(dists)%2 == 1 {
		return float64(dists[mid])
	}
	return float64(dists[mid-1]+dists[mid]) / 2
}

// WriteHouseholdStats emits household statistics as CSV.
func WriteHouseholdStats(w io.Writer, stats []HouseholdStat) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Household ID", "Year", "Size", "Median Dist", "Wealth"}); err != nil {
		return err
	}
	for _, s := range stats {
		row := []string{
			s.Household,
			strconv.Itoa(s.Year),
			strconv.Itoa(s.Size),
			strconv.FormatFloat(s.MedianDist, 'f', 1, 64),
			s.Wealth,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
