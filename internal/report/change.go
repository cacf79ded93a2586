package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/genealogy"
)

// HouseholdDelta describes how one household's membership changed between
// two consecutive surveys. Newcomers split into those born into the
// household and those who immigrated; departures split into deaths and
// emigrations, judged by the best-known death year.
type HouseholdDelta struct {
	Household  string
	FromYear   int
	ToYear     int
	OrigSize   int
	Born       []domain.PersonID
	Immigrated []domain.PersonID
	Died       []domain.PersonID
	Emigrated  []domain.PersonID
}

// Turnover is the total number of membership changes between the surveys.
func (d HouseholdDelta) Turnover() int {
	return len(d.Born) + len(d.Immigrated) + len(d.Died) + len(d.Emigrated)
}

// HouseholdDeltas computes deltas for one household across all consecutive
// survey pairs. Intervals where the household did not yet exist produce no
// delta; people whose birth or death years cannot be resolved are classified
// conservatively (newcomers unclassified, departures as emigrations) and
// reported as warnings.
func HouseholdDeltas(
	membership map[domain.PersonID]domain.HouseholdMembership,
	people map[domain.PersonID]domain.Person,
	hh string,
) ([]HouseholdDelta, []string) {
	var deltas []HouseholdDelta
	var warnings []string

	for i := 1; i < len(domain.SurveyYears); i++ {
		fromYear, toYear := domain.SurveyYears[i-1], domain.SurveyYears[i]
		oldSet := toSet(genealogy.Members(membership, hh, fromYear))
		newSet := toSet(genealogy.Members(membership, hh, toYear))
		if len(oldSet) == 0 {
			warnings = append(warnings, fmt.Sprintf(
				"household %s did not exist in %d", hh, fromYear))
			continue
		}

		delta := HouseholdDelta{
			Household: hh,
			FromYear:  fromYear,
			ToYear:    toYear,
			OrigSize:  len(oldSet),
		}
		for _, id := range sortedDiff(newSet, oldSet) {
			p, ok := people[id]
			if !ok || p.BirthYear == "" {
				warnings = append(warnings, fmt.Sprintf(
					"unknown birth year for ID %d", id))
				continue
			}
			born, err := genealogy.YearOf(p.BirthYear)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf(
					"unparseable birth year %q for ID %d", p.BirthYear, id))
				continue
			}
			if fromYear > born {
				delta.Immigrated = append(delta.Immigrated, id)
			} else {
				delta.Born = append(delta.Born, id)
			}
		}
		for _, id := range sortedDiff(oldSet, newSet) {
			p := people[id]
			if p.BestDOD == "" {
				delta.Emigrated = append(delta.Emigrated, id)
				continue
			}
			dod, err := genealogy.YearOf(p.BestDOD)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf(
					"unparseable death year %q for ID %d", p.BestDOD, id))
				delta.Emigrated = append(delta.Emigrated, id)
				continue
			}
			if dod > toYear {
				delta.Emigrated = append(delta.Emigrated, id)
			} else {
				delta.Died = append(delta.Died, id)
			}
		}
		deltas = append(deltas, delta)
	}
	return deltas, warnings
}

func toSet(ids []domain.PersonID) map[domain.PersonID]bool {
	set := make(map[domain.PersonID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// sortedDiff returns the members of a not in b, ascending.
func sortedDiff(a, b map[domain.PersonID]bool) []domain.PersonID {
	var diff []domain.PersonID
	for id := range a {
		if !b[id] {
			diff = append(diff, id)
		}
	}
	sort.Slice(diff, func(i, j int) bool { return diff[i] < diff[j] })
	return diff
}

// WriteHouseholdDeltas emits deltas as a plain-text change report.
func WriteHouseholdDeltas(w io.Writer, deltas []HouseholdDelta) error {
	for _, d := range deltas {
		pct := 100 * float64(d.Turnover()) / float64(d.OrigSize)
		_, err := fmt.Fprintf(w,
			"%d to %d\n  orig size: %d\n  turnover: %d (%.1f%%)\n"+
				"        born: + %d %v\n  immigrated: + %d %v\n"+
				"   emigrated: - %d %v\n        died: - %d %v\n",
			d.FromYear, d.ToYear, d.OrigSize, d.Turnover(), pct,
			len(d.Born), d.Born, len(d.Immigrated), d.Immigrated,
			len(d.Emigrated), d.Emigrated, len(d.Died), d.Died)
		if err != nil {
			return err
		}
	}
	return nil
}
