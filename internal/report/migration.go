package report

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/mwhitby/kinship/internal/domain"
)

// Flow is a weighted directed edge in the household migration network: how
// many individuals moved from one household to another between two
// consecutive surveys.
type Flow struct {
	From   string
	To     string
	Weight int
}

// MigrationFlows derives household-to-household moves from membership data.
// Only moves between consecutive surveys count; years an individual was
// absent from the community break the sequence, so a move into or out of
// absence is not a flow. Each individual contributes at most once to any
// given flow. Flows are ordered by descending weight, then by household.
func MigrationFlows(membership map[domain.PersonID]domain.HouseholdMembership) []Flow {
	totals := make(map[[2]string]int)
	for _, m := range membership {
		seen := make(map[[2]string]bool)
		for i := 0; i < len(domain.SurveyYears)-1; i++ {
			from := m[domain.SurveyYears[i]]
			to := m[domain.SurveyYears[i+1]]
			if from == "" || to == "" || from == to {
				continue
			}
			seen[[2]string{from, to}] = true
		}
		for link := range seen {
			totals[link]++
		}
	}

	flows := make([]Flow, 0, len(totals))
	for link, weight := range totals {
		flows = append(flows, Flow{From: link[0], To: link[1], Weight: weight})
	}
	sort.Slice(flows, func(i, j int) bool {
		if flows[i].Weight != flows[j].Weight {
			return flows[i].Weight > flows[j].Weight
		}
		if flows[i].From != flows[j].From {
			return flows[i].From < flows[j].From
		}
		return flows[i].To < flows[j].To
	})
	return flows
}

// WriteMigrationFlows emits migration flows as CSV.
func WriteMigrationFlows(w io.Writer, flows []Flow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Source Household", "Target Household", "Weight"}); err != nil {
		return err
	}
	for _, f := range flows {
		if err := cw.Write([]string{f.From, f.To, strconv.Itoa(f.Weight)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
