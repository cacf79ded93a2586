package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/genealogy"
	"github.com/mwhitby/kinship/internal/kinship"
)

// HeadTable maps household name to the household head's ID per survey year.
// The head assignments come from fieldwork notes rather than the survey
// files, so callers supply them as data.
type HeadTable map[string]map[int]domain.PersonID

// IsHead reports whether id headed the household in any survey year.
func (t HeadTable) IsHead(hh string, id domain.PersonID) bool {
	for _, year := range domain.SurveyYears {
		if t[hh][year] == id {
			return true
		}
	}
	return false
}

// DegreeDistribution counts, for the given people, how many have each
// first-order relative count. The count includes deceased relatives; the
// network keeps everyone who ever appeared in the records.
func DegreeDistribution(g *kinship.Graph, ids []domain.PersonID) map[int]int {
	degrees := make(map[int]int)
	for _, id := range ids {
		if !g.Has(id) {
			continue
		}
		degrees[g.Degree(id)]++
	}
	return degrees
}

// MemberDegree is one row of the per-member degree report.
type MemberDegree struct {
	ID        domain.PersonID
	Household string
	Degree    int
	IsHead    bool
	Gender    string
}

// MemberDegrees lists every household member in the given survey year with
// their relative count, head-of-household flag, and gender. Members absent
// from the network are skipped and reported as warnings.
func MemberDegrees(
	g *kinship.Graph,
	membership map[domain.PersonID]domain.HouseholdMembership,
	people map[domain.PersonID]domain.Person,
	heads HeadTable,
	year int,
) ([]MemberDegree, []string) {
	var rows []MemberDegree
	var warnings []string

	for _, hh := range genealogy.Households(membership) {
		for _, id := range genealogy.Members(membership, hh, year) {
			if !g.Has(id) {
				warnings = append(warnings, fmt.Sprintf(
					"ID %d [household %s] is not in the network", id, hh))
				continue
			}
			rows = append(rows, MemberDegree{
				ID:        id,
				Household: hh,
				Degree:    g.Degree(id),
				IsHead:    heads.IsHead(hh, id),
				Gender:    people[id].Sex,
			})
		}
	}
	return rows, warnings
}

// WriteMemberDegrees emits the per-member degree report as CSV.
func WriteMemberDegrees(w io.Writer, rows []MemberDegree) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Household", "Degree", "IsHouseholdHead", "Gender"}); err != nil {
		return err
	}
	for _, r := range rows {
		head := "FALSE"
		if r.IsHead {
			head = "TRUE"
		}
		row := []string{
			strconv.Itoa(int(r.ID)),
			r.Household,
			strconv.Itoa(r.Degree),
			head,
			r.Gender,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
