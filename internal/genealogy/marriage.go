package genealogy

import (
	"fmt"
	"io"
	"strings"

	"github.com/mwhitby/kinship/internal/domain"
)

// Marriage file column names.
const (
	colHusbandName = "Husband Name"
	colHusbandID   = "Husband ID Number"
	colWifeName    = "Wife Name"
	colWifeID      = "Wife ID Number"
	colMarrType    = "Marriage Type"
	colMarrDate    = "Date of Marriage"
	colFirstChild  = "Date First Child's Birth"
	colDivorceDate = "Date of Divorce"
	colWidowDate   = "Date of Widow-hood"
)

// MarriageSet is the parsed marriage file: every individual's marriage
// pairs, plus per-pair metadata.
type MarriageSet struct {
	ByPerson map[domain.PersonID][]domain.SpousePair
	ByPair   map[domain.SpousePair]domain.Marriage
}

// SpouseSets flattens the marriage pairs into the spouse-ID mapping the
// graph builder consumes.
func (m MarriageSet) SpouseSets() map[domain.PersonID][]domain.PersonID {
	spouses := make(map[domain.PersonID][]domain.PersonID, len(m.ByPerson))
	for id, pairs := range m.ByPerson {
		for _, pair := range pairs {
			spouses[id] = append(spouses[id], pair.Other(id))
		}
	}
	return spouses
}

// LoadMarriages parses the marriage CSV. Pairs are normalized once, lower
// ID first regardless of role. Rows missing either ID are skipped in
// lenient mode and an error otherwise. A missing marriage date falls back to
// the first child's birth date; the end reason is derived from whichever of
// the divorce and widowhood dates is present.
func LoadMarriages(r io.Reader, lenient bool) (MarriageSet, error) {
	rows, err := readRows(r)
	if err != nil {
		return MarriageSet{}, fmt.Errorf("marriage file: %w", err)
	}

	set := MarriageSet{
		ByPerson: make(map[domain.PersonID][]domain.SpousePair),
		ByPair:   make(map[domain.SpousePair]domain.Marriage, len(rows)),
	}
	for _, rec := range rows {
		hid, herr := parseID(rec[colHusbandID])
		wid, werr := parseID(rec[colWifeID])
		if herr != nil || werr != nil || hid == 0 || wid == 0 {
			if lenient {
				continue
			}
			return MarriageSet{}, fmt.Errorf("marriage file: missing husband or wife ID: %v", rec)
		}

		pair := domain.NewSpousePair(hid, wid)
		set.ByPerson[hid] = append(set.ByPerson[hid], pair)
		set.ByPerson[wid] = append(set.ByPerson[wid], pair)

		marrType := rec[colMarrType]
		if marrType == "" {
			marrType = "standard"
		}
		date := rec[colMarrDate]
		if date == "" {
			date = rec[colFirstChild]
		}
		endDate := rec[colDivorceDate]
		endReason := ""
		if rec[colDivorceDate] != "" {
			endReason = "divorce"
		} else if rec[colWidowDate] != "" {
			endDate = rec[colWidowDate]
			endReason = "death of spouse"
		}

		set.ByPair[pair] = domain.Marriage{
			Pair:      pair,
			HusbandID: hid,
			WifeID:    wid,
			Type:      marrType,
			Date:      date,
			EndDate:   endDate,
			EndReason: endReason,
		}
	}

	return set, nil
}

// VerifyMarriages reads the marriage CSV and reports rows whose IDs are
// missing or belong to nobody in the identity records, whose recorded sexes
// contradict the husband/wife roles, or whose names disagree with the
// identity file. Sex mismatches are data errors in this dataset, not
// non-traditional marriages.
func VerifyMarriages(r io.Reader, people map[domain.PersonID]domain.Person) ([]string, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, fmt.Errorf("marriage file: %w", err)
	}

	var problems []string
	for _, rec := range rows {
		hid, herr := parseID(rec[colHusbandID])
		wid, werr := parseID(rec[colWifeID])
		if herr != nil || werr != nil || hid == 0 || wid == 0 {
			problems = append(problems, fmt.Sprintf("missing husband or wife ID number: %v", rec))
			continue
		}
		husband, ok := people[hid]
		if !ok {
			problems = append(problems, fmt.Sprintf("non-existent ID in marriage: %d (%s)", hid, rec[colHusbandName]))
			continue
		}
		wife, ok := people[wid]
		if !ok {
			problems = append(problems, fmt.Sprintf("non-existent ID in marriage: %d (%s)", wid, rec[colWifeName]))
			continue
		}

		label := fmt.Sprintf("marriage %d-%d", hid, wid)
		if husband.Sex != "M" {
			problems = append(problems, fmt.Sprintf("%s: husband is not male", label))
		}
		if wife.Sex != "F" {
			problems = append(problems, fmt.Sprintf("%s: wife is not female", label))
		}
		if name := strings.TrimSpace(rec[colHusbandName]); name != "" && name != husband.Name {
			problems = append(problems, fmt.Sprintf("name discrepancy: %q vs. %q", husband.Name, name))
		}
		if name := strings.TrimSpace(rec[colWifeName]); name != "" && name != wife.Name {
			problems = append(problems, fmt.Sprintf("name discrepancy: %q vs. %q", wife.Name, name))
		}
	}

	return problems, nil
}
