package genealogy

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mwhitby/kinship/internal/domain"
)

// Master sheet column names. The 1986 membership column anomalously
// contains an "N"; the wealth column for the 1986 wave is labelled 1987.
const (
	colMemberNumber = "Number"
	colHH1986       = "Hhold N 1986"
	colHH1992       = "Hhold 1992"
	colHH1999       = "Hhold 1999"
	colHH2010       = "Hhold 2010"
	colWealth1986   = "Wealth 1987"
	colWealth1992   = "Wealth 1992"
	colWealth1999   = "Wealth 1999"
	colWealth2010   = "Wealth 2010"
)

var membershipColumns = map[int]string{
	1986: colHH1986,
	1992: colHH1992,
	1999: colHH1999,
	2010: colHH2010,
}

var wealthColumns = map[int]string{
	1986: colWealth1986,
	1992: colWealth1992,
	1999: colWealth1999,
	2010: colWealth2010,
}

// CanonicalHousehold cleans a raw household label from the master sheet:
// "3.00" becomes "3", "3.10" becomes "3.1", and the one ambiguous "3/3.1"
// entry in the data resolves to "3.1". Empty labels stay empty.
func CanonicalHousehold(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if value == "3/3.1" {
		return "3.1", nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", fmt.Errorf("invalid household label %q: %w", value, err)
	}
	if f == float64(int(f)) {
		return strconv.Itoa(int(f)), nil
	}
	return strconv.FormatFloat(f, 'f', 1, 64), nil
}

// LoadHouseholdMembership parses the master sheet into each individual's
// household of residence per survey year. Years the individual was not
// recorded in are absent from their membership map.
func LoadHouseholdMembership(r io.Reader) (map[domain.PersonID]domain.HouseholdMembership, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, fmt.Errorf("master sheet: %w", err)
	}

	membership := make(map[domain.PersonID]domain.HouseholdMembership, len(rows))
	for _, rec := range rows {
		id, err := parseID(rec[colMemberNumber])
		if err != nil || id == 0 {
			return nil, fmt.Errorf("master sheet: row missing member number: %v", rec)
		}
		m := make(domain.HouseholdMembership, len(membershipColumns))
		for _, year := range domain.SurveyYears {
			hh, err := CanonicalHousehold(rec[membershipColumns[year]])
			if err != nil {
				return nil, fmt.Errorf("master sheet: ID %d, year %d: %w", id, year, err)
			}
			if hh != "" {
				m[year] = hh
			}
		}
		membership[id] = m
	}

	return membership, nil
}

// LoadHouseholdWealth parses the master sheet into wealth estimates per
// household-year. The sheet reports wealth per individual row, so members of
// the same household in the same year should agree; where data errors make
// them disagree the most frequently reported quartile wins (ties broken by
// label, for determinism) and the disagreement is returned as a warning.
func LoadHouseholdWealth(r io.Reader) (map[string]map[int]domain.WealthEstimate, []string, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, nil, fmt.Errorf("master sheet: %w", err)
	}

	raw := make(map[string]map[int][]string)
	for _, rec := range rows {
		for _, year := range domain.SurveyYears {
			hh, err := CanonicalHousehold(rec[membershipColumns[year]])
			if err != nil {
				return nil, nil, fmt.Errorf("master sheet: %w", err)
			}
			if hh == "" {
				continue
			}
			if raw[hh] == nil {
				raw[hh] = make(map[int][]string)
			}
			raw[hh][year] = append(raw[hh][year], rec[wealthColumns[year]])
		}
	}

	var warnings []string
	wealth := make(map[string]map[int]domain.WealthEstimate, len(raw))
	for hh, years := range raw {
		wealth[hh] = make(map[int]domain.WealthEstimate, len(years))
		for year, values := range years {
			mode, unanimous := modeOf(values)
			if !unanimous {
				warnings = append(warnings, fmt.Sprintf(
					"wealth values for household %s (%d) vary: %v -- using %q", hh, year, values, mode))
			}
			wealth[hh][year] = domain.WealthEstimate{RawValues: values, Mode: mode}
		}
	}
	sort.Strings(warnings)

	return wealth, warnings, nil
}

func modeOf(values []string) (string, bool) {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	if len(counts) == 1 {
		return values[0], true
	}
	var mode string
	best := -1
	for v, n := range counts {
		if n > best || (n == best && v < mode) {
			mode, best = v, n
		}
	}
	return mode, false
}

// Households returns the sorted distinct household names appearing in the
// membership data.
func Households(membership map[domain.PersonID]domain.HouseholdMembership) []string {
	set := make(map[string]struct{})
	for _, m := range membership {
		for _, hh := range m {
			set[hh] = struct{}{}
		}
	}
	names := make([]string, 0, len(set))
	for hh := range set {
		names = append(names, hh)
	}
	sort.Strings(names)
	return names
}

// Members returns the sorted IDs of a household's members in the given
// year; with year 0 it returns everyone who ever lived there.
func Members(membership map[domain.PersonID]domain.HouseholdMembership, hh string, year int) []domain.PersonID {
	var members []domain.PersonID
	for id, m := range membership {
		if year == 0 {
			for _, lived := range m {
				if lived == hh {
					members = append(members, id)
					break
				}
			}
			continue
		}
		if m[year] == hh {
			members = append(members, id)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	return members
}

// YearOf interprets a messy year string from the source data as an integer;
// the literal "2000s" resolves to 2005.
func YearOf(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "2000s" {
		return 2005, nil
	}
	year, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q: %w", value, err)
	}
	return year, nil
}
