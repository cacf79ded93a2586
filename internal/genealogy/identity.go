package genealogy

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mwhitby/kinship/internal/domain"
)

// Identity file column names.
const (
	colName       = "Name"
	colIDNumber   = "ID Number"
	colSex        = "Sex"
	colOtherNames = "Other Names"
	colBestDOB    = "Best Date Of Birth"
	colBirthYear  = "Year of Birth"
	colDeathYear  = "Year of Death"
	colFatherName = "Name of father"
	colFatherID   = "Father ID"
	colMotherName = "Name of Mother"
	colMotherID   = "Mother ID"
	colLegitimacy = "Legitimacy"
)

// LoadIdentities parses the identity CSV and returns records indexed by ID.
// In lenient mode duplicate IDs keep the first record seen; in strict mode
// they are an error. Father and mother IDs feed the kinship graph builder.
func LoadIdentities(r io.Reader, lenient bool) (map[domain.PersonID]domain.Person, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, fmt.Errorf("identity file: %w", err)
	}

	people := make(map[domain.PersonID]domain.Person, len(rows))
	for _, rec := range rows {
		id, err := parseID(rec[colIDNumber])
		if err != nil || id == 0 {
			if lenient {
				continue
			}
			return nil, fmt.Errorf("identity file: row missing ID number: %v", rec)
		}
		if existing, ok := people[id]; ok {
			if lenient {
				continue // first record wins
			}
			return nil, fmt.Errorf("identity file: duplicate ID %d (%q and %q)",
				id, rec[colName], existing.Name)
		}

		fatherID, err := parseID(rec[colFatherID])
		if err != nil && !lenient {
			return nil, fmt.Errorf("identity file: ID %d: father: %w", id, err)
		}
		motherID, err := parseID(rec[colMotherID])
		if err != nil && !lenient {
			return nil, fmt.Errorf("identity file: ID %d: mother: %w", id, err)
		}

		name := rec[colName]
		if name == "" {
			name = fmt.Sprintf("Person %d", id)
		}
		bestDOB := rec[colBestDOB]
		if bestDOB == "" {
			bestDOB = rec[colBirthYear]
		}

		people[id] = domain.Person{
			ID:         id,
			Name:       name,
			OtherNames: splitOtherNames(rec[colOtherNames]),
			Sex:        strings.ToUpper(rec[colSex]),
			BirthYear:  rec[colBirthYear],
			BestDOB:    bestDOB,
			BestDOD:    rec[colDeathYear],
			FatherID:   fatherID,
			MotherID:   motherID,
			Legitimacy: rec[colLegitimacy],
		}
	}

	return people, nil
}

func splitOtherNames(value string) []string {
	var names []string
	for _, n := range strings.Split(value, ";") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// VerifyIdentities re-reads the identity CSV and reports data problems:
// missing or duplicate ID numbers, missing names, parent IDs that belong to
// nobody, and parent names that disagree with the record of the named ID.
// The returned problems are sorted and deduplicated; an empty slice means
// the file is clean.
func VerifyIdentities(r io.Reader) ([]string, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, fmt.Errorf("identity file: %w", err)
	}

	unique := make(map[string]struct{})
	seen := make(map[string]row, len(rows))
	add := func(format string, args ...any) {
		unique[fmt.Sprintf(format, args...)] = struct{}{}
	}

	for _, rec := range rows {
		id := strings.TrimSpace(rec[colIDNumber])
		if id == "" {
			add("partially blank row missing ID number: %v", rec)
			continue
		}
		if prev, ok := seen[id]; ok {
			add("duplicate ID %s (%q and %q)", id, rec[colName], prev[colName])
			continue
		}
		if rec[colName] == "" {
			add("no name for ID %s", id)
		}
		seen[id] = rec
	}

	for id, rec := range seen {
		checkParent(add, seen, id, rec, rec[colMotherID], rec[colMotherName], "mother")
		checkParent(add, seen, id, rec, rec[colFatherID], rec[colFatherName], "father")
	}

	problems := make([]string, 0, len(unique))
	for p := range unique {
		problems = append(problems, p)
	}
	sort.Strings(problems)
	return problems, nil
}

func checkParent(add func(string, ...any), seen map[string]row, id string, rec row, parentID, declaredName, role string) {
	parentID = strings.TrimSpace(parentID)
	if parentID == "" {
		return
	}
	parent, ok := seen[parentID]
	if !ok {
		add("%s (%s): non-existent %s ID (%s)", rec[colName], id, role, parentID)
		return
	}

	valid := append([]string{parent[colName]}, splitOtherNames(parent[colOtherNames])...)
	// Placeholder parents ("So-and-so's Father") are commonly declared as
	// "Unknown" on the child's row; accept that spelling for them.
	if len(valid) == 1 && looksLikePlaceholder(valid[0]) {
		valid = append(valid, "Unknown")
	}
	for _, name := range valid {
		if declaredName == name {
			return
		}
	}
	add("name discrepancy: %q not in %v", declaredName, valid)
}

func looksLikePlaceholder(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "father") || strings.Contains(lower, "mother")
}
