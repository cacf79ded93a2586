package genealogy

import (
	"strings"
	"testing"

	"github.com/mwhitby/kinship/internal/domain"
)

const marriageHeader = `Husband Name,Husband ID Number,Wife Name,Wife ID Number,Marriage Type,Date of Marriage,Date First Child's Birth,Date of Divorce,Date of Widow-hood`

func TestLoadMarriages(t *testing.T) {
	data := marriageHeader + `
"Wen Zhang",1,"Li Zhang",2,,1955,,,
"Bao Zhang",3,"Mei Liu",7,"uxorilocal",,1980,,1995
`
	set, err := LoadMarriages(strings.NewReader(data), false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(set.ByPair) != 2 {
		t.Fatalf("expected 2 marriages, got %d", len(set.ByPair))
	}

	first := set.ByPair[domain.SpousePair{A: 1, B: 2}]
	if first.Type != "standard" {
		t.Errorf("expected default marriage type, got %q", first.Type)
	}
	if first.Date != "1955" {
		t.Errorf("expected marriage date 1955, got %q", first.Date)
	}
	if first.EndReason != "" {
		t.Errorf("expected ongoing marriage, got end reason %q", first.EndReason)
	}

	second := set.ByPair[domain.SpousePair{A: 3, B: 7}]
	if second.Type != "uxorilocal" {
		t.Errorf("expected recorded marriage type, got %q", second.Type)
	}
	if second.Date != "1980" {
		t.Errorf("expected first-child fallback date, got %q", second.Date)
	}
	if second.EndReason != "death of spouse" || second.EndDate != "1995" {
		t.Errorf("expected widowhood end, got %q/%q", second.EndReason, second.EndDate)
	}

	if len(set.ByPerson[1]) != 1 || set.ByPerson[1][0] != (domain.SpousePair{A: 1, B: 2}) {
		t.Errorf("expected person 1 linked to pair 1-2, got %v", set.ByPerson[1])
	}
}

func TestLoadMarriages_NormalizesPairOrder(t *testing.T) {
	data := marriageHeader + `
"Young Hu",9,"Elder Wu",4,,,,,
`
	set, err := LoadMarriages(strings.NewReader(data), false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	pair := domain.SpousePair{A: 4, B: 9}
	m, ok := set.ByPair[pair]
	if !ok {
		t.Fatalf("expected pair normalized lower-ID-first, got %v", set.ByPair)
	}
	if m.HusbandID != 9 || m.WifeID != 4 {
		t.Errorf("normalization must not alter roles, got husband %d wife %d", m.HusbandID, m.WifeID)
	}
	if pair.Other(4) != 9 || pair.Other(9) != 4 {
		t.Errorf("unexpected Other results for %v", pair)
	}
}

func TestLoadMarriages_MissingID(t *testing.T) {
	data := marriageHeader + `
"Wen Zhang",1,"Unknown",,,,
`
	if _, err := LoadMarriages(strings.NewReader(data), false); err == nil {
		t.Fatalf("expected error for missing wife ID")
	}

	set, err := LoadMarriages(strings.NewReader(data), true)
	if err != nil {
		t.Fatalf("expected lenient mode to skip the row, got %v", err)
	}
	if len(set.ByPair) != 0 {
		t.Errorf("expected no marriages, got %v", set.ByPair)
	}
}

func TestMarriageSet_SpouseSets(t *testing.T) {
	data := marriageHeader + `
"Wen Zhang",1,"Li Zhang",2,,,,,
"Wen Zhang",1,"Second Wife",5,,,,,
`
	set, err := LoadMarriages(strings.NewReader(data), false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	spouses := set.SpouseSets()
	if len(spouses[1]) != 2 {
		t.Fatalf("expected ID 1 to have 2 spouses, got %v", spouses[1])
	}
	if spouses[2][0] != 1 || spouses[5][0] != 1 {
		t.Errorf("expected both wives linked back to 1, got %v", spouses)
	}
}

func TestVerifyMarriages(t *testing.T) {
	people := map[domain.PersonID]domain.Person{
		1: {ID: 1, Name: "Wen Zhang", Sex: "M"},
		2: {ID: 2, Name: "Li Zhang", Sex: "F"},
		3: {ID: 3, Name: "Bao Zhang", Sex: "M"},
	}

	data := marriageHeader + `
"Wen Zhang",1,"Li Zhang",2,,,,,
"Bao Zhang",3,"Ghost Wife",99,,,,,
"Li Zhang",2,"Wen Zhang",1,,,,,
`
	problems, err := VerifyMarriages(strings.NewReader(data), people)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// Row 2: dangling wife ID. Row 3: roles swapped, so both sexes mismatch.
	if len(problems) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(problems), problems)
	}
	if !strings.Contains(problems[0], "non-existent ID in marriage: 99") {
		t.Errorf("expected dangling ID problem first, got %q", problems[0])
	}
}
