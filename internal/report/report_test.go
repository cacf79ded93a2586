package report

import (
	"strings"
	"testing"

	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/kinship"
)

// villageFixture builds the three-generation family used across the report
// tests, plus a detached couple (100, 101) and an isolated person (200).
func villageFixture(t *testing.T) (*kinship.Graph, kinship.DistanceTable) {
	t.Helper()

	parents := map[domain.PersonID]kinship.Parentage{
		1:   {Father: 12, Mother: 22},
		2:   {Father: 12, Mother: 22},
		3:   {Father: 13, Mother: 23},
		6:   {Father: 1, Mother: 5},
		12:  {Father: 10, Mother: 11},
		13:  {Father: 10, Mother: 11},
		200: {},
	}
	spouses := map[domain.PersonID][]domain.PersonID{
		1: {5}, 5: {1},
		10: {11}, 11: {10},
		12: {22}, 22: {12},
		13: {23}, 23: {13},
		100: {101}, 101: {100},
	}
	g, err := kinship.BuildGraph(parents, spouses)
	if err != nil {
		t.Fatalf("expected no error building graph, got %v", err)
	}
	dist, _, err := kinship.AllPairsShortestPaths(g)
	if err != nil {
		t.Fatalf("expected no error computing distances, got %v", err)
	}
	return g, dist
}

func TestWriteDistances(t *testing.T) {
	g, err := kinship.BuildGraph(
		map[domain.PersonID]kinship.Parentage{2: {Father: 1}},
		map[domain.PersonID][]domain.PersonID{4: {5}, 5: {4}},
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	dist, _, err := kinship.AllPairsShortestPaths(g)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var buf strings.Builder
	if err := WriteDistances(&buf, dist); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := "A's ID,B's ID,Distance from A to B\n" +
		"1,2,1\n1,4,\n1,5,\n2,4,\n2,5,\n4,5,1\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestHouseholdStats(t *testing.T) {
	_, dist := villageFixture(t)

	membership := map[domain.PersonID]domain.HouseholdMembership{
		1:    {1986: "1"},
		2:    {1986: "1"},
		12:   {1986: "1"},
		9999: {1986: "1"},
		100:  {1986: "2"},
		200:  {1986: "2"},
	}
	wealth := map[string]map[int]domain.WealthEstimate{
		"1": {1986: {Mode: "Q2"}},
	}

	stats, warnings := HouseholdStats(dist, membership, wealth)
	if len(stats) != 1 {
		t.Fatalf("expected 1 stat row, got %d: %+v", len(stats), stats)
	}
	s := stats[0]
	if s.Household != "1" || s.Year != 1986 || s.Size != 4 {
		t.Errorf("unexpected stat row %+v", s)
	}
	// Pairwise distances among 1, 2, 12 are 2, 1, 1.
	if s.MedianDist != 1.0 {
		t.Errorf("expected median 1.0, got %v", s.MedianDist)
	}
	if s.Wealth != "Q2" {
		t.Errorf("expected wealth Q2, got %q", s.Wealth)
	}

	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "unknown ID 9999") {
		t.Errorf("expected unknown-ID warning, got %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "no median distance for household 2") {
		t.Errorf("expected no-median warning, got %q", warnings[1])
	}
}

func TestMedian(t *testing.T) {
	if got := median([]int{3, 1, 2}); got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
	if got := median([]int{2, 1}); got != 1.5 {
		t.Errorf("expected 1.5, got %v", got)
	}
}

func TestWriteHouseholdStats(t *testing.T) {
	stats := []HouseholdStat{
		{Household: "3.1", Year: 1992, Size: 4, MedianDist: 1.5, Wealth: "Q1"},
	}
	var buf strings.Builder
	if err := WriteHouseholdStats(&buf, stats); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := "Household ID,Year,Size,Median Dist,Wealth\n3.1,1992,4,1.5,Q1\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestDegreeDistribution(t *testing.T) {
	g, _ := villageFixture(t)

	degrees := DegreeDistribution(g, []domain.PersonID{1, 2, 3, 200, 9999})
	want := map[int]int{4: 1, 2: 2, 0: 1}
	if len(degrees) != len(want) {
		t.Fatalf("expected %v, got %v", want, degrees)
	}
	for degree, count := range want {
		if degrees[degree] != count {
			t.Errorf("degree %d: expected %d people, got %d", degree, count, degrees[degree])
		}
	}
}

func TestMemberDegrees(t *testing.T) {
	g, _ := villageFixture(t)

	membership := map[domain.PersonID]domain.HouseholdMembership{
		1:    {2010: "1"},
		2:    {2010: "1"},
		200:  {2010: "1"},
		9999: {2010: "1"},
	}
	people := map[domain.PersonID]domain.Person{
		1: {ID: 1, Sex: "Male"},
		2: {ID: 2, Sex: "Female"},
	}
	heads := HeadTable{"1": {1986: 1, 2010: 2}}

	rows, warnings := MemberDegrees(g, membership, people, heads, 2010)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %+v", rows)
	}
	want := []MemberDegree{
		{ID: 1, Household: "1", Degree: 4, IsHead: true, Gender: "Male"},
		{ID: 2, Household: "1", Degree: 2, IsHead: true, Gender: "Female"},
		{ID: 200, Household: "1", Degree: 0, IsHead: false, Gender: ""},
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d: expected %+v, got %+v", i, want[i], rows[i])
		}
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "9999") {
		t.Errorf("expected one warning about 9999, got %v", warnings)
	}

	var buf strings.Builder
	if err := WriteMemberDegrees(&buf, rows); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	wantCSV := "ID,Household,Degree,IsHouseholdHead,Gender\n" +
		"1,1,4,TRUE,Male\n2,1,2,TRUE,Female\n200,1,0,FALSE,\n"
	if buf.String() != wantCSV {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestHouseholdCohesion(t *testing.T) {
	_, dist := villageFixture(t)

	membership := map[domain.PersonID]domain.HouseholdMembership{
		1:   {1986: "1"},
		2:   {1986: "1"},
		200: {1986: "1"},
		100: {1986: "2"},
		101: {1986: "2"},
	}

	rows := HouseholdCohesion(dist, membership)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}
	first := rows[0]
	if first.Household != "1" || first.NodeCount != 3 || first.MaxFiniteDist != 2 {
		t.Errorf("unexpected row %+v", first)
	}
	if len(first.Unrelated) != 1 || first.Unrelated[0] != 200 {
		t.Errorf("expected 200 flagged as unrelated, got %v", first.Unrelated)
	}
	second := rows[1]
	if second.Household != "2" || second.MaxFiniteDist != 1 || second.Unrelated != nil {
		t.Errorf("unexpected row %+v", second)
	}

	var buf strings.Builder
	if err := WriteHouseholdCohesion(&buf, rows); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := "Household,Year,Node Count,Max Finite Kinship Dist\n1,1986,3,2\n2,1986,2,1\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestMigrationFlows(t *testing.T) {
	membership := map[domain.PersonID]domain.HouseholdMembership{
		1: {1986: "1", 1992: "2", 1999: "2", 2010: "3"},
		2: {1986: "1", 1992: "2"},
		3: {1986: "1", 2010: "2"},
		4: {1986: "2", 1992: "1", 1999: "2", 2010: "1"},
	}

	flows := MigrationFlows(membership)
	want := []Flow{
		{From: "1", To: "2", Weight: 3},
		{From: "2", To: "1", Weight: 1},
		{From: "2", To: "3", Weight: 1},
	}
	if len(flows) != len(want) {
		t.Fatalf("expected %v, got %v", want, flows)
	}
	for i := range want {
		if flows[i] != want[i] {
			t.Errorf("flow %d: expected %+v, got %+v", i, want[i], flows[i])
		}
	}
}

func TestHouseholdDeltas(t *testing.T) {
	membership := map[domain.PersonID]domain.HouseholdMembership{
		1: {1986: "1", 1992: "1", 2010: "1"},
		2: {1986: "1"},
		3: {1992: "1"},
		9: {1992: "1"},
	}
	people := map[domain.PersonID]domain.Person{
		1: {ID: 1, BirthYear: "1950"},
		2: {ID: 2, BirthYear: "1960", BestDOD: "1990"},
		3: {ID: 3, BirthYear: "1988"},
	}

	deltas, warnings := HouseholdDeltas(membership, people, "1")
	if len(deltas) != 2 {
		t.Fatalf("expected 2 deltas, got %+v", deltas)
	}

	first := deltas[0]
	if first.FromYear != 1986 || first.ToYear != 1992 || first.OrigSize != 2 {
		t.Errorf("unexpected delta %+v", first)
	}
	if len(first.Born) != 1 || first.Born[0] != 3 {
		t.Errorf("expected 3 born, got %v", first.Born)
	}
	if len(first.Died) != 1 || first.Died[0] != 2 {
		t.Errorf("expected 2 died, got %v", first.Died)
	}

	second := deltas[1]
	if second.FromYear != 1992 || second.ToYear != 1999 {
		t.Errorf("unexpected delta %+v", second)
	}
	if len(second.Emigrated) != 3 {
		t.Errorf("expected all of 1, 3, 9 to emigrate, got %v", second.Emigrated)
	}

	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "unknown birth year for ID 9") {
		t.Errorf("unexpected warning %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "did not exist in 1999") {
		t.Errorf("unexpected warning %q", warnings[1])
	}
}

func TestWriteNetworkSummary(t *testing.T) {
	g, _ := villageFixture(t)

	var buf strings.Builder
	if err := WriteNetworkSummary(&buf, g); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := "people: 14\nedges: 17\naverage degree: 2.4286\ncomponents: 3\ncomponent sizes: 11 2 1\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
