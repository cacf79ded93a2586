package domain

// SurveyYears are the four census waves covered by the master sheet.
var SurveyYears = []int{1986, 1992, 1999, 2010}

// HouseholdMembership maps each survey year to the household an individual
// lived in that year. A missing year means the individual was not recorded
// in the community at that wave.
type HouseholdMembership map[int]string

// WealthEstimate collects the wealth quartiles reported for one
// household-year across all of its members' rows, plus the resolved mode.
type WealthEstimate struct {
	RawValues []string
	Mode      string
}
