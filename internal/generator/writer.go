package generator

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteDataset serialises the dataset into identities.csv, marriages.csv and
// master.csv under the provided directory, using the survey file layouts the
// loaders expect.
func WriteDataset(dataset Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeCSV(filepath.Join(dir, "identities.csv"), identityRows(dataset.Identities)); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "marriages.csv"), marriageRows(dataset.Marriages)); err != nil {
		return err
	}
	return writeCSV(filepath.Join(dir, "master.csv"), masterRows(dataset.Master))
}

func identityRows(records []IdentityRecord) [][]string {
	rows := [][]string{{
		"Name", "ID Number", "Sex", "Other Names", "Best Date Of Birth",
		"Year of Birth", "Year of Death",
		"Name of father", "Father ID", "Name of Mother", "Mother ID", "Legitimacy",
	}}
	for _, r := range records {
		rows = append(rows, []string{
			r.Name, strconv.Itoa(r.ID), r.Sex, r.OtherNames, r.BestDOB,
			r.BirthYear, r.DeathYear,
			r.FatherName, r.FatherID, r.MotherName, r.MotherID, r.Legitimacy,
		})
	}
	return rows
}

func marriageRows(records []MarriageRecord) [][]string {
	rows := [][]string{{
		"Husband Name", "Husband ID Number", "Wife Name", "Wife ID Number",
		"Marriage Type", "Date of Marriage", "Date First Child's Birth",
		"Date of Divorce", "Date of Widow-hood",
	}}
	for _, r := range records {
		rows = append(rows, []string{
			r.HusbandName, strconv.Itoa(r.HusbandID), r.WifeName, strconv.Itoa(r.WifeID),
			r.Type, r.Date, r.FirstChild, r.DivorceDate, r.WidowDate,
		})
	}
	return rows
}

func masterRows(records []MasterRecord) [][]string {
	rows := [][]string{{
		"Number",
		"Hhold N 1986", "Hhold 1992", "Hhold 1999", "Hhold 2010",
		"Wealth 1987", "Wealth 1992", "Wealth 1999", "Wealth 2010",
	}}
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.Households[1986], r.Households[1992], r.Households[1999], r.Households[2010],
			r.Wealth[1986], r.Wealth[1992], r.Wealth[1999], r.Wealth[2010],
		})
	}
	return rows
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv for %s: %w", path, err)
	}
	return nil
}
