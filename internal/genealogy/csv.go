// Package genealogy parses and consistency-checks the three survey CSV
// formats the kinship study is built from: the identity file (one row per
// individual, with parent IDs), the marriage file (one row per marriage
// pair), and the master sheet (household membership and wealth quartiles
// per survey year).
package genealogy

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mwhitby/kinship/internal/domain"
)

// row is one CSV record keyed by header name, DictReader style.
type row map[string]string

func (r row) blank() bool {
	for _, v := range r {
		if v != "" {
			return false
		}
	}
	return true
}

// readRows parses a header-led CSV stream into keyed rows, skipping rows
// that are entirely blank. Short rows are padded so sparsely filled
// spreadsheet exports do not fail.
func readRows(rd io.Reader) ([]row, error) {
	reader := csv.NewReader(rd)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		r := make(row, len(header))
		for i, name := range header {
			if i < len(record) {
				r[name] = record[i]
			} else {
				r[name] = ""
			}
		}
		if r.blank() {
			continue
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// parseID converts a CSV cell into a PersonID; empty cells mean "unknown".
func parseID(value string) (domain.PersonID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid ID %q: %w", value, err)
	}
	return domain.PersonID(n), nil
}
