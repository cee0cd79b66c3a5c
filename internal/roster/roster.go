// Package roster turns an uploaded spreadsheet into a validated recipient list.
//
// The expected shape is a workbook whose first sheet has a header row with
// "name" and "email" columns (case-sensitive). Extra columns are ignored.
package roster

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Recipient is one student to notify. Both fields are trimmed and non-empty,
// and Email always contains "@".
type Recipient struct {
	Name  string
	Email string
}

var requiredColumns = []string{"name", "email"}

// Parse reads the first sheet of an .xlsx workbook and extracts recipients.
//
// Rows missing a name or email are dropped; emails without "@" are filtered.
// On success it returns the recipients plus a human-readable count message.
// The reader is consumed but never mutated.
func Parse(r io.Reader) ([]Recipient, string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("error processing Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, "", fmt.Errorf("error processing Excel file: workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("error processing Excel file: %w", err)
	}
	if len(rows) == 0 {
		return nil, "", missingColumnsError(requiredColumns)
	}

	// Header lookup is case-sensitive, matching the upload template.
	nameCol, emailCol := -1, -1
	for i, h := range rows[0] {
		switch strings.TrimSpace(h) {
		case "name":
			if nameCol < 0 {
				nameCol = i
			}
		case "email":
			if emailCol < 0 {
				emailCol = i
			}
		}
	}

	var missing []string
	if nameCol < 0 {
		missing = append(missing, "name")
	}
	if emailCol < 0 {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return nil, "", missingColumnsError(missing)
	}

	recipients := make([]Recipient, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cellAt(row, nameCol)
		email := cellAt(row, emailCol)
		if name == "" || email == "" {
			continue
		}
		// Deliberately loose validity check; no full RFC parsing.
		if !strings.Contains(email, "@") {
			continue
		}
		recipients = append(recipients, Recipient{Name: name, Email: email})
	}

	if len(recipients) == 0 {
		return nil, "", fmt.Errorf("no valid student data found in the file")
	}
	return recipients, fmt.Sprintf("Successfully processed %d students", len(recipients)), nil
}

func missingColumnsError(cols []string) error {
	return fmt.Errorf("missing required columns: %s", strings.Join(cols, ", "))
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
