package roster

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

// TemplateFilename is the suggested download name for the upload template.
const TemplateFilename = "student_list_template.xlsx"

// Template builds the example workbook admins download to see the expected
// upload shape: a "name"/"email" header plus a few sample rows.
func Template() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"name", "email"},
		{"John Doe", "john@klu.ac.in"},
		{"Jane Smith", "jane@klu.ac.in"},
		{"Bob Johnson", "bob@klu.ac.in"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
