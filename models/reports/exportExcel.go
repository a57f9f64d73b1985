package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type ExcelExporter interface {
	GetCellValues() []interface{}
}

// ExportXlsx writes rows to a workbook, one heading per column.
func ExportXlsx(data []ExcelExporter, path string, headings ...string) error {

	f := excelize.NewFile()
	sheetName := "Sheet1"
	_, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	col := 'A'
	for _, h := range headings {
		if err := f.SetCellValue(sheetName, string(col)+"1", h); err != nil {
			return err
		}
		col++
	}

	rowNo := 2
	for _, d := range data {
		col := 'A'
		for _, value := range d.GetCellValues() {
			if err := f.SetCellValue(sheetName, string(col)+fmt.Sprint(rowNo), value); err != nil {
				return err
			}
			col++
		}
		rowNo++
	}

	if err := f.SaveAs(path); err != nil {
		return err
	}
	return nil
}
