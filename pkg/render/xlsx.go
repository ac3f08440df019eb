package render

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX streams the swept map to a workbook: one sheet of HST total
// efficiency and one of pump mechanical efficiency, speeds across columns and
// pressures down rows.
func WriteXLSX(path string, g *Grid) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name string
		data [][]float64
	}{
		{"HST total", g.TotalHST},
		{"Pump mechanical", g.MechPump},
	}

	for si, sheet := range sheets {
		if si == 0 {
			f.SetSheetName("Sheet1", sheet.name)
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return errors.Wrap(err, "add sheet")
			}
		}
		sw, err := f.NewStreamWriter(sheet.name)
		if err != nil {
			return errors.Wrap(err, "stream writer")
		}

		header := make([]interface{}, 0, len(g.Speeds)+1)
		header = append(header, "discharge bar \\ speed rpm")
		for _, s := range g.Speeds {
			header = append(header, s)
		}
		if err := sw.SetRow("A1", header); err != nil {
			return errors.Wrap(err, "header row")
		}

		for i, p := range g.Pressures {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			row := make([]interface{}, 0, len(g.Speeds)+1)
			row = append(row, p)
			for _, v := range sheet.data[i] {
				row = append(row, v)
			}
			if err := sw.SetRow(cell, row); err != nil {
				return errors.Wrap(err, "data row")
			}
		}
		if err := sw.Flush(); err != nil {
			return errors.Wrap(err, "flush sheet")
		}
	}
	return errors.Wrap(f.SaveAs(path), "save workbook")
}
