package xlsexport

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	fontFamily  = "Calibri"
	columnWidth = 22
	moneyFormat = "#,##0.00"
)

// sheet appends rows to one worksheet and keeps the cell styles it has registered.
type sheet struct {
	f      *excelize.File
	name   string
	row    int
	styles map[string]int
}

func newSheet(f *excelize.File, name string) *sheet {
	return &sheet{f: f, name: name, styles: map[string]int{}}
}

func (s *sheet) header(titles []string) error {
	style, err := s.style("header", &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Family: fontFamily, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(titles))
	if err != nil {
		return err
	}
	if err = s.f.SetColWidth(s.name, "A", lastCol, columnWidth); err != nil {
		return err
	}
	values := make([]interface{}, 0, len(titles))
	for _, title := range titles {
		values = append(values, title)
	}
	return s.append(values, style)
}

// dataRow writes values with the text style; columns listed in money get the two-decimal format.
func (s *sheet) dataRow(values []interface{}, money ...int) error {
	text, err := s.style("text", &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Font:      &excelize.Font{Family: fontFamily, Size: 11},
	})
	if err != nil {
		return err
	}
	if err = s.append(values, text); err != nil {
		return err
	}
	if len(money) == 0 {
		return nil
	}
	numFmt := moneyFormat
	number, err := s.style("money", &excelize.Style{
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Font:         &excelize.Font{Family: fontFamily, Size: 11},
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return err
	}
	for _, col := range money {
		cell, err := excelize.CoordinatesToCellName(col, s.row)
		if err != nil {
			return err
		}
		if err = s.f.SetCellStyle(s.name, cell, cell, number); err != nil {
			return err
		}
	}
	return nil
}

func (s *sheet) append(values []interface{}, style int) error {
	s.row++
	first, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	if err = s.f.SetSheetRow(s.name, first, &values); err != nil {
		return errors.Wrapf(err, "row %d", s.row)
	}
	last, err := excelize.CoordinatesToCellName(len(values), s.row)
	if err != nil {
		return err
	}
	return s.f.SetCellStyle(s.name, first, last, style)
}

func (s *sheet) style(key string, def *excelize.Style) (int, error) {
	if id, ok := s.styles[key]; ok {
		return id, nil
	}
	id, err := s.f.NewStyle(def)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to register %s style", key)
	}
	s.styles[key] = id
	return id, nil
}
