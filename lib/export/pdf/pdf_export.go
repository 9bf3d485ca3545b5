package pdfexport

import (
	"bytes"
	"fmt"
	dbmodels "recruiting-backend/models/db"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

var splitColumns = []struct {
	title string
	width float64
	align string
}{
	{"Recruiter", 55, "L"},
	{"Role", 30, "L"},
	{"Split %", 25, "R"},
	{"Amount", 35, "R"},
	{"Notes", 45, "L"},
}

// GenerateSplitStatement renders the fee split of one placement.
func GenerateSplitStatement(placement dbmodels.Placement, collaborators []dbmodels.PlacementCollaborator, now time.Time) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateSplitStatement panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Placement fee split statement", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	_, lineHt := pdf.GetFontSize()
	lineHt += 2
	details := [][2]string{
		{"Placement", placement.ID},
		{"Application", placement.ApplicationID},
		{"Company", placement.CompanyID},
		{"State", string(placement.State)},
		{"Start date", formatDate(placement.StartDate)},
		{"Guarantee until", formatDate(placement.GuaranteeExpiresAt)},
		{"Fee", fmt.Sprintf("%.2f", placement.FeeAmount)},
		{"Generated", now.Format("2006-01-02 15:04")},
	}
	for _, d := range details {
		pdf.CellFormat(45, lineHt, d[0]+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, lineHt, tr(d[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(221, 235, 247)
	for _, col := range splitColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	totalPct, totalAmount := 0.0, 0.0
	for _, c := range collaborators {
		values := []string{
			tr(c.RecruiterID),
			string(c.Role),
			fmt.Sprintf("%.2f", c.SplitPercentage),
			fmt.Sprintf("%.2f", c.SplitAmount),
			tr(c.Notes),
		}
		for idx, col := range splitColumns {
			pdf.CellFormat(col.width, 7, values[idx], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
		totalPct += c.SplitPercentage
		totalAmount += c.SplitAmount
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(splitColumns[0].width+splitColumns[1].width, 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(splitColumns[2].width, 7, fmt.Sprintf("%.2f", totalPct), "1", 0, "R", false, 0, "")
	pdf.CellFormat(splitColumns[3].width, 7, fmt.Sprintf("%.2f", totalAmount), "1", 0, "R", false, 0, "")
	pdf.CellFormat(splitColumns[4].width, 7, "", "1", 1, "L", false, 0, "")
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}
