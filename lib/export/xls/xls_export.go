package xlsexport

import (
	"bytes"
	dbmodels "recruiting-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// PlacementRow is one placement with its fee split.
type PlacementRow struct {
	Placement     dbmodels.Placement
	Collaborators []dbmodels.PlacementCollaborator
}

type Provider interface {
	ExportPlacements(list []PlacementRow, now time.Time) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	placementSheet = "Placements"
	splitSheet     = "Splits"
	dateLayout     = "2006-01-02"
)

var placementHeaders = []string{"Placement", "Application", "Candidate", "Company", "State", "Start date", "Guarantee until", "In guarantee", "Failure reason", "Fee", "Allocated %"}

var splitHeaders = []string{"Placement", "Recruiter", "Role", "Split %", "Split amount", "Notes"}

func (i impl) ExportPlacements(list []PlacementRow, now time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	if err := f.SetSheetName("Sheet1", placementSheet); err != nil {
		return nil, errors.Wrap(err, "failed to name placements sheet")
	}
	if _, err := f.NewSheet(splitSheet); err != nil {
		return nil, errors.Wrap(err, "failed to create splits sheet")
	}
	placements := newSheet(f, placementSheet)
	if err := placements.header(placementHeaders); err != nil {
		return nil, errors.Wrap(err, "failed to write placements header")
	}
	splits := newSheet(f, splitSheet)
	if err := splits.header(splitHeaders); err != nil {
		return nil, errors.Wrap(err, "failed to write splits header")
	}
	for _, item := range list {
		if err := writePlacement(placements, item, now); err != nil {
			return nil, errors.Wrapf(err, "failed to write placement %s", item.Placement.ID)
		}
		if err := writeSplits(splits, item); err != nil {
			return nil, errors.Wrapf(err, "failed to write splits of placement %s", item.Placement.ID)
		}
	}
	return f.WriteToBuffer()
}

func writePlacement(s *sheet, item PlacementRow, now time.Time) error {
	p := item.Placement
	allocated := 0.0
	for _, c := range item.Collaborators {
		allocated += c.SplitPercentage
	}
	return s.dataRow([]interface{}{
		p.ID,
		p.ApplicationID,
		p.CandidateID,
		p.CompanyID,
		string(p.State),
		formatDate(p.StartDate),
		formatDate(p.GuaranteeExpiresAt),
		yesNo(p.IsWithinGuarantee(now)),
		p.FailureReason,
		p.FeeAmount,
		allocated,
	}, 10, 11)
}

func writeSplits(s *sheet, item PlacementRow) error {
	for _, c := range item.Collaborators {
		err := s.dataRow([]interface{}{
			item.Placement.ID,
			c.RecruiterID,
			string(c.Role),
			c.SplitPercentage,
			c.SplitAmount,
			c.Notes,
		}, 4, 5)
		if err != nil {
			return err
		}
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
