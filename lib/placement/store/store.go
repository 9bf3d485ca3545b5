package placementstore

import (
	apperrors "recruiting-backend/lib/utils/app-errors"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	GetByID(id string) (*dbmodels.Placement, error)
	// ChangeState updates the placement only while its state still equals expected.
	ChangeState(id string, expected models.PlacementState, updMap map[string]any) error
	SetReplacementOf(replacementID, failedID string) error
	List(filter dbmodels.PlacementFilter) ([]dbmodels.Placement, error)
	// ListExpiring returns open placements whose guarantee ends in (from, until].
	ListExpiring(from, until time.Time) ([]dbmodels.Placement, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.Placement, error) {
	rec := dbmodels.Placement{}
	err := i.db.
		Model(&dbmodels.Placement{}).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ChangeState(id string, expected models.PlacementState, updMap map[string]any) error {
	res := i.db.
		Model(&dbmodels.Placement{}).
		Where("id = ? and state = ?", id, expected).
		Updates(updMap)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrStaleRecord
	}
	return nil
}

func (i impl) SetReplacementOf(replacementID, failedID string) error {
	res := i.db.
		Model(&dbmodels.Placement{}).
		Where("id = ?", replacementID).
		Update("replacement_placement_id", failedID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrStaleRecord
	}
	return nil
}

func (i impl) List(filter dbmodels.PlacementFilter) ([]dbmodels.Placement, error) {
	list := []dbmodels.Placement{}
	tx := i.db.Model(&dbmodels.Placement{})
	if filter.State != "" {
		tx = tx.Where("state = ?", filter.State)
	}
	if filter.CompanyID != "" {
		tx = tx.Where("company_id = ?", filter.CompanyID)
	}
	if filter.RecruiterID != "" {
		tx = tx.Where("recruiter_id = ?", filter.RecruiterID)
	}
	err := tx.Order("created_at desc").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListExpiring(from, until time.Time) ([]dbmodels.Placement, error) {
	list := []dbmodels.Placement{}
	err := i.db.
		Model(&dbmodels.Placement{}).
		Where("state not in ?", []models.PlacementState{models.PlacementCompleted, models.PlacementFailed}).
		Where("guarantee_expires_at > ? and guarantee_expires_at <= ?", from, until).
		Order("guarantee_expires_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
