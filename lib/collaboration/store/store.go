package collaborationstore

import (
	apperrors "recruiting-backend/lib/utils/app-errors"
	dbmodels "recruiting-backend/models/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	ListByPlacement(placementID string) ([]dbmodels.PlacementCollaborator, error)
	// AddWithinCeiling stores rec unless the placement's split sum would pass the ceiling.
	// Returns the allocated sum before rec.
	AddWithinCeiling(rec dbmodels.PlacementCollaborator, ceiling float64) (id string, allocated float64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) ListByPlacement(placementID string) ([]dbmodels.PlacementCollaborator, error) {
	list := []dbmodels.PlacementCollaborator{}
	err := i.db.
		Model(&dbmodels.PlacementCollaborator{}).
		Where("placement_id = ?", placementID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) AddWithinCeiling(rec dbmodels.PlacementCollaborator, ceiling float64) (id string, allocated float64, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		// the placement row lock serializes concurrent additions
		var placement dbmodels.Placement
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", rec.PlacementID).
			First(&placement).
			Error
		if err != nil {
			return err
		}
		err = tx.
			Model(&dbmodels.PlacementCollaborator{}).
			Select("coalesce(sum(split_percentage), 0)").
			Where("placement_id = ?", rec.PlacementID).
			Scan(&allocated).
			Error
		if err != nil {
			return err
		}
		if ExceedsCeiling(allocated, rec.SplitPercentage, ceiling) {
			return apperrors.ErrOverAllocation
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return "", allocated, err
	}
	return rec.ID, allocated, nil
}

// ceilingTolerance absorbs float error of summing two-decimal splits, e.g. 33.33+33.33+33.34.
const ceilingTolerance = 1e-9

func ExceedsCeiling(allocated, add, ceiling float64) bool {
	return allocated+add > ceiling+ceilingTolerance
}
