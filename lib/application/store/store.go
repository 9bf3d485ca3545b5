package applicationstore

import (
	apperrors "recruiting-backend/lib/utils/app-errors"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	// Create stores the application with its audit entry, rejecting a second active application on the same pair.
	Create(rec dbmodels.Application, audit dbmodels.AuditLog) (id string, err error)
	GetByID(id string) (*dbmodels.Application, error)
	ExistsActive(candidateID, jobID string) (bool, error)
	// Transition updates the record only if its stage still equals expected and writes the audit entry in the same transaction.
	Transition(id string, expected models.ApplicationStage, updMap map[string]any, audit dbmodels.AuditLog) error
	// TransitionToHired is Transition plus creation of the placement.
	TransitionToHired(id string, expected models.ApplicationStage, updMap map[string]any, audit dbmodels.AuditLog, placement dbmodels.Placement) (placementID string, err error)
	List(filter dbmodels.ApplicationFilter) ([]dbmodels.Application, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Application, audit dbmodels.AuditLog) (id string, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		// serialize submissions of one candidate
		var candidate dbmodels.Candidate
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", rec.CandidateID).
			First(&candidate).
			Error
		if err != nil {
			return err
		}
		exists, err := existsActive(tx, rec.CandidateID, rec.JobID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrDuplicateApplication
		}
		if err = tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			return err
		}
		audit.ApplicationID = rec.ID
		return tx.Create(&audit).Error
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Model(&dbmodels.Application{}).
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

func (i impl) ExistsActive(candidateID, jobID string) (bool, error) {
	return existsActive(i.db, candidateID, jobID)
}

func existsActive(tx *gorm.DB, candidateID, jobID string) (bool, error) {
	var exists bool
	err := tx.Model(&dbmodels.Application{}).
		Select("count(*) > 0").
		Where("candidate_id = ? and job_id = ?", candidateID, jobID).
		Where("stage not in ?", []models.ApplicationStage{models.StageRejected, models.StageWithdrawn}).
		Find(&exists).
		Error
	return exists, err
}

func (i impl) Transition(id string, expected models.ApplicationStage, updMap map[string]any, audit dbmodels.AuditLog) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		return transition(tx, id, expected, updMap, audit)
	})
}

func (i impl) TransitionToHired(id string, expected models.ApplicationStage, updMap map[string]any, audit dbmodels.AuditLog, placement dbmodels.Placement) (placementID string, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := transition(tx, id, expected, updMap, audit); err != nil {
			return err
		}
		return tx.Create(&placement).Error
	})
	if err != nil {
		return "", err
	}
	return placement.ID, nil
}

func transition(tx *gorm.DB, id string, expected models.ApplicationStage, updMap map[string]any, audit dbmodels.AuditLog) error {
	res := tx.
		Model(&dbmodels.Application{}).
		Where("id = ? and stage = ?", id, expected).
		Updates(updMap)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrStaleRecord
	}
	audit.ApplicationID = id
	return tx.Create(&audit).Error
}

func (i impl) List(filter dbmodels.ApplicationFilter) ([]dbmodels.Application, error) {
	list := []dbmodels.Application{}
	tx := i.db.Model(&dbmodels.Application{})
	if filter.CandidateID != "" {
		tx = tx.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.RecruiterID != "" {
		tx = tx.Where("recruiter_id = ?", filter.RecruiterID)
	}
	if filter.CompanyID != "" {
		tx = tx.Where("company_id = ?", filter.CompanyID)
	}
	if len(filter.Stages) != 0 {
		tx = tx.Where("stage in ?", filter.Stages)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	err := tx.Order("updated_at desc").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
