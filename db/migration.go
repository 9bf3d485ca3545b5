package db

import (
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	models := []struct {
		name  string
		model any
	}{
		{"Job", &dbmodels.Job{}},
		{"CompanyMember", &dbmodels.CompanyMember{}},
		{"Recruiter", &dbmodels.Recruiter{}},
		{"RecruiterRelationship", &dbmodels.RecruiterRelationship{}},
		{"Candidate", &dbmodels.Candidate{}},
		{"CandidateSourcer", &dbmodels.CandidateSourcer{}},
		{"CandidateOutreach", &dbmodels.CandidateOutreach{}},
		{"Application", &dbmodels.Application{}},
		{"AuditLog", &dbmodels.AuditLog{}},
		{"Placement", &dbmodels.Placement{}},
		{"PlacementCollaborator", &dbmodels.PlacementCollaborator{}},
		{"DomainEvent", &dbmodels.DomainEvent{}},
	}
	for _, m := range models {
		if err := DB.AutoMigrate(m.model); err != nil {
			return errors.Wrapf(err, "failed to migrate %s", m.name)
		}
	}
	log.Info("migrations applied")
	return nil
}
