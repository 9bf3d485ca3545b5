package dbmodels

import (
	"recruiting-backend/models"
	"time"

	"github.com/lib/pq"
)

type Candidate struct {
	BaseModel
	FirstName string         `gorm:"type:varchar(255)"`
	LastName  string         `gorm:"type:varchar(255)"`
	Email     string         `gorm:"type:varchar(255)"`
	Phone     string         `gorm:"type:varchar(255)"`
	Skills    pq.StringArray `gorm:"type:text[]"`

	// recruiter credited with bringing the candidate in
	SourcerID *string `gorm:"type:varchar(36)"`

	// linked self-service account
	UserID *string `gorm:"type:varchar(36);index"`
}

func (c Candidate) GetFullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// IsSelfManaged - no sourcer, the candidate drives its own account
func (c Candidate) IsSelfManaged() bool {
	return c.SourcerID == nil && c.UserID != nil
}

type CandidateSourcer struct {
	BaseModel
	CandidateID          string             `gorm:"type:varchar(36);index"`
	SourcerID            string             `gorm:"type:varchar(36)"`
	SourcerType          models.SourcerType `gorm:"type:varchar(50)"`
	SourcedAt            time.Time
	ProtectionWindowDays int
	ProtectionExpiresAt  time.Time `gorm:"index"`
	Notes                string
}

func (s CandidateSourcer) IsProtected(now time.Time) bool {
	return s.ProtectionExpiresAt.After(now)
}

type CandidateOutreach struct {
	BaseModel
	CandidateID    string  `gorm:"type:varchar(36);index"`
	RecruiterID    string  `gorm:"type:varchar(36);index"`
	JobID          *string `gorm:"type:varchar(36)"`
	Subject        string
	Body           string
	SentAt         time.Time
	OpenedAt       *time.Time
	ClickedAt      *time.Time
	RepliedAt      *time.Time
	UnsubscribedAt *time.Time
	Bounced        bool
}
