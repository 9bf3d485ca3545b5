package models

type UserRole string

const (
	CandidateRole UserRole = "CANDIDATE"
	RecruiterRole UserRole = "RECRUITER"
	CompanyRole   UserRole = "COMPANY"
	AdminRole     UserRole = "ADMIN"
	SystemRole    UserRole = "SYSTEM"
)

var roleHumanName = map[UserRole]string{
	CandidateRole: "Candidate",
	RecruiterRole: "Recruiter",
	CompanyRole:   "Company",
	AdminRole:     "Administrator",
	SystemRole:    "System",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

const SystemUser = "system"

// Actor is the caller of a workflow operation with its role-specific entity already resolved.
type Actor struct {
	UserID   string
	Role     UserRole
	EntityID string // candidate/recruiter/company id, user id for admins
}

func (a Actor) IsAdmin() bool {
	return a.Role == AdminRole || a.Role == SystemRole
}

func (a Actor) Is(role UserRole, entityID string) bool {
	return a.Role == role && entityID != "" && a.EntityID == entityID
}

func SystemActor() Actor {
	return Actor{UserID: SystemUser, Role: SystemRole, EntityID: SystemUser}
}

type SourcerType string

const (
	SourcerRecruiter SourcerType = "recruiter"
	SourcerPlatform  SourcerType = "platform"
)

func (s SourcerType) IsValid() bool {
	return s == SourcerRecruiter || s == SourcerPlatform
}

type RelationshipStatus string

const (
	RelationshipActive     RelationshipStatus = "active"
	RelationshipTerminated RelationshipStatus = "terminated"
)

type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
)
