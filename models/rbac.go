package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	ApplicationModule   Module = "APPLICATION"
	CandidateModule     Module = "CANDIDATE"
	PlacementModule     Module = "PLACEMENT"
	CollaborationModule Module = "COLLABORATION"
	ProposalModule      Module = "PROPOSAL"
	PermissionsModule   Module = "PERMISSIONS"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	FlowPermission   Permission = "FLOW"
	ExportPermission Permission = "EXPORT"
)
