package rbac

import (
	"recruiting-backend/models"
)

var (
	CandidateRoleSet      = []models.UserRole{models.CandidateRole}
	RecruiterRoleSet      = []models.UserRole{models.RecruiterRole}
	CompanyRoleSet        = []models.UserRole{models.CompanyRole}
	AdminRoleSet          = []models.UserRole{models.AdminRole}
	CandidateAdminRoleSet = []models.UserRole{models.CandidateRole, models.AdminRole}
	RecruiterAdminRoleSet = []models.UserRole{models.RecruiterRole, models.AdminRole}
	CompanyAdminRoleSet   = []models.UserRole{models.CompanyRole, models.AdminRole}
	PipelineRoleSet       = []models.UserRole{models.CompanyRole, models.RecruiterRole, models.AdminRole}
	AllRoles              = []models.UserRole{models.CandidateRole, models.RecruiterRole, models.CompanyRole, models.AdminRole}
)

func (i *impl) initRules() {
	i.application()
	i.proposal()
	i.candidate()
	i.placement()
	i.collaboration()
	i.mustRegister(models.PermissionsModule, models.ViewPermission, AllRoles, "/api/v1/permissions [get]")
}

func (i *impl) application() {
	// CREATE
	i.mustRegister(models.ApplicationModule, models.CreatePermission, CandidateAdminRoleSet, "/api/v1/applications [post]")
	i.mustRegister(models.ApplicationModule, models.CreatePermission, RecruiterRoleSet, "/api/v1/applications/propose [post]")
	// VIEW
	i.mustRegister(models.ApplicationModule, models.ViewPermission, AllRoles, "/api/v1/applications/{id} [get]")
	i.mustRegister(models.ApplicationModule, models.ViewPermission, AllRoles, "/api/v1/applications/{id}/audit [get]")
	// FLOW candidate side
	i.mustRegister(models.ApplicationModule, models.FlowPermission, CandidateRoleSet, "/api/v1/applications/{id}/approve [put]")
	i.mustRegister(models.ApplicationModule, models.FlowPermission, CandidateRoleSet, "/api/v1/applications/{id}/decline [put]")
	i.mustRegister(models.ApplicationModule, models.FlowPermission, CandidateAdminRoleSet, "/api/v1/applications/{id}/complete_draft [put]")
	i.mustRegister(models.ApplicationModule, models.FlowPermission, CandidateRoleSet, "/api/v1/applications/{id}/withdraw [put]")
	// FLOW recruiter and company side
	i.mustRegister(models.ApplicationModule, models.FlowPermission, RecruiterRoleSet, "/api/v1/applications/{id}/submit_to_company [put]")
	i.mustRegister(models.ApplicationModule, models.FlowPermission, PipelineRoleSet, "/api/v1/applications/{id}/stage [put]")
	i.mustRegister(models.ApplicationModule, models.FlowPermission, CompanyAdminRoleSet, "/api/v1/applications/{id}/accept [put]")
	i.mustRegister(models.ApplicationModule, models.FlowPermission, CompanyAdminRoleSet, "/api/v1/applications/{id}/prescreen [put]")
	i.mustRegister(models.ApplicationModule, models.FlowPermission, AdminRoleSet, "/api/v1/applications/{id}/ai_review_callback [post]")
}

func (i *impl) proposal() {
	i.mustRegister(models.ProposalModule, models.ViewPermission, AllRoles, "/api/v1/applications/{id}/proposal [get]")
	i.mustRegister(models.ProposalModule, models.ViewPermission, AllRoles, "/api/v1/proposals/list [post]")
}

func (i *impl) candidate() {
	i.mustRegister(models.CandidateModule, models.CreatePermission, RecruiterAdminRoleSet, "/api/v1/candidates/{id}/source [post]")
	i.mustRegister(models.CandidateModule, models.CreatePermission, RecruiterRoleSet, "/api/v1/candidates/{id}/outreach [post]")
	i.mustRegister(models.CandidateModule, models.ViewPermission, RecruiterAdminRoleSet, "/api/v1/candidates/{id}/outreach [get]")
	i.mustRegister(models.CandidateModule, models.ViewPermission, RecruiterAdminRoleSet, "/api/v1/candidates/{id}/can_work_with [get]")
	i.mustRegister(models.CandidateModule, models.EditPermission, RecruiterAdminRoleSet, "/api/v1/outreach/{id}/engagement [put]")
}

func (i *impl) placement() {
	// VIEW
	i.mustRegister(models.PlacementModule, models.ViewPermission, PipelineRoleSet, "/api/v1/placements/list [post]")
	i.mustRegister(models.PlacementModule, models.ViewPermission, PipelineRoleSet, "/api/v1/placements/expiring [get]")
	i.mustRegister(models.PlacementModule, models.ViewPermission, PipelineRoleSet, "/api/v1/placements/{id} [get]")
	// EXPORT
	i.mustRegister(models.PlacementModule, models.ExportPermission, PipelineRoleSet, "/api/v1/placements/export [get]")
	i.mustRegister(models.PlacementModule, models.ExportPermission, PipelineRoleSet, "/api/v1/placements/{id}/statement [get]")
	// FLOW
	i.mustRegister(models.PlacementModule, models.FlowPermission, CompanyAdminRoleSet, "/api/v1/placements/{id}/activate [put]")
	i.mustRegister(models.PlacementModule, models.FlowPermission, CompanyAdminRoleSet, "/api/v1/placements/{id}/complete [put]")
	i.mustRegister(models.PlacementModule, models.FlowPermission, CompanyAdminRoleSet, "/api/v1/placements/{id}/fail [put]")
	i.mustRegister(models.PlacementModule, models.FlowPermission, CompanyAdminRoleSet, "/api/v1/placements/{id}/state [put]")
	i.mustRegister(models.PlacementModule, models.FlowPermission, CompanyAdminRoleSet, "/api/v1/placements/{id}/replacement_request [post]")
	i.mustRegister(models.PlacementModule, models.FlowPermission, CompanyAdminRoleSet, "/api/v1/placements/{id}/replacement [put]")
}

func (i *impl) collaboration() {
	i.mustRegister(models.CollaborationModule, models.ViewPermission, PipelineRoleSet, "/api/v1/placements/{id}/collaborators [get]")
	i.mustRegister(models.CollaborationModule, models.EditPermission, PipelineRoleSet, "/api/v1/placements/{id}/collaborators [post]")
	i.mustRegister(models.CollaborationModule, models.ViewPermission, PipelineRoleSet, "/api/v1/splits/recommended [post]")
}
