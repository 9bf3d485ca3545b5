package application

import (
	"recruiting-backend/db"
	auditstore "recruiting-backend/lib/application/audit-store"
	applicationstore "recruiting-backend/lib/application/store"
	candidateownership "recruiting-backend/lib/candidate-ownership"
	relationshipstore "recruiting-backend/lib/candidate-ownership/relationship-store"
	candidatestore "recruiting-backend/lib/candidate/store"
	"recruiting-backend/lib/events"
	"recruiting-backend/lib/identity"
	jobstore "recruiting-backend/lib/jobs/store"
	apperrors "recruiting-backend/lib/utils/app-errors"
	initchecker "recruiting-backend/lib/utils/init-checker"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Submit(actor models.Actor, req SubmitRequest) (*dbmodels.Application, error)
	Propose(actor models.Actor, req ProposeRequest) (*dbmodels.Application, error)
	Approve(actor models.Actor, id string) (*dbmodels.Application, error)
	Decline(actor models.Actor, id, reason, notes string) (*dbmodels.Application, error)
	CompleteDraft(actor models.Actor, id, notes string) (*dbmodels.Application, error)
	// CompleteAIReview is the scoring callback. A callback for an application that already left
	// ai_review returns the application unchanged.
	CompleteAIReview(id string, score *float64) (*dbmodels.Application, error)
	SubmitToCompany(actor models.Actor, id, notes string) (*dbmodels.Application, error)
	ChangeStage(actor models.Actor, id string, stage models.ApplicationStage, notes string) (*dbmodels.Application, error)
	Accept(actor models.Actor, id string) (*dbmodels.Application, error)
	Withdraw(actor models.Actor, id, reason string) (*dbmodels.Application, error)
	RequestPrescreen(actor models.Actor, id string, recruiterID *string) (*dbmodels.Application, error)
	GetByID(actor models.Actor, id string) (*dbmodels.Application, error)
	ListAudit(actor models.Actor, id string) ([]dbmodels.AuditLog, error)
}

type SubmitRequest struct {
	CandidateID string
	JobID       string
	Notes       string
}

type ProposeRequest struct {
	CandidateID string
	JobID       string
	Pitch       string
}

// OwnershipChecker is the sourcing exclusivity gate.
type OwnershipChecker interface {
	CanWorkWith(candidateID, recruiterID string) (bool, error)
}

// RecruiterDirectory reports whether a recruiter may currently represent candidates.
type RecruiterDirectory interface {
	IsRecruiterActive(recruiterID string) (bool, error)
}

var Instance Provider

func NewHandler(settings models.WorkflowSettings) {
	initchecker.CheckInit(
		"identity", identity.Instance,
		"candidate ownership", candidateownership.Instance,
		"events", events.Instance,
	)
	Instance = NewProvider(Deps{
		Applications:  applicationstore.NewInstance(db.DB),
		Audit:         auditstore.NewInstance(db.DB),
		Jobs:          jobstore.NewInstance(db.DB),
		Candidates:    candidatestore.NewInstance(db.DB),
		Relationships: relationshipstore.NewInstance(db.DB),
		Directory:     identity.Instance,
		Ownership:     candidateownership.Instance,
		Events:        events.Instance,
	}, settings)
}

type Deps struct {
	Applications  applicationstore.Provider
	Audit         auditstore.Provider
	Jobs          jobstore.Provider
	Candidates    candidatestore.Provider
	Relationships relationshipstore.Provider
	Directory     RecruiterDirectory
	Ownership     OwnershipChecker
	Events        events.Provider
	Now           func() time.Time
}

func NewProvider(deps Deps, settings models.WorkflowSettings) Provider {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return impl{
		store:         deps.Applications,
		auditStore:    deps.Audit,
		jobs:          deps.Jobs,
		candidates:    deps.Candidates,
		relationships: deps.Relationships,
		directory:     deps.Directory,
		ownership:     deps.Ownership,
		events:        deps.Events,
		settings:      settings.WithDefaults(),
		now:           now,
	}
}

type impl struct {
	store         applicationstore.Provider
	auditStore    auditstore.Provider
	jobs          jobstore.Provider
	candidates    candidatestore.Provider
	relationships relationshipstore.Provider
	directory     RecruiterDirectory
	ownership     OwnershipChecker
	events        events.Provider
	settings      models.WorkflowSettings
	now           func() time.Time
}

func (i impl) Submit(actor models.Actor, req SubmitRequest) (*dbmodels.Application, error) {
	switch {
	case actor.Role == models.CandidateRole:
		req.CandidateID = actor.EntityID
	case actor.IsAdmin():
	default:
		return nil, apperrors.Forbidden("only the candidate can submit an application")
	}
	logger := log.
		WithField("candidate_id", req.CandidateID).
		WithField("job_id", req.JobID)
	job, err := i.getOpenJob(req.JobID)
	if err != nil {
		return nil, err
	}
	if err = i.checkCandidate(req.CandidateID); err != nil {
		return nil, err
	}
	if err = i.checkNoActive(req.CandidateID, req.JobID); err != nil {
		return nil, err
	}
	recruiterID, err := i.representingRecruiter(req.CandidateID)
	if err != nil {
		logger.WithError(err).Error("failed to resolve recruiter representation")
		return nil, err
	}
	now := i.now()
	rec := dbmodels.Application{
		CandidateID: req.CandidateID,
		JobID:       job.ID,
		CompanyID:   job.CompanyID,
		Stage:       models.InitialStage(recruiterID != ""),
		Notes:       req.Notes,
		SubmittedAt: &now,
	}
	if recruiterID != "" {
		rec.RecruiterID = &recruiterID
	}
	audit := i.newAudit(actor, dbmodels.AuditCreated, "", rec.Stage, nil)
	audit.NewValue["recruiter_id"] = recruiterID
	id, err := i.store.Create(rec, audit)
	if err != nil {
		return nil, i.createError(logger, err)
	}
	rec.ID = id
	payload := models.EventPayload{
		"application_id": id,
		"candidate_id":   rec.CandidateID,
		"job_id":         rec.JobID,
		"company_id":     rec.CompanyID,
		"stage":          string(rec.Stage),
	}
	if recruiterID != "" {
		payload["recruiter_id"] = recruiterID
	}
	i.publish(models.EventApplicationCreated, payload)
	logger.WithField("application_id", id).Info("application submitted")
	return &rec, nil
}

func (i impl) Propose(actor models.Actor, req ProposeRequest) (*dbmodels.Application, error) {
	if actor.Role != models.RecruiterRole {
		return nil, apperrors.Forbidden("only a recruiter can propose a job")
	}
	recruiterID := actor.EntityID
	logger := log.
		WithField("candidate_id", req.CandidateID).
		WithField("job_id", req.JobID).
		WithField("recruiter_id", recruiterID)
	job, err := i.getOpenJob(req.JobID)
	if err != nil {
		return nil, err
	}
	if err = i.checkCandidate(req.CandidateID); err != nil {
		return nil, err
	}
	represents, err := i.represents(req.CandidateID, recruiterID)
	if err != nil {
		logger.WithError(err).Error("failed to check recruiter representation")
		return nil, err
	}
	if !represents {
		return nil, apperrors.Forbidden("recruiter does not represent the candidate")
	}
	if err = i.checkNoActive(req.CandidateID, req.JobID); err != nil {
		return nil, err
	}
	dueAt := i.now().AddDate(0, 0, i.settings.ProposalResponseDays)
	rec := dbmodels.Application{
		CandidateID: req.CandidateID,
		JobID:       job.ID,
		CompanyID:   job.CompanyID,
		RecruiterID: &recruiterID,
		Stage:       models.StageRecruiterProposed,
		Notes:       req.Pitch,
		ActionDueAt: &dueAt,
	}
	audit := i.newAudit(actor, dbmodels.AuditRecruiterProposed, "", rec.Stage, nil)
	id, err := i.store.Create(rec, audit)
	if err != nil {
		return nil, i.createError(logger, err)
	}
	rec.ID = id
	i.publish(models.EventApplicationRecruiterProposed, models.EventPayload{
		"application_id": id,
		"candidate_id":   rec.CandidateID,
		"job_id":         rec.JobID,
		"company_id":     rec.CompanyID,
		"recruiter_id":   recruiterID,
		"action_due_at":  dueAt.Format(time.RFC3339),
	})
	logger.WithField("application_id", id).Info("job proposed to candidate")
	return &rec, nil
}

func (i impl) GetByID(actor models.Actor, id string) (*dbmodels.Application, error) {
	rec, err := i.get(id)
	if err != nil {
		return nil, err
	}
	if !rec.IsParticipant(actor) {
		return nil, apperrors.Forbidden("no access to the application")
	}
	return rec, nil
}

func (i impl) ListAudit(actor models.Actor, id string) ([]dbmodels.AuditLog, error) {
	if _, err := i.GetByID(actor, id); err != nil {
		return nil, err
	}
	list, err := i.auditStore.ListByApplication(id)
	if err != nil {
		log.WithField("application_id", id).WithError(err).Error("failed to load audit trail")
		return nil, err
	}
	return list, nil
}

func (i impl) get(id string) (*dbmodels.Application, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("application_id", id).WithError(err).Error("failed to load application")
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NotFound("application not found")
	}
	return rec, nil
}

func (i impl) getOpenJob(id string) (*dbmodels.Job, error) {
	job, err := i.jobs.GetByID(id)
	if err != nil {
		log.WithField("job_id", id).WithError(err).Error("failed to load job")
		return nil, err
	}
	if job == nil {
		return nil, apperrors.NotFound("job not found")
	}
	if job.Status == models.JobClosed {
		return nil, apperrors.BusinessRule("job is closed")
	}
	return job, nil
}

func (i impl) checkCandidate(id string) error {
	rec, err := i.candidates.GetByID(id)
	if err != nil {
		log.WithField("candidate_id", id).WithError(err).Error("failed to load candidate")
		return err
	}
	if rec == nil {
		return apperrors.NotFound("candidate not found")
	}
	return nil
}

func (i impl) checkNoActive(candidateID, jobID string) error {
	exists, err := i.store.ExistsActive(candidateID, jobID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.BusinessRule("an active application already exists for this job")
	}
	return nil
}

func (i impl) createError(logger *log.Entry, err error) error {
	if errors.Is(err, apperrors.ErrDuplicateApplication) {
		return apperrors.BusinessRule("an active application already exists for this job")
	}
	logger.WithError(err).Error("failed to store application")
	return err
}

// representingRecruiter returns the first recruiter with a live relationship who is active in
// the directory, empty when the candidate is unrepresented.
func (i impl) representingRecruiter(candidateID string) (string, error) {
	list, err := i.relationships.ListActive(candidateID, i.now())
	if err != nil {
		return "", err
	}
	for _, rel := range list {
		active, err := i.directory.IsRecruiterActive(rel.RecruiterID)
		if err != nil {
			return "", err
		}
		if active {
			return rel.RecruiterID, nil
		}
	}
	return "", nil
}

func (i impl) represents(candidateID, recruiterID string) (bool, error) {
	active, err := i.directory.IsRecruiterActive(recruiterID)
	if err != nil || !active {
		return false, err
	}
	list, err := i.relationships.ListActive(candidateID, i.now())
	if err != nil {
		return false, err
	}
	found := false
	for _, rel := range list {
		if rel.RecruiterID == recruiterID {
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}
	return i.ownership.CanWorkWith(candidateID, recruiterID)
}

func (i impl) newAudit(actor models.Actor, action string, from, to models.ApplicationStage, metadata dbmodels.JSONMap) dbmodels.AuditLog {
	audit := dbmodels.AuditLog{
		Action:      action,
		ActorUserID: actor.UserID,
		ActorRole:   actor.Role,
		OldValue:    dbmodels.JSONMap{},
		NewValue:    dbmodels.JSONMap{},
		Metadata:    metadata,
	}
	if from != "" {
		audit.OldValue["stage"] = string(from)
	}
	if to != "" {
		audit.NewValue["stage"] = string(to)
	}
	return audit
}

func (i impl) publish(eventType models.EventType, payload models.EventPayload) {
	if i.events == nil {
		return
	}
	i.events.Publish(eventType, payload)
}
