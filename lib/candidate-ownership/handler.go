package candidateownership

import (
	"recruiting-backend/db"
	outreachstore "recruiting-backend/lib/candidate-ownership/outreach-store"
	sourcerstore "recruiting-backend/lib/candidate-ownership/sourcer-store"
	candidatestore "recruiting-backend/lib/candidate/store"
	"recruiting-backend/lib/events"
	identitystore "recruiting-backend/lib/identity/store"
	"recruiting-backend/lib/smtp"
	apperrors "recruiting-backend/lib/utils/app-errors"
	"recruiting-backend/lib/utils/helpers"
	initchecker "recruiting-backend/lib/utils/init-checker"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	SourceCandidate(req SourceRequest) (*dbmodels.CandidateSourcer, error)
	RecordOutreach(req OutreachRequest) (*dbmodels.CandidateOutreach, error)
	CanWorkWith(candidateID, recruiterID string) (bool, error)
	UpdateEngagement(outreachID string, upd EngagementUpdate) (*dbmodels.CandidateOutreach, error)
	// ListOutreach returns all outreach of the candidate to admins and only their own to recruiters.
	ListOutreach(actor models.Actor, candidateID string) ([]dbmodels.CandidateOutreach, error)
	GetSourcer(candidateID string) (*dbmodels.CandidateSourcer, error)
}

type SourceRequest struct {
	CandidateID string
	SourcerID   string
	SourcerType models.SourcerType
	WindowDays  int // <= 0 takes the configured protection window
	Notes       string
}

type OutreachRequest struct {
	CandidateID string
	RecruiterID string
	JobID       *string
	Subject     string
	Body        string
}

// EngagementUpdate sets the first occurrence of each signal; already recorded timestamps are kept.
type EngagementUpdate struct {
	Opened       bool
	Clicked      bool
	Replied      bool
	Unsubscribed bool
	Bounced      bool
}

var Instance Provider

func NewHandler(settings models.WorkflowSettings) {
	initchecker.CheckInit(
		"events", events.Instance,
		"smtp", smtp.Instance,
	)
	Instance = NewProvider(Deps{
		Candidates: candidatestore.NewInstance(db.DB),
		Sourcers:   sourcerstore.NewInstance(db.DB),
		Outreach:   outreachstore.NewInstance(db.DB),
		Recruiters: identitystore.NewInstance(db.DB),
		Events:     events.Instance,
		Mailer:     smtp.Instance,
	}, settings)
}

type Deps struct {
	Candidates candidatestore.Provider
	Sourcers   sourcerstore.Provider
	Outreach   outreachstore.Provider
	Recruiters identitystore.Provider
	Events     events.Provider
	Mailer     smtp.Provider
	Now        func() time.Time
}

func NewProvider(deps Deps, settings models.WorkflowSettings) Provider {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return impl{
		candidates: deps.Candidates,
		sourcers:   deps.Sourcers,
		outreach:   deps.Outreach,
		recruiters: deps.Recruiters,
		events:     deps.Events,
		mailer:     deps.Mailer,
		settings:   settings.WithDefaults(),
		now:        now,
	}
}

type impl struct {
	candidates candidatestore.Provider
	sourcers   sourcerstore.Provider
	outreach   outreachstore.Provider
	recruiters identitystore.Provider
	events     events.Provider
	mailer     smtp.Provider
	settings   models.WorkflowSettings
	now        func() time.Time
}

func (i impl) SourceCandidate(req SourceRequest) (*dbmodels.CandidateSourcer, error) {
	logger := log.
		WithField("candidate_id", req.CandidateID).
		WithField("sourcer_id", req.SourcerID)
	if req.SourcerID == "" {
		return nil, apperrors.BusinessRule("sourcer is required")
	}
	if req.SourcerType == "" {
		req.SourcerType = models.SourcerRecruiter
	}
	if !req.SourcerType.IsValid() {
		return nil, apperrors.BusinessRule("unknown sourcer type %v", req.SourcerType)
	}
	if _, err := i.getCandidate(req.CandidateID); err != nil {
		return nil, err
	}
	rec, created, err := i.source(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrProtected) {
			logger.Info("candidate is protected by another sourcer")
			return nil, apperrors.BusinessRule("candidate is protected by another sourcer until %v", rec.ProtectionExpiresAt.Format(time.DateOnly))
		}
		logger.WithError(err).Error("failed to store sourcer record")
		return nil, err
	}
	if created {
		i.publish(models.EventCandidateSourced, models.EventPayload{
			"candidate_id":          rec.CandidateID,
			"sourcer_id":            rec.SourcerID,
			"sourcer_type":          string(rec.SourcerType),
			"sourced_at":            rec.SourcedAt.Format(time.RFC3339),
			"protection_expires_at": rec.ProtectionExpiresAt.Format(time.RFC3339),
		})
		logger.Info("candidate sourced")
	}
	return rec, nil
}

func (i impl) source(req SourceRequest) (*dbmodels.CandidateSourcer, bool, error) {
	windowDays := req.WindowDays
	if windowDays <= 0 {
		windowDays = i.settings.ProtectionWindowDays
	}
	now := i.now()
	rec := dbmodels.CandidateSourcer{
		CandidateID:          req.CandidateID,
		SourcerID:            req.SourcerID,
		SourcerType:          req.SourcerType,
		SourcedAt:            now,
		ProtectionWindowDays: windowDays,
		ProtectionExpiresAt:  helpers.AddDays(now, windowDays),
		Notes:                req.Notes,
	}
	return i.sourcers.CreateIfUnprotected(rec, now)
}

func (i impl) RecordOutreach(req OutreachRequest) (*dbmodels.CandidateOutreach, error) {
	logger := log.
		WithField("candidate_id", req.CandidateID).
		WithField("recruiter_id", req.RecruiterID)
	candidate, err := i.getCandidate(req.CandidateID)
	if err != nil {
		return nil, err
	}
	existing, err := i.sourcers.GetLatest(req.CandidateID)
	if err != nil {
		logger.WithError(err).Error("failed to load sourcer record")
		return nil, err
	}
	if !canWorkWith(existing, req.RecruiterID, i.now()) {
		return nil, apperrors.Forbidden("candidate is protected by another sourcer")
	}
	if FirstContactSources(existing) {
		_, err = i.SourceCandidate(SourceRequest{
			CandidateID: req.CandidateID,
			SourcerID:   req.RecruiterID,
			SourcerType: models.SourcerRecruiter,
			Notes:       FirstOutreachNote,
		})
		if err != nil {
			return nil, err
		}
	}
	rec := dbmodels.CandidateOutreach{
		CandidateID: req.CandidateID,
		RecruiterID: req.RecruiterID,
		JobID:       req.JobID,
		Subject:     req.Subject,
		Body:        req.Body,
		SentAt:      i.now(),
	}
	id, err := i.outreach.Create(rec)
	if err != nil {
		logger.WithError(err).Error("failed to store outreach")
		return nil, err
	}
	rec.ID = id
	payload := models.EventPayload{
		"outreach_id":  id,
		"candidate_id": req.CandidateID,
		"recruiter_id": req.RecruiterID,
		"subject":      req.Subject,
	}
	if req.JobID != nil {
		payload["job_id"] = *req.JobID
	}
	i.publish(models.EventCandidateOutreachSent, payload)
	i.sendOutreachMail(logger, candidate, rec)
	return &rec, nil
}

func (i impl) sendOutreachMail(logger *log.Entry, candidate *dbmodels.Candidate, rec dbmodels.CandidateOutreach) {
	if i.mailer == nil || candidate.Email == "" {
		return
	}
	senderName := "Recruiter"
	if i.recruiters != nil {
		recruiter, err := i.recruiters.GetRecruiterByID(rec.RecruiterID)
		if err != nil {
			logger.WithError(err).Warn("failed to load recruiter for outreach mail")
		} else if recruiter != nil {
			senderName = recruiter.GetFullName()
		}
	}
	if err := i.mailer.SendEMail(senderName, candidate.Email, rec.Subject, rec.Body); err != nil {
		logger.WithError(err).Error("outreach mail not sent")
	}
}

func (i impl) CanWorkWith(candidateID, recruiterID string) (bool, error) {
	existing, err := i.sourcers.GetLatest(candidateID)
	if err != nil {
		log.
			WithField("candidate_id", candidateID).
			WithError(err).
			Error("failed to load sourcer record")
		return false, err
	}
	return canWorkWith(existing, recruiterID, i.now()), nil
}

func (i impl) UpdateEngagement(outreachID string, upd EngagementUpdate) (*dbmodels.CandidateOutreach, error) {
	logger := log.WithField("outreach_id", outreachID)
	rec, err := i.outreach.GetByID(outreachID)
	if err != nil {
		logger.WithError(err).Error("failed to load outreach")
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NotFound("outreach not found")
	}
	now := i.now()
	updMap := map[string]any{}
	setFirst := func(flag bool, current **time.Time, column string) {
		if !flag || *current != nil {
			return
		}
		*current = &now
		updMap[column] = now
	}
	setFirst(upd.Opened, &rec.OpenedAt, "opened_at")
	setFirst(upd.Clicked, &rec.ClickedAt, "clicked_at")
	setFirst(upd.Replied, &rec.RepliedAt, "replied_at")
	setFirst(upd.Unsubscribed, &rec.UnsubscribedAt, "unsubscribed_at")
	if upd.Bounced && !rec.Bounced {
		rec.Bounced = true
		updMap["bounced"] = true
	}
	if len(updMap) == 0 {
		return rec, nil
	}
	if err = i.outreach.Update(outreachID, updMap); err != nil {
		logger.WithError(err).Error("failed to update outreach engagement")
		return nil, err
	}
	return rec, nil
}

func (i impl) ListOutreach(actor models.Actor, candidateID string) ([]dbmodels.CandidateOutreach, error) {
	if !actor.IsAdmin() && (actor.Role != models.RecruiterRole || actor.EntityID == "") {
		return nil, apperrors.Forbidden("only recruiters can read outreach")
	}
	if _, err := i.getCandidate(candidateID); err != nil {
		return nil, err
	}
	list, err := i.outreach.ListByCandidate(candidateID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return list, nil
	}
	own := make([]dbmodels.CandidateOutreach, 0, len(list))
	for _, rec := range list {
		if rec.RecruiterID == actor.EntityID {
			own = append(own, rec)
		}
	}
	return own, nil
}

func (i impl) GetSourcer(candidateID string) (*dbmodels.CandidateSourcer, error) {
	return i.sourcers.GetLatest(candidateID)
}

func (i impl) getCandidate(id string) (*dbmodels.Candidate, error) {
	rec, err := i.candidates.GetByID(id)
	if err != nil {
		log.WithField("candidate_id", id).WithError(err).Error("failed to load candidate")
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NotFound("candidate not found")
	}
	return rec, nil
}

func (i impl) publish(eventType models.EventType, payload models.EventPayload) {
	if i.events == nil {
		return
	}
	i.events.Publish(eventType, payload)
}
