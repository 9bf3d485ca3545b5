package application

import (
	"fmt"
	apperrors "recruiting-backend/lib/utils/app-errors"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"sort"
	"time"
)

type fakeStore struct {
	apps       map[string]dbmodels.Application
	audits     []dbmodels.AuditLog
	placements []dbmodels.Placement
	seq        int
}

func newFakeStore() *fakeStore {
	return &fakeStore{apps: map[string]dbmodels.Application{}}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStore) Create(rec dbmodels.Application, audit dbmodels.AuditLog) (string, error) {
	if exists, _ := f.ExistsActive(rec.CandidateID, rec.JobID); exists {
		return "", apperrors.ErrDuplicateApplication
	}
	rec.ID = f.nextID("app")
	f.apps[rec.ID] = rec
	audit.ApplicationID = rec.ID
	f.audits = append(f.audits, audit)
	return rec.ID, nil
}

func (f *fakeStore) GetByID(id string) (*dbmodels.Application, error) {
	rec, ok := f.apps[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStore) ExistsActive(candidateID, jobID string) (bool, error) {
	for _, rec := range f.apps {
		if rec.CandidateID == candidateID && rec.JobID == jobID && rec.Stage.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Transition(id string, expected models.ApplicationStage, updMap map[string]any, audit dbmodels.AuditLog) error {
	rec, ok := f.apps[id]
	if !ok || rec.Stage != expected {
		return apperrors.ErrStaleRecord
	}
	applyUpdates(&rec, updMap)
	f.apps[id] = rec
	audit.ApplicationID = id
	f.audits = append(f.audits, audit)
	return nil
}

func (f *fakeStore) TransitionToHired(id string, expected models.ApplicationStage, updMap map[string]any, audit dbmodels.AuditLog, placement dbmodels.Placement) (string, error) {
	if err := f.Transition(id, expected, updMap, audit); err != nil {
		return "", err
	}
	placement.ID = f.nextID("pl")
	f.placements = append(f.placements, placement)
	return placement.ID, nil
}

func (f *fakeStore) List(filter dbmodels.ApplicationFilter) ([]dbmodels.Application, error) {
	result := []dbmodels.Application{}
	for _, rec := range f.apps {
		if filter.CandidateID != "" && rec.CandidateID != filter.CandidateID {
			continue
		}
		result = append(result, rec)
	}
	sort.Slice(result, func(a, b int) bool { return result[a].ID < result[b].ID })
	return result, nil
}

func (f *fakeStore) ListByApplication(applicationID string) ([]dbmodels.AuditLog, error) {
	result := []dbmodels.AuditLog{}
	for _, audit := range f.audits {
		if audit.ApplicationID == applicationID {
			result = append(result, audit)
		}
	}
	return result, nil
}

func applyUpdates(rec *dbmodels.Application, updMap map[string]any) {
	timePtr := func(v any) *time.Time {
		if v == nil {
			return nil
		}
		t := v.(time.Time)
		return &t
	}
	for key, value := range updMap {
		switch key {
		case "stage":
			rec.Stage = value.(models.ApplicationStage)
		case "recruiter_id":
			id := value.(string)
			rec.RecruiterID = &id
		case "notes":
			rec.Notes = value.(string)
		case "recruiter_notes":
			rec.RecruiterNotes = value.(string)
		case "ai_reviewed":
			rec.AIReviewed = value.(bool)
		case "ai_score":
			score := value.(float64)
			rec.AIScore = &score
		case "decline_reason":
			rec.DeclineReason = value.(string)
		case "decline_notes":
			rec.DeclineNotes = value.(string)
		case "accepted_by_company":
			rec.AcceptedByCompany = value.(bool)
		case "action_due_at":
			rec.ActionDueAt = timePtr(value)
		case "submitted_at":
			rec.SubmittedAt = timePtr(value)
		case "hired_at":
			rec.HiredAt = timePtr(value)
		default:
			panic("unexpected update column " + key)
		}
	}
}

type fakeJobs struct {
	list map[string]dbmodels.Job
}

func (f *fakeJobs) GetByID(id string) (*dbmodels.Job, error) {
	rec, ok := f.list[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

type fakeCandidates struct {
	ids map[string]bool
}

func (f *fakeCandidates) GetByID(id string) (*dbmodels.Candidate, error) {
	if !f.ids[id] {
		return nil, nil
	}
	return &dbmodels.Candidate{BaseModel: dbmodels.BaseModel{ID: id}}, nil
}

func (f *fakeCandidates) GetByUserID(userID string) (*dbmodels.Candidate, error) {
	return nil, nil
}

type fakeRelationships struct {
	list []dbmodels.RecruiterRelationship
}

func (f *fakeRelationships) ListActive(candidateID string, now time.Time) ([]dbmodels.RecruiterRelationship, error) {
	result := []dbmodels.RecruiterRelationship{}
	for _, rel := range f.list {
		if rel.CandidateID == candidateID && rel.IsActive(now) {
			result = append(result, rel)
		}
	}
	return result, nil
}

type fakeDirectory struct {
	active map[string]bool
}

func (f *fakeDirectory) IsRecruiterActive(recruiterID string) (bool, error) {
	return f.active[recruiterID], nil
}

type fakeOwnership struct {
	blocked map[string]bool
}

func (f *fakeOwnership) CanWorkWith(candidateID, recruiterID string) (bool, error) {
	return !f.blocked[recruiterID], nil
}

type fakeEvents struct {
	list []models.EventType
	last map[models.EventType]models.EventPayload
}

func (f *fakeEvents) Publish(eventType models.EventType, payload models.EventPayload) {
	if f.last == nil {
		f.last = map[models.EventType]models.EventPayload{}
	}
	f.list = append(f.list, eventType)
	f.last[eventType] = payload
}

func (f *fakeEvents) count(eventType models.EventType) int {
	count := 0
	for _, e := range f.list {
		if e == eventType {
			count++
		}
	}
	return count
}
