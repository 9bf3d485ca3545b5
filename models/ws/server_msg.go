package wsmodels

import "recruiting-backend/models"

type ServerMessage struct {
	ToUserID string              `json:"-"`
	Audience Audience            `json:"-"`
	ID       string              `json:"id"`     // outbox event id
	Time     string              `json:"time"`   // event time
	Type     models.EventType    `json:"type"`   // event type
	Source   string              `json:"source"` // source service
	Payload  models.EventPayload `json:"payload"`
}

// Audience is the set of entities an event concerns. Admins receive every event.
type Audience struct {
	Companies  []string
	Candidates []string
	Recruiters []string
}

func (a Audience) Includes(actor models.Actor) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.EntityID == "" {
		return false
	}
	switch actor.Role {
	case models.CompanyRole:
		return contains(a.Companies, actor.EntityID)
	case models.CandidateRole:
		return contains(a.Candidates, actor.EntityID)
	case models.RecruiterRole:
		return contains(a.Recruiters, actor.EntityID)
	}
	return false
}

// AudienceOf collects the party ids named in an event payload, split recipients included.
func AudienceOf(payload models.EventPayload) Audience {
	var a Audience
	a.Companies = appendID(a.Companies, payload["company_id"])
	a.Candidates = appendID(a.Candidates, payload["candidate_id"])
	a.Recruiters = appendID(a.Recruiters, payload["recruiter_id"])
	a.Recruiters = appendID(a.Recruiters, payload["sourcer_id"])
	if list, ok := payload["collaborators"].([]any); ok {
		for _, item := range list {
			if split, ok := item.(map[string]any); ok {
				a.Recruiters = appendID(a.Recruiters, split["recruiter_id"])
			}
		}
	}
	return a
}

func appendID(ids []string, value any) []string {
	var id string
	switch v := value.(type) {
	case string:
		id = v
	case *string:
		if v != nil {
			id = *v
		}
	}
	if id == "" || contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func contains(ids []string, id string) bool {
	for _, item := range ids {
		if item == id {
			return true
		}
	}
	return false
}
