package events

import (
	"recruiting-backend/models"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

type fieldType string

const (
	typeString  fieldType = "string"
	typeNumber  fieldType = "number"
	typeBoolean fieldType = "boolean"
	typeArray   fieldType = "array"
)

// payloadContracts lists the fields a consumer can rely on per event type.
var payloadContracts = map[models.EventType]map[string]fieldType{
	models.EventApplicationCreated: {
		"application_id": typeString, "candidate_id": typeString, "job_id": typeString, "stage": typeString,
	},
	models.EventApplicationRecruiterProposed: {
		"application_id": typeString, "candidate_id": typeString, "job_id": typeString, "recruiter_id": typeString,
	},
	models.EventApplicationCandidateApproved: {
		"application_id": typeString, "candidate_id": typeString, "stage": typeString,
	},
	models.EventApplicationCandidateDeclined: {
		"application_id": typeString, "candidate_id": typeString, "stage": typeString,
	},
	models.EventApplicationStageChanged: {
		"application_id": typeString, "old_stage": typeString, "new_stage": typeString,
	},
	models.EventApplicationWithdrawn: {
		"application_id": typeString, "candidate_id": typeString,
	},
	models.EventApplicationAccepted: {
		"application_id": typeString, "company_id": typeString,
	},
	models.EventApplicationSubmitted: {
		"application_id": typeString, "recruiter_id": typeString, "company_id": typeString,
	},
	models.EventApplicationPrescreen: {
		"application_id": typeString, "company_id": typeString,
	},
	models.EventCandidateSourced: {
		"candidate_id": typeString, "sourcer_id": typeString, "protection_expires_at": typeString,
	},
	models.EventCandidateOutreachSent: {
		"outreach_id": typeString, "candidate_id": typeString, "recruiter_id": typeString,
	},
	models.EventPlacementStateChanged: {
		"placement_id": typeString, "old_state": typeString, "new_state": typeString,
	},
	models.EventPlacementActivated: {
		"placement_id": typeString, "start_date": typeString, "guarantee_expires_at": typeString,
	},
	models.EventPlacementCompleted: {
		"placement_id": typeString, "collaborators": typeArray,
	},
	models.EventPlacementFailed: {
		"placement_id": typeString, "reason": typeString, "is_within_guarantee": typeBoolean,
	},
	models.EventPlacementReplacement: {
		"placement_id": typeString, "company_id": typeString,
	},
	models.EventCollaborationAccepted: {
		"placement_id": typeString, "recruiter_id": typeString, "role": typeString, "split_percentage": typeNumber,
	},
}

func buildSchemas() (map[models.EventType]*gojsonschema.Schema, error) {
	result := make(map[models.EventType]*gojsonschema.Schema, len(payloadContracts))
	for eventType, fields := range payloadContracts {
		required := make([]string, 0, len(fields))
		properties := map[string]any{}
		for name, t := range fields {
			required = append(required, name)
			properties[name] = map[string]any{"type": string(t)}
		}
		schemaDoc := map[string]any{
			"type":       "object",
			"required":   required,
			"properties": properties,
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schemaDoc))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid schema for %v", eventType)
		}
		result[eventType] = schema
	}
	return result, nil
}

// validatePayload checks the payload against its event contract.
func validatePayload(schemas map[models.EventType]*gojsonschema.Schema, eventType models.EventType, payload models.EventPayload) error {
	schema, ok := schemas[eventType]
	if !ok {
		return errors.Errorf("unknown event type %v", eventType)
	}
	res, err := schema.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.Errorf("payload contract violation: %s", strings.Join(msgs, "; "))
}
