package events

import (
	"recruiting-backend/db"
	eventstore "recruiting-backend/lib/events/store"
	connectionhub "recruiting-backend/lib/ws/hub/connection-hub"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	wsmodels "recruiting-backend/models/ws"
	"time"

	"github.com/xeipuuv/gojsonschema"

	log "github.com/sirupsen/logrus"
)

// Provider publishes domain events. Publishing never fails the caller: errors are logged and
// undelivered events stay in the outbox for the relay worker.
type Provider interface {
	Publish(eventType models.EventType, payload models.EventPayload)
}

// Broadcaster pushes a message to live subscribers and reports how many accepted it.
type Broadcaster interface {
	Broadcast(msg wsmodels.ServerMessage) (delivered int)
}

var Instance Provider

func NewHandler(sourceService string) {
	Instance = NewPublisher(eventstore.NewInstance(db.DB), connectionhub.Instance, sourceService)
}

func NewPublisher(store eventstore.Provider, hub Broadcaster, sourceService string) Provider {
	schemas, err := buildSchemas()
	if err != nil {
		log.WithError(err).Error("event contracts not loaded, payloads will not be validated")
	}
	return &impl{
		store:         store,
		hub:           hub,
		sourceService: sourceService,
		schemas:       schemas,
		now:           time.Now,
	}
}

type impl struct {
	store         eventstore.Provider
	hub           Broadcaster
	sourceService string
	schemas       map[models.EventType]*gojsonschema.Schema
	now           func() time.Time
}

func (i *impl) Publish(eventType models.EventType, payload models.EventPayload) {
	logger := log.
		WithField("event_type", eventType).
		WithField("source_service", i.sourceService)
	schemaValid := true
	if i.schemas != nil {
		if err := validatePayload(i.schemas, eventType, payload); err != nil {
			schemaValid = false
			logger.WithError(err).Warn("event payload does not match its contract")
		}
	}
	rec := dbmodels.DomainEvent{
		EventType:     eventType,
		SourceService: i.sourceService,
		Payload:       dbmodels.JSONMap(payload),
		SchemaValid:   schemaValid,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("failed to store event in outbox")
		return
	}
	logger = logger.WithField("event_id", id)
	if i.hub == nil {
		return
	}
	msg := wsmodels.ServerMessage{
		Audience: wsmodels.AudienceOf(payload),
		ID:       id,
		Time:     i.now().Format(time.RFC3339),
		Type:     eventType,
		Source:   i.sourceService,
		Payload:  payload,
	}
	if i.hub.Broadcast(msg) == 0 {
		logger.Debug("no live recipients, event left for relay")
		return
	}
	if err = i.store.MarkDelivered([]string{id}, i.now()); err != nil {
		logger.WithError(err).Error("failed to mark event as delivered")
	}
}
