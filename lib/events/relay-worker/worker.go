package relayworker

import (
	"context"
	"recruiting-backend/config"
	"recruiting-backend/db"
	"recruiting-backend/lib/events"
	eventstore "recruiting-backend/lib/events/store"
	baseworker "recruiting-backend/lib/utils/base-worker"
	"recruiting-backend/lib/utils/helpers"
	connectionhub "recruiting-backend/lib/ws/hub/connection-hub"
	"recruiting-backend/models"
	wsmodels "recruiting-backend/models/ws"
	"time"
)

type impl struct {
	baseworker.BaseImpl
	store       eventstore.Provider
	hub         events.Broadcaster
	batchSize   int
	maxAttempts int
	now         func() time.Time
}

func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl:    *baseworker.NewInstance("domain-event-relay", 5*time.Second, time.Duration(config.Conf.Events.RelayIntervalSec)*time.Second),
		store:       eventstore.NewInstance(db.DB),
		hub:         connectionhub.Instance,
		batchSize:   config.Conf.Events.RelayBatchSize,
		maxAttempts: config.Conf.Events.MaxAttempts,
		now:         time.Now,
	}
	go i.Run(ctx, i.handle)
}

// handle re-delivers outbox events that had no live subscriber when published.
func (i *impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.store.ListUndelivered(i.batchSize, i.maxAttempts)
	if err != nil {
		logger.WithError(err).Error("failed to load undelivered events")
		return
	}
	delivered := []string{}
	failed := []string{}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		payload := models.EventPayload(rec.Payload)
		msg := wsmodels.ServerMessage{
			Audience: wsmodels.AudienceOf(payload),
			ID:       rec.ID,
			Time:     rec.CreatedAt.Format(time.RFC3339),
			Type:     rec.EventType,
			Source:   rec.SourceService,
			Payload:  payload,
		}
		if i.hub.Broadcast(msg) > 0 {
			delivered = append(delivered, rec.ID)
		} else {
			failed = append(failed, rec.ID)
		}
	}
	if err = i.store.MarkDelivered(delivered, i.now()); err != nil {
		logger.WithError(err).Error("failed to mark events as delivered")
	}
	if err = i.store.IncAttempts(failed); err != nil {
		logger.WithError(err).Error("failed to count delivery attempts")
	}
	if len(list) > 0 {
		logger.
			WithField("delivered", len(delivered)).
			WithField("pending", len(failed)).
			Info("outbox relay pass finished")
	}
}
