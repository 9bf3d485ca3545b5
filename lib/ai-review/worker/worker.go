package aireviewworker

import (
	"context"
	"recruiting-backend/config"
	"recruiting-backend/db"
	aireview "recruiting-backend/lib/ai-review"
	"recruiting-backend/lib/application"
	applicationstore "recruiting-backend/lib/application/store"
	candidatestore "recruiting-backend/lib/candidate/store"
	yagptclient "recruiting-backend/lib/gpt/yagpt-client"
	jobstore "recruiting-backend/lib/jobs/store"
	baseworker "recruiting-backend/lib/utils/base-worker"
	botnotify "recruiting-backend/lib/utils/bot-notify"
	"recruiting-backend/lib/utils/helpers"
	"recruiting-backend/lib/utils/lock"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"time"
)

// Completer is the ai_review completion callback.
type Completer interface {
	CompleteAIReview(id string, score *float64) (*dbmodels.Application, error)
}

type impl struct {
	baseworker.BaseImpl
	applications applicationstore.Provider
	candidates   candidatestore.Provider
	jobs         jobstore.Provider
	scorer       aireview.Scorer // nil completes without a score
	completer    Completer
	batchSize    int
	notifyAddr   string
}

func StartWorker(ctx context.Context) {
	if config.Conf.AIReview.Enabled != nil && !*config.Conf.AIReview.Enabled {
		return
	}
	var scorer aireview.Scorer
	if config.Conf.YandexGPT.IAMToken != "" && config.Conf.YandexGPT.CatalogID != "" {
		scorer = aireview.NewGPTScorer(yagptclient.NewClient(config.Conf.YandexGPT.IAMToken, config.Conf.YandexGPT.CatalogID), lock.Resource)
	}
	i := &impl{
		BaseImpl:     *baseworker.NewInstance("ai-review", 10*time.Second, time.Duration(config.Conf.AIReview.IntervalSec)*time.Second),
		applications: applicationstore.NewInstance(db.DB),
		candidates:   candidatestore.NewInstance(db.DB),
		jobs:         jobstore.NewInstance(db.DB),
		scorer:       scorer,
		completer:    application.Instance,
		batchSize:    config.Conf.AIReview.BatchSize,
		notifyAddr:   config.Conf.AIReview.NotifyAddr,
	}
	go i.Run(ctx, i.handle)
}

func (i *impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.applications.List(dbmodels.ApplicationFilter{
		Stages: []models.ApplicationStage{models.StageAIReview},
		Limit:  i.batchSize,
	})
	if err != nil {
		logger.WithError(err).Error("failed to load applications waiting for ai review")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			return
		}
		i.review(ctx, rec)
	}
}

func (i *impl) review(ctx context.Context, rec dbmodels.Application) {
	logger := i.GetLogger().WithField("application_id", rec.ID)
	score := i.score(ctx, rec)
	// a scoring failure still completes the review so the application is not stuck
	if _, err := i.completer.CompleteAIReview(rec.ID, score); err != nil {
		logger.WithError(err).Error("failed to complete ai review")
		return
	}
	logger.Info("ai review completed")
}

func (i *impl) score(ctx context.Context, rec dbmodels.Application) *float64 {
	if i.scorer == nil {
		return nil
	}
	logger := i.GetLogger().WithField("application_id", rec.ID)
	job, err := i.jobs.GetByID(rec.JobID)
	if err != nil || job == nil {
		logger.WithError(err).Warn("job not loaded, ai score skipped")
		return nil
	}
	candidate, err := i.candidates.GetByID(rec.CandidateID)
	if err != nil || candidate == nil {
		logger.WithError(err).Warn("candidate not loaded, ai score skipped")
		return nil
	}
	score, err := i.scorer.Score(ctx, *job, *candidate, rec)
	if err != nil {
		logger.WithError(err).Warn("ai scoring failed")
		botnotify.SendAiResult(i.notifyAddr, "yandexgpt", rec.ID, err.Error(), logger)
		return nil
	}
	return &score
}
