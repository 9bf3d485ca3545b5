package config

import (
	"recruiting-backend/models"
	"time"

	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr  string `default:"" env:"APP_HOST"`
		Port        int    `default:"8080"  env:"APP_PORT"`
		ServiceName string `default:"recruiting-workflow" env:"APP_SERVICE_NAME"`
		BodyLimitMB int64  `default:"10" env:"APP_BODY_LIMIT_MB"`
		ErrNotify   string `default:"" env:"APP_ERR_NOTIFY_ADDR"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"recruiting" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret string `default:"" env:"JWT_SECRET"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	YandexGPT struct {
		IAMToken  string `default:"" env:"YANDEX_GPT_IAM_TOKEN"`
		CatalogID string `default:"" env:"YANDEX_GPT_CATALOG_ID"`
	}
	Workflow struct {
		ProtectionWindowDays int     `default:"365" env:"WORKFLOW_PROTECTION_WINDOW_DAYS"`
		GuaranteeDays        int     `default:"90" env:"WORKFLOW_GUARANTEE_DAYS"`
		ProposalResponseDays int     `default:"7" env:"WORKFLOW_PROPOSAL_RESPONSE_DAYS"`
		UrgentWithinHours    int     `default:"24" env:"WORKFLOW_URGENT_WITHIN_HOURS"`
		SourcerWeight        float64 `default:"40" env:"WORKFLOW_SOURCER_WEIGHT"`
		SubmitterWeight      float64 `default:"30" env:"WORKFLOW_SUBMITTER_WEIGHT"`
		CloserWeight         float64 `default:"20" env:"WORKFLOW_CLOSER_WEIGHT"`
		SupportWeight        float64 `default:"10" env:"WORKFLOW_SUPPORT_WEIGHT"`
	}
	Events struct {
		RelayIntervalSec int `default:"30" env:"EVENTS_RELAY_INTERVAL_SEC"`
		RelayBatchSize   int `default:"100" env:"EVENTS_RELAY_BATCH_SIZE"`
		MaxAttempts      int `default:"20" env:"EVENTS_MAX_ATTEMPTS"`
	}
	AIReview struct {
		Enabled     *bool  `default:"true" env:"AI_REVIEW_ENABLED"`
		IntervalSec int    `default:"60" env:"AI_REVIEW_INTERVAL_SEC"`
		BatchSize   int    `default:"20" env:"AI_REVIEW_BATCH_SIZE"`
		NotifyAddr  string `default:"" env:"AI_REVIEW_NOTIFY_ADDR"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	// .env is optional, real environment wins
	if err := godotenv.Load(); err != nil {
		log.Debug(".env not loaded")
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}

// WorkflowSettings converts the workflow section into the settings the domain handlers take.
func (c *Configuration) WorkflowSettings() models.WorkflowSettings {
	return models.WorkflowSettings{
		ProtectionWindowDays: c.Workflow.ProtectionWindowDays,
		GuaranteeDays:        c.Workflow.GuaranteeDays,
		ProposalResponseDays: c.Workflow.ProposalResponseDays,
		UrgentWithin:         time.Duration(c.Workflow.UrgentWithinHours) * time.Hour,
		RoleWeights: map[models.CollaboratorRole]float64{
			models.CollaboratorSourcer:   c.Workflow.SourcerWeight,
			models.CollaboratorSubmitter: c.Workflow.SubmitterWeight,
			models.CollaboratorCloser:    c.Workflow.CloserWeight,
			models.CollaboratorSupport:   c.Workflow.SupportWeight,
		},
	}.WithDefaults()
}
