package botnotify

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

type aiResult struct {
	AI            string `json:"ai"`
	ApplicationID string `json:"application_id"`
	Error         string `json:"error"`
}

// SendAiResult reports a failed model call to the team chat bot; an empty addr disables it.
func SendAiResult(addr, ai, applicationID, errs string, logger *logrus.Entry) {
	if addr == "" {
		return
	}
	payload, err := json.Marshal(aiResult{AI: ai, ApplicationID: applicationID, Error: errs})
	if err != nil {
		return
	}
	resp, err := http.Post(addr, "application/json", strings.NewReader(string(payload)))
	if err != nil {
		logger.WithError(err).Error("failed to send ai notification to the bot")
		return
	}
	resp.Body.Close()
}
