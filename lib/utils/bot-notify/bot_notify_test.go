package botnotify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestSendAiResult(t *testing.T) {
	received := make(chan aiResult, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body aiResult
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		received <- body
	}))
	defer srv.Close()

	SendAiResult(srv.URL, "yandexgpt", "A1", "quota exceeded", logrus.NewEntry(logrus.StandardLogger()))
	body := <-received
	require.Equal(t, "A1", body.ApplicationID)
	require.Equal(t, "quota exceeded", body.Error)

	// disabled without an address
	SendAiResult("", "yandexgpt", "A1", "quota exceeded", logrus.NewEntry(logrus.StandardLogger()))
	require.Empty(t, received)
}
