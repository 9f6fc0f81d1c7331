// internal/nlu/client_test.go
package nlu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(Config{
		BaseURL:  baseURL,
		BotID:    "dining-bot",
		BotAlias: "prod",
		LocaleID: "en_US",
		Timeout:  5 * time.Second,
	}, logger.NewTestLogger(t))
}

func TestRecognizeText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bots/dining-bot/botAliases/prod/botLocales/en_US/sessions/sess-1/text", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "I want sushi", req["text"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"sessionState": map[string]interface{}{
				"intent": map[string]interface{}{"name": "DiningSuggestionsIntent"},
			},
			"messages": []map[string]string{
				{"content": "What city or city area are you looking to dine in?"},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	rec, err := client.RecognizeText(context.Background(), "sess-1", "I want sushi")

	require.NoError(t, err)
	assert.Equal(t, "DiningSuggestionsIntent", rec.IntentName)
	require.Len(t, rec.Messages, 1)
	assert.Equal(t, "What city or city area are you looking to dine in?", rec.Messages[0])
}

func TestRecognizeText_EmptyReplyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	rec, err := client.RecognizeText(context.Background(), "sess-1", "mumble")

	require.NoError(t, err)
	require.Len(t, rec.Messages, 1)
	assert.Equal(t, "Sorry, I didn't get your message.", rec.Messages[0])
}

func TestRecognizeText_ServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.RecognizeText(context.Background(), "sess-1", "hi")

	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeNLUUnavailable, stderrors.Code(err))
	assert.True(t, stderrors.IsRetryable(err))
}

func TestRecognizeText_UnreachableRuntime(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	_, err := client.RecognizeText(context.Background(), "sess-1", "hi")

	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeNLUUnavailable, stderrors.Code(err))
}
