// internal/httpapi/routes_test.go
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
	"dining-concierge/internal/nlu"
	"dining-concierge/internal/session"
)

type fakeDialog struct {
	resp models.TurnResponse
	err  error
}

func (f *fakeDialog) HandleTurn(context.Context, models.TurnEvent) (models.TurnResponse, error) {
	return f.resp, f.err
}

type fakeRecognizer struct {
	rec *nlu.Recognition
	err error
}

func (f *fakeRecognizer) RecognizeText(context.Context, string, string) (*nlu.Recognition, error) {
	return f.rec, f.err
}

func newTestServer(t *testing.T, dialog DialogHandler, recognizer Recognizer) *Server {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	sessions := session.NewStore(client, 30*time.Minute)
	return NewServer(dialog, recognizer, sessions, logger.NewTestLogger(t))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeDialog{}, &fakeRecognizer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChat_RelaysMessages(t *testing.T) {
	recognizer := &fakeRecognizer{rec: &nlu.Recognition{
		IntentName: models.GreetingIntent,
		Messages:   []string{"Hello Good afternoon, How can I help you?"},
	}}
	s := newTestServer(t, &fakeDialog{}, recognizer)

	body, _ := json.Marshal(ChatRequest{SessionID: "sess-1", Text: "hi"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sess-1", resp.SessionID)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "Hello Good afternoon, How can I help you?", resp.Messages[0])
}

func TestChat_AssignsSessionID(t *testing.T) {
	recognizer := &fakeRecognizer{rec: &nlu.Recognition{Messages: []string{"hi"}}}
	s := newTestServer(t, &fakeDialog{}, recognizer)

	body, _ := json.Marshal(ChatRequest{Text: "hello"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
}

func TestChat_MissingTextRejected(t *testing.T) {
	s := newTestServer(t, &fakeDialog{}, &fakeRecognizer{})

	body, _ := json.Marshal(ChatRequest{SessionID: "sess-1"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_RuntimeUnavailable(t *testing.T) {
	recognizer := &fakeRecognizer{err: stderrors.NewNLUUnavailableError(assert.AnError)}
	s := newTestServer(t, &fakeDialog{}, recognizer)

	body, _ := json.Marshal(ChatRequest{SessionID: "sess-1", Text: "hi"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestDialog_ReturnsTurnResponse(t *testing.T) {
	dialog := &fakeDialog{resp: models.TurnResponse{
		SessionState: models.ResponseSessionState{
			DialogAction: models.DialogAction{Type: models.ActionDelegate},
		},
	}}
	s := newTestServer(t, dialog, &fakeRecognizer{})

	event := models.TurnEvent{
		SessionID:        "sess-1",
		InvocationSource: models.SourceDialogCodeHook,
		SessionState: models.SessionStateInput{
			Intent: models.IntentInput{Name: models.DiningSuggestionsIntent},
		},
	}
	body, _ := json.Marshal(event)
	req := httptest.NewRequest(http.MethodPost, "/dialog", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.ActionDelegate, resp.SessionState.DialogAction.Type)
}

func TestDialog_UnknownIntentIsBadRequest(t *testing.T) {
	dialog := &fakeDialog{err: stderrors.NewUnknownIntentError("OrderPizzaIntent")}
	s := newTestServer(t, dialog, &fakeRecognizer{})

	body, _ := json.Marshal(models.TurnEvent{SessionID: "sess-1"})
	req := httptest.NewRequest(http.MethodPost, "/dialog", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDialog_RetryableErrorIsBadGateway(t *testing.T) {
	dialog := &fakeDialog{err: stderrors.NewEnqueueFailedError(assert.AnError)}
	s := newTestServer(t, dialog, &fakeRecognizer{})

	body, _ := json.Marshal(models.TurnEvent{SessionID: "sess-1"})
	req := httptest.NewRequest(http.MethodPost, "/dialog", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestDialog_MalformedBody(t *testing.T) {
	s := newTestServer(t, &fakeDialog{}, &fakeRecognizer{})

	req := httptest.NewRequest(http.MethodPost, "/dialog", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
