// internal/server/server_test.go
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk-assistant/internal/common/logger"
	"helpdesk-assistant/internal/models"
	"helpdesk-assistant/internal/store"
)

type fakeChat struct {
	messages  []models.ChatMessage
	err       error
	lastText  string
	decisions []bool
}

func (f *fakeChat) HandleMessage(_ context.Context, _, text string) ([]models.ChatMessage, error) {
	f.lastText = text
	return f.messages, f.err
}

func (f *fakeChat) HandleDecision(_ context.Context, _, _ string, confirm bool) ([]models.ChatMessage, error) {
	f.decisions = append(f.decisions, confirm)
	return f.messages, f.err
}

func (f *fakeChat) Transcript(_ context.Context, _ string) ([]models.ChatMessage, error) {
	return f.messages, f.err
}

type fakeOnboarding struct {
	request models.OnboardingRequest
	err     error
}

func (f *fakeOnboarding) Create(_ context.Context, _ models.OnboardingRequest) (models.OnboardingRequest, error) {
	return f.request, f.err
}
func (f *fakeOnboarding) Get(_ context.Context, _ string) (models.OnboardingRequest, error) {
	return f.request, f.err
}
func (f *fakeOnboarding) Approve(_ context.Context, _ string) (models.OnboardingRequest, error) {
	return f.request, f.err
}
func (f *fakeOnboarding) Reject(_ context.Context, _ string) (models.OnboardingRequest, error) {
	return f.request, f.err
}

type fakeHealth struct{ err error }

func (f fakeHealth) Ping(_ context.Context) error { return f.err }

func newTestServer(t *testing.T, chat *fakeChat, ob *fakeOnboarding, health map[string]HealthChecker) *httptest.Server {
	srv := httptest.NewServer(New(chat, ob, health, logger.NewTestLogger(t)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestChatEndpoint(t *testing.T) {
	chatSvc := &fakeChat{messages: []models.ChatMessage{
		{ID: "m1", Role: models.RoleUser, Text: "add laptop"},
		{ID: "m2", Role: models.RoleBot, Text: "done"},
	}}
	srv := newTestServer(t, chatSvc, nil, nil)

	resp := postJSON(t, srv.URL+"/api/chat", map[string]string{
		"sessionId": "s1",
		"text":      "add laptop",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body chatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "s1", body.SessionID)
	assert.Len(t, body.Messages, 2)
	assert.Equal(t, "add laptop", chatSvc.lastText)
}

func TestChatEndpoint_Validation(t *testing.T) {
	srv := newTestServer(t, &fakeChat{}, nil, nil)

	resp := postJSON(t, srv.URL+"/api/chat", map[string]string{"sessionId": "s1", "text": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/chat", map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDecisionEndpoint(t *testing.T) {
	chatSvc := &fakeChat{}
	srv := newTestServer(t, chatSvc, nil, nil)

	resp := postJSON(t, srv.URL+"/api/chat/decision", map[string]string{
		"sessionId": "s1",
		"messageId": "m1",
		"decision":  "confirm",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, chatSvc.decisions, 1)
	assert.True(t, chatSvc.decisions[0])

	resp = postJSON(t, srv.URL+"/api/chat/decision", map[string]string{
		"sessionId": "s1",
		"messageId": "m1",
		"decision":  "maybe",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTranscriptEndpoint(t *testing.T) {
	chatSvc := &fakeChat{messages: []models.ChatMessage{{ID: "m1", Role: models.RoleBot, Text: "hi"}}}
	srv := newTestServer(t, chatSvc, nil, nil)

	resp, err := http.Get(srv.URL + "/api/chat/s1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body chatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Messages, 1)
}

func TestOnboardingEndpoints(t *testing.T) {
	ob := &fakeOnboarding{request: models.OnboardingRequest{
		ID:           "req-1",
		EmployeeName: "Alice Tan",
		Status:       models.OnboardingApproved,
	}}
	srv := newTestServer(t, &fakeChat{}, ob, nil)

	resp := postJSON(t, srv.URL+"/api/onboarding", map[string]interface{}{
		"employeeName": "Alice Tan",
		"email":        "alice@corp.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/onboarding/req-1/approve", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOnboardingNotFound(t *testing.T) {
	ob := &fakeOnboarding{err: store.ErrNotFound}
	srv := newTestServer(t, &fakeChat{}, ob, nil)

	resp, err := http.Get(srv.URL + "/api/onboarding/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeChat{}, nil, map[string]HealthChecker{
		"postgres": fakeHealth{},
		"redis":    fakeHealth{},
	})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthEndpoint_Degraded(t *testing.T) {
	srv := newTestServer(t, &fakeChat{}, nil, map[string]HealthChecker{
		"postgres": fakeHealth{err: errors.New("down")},
	})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
