// internal/mailbox/client_test.go
package mailbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk-assistant/internal/common/logger"
	"helpdesk-assistant/internal/models"
)

func TestExecute_Success(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody commandRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(Result{Success: true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok-123", 5*time.Second, logger.NewTestLogger(t))
	account := models.HostingAccount{ID: "host-1", Provider: "exabytes"}

	result, err := client.Execute(context.Background(), account, ActionCreateEmail, map[string]string{
		"email":    "a@b.com",
		"password": "Pass123!",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "/api/hosting/host-1/mailbox", gotPath)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, ActionCreateEmail, gotBody.Action)
	assert.Equal(t, "a@b.com", gotBody.Params["email"])
}

func TestExecute_CommandRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(Result{Success: false, Error: "mailbox already exists"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second, logger.NewTestLogger(t))

	result, err := client.Execute(context.Background(), models.HostingAccount{ID: "h"}, ActionCreateEmail, nil)
	require.NoError(t, err, "application failure is not a transport error")
	assert.False(t, result.Success)
	assert.Equal(t, "mailbox already exists", result.Error)
}

func TestExecute_Non200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second, logger.NewTestLogger(t))

	_, err := client.Execute(context.Background(), models.HostingAccount{ID: "h"}, ActionListEmails, nil)
	assert.ErrorContains(t, err, "502")
}

func TestResult_Accounts(t *testing.T) {
	raw := json.RawMessage(`[{"email":"a@b.com","diskUsed":10},{"email":"c@b.com"}]`)
	r := Result{Success: true, Data: raw}

	accounts, err := r.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "a@b.com", accounts[0].Email)

	empty := Result{Success: true}
	accounts, err = empty.Accounts()
	require.NoError(t, err)
	assert.Nil(t, accounts)
}
