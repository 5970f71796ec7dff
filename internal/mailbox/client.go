// internal/mailbox/client.go

// Package mailbox talks to the cPanel/mail relay proxy. The proxy owns the
// actual control-panel credentials; this client only scopes commands to one
// hosting account and normalizes the proxy's success/error envelope.
package mailbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"helpdesk-assistant/internal/common/logger"
	"helpdesk-assistant/internal/models"
)

// Action is a mailbox command the proxy understands.
type Action string

const (
	ActionCreateEmail    Action = "create_email"
	ActionDeleteEmail    Action = "delete_email"
	ActionChangePassword Action = "change_password"
	ActionListEmails     Action = "list_emails"
)

// Result is the proxy's response envelope. Application-level failures arrive
// as Success=false with an error string, not as transport errors.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Accounts returns the email accounts carried in a list_emails result.
func (r *Result) Accounts() ([]models.EmailAccount, error) {
	if len(r.Data) == 0 {
		return nil, nil
	}
	var accounts []models.EmailAccount
	if err := json.Unmarshal(r.Data, &accounts); err != nil {
		return nil, fmt.Errorf("decode email accounts: %w", err)
	}
	return accounts, nil
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log.WithFields(map[string]interface{}{"component": "mailbox"}),
	}
}

type commandRequest struct {
	Action Action            `json:"action"`
	Params map[string]string `json:"params,omitempty"`
}

// Execute runs one mailbox command against the proxy, scoped to the given
// hosting account. Transport faults and non-2xx statuses are returned as
// errors; everything else, including command failures, comes back as a Result.
func (c *Client) Execute(ctx context.Context, account models.HostingAccount, action Action, params map[string]string) (*Result, error) {
	body, err := json.Marshal(commandRequest{Action: action, Params: params})
	if err != nil {
		return nil, fmt.Errorf("encode mailbox command: %w", err)
	}

	url := fmt.Sprintf("%s/api/hosting/%s/mailbox", c.baseURL, account.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build mailbox request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("executing mailbox command", map[string]interface{}{
		"accountId": account.ID,
		"action":    string(action),
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mailbox proxy request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mailbox proxy status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode mailbox response: %w", err)
	}

	if !result.Success {
		c.logger.Warn("mailbox command rejected", map[string]interface{}{
			"accountId": account.ID,
			"action":    string(action),
			"error":     result.Error,
		})
	}

	return &result, nil
}
