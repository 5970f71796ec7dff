// internal/workflow/client.go

// Package workflow drives the employee onboarding BPMN process on Zeebe. The
// assistant only starts instances and correlates approval decisions; all
// orchestration lives in the process model.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"helpdesk-assistant/internal/common/logger"
	"helpdesk-assistant/internal/models"
)

const decisionMessageName = "onboarding-decision"

// ClientConfig holds connection settings for the Zeebe gateway.
type ClientConfig struct {
	GatewayAddress         string
	ProcessID              string
	UsePlaintextConnection bool
	ConnectionTimeout      time.Duration
	RequestTimeout         time.Duration
}

type Client struct {
	client zbc.Client
	config ClientConfig
	logger logger.Logger
}

// NewClient connects to the Zeebe gateway and verifies the broker topology
// before returning.
func NewClient(config ClientConfig, log logger.Logger) (*Client, error) {
	if config.ConnectionTimeout == 0 {
		config.ConnectionTimeout = 10 * time.Second
	}
	if config.RequestTimeout == 0 {
		config.RequestTimeout = 30 * time.Second
	}

	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         config.GatewayAddress,
		UsePlaintextConnection: config.UsePlaintextConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectionTimeout)
	defer cancel()

	if _, err := zeebeClient.NewTopologyCommand().Send(ctx); err != nil {
		zeebeClient.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", config.GatewayAddress, err)
	}

	return &Client{
		client: zeebeClient,
		config: config,
		logger: log.WithFields(map[string]interface{}{"component": "workflow"}),
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// StartOnboarding creates one process instance for the request. The request id
// doubles as the correlation key for the later decision message.
func (c *Client) StartOnboarding(ctx context.Context, req models.OnboardingRequest) (int64, error) {
	variables := map[string]interface{}{
		"requestId":    req.ID,
		"employeeName": req.EmployeeName,
		"email":        req.Email,
		"department":   req.Department,
		"equipment":    req.Equipment,
	}

	cmd, err := c.client.NewCreateInstanceCommand().
		BPMNProcessId(c.config.ProcessID).
		LatestVersion().
		VariablesFromObject(variables)
	if err != nil {
		return 0, fmt.Errorf("build create instance command: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	resp, err := cmd.Send(ctx)
	if err != nil {
		return 0, fmt.Errorf("start onboarding process for %s: %w", req.ID, err)
	}

	c.logger.Info("started onboarding process instance", map[string]interface{}{
		"requestId":          req.ID,
		"processInstanceKey": resp.GetProcessInstanceKey(),
	})
	return resp.GetProcessInstanceKey(), nil
}

// PublishDecision correlates an approve/reject decision into the waiting
// process instance.
func (c *Client) PublishDecision(ctx context.Context, requestID string, status models.OnboardingStatus) error {
	cmd, err := c.client.NewPublishMessageCommand().
		MessageName(decisionMessageName).
		CorrelationKey(requestID).
		VariablesFromObject(map[string]interface{}{
			"decision": string(status),
		})
	if err != nil {
		return fmt.Errorf("build publish message command: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("publish decision for %s: %w", requestID, err)
	}

	c.logger.Info("published onboarding decision", map[string]interface{}{
		"requestId": requestID,
		"decision":  string(status),
	})
	return nil
}
