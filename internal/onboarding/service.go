// internal/onboarding/service.go

// Package onboarding coordinates new-hire requests across the record store,
// the approval workflow and outbound notifications.
package onboarding

import (
	"context"
	"fmt"

	commonerrors "helpdesk-assistant/internal/common/errors"
	"helpdesk-assistant/internal/common/logger"
	"helpdesk-assistant/internal/models"
)

// Store is the record-store slice the service needs.
type Store interface {
	CreateOnboardingRequest(ctx context.Context, r models.OnboardingRequest) (models.OnboardingRequest, error)
	GetOnboardingRequest(ctx context.Context, id string) (models.OnboardingRequest, error)
	UpdateOnboardingStatus(ctx context.Context, id string, status models.OnboardingStatus) error
}

// Workflow starts and advances the BPMN onboarding process. Optional: nil
// disables process orchestration and requests are decided directly.
type Workflow interface {
	StartOnboarding(ctx context.Context, req models.OnboardingRequest) (int64, error)
	PublishDecision(ctx context.Context, requestID string, status models.OnboardingStatus) error
}

// Notifier emails the requester when a decision lands.
type Notifier interface {
	SendOnboardingDecision(ctx context.Context, req models.OnboardingRequest) error
}

type Service struct {
	store    Store
	workflow Workflow
	notifier Notifier
	logger   logger.Logger
}

func NewService(store Store, workflow Workflow, notifier Notifier, log logger.Logger) *Service {
	return &Service{
		store:    store,
		workflow: workflow,
		notifier: notifier,
		logger:   log.WithFields(map[string]interface{}{"component": "onboarding"}),
	}
}

// Create persists the request and, when workflow orchestration is enabled,
// starts a process instance keyed by the request id.
func (s *Service) Create(ctx context.Context, req models.OnboardingRequest) (models.OnboardingRequest, error) {
	if req.EmployeeName == "" {
		return models.OnboardingRequest{}, commonerrors.NewMissingFieldError("employeeName")
	}
	if req.Email == "" {
		return models.OnboardingRequest{}, commonerrors.NewMissingFieldError("email")
	}

	created, err := s.store.CreateOnboardingRequest(ctx, req)
	if err != nil {
		return models.OnboardingRequest{}, fmt.Errorf("create onboarding request: %w", err)
	}

	if s.workflow != nil {
		if _, err := s.workflow.StartOnboarding(ctx, created); err != nil {
			// The request is already durable; the process can be restarted by
			// an operator, so surface the failure without rolling back.
			s.logger.WithError(err).Error("failed to start onboarding process", map[string]interface{}{
				"requestId": created.ID,
			})
			return created, commonerrors.NewExternalOpError("workflow start", err)
		}
	}

	s.logger.Info("created onboarding request", map[string]interface{}{
		"requestId":    created.ID,
		"employeeName": created.EmployeeName,
	})
	return created, nil
}

// Get returns one request by id.
func (s *Service) Get(ctx context.Context, id string) (models.OnboardingRequest, error) {
	return s.store.GetOnboardingRequest(ctx, id)
}

// Approve marks the request approved, advances the workflow and notifies the
// requester.
func (s *Service) Approve(ctx context.Context, id string) (models.OnboardingRequest, error) {
	return s.decide(ctx, id, models.OnboardingApproved)
}

// Reject marks the request rejected, advances the workflow and notifies the
// requester.
func (s *Service) Reject(ctx context.Context, id string) (models.OnboardingRequest, error) {
	return s.decide(ctx, id, models.OnboardingRejected)
}

func (s *Service) decide(ctx context.Context, id string, status models.OnboardingStatus) (models.OnboardingRequest, error) {
	req, err := s.store.GetOnboardingRequest(ctx, id)
	if err != nil {
		return models.OnboardingRequest{}, err
	}
	if req.Status != models.OnboardingPending {
		return models.OnboardingRequest{}, fmt.Errorf("onboarding request %s already %s", id, req.Status)
	}

	if err := s.store.UpdateOnboardingStatus(ctx, id, status); err != nil {
		return models.OnboardingRequest{}, err
	}
	req.Status = status

	if s.workflow != nil {
		if err := s.workflow.PublishDecision(ctx, id, status); err != nil {
			s.logger.WithError(err).Error("failed to publish onboarding decision", map[string]interface{}{
				"requestId": id,
			})
		}
	}

	if s.notifier != nil {
		if err := s.notifier.SendOnboardingDecision(ctx, req); err != nil {
			s.logger.WithError(err).Warn("failed to email onboarding decision", map[string]interface{}{
				"requestId": id,
			})
		}
	}

	return req, nil
}
