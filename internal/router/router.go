// internal/router/router.go

// Package router dispatches parsed intents to per-entity command handlers.
// Handlers talk to the record store, the mailbox proxy and the knowledge base,
// and communicate everything back to the user as transcript entries. No error
// raised below this boundary ever escapes to the HTTP layer.
package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"helpdesk-assistant/internal/chat"
	"helpdesk-assistant/internal/common/logger"
	"helpdesk-assistant/internal/common/metrics"
	"helpdesk-assistant/internal/common/observability"
	"helpdesk-assistant/internal/intent"
	"helpdesk-assistant/internal/mailbox"
	"helpdesk-assistant/internal/models"
)

// RecordStore is the slice of the persistence layer the handlers consume.
type RecordStore interface {
	CreateDomain(ctx context.Context, d models.Domain) (models.Domain, error)
	ListDomains(ctx context.Context) ([]models.Domain, error)
	DeleteDomain(ctx context.Context, id string) error

	CreateAsset(ctx context.Context, a models.Asset) (models.Asset, error)
	ListAssets(ctx context.Context) ([]models.Asset, error)

	CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error)
	ListTickets(ctx context.Context) ([]models.Ticket, error)

	CreateHostingAccount(ctx context.Context, h models.HostingAccount) (models.HostingAccount, error)
	ListHostingAccounts(ctx context.Context) ([]models.HostingAccount, error)
}

// MailboxClient executes control-panel commands scoped to one hosting account.
type MailboxClient interface {
	Execute(ctx context.Context, account models.HostingAccount, action mailbox.Action, params map[string]string) (*mailbox.Result, error)
}

// KnowledgeBase answers diagnostic questions with ranked solutions.
type KnowledgeBase interface {
	SearchSolutions(ctx context.Context, query string, max int) ([]models.Solution, error)
}

// CriticalNotifier pages on-call when a critical ticket lands.
type CriticalNotifier interface {
	NotifyCriticalTicket(ctx context.Context, ticket models.Ticket) error
}

type Router struct {
	store         RecordStore
	mailbox       MailboxClient
	kb            KnowledgeBase
	notifier      CriticalNotifier
	minConfidence int
	maxKBResults  int
	obs           *observability.Observability
	logger        logger.Logger
}

type Options struct {
	MinConfidence int
	MaxKBResults  int
}

func New(store RecordStore, mb MailboxClient, kb KnowledgeBase, notifier CriticalNotifier, opts Options, obs *observability.Observability, log logger.Logger) *Router {
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = 30
	}
	if opts.MaxKBResults <= 0 {
		opts.MaxKBResults = 3
	}
	return &Router{
		store:         store,
		mailbox:       mb,
		kb:            kb,
		notifier:      notifier,
		minConfidence: opts.MinConfidence,
		maxKBResults:  opts.MaxKBResults,
		obs:           obs,
		logger:        log.WithFields(map[string]interface{}{"component": "router"}),
	}
}

const clarificationMessage = "I'm not sure what you mean. Try one of these:\n" +
	"• **Add domain example.com expiring 2026-12-31 RM50**\n" +
	"• **Create ticket printer not working, priority high**\n" +
	"• **Add laptop Dell Latitude for Alice, department Finance**\n" +
	"• **Create email support@example.com password Secret1!**\n" +
	"• **List domains expiring soon**"

// Route dispatches one intent against the session. Every outcome, including
// validation failures, external errors and panics, lands in the transcript.
func (r *Router) Route(ctx context.Context, sess *chat.Session, it intent.Intent) {
	start := time.Now()
	outcome := "ok"

	defer func() {
		if rec := recover(); rec != nil {
			outcome = "panic"
			r.logger.Error("handler panicked", map[string]interface{}{
				"sessionId": sess.ID,
				"entity":    string(it.Entity),
				"panic":     fmt.Sprint(rec),
			})
			sess.Append(models.RoleBot, fmt.Sprintf("❌ Error: %v", rec))
		}
		metrics.CommandsRouted.WithLabelValues(string(it.Entity), outcome).Inc()
		if r.obs != nil {
			r.obs.RecordCommandProcessed(ctx, outcome)
			r.obs.RecordCommandDuration(ctx, time.Since(start), outcome)
		}
	}()

	metrics.IntentsClassified.WithLabelValues(string(it.Entity), string(it.Action)).Inc()
	metrics.IntentConfidence.Observe(float64(it.Confidence))

	// The confidence gate is the sole protection keeping low-quality parses
	// away from external mutations.
	if it.Confidence < r.minConfidence {
		outcome = "low_confidence"
		sess.Append(models.RoleBot, clarificationMessage)
		return
	}

	switch it.Entity {
	case intent.EntityDomain:
		r.handleDomain(ctx, sess, it)
	case intent.EntityAsset:
		r.handleAsset(ctx, sess, it)
	case intent.EntityEmail:
		r.handleEmail(ctx, sess, it)
	case intent.EntityTicket:
		r.handleTicket(ctx, sess, it)
	case intent.EntityHosting:
		r.handleHosting(ctx, sess, it)
	default:
		outcome = "unknown_entity"
		sess.Append(models.RoleBot, clarificationMessage)
	}
}

// Resolve finishes a pending delete confirmation. The messageID must match the
// outstanding confirmation entry; the entry is removed the moment either
// branch fires.
func (r *Router) Resolve(ctx context.Context, sess *chat.Session, messageID string, confirm bool) {
	pending := sess.Pending
	if pending == nil || pending.Kind != chat.PendingDelete || pending.MessageID != messageID {
		sess.Append(models.RoleBot, "There is nothing waiting for confirmation.")
		return
	}

	sess.RemoveMessage(pending.MessageID)
	sess.ClearPending()
	metrics.PendingConfirmations.Dec()

	defer func() {
		if rec := recover(); rec != nil {
			sess.Append(models.RoleBot, fmt.Sprintf("❌ Error: %v", rec))
		}
	}()

	if !confirm {
		sess.Append(models.RoleBot, fmt.Sprintf("Deletion of **%s** cancelled.", pending.Target))
		return
	}

	switch pending.Entity {
	case intent.EntityDomain:
		r.confirmDomainDelete(ctx, sess, pending.Target)
	case intent.EntityEmail:
		r.confirmEmailDelete(ctx, sess, pending)
	default:
		sess.Append(models.RoleBot, "❌ Error: unsupported deletion target")
	}
}

// ContinuePending consumes a follow-up message while a mailbox command waits
// for its password. Returns false if the text carries no password token, in
// which case the pending state is dropped and the caller should treat the text
// as a fresh command.
func (r *Router) ContinuePending(ctx context.Context, sess *chat.Session, text string) bool {
	pending := sess.Pending
	if pending == nil || pending.Kind != chat.PendingPassword {
		return false
	}

	password := intent.ExtractPassword(text)
	if password == "" {
		// The user moved on. Abandon the half-built command.
		sess.ClearPending()
		return false
	}

	sess.ClearPending()

	defer func() {
		if rec := recover(); rec != nil {
			sess.Append(models.RoleBot, fmt.Sprintf("❌ Error: %v", rec))
		}
	}()

	params := map[string]string{"email": pending.Target, "password": password}
	action := mailbox.ActionCreateEmail
	if a, ok := pending.Params["mailboxAction"].(string); ok && a != "" {
		action = mailbox.Action(a)
	}

	account, ok := r.resolveHostingAccount(ctx, sess, pending.Target)
	if !ok {
		return true
	}

	r.runMailboxCommand(ctx, sess, account, action, params)
	return true
}

// timeExternalOp wraps one record-store or proxy call with a duration metric.
func timeExternalOp(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.ExternalOpDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	return err
}

// externalFailure renders an external-operation failure the way the user sees
// every other outcome: as transcript text.
func externalFailure(sess *chat.Session, operation string, err error) {
	sess.Append(models.RoleBot, fmt.Sprintf("❌ %s failed: %s", operation, err.Error()))
}

func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
