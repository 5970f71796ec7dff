// internal/router/ticket.go
package router

import (
	"context"
	"fmt"
	"strings"

	"helpdesk-assistant/internal/chat"
	"helpdesk-assistant/internal/intent"
	"helpdesk-assistant/internal/models"
)

func (r *Router) handleTicket(ctx context.Context, sess *chat.Session, it intent.Intent) {
	switch it.Action {
	case intent.ActionCreate:
		r.createTicket(ctx, sess, it)
	case intent.ActionList:
		r.listTickets(ctx, sess)
	case intent.ActionQuery:
		// Questions about an issue get a knowledge base lookup before the
		// user is pushed toward opening a ticket.
		r.answerFromKnowledgeBase(ctx, sess, it)
	case intent.ActionDelete, intent.ActionUpdate:
		sess.Append(models.RoleBot, "Tickets can only be updated or closed from the ticket board.")
	default:
		sess.Append(models.RoleBot, clarificationMessage)
	}
}

func (r *Router) createTicket(ctx context.Context, sess *chat.Session, it intent.Intent) {
	if msg, ok := validateCreate(intent.EntityTicket, it.Params); !ok {
		sess.Append(models.RoleBot, msg)
		return
	}

	t := models.Ticket{
		Title:       it.Param("title"),
		Description: it.Param("description"),
		Priority:    models.TicketPriority(it.Param("priority")),
		Department:  it.Param("department"),
	}

	var created models.Ticket
	err := timeExternalOp("create_ticket", func() error {
		var err error
		created, err = r.store.CreateTicket(ctx, t)
		return err
	})
	if err != nil {
		externalFailure(sess, "Creating ticket", err)
		return
	}

	reply := fmt.Sprintf("✅ Ticket **%s** created with priority **%s**.", created.Title, created.Priority)
	if created.Priority == models.PriorityCritical && r.notifier != nil {
		if err := r.notifier.NotifyCriticalTicket(ctx, created); err == nil {
			reply += " On-call has been paged."
		} else {
			reply += " (on-call page failed, please escalate manually)"
		}
	}
	sess.Append(models.RoleBot, reply)
}

func (r *Router) listTickets(ctx context.Context, sess *chat.Session) {
	var tickets []models.Ticket
	err := timeExternalOp("list_tickets", func() error {
		var err error
		tickets, err = r.store.ListTickets(ctx)
		return err
	})
	if err != nil {
		externalFailure(sess, "Listing tickets", err)
		return
	}

	if len(tickets) == 0 {
		sess.Append(models.RoleBot, "No open tickets. 🎉")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found **%d** tickets:\n", len(tickets))
	for _, t := range tickets {
		fmt.Fprintf(&b, "• **%s** [%s] — %s\n", t.Title, t.Priority, t.Status)
	}
	sess.Append(models.RoleBot, strings.TrimRight(b.String(), "\n"))
}

func (r *Router) answerFromKnowledgeBase(ctx context.Context, sess *chat.Session, it intent.Intent) {
	if r.kb == nil {
		r.listTickets(ctx, sess)
		return
	}

	query := it.Param("title")
	var solutions []models.Solution
	err := timeExternalOp("kb_search", func() error {
		var err error
		solutions, err = r.kb.SearchSolutions(ctx, query, r.maxKBResults)
		return err
	})
	if err != nil {
		r.logger.WithError(err).Warn("knowledge base lookup failed", map[string]interface{}{
			"sessionId": sess.ID,
		})
		sess.Append(models.RoleBot, "I couldn't search the knowledge base right now. You can create a ticket instead: **create ticket <summary>**.")
		return
	}

	if len(solutions) == 0 {
		sess.Append(models.RoleBot, "I couldn't find a known solution for that. Try **create ticket <summary>** to get help from IT.")
		return
	}

	var b strings.Builder
	b.WriteString("Here's what I found in the knowledge base:\n")
	for _, s := range solutions {
		fmt.Fprintf(&b, "• **%s** — %s\n", s.Title, truncate(s.Body, 160))
	}
	b.WriteString("If none of these help, say **create ticket <summary>**.")
	sess.Append(models.RoleBot, b.String())
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max]) + "…"
}
