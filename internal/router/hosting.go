// internal/router/hosting.go
package router

import (
	"context"
	"fmt"
	"strings"

	"helpdesk-assistant/internal/chat"
	"helpdesk-assistant/internal/intent"
	"helpdesk-assistant/internal/models"
)

func (r *Router) handleHosting(ctx context.Context, sess *chat.Session, it intent.Intent) {
	switch it.Action {
	case intent.ActionCreate:
		r.createHostingAccount(ctx, sess, it)
	case intent.ActionList, intent.ActionQuery:
		r.listHostingAccounts(ctx, sess, it)
	case intent.ActionDelete:
		sess.Append(models.RoleBot, "Hosting accounts can only be removed from the hosting page.")
	default:
		// "use hosting exabytes" carries no recognized verb; a provider
		// mention here means the user is picking the mailbox target account.
		if it.Param("provider") != "" {
			r.selectHostingAccount(ctx, sess, it.Param("provider"))
			return
		}
		sess.Append(models.RoleBot, clarificationMessage)
	}
}

func (r *Router) createHostingAccount(ctx context.Context, sess *chat.Session, it intent.Intent) {
	if msg, ok := validateCreate(intent.EntityHosting, it.Params); !ok {
		sess.Append(models.RoleBot, msg)
		return
	}

	h := models.HostingAccount{
		Provider: it.Param("provider"),
		Plan:     it.Param("plan"),
	}
	if cost, ok := it.FloatParam("cost"); ok {
		h.Cost = cost
	}

	var created models.HostingAccount
	err := timeExternalOp("create_hosting_account", func() error {
		var err error
		created, err = r.store.CreateHostingAccount(ctx, h)
		return err
	})
	if err != nil {
		externalFailure(sess, "Adding hosting account", err)
		return
	}

	sess.Append(models.RoleBot, fmt.Sprintf("✅ Hosting account **%s** added.", created.Provider))
}

func (r *Router) listHostingAccounts(ctx context.Context, sess *chat.Session, it intent.Intent) {
	var accounts []models.HostingAccount
	err := timeExternalOp("list_hosting_accounts", func() error {
		var err error
		accounts, err = r.store.ListHostingAccounts(ctx)
		return err
	})
	if err != nil {
		externalFailure(sess, "Listing hosting accounts", err)
		return
	}

	if len(accounts) == 0 {
		sess.Append(models.RoleBot, "No hosting accounts on file.")
		return
	}

	if it.Action == intent.ActionQuery {
		sess.Append(models.RoleBot, fmt.Sprintf("You have **%d** hosting accounts.", len(accounts)))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found **%d** hosting accounts:\n", len(accounts))
	for _, a := range accounts {
		marker := ""
		if a.ID == sess.SelectedHosting {
			marker = "(selected)"
		}
		line := joinNonEmpty([]string{"• **" + a.Provider + "**", a.Domain, a.Plan, marker}, " — ")
		b.WriteString(line + "\n")
	}
	sess.Append(models.RoleBot, strings.TrimRight(b.String(), "\n"))
}

func (r *Router) selectHostingAccount(ctx context.Context, sess *chat.Session, provider string) {
	var accounts []models.HostingAccount
	err := timeExternalOp("list_hosting_accounts", func() error {
		var err error
		accounts, err = r.store.ListHostingAccounts(ctx)
		return err
	})
	if err != nil {
		externalFailure(sess, "Looking up hosting accounts", err)
		return
	}

	for _, a := range accounts {
		if strings.EqualFold(a.Provider, provider) {
			sess.SelectedHosting = a.ID
			sess.Append(models.RoleBot, fmt.Sprintf("✅ Using the **%s** hosting account for mailbox commands.", a.Provider))
			return
		}
	}

	sess.Append(models.RoleBot, fmt.Sprintf("❌ No hosting account for provider **%s** found.", provider))
}
