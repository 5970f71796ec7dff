// internal/router/email.go
package router

import (
	"context"
	"fmt"
	"strings"

	"helpdesk-assistant/internal/chat"
	"helpdesk-assistant/internal/common/metrics"
	"helpdesk-assistant/internal/intent"
	"helpdesk-assistant/internal/mailbox"
	"helpdesk-assistant/internal/models"
)

func (r *Router) handleEmail(ctx context.Context, sess *chat.Session, it intent.Intent) {
	switch it.Action {
	case intent.ActionCreate:
		r.createEmail(ctx, sess, it)
	case intent.ActionUpdate:
		r.changeEmailPassword(ctx, sess, it)
	case intent.ActionDelete:
		r.requestEmailDelete(sess, it)
	case intent.ActionList, intent.ActionQuery:
		r.listEmails(ctx, sess, it)
	default:
		sess.Append(models.RoleBot, clarificationMessage)
	}
}

func (r *Router) createEmail(ctx context.Context, sess *chat.Session, it intent.Intent) {
	if msg, ok := validateCreate(intent.EntityEmail, it.Params); !ok {
		sess.Append(models.RoleBot, msg)
		return
	}

	email := it.Param("email")
	password := it.Param("password")

	// Without a password the proxy is never called: park the command and ask.
	if password == "" {
		sess.Append(models.RoleBot, fmt.Sprintf("What password should I set for **%s**? Reply with `password <value>`.", email))
		sess.SetPending(chat.PendingAction{
			Kind:   chat.PendingPassword,
			Entity: intent.EntityEmail,
			Target: email,
			Params: map[string]interface{}{"mailboxAction": string(mailbox.ActionCreateEmail)},
		})
		return
	}

	account, ok := r.resolveHostingAccount(ctx, sess, email)
	if !ok {
		return
	}
	r.runMailboxCommand(ctx, sess, account, mailbox.ActionCreateEmail, map[string]string{
		"email":    email,
		"password": password,
	})
}

func (r *Router) changeEmailPassword(ctx context.Context, sess *chat.Session, it intent.Intent) {
	email := it.Param("email")
	if email == "" {
		sess.Append(models.RoleBot, "Please specify the **email** address whose password should change.")
		return
	}

	password := it.Param("password")
	if password == "" {
		sess.Append(models.RoleBot, fmt.Sprintf("What should the new password for **%s** be? Reply with `password <value>`.", email))
		sess.SetPending(chat.PendingAction{
			Kind:   chat.PendingPassword,
			Entity: intent.EntityEmail,
			Target: email,
			Params: map[string]interface{}{"mailboxAction": string(mailbox.ActionChangePassword)},
		})
		return
	}

	account, ok := r.resolveHostingAccount(ctx, sess, email)
	if !ok {
		return
	}
	r.runMailboxCommand(ctx, sess, account, mailbox.ActionChangePassword, map[string]string{
		"email":    email,
		"password": password,
	})
}

func (r *Router) requestEmailDelete(sess *chat.Session, it intent.Intent) {
	email := it.Param("email")
	if email == "" {
		sess.Append(models.RoleBot, "Please specify the **email** address you want to delete.")
		return
	}

	msg := sess.Append(models.RoleConfirmation,
		fmt.Sprintf("⚠️ Delete mailbox **%s**? All mail in it will be lost.", email))
	sess.SetPending(chat.PendingAction{
		Kind:      chat.PendingDelete,
		MessageID: msg.ID,
		Entity:    intent.EntityEmail,
		Target:    email,
	})
	metrics.PendingConfirmations.Inc()
}

func (r *Router) confirmEmailDelete(ctx context.Context, sess *chat.Session, pending *chat.PendingAction) {
	account, ok := r.resolveHostingAccount(ctx, sess, pending.Target)
	if !ok {
		return
	}
	r.runMailboxCommand(ctx, sess, account, mailbox.ActionDeleteEmail, map[string]string{
		"email": pending.Target,
	})
}

func (r *Router) listEmails(ctx context.Context, sess *chat.Session, it intent.Intent) {
	account, ok := r.resolveHostingAccount(ctx, sess, it.Param("email"))
	if !ok {
		return
	}

	var result *mailbox.Result
	err := timeExternalOp("mailbox_list_emails", func() error {
		var err error
		result, err = r.mailbox.Execute(ctx, account, mailbox.ActionListEmails, nil)
		return err
	})
	if err != nil {
		externalFailure(sess, "Listing mailboxes", err)
		return
	}
	if !result.Success {
		sess.Append(models.RoleBot, mailboxFailureText(result.Error))
		return
	}

	accounts, err := result.Accounts()
	if err != nil {
		externalFailure(sess, "Listing mailboxes", err)
		return
	}
	if len(accounts) == 0 {
		sess.Append(models.RoleBot, fmt.Sprintf("No mailboxes on the **%s** account yet.", account.Provider))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Mailboxes on **%s**:\n", account.Provider)
	for _, a := range accounts {
		fmt.Fprintf(&b, "• %s\n", a.Email)
	}
	sess.Append(models.RoleBot, strings.TrimRight(b.String(), "\n"))
}

// resolveHostingAccount picks the hosting account a mailbox command applies
// to: an explicit session selection wins, then a domain match against the
// email address, then the only account when there is exactly one. Anything
// else needs the user to choose first.
func (r *Router) resolveHostingAccount(ctx context.Context, sess *chat.Session, emailHint string) (models.HostingAccount, bool) {
	var accounts []models.HostingAccount
	err := timeExternalOp("list_hosting_accounts", func() error {
		var err error
		accounts, err = r.store.ListHostingAccounts(ctx)
		return err
	})
	if err != nil {
		externalFailure(sess, "Looking up hosting accounts", err)
		return models.HostingAccount{}, false
	}

	if len(accounts) == 0 {
		sess.Append(models.RoleBot, "There is no hosting account on file. Add one first: **add hosting <provider>**.")
		return models.HostingAccount{}, false
	}

	if sess.SelectedHosting != "" {
		for _, a := range accounts {
			if a.ID == sess.SelectedHosting {
				return a, true
			}
		}
		// Stale selection: the account was removed since it was chosen.
		sess.SelectedHosting = ""
	}

	if at := strings.LastIndex(emailHint, "@"); at >= 0 {
		domain := strings.ToLower(emailHint[at+1:])
		for _, a := range accounts {
			if strings.EqualFold(a.Domain, domain) {
				return a, true
			}
		}
	}

	if len(accounts) == 1 {
		return accounts[0], true
	}

	var b strings.Builder
	b.WriteString("Multiple hosting accounts are on file — tell me which one to use with **use hosting <provider>**:\n")
	for _, a := range accounts {
		line := joinNonEmpty([]string{"• **" + a.Provider + "**", a.Domain, a.Plan}, " — ")
		b.WriteString(line + "\n")
	}
	sess.Append(models.RoleBot, strings.TrimRight(b.String(), "\n"))
	return models.HostingAccount{}, false
}

// runMailboxCommand executes one proxy command and renders its outcome.
func (r *Router) runMailboxCommand(ctx context.Context, sess *chat.Session, account models.HostingAccount, action mailbox.Action, params map[string]string) {
	var result *mailbox.Result
	err := timeExternalOp("mailbox_"+string(action), func() error {
		var err error
		result, err = r.mailbox.Execute(ctx, account, action, params)
		return err
	})
	if err != nil {
		externalFailure(sess, "Mailbox command", err)
		return
	}
	if !result.Success {
		sess.Append(models.RoleBot, mailboxFailureText(result.Error))
		return
	}

	email := params["email"]
	switch action {
	case mailbox.ActionCreateEmail:
		sess.Append(models.RoleBot, fmt.Sprintf("✅ Mailbox **%s** created on the %s account.", email, account.Provider))
	case mailbox.ActionDeleteEmail:
		sess.Append(models.RoleBot, fmt.Sprintf("✅ Mailbox **%s** deleted.", email))
	case mailbox.ActionChangePassword:
		sess.Append(models.RoleBot, fmt.Sprintf("✅ Password updated for **%s**.", email))
	default:
		sess.Append(models.RoleBot, "✅ Done.")
	}
}

func mailboxFailureText(errText string) string {
	if errText == "" {
		errText = "the control panel rejected the command"
	}
	return "❌ Mailbox command failed: " + errText
}
