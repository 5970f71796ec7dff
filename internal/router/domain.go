// internal/router/domain.go
package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"helpdesk-assistant/internal/chat"
	"helpdesk-assistant/internal/common/metrics"
	"helpdesk-assistant/internal/intent"
	"helpdesk-assistant/internal/models"
)

// expiringWindow is how far ahead "expiring" domain filters look.
const expiringWindow = 30 * 24 * time.Hour

func (r *Router) handleDomain(ctx context.Context, sess *chat.Session, it intent.Intent) {
	switch it.Action {
	case intent.ActionCreate:
		r.createDomain(ctx, sess, it)
	case intent.ActionList, intent.ActionQuery:
		r.listDomains(ctx, sess, it)
	case intent.ActionDelete:
		r.requestDomainDelete(sess, it)
	case intent.ActionUpdate:
		sess.Append(models.RoleBot, "Updating domains from chat isn't supported yet — use the domain inventory page instead.")
	default:
		sess.Append(models.RoleBot, clarificationMessage)
	}
}

func (r *Router) createDomain(ctx context.Context, sess *chat.Session, it intent.Intent) {
	if msg, ok := validateCreate(intent.EntityDomain, it.Params); !ok {
		sess.Append(models.RoleBot, msg)
		return
	}

	d := models.Domain{
		Name:       it.Param("domain"),
		Registrar:  it.Param("registrar"),
		ExpiryDate: it.Param("expiryDate"),
	}
	if cost, ok := it.FloatParam("cost"); ok {
		d.Cost = cost
	}
	if renew, ok := it.BoolParam("autoRenew"); ok {
		d.AutoRenew = renew
	}

	var created models.Domain
	err := timeExternalOp("create_domain", func() error {
		var err error
		created, err = r.store.CreateDomain(ctx, d)
		return err
	})
	if err != nil {
		externalFailure(sess, "Adding domain", err)
		return
	}

	parts := []string{fmt.Sprintf("✅ Domain **%s** added to the inventory.", created.Name)}
	if created.ExpiryDate != "" {
		parts = append(parts, fmt.Sprintf("Expires %s.", created.ExpiryDate))
	}
	if created.Cost > 0 {
		parts = append(parts, fmt.Sprintf("Cost RM%.2f/year.", created.Cost))
	}
	sess.Append(models.RoleBot, strings.Join(parts, " "))
}

func (r *Router) listDomains(ctx context.Context, sess *chat.Session, it intent.Intent) {
	var domains []models.Domain
	err := timeExternalOp("list_domains", func() error {
		var err error
		domains, err = r.store.ListDomains(ctx)
		return err
	})
	if err != nil {
		externalFailure(sess, "Listing domains", err)
		return
	}

	filtered := domains
	var filterDesc []string

	if renew, ok := it.BoolParam("filterAutoRenew"); ok {
		filtered = filterDomains(filtered, func(d models.Domain) bool { return d.AutoRenew == renew })
		if renew {
			filterDesc = append(filterDesc, "auto-renewing")
		} else {
			filterDesc = append(filterDesc, "not auto-renewing")
		}
	}
	if expiring, ok := it.BoolParam("filterExpiring"); ok && expiring {
		cutoff := time.Now().Add(expiringWindow)
		filtered = filterDomains(filtered, func(d models.Domain) bool {
			exp, err := time.Parse("2006-01-02", d.ExpiryDate)
			return err == nil && exp.Before(cutoff)
		})
		filterDesc = append(filterDesc, "expiring within 30 days")
	}

	label := "domains"
	if len(filterDesc) > 0 {
		label = strings.Join(filterDesc, ", ") + " domains"
	}

	if len(filtered) == 0 {
		sess.Append(models.RoleBot, fmt.Sprintf("No %s found.", label))
		return
	}

	if it.Action == intent.ActionQuery {
		sess.Append(models.RoleBot, fmt.Sprintf("You have **%d** %s.", len(filtered), label))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found **%d** %s:\n", len(filtered), label)
	for _, d := range filtered {
		line := joinNonEmpty([]string{
			"• **" + d.Name + "**",
			d.Registrar,
			expiryNote(d.ExpiryDate),
		}, " — ")
		b.WriteString(line + "\n")
	}
	sess.Append(models.RoleBot, strings.TrimRight(b.String(), "\n"))
}

func (r *Router) requestDomainDelete(sess *chat.Session, it intent.Intent) {
	name := it.Param("domain")
	if name == "" {
		sess.Append(models.RoleBot, "Please specify the **domain** you want to delete.")
		return
	}

	msg := sess.Append(models.RoleConfirmation,
		fmt.Sprintf("⚠️ Delete domain **%s** from the inventory? This cannot be undone.", name))
	sess.SetPending(chat.PendingAction{
		Kind:      chat.PendingDelete,
		MessageID: msg.ID,
		Entity:    intent.EntityDomain,
		Target:    name,
	})
	metrics.PendingConfirmations.Inc()
}

// confirmDomainDelete re-fetches the inventory and matches by name at confirm
// time, so a record deleted or renamed since the confirmation was issued is
// caught instead of acted on blindly.
func (r *Router) confirmDomainDelete(ctx context.Context, sess *chat.Session, name string) {
	var domains []models.Domain
	err := timeExternalOp("list_domains", func() error {
		var err error
		domains, err = r.store.ListDomains(ctx)
		return err
	})
	if err != nil {
		externalFailure(sess, "Looking up domain", err)
		return
	}

	var target *models.Domain
	for i := range domains {
		if strings.EqualFold(domains[i].Name, name) {
			target = &domains[i]
			break
		}
	}
	if target == nil {
		sess.Append(models.RoleBot, fmt.Sprintf("❌ Domain **%s** was not found in the inventory.", name))
		return
	}

	err = timeExternalOp("delete_domain", func() error {
		return r.store.DeleteDomain(ctx, target.ID)
	})
	if err != nil {
		externalFailure(sess, "Deleting domain", err)
		return
	}

	sess.Append(models.RoleBot, fmt.Sprintf("✅ Domain **%s** deleted.", target.Name))
}

func filterDomains(in []models.Domain, keep func(models.Domain) bool) []models.Domain {
	out := make([]models.Domain, 0, len(in))
	for _, d := range in {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

func expiryNote(date string) string {
	if date == "" {
		return ""
	}
	return "expires " + date
}
