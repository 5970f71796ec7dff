// internal/router/asset.go
package router

import (
	"context"
	"fmt"
	"strings"

	"helpdesk-assistant/internal/chat"
	"helpdesk-assistant/internal/intent"
	"helpdesk-assistant/internal/models"
)

func (r *Router) handleAsset(ctx context.Context, sess *chat.Session, it intent.Intent) {
	switch it.Action {
	case intent.ActionCreate:
		r.createAsset(ctx, sess, it)
	case intent.ActionList, intent.ActionQuery:
		r.listAssets(ctx, sess, it)
	case intent.ActionDelete, intent.ActionUpdate:
		sess.Append(models.RoleBot, "Asset records can only be changed from the asset register page.")
	default:
		sess.Append(models.RoleBot, clarificationMessage)
	}
}

func (r *Router) createAsset(ctx context.Context, sess *chat.Session, it intent.Intent) {
	if msg, ok := validateCreate(intent.EntityAsset, it.Params); !ok {
		sess.Append(models.RoleBot, msg)
		return
	}

	a := models.Asset{
		Type:       it.Param("type"),
		Brand:      it.Param("brand"),
		Model:      it.Param("model"),
		Serial:     it.Param("serial"),
		AssignedTo: it.Param("assignedTo"),
		Department: it.Param("department"),
	}

	var created models.Asset
	err := timeExternalOp("create_asset", func() error {
		var err error
		created, err = r.store.CreateAsset(ctx, a)
		return err
	})
	if err != nil {
		externalFailure(sess, "Adding asset", err)
		return
	}

	desc := joinNonEmpty([]string{created.Brand, created.Model, created.Type}, " ")
	reply := fmt.Sprintf("✅ Asset **%s** registered.", desc)
	if created.AssignedTo != "" {
		reply += fmt.Sprintf(" Assigned to %s.", created.AssignedTo)
	}
	sess.Append(models.RoleBot, reply)
}

func (r *Router) listAssets(ctx context.Context, sess *chat.Session, it intent.Intent) {
	var assets []models.Asset
	err := timeExternalOp("list_assets", func() error {
		var err error
		assets, err = r.store.ListAssets(ctx)
		return err
	})
	if err != nil {
		externalFailure(sess, "Listing assets", err)
		return
	}

	// A type mention in the utterance narrows the listing.
	if wanted := it.Param("type"); wanted != "" {
		narrowed := make([]models.Asset, 0, len(assets))
		for _, a := range assets {
			if strings.EqualFold(a.Type, wanted) {
				narrowed = append(narrowed, a)
			}
		}
		assets = narrowed
	}

	if len(assets) == 0 {
		sess.Append(models.RoleBot, "No matching assets found.")
		return
	}

	if it.Action == intent.ActionQuery {
		sess.Append(models.RoleBot, fmt.Sprintf("There are **%d** matching assets.", len(assets)))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found **%d** assets:\n", len(assets))
	for _, a := range assets {
		line := joinNonEmpty([]string{
			"• **" + joinNonEmpty([]string{a.Brand, a.Model, a.Type}, " ") + "**",
			a.Serial,
			a.AssignedTo,
			a.Department,
		}, " — ")
		b.WriteString(line + "\n")
	}
	sess.Append(models.RoleBot, strings.TrimRight(b.String(), "\n"))
}
