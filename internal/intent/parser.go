// internal/intent/parser.go
package intent

import (
	"strings"
	"time"
)

// Parse assembles the full intent for one utterance: entity, action, the
// per-entity parameter set, and the confidence score.
func Parse(text string) Intent {
	return ParseAt(text, time.Now())
}

// ParseAt is Parse with an explicit clock, for relative-date extraction.
func ParseAt(text string, now time.Time) Intent {
	entity := ClassifyEntity(text)
	action := ClassifyAction(text)

	params := extractParams(text, entity, action, now)

	return Intent{
		Entity:     entity,
		Action:     action,
		Params:     params,
		Confidence: Score(entity, action, params),
	}
}

// extractParams runs the field extractors relevant to the entity and keeps
// only the fields that were actually found.
func extractParams(text string, entity EntityType, action ActionType, now time.Time) map[string]interface{} {
	params := make(map[string]interface{})
	put := func(key, value string) {
		if value != "" {
			params[key] = value
		}
	}

	switch entity {
	case EntityDomain:
		put("domain", ExtractDomainName(text))
		put("expiryDate", ExtractDate(text, now))
		put("registrar", ExtractAfterLabel(text, "registrar", "from"))
		if cost, ok := ExtractCurrency(text); ok {
			params["cost"] = cost
		}
		renew := ExtractAutoRenewFilter(text)
		if action == ActionList || action == ActionQuery {
			if renew != nil {
				params["filterAutoRenew"] = *renew
			}
			if expiring := ExtractExpiringFilter(text); expiring != nil {
				params["filterExpiring"] = *expiring
			}
		} else if renew != nil {
			params["autoRenew"] = *renew
		}

	case EntityAsset:
		put("type", ExtractAssetType(text))
		put("brand", ExtractBrand(text))
		put("model", ExtractAfterLabel(text, "model"))
		put("serial", ExtractAfterLabel(text, "serial number", "serial", "sn"))
		put("assignedTo", ExtractAfterLabel(text, "assigned to", "for"))
		put("department", ExtractAfterLabel(text, "department", "dept"))

	case EntityEmail:
		email := ExtractEmail(text)
		put("email", email)
		put("password", ExtractPassword(text))
		if at := strings.LastIndex(email, "@"); at >= 0 {
			params["domain"] = strings.ToLower(email[at+1:])
		} else {
			put("domain", ExtractDomainName(text))
		}

	case EntityTicket:
		// Title degrades to the residual text, so it is always present.
		params["title"] = ExtractTicketTitle(text)
		params["description"] = strings.TrimSpace(text)
		params["priority"] = ExtractPriority(text)
		put("department", ExtractAfterLabel(text, "department", "dept"))

	case EntityHosting:
		put("provider", extractHostingProvider(text))
		put("plan", ExtractAfterLabel(text, "plan", "package"))
		if cost, ok := ExtractCurrency(text); ok {
			params["cost"] = cost
		}
	}

	return params
}

var hostingProviders = []string{
	"aws", "digitalocean", "linode", "vultr", "hetzner",
	"exabytes", "godaddy", "namecheap", "hostinger",
}

func extractHostingProvider(text string) string {
	s := strings.ToLower(text)
	for _, p := range hostingProviders {
		if strings.Contains(s, p) {
			return p
		}
	}
	return ExtractAfterLabel(text, "provider", "from")
}
