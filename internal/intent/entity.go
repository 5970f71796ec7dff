// internal/intent/entity.go
package intent

import (
	"regexp"
	"strings"
)

var tldPattern = regexp.MustCompile(`\.(com|net|org|my|co|io)\b`)

var assetNouns = []string{
	"laptop", "desktop", "computer", "phone", "tablet", "monitor",
	"printer", "keyboard", "mouse", "asset", "device", "equipment",
}

var ticketNouns = []string{
	"ticket", "issue", "problem", "bug", "request", "support", "help",
}

var hostingNouns = []string{
	"hosting", "server", "vps", "aws", "digitalocean", "cpanel", "whm",
}

// entityRule pairs a predicate with the entity it selects. Rules are
// evaluated top to bottom; the first match wins, so order is load-bearing:
// an utterance like "delete email on my domain.com server" must resolve to
// email, not domain or hosting.
type entityRule struct {
	entity EntityType
	match  func(s string) bool
}

var entityRules = []entityRule{
	{EntityEmail, func(s string) bool {
		return strings.Contains(s, "@") &&
			(strings.Contains(s, "email") || strings.Contains(s, "password"))
	}},
	{EntityDomain, func(s string) bool {
		return tldPattern.MatchString(s) &&
			(strings.Contains(s, "domain") || strings.Contains(s, "registrar") || strings.Contains(s, "expir"))
	}},
	{EntityAsset, func(s string) bool { return containsAny(s, assetNouns) }},
	{EntityTicket, func(s string) bool { return containsAny(s, ticketNouns) }},
	{EntityHosting, func(s string) bool { return containsAny(s, hostingNouns) }},
}

// ClassifyEntity decides which business object the utterance concerns.
// Input casing is irrelevant; the function is pure and never fails.
func ClassifyEntity(text string) EntityType {
	s := strings.ToLower(text)
	for _, r := range entityRules {
		if r.match(s) {
			return r.entity
		}
	}
	return EntityUnknown
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
