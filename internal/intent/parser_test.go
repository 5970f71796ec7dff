// internal/intent/parser_test.go
package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseAt_DomainCreate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	it := ParseAt("Add domain example.com expiring Dec 31 2026 RM50", now)

	assert.Equal(t, EntityDomain, it.Entity)
	assert.Equal(t, ActionCreate, it.Action)
	assert.Equal(t, "example.com", it.Param("domain"))
	assert.Equal(t, "2026-12-31", it.Param("expiryDate"))

	cost, ok := it.FloatParam("cost")
	assert.True(t, ok)
	assert.InDelta(t, 50, cost, 0.001)

	// 40 entity + 30 action + 10*3 params
	assert.Equal(t, 100, it.Confidence)
}

func TestParseAt_UnknownFallback(t *testing.T) {
	it := Parse("asdkjhasd")

	assert.Equal(t, EntityUnknown, it.Entity)
	assert.Equal(t, ActionUnknown, it.Action)
	assert.Empty(t, it.Params)
	assert.Equal(t, 0, it.Confidence)
}

func TestParseAt_EmailCreateWithoutPassword(t *testing.T) {
	it := Parse("create email test@domain.com")

	assert.Equal(t, EntityEmail, it.Entity)
	assert.Equal(t, ActionCreate, it.Action)
	assert.Equal(t, "test@domain.com", it.Param("email"))
	assert.Equal(t, "domain.com", it.Param("domain"))
	assert.Empty(t, it.Param("password"))
	assert.Equal(t, 90, it.Confidence)
}

func TestParseAt_DomainQueryFilters(t *testing.T) {
	it := Parse("how many domains expiring are not auto renewing on example.com")

	assert.Equal(t, EntityDomain, it.Entity)
	assert.Equal(t, ActionQuery, it.Action)

	renew, ok := it.BoolParam("filterAutoRenew")
	assert.True(t, ok)
	assert.False(t, renew)

	expiring, ok := it.BoolParam("filterExpiring")
	assert.True(t, ok)
	assert.True(t, expiring)
}

func TestParseAt_TicketDefaults(t *testing.T) {
	it := Parse("create ticket wifi down in meeting room, urgent")

	assert.Equal(t, EntityTicket, it.Entity)
	assert.Equal(t, ActionCreate, it.Action)
	assert.NotEmpty(t, it.Param("title"))
	assert.Equal(t, "Critical", it.Param("priority"))
}

func TestParseAt_HostingProvider(t *testing.T) {
	it := Parse("add hosting from exabytes plan Business, RM300")

	assert.Equal(t, EntityHosting, it.Entity)
	assert.Equal(t, ActionCreate, it.Action)
	assert.Equal(t, "exabytes", it.Param("provider"))

	cost, ok := it.FloatParam("cost")
	assert.True(t, ok)
	assert.InDelta(t, 300, cost, 0.001)
}

func TestScore_Bounds(t *testing.T) {
	assert.Equal(t, 0, Score(EntityUnknown, ActionUnknown, nil))

	params := map[string]interface{}{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5}
	assert.Equal(t, 100, Score(EntityDomain, ActionCreate, params))

	// Param bonus caps at three fields.
	assert.Equal(t, 30, Score(EntityUnknown, ActionUnknown, params))
}

func TestParse_Idempotent(t *testing.T) {
	inputs := []string{
		"Add domain example.com expiring Dec 31 2026 RM50",
		"create email test@domain.com",
		"asdkjhasd",
		"list tickets",
	}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range inputs {
		assert.Equal(t, ParseAt(s, now), ParseAt(s, now), "input %q", s)
	}
}
