// internal/intent/entity_test.go
package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyEntity(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected EntityType
	}{
		{
			name:     "email needs at-sign plus email keyword",
			text:     "create email test@domain.com",
			expected: EntityEmail,
		},
		{
			name:     "email via password keyword",
			text:     "change password for bob@corp.my",
			expected: EntityEmail,
		},
		{
			name:     "at-sign alone is not enough for email",
			text:     "ping me @ the office about the printer",
			expected: EntityAsset,
		},
		{
			name:     "domain needs tld plus domain keyword",
			text:     "add domain example.com expiring next year",
			expected: EntityDomain,
		},
		{
			name:     "registrar keyword also selects domain",
			text:     "register mysite.io with registrar exabytes",
			expected: EntityDomain,
		},
		{
			name:     "tld without domain keyword falls through",
			text:     "visit example.com for details",
			expected: EntityUnknown,
		},
		{
			name:     "asset noun",
			text:     "add laptop for the new hire",
			expected: EntityAsset,
		},
		{
			name:     "ticket noun",
			text:     "printer issue in finance",
			expected: EntityAsset, // "printer" wins: asset rule runs before ticket
		},
		{
			name:     "ticket noun without asset noun",
			text:     "open a support request for the vpn",
			expected: EntityTicket,
		},
		{
			name:     "hosting noun",
			text:     "how much does the vps cost",
			expected: EntityHosting,
		},
		{
			name:     "email beats hosting despite server mention",
			text:     "delete email ops@corp.com on my server",
			expected: EntityEmail,
		},
		{
			name:     "case insensitive",
			text:     "ADD LAPTOP DELL",
			expected: EntityAsset,
		},
		{
			name:     "gibberish",
			text:     "asdkjhasd",
			expected: EntityUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyEntity(tt.text))
		})
	}
}

func TestClassifyEntity_Pure(t *testing.T) {
	inputs := []string{"create email a@b.com", "add laptop", "", "asdkjhasd", "domain example.com expires"}
	for _, s := range inputs {
		assert.Equal(t, ClassifyEntity(s), ClassifyEntity(s), "input %q", s)
	}
}
