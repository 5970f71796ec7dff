// internal/intent/action_test.go
package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAction(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected ActionType
	}{
		{
			name:     "plain create",
			text:     "create a ticket for the broken printer",
			expected: ActionCreate,
		},
		{
			name:     "add is create",
			text:     "add domain example.com",
			expected: ActionCreate,
		},
		{
			name:     "query wins over list verbs",
			text:     "how many domains do we have",
			expected: ActionQuery,
		},
		{
			name:     "show me is query",
			text:     "show me the expiring domains",
			expected: ActionQuery,
		},
		{
			name:     "query yields to create when both present",
			text:     "show me how to create a ticket",
			expected: ActionCreate,
		},
		{
			name:     "update",
			text:     "change the password for bob",
			expected: ActionUpdate,
		},
		{
			name:     "delete",
			text:     "remove the old mailbox",
			expected: ActionDelete,
		},
		{
			name:     "bare show is list",
			text:     "show all tickets",
			expected: ActionList,
		},
		{
			name:     "list",
			text:     "list hosting accounts",
			expected: ActionList,
		},
		{
			name:     "no verb",
			text:     "asdkjhasd",
			expected: ActionUnknown,
		},
		{
			name:     "case insensitive",
			text:     "DELETE domain example.com",
			expected: ActionDelete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyAction(tt.text))
		})
	}
}
