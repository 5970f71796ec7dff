// internal/models/models.go
package models

import "time"

// MessageRole is the author class of a transcript entry.
type MessageRole string

const (
	RoleUser         MessageRole = "user"
	RoleBot          MessageRole = "bot"
	RoleConfirmation MessageRole = "confirmation"
)

// ChatMessage is one transcript entry. Confirmation entries are removed from
// the transcript the moment their pending action is resolved.
type ChatMessage struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}

// TicketPriority is the fixed priority ladder used by the ticket extractor.
type TicketPriority string

const (
	PriorityLow      TicketPriority = "Low"
	PriorityMedium   TicketPriority = "Medium"
	PriorityHigh     TicketPriority = "High"
	PriorityCritical TicketPriority = "Critical"
)

// Domain is a registered domain name in the inventory.
type Domain struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Registrar  string    `json:"registrar,omitempty"`
	ExpiryDate string    `json:"expiryDate,omitempty"` // YYYY-MM-DD
	Cost       float64   `json:"cost,omitempty"`
	AutoRenew  bool      `json:"autoRenew"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Asset is a physical IT asset (laptop, printer, ...).
type Asset struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Brand      string    `json:"brand,omitempty"`
	Model      string    `json:"model,omitempty"`
	Serial     string    `json:"serial,omitempty"`
	AssignedTo string    `json:"assignedTo,omitempty"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Ticket is a helpdesk support ticket.
type Ticket struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Priority    TicketPriority `json:"priority"`
	Department  string         `json:"department,omitempty"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// EmailAccount is a mailbox on a hosting account. Owned by the mailbox proxy;
// kept here only for rendering list_emails results.
type EmailAccount struct {
	Email     string `json:"email"`
	DiskUsed  int64  `json:"diskUsed,omitempty"`
	DiskQuota int64  `json:"diskQuota,omitempty"`
}

// HostingAccount is a hosting/VPS/cPanel account in the inventory.
type HostingAccount struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	Plan      string    `json:"plan,omitempty"`
	Domain    string    `json:"domain,omitempty"`
	Cost      float64   `json:"cost,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Solution is a knowledge base article used for diagnostic lookups.
type Solution struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Keywords []string `json:"keywords,omitempty"`
	Score    float64  `json:"score,omitempty"`
}

// OnboardingStatus tracks the approval workflow state of a request.
type OnboardingStatus string

const (
	OnboardingPending  OnboardingStatus = "pending"
	OnboardingApproved OnboardingStatus = "approved"
	OnboardingRejected OnboardingStatus = "rejected"
)

// OnboardingRequest is a new-hire equipment/access request awaiting approval.
type OnboardingRequest struct {
	ID           string           `json:"id"`
	EmployeeName string           `json:"employeeName"`
	Email        string           `json:"email"`
	Department   string           `json:"department,omitempty"`
	Equipment    []string         `json:"equipment,omitempty"`
	Status       OnboardingStatus `json:"status"`
	RequestedBy  string           `json:"requestedBy,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	DecidedAt    *time.Time       `json:"decidedAt,omitempty"`
}
