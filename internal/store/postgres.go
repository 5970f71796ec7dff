// internal/store/postgres.go

// Package store implements the record store on PostgreSQL. Callers treat it
// as an opaque create/list/delete surface; all schema knowledge lives here.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"helpdesk-assistant/internal/common/logger"
	"helpdesk-assistant/internal/models"
)

var ErrNotFound = errors.New("record not found")

type Postgres struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgres(db *sql.DB, log logger.Logger) *Postgres {
	return &Postgres{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "store"}),
	}
}

// --- Domains ---

func (p *Postgres) CreateDomain(ctx context.Context, d models.Domain) (models.Domain, error) {
	d.ID = uuid.NewString()
	d.CreatedAt = time.Now().UTC()

	_, err := p.db.ExecContext(ctx,
		`INSERT INTO domains (id, name, registrar, expiry_date, cost, auto_renew, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.Name, nullable(d.Registrar), nullable(d.ExpiryDate), d.Cost, d.AutoRenew, d.CreatedAt,
	)
	if err != nil {
		return models.Domain{}, fmt.Errorf("insert domain: %w", err)
	}
	return d, nil
}

func (p *Postgres) ListDomains(ctx context.Context) ([]models.Domain, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(registrar, ''), COALESCE(expiry_date, ''), cost, auto_renew, created_at
		 FROM domains ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	defer rows.Close()

	var domains []models.Domain
	for rows.Next() {
		var d models.Domain
		if err := rows.Scan(&d.ID, &d.Name, &d.Registrar, &d.ExpiryDate, &d.Cost, &d.AutoRenew, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan domain: %w", err)
		}
		domains = append(domains, d)
	}
	return domains, rows.Err()
}

func (p *Postgres) DeleteDomain(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM domains WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete domain: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Assets ---

func (p *Postgres) CreateAsset(ctx context.Context, a models.Asset) (models.Asset, error) {
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()

	_, err := p.db.ExecContext(ctx,
		`INSERT INTO assets (id, type, brand, model, serial, assigned_to, department, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Type, nullable(a.Brand), nullable(a.Model), nullable(a.Serial),
		nullable(a.AssignedTo), nullable(a.Department), a.CreatedAt,
	)
	if err != nil {
		return models.Asset{}, fmt.Errorf("insert asset: %w", err)
	}
	return a, nil
}

func (p *Postgres) ListAssets(ctx context.Context) ([]models.Asset, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, type, COALESCE(brand, ''), COALESCE(model, ''), COALESCE(serial, ''),
		        COALESCE(assigned_to, ''), COALESCE(department, ''), created_at
		 FROM assets ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.Type, &a.Brand, &a.Model, &a.Serial, &a.AssignedTo, &a.Department, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// --- Tickets ---

func (p *Postgres) CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()
	if t.Status == "" {
		t.Status = "open"
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}

	_, err := p.db.ExecContext(ctx,
		`INSERT INTO tickets (id, title, description, priority, department, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Title, nullable(t.Description), string(t.Priority), nullable(t.Department), t.Status, t.CreatedAt,
	)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("insert ticket: %w", err)
	}
	return t, nil
}

func (p *Postgres) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, title, COALESCE(description, ''), priority, COALESCE(department, ''), status, created_at
		 FROM tickets ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var t models.Ticket
		var priority string
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &priority, &t.Department, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		t.Priority = models.TicketPriority(priority)
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// --- Hosting accounts ---

func (p *Postgres) CreateHostingAccount(ctx context.Context, h models.HostingAccount) (models.HostingAccount, error) {
	h.ID = uuid.NewString()
	h.CreatedAt = time.Now().UTC()

	_, err := p.db.ExecContext(ctx,
		`INSERT INTO hosting_accounts (id, provider, plan, domain, cost, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		h.ID, h.Provider, nullable(h.Plan), nullable(h.Domain), h.Cost, h.CreatedAt,
	)
	if err != nil {
		return models.HostingAccount{}, fmt.Errorf("insert hosting account: %w", err)
	}
	return h, nil
}

func (p *Postgres) ListHostingAccounts(ctx context.Context) ([]models.HostingAccount, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, provider, COALESCE(plan, ''), COALESCE(domain, ''), cost, created_at
		 FROM hosting_accounts ORDER BY provider`,
	)
	if err != nil {
		return nil, fmt.Errorf("list hosting accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.HostingAccount
	for rows.Next() {
		var h models.HostingAccount
		if err := rows.Scan(&h.ID, &h.Provider, &h.Plan, &h.Domain, &h.Cost, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan hosting account: %w", err)
		}
		accounts = append(accounts, h)
	}
	return accounts, rows.Err()
}

// --- Onboarding requests ---

func (p *Postgres) CreateOnboardingRequest(ctx context.Context, r models.OnboardingRequest) (models.OnboardingRequest, error) {
	r.ID = uuid.NewString()
	r.Status = models.OnboardingPending
	r.CreatedAt = time.Now().UTC()

	_, err := p.db.ExecContext(ctx,
		`INSERT INTO onboarding_requests (id, employee_name, email, department, equipment, status, requested_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.EmployeeName, r.Email, nullable(r.Department), pq.Array(r.Equipment),
		string(r.Status), nullable(r.RequestedBy), r.CreatedAt,
	)
	if err != nil {
		return models.OnboardingRequest{}, fmt.Errorf("insert onboarding request: %w", err)
	}
	return r, nil
}

func (p *Postgres) GetOnboardingRequest(ctx context.Context, id string) (models.OnboardingRequest, error) {
	var r models.OnboardingRequest
	var status string
	var decidedAt sql.NullTime

	err := p.db.QueryRowContext(ctx,
		`SELECT id, employee_name, email, COALESCE(department, ''), equipment, status,
		        COALESCE(requested_by, ''), created_at, decided_at
		 FROM onboarding_requests WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.EmployeeName, &r.Email, &r.Department, pq.Array(&r.Equipment),
		&status, &r.RequestedBy, &r.CreatedAt, &decidedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.OnboardingRequest{}, ErrNotFound
	}
	if err != nil {
		return models.OnboardingRequest{}, fmt.Errorf("get onboarding request: %w", err)
	}

	r.Status = models.OnboardingStatus(status)
	if decidedAt.Valid {
		r.DecidedAt = &decidedAt.Time
	}
	return r, nil
}

func (p *Postgres) UpdateOnboardingStatus(ctx context.Context, id string, status models.OnboardingStatus) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE onboarding_requests SET status = $2, decided_at = $3 WHERE id = $1`,
		id, string(status), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update onboarding status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// nullable maps "" to NULL so optional text columns stay NULL instead of
// accumulating empty strings.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
