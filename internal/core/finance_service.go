package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type financeService struct {
	pool *pgxpool.Pool
}

// NewFinanceService constructs a FinanceService backed by PostgreSQL.
func NewFinanceService(pool *pgxpool.Pool) FinanceService {
	return &financeService{pool: pool}
}

func requirePositiveAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return &ValidationError{Field: "amount", Message: "must be positive"}
	}
	return nil
}

// ── Events ────────────────────────────────────────────────────────────────────

func (s *financeService) CreateEvent(ctx context.Context, contactID int, name string, date *time.Time, venue string) (*Event, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "event_name", Message: "must not be empty"}
	}

	var e Event
	err := s.pool.QueryRow(ctx, `
		INSERT INTO events (contact_id, event_name, event_date, venue)
		VALUES ($1, $2, $3, $4)
		RETURNING id, contact_id, event_name, event_date, venue, quote_id, created_at`,
		contactID, name, date, venue,
	).Scan(&e.ID, &e.ContactID, &e.EventName, &e.EventDate, &e.Venue, &e.QuoteID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &e, nil
}

func (s *financeService) GetEvent(ctx context.Context, id int) (*Event, error) {
	var e Event
	err := s.pool.QueryRow(ctx, `
		SELECT id, contact_id, event_name, event_date, venue, quote_id, created_at
		FROM events WHERE id = $1`, id,
	).Scan(&e.ID, &e.ContactID, &e.EventName, &e.EventDate, &e.Venue, &e.QuoteID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("event %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &e, nil
}

func (s *financeService) ListEvents(ctx context.Context, contactID int) ([]Event, error) {
	q := "SELECT id, contact_id, event_name, event_date, venue, quote_id, created_at FROM events"
	var args []any
	if contactID != 0 {
		q += " WHERE contact_id = $1"
		args = append(args, contactID)
	}
	q += " ORDER BY event_date DESC NULLS LAST, id DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.ContactID, &e.EventName, &e.EventDate, &e.Venue, &e.QuoteID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ── Partners ──────────────────────────────────────────────────────────────────

func (s *financeService) CreatePartner(ctx context.Context, name, email string) (*Partner, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}
	var p Partner
	err := s.pool.QueryRow(ctx,
		"INSERT INTO partners (name, email) VALUES ($1, $2) RETURNING id, name, email",
		name, email,
	).Scan(&p.ID, &p.Name, &p.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}
	return &p, nil
}

func (s *financeService) ListPartners(ctx context.Context) ([]Partner, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, name, email FROM partners ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	var partners []Partner
	for rows.Next() {
		var p Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.Email); err != nil {
			return nil, fmt.Errorf("failed to scan partner: %w", err)
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

// ── Commissions ───────────────────────────────────────────────────────────────

func (s *financeService) AddCommission(ctx context.Context, eventID, partnerID int, description string, amount decimal.Decimal) (*Commission, error) {
	if err := requirePositiveAmount(amount); err != nil {
		return nil, err
	}

	var id int
	err := s.pool.QueryRow(ctx, `
		INSERT INTO commissions (event_id, partner_id, description, amount)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		eventID, partnerID, description, amount,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to add commission: %w", err)
	}
	return s.getCommission(ctx, id)
}

func (s *financeService) UpdateCommission(ctx context.Context, id int, description string, amount decimal.Decimal) (*Commission, error) {
	if err := requirePositiveAmount(amount); err != nil {
		return nil, err
	}

	tag, err := s.pool.Exec(ctx,
		"UPDATE commissions SET description = $2, amount = $3 WHERE id = $1",
		id, description, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to update commission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("commission %d: %w", id, ErrNotFound)
	}
	return s.getCommission(ctx, id)
}

func (s *financeService) getCommission(ctx context.Context, id int) (*Commission, error) {
	var c Commission
	err := s.pool.QueryRow(ctx, `
		SELECT c.id, c.event_id, c.partner_id, p.name, c.description, c.amount, c.created_at
		FROM commissions c
		JOIN partners p ON p.id = c.partner_id
		WHERE c.id = $1`, id,
	).Scan(&c.ID, &c.EventID, &c.PartnerID, &c.PartnerName, &c.Description, &c.Amount, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("commission %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get commission: %w", err)
	}
	return &c, nil
}

func (s *financeService) DeleteCommission(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM commissions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete commission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("commission %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *financeService) ListCommissions(ctx context.Context, eventID int) ([]Commission, error) {
	q := `
		SELECT c.id, c.event_id, c.partner_id, p.name, c.description, c.amount, c.created_at
		FROM commissions c
		JOIN partners p ON p.id = c.partner_id`
	var args []any
	if eventID != 0 {
		q += " WHERE c.event_id = $1"
		args = append(args, eventID)
	}
	q += " ORDER BY c.created_at DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query commissions: %w", err)
	}
	defer rows.Close()

	var out []Commission
	for rows.Next() {
		var c Commission
		if err := rows.Scan(&c.ID, &c.EventID, &c.PartnerID, &c.PartnerName, &c.Description, &c.Amount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan commission: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ── Expenses ──────────────────────────────────────────────────────────────────

func (s *financeService) AddExpense(ctx context.Context, eventID int, description string, amount decimal.Decimal, date time.Time) (*Expense, error) {
	if err := requirePositiveAmount(amount); err != nil {
		return nil, err
	}

	var e Expense
	err := s.pool.QueryRow(ctx, `
		INSERT INTO event_expenses (event_id, description, amount, expense_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, event_id, description, amount, expense_date`,
		eventID, description, amount, date,
	).Scan(&e.ID, &e.EventID, &e.Description, &e.Amount, &e.ExpenseDate)
	if err != nil {
		return nil, fmt.Errorf("failed to add expense: %w", err)
	}
	return &e, nil
}

func (s *financeService) UpdateExpense(ctx context.Context, id int, description string, amount decimal.Decimal, date time.Time) (*Expense, error) {
	if err := requirePositiveAmount(amount); err != nil {
		return nil, err
	}

	var e Expense
	err := s.pool.QueryRow(ctx, `
		UPDATE event_expenses SET description = $2, amount = $3, expense_date = $4
		WHERE id = $1
		RETURNING id, event_id, description, amount, expense_date`,
		id, description, amount, date,
	).Scan(&e.ID, &e.EventID, &e.Description, &e.Amount, &e.ExpenseDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("expense %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return &e, nil
}

func (s *financeService) DeleteExpense(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM event_expenses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *financeService) ListExpenses(ctx context.Context, eventID int) ([]Expense, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, event_id, description, amount, expense_date
		FROM event_expenses
		WHERE event_id = $1
		ORDER BY expense_date DESC, id DESC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.EventID, &e.Description, &e.Amount, &e.ExpenseDate); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ── Payroll ───────────────────────────────────────────────────────────────────

func (s *financeService) AddPayroll(ctx context.Context, eventID int, staffName, role string, amount decimal.Decimal, workDate time.Time) (*PayrollEntry, error) {
	if strings.TrimSpace(staffName) == "" {
		return nil, &ValidationError{Field: "staff_name", Message: "must not be empty"}
	}
	if err := requirePositiveAmount(amount); err != nil {
		return nil, err
	}

	var p PayrollEntry
	err := s.pool.QueryRow(ctx, `
		INSERT INTO event_payroll (event_id, staff_name, role, amount, work_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_id, staff_name, role, amount, work_date`,
		eventID, staffName, role, amount, workDate,
	).Scan(&p.ID, &p.EventID, &p.StaffName, &p.Role, &p.Amount, &p.WorkDate)
	if err != nil {
		return nil, fmt.Errorf("failed to add payroll entry: %w", err)
	}
	return &p, nil
}

func (s *financeService) UpdatePayroll(ctx context.Context, id int, staffName, role string, amount decimal.Decimal, workDate time.Time) (*PayrollEntry, error) {
	if err := requirePositiveAmount(amount); err != nil {
		return nil, err
	}

	var p PayrollEntry
	err := s.pool.QueryRow(ctx, `
		UPDATE event_payroll SET staff_name = $2, role = $3, amount = $4, work_date = $5
		WHERE id = $1
		RETURNING id, event_id, staff_name, role, amount, work_date`,
		id, staffName, role, amount, workDate,
	).Scan(&p.ID, &p.EventID, &p.StaffName, &p.Role, &p.Amount, &p.WorkDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payroll entry %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update payroll entry: %w", err)
	}
	return &p, nil
}

func (s *financeService) DeletePayroll(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM event_payroll WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payroll entry %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *financeService) ListPayroll(ctx context.Context, eventID int) ([]PayrollEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, event_id, staff_name, role, amount, work_date
		FROM event_payroll
		WHERE event_id = $1
		ORDER BY work_date DESC, id DESC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll: %w", err)
	}
	defer rows.Close()

	var out []PayrollEntry
	for rows.Next() {
		var p PayrollEntry
		if err := rows.Scan(&p.ID, &p.EventID, &p.StaffName, &p.Role, &p.Amount, &p.WorkDate); err != nil {
			return nil, fmt.Errorf("failed to scan payroll entry: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
