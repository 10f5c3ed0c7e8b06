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

type invoiceService struct {
	pool *pgxpool.Pool
}

// NewInvoiceService constructs an InvoiceService backed by PostgreSQL.
func NewInvoiceService(pool *pgxpool.Pool) InvoiceService {
	return &invoiceService{pool: pool}
}

const invoiceColumns = `id, quote_id, contact_id, invoice_number, issue_date, due_date,
	total_amount, amount_paid, currency, status, created_at`

func scanInvoice(row pgx.Row, inv *Invoice) error {
	return row.Scan(&inv.ID, &inv.QuoteID, &inv.ContactID, &inv.InvoiceNumber,
		&inv.IssueDate, &inv.DueDate, &inv.TotalAmount, &inv.AmountPaid,
		&inv.Currency, &inv.Status, &inv.CreatedAt)
}

func (s *invoiceService) CreateInvoice(ctx context.Context, quoteID int, invoiceNumber string, dueDate time.Time) (*Invoice, error) {
	if strings.TrimSpace(invoiceNumber) == "" {
		return nil, &ValidationError{Field: "invoice_number", Message: "must not be empty"}
	}

	var (
		contactID int
		status    QuoteStatus
		total     decimal.Decimal
		currency  string
	)
	err := s.pool.QueryRow(ctx,
		"SELECT contact_id, status, total_amount, currency FROM quotes WHERE id = $1", quoteID,
	).Scan(&contactID, &status, &total, &currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("quote %d: %w", quoteID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}
	if status != QuoteAccepted {
		return nil, &ConflictError{Message: fmt.Sprintf("quote %d is %s; only accepted quotes can be invoiced", quoteID, status)}
	}

	var inv Invoice
	err = scanInvoice(s.pool.QueryRow(ctx, `
		INSERT INTO invoices (quote_id, contact_id, invoice_number, due_date, total_amount, currency)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+invoiceColumns,
		quoteID, contactID, invoiceNumber, dueDate, total, currency,
	), &inv)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return &inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	var inv Invoice
	err := scanInvoice(s.pool.QueryRow(ctx,
		"SELECT "+invoiceColumns+" FROM invoices WHERE id = $1", id), &inv)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &inv, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, contactID int, status string) ([]Invoice, error) {
	q := "SELECT " + invoiceColumns + " FROM invoices"
	var args []any
	var conds []string
	if contactID != 0 {
		args = append(args, contactID)
		conds = append(conds, fmt.Sprintf("contact_id = $%d", len(args)))
	}
	if status != "" {
		args = append(args, status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY issue_date DESC, id DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// RecordPayment locks the invoice row, inserts the payment, and moves
// amount_paid/status together so two tellers logging payments at once
// cannot lose an update.
func (s *invoiceService) RecordPayment(ctx context.Context, invoiceID int, amount decimal.Decimal, method string, paidAt time.Time) (*Invoice, error) {
	if amount.Sign() <= 0 {
		return nil, &ValidationError{Field: "amount", Message: "must be positive"}
	}
	if method == "" {
		method = "Bank Transfer"
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		total    decimal.Decimal
		paid     decimal.Decimal
		currency string
	)
	err = tx.QueryRow(ctx,
		"SELECT total_amount, amount_paid, currency FROM invoices WHERE id = $1 FOR UPDATE", invoiceID,
	).Scan(&total, &paid, &currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %d: %w", invoiceID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock invoice: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO payments (invoice_id, amount, currency, payment_method, paid_at)
		VALUES ($1, $2, $3, $4, $5)`,
		invoiceID, amount, currency, method, paidAt,
	); err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	newPaid := paid.Add(amount)
	newStatus := InvoicePartial
	if newPaid.GreaterThanOrEqual(total) {
		newStatus = InvoicePaid
	}
	if _, err := tx.Exec(ctx,
		"UPDATE invoices SET amount_paid = $2, status = $3 WHERE id = $1",
		invoiceID, newPaid, newStatus,
	); err != nil {
		return nil, fmt.Errorf("failed to update invoice balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}
	return s.GetInvoice(ctx, invoiceID)
}

func (s *invoiceService) ListPayments(ctx context.Context, invoiceID int) ([]Payment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, invoice_id, amount, currency, payment_method, paid_at
		FROM payments
		WHERE invoice_id = $1
		ORDER BY paid_at, id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Currency, &p.PaymentMethod, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
