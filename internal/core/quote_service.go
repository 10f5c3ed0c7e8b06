package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type quoteService struct {
	pool *pgxpool.Pool
}

// NewQuoteService constructs a QuoteService backed by PostgreSQL.
func NewQuoteService(pool *pgxpool.Pool) QuoteService {
	return &quoteService{pool: pool}
}

func (s *quoteService) CreateQuote(ctx context.Context, in QuoteInput) (*Quote, error) {
	if len(in.Selections) == 0 {
		return nil, &ValidationError{Field: "selections", Message: "quote needs at least one line item"}
	}
	for _, sel := range in.Selections {
		if sel.Quantity <= 0 {
			return nil, &ValidationError{Field: "quantity", Message: "must be positive"}
		}
		if sel.UnitPrice.IsNegative() {
			return nil, &ValidationError{Field: "unit_price", Message: "must not be negative"}
		}
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}
	if in.QuoteName == "" {
		in.QuoteName = "Unnamed Quote"
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// The tax snapshot uses the rate as it exists right now; once written,
	// later rate edits never touch this quote.
	var rate *TaxRate
	if in.TaxRateID != nil {
		rate = &TaxRate{}
		err := tx.QueryRow(ctx, `
			SELECT id, rate_name, rate_percentage, is_active, created_at
			FROM tax_rates WHERE id = $1`, *in.TaxRateID,
		).Scan(&rate.ID, &rate.Name, &rate.Percentage, &rate.IsActive, &rate.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("tax rate %d: %w", *in.TaxRateID, ErrNotFound)
			}
			return nil, fmt.Errorf("failed to load tax rate: %w", err)
		}
	}

	totals := ComputeTotals(in.Selections, rate)

	var quoteID int
	err = tx.QueryRow(ctx, `
		INSERT INTO quotes (contact_id, quote_name, message, status, expiration_date,
		                    subtotal, tax_amount, total_amount, currency, tax_rate_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		in.ContactID, in.QuoteName, in.Message, QuoteDraft, in.ExpirationDate,
		totals.Subtotal, totals.TaxAmount, totals.Total, in.Currency, in.TaxRateID,
	).Scan(&quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert quote header: %w", err)
	}

	for _, sel := range in.Selections {
		if _, err := tx.Exec(ctx, `
			INSERT INTO quote_items (quote_id, menu_item_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5)`,
			quoteID, sel.MenuItemID, sel.Quantity, sel.UnitPrice, sel.LineTotal(),
		); err != nil {
			return nil, fmt.Errorf("failed to insert quote line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit quote: %w", err)
	}
	return s.GetQuote(ctx, quoteID)
}

const quoteColumns = `id, contact_id, quote_name, message, status, quote_date,
	expiration_date, subtotal, tax_amount, total_amount, currency, tax_rate_id, signed_at`

func scanQuote(row pgx.Row, q *Quote) error {
	return row.Scan(&q.ID, &q.ContactID, &q.QuoteName, &q.Message, &q.Status,
		&q.QuoteDate, &q.ExpirationDate, &q.Subtotal, &q.TaxAmount,
		&q.TotalAmount, &q.Currency, &q.TaxRateID, &q.SignedAt)
}

func (s *quoteService) GetQuote(ctx context.Context, id int) (*Quote, error) {
	var q Quote
	err := scanQuote(s.pool.QueryRow(ctx,
		"SELECT "+quoteColumns+" FROM quotes WHERE id = $1", id), &q)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("quote %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	lines, err := s.quoteLines(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Lines = lines
	return &q, nil
}

// quoteLines left-joins menu_items so a deleted catalog item yields an
// empty name instead of dropping the line from history.
func (s *quoteService) quoteLines(ctx context.Context, quoteID int) ([]QuoteLineItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT qi.id, qi.quote_id, qi.menu_item_id, COALESCE(m.name, ''),
		       qi.quantity, qi.unit_price, qi.total_price
		FROM quote_items qi
		LEFT JOIN menu_items m ON m.id = qi.menu_item_id
		WHERE qi.quote_id = $1
		ORDER BY qi.id`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote lines: %w", err)
	}
	defer rows.Close()

	var lines []QuoteLineItem
	for rows.Next() {
		var l QuoteLineItem
		if err := rows.Scan(&l.ID, &l.QuoteID, &l.MenuItemID, &l.MenuItemName,
			&l.Quantity, &l.UnitPrice, &l.TotalPrice); err != nil {
			return nil, fmt.Errorf("failed to scan quote line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (s *quoteService) ListQuotes(ctx context.Context, contactID int, status QuoteStatus) ([]Quote, error) {
	q := "SELECT " + quoteColumns + " FROM quotes"
	var args []any
	var where []string
	if contactID != 0 {
		args = append(args, contactID)
		where = append(where, fmt.Sprintf("contact_id = $%d", len(args)))
	}
	if status != "" {
		args = append(args, status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	for i, w := range where {
		if i == 0 {
			q += " WHERE " + w
		} else {
			q += " AND " + w
		}
	}
	q += " ORDER BY quote_date DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		var qt Quote
		if err := scanQuote(rows, &qt); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, qt)
	}
	return quotes, rows.Err()
}

// transition applies a lifecycle event under FOR UPDATE so two concurrent
// staff sessions cannot race the same quote through a transition twice.
func (s *quoteService) transition(ctx context.Context, id int, event QuoteEvent) (*Quote, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := s.transitionTx(ctx, tx, id, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}
	return s.GetQuote(ctx, id)
}

// transitionTx performs the status move inside the caller's transaction and
// returns the new status.
func (s *quoteService) transitionTx(ctx context.Context, tx pgx.Tx, id int, event QuoteEvent) (QuoteStatus, error) {
	var current QuoteStatus
	err := tx.QueryRow(ctx, "SELECT status FROM quotes WHERE id = $1 FOR UPDATE", id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("quote %d: %w", id, ErrNotFound)
		}
		return "", fmt.Errorf("failed to lock quote: %w", err)
	}

	next, err := TransitionQuoteStatus(current, event)
	if err != nil {
		return "", err
	}

	if event == EventAccept {
		_, err = tx.Exec(ctx, "UPDATE quotes SET status = $2, signed_at = $3 WHERE id = $1",
			id, next, time.Now().UTC())
	} else {
		_, err = tx.Exec(ctx, "UPDATE quotes SET status = $2 WHERE id = $1", id, next)
	}
	if err != nil {
		return "", fmt.Errorf("failed to update quote status: %w", err)
	}
	return next, nil
}

func (s *quoteService) SendQuote(ctx context.Context, id int) (*Quote, error) {
	return s.transition(ctx, id, EventSend)
}

func (s *quoteService) DeclineQuote(ctx context.Context, id int) (*Quote, error) {
	return s.transition(ctx, id, EventDecline)
}

// AcceptQuote is the acceptance workflow: the status move, the contact
// promotion, and the event link either all land or none do. The old system
// issued these as three separate writes and could leave them half-applied.
func (s *quoteService) AcceptQuote(ctx context.Context, id int) (*Quote, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := s.transitionTx(ctx, tx, id, EventAccept); err != nil {
		return nil, err
	}

	var contactID int
	if err := tx.QueryRow(ctx, "SELECT contact_id FROM quotes WHERE id = $1", id).Scan(&contactID); err != nil {
		return nil, fmt.Errorf("failed to read quote contact: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE contacts
		SET status = 'Active Client', pipeline_stage = 'Won', conversion_date = $2
		WHERE id = $1`,
		contactID, time.Now().UTC(),
	); err != nil {
		return nil, fmt.Errorf("failed to promote contact: %w", err)
	}

	// Link the contact's most recent unlinked event, if one exists.
	if _, err := tx.Exec(ctx, `
		UPDATE events SET quote_id = $2
		WHERE id = (
			SELECT id FROM events
			WHERE contact_id = $1 AND quote_id IS NULL
			ORDER BY created_at DESC
			LIMIT 1
		)`,
		contactID, id,
	); err != nil {
		return nil, fmt.Errorf("failed to link event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit acceptance: %w", err)
	}
	return s.GetQuote(ctx, id)
}
