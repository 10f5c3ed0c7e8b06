package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contactService struct {
	pool *pgxpool.Pool
}

// NewContactService constructs a ContactService backed by PostgreSQL.
func NewContactService(pool *pgxpool.Pool) ContactService {
	return &contactService{pool: pool}
}

const contactColumns = "id, full_name, email, phone, company, status, pipeline_stage, lead_source, price_tier, conversion_date, created_at"

func scanContact(row pgx.Row, c *Contact) error {
	return row.Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.Company,
		&c.Status, &c.PipelineStage, &c.LeadSource, &c.PriceTier,
		&c.ConversionDate, &c.CreatedAt)
}

func normalizeContactInput(in *ContactInput) error {
	if strings.TrimSpace(in.FullName) == "" {
		return &ValidationError{Field: "full_name", Message: "must not be empty"}
	}
	if in.PriceTier == "" {
		in.PriceTier = TierPublic
	}
	if in.PriceTier != TierPublic && in.PriceTier != TierPartner {
		return &ValidationError{Field: "price_tier", Message: "unknown tier"}
	}
	if in.Status == "" {
		in.Status = "Lead"
	}
	if in.PipelineStage == "" {
		in.PipelineStage = "New"
	}
	return nil
}

func (s *contactService) CreateContact(ctx context.Context, in ContactInput) (*Contact, error) {
	if err := normalizeContactInput(&in); err != nil {
		return nil, err
	}

	var c Contact
	err := scanContact(s.pool.QueryRow(ctx, `
		INSERT INTO contacts (full_name, email, phone, company, status, pipeline_stage, lead_source, price_tier)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+contactColumns,
		in.FullName, in.Email, in.Phone, in.Company, in.Status, in.PipelineStage, in.LeadSource, in.PriceTier,
	), &c)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return &c, nil
}

func (s *contactService) UpdateContact(ctx context.Context, id int, in ContactInput) (*Contact, error) {
	if err := normalizeContactInput(&in); err != nil {
		return nil, err
	}

	var c Contact
	err := scanContact(s.pool.QueryRow(ctx, `
		UPDATE contacts
		SET full_name = $2, email = $3, phone = $4, company = $5,
		    status = $6, pipeline_stage = $7, lead_source = $8, price_tier = $9
		WHERE id = $1
		RETURNING `+contactColumns,
		id, in.FullName, in.Email, in.Phone, in.Company, in.Status, in.PipelineStage, in.LeadSource, in.PriceTier,
	), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("contact %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return &c, nil
}

func (s *contactService) GetContact(ctx context.Context, id int) (*Contact, error) {
	var c Contact
	err := scanContact(s.pool.QueryRow(ctx,
		"SELECT "+contactColumns+" FROM contacts WHERE id = $1", id), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("contact %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &c, nil
}

func (s *contactService) ListContacts(ctx context.Context, status string) ([]Contact, error) {
	q := "SELECT " + contactColumns + " FROM contacts"
	var args []any
	if status != "" {
		q += " WHERE status = $1"
		args = append(args, status)
	}
	q += " ORDER BY full_name"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := scanContact(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
