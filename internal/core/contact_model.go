package core

import (
	"context"
	"time"
)

// Contact is a lead or client record. Status moves Lead → Active Client
// when a quote is accepted; PipelineStage tracks the sales funnel.
type Contact struct {
	ID             int        `json:"id"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Company        string     `json:"company"`
	Status         string     `json:"status"`
	PipelineStage  string     `json:"pipeline_stage"`
	LeadSource     string     `json:"lead_source"`
	PriceTier      PriceTier  `json:"price_tier"`
	ConversionDate *time.Time `json:"conversion_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ContactInput carries the editable fields of a contact.
type ContactInput struct {
	FullName      string
	Email         string
	Phone         string
	Company       string
	Status        string
	PipelineStage string
	LeadSource    string
	PriceTier     PriceTier
}

// ContactService manages lead and client records.
type ContactService interface {
	CreateContact(ctx context.Context, in ContactInput) (*Contact, error)
	UpdateContact(ctx context.Context, id int, in ContactInput) (*Contact, error)
	GetContact(ctx context.Context, id int) (*Contact, error)
	// ListContacts optionally filters by status ("Lead", "Active Client", ...).
	ListContacts(ctx context.Context, status string) ([]Contact, error)
}
