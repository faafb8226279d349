package leads

import (
	"strings"
	"time"
)

// Status values for a company lead. Converted is terminal.
const (
	StatusPending   = "pending"
	StatusContacted = "contacted"
	StatusQuoted    = "quoted"
	StatusConverted = "converted"
)

// CompanyLead represents an inbound corporate-wellness request that has not
// yet become a platform customer.
type CompanyLead struct {
	ID           string    `json:"id"`
	CompanyName  string    `json:"company_name"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	City         string    `json:"city,omitempty"`
	ServiceIDs   []string  `json:"service_ids,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateLeadRequest represents the request body for creating a lead
type CreateLeadRequest struct {
	CompanyName  string   `json:"company_name"`
	ContactName  string   `json:"contact_name"`
	ContactEmail string   `json:"contact_email"`
	ContactPhone string   `json:"contact_phone"`
	City         string   `json:"city"`
	ServiceIDs   []string `json:"service_ids"`
}

// Validate validates the create lead request
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.CompanyName) == "" {
		return ErrMissingCompanyName
	}
	if r.ContactEmail == "" && r.ContactPhone == "" {
		return ErrMissingContact
	}
	return nil
}

// ValidStatus reports whether s is a recognized lead status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusContacted, StatusQuoted, StatusConverted:
		return true
	}
	return false
}
