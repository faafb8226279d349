package companies

import (
	"strings"
	"time"
)

// Status values for a company record.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Company represents a corporate customer of the marketplace.
type Company struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Industry     string    `json:"industry,omitempty"`
	Size         string    `json:"size,omitempty"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	City         string    `json:"city,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCompanyRequest represents the request body for creating a company
type CreateCompanyRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Industry     string `json:"industry"`
	Size         string `json:"size"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	City         string `json:"city"`
	Status       string `json:"status"`
}

// Validate validates the create company request
func (r *CreateCompanyRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	switch r.Status {
	case "", StatusPending, StatusActive, StatusInactive:
	default:
		return ErrInvalidStatus
	}
	return nil
}

// UpdateCompanyRequest carries the mutable company fields.
type UpdateCompanyRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Industry     *string `json:"industry,omitempty"`
	Size         *string `json:"size,omitempty"`
	ContactName  *string `json:"contact_name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	City         *string `json:"city,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// Validate validates the update company request
func (r *UpdateCompanyRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return ErrInvalidName
	}
	if r.Status != nil {
		switch *r.Status {
		case StatusPending, StatusActive, StatusInactive:
		default:
			return ErrInvalidStatus
		}
	}
	return nil
}
