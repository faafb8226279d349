package leads

import "errors"

var (
	ErrLeadNotFound       = errors.New("lead not found")
	ErrMissingCompanyName = errors.New("company name is required")
	ErrMissingContact     = errors.New("email or phone is required")
	ErrInvalidStatus      = errors.New("invalid lead status")
	ErrLeadConverted      = errors.New("lead already converted")
)
