package companies

import "errors"

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrInvalidName     = errors.New("company name is required")
	ErrInvalidStatus   = errors.New("invalid company status")
)
