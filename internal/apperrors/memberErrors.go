package apperrors

import "errors"

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrInvalidMemberID = errors.New("invalid member id format")
)
