package apperrors

import "errors"

var (
	ErrRosterStatus = errors.New("roster endpoint returned non-2xx status")
	ErrRosterDecode = errors.New("roster response is not valid JSON")
	ErrImageStatus  = errors.New("image request returned non-2xx status")
)
