package persona

import "errors"

var (
	ErrNotFound             = errors.New("persona not found")
	ErrNoCompletedDiagnosis = errors.New("no completed diagnosis for user")
)
