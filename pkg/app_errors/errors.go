package apperrors

import "errors"

var (
	ErrWizardNotFound      = errors.New("wizard not found")
	ErrPlanNotFound        = errors.New("slot plan not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrSubmissionFailed    = errors.New("slot plan submission failed")
	ErrInternalServerError = errors.New("internal server error")
)
