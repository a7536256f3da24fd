package wizard

import "errors"

var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidTime        = errors.New("invalid time")
	ErrInvalidTimeRange   = errors.New("end time precedes start time")
	ErrInvalidField       = errors.New("invalid field")
	ErrDateOutOfRange     = errors.New("date outside selected range")
	ErrDateInPast         = errors.New("date is in the past")
	ErrDateAlreadyExists  = errors.New("date already exists for event")
	ErrDateNotSelected    = errors.New("date not selected")
	ErrSlotNotFound       = errors.New("time slot not found")
	ErrCategoryNotFound   = errors.New("ticket category not found")
	ErrEmptyTemplate      = errors.New("apply-to-all template is empty")
	ErrAmbiguousBroadcast = errors.New("apply-to-all needs either a source date or a category template, not both")
)
