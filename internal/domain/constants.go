package domain

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxReviewCommentLength      = 2000
	MaxServiceNameLength        = 255
	MinRating                   = 1
	MaxRating                   = 5
	MaxQuantumMinutes           = 24 * 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses statuses that do not occupy the calendar
var InactiveStatuses = []BookingStatus{
	StatusCanceled,
}

// ActiveStatuses statuses that occupy the calendar
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusServed,
}
