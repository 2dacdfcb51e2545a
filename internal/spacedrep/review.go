package spacedrep

import "time"

// IsDue reports whether a review at nextDue is due at now. An unset
// (zero) nextDue is never due.
func IsDue(nextDue, now time.Time) bool {
	if nextDue.IsZero() {
		return false
	}
	return !now.Before(nextDue)
}

// OverdueBy returns how long past due a review is, or 0 if it is not due.
func OverdueBy(nextDue, now time.Time) time.Duration {
	if !IsDue(nextDue, now) {
		return 0
	}
	return now.Sub(nextDue)
}

// ReviewStatus describes an objective's review status for display.
type ReviewStatus string

const (
	ReviewUnscheduled ReviewStatus = "unscheduled"
	ReviewNotDue      ReviewStatus = "not_due"
	ReviewDue         ReviewStatus = "due"
	ReviewOverdue     ReviewStatus = "overdue"
)

// overdueGrace is how long a due review may wait before it is shown as
// overdue rather than merely due.
const overdueGrace = 48 * time.Hour

// Status returns the review status for UI display.
func Status(nextDue, now time.Time) ReviewStatus {
	switch {
	case nextDue.IsZero():
		return ReviewUnscheduled
	case OverdueBy(nextDue, now) > overdueGrace:
		return ReviewOverdue
	case IsDue(nextDue, now):
		return ReviewDue
	default:
		return ReviewNotDue
	}
}

// HoursUntil returns the whole hours until nextDue, rounded up, or 0 when
// it is already due or unset.
func HoursUntil(nextDue, now time.Time) int {
	if nextDue.IsZero() || IsDue(nextDue, now) {
		return 0
	}
	d := nextDue.Sub(now)
	h := int(d / time.Hour)
	if d%time.Hour != 0 {
		h++
	}
	return h
}
