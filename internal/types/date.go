package types

import (
	"time"

	ierr "github.com/flexprice/tuition/internal/errors"
)

const (
	Day = 24 * time.Hour

	MinPaymentDueDay = 1
	MaxPaymentDueDay = 31
)

// RelativeMonthDate returns the first day, in UTC, of the calendar month that
// corresponds to monthNumber within a school year starting at yearStart.
// monthNumber is 1-based: month 1 is the month of yearStart itself.
func RelativeMonthDate(yearStart time.Time, monthNumber int) time.Time {
	start := yearStart.UTC()
	return time.Date(start.Year(), start.Month()+time.Month(monthNumber-1), 1, 0, 0, 0, 0, time.UTC)
}

// ValidatePaymentDueDay checks the day of month payments fall due on
func ValidatePaymentDueDay(day int) error {
	if day < MinPaymentDueDay || day > MaxPaymentDueDay {
		return ierr.NewErrorf("payment due day %d is out of range", day).
			WithHintf("Payment due day must be between %d and %d", MinPaymentDueDay, MaxPaymentDueDay).
			WithReportableDetails(map[string]any{
				"payment_due_day": day,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DueDate builds the due date of a school month from the configured day of month.
// The day is not clamped to the month length: day 31 of a 30 day month rolls
// over into the first day of the following month.
func DueDate(yearStart time.Time, monthNumber int, paymentDueDay int) (time.Time, error) {
	return DueDateInMonth(RelativeMonthDate(yearStart, monthNumber), paymentDueDay)
}

// DueDateInMonth places the due day in the calendar month of monthStart
func DueDateInMonth(monthStart time.Time, paymentDueDay int) (time.Time, error) {
	if err := ValidatePaymentDueDay(paymentDueDay); err != nil {
		return time.Time{}, err
	}
	return time.Date(monthStart.Year(), monthStart.Month(), paymentDueDay, 0, 0, 0, 0, time.UTC), nil
}

// OverdueDate adds the grace period to a due date using calendar days in UTC
func OverdueDate(dueDate time.Time, graceDays int) (time.Time, error) {
	if graceDays < 0 {
		return time.Time{}, ierr.NewErrorf("grace period of %d days is negative", graceDays).
			WithHint("Days until overdue must be zero or more").
			WithReportableDetails(map[string]any{
				"days_until_overdue": graceDays,
			}).
			Mark(ierr.ErrValidation)
	}
	return dueDate.UTC().AddDate(0, 0, graceDays), nil
}

// DueClassification is the outcome of classifying a moment against a due window
type DueClassification struct {
	Status      DueStatus `json:"status"`
	DaysPastDue int       `json:"days_past_due"`
	DaysOverdue int       `json:"days_overdue"`
}

// ClassifyDueStatus places now relative to [dueDate, overdueDate).
// The due date itself is DUE and the overdue date itself is OVERDUE.
func ClassifyDueStatus(now, dueDate, overdueDate time.Time) DueClassification {
	switch {
	case now.Before(dueDate):
		return DueClassification{Status: DueStatusCurrent}
	case now.Before(overdueDate):
		return DueClassification{
			Status:      DueStatusDue,
			DaysPastDue: WholeDaysBetween(dueDate, now),
		}
	default:
		return DueClassification{
			Status:      DueStatusOverdue,
			DaysOverdue: WholeDaysBetween(overdueDate, now),
		}
	}
}

// WholeDaysBetween returns the number of complete days from start to end, floored
func WholeDaysBetween(start, end time.Time) int {
	diff := end.Sub(start)
	days := int(diff / Day)
	if diff < 0 && diff%Day != 0 {
		days--
	}
	return days
}

// MonthsBetween counts the calendar months a school year spans, inclusive of both ends
func MonthsBetween(start, end time.Time) int {
	s, e := start.UTC(), end.UTC()
	return (e.Year()-s.Year())*12 + int(e.Month()-s.Month()) + 1
}
