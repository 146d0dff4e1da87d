package types

import (
	"encoding/json"
	"testing"
	"time"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ist = time.FixedZone("IST", 5*60*60+30*60)
	pst = time.FixedZone("PST", -8*60*60)
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRelativeMonthDate(t *testing.T) {
	tests := []struct {
		name        string
		yearStart   time.Time
		monthNumber int
		want        time.Time
	}{
		{
			name:        "first month",
			yearStart:   date(2023, time.September, 1),
			monthNumber: 1,
			want:        date(2023, time.September, 1),
		},
		{
			name:        "third month",
			yearStart:   date(2023, time.September, 1),
			monthNumber: 3,
			want:        date(2023, time.November, 1),
		},
		{
			name:        "crosses year boundary",
			yearStart:   date(2023, time.September, 1),
			monthNumber: 5,
			want:        date(2024, time.January, 1),
		},
		{
			name:        "start mid month is truncated",
			yearStart:   date(2023, time.August, 31),
			monthNumber: 2,
			want:        date(2023, time.September, 1),
		},
		{
			name:        "start in positive offset zone uses utc calendar",
			yearStart:   time.Date(2023, time.September, 1, 2, 0, 0, 0, ist),
			monthNumber: 1,
			want:        date(2023, time.August, 1),
		},
		{
			name:        "start in negative offset zone uses utc calendar",
			yearStart:   time.Date(2023, time.August, 31, 20, 0, 0, 0, pst),
			monthNumber: 1,
			want:        date(2023, time.September, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelativeMonthDate(tt.yearStart, tt.monthNumber)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestDueDate(t *testing.T) {
	tests := []struct {
		name          string
		yearStart     time.Time
		monthNumber   int
		paymentDueDay int
		want          time.Time
		wantErr       bool
	}{
		{
			name:          "fifth of third month",
			yearStart:     date(2023, time.September, 1),
			monthNumber:   3,
			paymentDueDay: 5,
			want:          date(2023, time.November, 5),
		},
		{
			name:          "day 31 in a 30 day month overflows",
			yearStart:     date(2023, time.September, 1),
			monthNumber:   1,
			paymentDueDay: 31,
			want:          date(2023, time.October, 1),
		},
		{
			name:          "day 30 in february overflows",
			yearStart:     date(2024, time.February, 1),
			monthNumber:   1,
			paymentDueDay: 30,
			want:          date(2024, time.March, 1),
		},
		{
			name:          "day zero rejected",
			yearStart:     date(2023, time.September, 1),
			monthNumber:   1,
			paymentDueDay: 0,
			wantErr:       true,
		},
		{
			name:          "day 32 rejected",
			yearStart:     date(2023, time.September, 1),
			monthNumber:   1,
			paymentDueDay: 32,
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DueDate(tt.yearStart, tt.monthNumber, tt.paymentDueDay)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestOverdueDate(t *testing.T) {
	got, err := OverdueDate(date(2023, time.November, 5), 5)
	require.NoError(t, err)
	assert.True(t, date(2023, time.November, 10).Equal(got))

	got, err = OverdueDate(date(2023, time.November, 5), 0)
	require.NoError(t, err)
	assert.True(t, date(2023, time.November, 5).Equal(got))

	got, err = OverdueDate(date(2024, time.February, 27), 3)
	require.NoError(t, err)
	assert.True(t, date(2024, time.March, 1).Equal(got))

	_, err = OverdueDate(date(2023, time.November, 5), -1)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestClassifyDueStatus(t *testing.T) {
	due := date(2023, time.November, 5)
	overdue := date(2023, time.November, 10)

	tests := []struct {
		name string
		now  time.Time
		want DueClassification
	}{
		{
			name: "one instant before due date",
			now:  due.Add(-time.Nanosecond),
			want: DueClassification{Status: DueStatusCurrent},
		},
		{
			name: "exactly due date",
			now:  due,
			want: DueClassification{Status: DueStatusDue},
		},
		{
			name: "two days past due",
			now:  date(2023, time.November, 7),
			want: DueClassification{Status: DueStatusDue, DaysPastDue: 2},
		},
		{
			name: "partial day is floored",
			now:  date(2023, time.November, 7).Add(23 * time.Hour),
			want: DueClassification{Status: DueStatusDue, DaysPastDue: 2},
		},
		{
			name: "exactly overdue date",
			now:  overdue,
			want: DueClassification{Status: DueStatusOverdue},
		},
		{
			name: "eleven days overdue",
			now:  date(2023, time.November, 21).Add(time.Hour),
			want: DueClassification{Status: DueStatusOverdue, DaysOverdue: 11},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDueStatus(tt.now, due, overdue))
		})
	}
}

func TestDueClassificationReportsZeroDays(t *testing.T) {
	due := date(2023, time.November, 5)
	overdue := date(2023, time.November, 10)

	raw, err := json.Marshal(ClassifyDueStatus(due, due, overdue))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"DUE","days_past_due":0,"days_overdue":0}`, string(raw))
}

func TestDueDateInMonth(t *testing.T) {
	got, err := DueDateInMonth(date(2023, time.November, 1), 5)
	require.NoError(t, err)
	assert.Equal(t, date(2023, time.November, 5), got)

	// day 31 of November rolls into December
	got, err = DueDateInMonth(date(2023, time.November, 1), 31)
	require.NoError(t, err)
	assert.Equal(t, date(2023, time.December, 1), got)

	_, err = DueDateInMonth(date(2023, time.November, 1), 0)
	assert.True(t, ierr.IsValidation(err))
}

func TestClassifyWithZeroGraceSkipsDue(t *testing.T) {
	due := date(2023, time.November, 5)
	overdue, err := OverdueDate(due, 0)
	require.NoError(t, err)

	got := ClassifyDueStatus(due, due, overdue)
	assert.Equal(t, DueStatusOverdue, got.Status)
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 10, MonthsBetween(date(2023, time.September, 1), date(2024, time.June, 30)))
	assert.Equal(t, 1, MonthsBetween(date(2023, time.September, 1), date(2023, time.September, 30)))
	assert.Equal(t, 13, MonthsBetween(date(2023, time.January, 1), date(2024, time.January, 1)))
}

func TestWholeDaysBetween(t *testing.T) {
	assert.Equal(t, 0, WholeDaysBetween(date(2023, time.November, 5), date(2023, time.November, 5).Add(time.Hour)))
	assert.Equal(t, -1, WholeDaysBetween(date(2023, time.November, 5), date(2023, time.November, 4).Add(time.Hour)))
	assert.Equal(t, 30, WholeDaysBetween(date(2023, time.November, 1), date(2023, time.December, 1)))
}
