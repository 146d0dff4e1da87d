package main

import (
	"testing"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    *command
		wantErr bool
	}{
		{
			name: "effective fee",
			args: []string{"effective-fee", "-grade", "grd_1", "-month", "smo_1"},
			want: &command{operation: "effective-fee", gradeID: "grd_1", monthID: "smo_1"},
		},
		{
			name: "payment history without year",
			args: []string{"payment-history", "-student", "stu_1"},
			want: &command{operation: "payment-history", studentID: "stu_1"},
		},
		{
			name: "payment history with year",
			args: []string{"payment-history", "-student", "stu_1", "-year", "sy_1"},
			want: &command{operation: "payment-history", studentID: "stu_1", yearID: "sy_1"},
		},
		{
			name:    "no operation",
			args:    nil,
			wantErr: true,
		},
		{
			name:    "unknown operation",
			args:    []string{"refund", "-month", "smo_1"},
			wantErr: true,
		},
		{
			name:    "missing month",
			args:    []string{"student-due", "-student", "stu_1"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"overdue", "-month", "smo_1", "-term", "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommand(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ierr.NewError("bad").Mark(ierr.ErrValidation), exitUsage},
		{"not found", ierr.NewError("missing").Mark(ierr.ErrNotFound), exitNotFound},
		{"incomplete", ierr.NewError("deadline").Mark(ierr.ErrIncomplete), exitIncomplete},
		{"no effective fee", ierr.NewError("no fee").Mark(ierr.ErrNoEffectiveFee), exitFailure},
		{"unmarked", assert.AnError, exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
