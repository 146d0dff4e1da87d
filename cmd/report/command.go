package main

import (
	"context"
	"flag"
	"io"
	"net/http"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/interfaces"
	"github.com/samber/lo"
)

const usage = `usage: report <operation> [flags]

operations:
  effective-fee      -grade ID -month ID
  student-total-fee  -grade ID -student ID -month ID
  month-revenue      -month ID
  student-due        -student ID -month ID
  overdue            -month ID
  discount-report    -month ID
  payment-history    -student ID [-year ID]
`

const (
	exitFailure    = 1
	exitUsage      = 2
	exitNotFound   = 3
	exitIncomplete = 4
)

// command is one parsed invocation of the report runner
type command struct {
	operation string
	gradeID   string
	studentID string
	monthID   string
	yearID    string
}

func parseCommand(args []string) (*command, error) {
	if len(args) == 0 {
		return nil, ierr.NewError("missing operation").Mark(ierr.ErrValidation)
	}

	cmd := &command{operation: args[0]}
	fs := flag.NewFlagSet(cmd.operation, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cmd.gradeID, "grade", "", "grade id")
	fs.StringVar(&cmd.studentID, "student", "", "student id")
	fs.StringVar(&cmd.monthID, "month", "", "school month id")
	fs.StringVar(&cmd.yearID, "year", "", "school year id")
	if err := fs.Parse(args[1:]); err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrValidation)
	}

	var required []string
	switch cmd.operation {
	case "effective-fee":
		required = []string{"grade", "month"}
	case "student-total-fee":
		required = []string{"grade", "student", "month"}
	case "month-revenue", "overdue", "discount-report":
		required = []string{"month"}
	case "student-due":
		required = []string{"student", "month"}
	case "payment-history":
		required = []string{"student"}
	default:
		return nil, ierr.NewErrorf("unknown operation %q", cmd.operation).Mark(ierr.ErrValidation)
	}

	values := map[string]string{
		"grade":   cmd.gradeID,
		"student": cmd.studentID,
		"month":   cmd.monthID,
	}
	missing := lo.Filter(required, func(name string, _ int) bool {
		return values[name] == ""
	})
	if len(missing) > 0 {
		return nil, ierr.NewErrorf("missing flags for %s: %v", cmd.operation, missing).
			Mark(ierr.ErrValidation)
	}
	return cmd, nil
}

func (c *command) run(ctx context.Context, engine interfaces.BillingEngine) (interface{}, error) {
	switch c.operation {
	case "effective-fee":
		return engine.GetEffectiveFee(ctx, c.gradeID, c.monthID)
	case "student-total-fee":
		return engine.GetStudentTotalFee(ctx, c.gradeID, c.studentID, c.monthID)
	case "month-revenue":
		return engine.GetMonthRevenue(ctx, c.monthID)
	case "student-due":
		return engine.GetStudentDue(ctx, c.monthID, c.studentID)
	case "overdue":
		return engine.GetStudentsInOverdue(ctx, c.monthID)
	case "discount-report":
		return engine.GetDiscountReport(ctx, c.monthID)
	case "payment-history":
		var yearID *string
		if c.yearID != "" {
			yearID = lo.ToPtr(c.yearID)
		}
		return engine.GetPaymentHistory(ctx, c.studentID, yearID)
	}
	return nil, ierr.NewErrorf("unknown operation %q", c.operation).Mark(ierr.ErrValidation)
}

// exitCode maps the error kind to a process exit status
func exitCode(err error) int {
	switch ierr.HTTPStatusFromErr(err) {
	case http.StatusBadRequest:
		return exitUsage
	case http.StatusNotFound:
		return exitNotFound
	case http.StatusServiceUnavailable:
		return exitIncomplete
	default:
		return exitFailure
	}
}
