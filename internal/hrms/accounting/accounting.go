// Package accounting holds the pure computation rules of the HRMS:
// attendance durations, leave day spans, payroll breakdowns and the
// business employee-id format. No I/O happens here.
package accounting

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/peopledesk/hrms-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// timeOfDayLayout is the wire format for check-in/check-out times.
const timeOfDayLayout = "15:04"

// hoursPlaces is the stored precision for attendance hours and pay amounts.
const hoursPlaces = 2

// AttendanceHours computes the worked duration between two "HH:MM" times of
// day, in fractional hours rounded to 2 places. If either time is empty the
// result is zero. A check-out earlier than the check-in is treated as a shift
// crossing midnight, so the result is never negative.
func AttendanceHours(checkIn, checkOut string) (decimal.Decimal, error) {
	if checkIn == "" || checkOut == "" {
		return decimal.Zero, nil
	}

	in, err := parseTimeOfDay(checkIn)
	if err != nil {
		return decimal.Zero, errors.Validation(map[string]string{
			"check_in": "must be a valid HH:MM time",
		})
	}
	out, err := parseTimeOfDay(checkOut)
	if err != nil {
		return decimal.Zero, errors.Validation(map[string]string{
			"check_out": "must be a valid HH:MM time",
		})
	}

	d := out.Sub(in)
	if d < 0 {
		// Overnight shift: check-out belongs to the next calendar day.
		d += 24 * time.Hour
	}

	return decimal.NewFromFloat(d.Hours()).Round(hoursPlaces), nil
}

// LeaveDays computes the inclusive day span of a leave request:
// (end - start in whole days) + 1. End before start is a validation error,
// never a silent clamp.
func LeaveDays(start, end time.Time) (int, error) {
	startDay := truncateToDay(start)
	endDay := truncateToDay(end)

	if endDay.Before(startDay) {
		return 0, errors.Validation(map[string]string{
			"end_date": "must not be before start_date",
		})
	}

	return int(endDay.Sub(startDay).Hours()/24) + 1, nil
}

// Breakdown is the computed pay for one employee over one period.
type Breakdown struct {
	GrossPay decimal.Decimal
	NetPay   decimal.Decimal
}

// Payroll computes gross and net pay from the employee's salary components.
// All inputs must be non-negative. Rounding to 2 places (half away from zero)
// is applied only to the returned amounts, not intermediates.
func Payroll(baseSalary, allowances, deductions, overtimeHours, overtimeRate decimal.Decimal) (Breakdown, error) {
	details := map[string]string{}
	for field, v := range map[string]decimal.Decimal{
		"base_salary":    baseSalary,
		"allowances":     allowances,
		"deductions":     deductions,
		"overtime_hours": overtimeHours,
		"overtime_rate":  overtimeRate,
	} {
		if v.IsNegative() {
			details[field] = "must not be negative"
		}
	}
	if len(details) > 0 {
		return Breakdown{}, errors.Validation(details)
	}

	gross := baseSalary.Add(allowances).Add(overtimeHours.Mul(overtimeRate))
	net := gross.Sub(deductions)

	return Breakdown{
		GrossPay: gross.Round(hoursPlaces),
		NetPay:   net.Round(hoursPlaces),
	}, nil
}

// employeeIDPrefix is the business-id prefix; the numeric suffix is
// zero-padded to at least three digits and grows past 999 without truncation.
const employeeIDPrefix = "EMP"

// FormatEmployeeID renders a sequence value as a business employee id.
func FormatEmployeeID(n int64) string {
	return fmt.Sprintf("%s%03d", employeeIDPrefix, n)
}

// ParseEmployeeID extracts the numeric suffix of a business employee id.
func ParseEmployeeID(id string) (int64, error) {
	if !strings.HasPrefix(id, employeeIDPrefix) {
		return 0, errors.BadRequest("invalid employee id format")
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(id, employeeIDPrefix), 10, 64)
	if err != nil || n < 1 {
		return 0, errors.BadRequest("invalid employee id format")
	}
	return n, nil
}

func parseTimeOfDay(s string) (time.Time, error) {
	return time.Parse(timeOfDayLayout, s)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
