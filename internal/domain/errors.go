package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrShiftAlreadyActive = errors.New("shift already active for today")
	ErrNoActiveShift      = errors.New("no active shift for this employee")
	ErrInvalidDateRange   = errors.New("invalid date range")
)
