package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountInactive = errors.New("account is inactive")
	ErrSameAccount     = errors.New("origin and destination accounts must differ")

	// Money errors
	ErrInvalidAmount = errors.New("invalid monetary amount")

	// Schedule errors
	ErrInvalidScheduleParameters = errors.New("invalid schedule parameters")

	// Movement errors
	ErrMovementNotFound           = errors.New("movement not found")
	ErrMovementNotConfirmed       = errors.New("movement is not confirmed")
	ErrMovementAlreadyReversed    = errors.New("movement is already reversed")
	ErrMissingDestinationAccount  = errors.New("settlement requires an account but none was supplied")
	ErrInstallmentNotFound        = errors.New("installment not found")
	ErrInstallmentAlreadyApplied  = errors.New("installment is already applied")
	ErrPartialApplicationDetected = errors.New("partial application detected: balance does not match applied deltas")

	// Allocation errors
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")
)
