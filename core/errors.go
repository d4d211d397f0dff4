package core

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrInvalidAmount non-positive or malformed amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrInvalidExchange unsupported exchange
	ErrInvalidExchange ErrorCode = 100102
	// ErrUnknownSubaccount subaccount not configured for the exchange
	ErrUnknownSubaccount ErrorCode = 100103
	// ErrInsufficientLoan not enough borrowed amount on the account
	ErrInsufficientLoan ErrorCode = 100104
	// ErrCrossExchangeTransfer free balance can not cross exchanges
	ErrCrossExchangeTransfer ErrorCode = 100105
	// ErrTradingBlocked a block rule forbids trading the instrument
	ErrTradingBlocked ErrorCode = 100106
	// ErrBlockRuleRemoving rule removal not finalized yet
	ErrBlockRuleRemoving ErrorCode = 100107
	// ErrLedgerCorrupted invariant violation read from the ledger
	ErrLedgerCorrupted ErrorCode = 100108
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// UnrecoverableError marks a failed compensation: the external action
// succeeded, the ledger write failed, and the undo failed too. Ledger
// and exchange state now disagree; manual intervention is required.
type UnrecoverableError struct {
	Op      string
	Cause   error
	UndoErr error
}

// Unrecoverable wrap a ledger failure and the undo failure that followed it
func Unrecoverable(op string, cause, undoErr error) *UnrecoverableError {
	return &UnrecoverableError{Op: op, Cause: cause, UndoErr: undoErr}
}

func (e *UnrecoverableError) Error() string {
	return fmt.Sprintf("%s unrecoverable: ledger write failed: %v; undo failed: %v", e.Op, e.Cause, e.UndoErr)
}

func (e *UnrecoverableError) Unwrap() error {
	return e.Cause
}

// IsUnrecoverable report whether err carries a failed compensation
func IsUnrecoverable(err error) bool {
	var target *UnrecoverableError
	return errors.As(err, &target)
}
