package rest

import (
	"errors"

	"fundscontroller/core"
)

// codeOf map a service error to its wire error code
func codeOf(err error) int {
	switch {
	case errors.Is(err, core.ErrInsufficientLoanAmount):
		return int(core.ErrInsufficientLoan)
	case errors.Is(err, core.ErrBlockRuleRemovalPending):
		return int(core.ErrBlockRuleRemoving)
	case errors.Is(err, core.ErrLedgerCorrupted):
		return int(core.ErrLedgerCorrupted)
	default:
		return int(core.ErrUnknown)
	}
}
