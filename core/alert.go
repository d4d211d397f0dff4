package core

import "context"

// Alerter best-effort alert sink. Delivery is fire and forget: the
// caller returns its own error regardless of whether the alert landed.
type Alerter interface {
	Send(ctx context.Context, message string)
}

// AccountService validates that a subaccount is known and authorized
// for the wallet it is about to operate on
type AccountService interface {
	CheckAccount(ctx context.Context, subaccount string, wallet Wallet) error
}
