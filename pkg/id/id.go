package id

import (
	"github.com/gofrs/uuid"
)

// ledgerIDLength loan_id / hedge_id columns keep a fixed uuid prefix;
// collision probability stays negligible over the table lifetime.
const ledgerIDLength = 30

// GenUUIDString new uuid
func GenUUIDString() string {
	return uuid.Must(uuid.NewV4()).String()
}

// GenTraceID new row id
func GenTraceID() string {
	return GenUUIDString()
}

// GenLedgerID new truncated id for loan_id / hedge_id columns
func GenLedgerID() string {
	return GenUUIDString()[:ledgerIDLength]
}
