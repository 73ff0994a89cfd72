package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind identifies which direction a transaction moved the
// balance. Amounts are always positive; the kind carries the sign.
type TransactionKind string

const (
	KindInitialDeposit   TransactionKind = "initial_deposit"
	KindDeposit          TransactionKind = "deposit"
	KindWithdrawal       TransactionKind = "withdrawal"
	KindTransferSent     TransactionKind = "transfer_sent"
	KindTransferReceived TransactionKind = "transfer_received"
	KindInterestAdded    TransactionKind = "interest_added"
)

var validKinds = map[TransactionKind]bool{
	KindInitialDeposit:   true,
	KindDeposit:          true,
	KindWithdrawal:       true,
	KindTransferSent:     true,
	KindTransferReceived: true,
	KindInterestAdded:    true,
}

// IsValid checks if the kind is a known transaction kind.
func (k TransactionKind) IsValid() bool {
	return validKinds[k]
}

// Transaction is an immutable record of one balance-affecting event.
// Initial deposits are created at account-opening time and carry no
// timestamp or description; every other kind carries both.
type Transaction struct {
	ID          string
	Kind        TransactionKind
	Amount      decimal.Decimal
	Timestamp   time.Time
	Description string
}
