package domain

import (
	"errors"
	"time"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidDateRange indicates that the statement start date is after the end date.
	ErrInvalidDateRange = errors.New("invalid statement date range")
)

// TransactionTypeTransfer is the type recorded for account-to-account transfers.
const TransactionTypeTransfer = "TRANSFER"

// Transaction is one immutable row of the append-only transaction log.
// The log is the sole source of truth for history and statements.
type Transaction struct {
	ID                int64     `json:"transaction_id"`
	SenderAccountID   int64     `json:"sender_account_id"`
	ReceiverAccountID int64     `json:"receiver_account_id"`
	Amount            string    `json:"amount"` // must be positive
	Type              string    `json:"transaction_type"`
	Description       string    `json:"description"`
	Date              time.Time `json:"transaction_date"` // server-assigned at commit
}

// CreateTransactionParams is the input data to append a transaction record.
type CreateTransactionParams struct {
	SenderAccountID   int64  `json:"sender_account_id"`
	ReceiverAccountID int64  `json:"receiver_account_id"`
	Amount            string `json:"amount"`
	Type              string `json:"transaction_type"`
	Description       string `json:"description"`
}
