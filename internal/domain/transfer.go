package domain

import "errors"

var (
	// ErrInvalidAmount indicates an amount that is not a valid two-decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates a non-positive amount.
	ErrNegativeAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance indicates that the aggregate batch amount exceeds the sender's balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrEmptyBatch indicates a transfer request without any legs.
	ErrEmptyBatch = errors.New("transfer batch is empty")
	// ErrSelfTransfer indicates a leg targeting the sender's own account.
	ErrSelfTransfer = errors.New("self transfer is not allowed")
	// ErrReceiverNotFound indicates an unresolvable receiver account number.
	ErrReceiverNotFound = errors.New("receiver account not found")
	// ErrTransferConflict indicates that the transfer lost a row-lock race and may be retried.
	ErrTransferConflict = errors.New("transfer conflicts with a concurrent transfer")
)

// TransferLeg is one (receiver, amount, description) tuple of a transfer batch.
type TransferLeg struct {
	ReceiverAccountNumber string `json:"receiver_account_number"`
	Amount                string `json:"amount"` // must be positive
	Description           string `json:"description"`
}

// CreateTransferParams is the input data for the transfer transaction.
//
// The batch commits or aborts as a whole: either every leg is applied and
// logged or none is.
type CreateTransferParams struct {
	SenderAccountID int64         `json:"sender_account_id"`
	Legs            []TransferLeg `json:"legs"`
}

// TransferTxResult is the result of a committed transfer transaction.
type TransferTxResult struct {
	Transactions  []Transaction `json:"transactions"`
	SenderAccount Account       `json:"sender_account"`
}
