// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountOwnerMismatch indicates that the caller does not own the account.
	ErrAccountOwnerMismatch = errors.New("account does not belong to the caller")
	// ErrAccountNumberAlreadyExists indicates that the account number is already taken.
	ErrAccountNumberAlreadyExists = errors.New("account number already exists")
)

// Supported account types.
const (
	AccountTypeChecking = "Checking"
	AccountTypeSavings  = "Savings"
)

// IsSupportedAccountType reports whether the account type is supported.
func IsSupportedAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeChecking, AccountTypeSavings:
		return true
	}

	return false
}

// Account holds the ledger balance record for a single customer account.
//
// Balance is carried as a string and parsed with decimal wherever arithmetic
// happens; the database column is NUMERIC(15,2) and never goes negative.
type Account struct {
	ID         int64     `json:"account_id"`
	Number     string    `json:"account_number"`
	CustomerID int64     `json:"customer_id"`
	Type       string    `json:"account_type"`
	Balance    string    `json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
}
