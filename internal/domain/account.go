// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountNumberExists indicates that an account with the given number already exists.
	ErrAccountNumberExists = errors.New("account number already exists")
	// ErrInvalidAccountType indicates that the account type is not supported.
	ErrInvalidAccountType = errors.New("invalid account type")
)

// Account holds the holder's balance and is the only place the balance is changed.
type Account struct {
	ID        int64           `json:"id"`
	Number    string          `json:"account_number"`
	Holder    string          `json:"account_holder"`
	Balance   decimal.Decimal `json:"balance"`
	Type      string          `json:"account_type"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	Number  string          `json:"account_number"`
	Holder  string          `json:"account_holder"`
	Balance decimal.Decimal `json:"balance"`
	Type    string          `json:"account_type"`
}

// GetBalance returns the current balance.
func (a Account) GetBalance() decimal.Decimal {
	return a.Balance
}

// Deposit increases the balance by amount.
// It reports false and leaves the balance untouched unless amount is positive.
func (a *Account) Deposit(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}

	a.Balance = a.Balance.Add(amount)

	return true
}

// Withdraw decreases the balance by amount.
// It reports false and leaves the balance untouched unless 0 < amount <= balance.
func (a *Account) Withdraw(amount decimal.Decimal) bool {
	if !amount.IsPositive() || amount.GreaterThan(a.Balance) {
		return false
	}

	a.Balance = a.Balance.Sub(amount)

	return true
}
