package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds indicates that the account balance does not cover the withdrawal.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Digit limits of the numeric columns amounts are stored in.
const (
	MaxAmountIntegerDigits  = 131072
	MaxAmountFractionDigits = 16383
)

// ParseAmount parses a money amount written in decimal or scientific notation.
//
// It returns ErrInvalidAmount when s is not a number or needs more integer or
// fraction digits than storage keeps. The sign is not checked.
func ParseAmount(s string) (decimal.Decimal, error) {
	if len(s) > MaxAmountIntegerDigits+MaxAmountFractionDigits+2 {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	exp := int64(d.Exponent())
	if exp < -MaxAmountFractionDigits || int64(d.NumDigits())+exp > MaxAmountIntegerDigits {
		return decimal.Zero, ErrInvalidAmount
	}

	return d, nil
}

// Transaction type labels.
const (
	TransactionDeposit    = "Deposit"
	TransactionWithdrawal = "Withdrawal"
)

// Transaction holds a single balance change of an account.
type Transaction struct {
	ID           int64               `json:"id"`
	AccountID    int64               `json:"account_id"`
	Type         string              `json:"type"`
	Amount       decimal.Decimal     `json:"amount"` // positive for deposits, negative for withdrawals
	BalanceAfter decimal.NullDecimal `json:"balance_after"`
	CreatedAt    time.Time           `json:"created_at"`
}

// CreateTransactionParams is the input data to record a transaction.
type CreateTransactionParams struct {
	AccountID    int64
	Type         string
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
}

// LedgerParams is the input data for a balance mutation.
type LedgerParams struct {
	AccountNumber string
	Type          string // TransactionDeposit or TransactionWithdrawal
	Amount        decimal.Decimal
}

// LedgerResult is the result of a committed balance mutation.
type LedgerResult struct {
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}

// TransactionEvent is published after a balance mutation has been committed.
type TransactionEvent struct {
	AccountNumber string          `json:"account_number"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewTransactionEvent builds the event for a committed ledger result.
func NewTransactionEvent(r LedgerResult) TransactionEvent {
	return TransactionEvent{
		AccountNumber: r.Account.Number,
		Type:          r.Transaction.Type,
		Amount:        r.Transaction.Amount,
		BalanceAfter:  r.Account.Balance,
		CreatedAt:     r.Transaction.CreatedAt,
	}
}
