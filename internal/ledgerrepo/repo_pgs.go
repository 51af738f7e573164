// Package ledgerrepo manages repository layer of balance mutations.
package ledgerrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/transactionrepo"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns ledger RepoPGS wiht connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{conn: db}
}

// Apply performs a deposit or a withdrawal on the account.
//
// It loads the account, runs the balance mutation, stores the new balance and
// records the transaction within a single db transaction. When the mutation is
// rejected nothing is written.
func (r *RepoPGS) Apply(ctx context.Context, arg domain.LedgerParams) (domain.LedgerResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.LedgerResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := transactionrepo.NewRepoPGS(tx)

	account, err := accountRepo.GetForUpdate(ctx, arg.AccountNumber)
	if err != nil {
		return result, err
	}

	signedAmount, err := mutate(&account, arg)
	if err != nil {
		l.Info().Err(err).Str("account_number", arg.AccountNumber).Str("amount", arg.Amount.String()).Send()
		return result, err
	}

	result.Account, err = accountRepo.UpdateBalance(ctx, account.ID, account.Balance)
	if err != nil {
		return domain.LedgerResult{}, err
	}

	result.Transaction, err = transactionRepo.Create(ctx, domain.CreateTransactionParams{
		AccountID:    account.ID,
		Type:         arg.Type,
		Amount:       signedAmount,
		BalanceAfter: result.Account.Balance,
	})
	if err != nil {
		return domain.LedgerResult{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.LedgerResult{}, errorspkg.ErrInternal
	}

	return result, nil
}
