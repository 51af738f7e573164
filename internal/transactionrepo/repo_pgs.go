// Package transactionrepo manages repository layer of the transaction log.
package transactionrepo

import (
	"context"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
//
// The log is append only, there is no update or delete.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    transactions (account_id, type, amount, balance_after)
VALUES
    ($1, $2, $3, $4)
RETURNING id, account_id, type, amount, balance_after, created_at
`

// Create records the transaction and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.AccountID, arg.Type, arg.Amount, arg.BalanceAfter)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Type,
		&t.Amount,
		&t.BalanceAfter,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if dbpkg.Constraint(err) == "transactions_account_id_fkey" {
			return t, domain.ErrAccountNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT id, account_id, type, amount, balance_after, created_at FROM transactions
WHERE account_id = $1
ORDER BY id
`

// List returns all transactions of the given account in creation order.
func (r *RepoPGS) List(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Type,
			&t.Amount,
			&t.BalanceAfter,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
