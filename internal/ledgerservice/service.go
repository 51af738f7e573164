// Package ledgerservice manages business logic layer of deposits, withdrawals
// and the transaction history.
package ledgerservice

import (
	"context"
	"encoding/json"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice

// Repo provides the ledger data access layer interface needed by ledger service layer.
type Repo interface {
	Apply(ctx context.Context, arg domain.LedgerParams) (domain.LedgerResult, error)
}

// AccountRepo provides account lookups needed by ledger service layer.
type AccountRepo interface {
	Get(ctx context.Context, number string) (domain.Account, error)
}

// TransactionRepo provides the transaction log needed by ledger service layer.
type TransactionRepo interface {
	List(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// Publisher sends committed transaction events.
type Publisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo         Repo
	accounts     AccountRepo
	transactions TransactionRepo
	publisher    Publisher
}

// New returns ledger service struct to manage ledger bussines logic.
func New(lr Repo, ar AccountRepo, tr TransactionRepo, p Publisher) *Service {
	return &Service{
		repo:         lr,
		accounts:     ar,
		transactions: tr,
		publisher:    p,
	}
}

// Get returns the account with the given account number.
func (s *Service) Get(ctx context.Context, number string) (domain.Account, error) {
	return s.accounts.Get(ctx, number)
}

// Deposit credits amount to the account and records a Deposit transaction.
func (s *Service) Deposit(ctx context.Context, number, amount string) (domain.LedgerResult, error) {
	return s.apply(ctx, number, domain.TransactionDeposit, amount)
}

// Withdraw debits amount from the account and records a Withdrawal transaction.
func (s *Service) Withdraw(ctx context.Context, number, amount string) (domain.LedgerResult, error) {
	return s.apply(ctx, number, domain.TransactionWithdrawal, amount)
}

func (s *Service) apply(ctx context.Context, number, txType, amount string) (domain.LedgerResult, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := domain.ParseAmount(amount)
	if err != nil {
		l.Info().Err(err).Int("amount_length", len(amount)).Send()
		return domain.LedgerResult{}, err
	}

	if !amountDecimal.IsPositive() {
		return domain.LedgerResult{}, domain.ErrInvalidAmount
	}

	arg := domain.LedgerParams{
		AccountNumber: number,
		Type:          txType,
		Amount:        amountDecimal,
	}

	result, err := s.repo.Apply(ctx, arg)
	if err != nil {
		return domain.LedgerResult{}, err
	}

	s.publish(ctx, result)

	return result, nil
}

// publish announces the committed result. Failures are logged only,
// the mutation is already durable.
func (s *Service) publish(ctx context.Context, result domain.LedgerResult) {
	l := zerolog.Ctx(ctx)

	payload, err := json.Marshal(domain.NewTransactionEvent(result))
	if err != nil {
		l.Error().Err(err).Send()
		return
	}

	if err := s.publisher.Publish(ctx, result.Account.Number, payload); err != nil {
		l.Warn().Err(err).Str("account_number", result.Account.Number).Msg("cannot publish transaction event")
	}
}

// History returns the account and all of its transactions in creation order.
func (s *Service) History(ctx context.Context, number string) (domain.Account, []domain.Transaction, error) {
	account, err := s.accounts.Get(ctx, number)
	if err != nil {
		return domain.Account{}, nil, err
	}

	transactions, err := s.transactions.List(ctx, account.ID)
	if err != nil {
		return domain.Account{}, nil, err
	}

	return account, transactions, nil
}
