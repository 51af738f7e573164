// Package ledgerdelivery manages delivery layer of deposits, withdrawals and
// the transaction history.
package ledgerdelivery

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Get(ctx context.Context, number string) (domain.Account, error)
	Deposit(ctx context.Context, number, amount string) (domain.LedgerResult, error)
	Withdraw(ctx context.Context, number, amount string) (domain.LedgerResult, error)
	History(ctx context.Context, number string) (domain.Account, []domain.Transaction, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(ls Service) Handler {
	return Handler{service: ls}
}

// Messages shown to the client.
const (
	MsgDeposit           = "Deposit Successful!"
	MsgWithdrawal        = "Withdrawal Successful!"
	MsgInsufficientFunds = "Insufficient Funds!"
)

type data struct {
	Account domain.Account `json:"account"`
}

type dataHistory struct {
	Account      domain.Account       `json:"account"`
	Transactions []domain.Transaction `json:"transactions"`
}

type uriRequest struct {
	Number string `uri:"acc_num" binding:"required"`
}

type amountRequest struct {
	Amount json.Number `form:"amount" json:"amount" binding:"required"`
}

// Account handles http request to show the account before a deposit or withdrawal.
func (h *Handler) Account(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	account, err := h.service.Get(ctx, req.Number)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{account}})
}

// Deposit handles http request to deposit into the account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.apply(gctx, h.service.Deposit, MsgDeposit)
}

// Withdraw handles http request to withdraw from the account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.apply(gctx, h.service.Withdraw, MsgWithdrawal)
}

type applyFunc func(ctx context.Context, number, amount string) (domain.LedgerResult, error)

func (h *Handler) apply(gctx *gin.Context, fn applyFunc, msg string) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	var req amountRequest
	if err := gctx.ShouldBind(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	result, err := fn(ctx, uri.Number, req.Amount.String())
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: result, Message: msg})
}

// Transactions handles http request to list the account transactions.
func (h *Handler) Transactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	account, transactions, err := h.service.History(ctx, req.Number)
	if err != nil {
		respondError(gctx, err)
		return
	}

	if transactions == nil {
		transactions = []domain.Transaction{}
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataHistory{account, transactions}})
}

func respondError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrInsufficientFunds:
		gctx.JSON(http.StatusBadRequest, web.Response{Error: MsgInsufficientFunds})
	case domain.ErrInvalidAmount:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
