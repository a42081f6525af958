package actions

import (
	"context"
	"net/url"
	"strings"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core/user"
)

// Deposit starts a wallet top-up; the returned transaction is completed by the payment provider.
func (a *Actions) Deposit(ctx context.Context, sess core.Session, in user.DepositInput) core.Result[Transaction] {
	if err := a.check(in); err != nil {
		return invalid[Transaction](err)
	}
	return mutate[Transaction](ctx, a, sess, post("/deposit", in), core.MsgWalletFailed, core.ViewProfile(sess.UserID))
}

// SimulatePayment completes a pending deposit transaction (sandbox payments).
func (a *Actions) SimulatePayment(ctx context.Context, sess core.Session, transactionID string) core.Result[Ack] {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return invalid[Ack](core.NewValidationError(nil, core.FieldError{Field: "transaction_id", Error: "this field is required"}))
	}
	return mutate[Ack](ctx, a, sess, post("/payment/simulate/"+url.PathEscape(transactionID), nil), core.MsgWalletFailed,
		core.ViewProfile(sess.UserID))
}

func (a *Actions) UpdateWallet(ctx context.Context, sess core.Session, in user.UpdateWalletInput) core.Result[Ack] {
	in.AccountNumber = core.CleanString(in.AccountNumber)
	if err := a.check(in); err != nil {
		return invalid[Ack](err)
	}
	return mutate[Ack](ctx, a, sess, post("/wallet/update", in), core.MsgWalletFailed, core.ViewProfile(sess.UserID))
}

// Withdraw transfers earnings out of the wallet.
func (a *Actions) Withdraw(ctx context.Context, sess core.Session, in user.WithdrawInput) core.Result[WithdrawResult] {
	if err := a.check(in); err != nil {
		return invalid[WithdrawResult](err)
	}
	return mutate[WithdrawResult](ctx, a, sess, post("/wallet/withdraw", in), core.MsgWalletFailed, core.ViewProfile(sess.UserID))
}
