package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/SathemBite/tx-engine-example/txengine/assert"
	"github.com/SathemBite/tx-engine-example/txengine/transaction"
	"github.com/shopspring/decimal"
)

// Engine holds every client account and applies transactions in order.
type Engine struct {
	accounts map[transaction.ClientID]*account
	// accepted holds the id of every applied deposit and withdrawal, across clients.
	accepted map[transaction.TxID]struct{}
	asserter *assert.Asserter
}

// Option configures an Engine.
type Option func(*Engine)

// WithAsserter sets the asserter used to report broken invariants and
// unsupported transaction variants.
func WithAsserter(a *assert.Asserter) Option {
	return func(e *Engine) {
		if a != nil {
			e.asserter = a
		}
	}
}

// New returns an empty Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		accounts: make(map[transaction.ClientID]*account),
		accepted: make(map[transaction.TxID]struct{}),
		asserter: assert.New(nil, "ledger", "apply"),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Apply applies tx to the ledger. It returns nil when tx was applied and a
// *Rejection otherwise; a rejected transaction leaves the ledger unchanged.
func (e *Engine) Apply(tx transaction.Transaction) error {
	if err := e.asserter.NotNil(context.Background(), tx, "transaction must not be nil"); err != nil {
		r := reject(ErrUnsupported, nil)
		r.Message = "nil transaction"

		return r
	}

	switch t := tx.(type) {
	case transaction.Deposit:
		return e.deposit(t)
	case transaction.Withdrawal:
		return e.withdraw(t)
	case transaction.Dispute:
		return e.dispute(t)
	case transaction.Resolve:
		return e.resolve(t)
	case transaction.Chargeback:
		return e.chargeback(t)
	default:
		_ = e.asserter.Never(context.Background(), "unsupported transaction variant", "type", fmt.Sprintf("%T", tx))

		r := reject(ErrUnsupported, nil)
		r.Message = fmt.Sprintf("unsupported transaction %T", tx)

		return r
	}
}

func (e *Engine) deposit(tx transaction.Deposit) error {
	if err := e.checkNew(tx, tx.Amount); err != nil {
		return err
	}

	acct, ok := e.accounts[tx.Client]
	if !ok {
		acct = newAccount()
	}

	balance, err := transaction.ApplyPosting(acct.balance, transaction.OperationCredit, tx.Amount)
	if err != nil {
		return e.postingFailed(tx, err)
	}

	e.accounts[tx.Client] = acct
	e.accept(acct, tx, balance)

	return nil
}

func (e *Engine) withdraw(tx transaction.Withdrawal) error {
	if err := e.checkNew(tx, tx.Amount); err != nil {
		return err
	}

	acct, ok := e.accounts[tx.Client]
	if !ok {
		acct = newAccount()
		e.accounts[tx.Client] = acct
	}

	balance, err := transaction.ApplyPosting(acct.balance, transaction.OperationDebit, tx.Amount)
	if err != nil {
		var domainErr transaction.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == transaction.ErrorInsufficientFunds {
			return reject(ErrInsufficientFunds, tx)
		}

		return e.postingFailed(tx, err)
	}

	e.accept(acct, tx, balance)

	return nil
}

// checkNew runs the checks shared by deposits and withdrawals, in order:
// amount sign, duplicate id, frozen account.
func (e *Engine) checkNew(tx transaction.Transaction, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return reject(ErrInvalidAmount, tx)
	}

	if _, dup := e.accepted[tx.TxID()]; dup {
		return reject(ErrDuplicateTransaction, tx)
	}

	if acct, ok := e.accounts[tx.ClientID()]; ok && acct.frozen {
		return reject(ErrAccountFrozen, tx)
	}

	return nil
}

func (e *Engine) accept(acct *account, tx transaction.Transaction, balance transaction.Balance) {
	acct.balance = balance
	acct.history[tx.TxID()] = tx
	e.accepted[tx.TxID()] = struct{}{}
}

func (e *Engine) dispute(tx transaction.Dispute) error {
	acct, err := e.liveAccount(tx)
	if err != nil {
		return err
	}

	if _, disputed := acct.disputes[tx.ID]; disputed {
		return reject(ErrAlreadyDisputed, tx)
	}

	original, found := acct.history[tx.ID]
	if !found {
		return reject(ErrDisputeNotFound, tx)
	}

	deposit, isDeposit := original.(transaction.Deposit)
	if !isDeposit {
		return reject(ErrNotADeposit, tx)
	}

	balance, err := transaction.ApplyPosting(acct.balance, transaction.OperationOnHold, deposit.Amount)
	if err != nil {
		return e.postingFailed(tx, err)
	}

	acct.balance = balance
	acct.disputes[tx.ID] = deposit.Amount

	return e.checkHeld(acct, tx)
}

func (e *Engine) resolve(tx transaction.Resolve) error {
	return e.settle(tx, transaction.OperationRelease, false)
}

func (e *Engine) chargeback(tx transaction.Chargeback) error {
	return e.settle(tx, transaction.OperationChargeback, true)
}

// settle closes the active dispute referenced by tx with operation.
func (e *Engine) settle(tx transaction.Transaction, operation transaction.Operation, freeze bool) error {
	acct, err := e.liveAccount(tx)
	if err != nil {
		return err
	}

	amount, active := acct.disputes[tx.TxID()]
	if !active {
		return reject(ErrNoActiveDispute, tx)
	}

	balance, err := transaction.ApplyPosting(acct.balance, operation, amount)
	if err != nil {
		return e.postingFailed(tx, err)
	}

	acct.balance = balance
	delete(acct.disputes, tx.TxID())

	if freeze {
		acct.frozen = true
	}

	return e.checkHeld(acct, tx)
}

// liveAccount returns the account referenced by a dispute-family record.
func (e *Engine) liveAccount(tx transaction.Transaction) (*account, error) {
	acct, ok := e.accounts[tx.ClientID()]
	if !ok {
		return nil, reject(ErrUnknownClient, tx)
	}

	if acct.frozen {
		return nil, reject(ErrAccountFrozen, tx)
	}

	return acct, nil
}

func (e *Engine) checkHeld(acct *account, tx transaction.Transaction) error {
	held, disputed := acct.balance.Held, acct.disputedTotal()

	err := e.asserter.That(context.Background(), held.Equal(disputed), "held balance must equal the sum of active disputes",
		"client", tx.ClientID(), "tx", tx.TxID(), "held", held, "disputed", disputed)
	if err != nil {
		r := reject(ErrUnsupported, tx)
		r.Message = err.Error()

		return r
	}

	return nil
}

func (e *Engine) postingFailed(tx transaction.Transaction, err error) error {
	_ = e.asserter.NoError(context.Background(), err, "posting must succeed", "kind", tx.Kind(), "tx", tx.TxID())

	r := reject(ErrUnsupported, tx)
	r.Message = err.Error()

	return r
}

// Snapshot returns one ClientBalance per known client, sorted by client id.
func (e *Engine) Snapshot() []ClientBalance {
	out := make([]ClientBalance, 0, len(e.accounts))
	for client, acct := range e.accounts {
		out = append(out, acct.project(client))
	}

	slices.SortFunc(out, func(a, b ClientBalance) int {
		return int(a.Client) - int(b.Client)
	})

	return out
}

// Account returns the balance of a single client.
func (e *Engine) Account(client transaction.ClientID) (ClientBalance, bool) {
	acct, ok := e.accounts[client]
	if !ok {
		return ClientBalance{}, false
	}

	return acct.project(client), true
}

// Len returns the number of known clients.
func (e *Engine) Len() int {
	return len(e.accounts)
}
