package ledger

import (
	"github.com/SathemBite/tx-engine-example/txengine/transaction"
	"github.com/shopspring/decimal"
)

// ClientBalance is the read-only projection of one account.
type ClientBalance struct {
	Client    transaction.ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

type account struct {
	balance transaction.Balance
	frozen  bool
	// history keeps accepted deposits and withdrawals by id.
	history map[transaction.TxID]transaction.Transaction
	// disputes maps a disputed deposit id to the amount held for it.
	disputes map[transaction.TxID]decimal.Decimal
}

func newAccount() *account {
	return &account{
		history:  make(map[transaction.TxID]transaction.Transaction),
		disputes: make(map[transaction.TxID]decimal.Decimal),
	}
}

func (a *account) project(client transaction.ClientID) ClientBalance {
	return ClientBalance{
		Client:    client,
		Available: a.balance.Available,
		Held:      a.balance.Held,
		Total:     a.balance.Total(),
		Locked:    a.frozen,
	}
}

func (a *account) disputedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range a.disputes {
		total = total.Add(amount)
	}

	return total
}
