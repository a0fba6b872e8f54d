package transaction

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ClientID identifies a client account.
type ClientID uint16

// String returns the decimal representation of the client id.
func (c ClientID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// TxID identifies a deposit or withdrawal. Dispute, Resolve and Chargeback
// reference the TxID of an earlier deposit.
type TxID uint32

// String returns the decimal representation of the transaction id.
func (t TxID) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// Kind is the operation tag of a transaction record.
type Kind string

const (
	// KindDeposit credits the available balance.
	KindDeposit Kind = "deposit"
	// KindWithdrawal debits the available balance.
	KindWithdrawal Kind = "withdrawal"
	// KindDispute holds the amount of a previous deposit.
	KindDispute Kind = "dispute"
	// KindResolve releases a held dispute back to available.
	KindResolve Kind = "resolve"
	// KindChargeback removes held funds and freezes the account.
	KindChargeback Kind = "chargeback"
)

// Kinds lists every supported Kind in input order of the lifecycle.
var Kinds = []Kind{KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback}

// String returns the lowercase tag.
func (k Kind) String() string {
	return string(k)
}

// CarriesAmount reports whether records of this kind must carry an amount.
func (k Kind) CarriesAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// ParseKind maps an operation tag to a Kind. Matching is case-insensitive and
// ignores surrounding whitespace.
func ParseKind(tag string) (Kind, error) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(tag)))

	for _, kind := range Kinds {
		if normalized == kind {
			return kind, nil
		}
	}

	return "", NewDomainError(ErrorUnknownKind, "type", fmt.Sprintf("unknown transaction type %q", tag))
}

// Transaction is a single ledger record. The set of implementations is closed:
// Deposit, Withdrawal, Dispute, Resolve and Chargeback.
type Transaction interface {
	Kind() Kind
	ClientID() ClientID
	TxID() TxID

	sealed()
}

// Deposit credits Amount to the client's available balance.
type Deposit struct {
	Client ClientID
	ID     TxID
	Amount decimal.Decimal
}

// Withdrawal debits Amount from the client's available balance.
type Withdrawal struct {
	Client ClientID
	ID     TxID
	Amount decimal.Decimal
}

// Dispute claims that deposit ID was erroneous and holds its amount.
type Dispute struct {
	Client ClientID
	ID     TxID
}

// Resolve closes the active dispute on ID and releases the held funds.
type Resolve struct {
	Client ClientID
	ID     TxID
}

// Chargeback closes the active dispute on ID by reversing it.
// The client's account is frozen afterwards.
type Chargeback struct {
	Client ClientID
	ID     TxID
}

// Kind implements Transaction.
func (Deposit) Kind() Kind { return KindDeposit }

// ClientID implements Transaction.
func (d Deposit) ClientID() ClientID { return d.Client }

// TxID implements Transaction.
func (d Deposit) TxID() TxID { return d.ID }

func (Deposit) sealed() {}

// Kind implements Transaction.
func (Withdrawal) Kind() Kind { return KindWithdrawal }

// ClientID implements Transaction.
func (w Withdrawal) ClientID() ClientID { return w.Client }

// TxID implements Transaction.
func (w Withdrawal) TxID() TxID { return w.ID }

func (Withdrawal) sealed() {}

// Kind implements Transaction.
func (Dispute) Kind() Kind { return KindDispute }

// ClientID implements Transaction.
func (d Dispute) ClientID() ClientID { return d.Client }

// TxID implements Transaction.
func (d Dispute) TxID() TxID { return d.ID }

func (Dispute) sealed() {}

// Kind implements Transaction.
func (Resolve) Kind() Kind { return KindResolve }

// ClientID implements Transaction.
func (r Resolve) ClientID() ClientID { return r.Client }

// TxID implements Transaction.
func (r Resolve) TxID() TxID { return r.ID }

func (Resolve) sealed() {}

// Kind implements Transaction.
func (Chargeback) Kind() Kind { return KindChargeback }

// ClientID implements Transaction.
func (c Chargeback) ClientID() ClientID { return c.Client }

// TxID implements Transaction.
func (c Chargeback) TxID() TxID { return c.ID }

func (Chargeback) sealed() {}

// New builds the variant for kind. Amount is required for deposits and
// withdrawals, where it must not be negative, and must be nil for the dispute
// family. A zero amount is valid.
func New(kind Kind, client ClientID, id TxID, amount *decimal.Decimal) (Transaction, error) {
	if kind.CarriesAmount() {
		if amount == nil {
			return nil, NewDomainError(ErrorMissingAmount, "amount", fmt.Sprintf("%s requires an amount", kind))
		}

		if amount.IsNegative() {
			return nil, NewDomainError(ErrorInvalidAmount, "amount", "amount must not be negative")
		}
	} else if amount != nil {
		return nil, NewDomainError(ErrorUnexpectedAmount, "amount", fmt.Sprintf("%s must not carry an amount", kind))
	}

	switch kind {
	case KindDeposit:
		return Deposit{Client: client, ID: id, Amount: *amount}, nil
	case KindWithdrawal:
		return Withdrawal{Client: client, ID: id, Amount: *amount}, nil
	case KindDispute:
		return Dispute{Client: client, ID: id}, nil
	case KindResolve:
		return Resolve{Client: client, ID: id}, nil
	case KindChargeback:
		return Chargeback{Client: client, ID: id}, nil
	default:
		return nil, NewDomainError(ErrorUnknownKind, "type", fmt.Sprintf("unknown transaction type %q", kind))
	}
}
