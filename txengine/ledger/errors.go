package ledger

import (
	"errors"
	"fmt"

	"github.com/SathemBite/tx-engine-example/txengine/transaction"
)

// Severity tells the caller whether processing may continue after a rejection.
type Severity uint8

const (
	// SeverityNonFatal marks a business-rule rejection. The record is skipped.
	SeverityNonFatal Severity = iota
	// SeverityFatal marks a rejection that must abort the run.
	SeverityFatal
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	if s == SeverityFatal {
		return "fatal"
	}

	return "non_fatal"
}

// Code identifies the rule that rejected a transaction.
type Code string

const (
	CodeDuplicateTransaction Code = "0101"
	CodeAccountFrozen        Code = "0102"
	CodeInsufficientFunds    Code = "0103"
	CodeUnknownClient        Code = "0104"
	CodeAlreadyDisputed      Code = "0105"
	CodeDisputeNotFound      Code = "0106"
	CodeNotADeposit          Code = "0107"
	CodeNoActiveDispute      Code = "0108"
	CodeUnsupported          Code = "0109"
	CodeInvalidAmount        Code = "0110"
)

// Rejection is returned by Engine.Apply when a transaction is not applied.
type Rejection struct {
	Severity Severity
	Code     Code
	Kind     transaction.Kind
	Client   transaction.ClientID
	TxID     transaction.TxID
	Message  string
}

// Error returns the formatted rejection.
func (r *Rejection) Error() string {
	if r.Kind == "" {
		return fmt.Sprintf("%s: %s", r.Code, r.Message)
	}

	return fmt.Sprintf("%s: %s (%s client=%s tx=%s)", r.Code, r.Message, r.Kind, r.Client, r.TxID)
}

// Is matches any *Rejection carrying the same code, so the sentinels below
// work with errors.Is.
func (r *Rejection) Is(target error) bool {
	var other *Rejection
	if !errors.As(target, &other) {
		return false
	}

	return other.Code == r.Code
}

// Sentinel rejections for errors.Is.
var (
	ErrDuplicateTransaction = &Rejection{Code: CodeDuplicateTransaction, Message: "duplicate transaction id"}
	ErrAccountFrozen        = &Rejection{Code: CodeAccountFrozen, Message: "account frozen"}
	ErrInsufficientFunds    = &Rejection{Code: CodeInsufficientFunds, Message: "insufficient funds"}
	ErrUnknownClient        = &Rejection{Code: CodeUnknownClient, Message: "unknown client"}
	ErrAlreadyDisputed      = &Rejection{Code: CodeAlreadyDisputed, Message: "transaction already disputed"}
	ErrDisputeNotFound      = &Rejection{Code: CodeDisputeNotFound, Message: "disputed transaction not found"}
	ErrNotADeposit          = &Rejection{Code: CodeNotADeposit, Message: "disputed transaction is not a deposit"}
	ErrNoActiveDispute      = &Rejection{Code: CodeNoActiveDispute, Message: "no active dispute"}
	ErrUnsupported          = &Rejection{Severity: SeverityFatal, Code: CodeUnsupported, Message: "unsupported transaction"}
	ErrInvalidAmount        = &Rejection{Code: CodeInvalidAmount, Message: "negative amount"}
)

// IsFatal reports whether err must abort processing. Any error that is not a
// non-fatal *Rejection is fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var rejection *Rejection
	if !errors.As(err, &rejection) {
		return true
	}

	return rejection.Severity == SeverityFatal
}

func reject(sentinel *Rejection, tx transaction.Transaction) *Rejection {
	r := *sentinel
	if tx != nil {
		r.Kind = tx.Kind()
		r.Client = tx.ClientID()
		r.TxID = tx.TxID()
	}

	return &r
}
