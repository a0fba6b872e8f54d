package transaction

import (
	"github.com/shopspring/decimal"
)

// Operation represents the posting operation applied to a balance.
type Operation string

const (
	// OperationCredit increases the available balance.
	OperationCredit Operation = "CREDIT"
	// OperationDebit decreases the available balance. It never overdraws.
	OperationDebit Operation = "DEBIT"
	// OperationOnHold moves value from available to held.
	// Available may become negative.
	OperationOnHold Operation = "ON_HOLD"
	// OperationRelease moves value from held back to available.
	OperationRelease Operation = "RELEASE"
	// OperationChargeback removes value from held without touching available.
	OperationChargeback Operation = "CHARGEBACK"
)

// Balance is the funds state of a single client.
type Balance struct {
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
}

// Total returns available plus held.
func (b Balance) Total() decimal.Decimal {
	return b.Available.Add(b.Held)
}

// ApplyPosting applies operation with amount to balance and returns the new
// state. The input balance is never modified; on error the zero Balance is
// returned and the caller keeps its previous state.
func ApplyPosting(balance Balance, operation Operation, amount decimal.Decimal) (Balance, error) {
	if amount.IsNegative() {
		return Balance{}, NewDomainError(ErrorInvalidAmount, "posting.amount", "posting amount must not be negative")
	}

	result := balance

	switch operation {
	case OperationCredit:
		result.Available = result.Available.Add(amount)
	case OperationDebit:
		if result.Available.LessThan(amount) {
			return Balance{}, NewDomainError(ErrorInsufficientFunds, "posting.amount", "operation would result in negative available balance")
		}

		result.Available = result.Available.Sub(amount)
	case OperationOnHold:
		result.Available = result.Available.Sub(amount)
		result.Held = result.Held.Add(amount)
	case OperationRelease:
		result.Held = result.Held.Sub(amount)
		result.Available = result.Available.Add(amount)
	case OperationChargeback:
		result.Held = result.Held.Sub(amount)
	default:
		return Balance{}, NewDomainError(ErrorUnsupportedOperation, "posting.operation", "unsupported operation")
	}

	return result, nil
}
