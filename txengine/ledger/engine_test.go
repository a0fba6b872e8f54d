package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"

	txassert "github.com/SathemBite/tx-engine-example/txengine/assert"
	"github.com/SathemBite/tx-engine-example/txengine/log"
	"github.com/SathemBite/tx-engine-example/txengine/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(value)
	require.NoError(t, err)

	return d
}

func deposit(t *testing.T, client transaction.ClientID, id transaction.TxID, amount string) transaction.Deposit {
	t.Helper()

	return transaction.Deposit{Client: client, ID: id, Amount: dec(t, amount)}
}

func withdrawal(t *testing.T, client transaction.ClientID, id transaction.TxID, amount string) transaction.Withdrawal {
	t.Helper()

	return transaction.Withdrawal{Client: client, ID: id, Amount: dec(t, amount)}
}

func requireBalance(t *testing.T, e *Engine, client transaction.ClientID, available, held string, locked bool) {
	t.Helper()

	got, ok := e.Account(client)
	require.True(t, ok, "client %d not found", client)

	assert.True(t, dec(t, available).Equal(got.Available), "available=%s", got.Available)
	assert.True(t, dec(t, held).Equal(got.Held), "held=%s", got.Held)
	assert.True(t, got.Total.Equal(got.Available.Add(got.Held)), "total=%s", got.Total)
	assert.Equal(t, locked, got.Locked)
}

func requireRejected(t *testing.T, err error, sentinel *Rejection) {
	t.Helper()

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)

	var rejection *Rejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, sentinel.Severity, rejection.Severity)
}

// ---------------------------------------------------------------------------
// Deposit / Withdrawal
// ---------------------------------------------------------------------------

func TestDepositToFreshClient(t *testing.T) {
	t.Parallel()

	e := New()
	require.NoError(t, e.Apply(deposit(t, 1, 1, "2.5")))

	requireBalance(t, e, 1, "2.5", "0", false)
	assert.Equal(t, 1, e.Len())
}

func TestWithdrawal(t *testing.T) {
	t.Parallel()

	e := New()
	require.NoError(t, e.Apply(deposit(t, 1, 1, "5.0")))
	require.NoError(t, e.Apply(withdrawal(t, 1, 2, "1.5")))
	requireBalance(t, e, 1, "3.5", "0", false)

	require.NoError(t, e.Apply(withdrawal(t, 1, 3, "3.5")))
	requireBalance(t, e, 1, "0", "0", false)
}

func TestOverWithdrawalIsRejected(t *testing.T) {
	t.Parallel()

	e := New()
	require.NoError(t, e.Apply(deposit(t, 1, 1, "1.0")))

	requireRejected(t, e.Apply(withdrawal(t, 1, 2, "1.0001")), ErrInsufficientFunds)
	requireBalance(t, e, 1, "1.0", "0", false)

	// The rejected id was never accepted and may be reused.
	require.NoError(t, e.Apply(withdrawal(t, 1, 2, "0.5")))
	requireBalance(t, e, 1, "0.5", "0", false)
}

func TestWithdrawalFromUnknownClientCreatesEmptyAccount(t *testing.T) {
	t.Parallel()

	e := New()

	requireRejected(t, e.Apply(withdrawal(t, 9, 1, "1")), ErrInsufficientFunds)
	requireBalance(t, e, 9, "0", "0", false)
}

func TestTransactionIDsAreGloballyUnique(t *testing.T) {
	t.Parallel()

	e := New()
	require.NoError(t, e.Apply(deposit(t, 1, 1, "2.0")))

	requireRejected(t, e.Apply(deposit(t, 2, 1, "3.0")), ErrDuplicateTransaction)
	requireRejected(t, e.Apply(withdrawal(t, 1, 1, "1.0")), ErrDuplicateTransaction)

	_, known := e.Account(2)
	assert.False(t, known)
	requireBalance(t, e, 1, "2.0", "0", false)
}

func TestNegativeAmountIsRejected(t *testing.T) {
	t.Parallel()

	e := New()

	err := e.Apply(deposit(t, 1, 1, "-1"))
	requireRejected(t, err, ErrInvalidAmount)
	assert.False(t, IsFatal(err))

	err = e.Apply(withdrawal(t, 2, 2, "-0.5"))
	requireRejected(t, err, ErrInvalidAmount)
	assert.False(t, IsFatal(err))

	assert.Equal(t, 0, e.Len())

	// Neither id was consumed.
	require.NoError(t, e.Apply(deposit(t, 1, 1, "1")))
}

func TestZeroAmounts(t *testing.T) {
	t.Parallel()

	e := New()
	require.NoError(t, e.Apply(deposit(t, 1, 1, "5.0")))
	require.NoError(t, e.Apply(deposit(t, 1, 2, "0")))
	require.NoError(t, e.Apply(withdrawal(t, 1, 3, "0.0")))
	requireBalance(t, e, 1, "5.0", "0", false)

	require.NoError(t, e.Apply(transaction.Dispute{Client: 1, ID: 2}))
	requireBalance(t, e, 1, "5.0", "0", false)

	requireRejected(t, e.Apply(deposit(t, 1, 2, "1")), ErrDuplicateTransaction)
}

// ---------------------------------------------------------------------------
// Dispute lifecycle
// ---------------------------------------------------------------------------

func TestDisputeResolve(t *testing.T) {
	t.Parallel()

	e := New()
	require.NoError(t, e.Apply(deposit(t, 1, 1, "5.0")))
	require.NoError(t, e.Apply(withdrawal(t, 1, 2, "1.5")))

	require.NoError(t, e.Apply(transaction.Dispute{Client: 1, ID: 1}))
	requireBalance(t, e, 1, "-1.5", "5.0", false)

	require.NoError(t, e.Apply(transaction.Resolve{Client: 1, ID: 1}))
	requireBalance(t, e, 1, "3.5", "0", false)
}

func TestDisputeChargeback(t *testing.T) {
	t.Parallel()

	e := New()
	require.NoError(t, e.Apply(deposit(t, 1, 1, "2.0")))
	require.NoError(t, e.Apply(deposit(t, 1, 2, "1.0")))

	require.NoError(t, e.Apply(transaction.Dispute{Client: 1, ID: 1}))
	require.NoError(t, e.Apply(transaction.Chargeback{Client: 1, ID: 1}))
	requireBalance(t, e, 1, "1.0", "0", true)
}

func TestResolvedDisputeMayBeDisputedAgain(t *testing.T) {
	t.Parallel()

	e := New()
	require.NoError(t, e.Apply(deposit(t, 1, 1, "4")))
	require.NoError(t, e.Apply(transaction.Dispute{Client: 1, ID: 1}))
	require.NoError(t, e.Apply(transaction.Resolve{Client: 1, ID: 1}))
	require.NoError(t, e.Apply(transaction.Dispute{Client: 1, ID: 1}))

	requireBalance(t, e, 1, "0", "4", false)
}

func TestDisputeRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tx       transaction.Transaction
		sentinel *Rejection
	}{
		{name: "unknown client", tx: transaction.Dispute{Client: 77, ID: 1}, sentinel: ErrUnknownClient},
		{name: "missing transaction", tx: transaction.Dispute{Client: 1, ID: 99}, sentinel: ErrDisputeNotFound},
		{name: "transaction of another client", tx: transaction.Dispute{Client: 1, ID: 3}, sentinel: ErrDisputeNotFound},
		{name: "withdrawal", tx: transaction.Dispute{Client: 1, ID: 2}, sentinel: ErrNotADeposit},
		{name: "already disputed", tx: transaction.Dispute{Client: 1, ID: 1}, sentinel: ErrAlreadyDisputed},
		{name: "resolve without dispute", tx: transaction.Resolve{Client: 1, ID: 4}, sentinel: ErrNoActiveDispute},
		{name: "chargeback without dispute", tx: transaction.Chargeback{Client: 1, ID: 4}, sentinel: ErrNoActiveDispute},
		{name: "resolve unknown client", tx: transaction.Resolve{Client: 77, ID: 1}, sentinel: ErrUnknownClient},
		{name: "chargeback unknown client", tx: transaction.Chargeback{Client: 77, ID: 1}, sentinel: ErrUnknownClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := New()
			require.NoError(t, e.Apply(deposit(t, 1, 1, "10")))
			require.NoError(t, e.Apply(withdrawal(t, 1, 2, "1")))
			require.NoError(t, e.Apply(deposit(t, 2, 3, "7")))
			require.NoError(t, e.Apply(deposit(t, 1, 4, "2")))
			require.NoError(t, e.Apply(transaction.Dispute{Client: 1, ID: 1}))

			before := e.Snapshot()

			err := e.Apply(tt.tx)
			requireRejected(t, err, tt.sentinel)
			assert.False(t, IsFatal(err))
			assert.Equal(t, before, e.Snapshot())
		})
	}
}

func TestFrozenAccountRejectsEverything(t *testing.T) {
	t.Parallel()

	e := New()
	require.NoError(t, e.Apply(deposit(t, 1, 1, "3")))
	require.NoError(t, e.Apply(deposit(t, 1, 2, "4")))
	require.NoError(t, e.Apply(transaction.Dispute{Client: 1, ID: 2}))
	require.NoError(t, e.Apply(transaction.Dispute{Client: 1, ID: 1}))
	require.NoError(t, e.Apply(transaction.Chargeback{Client: 1, ID: 1}))

	before := e.Snapshot()

	for _, tx := range []transaction.Transaction{
		deposit(t, 1, 10, "1"),
		withdrawal(t, 1, 11, "1"),
		transaction.Dispute{Client: 1, ID: 1},
		transaction.Resolve{Client: 1, ID: 2},
		transaction.Chargeback{Client: 1, ID: 2},
	} {
		requireRejected(t, e.Apply(tx), ErrAccountFrozen)
	}

	assert.Equal(t, before, e.Snapshot())
	requireBalance(t, e, 1, "0", "4", true)
}

func TestFrozenRejectionDoesNotConsumeID(t *testing.T) {
	t.Parallel()

	e := New()
	require.NoError(t, e.Apply(deposit(t, 1, 1, "1")))
	require.NoError(t, e.Apply(transaction.Dispute{Client: 1, ID: 1}))
	require.NoError(t, e.Apply(transaction.Chargeback{Client: 1, ID: 1}))

	requireRejected(t, e.Apply(deposit(t, 1, 2, "1")), ErrAccountFrozen)
	require.NoError(t, e.Apply(deposit(t, 2, 2, "1")))
}

// ---------------------------------------------------------------------------
// Unsupported variants
// ---------------------------------------------------------------------------

func TestUnsupportedVariantsAreFatal(t *testing.T) {
	t.Parallel()

	e := New()

	var typedNil *transaction.Deposit

	for _, tx := range []transaction.Transaction{
		nil,
		typedNil,
		&transaction.Deposit{Client: 1, ID: 1, Amount: decimal.NewFromInt(1)},
	} {
		err := e.Apply(tx)
		requireRejected(t, err, ErrUnsupported)
		assert.True(t, IsFatal(err))
	}

	assert.Equal(t, 0, e.Len())
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Log(_ context.Context, _ log.Level, msg string, _ ...log.Field) {
	l.messages = append(l.messages, msg)
}

func TestNilTransactionFailsAssertion(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	e := New(WithAsserter(txassert.New(logger, "ledger", "apply")))

	err := e.Apply(nil)
	requireRejected(t, err, ErrUnsupported)

	require.Len(t, logger.messages, 1)
	assert.True(t, strings.HasPrefix(logger.messages[0], "ASSERTION FAILED: transaction must not be nil"))
}

// ---------------------------------------------------------------------------
// Snapshot
// ---------------------------------------------------------------------------

func TestSnapshotIsSortedByClient(t *testing.T) {
	t.Parallel()

	e := New()
	for i, client := range []transaction.ClientID{300, 2, 65535, 17} {
		require.NoError(t, e.Apply(deposit(t, client, transaction.TxID(i+1), "1")))
	}

	var clients []transaction.ClientID
	for _, b := range e.Snapshot() {
		clients = append(clients, b.Client)
	}

	assert.Equal(t, []transaction.ClientID{2, 17, 300, 65535}, clients)
}

func TestSnapshotOfEmptyEngine(t *testing.T) {
	t.Parallel()

	assert.Empty(t, New().Snapshot())
}

func TestTotalAlwaysEqualsAvailablePlusHeld(t *testing.T) {
	t.Parallel()

	e := New()
	script := []transaction.Transaction{
		deposit(t, 1, 1, "10.1234"),
		deposit(t, 2, 2, "3"),
		withdrawal(t, 1, 3, "2.5"),
		transaction.Dispute{Client: 1, ID: 1},
		withdrawal(t, 1, 4, "1"),
		deposit(t, 1, 5, "0.0001"),
		transaction.Dispute{Client: 2, ID: 2},
		transaction.Resolve{Client: 1, ID: 1},
		transaction.Dispute{Client: 1, ID: 5},
		transaction.Chargeback{Client: 2, ID: 2},
		transaction.Resolve{Client: 2, ID: 2},
	}

	for _, tx := range script {
		_ = e.Apply(tx)

		for _, b := range e.Snapshot() {
			require.True(t, b.Total.Equal(b.Available.Add(b.Held)), "client %d", b.Client)
		}
	}
}

func TestRejectionFormatting(t *testing.T) {
	t.Parallel()

	err := reject(ErrNoActiveDispute, transaction.Resolve{Client: 3, ID: 8})
	assert.Equal(t, "0108: no active dispute (resolve client=3 tx=8)", err.Error())
	assert.Equal(t, "0109: unsupported transaction", ErrUnsupported.Error())
	assert.Equal(t, "fatal", SeverityFatal.String())
	assert.Equal(t, "non_fatal", SeverityNonFatal.String())
}

func TestIsFatal(t *testing.T) {
	t.Parallel()

	assert.False(t, IsFatal(nil))
	assert.False(t, IsFatal(ErrDuplicateTransaction))
	assert.True(t, IsFatal(ErrUnsupported))
	assert.True(t, IsFatal(errors.New("read failed")))
}
