package csvio

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/SathemBite/tx-engine-example/txengine/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, input string) ([]transaction.Transaction, error) {
	t.Helper()

	r, err := NewReader(strings.NewReader(input))
	if err != nil {
		return nil, err
	}

	var out []transaction.Transaction

	for {
		tx, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}

		if err != nil {
			return out, err
		}

		out = append(out, tx)
	}
}

func TestReaderParsesAllKinds(t *testing.T) {
	t.Parallel()

	input := "type, client, tx, amount\n" +
		"deposit, 1, 1, 1.0\n" +
		"Withdrawal,2,2,0.5000\n" +
		"  DISPUTE , 1 , 1 ,\n" +
		"resolve,1,1\n" +
		"\n" +
		"chargeback,65535,4294967295,\n"

	got, err := readAll(t, input)
	require.NoError(t, err)

	assert.Equal(t, []transaction.Transaction{
		transaction.Deposit{Client: 1, ID: 1, Amount: decimal.RequireFromString("1.0")},
		transaction.Withdrawal{Client: 2, ID: 2, Amount: decimal.RequireFromString("0.5000")},
		transaction.Dispute{Client: 1, ID: 1},
		transaction.Resolve{Client: 1, ID: 1},
		transaction.Chargeback{Client: 65535, ID: 4294967295},
	}, got)
}

func TestReaderAcceptsZeroAmounts(t *testing.T) {
	t.Parallel()

	got, err := readAll(t, "type,client,tx,amount\ndeposit,1,2,0\nwithdrawal,1,3,0.0\n")
	require.NoError(t, err)

	assert.Equal(t, []transaction.Transaction{
		transaction.Deposit{Client: 1, ID: 2, Amount: decimal.RequireFromString("0")},
		transaction.Withdrawal{Client: 1, ID: 3, Amount: decimal.RequireFromString("0.0")},
	}, got)
}

func TestReaderRejectsHeader(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"",
		"client,type,tx,amount\n",
		"type,client,tx\n",
		"deposit,1,1,1.0\n",
	} {
		_, err := NewReader(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrInvalidHeader, "input %q", input)
	}
}

func TestReaderParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		row   string
		field string
	}{
		{name: "unknown type", row: "transfer,1,1,1.0", field: "type"},
		{name: "client overflow", row: "deposit,65536,1,1.0", field: "client"},
		{name: "negative client", row: "deposit,-1,1,1.0", field: "client"},
		{name: "tx overflow", row: "deposit,1,4294967296,1.0", field: "tx"},
		{name: "bad amount", row: "deposit,1,1,abc", field: "amount"},
		{name: "missing amount", row: "deposit,1,1,", field: "amount"},
		{name: "negative amount", row: "deposit,1,1,-2.0", field: "amount"},
		{name: "dispute with amount", row: "dispute,1,1,1.0", field: "amount"},
		{name: "too few fields", row: "deposit,1", field: ""},
		{name: "too many fields", row: "deposit,1,1,1.0,extra", field: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := readAll(t, "type,client,tx,amount\ndeposit,9,9,1\n"+tt.row+"\n")

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "err=%v", err)
			assert.Equal(t, 3, parseErr.Line)
			assert.Equal(t, tt.field, parseErr.Field)
			assert.Len(t, got, 1)
		})
	}
}

func TestParseErrorWrapsDomainError(t *testing.T) {
	t.Parallel()

	_, err := readAll(t, "type,client,tx,amount\nresolve,1,1,3\n")

	var domainErr transaction.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, transaction.ErrorUnexpectedAmount, domainErr.Code)
	assert.Equal(t, "line 2: amount: 1004: resolve must not carry an amount (amount)", err.Error())
}
