package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SathemBite/tx-engine-example/txengine/transaction"
	"github.com/shopspring/decimal"
)

// InputHeader is the required header row of a transaction file.
var InputHeader = []string{"type", "client", "tx", "amount"}

// ErrInvalidHeader indicates the first row is not InputHeader.
var ErrInvalidHeader = errors.New("invalid csv header")

// ParseError reports a malformed record.
type ParseError struct {
	Line  int
	Field string
	Err   error
}

// Error returns the formatted parse error.
func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}

	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Reader decodes transactions one record at a time.
type Reader struct {
	csv *csv.Reader
}

// NewReader reads and validates the header row of r.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrInvalidHeader)
		}

		return nil, fmt.Errorf("read header: %w", err)
	}

	if !matchesHeader(header) {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrInvalidHeader, strings.Join(header, ","), strings.Join(InputHeader, ","))
	}

	return &Reader{csv: cr}, nil
}

func matchesHeader(header []string) bool {
	if len(header) != len(InputHeader) {
		return false
	}

	for i, col := range header {
		if strings.TrimSpace(col) != InputHeader[i] {
			return false
		}
	}

	return true
}

// Next returns the next transaction, or io.EOF when the input is exhausted.
// Malformed records yield a *ParseError.
func (r *Reader) Next() (transaction.Transaction, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			return nil, &ParseError{Line: csvErr.Line, Err: csvErr.Err}
		}

		return nil, fmt.Errorf("read record: %w", err)
	}

	line, _ := r.csv.FieldPos(0)

	return parseRecord(line, record)
}

func parseRecord(line int, record []string) (transaction.Transaction, error) {
	if len(record) < 3 || len(record) > 4 {
		return nil, &ParseError{Line: line, Err: fmt.Errorf("expected 3 or 4 fields, got %d", len(record))}
	}

	kind, err := transaction.ParseKind(record[0])
	if err != nil {
		return nil, &ParseError{Line: line, Field: "type", Err: err}
	}

	client, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 16)
	if err != nil {
		return nil, &ParseError{Line: line, Field: "client", Err: err}
	}

	id, err := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 32)
	if err != nil {
		return nil, &ParseError{Line: line, Field: "tx", Err: err}
	}

	var amount *decimal.Decimal

	if len(record) == 4 {
		if raw := strings.TrimSpace(record[3]); raw != "" {
			parsed, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, &ParseError{Line: line, Field: "amount", Err: err}
			}

			amount = &parsed
		}
	}

	tx, err := transaction.New(kind, transaction.ClientID(client), transaction.TxID(id), amount)
	if err != nil {
		field := ""

		var domainErr transaction.DomainError
		if errors.As(err, &domainErr) {
			field = domainErr.Field
		}

		return nil, &ParseError{Line: line, Field: field, Err: err}
	}

	return tx, nil
}
