package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/SathemBite/tx-engine-example/txengine/ledger"
)

// OutputHeader is the header row of a snapshot.
var OutputHeader = []string{"client", "available", "held", "total", "locked"}

// AmountPlaces is the number of fractional digits written for every amount.
const AmountPlaces = 4

// Writer encodes balance snapshots.
type Writer struct {
	csv *csv.Writer
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteSnapshot writes the header followed by one row per balance, in the
// order given, and flushes.
func (w *Writer) WriteSnapshot(balances []ledger.ClientBalance) error {
	if err := w.csv.Write(OutputHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(OutputHeader))

	for _, b := range balances {
		row[0] = b.Client.String()
		row[1] = b.Available.StringFixed(AmountPlaces)
		row[2] = b.Held.StringFixed(AmountPlaces)
		row[3] = b.Total.StringFixed(AmountPlaces)
		row[4] = strconv.FormatBool(b.Locked)

		if err := w.csv.Write(row); err != nil {
			return fmt.Errorf("write client %s: %w", b.Client, err)
		}
	}

	w.csv.Flush()

	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}

	return nil
}
