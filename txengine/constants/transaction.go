package constant

// Structured log and span attribute keys for ledger records.
const (
	// FieldRunID identifies one ingestion run.
	FieldRunID = "run_id"
	// FieldClient is the client identifier of a record.
	FieldClient = "client"
	// FieldTx is the transaction identifier of a record.
	FieldTx = "tx"
	// FieldKind is the operation tag of a record.
	FieldKind = "kind"
	// FieldCode is the rejection code of a record.
	FieldCode = "code"
	// FieldOutcome is the processing outcome of a record.
	FieldOutcome = "outcome"
)

// Processing outcomes used as the FieldOutcome metric label.
const (
	// OutcomeApplied marks a record that mutated the ledger.
	OutcomeApplied = "applied"
	// OutcomeRejected marks a record skipped by a business rule.
	OutcomeRejected = "rejected"
)
