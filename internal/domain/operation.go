package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChangeOperation marks the kind of change a snapshot row records.
type ChangeOperation int16

const (
	OperationInsert ChangeOperation = 0
	OperationUpdate ChangeOperation = 1
	OperationDelete ChangeOperation = 2
)

// String returns a human-readable name for the operation marker.
func (op ChangeOperation) String() string {
	switch op {
	case OperationInsert:
		return "insert"
	case OperationUpdate:
		return "update"
	case OperationDelete:
		return "delete"
	}
	return "unknown"
}

// TransactionRecord is the row shape backing the transaction entity: one
// record groups every snapshot written in a single logical unit of work.
type TransactionRecord struct {
	ID            int64     `json:"id"`
	IssuedAt      time.Time `json:"issued_at"`
	RemoteAddr    *string   `json:"remote_addr,omitempty"`
	CorrelationID uuid.UUID `json:"correlation_id"`
}

// NewTransactionRecord creates a transaction record stamped with the current
// time and a fresh correlation identifier.
func NewTransactionRecord(id int64) TransactionRecord {
	return TransactionRecord{
		ID:            id,
		IssuedAt:      time.Now(),
		CorrelationID: uuid.New(),
	}
}
