package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestChangeOperationString(t *testing.T) {
	cases := map[ChangeOperation]string{
		OperationInsert:     "insert",
		OperationUpdate:     "update",
		OperationDelete:     "delete",
		ChangeOperation(42): "unknown",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("ChangeOperation(%d).String() = %q, want %q", op, got, want)
		}
	}
}

func TestNewTransactionRecord(t *testing.T) {
	record := NewTransactionRecord(7)
	if record.ID != 7 {
		t.Errorf("unexpected id %d", record.ID)
	}
	if record.IssuedAt.IsZero() {
		t.Error("issued_at not stamped")
	}
	if record.CorrelationID == uuid.Nil {
		t.Error("correlation id not generated")
	}
	if record.RemoteAddr != nil {
		t.Error("remote addr must default to unset")
	}
}
