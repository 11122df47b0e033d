package registry

import (
	"testing"

	"github.com/rpattn/shadowschema/internal/domain"
)

func newEntity(name string) *domain.EntityType {
	return &domain.EntityType{
		Name: name,
		Table: &domain.TableDefinition{
			Name: name,
			Columns: []domain.ColumnDefinition{
				{Name: "id", Type: domain.ColumnTypeBigInt, PrimaryKey: true},
			},
		},
	}
}

func TestRegisterDeduplicates(t *testing.T) {
	reg := New(DefaultOptions())
	article := newEntity("Article")

	reg.Register(article)
	reg.Register(article)
	if len(reg.Pending()) != 1 {
		t.Fatalf("expected one pending entity, got %d", len(reg.Pending()))
	}
}

func TestRegisterSkipsDerivedEntities(t *testing.T) {
	reg := New(DefaultOptions())
	article := newEntity("Article")
	reg.SetShadow(article, newEntity("ArticleVersion"))

	reg.Register(article)
	if reg.HasPending() {
		t.Fatalf("expected derived entity not to re-enter the pending set")
	}
}

func TestRegisterNoopWhenVersioningDisabled(t *testing.T) {
	reg := New(Options{Versioning: false})
	reg.Register(newEntity("Article"))
	if reg.HasPending() {
		t.Fatalf("expected no pending entities with versioning disabled")
	}
}

func TestDrainPendingClears(t *testing.T) {
	reg := New(DefaultOptions())
	article := newEntity("Article")
	user := newEntity("User")
	reg.Register(article)
	reg.Register(user)

	drained := reg.DrainPending()
	if len(drained) != 2 {
		t.Fatalf("expected 2 drained entities, got %d", len(drained))
	}
	if drained[0] != article || drained[1] != user {
		t.Fatalf("expected drain to preserve registration order")
	}
	if reg.HasPending() {
		t.Fatalf("expected pending set to be empty after drain")
	}
}

func TestOptionOverrides(t *testing.T) {
	reg := New(DefaultOptions())

	off := false
	overridden := newEntity("Comment")
	overridden.Options = &domain.TypeOptions{Versioning: &off}
	plain := newEntity("Article")

	if reg.Versioning(overridden) {
		t.Errorf("expected per-type override to disable versioning")
	}
	if !reg.Versioning(plain) {
		t.Errorf("expected global default to enable versioning")
	}
	if !reg.CreateTables(overridden) {
		t.Errorf("expected unset override to fall back to the global default")
	}
}

func TestTransactionTypeSetOnce(t *testing.T) {
	reg := New(DefaultOptions())
	first := newEntity("Transaction")
	second := newEntity("Transaction2")

	reg.SetTransactionType(first)
	reg.SetTransactionType(second)
	if reg.TransactionType() != first {
		t.Fatalf("expected the transaction type to be immutable once set")
	}
}

func TestShadowEntriesFollowRegistrationOrder(t *testing.T) {
	reg := New(DefaultOptions())
	article := newEntity("Article")
	user := newEntity("User")
	reg.Register(user)
	reg.Register(article)

	reg.SetShadow(article, newEntity("ArticleVersion"))
	reg.SetShadow(user, newEntity("UserVersion"))

	entries := reg.ShadowEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 shadow entries, got %d", len(entries))
	}
	if entries[0].Original != user || entries[1].Original != article {
		t.Fatalf("expected entries in registration order")
	}
}

func TestReset(t *testing.T) {
	reg := New(DefaultOptions())
	article := newEntity("Article")
	reg.Register(article)
	reg.SetTable(article, article.Table)
	reg.SetShadow(article, newEntity("ArticleVersion"))
	reg.SetTransactionType(newEntity("Transaction"))

	reg.Reset()
	if reg.HasPending() {
		t.Errorf("expected empty pending set after reset")
	}
	if _, ok := reg.Table(article); ok {
		t.Errorf("expected table map to be cleared")
	}
	if _, ok := reg.Shadow(article); ok {
		t.Errorf("expected shadow map to be cleared")
	}
	if reg.TransactionType() != nil {
		t.Errorf("expected transaction type to be cleared")
	}
}
