package builder

import (
	"fmt"

	"github.com/rpattn/shadowschema/internal/domain"
	"github.com/rpattn/shadowschema/internal/registry"
)

// TransactionTableName is the physical table backing the shared transaction
// entity. It lives in the same schema scope as the declarative root of the
// first versioned entity.
const TransactionTableName = "transaction"

// TransactionBuilder constructs the single transaction entity type shared by
// every shadow entity. It runs at most once per registry: later invocations
// are no-ops.
type TransactionBuilder struct {
	registry *registry.Registry
}

// NewTransactionBuilder creates a transaction builder over the registry.
func NewTransactionBuilder(reg *registry.Registry) *TransactionBuilder {
	return &TransactionBuilder{registry: reg}
}

// Build synthesizes the transaction entity from the declarative root of the
// first pending entity. The returned bool reports whether the entity was
// created by this call.
func (b *TransactionBuilder) Build() (*domain.EntityType, bool, error) {
	if existing := b.registry.TransactionType(); existing != nil {
		return existing, false, nil
	}
	pending := b.registry.Pending()
	if len(pending) == 0 {
		return nil, false, nil
	}

	scope, err := declarativeScope(pending)
	if err != nil {
		return nil, false, err
	}

	table := &domain.TableDefinition{
		Name:   TransactionTableName,
		Schema: scope.Schema,
		Columns: []domain.ColumnDefinition{
			{Name: "id", Type: domain.ColumnTypeBigInt, PrimaryKey: true},
			{Name: "remote_addr", Type: domain.ColumnTypeText, Nullable: true},
			{Name: "issued_at", Type: domain.ColumnTypeTimestamp},
		},
	}

	tx := &domain.EntityType{
		Name:  "Transaction",
		Table: table,
		Properties: []domain.Property{
			{Name: "id", Column: "id", Kind: domain.PropertyKindColumn},
			{Name: "remote_addr", Column: "remote_addr", Kind: domain.PropertyKindColumn},
			{Name: "issued_at", Column: "issued_at", Kind: domain.PropertyKindColumn},
		},
		Relationships: []domain.Relationship{
			// Heterogeneous reverse collection of every snapshot row
			// written under the transaction. Target is nil because the
			// collection spans all shadow entity types; the name is
			// reserved and excluded from relationship re-derivation.
			{Name: domain.VersionsProperty, Kind: domain.OneToMany},
		},
	}

	b.registry.SetTransactionType(tx)
	return tx, true, nil
}

// declarativeScope resolves the metadata scope the transaction table lives
// in: the backing table of the first pending entity's declarative root, or
// the entity's own table when the root is a table-less mixin. A pending set
// with no backing table anywhere is a fatal configuration error.
func declarativeScope(pending []*domain.EntityType) (*domain.TableDefinition, error) {
	for _, entity := range pending {
		if root := entity.Root(); root.Table != nil {
			return root.Table, nil
		}
		if entity.Table != nil {
			return entity.Table, nil
		}
	}
	return nil, fmt.Errorf("entity type %q: %w", pending[0].Name, ErrMissingRoot)
}
