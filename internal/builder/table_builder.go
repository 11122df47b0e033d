package builder

import (
	"fmt"

	"github.com/rpattn/shadowschema/internal/domain"
)

// TableBuilder derives the shadow table for one entity type's backing table:
// the version-tracked columns of the original plus the injected transaction
// and operation columns, with a composite primary key of the original key
// and the transaction id.
type TableBuilder struct {
	entity *domain.EntityType
	table  *domain.TableDefinition
}

// NewTableBuilder creates a table builder for the given entity type.
func NewTableBuilder(entity *domain.EntityType) *TableBuilder {
	return &TableBuilder{
		entity: entity,
		table:  entity.Table,
	}
}

// Build derives the shadow table. When base is non-nil the derivation merges
// into the already-derived ancestor shadow table, so columns added by a
// subclass extend rather than replace the ancestor's shadow schema.
func (b *TableBuilder) Build(base *domain.TableDefinition) (*domain.TableDefinition, error) {
	if len(b.table.PrimaryKey()) == 0 {
		return nil, fmt.Errorf("entity type %q, table %q: %w", b.entity.Name, b.table.Name, ErrMissingPrimaryKey)
	}

	shadow := &domain.TableDefinition{
		Name:   b.table.Name + domain.VersionTableSuffix,
		Schema: b.table.Schema,
	}
	if base != nil {
		shadow.Name = base.Name
		shadow.Schema = base.Schema
		for _, col := range base.Columns {
			if col.Name == domain.TransactionColumn || col.Name == domain.OperationColumn {
				continue
			}
			shadow.Columns = append(shadow.Columns, col)
		}
	}

	for _, col := range b.table.Columns {
		if col.Excluded && !col.PrimaryKey {
			continue
		}
		if shadow.HasColumn(col.Name) {
			continue
		}
		// Non-key columns are relaxed to nullable: a snapshot row only
		// carries the values present at the recorded point in time.
		if !col.PrimaryKey {
			col.Nullable = true
		}
		shadow.Columns = append(shadow.Columns, col)
	}

	shadow.Columns = append(shadow.Columns,
		domain.ColumnDefinition{
			Name:       domain.TransactionColumn,
			Type:       domain.ColumnTypeBigInt,
			PrimaryKey: true,
		},
		domain.ColumnDefinition{
			Name: domain.OperationColumn,
			Type: domain.ColumnTypeSmallInt,
		},
	)

	return shadow, nil
}
