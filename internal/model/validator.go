package model

import (
	"fmt"

	"github.com/rpattn/shadowschema/internal/domain"
)

// Validate ensures a built entity model satisfies the constraints the
// derivation engine relies on: no duplicate columns, no collisions with the
// injected shadow columns, and no relationships using reserved property
// names.
func Validate(entities []*domain.EntityType) error {
	for _, entity := range entities {
		if entity.Table != nil {
			seen := make(map[string]bool, len(entity.Table.Columns))
			for _, col := range entity.Table.Columns {
				if seen[col.Name] {
					return fmt.Errorf("entity type %q: duplicate column %q", entity.Name, col.Name)
				}
				seen[col.Name] = true

				if col.Name == domain.TransactionColumn || col.Name == domain.OperationColumn {
					return fmt.Errorf("entity type %q: column %q collides with a shadow-table column", entity.Name, col.Name)
				}
			}
		}

		for _, rel := range entity.Relationships {
			if rel.Name == domain.TransactionProperty || rel.Name == domain.VersionsProperty {
				return fmt.Errorf("entity type %q: relationship %q uses a reserved property name", entity.Name, rel.Name)
			}
		}
	}
	return nil
}
