package builder

import (
	"github.com/rpattn/shadowschema/internal/domain"
	"github.com/rpattn/shadowschema/internal/registry"
)

// ShadowTypeSuffix is appended to the original entity type name when naming
// its shadow counterpart.
const ShadowTypeSuffix = "Version"

// ModelBuilder constructs the shadow entity type for one original entity
// over an already-derived shadow table.
type ModelBuilder struct {
	registry *registry.Registry
	entity   *domain.EntityType
}

// NewModelBuilder creates a model builder for the given original entity.
func NewModelBuilder(reg *registry.Registry, entity *domain.EntityType) *ModelBuilder {
	return &ModelBuilder{registry: reg, entity: entity}
}

// Build constructs the shadow entity type: primitive column properties
// copied from the shadow table (relationships excluded), a many-to-one
// transaction relationship, and a back-link to the original. The result is
// registered in the registry's type map before returning, so recursive
// lookups during later derivation steps observe it.
func (b *ModelBuilder) Build(table *domain.TableDefinition, transactionType *domain.EntityType) *domain.EntityType {
	shadow := &domain.EntityType{
		Name:     b.entity.Name + ShadowTypeSuffix,
		Table:    table,
		ShadowOf: b.entity,
	}

	// Shadow inheritance mirrors the original hierarchy when the parent
	// already has a shadow type of its own.
	if b.entity.Parent != nil {
		if parentShadow, ok := b.registry.Shadow(b.entity.Parent); ok {
			shadow.Parent = parentShadow
		}
	}

	for _, col := range table.Columns {
		shadow.Properties = append(shadow.Properties, domain.Property{
			Name:   col.Name,
			Column: col.Name,
			Kind:   domain.PropertyKindColumn,
		})
	}

	shadow.Relationships = append(shadow.Relationships, domain.Relationship{
		Name:   domain.TransactionProperty,
		Kind:   domain.ManyToOne,
		Target: transactionType,
	})

	b.registry.SetShadow(b.entity, shadow)
	return shadow
}
