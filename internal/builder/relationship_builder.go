package builder

import (
	"github.com/rpattn/shadowschema/internal/domain"
	"github.com/rpattn/shadowschema/internal/registry"
)

// RelationshipBuilder reconstructs an original entity's relationships on the
// shadow side, re-pointing both ends at shadow entity types. It runs only
// after every shadow entity of the current pass exists, since a relationship
// target may have been built later in iteration order than its source.
type RelationshipBuilder struct {
	registry *registry.Registry
}

// NewRelationshipBuilder creates a relationship builder over the registry.
func NewRelationshipBuilder(reg *registry.Registry) *RelationshipBuilder {
	return &RelationshipBuilder{registry: reg}
}

// Build mirrors each relationship of the original onto its shadow entity
// with identical cardinality and ordering. Reserved properties are skipped,
// and a relationship whose target has no shadow entity is silently omitted.
func (b *RelationshipBuilder) Build(original, shadow *domain.EntityType) {
	for _, rel := range original.Relationships {
		if rel.Name == domain.TransactionProperty || rel.Name == domain.VersionsProperty {
			continue
		}
		if _, exists := shadow.Relationship(rel.Name); exists {
			continue
		}
		if rel.Target == nil {
			continue
		}
		shadowTarget, ok := b.registry.Shadow(rel.Target)
		if !ok {
			// Target is not versioned; the relationship is simply not
			// mirrored.
			continue
		}
		shadow.Relationships = append(shadow.Relationships, domain.Relationship{
			Name:    rel.Name,
			Kind:    rel.Kind,
			Target:  shadowTarget,
			OrderBy: rel.OrderBy,
		})
	}
}
