package builder

import "github.com/rpattn/shadowschema/internal/domain"

// AttributeMirror supplies the per-entity attribute lists copied onto shadow
// entities during finalization: renamed column aliases, proxy-like derived
// attributes and computed derived attributes. The orchestrator only decides
// when the copies happen (after relationship derivation, before the pass is
// finalized), not how each list is computed.
type AttributeMirror interface {
	// ColumnAliases maps alias property names to the physical column each
	// alias reads from.
	ColumnAliases(original *domain.EntityType) map[string]string
	// ProxyAttributes lists association-proxy-like property names to
	// mirror onto the shadow entity.
	ProxyAttributes(original *domain.EntityType) []string
	// ComputedAttributes lists computed/hybrid property names to mirror
	// onto the shadow entity.
	ComputedAttributes(original *domain.EntityType) []string
}

// DefaultMirror derives the attribute lists from the original entity's own
// metadata: aliases from columns whose mapped key differs from the column
// name, proxy and computed attributes from properties declared with the
// corresponding kinds.
type DefaultMirror struct{}

// ColumnAliases implements AttributeMirror.
func (DefaultMirror) ColumnAliases(original *domain.EntityType) map[string]string {
	if original.Table == nil {
		return nil
	}
	aliases := make(map[string]string)
	for _, col := range original.Table.Columns {
		if col.Key != "" && col.Key != col.Name {
			aliases[col.Key] = col.Name
		}
	}
	return aliases
}

// ProxyAttributes implements AttributeMirror.
func (DefaultMirror) ProxyAttributes(original *domain.EntityType) []string {
	var names []string
	for _, prop := range original.Properties {
		if prop.Kind == domain.PropertyKindProxy {
			names = append(names, prop.Name)
		}
	}
	return names
}

// ComputedAttributes implements AttributeMirror.
func (DefaultMirror) ComputedAttributes(original *domain.EntityType) []string {
	var names []string
	for _, prop := range original.Properties {
		if prop.Kind == domain.PropertyKindComputed {
			names = append(names, prop.Name)
		}
	}
	return names
}
