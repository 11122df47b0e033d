package domain

// PropertyKind distinguishes how a mapped property is materialized.
type PropertyKind string

const (
	PropertyKindColumn   PropertyKind = "column"
	PropertyKindAlias    PropertyKind = "alias"
	PropertyKindProxy    PropertyKind = "proxy"
	PropertyKindComputed PropertyKind = "computed"
)

// Property represents a mapped, non-relationship attribute of an entity type.
type Property struct {
	Name   string       `json:"name"`
	Column string       `json:"column,omitempty"` // empty for proxy/computed properties
	Kind   PropertyKind `json:"kind"`
	// ActiveHistory marks attributes whose previous value must be loaded
	// before a write so snapshot rows capture the pre-change state.
	ActiveHistory bool `json:"activeHistory,omitempty"`
}

// TypeOptions carries per-entity-type overrides of the registry-wide
// versioning options. Nil fields fall back to the registry defaults.
type TypeOptions struct {
	Versioning   *bool `mapstructure:"versioning"`
	CreateTables *bool `mapstructure:"create_tables"`
	CreateModels *bool `mapstructure:"create_models"`
}

// EntityType is the declarative description of one entity in the data model:
// its backing table, inheritance parent, mapped properties and relationships.
// Shadow entity types produced by the builder use the same shape, with
// ShadowOf linking back to the original.
type EntityType struct {
	Name          string
	Table         *TableDefinition
	Parent        *EntityType
	Properties    []Property
	Relationships []Relationship
	Options       *TypeOptions

	// ShadowOf is set on derived shadow types and points at the original
	// entity type the shadow mirrors. Nil for application entity types.
	ShadowOf *EntityType
}

// IsShadow reports whether the type was derived by the shadow builder.
func (e *EntityType) IsShadow() bool {
	return e.ShadowOf != nil
}

// Ancestors returns the inheritance chain above the type, most specific
// first. The receiver itself is not included.
func (e *EntityType) Ancestors() []*EntityType {
	var chain []*EntityType
	for parent := e.Parent; parent != nil; parent = parent.Parent {
		chain = append(chain, parent)
	}
	return chain
}

// Root returns the topmost ancestor of the type, or the type itself when it
// has no parent.
func (e *EntityType) Root() *EntityType {
	root := e
	for root.Parent != nil {
		root = root.Parent
	}
	return root
}

// IsSubtypeOf reports whether the type equals other or inherits from it.
func (e *EntityType) IsSubtypeOf(other *EntityType) bool {
	for cur := e; cur != nil; cur = cur.Parent {
		if cur == other {
			return true
		}
	}
	return false
}

// SharesTableWith reports whether both types map onto the same physical
// table, the signal for joined/single-table inheritance.
func (e *EntityType) SharesTableWith(other *EntityType) bool {
	if e.Table == nil || other.Table == nil {
		return false
	}
	return e.Table == other.Table || e.Table.QualifiedName() == other.Table.QualifiedName()
}

// Property returns the mapped property with the given name, if present.
func (e *EntityType) Property(name string) (Property, bool) {
	for _, prop := range e.Properties {
		if prop.Name == name {
			return prop, true
		}
	}
	return Property{}, false
}

// Relationship returns the relationship with the given name, if present.
func (e *EntityType) Relationship(name string) (Relationship, bool) {
	for _, rel := range e.Relationships {
		if rel.Name == name {
			return rel, true
		}
	}
	return Relationship{}, false
}
