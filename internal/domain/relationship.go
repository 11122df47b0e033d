package domain

// RelationshipKind represents the cardinality of a relationship between two
// entity types.
type RelationshipKind string

const (
	OneToMany  RelationshipKind = "ONE_TO_MANY"
	ManyToOne  RelationshipKind = "MANY_TO_ONE"
	ManyToMany RelationshipKind = "MANY_TO_MANY"
)

// Reserved relationship names on shadow entity types. TransactionProperty
// binds a snapshot row to its transaction; VersionsProperty is the reverse
// collection on the transaction entity. Neither participates in
// relationship re-derivation.
const (
	TransactionProperty = "transaction"
	VersionsProperty    = "versions"
)

// Relationship describes a relationship property of an entity type.
type Relationship struct {
	Name    string
	Kind    RelationshipKind
	Target  *EntityType
	OrderBy string
}

// Reversed returns the kind of the relationship as seen from the target side.
func (k RelationshipKind) Reversed() RelationshipKind {
	switch k {
	case OneToMany:
		return ManyToOne
	case ManyToOne:
		return OneToMany
	default:
		return ManyToMany
	}
}
